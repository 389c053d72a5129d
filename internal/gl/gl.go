// Package gl binds the fixed-function OpenGL 1.x entry points the
// example programs draw with. Entry points are resolved through the
// windowing library's GetProcAddress, so the same loader serves GLX
// and WGL contexts.
package gl

import (
	"fmt"

	"github.com/ebitengine/purego"
)

const (
	// ColorBufferBit is a mask used with Clear to clear the color buffer.
	ColorBufferBit = 0x00004000

	// Triangles is the primitive type for independent triangles.
	Triangles = 0x0004
	// Quads is a legacy primitive type for drawing quadrilaterals.
	Quads = 0x0007

	// Projection selects the projection matrix stack for MatrixMode.
	Projection = 0x1701
	// ModelView selects the model-view matrix stack for MatrixMode.
	ModelView = 0x1700

	// Vendor returns the company responsible for the GL implementation.
	Vendor = 0x1F00
	// Version returns the GL version string of the current context.
	Version = 0x1F02
)

// GL is the loaded set of entry points. All methods operate on the GL
// context current on the calling goroutine's thread.
type GL struct {
	clearColor   func(float32, float32, float32, float32)
	clear        func(uint32)
	viewport     func(int32, int32, int32, int32)
	matrixMode   func(uint32)
	loadIdentity func()
	ortho        func(float64, float64, float64, float64, float64, float64)
	begin        func(uint32)
	end          func()
	color3f      func(float32, float32, float32)
	vertex2f     func(float32, float32)
	getString    func(uint32) string
}

// Load resolves every entry point through resolve, typically
// (*windc.GLContext).GetProcAddress.
func Load(resolve func(name string) uintptr) (*GL, error) {
	gl := &GL{}
	for _, e := range []struct {
		name string
		fptr any
	}{
		{"glClearColor", &gl.clearColor},
		{"glClear", &gl.clear},
		{"glViewport", &gl.viewport},
		{"glMatrixMode", &gl.matrixMode},
		{"glLoadIdentity", &gl.loadIdentity},
		{"glOrtho", &gl.ortho},
		{"glBegin", &gl.begin},
		{"glEnd", &gl.end},
		{"glColor3f", &gl.color3f},
		{"glVertex2f", &gl.vertex2f},
		{"glGetString", &gl.getString},
	} {
		addr := resolve(e.name)
		if addr == 0 {
			return nil, fmt.Errorf("gl: %s not found", e.name)
		}
		purego.RegisterFunc(e.fptr, addr)
	}
	return gl, nil
}

func (gl *GL) ClearColor(r, g, b, a float32) { gl.clearColor(r, g, b, a) }

func (gl *GL) Clear(mask uint32) { gl.clear(mask) }

func (gl *GL) Viewport(x, y, width, height int32) { gl.viewport(x, y, width, height) }

func (gl *GL) MatrixMode(mode uint32) { gl.matrixMode(mode) }

func (gl *GL) LoadIdentity() { gl.loadIdentity() }

func (gl *GL) Ortho(left, right, bottom, top, near, far float64) {
	gl.ortho(left, right, bottom, top, near, far)
}

func (gl *GL) Begin(mode uint32) { gl.begin(mode) }

func (gl *GL) End() { gl.end() }

func (gl *GL) Color3f(r, g, b float32) { gl.color3f(r, g, b) }

func (gl *GL) Vertex2f(x, y float32) { gl.vertex2f(x, y) }

func (gl *GL) GetString(name uint32) string { return gl.getString(name) }
