//go:build linux || freebsd

package xlib

import (
	"fmt"

	"github.com/ebitengine/purego"
)

// XRender bindings (libXrender). The library only needs presence and
// version probing plus the standard-format query: ARGB cursor imagery is
// produced through Xcursor, which itself rides on Render.

const PictStandardARGB32 = 0

var (
	libXrender uintptr

	XRenderQueryExtension func(d Display, eventBase, errorBase *int32) int32
	XRenderQueryVersion   func(d Display, major, minor *int32) Status
	XRenderFindStandardFormat func(d Display, format int32) uintptr
)

func loadXrender() error {
	var err error
	libXrender, err = purego.Dlopen("libXrender.so.1", purego.RTLD_NOW|purego.RTLD_GLOBAL)
	if err != nil {
		return fmt.Errorf("xlib: %w", err)
	}
	purego.RegisterLibFunc(&XRenderQueryExtension, libXrender, "XRenderQueryExtension")
	purego.RegisterLibFunc(&XRenderQueryVersion, libXrender, "XRenderQueryVersion")
	purego.RegisterLibFunc(&XRenderFindStandardFormat, libXrender, "XRenderFindStandardFormat")
	return nil
}
