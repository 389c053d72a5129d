//go:build linux || freebsd

package windc

import (
	"sync"
	"unsafe"

	"github.com/ebitengine/purego"

	"github.com/lunarsen/windc/xlib"
)

// Xlib error and I/O handlers are process-wide globals. The library
// installs its own pair only for the duration of a syncCatch call and
// restores the previous handlers on exit. A thread-unsafe static keeps
// the most recent error event for syncCatch to retrieve; contexts are
// single-threaded so this is fine.

var (
	x11HandlerOnce    sync.Once
	x11ErrorHandler   uintptr
	x11IOErrorHandler uintptr

	x11CaughtError    xlib.ErrorEvent
	x11CaughtErrorSet bool
)

func x11Handlers() (uintptr, uintptr) {
	x11HandlerOnce.Do(func() {
		x11ErrorHandler = purego.NewCallback(func(d uintptr, ev uintptr) uintptr {
			x11CaughtError = *(*xlib.ErrorEvent)(unsafe.Pointer(ev))
			x11CaughtErrorSet = true
			return 0
		})
		x11IOErrorHandler = purego.NewCallback(func(d uintptr) uintptr {
			// Xlib forbids returning from the I/O error handler: the
			// connection is gone and there is nothing to resume.
			panic("windc: X11 connection lost")
		})
	})
	return x11ErrorHandler, x11IOErrorHandler
}

// syncCatch runs f with the library's handlers installed, then XSyncs
// and promotes any server-reported error into a Failed result.
func (c *x11Context) syncCatch(f func()) error {
	errH, ioH := x11Handlers()
	prevErr := xlib.XSetErrorHandler(errH)
	prevIO := xlib.XSetIOErrorHandler(ioH)
	x11CaughtErrorSet = false
	f()
	xlib.XSync(c.display, 0)
	caught := x11CaughtErrorSet
	ev := x11CaughtError
	x11CaughtErrorSet = false
	xlib.XSetErrorHandler(prevErr)
	xlib.XSetIOErrorHandler(prevIO)
	if !caught {
		return nil
	}
	var buf [256]byte
	xlib.XGetErrorText(c.display, int32(ev.ErrorCode), &buf[0], int32(len(buf)))
	return Failedf("X error %d (request %d.%d): %s",
		ev.ErrorCode, ev.RequestCode, ev.MinorCode, cTextOf(buf[:]))
}

func cTextOf(b []byte) string {
	for i, c := range b {
		if c == 0 {
			return string(b[:i])
		}
	}
	return string(b)
}
