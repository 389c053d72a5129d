//go:build linux || freebsd

package windc

import (
	"testing"
	"unsafe"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lunarsen/windc/xlib"
)

func TestPreloadAtoms(t *testing.T) {
	orig := xlib.XInternAtoms
	defer func() { xlib.XInternAtoms = orig }()

	calls := 0
	xlib.XInternAtoms = func(d xlib.Display, names **byte, count int32, onlyIfExists int32, out *xlib.Atom) xlib.Status {
		calls++
		// Atoms are interned even when absent beforehand.
		assert.Equal(t, int32(0), onlyIfExists)
		assert.Equal(t, int32(len(x11AtomNames)), count)
		outs := unsafe.Slice(out, count)
		for i := range outs {
			outs[i] = xlib.Atom(i + 1)
		}
		// Simulate one the server rejected.
		outs[0] = 0
		return 1
	}

	tbl, err := preloadAtoms(0)
	require.NoError(t, err)
	// The whole table costs a single round trip.
	assert.Equal(t, 1, calls)

	a, err := tbl.atom(x11AtomNames[3])
	require.NoError(t, err)
	assert.Equal(t, xlib.Atom(4), a)

	_, err = tbl.atom(x11AtomNames[0])
	assert.Error(t, err)
	_, err = tbl.atom("NOT_A_PRELOADED_ATOM")
	assert.Error(t, err)
}

func TestPreloadAtomsFailure(t *testing.T) {
	orig := xlib.XInternAtoms
	defer func() { xlib.XInternAtoms = orig }()

	xlib.XInternAtoms = func(d xlib.Display, names **byte, count int32, onlyIfExists int32, out *xlib.Atom) xlib.Status {
		return 0
	}
	_, err := preloadAtoms(0)
	assert.Equal(t, Failed("XInternAtoms failed"), err)
}
