//go:build linux || freebsd

package windc

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/lunarsen/windc/xlib"
)

func TestKeyPressIsRepeat(t *testing.T) {
	c := &x11Context{pressedKeys: make(map[Keycode]xlib.Time)}

	assert.False(t, c.keyPressIsRepeat(38, 1000))
	assert.True(t, c.keyPressIsRepeat(38, 1030))
	assert.True(t, c.keyPressIsRepeat(38, 1060))

	// A different key held at the same time is independent.
	assert.False(t, c.keyPressIsRepeat(40, 1060))

	delete(c.pressedKeys, 38)
	assert.False(t, c.keyPressIsRepeat(38, 2000))
}

func TestMouseButtonOf(t *testing.T) {
	assert.Equal(t, MouseButtonLeft, mouseButtonOf(1))
	assert.Equal(t, MouseButtonMiddle, mouseButtonOf(2))
	assert.Equal(t, MouseButtonRight, mouseButtonOf(3))
	assert.Equal(t, MouseButtonBack, mouseButtonOf(8))
	assert.Equal(t, MouseButtonForward, mouseButtonOf(9))
	assert.Equal(t, MouseButtonExtra(1), mouseButtonOf(10))
}

func TestScrollOf(t *testing.T) {
	for n, want := range map[uint32]Vec2{
		4: {Y: 1},
		5: {Y: -1},
		6: {X: -1},
		7: {X: 1},
	} {
		got, ok := scrollOf(n)
		assert.True(t, ok, "button %d", n)
		assert.Equal(t, want, got, "button %d", n)
	}
	_, ok := scrollOf(1)
	assert.False(t, ok)
	_, ok = scrollOf(8)
	assert.False(t, ok)
}

func TestClickOf(t *testing.T) {
	c := &x11Context{}
	pos := Vec2F{X: 100, Y: 100}

	assert.Equal(t, ClickSingle, c.clickOf(MouseButtonLeft, 1000, pos))
	assert.Equal(t, ClickDouble, c.clickOf(MouseButtonLeft, 1200, pos))

	// Too slow.
	assert.Equal(t, ClickSingle, c.clickOf(MouseButtonLeft, 2000, pos))
	// Too far.
	assert.Equal(t, ClickSingle, c.clickOf(MouseButtonLeft, 2100, Vec2F{X: 120, Y: 100}))
	// Different button.
	assert.Equal(t, ClickSingle, c.clickOf(MouseButtonRight, 2150, Vec2F{X: 120, Y: 100}))
}

func TestParseURIList(t *testing.T) {
	payload := "# dropped files\r\nfile:///home/user/a.txt\r\nfile://localhost/tmp/b%20c\r\n\r\n/plain/path\r\n"
	assert.Equal(t, []string{
		"/home/user/a.txt",
		"/tmp/b%20c",
		"/plain/path",
	}, parseURIList(payload))

	assert.Nil(t, parseURIList(""))
}

func TestDiffWMState(t *testing.T) {
	const (
		horz   xlib.Atom = 101
		vert   xlib.Atom = 102
		hidden xlib.Atom = 103
	)
	c := &x11Context{
		atoms: &atomTable{atoms: map[string]xlib.Atom{
			"_NET_WM_STATE_MAXIMIZED_HORZ": horz,
			"_NET_WM_STATE_MAXIMIZED_VERT": vert,
			"_NET_WM_STATE_HIDDEN":         hidden,
		}},
	}
	w := &x11Window{win: 42, knownState: map[xlib.Atom]bool{}}

	// Gaining one maximize axis is not maximized yet.
	c.diffWMState(w, map[xlib.Atom]bool{horz: true})
	_, ok := c.queue.pop()
	assert.False(t, ok)

	w.knownState = map[xlib.Atom]bool{horz: true}
	c.diffWMState(w, map[xlib.Atom]bool{horz: true, vert: true})
	e, _ := c.queue.pop()
	assert.Equal(t, WindowMaximizedEvent{Window: 42}, e)

	// Dropping an axis restores.
	w.knownState = map[xlib.Atom]bool{horz: true, vert: true}
	c.diffWMState(w, map[xlib.Atom]bool{horz: true})
	e, _ = c.queue.pop()
	assert.Equal(t, WindowRestoredEvent{Window: 42}, e)

	w.knownState = map[xlib.Atom]bool{}
	c.diffWMState(w, map[xlib.Atom]bool{hidden: true})
	e, _ = c.queue.pop()
	assert.Equal(t, WindowMinimizedEvent{Window: 42}, e)

	w.knownState = map[xlib.Atom]bool{hidden: true}
	c.diffWMState(w, map[xlib.Atom]bool{})
	e, _ = c.queue.pop()
	assert.Equal(t, WindowRestoredEvent{Window: 42}, e)
}
