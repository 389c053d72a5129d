//go:build linux || freebsd

package windc

import (
	"github.com/lunarsen/windc/xlib"
)

// x11AtomNames is every atom the library will ever need, interned in a
// single round trip at Context creation. Per-atom round trips are
// individually cheap but collectively wasteful.
var x11AtomNames = []string{
	"UTF8_STRING",
	"CLIPBOARD",
	"XKLAVIER_STATE",

	"WM_PROTOCOLS",
	"WM_DELETE_WINDOW",
	"WM_TAKE_FOCUS",
	"WM_STATE",
	"WM_CHANGE_STATE",
	"_MOTIF_WM_HINTS",

	"_NET_SUPPORTED",
	"_NET_CLIENT_LIST",
	"_NET_NUMBER_OF_DESKTOPS",
	"_NET_CURRENT_DESKTOP",
	"_NET_DESKTOP_NAMES",
	"_NET_ACTIVE_WINDOW",
	"_NET_WORKAREA",
	"_NET_SUPPORTING_WM_CHECK",
	"_NET_WM_NAME",
	"_NET_WM_ICON_NAME",
	"_NET_WM_DESKTOP",

	"_NET_WM_WINDOW_TYPE",
	"_NET_WM_WINDOW_TYPE_DESKTOP",
	"_NET_WM_WINDOW_TYPE_DOCK",
	"_NET_WM_WINDOW_TYPE_TOOLBAR",
	"_NET_WM_WINDOW_TYPE_MENU",
	"_NET_WM_WINDOW_TYPE_UTILITY",
	"_NET_WM_WINDOW_TYPE_SPLASH",
	"_NET_WM_WINDOW_TYPE_DIALOG",
	"_NET_WM_WINDOW_TYPE_DROPDOWN_MENU",
	"_NET_WM_WINDOW_TYPE_POPUP_MENU",
	"_NET_WM_WINDOW_TYPE_TOOLTIP",
	"_NET_WM_WINDOW_TYPE_NOTIFICATION",
	"_NET_WM_WINDOW_TYPE_COMBO",
	"_NET_WM_WINDOW_TYPE_DND",
	"_NET_WM_WINDOW_TYPE_NORMAL",

	"_NET_WM_STATE",
	"_NET_WM_STATE_MODAL",
	"_NET_WM_STATE_STICKY",
	"_NET_WM_STATE_MAXIMIZED_VERT",
	"_NET_WM_STATE_MAXIMIZED_HORZ",
	"_NET_WM_STATE_SHADED",
	"_NET_WM_STATE_SKIP_TASKBAR",
	"_NET_WM_STATE_SKIP_PAGER",
	"_NET_WM_STATE_HIDDEN",
	"_NET_WM_STATE_FULLSCREEN",
	"_NET_WM_STATE_ABOVE",
	"_NET_WM_STATE_BELOW",
	"_NET_WM_STATE_DEMANDS_ATTENTION",
	"_NET_WM_STATE_FOCUSED",

	"_NET_WM_ALLOWED_ACTIONS",
	"_NET_WM_ACTION_MOVE",
	"_NET_WM_ACTION_RESIZE",
	"_NET_WM_ACTION_MINIMIZE",
	"_NET_WM_ACTION_SHADE",
	"_NET_WM_ACTION_STICK",
	"_NET_WM_ACTION_MAXIMIZE_HORZ",
	"_NET_WM_ACTION_MAXIMIZE_VERT",
	"_NET_WM_ACTION_FULLSCREEN",
	"_NET_WM_ACTION_CHANGE_DESKTOP",
	"_NET_WM_ACTION_CLOSE",
	"_NET_WM_ACTION_ABOVE",
	"_NET_WM_ACTION_BELOW",

	"_NET_WM_STRUT",
	"_NET_WM_STRUT_PARTIAL",
	"_NET_WM_ICON_GEOMETRY",
	"_NET_WM_ICON",
	"_NET_WM_PID",
	"_NET_WM_HANDLED_ICONS",
	"_NET_WM_USER_TIME",
	"_NET_FRAME_EXTENTS",
	"_NET_WM_OPAQUE_REGION",
	"_NET_WM_BYPASS_COMPOSITOR",
	"_NET_WM_PING",
	"_NET_WM_SYNC_REQUEST",
	"_NET_WM_FULLSCREEN_MONITORS",
	"_NET_WM_FULL_PLACEMENT",
	"_NET_WM_WINDOW_OPACITY",

	"XdndAware",
	"XdndEnter",
	"XdndPosition",
	"XdndLeave",
	"XdndStatus",
	"XdndTypeList",
	"XdndDrop",
	"XdndFinished",
	"XdndSelection",
	"XdndActionCopy",
	"XdndActionMove",
	"XdndActionLink",
	"XdndActionAsk",
	"XdndActionPrivate",
	"XdndActionList",
	"XdndActionDescription",
	"XdndProxy",
	"_MOTIF_DRAG_AND_DROP_MESSAGE",
	"_MOTIF_DRAG_INITIATOR_INFO",
	"_MOTIF_DRAG_RECEIVER_INFO",
	"text/uri-list",
	"text/plain",
	"text/plain;charset=utf-8",
	"_WINDC_DND_DATA",
}

// atomTable holds the preloaded atoms. Accessors fail if the server did
// not have the atom, which keeps the rest of the code honest on servers
// where an atom is absent.
type atomTable struct {
	atoms map[string]xlib.Atom
}

func preloadAtoms(d xlib.Display) (*atomTable, error) {
	names := make([]*byte, len(x11AtomNames))
	// Keep the backing buffers alive across the call.
	bufs := make([][]byte, len(x11AtomNames))
	for i, n := range x11AtomNames {
		bufs[i] = append([]byte(n), 0)
		names[i] = &bufs[i][0]
	}
	out := make([]xlib.Atom, len(x11AtomNames))
	status := xlib.XInternAtoms(d, &names[0], int32(len(names)), 0, &out[0])
	if status == 0 {
		return nil, Failed("XInternAtoms failed")
	}
	t := &atomTable{atoms: make(map[string]xlib.Atom, len(x11AtomNames))}
	missing := 0
	for i, n := range x11AtomNames {
		if out[i] == 0 {
			missing++
			continue
		}
		t.atoms[n] = out[i]
	}
	logger.Debug("interned X11 atoms", "count", len(t.atoms), "missing", missing)
	return t, nil
}

// atom returns the interned atom for name.
func (t *atomTable) atom(name string) (xlib.Atom, error) {
	a, ok := t.atoms[name]
	if !ok {
		return 0, Failed(name + " atom not present")
	}
	return a, nil
}

// atom is sugar over the context's table.
func (c *x11Context) atom(name string) (xlib.Atom, error) {
	return c.atoms.atom(name)
}
