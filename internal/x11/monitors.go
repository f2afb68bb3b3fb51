package x11

import (
	"fmt"

	"github.com/BurntSushi/xgb/randr"
	"github.com/BurntSushi/xgb/xproto"
	"github.com/BurntSushi/xgbutil/ewmh"

	"github.com/1broseidon/hyprgrid/internal/tiling"
)

// Monitor is one enabled RandR output.
type Monitor struct {
	ID       int
	Name     string
	Bounds   tiling.Rect
	Reserved tiling.Insets
}

// Contains reports whether the root-relative point lies on the monitor.
func (m Monitor) Contains(x, y int) bool {
	b := m.Bounds
	return x >= b.X && x < b.X+b.Width && y >= b.Y && y < b.Y+b.Height
}

// GetMonitors lists enabled CRTCs through RandR.
func (c *Connection) GetMonitors() ([]Monitor, error) {
	conn := c.XUtil.Conn()
	if err := randr.Init(conn); err != nil {
		return nil, fmt.Errorf("randr init failed: %w", err)
	}
	res, err := randr.GetScreenResources(conn, c.Root).Reply()
	if err != nil {
		return nil, fmt.Errorf("failed to get screen resources: %w", err)
	}

	var monitors []Monitor
	for i, crtc := range res.Crtcs {
		info, err := randr.GetCrtcInfo(conn, crtc, res.ConfigTimestamp).Reply()
		if err != nil || info.Width == 0 || info.Height == 0 || len(info.Outputs) == 0 {
			continue
		}
		name := fmt.Sprintf("Monitor%d", i)
		if out, err := randr.GetOutputInfo(conn, info.Outputs[0], res.ConfigTimestamp).Reply(); err == nil {
			name = string(out.Name)
		}
		monitors = append(monitors, Monitor{
			ID:   i,
			Name: name,
			Bounds: tiling.Rect{
				X:      int(info.X),
				Y:      int(info.Y),
				Width:  int(info.Width),
				Height: int(info.Height),
			},
		})
	}
	return monitors, nil
}

// GetActiveMonitor picks the monitor under the focused window's centre, then
// the one under the pointer, then the first. Reserved space comes from dock
// struts, or from the EWMH work area when no dock declares any.
func (c *Connection) GetActiveMonitor() (*Monitor, error) {
	monitors, err := c.GetMonitors()
	if err != nil {
		return nil, err
	}
	if len(monitors) == 0 {
		return nil, fmt.Errorf("no monitors found")
	}

	idx := -1
	if win, err := ewmh.ActiveWindowGet(c.XUtil); err == nil && win != 0 {
		if g, err := c.WindowGeometry(win); err == nil {
			idx = monitorAt(monitors, g.X+g.Width/2, g.Y+g.Height/2)
		}
	}
	if idx < 0 {
		if p, err := xproto.QueryPointer(c.XUtil.Conn(), c.Root).Reply(); err == nil {
			idx = monitorAt(monitors, int(p.RootX), int(p.RootY))
		}
	}
	if idx < 0 {
		idx = 0
	}

	mon := monitors[idx]
	if insets, ok := c.dockInsets(mon.Bounds); ok {
		mon.Reserved = insets
	} else if wa, ok := c.workArea(); ok {
		mon.Reserved = workAreaInsets(mon.Bounds, wa)
	}
	return &mon, nil
}

func monitorAt(monitors []Monitor, x, y int) int {
	for i, m := range monitors {
		if m.Contains(x, y) {
			return i
		}
	}
	return -1
}

// dockInsets folds the struts of every dock window into insets for bounds.
func (c *Connection) dockInsets(bounds tiling.Rect) (tiling.Insets, bool) {
	rootGeom, err := xproto.GetGeometry(c.XUtil.Conn(), xproto.Drawable(c.Root)).Reply()
	if err != nil {
		return tiling.Insets{}, false
	}
	rootW, rootH := int(rootGeom.Width), int(rootGeom.Height)

	clients, err := ewmh.ClientListGet(c.XUtil)
	if err != nil {
		return tiling.Insets{}, false
	}

	var acc tiling.Insets
	for _, win := range clients {
		if !c.isDock(win) {
			continue
		}
		if sp, err := ewmh.WmStrutPartialGet(c.XUtil, win); err == nil {
			acc = maxInsets(acc, strutInsets(bounds, rootW, rootH, *sp))
			continue
		}
		// Older docks only set _NET_WM_STRUT, which spans the whole edge.
		if s, err := ewmh.WmStrutGet(c.XUtil, win); err == nil {
			acc = maxInsets(acc, strutInsets(bounds, rootW, rootH, fullEdgeStrut(*s, rootW, rootH)))
		}
	}
	return acc, acc != (tiling.Insets{})
}

func (c *Connection) isDock(win xproto.Window) bool {
	types, err := ewmh.WmWindowTypeGet(c.XUtil, win)
	if err != nil {
		return false
	}
	for _, t := range types {
		if t == "_NET_WM_WINDOW_TYPE_DOCK" {
			return true
		}
	}
	return false
}

// workArea returns the _NET_WORKAREA entry of the current desktop.
func (c *Connection) workArea() (tiling.Rect, bool) {
	areas, err := ewmh.WorkareaGet(c.XUtil)
	if err != nil || len(areas) == 0 {
		return tiling.Rect{}, false
	}
	i := 0
	if d, err := ewmh.CurrentDesktopGet(c.XUtil); err == nil && int(d) < len(areas) {
		i = int(d)
	}
	wa := areas[i]
	return tiling.Rect{X: int(wa.X), Y: int(wa.Y), Width: int(wa.Width), Height: int(wa.Height)}, true
}

func fullEdgeStrut(s ewmh.WmStrut, rootW, rootH int) ewmh.WmStrutPartial {
	return ewmh.WmStrutPartial{
		Left: s.Left, Right: s.Right, Top: s.Top, Bottom: s.Bottom,
		LeftEndY:   uint(rootH - 1),
		RightEndY:  uint(rootH - 1),
		TopEndX:    uint(rootW - 1),
		BottomEndX: uint(rootW - 1),
	}
}

// strutInsets converts one dock's partial strut into insets on bounds. Strut
// ranges are inclusive and measured from the root window edges.
func strutInsets(bounds tiling.Rect, rootW, rootH int, sp ewmh.WmStrutPartial) tiling.Insets {
	var in tiling.Insets
	if sp.Top > 0 {
		in.Top = intersect(bounds, span(int(sp.TopStartX), 0, int(sp.TopEndX), int(sp.Top)-1)).Height
	}
	if sp.Bottom > 0 {
		in.Bottom = intersect(bounds, span(int(sp.BottomStartX), rootH-int(sp.Bottom), int(sp.BottomEndX), rootH-1)).Height
	}
	if sp.Left > 0 {
		in.Left = intersect(bounds, span(0, int(sp.LeftStartY), int(sp.Left)-1, int(sp.LeftEndY))).Width
	}
	if sp.Right > 0 {
		in.Right = intersect(bounds, span(rootW-int(sp.Right), int(sp.RightStartY), rootW-1, int(sp.RightEndY))).Width
	}
	return in
}

// workAreaInsets is the space between bounds and its overlap with the work area.
func workAreaInsets(bounds, wa tiling.Rect) tiling.Insets {
	o := intersect(bounds, wa)
	if o.Empty() {
		return tiling.Insets{}
	}
	return tiling.Insets{
		Left:   o.X - bounds.X,
		Top:    o.Y - bounds.Y,
		Right:  bounds.X + bounds.Width - (o.X + o.Width),
		Bottom: bounds.Y + bounds.Height - (o.Y + o.Height),
	}
}

// span builds a rect from inclusive corner coordinates.
func span(x1, y1, x2, y2 int) tiling.Rect {
	return tiling.Rect{X: x1, Y: y1, Width: x2 - x1 + 1, Height: y2 - y1 + 1}
}

func intersect(a, b tiling.Rect) tiling.Rect {
	x1, y1 := max(a.X, b.X), max(a.Y, b.Y)
	x2, y2 := min(a.X+a.Width, b.X+b.Width), min(a.Y+a.Height, b.Y+b.Height)
	if x2 <= x1 || y2 <= y1 {
		return tiling.Rect{}
	}
	return tiling.Rect{X: x1, Y: y1, Width: x2 - x1, Height: y2 - y1}
}

func maxInsets(a, b tiling.Insets) tiling.Insets {
	return tiling.Insets{
		Top:    max(a.Top, b.Top),
		Bottom: max(a.Bottom, b.Bottom),
		Left:   max(a.Left, b.Left),
		Right:  max(a.Right, b.Right),
	}
}
