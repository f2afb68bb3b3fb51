package x11

import (
	"fmt"
	"os"

	"github.com/BurntSushi/xgb/xproto"
	"github.com/BurntSushi/xgbutil"
)

// Connection is an xgbutil session plus the root window of its screen.
type Connection struct {
	XUtil *xgbutil.XUtil
	Root  xproto.Window
}

// NewConnection connects to the X server named by $DISPLAY. EWMH and RandR
// are initialised lazily by the calls that need them.
func NewConnection() (*Connection, error) {
	xu, err := xgbutil.NewConn()
	if err != nil {
		return nil, fmt.Errorf("connect to display %q: %w", os.Getenv("DISPLAY"), err)
	}
	return &Connection{XUtil: xu, Root: xu.RootWin()}, nil
}

func (c *Connection) Close() {
	c.XUtil.Conn().Close()
}
