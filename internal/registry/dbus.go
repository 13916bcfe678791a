package registry

import (
	"strings"

	"github.com/godbus/dbus/v5"

	"flaunch/internal/desktop"
)

// activate launches a DBusActivatable entry through the
// org.freedesktop.Application interface on the session bus. The bus name is
// the desktop-file ID without its extension; the object path is the name
// with '.' as '/' and '-' as '_'.
func activate(e *desktop.Entry, uris []string) error {
	conn, err := dbus.SessionBus()
	if err != nil {
		return err
	}
	name := strings.TrimSuffix(desktop.IDFromPath(e.File), ".desktop")
	path := dbus.ObjectPath("/" + strings.NewReplacer(".", "/", "-", "_").Replace(name))
	obj := conn.Object(name, path)
	data := map[string]dbus.Variant{}
	if len(uris) == 0 {
		return obj.Call("org.freedesktop.Application.Activate", 0, data).Err
	}
	return obj.Call("org.freedesktop.Application.Open", 0, uris, data).Err
}
