package launcher

import (
	"flaunch/internal/errors"
	"flaunch/internal/fileinfo"
	"flaunch/internal/fspath"
	"flaunch/internal/registry"
)

// LaunchDesktopEntry launches a desktop-entry file. Exec-flavored entries
// share the executable-launch policy; entries that are shortcuts route
// their targets through the resolution loop instead of launching directly.
func (l *Launcher) LaunchDesktopEntry(info *fileinfo.FileInfo, extraPaths fspath.List, lctx *registry.LaunchContext) bool {
	return l.launchDesktopEntry(info, extraPaths, lctx, 0)
}

func (l *Launcher) launchDesktopEntry(info *fileinfo.FileInfo, extraPaths fspath.List, lctx *registry.LaunchContext, depth int) bool {
	target := info.Target()
	identifier := ""
	var shortcutTargets fspath.List

	if info.IsExecutableType() {
		switch l.askExec(info) {
		case DirectExec, ExecInTerminal:
			if info.IsShortcut() {
				if p := l.ResolveShortcut(info, lctx); p.IsValid() {
					shortcutTargets = append(shortcutTargets, p)
				}
			} else if target != "" {
				identifier = target
			} else {
				identifier = info.Path().LocalPath()
			}
		case OpenWithDefaultApp:
			return l.launchWithDefaultApp(info, lctx)
		default:
			return false
		}
	} else if info.IsNative() || info.Path().HasURIScheme("menu") {
		// menu-scheme entries resolve like native ones
		if target != "" {
			identifier = target
		} else {
			identifier = info.Path().LocalPath()
		}
	}

	if identifier != "" {
		return l.LaunchDesktopEntryID(identifier, extraPaths, lctx)
	}
	if len(shortcutTargets) > 0 {
		l.launchPaths(shortcutTargets, lctx, depth+1)
	}
	return false
}

// LaunchDesktopEntryID resolves a desktop-entry identifier (a bare
// desktop-file ID or an absolute path) and batch-launches it with paths.
func (l *Launcher) LaunchDesktopEntryID(id string, paths fspath.List, lctx *registry.LaunchContext) bool {
	app, ok := l.Registry.ByID(id)
	if !ok {
		err := errors.NewInvalidDesktopEntryError(id)
		l.reportError(lctx, err, fspath.FromString(id), nil)
		return false
	}
	return l.LaunchWithApp(app, paths, lctx)
}
