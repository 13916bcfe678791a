package launcher

import (
	"github.com/rs/zerolog/log"

	"flaunch/internal/errors"
	"flaunch/internal/fileinfo"
	"flaunch/internal/fspath"
	"flaunch/internal/registry"
)

// LaunchFiles classifies a batch and launches every entry. It always
// returns true: failures are reported through the error hook, never by the
// return value.
func (l *Launcher) LaunchFiles(infos []*fileinfo.FileInfo, lctx *registry.LaunchContext) bool {
	return l.launchFiles(infos, lctx, 0)
}

// launchFiles runs one classification round. depth counts the resolution
// rounds that led here.
func (l *Launcher) launchFiles(infos []*fileinfo.FileInfo, lctx *registry.LaunchContext, depth int) bool {
	var folders []*fileinfo.FileInfo
	buckets := map[string][]*fileinfo.FileInfo{}
	var pathsToLaunch fspath.List

	for _, info := range infos {
		switch {
		case info.IsDir():
			folders = append(folders, info)
		case info.IsMountable():
			if info.Target() == "" {
				// not mounted yet, so there is no target URI
				err := errors.NewNotMountedError(info.Path().String())
				if !l.reportError(lctx, err, info.Path(), info) {
					continue
				}
				// re-query our own path; once mounted it yields a target
				pathsToLaunch = append(pathsToLaunch, info.Path())
			} else {
				pathsToLaunch = append(pathsToLaunch, fspath.FromString(info.Target()))
			}
		case info.IsDesktopEntry():
			l.launchDesktopEntry(info, nil, lctx, depth)
		case info.IsExecutableType():
			l.LaunchExecutable(info, lctx)
		case info.IsShortcut():
			// launch the target instead
			if p := l.ResolveShortcut(info, lctx); p.IsValid() {
				pathsToLaunch = append(pathsToLaunch, p)
			}
		default:
			mt := info.MimeType()
			buckets[mt] = append(buckets[mt], info)
		}
	}

	if len(folders) > 0 {
		l.openFolders(folders, lctx)
	}
	// bucket processing order across types is unspecified
	for mt, entries := range buckets {
		l.launchBucket(mt, entries, lctx)
	}
	if len(pathsToLaunch) > 0 {
		l.launchPaths(pathsToLaunch, lctx, depth+1)
	}
	return true
}

// openFolders batch-launches directories with the handler for the
// inode/directory pseudo type.
func (l *Launcher) openFolders(folders []*fileinfo.FileInfo, lctx *registry.LaunchContext) bool {
	app, ok := l.Registry.DefaultForType(fileinfo.MimeDirectory)
	if !ok {
		app, ok = l.chooseApp(folders, fileinfo.MimeDirectory)
	}
	if !ok {
		err := errors.NewNoDefaultAppError(fileinfo.MimeDirectory)
		l.reportError(lctx, err, folders[0].Path(), folders[0])
		return false
	}
	return l.LaunchWithApp(app, infoPaths(folders), lctx)
}

// launchBucket opens the entries sharing one MIME type with its default
// application, falling back to the chooser hook. A bucket nothing can open
// is dropped.
func (l *Launcher) launchBucket(mimeType string, entries []*fileinfo.FileInfo, lctx *registry.LaunchContext) {
	app, ok := l.Registry.DefaultForType(mimeType)
	if !ok {
		app, ok = l.chooseApp(entries, mimeType)
	}
	if !ok {
		log.Debug().Str("mime", mimeType).Int("entries", len(entries)).Msg("launcher: no application; bucket dropped")
		return
	}
	l.LaunchWithApp(app, infoPaths(entries), lctx)
}

// launchWithDefaultApp opens a single file with the default application for
// its MIME type.
func (l *Launcher) launchWithDefaultApp(info *fileinfo.FileInfo, lctx *registry.LaunchContext) bool {
	app, ok := l.Registry.DefaultForType(info.MimeType())
	if !ok {
		err := errors.NewNoDefaultAppError(info.MimeType())
		l.reportError(lctx, err, info.Path(), info)
		return false
	}
	return l.LaunchWithApp(app, fspath.List{info.Path()}, lctx)
}

// LaunchWithApp performs one launch call carrying every path as a URI, in
// input order. A failure is reported against the first path only.
func (l *Launcher) LaunchWithApp(app registry.App, paths fspath.List, lctx *registry.LaunchContext) bool {
	if err := app.Launch(lctx, paths.URIs()); err != nil {
		var first fspath.Path
		if len(paths) > 0 {
			first = paths[0]
		}
		l.reportError(lctx, errors.NewLaunchError(first.String(), err), first, nil)
		return false
	}
	return true
}
