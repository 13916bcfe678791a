package launcher

import (
	"github.com/rs/zerolog/log"

	"flaunch/internal/errors"
	"flaunch/internal/fileinfo"
	"flaunch/internal/fspath"
	"flaunch/internal/registry"
)

// LaunchPaths queries metadata for paths and re-enters dispatch once it
// arrives. The call never blocks: dispatch resumes as a continuation on the
// job's completion. The returned handle is nil when the resolution bound
// rejects the request.
func (l *Launcher) LaunchPaths(paths fspath.List, lctx *registry.LaunchContext) InfoJob {
	return l.launchPaths(paths, lctx, 1)
}

// launchPaths starts resolution round depth. Past the bound it fails closed:
// the error is reported and nothing is re-enqueued.
func (l *Launcher) launchPaths(paths fspath.List, lctx *registry.LaunchContext, depth int) InfoJob {
	if depth > l.maxDepth() {
		var first fspath.Path
		if len(paths) > 0 {
			first = paths[0]
		}
		err := errors.NewResolveLoopError(first.String(), depth-1)
		l.reportError(lctx, err, first, nil)
		return nil
	}
	log.Debug().Int("paths", len(paths)).Int("depth", depth).Msg("launcher: resolving")
	l.wg.Add(1)
	job := l.Query(paths)
	job.OnDone(func() {
		defer l.wg.Done()
		l.launchFiles(job.Results(), lctx, depth)
	})
	return job
}

// ResolveShortcut turns a shortcut's stored target into a launchable path.
// A target with an unhandled scheme is delegated to that scheme's default
// handler right away and resolves to the invalid path; with no handler
// registered the entry is dropped.
func (l *Launcher) ResolveShortcut(info *fileinfo.FileInfo, lctx *registry.LaunchContext) fspath.Path {
	target := info.Target()
	scheme := fspath.SchemeOf(target)
	if scheme == "" {
		// no scheme; see it as a local path
		return fspath.FromLocal(target)
	}
	switch scheme {
	case "file", "trash", "network", "computer":
		return fspath.FromURI(target)
	}
	if app, ok := l.Registry.DefaultForScheme(scheme); ok {
		l.LaunchWithApp(app, fspath.List{fspath.FromURI(target)}, lctx)
	} else {
		log.Debug().Str("scheme", scheme).Str("target", target).Msg("launcher: no scheme handler; shortcut dropped")
	}
	return fspath.Path{}
}
