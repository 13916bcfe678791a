package launcher

import (
	"os"
	"path/filepath"

	"github.com/rs/zerolog/log"
	"golang.org/x/sys/unix"

	"flaunch/internal/desktop"
	"flaunch/internal/errors"
	"flaunch/internal/fileinfo"
	"flaunch/internal/fspath"
	"flaunch/internal/registry"
)

// LaunchExecutable runs an executable-type entry directly. Files that fail
// the effective-uid execute check are a silent no-op. Once a launch has
// been attempted the call returns true; a failed attempt is reported
// through the error hook, not the return value.
func (l *Launcher) LaunchExecutable(info *fileinfo.FileInfo, lctx *registry.LaunchContext) bool {
	filename := info.Path().LocalPath()
	if filename == "" || !fileinfo.IsExecutable(filename) {
		return false
	}
	switch act := l.askExec(info); act {
	case DirectExec, ExecInTerminal:
		// the filename may contain spaces; the descriptor gets it quoted
		app, err := l.newCommandApp(desktop.Quote(filename), act == ExecInTerminal, l.execWorkDir(filename, lctx))
		if err != nil {
			log.Debug().Str("path", filename).Err(err).Msg("launcher: command descriptor failed")
			return false
		}
		// no URIs: the command line is the file itself
		if err := app.Launch(lctx, nil); err != nil {
			l.reportError(lctx, errors.NewLaunchError(info.Path().String(), err), info.Path(), info)
		}
		return true
	case OpenWithDefaultApp:
		return l.launchWithDefaultApp(info, lctx)
	}
	return false
}

// execWorkDir validates the file's parent directory for use as the spawn
// working directory. An unusable directory is reported and the launch
// proceeds from the inherited one; the process-global working directory is
// never touched.
func (l *Launcher) execWorkDir(filename string, lctx *registry.LaunchContext) string {
	dir := filepath.Dir(filename)
	if dir == "." || dir == "" {
		return ""
	}
	fi, err := os.Stat(dir)
	if err == nil && !fi.IsDir() {
		err = unix.ENOTDIR
	}
	if err != nil {
		l.reportError(lctx, errors.NewWorkingDirError(dir, err), fspath.FromLocal(dir), nil)
		return ""
	}
	return dir
}
