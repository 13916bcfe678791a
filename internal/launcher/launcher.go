// Package launcher decides, per file-system entry, how it must be opened:
// as a folder, a mount target, a desktop entry, a native executable, a
// shortcut, or through the MIME-type default application. It carries that
// decision out with correct batching and asynchronous re-resolution of
// not-yet-available metadata.
package launcher

import (
	"sync"

	"github.com/rs/zerolog/log"

	"flaunch/internal/fileinfo"
	"flaunch/internal/fspath"
	"flaunch/internal/registry"
)

const defaultMaxResolveDepth = 8

// ExecAction is the decision about how to treat an executable entry.
type ExecAction int

const (
	DirectExec ExecAction = iota
	ExecInTerminal
	OpenWithDefaultApp
	CancelExec
)

// Registry resolves applications; *registry.Registry satisfies it.
type Registry interface {
	DefaultForType(mimeType string) (registry.App, bool)
	DefaultForScheme(scheme string) (registry.App, bool)
	ByID(nameOrPath string) (registry.App, bool)
}

// InfoJob is one in-flight metadata query; *jobs.Job satisfies it.
type InfoJob interface {
	OnDone(fn func())
	Results() []*fileinfo.FileInfo
}

// QueryFunc submits paths for asynchronous metadata resolution.
type QueryFunc func(paths fspath.List) InfoJob

// Launcher is the dispatch engine. Registry and Query must be set; every
// hook is optional. Errors never propagate out of a dispatch: they are
// routed through ShowError and processing continues with the next entry.
type Launcher struct {
	Registry Registry
	Query    QueryFunc

	// NewCommandApp builds the descriptor for direct execution; nil uses
	// registry.NewCommandApp.
	NewCommandApp func(cmdline string, needsTerminal bool, workDir string) (registry.App, error)

	// AskExecFile decides how to treat an executable entry; nil runs it
	// directly. Never consulted in QuickExec mode.
	AskExecFile func(info *fileinfo.FileInfo) ExecAction
	// ChooseApp picks an application when no default is registered; nil
	// chooses nothing.
	ChooseApp func(infos []*fileinfo.FileInfo, mimeType string) (registry.App, bool)
	// ShowError reports a failure. The returned bool answers "keep going
	// with this entry?" and is consulted only for unmounted mountables;
	// nil logs the error and declines.
	ShowError func(lctx *registry.LaunchContext, err error, path fspath.Path, info *fileinfo.FileInfo) bool

	// QuickExec forces DirectExec without consulting AskExecFile.
	QuickExec bool
	// MaxResolveDepth bounds re-resolution rounds; 0 means the default.
	MaxResolveDepth int

	wg sync.WaitGroup
}

// Wait blocks until every in-flight resolution round has finished. Launch
// calls themselves never block on resolution.
func (l *Launcher) Wait() { l.wg.Wait() }

func (l *Launcher) maxDepth() int {
	if l.MaxResolveDepth > 0 {
		return l.MaxResolveDepth
	}
	return defaultMaxResolveDepth
}

func (l *Launcher) askExec(info *fileinfo.FileInfo) ExecAction {
	if l.QuickExec || l.AskExecFile == nil {
		return DirectExec
	}
	return l.AskExecFile(info)
}

func (l *Launcher) chooseApp(infos []*fileinfo.FileInfo, mimeType string) (registry.App, bool) {
	if l.ChooseApp == nil {
		return nil, false
	}
	return l.ChooseApp(infos, mimeType)
}

// reportError routes err through the hook and returns its continue signal.
func (l *Launcher) reportError(lctx *registry.LaunchContext, err error, path fspath.Path, info *fileinfo.FileInfo) bool {
	if l.ShowError == nil {
		log.Error().Err(err).Str("path", path.String()).Msg("launcher: error")
		return false
	}
	return l.ShowError(lctx, err, path, info)
}

func (l *Launcher) newCommandApp(cmdline string, needsTerminal bool, workDir string) (registry.App, error) {
	if l.NewCommandApp != nil {
		return l.NewCommandApp(cmdline, needsTerminal, workDir)
	}
	return registry.NewCommandApp(cmdline, needsTerminal, workDir)
}

func infoPaths(infos []*fileinfo.FileInfo) fspath.List {
	out := make(fspath.List, 0, len(infos))
	for _, info := range infos {
		out = append(out, info.Path())
	}
	return out
}
