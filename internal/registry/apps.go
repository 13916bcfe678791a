package registry

import (
	"errors"
	"fmt"
	"os"
	"os/exec"

	"github.com/rs/zerolog/log"

	"flaunch/internal/desktop"
)

// DesktopApp launches a parsed desktop entry.
type DesktopApp struct {
	entry *desktop.Entry
}

// NewDesktopApp wraps an already-loaded entry.
func NewDesktopApp(e *desktop.Entry) *DesktopApp { return &DesktopApp{entry: e} }

// ID returns the entry's desktop-file ID.
func (a *DesktopApp) ID() string { return desktop.IDFromPath(a.entry.File) }

// Launch starts the application with the given URIs. DBus-activatable
// entries go through org.freedesktop.Application first and fall back to a
// process spawn; everything else expands the Exec line and spawns.
func (a *DesktopApp) Launch(lctx *LaunchContext, uris []string) error {
	if a.entry.TryExec != "" {
		if _, err := exec.LookPath(a.entry.TryExec); err != nil {
			return fmt.Errorf("TryExec %q: %w", a.entry.TryExec, err)
		}
	}
	if a.entry.DBusActivatable {
		if err := activate(a.entry, uris); err == nil {
			log.Debug().Str("id", a.ID()).Msg("registry: dbus activation")
			return nil
		} else {
			log.Debug().Str("id", a.ID()).Err(err).Msg("registry: dbus activation failed; spawning")
		}
	}
	argv, err := a.launchArgv(uris)
	if err != nil {
		return err
	}
	return spawn(lctx, argv, a.entry.WorkDir)
}

func (a *DesktopApp) launchArgv(uris []string) ([]string, error) {
	argv, err := a.entry.ExpandExec(uris)
	if err != nil {
		return nil, err
	}
	if a.entry.Terminal {
		argv = wrapTerminal(argv)
	}
	return argv, nil
}

// CommandApp launches a fixed command line; launch URIs are appended as
// arguments (file URIs as local paths, the rest verbatim).
type CommandApp struct {
	argv     []string
	terminal bool
	workDir  string
}

// NewCommandApp builds a descriptor from a shell-style command line.
// cmdline must parse to at least one word.
func NewCommandApp(cmdline string, needsTerminal bool, workDir string) (App, error) {
	argv, err := desktop.SplitWords(cmdline)
	if err != nil {
		return nil, fmt.Errorf("parse command line: %w", err)
	}
	if len(argv) == 0 {
		return nil, errors.New("empty command line")
	}
	return &CommandApp{argv: argv, terminal: needsTerminal, workDir: workDir}, nil
}

func (a *CommandApp) ID() string { return a.argv[0] }

func (a *CommandApp) Launch(lctx *LaunchContext, uris []string) error {
	return spawn(lctx, a.launchArgv(uris), a.workDir)
}

func (a *CommandApp) launchArgv(uris []string) []string {
	argv := append([]string(nil), a.argv...)
	for _, u := range uris {
		argv = append(argv, desktop.LocalArg(u))
	}
	if a.terminal {
		argv = wrapTerminal(argv)
	}
	return argv
}

// spawn starts argv detached from the caller: the child is never waited on
// for its result, only reaped.
func spawn(lctx *LaunchContext, argv []string, dir string) error {
	if len(argv) == 0 {
		return errors.New("empty argv")
	}
	bin, err := exec.LookPath(argv[0])
	if err != nil {
		return err
	}
	cmd := exec.Command(bin, argv[1:]...)
	cmd.Dir = dir
	if lctx != nil {
		if len(lctx.Env) > 0 {
			cmd.Env = append(os.Environ(), lctx.Env...)
		}
		cmd.Stdout = lctx.Stdout
		cmd.Stderr = lctx.Stderr
	}
	if err := cmd.Start(); err != nil {
		return err
	}
	log.Debug().Str("bin", bin).Int("args", len(argv)-1).Str("dir", dir).Msg("registry: spawned")
	go func() { _ = cmd.Wait() }()
	return nil
}
