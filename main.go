package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"flaunch/internal/config"
	"flaunch/internal/errors"
	"flaunch/internal/fileinfo"
	"flaunch/internal/fspath"
	"flaunch/internal/jobs"
	"flaunch/internal/launcher"
	"flaunch/internal/mounts"
	"flaunch/internal/registry"
)

var version = "dev"

// openerCandidates are tried in order when nothing else can open a type.
var openerCandidates = [][]string{
	{"xdg-open"},
	{"gio", "open"},
	{"gvfs-open"},
	{"gnome-open"},
	{"kde-open"},
}

func setupLogging(debug bool) {
	zerolog.SetGlobalLevel(zerolog.InfoLevel)
	if debug {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	}
	consoleWriter := zerolog.ConsoleWriter{
		Out:        os.Stderr,
		TimeFormat: time.Kitchen,
	}
	log.Logger = zerolog.New(consoleWriter).With().Timestamp().Logger()
}

func execPolicy(name string) (launcher.ExecAction, error) {
	switch name {
	case "run":
		return launcher.DirectExec, nil
	case "term":
		return launcher.ExecInTerminal, nil
	case "open":
		return launcher.OpenWithDefaultApp, nil
	case "cancel":
		return launcher.CancelExec, nil
	}
	return 0, fmt.Errorf("unknown exec policy %q", name)
}

// openerApp runs the system opener once per URI; xdg-open and friends take
// a single argument.
type openerApp struct {
	app registry.App
}

func (o openerApp) ID() string { return o.app.ID() }

func (o openerApp) Launch(lctx *registry.LaunchContext, uris []string) error {
	var firstErr error
	for _, uri := range uris {
		if err := o.app.Launch(lctx, []string{uri}); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}

// systemOpener wraps the first opener found on PATH as an application.
func systemOpener() (registry.App, bool) {
	for _, cand := range openerCandidates {
		if _, err := exec.LookPath(cand[0]); err != nil {
			continue
		}
		app, err := registry.NewCommandApp(strings.Join(cand, " "), false, "")
		if err != nil {
			continue
		}
		return openerApp{app: app}, true
	}
	return nil, false
}

func main() {
	// Parse command line flags
	var (
		configPath  string
		debugMode   bool
		quickExec   bool
		terminal    string
		execMode    string
		waitMount   time.Duration
		showVersion bool
	)
	flag.StringVar(&configPath, "c", "", "Config file path")
	flag.BoolVar(&debugMode, "d", false, "Enable debug logging")
	flag.BoolVar(&quickExec, "q", false, "Run executable files without asking")
	flag.StringVar(&terminal, "t", "", "Terminal emulator command line")
	flag.StringVar(&execMode, "e", "run", "Executable policy: run, term, open or cancel")
	flag.DurationVar(&waitMount, "wait-mount", 0, "How long to wait for unmounted shares")
	flag.BoolVar(&showVersion, "version", false, "Print version and exit")
	flag.Parse()

	if showVersion {
		fmt.Println("flaunch", version)
		return
	}
	if flag.NArg() == 0 {
		fmt.Fprintln(os.Stderr, "usage: flaunch [flags] path...")
		flag.PrintDefaults()
		os.Exit(2)
	}

	// Load configuration; flags win over file values
	configManager := config.NewManager()
	if configPath != "" {
		configManager = config.NewManagerAt(configPath)
	}
	cfg, err := configManager.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "flaunch: %v\n", err)
		os.Exit(1)
	}
	if quickExec {
		cfg.QuickExec = true
	}
	if terminal != "" {
		cfg.Terminal = terminal
	}
	setupLogging(debugMode || cfg.DebugLogging)

	action, err := execPolicy(execMode)
	if err != nil {
		fmt.Fprintf(os.Stderr, "flaunch: %v\n", err)
		os.Exit(2)
	}

	paths := make(fspath.List, 0, flag.NArg())
	for _, arg := range flag.Args() {
		p := fspath.FromString(arg)
		if p.IsNative() {
			// launch from anywhere: relative arguments become absolute
			if abs, err := filepath.Abs(p.LocalPath()); err == nil {
				p = fspath.FromLocal(abs)
			}
		}
		if !p.IsValid() {
			fmt.Fprintf(os.Stderr, "flaunch: invalid path %q\n", arg)
			os.Exit(2)
		}
		paths = append(paths, p)
	}

	if cfg.Terminal != "" {
		registry.SetTerminalOverride(cfg.Terminal)
	}

	scanner := fileinfo.NewScanner()
	manager := jobs.NewManager(scanner.Scan)
	defer manager.Close()

	reg := registry.New()
	reg.Overrides = cfg.Associations

	mountWatcher := mounts.NewWatcher(0)

	l := &launcher.Launcher{
		Registry: reg,
		Query: func(paths fspath.List) launcher.InfoJob {
			return manager.EnqueueQuery(paths)
		},
		QuickExec:       cfg.QuickExec,
		MaxResolveDepth: cfg.MaxResolveDepth,
		AskExecFile: func(*fileinfo.FileInfo) launcher.ExecAction {
			return action
		},
		ChooseApp: func(_ []*fileinfo.FileInfo, mimeType string) (registry.App, bool) {
			app, ok := systemOpener()
			if ok {
				log.Debug().Str("mime", mimeType).Str("opener", app.ID()).Msg("main: falling back to system opener")
			}
			return app, ok
		},
		ShowError: func(_ *registry.LaunchContext, err error, path fspath.Path, _ *fileinfo.FileInfo) bool {
			if errors.CodeOf(err) == errors.CodeNotMounted && waitMount > 0 {
				log.Info().Str("path", path.String()).Dur("timeout", waitMount).Msg("main: waiting for share to be mounted")
				ctx, cancel := context.WithTimeout(context.Background(), waitMount)
				defer cancel()
				if _, werr := mountWatcher.Wait(ctx, path.URI()); werr == nil {
					return true
				}
			}
			log.Error().Err(err).Str("path", path.String()).Msg("main: launch failed")
			return false
		},
	}

	l.LaunchPaths(paths, nil)
	l.Wait()
}
