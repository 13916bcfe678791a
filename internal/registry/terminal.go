package registry

import (
	"os"
	"os/exec"

	"github.com/rs/zerolog/log"

	"flaunch/internal/desktop"
)

// terminal emulator prefix installed from configuration, e.g. "alacritty -e"
var termOverride string

// SetTerminalOverride installs the command-line prefix used to run
// terminal-bound applications. Empty restores the built-in candidate chain.
func SetTerminalOverride(cmdline string) { termOverride = cmdline }

// candidates tried in order when no override applies; flag precedes the argv
var termCandidates = []struct{ bin, flag string }{
	{"x-terminal-emulator", "-e"},
	{"gnome-terminal", "--"},
	{"konsole", "-e"},
	{"xfce4-terminal", "-x"},
	{"xterm", "-e"},
}

// wrapTerminal prefixes argv with a terminal emulator invocation. When no
// emulator can be found the argv is returned unchanged; a bare launch beats
// dropping the entry.
func wrapTerminal(argv []string) []string {
	if termOverride != "" {
		if prefix, err := desktop.SplitWords(termOverride); err == nil && len(prefix) > 0 {
			return append(prefix, argv...)
		}
		log.Debug().Str("terminal", termOverride).Msg("registry: unparseable terminal override ignored")
	}
	if t := os.Getenv("TERMINAL"); t != "" {
		if _, err := exec.LookPath(t); err == nil {
			return append([]string{t, "-e"}, argv...)
		}
	}
	for _, c := range termCandidates {
		if _, err := exec.LookPath(c.bin); err == nil {
			return append([]string{c.bin, c.flag}, argv...)
		}
	}
	log.Debug().Msg("registry: no terminal emulator found; running bare")
	return argv
}
