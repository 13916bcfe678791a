package registry

import (
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/adrg/xdg"
	"github.com/rs/zerolog/log"
	"gopkg.in/ini.v1"

	"flaunch/internal/desktop"
)

// App is a resolved application able to accept a batch of URIs.
type App interface {
	ID() string
	Launch(lctx *LaunchContext, uris []string) error
}

// LaunchContext carries the environment handed to spawned applications.
// The dispatch engine passes it through without inspecting it; nil is valid.
type LaunchContext struct {
	Env    []string // KEY=VALUE pairs appended to the inherited environment
	Stdout io.Writer
	Stderr io.Writer
}

// listOpts parses mimeapps.list files. Values carry ';' separators and keys
// carry '/', so inline comments and ':' delimiting must stay off.
var listOpts = ini.LoadOptions{
	IgnoreInlineComment: true,
	KeyValueDelimiters:  "=",
}

// Registry resolves applications from the XDG data directories.
type Registry struct {
	// ConfigDirs hold mimeapps.list files, highest priority first.
	ConfigDirs []string
	// DataDirs hold applications/ subdirectories, highest priority first.
	DataDirs []string
	// Overrides maps MIME type -> desktop-file ID, consulted before the
	// mimeapps chain. Set before first use.
	Overrides map[string]string

	mu    sync.Mutex
	cache map[string]App
}

// New returns a Registry over the standard XDG search roots.
func New() *Registry {
	return &Registry{
		ConfigDirs: append([]string{xdg.ConfigHome}, xdg.ConfigDirs...),
		DataDirs:   append([]string{xdg.DataHome}, xdg.DataDirs...),
		cache:      map[string]App{},
	}
}

// DefaultForType resolves the default application for a MIME type: the
// configured overrides first, then [Default Applications] across the whole
// mimeapps.list chain, then [Added Associations]. Dangling IDs are skipped.
func (r *Registry) DefaultForType(mimeType string) (App, bool) {
	if id, ok := r.Overrides[mimeType]; ok {
		if app, found := r.ByID(id); found {
			return app, true
		}
		log.Debug().Str("mime", mimeType).Str("id", id).Msg("registry: configured association does not resolve")
	}

	r.mu.Lock()
	if app, ok := r.cache[mimeType]; ok {
		r.mu.Unlock()
		return app, true
	}
	r.mu.Unlock()

	lists := r.loadLists()
	for _, section := range []string{"Default Applications", "Added Associations"} {
		for _, f := range lists {
			sec, err := f.GetSection(section)
			if err != nil || !sec.HasKey(mimeType) {
				continue
			}
			for _, id := range splitIDs(sec.Key(mimeType).String()) {
				app, found := r.ByID(id)
				if !found {
					continue
				}
				r.mu.Lock()
				if r.cache == nil {
					r.cache = map[string]App{}
				}
				r.cache[mimeType] = app
				r.mu.Unlock()
				return app, true
			}
		}
	}
	return nil, false
}

// DefaultForScheme resolves the handler registered for a URI scheme.
func (r *Registry) DefaultForScheme(scheme string) (App, bool) {
	return r.DefaultForType("x-scheme-handler/" + scheme)
}

// ByID resolves an application descriptor. Absolute identifiers load that
// desktop file directly; bare identifiers search the applications
// directories, including the '-' to subdirectory expansion desktop-file IDs
// encode. Hidden entries resolve as absent.
func (r *Registry) ByID(nameOrPath string) (App, bool) {
	path := nameOrPath
	if !filepath.IsAbs(path) {
		p, ok := r.findDesktopFile(nameOrPath)
		if !ok {
			return nil, false
		}
		path = p
	}
	e, err := desktop.Load(path)
	if err != nil {
		log.Debug().Str("id", nameOrPath).Err(err).Msg("registry: desktop entry rejected")
		return nil, false
	}
	if e.Hidden {
		// Hidden means "treat as deleted" in the desktop-entry format
		return nil, false
	}
	return &DesktopApp{entry: e}, true
}

func (r *Registry) findDesktopFile(id string) (string, bool) {
	if !strings.HasSuffix(id, ".desktop") {
		id += ".desktop"
	}
	for _, root := range r.DataDirs {
		apps := filepath.Join(root, "applications")
		if cand := filepath.Join(apps, id); fileExists(cand) {
			return cand, true
		}
		// IDs flatten subdirectories into '-'; try each split point
		for i := 0; i < len(id); i++ {
			if id[i] != '-' {
				continue
			}
			if cand := filepath.Join(apps, id[:i], id[i+1:]); fileExists(cand) {
				return cand, true
			}
		}
	}
	return "", false
}

func (r *Registry) loadLists() []*ini.File {
	paths := make([]string, 0, len(r.ConfigDirs)+len(r.DataDirs))
	for _, root := range r.ConfigDirs {
		paths = append(paths, filepath.Join(root, "mimeapps.list"))
	}
	for _, root := range r.DataDirs {
		paths = append(paths, filepath.Join(root, "applications", "mimeapps.list"))
	}
	out := make([]*ini.File, 0, len(paths))
	for _, p := range paths {
		f, err := ini.LoadSources(listOpts, p)
		if err != nil {
			continue
		}
		out = append(out, f)
	}
	return out
}

func splitIDs(v string) []string {
	var out []string
	for _, p := range strings.Split(v, ";") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func fileExists(path string) bool {
	fi, err := os.Stat(path)
	return err == nil && fi.Mode().IsRegular()
}
