package desktop

import (
	"fmt"
	"path/filepath"
	"strings"

	"gopkg.in/ini.v1"
)

const mainGroup = "Desktop Entry"

// Entry types from the desktop-entry format.
const (
	TypeApplication = "Application"
	TypeLink        = "Link"
	TypeDirectory   = "Directory"
)

// Entry is the parsed [Desktop Entry] group of a .desktop file.
type Entry struct {
	File string // file the entry was loaded from

	Type            string
	Name            string
	GenericName     string
	Exec            string
	TryExec         string
	WorkDir         string // Path key
	URL             string
	Icon            string
	Terminal        bool
	DBusActivatable bool
	NoDisplay       bool
	Hidden          bool
	MimeTypes       []string
	OnlyShowIn      []string
	NotShowIn       []string
}

// Desktop files use = only; : must stay literal (Exec values carry URLs and
// PATH-style lists). Values may contain # and ; without starting a comment.
var loadOpts = ini.LoadOptions{
	IgnoreInlineComment: true,
	KeyValueDelimiters:  "=",
}

// Load parses path as a desktop-entry file and validates the minimum the
// launch paths rely on.
func Load(path string) (*Entry, error) {
	file, err := ini.LoadSources(loadOpts, path)
	if err != nil {
		return nil, fmt.Errorf("read desktop entry: %w", err)
	}
	sec, err := file.GetSection(mainGroup)
	if err != nil {
		return nil, fmt.Errorf("%s: missing [Desktop Entry] group", filepath.Base(path))
	}
	e := &Entry{
		File:            path,
		Type:            sec.Key("Type").String(),
		Name:            sec.Key("Name").String(),
		GenericName:     sec.Key("GenericName").String(),
		Exec:            sec.Key("Exec").String(),
		TryExec:         sec.Key("TryExec").String(),
		WorkDir:         sec.Key("Path").String(),
		URL:             sec.Key("URL").String(),
		Icon:            sec.Key("Icon").String(),
		Terminal:        sec.Key("Terminal").MustBool(false),
		DBusActivatable: sec.Key("DBusActivatable").MustBool(false),
		NoDisplay:       sec.Key("NoDisplay").MustBool(false),
		Hidden:          sec.Key("Hidden").MustBool(false),
		MimeTypes:       splitList(sec.Key("MimeType").String()),
		OnlyShowIn:      splitList(sec.Key("OnlyShowIn").String()),
		NotShowIn:       splitList(sec.Key("NotShowIn").String()),
	}
	if err := e.validate(); err != nil {
		return nil, err
	}
	return e, nil
}

func (e *Entry) validate() error {
	name := filepath.Base(e.File)
	switch e.Type {
	case "":
		return fmt.Errorf("%s: missing Type key", name)
	case TypeApplication:
		if e.Exec == "" {
			return fmt.Errorf("%s: Type=Application requires Exec", name)
		}
	case TypeLink:
		if e.URL == "" {
			return fmt.Errorf("%s: Type=Link requires URL", name)
		}
	}
	return nil
}

// splitList splits a ;-separated desktop list value.
func splitList(v string) []string {
	var out []string
	for _, s := range strings.Split(v, ";") {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}

// IDFromPath derives the desktop-file ID for a path under an applications
// directory: separators below applications/ become '-'. Paths outside any
// applications dir fall back to the base name.
func IDFromPath(path string) string {
	p := filepath.ToSlash(path)
	const marker = "/applications/"
	idx := strings.LastIndex(p, marker)
	if idx < 0 {
		return filepath.Base(path)
	}
	rel := p[idx+len(marker):]
	return strings.ReplaceAll(rel, "/", "-")
}
