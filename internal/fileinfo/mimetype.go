package fileinfo

import (
	"bufio"
	"bytes"
	"io"
	"mime"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/adrg/xdg"
	"github.com/bmatcuk/doublestar/v4"
	"github.com/h2non/filetype"
)

// MIME names the classifier keys on.
const (
	MimeDirectory    = "inode/directory"
	MimeDesktopEntry = "application/x-desktop"
	MimeText         = "text/plain"
	MimeOctetStream  = "application/octet-stream"
)

const sniffLen = 262 // covers every magic number filetype knows

type glob struct {
	weight        int
	mime          string
	pattern       string
	caseSensitive bool
}

// builtinGlobs keep classification working when no shared-mime-info
// database is installed.
var builtinGlobs = []glob{
	{weight: 50, mime: MimeDesktopEntry, pattern: "*.desktop"},
	{weight: 50, mime: "application/x-shellscript", pattern: "*.sh"},
}

// Detector resolves MIME type names: shared-mime-info glob patterns first,
// then content sniffing, then the extension table, then a text heuristic.
type Detector struct {
	fs    VFS
	globs []glob
}

// NewDetector loads globs2 pattern files from the XDG data dirs. A missing
// database is not an error; the built-in fallbacks still apply.
func NewDetector(fs VFS) *Detector {
	d := &Detector{fs: fs, globs: append([]glob(nil), builtinGlobs...)}
	for _, dir := range append([]string{xdg.DataHome}, xdg.DataDirs...) {
		d.loadGlobs(filepath.Join(dir, "mime", "globs2"))
	}
	return d
}

// loadGlobs parses one globs2 file: weight:mimetype:pattern[:flags] rows.
func (d *Detector) loadGlobs(path string) {
	f, err := os.Open(path)
	if err != nil {
		return
	}
	defer f.Close()
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		fields := strings.Split(line, ":")
		if len(fields) < 3 || fields[2] == "" {
			continue
		}
		weight, err := strconv.Atoi(fields[0])
		if err != nil {
			continue
		}
		g := glob{weight: weight, mime: fields[1], pattern: fields[2]}
		if len(fields) > 3 && strings.Contains(fields[3], "cs") {
			g.caseSensitive = true
		}
		d.globs = append(d.globs, g)
	}
}

// TypeByName matches the base name against the glob table. Highest weight
// wins; the longer pattern breaks ties. Empty when nothing matches.
func (d *Detector) TypeByName(name string) string {
	base := filepath.Base(name)
	lower := strings.ToLower(base)
	var (
		best       string
		bestWeight = -1
		bestLen    = -1
	)
	for _, g := range d.globs {
		n := lower
		if g.caseSensitive {
			n = base
		}
		if ok, err := doublestar.Match(g.pattern, n); err != nil || !ok {
			continue
		}
		if g.weight > bestWeight || (g.weight == bestWeight && len(g.pattern) > bestLen) {
			best = g.mime
			bestWeight = g.weight
			bestLen = len(g.pattern)
		}
	}
	return best
}

// DetectType resolves the MIME type for a local path.
func (d *Detector) DetectType(path string, isDir bool) string {
	if isDir {
		return MimeDirectory
	}
	if mt := d.TypeByName(path); mt != "" {
		return mt
	}
	head, readErr := d.readHead(path)
	if readErr == nil {
		if kind, err := filetype.Match(head); err == nil && kind != filetype.Unknown {
			return kind.MIME.Value
		}
	}
	if mt := mime.TypeByExtension(filepath.Ext(path)); mt != "" {
		if i := strings.IndexByte(mt, ';'); i >= 0 {
			mt = strings.TrimSpace(mt[:i])
		}
		return mt
	}
	if readErr == nil && looksText(head) {
		return MimeText
	}
	return MimeOctetStream
}

func (d *Detector) readHead(path string) ([]byte, error) {
	f, err := d.fs.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	head := make([]byte, sniffLen)
	n, err := io.ReadFull(f, head)
	if err != nil && err != io.ErrUnexpectedEOF && err != io.EOF {
		return nil, err
	}
	return head[:n], nil
}

// looksText treats NUL-free content (and empty files) as text.
func looksText(head []byte) bool {
	return bytes.IndexByte(head, 0) < 0
}

// ExecutableType applies the classification rule for content meant to run:
// binary executable types always count; text types (scripts included) count
// only when the mode carries an execute bit.
func ExecutableType(mimeType string, mode os.FileMode) bool {
	switch mimeType {
	case "application/x-executable", "application/x-pie-executable",
		"application/x-sharedlib", "application/x-ms-dos-executable",
		"application/vnd.microsoft.portable-executable":
		return true
	}
	if mode&0o111 == 0 {
		return false
	}
	if strings.HasPrefix(mimeType, "text/") {
		return true
	}
	switch mimeType {
	// x-desktop descends from text/plain in the shared-mime database
	case MimeDesktopEntry:
		return true
	case "application/x-shellscript", "application/x-perl",
		"application/x-python", "application/x-ruby", "application/x-php",
		"application/javascript":
		return true
	}
	return false
}
