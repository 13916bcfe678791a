package fileinfo

import (
	"time"

	"flaunch/internal/fspath"
)

// Attr carries the raw attributes a scan resolved for one path. New freezes
// it into a FileInfo.
type Attr struct {
	Name     string
	Size     int64
	Modified time.Time
	MimeType string
	Target   string // shortcut destination or resolved mount path

	Dir            bool
	Mountable      bool
	DesktopEntry   bool
	ExecutableType bool
	Shortcut       bool
}

// FileInfo is a read-only metadata snapshot for one path. It reflects the
// moment it was scanned: a mountable may carry an empty target until the
// share is mounted, after which a fresh scan resolves it.
type FileInfo struct {
	path fspath.Path
	attr Attr
}

// New freezes attr into a snapshot for path.
func New(path fspath.Path, attr Attr) *FileInfo {
	return &FileInfo{path: path, attr: attr}
}

func (fi *FileInfo) Path() fspath.Path   { return fi.path }
func (fi *FileInfo) Name() string        { return fi.attr.Name }
func (fi *FileInfo) Size() int64         { return fi.attr.Size }
func (fi *FileInfo) Modified() time.Time { return fi.attr.Modified }
func (fi *FileInfo) MimeType() string    { return fi.attr.MimeType }
func (fi *FileInfo) Target() string      { return fi.attr.Target }

func (fi *FileInfo) IsDir() bool            { return fi.attr.Dir }
func (fi *FileInfo) IsMountable() bool      { return fi.attr.Mountable }
func (fi *FileInfo) IsDesktopEntry() bool   { return fi.attr.DesktopEntry }
func (fi *FileInfo) IsExecutableType() bool { return fi.attr.ExecutableType }
func (fi *FileInfo) IsShortcut() bool       { return fi.attr.Shortcut }
func (fi *FileInfo) IsNative() bool         { return fi.path.IsNative() }
