package fileinfo

import (
	"io"
	"os"
)

// VFS defines the filesystem operations metadata scanning needs. Tests and
// alternative providers inject their own.
type VFS interface {
	Stat(path string) (os.FileInfo, error)
	Open(path string) (io.ReadCloser, error)
}

// LocalFS implements VFS on the host OS.
type LocalFS struct{}

func (LocalFS) Stat(path string) (os.FileInfo, error)   { return os.Stat(path) }
func (LocalFS) Open(path string) (io.ReadCloser, error) { return os.Open(path) }
