package fileinfo

import (
	"context"
	"os"
	"path"
	"path/filepath"

	"golang.org/x/sync/errgroup"

	"flaunch/internal/desktop"
	"flaunch/internal/errors"
	"flaunch/internal/fspath"
	"flaunch/internal/mounts"
)

// QueryFunc is the metadata-fetch contract consumers depend on.
type QueryFunc func(ctx context.Context, paths fspath.List) ([]*FileInfo, error)

const scanParallelism = 8

// Scanner resolves FileInfo snapshots for paths. Use NewScanner; the zero
// value has no filesystem.
type Scanner struct {
	fs       VFS
	detector *Detector
	mounts   func() (*mounts.Table, error)
}

// NewScanner builds the default scanner over the local filesystem.
func NewScanner() *Scanner {
	lfs := LocalFS{}
	return &Scanner{fs: lfs, detector: NewDetector(lfs), mounts: mounts.Load}
}

// Scan resolves metadata for each path with bounded parallelism, preserving
// input order. Entries that cannot be resolved are absent from the result.
func (s *Scanner) Scan(ctx context.Context, paths fspath.List) ([]*FileInfo, error) {
	results := make([]*FileInfo, len(paths))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(scanParallelism)
	for i, p := range paths {
		i, p := i, p
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			results[i] = s.scanOne(p)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		var first string
		if len(paths) > 0 {
			first = paths[0].String()
		}
		return nil, errors.NewScanError("scan_paths", first, err)
	}
	out := make([]*FileInfo, 0, len(paths))
	for _, fi := range results {
		if fi != nil {
			out = append(out, fi)
		}
	}
	return out, nil
}

func (s *Scanner) scanOne(p fspath.Path) *FileInfo {
	if !p.IsValid() {
		return nil
	}
	if p.IsNative() {
		return s.scanLocal(p)
	}
	if mounts.RemoteScheme(p.Scheme()) {
		return s.scanShare(p)
	}
	// no metadata source for other URI schemes
	return nil
}

func (s *Scanner) scanLocal(p fspath.Path) *FileInfo {
	local := p.LocalPath()
	st, err := s.fs.Stat(local)
	if err != nil {
		return nil
	}
	attr := Attr{
		Name:     filepath.Base(local),
		Size:     st.Size(),
		Modified: st.ModTime(),
	}
	if st.IsDir() {
		attr.Dir = true
		attr.MimeType = MimeDirectory
		return New(p, attr)
	}
	if !st.Mode().IsRegular() {
		attr.MimeType = specialMime(st.Mode())
		return New(p, attr)
	}
	attr.MimeType = s.detector.DetectType(local, false)
	if attr.MimeType == MimeDesktopEntry {
		attr.DesktopEntry = true
		if e, err := desktop.Load(local); err == nil && e.Type == desktop.TypeLink {
			attr.Shortcut = true
			attr.Target = e.URL
		}
	}
	attr.ExecutableType = ExecutableType(attr.MimeType, st.Mode())
	return New(p, attr)
}

// scanShare produces the mountable view of a remote share URI. Target stays
// empty until the share is mounted; a later scan of the same path resolves it.
func (s *Scanner) scanShare(p fspath.Path) *FileInfo {
	uri := p.URI()
	attr := Attr{
		Name:      path.Base(uri),
		Mountable: true,
	}
	if tbl, err := s.mounts(); err == nil {
		if mp, ok := tbl.TargetFor(uri); ok {
			attr.Target = mp
		}
	}
	return New(p, attr)
}

// specialMime names non-regular inode types the way shared-mime-info does.
func specialMime(mode os.FileMode) string {
	switch {
	case mode&os.ModeNamedPipe != 0:
		return "inode/fifo"
	case mode&os.ModeSocket != 0:
		return "inode/socket"
	case mode&os.ModeCharDevice != 0:
		return "inode/chardevice"
	case mode&os.ModeDevice != 0:
		return "inode/blockdevice"
	}
	return MimeOctetStream
}
