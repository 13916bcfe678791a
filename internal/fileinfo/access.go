package fileinfo

import "golang.org/x/sys/unix"

// IsExecutable reports whether the effective uid may execute path. This is
// the run precondition, distinct from the executable-type classification:
// a script typed executable still fails here without the x bit.
func IsExecutable(path string) bool {
	return unix.Faccessat(unix.AT_FDCWD, path, unix.X_OK, unix.AT_EACCESS) == nil
}
