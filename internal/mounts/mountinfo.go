package mounts

import (
	"bufio"
	"io"
	"os"
	"path/filepath"
	"strings"
)

const defaultMountInfo = "/proc/self/mountinfo"

// Entry is one row of the kernel mount table.
type Entry struct {
	FSType     string
	Source     string
	MountPoint string
	SuperOpts  string
	Opts       string
}

// Table is a point-in-time snapshot of the mount table.
type Table struct {
	entries []Entry
}

// Load reads /proc/self/mountinfo.
func Load() (*Table, error) {
	return LoadFrom(defaultMountInfo)
}

// LoadFrom reads a mountinfo-format file. Tests point it at a fixture.
func LoadFrom(path string) (*Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return Parse(f)
}

// Parse reads mountinfo rows from r. Unparseable lines are skipped.
func Parse(r io.Reader) (*Table, error) {
	var entries []Entry
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		if e, ok := parseLine(scanner.Text()); ok {
			entries = append(entries, e)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return &Table{entries: entries}, nil
}

// Entries returns the parsed rows in file order.
func (t *Table) Entries() []Entry {
	return t.entries
}

// TargetFor resolves a remote share URI (smb://host/share/..., nfs://host/export/...,
// //host/share shorthand) or a /dev source to its local mount point. Path
// segments below the share root carry over onto the returned path. The bool
// reports whether the source is currently mounted.
func (t *Table) TargetFor(source string) (string, bool) {
	if strings.HasPrefix(source, "/dev/") {
		for _, e := range t.entries {
			if e.Source == source {
				return e.MountPoint, true
			}
		}
		return "", false
	}
	scheme, host, segs, ok := splitShareURI(source)
	if !ok {
		return "", false
	}
	tokens := schemeFSTokens[scheme]
	if len(tokens) == 0 {
		return "", false
	}
	for _, e := range t.entries {
		if !fsTypeServes(e.FSType, tokens) {
			continue
		}
		srcHost, root, ok := remoteSource(e)
		if !ok || !strings.EqualFold(srcHost, host) {
			continue
		}
		rest, ok := underRoot(segs, root)
		if !ok {
			continue
		}
		if len(rest) == 0 {
			return e.MountPoint, true
		}
		return filepath.Join(append([]string{e.MountPoint}, rest...)...), true
	}
	return "", false
}

// schemeFSTokens maps share URI schemes to fstype substrings that serve them.
var schemeFSTokens = map[string][]string{
	"smb":  {"cifs", "smb"},
	"cifs": {"cifs", "smb"},
	"nfs":  {"nfs"},
	"sftp": {"sshfs"},
	"ssh":  {"sshfs"},
	"ftp":  {"curlftpfs"},
	"dav":  {"davfs"},
	"davs": {"davfs"},
}

// RemoteScheme reports whether scheme names a mountable remote share.
func RemoteScheme(scheme string) bool {
	_, ok := schemeFSTokens[strings.ToLower(scheme)]
	return ok
}

func fsTypeServes(fsType string, tokens []string) bool {
	fs := strings.ToLower(fsType)
	for _, tok := range tokens {
		if strings.Contains(fs, tok) {
			return true
		}
	}
	return false
}

// remoteSource extracts the remote host and share-root segments from a mount
// entry's source field. cifs mounts without a //host/share source fall back
// to the unc= option.
func remoteSource(e Entry) (host string, root []string, ok bool) {
	fs := strings.ToLower(e.FSType)
	switch {
	case strings.Contains(fs, "cifs") || strings.Contains(fs, "smb"):
		if h, r, ok := splitSlashSource(e.Source); ok {
			return h, r, true
		}
		unc := optionValue(e.SuperOpts, "unc")
		if unc == "" {
			unc = optionValue(e.Opts, "unc")
		}
		return splitUNC(unc)
	case strings.Contains(fs, "nfs"):
		return splitColonSource(e.Source)
	case strings.Contains(fs, "sshfs"):
		return splitColonSource(stripUser(e.Source))
	case strings.Contains(fs, "curlftpfs"):
		return splitURLSource(strings.TrimPrefix(e.Source, "curlftpfs#"))
	case strings.Contains(fs, "davfs"):
		return splitURLSource(e.Source)
	}
	return "", nil, false
}

// splitShareURI parses a remote share URI into scheme, host and path
// segments. //host/share shorthand counts as smb. Credentials in the
// authority are dropped.
func splitShareURI(uri string) (scheme, host string, segs []string, ok bool) {
	s := strings.TrimSpace(uri)
	if strings.HasPrefix(s, "//") && !strings.Contains(s, "://") {
		s = "smb:" + s
	}
	scheme, rest, found := strings.Cut(s, "://")
	if !found || scheme == "" {
		return "", "", nil, false
	}
	scheme = strings.ToLower(scheme)
	if at := strings.Index(rest, "@"); at >= 0 {
		if slash := strings.Index(rest, "/"); slash < 0 || at < slash {
			rest = rest[at+1:]
		}
	}
	parts := splitSegments(rest)
	if len(parts) == 0 {
		return "", "", nil, false
	}
	return scheme, hostOnly(parts[0]), parts[1:], true
}

// splitSlashSource parses //host/share[/seg...].
func splitSlashSource(src string) (string, []string, bool) {
	if !strings.HasPrefix(src, "//") {
		return "", nil, false
	}
	parts := splitSegments(strings.TrimPrefix(src, "//"))
	if len(parts) < 2 {
		return "", nil, false
	}
	return parts[0], parts[1:], true
}

// splitColonSource parses host:/export[/seg...] (nfs, sshfs).
func splitColonSource(src string) (string, []string, bool) {
	host, rest, ok := strings.Cut(src, ":")
	if !ok || host == "" {
		return "", nil, false
	}
	return host, splitSegments(rest), true
}

// splitURLSource parses scheme://host[/seg...] (curlftpfs, davfs).
func splitURLSource(src string) (string, []string, bool) {
	_, rest, ok := strings.Cut(src, "://")
	if !ok {
		return "", nil, false
	}
	parts := splitSegments(rest)
	if len(parts) == 0 {
		return "", nil, false
	}
	return hostOnly(parts[0]), parts[1:], true
}

// splitUNC parses \\host\share[\seg...] from a unc= option value.
func splitUNC(unc string) (string, []string, bool) {
	if unc == "" {
		return "", nil, false
	}
	var parts []string
	for _, p := range strings.Split(strings.TrimPrefix(unc, `\\`), `\`) {
		if p != "" {
			parts = append(parts, p)
		}
	}
	if len(parts) < 2 {
		return "", nil, false
	}
	return parts[0], parts[1:], true
}

// optionValue finds key=value in a comma-separated option string.
func optionValue(opts, key string) string {
	for _, part := range strings.Split(opts, ",") {
		k, v, ok := strings.Cut(strings.TrimSpace(part), "=")
		if ok && strings.EqualFold(k, key) {
			return v
		}
	}
	return ""
}

func stripUser(src string) string {
	if at := strings.Index(src, "@"); at >= 0 {
		return src[at+1:]
	}
	return src
}

func hostOnly(authority string) string {
	if host, _, ok := strings.Cut(authority, ":"); ok {
		return host
	}
	return authority
}

func splitSegments(p string) []string {
	var segs []string
	for _, s := range strings.Split(p, "/") {
		if s != "" {
			segs = append(segs, s)
		}
	}
	return segs
}

// underRoot reports whether segs lies under root and returns the remainder.
func underRoot(segs, root []string) ([]string, bool) {
	if len(segs) < len(root) {
		return nil, false
	}
	for i := range root {
		if !strings.EqualFold(segs[i], root[i]) {
			return nil, false
		}
	}
	return segs[len(root):], true
}

// parseLine extracts the fields this package needs from one mountinfo row.
// Layout: id parent major:minor root mountpoint opts [optional...] - fstype source superopts
func parseLine(line string) (Entry, bool) {
	left, right, found := strings.Cut(line, " - ")
	if !found {
		return Entry{}, false
	}
	lf := strings.Fields(left)
	rf := strings.Fields(right)
	// optional fields may be absent; the left side still carries 6+ tokens
	if len(lf) < 6 || len(rf) < 3 {
		return Entry{}, false
	}
	return Entry{
		MountPoint: decodeOctal(lf[4]),
		Opts:       strings.Join(lf[5:], " "),
		FSType:     rf[0],
		Source:     decodeOctal(rf[1]),
		SuperOpts:  strings.Join(rf[2:], " "),
	}, true
}

// decodeOctal rewrites mountinfo \ooo escapes (\040 space, \011 tab, \134 backslash).
func decodeOctal(s string) string {
	if !strings.Contains(s, `\`) {
		return s
	}
	var b strings.Builder
	for i := 0; i < len(s); i++ {
		if s[i] == '\\' && i+3 < len(s) && isOctal(s[i+1]) && isOctal(s[i+2]) && isOctal(s[i+3]) {
			b.WriteByte((s[i+1]-'0')<<6 | (s[i+2]-'0')<<3 | (s[i+3] - '0'))
			i += 3
			continue
		}
		b.WriteByte(s[i])
	}
	return b.String()
}

func isOctal(c byte) bool { return c >= '0' && c <= '7' }
