// Package fspath provides immutable path values that can carry either a
// local filesystem path or a URI, plus ordered lists of them for batch
// launches.
package fspath

import (
	"net/url"
	"path/filepath"
	"strings"
)

// Path identifies one file-system entry. It holds either a local path or a
// URI and never changes after construction. The zero value is invalid.
type Path struct {
	raw   string
	isURI bool
}

// FromLocal builds a Path from a local filesystem path.
func FromLocal(p string) Path {
	if p == "" {
		return Path{}
	}
	return Path{raw: filepath.Clean(p)}
}

// FromURI builds a Path from a URI string. Strings without a scheme are
// rejected and yield the invalid path.
func FromURI(u string) Path {
	if SchemeOf(u) == "" {
		return Path{}
	}
	return Path{raw: u, isURI: true}
}

// FromString builds a Path with command-line-argument semantics: strings
// carrying a URI scheme parse as URIs, everything else as a local path.
func FromString(s string) Path {
	if SchemeOf(s) != "" {
		return FromURI(s)
	}
	return FromLocal(s)
}

// IsValid reports whether the path holds anything at all.
func (p Path) IsValid() bool { return p.raw != "" }

// IsNative reports whether the path refers to a plain local file, either
// directly or through the file scheme.
func (p Path) IsNative() bool {
	return p.IsValid() && (!p.isURI || p.HasURIScheme("file"))
}

// LocalPath returns the local filesystem path, decoding file URIs. It is
// empty for invalid paths and for URIs of any other scheme.
func (p Path) LocalPath() string {
	if !p.IsValid() {
		return ""
	}
	if !p.isURI {
		return p.raw
	}
	if !p.HasURIScheme("file") {
		return ""
	}
	u, err := url.Parse(p.raw)
	if err != nil || u.Path == "" {
		return ""
	}
	return filepath.Clean(u.Path)
}

// URI returns the URI form. Local paths render as percent-encoded file URIs;
// relative local paths are resolved against the working directory first.
func (p Path) URI() string {
	if !p.IsValid() {
		return ""
	}
	if p.isURI {
		return p.raw
	}
	local := p.raw
	if !filepath.IsAbs(local) {
		if abs, err := filepath.Abs(local); err == nil {
			local = abs
		}
	}
	u := url.URL{Scheme: "file", Path: local}
	return u.String()
}

// Scheme returns the lowercased URI scheme, or "" for local paths.
func (p Path) Scheme() string {
	if !p.isURI {
		return ""
	}
	return SchemeOf(p.raw)
}

// HasURIScheme reports whether the path is a URI of the given scheme.
func (p Path) HasURIScheme(scheme string) bool {
	s := p.Scheme()
	return s != "" && strings.EqualFold(s, scheme)
}

// String returns the raw display form.
func (p Path) String() string { return p.raw }

// SchemeOf extracts the URI scheme from an arbitrary string per RFC 3986:
// a letter followed by letters, digits, "+", "-" or ".", terminated by ":".
// It returns the lowercased scheme or "" when there is none.
func SchemeOf(s string) string {
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c == ':' {
			if i == 0 {
				return ""
			}
			return strings.ToLower(s[:i])
		}
		if c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z' {
			continue
		}
		if i > 0 && (c >= '0' && c <= '9' || c == '+' || c == '-' || c == '.') {
			continue
		}
		return ""
	}
	return ""
}
