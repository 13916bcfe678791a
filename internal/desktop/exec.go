package desktop

import (
	"fmt"
	"net/url"
	"path/filepath"
	"strings"
)

// ExpandExec tokenizes the entry's Exec line and substitutes field codes.
// %f and %F expand to the launch list with file URIs converted to local
// paths; %u and %U expand to the URIs unchanged; %i inserts --icon and the
// entry icon; %c the entry name; %k the entry file path; %% a literal
// percent. Deprecated and unknown codes drop. An Exec line without any
// file/URI code yields the bare argv: the launch list is not appended.
func (e *Entry) ExpandExec(uris []string) ([]string, error) {
	words, err := SplitWords(e.Exec)
	if err != nil {
		return nil, fmt.Errorf("%s: bad Exec line: %w", filepath.Base(e.File), err)
	}
	if len(words) == 0 {
		return nil, fmt.Errorf("%s: empty Exec line", filepath.Base(e.File))
	}
	argv := make([]string, 0, len(words)+len(uris))
	for _, w := range words {
		switch w {
		case "%f", "%F":
			for _, u := range uris {
				argv = append(argv, LocalArg(u))
			}
		case "%u", "%U":
			argv = append(argv, uris...)
		case "%i":
			if e.Icon != "" {
				argv = append(argv, "--icon", e.Icon)
			}
		case "%c":
			argv = append(argv, e.Name)
		case "%k":
			argv = append(argv, e.File)
		case "%d", "%D", "%n", "%N", "%v", "%m":
			// deprecated field codes drop
		default:
			argv = append(argv, expandInline(w, e))
		}
	}
	return argv, nil
}

// expandInline rewrites field codes embedded inside a word. Only %% and the
// string-valued codes make sense here; list codes drop.
func expandInline(w string, e *Entry) string {
	if !strings.Contains(w, "%") {
		return w
	}
	var b strings.Builder
	for i := 0; i < len(w); i++ {
		if w[i] != '%' || i+1 >= len(w) {
			b.WriteByte(w[i])
			continue
		}
		i++
		switch w[i] {
		case '%':
			b.WriteByte('%')
		case 'c':
			b.WriteString(e.Name)
		case 'k':
			b.WriteString(e.File)
		}
	}
	return b.String()
}

// LocalArg converts a file URI to a local path argument; any other string
// passes through unchanged.
func LocalArg(uri string) string {
	if !strings.HasPrefix(uri, "file:") {
		return uri
	}
	u, err := url.Parse(uri)
	if err != nil || u.Scheme != "file" || u.Path == "" {
		return uri
	}
	return u.Path
}
