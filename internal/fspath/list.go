package fspath

// List is an ordered sequence of paths. Order is significant for batch
// launches; duplicates are allowed.
type List []Path

// ListFromStrings builds a List with FromString semantics, skipping empty
// strings.
func ListFromStrings(ss ...string) List {
	l := make(List, 0, len(ss))
	for _, s := range ss {
		if p := FromString(s); p.IsValid() {
			l = append(l, p)
		}
	}
	return l
}

// URIs returns the URI form of every path, in order.
func (l List) URIs() []string {
	out := make([]string, 0, len(l))
	for _, p := range l {
		out = append(out, p.URI())
	}
	return out
}

// Strings returns the display form of every path, in order.
func (l List) Strings() []string {
	out := make([]string, 0, len(l))
	for _, p := range l {
		out = append(out, p.String())
	}
	return out
}
