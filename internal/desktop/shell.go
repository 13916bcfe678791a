package desktop

import (
	"fmt"
	"strings"
)

// SplitWords tokenizes a command line with POSIX-shell word splitting:
// whitespace separates words, single quotes preserve everything, double
// quotes honor \" \\ \$ \` escapes, and a bare backslash escapes the next
// character.
func SplitWords(line string) ([]string, error) {
	var (
		words []string
		word  strings.Builder
		open  bool // a word is in progress; keeps empty quoted words
	)
	i := 0
	for i < len(line) {
		c := line[i]
		switch {
		case c == ' ' || c == '\t' || c == '\n':
			if open {
				words = append(words, word.String())
				word.Reset()
				open = false
			}
			i++
		case c == '\'':
			end := strings.IndexByte(line[i+1:], '\'')
			if end < 0 {
				return nil, fmt.Errorf("unterminated single quote")
			}
			word.WriteString(line[i+1 : i+1+end])
			open = true
			i += end + 2
		case c == '"':
			i++
			closed := false
			for i < len(line) {
				if line[i] == '\\' && i+1 < len(line) {
					switch line[i+1] {
					case '"', '\\', '$', '`':
						word.WriteByte(line[i+1])
						i += 2
						continue
					}
					word.WriteByte('\\')
					i++
					continue
				}
				if line[i] == '"' {
					closed = true
					i++
					break
				}
				word.WriteByte(line[i])
				i++
			}
			if !closed {
				return nil, fmt.Errorf("unterminated double quote")
			}
			open = true
		case c == '\\':
			if i+1 >= len(line) {
				return nil, fmt.Errorf("trailing backslash")
			}
			word.WriteByte(line[i+1])
			open = true
			i += 2
		default:
			word.WriteByte(c)
			open = true
			i++
		}
	}
	if open {
		words = append(words, word.String())
	}
	return words, nil
}

// Quote makes s safe to embed in a command line parsed by SplitWords.
// Strings without special characters pass through unquoted.
func Quote(s string) string {
	if s == "" {
		return "''"
	}
	if !strings.ContainsAny(s, " \t\n|&;<>()$`\\\"'*?[#~") {
		return s
	}
	return "'" + strings.ReplaceAll(s, "'", `'\''`) + "'"
}
