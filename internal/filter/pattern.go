package filter

import (
	"regexp"
	"strings"
)

// glob is a single compiled rsync-style pattern. A trailing slash limits
// the pattern to directories. A pattern containing a slash matches the
// full path from the torrent root; otherwise it matches the basename or
// any path suffix.
type glob struct {
	re      *regexp.Regexp
	src     string
	dirOnly bool
}

func compileGlob(src string) (*glob, error) {
	g := &glob{src: src}

	body := src
	if strings.HasSuffix(body, "/") {
		g.dirOnly = true
		body = body[:len(body)-1]
	}

	rooted := strings.Contains(body, "/")
	body = strings.TrimPrefix(body, "/")

	expr := globExpr(body)
	if rooted {
		expr = "^" + expr + "$"
	} else {
		expr = "(^|/)" + expr + "$"
	}

	re, err := regexp.Compile(expr)
	if err != nil {
		return nil, err
	}
	g.re = re
	return g, nil
}

func (g *glob) match(rel string, isDir bool) bool {
	if g.dirOnly && !isDir {
		return false
	}
	return g.re.MatchString(rel)
}

// globExpr translates a glob body into a regular expression fragment.
// "*" and "?" never cross a slash; "**" does, and "**/" also matches
// the empty prefix so "**/*.go" covers files at the root.
func globExpr(pat string) string {
	var b strings.Builder
	for i := 0; i < len(pat); {
		switch c := pat[i]; c {
		case '*':
			switch {
			case strings.HasPrefix(pat[i:], "**/"):
				b.WriteString("(.*/)?")
				i += 3
			case strings.HasPrefix(pat[i:], "**"):
				b.WriteString(".*")
				i += 2
			default:
				b.WriteString("[^/]*")
				i++
			}
		case '?':
			b.WriteString("[^/]")
			i++
		case '[':
			end := classEnd(pat, i)
			if end < 0 {
				b.WriteString(`\[`)
				i++
				break
			}
			cls := pat[i+1 : end]
			// Glob negation spells ^ as !.
			if strings.HasPrefix(cls, "!") {
				cls = "^" + cls[1:]
			}
			b.WriteString("[" + cls + "]")
			i = end + 1
		default:
			if strings.IndexByte(`.(){}+^$|\`, c) >= 0 {
				b.WriteByte('\\')
			}
			b.WriteByte(c)
			i++
		}
	}
	return b.String()
}

// classEnd locates the closing bracket of a character class opening at i,
// honoring a leading ! and a literal ] in first position. Returns -1 when
// the class never closes.
func classEnd(pat string, i int) int {
	j := i + 1
	if j < len(pat) && pat[j] == '!' {
		j++
	}
	if j < len(pat) && pat[j] == ']' {
		j++
	}
	for j < len(pat) && pat[j] != ']' {
		j++
	}
	if j >= len(pat) {
		return -1
	}
	return j
}
