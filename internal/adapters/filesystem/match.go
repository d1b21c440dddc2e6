package filesystem

import (
	"fmt"
	"regexp"
	"strings"
)

// translateGlob compiles an fnmatch-style pattern (`*` any run including
// separators, `?` single char, `[seq]` and `[!seq]` character classes) into
// an anchored regular expression.
func translateGlob(pattern string) (*regexp.Regexp, error) {
	var b strings.Builder
	b.WriteString("^")

	runes := []rune(pattern)
	for i := 0; i < len(runes); i++ {
		switch c := runes[i]; c {
		case '*':
			b.WriteString(".*")
		case '?':
			b.WriteString(".")
		case '[':
			end := i + 1
			if end < len(runes) && (runes[end] == '!' || runes[end] == '^') {
				end++
			}
			if end < len(runes) && runes[end] == ']' {
				// first ] in a class is a literal
				end++
			}
			for end < len(runes) && runes[end] != ']' {
				end++
			}
			if end >= len(runes) {
				// unterminated class, treat the bracket literally
				b.WriteString(regexp.QuoteMeta(string(c)))
				continue
			}
			class := string(runes[i+1 : end])
			if strings.HasPrefix(class, "!") {
				class = "^" + class[1:]
			}
			class = strings.ReplaceAll(class, `\`, `\\`)
			b.WriteString("[" + class + "]")
			i = end
		default:
			b.WriteString(regexp.QuoteMeta(string(c)))
		}
	}

	b.WriteString("$")
	re, err := regexp.Compile(b.String())
	if err != nil {
		return nil, fmt.Errorf("invalid filter pattern %q: %w", pattern, err)
	}
	return re, nil
}

// compileFilters translates every pattern up front so a bad pattern fails
// the scan before any work is done.
func compileFilters(patterns []string) ([]*regexp.Regexp, error) {
	out := make([]*regexp.Regexp, 0, len(patterns))
	for _, p := range patterns {
		re, err := translateGlob(p)
		if err != nil {
			return nil, err
		}
		out = append(out, re)
	}
	return out, nil
}

// matchAny reports whether the relative path matches at least one filter
func matchAny(filters []*regexp.Regexp, relPath string) bool {
	for _, re := range filters {
		if re.MatchString(relPath) {
			return true
		}
	}
	return false
}
