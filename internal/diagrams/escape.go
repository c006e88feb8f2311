package diagrams

import (
	"fmt"
	"regexp"
	"strings"
	"unicode"
)

// lineBreaks matches a CRLF pair or a lone CR/LF.
var lineBreaks = regexp.MustCompile(`\r\n|\r|\n`)

// Escape prepares free text for embedding in diagram syntax. Double quotes
// get a backslash, line breaks become a single space and the result is
// trimmed, so the output never carries a raw quote or newline.
func Escape(s string) string {
	s = strings.ReplaceAll(s, `"`, `\"`)
	s = lineBreaks.ReplaceAllString(s, " ")
	return strings.TrimSpace(s)
}

// escapeIn is Escape for text that sits inside unquoted syntax: every rune
// of delims and any run of two or more '%' become mermaid entity codes, so
// the text can neither close the construct nor start a comment.
func escapeIn(s, delims string) string {
	runes := []rune(s)
	var b strings.Builder
	for i, r := range runes {
		pct := r == '%' && ((i > 0 && runes[i-1] == '%') || (i+1 < len(runes) && runes[i+1] == '%'))
		if pct || strings.ContainsRune(delims, r) {
			fmt.Fprintf(&b, "#%d;", r)
			continue
		}
		b.WriteRune(r)
	}
	return Escape(b.String())
}

// stripRunes is Escape with every rune of drop removed, for grammars where
// even entity codes would end the token.
func stripRunes(s, drop string) string {
	s = strings.Map(func(r rune) rune {
		if strings.ContainsRune(drop, r) {
			return -1
		}
		return r
	}, s)
	return Escape(s)
}

// SanitizeToken cleans a value that mermaid reads as a single token, such
// as a gantt date or duration: line breaks, quotes and the separators , # ;
// are removed and the result is trimmed. Colons stay for clock times.
func SanitizeToken(s string) string {
	return strings.TrimSpace(strings.Map(func(r rune) rune {
		switch r {
		case '\r', '\n', ',', '#', ';', '"':
			return -1
		}
		return r
	}, s))
}

// SanitizeID trims s and replaces every rune that is not a letter, digit,
// '_' or '-' with '_'. An empty result means there is no usable id.
func SanitizeID(s string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_' || r == '-' {
			return r
		}
		return '_'
	}, strings.TrimSpace(s))
}

// UniqueName returns prefix followed by the smallest positive integer that
// does not collide with any of existing.
func UniqueName(existing []string, prefix string) string {
	seen := make(map[string]struct{}, len(existing))
	for _, name := range existing {
		seen[name] = struct{}{}
	}
	for i := 1; ; i++ {
		candidate := fmt.Sprintf("%s%d", prefix, i)
		if _, ok := seen[candidate]; !ok {
			return candidate
		}
	}
}
