package canonicalize

import (
	"strings"

	"golang.org/x/text/unicode/norm"
)

var punctFolder = strings.NewReplacer(
	"“", `"`, "”", `"`, // curly double quotes
	"‘", "'", "’", "'", // curly single quotes
	"–", "-", "—", "-", // en/em dash
	"«", `"`, "»", `"`, // guillemets
)

// NormalizeText normalizes free-form transcript text before hashing:
// Unicode NFC, LF line endings, control characters stripped (except LF),
// typographic quotes and dashes folded to ASCII, runs of whitespace
// collapsed to a single space per line, and the result trimmed.
//
// Canonicalize does not apply this implicitly; callers that hash transcript
// text from heterogeneous sources opt in so that cosmetically different
// captures of the same exchange hash identically.
func NormalizeText(s string) string {
	s = norm.NFC.String(s)
	s = strings.ReplaceAll(s, "\r\n", "\n")
	s = strings.ReplaceAll(s, "\r", "\n")
	s = punctFolder.Replace(s)

	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if r < 0x20 && r != '\n' && r != '\t' {
			continue
		}
		b.WriteRune(r)
	}

	lines := strings.Split(b.String(), "\n")
	for i, line := range lines {
		lines[i] = strings.Join(strings.Fields(line), " ")
	}
	return strings.TrimSpace(strings.Join(lines, "\n"))
}
