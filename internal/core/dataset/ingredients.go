package dataset

import (
	"regexp"
	"strings"
	"unicode"
)

// isIngredientDelimiter comma, bullet, semicolon, newline or tab
func isIngredientDelimiter(r rune) bool {
	switch r {
	case ',', '•', ';', '\n', '\r', '\t':
		return true
	}
	return false
}

// NormalizeIngredient lowercases, trims and collapses inner whitespace
func NormalizeIngredient(s string) string {
	return strings.Join(strings.Fields(strings.ToLower(s)), " ")
}

// TokenizeIngredients splits a free-text ingredient field into normalised tokens,
// deduplicated in first-seen order.
func TokenizeIngredients(raw string) []string {
	parts := strings.FieldsFunc(raw, isIngredientDelimiter)
	tokens := make([]string, 0, len(parts))
	seen := make(map[string]struct{}, len(parts))
	for _, p := range parts {
		tok := NormalizeIngredient(p)
		if tok == "" {
			continue
		}
		if _, dup := seen[tok]; dup {
			continue
		}
		seen[tok] = struct{}{}
		tokens = append(tokens, tok)
	}
	return tokens
}

// CleanIngredientList splits an ingredient field for display. A new item starts at a
// digit, bullet or dash that follows a letter (optionally separated by whitespace),
// which is how the source data glues quantity-prefixed lines together.
func CleanIngredientList(raw string) []string {
	var segments []string
	var cur strings.Builder
	var prev rune

	for _, r := range raw {
		if (unicode.IsDigit(r) || r == '•' || r == '-') && isASCIILetter(prev) {
			segments = append(segments, cur.String())
			cur.Reset()
		}
		cur.WriteRune(r)
		if !unicode.IsSpace(r) {
			prev = r
		}
	}
	segments = append(segments, cur.String())

	items := make([]string, 0, len(segments))
	for _, s := range segments {
		s = strings.Join(strings.Fields(s), " ")
		if s != "" {
			items = append(items, s)
		}
	}
	return items
}

func isASCIILetter(r rune) bool {
	return (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z')
}

var (
	lineBreaks = regexp.MustCompile(`[\t\r\n]+`)
	multiSpace = regexp.MustCompile(`\s{2,}`)
)

// CleanText flattens tabs and line breaks in description/instruction text
func CleanText(s string) string {
	s = lineBreaks.ReplaceAllString(s, " ")
	return strings.TrimSpace(multiSpace.ReplaceAllString(s, " "))
}
