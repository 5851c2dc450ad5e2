package spotify

import (
	"fmt"
	"strings"
	"unicode"
)

// Suffix tokens that mark release-variant noise in titles, e.g.
// "(Remastered 2011)" or "- Radio Edit". Queries match better without them.
var suffixTokens = map[string]struct{}{
	"deluxe":     {},
	"edit":       {},
	"edition":    {},
	"live":       {},
	"mix":        {},
	"mono":       {},
	"radio":      {},
	"remaster":   {},
	"remastered": {},
	"stereo":     {},
	"version":    {},
}

// Normalize cleans a title or artist for catalog search: lowercases, strips
// bracketed or dash release-variant suffixes, and collapses separators.
func Normalize(input string) string {
	if strings.TrimSpace(input) == "" {
		return ""
	}

	lowered := strings.ToLower(strings.TrimSpace(input))
	trimmed := stripVariantSuffix(lowered)
	cleaned := cleanSeparators(trimmed)

	return strings.Join(strings.Fields(cleaned), " ")
}

func searchQuery(title, artist string) string {
	t := fallbackIfEmpty(Normalize(title), strings.TrimSpace(title))
	a := fallbackIfEmpty(Normalize(artist), strings.TrimSpace(artist))
	return fmt.Sprintf("track:%s artist:%s", t, a)
}

func fallbackIfEmpty(value, fallback string) string {
	if value == "" {
		return fallback
	}
	return value
}

func stripVariantSuffix(input string) string {
	trimmed := strings.TrimSpace(input)
	for {
		next := trimBracketedSuffix(trimmed)
		next = trimDashSuffix(next)
		if next == trimmed {
			return trimmed
		}
		trimmed = strings.TrimSpace(next)
	}
}

func trimBracketedSuffix(input string) string {
	trimmed := strings.TrimSpace(input)
	for _, pair := range [][2]string{{"(", ")"}, {"[", "]"}} {
		open, closing := pair[0], pair[1]
		if !strings.HasSuffix(trimmed, closing) {
			continue
		}
		idx := strings.LastIndex(trimmed, open)
		if idx == -1 || idx >= len(trimmed)-1 {
			continue
		}
		if suffixHasToken(trimmed[idx+1 : len(trimmed)-1]) {
			return strings.TrimSpace(trimmed[:idx])
		}
	}
	return input
}

func trimDashSuffix(input string) string {
	trimmed := strings.TrimSpace(input)
	idx := strings.LastIndex(trimmed, " - ")
	if idx == -1 {
		return input
	}
	if suffixHasToken(trimmed[idx+3:]) {
		return strings.TrimSpace(trimmed[:idx])
	}
	return input
}

func suffixHasToken(input string) bool {
	cleaned := cleanSeparators(strings.ToLower(input))
	for _, token := range strings.Fields(cleaned) {
		if _, ok := suffixTokens[token]; ok {
			return true
		}
	}
	return false
}

func cleanSeparators(input string) string {
	var b strings.Builder
	b.Grow(len(input))
	for _, r := range input {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || unicode.IsSpace(r) {
			b.WriteRune(r)
		} else {
			b.WriteRune(' ')
		}
	}
	return b.String()
}
