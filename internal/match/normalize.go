// Package match resolves free-text game titles to Steam catalog entries:
// deterministic title normalization plus edit-distance scoring over an indexed
// catalog snapshot.
package match

import (
	"regexp"
	"strings"
)

// Patterns applied by Normalize, in order. Repack and edition markers must go
// first: they rely on word boundaries that disappear once punctuation is
// stripped.
var (
	// Parenthesized or bracketed release-group annotations, e.g.
	// "(FitGirl Repack, Selective Download)" or "[DODI Repack]".
	repackGroupRe = regexp.MustCompile(`(?i)[(\[][^)\]]*\b(?:fitgirl|dodi|elamigos|xatab|masquerade|kaoskrew|empress|repack)\b[^)\]]*[)\]]`)
	// Trailing "- Repack" marker outside any brackets.
	repackSuffixRe = regexp.MustCompile(`(?i)\s*-\s*repack\s*$`)
	// Edition and re-release qualifiers, matched anywhere as whole phrases.
	editionRe = regexp.MustCompile(`(?i)\b(?:(?:game of the year|goty)(?:\s+edition)?|complete edition|definitive edition|ultimate edition|deluxe edition|premium edition|enhanced edition|remastered|remake)\b`)
	// Anything that is not a letter, digit, whitespace, hyphen or apostrophe.
	specialCharsRe = regexp.MustCompile(`[^\p{L}\p{N}\s'-]`)
	whitespaceRe   = regexp.MustCompile(`\s+`)
)

// Normalize canonicalizes a raw title for comparison: release-group and repack
// annotations are dropped, edition qualifiers removed, remaining punctuation
// reduced to spaces, and the result lowercased with collapsed whitespace.
// Hyphens and apostrophes survive ("spider-man", "assassin's creed").
func Normalize(raw string) string {
	if raw == "" {
		return ""
	}
	s := repackGroupRe.ReplaceAllString(raw, " ")
	s = repackSuffixRe.ReplaceAllString(s, " ")
	s = editionRe.ReplaceAllString(s, " ")
	s = specialCharsRe.ReplaceAllString(s, " ")
	s = whitespaceRe.ReplaceAllString(s, " ")
	s = strings.ToLower(strings.TrimSpace(s))
	return strings.Trim(s, "- ")
}
