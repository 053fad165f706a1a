package models

import (
	"strings"
	"unicode/utf8"
)

// slugOverrides holds the manual slug assignments that the mechanical rule
// gets wrong. Currently a single three-part name whose portrait and profile
// were published under the middle+last form.
var slugOverrides = map[string]string{
	"Jerremiah Dujuan Wright": "dujuan_wright",
}

var slugToName = func() map[string]string {
	m := make(map[string]string, len(slugOverrides))
	for name, slug := range slugOverrides {
		m[slug] = name
	}
	return m
}()

// Slugify derives the URL-safe identifier for a player name: lowercased,
// whitespace runs become underscores, everything outside [a-z0-9_] is
// stripped. Override entries win over the mechanical rule.
func Slugify(name string) string {
	if slug, ok := slugOverrides[name]; ok {
		return slug
	}
	var b strings.Builder
	for _, word := range strings.Fields(strings.ToLower(name)) {
		if b.Len() > 0 {
			b.WriteByte('_')
		}
		for _, r := range word {
			if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') || r == '_' {
				b.WriteRune(r)
			}
		}
	}
	return b.String()
}

// PlayerNameFromSlug reverses Slugify for display: override slugs map back
// to their full name, everything else title-cases the underscore-separated
// words. Lossy for stripped punctuation, same as the site.
func PlayerNameFromSlug(slug string) string {
	if name, ok := slugToName[slug]; ok {
		return name
	}
	words := strings.Split(slug, "_")
	for i, w := range words {
		if w == "" {
			continue
		}
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}

// NormalizeTeam canonicalizes a team name for joining schedule rows to
// rosters and box scores: "UMMA", "Umma" and "The Umma" all collapse to
// "umma".
func NormalizeTeam(name string) string {
	s := strings.ToLower(strings.TrimSpace(name))
	s = strings.TrimPrefix(s, "the ")
	return strings.Join(strings.Fields(s), " ")
}

// SameTeam reports whether two team names refer to the same team.
func SameTeam(a, b string) bool {
	return NormalizeTeam(a) == NormalizeTeam(b)
}

// Initials builds the avatar-fallback initials for a player name.
func Initials(name string) string {
	var b strings.Builder
	for _, word := range strings.Fields(name) {
		r, _ := utf8.DecodeRuneInString(word)
		b.WriteRune(r)
	}
	return strings.ToUpper(b.String())
}
