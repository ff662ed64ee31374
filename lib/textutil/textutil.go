// Package textutil canonicalizes the free-text identity fields (player
// names, school names) that every cross-dataset join in the pipeline
// keys on. Matching downstream is exact-on-key; all of the tolerance to
// formatting noise lives here.
package textutil

import (
	"regexp"
	"sort"
	"strings"
	"unicode"

	"github.com/antzucaro/matchr"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var whitespaceRegex = regexp.MustCompile(`\s+`)

// NormalizeSpace returns a single stripped, single-spaced string.
func NormalizeSpace(s string) string {
	return strings.TrimSpace(whitespaceRegex.ReplaceAllString(s, " "))
}

var diacriticStripper = transform.Chain(
	norm.NFD,
	runes.Remove(runes.In(unicode.Mn)),
	norm.NFC,
)

func stripDiacritics(s string) string {
	out, _, err := transform.String(diacriticStripper, s)
	if err != nil {
		return s
	}
	return out
}

var standaloneDigits = regexp.MustCompile(`\b\d+\b`)

// NormalizePlayerName produces the display form of a roster name:
// jersey numbers and stray digits removed, "Last, First" flipped to
// "First Last".
func NormalizePlayerName(name string) string {
	s := NormalizeSpace(name)
	s = standaloneDigits.ReplaceAllString(s, "")
	s = NormalizeSpace(s)

	if strings.Contains(s, ",") {
		parts := strings.SplitN(s, ",", 2)
		if len(parts) == 2 {
			s = NormalizeSpace(parts[1] + " " + parts[0])
		}
	}
	return s
}

var nonLetter = regexp.MustCompile(`[^a-z\s]`)

// CanonicalName reduces a name to its join form: lowercase, diacritics
// and punctuation stripped, unique tokens sorted. Token order is thrown
// away so "Doe, Jane" and "Jane Doe" produce the same key.
func CanonicalName(name string) string {
	s := NormalizePlayerName(name)
	if s == "" {
		return ""
	}
	s = stripDiacritics(strings.ToLower(s))
	s = nonLetter.ReplaceAllString(s, " ")

	seen := map[string]struct{}{}
	var tokens []string
	for _, t := range strings.Fields(s) {
		if _, ok := seen[t]; ok {
			continue
		}
		seen[t] = struct{}{}
		tokens = append(tokens, t)
	}
	if len(tokens) == 0 {
		return ""
	}
	sort.Strings(tokens)
	return strings.Join(tokens, " ")
}

var nonAlnum = regexp.MustCompile(`[^a-z0-9\s]`)

var schoolStopWords = map[string]struct{}{
	"university": {},
	"college":    {},
	"of":         {},
	"the":        {},
}

// SchoolKey normalizes a school name so small naming differences still
// match: lowercase, punctuation removed, institutional filler words
// dropped.
func SchoolKey(name string) string {
	s := stripDiacritics(strings.ToLower(NormalizeSpace(name)))
	s = nonAlnum.ReplaceAllString(s, " ")

	var tokens []string
	for _, t := range strings.Fields(s) {
		if _, stop := schoolStopWords[t]; stop {
			continue
		}
		tokens = append(tokens, t)
	}
	return strings.Join(tokens, " ")
}

// AliasTable maps a team's canonical name to the name an external
// reference source uses for it. Resolve is consulted before the generic
// key rules whenever joining against that source.
type AliasTable map[string]string

func (a AliasTable) Resolve(team string) string {
	if alias, ok := a[team]; ok {
		return alias
	}
	return team
}

// JoinKey is the single correlation mechanism between independently
// sourced datasets: an order-independent name token set plus a
// canonical school key.
type JoinKey struct {
	Name   string
	School string
}

func NewJoinKey(name, school string) JoinKey {
	return JoinKey{
		Name:   CanonicalName(name),
		School: SchoolKey(school),
	}
}

// Nearest returns the candidate most similar to target along with its
// Jaro-Winkler similarity. It exists purely for diagnostics on join
// misses; it never creates a join.
func Nearest(target string, candidates []string) (string, float64) {
	var best string
	var bestSim float64
	for _, c := range candidates {
		sim := matchr.JaroWinkler(target, c, false)
		if sim > bestSim {
			bestSim = sim
			best = c
		}
	}
	return best, bestSim
}
