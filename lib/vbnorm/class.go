package vbnorm

import (
	"regexp"
	"strings"
)

type Class string

const (
	Freshman          Class = "Fr"
	Sophomore         Class = "So"
	Junior            Class = "Jr"
	Senior            Class = "Sr"
	RedshirtFreshman  Class = "R-Fr"
	RedshirtSophomore Class = "R-So"
	RedshirtJunior    Class = "R-Jr"
	RedshirtSenior    Class = "R-Sr"
	Graduate          Class = "Gr"
	FifthYear         Class = "Fifth"
	ClassUnknown      Class = ""
)

// Next returns the class a player projects to after one more season.
func (c Class) Next() Class {
	switch c {
	case Freshman:
		return Sophomore
	case RedshirtFreshman:
		return RedshirtSophomore
	case Sophomore:
		return Junior
	case RedshirtSophomore:
		return RedshirtJunior
	case Junior:
		return Senior
	case RedshirtJunior:
		return RedshirtSenior
	case Senior, RedshirtSenior, Graduate, FifthYear:
		return Graduate
	}
	return ClassUnknown
}

// Graduating reports whether the player runs out of eligibility at the
// end of the season.
func (c Class) Graduating() bool {
	switch c {
	case Senior, RedshirtSenior, Graduate, FifthYear:
		return true
	}
	return false
}

var classJunk = regexp.MustCompile(`[^a-z0-9\s\-]`)
var classSpaces = regexp.MustCompile(`\s+`)

var firstYearVariants = map[string]bool{
	"fy":         true,
	"first year": true,
	"first-year": true,
	"firstyear":  true,
}

var redshirtFirstYearVariants = map[string]bool{
	"rfr":  true,
	"rf":   true,
	"rfy":  true,
	"r-fy": true,
	"r fy": true,
	"r-fr": true,
}

var frToken = regexp.MustCompile(`\bfr\b`)
var fyToken = regexp.MustCompile(`\bfy\b`)
var soToken = regexp.MustCompile(`\bso\b`)
var jrToken = regexp.MustCompile(`\bjr\b`)
var srToken = regexp.MustCompile(`\bsr\b`)
var grToken = regexp.MustCompile(`\bgr\b`)

// ParseClass maps the textual class/year variants sites use onto the
// canonical enum. Values that fail every variant (including club team
// names that leak into the class column) come back ClassUnknown.
func ParseClass(raw string) Class {
	if raw == "" || LooksLikeClubName(raw) {
		return ClassUnknown
	}

	s := strings.ToLower(strings.TrimSpace(raw))
	s = classJunk.ReplaceAllString(s, " ")
	s = strings.TrimSpace(classSpaces.ReplaceAllString(s, " "))

	// first-year sites abbreviate in several ways
	if firstYearVariants[s] {
		return Freshman
	}
	if redshirtFirstYearVariants[s] {
		return RedshirtFreshman
	}

	redshirt := strings.Contains(s, "redshirt") ||
		strings.HasPrefix(s, "r ") || strings.HasPrefix(s, "r-")

	var base Class
	switch {
	case strings.Contains(s, "fresh") || frToken.MatchString(s) ||
		strings.Contains(s, "first year") || fyToken.MatchString(s):
		base = Freshman
	case strings.Contains(s, "soph") || soToken.MatchString(s):
		base = Sophomore
	case strings.Contains(s, "junior") || jrToken.MatchString(s):
		base = Junior
	case strings.Contains(s, "senior") || srToken.MatchString(s):
		base = Senior
	case strings.Contains(s, "fifth") || strings.Contains(s, "5th") ||
		strings.Contains(s, "sixth") || strings.Contains(s, "6th"):
		return FifthYear
	case strings.Contains(s, "grad") || grToken.MatchString(s):
		return Graduate
	default:
		return ClassUnknown
	}

	if redshirt {
		switch base {
		case Freshman:
			return RedshirtFreshman
		case Sophomore:
			return RedshirtSophomore
		case Junior:
			return RedshirtJunior
		case Senior:
			return RedshirtSenior
		}
	}
	return base
}

var clubKeywords = []string{"club", "volleyball", "nation", "team"}

// LooksLikeClubName reports whether a class-column value is actually a
// volleyball club name ("Premier VBC", "Club Nation 18s"). "vbc" alone
// is a strong signal; otherwise two of the weaker keywords are needed.
func LooksLikeClubName(raw string) bool {
	if raw == "" {
		return false
	}
	low := strings.ToLower(raw)
	if strings.Contains(low, "vbc") {
		return true
	}
	count := 0
	for _, kw := range clubKeywords {
		if strings.Contains(low, kw) {
			count++
		}
	}
	return count >= 2
}
