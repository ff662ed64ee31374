// Package vbnorm canonicalizes the noisy free-text roster fields
// (position, class year, height) into the fixed domain vocabulary.
// Every parser here either returns a canonical value or an explicit
// unknown; raw values are never passed through on a failed parse.
package vbnorm

import (
	"errors"
	"regexp"
	"sort"
	"strings"
)

type Position string

const (
	Setter    Position = "S"
	Outside   Position = "OH"
	RightSide Position = "RS"
	Middle    Position = "MB"
	Defensive Position = "DS"
)

// PositionSet is a sorted, de-duplicated set of canonical codes. An
// empty set means the position is unknown.
type PositionSet []Position

func (s PositionSet) Has(p Position) bool {
	for _, v := range s {
		if v == p {
			return true
		}
	}
	return false
}

func (s PositionSet) String() string {
	parts := make([]string, len(s))
	for i, p := range s {
		parts[i] = string(p)
	}
	return strings.Join(parts, "/")
}

var (
	// ErrSuspectedStaff marks a value whose tokens look like a
	// coaching/support staff role rather than a playing position.
	ErrSuspectedStaff = errors.New("position looks like a staff role")
	// ErrNumericValue marks a purely numeric value, usually a jersey
	// number or database id that leaked into the position column.
	ErrNumericValue = errors.New("position is purely numeric")
)

var staffKeywords = []string{
	"coach", "assistant", "director", "consultant", "coordinator",
	"analyst", "trainer", "manager", "intern", "video", "strength",
	"operations", "development", "technical", "volunteer", "staff",
}

// token aliases; "ds" always resolves to the defensive code even when a
// site uses it to mean a setter who also plays back row.
var positionAliases = map[string][]Position{
	"s":         {Setter},
	"setter":    {Setter},
	"oh":        {Outside},
	"ls":        {Outside},
	"outside":   {Outside},
	"pin":       {Outside},
	"left":      {Outside},
	"rs":        {RightSide},
	"rh":        {RightSide},
	"rightside": {RightSide},
	"opp":       {RightSide},
	"opposite":  {RightSide},
	"mb":        {Middle},
	"mh":        {Middle},
	"middle":    {Middle},
	"ds":        {Defensive},
	"l":         {Defensive},
	"lib":       {Defensive},
	"libero":    {Defensive},
	"utility":   {Outside, Defensive},
	"utl":       {Outside, Defensive},
	"uu":        {Outside, Defensive},
}

var phraseAliases = map[string]Position{
	"right side":           RightSide,
	"left side":            Outside,
	"outside hitter":       Outside,
	"middle blocker":       Middle,
	"middle hitter":        Middle,
	"defensive specialist": Defensive,
}

var nonNumeric = regexp.MustCompile(`[a-zA-Z]`)
var positionSeparators = regexp.MustCompile(`[\/,;]+`)

// ParsePositions maps a raw roster position string to a set of
// canonical codes. Composite values ("OH/DS", "Setter, Libero") split
// on the usual separators; unrecognized tokens are ignored. Staff-role
// and purely numeric values are rejected with a sentinel error so the
// caller can record the appropriate diagnostic.
func ParsePositions(raw string) (PositionSet, error) {
	p := strings.TrimSpace(strings.ToLower(strings.ReplaceAll(raw, ".", " ")))
	if p == "" {
		return nil, nil
	}

	for _, kw := range staffKeywords {
		if strings.Contains(p, kw) {
			return nil, ErrSuspectedStaff
		}
	}
	if !nonNumeric.MatchString(p) {
		return nil, ErrNumericValue
	}

	var tokens []string
	for _, part := range positionSeparators.Split(p, -1) {
		tokens = append(tokens, strings.Fields(part)...)
	}
	joined := strings.Join(tokens, " ")

	codes := map[Position]struct{}{}
	for phrase, code := range phraseAliases {
		if strings.Contains(joined, phrase) {
			codes[code] = struct{}{}
		}
	}
	for _, tok := range tokens {
		for _, code := range positionAliases[tok] {
			codes[code] = struct{}{}
		}
	}

	if len(codes) == 0 {
		return nil, nil
	}

	out := make(PositionSet, 0, len(codes))
	for code := range codes {
		out = append(out, code)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out, nil
}
