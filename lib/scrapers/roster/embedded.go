package roster

import (
	"context"
	"encoding/json"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"vbscout-backend/lib/htmlutil"
)

// embeddedJSONStrategy covers two JSON shapes that are not
// reference-encoded: a JS array of flat player objects (height_feet,
// position_short, ...) embedded anywhere in the markup, and ld+json /
// `var x = {...}` script blobs containing person-shaped objects.
type embeddedJSONStrategy struct{}

func (embeddedJSONStrategy) ID() StrategyID { return StrategyEmbeddedJSON }

// flatArrayStart sniffs for the opening of a roster array of flat
// player objects.
var flatArrayStart = regexp.MustCompile(`\[\s*\{[^}]{0,500}"height_feet"[^}]{0,500}"position_short"`)

var jsonAssignment = regexp.MustCompile(`(?s)=\s*(\{.*\});?$`)

// volleyballPositions gates the multi-sport filter: when an embedded
// blob yields an implausible number of players it usually covers every
// sport at the school, and only rows with one of these position values
// survive.
var volleyballPositions = []string{
	"s", "setter", "oh", "outside", "outside hitter", "rs", "right side",
	"opposite", "opp", "mb", "mh", "middle", "middle blocker", "middle hitter",
	"ds", "defensive specialist", "l", "libero", "def specialist",
}

const (
	multiSportThreshold = 30
	noPositionCap       = 25
)

func (embeddedJSONStrategy) Attempt(ctx context.Context, page Page) ([]RawPlayer, error) {
	if players := parseFlatArray(page.HTML); len(players) > 0 {
		return players, nil
	}

	players := parseScriptObjects(page.Doc)
	if len(players) == 0 {
		return nil, ErrNoRoster
	}
	return filterMultiSport(players), nil
}

// parseFlatArray pulls a JS array of flat player objects out of the raw
// markup by balancing brackets from the sniffed start position.
func parseFlatArray(html string) []RawPlayer {
	loc := flatArrayStart.FindStringIndex(html)
	if loc == nil {
		return nil
	}

	raw, ok := balanceBrackets(html, loc[0])
	if !ok {
		return nil
	}

	var data []map[string]any
	if err := json.Unmarshal([]byte(raw), &data); err != nil {
		return nil
	}

	var players []RawPlayer
	for _, obj := range data {
		name := htmlutil.CleanText(strings.TrimSpace(
			jsonString(obj, "first_name") + " " + jsonString(obj, "last_name")))
		if name == "" {
			continue
		}

		position := jsonString(obj, "position_short")
		if position == "" {
			position = jsonString(obj, "position_long")
		}

		height := ""
		feet, inches := numberText(obj["height_feet"]), numberText(obj["height_inches"])
		if feet != "" && feet != "0" && inches != "" {
			height = feet + "-" + inches
		}

		class := jsonString(obj, "academic_year_short")
		if class == "" {
			class = jsonString(obj, "academic_year_long")
		}
		if class == "" {
			class = jsonString(obj, "class")
		}

		players = append(players, RawPlayer{
			Name:     name,
			Position: position,
			Class:    class,
			Height:   height,
		})
	}
	return players
}

// balanceBrackets returns the substring from start through the bracket
// that closes the array opened there, bounded to keep a malformed page
// from scanning the whole document.
func balanceBrackets(s string, start int) (string, bool) {
	const scanLimit = 100000
	depth := 0
	for i := start; i < len(s) && i < start+scanLimit; i++ {
		switch s[i] {
		case '[':
			depth++
		case ']':
			depth--
			if depth == 0 {
				return s[start : i+1], true
			}
		}
	}
	return "", false
}

// parseScriptObjects scans ld+json and simple `var x = {...}` script
// blobs for person-shaped objects.
func parseScriptObjects(doc *goquery.Document) []RawPlayer {
	var players []RawPlayer

	doc.Find("script").Each(func(_ int, script *goquery.Selection) {
		text := strings.TrimSpace(script.Text())
		if text == "" {
			return
		}

		var data any
		if strings.HasPrefix(text, "{") || strings.HasPrefix(text, "[") {
			if err := json.Unmarshal([]byte(text), &data); err != nil {
				data = nil
			}
		}
		if data == nil {
			if m := jsonAssignment.FindStringSubmatch(text); m != nil {
				if err := json.Unmarshal([]byte(m[1]), &data); err != nil {
					data = nil
				}
			}
		}
		if data == nil {
			return
		}

		switch val := data.(type) {
		case []any:
			players = append(players, personObjects(val)...)
		case map[string]any:
			for _, v := range val {
				if list, ok := v.([]any); ok {
					players = append(players, personObjects(list)...)
				}
			}
		}
	})

	return players
}

func personObjects(list []any) []RawPlayer {
	var players []RawPlayer
	for _, entry := range list {
		obj, ok := entry.(map[string]any)
		if !ok {
			continue
		}

		name := jsonString(obj, "name")
		if name == "" {
			name = jsonString(obj, "full_name")
		}
		if name == "" {
			name = jsonString(obj, "athlete_name")
		}
		if name == "" {
			continue
		}

		position := jsonString(obj, "position")
		if position == "" {
			position = jsonString(obj, "pos")
		}
		if position == "" {
			position = jsonString(obj, "primary_position")
		}

		height := jsonString(obj, "height")
		if height == "" {
			height = jsonString(obj, "ht")
		}

		class := jsonString(obj, "class")
		if class == "" {
			class = jsonString(obj, "academic_year")
		}
		if class == "" {
			class = jsonString(obj, "year")
		}

		players = append(players, RawPlayer{
			Name:     name,
			Position: position,
			Class:    class,
			Height:   height,
		})
	}
	return players
}

// filterMultiSport strips non-volleyball rows when the blob clearly
// spans every sport at the school.
func filterMultiSport(players []RawPlayer) []RawPlayer {
	if len(players) <= multiSportThreshold {
		return players
	}

	var filtered []RawPlayer
	for _, p := range players {
		if isVolleyballPosition(p.Position) {
			filtered = append(filtered, p)
		}
	}
	if len(filtered) > 0 {
		return filtered
	}
	// no recognizable positions at all: likely garbage, keep a bounded
	// prefix rather than the whole dump
	return players[:noPositionCap]
}

func isVolleyballPosition(position string) bool {
	position = strings.ToLower(strings.TrimSpace(position))
	if position == "" {
		return false
	}
	for _, vb := range volleyballPositions {
		if strings.Contains(position, vb) {
			return true
		}
	}
	return false
}

func jsonString(obj map[string]any, key string) string {
	s, _ := obj[key].(string)
	return htmlutil.CleanText(s)
}
