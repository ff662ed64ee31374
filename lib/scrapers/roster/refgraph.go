package roster

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"vbscout-backend/lib/htmlutil"

	"github.com/PuerkitoBio/goquery"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

// Some sites ship their roster as one large JSON array in which values
// reference each other by array index: an integer anywhere in the
// structure may be a pointer to another element. refGraphStrategy
// locates that array, materializes the referenced structure, and walks
// it for player records.

// gates that keep the strategy from chewing on ordinary inline JSON
const (
	refGraphMinScriptLen = 50000
	refGraphMinArrayLen  = 1000
	refGraphKeyScanLimit = 100
)

// Graph resolves index references inside an interned JSON array.
//
// Not every in-range integer is a reference; genuine numbers (jersey
// numbers, height feet) are indistinguishable from pointers. Resolution
// therefore substitutes in-range integers recursively but leaves any
// integer whose target is already being resolved as a plain scalar,
// which is what guarantees termination on self- and mutually-referential
// slots.
type Graph struct {
	data       []any
	resolved   map[int]any
	inProgress map[int]bool
}

func NewGraph(data []any) *Graph {
	return &Graph{
		data:       data,
		resolved:   map[int]any{},
		inProgress: map[int]bool{},
	}
}

// Resolve materializes the element at index i with every reachable
// reference substituted.
func (g *Graph) Resolve(i int) any {
	if i < 0 || i >= len(g.data) {
		return nil
	}
	return g.resolveIndex(i)
}

// ResolveValue materializes an arbitrary value: in-range integers are
// followed, containers are resolved element-wise, everything else is
// returned as-is.
func (g *Graph) ResolveValue(v any) any {
	return g.resolveValue(v)
}

func (g *Graph) resolveIndex(i int) any {
	if v, ok := g.resolved[i]; ok {
		return v
	}
	g.inProgress[i] = true
	v := g.resolveValue(g.data[i])
	delete(g.inProgress, i)
	g.resolved[i] = v
	return v
}

func (g *Graph) resolveValue(v any) any {
	switch val := v.(type) {
	case float64:
		idx, ok := asIndex(val, len(g.data))
		if !ok || g.inProgress[idx] {
			// out of range, fractional, or a cycle: terminal scalar
			return v
		}
		return g.resolveIndex(idx)
	case []any:
		out := make([]any, len(val))
		for i, elem := range val {
			out[i] = g.resolveValue(elem)
		}
		return out
	case map[string]any:
		out := make(map[string]any, len(val))
		for k, elem := range val {
			out[k] = g.resolveValue(elem)
		}
		return out
	default:
		return v
	}
}

// asIndex reports whether a JSON number is an integral valid index.
func asIndex(v float64, n int) (int, bool) {
	idx := int(v)
	if float64(idx) != v || idx < 0 || idx >= n {
		return 0, false
	}
	return idx, true
}

type refGraphStrategy struct{}

func (refGraphStrategy) ID() StrategyID { return StrategyRefGraph }

func (refGraphStrategy) Attempt(ctx context.Context, page Page) ([]RawPlayer, error) {
	var players []RawPlayer

	page.Doc.Find("script").EachWithBreak(func(_ int, script *goquery.Selection) bool {
		text := strings.TrimSpace(script.Text())
		if !strings.HasPrefix(text, "[") ||
			!strings.Contains(strings.ToLower(text), "roster") ||
			len(text) < refGraphMinScriptLen {
			return true
		}

		var data []any
		if err := json.Unmarshal([]byte(text), &data); err != nil || len(data) < refGraphMinArrayLen {
			return true
		}

		extracted, ok := ExtractFromArray(data)
		if !ok {
			return true
		}

		span := trace.SpanFromContext(ctx)
		span.AddEvent("resolved reference-encoded roster", trace.WithAttributes(
			attribute.Int("array_len", len(data)),
			attribute.Int("players", len(extracted)),
		))
		players = extracted
		return false
	})

	if len(players) == 0 {
		return nil, ErrNoRoster
	}
	return players, nil
}

// ExtractFromArray pulls player records out of an interned roster
// array. The entry point is an element near the head of the array whose
// key looks like "roster-{id}-players-list-page-1"; its value
// references the roster object, whose "players" key references the
// player list.
func ExtractFromArray(data []any) ([]RawPlayer, bool) {
	graph := NewGraph(data)

	rosterValue, ok := findRosterEntry(graph, data)
	if !ok {
		return nil, false
	}

	rosterObj, ok := rosterValue.(map[string]any)
	if !ok {
		return nil, false
	}
	playerList, ok := rosterObj["players"].([]any)
	if !ok {
		return nil, false
	}

	var players []RawPlayer
	for _, entry := range playerList {
		playerObj, ok := entry.(map[string]any)
		if !ok {
			continue
		}
		if p, ok := extractRefPlayer(playerObj); ok {
			players = append(players, p)
		}
	}
	return players, len(players) > 0
}

func findRosterEntry(graph *Graph, data []any) (any, bool) {
	limit := min(refGraphKeyScanLimit, len(data))
	for i := 0; i < limit; i++ {
		item, ok := data[i].(map[string]any)
		if !ok {
			continue
		}
		for key, value := range item {
			if strings.Contains(key, "roster") && strings.Contains(key, "players-list") {
				return graph.ResolveValue(value), true
			}
		}
	}
	return nil, false
}

func extractRefPlayer(playerObj map[string]any) (RawPlayer, bool) {
	info, _ := playerObj["player"].(map[string]any)

	name := strings.TrimSpace(
		htmlutil.CleanText(stringField(info, "first_name") + " " + stringField(info, "last_name")))
	if name == "" {
		return RawPlayer{}, false
	}

	p := RawPlayer{
		Name:         name,
		Height:       refHeight(playerObj),
		JerseyNumber: jerseyField(playerObj, info),
		Hometown:     stringField(info, "hometown"),
		ProfileURL:   stringField(info, "slug"),
	}

	if posObj, ok := playerObj["player_position"].(map[string]any); ok {
		p.Position = stringField(posObj, "name")
	}
	if classObj, ok := playerObj["class_level"].(map[string]any); ok {
		p.Class = stringField(classObj, "abbreviation")
		if p.Class == "" {
			p.Class = stringField(classObj, "name")
		}
	}

	if info != nil {
		p.HighSchool = stringField(info, "high_school")
		if p.HighSchool == "" {
			p.HighSchool = stringField(info, "previous_school")
		}
	}
	if photo, ok := playerObj["photo"].(map[string]any); ok {
		p.PhotoURL = stringField(photo, "url")
	}
	if p.PhotoURL == "" && info != nil {
		if photo, ok := info["master_photo"].(map[string]any); ok {
			p.PhotoURL = stringField(photo, "url")
		}
	}

	return p, true
}

// refHeight joins the height_feet / height_inches pair; zero inches is
// a valid value, absent keys are not.
func refHeight(playerObj map[string]any) string {
	feet, feetOK := playerObj["height_feet"]
	inches, inchesOK := playerObj["height_inches"]
	if !feetOK || !inchesOK || feet == nil || inches == nil {
		return ""
	}
	feetText, inchesText := numberText(feet), numberText(inches)
	if feetText == "" || inchesText == "" {
		return ""
	}
	return feetText + "-" + inchesText
}

func jerseyField(playerObj, info map[string]any) string {
	candidates := []any{
		playerObj["jersey_number"],
		playerObj["jersey_number_label"],
	}
	if info != nil {
		candidates = append(candidates, info["jersey_number"])
	}
	for _, c := range candidates {
		switch v := c.(type) {
		case string:
			if s := strings.TrimSpace(v); s != "" {
				return s
			}
		case float64:
			return numberText(v)
		}
	}
	return ""
}

func stringField(obj map[string]any, key string) string {
	if obj == nil {
		return ""
	}
	s, _ := obj[key].(string)
	return htmlutil.CleanText(s)
}

func numberText(v any) string {
	switch n := v.(type) {
	case float64:
		if n == float64(int(n)) {
			return fmt.Sprintf("%d", int(n))
		}
		return fmt.Sprintf("%g", n)
	case string:
		return strings.TrimSpace(n)
	default:
		return ""
	}
}
