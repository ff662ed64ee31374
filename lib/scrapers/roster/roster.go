// Package roster extracts player records out of team roster pages.
//
// Athletics sites use a handful of incompatible page encodings (card
// grids, tables, heading lists, embedded reference-encoded JSON). Each
// encoding gets its own Strategy; Parse tries them in a fixed priority
// order, most page-shape-specific first, and stops at the first one
// that yields a plausible roster.
package roster

import (
	"context"
	"errors"
	"regexp"
	"strings"
	"vbscout-backend/lib/htmlutil"
	"vbscout-backend/lib/textutil"
	"vbscout-backend/lib/vbnorm"

	"github.com/PuerkitoBio/goquery"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

var tracer = otel.Tracer("scrapers/roster")

// ErrNoRoster signals that a strategy (or all of them) found nothing
// roster-shaped on the page. It is never fatal to a run.
var ErrNoRoster = errors.New("no roster found on page")

type StrategyID string

const (
	StrategyPersonCard   StrategyID = "person-card"
	StrategyRosterCard   StrategyID = "roster-card"
	StrategyTable        StrategyID = "table"
	StrategyHeadingCard  StrategyID = "heading-card"
	StrategyViewsTable   StrategyID = "views-table"
	StrategyRefGraph     StrategyID = "reference-graph"
	StrategyEmbeddedJSON StrategyID = "embedded-json"
	StrategyTextTriplet  StrategyID = "text-triplet"
	StrategyGenericTable StrategyID = "generic-table"
)

// RawPlayer carries the raw string fields pulled out of one page
// element. Values are cleaned of markup noise but not yet normalized;
// normalization belongs to vbnorm/textutil downstream.
type RawPlayer struct {
	Name         string
	Position     string
	Class        string
	Height       string
	ProfileURL   string
	JerseyNumber string
	Hometown     string
	HighSchool   string
	PhotoURL     string
}

// Result is a successful extraction, tagged with the strategy that won
// so diagnostics can report which page shape was recognized.
type Result struct {
	Strategy StrategyID
	Players  []RawPlayer
}

// Page is the parsed form of one roster page handed to strategies.
type Page struct {
	URL  string
	HTML string
	Doc  *goquery.Document
}

func NewPage(url, html string) (Page, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return Page{}, err
	}
	return Page{URL: url, HTML: html, Doc: doc}, nil
}

// Strategy is one self-contained extraction algorithm. Attempt returns
// ErrNoRoster when the page does not match its shape; any other error
// is treated the same way by the dispatcher but recorded on the span.
type Strategy interface {
	ID() StrategyID
	Attempt(ctx context.Context, page Page) ([]RawPlayer, error)
}

// priority order: most page-shape-specific first, generic heuristics
// last. Adding a strategy means adding it here; the dispatch loop
// never changes.
var strategies = []Strategy{
	personCardStrategy{},
	rosterCardStrategy{},
	tableStrategy{},
	headingCardStrategy{},
	viewsTableStrategy{},
	refGraphStrategy{},
	embeddedJSONStrategy{},
	textTripletStrategy{},
	genericTableStrategy{},
}

// Parse classifies the page and extracts its roster. It returns the
// first strategy's result that contains at least one plausibly named
// player, or ErrNoRoster when every strategy misses.
func Parse(ctx context.Context, url, html string) (Result, error) {
	ctx, span := tracer.Start(ctx, "Parse")
	defer span.End()

	page, err := NewPage(url, html)
	if err != nil {
		span.RecordError(err)
		return Result{}, err
	}

	for _, strategy := range strategies {
		players, err := strategy.Attempt(ctx, page)
		if err != nil {
			if !errors.Is(err, ErrNoRoster) {
				span.RecordError(err)
			}
			continue
		}

		players = scrubPlayers(players)
		if !plausible(players) {
			continue
		}

		span.AddEvent("strategy matched", trace.WithAttributes(
			attribute.String("strategy", string(strategy.ID())),
			attribute.Int("players", len(players)),
		))
		return Result{Strategy: strategy.ID(), Players: players}, nil
	}

	span.AddEvent("no strategy matched", trace.WithAttributes(
		attribute.String("url", url),
	))
	return Result{}, ErrNoRoster
}

// a strategy only wins when it produced at least one record with a
// real-looking name; headers or placeholder rows don't count
func plausible(players []RawPlayer) bool {
	for _, p := range players {
		if textutil.CanonicalName(p.Name) != "" {
			return true
		}
	}
	return false
}

// firstText returns the cleaned text of the first selector that
// matches anything non-empty under sel.
func firstText(sel *goquery.Selection, selectors ...string) string {
	for _, s := range selectors {
		node := sel.Find(s).First()
		if node.Length() == 0 {
			continue
		}
		if text := htmlutil.SelectionText(node); text != "" {
			return text
		}
	}
	return ""
}

// firstAttr returns the named attribute of the first selector match
// that carries it.
func firstAttr(sel *goquery.Selection, attr string, selectors ...string) string {
	for _, s := range selectors {
		node := sel.Find(s).First()
		if v, ok := node.Attr(attr); ok && strings.TrimSpace(v) != "" {
			return strings.TrimSpace(v)
		}
	}
	return ""
}

func digitsOnly(s string) string {
	var b strings.Builder
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// heightToken matches a whole feet-inches token: 6-2, 5'11, 6′2″ ...
var heightToken = regexp.MustCompile(
	`^\s*(?:\d{1,2}[-–]\d{1,2}|\d{1,2}'\d{1,2}"?|\d{1,2}[′’]\d{1,2}[″”"]?)\s*$`,
)

// looksLikeHeight reports whether a value is height-shaped anywhere in
// the string; used by the table sanity check.
var heightAnywhere = regexp.MustCompile(
	`\d{1,2}[-–]\d{1,2}|\d{1,2}['′’]\s?\d{1,2}[″”"]?`,
)

var trailingHeight = regexp.MustCompile(`\s*\d{1,2}['′’][- ]?\d{1,2}[″”"]?\s*$`)
var trailingDashHeight = regexp.MustCompile(`\s*\d{1,2}-\d{1,2}\s*$`)

// cleanPositionNoise removes height patterns that some sites append to
// position strings ("Left Side LS 5'10\"" -> "Left Side LS").
func cleanPositionNoise(position string) string {
	position = trailingHeight.ReplaceAllString(position, "")
	position = trailingDashHeight.ReplaceAllString(position, "")
	return strings.TrimSpace(position)
}

// isImpactEntry detects TEAM IMPACT honorary-member entries, which show
// up in the position or high school fields and are not players.
func isImpactEntry(p RawPlayer) bool {
	if strings.Contains(strings.ToLower(p.Position), "impact") {
		return true
	}
	return strings.Contains(strings.ToLower(p.HighSchool), "team impact")
}

// scrubPlayers applies the row hygiene shared by all strategies: field
// noise removal, placeholder rejection, honorary-entry filtering and
// first-seen de-duplication by canonical name.
func scrubPlayers(players []RawPlayer) []RawPlayer {
	seen := map[string]struct{}{}
	out := make([]RawPlayer, 0, len(players))

	for _, p := range players {
		if isImpactEntry(p) {
			continue
		}

		p.Position = cleanPositionNoise(p.Position)
		if vbnorm.IsHeightPlaceholder(p.Height) {
			p.Height = ""
		}
		if vbnorm.LooksLikeClubName(p.Class) {
			p.Class = ""
		}

		key := textutil.CanonicalName(p.Name)
		if key != "" {
			if _, dup := seen[key]; dup {
				continue
			}
			seen[key] = struct{}{}
		}

		out = append(out, p)
	}
	return out
}
