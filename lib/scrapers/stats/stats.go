// Package stats parses season statistics tables and indexes the rows by
// canonical player name for joining against roster records.
//
// Stats pages publish separate offensive and defensive tables whose
// columns overlap ("TA" means total attacks on offense but reception
// attempts on defense); the two are outer-merged per player with
// defensive collisions suffixed, mirroring how the tables are read.
package stats

import (
	"context"
	"strconv"
	"strings"
	"vbscout-backend/lib/htmlutil"
	"vbscout-backend/lib/textutil"

	"github.com/PuerkitoBio/goquery"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

var tracer = otel.Tracer("scrapers/stats")

// Line is one player's merged stat row. Stats is keyed by normalized
// snake_case column names ("kills", "sets_played", ...); only numeric
// cells are kept.
type Line struct {
	Player string
	Stats  map[string]float64
}

// PerSet returns a stat divided by sets played. It reports false when
// sets_played is absent or zero so callers never divide by zero.
func (l Line) PerSet(key string) (float64, bool) {
	sets := l.Stats["sets_played"]
	if sets <= 0 {
		return 0, false
	}
	v, ok := l.Stats[key]
	if !ok {
		return 0, false
	}
	return v / sets, true
}

// Book is the per-team stats lookup keyed by canonical player name.
type Book struct {
	lines map[string]Line
	// canonical names that appeared more than once within a single
	// table; their lines kept the first-seen row
	collisions map[string]bool
}

func (b *Book) Lookup(name string) (Line, bool) {
	if b == nil {
		return Line{}, false
	}
	line, ok := b.lines[textutil.CanonicalName(name)]
	return line, ok
}

// Ambiguous reports whether the player's stat line was picked
// arbitrarily because several rows shared the same canonical name.
func (b *Book) Ambiguous(name string) bool {
	if b == nil {
		return false
	}
	return b.collisions[textutil.CanonicalName(name)]
}

func (b *Book) Len() int {
	if b == nil {
		return 0
	}
	return len(b.lines)
}

// Players returns every canonical name in the book.
func (b *Book) Players() []string {
	if b == nil {
		return nil
	}
	names := make([]string, 0, len(b.lines))
	for name := range b.lines {
		names = append(names, name)
	}
	return names
}

// Table is a flattened HTML table: lowercase header keys plus raw cell
// rows.
type Table struct {
	Headers []string
	Rows    [][]string
}

// Parse extracts every table from a stats page and builds the merged
// player lookup.
func Parse(ctx context.Context, html string) (*Book, error) {
	_, span := tracer.Start(ctx, "Parse")
	defer span.End()

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		span.RecordError(err)
		return nil, err
	}

	tables := extractTables(doc)
	book := BuildBook(tables)
	span.AddEvent("built stats lookup", trace.WithAttributes(
		attribute.Int("tables", len(tables)),
		attribute.Int("players", book.Len()),
	))
	return book, nil
}

// extractTables reads every <table>, putting the explicitly classed
// offensiveStats / defensiveStats tables first so detection prefers
// them.
func extractTables(doc *goquery.Document) []Table {
	var classed, rest []Table
	doc.Find("table").Each(func(_ int, sel *goquery.Selection) {
		table, ok := flattenTable(sel)
		if !ok {
			return
		}
		class, _ := sel.Attr("class")
		if strings.Contains(class, "offensiveStats") || strings.Contains(class, "defensiveStats") {
			classed = append(classed, table)
		} else {
			rest = append(rest, table)
		}
	})
	return append(classed, rest...)
}

// flattenTable collapses a table to headers plus body rows. Stacked
// header rows (category row over column row) flatten to the last
// non-empty cell per column, the most specific label.
func flattenTable(sel *goquery.Selection) (Table, bool) {
	var headerRows [][]string
	var rows [][]string

	sel.Find("tr").Each(func(_ int, row *goquery.Selection) {
		var cells []string
		isHeader := row.Find("th").Length() > 0 && row.Find("td").Length() == 0
		row.Find("th,td").Each(func(_ int, cell *goquery.Selection) {
			cells = append(cells, htmlutil.SelectionText(cell))
		})
		if len(cells) == 0 {
			return
		}
		if isHeader && len(rows) == 0 {
			headerRows = append(headerRows, cells)
			return
		}
		rows = append(rows, cells)
	})

	if len(headerRows) == 0 || len(rows) == 0 {
		return Table{}, false
	}

	width := 0
	for _, hr := range headerRows {
		width = max(width, len(hr))
	}
	headers := make([]string, width)
	for col := 0; col < width; col++ {
		for _, hr := range headerRows {
			if col >= len(hr) {
				continue
			}
			label := strings.ToLower(strings.TrimSpace(hr[col]))
			if label != "" && !strings.HasPrefix(label, "unnamed") {
				headers[col] = label
			}
		}
	}
	return Table{Headers: headers, Rows: rows}, true
}

// statAliases maps raw column labels to canonical stat names. Labels
// not listed pass through unchanged.
var statAliases = map[string]string{
	"#": "number", "no": "number", "number": "number",

	"sp": "sets_played",
	"mp": "matches_played",
	"ms": "matches_started",
	"gp": "games_played",
	"gs": "games_started",

	"pts": "points",
	"pts/s": "points_per_set", "pt/s": "points_per_set", "points/set": "points_per_set",
	"k": "kills",
	"k/s": "kills_per_set", "kills/set": "kills_per_set",
	"e":  "attack_errors",
	"ta": "total_attacks",

	"a":   "assists",
	"a/s": "assists_per_set", "ast/set": "assists_per_set", "assists/set": "assists_per_set",

	"sa": "aces",
	"sa/s": "aces_per_set", "aces/set": "aces_per_set",
	"se": "service_errors",
	"re": "reception_errors",

	"d": "digs", "dig": "digs",
	"d/s": "digs_per_set", "digs/set": "digs_per_set",

	"bs": "block_solos",
	"ba": "block_assists",
	"tb": "total_blocks", "blk": "total_blocks",
	"blk/s": "blocks_per_set", "blocks/set": "blocks_per_set",

	"bhe": "ball_handling_errors",
}

// normalizeHeader maps one raw column label to its canonical name.
func normalizeHeader(label string) string {
	label = strings.ToLower(strings.TrimSpace(label))
	if canonical, ok := statAliases[label]; ok {
		return canonical
	}
	if strings.Contains(label, "player") || strings.Contains(label, "name") {
		return "player"
	}
	if strings.Contains(label, "pct") {
		return "hitting_pct"
	}
	return label
}

var offenseMarkers = markerSet(
	"k", "kills", "k/s", "kills/set",
	"pts", "pts/s", "points", "points/set",
	"a", "assists", "a/s", "assists/set",
	"sa", "aces", "sa/s", "aces/set",
	"pct", "hitting_pct",
)

var defenseMarkers = markerSet(
	"d", "dig", "digs", "d/s", "digs/set",
	"re", "recept", "reception_errors",
	"bs", "ba", "tb", "blk",
	"blk/s", "blocks/set",
	"bhe",
)

func markerSet(labels ...string) map[string]bool {
	set := make(map[string]bool, len(labels))
	for _, l := range labels {
		set[l] = true
	}
	return set
}

func hasPlayerColumn(t Table) bool {
	for _, h := range t.Headers {
		if strings.Contains(h, "player") || strings.Contains(h, "name") {
			return true
		}
	}
	return false
}

func matchesMarkers(t Table, markers map[string]bool) bool {
	if !hasPlayerColumn(t) {
		return false
	}
	for _, h := range t.Headers {
		if markers[h] {
			return true
		}
	}
	return false
}

func looksLikeOffense(t Table) bool { return matchesMarkers(t, offenseMarkers) }
func looksLikeDefense(t Table) bool { return matchesMarkers(t, defenseMarkers) }

// pickPlayerTable is the fallback when neither side was detected: any
// table with a player column and an assist-like column, else the first
// table.
func pickPlayerTable(tables []Table) (Table, bool) {
	for _, t := range tables {
		hasAssist := false
		for _, h := range t.Headers {
			if h == "a" || h == "ast" || h == "a/s" || strings.Contains(h, "assist") {
				hasAssist = true
				break
			}
		}
		if hasPlayerColumn(t) && hasAssist {
			return t, true
		}
	}
	if len(tables) > 0 {
		return tables[0], true
	}
	return Table{}, false
}

// BuildBook classifies tables, normalizes their columns and merges
// offense and defense per player. Defensive columns colliding with an
// offensive one get a _def suffix; the defensive total_attacks column
// really counts reception attempts and is renamed accordingly.
func BuildBook(tables []Table) *Book {
	var offense, defense *Table
	for i := range tables {
		if offense == nil && looksLikeOffense(tables[i]) {
			offense = &tables[i]
		}
		if defense == nil && looksLikeDefense(tables[i]) {
			defense = &tables[i]
		}
	}

	book := &Book{lines: map[string]Line{}, collisions: map[string]bool{}}

	if offense == nil && defense == nil {
		t, ok := pickPlayerTable(tables)
		if !ok {
			return book
		}
		mergeTable(book, t, "")
		return book
	}

	if offense != nil {
		mergeTable(book, *offense, "")
	}
	if defense != nil {
		mergeTable(book, *defense, "_def")
	}

	for key, line := range book.lines {
		if v, ok := line.Stats["total_attacks_def"]; ok {
			line.Stats["total_reception_attempts"] = v
			delete(line.Stats, "total_attacks_def")
			book.lines[key] = line
		}
	}
	return book
}

// mergeTable folds a table's rows into the book. collisionSuffix is
// appended to a stat name when the player already carries that stat
// from an earlier table.
func mergeTable(book *Book, t Table, collisionSuffix string) {
	playerIdx := -1
	normalized := make([]string, len(t.Headers))
	for i, h := range t.Headers {
		normalized[i] = normalizeHeader(h)
		if playerIdx < 0 && normalized[i] == "player" {
			playerIdx = i
		}
	}
	if playerIdx < 0 {
		return
	}

	seenInTable := map[string]bool{}
	for _, row := range t.Rows {
		if playerIdx >= len(row) {
			continue
		}
		rawName := strings.TrimSpace(row[playerIdx])
		key := textutil.CanonicalName(rawName)
		if key == "" {
			continue
		}
		if seenInTable[key] {
			// two rows for the same player in one table: keep the
			// first, remember the ambiguity
			book.collisions[key] = true
			continue
		}
		seenInTable[key] = true

		line, ok := book.lines[key]
		if !ok {
			line = Line{Player: rawName, Stats: map[string]float64{}}
		}

		for i, cell := range row {
			if i == playerIdx || i >= len(normalized) {
				continue
			}
			v, ok := parseStat(cell)
			if !ok {
				continue
			}
			name := normalized[i]
			if _, taken := line.Stats[name]; taken && collisionSuffix != "" {
				name += collisionSuffix
			}
			line.Stats[name] = v
		}
		book.lines[key] = line
	}
}

func parseStat(cell string) (float64, bool) {
	cell = strings.TrimSpace(strings.TrimSuffix(strings.ReplaceAll(cell, ",", ""), "%"))
	if cell == "" || cell == "-" {
		return 0, false
	}
	v, err := strconv.ParseFloat(cell, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}
