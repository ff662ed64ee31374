package roster

import (
	"context"
	"strings"
	"vbscout-backend/lib/htmlutil"

	"github.com/PuerkitoBio/goquery"
)

var staffPositionKeywords = []string{
	"director", "coordinator", "trainer", "advisor", "communications",
	"operations", "strength", "conditioning", "manager", "admin",
}

// tableStrategy handles tables with a proper <thead> naming at least a
// name and a position column.
type tableStrategy struct{}

func (tableStrategy) ID() StrategyID { return StrategyTable }

func (tableStrategy) Attempt(ctx context.Context, page Page) ([]RawPlayer, error) {
	var players []RawPlayer

	page.Doc.Find("table").EachWithBreak(func(_ int, table *goquery.Selection) bool {
		thead := table.Find("thead").First()
		if thead.Length() == 0 {
			return true
		}

		headers := headerTexts(thead.Find("th"))
		nameIdx := findColumn(headers, "name", "player")
		posIdx := findColumn(headers, "pos", "position")
		classIdx := findColumn(headers, "class", "year", "yr", "eligibility", "cl")
		heightIdx := findColumn(headers, "ht", "height")
		if nameIdx < 0 || posIdx < 0 {
			return true
		}

		body := table.Find("tbody").First()
		if body.Length() == 0 {
			body = table
		}

		body.Find("tr").Each(func(_ int, row *goquery.Selection) {
			cells := row.Find("td,th")
			if cells.Length() < 2 {
				return
			}
			texts := cellTexts(cells)

			if isStaffRow(texts, cellText(texts, posIdx)) {
				return
			}

			name := cellText(texts, nameIdx)
			if name == "" {
				return
			}

			players = append(players, RawPlayer{
				Name:       name,
				Position:   cellText(texts, posIdx),
				Class:      cellText(texts, classIdx),
				Height:     cellText(texts, heightIdx),
				ProfileURL: rowProfileURL(cells, nameIdx),
			})
		})
		return len(players) == 0
	})

	if len(players) == 0 {
		return nil, ErrNoRoster
	}

	// sanity check: some sites render a table whose position column
	// actually holds heights. When at least half the rows look that
	// way the column mapping is wrong; discard the whole result so a
	// later strategy gets a chance.
	misaligned := 0
	for _, p := range players {
		if heightAnywhere.MatchString(p.Position) {
			misaligned++
		}
	}
	if misaligned >= max(1, len(players)/2) {
		return nil, ErrNoRoster
	}

	return players, nil
}

func headerTexts(cells *goquery.Selection) []string {
	var headers []string
	cells.Each(func(_ int, cell *goquery.Selection) {
		headers = append(headers, strings.ToLower(htmlutil.SelectionText(cell)))
	})
	return headers
}

// findColumn returns the first header index containing any keyword,
// scanning keywords in priority order.
func findColumn(headers []string, keywords ...string) int {
	for _, kw := range keywords {
		for i, h := range headers {
			if strings.Contains(h, kw) {
				return i
			}
		}
	}
	return -1
}

func cellTexts(cells *goquery.Selection) []string {
	var texts []string
	cells.Each(func(_ int, cell *goquery.Selection) {
		texts = append(texts, htmlutil.SelectionText(cell))
	})
	return texts
}

func cellText(texts []string, idx int) string {
	if idx < 0 || idx >= len(texts) {
		return ""
	}
	return texts[idx]
}

func rowProfileURL(cells *goquery.Selection, nameIdx int) string {
	cell := cells.Eq(nameIdx)
	href, _ := cell.Find("a[href]").First().Attr("href")
	return strings.TrimSpace(href)
}

func isStaffRow(texts []string, position string) bool {
	rowText := strings.ToLower(strings.Join(texts, " "))
	if strings.Contains(rowText, "coach") && !strings.Contains(rowText, "volleyball") {
		return true
	}
	lowerPos := strings.ToLower(position)
	for _, kw := range staffPositionKeywords {
		if strings.Contains(lowerPos, kw) {
			return true
		}
	}
	return false
}

// viewsTableStrategy handles CMS-generated tables that tag each cell
// with a views-field-* class instead of relying on column order.
type viewsTableStrategy struct{}

func (viewsTableStrategy) ID() StrategyID { return StrategyViewsTable }

func (viewsTableStrategy) Attempt(ctx context.Context, page Page) ([]RawPlayer, error) {
	var players []RawPlayer

	page.Doc.Find("table tr").Each(func(_ int, row *goquery.Selection) {
		if row.Find("th").Length() > 0 {
			return
		}

		name := firstText(row, ".views-field-title", ".views-field-name")
		if name == "" {
			return
		}

		players = append(players, RawPlayer{
			Name:     name,
			Position: firstText(row, ".views-field-field-position"),
			Class:    firstText(row, ".views-field-field-year", ".views-field-field-class"),
			Height:   firstText(row, ".views-field-field-height"),
			Hometown: firstText(row, ".views-field-field-hometown"),
		})
	})

	if len(players) == 0 {
		return nil, ErrNoRoster
	}
	return players, nil
}
