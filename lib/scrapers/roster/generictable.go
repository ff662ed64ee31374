package roster

import (
	"context"

	"github.com/PuerkitoBio/goquery"
)

// genericTableStrategy is the last resort: any table whose first row
// names a player column, with columns inferred by keyword. It can
// mis-read unusual schools, which is why it dispatches last.
type genericTableStrategy struct{}

func (genericTableStrategy) ID() StrategyID { return StrategyGenericTable }

func (genericTableStrategy) Attempt(ctx context.Context, page Page) ([]RawPlayer, error) {
	var players []RawPlayer

	page.Doc.Find("table").EachWithBreak(func(_ int, table *goquery.Selection) bool {
		rows := table.Find("tr")
		if rows.Length() < 2 {
			return true
		}

		headers := headerTexts(rows.First().Find("th,td"))
		nameIdx := findColumn(headers, "name", "player")
		posIdx := findColumn(headers, "pos", "position")
		classIdx := findColumn(headers, "class", "year")
		heightIdx := findColumn(headers, "ht", "height")
		if nameIdx < 0 {
			return true
		}

		rows.Slice(1, rows.Length()).Each(func(_ int, row *goquery.Selection) {
			cells := row.Find("td,th")
			if cells.Length() == 0 {
				return
			}
			texts := cellTexts(cells)

			name := cellText(texts, nameIdx)
			if name == "" {
				return
			}
			players = append(players, RawPlayer{
				Name:     name,
				Position: cellText(texts, posIdx),
				Class:    cellText(texts, classIdx),
				Height:   cellText(texts, heightIdx),
			})
		})
		return len(players) == 0
	})

	if len(players) == 0 {
		return nil, ErrNoRoster
	}
	return players, nil
}
