package roster

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
)

const tableRosterHTML = `
<html><body>
<table>
  <thead>
    <tr><th>No.</th><th>Name</th><th>Pos.</th><th>Cl.</th><th>Ht.</th></tr>
  </thead>
  <tbody>
    <tr><td>7</td><td><a href="/roster/jane-smith">Smith, Jane</a></td><td>OH</td><td>Jr.</td><td>6-2</td></tr>
    <tr><td>12</td><td>Lopez, Maria</td><td>S</td><td>So.</td><td>5-11</td></tr>
    <tr><td></td><td>Pat Jones</td><td>Director of Operations</td><td></td><td></td></tr>
    <tr><td>7</td><td>Smith, Jane</td><td>OH</td><td>Jr.</td><td>6-2</td></tr>
  </tbody>
</table>
</body></html>`

func TestParseTableRoster(t *testing.T) {
	result, err := Parse(context.Background(), "https://example.edu/roster", tableRosterHTML)
	require.NoError(t, err)
	require.Equal(t, StrategyTable, result.Strategy)

	// staff row skipped, duplicate collapsed first-seen
	require.Len(t, result.Players, 2)
	require.Equal(t, RawPlayer{
		Name:       "Smith, Jane",
		Position:   "OH",
		Class:      "Jr.",
		Height:     "6-2",
		ProfileURL: "/roster/jane-smith",
	}, result.Players[0])
	require.Equal(t, "Lopez, Maria", result.Players[1].Name)
}

func TestParseNoRoster(t *testing.T) {
	_, err := Parse(context.Background(), "https://example.edu/news",
		`<html><body><p>Season tickets on sale now.</p></body></html>`)
	require.ErrorIs(t, err, ErrNoRoster)
}

func TestTableStrategyMisalignedColumns(t *testing.T) {
	// position column actually holds heights; the strategy must refuse
	// the whole table instead of emitting garbage
	html := `
<table>
  <thead><tr><th>Name</th><th>Position</th></tr></thead>
  <tbody>
    <tr><td>Smith, Jane</td><td>6-2</td></tr>
    <tr><td>Lopez, Maria</td><td>5-11</td></tr>
  </tbody>
</table>`
	page, err := NewPage("", html)
	require.NoError(t, err)

	_, err = tableStrategy{}.Attempt(context.Background(), page)
	require.ErrorIs(t, err, ErrNoRoster)
}

func TestParsePersonCards(t *testing.T) {
	html := `
<html><body>
<div class="s-person-card">
  <h3>Ana Prado</h3>
  <a data-test-id="s-person-details__thumbnail-link" href="/roster/ana-prado"></a>
  <span class="s-stamp__text">#4</span>
  <span data-test-id="s-person-details__bio-stats-person-position-short">MB</span>
  <span data-test-id="s-person-details__bio-stats-person-title">Sr.</span>
  <span data-test-id="s-person-details__bio-stats-person-season">6-3</span>
</div>
<div class="s-person-card">
  <h3>Jo Vance</h3>
  <div class="s-person-card__content__contact-det">jvance@example.edu</div>
</div>
</body></html>`
	result, err := Parse(context.Background(), "https://example.edu/roster", html)
	require.NoError(t, err)
	require.Equal(t, StrategyPersonCard, result.Strategy)

	// contact-details card is staff
	require.Len(t, result.Players, 1)
	player := result.Players[0]
	require.Equal(t, "Ana Prado", player.Name)
	require.Equal(t, "MB", player.Position)
	require.Equal(t, "Sr.", player.Class)
	require.Equal(t, "6-3", player.Height)
	require.Equal(t, "4", player.JerseyNumber)
	require.Equal(t, "/roster/ana-prado", player.ProfileURL)
}

func TestParseRosterCards(t *testing.T) {
	html := `
<html><body>
<li class="sidearm-roster-player">
  <div class="sidearm-roster-player-name"><a href="/roster/kim-cho">Kim Cho</a></div>
  <span class="sidearm-roster-player-position">DS/L</span>
  <span class="sidearm-roster-player-academic-year">R-So.</span>
  <span class="sidearm-roster-player-height">5-6</span>
</li>
<li class="sidearm-roster-player">
  <div class="sidearm-roster-player-name">Lee Park</div>
  <span class="sidearm-roster-player-position">Head Coach</span>
</li>
</body></html>`
	result, err := Parse(context.Background(), "https://example.edu/roster", html)
	require.NoError(t, err)
	require.Equal(t, StrategyRosterCard, result.Strategy)
	require.Len(t, result.Players, 1)
	require.Equal(t, "Kim Cho", result.Players[0].Name)
	require.Equal(t, "DS/L", result.Players[0].Position)
}

func TestParseHeadingCards(t *testing.T) {
	html := `
<html><body>
<h3><a href="/roster/eva-lindt">Eva Lindt</a></h3>
<div>Outside Hitter 6-1 Sophomore Mesa, Arizona</div>
<h3><a href="/roster/mia-rossi">Mia Rossi</a></h3>
<div>Setter 5-10 Redshirt Freshman Rome, Georgia</div>
</body></html>`
	result, err := Parse(context.Background(), "https://example.edu/roster", html)
	require.NoError(t, err)
	require.Equal(t, StrategyHeadingCard, result.Strategy)
	require.Len(t, result.Players, 2)

	require.Equal(t, "Outside Hitter", result.Players[0].Position)
	require.Equal(t, "6-1", result.Players[0].Height)
	require.Equal(t, "Sophomore", result.Players[0].Class)
	require.Equal(t, "Redshirt Freshman", result.Players[1].Class)
}

func TestParseViewsTable(t *testing.T) {
	html := `
<html><body>
<table>
  <tr><th>Name</th><th>Position</th></tr>
  <tr>
    <td class="views-field-title">Anna Blamires</td>
    <td class="views-field-field-position">Outside Hitter</td>
    <td class="views-field-field-height">6-2</td>
    <td class="views-field-field-year">Freshman</td>
    <td class="views-field-field-hometown">Euless, Texas</td>
  </tr>
</table>
</body></html>`
	page, err := NewPage("", html)
	require.NoError(t, err)

	players, err := viewsTableStrategy{}.Attempt(context.Background(), page)
	require.NoError(t, err)
	require.Len(t, players, 1)
	require.Equal(t, "Anna Blamires", players[0].Name)
	require.Equal(t, "Outside Hitter", players[0].Position)
	require.Equal(t, "Freshman", players[0].Class)
	require.Equal(t, "Euless, Texas", players[0].Hometown)
}

func TestParseTextTriplets(t *testing.T) {
	html := `
<html><body>
<div>9</div>
<div>Tess Young</div>
<div>Middle Blocker 6-4 Junior Provo, Utah Timpview High School</div>
<div>Upcoming Events</div>
<div>#14</div>
<div>Lia Moana</div>
<div>Libero 5-5 R-Sr Laie, Hawaii</div>
</body></html>`
	result, err := Parse(context.Background(), "https://example.edu/roster", html)
	require.NoError(t, err)
	require.Equal(t, StrategyTextTriplet, result.Strategy)
	require.Len(t, result.Players, 2)

	require.Equal(t, RawPlayer{
		Name:         "Tess Young",
		Position:     "Middle Blocker",
		Class:        "Junior",
		Height:       "6-4",
		JerseyNumber: "9",
	}, result.Players[0])
	require.Equal(t, "R-Sr", result.Players[1].Class)
}

func TestParseDetailsLine(t *testing.T) {
	tests := []struct {
		details  string
		position string
		height   string
		class    string
		ok       bool
	}{
		{"Outside Hitter 6-2 Freshman Euless, Texas", "Outside Hitter", "6-2", "Freshman", true},
		{"Setter 5'11 Redshirt Junior Provo, Utah", "Setter", "5'11", "Redshirt Junior", true},
		{"Outside Hitter Freshman", "", "", "", false},
		{"6-2 Freshman", "", "", "", false},
		{"", "", "", "", false},
	}
	for _, tt := range tests {
		position, height, class, ok := parseDetailsLine(tt.details)
		require.Equal(t, tt.ok, ok, tt.details)
		require.Equal(t, tt.position, position, tt.details)
		require.Equal(t, tt.height, height, tt.details)
		require.Equal(t, tt.class, class, tt.details)
	}
}

func TestScrubPlayers(t *testing.T) {
	players := scrubPlayers([]RawPlayer{
		{Name: "Smith, Jane", Position: "Outside Hitter 6'2\""},
		{Name: "Jane Smith", Position: "OH"},
		{Name: "Honorary Kid", Position: "Team IMPACT"},
		{Name: "Ada Lood", Height: "Jersey"},
		{Name: "Bea Cruz", Class: "Mountain VBC"},
	})

	// "Jane Smith" collapses into "Smith, Jane", the honorary entry is
	// dropped entirely
	require.Len(t, players, 3)
	require.Equal(t, "Smith, Jane", players[0].Name)
	require.Equal(t, "Outside Hitter", players[0].Position)
	require.Equal(t, "Ada Lood", players[1].Name)
	require.Equal(t, "", players[1].Height)
	require.Equal(t, "Bea Cruz", players[2].Name)
	require.Equal(t, "", players[2].Class)
}

func TestHeightTokenPattern(t *testing.T) {
	for _, good := range []string{"6-2", "5-11", "6'2", "6'2\"", "6′2″", "5’11"} {
		require.True(t, heightToken.MatchString(good), good)
	}
	for _, bad := range []string{"Freshman", "62", "6", "2023-24"} {
		require.False(t, heightToken.MatchString(bad), bad)
	}
}
