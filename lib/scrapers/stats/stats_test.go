package stats

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
)

const statsPageHTML = `
<html><body>
<table class="offensiveStats">
  <thead>
    <tr><th>Player</th><th>SP</th><th>K</th><th>TA</th><th>Pct</th><th>SA</th><th>A</th></tr>
  </thead>
  <tbody>
    <tr><td>Smith, Jane</td><td>88</td><td>310</td><td>820</td><td>.262</td><td>22</td><td>12</td></tr>
    <tr><td>Lopez, Maria</td><td>90</td><td>25</td><td>80</td><td>.150</td><td>30</td><td>1012</td></tr>
  </tbody>
</table>
<table class="defensiveStats">
  <thead>
    <tr><th>Player</th><th>SP</th><th>D</th><th>TA</th><th>RE</th><th>TB</th></tr>
  </thead>
  <tbody>
    <tr><td>Smith, Jane</td><td>88</td><td>280</td><td>410</td><td>9</td><td>41</td></tr>
    <tr><td>Cho, Kim</td><td>85</td><td>402</td><td>510</td><td>12</td><td>3</td></tr>
  </tbody>
</table>
</body></html>`

func TestParseMergesOffenseAndDefense(t *testing.T) {
	book, err := Parse(context.Background(), statsPageHTML)
	require.NoError(t, err)
	require.Equal(t, 3, book.Len())

	line, ok := book.Lookup("Jane Smith")
	require.True(t, ok)
	require.Equal(t, "Smith, Jane", line.Player)
	require.Equal(t, 310.0, line.Stats["kills"])
	require.Equal(t, 820.0, line.Stats["total_attacks"])
	require.Equal(t, 22.0, line.Stats["aces"])
	require.Equal(t, 280.0, line.Stats["digs"])
	require.Equal(t, 41.0, line.Stats["total_blocks"])

	// defensive TA counts reception attempts, not attacks
	require.Equal(t, 410.0, line.Stats["total_reception_attempts"])
	require.NotContains(t, line.Stats, "total_attacks_def")

	// sets played collides across the two tables; the defensive copy is
	// suffixed instead of clobbering
	require.Equal(t, 88.0, line.Stats["sets_played"])
	require.Equal(t, 88.0, line.Stats["sets_played_def"])

	// defense-only player still present
	_, ok = book.Lookup("Kim Cho")
	require.True(t, ok)
}

func TestPerSet(t *testing.T) {
	line := Line{Stats: map[string]float64{"sets_played": 80, "kills": 320}}

	perSet, ok := line.PerSet("kills")
	require.True(t, ok)
	require.Equal(t, 4.0, perSet)

	_, ok = line.PerSet("digs")
	require.False(t, ok)

	zero := Line{Stats: map[string]float64{"sets_played": 0, "kills": 5}}
	_, ok = zero.PerSet("kills")
	require.False(t, ok)
}

func TestFlattenTableStackedHeaders(t *testing.T) {
	html := `
<table>
  <thead>
    <tr><th></th><th>Attack</th><th>Attack</th><th>Serve</th></tr>
    <tr><th>Player</th><th>K</th><th>TA</th><th>SA</th></tr>
  </thead>
  <tbody>
    <tr><td>Prado, Ana</td><td>100</td><td>300</td><td>15</td></tr>
  </tbody>
</table>`
	book, err := Parse(context.Background(), html)
	require.NoError(t, err)

	line, ok := book.Lookup("Ana Prado")
	require.True(t, ok)
	require.Equal(t, 100.0, line.Stats["kills"])
	require.Equal(t, 300.0, line.Stats["total_attacks"])
	require.Equal(t, 15.0, line.Stats["aces"])
}

func TestBuildBookFallbackTable(t *testing.T) {
	tables := []Table{
		{
			Headers: []string{"date", "opponent", "result"},
			Rows:    [][]string{{"9/1", "State", "W 3-0"}},
		},
		{
			Headers: []string{"name", "ast", "hmm"},
			Rows:    [][]string{{"Lopez, Maria", "1012", "x"}},
		},
	}
	book := BuildBook(tables)

	line, ok := book.Lookup("Maria Lopez")
	require.True(t, ok)
	require.Equal(t, 1012.0, line.Stats["ast"])
}

func TestBuildBookDuplicateRows(t *testing.T) {
	tables := []Table{{
		Headers: []string{"player", "k"},
		Rows: [][]string{
			{"Smith, Jane", "310"},
			{"Jane Smith", "12"},
		},
	}}
	book := BuildBook(tables)

	// first-seen row wins, and the collision is queryable
	line, ok := book.Lookup("Jane Smith")
	require.True(t, ok)
	require.Equal(t, 310.0, line.Stats["kills"])
	require.True(t, book.Ambiguous("Smith, Jane"))
	require.False(t, book.Ambiguous("Maria Lopez"))
}

func TestParseStatValues(t *testing.T) {
	tests := []struct {
		cell string
		want float64
		ok   bool
	}{
		{"310", 310, true},
		{".262", 0.262, true},
		{"1,012", 1012, true},
		{"45%", 45, true},
		{"-", 0, false},
		{"", 0, false},
		{"DNP", 0, false},
	}
	for _, tt := range tests {
		v, ok := parseStat(tt.cell)
		require.Equal(t, tt.ok, ok, tt.cell)
		if tt.ok {
			require.Equal(t, tt.want, v, tt.cell)
		}
	}
}

func TestParseEmptyPage(t *testing.T) {
	book, err := Parse(context.Background(), "<html><body><p>No stats yet.</p></body></html>")
	require.NoError(t, err)
	require.Equal(t, 0, book.Len())
	_, ok := book.Lookup("Anyone")
	require.False(t, ok)
}
