package roster

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestGraphResolveSelfReference(t *testing.T) {
	// index 2 points at itself; resolution must surface the raw value
	// instead of recursing
	graph := NewGraph([]any{"Jane Doe", "OH", float64(2)})

	require.Equal(t, "Jane Doe", graph.Resolve(0))
	require.Equal(t, "OH", graph.Resolve(1))
	require.Equal(t, float64(2), graph.Resolve(2))
}

func TestGraphResolveMutualCycle(t *testing.T) {
	// 0 -> 1 -> 0
	graph := NewGraph([]any{float64(1), float64(0)})

	// resolving 0 enters 1, whose back-reference to the in-progress 0
	// stays a terminal scalar
	require.Equal(t, float64(0), graph.Resolve(0))
	require.Equal(t, float64(0), graph.Resolve(1))
}

func TestGraphResolveChain(t *testing.T) {
	graph := NewGraph([]any{
		map[string]any{"player": float64(1)},
		map[string]any{"first_name": float64(2), "last_name": "Doe"},
		"Jane",
	})

	resolved, ok := graph.Resolve(0).(map[string]any)
	require.True(t, ok)
	player, ok := resolved["player"].(map[string]any)
	require.True(t, ok)
	require.Equal(t, "Jane", player["first_name"])
	require.Equal(t, "Doe", player["last_name"])
}

func TestGraphResolveOutOfRange(t *testing.T) {
	graph := NewGraph([]any{float64(99), float64(-1), float64(1.5)})

	require.Equal(t, float64(99), graph.Resolve(0))
	require.Equal(t, float64(-1), graph.Resolve(1))
	require.Equal(t, float64(1.5), graph.Resolve(2))
	require.Nil(t, graph.Resolve(50))
}

func TestGraphMemoization(t *testing.T) {
	data := []any{
		[]any{float64(1), float64(1), float64(1)},
		map[string]any{"name": "shared"},
	}
	graph := NewGraph(data)

	resolved, ok := graph.Resolve(0).([]any)
	require.True(t, ok)
	require.Len(t, resolved, 3)
	for _, elem := range resolved {
		obj, ok := elem.(map[string]any)
		require.True(t, ok)
		require.Equal(t, "shared", obj["name"])
	}
}

func TestExtractFromArray(t *testing.T) {
	// layout mirrors the interned arrays in the wild: an entry keyed
	// "roster-...-players-list-..." references the roster object, whose
	// players key references a list of player-entry references
	data := []any{
		map[string]any{"roster-55-players-list-page-1": float64(1)},
		map[string]any{"players": float64(2)},
		[]any{float64(3)},
		map[string]any{
			"player":          float64(4),
			"player_position": float64(5),
			"class_level":     float64(6),
		},
		map[string]any{
			"first_name": "Jane",
			"last_name":  "Doe",
			"hometown":   "Mesa, Arizona",
			"slug":       "/roster/jane-doe",
		},
		map[string]any{"name": "Outside Hitter"},
		map[string]any{"abbreviation": "So."},
	}

	players, ok := ExtractFromArray(data)
	require.True(t, ok)
	require.Len(t, players, 1)

	p := players[0]
	require.Equal(t, "Jane Doe", p.Name)
	require.Equal(t, "Outside Hitter", p.Position)
	require.Equal(t, "So.", p.Class)
	require.Equal(t, "", p.Height)
	require.Equal(t, "Mesa, Arizona", p.Hometown)
	require.Equal(t, "/roster/jane-doe", p.ProfileURL)
}

func TestExtractFromArrayNoRosterKey(t *testing.T) {
	_, ok := ExtractFromArray([]any{
		map[string]any{"unrelated": float64(1)},
		"noise",
	})
	require.False(t, ok)
}
