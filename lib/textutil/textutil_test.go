package textutil

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNormalizePlayerName(t *testing.T) {
	testCases := []struct {
		raw      string
		expected string
	}{
		{"Jane Doe", "Jane Doe"},
		{"Doe, Jane", "Jane Doe"},
		{"12 Doe, Jane", "Jane Doe"},
		{"Jane Doe 12", "Jane Doe"},
		{"  Jane   Doe ", "Jane Doe"},
		{"#5 Smith, Anna Marie", "Anna Marie Smith"},
	}

	for _, test := range testCases {
		require.Equal(t, test.expected, NormalizePlayerName(test.raw), "raw: %q", test.raw)
	}
}

func TestCanonicalNameOrderIndependence(t *testing.T) {
	// leading jersey number + inverted order must collapse to the same key
	require.Equal(t, CanonicalName("Jane Doe"), CanonicalName("12 Doe, Jane"))
	require.Equal(t, CanonicalName("Jane Doe"), CanonicalName("doe jane"))
	require.NotEqual(t, CanonicalName("Jane Doe"), CanonicalName("Jane Smith"))
}

func TestCanonicalNameDiacritics(t *testing.T) {
	require.Equal(t, CanonicalName("Sofia Martinez"), CanonicalName("Sofía Martínez"))
}

func TestSchoolKey(t *testing.T) {
	testCases := []struct {
		raw      string
		expected string
	}{
		{"University of Nebraska", "nebraska"},
		{"The Ohio State University", "ohio state"},
		{"Boston College", "boston"},
		{"St. John's University", "st john s"},
	}

	for _, test := range testCases {
		require.Equal(t, test.expected, SchoolKey(test.raw), "raw: %q", test.raw)
	}
}

func TestAliasTable(t *testing.T) {
	aliases := AliasTable{"UConn": "Connecticut"}
	require.Equal(t, "Connecticut", aliases.Resolve("UConn"))
	require.Equal(t, "Penn State", aliases.Resolve("Penn State"))
}

func TestJoinKeySymmetry(t *testing.T) {
	a := NewJoinKey("Doe, Jane", "University of Nebraska")
	b := NewJoinKey("Jane Doe", "Nebraska")
	require.Equal(t, a, b)
}

func TestNearest(t *testing.T) {
	best, sim := Nearest("jane doe", []string{"jane doee", "john smith"})
	require.Equal(t, "jane doee", best)
	require.Greater(t, sim, 0.9)

	_, sim = Nearest("jane doe", nil)
	require.Zero(t, sim)
}
