package vbnorm

import (
	"testing"

	"github.com/stretchr/testify/require"
)

// every delimiter convention for the same physical height must land on
// the same inches value
func TestParseHeightDelimiterEquivalence(t *testing.T) {
	variants := []string{
		"6-2",
		"6'2",
		"6'2\"",
		"6′2",
		"6′2″",
		"6’2”",
		"6 - 2",
		"6' 2\"",
	}
	for _, raw := range variants {
		require.Equal(t, 74, ParseHeight(raw), "raw: %q", raw)
	}
}

func TestParseHeight(t *testing.T) {
	testCases := []struct {
		raw      string
		expected int
	}{
		{"5-11", 71},
		{"6-0", 72},
		{"4-10", 58},
		{"7-0", 84},
		{"", HeightUnknown},
		{"0-0", HeightUnknown},
		{"3-2", HeightUnknown},  // implausible feet
		{"8-1", HeightUnknown},  // implausible feet
		{"6-13", HeightUnknown}, // implausible inches
		{"tall", HeightUnknown},
	}

	for _, test := range testCases {
		require.Equal(t, test.expected, ParseHeight(test.raw), "raw: %q", test.raw)
	}
}

func TestParseHeightRejectsPlaceholders(t *testing.T) {
	// a neighboring column header leaking into the height cell must not
	// produce a parsed zero
	require.Equal(t, HeightUnknown, ParseHeight("Jersey Number"))
	require.Equal(t, HeightUnknown, ParseHeight("Number"))
	require.True(t, IsHeightPlaceholder("Jersey Number"))
	require.False(t, IsHeightPlaceholder("6-2"))
}

func TestFormatHeight(t *testing.T) {
	require.Equal(t, "6-2", FormatHeight(74))
	require.Equal(t, "5-11", FormatHeight(71))
	require.Equal(t, "", FormatHeight(HeightUnknown))
}
