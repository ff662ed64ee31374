package vbnorm

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseClass(t *testing.T) {
	testCases := []struct {
		raw      string
		expected Class
	}{
		{"Freshman", Freshman},
		{"Fr.", Freshman},
		{"FY", Freshman},
		{"First Year", Freshman},
		{"First-Year", Freshman},
		{"Sophomore", Sophomore},
		{"So.", Sophomore},
		{"Junior", Junior},
		{"Jr", Junior},
		{"Senior", Senior},
		{"Sr.", Senior},
		{"Redshirt Freshman", RedshirtFreshman},
		{"R-Fr", RedshirtFreshman},
		{"RFr", RedshirtFreshman},
		{"R-Fy", RedshirtFreshman},
		{"Redshirt Sophomore", RedshirtSophomore},
		{"R-So", RedshirtSophomore},
		{"R-Jr", RedshirtJunior},
		{"Redshirt Senior", RedshirtSenior},
		{"R-Sr", RedshirtSenior},
		{"R-Sr.", RedshirtSenior},
		{"Graduate", Graduate},
		{"Gr.", Graduate},
		{"Grad Student", Graduate},
		{"Fifth Year", FifthYear},
		{"5th", FifthYear},
		{"6th Year", FifthYear},
		{"", ClassUnknown},
		{"N/A", ClassUnknown},
	}

	for _, test := range testCases {
		require.Equal(t, test.expected, ParseClass(test.raw), "raw: %q", test.raw)
	}
}

func TestParseClassRejectsClubNames(t *testing.T) {
	for _, raw := range []string{
		"Premier VBC",
		"Club Nation Volleyball",
		"Team Volleyball Club 18s",
	} {
		require.Equal(t, ClassUnknown, ParseClass(raw), "raw: %q", raw)
		require.True(t, LooksLikeClubName(raw), "raw: %q", raw)
	}

	// single weak keyword is not enough to call it a club
	require.False(t, LooksLikeClubName("Team Captain"))
}

func TestClassNext(t *testing.T) {
	testCases := []struct {
		current  Class
		expected Class
	}{
		{Freshman, Sophomore},
		{RedshirtFreshman, RedshirtSophomore},
		{Sophomore, Junior},
		{RedshirtSophomore, RedshirtJunior},
		{Junior, Senior},
		{RedshirtJunior, RedshirtSenior},
		{Senior, Graduate},
		{RedshirtSenior, Graduate},
		{Graduate, Graduate},
		{FifthYear, Graduate},
		{ClassUnknown, ClassUnknown},
	}

	for _, test := range testCases {
		require.Equal(t, test.expected, test.current.Next())
	}
}

func TestClassGraduating(t *testing.T) {
	require.True(t, Senior.Graduating())
	require.True(t, RedshirtSenior.Graduating())
	require.True(t, Graduate.Graduating())
	require.True(t, FifthYear.Graduating())
	require.False(t, Junior.Graduating())
	require.False(t, ClassUnknown.Graduating())
}
