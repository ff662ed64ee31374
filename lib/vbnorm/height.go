package vbnorm

import (
	"regexp"
	"strconv"
	"strings"
)

// HeightUnknown is the explicit unknown marker for heights; a parsed
// height is always a positive inches value.
const HeightUnknown = 0

var heightApostrophe = regexp.MustCompile(`(\d+)\s*'\s*(\d+)`)
var heightDash = regexp.MustCompile(`(\d+)\s*[-–]\s*(\d+)`)
var heightDigits = regexp.MustCompile(`\d+`)

var heightMarkReplacer = strings.NewReplacer(
	"′", "'", // prime
	"’", "'", // curly apostrophe
	"`", "'",
	"″", "",
	"”", "",
	"\"", "",
	"in", "",
)

// ParseHeight normalizes feet-inches notation ("6-2", "6'2\"", "6′2″")
// into total inches. Placeholder leakage (a column-header string where a
// value should be, or an all-zero height) and out-of-range values yield
// HeightUnknown rather than a bogus parse.
func ParseHeight(raw string) int {
	s := strings.TrimSpace(raw)
	if s == "" || IsHeightPlaceholder(s) {
		return HeightUnknown
	}

	s = strings.ToLower(heightMarkReplacer.Replace(s))

	m := heightApostrophe.FindStringSubmatch(s)
	if m == nil {
		m = heightDash.FindStringSubmatch(s)
	}
	if m != nil {
		return toInches(m[1], m[2])
	}

	// last resort: exactly two numbers anywhere in the string
	nums := heightDigits.FindAllString(s, -1)
	if len(nums) == 2 {
		return toInches(nums[0], nums[1])
	}
	return HeightUnknown
}

func toInches(feetStr, inchesStr string) int {
	feet, err := strconv.Atoi(feetStr)
	if err != nil {
		return HeightUnknown
	}
	inches, err := strconv.Atoi(inchesStr)
	if err != nil {
		return HeightUnknown
	}
	// rejects the all-zero "0-0" placeholder along with nonsense values
	if feet < 4 || feet > 7 || inches < 0 || inches >= 12 {
		return HeightUnknown
	}
	return feet*12 + inches
}

// IsHeightPlaceholder catches sites that render an adjacent column
// header ("Jersey Number") into the height cell.
func IsHeightPlaceholder(raw string) bool {
	low := strings.ToLower(raw)
	return strings.Contains(low, "jersey") || strings.Contains(low, "number")
}

// FormatHeight renders inches back into the conventional F-I form for
// display; unknown heights render empty.
func FormatHeight(inches int) string {
	if inches <= 0 {
		return ""
	}
	return strconv.Itoa(inches/12) + "-" + strconv.Itoa(inches%12)
}
