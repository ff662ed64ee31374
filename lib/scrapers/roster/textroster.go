package roster

import (
	"context"
	"strings"
	"vbscout-backend/lib/htmlutil"

	"golang.org/x/net/html"
)

// textTripletStrategy is the fallback for rosters rendered as bare text
// runs of jersey number, player name, then a details line like
// "Outside Hitter 6-2 Freshman Euless, Texas Colleyville Heritage HS".
type textTripletStrategy struct{}

func (textTripletStrategy) ID() StrategyID { return StrategyTextTriplet }

var classYearWords = map[string]bool{
	"fr": true, "fr.": true, "freshman": true,
	"so": true, "so.": true, "sophomore": true,
	"jr": true, "jr.": true, "junior": true,
	"sr": true, "sr.": true, "senior": true,
	"gr": true, "gr.": true, "graduate": true,
	"r-fr": true, "r-so": true, "r-jr": true, "r-sr": true,
	"redshirt": true,
}

func (textTripletStrategy) Attempt(ctx context.Context, page Page) ([]RawPlayer, error) {
	lines := textLines(page.Doc.Get(0))

	var players []RawPlayer
	for i := 0; i+2 < len(lines); {
		jersey := strings.TrimLeft(lines[i], "#")
		if !isJerseyNumber(jersey) {
			i++
			continue
		}

		name := lines[i+1]
		position, height, class, ok := parseDetailsLine(lines[i+2])
		if !ok || name == "" {
			i++
			continue
		}

		players = append(players, RawPlayer{
			Name:         name,
			Position:     position,
			Class:        class,
			Height:       height,
			JerseyNumber: jersey,
		})
		i += 3
	}

	if len(players) == 0 {
		return nil, ErrNoRoster
	}
	return players, nil
}

// isJerseyNumber accepts 1-2 digit strings; anything longer is a year
// or an id.
func isJerseyNumber(s string) bool {
	if len(s) < 1 || len(s) > 2 {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

// parseDetailsLine splits "Position <height> <class words> <rest>" by
// locating the height token, then the contiguous run of class words
// after it. All three parts must be present for the line to count.
func parseDetailsLine(details string) (position, height, class string, ok bool) {
	tokens := strings.Fields(details)

	heightIdx := -1
	for i, tok := range tokens {
		if heightToken.MatchString(tok) {
			heightIdx = i
			break
		}
	}
	if heightIdx < 0 {
		return "", "", "", false
	}

	position = strings.Join(tokens[:heightIdx], " ")
	height = tokens[heightIdx]

	classStart, classEnd := -1, -1
	for j := heightIdx + 1; j < len(tokens); j++ {
		if !classYearWords[strings.ToLower(strings.Trim(tokens[j], ","))] {
			continue
		}
		classStart, classEnd = j, j
		for k := j + 1; k < len(tokens); k++ {
			if !classYearWords[strings.ToLower(strings.Trim(tokens[k], ","))] {
				break
			}
			classEnd = k
		}
		break
	}
	if classStart < 0 {
		return "", "", "", false
	}
	class = strings.Join(tokens[classStart:classEnd+1], " ")

	if position == "" || class == "" {
		return "", "", "", false
	}
	return position, height, class, true
}

// textLines walks the document in order collecting cleaned, non-empty
// text node contents, skipping script and style subtrees.
func textLines(root *html.Node) []string {
	var lines []string
	var walk func(*html.Node)
	walk = func(node *html.Node) {
		if node == nil {
			return
		}
		if node.Type == html.ElementNode && (node.Data == "script" || node.Data == "style") {
			return
		}
		if node.Type == html.TextNode {
			if text := htmlutil.CleanText(node.Data); text != "" {
				lines = append(lines, text)
			}
			return
		}
		for child := node.FirstChild; child != nil; child = child.NextSibling {
			walk(child)
		}
	}
	walk(root)
	return lines
}
