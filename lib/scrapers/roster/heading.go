package roster

import (
	"context"
	"regexp"
	"strings"
	"vbscout-backend/lib/htmlutil"

	"github.com/PuerkitoBio/goquery"
)

// headingCardStrategy handles layouts where each player is a heading
// linking to their profile, followed by a sibling details line like
// "Outside Hitter 6-2 Freshman Euless, Texas".
type headingCardStrategy struct{}

func (headingCardStrategy) ID() StrategyID { return StrategyHeadingCard }

var classWordPattern = regexp.MustCompile(
	`(?i)(Freshman|Sophomore|Junior|Senior|Graduate|Redshirt(?:\s+\w+)?)`,
)

func (headingCardStrategy) Attempt(ctx context.Context, page Page) ([]RawPlayer, error) {
	links := page.Doc.Find(
		"h1 a[href*='/roster/'], h2 a[href*='/roster/'], " +
			"h3 a[href*='/roster/'], h4 a[href*='/roster/']")
	if links.Length() == 0 {
		return nil, ErrNoRoster
	}

	var players []RawPlayer
	links.Each(func(_ int, link *goquery.Selection) {
		heading := link.Closest("h1,h2,h3,h4")
		if heading.Length() == 0 || inStaffSection(heading) {
			return
		}

		name := htmlutil.SelectionText(link)
		if name == "" {
			return
		}

		player := RawPlayer{Name: name}
		if href, ok := link.Attr("href"); ok {
			player.ProfileURL = strings.TrimSpace(href)
		}

		if details := nextSiblingText(heading); details != "" {
			player.Position, player.Height, player.Class = splitDetailsLine(details)
		}
		players = append(players, player)
	})

	if len(players) == 0 {
		return nil, ErrNoRoster
	}
	return players, nil
}

// inStaffSection walks the heading's ancestors looking for staff
// section markers.
func inStaffSection(heading *goquery.Selection) bool {
	for node := heading; node.Length() > 0; node = node.Parent() {
		text := strings.ToLower(htmlutil.SelectionText(node))
		if strings.Contains(text, "coaching staff") ||
			strings.Contains(text, "support staff") ||
			strings.Contains(text, "staff directory") {
			return true
		}
		if goquery.NodeName(node) == "body" {
			break
		}
	}
	return false
}

// nextSiblingText returns the first non-empty sibling text after the
// heading.
func nextSiblingText(heading *goquery.Selection) string {
	for sib := heading.Next(); sib.Length() > 0; sib = sib.Next() {
		if text := htmlutil.SelectionText(sib); text != "" {
			return text
		}
	}
	return ""
}

// splitDetailsLine splits "Position <height> <class> ..." on the first
// height-shaped token. Everything before it is the position; the class
// is the first class word after it.
func splitDetailsLine(details string) (position, height, class string) {
	tokens := strings.Fields(details)
	heightIdx := -1
	for i, tok := range tokens {
		if heightToken.MatchString(tok) {
			heightIdx = i
			break
		}
	}
	if heightIdx < 0 {
		return "", "", ""
	}

	position = strings.Join(tokens[:heightIdx], " ")
	height = tokens[heightIdx]
	tail := strings.Join(tokens[heightIdx+1:], " ")
	class = classWordPattern.FindString(tail)
	return position, height, class
}
