package roster

import (
	"context"
	"net/url"
	"strings"
	"vbscout-backend/lib/htmlutil"
	"vbscout-backend/lib/textutil"

	"github.com/PuerkitoBio/goquery"
)

// personCardStrategy handles the newer NextGen person-card grids, which
// mark every field with a data-test-id attribute.
type personCardStrategy struct{}

func (personCardStrategy) ID() StrategyID { return StrategyPersonCard }

func (personCardStrategy) Attempt(ctx context.Context, page Page) ([]RawPlayer, error) {
	cards := page.Doc.Find(".s-person-card")
	if cards.Length() == 0 {
		return nil, ErrNoRoster
	}

	// some pages render each player twice (grid + list view); keep the
	// variant that carries a profile link
	byName := map[string]RawPlayer{}
	var order []string

	cards.Each(func(_ int, card *goquery.Selection) {
		if isPersonCardStaff(card) {
			return
		}

		player := extractPersonCard(card, page.URL)
		if strings.Contains(player.ProfileURL, "/roster/coaches/") {
			return
		}

		key := textutil.CanonicalName(player.Name)
		if key == "" {
			return
		}
		if existing, ok := byName[key]; ok {
			if existing.ProfileURL == "" && player.ProfileURL != "" {
				byName[key] = player
			}
			return
		}
		byName[key] = player
		order = append(order, key)
	})

	if len(order) == 0 {
		return nil, ErrNoRoster
	}
	players := make([]RawPlayer, 0, len(order))
	for _, key := range order {
		players = append(players, byName[key])
	}
	return players, nil
}

// staff cards sit under coaching-staff sections, carry contact details,
// or mention a coach title in their text
func isPersonCardStaff(card *goquery.Selection) bool {
	if card.ParentsFiltered("[id*='coach'], [class*='coaching-staff']").Length() > 0 {
		return true
	}
	if card.Find(".s-person-card__content__contact-det").Length() > 0 {
		return true
	}
	return strings.Contains(strings.ToLower(htmlutil.SelectionText(card)), "coach")
}

func extractPersonCard(card *goquery.Selection, baseURL string) RawPlayer {
	photo := firstAttr(card, "src", `img[data-test-id='s-image-resized__img']`)

	return RawPlayer{
		Name: firstText(card, "h3"),
		Position: firstText(card,
			`[data-test-id='s-person-details__bio-stats-person-position-short']`),
		Class: firstText(card,
			`[data-test-id='s-person-details__bio-stats-person-title']`),
		Height: firstText(card,
			`[data-test-id='s-person-details__bio-stats-person-season']`),
		ProfileURL: firstAttr(card, "href",
			`[data-test-id='s-person-details__thumbnail-link']`,
			`[data-test-id='s-person-card-list__content-call-to-action-link']`),
		JerseyNumber: digitsOnly(firstText(card, ".s-stamp__text")),
		Hometown: stripLocationLabel(firstText(card,
			`[data-test-id='s-person-card-list__content-location-person-hometown']`)),
		HighSchool: stripLocationLabel(firstText(card,
			`[data-test-id='s-person-card-list__content-location-person-high-school']`)),
		PhotoURL: absoluteURL(baseURL, photo),
	}
}

// stripLocationLabel drops the "Hometown" / "High School" prefix some
// themes render inside the value element.
func stripLocationLabel(s string) string {
	for _, label := range []string{"Hometown", "High School", "Previous School"} {
		if strings.HasPrefix(s, label) {
			return strings.TrimSpace(strings.TrimPrefix(s, label))
		}
	}
	return s
}

func absoluteURL(base, ref string) string {
	if ref == "" || base == "" {
		return ref
	}
	baseURL, err := url.Parse(base)
	if err != nil {
		return ref
	}
	refURL, err := url.Parse(ref)
	if err != nil {
		return ref
	}
	return baseURL.ResolveReference(refURL).String()
}

// rosterCardStrategy handles the classic card tiles, where each roster
// field has a dedicated class name.
type rosterCardStrategy struct{}

func (rosterCardStrategy) ID() StrategyID { return StrategyRosterCard }

func (rosterCardStrategy) Attempt(ctx context.Context, page Page) ([]RawPlayer, error) {
	cards := page.Doc.Find(".sidearm-roster-player, .sidearm-roster-card")
	if cards.Length() == 0 {
		return nil, ErrNoRoster
	}

	var players []RawPlayer
	cards.Each(func(_ int, card *goquery.Selection) {
		// coaching staff blocks mention the title prominently
		text := strings.ToLower(htmlutil.SelectionText(card))
		if strings.Contains(text, "coach") && !strings.Contains(text, "volleyball") {
			return
		}

		name := firstText(card,
			".sidearm-roster-player-name",
			".sidearm-roster-player-name-link",
			"h3", "h2", "a[href]")
		if name == "" {
			return
		}

		players = append(players, RawPlayer{
			Name: name,
			Position: firstText(card,
				".sidearm-roster-player-position",
				".sidearm-roster-player-pos",
				"span[class*='pos']"),
			Class: firstText(card,
				".sidearm-roster-player-academic-year",
				".sidearm-roster-player-year",
				"span[class*='class']", "span[class*='year']"),
			Height: firstText(card,
				".sidearm-roster-player-height",
				"span[class*='height']"),
			JerseyNumber: digitsOnly(firstText(card,
				".sidearm-roster-player-jersey-number")),
			ProfileURL: firstAttr(card, "href",
				"a.sidearm-roster-player-name-link", "h3 a[href]", "a[href]"),
		})
	})

	if len(players) == 0 {
		return nil, ErrNoRoster
	}
	return players, nil
}
