package teamanalysis

import (
	"regexp"
	"strings"
	"vbscout-backend/lib/configutil"
	"vbscout-backend/lib/textutil"
	"vbscout-backend/lib/vbnorm"
)

// TransferRecord is one portal entry from the transfer reference list.
type TransferRecord struct {
	Name    string `json:"name"`
	OldTeam string `json:"old_team"`
	NewTeam string `json:"new_team"`
}

// IncomingPlayer is one committed recruit or transfer joining a program
// next season.
type IncomingPlayer struct {
	Conference string
	School     string
	Name       string
	Position   string
	Club       string
}

// Ranking carries one team's external rating entry.
type Ranking struct {
	Team   string `json:"team"`
	Rank   string `json:"rank"`
	Record string `json:"record"`
}

// ReferencesConfig is the on-disk shape of the static reference data.
// Incoming players come as the conference-grouped text block they are
// maintained in rather than pre-structured records.
type ReferencesConfig struct {
	Transfers      []TransferRecord  `json:"transfers"`
	IncomingText   string            `json:"incoming_text"`
	RankingAliases map[string]string `json:"ranking_aliases"`
	Rankings       []Ranking         `json:"rankings"`
}

// References holds the static datasets consulted by every team run.
// Loaded once, immutable afterwards.
type References struct {
	transfers      []TransferRecord
	incoming       []IncomingPlayer
	rankingAliases textutil.AliasTable
	rankings       map[string]Ranking
}

// LoadReferences reads the reference config (with any .local override
// merged) and builds the lookup structures.
func LoadReferences(name string) (*References, error) {
	cfg, err := configutil.ReadConfig[ReferencesConfig](name)
	if err != nil {
		return nil, err
	}
	return NewReferences(cfg), nil
}

func NewReferences(cfg ReferencesConfig) *References {
	refs := &References{
		transfers:      cfg.Transfers,
		incoming:       ParseIncomingText(cfg.IncomingText),
		rankingAliases: textutil.AliasTable(cfg.RankingAliases),
		rankings:       make(map[string]Ranking, len(cfg.Rankings)),
	}
	for _, r := range cfg.Rankings {
		refs.rankings[textutil.SchoolKey(r.Team)] = r
	}
	return refs
}

// Ranking resolves a team's external rating, applying the manual alias
// table before canonicalizing the name.
func (r *References) Ranking(team string) (Ranking, bool) {
	if r == nil {
		return Ranking{}, false
	}
	key := textutil.SchoolKey(r.rankingAliases.Resolve(team))
	ranking, ok := r.rankings[key]
	return ranking, ok
}

func (r *References) IsOutgoingTransfer(playerName, team string) bool {
	return r.matchTransfer(playerName, team, func(t TransferRecord) string { return t.OldTeam })
}

func (r *References) IsIncomingTransfer(playerName, team string) bool {
	return r.matchTransfer(playerName, team, func(t TransferRecord) string { return t.NewTeam })
}

func (r *References) matchTransfer(playerName, team string, side func(TransferRecord) string) bool {
	if r == nil {
		return false
	}
	name := textutil.CanonicalName(playerName)
	teamKey := textutil.SchoolKey(team)
	if name == "" || teamKey == "" {
		return false
	}
	for _, t := range r.transfers {
		if textutil.CanonicalName(t.Name) != name {
			continue
		}
		if key := textutil.SchoolKey(side(t)); key != "" && key == teamKey {
			return true
		}
	}
	return false
}

// Role selects one of the four court roles for incoming-player queries.
// Pins cover both outside and right-side hitters.
type Role int

const (
	RoleSetter Role = iota
	RolePinHitter
	RoleMiddleBlocker
	RoleDefSpecialist
)

// IncomingByRole returns the incoming players joining the team who play
// the given role.
func (r *References) IncomingByRole(team string, role Role) []IncomingPlayer {
	if r == nil {
		return nil
	}
	teamKey := textutil.SchoolKey(team)
	if teamKey == "" {
		return nil
	}

	var result []IncomingPlayer
	for _, p := range r.incoming {
		if textutil.SchoolKey(p.School) != teamKey {
			continue
		}
		codes, err := vbnorm.ParsePositions(p.Position)
		if err != nil {
			continue
		}
		if roleMatches(role, codes) {
			result = append(result, p)
		}
	}
	return result
}

func roleMatches(role Role, codes vbnorm.PositionSet) bool {
	switch role {
	case RoleSetter:
		return codes.Has(vbnorm.Setter)
	case RolePinHitter:
		return codes.Has(vbnorm.Outside) || codes.Has(vbnorm.RightSide)
	case RoleMiddleBlocker:
		return codes.Has(vbnorm.Middle)
	case RoleDefSpecialist:
		return codes.Has(vbnorm.Defensive)
	}
	return false
}

var clubSuffix = regexp.MustCompile(`\((.+)\)\s*$`)

// ParseIncomingText parses the conference-grouped incoming-player text
// block:
//
//	America East Conference:
//	Addy Bianchini - University at Albany - Setter/OPP (NKYVC)
//
// Conference headers end with a colon; the club in parentheses and the
// position are optional. Lines before the first header or with fewer
// than two " - " parts are skipped.
func ParseIncomingText(raw string) []IncomingPlayer {
	var players []IncomingPlayer
	conference := ""

	for _, line := range strings.Split(raw, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if strings.HasSuffix(line, ":") {
			conference = strings.TrimSpace(strings.TrimSuffix(line, ":"))
			continue
		}
		if conference == "" {
			continue
		}

		club := ""
		if m := clubSuffix.FindStringSubmatchIndex(line); m != nil {
			club = strings.TrimSpace(line[m[2]:m[3]])
			line = strings.TrimRight(line[:m[0]], " ")
		}

		parts := strings.Split(line, " - ")
		for i := range parts {
			parts[i] = strings.TrimSpace(parts[i])
		}
		if len(parts) < 2 {
			continue
		}

		p := IncomingPlayer{
			Conference: conference,
			Name:       parts[0],
			School:     parts[1],
			Club:       club,
		}
		if len(parts) >= 3 {
			p.Position = parts[2]
		}
		players = append(players, p)
	}
	return players
}
