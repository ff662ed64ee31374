package teamanalysis

import (
	"errors"
	"fmt"
	"vbscout-backend/lib/scrapers/roster"
	"vbscout-backend/lib/scrapers/stats"
	"vbscout-backend/lib/textutil"
	"vbscout-backend/lib/vbnorm"
)

// assemblePlayer normalizes one raw roster record into a Player,
// reporting every field that failed to normalize. Rejected fields keep
// their raw value next to the unknown normalized one; nothing here
// drops the record.
func assemblePlayer(team Team, raw roster.RawPlayer, refs *References) (Player, []Diagnostic) {
	var diags []Diagnostic

	name := textutil.NormalizePlayerName(raw.Name)

	p := Player{
		Team:       team.Name,
		Conference: team.Conference,

		Name:        name,
		PositionRaw: raw.Position,
		ClassRaw:    raw.Class,
		HeightRaw:   raw.Height,

		JerseyNumber: raw.JerseyNumber,
		Hometown:     raw.Hometown,
		HighSchool:   raw.HighSchool,
		ProfileURL:   raw.ProfileURL,
	}

	codes, err := vbnorm.ParsePositions(raw.Position)
	switch {
	case errors.Is(err, vbnorm.ErrSuspectedStaff):
		diags = append(diags, Diagnostic{
			Kind: DiagSuspectedNonPlayer, Team: team.Name, Player: name,
			Field: "position", Raw: raw.Position,
		})
	case errors.Is(err, vbnorm.ErrNumericValue):
		diags = append(diags, Diagnostic{
			Kind: DiagFieldRejected, Team: team.Name, Player: name,
			Field: "position", Raw: raw.Position,
		})
	}
	p.Positions = codes

	p.Class = vbnorm.ParseClass(raw.Class)
	if p.Class == vbnorm.ClassUnknown && raw.Class != "" {
		diags = append(diags, Diagnostic{
			Kind: DiagFieldRejected, Team: team.Name, Player: name,
			Field: "class", Raw: raw.Class,
		})
	}
	if p.Class != vbnorm.ClassUnknown {
		p.ClassNext = p.Class.Next()
	}

	p.HeightInches = vbnorm.ParseHeight(raw.Height)
	if p.HeightInches == vbnorm.HeightUnknown && raw.Height != "" {
		diags = append(diags, Diagnostic{
			Kind: DiagFieldRejected, Team: team.Name, Player: name,
			Field: "height", Raw: raw.Height,
		})
	}

	// a setter listed S/DS is really a defensive player who can set;
	// only S without DS counts as a setter
	p.IsSetter = codes.Has(vbnorm.Setter) && !codes.Has(vbnorm.Defensive)
	p.IsPinHitter = codes.Has(vbnorm.Outside) || codes.Has(vbnorm.RightSide)
	p.IsMiddleBlocker = codes.Has(vbnorm.Middle)
	p.IsDefSpecialist = codes.Has(vbnorm.Defensive)

	p.IsGraduating = p.Class.Graduating()
	p.OutgoingTransfer = refs.IsOutgoingTransfer(name, team.Name)
	p.IncomingTransfer = refs.IsIncomingTransfer(name, team.Name)

	return p, diags
}

// attachStats joins a player against the team's stat book by exact
// canonical name. Misses and ambiguous keys are reported, never
// guessed: the fuzzy nearest-name is diagnostic detail only.
func attachStats(p *Player, book *stats.Book) []Diagnostic {
	if book == nil || book.Len() == 0 {
		return nil
	}

	line, ok := book.Lookup(p.Name)
	if !ok {
		diag := Diagnostic{
			Kind: DiagJoinMiss, Team: p.Team, Player: p.Name, Field: "stats",
		}
		if nearest, score := textutil.Nearest(
			textutil.CanonicalName(p.Name), book.Players()); nearest != "" {
			diag.Detail = fmt.Sprintf("nearest stat row %q (%.2f)", nearest, score)
		}
		return []Diagnostic{diag}
	}

	p.Stats = line
	p.HasStats = true

	if book.Ambiguous(p.Name) {
		return []Diagnostic{{
			Kind: DiagJoinAmbiguous, Team: p.Team, Player: p.Name, Field: "stats",
			Detail: "multiple stat rows share this name; first kept",
		}}
	}
	return nil
}

// roleBreakdowns builds the returning and incoming label lists for the
// four roles.
func roleBreakdowns(team Team, players []Player, refs *References) (returning, incoming RoleLists) {
	for _, p := range players {
		if !p.Returning() {
			continue
		}
		label := returningLabel(p)
		if p.IsSetter {
			returning.Setters = append(returning.Setters, label)
		}
		if p.IsPinHitter {
			returning.PinHitters = append(returning.PinHitters, label)
		}
		if p.IsMiddleBlocker {
			returning.MiddleBlockers = append(returning.MiddleBlockers, label)
		}
		if p.IsDefSpecialist {
			returning.DefSpecialists = append(returning.DefSpecialists, label)
		}
	}

	incoming.Setters = incomingLabels(refs.IncomingByRole(team.Name, RoleSetter))
	incoming.PinHitters = incomingLabels(refs.IncomingByRole(team.Name, RolePinHitter))
	incoming.MiddleBlockers = incomingLabels(refs.IncomingByRole(team.Name, RoleMiddleBlocker))
	incoming.DefSpecialists = incomingLabels(refs.IncomingByRole(team.Name, RoleDefSpecialist))
	return returning, incoming
}

func incomingLabels(players []IncomingPlayer) []string {
	var labels []string
	for _, p := range players {
		labels = append(labels, incomingLabel(p))
	}
	return labels
}
