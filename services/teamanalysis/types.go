package teamanalysis

import (
	"vbscout-backend/lib/scrapers/roster"
	"vbscout-backend/lib/scrapers/stats"
	"vbscout-backend/lib/vbnorm"
)

// Team is one program to analyze, as configured.
type Team struct {
	Name       string `json:"name"`
	Conference string `json:"conference"`
	RosterURL  string `json:"roster_url"`
	StatsURL   string `json:"stats_url"`
}

// Player is one fully assembled roster record: raw extracted fields
// next to their normalized forms, role and movement flags, and the
// joined stat line when one was found.
type Player struct {
	Team       string
	Conference string

	Name         string
	PositionRaw  string
	Positions    vbnorm.PositionSet
	ClassRaw     string
	Class        vbnorm.Class
	ClassNext    vbnorm.Class
	HeightRaw    string
	HeightInches int

	JerseyNumber string
	Hometown     string
	HighSchool   string
	ProfileURL   string

	IsSetter         bool
	IsPinHitter      bool
	IsMiddleBlocker  bool
	IsDefSpecialist  bool
	IsGraduating     bool
	OutgoingTransfer bool
	IncomingTransfer bool

	Stats    stats.Line
	HasStats bool
}

// Returning reports whether the player is expected back next season.
func (p Player) Returning() bool {
	return !p.IsGraduating && !p.OutgoingTransfer
}

// RoleLists groups player labels by the four court roles.
type RoleLists struct {
	Setters        []string
	PinHitters     []string
	MiddleBlockers []string
	DefSpecialists []string
}

// Report is the outcome of one team's pipeline run.
type Report struct {
	Team     Team
	Strategy roster.StrategyID
	Rank     string
	Record   string

	Players []Player

	// labels of players expected on next season's roster, split by role
	Returning RoleLists
	// labels of committed recruits and transfers joining next season
	Incoming RoleLists

	Diagnostics []Diagnostic
}

type DiagnosticKind string

const (
	// DiagPageMiss: a page could not be fetched or no strategy
	// recognized it; the team is skipped, the run continues.
	DiagPageMiss DiagnosticKind = "page_miss"
	// DiagFieldRejected: a raw field did not normalize; the record is
	// kept with the unknown value.
	DiagFieldRejected DiagnosticKind = "field_rejected"
	// DiagSuspectedNonPlayer: a roster entry looks like staff.
	DiagSuspectedNonPlayer DiagnosticKind = "suspected_non_player"
	// DiagJoinAmbiguous: several stat rows shared the player's key;
	// the first one was attached.
	DiagJoinAmbiguous DiagnosticKind = "join_ambiguous"
	// DiagJoinMiss: no stat row matched the player.
	DiagJoinMiss DiagnosticKind = "join_miss"
)

// Diagnostic records a non-fatal condition encountered during a run.
// Every kind degrades the output instead of aborting it.
type Diagnostic struct {
	Kind   DiagnosticKind
	Team   string
	Player string
	Field  string
	Raw    string
	Detail string
}
