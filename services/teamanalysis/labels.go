package teamanalysis

import (
	"strings"
	"vbscout-backend/lib/textutil"
	"vbscout-backend/lib/vbnorm"
)

// FormatPlayerLabel renders "Molly Beatty (S - So)". Empty position or
// class parts are dropped; a bare name comes back unparenthesized.
func FormatPlayerLabel(name string, codes vbnorm.PositionSet, class vbnorm.Class) string {
	name = textutil.NormalizeSpace(name)
	if name == "" {
		return ""
	}

	var bits []string
	if len(codes) > 0 {
		bits = append(bits, codes.String())
	}
	if class != vbnorm.ClassUnknown {
		bits = append(bits, string(class))
	}

	if len(bits) == 0 {
		return name
	}
	return name + " (" + strings.Join(bits, " - ") + ")"
}

// returningLabel labels a current roster player with NEXT season's
// class, since returning lists project the upcoming roster.
func returningLabel(p Player) string {
	return FormatPlayerLabel(p.Name, p.Positions, p.ClassNext)
}

func incomingLabel(p IncomingPlayer) string {
	codes, err := vbnorm.ParsePositions(p.Position)
	if err != nil {
		codes = nil
	}
	return FormatPlayerLabel(p.Name, codes, vbnorm.ClassUnknown)
}
