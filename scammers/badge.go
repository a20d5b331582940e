package scammers

import "github.com/linesmerrill/scammer-blacklist/models"

// BadgeColors is the background and foreground color pair of a scam type badge
type BadgeColors struct {
	Background string
	Foreground string
}

var (
	purpleBadge = BadgeColors{Background: "#ede9fe", Foreground: "#5b21b6"}
	blueBadge   = BadgeColors{Background: "#dbeafe", Foreground: "#1e40af"}
	greenBadge  = BadgeColors{Background: "#dcfce7", Foreground: "#166534"}
	redBadge    = BadgeColors{Background: "#fee2e2", Foreground: "#991b1b"}
	grayBadge   = BadgeColors{Background: "#f3f4f6", Foreground: "#374151"}
)

// Classify maps a scam type code to its badge colors. Unknown codes, including
// the empty string, get the colors of "other".
func Classify(scamType string) BadgeColors {
	switch models.ScamType(scamType) {
	case models.ScamTypeSuspiciousRepo:
		return purpleBadge
	case models.ScamTypeSuspiciousSoftware:
		return blueBadge
	case models.ScamTypeInvestment:
		return greenBadge
	case models.ScamTypeRomance:
		return redBadge
	default:
		return grayBadge
	}
}
