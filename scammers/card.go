package scammers

import (
	"github.com/dustin/go-humanize"

	"github.com/linesmerrill/scammer-blacklist/models"
)

// UnknownUser is displayed for reports without a resolvable author
const UnknownUser = "Unknown User"

const dateLayout = "Jan 2, 2006"

// ReportView is a report prepared for display
type ReportView struct {
	models.Report
	Author string
	Badge  BadgeColors
	Date   string
	Ago    string
}

// Card is the view model of one reported profile
type Card struct {
	ProfileID   string
	Handle      string
	ProfileURL  string
	ReportCount int
	Primary     ReportView
	HasMultiple bool
	Reports     []ReportView
	OwnView     bool

	// OwnReport is set only in the own reports view when the viewer authored
	// one of the reports
	OwnReport *models.Report
}

// NewCard builds the card for a profile. ok is false when the profile has no
// reports, in which case nothing should be rendered.
func NewCard(profile models.ScammerProfile, ownView bool, viewerID string) (card Card, ok bool) {
	primary, ok := SelectPrimary(profile.Reports, viewerID, ownView)
	if !ok {
		return Card{}, false
	}

	card = Card{
		ProfileID:   profile.ID,
		Handle:      ProfileHandle(profile.ProfileLink),
		ProfileURL:  ProfileURL(profile.ProfileLink),
		ReportCount: len(profile.Reports),
		Primary:     newReportView(primary),
		HasMultiple: HasMultiple(profile.Reports),
		OwnView:     ownView,
	}
	if ownView {
		if own, found := FindOwnReport(profile.Reports, viewerID); found {
			card.OwnReport = &own
		}
	}
	if card.HasMultiple {
		card.Reports = make([]ReportView, 0, len(profile.Reports))
		for _, r := range profile.Reports {
			card.Reports = append(card.Reports, newReportView(r))
		}
	}
	return card, true
}

// NewCards builds the cards of every renderable profile, keeping order
func NewCards(profiles []models.ScammerProfile, ownView bool, viewerID string) []Card {
	cards := make([]Card, 0, len(profiles))
	for _, p := range profiles {
		if c, ok := NewCard(p, ownView, viewerID); ok {
			cards = append(cards, c)
		}
	}
	return cards
}

// CanDelete reports whether the delete control is shown on the card
func (c Card) CanDelete() bool {
	return c.OwnView && c.OwnReport != nil
}

func newReportView(r models.Report) ReportView {
	v := ReportView{
		Report: r,
		Author: r.AuthorName(),
		Badge:  Classify(string(r.ScamType)),
	}
	if v.Author == "" {
		v.Author = UnknownUser
	}
	if !r.CreatedAt.IsZero() {
		v.Date = r.CreatedAt.Format(dateLayout)
		v.Ago = humanize.Time(r.CreatedAt)
	}
	return v
}
