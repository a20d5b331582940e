package scammers

import "github.com/linesmerrill/scammer-blacklist/models"

// FindOwnReport returns the first report authored by viewerID. Reports without
// a resolvable author never match, and neither does an empty viewerID.
func FindOwnReport(reports []models.Report, viewerID string) (models.Report, bool) {
	if viewerID == "" {
		return models.Report{}, false
	}
	for _, r := range reports {
		if r.AuthorID() == viewerID {
			return r, true
		}
	}
	return models.Report{}, false
}

// SelectPrimary picks the report shown prominently on a card. In the own
// reports view the viewer's first report wins; otherwise, or when the viewer
// has no report in the list, the first report is used. ok is false only for
// an empty list.
func SelectPrimary(reports []models.Report, viewerID string, ownView bool) (primary models.Report, ok bool) {
	if ownView {
		if own, found := FindOwnReport(reports, viewerID); found {
			return own, true
		}
	}
	if len(reports) == 0 {
		return models.Report{}, false
	}
	return reports[0], true
}

// HasMultiple reports whether the expandable list of all reports is shown
func HasMultiple(reports []models.Report) bool {
	return len(reports) > 1
}
