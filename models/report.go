package models

import "time"

// ScamType is the category code a report is filed under
type ScamType string

// Known scam type codes. The misspelling of "suspicios" matches the registry API.
const (
	ScamTypeSuspiciousRepo     ScamType = "download-suspicios-repo"
	ScamTypeSuspiciousSoftware ScamType = "download-suspicios-software"
	ScamTypeInvestment         ScamType = "investment-scam"
	ScamTypeRomance            ScamType = "romance-scam"
	ScamTypeOther              ScamType = "other"
)

// ScamTypes lists the closed set of category codes in display order
var ScamTypes = []ScamType{
	ScamTypeSuspiciousRepo,
	ScamTypeSuspiciousSoftware,
	ScamTypeInvestment,
	ScamTypeRomance,
	ScamTypeOther,
}

// Label returns the human readable name of a scam type
func (s ScamType) Label() string {
	switch s {
	case ScamTypeSuspiciousRepo:
		return "Asked to download a suspicious repository"
	case ScamTypeSuspiciousSoftware:
		return "Asked to download suspicious software"
	case ScamTypeInvestment:
		return "Investment scam"
	case ScamTypeRomance:
		return "Romance scam"
	default:
		return "Other"
	}
}

// ReportedBy references the user who authored a report
type ReportedBy struct {
	ID       string `json:"_id"`
	Username string `json:"username"`
}

// Report is one user's submission about a profile
type Report struct {
	ID         string      `json:"_id"`
	Name       string      `json:"name,omitempty"`
	Company    string      `json:"company,omitempty"`
	ScamType   ScamType    `json:"scamType"`
	Notes      string      `json:"notes,omitempty"`
	ReportedBy *ReportedBy `json:"reportedBy,omitempty"`
	CreatedAt  time.Time   `json:"createdAt"`
}

// AuthorID returns the id of the reporting user, or "" when the report has no
// resolvable author
func (r Report) AuthorID() string {
	if r.ReportedBy == nil {
		return ""
	}
	return r.ReportedBy.ID
}

// AuthorName returns the username of the reporting user, or "" when unknown
func (r Report) AuthorName() string {
	if r.ReportedBy == nil {
		return ""
	}
	return r.ReportedBy.Username
}

// ScammerProfile is a reported profile together with every report filed about it
type ScammerProfile struct {
	ID          string   `json:"_id"`
	ProfileLink string   `json:"profileLink"`
	Reports     []Report `json:"reports"`
}

// ReportInput is the body sent to the registry API when creating a report
type ReportInput struct {
	ProfileLink string   `json:"profileLink"`
	Name        string   `json:"name,omitempty"`
	Company     string   `json:"company,omitempty"`
	ScamType    ScamType `json:"scamType"`
	Notes       string   `json:"notes"`
}
