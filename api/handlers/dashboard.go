package handlers

import (
	"errors"
	"net/http"

	"github.com/linesmerrill/scammer-blacklist/api"
	"github.com/linesmerrill/scammer-blacklist/client"
	"github.com/linesmerrill/scammer-blacklist/logging"
	"github.com/linesmerrill/scammer-blacklist/models"
	"github.com/linesmerrill/scammer-blacklist/scammers"
)

// Dashboard lists the profiles the signed in user has reported
type Dashboard struct {
	API      client.ScammerAPI
	Sessions *api.SessionManager
	View     View
}

// DashboardData is rendered by the dashboard page
type DashboardData struct {
	Cards []scammers.Card
}

var sessionExpired = models.Notification{
	Title:       "Session expired",
	Description: "Please login again",
	Variant:     models.VariantDestructive,
}

// DashboardHandler renders the viewer's reports with delete controls
func (d Dashboard) DashboardHandler(w http.ResponseWriter, r *http.Request) {
	viewer, ok := api.ViewerFromContext(r.Context())
	if !ok {
		d.View.redirectWith(w, r, api.LoginPath, sessionExpired)
		return
	}

	ctx, cancel := api.WithAPITimeout(r.Context())
	defer cancel()
	profiles, err := d.API.UserReports(ctx, viewer.Token)
	if errors.Is(err, client.ErrUnauthorized) {
		d.Sessions.ClearSession(w)
		d.View.redirectWith(w, r, api.LoginPath, sessionExpired)
		return
	}

	var inline []models.Notification
	if err != nil {
		logging.FromContext(r.Context()).Errorw("failed to fetch user reports", "userId", viewer.User.ID, "error", err)
		inline = append(inline, models.Notification{
			Title:       "Error",
			Description: client.ErrorMessage(err),
			Variant:     models.VariantDestructive,
		})
	}

	data := DashboardData{Cards: scammers.NewCards(profiles, true, viewer.User.ID)}
	d.View.Render(w, r, http.StatusOK, "dashboard", "Dashboard", data, inline...)
}
