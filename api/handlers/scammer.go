package handlers

import (
	"context"
	"errors"
	"net/http"

	"github.com/gorilla/mux"
	"golang.org/x/sync/singleflight"

	"github.com/linesmerrill/scammer-blacklist/api"
	"github.com/linesmerrill/scammer-blacklist/client"
	"github.com/linesmerrill/scammer-blacklist/logging"
	"github.com/linesmerrill/scammer-blacklist/models"
	"github.com/linesmerrill/scammer-blacklist/scammers"
)

// Scammer handles the delete flow of the viewer's own reports
type Scammer struct {
	API      client.ScammerAPI
	Sessions *api.SessionManager
	View     View
	// inflight keeps one delete per report running across requests
	inflight *singleflight.Group
}

// NewScammer creates the scammer handler
func NewScammer(scammerAPI client.ScammerAPI, sessions *api.SessionManager, view View) Scammer {
	return Scammer{API: scammerAPI, Sessions: sessions, View: view, inflight: &singleflight.Group{}}
}

// DeleteData is rendered by the delete confirmation page
type DeleteData struct {
	Card scammers.Card
}

var errReportNotFound = errors.New("report not found")

var reportNotFound = models.Notification{
	Title:       "Error",
	Description: "We could not find your report on this profile.",
	Variant:     models.VariantDestructive,
}

// ownCard loads the viewer's card for a profile in the own reports view
func (s Scammer) ownCard(ctx context.Context, viewer *api.Viewer, scammerID string) (scammers.Card, error) {
	ctx, cancel := api.WithAPITimeout(ctx)
	defer cancel()
	profiles, err := s.API.UserReports(ctx, viewer.Token)
	if err != nil {
		return scammers.Card{}, err
	}
	for _, p := range profiles {
		if p.ID != scammerID {
			continue
		}
		card, ok := scammers.NewCard(p, true, viewer.User.ID)
		if !ok || !card.CanDelete() {
			break
		}
		return card, nil
	}
	return scammers.Card{}, errReportNotFound
}

func (s Scammer) handleLookupError(w http.ResponseWriter, r *http.Request, err error) {
	if errors.Is(err, client.ErrUnauthorized) {
		s.Sessions.ClearSession(w)
		s.View.redirectWith(w, r, api.LoginPath, sessionExpired)
		return
	}
	if !errors.Is(err, errReportNotFound) {
		logging.FromContext(r.Context()).Errorw("failed to load user reports", "error", err)
		s.View.redirectWith(w, r, "/dashboard", models.Notification{
			Title:       "Error",
			Description: client.ErrorMessage(err),
			Variant:     models.VariantDestructive,
		})
		return
	}
	s.View.redirectWith(w, r, "/dashboard", reportNotFound)
}

// ConfirmDeleteHandler shows the confirmation for deleting the viewer's report
func (s Scammer) ConfirmDeleteHandler(w http.ResponseWriter, r *http.Request) {
	viewer, ok := api.ViewerFromContext(r.Context())
	if !ok {
		s.View.redirectWith(w, r, api.LoginPath, sessionExpired)
		return
	}
	card, err := s.ownCard(r.Context(), viewer, mux.Vars(r)["scammerId"])
	if err != nil {
		s.handleLookupError(w, r, err)
		return
	}
	s.View.Render(w, r, http.StatusOK, "delete", "Delete report", DeleteData{Card: card})
}

// DeleteReportHandler deletes the viewer's report on a profile. The report id
// always comes from the viewer's own card, never from the request.
func (s Scammer) DeleteReportHandler(w http.ResponseWriter, r *http.Request) {
	viewer, ok := api.ViewerFromContext(r.Context())
	if !ok {
		s.View.redirectWith(w, r, api.LoginPath, models.Notification{
			Title:       "Authentication required",
			Description: "Please login to delete your report",
			Variant:     models.VariantDestructive,
		})
		return
	}
	card, err := s.ownCard(r.Context(), viewer, mux.Vars(r)["scammerId"])
	if err != nil {
		s.handleLookupError(w, r, err)
		return
	}

	flash := s.Sessions.Flash(w)
	flow := scammers.NewDeleteFlow(card, viewer.Token, s.API, flash, nil)
	if err := flow.Open(); err != nil {
		s.View.redirectWith(w, r, "/dashboard", reportNotFound)
		return
	}

	// a started delete runs to completion even if the visitor goes away
	ctx, cancel := api.WithAPITimeout(context.WithoutCancel(r.Context()))
	defer cancel()
	key := card.ProfileID + "/" + card.OwnReport.ID
	v, _, _ := s.inflight.Do(key, func() (interface{}, error) {
		return flow, flow.Confirm(ctx)
	})
	if err := flow.Err(); err != nil {
		logging.FromContext(r.Context()).Warnw("delete of own report failed",
			"userId", viewer.User.ID,
			"scammerId", card.ProfileID,
			"reportId", card.OwnReport.ID,
			"error", err)
	}
	if v != flow {
		flash.Notify(models.Notification{
			Title:       "Delete in progress",
			Description: "Your report is already being deleted",
			Variant:     models.VariantDefault,
		})
	}
	http.Redirect(w, r, "/dashboard", http.StatusSeeOther)
}
