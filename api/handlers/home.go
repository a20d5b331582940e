package handlers

import (
	"net/http"
	"strings"

	"github.com/linesmerrill/scammer-blacklist/api"
	"github.com/linesmerrill/scammer-blacklist/api/scheduler"
	"github.com/linesmerrill/scammer-blacklist/client"
	"github.com/linesmerrill/scammer-blacklist/logging"
	"github.com/linesmerrill/scammer-blacklist/models"
	"github.com/linesmerrill/scammer-blacklist/scammers"
)

// Home serves the landing page and the profile search
type Home struct {
	API    client.ScammerAPI
	Recent *scheduler.RecentScammers
	View   View
}

// HomeData is rendered by the home page
type HomeData struct {
	Query   string
	Results []scammers.Card
	Recent  []scammers.Card
}

// HomeHandler renders the landing page. A non empty q searches the registry.
func (h Home) HomeHandler(w http.ResponseWriter, r *http.Request) {
	var viewerID string
	if v, ok := api.ViewerFromContext(r.Context()); ok {
		viewerID = v.User.ID
	}

	data := HomeData{Query: strings.TrimSpace(r.URL.Query().Get("q"))}
	if h.Recent != nil {
		data.Recent = scammers.NewCards(h.Recent.Get(), false, viewerID)
	}

	var inline []models.Notification
	if data.Query != "" {
		ctx, cancel := api.WithAPITimeout(r.Context())
		defer cancel()
		profiles, err := h.API.SearchScammers(ctx, data.Query)
		if err != nil {
			logging.FromContext(r.Context()).Errorw("failed to search scammers", "query", data.Query, "error", err)
			inline = append(inline, models.Notification{
				Title:       "Search failed",
				Description: client.ErrorMessage(err),
				Variant:     models.VariantDestructive,
			})
		}
		data.Results = scammers.NewCards(profiles, false, viewerID)
	}

	h.View.Render(w, r, http.StatusOK, "home", "Home", data, inline...)
}
