package handlers

import (
	"net/http"

	"github.com/linesmerrill/scammer-blacklist/api"
	"github.com/linesmerrill/scammer-blacklist/client"
	"github.com/linesmerrill/scammer-blacklist/logging"
	"github.com/linesmerrill/scammer-blacklist/models"
)

// Auth handles the LinkedIn sign in round trip and logout
type Auth struct {
	API           client.ScammerAPI
	Sessions      *api.SessionManager
	Authenticator *api.Authenticator
	View          View
}

// LoginData is rendered by the login page
type LoginData struct {
	LoginURL string
}

var loginFailed = models.Notification{
	Title:       "Login failed",
	Description: "Your login link is invalid or has expired. Please try again.",
	Variant:     models.VariantDestructive,
}

// LoginHandler renders the login page
func (a Auth) LoginHandler(w http.ResponseWriter, r *http.Request) {
	if _, ok := api.ViewerFromContext(r.Context()); ok {
		http.Redirect(w, r, "/dashboard", http.StatusSeeOther)
		return
	}
	a.View.Render(w, r, http.StatusOK, "login", "Login", LoginData{LoginURL: a.API.LoginURL()})
}

// CallbackHandler stores the token handed back by the LinkedIn sign in
func (a Auth) CallbackHandler(w http.ResponseWriter, r *http.Request) {
	log := logging.FromContext(r.Context())
	q := r.URL.Query()

	if msg := q.Get("error"); msg != "" {
		log.Warnw("linkedin login returned an error", "error", msg)
		a.View.redirectWith(w, r, api.LoginPath, models.Notification{
			Title:       "Login failed",
			Description: msg,
			Variant:     models.VariantDestructive,
		})
		return
	}

	token := q.Get("token")
	if token == "" {
		a.View.redirectWith(w, r, api.LoginPath, loginFailed)
		return
	}

	expiresAt, err := a.Authenticator.ParseToken(token)
	if err != nil {
		log.Warnw("rejected login token", "error", err)
		a.View.redirectWith(w, r, api.LoginPath, loginFailed)
		return
	}

	user, err := a.Authenticator.Authenticate(r, token)
	if err != nil {
		log.Errorw("failed to resolve user for login token", "error", err)
		a.View.redirectWith(w, r, api.LoginPath, models.Notification{
			Title:       "Login failed",
			Description: client.ErrorMessage(err),
			Variant:     models.VariantDestructive,
		})
		return
	}

	if err := a.Sessions.SetSession(w, token, expiresAt); err != nil {
		log.Errorw("failed to store session", "error", err)
		a.View.redirectWith(w, r, api.LoginPath, models.Notification{
			Title:       "Login failed",
			Description: client.GenericErrorMessage,
			Variant:     models.VariantDestructive,
		})
		return
	}

	log.Infow("user signed in", "userId", user.ID)
	a.View.redirectWith(w, r, "/dashboard", models.Notification{
		Title:       "Welcome back",
		Description: "Signed in as " + user.Username,
		Variant:     models.VariantDefault,
	})
}

// LogoutHandler ends the session
func (a Auth) LogoutHandler(w http.ResponseWriter, r *http.Request) {
	if sess, err := a.Sessions.GetSession(r); err == nil {
		a.Authenticator.Revoke(r, sess.Token)
	}
	a.Sessions.ClearSession(w)
	http.Redirect(w, r, "/", http.StatusSeeOther)
}
