package api

import (
	"errors"
	"net/http"

	"github.com/linesmerrill/scammer-blacklist/client"
	"github.com/linesmerrill/scammer-blacklist/logging"
	"github.com/linesmerrill/scammer-blacklist/models"
)

// LoginPath is where anonymous visitors are sent
const LoginPath = "/login"

// Middleware resolves the visitor of each request from the session cookie
type Middleware struct {
	Sessions *SessionManager
	Auth     *Authenticator
}

// Authenticate populates the viewer of the request. It never blocks a request:
// visitors without a usable session continue anonymously.
func (m Middleware) Authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		sess, err := m.Sessions.GetSession(r)
		if err != nil {
			if errors.Is(err, ErrSessionExpired) {
				m.Sessions.ClearSession(w)
			}
			next.ServeHTTP(w, r)
			return
		}

		user, err := m.Auth.Authenticate(r, sess.Token)
		if err != nil {
			log := logging.FromContext(r.Context())
			if errors.Is(err, client.ErrUnauthorized) {
				log.Infow("dropping rejected session token", "url", r.URL.Path)
				m.Sessions.ClearSession(w)
			} else {
				log.Errorw("failed to resolve session user", "url", r.URL.Path, "error", err)
			}
			next.ServeHTTP(w, r)
			return
		}

		ctx := WithViewer(r.Context(), &Viewer{User: *user, Token: sess.Token})
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// RequireAuth sends anonymous visitors to the login page
func (m Middleware) RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, ok := ViewerFromContext(r.Context()); !ok {
			m.Sessions.Flash(w).Notify(models.Notification{
				Title:       "Authentication required",
				Description: "Please login to continue",
				Variant:     models.VariantDestructive,
			})
			http.Redirect(w, r, LoginPath, http.StatusSeeOther)
			return
		}
		next.ServeHTTP(w, r)
	})
}
