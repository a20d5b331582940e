package handlers

import (
	"net/http"
	"net/url"
	"strings"

	"github.com/linesmerrill/scammer-blacklist/api"
	"github.com/linesmerrill/scammer-blacklist/config"
	"github.com/linesmerrill/scammer-blacklist/models"
	templates "github.com/linesmerrill/scammer-blacklist/templates/html"
)

// NavLink is one entry of the navigation bar
type NavLink struct {
	Href  string
	Label string
}

// NavUser is the user menu of the navigation bar
type NavUser struct {
	Username  string
	AvatarURL string
}

// NavBar is the auth aware navigation shell
type NavBar struct {
	Links []NavLink
	User  *NavUser
}

// NewNavBar builds the navigation for a visitor; viewer is nil for anonymous visitors
func NewNavBar(viewer *api.Viewer) NavBar {
	nav := NavBar{Links: []NavLink{{Href: "/", Label: "Home"}}}
	if viewer == nil {
		return nav
	}
	nav.Links = append(nav.Links,
		NavLink{Href: "/dashboard", Label: "Dashboard"},
		NavLink{Href: "/report", Label: "Report Scam"},
	)
	nav.User = &NavUser{
		Username:  viewer.User.Username,
		AvatarURL: AvatarURL(viewer.User),
	}
	return nav
}

// AvatarURL returns the profile picture of u or a generated avatar
func AvatarURL(u models.User) string {
	if u.ProfilePicture != "" {
		return u.ProfilePicture
	}
	name := u.Username
	if name == "" {
		name = "User"
	}
	return "https://ui-avatars.com/api/?name=" + strings.ReplaceAll(url.QueryEscape(name), "+", "%20") + "&background=random"
}

// Page is the data handed to the layout template
type Page struct {
	Title         string
	Nav           NavBar
	Notifications []models.Notification
	Data          interface{}
}

// View renders pages with the visitor's navigation and pending notifications
type View struct {
	Renderer *templates.Renderer
	Sessions *api.SessionManager
}

// Render writes page with status. inline notifications are shown after the
// ones queued by earlier responses.
func (v View) Render(w http.ResponseWriter, r *http.Request, status int, page, title string, data interface{}, inline ...models.Notification) {
	viewer, ok := api.ViewerFromContext(r.Context())
	if !ok {
		viewer = nil
	}
	notes := append(v.Sessions.Flashes(w, r), inline...)

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	var buf strings.Builder
	err := v.Renderer.Render(&buf, page, Page{
		Title:         title,
		Nav:           NewNavBar(viewer),
		Notifications: notes,
		Data:          data,
	})
	if err != nil {
		config.ErrorStatus("failed to render page", http.StatusInternalServerError, w, err)
		return
	}
	w.WriteHeader(status)
	_, _ = w.Write([]byte(buf.String()))
}

// redirectWith queues n and redirects to target
func (v View) redirectWith(w http.ResponseWriter, r *http.Request, target string, n models.Notification) {
	v.Sessions.Flash(w).Notify(n)
	http.Redirect(w, r, target, http.StatusSeeOther)
}
