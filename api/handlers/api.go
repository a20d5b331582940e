package handlers

import (
	"context"
	"encoding/json"
	"io"
	"net/http"

	"github.com/gorilla/mux"
	"go.uber.org/zap"

	"github.com/linesmerrill/scammer-blacklist/api"
	"github.com/linesmerrill/scammer-blacklist/api/scheduler"
	"github.com/linesmerrill/scammer-blacklist/client"
	"github.com/linesmerrill/scammer-blacklist/config"
	"github.com/linesmerrill/scammer-blacklist/models"
	templates "github.com/linesmerrill/scammer-blacklist/templates/html"
)

// App stores the router and the collaborators of the web front end, so they can be reused
type App struct {
	Router        *mux.Router
	Config        config.Config
	API           client.ScammerAPI
	Sessions      *api.SessionManager
	Authenticator *api.Authenticator
	Renderer      *templates.Renderer
	Recent        *scheduler.RecentScammers

	scheduler *scheduler.Scheduler
	cancel    context.CancelFunc
}

// New creates a new mux router and all the routes
func (a *App) New() *mux.Router {
	m := api.Middleware{Sessions: a.Sessions, Auth: a.Authenticator}
	view := View{Renderer: a.Renderer, Sessions: a.Sessions}

	r := mux.NewRouter()
	r.Use(api.RequestLogger, api.TimeoutMiddleware(a.Config.RequestTimeout), m.Authenticate)

	home := Home{API: a.API, Recent: a.Recent, View: view}
	au := Auth{API: a.API, Sessions: a.Sessions, Authenticator: a.Authenticator, View: view}
	d := Dashboard{API: a.API, Sessions: a.Sessions, View: view}
	re := Report{API: a.API, View: view}
	s := NewScammer(a.API, a.Sessions, view)

	// healthchex
	r.HandleFunc("/health", healthCheckHandler).Methods("GET")

	r.HandleFunc("/", home.HomeHandler).Methods("GET")
	r.HandleFunc(api.LoginPath, au.LoginHandler).Methods("GET")
	r.HandleFunc("/auth/callback", au.CallbackHandler).Methods("GET")
	r.HandleFunc("/logout", au.LogoutHandler).Methods("POST")

	r.Handle("/dashboard", m.RequireAuth(http.HandlerFunc(d.DashboardHandler))).Methods("GET")
	r.Handle("/report", m.RequireAuth(http.HandlerFunc(re.ReportFormHandler))).Methods("GET")
	// the form is validated before the session is checked
	r.HandleFunc("/report", re.SubmitReportHandler).Methods("POST")
	r.Handle("/dashboard/scammers/{scammerId}/delete", m.RequireAuth(http.HandlerFunc(s.ConfirmDeleteHandler))).Methods("GET")
	r.HandleFunc("/dashboard/scammers/{scammerId}/delete", s.DeleteReportHandler).Methods("POST")

	return r
}

// Initialize sets up the registry client, sessions, templates and the router
func (a *App) Initialize() error {
	if a.API == nil {
		a.API = client.New(a.Config.APIURL, client.WithTimeout(a.Config.APITimeout))
	}
	if a.Config.APITimeout > 0 {
		api.APITimeout = a.Config.APITimeout
	}

	sessions, err := api.NewSessionManager(api.SessionConfig{
		HashKey:           a.Config.SessionHashKey,
		BlockKey:          a.Config.SessionBlockKey,
		IsSecure:          a.Config.SecureCookies,
		AllowInsecureKeys: !a.Config.IsProduction(),
	})
	if err != nil {
		zap.S().Errorw("failed to create session manager", "error", err)
		return err
	}
	a.Sessions = sessions

	renderer, err := templates.New()
	if err != nil {
		zap.S().Errorw("failed to parse templates", "error", err)
		return err
	}
	a.Renderer = renderer

	ctx, cancel := context.WithCancel(context.Background())
	a.cancel = cancel
	a.Authenticator = api.NewAuthenticator(ctx, a.API, a.Config.UserCacheTTL, a.Config.JWTSecret)

	a.Recent = &scheduler.RecentScammers{}
	if a.Config.RecentRefresh != "" {
		a.scheduler = scheduler.NewScheduler(a.API, a.Recent, a.Config.RecentRefresh, a.Config.RecentLimit)
		a.scheduler.Timeout = api.APITimeout
		if err := a.scheduler.Start(); err != nil {
			return err
		}
	}

	// initialize api router
	a.initializeRoutes()
	return nil
}

// Close stops the background jobs of the app
func (a *App) Close() {
	if a.scheduler != nil {
		a.scheduler.Stop()
	}
	if a.cancel != nil {
		a.cancel()
	}
}

func (a *App) initializeRoutes() {
	a.Router = a.New()
}

func healthCheckHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	b, _ := json.Marshal(models.HealthCheckResponse{
		Alive: true,
	})
	_, _ = io.WriteString(w, string(b))
}
