package handlers_test

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/linesmerrill/scammer-blacklist/api"
	"github.com/linesmerrill/scammer-blacklist/api/handlers"
	"github.com/linesmerrill/scammer-blacklist/client"
	"github.com/linesmerrill/scammer-blacklist/client/mocks"
	"github.com/linesmerrill/scammer-blacklist/config"
	"github.com/linesmerrill/scammer-blacklist/models"
)

const testToken = "token-123"

var viewer = &models.User{ID: "u1", Username: "Jane Doe"}

func newTestApp(t *testing.T) (*handlers.App, *mocks.ScammerAPI) {
	t.Helper()
	scammerAPI := mocks.NewScammerAPI(t)
	a := &handlers.App{
		Config: config.Config{
			Env:            "test",
			RequestTimeout: 5 * time.Second,
			APITimeout:     5 * time.Second,
			UserCacheTTL:   time.Minute,
		},
		API: scammerAPI,
	}
	require.NoError(t, a.Initialize())
	t.Cleanup(a.Close)
	return a, scammerAPI
}

func executeRequest(a *handlers.App, req *http.Request) *httptest.ResponseRecorder {
	rr := httptest.NewRecorder()
	a.Router.ServeHTTP(rr, req)
	return rr
}

// signIn attaches a session for testToken and expects the user lookup
func signIn(t *testing.T, a *handlers.App, scammerAPI *mocks.ScammerAPI, req *http.Request) {
	t.Helper()
	scammerAPI.On("CurrentUser", mock.Anything, testToken).Return(viewer, nil)
	rr := httptest.NewRecorder()
	require.NoError(t, a.Sessions.SetSession(rr, testToken, time.Now().Add(time.Hour)))
	for _, c := range rr.Result().Cookies() {
		req.AddCookie(c)
	}
}

// cookies returns the last value set for each cookie name
func cookies(rr *httptest.ResponseRecorder) map[string]*http.Cookie {
	out := map[string]*http.Cookie{}
	for _, c := range rr.Result().Cookies() {
		out[c.Name] = c
	}
	return out
}

// flashes decodes the notifications queued by rr for the next page
func flashes(t *testing.T, a *handlers.App, rr *httptest.ResponseRecorder) []models.Notification {
	t.Helper()
	req := httptest.NewRequest("GET", "/", nil)
	if c, ok := cookies(rr)["flash"]; ok {
		req.AddCookie(c)
	}
	return a.Sessions.Flashes(httptest.NewRecorder(), req)
}

func postForm(target string, values url.Values) *http.Request {
	req := httptest.NewRequest("POST", target, strings.NewReader(values.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return req
}

func profile(id string, reports ...models.Report) models.ScammerProfile {
	return models.ScammerProfile{ID: id, ProfileLink: "https://www.linkedin.com/in/" + id, Reports: reports}
}

func reportBy(id, authorID string) models.Report {
	return models.Report{
		ID:         id,
		Name:       "John " + id,
		Company:    "Acme",
		ScamType:   models.ScamTypeInvestment,
		Notes:      "promised returns " + id,
		ReportedBy: &models.ReportedBy{ID: authorID, Username: "author-" + authorID},
		CreatedAt:  time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC),
	}
}

func TestUnknownRoute(t *testing.T) {
	a, _ := newTestApp(t)
	response := executeRequest(a, httptest.NewRequest("GET", "/asdf", nil))
	assert.Equal(t, http.StatusNotFound, response.Code)
}

func TestHealthCheckRoute(t *testing.T) {
	a, _ := newTestApp(t)
	response := executeRequest(a, httptest.NewRequest("GET", "/health", nil))

	assert.Equal(t, http.StatusOK, response.Code)
	var body models.HealthCheckResponse
	require.NoError(t, json.Unmarshal(response.Body.Bytes(), &body))
	assert.True(t, body.Alive)
	assert.NotEmpty(t, response.Header().Get("X-Request-ID"))
}

func TestHome_AnonymousNav(t *testing.T) {
	a, _ := newTestApp(t)
	response := executeRequest(a, httptest.NewRequest("GET", "/", nil))

	assert.Equal(t, http.StatusOK, response.Code)
	body := response.Body.String()
	assert.Contains(t, body, "Login with LinkedIn")
	assert.NotContains(t, body, `href="/dashboard"`)
}

func TestHome_SignedInNav(t *testing.T) {
	a, scammerAPI := newTestApp(t)
	req := httptest.NewRequest("GET", "/", nil)
	signIn(t, a, scammerAPI, req)

	response := executeRequest(a, req)

	assert.Equal(t, http.StatusOK, response.Code)
	body := response.Body.String()
	assert.Contains(t, body, `href="/dashboard"`)
	assert.Contains(t, body, "Report Scam")
	assert.Contains(t, body, "name=Jane%20Doe")
	assert.Contains(t, body, `action="/logout"`)
	assert.NotContains(t, body, "Login with LinkedIn")
}

func TestHome_Search(t *testing.T) {
	a, scammerAPI := newTestApp(t)
	scammerAPI.On("SearchScammers", mock.Anything, "john").
		Return([]models.ScammerProfile{profile("john-doe", reportBy("r1", "u9"), reportBy("r2", "u8"))}, nil)

	response := executeRequest(a, httptest.NewRequest("GET", "/?q=+john+", nil))

	assert.Equal(t, http.StatusOK, response.Code)
	body := response.Body.String()
	assert.Contains(t, body, "linkedin.com/in/john-doe")
	assert.Contains(t, body, "2 reports")
	assert.Contains(t, body, "View all 2 reported identities")
	assert.Contains(t, body, `rel="noopener noreferrer"`)
}

func TestHome_SearchNoResults(t *testing.T) {
	a, scammerAPI := newTestApp(t)
	scammerAPI.On("SearchScammers", mock.Anything, "nobody").Return([]models.ScammerProfile{}, nil)

	response := executeRequest(a, httptest.NewRequest("GET", "/?q=nobody", nil))

	assert.Equal(t, http.StatusOK, response.Code)
	assert.Contains(t, response.Body.String(), "No reports found for this profile")
}

func TestHome_SearchError(t *testing.T) {
	a, scammerAPI := newTestApp(t)
	scammerAPI.On("SearchScammers", mock.Anything, "john").
		Return(nil, &client.APIError{Status: http.StatusBadGateway, Message: "registry unavailable"})

	response := executeRequest(a, httptest.NewRequest("GET", "/?q=john", nil))

	assert.Equal(t, http.StatusOK, response.Code)
	body := response.Body.String()
	assert.Contains(t, body, "Search failed")
	assert.Contains(t, body, "registry unavailable")
}

func TestLogin_RedirectsSignedInVisitor(t *testing.T) {
	a, scammerAPI := newTestApp(t)
	req := httptest.NewRequest("GET", "/login", nil)
	signIn(t, a, scammerAPI, req)

	response := executeRequest(a, req)

	assert.Equal(t, http.StatusSeeOther, response.Code)
	assert.Equal(t, "/dashboard", response.Header().Get("Location"))
}

func TestLogin_ShowsLinkedInLink(t *testing.T) {
	a, scammerAPI := newTestApp(t)
	scammerAPI.On("LoginURL").Return("http://registry.test/api/auth/linkedin")

	response := executeRequest(a, httptest.NewRequest("GET", "/login", nil))

	assert.Equal(t, http.StatusOK, response.Code)
	assert.Contains(t, response.Body.String(), `href="http://registry.test/api/auth/linkedin"`)
}

func TestCallback_MissingToken(t *testing.T) {
	a, _ := newTestApp(t)
	response := executeRequest(a, httptest.NewRequest("GET", "/auth/callback", nil))

	assert.Equal(t, http.StatusSeeOther, response.Code)
	assert.Equal(t, "/login", response.Header().Get("Location"))
	notes := flashes(t, a, response)
	require.Len(t, notes, 1)
	assert.Equal(t, "Login failed", notes[0].Title)
	assert.True(t, notes[0].IsDestructive())
}

func TestCallback_StoresSession(t *testing.T) {
	a, scammerAPI := newTestApp(t)
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": viewer.ID,
		"exp": time.Now().Add(time.Hour).Unix(),
	}).SignedString([]byte("registry-secret"))
	require.NoError(t, err)
	scammerAPI.On("CurrentUser", mock.Anything, token).Return(viewer, nil)

	response := executeRequest(a, httptest.NewRequest("GET", "/auth/callback?token="+token, nil))

	assert.Equal(t, http.StatusSeeOther, response.Code)
	assert.Equal(t, "/dashboard", response.Header().Get("Location"))

	sessionCookie, ok := cookies(response)["session"]
	require.True(t, ok)
	req := httptest.NewRequest("GET", "/", nil)
	req.AddCookie(sessionCookie)
	sess, err := a.Sessions.GetSession(req)
	require.NoError(t, err)
	assert.Equal(t, token, sess.Token)

	notes := flashes(t, a, response)
	require.Len(t, notes, 1)
	assert.Equal(t, "Welcome back", notes[0].Title)
}

func TestCallback_ExpiredToken(t *testing.T) {
	a, _ := newTestApp(t)
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"exp": time.Now().Add(-time.Hour).Unix(),
	}).SignedString([]byte("registry-secret"))
	require.NoError(t, err)

	response := executeRequest(a, httptest.NewRequest("GET", "/auth/callback?token="+token, nil))

	assert.Equal(t, http.StatusSeeOther, response.Code)
	assert.Equal(t, "/login", response.Header().Get("Location"))
	_, ok := cookies(response)["session"]
	assert.False(t, ok)
}

func TestLogout_ClearsSession(t *testing.T) {
	a, scammerAPI := newTestApp(t)
	req := httptest.NewRequest("POST", "/logout", nil)
	signIn(t, a, scammerAPI, req)

	response := executeRequest(a, req)

	assert.Equal(t, http.StatusSeeOther, response.Code)
	assert.Equal(t, "/", response.Header().Get("Location"))
	c, ok := cookies(response)["session"]
	require.True(t, ok)
	assert.True(t, c.MaxAge < 0)
}

func TestDashboard_RequiresAuth(t *testing.T) {
	a, _ := newTestApp(t)
	response := executeRequest(a, httptest.NewRequest("GET", "/dashboard", nil))

	assert.Equal(t, http.StatusSeeOther, response.Code)
	assert.Equal(t, "/login", response.Header().Get("Location"))
	notes := flashes(t, a, response)
	require.Len(t, notes, 1)
	assert.Equal(t, "Authentication required", notes[0].Title)
}

func TestDashboard_ListsOwnReports(t *testing.T) {
	a, scammerAPI := newTestApp(t)
	req := httptest.NewRequest("GET", "/dashboard", nil)
	signIn(t, a, scammerAPI, req)
	scammerAPI.On("UserReports", mock.Anything, testToken).
		Return([]models.ScammerProfile{profile("p1", reportBy("r1", "u9"), reportBy("r2", viewer.ID))}, nil)

	response := executeRequest(a, req)

	assert.Equal(t, http.StatusOK, response.Code)
	body := response.Body.String()
	assert.Contains(t, body, `href="/dashboard/scammers/p1/delete"`)
	assert.Contains(t, body, "John r2")
}

func TestDashboard_UnauthorizedClearsSession(t *testing.T) {
	a, scammerAPI := newTestApp(t)
	req := httptest.NewRequest("GET", "/dashboard", nil)
	signIn(t, a, scammerAPI, req)
	scammerAPI.On("UserReports", mock.Anything, testToken).
		Return(nil, &client.APIError{Status: http.StatusUnauthorized})

	response := executeRequest(a, req)

	assert.Equal(t, http.StatusSeeOther, response.Code)
	assert.Equal(t, "/login", response.Header().Get("Location"))
	c, ok := cookies(response)["session"]
	require.True(t, ok)
	assert.True(t, c.MaxAge < 0)
}

func validReportForm() url.Values {
	return url.Values{
		"profileLink": {"https://www.linkedin.com/in/john-doe"},
		"name":        {"John Doe"},
		"company":     {"Acme"},
		"scamType":    {string(models.ScamTypeInvestment)},
		"notes":       {"Asked me to wire money up front"},
	}
}

func TestReport_FormRequiresAuth(t *testing.T) {
	a, _ := newTestApp(t)
	response := executeRequest(a, httptest.NewRequest("GET", "/report", nil))

	assert.Equal(t, http.StatusSeeOther, response.Code)
	assert.Equal(t, "/login", response.Header().Get("Location"))
}

func TestReport_InvalidFormSkipsAPI(t *testing.T) {
	a, _ := newTestApp(t)
	values := validReportForm()
	values.Set("profileLink", "https://example.com/in/john")
	values.Set("notes", "short")

	response := executeRequest(a, postForm("/report", values))

	assert.Equal(t, http.StatusUnprocessableEntity, response.Code)
	body := response.Body.String()
	assert.Contains(t, body, "Please enter a valid LinkedIn profile URL")
	assert.Contains(t, body, "Please provide more details (at least 10 characters)")
	assert.Contains(t, body, `value="John Doe"`)
}

func TestReport_AnonymousSubmitRedirectsToLogin(t *testing.T) {
	a, _ := newTestApp(t)
	response := executeRequest(a, postForm("/report", validReportForm()))

	assert.Equal(t, http.StatusSeeOther, response.Code)
	assert.Equal(t, "/login", response.Header().Get("Location"))
	notes := flashes(t, a, response)
	require.Len(t, notes, 1)
	assert.Equal(t, "Please login to report a scam", notes[0].Description)
}

func TestReport_SubmitSuccess(t *testing.T) {
	a, scammerAPI := newTestApp(t)
	req := postForm("/report", validReportForm())
	signIn(t, a, scammerAPI, req)
	scammerAPI.On("ReportScammer", mock.Anything, models.ReportInput{
		ProfileLink: "https://www.linkedin.com/in/john-doe",
		Name:        "John Doe",
		Company:     "Acme",
		ScamType:    models.ScamTypeInvestment,
		Notes:       "Asked me to wire money up front",
	}, testToken).Return(&models.Report{ID: "r1"}, nil)

	response := executeRequest(a, req)

	assert.Equal(t, http.StatusSeeOther, response.Code)
	assert.Equal(t, "/dashboard", response.Header().Get("Location"))
	notes := flashes(t, a, response)
	require.Len(t, notes, 1)
	assert.Equal(t, "Scammer reported successfully", notes[0].Title)
}

func TestReport_SubmitShowsServerMessage(t *testing.T) {
	a, scammerAPI := newTestApp(t)
	req := postForm("/report", validReportForm())
	signIn(t, a, scammerAPI, req)
	scammerAPI.On("ReportScammer", mock.Anything, mock.Anything, testToken).
		Return(nil, &client.APIError{Status: http.StatusConflict, Message: "Duplicate profile"})

	response := executeRequest(a, req)

	assert.Equal(t, http.StatusOK, response.Code)
	body := response.Body.String()
	assert.Contains(t, body, "Error reporting scammer")
	assert.Contains(t, body, "Duplicate profile")
	assert.Contains(t, body, `value="https://www.linkedin.com/in/john-doe"`)
}

func TestDelete_ConfirmPage(t *testing.T) {
	a, scammerAPI := newTestApp(t)
	req := httptest.NewRequest("GET", "/dashboard/scammers/p1/delete", nil)
	signIn(t, a, scammerAPI, req)
	scammerAPI.On("UserReports", mock.Anything, testToken).
		Return([]models.ScammerProfile{profile("p1", reportBy("r2", viewer.ID))}, nil)

	response := executeRequest(a, req)

	assert.Equal(t, http.StatusOK, response.Code)
	body := response.Body.String()
	assert.Contains(t, body, "Are you sure?")
	assert.Contains(t, body, `action="/dashboard/scammers/p1/delete"`)
}

func TestDelete_UsesViewersOwnReport(t *testing.T) {
	a, scammerAPI := newTestApp(t)
	req := postForm("/dashboard/scammers/p1/delete", url.Values{"reportId": {"r1"}})
	signIn(t, a, scammerAPI, req)
	scammerAPI.On("UserReports", mock.Anything, testToken).
		Return([]models.ScammerProfile{profile("p1", reportBy("r1", "u9"), reportBy("r2", viewer.ID))}, nil)
	scammerAPI.On("DeleteReport", mock.Anything, "p1", "r2", testToken).Return(nil).Once()

	response := executeRequest(a, req)

	assert.Equal(t, http.StatusSeeOther, response.Code)
	assert.Equal(t, "/dashboard", response.Header().Get("Location"))
	notes := flashes(t, a, response)
	require.Len(t, notes, 1)
	assert.Equal(t, "Report deleted", notes[0].Title)
	assert.Equal(t, "Your report has been successfully deleted", notes[0].Description)
}

func TestDelete_Failure(t *testing.T) {
	a, scammerAPI := newTestApp(t)
	req := postForm("/dashboard/scammers/p1/delete", nil)
	signIn(t, a, scammerAPI, req)
	scammerAPI.On("UserReports", mock.Anything, testToken).
		Return([]models.ScammerProfile{profile("p1", reportBy("r2", viewer.ID))}, nil)
	scammerAPI.On("DeleteReport", mock.Anything, "p1", "r2", testToken).Return(errors.New("boom"))

	response := executeRequest(a, req)

	assert.Equal(t, http.StatusSeeOther, response.Code)
	notes := flashes(t, a, response)
	require.Len(t, notes, 1)
	assert.Equal(t, "Error", notes[0].Title)
	assert.Equal(t, "Failed to delete your report. Please try again.", notes[0].Description)
	assert.True(t, notes[0].IsDestructive())
}

func TestDelete_NotOwnReport(t *testing.T) {
	a, scammerAPI := newTestApp(t)
	req := postForm("/dashboard/scammers/p1/delete", nil)
	signIn(t, a, scammerAPI, req)
	scammerAPI.On("UserReports", mock.Anything, testToken).
		Return([]models.ScammerProfile{profile("p2", reportBy("r2", viewer.ID))}, nil)

	response := executeRequest(a, req)

	assert.Equal(t, http.StatusSeeOther, response.Code)
	assert.Equal(t, "/dashboard", response.Header().Get("Location"))
	scammerAPI.AssertNotCalled(t, "DeleteReport", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestDelete_AnonymousRedirectsToLogin(t *testing.T) {
	a, _ := newTestApp(t)
	response := executeRequest(a, postForm("/dashboard/scammers/p1/delete", nil))

	assert.Equal(t, http.StatusSeeOther, response.Code)
	assert.Equal(t, api.LoginPath, response.Header().Get("Location"))
}
