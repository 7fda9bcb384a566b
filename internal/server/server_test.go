package server

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"portfolio/internal/config"
	"portfolio/internal/handlers"
	"portfolio/internal/metrics"
	"portfolio/internal/models"
	"portfolio/internal/services"
	"portfolio/internal/testutil"
)

const cookieName = "portfolio_session"

type testApp struct {
	router   *gin.Engine
	projects *testutil.ProjectStore
	contacts *testutil.ContactStore
	mail     *testutil.Mailer
	sessions *testutil.SessionStore
	cookie   *http.Cookie
	redisErr error
}

func setupApp(t *testing.T) *testApp {
	t.Helper()
	gin.SetMode(gin.TestMode)
	logger := zap.NewNop()

	app := &testApp{
		projects: testutil.NewProjectStore(),
		contacts: &testutil.ContactStore{},
		mail:     &testutil.Mailer{},
		sessions: testutil.NewSessionStore(),
	}

	creds := testutil.NewCredentialStore()
	auth := services.NewAuthService(creds, logger)
	require.NoError(t, auth.Bootstrap(context.Background(), "admin", "correctpw"))

	reg := prometheus.NewRegistry()
	m := metrics.New(reg)

	cfg := &config.Config{
		Session: config.SessionConfig{Secret: []byte("test-secret"), TTL: time.Hour, CookieName: cookieName},
		App:     config.AppConfig{Environment: "test"},
	}

	router, err := NewRouter(Deps{
		Config:   cfg,
		Logger:   logger,
		Projects: services.NewProjectService(app.projects, m, logger),
		Sessions: services.NewSessionService(app.sessions, auth, cfg.Session.Secret, cfg.Session.TTL, m, logger),
		Contacts: services.NewContactService(app.contacts, app.mail, "owner@example.com", m, logger),
		Checks: map[string]handlers.Pinger{
			"redis": handlers.PingFunc(func(context.Context) error { return app.redisErr }),
		},
		Gatherer: reg,
	})
	require.NoError(t, err)
	app.router = router
	return app
}

// do sends a request carrying the app's session cookie and remembers the
// cookie the server hands out.
func (a *testApp) do(t *testing.T, method, path string, form url.Values) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if form != nil {
		req = httptest.NewRequest(method, path, strings.NewReader(form.Encode()))
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	if a.cookie != nil {
		req.AddCookie(a.cookie)
	}

	w := httptest.NewRecorder()
	a.router.ServeHTTP(w, req)

	for _, c := range w.Result().Cookies() {
		if c.Name == cookieName {
			a.cookie = c
		}
	}
	return w
}

func (a *testApp) login(t *testing.T) {
	t.Helper()
	w := a.do(t, http.MethodPost, "/login", url.Values{"username": {"admin"}, "password": {"correctpw"}})
	require.Equal(t, http.StatusSeeOther, w.Code)
	require.Equal(t, "/dashboard", w.Header().Get("Location"))
}

func projectForm(title, category string) url.Values {
	return url.Values{
		"title":       {title},
		"description": {"A thing I built"},
		"category":    {category},
		"tools":       {"Go, Postgres"},
		"skills":      {"Backend"},
	}
}

func TestLogin(t *testing.T) {
	t.Run("wrong password stays anonymous", func(t *testing.T) {
		app := setupApp(t)
		w := app.do(t, http.MethodPost, "/login", url.Values{"username": {"admin"}, "password": {"nope"}})
		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Contains(t, w.Body.String(), "Invalid credentials")

		w = app.do(t, http.MethodGet, "/dashboard", nil)
		assert.Equal(t, http.StatusFound, w.Code)
		assert.Equal(t, "/login", w.Header().Get("Location"))
	})

	t.Run("correct password grants admin until logout", func(t *testing.T) {
		app := setupApp(t)
		app.login(t)

		w := app.do(t, http.MethodGet, "/dashboard", nil)
		assert.Equal(t, http.StatusOK, w.Code)

		w = app.do(t, http.MethodGet, "/logout", nil)
		assert.Equal(t, http.StatusFound, w.Code)
		assert.Equal(t, "/", w.Header().Get("Location"))

		w = app.do(t, http.MethodGet, "/admin", nil)
		assert.Equal(t, http.StatusFound, w.Code)
		assert.Equal(t, "/", w.Header().Get("Location"))
	})

	t.Run("forged cookie gets a fresh anonymous session", func(t *testing.T) {
		app := setupApp(t)
		app.cookie = &http.Cookie{Name: cookieName, Value: "not-a-token"}

		w := app.do(t, http.MethodGet, "/dashboard", nil)
		assert.Equal(t, http.StatusFound, w.Code)
		assert.NotEqual(t, "not-a-token", app.cookie.Value)
	})
}

func TestProjectAdminRoutesRequireLogin(t *testing.T) {
	app := setupApp(t)

	w := app.do(t, http.MethodGet, "/add_project", nil)
	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/login", w.Header().Get("Location"))

	w = app.do(t, http.MethodPost, "/add_project", projectForm("Sneaky", "Web"))
	assert.Equal(t, http.StatusFound, w.Code)
	assert.Empty(t, app.projects.Projects)

	w = app.do(t, http.MethodPost, "/delete_project/"+uuid.NewString(), url.Values{})
	assert.Equal(t, http.StatusFound, w.Code)
}

func TestProjectLifecycle(t *testing.T) {
	app := setupApp(t)
	app.login(t)

	w := app.do(t, http.MethodPost, "/add_project", projectForm("Portfolio", "Web"))
	require.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/project", w.Header().Get("Location"))
	require.Len(t, app.projects.Projects, 1)

	var created models.Project
	for _, p := range app.projects.Projects {
		created = p
	}
	assert.Equal(t, []string{"Go", "Postgres"}, created.Tools)

	w = app.do(t, http.MethodGet, "/project", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "New Project created successfully!")
	assert.Contains(t, w.Body.String(), "Portfolio")

	w = app.do(t, http.MethodGet, "/project/"+created.ID.String(), nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "A thing I built")

	w = app.do(t, http.MethodPost, "/add_project/"+created.ID.String(), projectForm("Portfolio v2", "Web"))
	require.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "Portfolio v2", app.projects.Projects[created.ID].Title)
	assert.Len(t, app.projects.Projects, 1)

	w = app.do(t, http.MethodPost, "/delete_project/"+created.ID.String(), url.Values{})
	require.Equal(t, http.StatusSeeOther, w.Code)
	assert.Empty(t, app.projects.Projects)

	w = app.do(t, http.MethodGet, "/project", nil)
	assert.Contains(t, w.Body.String(), "Project deleted successfully!")

	w = app.do(t, http.MethodPost, "/delete_project/"+created.ID.String(), url.Values{})
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestAddProjectValidation(t *testing.T) {
	app := setupApp(t)
	app.login(t)

	form := projectForm("  ", "Web")
	form.Set("summary", "kept on re-render")
	w := app.do(t, http.MethodPost, "/add_project", form)

	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	assert.Contains(t, w.Body.String(), "kept on re-render")
	assert.Empty(t, app.projects.Projects)
}

func TestAddProjectPersistenceFailure(t *testing.T) {
	app := setupApp(t)
	app.login(t)
	app.projects.Fail = testutil.ErrStoreDown

	w := app.do(t, http.MethodPost, "/add_project", projectForm("Portfolio", "Web"))
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Contains(t, w.Body.String(), "An error occurred")
}

func TestProjectPagesNotFound(t *testing.T) {
	app := setupApp(t)

	for _, path := range []string{"/project/" + uuid.NewString(), "/project/not-a-uuid", "/no/such/page"} {
		w := app.do(t, http.MethodGet, path, nil)
		assert.Equal(t, http.StatusNotFound, w.Code, path)
	}
}

func TestContactSubmit(t *testing.T) {
	form := url.Values{
		"name":    {"Alice"},
		"email":   {"alice@example.com"},
		"subject": {"Hi"},
		"message": {"Hello"},
	}

	t.Run("saved and mailed", func(t *testing.T) {
		app := setupApp(t)
		w := app.do(t, http.MethodPost, "/contact", form)
		require.Equal(t, http.StatusSeeOther, w.Code)
		assert.Equal(t, "/contact", w.Header().Get("Location"))

		assert.Len(t, app.contacts.Messages, 1)
		require.Len(t, app.mail.Sent, 1)
		assert.Equal(t, "New Contact: Hi", app.mail.Sent[0].Subject)

		w = app.do(t, http.MethodGet, "/contact", nil)
		assert.Contains(t, w.Body.String(), "Message sent and saved successfully!")
	})

	t.Run("mail failure still saves", func(t *testing.T) {
		app := setupApp(t)
		app.mail.Fail = errors.New("smtp timeout")

		app.do(t, http.MethodPost, "/contact", form)
		assert.Len(t, app.contacts.Messages, 1)

		w := app.do(t, http.MethodGet, "/contact", nil)
		assert.Contains(t, w.Body.String(), "Email failed to send: smtp timeout")
	})

	t.Run("store failure", func(t *testing.T) {
		app := setupApp(t)
		app.contacts.Fail = testutil.ErrStoreDown

		app.do(t, http.MethodPost, "/contact", form)
		assert.Empty(t, app.mail.Sent)

		w := app.do(t, http.MethodGet, "/contact", nil)
		assert.Contains(t, w.Body.String(), "Something went wrong. Please try again")
	})
}

func TestSessionStoreUnavailable(t *testing.T) {
	app := setupApp(t)
	app.sessions.Fail = testutil.ErrStoreDown

	w := app.do(t, http.MethodGet, "/", nil)
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
}

func TestHealthAndMetrics(t *testing.T) {
	app := setupApp(t)

	w := app.do(t, http.MethodGet, "/health", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"healthy"`)
	assert.Nil(t, app.cookie, "health checks do not create sessions")

	app.redisErr = errors.New("dial tcp: refused")
	w = app.do(t, http.MethodGet, "/health", nil)
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)

	app.do(t, http.MethodPost, "/login", url.Values{"username": {"admin"}, "password": {"nope"}})
	w = app.do(t, http.MethodGet, "/metrics", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `portfolio_login_attempts_total{outcome="failure"} 1`)
}
