//go:build e2e

package e2e_test

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/require"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/omnigratum/timetrack-backend/internal/adapter/postgres"
	notificationrepo "github.com/omnigratum/timetrack-backend/internal/adapter/postgres/notification"
	projectrepo "github.com/omnigratum/timetrack-backend/internal/adapter/postgres/project"
	taskrepo "github.com/omnigratum/timetrack-backend/internal/adapter/postgres/task"
	"github.com/omnigratum/timetrack-backend/internal/adapter/postgres/testhelper"
	timeentryrepo "github.com/omnigratum/timetrack-backend/internal/adapter/postgres/timeentry"
	timersessionrepo "github.com/omnigratum/timetrack-backend/internal/adapter/postgres/timersession"
	timesheetrepo "github.com/omnigratum/timetrack-backend/internal/adapter/postgres/timesheet"
	userrepo "github.com/omnigratum/timetrack-backend/internal/adapter/postgres/user"
	authpkg "github.com/omnigratum/timetrack-backend/internal/auth"
	"github.com/omnigratum/timetrack-backend/internal/config"
	"github.com/omnigratum/timetrack-backend/internal/domain"
	"github.com/omnigratum/timetrack-backend/internal/service/catalog"
	"github.com/omnigratum/timetrack-backend/internal/service/notification"
	"github.com/omnigratum/timetrack-backend/internal/service/report"
	"github.com/omnigratum/timetrack-backend/internal/service/timeentry"
	"github.com/omnigratum/timetrack-backend/internal/service/timesheet"
	"github.com/omnigratum/timetrack-backend/internal/service/tracker"
	usersvc "github.com/omnigratum/timetrack-backend/internal/service/user"
	"github.com/omnigratum/timetrack-backend/internal/transport/middleware"
	"github.com/omnigratum/timetrack-backend/internal/transport/rest"
)

// ---------------------------------------------------------------------------
// testServer wraps the full-stack HTTP server for E2E tests.
// ---------------------------------------------------------------------------

type testServer struct {
	URL    string
	Client *http.Client
	Pool   *pgxpool.Pool
	jwt    *authpkg.JWTManager
}

// testLogWriter adapts testing.T to io.Writer for slog.
type testLogWriter struct{ t *testing.T }

func (w testLogWriter) Write(p []byte) (int, error) {
	w.t.Helper()
	w.t.Log(string(p))
	return len(p), nil
}

// setupTestServer bootstraps the full application stack backed by
// a real PostgreSQL container (shared via testhelper).
func setupTestServer(t *testing.T) *testServer {
	t.Helper()

	pool := testhelper.SetupTestDB(t)

	logger := slog.New(slog.NewTextHandler(testLogWriter{t}, nil))
	txm := postgres.NewTxManager(pool)
	clock := clockwork.NewRealClock()

	users := userrepo.New(pool)
	projects := projectrepo.New(pool)
	tasks := taskrepo.New(pool)
	sessions := timersessionrepo.New(pool)
	entries := timeentryrepo.New(pool)
	sheets := timesheetrepo.New(pool)
	notifications := notificationrepo.New(pool)

	jwtMgr := authpkg.NewJWTManager("test-secret-at-least-32-chars-long!!", "test-issuer", 15*time.Minute)

	notifySvc := notification.NewService(logger, notifications)
	catalogSvc := catalog.NewService(logger, projects, tasks)
	userService := usersvc.NewService(logger, users, projects, tasks, jwtMgr)
	sheetSvc := timesheet.NewService(logger, sheets, entries, users, notifySvc, txm, clock)
	trackerSvc := tracker.NewService(logger, sessions, entries, projects, tasks, users, sheetSvc, txm, clock,
		time.UTC, 5*time.Minute, 100)
	entrySvc := timeentry.NewService(logger, entries, projects, tasks, sheetSvc, txm, clock,
		time.UTC, time.Second)
	reportSvc := report.NewService(logger, entries, clock)

	mux := rest.NewRouter(rest.Handlers{
		Health:       rest.NewHealthHandler(pool, "e2e"),
		Auth:         rest.NewAuthHandler(userService, logger),
		Timer:        rest.NewTimerHandler(trackerSvc, logger),
		Entry:        rest.NewEntryHandler(entrySvc, logger),
		Timesheet:    rest.NewTimesheetHandler(sheetSvc, logger),
		Catalog:      rest.NewCatalogHandler(catalogSvc, logger),
		User:         rest.NewUserHandler(userService, logger),
		Notification: rest.NewNotificationHandler(notifySvc, logger),
		Report:       rest.NewReportHandler(reportSvc, logger),
	})

	handler := middleware.Chain(
		middleware.Recovery(logger),
		middleware.RequestID(),
		middleware.CORS(config.CORSConfig{
			AllowedOrigins: "*",
			AllowedMethods: "GET,POST,PUT,DELETE,OPTIONS",
			AllowedHeaders: "Authorization,Content-Type",
		}),
		middleware.Auth(jwtMgr),
	)(mux)

	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	return &testServer{
		URL:    srv.URL,
		Client: srv.Client(),
		Pool:   pool,
		jwt:    jwtMgr,
	}
}

// tokenFor issues a real access token for a seeded user.
func tokenFor(t *testing.T, ts *testServer, u domain.User) string {
	t.Helper()
	token, err := ts.jwt.GenerateAccessToken(u.ID, u.Role)
	require.NoError(t, err)
	return token
}

// ---------------------------------------------------------------------------
// HTTP helpers.
// ---------------------------------------------------------------------------

// doJSON performs a request with an optional JSON body and bearer token,
// returning the status code and raw response body.
func (ts *testServer) doJSON(t *testing.T, method, path, token string, body any) (int, []byte) {
	t.Helper()

	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}

	req, err := http.NewRequest(method, ts.URL+path, reader)
	require.NoError(t, err)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := ts.Client.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp.StatusCode, raw
}

// asMap decodes a JSON object response.
func asMap(t *testing.T, raw []byte) map[string]any {
	t.Helper()
	var m map[string]any
	require.NoError(t, json.Unmarshal(raw, &m), "body: %s", raw)
	return m
}

// asList decodes a JSON array response.
func asList(t *testing.T, raw []byte) []any {
	t.Helper()
	var l []any
	require.NoError(t, json.Unmarshal(raw, &l), "body: %s", raw)
	return l
}
