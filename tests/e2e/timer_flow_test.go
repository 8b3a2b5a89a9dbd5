//go:build e2e

package e2e_test

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/omnigratum/timetrack-backend/internal/adapter/postgres/testhelper"
)

// ---------------------------------------------------------------------------
// Scenario: start a timer, heartbeat it, stop it, get a timer entry back.
// ---------------------------------------------------------------------------

func TestE2E_TimerLifecycle(t *testing.T) {
	ts := setupTestServer(t)
	employee := testhelper.SeedUser(t, ts.Pool)
	project := testhelper.SeedProject(t, ts.Pool)
	token := tokenFor(t, ts, employee)

	status, raw := ts.doJSON(t, http.MethodPost, "/timer/start", token, map[string]any{
		"project_id": project.ID.String(),
	})
	require.Equal(t, http.StatusCreated, status, "body: %s", raw)

	session := asMap(t, raw)
	sessionID, _ := session["id"].(string)
	require.NotEmpty(t, sessionID)
	assert.Equal(t, true, session["active"])

	// A second timer for the same user must be refused.
	status, _ = ts.doJSON(t, http.MethodPost, "/timer/start", token, nil)
	assert.Equal(t, http.StatusConflict, status)

	// The running session is visible.
	status, raw = ts.doJSON(t, http.MethodGet, "/timer/active", token, nil)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, sessionID, asMap(t, raw)["id"])

	status, raw = ts.doJSON(t, http.MethodPost, "/timer/heartbeat", token, map[string]any{
		"session_id": sessionID,
	})
	require.Equal(t, http.StatusOK, status, "body: %s", raw)

	status, raw = ts.doJSON(t, http.MethodPost, "/timer/stop", token, nil)
	require.Equal(t, http.StatusOK, status, "body: %s", raw)

	entry := asMap(t, raw)
	assert.Equal(t, "timer", entry["entry_type"])
	assert.Equal(t, project.ID.String(), entry["project_id"])
	assert.NotNil(t, entry["end_time"])

	// Timer is idle again.
	status, _ = ts.doJSON(t, http.MethodPost, "/timer/stop", token, nil)
	assert.Equal(t, http.StatusNotFound, status)
}

func TestE2E_TimerIsolatedPerUser(t *testing.T) {
	ts := setupTestServer(t)
	alice := testhelper.SeedUser(t, ts.Pool)
	bob := testhelper.SeedUser(t, ts.Pool)

	status, _ := ts.doJSON(t, http.MethodPost, "/timer/start", tokenFor(t, ts, alice), nil)
	require.Equal(t, http.StatusCreated, status)

	// Bob's timer is unaffected by Alice's.
	status, raw := ts.doJSON(t, http.MethodGet, "/timer/active", tokenFor(t, ts, bob), nil)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, "null", string(raw[:4]), "bob should have no active session")

	status, _ = ts.doJSON(t, http.MethodPost, "/timer/start", tokenFor(t, ts, bob), nil)
	assert.Equal(t, http.StatusCreated, status)
}
