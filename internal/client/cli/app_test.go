package cli

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/dmitrijs2005/userdesk/internal/client/config"
	"github.com/dmitrijs2005/userdesk/internal/fakeapi"
	"github.com/dmitrijs2005/userdesk/internal/logging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	eveEmail = "eve.holt@reqres.in"
	evePass  = "cityslicka"
)

func testConfig(t *testing.T, baseURL string) *config.Config {
	t.Helper()
	cfg := &config.Config{}
	cfg.LoadDefaults()
	cfg.BaseURL = baseURL
	cfg.StorageKind = config.StorageMemory
	cfg.DataDir = t.TempDir()
	cfg.LogLevel = "error"
	cfg.RequestTimeout = 5 * time.Second
	return cfg
}

func startAPI(t *testing.T, opts ...fakeapi.Option) (*fakeapi.Server, string) {
	t.Helper()
	api := fakeapi.New(nil, opts...)
	srv := httptest.NewServer(api.Handler())
	t.Cleanup(srv.Close)
	return api, srv.URL
}

func newTestApp(t *testing.T, cfg *config.Config, lines ...string) (*App, *bytes.Buffer) {
	t.Helper()
	stubTerminal(t, false, nil, nil)

	var out bytes.Buffer
	in := strings.NewReader(strings.Join(lines, "\n") + "\n")
	app, err := NewApp(context.Background(), cfg, in, &out)
	require.NoError(t, err)
	app.logger = logging.Discard()
	t.Cleanup(func() { _ = app.Close(context.Background()) })
	return app, &out
}

func TestApp_LoginListSearchSort(t *testing.T) {
	_, url := startAPI(t)
	app, out := newTestApp(t, testConfig(t, url),
		eveEmail, evePass,
		"search george",
		"search",
		"sort first_name",
		"status",
		"exit",
	)

	app.Run(context.Background())

	s := out.String()
	assert.Contains(t, s, "Welcome back! Logged in as "+eveEmail)
	assert.Contains(t, s, "Showing 6 of 12 users | page 1/2 | sort first_name asc")
	assert.Contains(t, s, `Showing 1 of 12 users | page 1/2 | sort first_name asc | search "george"`)
	assert.Contains(t, s, "sort first_name desc")
	assert.Contains(t, s, "Session:  authenticated")
	assert.Contains(t, s, "userdesk ("+eveEmail+")> ")
	assert.Contains(t, s, "Bye!")
}

func TestApp_FailedLoginThenGate(t *testing.T) {
	_, url := startAPI(t)
	app, out := newTestApp(t, testConfig(t, url),
		"nobody@reqres.in", "x",
		"list",
		eveEmail, evePass,
		"exit",
	)

	app.Run(context.Background())

	s := out.String()
	assert.Contains(t, s, "✗ Login failed")
	assert.Contains(t, s, "user not found")
	assert.Contains(t, s, "Not logged in.")
	assert.Contains(t, s, "Showing 6 of 12 users")
	assert.True(t, app.isLoggedIn())
}

func TestApp_LoginFormValidation(t *testing.T) {
	_, url := startAPI(t)
	app, out := newTestApp(t, testConfig(t, url), "not-an-email", "", "exit")

	app.Run(context.Background())

	assert.Contains(t, out.String(), "Email must be a valid email; Password is required")
	assert.False(t, app.isLoggedIn())
}

func TestApp_DeleteAndBulkDelete(t *testing.T) {
	api, url := startAPI(t)
	api.FailDelete(3, http.StatusInternalServerError)

	app, out := newTestApp(t, testConfig(t, url),
		eveEmail, evePass,
		"delete 2", "y",
		"select 3 4",
		"bulkdelete", "y",
		"refresh",
		"exit",
	)

	app.Run(context.Background())

	s := out.String()
	assert.Contains(t, s, "✓ User #2 deleted")
	assert.Contains(t, s, "Showing 5 of 12 users")
	assert.Contains(t, s, "✓ Deleted 1 of 2 selected users")
	assert.Contains(t, s, "✗ Failed to delete users")
	assert.Contains(t, s, "Showing 6 of 10 users", "refetch reflects the server")

	_, ok := api.Store().Get(4)
	assert.False(t, ok)
	_, ok = api.Store().Get(3)
	assert.True(t, ok)
	assert.Equal(t, []int{3}, app.view.Selected(), "failed id stays selected for a retry")
}

func TestApp_DeleteCancelled(t *testing.T) {
	api, url := startAPI(t)
	app, out := newTestApp(t, testConfig(t, url), eveEmail, evePass, "delete 2", "n", "exit")

	app.Run(context.Background())

	_, ok := api.Store().Get(2)
	assert.True(t, ok)
	assert.NotContains(t, out.String(), "deleted")
}

func TestApp_Edit(t *testing.T) {
	api, url := startAPI(t)
	app, out := newTestApp(t, testConfig(t, url),
		eveEmail, evePass,
		"edit 2", "", "Doe", "", "",
		"exit",
	)

	app.Run(context.Background())

	s := out.String()
	assert.Contains(t, s, "First name [Janet]: ")
	assert.Contains(t, s, "✓ User updated successfully")
	u, _ := api.Store().Get(2)
	assert.Equal(t, "Doe", u.LastName)
	assert.Equal(t, "Janet", u.FirstName)
	assert.False(t, app.view.Stale(), "list refetched after the edit")
}

func TestApp_EditValidationAndNoop(t *testing.T) {
	api, url := startAPI(t)
	app, out := newTestApp(t, testConfig(t, url),
		eveEmail, evePass,
		"edit 2", "", "", "bad-email", "",
		"edit 2", "", "", "", "",
		"exit",
	)

	app.Run(context.Background())

	s := out.String()
	assert.Contains(t, s, "✗ Invalid input: Email must be a valid email")
	assert.Contains(t, s, "Nothing to update.")
	u, _ := api.Store().Get(2)
	assert.Equal(t, "janet.weaver@reqres.in", u.Email)
}

func TestApp_ShowAndPaging(t *testing.T) {
	_, url := startAPI(t)
	app, out := newTestApp(t, testConfig(t, url),
		eveEmail, evePass,
		"show 7",
		"show 99",
		"prev",
		"next",
		"next",
		"page 1",
		"exit",
	)

	app.Run(context.Background())

	s := out.String()
	assert.Contains(t, s, "michael.lawson@reqres.in")
	assert.Contains(t, s, "✗ Failed to load user #99")
	assert.Contains(t, s, "Already on the first page.")
	assert.Contains(t, s, "page 2/2")
	assert.Contains(t, s, "Already on the last page.")
}

func TestApp_ExpiredTokenHint(t *testing.T) {
	api, url := startAPI(t, fakeapi.WithRequireToken())
	app, out := newTestApp(t, testConfig(t, url), eveEmail, evePass, "refresh", "exit")

	app.Run(context.Background())
	assert.NotContains(t, out.String(), "expired")

	api.RevokeTokens()
	out.Reset()
	app.reader = rdr("refresh\nexit\n")
	runREPL(context.Background(), app, app.status, app.reader, app.out)

	assert.True(t, app.isLoggedIn(), "the gate does not validate tokens")
	assert.Contains(t, out.String(), "the session may have expired, run 'login'")
}

func TestApp_LogoutClosesGate(t *testing.T) {
	_, url := startAPI(t)
	app, out := newTestApp(t, testConfig(t, url), eveEmail, evePass, "logout", "list", "", "", "exit")

	app.Run(context.Background())

	assert.Contains(t, out.String(), "✓ Logged out")
	assert.Contains(t, out.String(), "Not logged in.")
	assert.False(t, app.isLoggedIn())
}

func TestApp_SessionSurvivesRestartWithSQLite(t *testing.T) {
	_, url := startAPI(t)
	cfg := testConfig(t, url)
	cfg.StorageKind = config.StorageSQLite

	first, _ := newTestApp(t, cfg, eveEmail, evePass, "exit")
	first.Run(context.Background())
	require.True(t, first.isLoggedIn())
	require.NoError(t, first.Close(context.Background()))

	second, out := newTestApp(t, cfg, "status", "exit")
	second.Run(context.Background())

	assert.True(t, second.isLoggedIn())
	assert.NotContains(t, out.String(), "Enter email")
	assert.Contains(t, out.String(), "token saved")
}
