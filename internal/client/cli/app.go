package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"net/http"
	"os"

	"github.com/dmitrijs2005/userdesk/internal/client/client"
	"github.com/dmitrijs2005/userdesk/internal/client/config"
	"github.com/dmitrijs2005/userdesk/internal/client/directory"
	"github.com/dmitrijs2005/userdesk/internal/client/services"
	"github.com/dmitrijs2005/userdesk/internal/client/session"
	"github.com/dmitrijs2005/userdesk/internal/logging"
	"github.com/dmitrijs2005/userdesk/internal/telemetry"
)

type App struct {
	config  *config.Config
	logger  logging.Logger
	storage session.Storage
	session *session.Session
	auth    services.AuthService
	users   services.UserService
	view    *directory.ListView
	reader  *bufio.Reader
	out     io.Writer
	email   string

	closeStorage func() error
	shutdown     telemetry.ShutdownFunc
}

// NewApp wires the console. Logs go to stderr so they never interleave
// with the table output on out.
func NewApp(ctx context.Context, c *config.Config, in io.Reader, out io.Writer) (*App, error) {
	level, err := logging.ParseLevel(c.LogLevel)
	if err != nil {
		return nil, err
	}
	logger := logging.NewTextLogger(os.Stderr, level)

	storage, closeStorage, err := openStorage(ctx, c)
	if err != nil {
		return nil, fmt.Errorf("token storage: %w", err)
	}

	sess := session.New(ctx, storage)
	if err := sess.LastStorageError(); err != nil {
		logger.Warn(ctx, "could not restore session", "storage", c.StorageKind, "error", err)
	}

	opts := []client.PipelineOption{client.WithHTTPClient(&http.Client{Timeout: c.RequestTimeout})}
	if c.APIKey != "" {
		opts = append(opts, client.WithAPIKey(c.APIKey))
	}
	api := client.NewDirectoryClient(client.NewPipeline(c.BaseURL, sess, opts...))
	users := services.NewUserService(api, c.BulkConcurrency)

	return &App{
		config:       c,
		logger:       logger,
		storage:      storage,
		session:      sess,
		auth:         services.NewAuthService(api, sess),
		users:        users,
		view:         directory.NewListView(users),
		reader:       bufio.NewReader(in),
		out:          out,
		closeStorage: closeStorage,
		shutdown:     telemetry.Setup(ctx, "userdesk", logger),
	}, nil
}

// Run restores or asks for a session, shows the first page and then runs
// the REPL until exit or EOF.
func (a *App) Run(ctx context.Context) {
	a.println("Welcome to userdesk (type 'help' for commands)")
	a.logger.Debug(ctx, "starting console", "base_url", a.config.BaseURL, "storage", a.config.StorageKind)

	if a.isLoggedIn() || a.Login(ctx) == nil {
		_ = a.List(ctx)
	}
	runREPL(ctx, a, a.status, a.reader, a.out)
}

// Close releases the token store and flushes traces.
func (a *App) Close(ctx context.Context) error {
	var firstErr error
	if a.shutdown != nil {
		firstErr = a.shutdown(ctx)
	}
	if a.closeStorage != nil {
		if err := a.closeStorage(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}

func (a *App) isLoggedIn() bool {
	return a.auth.IsAuthenticated()
}

func (a *App) status() string {
	who := "anonymous"
	if a.isLoggedIn() {
		who = "authenticated"
		if a.email != "" {
			who = a.email
		}
	}
	if n := len(a.view.Selected()); n > 0 {
		return fmt.Sprintf("%s, %d selected", who, n)
	}
	return who
}

func (a *App) println(args ...any) {
	fmt.Fprintln(a.out, args...)
}

func (a *App) printf(format string, args ...any) {
	fmt.Fprintf(a.out, format, args...)
}
