package cli

import (
	"context"
	"errors"
	"net/http"

	"github.com/dmitrijs2005/userdesk/internal/client/client"
)

// success prints a one-line confirmation.
func (a *App) success(format string, args ...any) {
	a.printf("✓ "+format+"\n", args...)
}

// fail prints a one-line failure notice, logs err and returns it.
func (a *App) fail(ctx context.Context, msg string, err error) error {
	a.printf("✗ %s: %v\n", msg, err)

	attrs := []any{"error", err}
	var se *client.StatusError
	if errors.As(err, &se) {
		attrs = append(attrs, "status", se.StatusCode, "request_id", se.RequestID)
	}
	a.logger.Error(ctx, msg, attrs...)

	if client.StatusCode(err) == http.StatusUnauthorized {
		a.println("  the session may have expired, run 'login'")
	}
	return err
}
