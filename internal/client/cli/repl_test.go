package cli

import (
	"bytes"
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

type fakeExec struct {
	loggedIn     bool
	loginSucceed bool

	calls []string
}

func (f *fakeExec) record(format string, args ...any) error {
	f.calls = append(f.calls, fmt.Sprintf(format, args...))
	return nil
}

func (f *fakeExec) isLoggedIn() bool { return f.loggedIn }
func (f *fakeExec) Login(ctx context.Context) error {
	f.loggedIn = f.loginSucceed
	return f.record("login")
}
func (f *fakeExec) Logout(ctx context.Context) error {
	f.loggedIn = false
	return f.record("logout")
}
func (f *fakeExec) Status(ctx context.Context) error      { return f.record("status") }
func (f *fakeExec) List(ctx context.Context) error        { return f.record("list") }
func (f *fakeExec) Page(ctx context.Context, n int) error { return f.record("page %d", n) }
func (f *fakeExec) Next(ctx context.Context) error        { return f.record("next") }
func (f *fakeExec) Prev(ctx context.Context) error        { return f.record("prev") }
func (f *fakeExec) Refresh(ctx context.Context) error     { return f.record("refresh") }
func (f *fakeExec) Search(ctx context.Context, text string) error {
	return f.record("search %q", text)
}
func (f *fakeExec) Sort(ctx context.Context, field string) error { return f.record("sort %s", field) }
func (f *fakeExec) Show(ctx context.Context, id int) error       { return f.record("show %d", id) }
func (f *fakeExec) Edit(ctx context.Context, id int) error       { return f.record("edit %d", id) }
func (f *fakeExec) Delete(ctx context.Context, id int) error     { return f.record("delete %d", id) }
func (f *fakeExec) Select(ctx context.Context, ids []int) error  { return f.record("select %v", ids) }
func (f *fakeExec) Unselect(ctx context.Context, ids []int) error {
	return f.record("unselect %v", ids)
}
func (f *fakeExec) SelectAll(ctx context.Context) error  { return f.record("selectall") }
func (f *fakeExec) BulkDelete(ctx context.Context) error { return f.record("bulkdelete") }

func run(exec *fakeExec, lines ...string) string {
	var out bytes.Buffer
	runREPL(context.Background(), exec, func() string { return "status" }, rdr(strings.Join(lines, "\n")), &out)
	return out.String()
}

func TestRunREPL_DispatchesCommands(t *testing.T) {
	exec := &fakeExec{loggedIn: true}

	out := run(exec,
		"help", "l", "list", "page 2", "next", "prev", "refresh",
		"search  Eve  Holt", "search", "sort last_name",
		"show 3", "edit 3", "delete 3",
		"select 1 2", "unselect 2", "selectall", "bulkdelete",
		"status", "logout", "exit", "list",
	)

	assert.Equal(t, []string{
		"list", "list", "page 2", "next", "prev", "refresh",
		`search "Eve Holt"`, `search ""`, "sort last_name",
		"show 3", "edit 3", "delete 3",
		"select [1 2]", "unselect [2]", "selectall", "bulkdelete",
		"status", "logout",
	}, exec.calls)
	assert.Contains(t, out, "Available commands:")
	assert.Contains(t, out, "Bye!")
	assert.Contains(t, out, "userdesk (status)> ")
}

func TestRunREPL_GateRedirectsToLogin(t *testing.T) {
	exec := &fakeExec{loginSucceed: true}

	out := run(exec, "list", "show 2")

	assert.Equal(t, []string{"login", "list", "show 2"}, exec.calls, "login once, then the command runs")
	assert.Contains(t, out, "Not logged in.")
}

func TestRunREPL_GateBlocksWhenLoginFails(t *testing.T) {
	exec := &fakeExec{loginSucceed: false}

	run(exec, "list", "delete 2", "status", "help")

	assert.Equal(t, []string{"login", "login", "status"}, exec.calls)
}

func TestRunREPL_UsageErrors(t *testing.T) {
	exec := &fakeExec{loggedIn: true}

	out := run(exec, "show", "show abc", "page 0", "select", "select 1 x", "sort", "frobnicate")

	assert.Empty(t, exec.calls)
	assert.Contains(t, out, "Usage: show <id>")
	assert.Contains(t, out, "Usage: page <n>")
	assert.Contains(t, out, "Usage: select <id...>")
	assert.Contains(t, out, `Not a user id: "x"`)
	assert.Contains(t, out, "Usage: sort <first_name|last_name|email>")
	assert.Contains(t, out, "Unknown command: frobnicate")
}

func TestRunREPL_UnknownCommandSkipsGate(t *testing.T) {
	exec := &fakeExec{}

	out := run(exec, "frobnicate")

	assert.Empty(t, exec.calls)
	assert.NotContains(t, out, "Not logged in.")
}

func TestRunREPL_LastLineWithoutNewline(t *testing.T) {
	exec := &fakeExec{loggedIn: true}

	run(exec, "list", "next")

	assert.Equal(t, []string{"list", "next"}, exec.calls)
}
