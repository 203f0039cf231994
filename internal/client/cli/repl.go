package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// execIface defines the command surface the REPL dispatches to.
// The real App satisfies it; tests provide a lightweight stub.
type execIface interface {
	isLoggedIn() bool
	Login(ctx context.Context) error
	Logout(ctx context.Context) error
	Status(ctx context.Context) error
	List(ctx context.Context) error
	Page(ctx context.Context, n int) error
	Next(ctx context.Context) error
	Prev(ctx context.Context) error
	Refresh(ctx context.Context) error
	Search(ctx context.Context, text string) error
	Sort(ctx context.Context, field string) error
	Show(ctx context.Context, id int) error
	Edit(ctx context.Context, id int) error
	Delete(ctx context.Context, id int) error
	Select(ctx context.Context, ids []int) error
	Unselect(ctx context.Context, ids []int) error
	SelectAll(ctx context.Context) error
	BulkDelete(ctx context.Context) error
}

const helpText = `Available commands:
  login                 authenticate
  logout                forget the session token
  status                show session and view state
  list | l              show the current page
  page <n>              go to page n
  next | prev           move between pages
  refresh               refetch the current page
  search [text]         filter by name or email, no text clears
  sort <field>          first_name, last_name or email; repeat to flip direction
  show <id>             show one user
  edit <id>             edit a user
  delete <id>           delete a user
  select <id...>        add users to the selection
  unselect <id...>      remove users from the selection
  selectall             select or clear all visible users
  bulkdelete            delete every selected user
  exit | quit           leave the program`

// open commands skip the session gate.
var openCommands = map[string]bool{
	"help": true, "login": true, "logout": true, "status": true, "exit": true, "quit": true,
}

// runREPL reads one command per line from r and dispatches it to a.
//
// Protected commands pass the session gate first: without a token the user
// is sent to the login prompt, and the command runs only if login succeeds.
// The loop ends on EOF or "exit"/"quit".
//
// Errors returned by handlers are ignored here; handlers report their own
// failures. This keeps the loop resilient and focused on I/O.
func runREPL(ctx context.Context, a execIface, statusFn func() string, r *bufio.Reader, w io.Writer) {
	for {
		fmt.Fprintf(w, "userdesk (%s)> ", statusFn())
		line, err := r.ReadString('\n')
		if err != nil && (!errors.Is(err, io.EOF) || line == "") {
			fmt.Fprintln(w)
			return
		}

		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		cmd, args := strings.ToLower(parts[0]), parts[1:]

		if !openCommands[cmd] && isKnown(cmd) && !a.isLoggedIn() {
			fmt.Fprintln(w, "Not logged in.")
			if a.Login(ctx) != nil || !a.isLoggedIn() {
				continue
			}
		}

		switch cmd {
		case "help":
			fmt.Fprintln(w, helpText)
		case "login":
			_ = a.Login(ctx)
		case "logout":
			_ = a.Logout(ctx)
		case "status":
			_ = a.Status(ctx)
		case "l", "list":
			_ = a.List(ctx)
		case "page":
			if n, ok := oneID(w, "page <n>", args); ok {
				_ = a.Page(ctx, n)
			}
		case "next":
			_ = a.Next(ctx)
		case "prev":
			_ = a.Prev(ctx)
		case "refresh":
			_ = a.Refresh(ctx)
		case "search":
			_ = a.Search(ctx, strings.Join(args, " "))
		case "sort":
			if len(args) != 1 {
				fmt.Fprintln(w, "Usage: sort <first_name|last_name|email>")
				continue
			}
			_ = a.Sort(ctx, args[0])
		case "show":
			if id, ok := oneID(w, "show <id>", args); ok {
				_ = a.Show(ctx, id)
			}
		case "edit":
			if id, ok := oneID(w, "edit <id>", args); ok {
				_ = a.Edit(ctx, id)
			}
		case "delete":
			if id, ok := oneID(w, "delete <id>", args); ok {
				_ = a.Delete(ctx, id)
			}
		case "select":
			if ids, ok := manyIDs(w, "select <id...>", args); ok {
				_ = a.Select(ctx, ids)
			}
		case "unselect":
			if ids, ok := manyIDs(w, "unselect <id...>", args); ok {
				_ = a.Unselect(ctx, ids)
			}
		case "selectall":
			_ = a.SelectAll(ctx)
		case "bulkdelete":
			_ = a.BulkDelete(ctx)
		case "exit", "quit":
			fmt.Fprintln(w, "Bye!")
			return
		default:
			fmt.Fprintln(w, "Unknown command:", cmd)
		}
	}
}

func isKnown(cmd string) bool {
	switch cmd {
	case "l", "list", "page", "next", "prev", "refresh", "search", "sort",
		"show", "edit", "delete", "select", "unselect", "selectall", "bulkdelete":
		return true
	}
	return openCommands[cmd]
}

func oneID(w io.Writer, usage string, args []string) (int, bool) {
	if len(args) != 1 {
		fmt.Fprintln(w, "Usage:", usage)
		return 0, false
	}
	n, err := strconv.Atoi(args[0])
	if err != nil || n < 1 {
		fmt.Fprintln(w, "Usage:", usage)
		return 0, false
	}
	return n, true
}

func manyIDs(w io.Writer, usage string, args []string) ([]int, bool) {
	if len(args) == 0 {
		fmt.Fprintln(w, "Usage:", usage)
		return nil, false
	}
	ids := make([]int, 0, len(args))
	for _, s := range args {
		n, err := strconv.Atoi(s)
		if err != nil || n < 1 {
			fmt.Fprintf(w, "Not a user id: %q\n", s)
			return nil, false
		}
		ids = append(ids, n)
	}
	return ids, true
}
