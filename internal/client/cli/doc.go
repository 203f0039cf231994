// Package cli provides the interactive userdesk console.
//
// It wires configuration, token storage, the directory API services and a
// read–eval–print loop over one list view. Typical flow: restore or prompt
// for a session, show the first page of users, then execute commands.
//
// Key features:
//   - Login / Logout / Status
//   - List with paging, search and sort
//   - Show / Edit a single user
//   - Delete one user, or select several and bulk delete
//
// Commands other than help, login, logout, status and exit pass the session
// gate first; without a token the console prompts for login instead.
//
// The REPL is started via App.Run(ctx), which blocks until the user exits.
package cli
