// Package cli provides the interactive user-management command-line client.
//
// It wires configuration, the local session database, the backend API client,
// the avatar asset store, and an interactive REPL. Typical flow: restore a
// persisted session if one exists, then execute user commands.
//
// Key features:
//   - Sign in / sign out with a persisted session
//   - Profile editing: field edits, picture upload with live progress, submit
//   - Admin dashboard: list, search, delete, and create users
//   - Simulated route navigation that renders the session gate's affordances
//
// The REPL is started via App.Run(ctx), which blocks until the user exits.
// See App and runREPL for details.
package cli
