// Package cli provides the interactive GameGuesser command-line client.
//
// It wires configuration, the local store, the remote catalog client and an
// interactive REPL that keeps working offline. Typical flow: restore the
// previous session, reset stale daily streaks, start the connectivity
// watcher and the background catalog sync, then execute user commands.
//
// Key features:
//   - Sign in with an account id, or register / log in a local account
//   - Keyword and compare guessing rounds with five lives
//   - Catalog search and manual sync
//   - Per-mode streaks
//
// The REPL is started via App.Run(ctx), which blocks until the user exits.
package cli
