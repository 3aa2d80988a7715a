// Package cli provides the interactive machine command-line client.
//
// It wires configuration, the API client, a persisted session, and an
// interactive REPL. Typical flow: restore a saved session (or prompt for
// credentials), start a background connectivity watcher, and execute user
// commands.
//
// Key features:
//   - Register / Login / Logout with a session that survives restarts
//   - Generate credential batches on the server
//   - Step through accounts one at a time, level by level
//   - Export the account list to remote storage as a CSV archive
//
// The REPL is started via App.Root(ctx), which blocks until the user exits.
// See App, StartOnlineStatusWatcher, and runREPL for details.
package cli
