// Package cli provides the interactive taskboard command-line client.
//
// It wires configuration, the local session store, the task and profile
// services and an interactive REPL. Typical flow: resume the saved session
// (or prompt for credentials), start a background connectivity watcher, and
// execute user commands.
//
// Key features:
//   - Register / Login / Logout
//   - List tasks with a text search and status/priority filters
//   - Add, edit, complete and delete tasks
//   - Dashboard counters (stats)
//   - Show and edit the profile, upload an avatar
//
// Mutations wait for the server before the prompt returns; their outcome is
// shown by the notifier. Tasks are addressed by their row number in the last
// listing or by an id prefix; a successful mutation retires the listing.
package cli
