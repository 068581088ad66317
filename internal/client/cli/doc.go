// Package cli provides the interactive task tracker command-line client.
//
// It wires configuration, the local session store, the API client and an
// interactive REPL. A saved session is restored on start, and a background
// watcher pings the server so the prompt can show whether it is reachable.
//
// Commands:
//   - register, login, logout
//   - list (l), refresh
//   - add, done <n>, edit <n>, delete <n>
//   - stats
//
// <n> is the row number from the last list, or a task id.
//
// The REPL is started via App.Run(ctx), which blocks until the user exits.
package cli
