// Package client contains the CLI's building blocks for talking to the task
// tracker backend.
//
// # Overview
//
//  1. The Client interface: register/login, health ping, task CRUD and the
//     statistics call.
//  2. HTTPClient, its JSON-over-HTTP implementation, which attaches the bearer
//     credential and maps response statuses to sentinel errors.
//  3. Local persistence bootstrap (InitDatabase, RunMigrations) for the SQLite
//     file that keeps the session between runs.
//
// # Error Handling
//
// Match failures with errors.Is against ErrUnavailable, ErrUnauthorized,
// ErrNotFound, ErrConflict and ErrValidation. Server messages are available
// through *APIError.
package client
