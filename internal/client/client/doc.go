// Package client contains the transport side of the taskboard client.
//
// # Overview
//
// The package provides:
//  1. The Client interface: the remote data service as the client core
//     uses it (sign-up and login, task and profile calls, avatar presign).
//  2. GRPCClient, a gRPC implementation that injects the access token via an
//     interceptor, refreshes an expired token once per call and maps status
//     codes to errors.
//  3. InitDatabase and RunMigrations, which open the local SQLite store and
//     apply the embedded goose migrations.
//
// # Error Handling
//
// Transport conditions are sentinel errors matched with errors.Is:
// ErrUnavailable, ErrUnauthorized, ErrNotLoggedIn. Other server answers are
// returned as *RemoteError, whose message is the server's human-readable
// text and which unwraps to ErrNotFound, ErrInvalidInput or ErrConflict.
//
// # Concurrency
//
// GRPCClient is safe for concurrent use. Token state is guarded by a mutex.
package client
