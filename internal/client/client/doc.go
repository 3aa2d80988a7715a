// Package client contains client-side building blocks for the machine CLI.
//
// # Overview
//
// The package provides:
//  1. A transport-agnostic API contract (see the Client interface) to talk
//     to the machine backend: Register/Login/Logout, Ping, account batches,
//     game stepping, and archive upload helpers.
//  2. A concrete HTTP implementation (see HTTPClient) that attaches the
//     access token to every request, transparently refreshes an expired
//     token pair and replays the failed request once, and maps HTTP status
//     codes to sentinel errors.
//
// # Error Handling
//
// Common conditions are exposed as sentinel errors that callers can match
// with errors.Is: ErrUnavailable, ErrUnauthorized, ErrNotFound,
// ErrAlreadyExists, ErrNoAccounts.
//
// Concurrency & Contexts
//
// The HTTP client mutates its token pair in place and is meant for the
// single-threaded CLI loop. All operations accept context.Context and honor
// cancellation/timeouts.
package client
