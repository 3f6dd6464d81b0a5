// Package api contains the HTTP building blocks for talking to the VidTube
// backend.
//
// # Overview
//
// The package provides:
//  1. A configured request pipeline (see Client) with a fixed base URL,
//     cookie jar and timeout. Before every request the current access token
//     is read from the token store and attached as a bearer credential.
//  2. Transparent recovery from expired access tokens: a 401 response
//     triggers at most one refresh-token exchange followed by one retry of
//     the original request. The retry budget is an explicit attempt counter
//     threaded through the pipeline, so a rejected refreshed token simply
//     propagates the second failure.
//  3. Typed response decoding: every endpoint decodes the server's
//     {statusCode, data, message, success} envelope into a concrete type and
//     fails loudly (DecodeError) on unexpected shapes.
//
// # Error Handling
//
// Transport-level failures are wrapped in ErrUnavailable. HTTP error
// responses become *Error carrying the status code and the server-provided
// message; *Error matches ErrUnauthorized via errors.Is when the status is
// 401. Callers match all of these with errors.Is.
//
// Concurrency & Contexts
//
// Client is safe for concurrent use. Concurrent 401s each run their own
// refresh exchange; there is deliberately no single-flight guard around the
// refresh call and the last stored pair wins. All operations accept
// context.Context and honor cancellation/timeouts.
package api
