// Package restapi implements the shared HTTP transport for the backend REST
// API.
//
// # Overview
//
// Every call to the backend goes through one Client. The client owns the
// pieces that are uniform across endpoints:
//
//   - request shaping: bodies and query parameters are written camelCase by
//     callers and converted to the snake_case wire format before dispatch
//   - per-call status acceptance via a StatusValidator chosen by the caller
//   - the session-wide CancelGroup every in-flight request joins
//   - a uniform per-request timeout, rate limiter, and circuit breaker
//   - envelope unwrapping of the uniform {result, message} response body
//
// Endpoint semantics (paths, parameters, schemas) live in the api package;
// long-running task orchestration lives in the task package.
//
// # Cancellation
//
// CancelAll cancels every request joined to the current token generation and
// atomically installs a fresh generation, so calls issued afterwards proceed
// normally. Requests abandoned this way fail with ErrCancelled, which callers
// treat as "abandoned", not "failed".
package restapi
