// Package api provides the HTTP transport for communicating with the Metigan
// API. It handles authentication, request/response serialization, timeouts
// and automatic retries for transient failures.
//
// # Client Creation
//
// [NewClient] takes a [Config]. An API key is required; it is sent in the
// x-api-key header on every request and never written to logs or errors.
//
// # Retry Behavior
//
// Requests are retried up to [Config.RetryCount] additional times, waiting a
// constant [Config.RetryDelay] between attempts, for:
//
//   - network errors and per-attempt timeouts
//   - 429 Too Many Requests
//   - any 5xx status
//
// Other 4xx responses are returned immediately. When every attempt fails the
// error has kind ExhaustedRetries and wraps the last failure. The retry
// schedule is a [RetryPolicy]; waits run on the clock carried by the request
// context, so tests can substitute a mock clock.
//
// # Responses
//
// The service names fields in camelCase. Responses are decoded into the DTO
// types of this package and translated by the caller into exported types.
// A 2xx body that is not valid JSON, or does not fit the DTO, yields kind
// MalformedResponse. A 2xx envelope with "success": false yields kind ApiError.
//
// # Thread Safety
//
// The [Client] type is safe for concurrent use. Multiple goroutines may call
// methods on a single Client simultaneously.
package api
