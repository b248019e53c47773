// Package directory provides clients for the remote key directory.
//
// HTTPClient is the JSON over HTTP implementation of domain.KeyDirectory.
// The caller's identity is sent in the X-User-ID header; authentication is
// handled elsewhere.
//
// Routes:
//
//	POST /v1/keys                              register own public key
//	PUT  /v1/keys                              replace own public key
//	GET  /v1/keys/{userId}                     fetch a user's public key
//	GET  /v1/groups/{groupId}/members          members with optional keys
//	GET  /v1/groups/{groupId}/keys/self        wrapped group key for caller
//	POST /v1/groups/{groupId}/keys             publish wrapped group keys
//	PUT  /v1/groups/{groupId}/members/{userId} add a member (development)
//
// "Not found" is a value, not an error: fetches return ok=false for 404, and
// for 400 on the wrapped key route. A 409 (or 400) on registration is
// ErrConflict. Any other non-2xx status is a *StatusError.
//
// Two decorators wrap any domain.KeyDirectory:
//
//   - Cached keeps fetched public key records in an LRU with a TTL.
//   - Retrying retries transport failures and 5xx responses with
//     exponential backoff. It is opt-in; the bare client never retries.
package directory
