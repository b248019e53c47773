// Package main runs the key directory server used by e2ekeys devices. It
// stores registered public keys, group membership and wrapped group keys.
// It never sees plaintext, private keys or unwrapped group keys.
//
// HTTP API (all routes under /v1, caller identified by X-User-ID)
//
//	POST /v1/keys                          register the caller's public key
//	PUT  /v1/keys                          replace the caller's public key
//	GET  /v1/keys/{user}                   fetch a user's public key
//	GET  /v1/groups/{group}/members        list members with their keys
//	PUT  /v1/groups/{group}/members/{user} add a member
//	GET  /v1/groups/{group}/keys/self      the caller's wrapped group key
//	POST /v1/groups/{group}/keys           publish a wrapped key bundle
//
// Behaviour
//
//   - State is held in memory unless --db names a SQLite file.
//   - Responses are JSON. Non-2xx statuses carry {"error": "..."}.
//   - Requests are logged at debug level.
//   - The default listen address is :8080.
package main
