// Package directoryserver implements the key directory HTTP API used during
// development and in integration tests.
//
// The server stores public keys, group membership and wrapped group key
// bundles. It never performs cryptography and never sees a private key or a
// plaintext group key. State lives behind the Store interface: MemoryStore
// keeps it for the lifetime of the process, SQLiteStore persists it.
//
// Behaviour
//
//   - The caller is identified by the X-User-ID header. Routes acting on
//     "own" data answer 401 without it.
//   - Registering a second key for a user answers 409; PUT /v1/keys replaces
//     it instead.
//   - Publishing wrapped keys replaces the group's whole bundle.
//   - Unknown users and missing wrapped entries answer 404. Unknown groups
//     have no members and answer an empty list.
//   - Bodies that fail to decode or validate answer 422.
//   - Errors are JSON: {"error": "..."}.
package directoryserver
