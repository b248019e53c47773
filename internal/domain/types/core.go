package types

// UserID identifies an account in the key directory.
type UserID string

// String returns the string form of the user identifier.
func (u UserID) String() string { return string(u) }

// GroupID identifies a group conversation.
type GroupID string

// String returns the string form of the group identifier.
func (g GroupID) String() string { return string(g) }

// KeyID identifies a registered public key or a group key epoch.
type KeyID string

// String returns the string form of the key identifier.
func (k KeyID) String() string { return string(k) }

// Fingerprint is a short identifier for public keys presented to users.
type Fingerprint string

// String returns the string form of the fingerprint.
func (f Fingerprint) String() string { return string(f) }
