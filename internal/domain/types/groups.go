package types

// GroupKey is the live symmetric key of a group, held in plaintext only on
// member devices.
type GroupKey struct {
	GroupID      GroupID `json:"group_id"`
	SymmetricKey []byte  `json:"symmetric_key"`
	KeyID        KeyID   `json:"key_id"`
}

// GroupMember is one entry of a group's membership as reported by the
// directory. PublicKey is nil when the member never registered a key.
type GroupMember struct {
	UserID    UserID `json:"userId"`
	UserName  string `json:"userName,omitempty"`
	PublicKey []byte `json:"publicKey"`
	KeyID     KeyID  `json:"keyId,omitempty"`
}

// HasKey reports whether the member can receive a wrapped group key.
func (m GroupMember) HasKey() bool { return len(m.PublicKey) > 0 }

// WrappedGroupKeyEntry is the server-stored copy of a group key wrapped for
// one member.
//
// KeyID names the group key epoch the entry wraps; RecipientKeyID names the
// member public key it was wrapped to.
type WrappedGroupKeyEntry struct {
	UserID            UserID           `json:"userId"`
	EncryptedGroupKey EncryptedMessage `json:"encryptedGroupKey"`
	KeyID             KeyID            `json:"keyId"`
	RecipientKeyID    KeyID            `json:"recipientKeyId,omitempty"`
}

// WrappedGroupKey is the entry addressed to the calling device together with
// the public key of the member that wrapped it.
type WrappedGroupKey struct {
	EncryptedGroupKey EncryptedMessage `json:"encryptedGroupKey"`
	UserPublicKey     []byte           `json:"userPublicKey"`
	KeyID             KeyID            `json:"keyId"`
}

// MemberFailure records why a single member was left out of a fan-out.
type MemberFailure struct {
	UserID UserID
	Err    error
}

// DistributionReport summarises a group key fan-out.
type DistributionReport struct {
	GroupID        GroupID
	KeyID          KeyID
	TotalMembers   int
	CapableMembers int
	Wrapped        int
	Failed         []MemberFailure
}

// GroupStatus describes how far group encryption is usable from this device.
type GroupStatus struct {
	GroupID        GroupID
	TotalMembers   int
	CapableMembers int
	KeyCached      bool
	KeyID          KeyID
}
