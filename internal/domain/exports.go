package domain

import (
	interfaces "e2ekeys/internal/domain/interfaces"
	types "e2ekeys/internal/domain/types"
)

// Type aliases expose domain types from the types subpackage for compact imports.
type (
	UserID               = types.UserID
	GroupID              = types.GroupID
	KeyID                = types.KeyID
	Fingerprint          = types.Fingerprint
	X25519Public         = types.X25519Public
	X25519Private        = types.X25519Private
	KeyPair              = types.KeyPair
	PublicKeyRecord      = types.PublicKeyRecord
	EncryptedMessage     = types.EncryptedMessage
	GroupKey             = types.GroupKey
	GroupMember          = types.GroupMember
	WrappedGroupKeyEntry = types.WrappedGroupKeyEntry
	WrappedGroupKey      = types.WrappedGroupKey
	MemberFailure        = types.MemberFailure
	DistributionReport   = types.DistributionReport
	GroupStatus          = types.GroupStatus
)

// Interface aliases expose domain interfaces from the interfaces subpackage.
type (
	KeyVault        = interfaces.KeyVault
	KeyDirectory    = interfaces.KeyDirectory
	IdentityService = interfaces.IdentityService
	MessageCodec    = interfaces.MessageCodec
	GroupKeyService = interfaces.GroupKeyService
)
