package interfaces

import domaintypes "e2ekeys/internal/domain/types"

// KeyVault is the device-local store of private material.
//
// Loads return ok=false when nothing is stored. Writes replace whole values.
type KeyVault interface {
	LoadKeyPair() (domaintypes.KeyPair, bool, error)
	SaveKeyPair(kp domaintypes.KeyPair) error
	ClearKeyPair() error

	LoadGroupKey(groupID domaintypes.GroupID) (domaintypes.GroupKey, bool, error)
	SaveGroupKey(groupID domaintypes.GroupID, key domaintypes.GroupKey) error
	DeleteGroupKey(groupID domaintypes.GroupID) error
	ListGroupKeys() ([]domaintypes.GroupKey, error)
}
