package directory

import "e2ekeys/internal/domain"

// HeaderUserID carries the authenticated caller's user id.
const HeaderUserID = "X-User-ID"

// RegisterRequest is the body of POST /v1/keys.
type RegisterRequest struct {
	PublicKey []byte `json:"publicKey"`
}

// RegisterResponse is returned by POST /v1/keys.
type RegisterResponse struct {
	KeyID domain.KeyID `json:"keyId"`
}

// PublishRequest is the body of POST /v1/groups/{groupId}/keys.
type PublishRequest struct {
	GroupID       domain.GroupID                `json:"groupId"`
	EncryptedKeys []domain.WrappedGroupKeyEntry `json:"encryptedKeys"`
}

// MemberRequest is the body of PUT /v1/groups/{groupId}/members/{userId}.
type MemberRequest struct {
	UserName string `json:"userName,omitempty"`
}

// ErrorResponse is the body of every non-2xx response.
type ErrorResponse struct {
	Error string `json:"error"`
}
