package directoryserver_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"e2ekeys/internal/directory"
	"e2ekeys/internal/directoryserver"
	"e2ekeys/internal/logging"
)

func newServer(t *testing.T) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(directoryserver.New(directoryserver.NewMemoryStore(), logging.Logger{}).Handler())
	t.Cleanup(srv.Close)
	return srv
}

func request(t *testing.T, method, url, user string, body any) *http.Response {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req, err := http.NewRequest(method, url, &buf)
	require.NoError(t, err)
	if user != "" {
		req.Header.Set(directory.HeaderUserID, user)
	}
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	t.Cleanup(func() { resp.Body.Close() })
	return resp
}

func TestServer_StatusCodes(t *testing.T) {
	srv := newServer(t)
	key := bytes.Repeat([]byte{7}, 32)

	tests := []struct {
		name   string
		method string
		path   string
		user   string
		body   any
		want   int
	}{
		{"register without caller", http.MethodPost, "/v1/keys", "", directory.RegisterRequest{PublicKey: key}, http.StatusUnauthorized},
		{"register bad key", http.MethodPost, "/v1/keys", "alice", directory.RegisterRequest{PublicKey: []byte{1}}, http.StatusUnprocessableEntity},
		{"register", http.MethodPost, "/v1/keys", "alice", directory.RegisterRequest{PublicKey: key}, http.StatusCreated},
		{"register twice", http.MethodPost, "/v1/keys", "alice", directory.RegisterRequest{PublicKey: key}, http.StatusConflict},
		{"rotate", http.MethodPut, "/v1/keys", "alice", directory.RegisterRequest{PublicKey: key}, http.StatusCreated},
		{"fetch known", http.MethodGet, "/v1/keys/alice", "bob", nil, http.StatusOK},
		{"fetch unknown", http.MethodGet, "/v1/keys/carol", "bob", nil, http.StatusNotFound},
		{"members of unknown group", http.MethodGet, "/v1/groups/g/members", "bob", nil, http.StatusOK},
		{"wrapped key missing", http.MethodGet, "/v1/groups/g/keys/self", "bob", nil, http.StatusNotFound},
		{"publish empty", http.MethodPost, "/v1/groups/g/keys", "alice", directory.PublishRequest{}, http.StatusUnprocessableEntity},
		{"add member", http.MethodPut, "/v1/groups/g/members/bob", "", directory.MemberRequest{UserName: "Bob"}, http.StatusNoContent},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := request(t, tt.method, srv.URL+tt.path, tt.user, tt.body)
			assert.Equal(t, tt.want, resp.StatusCode)
			if resp.StatusCode >= 400 {
				var er directory.ErrorResponse
				require.NoError(t, json.NewDecoder(resp.Body).Decode(&er))
				assert.NotEmpty(t, er.Error)
			}
		})
	}
}
