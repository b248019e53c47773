package directory

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"e2ekeys/internal/domain"
)

// StatusError is an unexpected non-2xx response.
type StatusError struct {
	Method string
	URL    string
	Code   int
	Msg    string
}

func (e *StatusError) Error() string {
	if e.Msg != "" {
		return fmt.Sprintf("directory %s %s: %d %s: %s", e.Method, e.URL, e.Code, http.StatusText(e.Code), e.Msg)
	}
	return fmt.Sprintf("directory %s %s: %d %s", e.Method, e.URL, e.Code, http.StatusText(e.Code))
}

// HTTPClient talks to the key directory on behalf of User.
type HTTPClient struct {
	Base string
	User domain.UserID
	HTTP *http.Client
}

// NewHTTP returns a client for the directory at base acting as user.
func NewHTTP(base string, user domain.UserID) *HTTPClient {
	return &HTTPClient{Base: strings.TrimRight(base, "/"), User: user, HTTP: http.DefaultClient}
}

// Self returns the caller identity sent with every request.
func (c *HTTPClient) Self() domain.UserID { return c.User }

// RegisterPublicKey publishes pub as the caller's key and returns its id.
func (c *HTTPClient) RegisterPublicKey(ctx context.Context, pub []byte) (domain.KeyID, error) {
	var out RegisterResponse
	err := c.do(ctx, http.MethodPost, "/v1/keys", RegisterRequest{PublicKey: pub}, &out)
	if code := statusCode(err); code == http.StatusConflict || code == http.StatusBadRequest {
		return "", fmt.Errorf("%w: %v", domain.ErrConflict, err)
	}
	if err != nil {
		return "", err
	}
	return out.KeyID, nil
}

// RotatePublicKey replaces the caller's registered key with pub.
func (c *HTTPClient) RotatePublicKey(ctx context.Context, pub []byte) (domain.KeyID, error) {
	var out RegisterResponse
	if err := c.do(ctx, http.MethodPut, "/v1/keys", RegisterRequest{PublicKey: pub}, &out); err != nil {
		return "", err
	}
	return out.KeyID, nil
}

// FetchPublicKey returns the registered key of userID, if any.
func (c *HTTPClient) FetchPublicKey(ctx context.Context, userID domain.UserID) (domain.PublicKeyRecord, bool, error) {
	var rec domain.PublicKeyRecord
	err := c.do(ctx, http.MethodGet, "/v1/keys/"+url.PathEscape(userID.String()), nil, &rec)
	if statusCode(err) == http.StatusNotFound {
		return domain.PublicKeyRecord{}, false, nil
	}
	if err != nil {
		return domain.PublicKeyRecord{}, false, err
	}
	if rec.UserID == "" {
		rec.UserID = userID
	}
	return rec, true, nil
}

// FetchGroupMembers lists groupID's members, keyed or not.
func (c *HTTPClient) FetchGroupMembers(ctx context.Context, groupID domain.GroupID) ([]domain.GroupMember, error) {
	var out []domain.GroupMember
	if err := c.do(ctx, http.MethodGet, groupPath(groupID, "members"), nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// FetchWrappedGroupKey returns the entry of groupID addressed to the caller.
func (c *HTTPClient) FetchWrappedGroupKey(ctx context.Context, groupID domain.GroupID) (domain.WrappedGroupKey, bool, error) {
	var out domain.WrappedGroupKey
	err := c.do(ctx, http.MethodGet, groupPath(groupID, "keys", "self"), nil, &out)
	if code := statusCode(err); code == http.StatusNotFound || code == http.StatusBadRequest {
		return domain.WrappedGroupKey{}, false, nil
	}
	if err != nil {
		return domain.WrappedGroupKey{}, false, err
	}
	return out, true, nil
}

// PushWrappedGroupKeys uploads one wrapped entry per member.
func (c *HTTPClient) PushWrappedGroupKeys(ctx context.Context, groupID domain.GroupID, entries []domain.WrappedGroupKeyEntry) error {
	return c.do(ctx, http.MethodPost, groupPath(groupID, "keys"), PublishRequest{GroupID: groupID, EncryptedKeys: entries}, nil)
}

// AddGroupMember seeds group membership on a development directory.
func (c *HTTPClient) AddGroupMember(ctx context.Context, groupID domain.GroupID, userID domain.UserID, userName string) error {
	return c.do(ctx, http.MethodPut, groupPath(groupID, "members", userID.String()), MemberRequest{UserName: userName}, nil)
}

func groupPath(groupID domain.GroupID, parts ...string) string {
	p := "/v1/groups/" + url.PathEscape(groupID.String())
	for _, s := range parts {
		p += "/" + url.PathEscape(s)
	}
	return p
}

func (c *HTTPClient) do(ctx context.Context, method, path string, in, out any) error {
	var body io.Reader
	if in != nil {
		buf := new(bytes.Buffer)
		if err := json.NewEncoder(buf).Encode(in); err != nil {
			return err
		}
		body = buf
	}
	u := c.Base + path
	req, err := http.NewRequestWithContext(ctx, method, u, body)
	if err != nil {
		return err
	}
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")
	if c.User != "" {
		req.Header.Set(HeaderUserID, c.User.String())
	}

	hc := c.HTTP
	if hc == nil {
		hc = http.DefaultClient
	}
	resp, err := hc.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode/100 != 2 {
		se := &StatusError{Method: method, URL: u, Code: resp.StatusCode}
		var er ErrorResponse
		if json.NewDecoder(io.LimitReader(resp.Body, 4096)).Decode(&er) == nil {
			se.Msg = er.Error
		}
		return se
	}
	if out == nil || resp.StatusCode == http.StatusNoContent {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("directory %s %s: %w: %w", method, u, domain.ErrMalformedResponse, err)
	}
	return nil
}

// statusCode returns the HTTP status carried by err, or 0.
func statusCode(err error) int {
	var se *StatusError
	if errors.As(err, &se) {
		return se.Code
	}
	return 0
}

var _ domain.KeyDirectory = (*HTTPClient)(nil)
