package hostelclient

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"hostel-management/internal/access"
	"hostel-management/internal/dto/request"
	"hostel-management/internal/dto/response"
	"hostel-management/pkg/utils"
)

const (
	keyMe          = "me"
	keyPermissions = "me:permissions"
	keyNavigation  = "me:navigation"
)

// Login authenticates and keeps the returned session token for later calls.
func (c *Client) Login(ctx context.Context, email, password string) (*response.AuthResponse, error) {
	req := request.LoginRequest{Email: email, Password: password}
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		return nil, validationError(errs)
	}

	var out response.AuthResponse
	if err := do(ctx, c, http.MethodPost, "/api/auth/login", req, &out); err != nil {
		return nil, err
	}
	c.SetToken(out.Token)
	return &out, nil
}

// Register creates a student account and keeps its session token.
func (c *Client) Register(ctx context.Context, req request.RegisterRequest) (*response.AuthResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		return nil, validationError(errs)
	}

	var out response.AuthResponse
	if err := do(ctx, c, http.MethodPost, "/api/auth/register", req, &out); err != nil {
		return nil, err
	}
	c.SetToken(out.Token)
	return &out, nil
}

// Logout revokes the session on the server and forgets the token locally
// even when the server call fails.
func (c *Client) Logout(ctx context.Context) error {
	err := do[struct{}](ctx, c, http.MethodPost, "/api/auth/logout", nil, nil)
	c.SetToken("")
	return err
}

func (c *Client) Me(ctx context.Context) (*response.MeResponse, error) {
	return cached[response.MeResponse](ctx, c, keyMe, "/api/me")
}

// Permissions returns the caller's permission set as decided by the server.
func (c *Client) Permissions(ctx context.Context) (*response.PermissionsResponse, error) {
	return cached[response.PermissionsResponse](ctx, c, keyPermissions, "/api/me/permissions")
}

func (c *Client) Navigation(ctx context.Context) (*response.NavigationResponse, error) {
	return cached[response.NavigationResponse](ctx, c, keyNavigation, "/api/me/navigation")
}

// Can reports whether the current caller holds perm. Any error denies.
func (c *Client) Can(ctx context.Context, perm access.Permission) bool {
	perms, err := c.Permissions(ctx)
	if err != nil {
		return false
	}
	for _, p := range perms.Permissions {
		if p == perm {
			return true
		}
	}
	return false
}

// cached keeps the encoded body and decodes a fresh value for every caller,
// so edits to a returned value never reach the cache.
func cached[T any](ctx context.Context, c *Client, key, path string) (*T, error) {
	if v, found := c.cache.Get(key); found {
		return decodeCached[T](v.([]byte))
	}

	var out T
	if err := do(ctx, c, http.MethodGet, path, nil, &out); err != nil {
		return nil, err
	}
	raw, err := json.Marshal(&out)
	if err != nil {
		return nil, fmt.Errorf("encode %s: %w", key, err)
	}
	c.cache.SetDefault(key, raw)
	return decodeCached[T](raw)
}

func decodeCached[T any](raw []byte) (*T, error) {
	var out T
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, fmt.Errorf("decode cached value: %w", err)
	}
	return &out, nil
}
