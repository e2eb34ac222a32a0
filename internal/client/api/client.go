// Package api is the HTTP client of the Cherry Dining backend used by floor terminals.
package api

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
	"time"

	"github.com/SscSPs/cherry_dining/internal/core/domain"
	"github.com/SscSPs/cherry_dining/internal/dto"
)

const defaultTimeout = 15 * time.Second

// Error is a non-2xx answer from the backend.
type Error struct {
	StatusCode int
	Message    string
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s (status code = %d)", e.Message, e.StatusCode)
}

// IsStatus reports whether err is an *Error with the given status code.
func IsStatus(err error, code int) bool {
	var apiErr *Error
	return errors.As(err, &apiErr) && apiErr.StatusCode == code
}

// Client talks to the backend's /api/v1 routes.
type Client struct {
	httpclient *http.Client
	api        string
}

// NewClient creates a client for baseURL. A nil httpclient gets one with a default timeout.
func NewClient(baseURL string, httpclient *http.Client) *Client {
	if httpclient == nil {
		httpclient = &http.Client{Timeout: defaultTimeout}
	}
	return &Client{
		httpclient: httpclient,
		api:        strings.TrimSuffix(baseURL, "/") + "/api/v1",
	}
}

// HTTPClient returns the underlying HTTP client.
func (c *Client) HTTPClient() *http.Client {
	return c.httpclient
}

// apipath builds the URL of an API path.
func (c *Client) apipath(path ...string) string {
	parts := make([]string, 0, len(path)+1)
	parts = append(parts, c.api)
	for _, p := range path {
		parts = append(parts, strings.Trim(p, "/"))
	}
	return strings.Join(parts, "/")
}

// StreamURL is the change stream endpoint for stream.
func (c *Client) StreamURL(stream domain.Stream) string {
	return c.apipath("realtime", string(stream))
}

func (c *Client) SignIn(ctx context.Context, email, password string) (*dto.AuthSessionResponse, error) {
	var resp dto.AuthSessionResponse
	err := c.do(ctx, http.MethodPost, c.apipath("auth", "signin"), "", dto.SignInRequest{Email: email, Password: password}, &resp)
	if err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *Client) SignUp(ctx context.Context, email, password, fullName string) (*dto.AuthSessionResponse, error) {
	var resp dto.AuthSessionResponse
	req := dto.SignUpRequest{Email: email, Password: password, FullName: fullName}
	if err := c.do(ctx, http.MethodPost, c.apipath("auth", "signup"), "", req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *Client) Refresh(ctx context.Context, refreshToken string) (*dto.AuthSessionResponse, error) {
	var resp dto.AuthSessionResponse
	req := dto.RefreshTokenRequest{RefreshToken: refreshToken}
	if err := c.do(ctx, http.MethodPost, c.apipath("auth", "refresh"), "", req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// SignOut revokes the refresh token of the administrator holding accessToken.
func (c *Client) SignOut(ctx context.Context, accessToken string) error {
	return c.do(ctx, http.MethodPost, c.apipath("auth", "signout"), accessToken, nil, nil)
}

func (c *Client) Me(ctx context.Context, accessToken string) (*dto.AdminIdentityResponse, error) {
	var resp dto.AdminIdentityResponse
	if err := c.do(ctx, http.MethodGet, c.apipath("auth", "me"), accessToken, nil, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *Client) StaffLogin(ctx context.Context, username, password string) (*dto.StaffLoginResponse, error) {
	var resp dto.StaffLoginResponse
	req := dto.StaffLoginRequest{Username: username, Password: password}
	if err := c.do(ctx, http.MethodPost, c.apipath("auth", "staff", "login"), "", req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *Client) Navigation(ctx context.Context, token string) (*dto.NavigationResponse, error) {
	var resp dto.NavigationResponse
	if err := c.do(ctx, http.MethodGet, c.apipath("navigation"), token, nil, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// MyAssignment returns the caller's active bar. A 404 *Error means the caller is not assigned.
func (c *Client) MyAssignment(ctx context.Context, token string) (*domain.CashierBarAssignment, error) {
	var resp domain.CashierBarAssignment
	if err := c.do(ctx, http.MethodGet, c.apipath("assignments", "me"), token, nil, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *Client) ListBars(ctx context.Context, token string) ([]domain.Bar, error) {
	var resp dto.ListBarsResponse
	if err := c.do(ctx, http.MethodGet, c.apipath("bars"), token, nil, &resp); err != nil {
		return nil, err
	}
	return resp.Bars, nil
}

func (c *Client) ListInventory(ctx context.Context, token string, barID *string) ([]dto.InventoryItemResponse, error) {
	path := c.apipath("inventory")
	if barID != nil {
		path += "?" + url.Values{"bar_id": {*barID}}.Encode()
	}
	var resp dto.ListInventoryResponse
	if err := c.do(ctx, http.MethodGet, path, token, nil, &resp); err != nil {
		return nil, err
	}
	return resp.Items, nil
}

func (c *Client) do(ctx context.Context, method, url, token string, body any, out any) error {
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode request: %w", err)
		}
		reader = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, url, reader)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.httpclient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	return unmarshalJSONResponse(resp, out)
}

type errorBody struct {
	Error string `json:"error"`
}

// unmarshalJSONResponse decodes a 2xx body into out, or turns any other status into an *Error
// carrying the server's message.
func unmarshalJSONResponse(resp *http.Response, out any) error {
	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		if out == nil || resp.StatusCode == http.StatusNoContent {
			return nil
		}
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("unexpected response body (status code = %d): %w", resp.StatusCode, err)
		}
		return nil
	}

	apiErr := &Error{StatusCode: resp.StatusCode, Message: http.StatusText(resp.StatusCode)}
	var body errorBody
	if err := json.NewDecoder(resp.Body).Decode(&body); err == nil && body.Error != "" {
		apiErr.Message = body.Error
	}
	return apiErr
}
