// Package client is the API client for Answerly. It holds the session token
// pair in an injected Store, attaches the access token to every request, and
// hides access-token expiry behind a single silent refresh-and-retry.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"answerly/model"
	"answerly/service"

	"golang.org/x/sync/singleflight"
)

// Client talks to the Answerly API. The refresh call goes out on a separate
// side-channel http.Client that never enters the retry path, so a 401 from
// the refresh endpoint cannot recurse.
type Client struct {
	baseURL  string
	httpc    *http.Client
	refreshc *http.Client
	store    Store
	sf       singleflight.Group
}

func New(baseURL string, store Store) *Client {
	return &Client{
		baseURL:  baseURL,
		httpc:    &http.Client{Timeout: 30 * time.Second},
		refreshc: &http.Client{Timeout: 30 * time.Second},
		store:    store,
	}
}

func (c *Client) newRequest(ctx context.Context, method, path string, body []byte) (*http.Request, error) {
	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return nil, err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token := c.store.AccessToken(); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	return req, nil
}

// Do performs a request with the current access token attached. On a 401 it
// refreshes the access token once and replays the request once; any other
// status, and any network error, passes through untouched.
func (c *Client) Do(ctx context.Context, method, path string, body []byte) (*http.Response, error) {
	req, err := c.newRequest(ctx, method, path, body)
	if err != nil {
		return nil, err
	}

	resp, err := c.httpc.Do(req)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode != http.StatusUnauthorized {
		return resp, nil
	}

	if c.store.RefreshToken() == "" {
		// Nothing to refresh with; the original failure stands.
		return resp, nil
	}

	resp.Body.Close()

	if _, err := c.refreshAccessToken(ctx); err != nil {
		c.store.Clear()
		return nil, err
	}

	retry, err := c.newRequest(ctx, method, path, body)
	if err != nil {
		return nil, err
	}
	return c.httpc.Do(retry)
}

// refreshAccessToken mints a new access token from the held refresh token.
// Concurrent callers coalesce onto one in-flight refresh and share its
// result, so a burst of expired requests costs a single refresh call.
func (c *Client) refreshAccessToken(ctx context.Context) (string, error) {
	token, err, _ := c.sf.Do("refresh", func() (interface{}, error) {
		refreshToken := c.store.RefreshToken()
		if refreshToken == "" {
			return "", fmt.Errorf("no refresh token held")
		}

		req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/api/auth/refresh", nil)
		if err != nil {
			return "", err
		}
		req.Header.Set("Authorization", "Bearer "+refreshToken)

		resp, err := c.refreshc.Do(req)
		if err != nil {
			return "", err
		}
		defer resp.Body.Close()

		if resp.StatusCode != http.StatusOK {
			return "", fmt.Errorf("refresh failed with status %d", resp.StatusCode)
		}

		var body struct {
			AccessToken string `json:"accessToken"`
		}
		if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
			return "", err
		}
		if body.AccessToken == "" {
			return "", fmt.Errorf("no access token returned")
		}

		c.store.SetAccessToken(body.AccessToken)
		return body.AccessToken, nil
	})
	if err != nil {
		return "", err
	}
	return token.(string), nil
}

func decodeOrError(resp *http.Response, out interface{}) error {
	defer resp.Body.Close()
	if resp.StatusCode >= 400 {
		var apiErr struct {
			Msg string `json:"msg"`
		}
		json.NewDecoder(resp.Body).Decode(&apiErr)
		if apiErr.Msg != "" {
			return fmt.Errorf("api error (status %d): %s", resp.StatusCode, apiErr.Msg)
		}
		return fmt.Errorf("api error (status %d)", resp.StatusCode)
	}
	if out == nil {
		io.Copy(io.Discard, resp.Body)
		return nil
	}
	return json.NewDecoder(resp.Body).Decode(out)
}

// Register creates an account. No tokens are issued; call Login next.
func (c *Client) Register(ctx context.Context, req model.RegisterRequest) error {
	body, err := json.Marshal(req)
	if err != nil {
		return err
	}
	resp, err := c.Do(ctx, http.MethodPost, "/api/auth/register", body)
	if err != nil {
		return err
	}
	return decodeOrError(resp, nil)
}

// Login exchanges credentials for a token pair and persists it.
func (c *Client) Login(ctx context.Context, email, password string) (*service.TokenPair, error) {
	body, err := json.Marshal(model.LoginRequest{Email: email, Password: password})
	if err != nil {
		return nil, err
	}
	resp, err := c.Do(ctx, http.MethodPost, "/api/auth/login", body)
	if err != nil {
		return nil, err
	}

	var pair service.TokenPair
	if err := decodeOrError(resp, &pair); err != nil {
		return nil, err
	}
	c.store.SetTokens(pair.AccessToken, pair.RefreshToken)
	return &pair, nil
}

// Me returns the authenticated user and refreshes the cached user JSON.
func (c *Client) Me(ctx context.Context) (*model.User, error) {
	resp, err := c.Do(ctx, http.MethodGet, "/api/auth/me", nil)
	if err != nil {
		return nil, err
	}

	var user model.User
	if err := decodeOrError(resp, &user); err != nil {
		return nil, err
	}
	if data, err := json.Marshal(user); err == nil {
		c.store.SetUser(string(data))
	}
	return &user, nil
}

// Logout notifies the server and discards all held credentials. The server
// acknowledgment is advisory; the local wipe is what ends the session.
func (c *Client) Logout(ctx context.Context) error {
	resp, err := c.Do(ctx, http.MethodPost, "/api/auth/logout", nil)
	if err == nil {
		decodeOrError(resp, nil)
	}
	c.store.Clear()
	return err
}

// UpdateUsername changes the display name of the authenticated user.
func (c *Client) UpdateUsername(ctx context.Context, username string) (*model.User, error) {
	body, err := json.Marshal(model.UpdateUsernameRequest{Username: username})
	if err != nil {
		return nil, err
	}
	resp, err := c.Do(ctx, http.MethodPatch, "/api/auth/update-username", body)
	if err != nil {
		return nil, err
	}

	var wrapped struct {
		User *model.User `json:"user"`
	}
	if err := decodeOrError(resp, &wrapped); err != nil {
		return nil, err
	}
	return wrapped.User, nil
}
