// Package client is a small HTTP client for the videovault auth API, used
// by the operator CLI.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

const (
	accessCookieName  = "accessToken"
	refreshCookieName = "refreshToken"
)

// User mirrors the API's user response.
type User struct {
	ID    int64  `json:"id"`
	Login string `json:"login"`
}

// TokenPair holds the cookies returned by a successful login.
type TokenPair struct {
	AccessToken  string
	RefreshToken string
}

// APIClient talks to the auth endpoints of a videovault server.
type APIClient struct {
	baseURL string
	http    *http.Client
}

func New(baseURL string) *APIClient {
	return &APIClient{
		baseURL: baseURL,
		http:    &http.Client{Timeout: 10 * time.Second},
	}
}

type credentials struct {
	Login    string `json:"login"`
	Password string `json:"password"`
}

func (c *APIClient) postCredentials(ctx context.Context, path, login, password string) (*http.Response, error) {
	body, err := json.Marshal(credentials{Login: login, Password: password})
	if err != nil {
		return nil, err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	return c.http.Do(req)
}

func apiError(resp *http.Response) error {
	var e struct {
		Error string `json:"error"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&e); err == nil && e.Error != "" {
		return fmt.Errorf("server: %s", e.Error)
	}
	return fmt.Errorf("server returned %s", resp.Status)
}

// Register creates a new account.
func (c *APIClient) Register(ctx context.Context, login, password string) (*User, error) {
	resp, err := c.postCredentials(ctx, "/api/users", login, password)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusCreated {
		return nil, apiError(resp)
	}

	var u User
	if err := json.NewDecoder(resp.Body).Decode(&u); err != nil {
		return nil, err
	}
	return &u, nil
}

// Login authenticates and returns the token pair extracted from the
// response cookies.
func (c *APIClient) Login(ctx context.Context, login, password string) (*User, *TokenPair, error) {
	resp, err := c.postCredentials(ctx, "/api/auth/login", login, password)
	if err != nil {
		return nil, nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, nil, apiError(resp)
	}

	var u User
	if err := json.NewDecoder(resp.Body).Decode(&u); err != nil {
		return nil, nil, err
	}

	pair := &TokenPair{}
	for _, cookie := range resp.Cookies() {
		switch cookie.Name {
		case accessCookieName:
			pair.AccessToken = cookie.Value
		case refreshCookieName:
			pair.RefreshToken = cookie.Value
		}
	}
	if pair.AccessToken == "" || pair.RefreshToken == "" {
		return nil, nil, fmt.Errorf("server did not return both token cookies")
	}
	return &u, pair, nil
}

// Me returns the identity behind an access token.
func (c *APIClient) Me(ctx context.Context, accessToken string) (*User, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/api/auth/me", nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+accessToken)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, apiError(resp)
	}

	var u User
	if err := json.NewDecoder(resp.Body).Decode(&u); err != nil {
		return nil, err
	}
	return &u, nil
}
