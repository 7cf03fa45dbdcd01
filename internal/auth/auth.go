// Package auth signs the user in against the hosted identity provider.
// Sign-in is anonymous by default; a pre-provisioned custom token takes
// precedence when configured. Either way the result is a stable opaque
// user ID that scopes every document query.
package auth

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"
)

const (
	// BaseURL is the identity toolkit REST base URL.
	BaseURL = "https://identitytoolkit.googleapis.com/v1"

	// DefaultTimeout is the default HTTP client timeout.
	DefaultTimeout = 30 * time.Second
)

// Session is the result of a completed sign-in.
type Session struct {
	UserID       string
	IDToken      string
	RefreshToken string
	ExpiresIn    time.Duration
}

// Client performs sign-in requests.
type Client struct {
	httpClient *http.Client
	baseURL    string
	apiKey     string
}

// NewClient creates an identity client for the given API key.
func NewClient(apiKey string) *Client {
	return &Client{
		httpClient: &http.Client{
			Timeout: DefaultTimeout,
		},
		baseURL: BaseURL,
		apiKey:  apiKey,
	}
}

// SetHTTPClient allows overriding the default HTTP client (useful for testing).
func (c *Client) SetHTTPClient(httpClient *http.Client) {
	c.httpClient = httpClient
}

// SetBaseURL overrides the API base URL (useful for testing and emulators).
func (c *Client) SetBaseURL(baseURL string) {
	c.baseURL = baseURL
}

// tokenResponse is the common shape of sign-in responses.
type tokenResponse struct {
	IDToken      string `json:"idToken"`
	RefreshToken string `json:"refreshToken"`
	ExpiresIn    string `json:"expiresIn"` // seconds, as a decimal string
	LocalID      string `json:"localId"`
}

func (r *tokenResponse) session() *Session {
	s := &Session{
		UserID:       r.LocalID,
		IDToken:      r.IDToken,
		RefreshToken: r.RefreshToken,
	}
	if secs, err := strconv.Atoi(r.ExpiresIn); err == nil {
		s.ExpiresIn = time.Duration(secs) * time.Second
	}
	return s
}

// post sends a sign-in request to the given accounts endpoint.
func (c *Client) post(endpoint string, body interface{}, result interface{}) error {
	jsonBody, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("failed to marshal request body: %w", err)
	}

	reqURL := fmt.Sprintf("%s/accounts:%s?key=%s", c.baseURL, endpoint, c.apiKey)
	req, err := http.NewRequest(http.MethodPost, reqURL, bytes.NewReader(jsonBody))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response body: %w", err)
	}

	if resp.StatusCode >= 400 {
		return fmt.Errorf("sign-in error (status %d): %s", resp.StatusCode, string(respBody))
	}

	if err := json.Unmarshal(respBody, result); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}

// SignInAnonymously creates an anonymous session. The returned user ID is
// stable for the lifetime of the underlying anonymous account.
func (c *Client) SignInAnonymously() (*Session, error) {
	body := map[string]bool{"returnSecureToken": true}

	var resp tokenResponse
	if err := c.post("signUp", body, &resp); err != nil {
		return nil, fmt.Errorf("anonymous sign-in failed: %w", err)
	}
	return resp.session(), nil
}

// SignInWithCustomToken exchanges a pre-provisioned custom token for a
// session. The user ID is resolved with a follow-up account lookup because
// the token exchange response does not carry it.
func (c *Client) SignInWithCustomToken(token string) (*Session, error) {
	body := map[string]interface{}{
		"token":             token,
		"returnSecureToken": true,
	}

	var resp tokenResponse
	if err := c.post("signInWithCustomToken", body, &resp); err != nil {
		return nil, fmt.Errorf("custom token sign-in failed: %w", err)
	}

	session := resp.session()
	if session.UserID == "" {
		uid, err := c.lookupUserID(session.IDToken)
		if err != nil {
			return nil, err
		}
		session.UserID = uid
	}
	return session, nil
}

// lookupUserID resolves the account's local ID from an ID token.
func (c *Client) lookupUserID(idToken string) (string, error) {
	body := map[string]string{"idToken": idToken}

	var resp struct {
		Users []struct {
			LocalID string `json:"localId"`
		} `json:"users"`
	}
	if err := c.post("lookup", body, &resp); err != nil {
		return "", fmt.Errorf("account lookup failed: %w", err)
	}
	if len(resp.Users) == 0 || resp.Users[0].LocalID == "" {
		return "", fmt.Errorf("account lookup returned no user")
	}
	return resp.Users[0].LocalID, nil
}

// SignIn performs the sign-in flow: custom token when provided, anonymous
// otherwise.
func (c *Client) SignIn(customToken string) (*Session, error) {
	if customToken != "" {
		return c.SignInWithCustomToken(customToken)
	}
	return c.SignInAnonymously()
}
