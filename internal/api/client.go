package api

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"
)

const (
	// BaseURL is the document store REST base URL.
	BaseURL = "https://firestore.googleapis.com/v1"

	// DefaultTimeout is the default HTTP client timeout.
	DefaultTimeout = 30 * time.Second
)

// Client talks to the hosted document store. All document paths are
// namespaced under the application identifier, matching the layout
// artifacts/{appID}/public/data/{collection}.
type Client struct {
	httpClient *http.Client
	baseURL    string
	projectID  string
	appID      string
	idToken    string
}

// NewClient creates a client for the given project and application,
// authenticating every request with the identity token obtained at sign-in.
func NewClient(projectID, appID, idToken string) *Client {
	return &Client{
		httpClient: &http.Client{
			Timeout: DefaultTimeout,
		},
		baseURL:   BaseURL,
		projectID: projectID,
		appID:     appID,
		idToken:   idToken,
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

// documentsRoot returns the database documents root path.
func (c *Client) documentsRoot() string {
	return fmt.Sprintf("/projects/%s/databases/(default)/documents", c.projectID)
}

// collectionPath returns the path of a namespaced collection.
func (c *Client) collectionPath(collection string) string {
	return fmt.Sprintf("%s/artifacts/%s/public/data/%s", c.documentsRoot(), c.appID, collection)
}

// do performs an HTTP request and decodes the JSON response.
func (c *Client) do(method, path string, body interface{}, result interface{}) error {
	reqURL := c.baseURL + path

	var bodyReader io.Reader
	if body != nil {
		jsonBody, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to marshal request body: %w", err)
		}
		bodyReader = bytes.NewReader(jsonBody)
	}

	req, err := http.NewRequest(method, reqURL, bodyReader)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Authorization", "Bearer "+c.idToken)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

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
		return &APIError{
			StatusCode: resp.StatusCode,
			Message:    string(respBody),
		}
	}

	if result != nil && len(respBody) > 0 {
		if err := json.Unmarshal(respBody, result); err != nil {
			return fmt.Errorf("failed to decode response: %w", err)
		}
	}

	return nil
}

// Get performs a GET request.
func (c *Client) Get(path string, result interface{}) error {
	return c.do(http.MethodGet, path, nil, result)
}

// Post performs a POST request.
func (c *Client) Post(path string, body interface{}, result interface{}) error {
	return c.do(http.MethodPost, path, body, result)
}

// Patch performs a PATCH request with query parameters (the update mask).
func (c *Client) Patch(path string, query url.Values, body interface{}, result interface{}) error {
	if len(query) > 0 {
		path = path + "?" + query.Encode()
	}
	return c.do(http.MethodPatch, path, body, result)
}

// Delete performs a DELETE request.
func (c *Client) Delete(path string) error {
	return c.do(http.MethodDelete, path, nil, nil)
}
