package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"setlist-api/internal/setlist/models"
)

// DefaultTimeout bounds each request made by a Client.
const DefaultTimeout = 10 * time.Second

// Session is the response of POST /api/session/create.
type Session struct {
	Token string `json:"token"`
	URL   string `json:"url"`
}

// ToggleResult is the response of POST /api/songs/toggle/{title}.
type ToggleResult struct {
	Title     string `json:"title"`
	Performed bool   `json:"performed"`
}

// Status is the response of GET /test.
type Status struct {
	Backend          string   `json:"backend"`
	Database         string   `json:"database"`
	DatabaseURL      *string  `json:"database_url"`
	DatabaseName     *string  `json:"database_name"`
	ConnectionStatus string   `json:"connection_status"`
	Collections      []string `json:"collections"`
	Driver           string   `json:"driver,omitempty"`
}

type toggleRequest struct {
	Token string `json:"token,omitempty"`
}

// Client is the setlist API client.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// New creates a client for the API at baseURL. A nil httpClient gets one
// with DefaultTimeout.
func New(baseURL string, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: DefaultTimeout}
	}
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: httpClient,
	}
}

// ListSongs returns the setlist in catalog order.
func (c *Client) ListSongs(ctx context.Context) ([]models.Song, error) {
	var songs []models.Song
	if err := c.get(ctx, "/api/songs", &songs); err != nil {
		return nil, fmt.Errorf("client.ListSongs: %w", err)
	}
	return songs, nil
}

// Toggle flips the performed flag of title. An empty token is sent as no
// token at all.
func (c *Client) Toggle(ctx context.Context, title, token string) (*ToggleResult, error) {
	var result ToggleResult
	if err := c.post(ctx, "/api/songs/toggle/"+url.PathEscape(title), toggleRequest{Token: token}, &result); err != nil {
		return nil, fmt.Errorf("client.Toggle: %w", err)
	}
	return &result, nil
}

// CreateSession issues a session for role. An empty role leaves the choice
// to the server.
func (c *Client) CreateSession(ctx context.Context, role string) (*Session, error) {
	path := "/api/session/create"
	if role != "" {
		params := url.Values{}
		params.Set("role", role)
		path += "?" + params.Encode()
	}

	var session Session
	if err := c.post(ctx, path, nil, &session); err != nil {
		return nil, fmt.Errorf("client.CreateSession: %w", err)
	}
	return &session, nil
}

// Status returns the server's store diagnostics.
func (c *Client) Status(ctx context.Context) (*Status, error) {
	var status Status
	if err := c.get(ctx, "/test", &status); err != nil {
		return nil, fmt.Errorf("client.Status: %w", err)
	}
	return &status, nil
}

func (c *Client) get(ctx context.Context, path string, out any) error {
	return c.doRequest(ctx, http.MethodGet, path, nil, out)
}

func (c *Client) post(ctx context.Context, path string, body any, out any) error {
	return c.doRequest(ctx, http.MethodPost, path, body, out)
}

func (c *Client) doRequest(ctx context.Context, method, path string, body any, out any) error {
	var reqBody io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("marshal body: %w", err)
		}
		reqBody = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("do request: %w", err)
	}
	defer resp.Body.Close() //nolint:errcheck // best-effort close

	if resp.StatusCode >= 400 {
		respBody, readErr := io.ReadAll(io.LimitReader(resp.Body, 1<<20)) // 1 MB max error body
		if readErr != nil {
			return &HTTPError{StatusCode: resp.StatusCode, Message: fmt.Sprintf("failed to read body: %v", readErr)}
		}
		var apiErr struct {
			Error string `json:"error"`
		}
		if json.Unmarshal(respBody, &apiErr) == nil && apiErr.Error != "" {
			return &HTTPError{StatusCode: resp.StatusCode, Message: apiErr.Error}
		}
		return &HTTPError{StatusCode: resp.StatusCode, Message: string(respBody)}
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("decode response: %w", err)
		}
	}
	return nil
}
