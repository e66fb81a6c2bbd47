// Package client is a typed Go client for the Immersio HTTP API.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// Client talks to a running Immersio server.
type Client struct {
	baseURL string
	apiKey  string
	http    *http.Client
}

// Option customizes a Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.http = hc }
}

// New creates a client for the given base URL (e.g. "http://localhost:8642").
func New(baseURL, apiKey string, opts ...Option) *Client {
	c := &Client{
		baseURL: baseURL,
		apiKey:  apiKey,
		http: &http.Client{
			Timeout: 5 * time.Minute, // responder runs can be slow
		},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// APIError is a decoded RFC 7807 problem document.
type APIError struct {
	Type   string `json:"type"`
	Title  string `json:"title"`
	Status int    `json:"status"`
	Detail string `json:"detail"`
}

func (e *APIError) Error() string {
	return fmt.Sprintf("%s (%d): %s", e.Title, e.Status, e.Detail)
}

// Health is the server health payload.
type Health struct {
	Status    string `json:"status"`
	Version   string `json:"version"`
	Languages int    `json:"languages"`
}

// LanguageInfo describes one tutored language.
type LanguageInfo struct {
	Name         string `json:"name"`
	DisplayName  string `json:"display_name"`
	NativeScript string `json:"native_script"`
	Romanization string `json:"romanization"`
	Started      string `json:"started"`
	Words        int    `json:"words"`
	Rules        int    `json:"rules"`
}

// Message is one turn of a reconstructed transcript.
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// Reply is the tutor's answer to one learner message.
type Reply struct {
	Reply string `json:"reply"`
	Mode  string `json:"mode"`
}

// Health checks server health. No authentication required.
func (c *Client) Health(ctx context.Context) (*Health, error) {
	var out Health
	if err := c.do(ctx, http.MethodGet, "/api/v1/health", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// ListLanguages returns all bootstrapped languages.
func (c *Client) ListLanguages(ctx context.Context) ([]LanguageInfo, error) {
	var out struct {
		Languages []LanguageInfo `json:"languages"`
	}
	if err := c.do(ctx, http.MethodGet, "/api/v1/languages/", nil, &out); err != nil {
		return nil, err
	}
	return out.Languages, nil
}

// Bootstrap creates a new language.
func (c *Client) Bootstrap(ctx context.Context, name string) (*LanguageInfo, error) {
	var out LanguageInfo
	body := map[string]string{"name": name}
	if err := c.do(ctx, http.MethodPost, "/api/v1/languages/", body, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// GetLanguage returns info for one language.
func (c *Client) GetLanguage(ctx context.Context, name string) (*LanguageInfo, error) {
	var out LanguageInfo
	if err := c.do(ctx, http.MethodGet, "/api/v1/languages/"+name+"/", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// DeleteLanguage removes a language and all its learner state.
func (c *Client) DeleteLanguage(ctx context.Context, name string) error {
	return c.do(ctx, http.MethodDelete, "/api/v1/languages/"+name+"/", nil, nil)
}

// SendMessage delivers one learner message and returns the tutor's reply.
// Mode is one of "chat", "review", "grammar".
func (c *Client) SendMessage(ctx context.Context, name, mode, text string) (*Reply, error) {
	var out Reply
	body := map[string]string{"mode": mode, "text": text}
	if err := c.do(ctx, http.MethodPost, "/api/v1/languages/"+name+"/messages", body, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// History returns the reconstructed conversation transcript.
func (c *Client) History(ctx context.Context, name string) ([]Message, error) {
	var out struct {
		Messages []Message `json:"messages"`
	}
	if err := c.do(ctx, http.MethodGet, "/api/v1/languages/"+name+"/history", nil, &out); err != nil {
		return nil, err
	}
	return out.Messages, nil
}

// Vocabulary returns the raw vocabulary document.
func (c *Client) Vocabulary(ctx context.Context, name string) (json.RawMessage, error) {
	return c.raw(ctx, "/api/v1/languages/"+name+"/vocabulary")
}

// Grammar returns the raw grammar document.
func (c *Client) Grammar(ctx context.Context, name string) (json.RawMessage, error) {
	return c.raw(ctx, "/api/v1/languages/"+name+"/grammar")
}

// Overrides returns the raw user-overrides document.
func (c *Client) Overrides(ctx context.Context, name string) (json.RawMessage, error) {
	return c.raw(ctx, "/api/v1/languages/"+name+"/overrides")
}

func (c *Client) raw(ctx context.Context, path string) (json.RawMessage, error) {
	var out json.RawMessage
	if err := c.do(ctx, http.MethodGet, path, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// do sends an authenticated request and decodes the response into out.
// Non-2xx responses are decoded as problem documents into *APIError.
func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var reqBody io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reqBody = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		apiErr := &APIError{Status: resp.StatusCode, Title: http.StatusText(resp.StatusCode)}
		// Best effort decode; the status code alone is still useful.
		_ = json.NewDecoder(resp.Body).Decode(apiErr)
		return apiErr
	}

	if out == nil {
		return nil
	}
	return json.NewDecoder(resp.Body).Decode(out)
}
