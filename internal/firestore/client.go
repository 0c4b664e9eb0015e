// Package firestore is a remote Provider keeping each user's state in a
// Cloud Firestore document, spoken to over the REST API with OAuth2
// device-flow credentials.
package firestore

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/Tiliavir/trivial-meal-tracker/internal/storage"
)

// DefaultBaseURL is the Firestore REST endpoint.
const DefaultBaseURL = "https://firestore.googleapis.com/v1"

// Options locate the documents of a Client.
type Options struct {
	ProjectID string
	// Database defaults to "(default)".
	Database string
	// BaseURL defaults to DefaultBaseURL.
	BaseURL string
}

// Client reads and writes Firestore documents.
type Client struct {
	httpClient *http.Client
	opts       Options
}

// Document is the REST representation of a Firestore document.
type Document struct {
	Name   string           `json:"name,omitempty"`
	Fields map[string]Value `json:"fields,omitempty"`
}

// NewClient returns a Client sending requests with hc, usually the client
// returned by HTTPClient.
func NewClient(hc *http.Client, opts Options) *Client {
	if opts.Database == "" {
		opts.Database = "(default)"
	}
	if opts.BaseURL == "" {
		opts.BaseURL = DefaultBaseURL
	}
	opts.BaseURL = strings.TrimRight(opts.BaseURL, "/")
	return &Client{httpClient: hc, opts: opts}
}

func (c *Client) documentURL(path string) string {
	segments := strings.Split(path, "/")
	for i, s := range segments {
		segments[i] = url.PathEscape(s)
	}
	return fmt.Sprintf("%s/projects/%s/databases/%s/documents/%s",
		c.opts.BaseURL,
		url.PathEscape(c.opts.ProjectID),
		url.PathEscape(c.opts.Database),
		strings.Join(segments, "/"))
}

// GetDocument fetches the document at path, e.g. "users/alice". A missing
// document yields storage.ErrNotFound.
func (c *Client) GetDocument(ctx context.Context, path string) (Document, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.documentURL(path), nil)
	if err != nil {
		return Document{}, fmt.Errorf("creating request: %w", err)
	}
	var doc Document
	if err := c.do(req, &doc); err != nil {
		return Document{}, err
	}
	return doc, nil
}

// PatchDocument writes fields into the document at path, creating it when
// missing. Only the fields named in mask are touched; every other field of
// the stored document is preserved.
func (c *Client) PatchDocument(ctx context.Context, path string, fields map[string]Value, mask []string) error {
	body, err := json.Marshal(Document{Fields: fields})
	if err != nil {
		return fmt.Errorf("encoding document: %w", err)
	}
	q := url.Values{}
	for _, f := range mask {
		q.Add("updateMask.fieldPaths", f)
	}
	endpoint := c.documentURL(path)
	if len(q) > 0 {
		endpoint += "?" + q.Encode()
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPatch, endpoint, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	return c.do(req, nil)
}

func (c *Client) do(req *http.Request, out any) error {
	req.Header.Set("Accept", "application/json")
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("firestore request failed: %w", err)
	}
	body, err := io.ReadAll(resp.Body)
	resp.Body.Close()
	if err != nil {
		return fmt.Errorf("reading response body: %w", err)
	}

	if resp.StatusCode == http.StatusNotFound {
		return storage.ErrNotFound
	}
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("firestore API error %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}
	if out == nil {
		return nil
	}
	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("decoding firestore response: %w", err)
	}
	return nil
}
