package store

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/pictree/pictree/internal/model"
)

// ErrNotFound is returned when the remote store holds no document yet,
// which is the normal state of a library that has never been persisted.
var ErrNotFound = errors.New("store: document not found")

// Document is the whole-document wire shape the remote store deals in.
// The store offers no partial updates: Data always carries the entire
// forest, and every write replaces the previous document wholesale.
type Document struct {
	// ID identifies the document within the resource collection.
	ID string `json:"id"`

	// Data is the full album forest.
	Data model.Forest `json:"data"`
}

// StatusError is an HTTP-level failure from the remote store.
//
// It distinguishes retryable failures (server errors, transport hiccups)
// from terminal ones: a 4xx status means the request itself is wrong and
// repeating it cannot help.
type StatusError struct {
	Code   int
	Status string
}

// Error implements the error interface.
func (e *StatusError) Error() string {
	return fmt.Sprintf("HTTP %d: %s", e.Code, e.Status)
}

// Temporary reports whether retrying the request could succeed.
func (e *StatusError) Temporary() bool {
	return e.Code < 400 || e.Code >= 500
}

// Client talks the three-verb document protocol to a remote store.
//
// The protocol is deliberately coarse (GET a document, PUT to update it,
// POST to create it) and the client assumes nothing else of the backend:
// a document database, a flat file server, or the built-in docserver are
// all equivalent behind these verbs.
//
// Example:
//
//	client := store.NewClient("http://localhost:8750", "library", 30*time.Second)
//	doc, err := client.Fetch(ctx)
//	if errors.Is(err, store.ErrNotFound) {
//	    // first run, start from an empty forest
//	}
type Client struct {
	httpClient *http.Client
	baseURL    string
	resource   string
	userAgent  string
}

// NewClient creates a store client for the given base URL and resource
// name. The timeout bounds each individual request; retry policy is the
// caller's concern (see Retry).
func NewClient(baseURL, resource string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &Client{
		httpClient: &http.Client{
			Timeout: timeout,
		},
		baseURL:   baseURL,
		resource:  resource,
		userAgent: "pictree",
	}
}

// Fetch retrieves the stored library document.
//
// Returns ErrNotFound when the store answers 404, which callers treat as
// an empty library rather than a failure.
func (c *Client) Fetch(ctx context.Context) (*Document, error) {
	body, err := c.do(ctx, http.MethodGet, c.resourceURL(), nil)
	if err != nil {
		return nil, err
	}

	var doc Document
	if err := json.Unmarshal(body, &doc); err != nil {
		return nil, fmt.Errorf("store: decoding document: %w", err)
	}
	if doc.Data == nil {
		doc.Data = model.Forest{}
	}
	return &doc, nil
}

// Update writes the full forest over an existing document.
func (c *Client) Update(ctx context.Context, docID string, forest model.Forest) error {
	payload, err := json.Marshal(Document{ID: docID, Data: forest})
	if err != nil {
		return fmt.Errorf("store: encoding document: %w", err)
	}
	_, err = c.do(ctx, http.MethodPut, c.resourceURL()+"/"+docID, payload)
	return err
}

// Create stores a brand-new document with a known id and initial forest.
func (c *Client) Create(ctx context.Context, docID string, forest model.Forest) error {
	payload, err := json.Marshal(Document{ID: docID, Data: forest})
	if err != nil {
		return fmt.Errorf("store: encoding document: %w", err)
	}
	_, err = c.do(ctx, http.MethodPost, c.resourceURL(), payload)
	return err
}

// Save persists the forest with the create-or-update fallback: it attempts
// an update-in-place first and, if that fails, falls back to creating the
// document. The fallback runs at most once per call; any outer retry
// policy wraps the whole pair, it is not applied recursively.
func (c *Client) Save(ctx context.Context, docID string, forest model.Forest) error {
	err := c.Update(ctx, docID, forest)
	if err == nil {
		return nil
	}
	if createErr := c.Create(ctx, docID, forest); createErr == nil {
		return nil
	}
	return err
}

func (c *Client) resourceURL() string {
	return c.baseURL + "/" + c.resource
}

func (c *Client) do(ctx context.Context, method, url string, payload []byte) ([]byte, error) {
	var body io.Reader
	if payload != nil {
		body = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, url, body)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", c.userAgent)
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return nil, ErrNotFound
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &StatusError{Code: resp.StatusCode, Status: resp.Status}
	}

	return io.ReadAll(resp.Body)
}
