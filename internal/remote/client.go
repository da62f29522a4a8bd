// Package remote talks to the record API. Reads are a wholesale fetch of
// one user's partition; writes are fire-and-forget form posts whose
// response body is drained and ignored, so only transport failures are
// observable. True write success is confirmed by the next fetch.
package remote

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"studyrec/internal/record"
)

// Action is a mutation verb understood by the record API.
type Action string

const (
	ActionCreate Action = "create"
	ActionUpdate Action = "update"
	ActionDelete Action = "delete"
)

// DefaultTimeout bounds a single API request.
const DefaultTimeout = 15 * time.Second

// Payload is the fetch response: the user's records plus the shared
// suggestion vocabularies.
type Payload struct {
	Records    []record.Record   `json:"records"`
	MasterData record.MasterData `json:"masterData"`
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient overrides the underlying HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.hc = hc }
}

// WithLogger overrides the client's logger.
func WithLogger(l *log.Logger) Option {
	return func(c *Client) { c.log = l }
}

// Client is a record API client.
type Client struct {
	baseURL string
	hc      *http.Client
	log     *log.Logger
}

// NewClient returns a client for the API at baseURL.
func NewClient(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL: baseURL,
		hc:      &http.Client{Timeout: DefaultTimeout},
		log:     log.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Fetch retrieves all records and master data for userName. Fetched rows
// are normalized, since the API may render dates as full ISO timestamps.
func (c *Client) Fetch(ctx context.Context, userName string) (Payload, error) {
	u := c.baseURL + "?userName=" + url.QueryEscape(userName)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return Payload{}, &NetworkError{Op: "fetch", Err: err}
	}
	req.Header.Set("Cache-Control", "no-store")

	resp, err := c.hc.Do(req)
	if err != nil {
		return Payload{}, &NetworkError{Op: "fetch", Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return Payload{}, &NetworkError{Op: "fetch", Err: fmt.Errorf("unexpected status %d", resp.StatusCode)}
	}

	var p Payload
	if err := json.NewDecoder(resp.Body).Decode(&p); err != nil {
		return Payload{}, &NetworkError{Op: "fetch", Err: err}
	}
	for i, r := range p.Records {
		p.Records[i] = r.NormalizeWire()
	}
	return p, nil
}

// Send posts a mutation. Every record field is carried in the form body
// regardless of action; the server ignores what it does not need. The
// response is not inspected.
func (c *Client) Send(ctx context.Context, action Action, r record.Record) error {
	form := url.Values{}
	form.Set("action", string(action))
	form.Set("id", r.ID)
	form.Set("userName", r.UserName)
	form.Set("date", r.Date)
	form.Set("startTime", r.StartTime)
	form.Set("endTime", r.EndTime)
	form.Set("duration", strconv.Itoa(r.Duration))
	form.Set("category", r.Category)
	form.Set("content", r.Content)
	form.Set("enthusiasm", r.Enthusiasm)
	form.Set("condition", r.Condition)
	form.Set("comment", r.Comment)
	form.Set("location", r.Location)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL, strings.NewReader(form.Encode()))
	if err != nil {
		return &NetworkError{Op: string(action), Err: err}
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.hc.Do(req)
	if err != nil {
		c.log.Warn("record send failed", "action", action, "err", err)
		return &NetworkError{Op: string(action), Err: err}
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)
	return nil
}
