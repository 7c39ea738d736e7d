package notion

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"iter"
	"net/http"
	"net/url"
	"time"

	"github.com/m-kurosawa/ahasync/pkg/domain/interfaces"
	"github.com/m-kurosawa/ahasync/pkg/domain/model"
	"github.com/m-kurosawa/ahasync/pkg/domain/types"
	"github.com/m-kurosawa/ahasync/pkg/utils/throttle"
	"github.com/m-mizutani/goerr/v2"
)

const (
	defaultBaseURL = "https://api.notion.com"

	// Protocol version header required by the target API
	notionVersion = "2022-06-28"

	// Collection query page size
	queryPageSize = 100

	// Pacing against the target API's ~3 req/s ceiling. Applied after
	// every call including each pagination page fetch.
	defaultInterval = 350 * time.Millisecond
)

type client struct {
	baseURL    string
	token      string
	httpClient *http.Client
	throttle   *throttle.Throttle
}

// Option configures the client
type Option func(*client)

// WithBaseURL overrides the API endpoint. Used by tests.
func WithBaseURL(baseURL string) Option {
	return func(c *client) {
		c.baseURL = baseURL
	}
}

// WithHTTPClient replaces the underlying HTTP client
func WithHTTPClient(httpClient *http.Client) Option {
	return func(c *client) {
		c.httpClient = httpClient
	}
}

// WithThrottle replaces the default inter-call throttle
func WithThrottle(t *throttle.Throttle) Option {
	return func(c *client) {
		c.throttle = t
	}
}

// New creates a target-store client authenticating with the given
// integration token.
func New(token string, opts ...Option) interfaces.TargetStore {
	c := &client{
		baseURL:    defaultBaseURL,
		token:      token,
		httpClient: &http.Client{Timeout: 30 * time.Second},
		throttle:   throttle.New(defaultInterval),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

type queryRequest struct {
	PageSize    int    `json:"page_size"`
	StartCursor string `json:"start_cursor,omitempty"`
}

type queryResponse struct {
	Results    []pageWire `json:"results"`
	HasMore    bool       `json:"has_more"`
	NextCursor string     `json:"next_cursor"`
}

// Pages lazily iterates every page of one collection, threading the
// query cursor internally so callers consume a flat sequence.
func (c *client) Pages(ctx context.Context, databaseID string) iter.Seq2[*model.Page, error] {
	return func(yield func(*model.Page, error) bool) {
		cursor := ""
		for {
			var res queryResponse
			path := "/v1/databases/" + url.PathEscape(databaseID) + "/query"
			body := queryRequest{PageSize: queryPageSize, StartCursor: cursor}
			if err := c.do(ctx, http.MethodPost, path, body, &res); err != nil {
				yield(nil, goerr.Wrap(err, "failed to query collection", goerr.V("database_id", databaseID)))
				return
			}

			for _, wire := range res.Results {
				if !yield(decodePage(wire), nil) {
					return
				}
			}

			if !res.HasMore {
				return
			}
			cursor = res.NextCursor
		}
	}
}

// GetPage retrieves one page's current property values
func (c *client) GetPage(ctx context.Context, id types.PageID) (*model.Page, error) {
	var wire pageWire
	path := "/v1/pages/" + url.PathEscape(string(id))
	if err := c.do(ctx, http.MethodGet, path, nil, &wire); err != nil {
		return nil, goerr.Wrap(err, "failed to retrieve page", goerr.V("page_id", id))
	}
	return decodePage(wire), nil
}

type createRequest struct {
	Parent     parentRef      `json:"parent"`
	Properties map[string]any `json:"properties"`
}

type parentRef struct {
	DatabaseID string `json:"database_id"`
}

type createResponse struct {
	ID string `json:"id"`
}

// CreatePage creates a page in the given collection
func (c *client) CreatePage(ctx context.Context, databaseID string, props model.Properties) (types.PageID, error) {
	body := createRequest{
		Parent:     parentRef{DatabaseID: databaseID},
		Properties: encodeProperties(props),
	}

	var res createResponse
	if err := c.do(ctx, http.MethodPost, "/v1/pages", body, &res); err != nil {
		return "", goerr.Wrap(err, "failed to create page", goerr.V("database_id", databaseID))
	}
	return types.PageID(res.ID), nil
}

type updateRequest struct {
	Properties map[string]any `json:"properties"`
}

// UpdatePage patches the given properties on an existing page
func (c *client) UpdatePage(ctx context.Context, id types.PageID, props model.Properties) error {
	body := updateRequest{Properties: encodeProperties(props)}
	path := "/v1/pages/" + url.PathEscape(string(id))
	if err := c.do(ctx, http.MethodPatch, path, body, nil); err != nil {
		return goerr.Wrap(err, "failed to update page", goerr.V("page_id", id))
	}
	return nil
}

// do issues one authenticated call and decodes the JSON response.
// The throttle runs after every call, successful or not.
func (c *client) do(ctx context.Context, method, path string, body, out any) error {
	defer c.throttle.Wait(ctx)

	var reader io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return goerr.Wrap(err, "failed to encode request body")
		}
		reader = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return goerr.Wrap(err, "failed to create request", goerr.V("path", path))
	}
	req.Header.Set("Authorization", "Bearer "+c.token)
	req.Header.Set("Notion-Version", notionVersion)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return goerr.Wrap(err, "request failed", goerr.V("path", path))
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		detail, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return goerr.New("unexpected status from target API",
			goerr.V("status", resp.StatusCode),
			goerr.V("path", path),
			goerr.V("body", string(detail)),
		)
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return goerr.Wrap(err, "failed to decode response", goerr.V("path", path))
	}

	return nil
}
