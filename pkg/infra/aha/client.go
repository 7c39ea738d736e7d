package aha

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/m-kurosawa/ahasync/pkg/domain/interfaces"
	"github.com/m-kurosawa/ahasync/pkg/domain/model"
	"github.com/m-kurosawa/ahasync/pkg/domain/types"
	"github.com/m-kurosawa/ahasync/pkg/utils/throttle"
	"github.com/m-mizutani/goerr/v2"
)

const (
	// The v1 surface is mandated: the newer API version changed
	// filtering semantics incompatibly.
	apiVersion = "v1"

	pageSize = 200

	// Pacing against the source API's per-second request ceiling
	defaultInterval = 150 * time.Millisecond
)

type client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
	throttle   *throttle.Throttle
}

// Option configures the client
type Option func(*client)

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

// New creates a source client for the product-management API at
// baseURL (e.g. "https://example.aha.io"), authenticating with the
// given bearer token.
func New(baseURL, apiKey string, opts ...Option) interfaces.SourceClient {
	c := &client{
		baseURL:    strings.TrimSuffix(baseURL, "/"),
		apiKey:     apiKey,
		httpClient: &http.Client{Timeout: 30 * time.Second},
		throttle:   throttle.New(defaultInterval),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Wire envelopes of the v1 API

type pagination struct {
	TotalPages  int `json:"total_pages"`
	CurrentPage int `json:"current_page"`
}

type person struct {
	Name string `json:"name"`
}

type releaseBody struct {
	ReferenceNum    string  `json:"reference_num"`
	Name            string  `json:"name"`
	StartDate       *string `json:"start_date"`
	ReleaseDate     *string `json:"release_date"`
	Status          *string `json:"status"`
	ReleaseGroupID  *string `json:"release_group_id"`
	Owner           *person `json:"owner"`
	EngineeringLead *person `json:"engineering_lead"`
}

type releasesEnvelope struct {
	Releases   []releaseBody `json:"releases"`
	Pagination pagination    `json:"pagination"`
}

type featureRef struct {
	ReferenceNum string `json:"reference_num"`
}

type releaseFeaturesEnvelope struct {
	Features   []featureRef `json:"features"`
	Pagination pagination   `json:"pagination"`
}

type featureBody struct {
	ReferenceNum   string `json:"reference_num"`
	Name           string `json:"name"`
	WorkflowStatus struct {
		Name string `json:"name"`
	} `json:"workflow_status"`
	Health          *string `json:"health"`
	Owner           *person `json:"owner"`
	EngineeringLead *person `json:"engineering_lead"`
	URL             *string `json:"url"`
}

type featureEnvelope struct {
	Feature featureBody `json:"feature"`
}

// ListReleases fetches every release, following the v1 page-number
// pagination envelope.
func (c *client) ListReleases(ctx context.Context) ([]*model.Release, error) {
	var releases []*model.Release

	for page := 1; ; page++ {
		var envelope releasesEnvelope
		path := fmt.Sprintf("/api/v1/releases?per_page=%d&page=%d", pageSize, page)
		if err := c.get(ctx, path, &envelope); err != nil {
			return nil, goerr.Wrap(err, "failed to list releases", goerr.V("page", page))
		}

		for _, body := range envelope.Releases {
			releases = append(releases, convertRelease(body))
		}

		if page >= envelope.Pagination.TotalPages {
			break
		}
	}

	return releases, nil
}

// ListReleaseFeatureIDs fetches the external ids of the features
// assigned to one release, preserving source order.
func (c *client) ListReleaseFeatureIDs(ctx context.Context, id types.ReleaseID) ([]types.FeatureID, error) {
	var ids []types.FeatureID

	for page := 1; ; page++ {
		var envelope releaseFeaturesEnvelope
		path := fmt.Sprintf("/api/v1/releases/%s/features?per_page=%d&page=%d", url.PathEscape(string(id)), pageSize, page)
		if err := c.get(ctx, path, &envelope); err != nil {
			return nil, goerr.Wrap(err, "failed to list release features", goerr.V("release_id", id), goerr.V("page", page))
		}

		for _, ref := range envelope.Features {
			ids = append(ids, types.FeatureID(ref.ReferenceNum))
		}

		if page >= envelope.Pagination.TotalPages {
			break
		}
	}

	return ids, nil
}

// GetFeature fetches full feature detail by external id. The primary
// release is assigned by the caller from the assignment map, not here.
func (c *client) GetFeature(ctx context.Context, id types.FeatureID) (*model.Feature, error) {
	var envelope featureEnvelope
	path := "/api/v1/features/" + url.PathEscape(string(id))
	if err := c.get(ctx, path, &envelope); err != nil {
		return nil, goerr.Wrap(err, "failed to get feature", goerr.V("feature_id", id))
	}

	body := envelope.Feature
	return &model.Feature{
		ID:              types.FeatureID(body.ReferenceNum),
		Name:            body.Name,
		Status:          body.WorkflowStatus.Name,
		Health:          model.NormalizeHealth(deref(body.Health)),
		ProductManager:  personName(body.Owner),
		EngineeringLead: personName(body.EngineeringLead),
		URL:             deref(body.URL),
	}, nil
}

// get issues one authenticated GET and decodes the JSON response.
// The throttle runs after every call, successful or not.
func (c *client) get(ctx context.Context, path string, out any) error {
	defer c.throttle.Wait(ctx)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return goerr.Wrap(err, "failed to create request", goerr.V("path", path))
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("X-AHA-API-Version", apiVersion)
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return goerr.Wrap(err, "request failed", goerr.V("path", path))
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return goerr.New("unexpected status from source API",
			goerr.V("status", resp.StatusCode),
			goerr.V("path", path),
			goerr.V("body", string(body)),
		)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return goerr.Wrap(err, "failed to decode response", goerr.V("path", path))
	}

	return nil
}

func convertRelease(body releaseBody) *model.Release {
	return &model.Release{
		ID:              types.ReleaseID(body.ReferenceNum),
		Name:            body.Name,
		StartDate:       model.NormalizeDate(deref(body.StartDate)),
		EndDate:         model.NormalizeDate(deref(body.ReleaseDate)),
		Status:          deref(body.Status),
		GroupID:         deref(body.ReleaseGroupID),
		ProductManager:  personName(body.Owner),
		EngineeringLead: personName(body.EngineeringLead),
	}
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func personName(p *person) string {
	if p == nil {
		return ""
	}
	return p.Name
}
