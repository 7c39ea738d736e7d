package aha_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/m-kurosawa/ahasync/pkg/domain/model"
	"github.com/m-kurosawa/ahasync/pkg/infra/aha"
	"github.com/m-kurosawa/ahasync/pkg/utils/throttle"
	"github.com/m-mizutani/gt"
)

func TestListReleases(t *testing.T) {
	ctx := context.Background()

	var gotAuth, gotVersion string
	pages := map[string]string{
		"1": `{
			"releases": [
				{
					"reference_num": "PRJ-R-1",
					"name": "Q3 Launch",
					"start_date": "2025-07-01T00:00:00Z",
					"release_date": "2025-09-30",
					"status": "in-progress",
					"release_group_id": "GRP-7",
					"owner": {"name": "Ana"},
					"engineering_lead": {"name": "Kim"}
				}
			],
			"pagination": {"total_pages": 2, "current_page": 1}
		}`,
		"2": `{
			"releases": [
				{
					"reference_num": "PRJ-R-2",
					"name": "Q4 Launch",
					"start_date": null,
					"release_date": null,
					"status": null,
					"release_group_id": null,
					"owner": null,
					"engineering_lead": null
				}
			],
			"pagination": {"total_pages": 2, "current_page": 2}
		}`,
	}

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		gotVersion = r.Header.Get("X-AHA-API-Version")
		gt.Value(t, r.URL.Path).Equal("/api/v1/releases")

		w.Header().Set("Content-Type", "application/json")
		if _, err := w.Write([]byte(pages[r.URL.Query().Get("page")])); err != nil {
			t.Error(err)
		}
	}))
	defer server.Close()

	client := aha.New(server.URL, "test-api-key", aha.WithThrottle(throttle.New(0)))
	releases, err := client.ListReleases(ctx)
	gt.NoError(t, err)

	gt.Value(t, gotAuth).Equal("Bearer test-api-key")
	gt.Value(t, gotVersion).Equal("v1")

	gt.Number(t, len(releases)).Equal(2)
	gt.Value(t, releases[0]).Equal(&model.Release{
		ID:              "PRJ-R-1",
		Name:            "Q3 Launch",
		StartDate:       "2025-07-01",
		EndDate:         "2025-09-30",
		Status:          "in-progress",
		GroupID:         "GRP-7",
		ProductManager:  "Ana",
		EngineeringLead: "Kim",
	})

	// Null wire fields land as blank markers
	gt.Value(t, releases[1]).Equal(&model.Release{
		ID:   "PRJ-R-2",
		Name: "Q4 Launch",
	})
}

func TestListReleaseFeatureIDs(t *testing.T) {
	ctx := context.Background()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gt.Value(t, r.URL.Path).Equal("/api/v1/releases/PRJ-R-1/features")

		body := `{
			"features": [{"reference_num": "PRJ-101"}, {"reference_num": "PRJ-102"}],
			"pagination": {"total_pages": 1, "current_page": 1}
		}`
		if _, err := w.Write([]byte(body)); err != nil {
			t.Error(err)
		}
	}))
	defer server.Close()

	client := aha.New(server.URL, "test-api-key", aha.WithThrottle(throttle.New(0)))
	ids, err := client.ListReleaseFeatureIDs(ctx, "PRJ-R-1")
	gt.NoError(t, err)
	gt.Array(t, ids).Length(2)
	gt.Value(t, string(ids[0])).Equal("PRJ-101")
	gt.Value(t, string(ids[1])).Equal("PRJ-102")
}

func TestGetFeature(t *testing.T) {
	ctx := context.Background()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gt.Value(t, r.URL.Path).Equal("/api/v1/features/PRJ-101")

		body := `{
			"feature": {
				"reference_num": "PRJ-101",
				"name": "Search revamp",
				"workflow_status": {"name": "In development"},
				"health": "On-Track",
				"owner": {"name": "Ana"},
				"engineering_lead": null,
				"url": "https://example.aha.io/features/PRJ-101"
			}
		}`
		if _, err := w.Write([]byte(body)); err != nil {
			t.Error(err)
		}
	}))
	defer server.Close()

	client := aha.New(server.URL, "test-api-key", aha.WithThrottle(throttle.New(0)))
	feature, err := client.GetFeature(ctx, "PRJ-101")
	gt.NoError(t, err)

	gt.Value(t, feature).Equal(&model.Feature{
		ID:             "PRJ-101",
		Name:           "Search revamp",
		Status:         "In development",
		Health:         model.HealthOnTrack,
		ProductManager: "Ana",
		URL:            "https://example.aha.io/features/PRJ-101",
	})
}

func TestGetFeature_MissingHealthDefaultsUnknown(t *testing.T) {
	ctx := context.Background()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body := `{
			"feature": {
				"reference_num": "PRJ-102",
				"name": "Dark mode",
				"workflow_status": {"name": "Shipped"},
				"health": null
			}
		}`
		if _, err := w.Write([]byte(body)); err != nil {
			t.Error(err)
		}
	}))
	defer server.Close()

	client := aha.New(server.URL, "test-api-key", aha.WithThrottle(throttle.New(0)))
	feature, err := client.GetFeature(ctx, "PRJ-102")
	gt.NoError(t, err)
	gt.Value(t, feature.Health).Equal(model.HealthUnknown)
}

func TestListReleases_ServerError(t *testing.T) {
	ctx := context.Background()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":"internal"}`, http.StatusInternalServerError)
	}))
	defer server.Close()

	client := aha.New(server.URL, "test-api-key", aha.WithThrottle(throttle.New(0)))
	_, err := client.ListReleases(ctx)
	gt.Error(t, err)
	gt.String(t, err.Error()).Contains("failed to list releases")
}
