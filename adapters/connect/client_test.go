package connect

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/eklokova/connect-reports/core/report"
	"github.com/eklokova/connect-reports/internal/config"
	apperrors "github.com/eklokova/connect-reports/internal/errors"
)

func testClient(url string, pageSize int) *Client {
	return New(config.APIConfig{
		Endpoint:       url,
		Token:          "secret-token",
		TimeoutSeconds: 5,
		PageSize:       pageSize,
	})
}

func TestListingQuery(t *testing.T) {
	var gotPath, gotQuery, gotAuth string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotQuery = r.URL.RawQuery
		gotAuth = r.Header.Get("Authorization")
		w.Write([]byte(`[{"id": "LST-1", "status": "listed", "pricelist": {"id": "PL-1"}}]`))
	}))
	defer server.Close()

	listing, err := testClient(server.URL, 10).Listing(context.Background(), "MP-1", "PRD-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if listing == nil || listing.ID != "LST-1" {
		t.Fatalf("listing = %+v, want LST-1", listing)
	}
	if listing.PriceList == nil || listing.PriceList.ID != "PL-1" {
		t.Errorf("price list ref = %+v, want PL-1", listing.PriceList)
	}

	if gotPath != "/listings" {
		t.Errorf("path = %q, want /listings", gotPath)
	}
	for _, expr := range []string{"eq(marketplace.id,MP-1)", "eq(product.id,PRD-1)", "eq(status,listed)", "limit=1"} {
		if !strings.Contains(gotQuery, expr) {
			t.Errorf("query %q missing %q", gotQuery, expr)
		}
	}
	if gotAuth != "Bearer secret-token" {
		t.Errorf("authorization header = %q", gotAuth)
	}
}

func TestListingAbsent(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[]`))
	}))
	defer server.Close()

	listing, err := testClient(server.URL, 10).Listing(context.Background(), "MP-1", "PRD-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if listing != nil {
		t.Errorf("listing = %+v, want nil for empty collection", listing)
	}
}

func TestAssetsPagination(t *testing.T) {
	pages := map[string]string{
		"0": `[{"id": "AS-1"}, {"id": "AS-2"}]`,
		"2": `[{"id": "AS-3"}]`,
	}
	var queries []string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		queries = append(queries, r.URL.RawQuery)
		body, ok := pages[r.URL.Query().Get("offset")]
		if !ok {
			t.Errorf("unexpected offset %q", r.URL.Query().Get("offset"))
			body = "[]"
		}
		w.Write([]byte(body))
	}))
	defer server.Close()

	assets, err := testClient(server.URL, 2).Assets(context.Background(), report.AssetQuery{
		CreatedAfter:  "2024-01-01T00:00:00",
		CreatedBefore: "2024-12-31T23:59:59",
		Products:      []string{"PRD-1", "PRD-2"},
		Status:        "active",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(assets) != 3 {
		t.Fatalf("got %d assets, want 3 across two pages", len(assets))
	}
	if assets[2].ID != "AS-3" {
		t.Errorf("last asset = %q, want AS-3", assets[2].ID)
	}
	if len(queries) != 2 {
		t.Fatalf("made %d requests, want 2", len(queries))
	}
	for _, expr := range []string{
		"ge(events.created.at,2024-01-01T00:00:00)",
		"le(events.created.at,2024-12-31T23:59:59)",
		"in(product.id,(PRD-1,PRD-2))",
		"eq(status,active)",
	} {
		if !strings.Contains(queries[0], expr) {
			t.Errorf("query %q missing %q", queries[0], expr)
		}
	}
}

func TestAssetsStatusAll(t *testing.T) {
	var gotQuery string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.RawQuery
		w.Write([]byte(`[]`))
	}))
	defer server.Close()

	_, err := testClient(server.URL, 10).Assets(context.Background(), report.AssetQuery{
		CreatedAfter:  "a",
		CreatedBefore: "b",
		Status:        "all",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if strings.Contains(gotQuery, "eq(status") {
		t.Errorf("query %q must not filter status when it is \"all\"", gotQuery)
	}
}

func TestApprovedRequestsQuery(t *testing.T) {
	var gotPath, gotQuery string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotQuery = r.URL.RawQuery
		w.Write([]byte(`[{"id": "PR-1", "status": "approved"}]`))
	}))
	defer server.Close()

	requests, err := testClient(server.URL, 10).ApprovedRequests(context.Background(), report.RequestQuery{
		CreatedAfter:  "2024-01-01",
		CreatedBefore: "2024-06-30",
		Types:         []string{"purchase"},
		Marketplaces:  []string{"MP-1"},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(requests) != 1 || requests[0].ID != "PR-1" {
		t.Fatalf("requests = %+v, want single PR-1", requests)
	}

	if gotPath != "/requests" {
		t.Errorf("path = %q, want /requests", gotPath)
	}
	for _, expr := range []string{
		"eq(status,approved)",
		"ge(created,2024-01-01)",
		"le(created,2024-06-30)",
		"in(type,(purchase))",
		"in(marketplace.id,(MP-1))",
		"ordering(created)",
	} {
		if !strings.Contains(gotQuery, expr) {
			t.Errorf("query %q missing %q", gotQuery, expr)
		}
	}
}

func TestFilledPointsPath(t *testing.T) {
	var gotPath string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		w.Write([]byte(`[{"item": {"global_id": "GI-1"}, "attributes": {"price": "10"}}]`))
	}))
	defer server.Close()

	points, err := testClient(server.URL, 10).FilledPoints(context.Background(), "PLV-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if gotPath != "/pricing/versions/PLV-1/points" {
		t.Errorf("path = %q", gotPath)
	}
	if len(points) != 1 || points[0].Item.GlobalID != "GI-1" {
		t.Errorf("points = %+v", points)
	}
}

func TestErrorStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
		fmt.Fprint(w, `{"error": "no access"}`)
	}))
	defer server.Close()

	_, err := testClient(server.URL, 10).Asset(context.Background(), "AS-1")
	if err == nil {
		t.Fatal("expected error for 403 response")
	}
	if !apperrors.IsType(err, apperrors.TypeExternalService) {
		t.Errorf("error type = %v, want %v", err, apperrors.TypeExternalService)
	}
}
