package stabs

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/history-unibas/Metadata-Historical-Land-Registry-Basel/internal/cache"
	"github.com/history-unibas/Metadata-Historical-Land-Registry-Basel/internal/model"
)

func testClient(endpoint string, responseCache cache.Cache) *Client {
	cfg := model.DefaultConfig()
	cfg.Endpoint.URL = endpoint
	cfg.Endpoint.RootRecord = "https://ld.bs.ch/ais/Record/1027330"
	cfg.HTTP.Timeout = 5 * time.Second
	cfg.HTTP.RequestsPerSecond = 1000
	return NewClient(cfg, responseCache)
}

func sparqlJSON(rows ...string) string {
	return `{"results": {"bindings": [` + strings.Join(rows, ",") + `]}}`
}

func TestQuerySeries(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("Accept"); got != "application/sparql-results+json" {
			t.Errorf("Accept = %q", got)
		}
		if !strings.Contains(r.URL.Query().Get("query"), "rico:isDirectlyIncludedIn") {
			t.Error("Expected series query against rico ontology")
		}
		_, _ = fmt.Fprint(w, sparqlJSON(
			`{"link": {"value": "https://ld.bs.ch/ais/Record/1"},
			  "identifier": {"value": "HGB 1 14"},
			  "title": {"value": "Spalenberg"}}`,
			`{"link": {"value": "https://ld.bs.ch/ais/Record/2"},
			  "identifier": {"value": "broken"},
			  "title": {"value": "Kaput"}}`,
		))
	}))
	defer server.Close()

	series, err := testClient(server.URL, nil).QuerySeries(context.Background())
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	// The malformed identifier is skipped with a warning.
	if len(series) != 1 {
		t.Fatalf("Expected 1 serie, got %d", len(series))
	}
	if series[0].SerieID != "HGB_1_014" || series[0].StabsID != "HGB 1 14" ||
		series[0].Title != "Spalenberg" {
		t.Errorf("Unexpected serie: %+v", series[0])
	}
}

func TestQueryDossiers(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = fmt.Fprint(w, sparqlJSON(
			`{"link": {"value": "https://ld.bs.ch/ais/Record/10"},
			  "identifier": {"value": "HGB 1 14 3"},
			  "title": {"value": "Spalenberg 12"},
			  "oldhousenumber": {"value": "Theil von 744 A neben 745"}}`,
		))
	}))
	defer server.Close()

	serie := model.Serie{SerieID: "HGB_1_014", Link: "https://ld.bs.ch/ais/Record/1"}
	dossiers, err := testClient(server.URL, nil).QueryDossiers(context.Background(), serie)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if len(dossiers) != 1 {
		t.Fatalf("Expected 1 dossier, got %d", len(dossiers))
	}
	d := dossiers[0]
	if d.DossierID != "HGB_1_014_003" || d.SerieID != "HGB_1_014" {
		t.Errorf("Unexpected ids: %+v", d)
	}
	if d.OldHousenumber == nil || *d.OldHousenumber != "Theil von 744 A neben 745" {
		t.Errorf("OldHousenumber = %v", d.OldHousenumber)
	}
	// Unbound OPTIONAL variables stay nil.
	if d.HouseName != nil || d.Owner1862 != nil || d.DescriptiveNote != nil {
		t.Errorf("Expected nil optional fields, got %+v", d)
	}
}

func TestQueryDossiers_EmptySerie(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = fmt.Fprint(w, sparqlJSON())
	}))
	defer server.Close()

	serie := model.Serie{SerieID: "HGB_1_099", Link: "https://ld.bs.ch/ais/Record/99"}
	dossiers, err := testClient(server.URL, nil).QueryDossiers(context.Background(), serie)
	if err != nil {
		t.Fatalf("Empty series must not be an error, got %v", err)
	}
	if dossiers != nil {
		t.Errorf("Expected nil dossiers, got %v", dossiers)
	}
}

func TestQuery_RetriesTransientFailures(t *testing.T) {
	var attempts atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if attempts.Add(1) <= 2 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		_, _ = fmt.Fprint(w, sparqlJSON(
			`{"identifier": {"value": "HGB 1 14"}, "title": {"value": "Spalenberg"}, "link": {"value": "x"}}`,
		))
	}))
	defer server.Close()

	origSleep := querySleepFunc
	querySleepFunc = func(d time.Duration) {}
	defer func() { querySleepFunc = origSleep }()

	series, err := testClient(server.URL, nil).QuerySeries(context.Background())
	if err != nil {
		t.Fatalf("Expected success after retries, got %v", err)
	}
	if len(series) != 1 {
		t.Errorf("Expected 1 serie, got %d", len(series))
	}
	if attempts.Load() != 3 {
		t.Errorf("Expected 3 attempts, got %d", attempts.Load())
	}
}

func TestQuery_DoesNotRetryClientErrors(t *testing.T) {
	var attempts atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		attempts.Add(1)
		w.WriteHeader(http.StatusBadRequest)
	}))
	defer server.Close()

	_, err := testClient(server.URL, nil).QuerySeries(context.Background())
	if err == nil {
		t.Fatal("Expected error for 400")
	}
	if attempts.Load() != 1 {
		t.Errorf("Expected a single attempt for a client error, got %d", attempts.Load())
	}
}

func TestQuery_UsesCache(t *testing.T) {
	var attempts atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		attempts.Add(1)
		_, _ = fmt.Fprint(w, sparqlJSON(
			`{"identifier": {"value": "HGB 1 14"}, "title": {"value": "Spalenberg"}, "link": {"value": "x"}}`,
		))
	}))
	defer server.Close()

	client := testClient(server.URL, cache.NewMemoryCache(time.Minute, time.Minute))

	for i := 0; i < 3; i++ {
		if _, err := client.QuerySeries(context.Background()); err != nil {
			t.Fatalf("Expected no error, got %v", err)
		}
	}
	if attempts.Load() != 1 {
		t.Errorf("Expected 1 endpoint hit with caching, got %d", attempts.Load())
	}
}

func TestExpressedDate(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("format") != "jsonld" {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		_, _ = fmt.Fprint(w, `{"https://www.ica.org/standards/RiC/ontology#expressedDate": "1565"}`)
	}))
	defer server.Close()

	client := testClient(server.URL, nil)
	if got := client.ExpressedDate(context.Background(), server.URL); got != "1565" {
		t.Errorf("ExpressedDate = %q, want %q", got, "1565")
	}
}

func TestExpressedDate_MissingRecord(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	client := testClient(server.URL, nil)
	if got := client.ExpressedDate(context.Background(), server.URL); got != "" {
		t.Errorf("Expected empty date for missing record, got %q", got)
	}
}
