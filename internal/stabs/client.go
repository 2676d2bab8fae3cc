// Package stabs queries the metadata of the Historisches Grundbuch Basel from
// the Linked Open Data portal of the State Archives Basel-Stadt.
package stabs

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/history-unibas/Metadata-Historical-Land-Registry-Basel/internal/cache"
	"github.com/history-unibas/Metadata-Historical-Land-Registry-Basel/internal/model"
	"github.com/history-unibas/Metadata-Historical-Land-Registry-Basel/internal/util"
	"github.com/history-unibas/Metadata-Historical-Land-Registry-Basel/internal/worker"
)

const queryMaxRetries = 3

// querySleepFunc is the sleep function used between retries (injectable for tests)
var querySleepFunc = time.Sleep

// Client queries the archive's SPARQL endpoint
type Client struct {
	endpoint   string
	rootRecord string
	httpClient *http.Client
	userAgent  string
	maxBytes   int64
	limiter    *worker.Limiter
	cache      cache.Cache // nil disables caching
}

// NewClient creates a client for the configured endpoint. responseCache may
// be nil to force fresh queries.
func NewClient(cfg *model.Config, responseCache cache.Cache) *Client {
	return &Client{
		endpoint:   cfg.Endpoint.URL,
		rootRecord: cfg.Endpoint.RootRecord,
		httpClient: &http.Client{
			Timeout: cfg.HTTP.Timeout,
			Transport: &http.Transport{
				Proxy: util.NewProxyFunc(cfg.HTTP.HTTPProxy, cfg.HTTP.HTTPSProxy),
			},
			CheckRedirect: func(req *http.Request, via []*http.Request) error {
				if len(via) >= 3 {
					return fmt.Errorf("stopped after 3 redirects")
				}
				return nil
			},
		},
		userAgent: cfg.HTTP.UserAgent,
		maxBytes:  cfg.HTTP.MaxBodyBytes,
		limiter:   worker.NewLimiter(cfg.HTTP.RequestsPerSecond, 1),
		cache:     responseCache,
	}
}

// get fetches a URL with rate limiting and a body size cap
func (c *Client) get(ctx context.Context, rawURL, accept string) ([]byte, error) {
	if err := c.limiter.Wait(ctx, rawURL); err != nil {
		return nil, fmt.Errorf("rate limit: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("Accept", accept)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &statusError{code: resp.StatusCode, status: resp.Status}
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, c.maxBytes))
	if err != nil {
		return nil, fmt.Errorf("read body: %w", err)
	}
	return body, nil
}

// getWithRetry retries transient failures with exponential backoff
func (c *Client) getWithRetry(ctx context.Context, rawURL, accept string) ([]byte, error) {
	var body []byte
	var err error
	for attempt := 0; attempt < queryMaxRetries; attempt++ {
		body, err = c.get(ctx, rawURL, accept)
		if err == nil || !isRetryable(err) {
			return body, err
		}
		if attempt < queryMaxRetries-1 {
			backoff := time.Duration(1<<uint(attempt)) * time.Second
			querySleepFunc(backoff)
		}
	}
	return body, err
}

// statusError marks a non-2xx response
type statusError struct {
	code   int
	status string
}

func (e *statusError) Error() string {
	return fmt.Sprintf("unexpected status: %s", e.status)
}

// isRetryable returns true for failures worth a second attempt: server
// errors, rate limiting and transient network faults
func isRetryable(err error) bool {
	if se, ok := err.(*statusError); ok {
		return se.code >= 500 || se.code == 429
	}
	s := strings.ToLower(err.Error())
	return strings.Contains(s, "timeout") ||
		strings.Contains(s, "connection refused") ||
		strings.Contains(s, "connection reset")
}

// sparqlResponse mirrors the SPARQL JSON results format
type sparqlResponse struct {
	Results struct {
		Bindings []binding `json:"bindings"`
	} `json:"results"`
}

type binding map[string]struct {
	Value string `json:"value"`
}

// str returns the bound value for a variable, or "" when unbound
func (b binding) str(name string) string {
	return b[name].Value
}

// opt returns the bound value for a variable, or nil when unbound
func (b binding) opt(name string) *string {
	v, ok := b[name]
	if !ok {
		return nil
	}
	return &v.Value
}

// query runs a SPARQL query and returns its bindings, consulting the cache
// first and storing successful responses
func (c *Client) query(ctx context.Context, sparql string) ([]binding, error) {
	key := cache.QueryKey(c.endpoint, sparql)
	body, cached := []byte(nil), false
	if c.cache != nil {
		body, cached = c.cache.Get(key)
	}

	if !cached {
		queryURL := c.endpoint + "?query=" + url.QueryEscape(sparql)
		var err error
		body, err = c.getWithRetry(ctx, queryURL, "application/sparql-results+json")
		if err != nil {
			return nil, fmt.Errorf("query endpoint: %w", err)
		}
		if c.cache != nil {
			_ = c.cache.Set(key, body, 0)
		}
	}

	var resp sparqlResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}
	return resp.Results.Bindings, nil
}

// QuerySeries queries all series of the Historisches Grundbuch. Series whose
// identifier cannot be turned into a project id are skipped with a warning.
func (c *Client) QuerySeries(ctx context.Context) ([]model.Serie, error) {
	bindings, err := c.query(ctx, fmt.Sprintf(seriesQueryTmpl, c.rootRecord))
	if err != nil {
		return nil, fmt.Errorf("query series: %w", err)
	}

	var series []model.Serie
	for _, b := range bindings {
		identifier := b.str("identifier")
		serieID, err := SerieID(identifier)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Warning: skipping serie: %v\n", err)
			continue
		}
		series = append(series, model.Serie{
			SerieID: serieID,
			StabsID: identifier,
			Title:   b.str("title"),
			Link:    b.str("link"),
		})
	}
	return series, nil
}

// QueryDossiers queries all dossiers of one serie. A serie without dossiers
// is not an error: it is logged and yields nil, and the run proceeds with the
// remaining series.
func (c *Client) QueryDossiers(ctx context.Context, serie model.Serie) ([]model.Dossier, error) {
	bindings, err := c.query(ctx, fmt.Sprintf(dossiersQueryTmpl, serie.Link))
	if err != nil {
		return nil, fmt.Errorf("query dossiers of %s: %w", serie.SerieID, err)
	}
	if len(bindings) == 0 {
		fmt.Fprintf(os.Stderr, "Warning: no dossier found for serie %s (%s)\n", serie.SerieID, serie.Link)
		return nil, nil
	}

	var dossiers []model.Dossier
	for _, b := range bindings {
		identifier := b.str("identifier")
		dossierID, err := DossierID(identifier)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Warning: skipping dossier: %v\n", err)
			continue
		}
		dossiers = append(dossiers, model.Dossier{
			DossierID:       dossierID,
			SerieID:         serie.SerieID,
			StabsID:         identifier,
			Title:           b.str("title"),
			HouseName:       b.opt("housenamebs"),
			OldHousenumber:  b.opt("oldhousenumber"),
			Owner1862:       b.opt("owner1862"),
			DescriptiveNote: b.opt("note"),
			Link:            b.str("link"),
		})
	}
	return dossiers, nil
}

// QueryDocuments queries all document-level records below a serie. The query
// shape follows the "Regesten Klingental" serie, whose documents sit at
// arbitrary depth.
func (c *Client) QueryDocuments(ctx context.Context, serie model.Serie) ([]model.Document, error) {
	bindings, err := c.query(ctx, fmt.Sprintf(documentsQueryTmpl, serie.Link))
	if err != nil {
		return nil, fmt.Errorf("query documents of %s: %w", serie.SerieID, err)
	}
	if len(bindings) == 0 {
		fmt.Fprintf(os.Stderr, "Warning: no document found for serie %s (%s)\n", serie.SerieID, serie.Link)
		return nil, nil
	}

	var documents []model.Document
	for _, b := range bindings {
		documents = append(documents, model.Document{
			StabsID:         b.str("identifier"),
			Title:           b.str("title"),
			Type:            b.str("type"),
			DescriptiveNote: b.opt("descriptivenote"),
			DateLink:        b.opt("isassociatedwithdate"),
			Link:            b.str("link"),
		})
	}
	return documents, nil
}

// ricoExpressedDate is the predicate carrying the human-entered date of an
// associated-date record.
const ricoExpressedDate = "https://www.ica.org/standards/RiC/ontology#expressedDate"

// ExpressedDate resolves an associated-date record to its expressed date. A
// missing or malformed record is logged and yields "", not an error.
func (c *Client) ExpressedDate(ctx context.Context, dateLink string) string {
	body, err := c.getWithRetry(ctx, dateLink+"?format=jsonld", "application/ld+json")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: no associated date record found for %s: %v\n", dateLink, err)
		return ""
	}

	var record map[string]any
	if err := json.Unmarshal(body, &record); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: undecodable date record %s: %v\n", dateLink, err)
		return ""
	}
	switch v := record[ricoExpressedDate].(type) {
	case string:
		return v
	case map[string]any:
		if s, ok := v["@value"].(string); ok {
			return s
		}
	}
	fmt.Fprintf(os.Stderr, "Warning: date record %s has no expressed date\n", dateLink)
	return ""
}
