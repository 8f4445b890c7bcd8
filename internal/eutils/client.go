// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package eutils queries the NCBI Entrez E-utilities for PubMed records.
package eutils

import (
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/meshintel/paperscreen/internal/httputil"
	"github.com/meshintel/paperscreen/internal/medline"
	"github.com/meshintel/paperscreen/pkg/types"
)

// esearchBase and efetchBase are declared as vars so tests can substitute an
// httptest server.
var (
	esearchBase = "https://eutils.ncbi.nlm.nih.gov/entrez/eutils/esearch.fcgi"
	efetchBase  = "https://eutils.ncbi.nlm.nih.gov/entrez/eutils/efetch.fcgi"
)

// NCBI allows ten requests per second with an API key and three without.
// Declared as vars so tests can shrink them.
var (
	keyedDelay   = 100 * time.Millisecond
	unkeyedDelay = 500 * time.Millisecond
)

const (
	toolName          = "paperscreen"
	defaultUserAgent  = "paperscreen/1.0"
	defaultTimeout    = 30 * time.Second
	defaultMaxResults = 100
	defaultBatchSize  = 50
)

// Client fetches PubMed records through the esearch and efetch endpoints.
type Client struct {
	httpClient *http.Client
	cfg        types.FetchConfig
	cache      *Cache // nil disables response caching
}

// New builds a Client from cfg. A cache that cannot be opened disables
// caching with a warning rather than failing the client.
func New(cfg types.FetchConfig) *Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	c := &Client{
		httpClient: &http.Client{Timeout: timeout},
		cfg:        cfg,
	}
	if !cfg.DisableCache {
		cache, err := NewCache(cfg.CacheDir, cfg.CacheTTL)
		if err != nil {
			log.WithError(err).Warn("response cache disabled")
		} else {
			c.cache = cache
		}
	}
	return c
}

// esearchResponse mirrors the JSON envelope of the esearch endpoint.
type esearchResponse struct {
	Result struct {
		Count  string   `json:"count"`
		IDList []string `json:"idlist"`
	} `json:"esearchresult"`
}

// Search runs a PubMed query and returns the matching PMIDs, at most
// MaxResults of them.
func (c *Client) Search(ctx context.Context, query string) ([]string, error) {
	if strings.TrimSpace(query) == "" {
		return nil, fmt.Errorf("empty query")
	}

	max := c.cfg.MaxResults
	if max <= 0 {
		max = defaultMaxResults
	}

	params := url.Values{
		"db":      {"pubmed"},
		"term":    {query},
		"retmax":  {strconv.Itoa(max)},
		"retmode": {"json"},
	}
	c.identify(params)

	body, err := c.get(ctx, esearchBase, params)
	if err != nil {
		return nil, fmt.Errorf("searching pubmed: %w", err)
	}

	var sr esearchResponse
	if err := json.Unmarshal(body, &sr); err != nil {
		return nil, fmt.Errorf("parsing esearch response: %w", err)
	}

	log.WithFields(log.Fields{
		"count":    sr.Result.Count,
		"returned": len(sr.Result.IDList),
	}).Debug("esearch complete")
	return sr.Result.IDList, nil
}

// Fetch retrieves MEDLINE records for the given PMIDs in batches, writing a
// progress line per batch to w. Batches after the first wait out the NCBI
// rate limit before being sent.
func (c *Client) Fetch(ctx context.Context, pmids []string, w io.Writer) ([]types.Record, error) {
	if len(pmids) == 0 {
		return nil, nil
	}

	size := c.cfg.BatchSize
	if size <= 0 {
		size = defaultBatchSize
	}
	batches := (len(pmids) + size - 1) / size

	var records []types.Record
	for i := 0; i < len(pmids); i += size {
		end := i + size
		if end > len(pmids) {
			end = len(pmids)
		}
		batch := pmids[i:end]
		number := i/size + 1

		if i > 0 {
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(c.delay()):
			}
		}

		fmt.Fprintf(w, "fetching batch %d/%d (%d records)\n", number, batches, len(batch))

		text, err := c.fetchBatch(ctx, batch)
		if err != nil {
			return nil, fmt.Errorf("batch %d/%d: %w", number, batches, err)
		}
		recs, err := medline.Parse(bytes.NewReader(text))
		if err != nil {
			return nil, fmt.Errorf("parsing batch %d/%d: %w", number, batches, err)
		}
		records = append(records, recs...)
	}
	return records, nil
}

// FetchPapers runs the full retrieval pipeline: search, then batched fetch
// of the matching records.
func (c *Client) FetchPapers(ctx context.Context, query string, w io.Writer) ([]types.Record, error) {
	ids, err := c.Search(ctx, query)
	if err != nil {
		return nil, err
	}
	fmt.Fprintf(w, "found %d matching papers\n", len(ids))
	return c.Fetch(ctx, ids, w)
}

// fetchBatch returns the raw MEDLINE text for one batch of PMIDs,
// consulting the response cache first.
func (c *Client) fetchBatch(ctx context.Context, pmids []string) ([]byte, error) {
	key := batchKey(pmids)
	if c.cache != nil {
		if data, ok := c.cache.Get(key); ok {
			log.WithField("pmids", len(pmids)).Debug("efetch cache hit")
			return data, nil
		}
	}

	params := url.Values{
		"db":      {"pubmed"},
		"id":      {strings.Join(pmids, ",")},
		"rettype": {"medline"},
		"retmode": {"text"},
	}
	c.identify(params)

	body, err := c.get(ctx, efetchBase, params)
	if err != nil {
		return nil, err
	}
	if c.cache != nil {
		if err := c.cache.Put(key, body); err != nil {
			log.WithError(err).Debug("efetch cache write failed")
		}
	}
	return body, nil
}

// identify attaches the identification parameters NCBI asks automated
// clients to send with every request.
func (c *Client) identify(params url.Values) {
	params.Set("tool", toolName)
	if c.cfg.Email != "" {
		params.Set("email", c.cfg.Email)
	}
	if c.cfg.APIKey != "" {
		params.Set("api_key", c.cfg.APIKey)
	}
}

func (c *Client) get(ctx context.Context, base string, params url.Values) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, base+"?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("User-Agent", c.userAgent())

	resp, err := httputil.DoWithRetry(ctx, c.httpClient, req, 0)
	if err != nil {
		return nil, fmt.Errorf("entrez request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("entrez returned HTTP %d", resp.StatusCode)
	}
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading response: %w", err)
	}
	return body, nil
}

func (c *Client) userAgent() string {
	if c.cfg.UserAgent != "" {
		return c.cfg.UserAgent
	}
	return defaultUserAgent
}

func (c *Client) delay() time.Duration {
	if c.cfg.APIKey != "" {
		return keyedDelay
	}
	return unkeyedDelay
}

func batchKey(pmids []string) string {
	sum := sha256.Sum256([]byte(strings.Join(pmids, ",")))
	return "efetch-" + hex.EncodeToString(sum[:])
}
