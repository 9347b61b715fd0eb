// Package ragclient is the HTTP adapter to the external retrieval engine.
//
// It exposes one method per capability and returns plain structured results.
// Handlers never see transport detail: any failure comes back as a
// fault.UpstreamError carrying the operation name and HTTP status. Retry
// policy lives here, not in the dispatcher — server errors and transport
// failures are retried with exponential backoff, client errors never are.
package ragclient

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/charmbracelet/log"
	"github.com/teamctx/teamctx/internal/fault"
)

// retryInterval is the initial backoff delay. Package-level for test
// injection.
var retryInterval = 200 * time.Millisecond

// Options configure a Client.
type Options struct {
	// BaseURL of the retrieval engine, without trailing slash.
	BaseURL string

	// Timeout bounds each individual HTTP request.
	Timeout time.Duration

	// MaxAttempts is the total number of tries per call, including the
	// first. Values below 1 are treated as 1.
	MaxAttempts int

	// Logger receives one line per retried or failed request.
	Logger *log.Logger
}

// Client talks to the RAG engine over HTTP.
type Client struct {
	baseURL     string
	httpClient  *http.Client
	maxAttempts int
	logger      *log.Logger
}

// New creates a Client from opts.
func New(opts Options) *Client {
	attempts := opts.MaxAttempts
	if attempts < 1 {
		attempts = 1
	}
	if opts.Logger == nil {
		opts.Logger = log.New(io.Discard)
	}
	return &Client{
		baseURL:     opts.BaseURL,
		httpClient:  &http.Client{Timeout: opts.Timeout},
		maxAttempts: attempts,
		logger:      opts.Logger.With("component", "ragclient"),
	}
}

// SearchCodeExamples runs a ranked search over indexed code.
func (c *Client) SearchCodeExamples(ctx context.Context, params SearchParams) ([]CodeExample, error) {
	var resp struct {
		Results []CodeExample `json:"results"`
	}
	if err := c.do(ctx, "search code examples", http.MethodPost, "/api/search/code", params, &resp); err != nil {
		return nil, err
	}
	return resp.Results, nil
}

// GetDesignDocs retrieves design documents matching the query.
func (c *Client) GetDesignDocs(ctx context.Context, params DesignDocParams) ([]DesignDoc, error) {
	var resp struct {
		Results []DesignDoc `json:"results"`
	}
	if err := c.do(ctx, "get design docs", http.MethodPost, "/api/search/docs", params, &resp); err != nil {
		return nil, err
	}
	return resp.Results, nil
}

// GetCodingStandards fetches the standards sections for a language,
// optionally narrowed to one category. The result is the raw section map as
// stored by the backend.
func (c *Client) GetCodingStandards(ctx context.Context, language, category string) (map[string]any, error) {
	path := "/api/standards/" + url.PathEscape(language)
	if category != "" {
		path += "?category=" + url.QueryEscape(category)
	}
	var resp struct {
		Language  string         `json:"language"`
		Standards map[string]any `json:"standards"`
	}
	if err := c.do(ctx, "get coding standards", http.MethodGet, path, nil, &resp); err != nil {
		return nil, err
	}
	return resp.Standards, nil
}

// QueryKnowledgeGraph traverses the knowledge graph from an entity.
func (c *Client) QueryKnowledgeGraph(ctx context.Context, query GraphQuery) (*GraphAnswer, error) {
	var resp GraphAnswer
	if err := c.do(ctx, "query knowledge graph", http.MethodPost, "/api/graph/query", query, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// GetKnowledgeBaseStats returns corpus-level counters.
func (c *Client) GetKnowledgeBaseStats(ctx context.Context) (*Stats, error) {
	var resp Stats
	if err := c.do(ctx, "get knowledge base stats", http.MethodGet, "/api/stats", nil, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// do performs one capability call: marshal body, POST/GET with retries,
// decode the 2xx response into out.
func (c *Client) do(ctx context.Context, op, method, path string, body, out any) error {
	var payload []byte
	if body != nil {
		var err error
		payload, err = json.Marshal(body)
		if err != nil {
			return fault.Upstream(op, 0, fmt.Errorf("encoding request: %w", err))
		}
	}

	policy := backoff.WithContext(
		backoff.WithMaxRetries(newBackoff(), uint64(c.maxAttempts-1)),
		ctx,
	)

	attempt := 0
	operation := func() error {
		attempt++
		err := c.once(ctx, op, method, path, payload, out)
		if err != nil && attempt < c.maxAttempts && !isPermanent(err) {
			c.logger.Warn("retrying RAG request", "op", op, "attempt", attempt, "err", err)
		}
		return err
	}

	if err := backoff.Retry(operation, policy); err != nil {
		var perm *backoff.PermanentError
		if errors.As(err, &perm) {
			return perm.Err
		}
		return err
	}
	return nil
}

// once performs a single HTTP round trip. Client errors (4xx) come back
// wrapped in backoff.Permanent so the retry loop stops immediately.
func (c *Client) once(ctx context.Context, op, method, path string, payload []byte, out any) error {
	var body io.Reader
	if payload != nil {
		body = bytes.NewReader(payload)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return backoff.Permanent(fault.Upstream(op, 0, err))
	}
	req.Header.Set("Accept", "application/json")
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fault.Upstream(op, 0, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		// Drain so the connection can be reused.
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 4096))
		upstreamErr := fault.Upstream(op, resp.StatusCode, errors.New(http.StatusText(resp.StatusCode)))
		if resp.StatusCode >= 500 {
			return upstreamErr
		}
		return backoff.Permanent(upstreamErr)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return backoff.Permanent(fault.Upstream(op, resp.StatusCode,
			fmt.Errorf("decoding response: %w", err)))
	}
	return nil
}

func newBackoff() *backoff.ExponentialBackOff {
	b := backoff.NewExponentialBackOff()
	b.InitialInterval = retryInterval
	b.MaxInterval = 5 * time.Second
	return b
}

func isPermanent(err error) bool {
	var perm *backoff.PermanentError
	return errors.As(err, &perm)
}

// String renders the stats counters for logging.
func (s *Stats) String() string {
	return "documents=" + strconv.Itoa(s.Documents) +
		" code_examples=" + strconv.Itoa(s.CodeExamples) +
		" design_docs=" + strconv.Itoa(s.DesignDocs) +
		" entities=" + strconv.Itoa(s.Entities) +
		" relations=" + strconv.Itoa(s.Relations)
}
