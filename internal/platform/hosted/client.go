// Package hosted implements the storage contract against a hosted REST data
// service, with a per-operation fallback onto the relational backend. The
// wire protocol is PostgREST-style: one resource path per table, filters in
// the query string, JSON rows in and out.
package hosted

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// Error code the service returns when a single-object request matches no row.
const codeNoRows = "PGRST116"

// apiError is a non-2xx response from the hosted service.
type apiError struct {
	Status  int    `json:"-"`
	Code    string `json:"code"`
	Message string `json:"message"`
}

func (e *apiError) Error() string {
	return fmt.Sprintf("hosted service: status %d code %q: %s", e.Status, e.Code, e.Message)
}

// IsNotFound reports whether err means "no matching row" at the hosted
// service. The service signals this either with its no-rows code or with a
// 404/406 status, depending on the request shape.
func IsNotFound(err error) bool {
	var apiErr *apiError
	if !errors.As(err, &apiErr) {
		return false
	}
	return apiErr.Code == codeNoRows ||
		apiErr.Status == http.StatusNotFound ||
		apiErr.Status == http.StatusNotAcceptable
}

// isConflict reports whether err is a uniqueness violation at the hosted
// service, optionally narrowed to a constraint named in the error detail.
func isConflict(err error, constraint string) bool {
	var apiErr *apiError
	if !errors.As(err, &apiErr) {
		return false
	}
	if apiErr.Status != http.StatusConflict && apiErr.Code != "23505" {
		return false
	}
	return constraint == "" || strings.Contains(apiErr.Message, constraint)
}

// Client is a thin HTTP client for the hosted data service.
type Client struct {
	baseURL string
	apiKey  string
	http    *http.Client
	logger  *slog.Logger
}

// NewClient builds a client for the service at baseURL. The key is sent both
// as the apikey header and as a bearer token, which is what the service
// expects for server-side callers.
func NewClient(baseURL, apiKey string, logger *slog.Logger) *Client {
	if logger == nil {
		logger = slog.Default()
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		apiKey:  apiKey,
		http:    &http.Client{Timeout: 10 * time.Second},
		logger:  logger.With(slog.String("component", "hosted_client")),
	}
}

// Get fetches a filtered list of rows into out (a pointer to a slice).
func (c *Client) Get(ctx context.Context, resource string, query url.Values, out any) error {
	return c.do(ctx, http.MethodGet, resource, query, nil, nil, out)
}

// GetOne fetches exactly one row into out. The single-object Accept header
// makes the service return the no-rows error instead of an empty list when
// nothing matches.
func (c *Client) GetOne(ctx context.Context, resource string, query url.Values, out any) error {
	h := http.Header{"Accept": {"application/vnd.pgrst.object+json"}}
	return c.do(ctx, http.MethodGet, resource, query, h, nil, out)
}

// Post inserts body as a new row and decodes the created row into out.
func (c *Client) Post(ctx context.Context, resource string, body, out any) error {
	h := http.Header{"Prefer": {"return=representation"}}
	if out != nil {
		h.Set("Accept", "application/vnd.pgrst.object+json")
	}
	return c.do(ctx, http.MethodPost, resource, nil, h, body, out)
}

// Patch updates the rows matching query and decodes the updated rows into
// out (a pointer to a slice; empty means nothing matched).
func (c *Client) Patch(ctx context.Context, resource string, query url.Values, body, out any) error {
	h := http.Header{"Prefer": {"return=representation"}}
	return c.do(ctx, http.MethodPatch, resource, query, h, body, out)
}

// Delete removes the rows matching query. Matching nothing is not an error.
func (c *Client) Delete(ctx context.Context, resource string, query url.Values) error {
	return c.do(ctx, http.MethodDelete, resource, query, nil, nil, nil)
}

func (c *Client) do(ctx context.Context, method, resource string, query url.Values, headers http.Header, body, out any) error {
	u := c.baseURL + "/" + resource
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	var reqBody io.Reader
	if body != nil {
		buf, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request body: %w", err)
		}
		reqBody = bytes.NewReader(buf)
	}

	req, err := http.NewRequestWithContext(ctx, method, u, reqBody)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("apikey", c.apiKey)
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	for k, vs := range headers {
		req.Header[k] = vs
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, resource, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		apiErr := &apiError{Status: resp.StatusCode}
		// Error bodies are JSON when the request reached the data layer;
		// anything else is kept verbatim.
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		if jsonErr := json.Unmarshal(raw, apiErr); jsonErr != nil {
			apiErr.Message = strings.TrimSpace(string(raw))
		}
		return apiErr
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode %s response: %w", resource, err)
	}
	return nil
}

// eq builds a single equality filter in the service's query syntax.
func eq(field string, v any) url.Values {
	return url.Values{field: {fmt.Sprintf("eq.%v", v)}}
}
