// Package assets talks to the asset resolver collaborator: it registers
// uploaded files, exchanges storage keys for time-limited access URLs, and
// requests deletion of orphaned file records.
package assets

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"path"
	"time"

	"libris/internal/errs"

	"github.com/google/uuid"
	"golang.org/x/time/rate"
)

const (
	// Rate limiting towards the collaborator
	rateLimit = 20 // requests per second
	rateBurst = 40

	deletionTimeout = 15 * time.Second
)

// FileRecord is the collaborator's handle for a stored file.
type FileRecord struct {
	ID  string `json:"id"`
	Key string `json:"key"`
}

// Resolver is the surface the catalog services depend on.
type Resolver interface {
	// ResolveAccessURLs exchanges N keys for N URLs in the same order.
	ResolveAccessURLs(ctx context.Context, keys []string) ([]string, error)
	// UploadFile registers raw file bytes under a generated key inside
	// folder and returns the created record.
	UploadFile(ctx context.Context, data []byte, filename, folder string) (*FileRecord, error)
	// RequestDeletion asks for best-effort deletion of file records.
	// Fire-and-forget: failures are logged, never surfaced.
	RequestDeletion(fileIDs []string)
}

// Client handles HTTP requests to the asset resolver with rate limiting and
// an optional redis cache in front of URL resolution.
type Client struct {
	baseURL     string
	httpClient  *http.Client
	rateLimiter *rate.Limiter
	cache       *URLCache
	logger      *slog.Logger
}

// NewClient creates an asset resolver client. cache may be nil.
func NewClient(baseURL string, timeout time.Duration, cache *URLCache, logger *slog.Logger) *Client {
	return &Client{
		baseURL:     baseURL,
		rateLimiter: rate.NewLimiter(rate.Limit(rateLimit), rateBurst),
		cache:       cache,
		logger:      logger,
		httpClient: &http.Client{
			Timeout: timeout,
			Transport: &http.Transport{
				MaxIdleConns:        100,
				MaxIdleConnsPerHost: 10,
				IdleConnTimeout:     90 * time.Second,
			},
		},
	}
}

type resolveRequest struct {
	Keys []string `json:"keys"`
}

type resolveResponse struct {
	URLs []string `json:"urls"`
}

func (c *Client) ResolveAccessURLs(ctx context.Context, keys []string) ([]string, error) {
	if len(keys) == 0 {
		return []string{}, nil
	}

	urls := make([]string, len(keys))
	cached := map[string]string{}
	if c.cache != nil {
		cached = c.cache.Get(ctx, keys)
	}

	// Collect cache misses, deduplicated, input order preserved.
	missing := make([]string, 0, len(keys))
	seen := make(map[string]bool, len(keys))
	for _, k := range keys {
		if _, ok := cached[k]; !ok && !seen[k] {
			missing = append(missing, k)
			seen[k] = true
		}
	}

	if len(missing) > 0 {
		resolved, err := c.resolveRemote(ctx, missing)
		if err != nil {
			return nil, err
		}
		for i, k := range missing {
			cached[k] = resolved[i]
			if c.cache != nil {
				c.cache.Set(ctx, k, resolved[i])
			}
		}
	}

	for i, k := range keys {
		urls[i] = cached[k]
	}
	return urls, nil
}

func (c *Client) resolveRemote(ctx context.Context, keys []string) ([]string, error) {
	var out resolveResponse
	if err := c.post(ctx, "/access-urls", resolveRequest{Keys: keys}, &out); err != nil {
		return nil, err
	}
	// The contract is same order, same cardinality.
	if len(out.URLs) != len(keys) {
		return nil, errs.Unavailable("asset service returned mismatched url batch")
	}
	return out.URLs, nil
}

type uploadRequest struct {
	Key  string `json:"key"`
	Data []byte `json:"data"` // base64 on the wire
}

// UploadFile stores the file under "<folder>/<uuid><ext>". On registration
// failure it requests cleanup of the possibly-written raw bytes before
// reporting the service unavailable.
func (c *Client) UploadFile(ctx context.Context, data []byte, filename, folder string) (*FileRecord, error) {
	key := fmt.Sprintf("%s/%s%s", folder, uuid.New().String(), path.Ext(filename))

	var record FileRecord
	if err := c.post(ctx, "/files", uploadRequest{Key: key, Data: data}, &record); err != nil {
		c.RequestDeletion([]string{key})
		return nil, err
	}
	return &record, nil
}

type deletionRequest struct {
	IDs []string `json:"ids"`
}

func (c *Client) RequestDeletion(fileIDs []string) {
	if len(fileIDs) == 0 {
		return
	}
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), deletionTimeout)
		defer cancel()
		if err := c.post(ctx, "/files/delete", deletionRequest{IDs: fileIDs}, nil); err != nil {
			c.logger.Warn("asset deletion request failed", "count", len(fileIDs), "error", err)
		}
	}()
}

func (c *Client) post(ctx context.Context, endpoint string, in, out any) error {
	if err := c.rateLimiter.Wait(ctx); err != nil {
		return errs.Unavailable("asset service unavailable")
	}

	body, err := json.Marshal(in)
	if err != nil {
		return fmt.Errorf("marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+endpoint, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return errs.Unavailable("asset service unavailable")
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		io.Copy(io.Discard, resp.Body)
		return errs.Unavailable("asset service unavailable")
	}

	if out == nil {
		io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return errs.Unavailable("asset service returned malformed response")
	}
	return nil
}
