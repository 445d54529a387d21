// Package api is the HTTP transport to the ecowallet REST backend.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"golang.org/x/time/rate"

	"github.com/heartmarshall/ecowallet-client/internal/config"
	"github.com/heartmarshall/ecowallet-client/pkg/ctxutil"
)

// maxBodySize caps how much of a response body is read.
const maxBodySize = 4 << 20

// Request describes one call to the backend.
type Request struct {
	// Operation names the dispatcher for logs and metrics, e.g. "wallet.load".
	Operation string
	Method    string
	// Path is relative to the versioned base URL, e.g. "/user/wallet".
	Path  string
	Query url.Values
	// Token is sent as a bearer credential when non-empty.
	Token string
	// Body is JSON-encoded when non-nil.
	Body any
}

// Client sends requests to the backend. It never retries: every retry is a
// user action.
type Client struct {
	baseURL    string
	userAgent  string
	httpClient *http.Client
	limiter    *rate.Limiter
	metrics    *Metrics
	log        *slog.Logger
}

// NewClient creates a Client from APIConfig. A nil metrics value disables
// instrumentation.
func NewClient(cfg config.APIConfig, metrics *Metrics, logger *slog.Logger) *Client {
	return NewClientWithHTTP(cfg, &http.Client{Timeout: cfg.Timeout}, metrics, logger)
}

// NewClientWithHTTP creates a Client using the given *http.Client (for tests).
func NewClientWithHTTP(cfg config.APIConfig, httpClient *http.Client, metrics *Metrics, logger *slog.Logger) *Client {
	var limiter *rate.Limiter
	if cfg.RateLimit > 0 {
		burst := cfg.RateBurst
		if burst < 1 {
			burst = 1
		}
		limiter = rate.NewLimiter(rate.Limit(cfg.RateLimit), burst)
	}

	return &Client{
		baseURL:    cfg.BaseURL + cfg.VersionPrefix,
		userAgent:  cfg.UserAgent,
		httpClient: httpClient,
		limiter:    limiter,
		metrics:    metrics,
		log:        logger.With("adapter", "api"),
	}
}

// Do sends req and parses the response envelope. A non-nil error means the
// exchange itself failed (transport, encoding, malformed body); business
// errors are reported through Response.Status.
func (c *Client) Do(ctx context.Context, req Request) (*Response, error) {
	ctx, requestID := ctxutil.EnsureRequestID(ctx)

	start := time.Now()
	resp, err := c.do(ctx, req, requestID)
	c.metrics.observe(req.Operation, outcomeOf(resp, err), time.Since(start))

	if err != nil {
		c.log.WarnContext(ctx, "api request failed",
			slog.String("operation", req.Operation),
			slog.String("request_id", requestID),
			slog.String("error", err.Error()),
		)
		return nil, err
	}

	c.log.DebugContext(ctx, "api response",
		slog.String("operation", req.Operation),
		slog.String("method", req.Method),
		slog.String("path", req.Path),
		slog.String("request_id", requestID),
		slog.Int("http_status", resp.HTTPStatus),
		slog.String("status", resp.Status.String()),
		slog.Bool("bootstrap", ctxutil.IsBootstrap(ctx)),
	)
	return resp, nil
}

func (c *Client) do(ctx context.Context, req Request, requestID string) (*Response, error) {
	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return nil, fmt.Errorf("api: %s: rate limit: %w", req.Operation, err)
		}
	}

	reqURL := c.baseURL + req.Path
	if len(req.Query) > 0 {
		reqURL += "?" + req.Query.Encode()
	}

	var body io.Reader
	if req.Body != nil {
		data, err := json.Marshal(req.Body)
		if err != nil {
			return nil, fmt.Errorf("api: %s: encode body: %w", req.Operation, err)
		}
		body = bytes.NewReader(data)
	}

	httpReq, err := http.NewRequestWithContext(ctx, req.Method, reqURL, body)
	if err != nil {
		return nil, fmt.Errorf("api: %s: create request: %w", req.Operation, err)
	}
	httpReq.Header.Set("Accept", "application/json")
	httpReq.Header.Set("X-Request-ID", requestID)
	if c.userAgent != "" {
		httpReq.Header.Set("User-Agent", c.userAgent)
	}
	if req.Body != nil {
		httpReq.Header.Set("Content-Type", "application/json")
	}
	if req.Token != "" {
		httpReq.Header.Set("Authorization", "Bearer "+req.Token)
	}

	httpResp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("api: %s: request failed: %w", req.Operation, err)
	}
	defer httpResp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(httpResp.Body, maxBodySize))
	if err != nil {
		return nil, fmt.Errorf("api: %s: read body: %w", req.Operation, err)
	}

	resp, err := parseResponse(httpResp.StatusCode, raw)
	if err != nil {
		return nil, fmt.Errorf("api: %s: %w", req.Operation, err)
	}
	return resp, nil
}
