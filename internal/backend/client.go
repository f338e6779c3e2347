package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/time/rate"

	"github.com/msgboard/msgboard/internal/config"
	apperrors "github.com/msgboard/msgboard/internal/errors"
	"github.com/msgboard/msgboard/internal/logger"
	"github.com/msgboard/msgboard/internal/session"
)

const (
	authPrefix = "/auth/v1"
	restPrefix = "/rest/v1"

	// maxResponseBytes caps how much of a response body is read.
	maxResponseBytes = 4 << 20
)

// Options configures a Client.
type Options struct {
	URL               string
	AnonKey           string
	Version           string
	Timeout           time.Duration
	RequestsPerSecond float64
	Burst             int

	// HTTPClient defaults to a client with no timeout of its own; per-request
	// deadlines come from Timeout.
	HTTPClient *http.Client
	// Store persists the session between runs. Defaults to an in-memory store.
	Store session.Store
	// Now is the clock used for expiry checks.
	Now func() time.Time
}

// Client talks to the hosted auth + row APIs and owns the current session.
type Client struct {
	baseURL string
	anonKey string
	version string
	timeout time.Duration
	http    *http.Client
	limiter *rate.Limiter
	store   session.Store
	now     func() time.Time

	hub *hub

	mu       sync.Mutex
	session  *Session
	restored bool

	// refreshMu serializes token refreshes so concurrent callers share one.
	refreshMu sync.Mutex

	autoMu      sync.Mutex
	stopAuto    context.CancelFunc
	autoStopped chan struct{}
}

// NewClient creates a client. URL and AnonKey are required.
func NewClient(opts Options) (*Client, error) {
	base := strings.TrimRight(opts.URL, "/")
	if base == "" {
		return nil, apperrors.ConfigInvalid("service URL is required")
	}
	if _, err := url.ParseRequestURI(base); err != nil {
		return nil, apperrors.ConfigInvalid(fmt.Sprintf("invalid service URL %q", opts.URL))
	}
	if opts.AnonKey == "" {
		return nil, apperrors.ConfigInvalid("anon key is required")
	}

	c := &Client{
		baseURL: base,
		anonKey: opts.AnonKey,
		version: opts.Version,
		timeout: opts.Timeout,
		http:    opts.HTTPClient,
		store:   opts.Store,
		now:     opts.Now,
		hub:     newHub(),
	}
	if c.version == "" {
		c.version = "dev"
	}
	if c.timeout <= 0 {
		c.timeout = config.DefaultTimeout
	}
	if c.http == nil {
		c.http = &http.Client{}
	}
	if c.store == nil {
		c.store = session.NewMemoryStore(nil)
	}
	if c.now == nil {
		c.now = time.Now
	}

	rps := opts.RequestsPerSecond
	if rps <= 0 {
		rps = config.DefaultRequestsPerSecond
	}
	burst := opts.Burst
	if burst <= 0 {
		burst = config.DefaultBurst
	}
	c.limiter = rate.NewLimiter(rate.Limit(rps), burst)

	return c, nil
}

// NewClientFromConfig creates a client from validated service config.
func NewClientFromConfig(cfg config.ServiceConfig, store session.Store, version string) (*Client, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return NewClient(Options{
		URL:               cfg.URL,
		AnonKey:           cfg.AnonKey,
		Version:           version,
		Timeout:           cfg.Timeout,
		RequestsPerSecond: cfg.RequestsPerSecond,
		Burst:             cfg.Burst,
		Store:             store,
	})
}

func (c *Client) log() *slog.Logger {
	return logger.WithComponent("backend")
}

// Subscribe registers for auth events.
func (c *Client) Subscribe() *Subscription {
	return c.hub.subscribe()
}

// Close stops auto-refresh and closes every subscription.
func (c *Client) Close() {
	c.StopAutoRefresh()
	c.hub.closeAll()
}

// request describes one HTTP call to the service.
type request struct {
	method string
	path   string
	query  url.Values
	body   any
	// token is sent as the bearer; empty means the anon key.
	token  string
	prefer string
}

// do sends req and decodes a JSON response into out when out is non-nil.
// Non-2xx responses come back as *APIError; transport failures are wrapped
// as network errors.
func (c *Client) do(ctx context.Context, op string, req request, out any) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return apperrors.RequestFailed(op, req.path, err)
	}

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	target := c.baseURL + req.path
	if len(req.query) > 0 {
		target += "?" + req.query.Encode()
	}

	var body io.Reader
	if req.body != nil {
		data, err := json.Marshal(req.body)
		if err != nil {
			return apperrors.E(apperrors.Op(op), apperrors.KindInvalid, "encode request body", err)
		}
		body = bytes.NewReader(data)
	}

	httpReq, err := http.NewRequestWithContext(ctx, req.method, target, body)
	if err != nil {
		return apperrors.RequestFailed(op, req.path, err)
	}

	requestID := uuid.NewString()
	bearer := req.token
	if bearer == "" {
		bearer = c.anonKey
	}
	httpReq.Header.Set("apikey", c.anonKey)
	httpReq.Header.Set("Authorization", "Bearer "+bearer)
	httpReq.Header.Set("Accept", "application/json")
	httpReq.Header.Set("X-Client-Info", "msgboard/"+c.version)
	httpReq.Header.Set("X-Request-Id", requestID)
	if req.body != nil {
		httpReq.Header.Set("Content-Type", "application/json")
	}
	if req.prefer != "" {
		httpReq.Header.Set("Prefer", req.prefer)
	}

	log := c.log().With("op", op, "method", req.method, "path", req.path, "request_id", requestID)
	start := time.Now()

	resp, err := c.http.Do(httpReq)
	if err != nil {
		log.Warn("request failed", "error", err)
		if ctx.Err() == context.DeadlineExceeded {
			return apperrors.TimedOut(op, req.path, err)
		}
		return apperrors.RequestFailed(op, req.path, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		log.Warn("reading response failed", "status", resp.StatusCode, "error", err)
		return apperrors.RequestFailed(op, req.path, err)
	}

	log.Debug("request complete", "status", resp.StatusCode, "duration", time.Since(start))

	if resp.StatusCode >= 300 {
		apiErr := decodeAPIError(resp.StatusCode, data, requestID)
		log.Warn("service returned error", "status", resp.StatusCode, "code", apiErr.Code, "message", apiErr.Message)
		return apiErr
	}

	if out != nil && len(bytes.TrimSpace(data)) > 0 {
		if err := json.Unmarshal(data, out); err != nil {
			return apperrors.E(apperrors.Op(op), apperrors.KindData, "decode response", err)
		}
	}
	return nil
}

// wrapAuth classifies an auth API failure. API errors keep their message
// so the UI can show it verbatim.
func wrapAuth(op string, err error) error {
	if apiErr, ok := AsAPIError(err); ok {
		if apiErr.RateLimited() {
			return apperrors.RateLimited(op, apiErr)
		}
		return apperrors.AuthFailed(op, apiErr)
	}
	return err
}

func wrapData(op string, err error) error {
	if apiErr, ok := AsAPIError(err); ok {
		if apiErr.RateLimited() {
			return apperrors.RateLimited(op, apiErr)
		}
		return apperrors.DataFailed(op, MessagesTable, apiErr)
	}
	return err
}
