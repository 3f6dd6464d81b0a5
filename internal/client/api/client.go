package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/vidtube/vidtube/internal/client/models"
	"github.com/vidtube/vidtube/internal/client/repositories/tokens"
	"github.com/vidtube/vidtube/internal/logging"
)

const defaultTimeout = 30 * time.Second

// Options configures a Client. BaseURL and Tokens are required;
// RefreshTokenURL defaults to BaseURL + "/users/refresh-token".
type Options struct {
	BaseURL         string
	RefreshTokenURL string
	Timeout         time.Duration
	Tokens          tokens.Repository
	Logger          logging.Logger
}

// Client is the configured HTTP pipeline for the VidTube API: base URL,
// cookie jar and timeout fixed at construction, bearer credentials attached
// from the token store, one-shot refresh-and-retry on 401.
type Client struct {
	baseURL    string
	refreshURL string
	http       *http.Client
	tokens     tokens.Repository
	log        logging.Logger

	mu               sync.Mutex
	onSessionExpired func()
}

func New(opts Options) (*Client, error) {
	if opts.BaseURL == "" {
		return nil, fmt.Errorf("api: base URL is required")
	}
	if opts.Tokens == nil {
		return nil, fmt.Errorf("api: token repository is required")
	}

	jar, err := cookiejar.New(nil)
	if err != nil {
		return nil, err
	}

	baseURL := strings.TrimRight(opts.BaseURL, "/")

	refreshURL := opts.RefreshTokenURL
	if refreshURL == "" {
		refreshURL = baseURL + "/users/refresh-token"
	}

	timeout := opts.Timeout
	if timeout == 0 {
		timeout = defaultTimeout
	}

	log := opts.Logger
	if log == nil {
		log = logging.NewSlogLogger(slog.New(slog.DiscardHandler))
	}

	return &Client{
		baseURL:    baseURL,
		refreshURL: refreshURL,
		http:       &http.Client{Timeout: timeout, Jar: jar},
		tokens:     opts.Tokens,
		log:        log,
	}, nil
}

// OnSessionExpired registers the handler invoked when a refresh exchange
// fails and both tokens are cleared: the application-level analog of the
// forced redirect to the login screen.
func (c *Client) OnSessionExpired(fn func()) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.onSessionExpired = fn
}

func (c *Client) sessionExpired() {
	c.mu.Lock()
	fn := c.onSessionExpired
	c.mu.Unlock()
	if fn != nil {
		fn()
	}
}

// request is one fully built outgoing call. The body is kept as bytes so a
// retried request is re-issued from scratch rather than from a drained reader.
type request struct {
	method      string
	url         string
	body        []byte
	contentType string
	endpoint    string
}

func (c *Client) buildURL(path string, query url.Values) string {
	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}
	return u
}

// do executes req. attempt is the explicit one-shot retry counter: 0 for the
// first issue, 1 for the single post-refresh retry. Only 401 responses on
// attempt 0 enter the recovery path; everything else propagates unchanged.
func (c *Client) do(ctx context.Context, req request, attempt int) (*http.Response, error) {
	httpReq, err := http.NewRequestWithContext(ctx, req.method, req.url, bytes.NewReader(req.body))
	if err != nil {
		return nil, err
	}

	httpReq.Header.Set("Accept", "application/json")
	httpReq.Header.Set("X-Request-Id", uuid.NewString())
	if req.contentType != "" {
		httpReq.Header.Set("Content-Type", req.contentType)
	}

	pair, err := c.tokens.Get(ctx)
	if err != nil {
		return nil, err
	}
	if pair != nil && pair.AccessToken != "" {
		httpReq.Header.Set("Authorization", "Bearer "+pair.AccessToken)
	}

	c.log.Debug(ctx, "api request", "method", req.method, "endpoint", req.endpoint, "attempt", attempt)

	resp, err := c.http.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}

	if resp.StatusCode < http.StatusBadRequest {
		return resp, nil
	}

	body, _ := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	_ = resp.Body.Close()
	apiErr := &Error{StatusCode: resp.StatusCode, Message: parseErrorMessage(resp.StatusCode, body)}

	if resp.StatusCode != http.StatusUnauthorized || attempt > 0 {
		return nil, apiErr
	}

	pair, err = c.tokens.Get(ctx)
	if err != nil || pair == nil {
		// nothing to refresh with, the original 401 is terminal
		return nil, apiErr
	}

	if err := c.refresh(ctx, *pair); err != nil {
		if clearErr := c.tokens.Clear(ctx); clearErr != nil {
			c.log.Error(ctx, "clearing credentials", "err", clearErr)
		}
		c.log.Warn(ctx, "token refresh failed, session reset", "endpoint", req.endpoint, "err", err)
		c.sessionExpired()
		return nil, err
	}

	return c.do(ctx, req, attempt+1)
}

type refreshRequest struct {
	RefreshToken string `json:"refreshToken"`
}

type refreshResponse struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken,omitempty"`
}

// refresh exchanges pair's refresh token at the refresh endpoint and stores
// the resulting credentials. The refresh token is kept unless the server
// rotates it. The call bypasses do() so it can never recurse into another
// refresh.
func (c *Client) refresh(ctx context.Context, pair models.TokenPair) error {
	payload, err := json.Marshal(refreshRequest{RefreshToken: pair.RefreshToken})
	if err != nil {
		return err
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.refreshURL, bytes.NewReader(payload))
	if err != nil {
		return err
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(httpReq)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusBadRequest {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
		return &Error{StatusCode: resp.StatusCode, Message: parseErrorMessage(resp.StatusCode, body)}
	}

	var out refreshResponse
	if err := decodeEnvelope("users/refresh-token", resp.Body, &out); err != nil {
		return err
	}
	if out.AccessToken == "" {
		return &DecodeError{Endpoint: "users/refresh-token", Err: errMissingData}
	}

	next := models.TokenPair{AccessToken: out.AccessToken, RefreshToken: pair.RefreshToken}
	if out.RefreshToken != "" {
		next.RefreshToken = out.RefreshToken
	}
	return c.tokens.Set(ctx, next)
}

// Refresh performs one explicit refresh exchange with the stored refresh
// token. Session bootstrap uses it for its own refresh-and-retry step.
// Unlike the in-pipeline recovery, a failure here does not clear the store;
// the caller owns that policy.
func (c *Client) Refresh(ctx context.Context) error {
	pair, err := c.tokens.Get(ctx)
	if err != nil {
		return err
	}
	if pair == nil {
		return ErrNoRefreshToken
	}
	return c.refresh(ctx, *pair)
}

func (c *Client) exchange(ctx context.Context, req request, out any) error {
	resp, err := c.do(ctx, req, 0)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	return decodeEnvelope(req.endpoint, resp.Body, out)
}

// Get issues a GET request and decodes the envelope's data into T.
func Get[T any](ctx context.Context, c *Client, path string, query url.Values) (T, error) {
	var out T
	req := request{
		method:   http.MethodGet,
		url:      c.buildURL(path, query),
		endpoint: strings.TrimPrefix(path, "/"),
	}
	err := c.exchange(ctx, req, &out)
	return out, err
}

// Post issues a POST request with a JSON payload (nil for an empty body).
func Post[T any](ctx context.Context, c *Client, path string, payload any) (T, error) {
	return sendJSON[T](ctx, c, http.MethodPost, path, payload)
}

// Patch issues a PATCH request with a JSON payload.
func Patch[T any](ctx context.Context, c *Client, path string, payload any) (T, error) {
	return sendJSON[T](ctx, c, http.MethodPatch, path, payload)
}

// Delete issues a DELETE request.
func Delete[T any](ctx context.Context, c *Client, path string) (T, error) {
	var out T
	req := request{
		method:   http.MethodDelete,
		url:      c.buildURL(path, nil),
		endpoint: strings.TrimPrefix(path, "/"),
	}
	err := c.exchange(ctx, req, &out)
	return out, err
}

// PostForm issues a POST request with a multipart body.
func PostForm[T any](ctx context.Context, c *Client, path string, form *Form) (T, error) {
	return sendForm[T](ctx, c, http.MethodPost, path, form)
}

// PatchForm issues a PATCH request with a multipart body.
func PatchForm[T any](ctx context.Context, c *Client, path string, form *Form) (T, error) {
	return sendForm[T](ctx, c, http.MethodPatch, path, form)
}

func sendJSON[T any](ctx context.Context, c *Client, method, path string, payload any) (T, error) {
	var out T

	var body []byte
	contentType := ""
	if payload != nil {
		encoded, err := json.Marshal(payload)
		if err != nil {
			return out, err
		}
		body = encoded
		contentType = "application/json"
	}

	req := request{
		method:      method,
		url:         c.buildURL(path, nil),
		body:        body,
		contentType: contentType,
		endpoint:    strings.TrimPrefix(path, "/"),
	}
	err := c.exchange(ctx, req, &out)
	return out, err
}

func sendForm[T any](ctx context.Context, c *Client, method, path string, form *Form) (T, error) {
	var out T

	body, contentType, err := form.encode()
	if err != nil {
		return out, err
	}

	req := request{
		method:      method,
		url:         c.buildURL(path, nil),
		body:        body,
		contentType: contentType,
		endpoint:    strings.TrimPrefix(path, "/"),
	}
	err = c.exchange(ctx, req, &out)
	return out, err
}
