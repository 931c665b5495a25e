// Package gateway is the HTTP client for the SkillSwap API. It attaches the
// session's access token to every call and recovers a single 401 per
// logical request by refreshing that token.
package gateway

import (
	"bytes"
	"context"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/goccy/go-json"
	apperrors "github.com/octabyte/skillswap-client/errors"
	"github.com/octabyte/skillswap-client/models"
	"github.com/octabyte/skillswap-client/navigator"
	"github.com/octabyte/skillswap-client/otel"
	otellogger "github.com/octabyte/skillswap-client/otel/logger"
	"github.com/octabyte/skillswap-client/otel/metrics"
	"github.com/octabyte/skillswap-client/utils"
	ctxutil "github.com/octabyte/skillswap-client/utils/context"
	"go.uber.org/zap"
	"golang.org/x/net/publicsuffix"
)

const (
	refreshPath     = "/auth/refresh"
	requestIDHeader = "X-Request-ID"
	clientName      = "skillswap-api"
)

// Credentials is the session state the gateway reads and, on refresh,
// writes back.
type Credentials interface {
	AccessToken() string
	RefreshToken() string
	UpdateAccessToken(ctx context.Context, token, refreshToken string) error
	// Expire clears the session after an unrecoverable 401.
	Expire(ctx context.Context)
}

type Client struct {
	cfg  Config
	http *resty.Client
	nav  navigator.Navigator

	mu    sync.RWMutex
	creds Credentials
}

func New(cfg Config, nav navigator.Navigator) (*Client, error) {
	cfg.setDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, apperrors.Wrapf(err, "invalid gateway configuration")
	}

	jar, err := cookiejar.New(&cookiejar.Options{PublicSuffixList: publicsuffix.List})
	if err != nil {
		return nil, apperrors.Wrapf(err, "create cookie jar")
	}

	c := &Client{cfg: cfg, nav: nav}
	c.http = otel.NewTracedRestyClient(strings.TrimRight(cfg.BaseURL, "/")).
		SetCookieJar(jar).
		SetHeader("Accept", "application/json").
		SetHeader("User-Agent", cfg.UserAgent).
		SetJSONMarshaler(json.Marshal).
		SetJSONUnmarshaler(json.Unmarshal).
		SetLogger(zap.S().Named("resty")).
		OnBeforeRequest(c.authorize)
	if cfg.Timeout > 0 {
		c.http.SetTimeout(cfg.Timeout)
	}
	return c, nil
}

// UseCredentials binds the session whose token is attached to requests.
func (c *Client) UseCredentials(creds Credentials) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.creds = creds
}

func (c *Client) credentials() Credentials {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.creds
}

func (c *Client) BaseURL() string {
	return c.http.BaseURL
}

// URL resolves an API path against the base URL.
func (c *Client) URL(path string) string {
	return c.http.BaseURL + path
}

// authorize attaches the access token unless the request already carries a
// credential.
func (c *Client) authorize(_ *resty.Client, req *resty.Request) error {
	if id := ctxutil.GetRequestIDFromContext(req.Context()); id != "" {
		req.SetHeader(requestIDHeader, id)
	}
	if req.Token != "" || req.Header.Get("Authorization") != "" {
		return nil
	}
	if creds := c.credentials(); creds != nil {
		if token := creds.AccessToken(); token != "" {
			req.SetAuthToken(token)
		}
	}
	return nil
}

func (c *Client) Get(ctx context.Context, path string, query url.Values) (*Response, error) {
	return c.Do(ctx, Request{Method: http.MethodGet, Path: path, Query: query})
}

func (c *Client) Post(ctx context.Context, path string, body interface{}) (*Response, error) {
	return c.Do(ctx, Request{Method: http.MethodPost, Path: path, Body: body})
}

func (c *Client) Put(ctx context.Context, path string, body interface{}) (*Response, error) {
	return c.Do(ctx, Request{Method: http.MethodPut, Path: path, Body: body})
}

func (c *Client) Delete(ctx context.Context, path string) (*Response, error) {
	return c.Do(ctx, Request{Method: http.MethodDelete, Path: path})
}

// Do sends req. A 401 on a request that is not itself a retry triggers at
// most one refresh and one replay; when that is impossible the session is
// expired, the user is sent to the login page and an AuthorizationError
// wrapping the original failure is returned.
func (c *Client) Do(ctx context.Context, req Request) (*Response, error) {
	ctx, _ = ctxutil.EnsureRequestID(ctx)

	resp, err := c.send(ctx, req, "")
	if err != nil {
		return nil, err
	}
	if resp.Status != http.StatusUnauthorized || ctxutil.IsRefreshDisabled(ctx) {
		return classify(req, resp)
	}

	original := applicationError(req, resp)
	if ctxutil.IsRetryAttempt(ctx) {
		return nil, c.unauthorized(ctx, req, original)
	}

	creds := c.credentials()
	if creds == nil || creds.RefreshToken() == "" {
		metrics.RecordTokenRefresh(ctx, metrics.RefreshSkipped)
		return nil, c.unauthorized(ctx, req, original)
	}

	refreshed, err := c.refresh(ctx, creds.RefreshToken())
	if err == nil {
		err = creds.UpdateAccessToken(ctx, refreshed.Token, refreshed.RefreshToken)
	}
	if err != nil {
		metrics.RecordTokenRefresh(ctx, metrics.RefreshFailed)
		otellogger.WarnCtx(ctx, "access token refresh failed", zap.String("path", req.Path), zap.Error(err))
		return nil, c.unauthorized(ctx, req, original)
	}
	metrics.RecordTokenRefresh(ctx, metrics.RefreshSucceeded)

	retry, err := c.send(ctxutil.WithRetryAttempt(ctx), req, refreshed.Token)
	if err != nil {
		return nil, err
	}
	if retry.Status == http.StatusUnauthorized {
		return nil, c.unauthorized(ctx, req, applicationError(req, retry))
	}
	return classify(req, retry)
}

func (c *Client) unauthorized(ctx context.Context, req Request, original *apperrors.ApplicationError) error {
	if creds := c.credentials(); creds != nil {
		creds.Expire(ctx)
	}
	c.nav.Navigate(ctx, c.cfg.LoginPath)
	return &apperrors.AuthorizationError{Path: req.Path, Message: original.Message, Err: original}
}

// refresh mints a new access token. The refresh token travels both as the
// bearer credential and in the body.
func (c *Client) refresh(ctx context.Context, refreshToken string) (models.RefreshResponse, error) {
	var out models.RefreshResponse

	ctx, finish := otel.StartHTTPSpan(ctx, c.cfg.ServiceName, clientName, "refresh", http.MethodPost, c.http.BaseURL, refreshPath)
	resp, err := c.http.R().
		SetContext(ctx).
		SetHeader("Authorization", utils.BearerHeader(refreshToken)).
		SetBody(models.RefreshRequest{RefreshToken: refreshToken}).
		Post(refreshPath)
	if err != nil {
		finish(0, err)
		return out, &apperrors.NetworkError{Method: http.MethodPost, Path: refreshPath, Err: err}
	}
	finish(resp.StatusCode(), nil)

	if !resp.IsSuccess() {
		return out, &apperrors.ApplicationError{
			Status:  resp.StatusCode(),
			Path:    refreshPath,
			Message: utils.FirstString(resp.Body(), "error", "message", "msg"),
			Body:    resp.Body(),
		}
	}
	if err := json.Unmarshal(resp.Body(), &out); err != nil {
		return out, apperrors.Wrapf(apperrors.ErrUnexpectedResponse, "decode refresh response: %v", err)
	}
	if out.Token == "" {
		return out, apperrors.Wrapf(apperrors.ErrUnexpectedResponse, "refresh response has no token")
	}
	return out, nil
}

func (c *Client) send(ctx context.Context, req Request, token string) (*Response, error) {
	retried := ctxutil.IsRetryAttempt(ctx)
	ctx, finish := otel.StartHTTPSpan(ctx, c.cfg.ServiceName, clientName, req.operation(), req.Method, c.http.BaseURL, req.Path)

	r := c.http.R().SetContext(ctx)
	if token != "" {
		r.SetAuthToken(token)
	}
	if len(req.Query) > 0 {
		r.SetQueryParamsFromValues(req.Query)
	}
	if len(req.Files) > 0 {
		for _, f := range req.Files {
			r.SetMultipartField(f.Param, f.Name, f.ContentType, bytes.NewReader(f.Content))
		}
		r.SetFormData(req.Form)
	} else if req.Body != nil {
		r.SetHeader("Content-Type", "application/json").SetBody(req.Body)
	} else if len(req.Form) > 0 {
		r.SetFormData(req.Form)
	}

	metrics.IncrementInFlightRequests(ctx, req.Method, req.Path)
	start := time.Now()
	resp, err := r.Execute(req.Method, req.Path)
	elapsed := time.Since(start)
	metrics.DecrementInFlightRequests(ctx, req.Method, req.Path)

	if err != nil {
		finish(0, err)
		metrics.RecordAPIRequest(ctx, req.Method, req.Path, 0, elapsed, retried)
		otellogger.WarnCtx(ctx, "api request failed", zap.String("method", req.Method), zap.String("path", req.Path), zap.Error(err))
		return nil, &apperrors.NetworkError{Method: req.Method, Path: req.Path, Err: err}
	}

	finish(resp.StatusCode(), nil)
	metrics.RecordAPIRequest(ctx, req.Method, req.Path, resp.StatusCode(), elapsed, retried)
	otellogger.DebugCtx(ctx, "api request",
		zap.String("method", req.Method),
		zap.String("path", req.Path),
		zap.Int("status", resp.StatusCode()),
		zap.Duration("elapsed", elapsed),
		zap.Bool("retry", retried),
		zap.String("request_id", ctxutil.GetRequestIDFromContext(ctx)),
	)

	return &Response{Status: resp.StatusCode(), Header: resp.Header(), Body: resp.Body()}, nil
}

func classify(req Request, resp *Response) (*Response, error) {
	if resp.Status >= 200 && resp.Status < 300 {
		return resp, nil
	}
	return nil, applicationError(req, resp)
}

func applicationError(req Request, resp *Response) *apperrors.ApplicationError {
	return &apperrors.ApplicationError{
		Status:  resp.Status,
		Path:    req.Path,
		Message: utils.FirstString(resp.Body, "error", "message", "msg"),
		Body:    resp.Body,
	}
}
