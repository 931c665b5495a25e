// Package callback receives the redirect that ends the Google OAuth flow and
// turns it into a session.
package callback

import (
	"context"
	"fmt"
	"net/url"
	"time"

	"github.com/octabyte/skillswap-client/enums"
	apperrors "github.com/octabyte/skillswap-client/errors"
	"github.com/octabyte/skillswap-client/models"
	"github.com/octabyte/skillswap-client/navigator"
	"github.com/octabyte/skillswap-client/otel/metrics"
)

const (
	DefaultSuccessDelay = 2 * time.Second
	DefaultFailureDelay = 3 * time.Second

	successMessage = "Successfully authenticated with Google!"
)

type Config struct {
	SuccessDelay time.Duration
	FailureDelay time.Duration
	LoginPath    string
	// DefaultPath is the landing page when no redirect was remembered.
	DefaultPath string
}

func (cfg *Config) setDefaults() {
	if cfg.SuccessDelay == 0 {
		cfg.SuccessDelay = DefaultSuccessDelay
	}
	if cfg.FailureDelay == 0 {
		cfg.FailureDelay = DefaultFailureDelay
	}
	if cfg.LoginPath == "" {
		cfg.LoginPath = enums.RouteLogin
	}
	if cfg.DefaultPath == "" {
		cfg.DefaultPath = enums.RouteDashboard
	}
}

// Sessions is the part of session.Manager the callback drives.
type Sessions interface {
	CompleteOAuth(ctx context.Context, s models.Session) (target string, user models.User, err error)
	FailOAuth(ctx context.Context, cause error)
}

// Outcome is the result of one callback: where to go next and after how long.
type Outcome struct {
	Success bool
	Target  string
	Delay   time.Duration
	User    models.User
	Err     error
	Message string
}

type Handler struct {
	cfg      Config
	sessions Sessions
	nav      navigator.Navigator
}

func NewHandler(cfg Config, sessions Sessions, nav navigator.Navigator) *Handler {
	cfg.setDefaults()
	return &Handler{cfg: cfg, sessions: sessions, nav: nav}
}

// Process interprets the callback parameters. An error parameter wins over
// everything else; missing or undecodable token and user yield a
// MalformedCallbackError. Process never panics.
func (h *Handler) Process(ctx context.Context, params url.Values) (out Outcome) {
	defer func() {
		if r := recover(); r != nil {
			out = h.Fail(ctx, &apperrors.MalformedCallbackError{
				Reason: "callback could not be processed",
				Err:    fmt.Errorf("%v", r),
			})
		}
	}()

	if reason := params.Get("error"); reason != "" {
		return h.Fail(ctx, fmt.Errorf("%w: %s", apperrors.ErrOAuthDenied, reason))
	}

	token, rawUser := params.Get("token"), params.Get("user")
	if token == "" || rawUser == "" {
		return h.Fail(ctx, &apperrors.MalformedCallbackError{Reason: "token or user parameter missing"})
	}

	user, err := decodeUser(rawUser)
	if err != nil {
		return h.Fail(ctx, &apperrors.MalformedCallbackError{Reason: "user parameter is not a JSON object", Err: err})
	}

	target, user, err := h.sessions.CompleteOAuth(ctx, models.Session{
		AccessToken:  token,
		RefreshToken: params.Get("refresh_token"),
		User:         user,
	})
	if err != nil {
		return h.Fail(ctx, err)
	}
	if target == "" {
		target = h.cfg.DefaultPath
	}

	metrics.RecordOAuthCallback(ctx, true)
	return Outcome{
		Success: true,
		Target:  target,
		Delay:   h.cfg.SuccessDelay,
		User:    user,
		Message: successMessage,
	}
}

// Fail ends the OAuth attempt: the session is left unauthenticated and the
// user is sent back to login.
func (h *Handler) Fail(ctx context.Context, err error) Outcome {
	h.sessions.FailOAuth(ctx, err)
	metrics.RecordOAuthCallback(ctx, false)
	return Outcome{
		Target:  h.cfg.LoginPath,
		Delay:   h.cfg.FailureDelay,
		Err:     err,
		Message: apperrors.Message(err),
	}
}

// Handle processes the callback and navigates once the outcome's delay has
// elapsed. Cancelling ctx skips the navigation, not the session change.
func (h *Handler) Handle(ctx context.Context, params url.Values) Outcome {
	out := h.Process(ctx, params)
	navigator.After(ctx, h.nav, out.Delay, out.Target)
	return out
}

// decodeUser accepts the user JSON either already unescaped by the query
// parser or still percent-encoded once more.
func decodeUser(raw string) (models.User, error) {
	user, err := models.NewUser([]byte(raw))
	if err == nil {
		return user, nil
	}
	unescaped, unescapeErr := url.QueryUnescape(raw)
	if unescapeErr != nil || unescaped == raw {
		return models.User{}, err
	}
	return models.NewUser([]byte(unescaped))
}
