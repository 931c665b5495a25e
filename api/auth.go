package api

import (
	"context"
	"fmt"
	"net/http"

	apperrors "github.com/octabyte/skillswap-client/errors"
	"github.com/octabyte/skillswap-client/gateway"
	"github.com/octabyte/skillswap-client/models"
	"github.com/octabyte/skillswap-client/utils"
	ctxutil "github.com/octabyte/skillswap-client/utils/context"
)

const (
	authRegisterPath = "/auth/register"
	authLoginPath    = "/auth/login"
	authLogoutPath   = "/auth/logout"
	authVerifyPath   = "/auth/verify"
	authGooglePath   = "/auth/google"
)

type Auth struct {
	t Transport
}

func NewAuth(t Transport) *Auth {
	return &Auth{t: t}
}

// Login never triggers a token refresh: a 401 here means bad credentials.
func (a *Auth) Login(ctx context.Context, credentials models.Credentials) (models.AuthResponse, error) {
	if err := validateRequest(credentials); err != nil {
		return models.AuthResponse{}, err
	}

	resp, err := a.authenticate(ctx, authLoginPath, "login", credentials)
	if apperrors.StatusCode(err) == http.StatusUnauthorized {
		return resp, fmt.Errorf("%w: %w", apperrors.ErrInvalidCredentials, err)
	}
	return resp, err
}

func (a *Auth) Register(ctx context.Context, registration models.Registration) (models.AuthResponse, error) {
	if err := validateRequest(registration); err != nil {
		return models.AuthResponse{}, err
	}
	return a.authenticate(ctx, authRegisterPath, "register", registration)
}

func (a *Auth) authenticate(ctx context.Context, p, operation string, body interface{}) (models.AuthResponse, error) {
	var out models.AuthResponse

	resp, err := a.t.Do(ctxutil.WithoutRefresh(ctx), gateway.Request{
		Method:    http.MethodPost,
		Path:      p,
		Body:      body,
		Operation: operation,
	})
	if err != nil {
		return out, err
	}
	if err := utils.BytesToStruct(resp.Body, &out); err != nil {
		return out, fmt.Errorf("%w: decode %s response: %s", apperrors.ErrUnexpectedResponse, operation, err)
	}
	if !out.Success {
		return out, &apperrors.ApplicationError{Status: resp.Status, Path: p, Message: resp.Message(), Body: resp.Body}
	}
	return out, nil
}

// Logout asks the server to invalidate the current token.
func (a *Auth) Logout(ctx context.Context) error {
	_, err := a.t.Do(ctxutil.WithoutRefresh(ctx), gateway.Request{
		Method:    http.MethodPost,
		Path:      authLogoutPath,
		Operation: "logout",
	})
	return err
}

func (a *Auth) Verify(ctx context.Context) (models.User, error) {
	var user models.User
	err := call(ctx, a.t, gateway.Request{Method: http.MethodGet, Path: authVerifyPath, Operation: "verify"}, "user", &user)
	return user, err
}

// GoogleLoginURL is the absolute address that starts the Google OAuth flow.
func (a *Auth) GoogleLoginURL() string {
	return a.t.URL(authGooglePath)
}
