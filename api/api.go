// Package api holds typed services for the SkillSwap REST resources. Every
// call goes through the gateway, so credentials and refresh are handled
// there.
package api

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/go-playground/validator/v10"
	apperrors "github.com/octabyte/skillswap-client/errors"
	"github.com/octabyte/skillswap-client/gateway"
)

// Transport is the subset of *gateway.Client the services need.
type Transport interface {
	Do(ctx context.Context, req gateway.Request) (*gateway.Response, error)
	URL(path string) string
}

var validate = validator.New(validator.WithRequiredStructEnabled())

func validateRequest(payload interface{}) error {
	if err := validate.Struct(payload); err != nil {
		return fmt.Errorf("%w: %s", apperrors.ErrInvalidRequest, err)
	}
	return nil
}

func requireID(name, id string) error {
	if strings.TrimSpace(id) == "" {
		return fmt.Errorf("%w: %s is required", apperrors.ErrInvalidRequest, name)
	}
	return nil
}

// path joins escaped segments onto a base path.
func path(base string, segments ...string) string {
	var b strings.Builder
	b.WriteString(base)
	for _, s := range segments {
		b.WriteByte('/')
		b.WriteString(url.PathEscape(s))
	}
	return b.String()
}

// decode checks the {success, ...} envelope and unmarshals field into out.
// Pass "@this" to decode the whole body.
func decode(resp *gateway.Response, field string, out interface{}) error {
	if ok := resp.Get("success"); ok.Exists() && !ok.Bool() {
		return &apperrors.ApplicationError{Status: resp.Status, Message: resp.Message(), Body: resp.Body}
	}
	if out == nil {
		return nil
	}
	if err := resp.Decode(field, out); err != nil {
		return fmt.Errorf("%w: %s", apperrors.ErrUnexpectedResponse, err)
	}
	return nil
}

func call(ctx context.Context, t Transport, req gateway.Request, field string, out interface{}) error {
	resp, err := t.Do(ctx, req)
	if err != nil {
		return err
	}
	return decode(resp, field, out)
}

func get(ctx context.Context, t Transport, p string, query url.Values, field string, out interface{}) error {
	return call(ctx, t, gateway.Request{Method: http.MethodGet, Path: p, Query: query}, field, out)
}
