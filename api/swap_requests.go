package api

import (
	"context"
	"net/http"

	"github.com/octabyte/skillswap-client/gateway"
	"github.com/octabyte/skillswap-client/models"
)

const swapRequestsPath = "/api/swap-requests"

type SwapRequests struct {
	t Transport
}

func NewSwapRequests(t Transport) *SwapRequests {
	return &SwapRequests{t: t}
}

// Create sends a swap request and returns its id.
func (s *SwapRequests) Create(ctx context.Context, req models.NewSwapRequest) (string, error) {
	if err := validateRequest(req); err != nil {
		return "", err
	}
	var id string
	err := call(ctx, s.t, gateway.Request{Method: http.MethodPost, Path: swapRequestsPath, Body: req}, "request_id", &id)
	return id, err
}

func (s *SwapRequests) Sent(ctx context.Context, userID string) ([]models.SwapRequest, error) {
	return s.list(ctx, "sent", userID)
}

func (s *SwapRequests) Received(ctx context.Context, userID string) ([]models.SwapRequest, error) {
	return s.list(ctx, "received", userID)
}

func (s *SwapRequests) list(ctx context.Context, direction, userID string) ([]models.SwapRequest, error) {
	if err := requireID("user id", userID); err != nil {
		return nil, err
	}
	var requests []models.SwapRequest
	err := get(ctx, s.t, path(swapRequestsPath, direction, userID), nil, "requests", &requests)
	return requests, err
}

func (s *SwapRequests) Accept(ctx context.Context, requestID string) error {
	return s.respond(ctx, requestID, "accept")
}

func (s *SwapRequests) Reject(ctx context.Context, requestID string) error {
	return s.respond(ctx, requestID, "reject")
}

func (s *SwapRequests) respond(ctx context.Context, requestID, action string) error {
	if err := requireID("request id", requestID); err != nil {
		return err
	}
	return call(ctx, s.t, gateway.Request{Method: http.MethodPut, Path: path(swapRequestsPath, requestID, action)}, "", nil)
}

func (s *SwapRequests) Delete(ctx context.Context, requestID string) error {
	if err := requireID("request id", requestID); err != nil {
		return err
	}
	return call(ctx, s.t, gateway.Request{Method: http.MethodDelete, Path: path(swapRequestsPath, requestID)}, "", nil)
}
