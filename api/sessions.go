package api

import (
	"context"
	"net/http"

	"github.com/octabyte/skillswap-client/gateway"
	"github.com/octabyte/skillswap-client/models"
)

const sessionsPath = "/api/sessions"

// Sessions manages scheduled skill sessions.
type Sessions struct {
	t Transport
}

func NewSessions(t Transport) *Sessions {
	return &Sessions{t: t}
}

func (s *Sessions) Create(ctx context.Context, session models.NewSkillSession) (string, error) {
	if err := validateRequest(session); err != nil {
		return "", err
	}
	var id string
	err := call(ctx, s.t, gateway.Request{Method: http.MethodPost, Path: sessionsPath, Body: session}, "session_id", &id)
	return id, err
}

func (s *Sessions) ForUser(ctx context.Context, userID string) ([]models.SkillSession, error) {
	if err := requireID("user id", userID); err != nil {
		return nil, err
	}
	var sessions []models.SkillSession
	err := get(ctx, s.t, path(sessionsPath, "user", userID), nil, "sessions", &sessions)
	return sessions, err
}

func (s *Sessions) Update(ctx context.Context, sessionID string, update models.SkillSessionUpdate) error {
	if err := requireID("session id", sessionID); err != nil {
		return err
	}
	if err := validateRequest(update); err != nil {
		return err
	}
	return call(ctx, s.t, gateway.Request{Method: http.MethodPut, Path: path(sessionsPath, sessionID), Body: update}, "", nil)
}

func (s *Sessions) Delete(ctx context.Context, sessionID string) error {
	if err := requireID("session id", sessionID); err != nil {
		return err
	}
	return call(ctx, s.t, gateway.Request{Method: http.MethodDelete, Path: path(sessionsPath, sessionID)}, "", nil)
}

// Upcoming lists the caller's scheduled sessions in the coming days.
func (s *Sessions) Upcoming(ctx context.Context) ([]models.SkillSession, error) {
	var sessions []models.SkillSession
	err := get(ctx, s.t, path(sessionsPath, "upcoming"), nil, "sessions", &sessions)
	return sessions, err
}
