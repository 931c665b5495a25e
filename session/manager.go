// Package session owns the client-side authentication state: who is logged
// in, persisted across process restarts, and the observers that follow it.
package session

import (
	"context"
	"sync"

	"github.com/octabyte/skillswap-client/enums"
	apperrors "github.com/octabyte/skillswap-client/errors"
	"github.com/octabyte/skillswap-client/models"
	"github.com/octabyte/skillswap-client/navigator"
	otellogger "github.com/octabyte/skillswap-client/otel/logger"
	"github.com/octabyte/skillswap-client/otel/metrics"
	"github.com/octabyte/skillswap-client/utils/logger"
	"go.uber.org/zap"
)

// AuthAPI is the remote half of the authentication flow.
type AuthAPI interface {
	Login(ctx context.Context, credentials models.Credentials) (models.AuthResponse, error)
	Register(ctx context.Context, registration models.Registration) (models.AuthResponse, error)
	Logout(ctx context.Context) error
	Verify(ctx context.Context) (models.User, error)
	GoogleLoginURL() string
}

type subscription struct {
	id       uint64
	observer Observer
}

// Manager is the single source of truth for the session. A Manager holds at
// most one session.
type Manager struct {
	vault *Vault
	api   AuthAPI
	nav   navigator.Navigator

	// transition serializes persist + state change + notification.
	transition sync.Mutex

	mu      sync.RWMutex
	state   enums.AuthState
	session models.Session

	observersMu sync.Mutex
	observers   []subscription
	nextID      uint64
}

func NewManager(vault *Vault, api AuthAPI, nav navigator.Navigator) *Manager {
	return &Manager{
		vault: vault,
		api:   api,
		nav:   nav,
		state: enums.AuthStateUnknown,
	}
}

func (m *Manager) State() enums.AuthState {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.state
}

func (m *Manager) IsAuthenticated() bool {
	return m.State() == enums.AuthStateAuthenticated
}

// User returns the cached user record while authenticated.
func (m *Manager) User() (models.User, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.state != enums.AuthStateAuthenticated {
		return models.User{}, false
	}
	return m.session.User, true
}

func (m *Manager) Session() (models.Session, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.session, m.state == enums.AuthStateAuthenticated
}

func (m *Manager) AccessToken() string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.session.AccessToken
}

func (m *Manager) RefreshToken() string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.session.RefreshToken
}

// Subscribe registers o and returns the function that removes it.
func (m *Manager) Subscribe(o Observer) (unsubscribe func()) {
	m.observersMu.Lock()
	defer m.observersMu.Unlock()

	m.nextID++
	id := m.nextID
	m.observers = append(m.observers, subscription{id: id, observer: o})

	var once sync.Once
	return func() {
		once.Do(func() {
			m.observersMu.Lock()
			defer m.observersMu.Unlock()
			for i, sub := range m.observers {
				if sub.id == id {
					m.observers = append(m.observers[:i:i], m.observers[i+1:]...)
					return
				}
			}
		})
	}
}

func (m *Manager) snapshotObservers() []Observer {
	m.observersMu.Lock()
	defer m.observersMu.Unlock()
	out := make([]Observer, 0, len(m.observers))
	for _, sub := range m.observers {
		out = append(out, sub.observer)
	}
	return out
}

// commit must be called with m.transition held.
func (m *Manager) commit(ctx context.Context, to enums.AuthState, reason enums.TransitionReason, s models.Session) {
	m.mu.Lock()
	from := m.state
	m.state = to
	m.session = s
	m.mu.Unlock()

	if from == to && to != enums.AuthStateAuthenticated {
		return
	}

	change := Change{From: from, To: to, Reason: reason, User: s.User}
	metrics.RecordSessionTransition(ctx, string(from), string(to), string(reason))
	otellogger.InfoCtx(ctx, "session transition",
		zap.String("from", string(from)),
		zap.String("to", string(to)),
		zap.String("reason", string(reason)),
		zap.String("user_id", s.User.ID()),
	)

	for _, o := range m.snapshotObservers() {
		o.SessionChanged(ctx, change)
	}
}

// Start resolves the initial unknown state: a persisted token and user are
// verified remotely, anything else ends unauthenticated. Calling Start again
// returns the current state.
func (m *Manager) Start(ctx context.Context) (enums.AuthState, error) {
	m.transition.Lock()
	if state := m.State(); state != enums.AuthStateUnknown {
		m.transition.Unlock()
		return state, nil
	}

	s, found, err := m.vault.Load(ctx)
	if err != nil && !found {
		m.transition.Unlock()
		return enums.AuthStateUnknown, apperrors.Wrapf(err, "load persisted session")
	}
	if err != nil || !found || s.User.IsZero() {
		if found {
			logger.LogWarn("discarding incomplete persisted session", zap.Error(err))
		}
		if clearErr := m.vault.ClearSession(ctx); clearErr != nil {
			logger.LogWarn("failed to clear persisted session", zap.Error(clearErr))
		}
		m.commit(ctx, enums.AuthStateUnauthenticated, enums.TransitionStartup, models.Session{})
		m.transition.Unlock()
		return enums.AuthStateUnauthenticated, nil
	}

	m.mu.Lock()
	m.session = s
	m.mu.Unlock()
	m.transition.Unlock()

	if _, err := m.verify(ctx, enums.TransitionStartup); err != nil {
		otellogger.WarnCtx(ctx, "persisted session failed verification", zap.Error(err))
	}
	return m.State(), nil
}

// Verify re-validates the current access token. Any failure ends the session
// as Logout would.
func (m *Manager) Verify(ctx context.Context) (models.User, error) {
	return m.verify(ctx, enums.TransitionVerify)
}

func (m *Manager) verify(ctx context.Context, reason enums.TransitionReason) (models.User, error) {
	if m.AccessToken() == "" {
		m.endSession(ctx, enums.TransitionVerifyFailed)
		return models.User{}, apperrors.ErrNoSession
	}

	user, err := m.api.Verify(ctx)
	if err == nil && user.IsZero() {
		err = apperrors.Wrapf(apperrors.ErrUnexpectedResponse, "verify returned no user")
	}
	if err != nil {
		m.endSession(ctx, enums.TransitionVerifyFailed)
		return models.User{}, err
	}

	m.transition.Lock()
	defer m.transition.Unlock()

	m.mu.RLock()
	s := m.session
	m.mu.RUnlock()
	if s.AccessToken == "" {
		// The session ended while verification was in flight.
		return models.User{}, apperrors.ErrNoSession
	}

	if err := m.vault.SetUser(ctx, user); err != nil {
		return models.User{}, apperrors.Wrapf(err, "persist verified user")
	}
	s.User = user
	m.commit(ctx, enums.AuthStateAuthenticated, reason, s)
	return user, nil
}

func (m *Manager) Login(ctx context.Context, credentials models.Credentials) (models.User, error) {
	resp, err := m.api.Login(ctx, credentials)
	if err != nil {
		return models.User{}, err
	}
	return m.establish(ctx, sessionFrom(resp), enums.TransitionLogin)
}

func (m *Manager) Register(ctx context.Context, registration models.Registration) (models.User, error) {
	resp, err := m.api.Register(ctx, registration)
	if err != nil {
		return models.User{}, err
	}
	return m.establish(ctx, sessionFrom(resp), enums.TransitionRegister)
}

// CompleteOAuth establishes the session delivered by the OAuth callback and
// returns the remembered redirect target, consuming it. target is empty when
// none was remembered.
func (m *Manager) CompleteOAuth(ctx context.Context, s models.Session) (target string, user models.User, err error) {
	if user, err = m.establish(ctx, s, enums.TransitionOAuth); err != nil {
		return "", models.User{}, err
	}

	target, _, err = m.vault.TakeRedirect(ctx)
	if err != nil {
		logger.LogWarn("failed to read login redirect", zap.Error(err))
		return "", user, nil
	}
	return target, user, nil
}

// FailOAuth ends any local session after the provider reported an error, so
// the callback always lands unauthenticated.
func (m *Manager) FailOAuth(ctx context.Context, cause error) {
	otellogger.WarnCtx(ctx, "oauth login failed", zap.Error(cause))
	m.clear(ctx, enums.TransitionOAuthFailed)
}

// BeginGoogleLogin remembers where to land after the OAuth round trip and
// sends the user to the provider.
func (m *Manager) BeginGoogleLogin(ctx context.Context, redirectAfter string) error {
	if redirectAfter != "" {
		if err := m.vault.RememberRedirect(ctx, redirectAfter); err != nil {
			return apperrors.Wrapf(err, "remember login redirect")
		}
	}
	m.nav.Navigate(ctx, m.api.GoogleLoginURL())
	return nil
}

func sessionFrom(resp models.AuthResponse) models.Session {
	return models.Session{User: resp.User, AccessToken: resp.Token, RefreshToken: resp.RefreshToken}
}

func (m *Manager) establish(ctx context.Context, s models.Session, reason enums.TransitionReason) (models.User, error) {
	if !s.Valid() {
		return models.User{}, apperrors.Wrapf(apperrors.ErrUnexpectedResponse, "%s response is missing token or user", reason)
	}

	m.transition.Lock()
	defer m.transition.Unlock()

	if err := m.vault.Save(ctx, s); err != nil {
		return models.User{}, apperrors.Wrapf(err, "persist session")
	}
	m.commit(ctx, enums.AuthStateAuthenticated, reason, s)
	return s.User, nil
}

// Logout invalidates the session remotely on a best-effort basis and always
// clears local state.
func (m *Manager) Logout(ctx context.Context) {
	m.endSession(ctx, enums.TransitionLogout)
}

func (m *Manager) endSession(ctx context.Context, reason enums.TransitionReason) {
	if m.AccessToken() != "" {
		if err := m.api.Logout(ctx); err != nil {
			otellogger.WarnCtx(ctx, "remote logout failed", zap.Error(err))
		}
	}
	m.clear(ctx, reason)
}

func (m *Manager) clear(ctx context.Context, reason enums.TransitionReason) {
	m.transition.Lock()
	defer m.transition.Unlock()

	if err := m.vault.Clear(ctx); err != nil {
		otellogger.ErrorCtx(ctx, "failed to clear persisted session", err)
	}
	m.commit(ctx, enums.AuthStateUnauthenticated, reason, models.Session{})
}

// Expire ends the session after the access token could not be refreshed.
// No remote call is made.
func (m *Manager) Expire(ctx context.Context) {
	m.clear(ctx, enums.TransitionRefreshFailed)
}

// UpdateAccessToken stores a refreshed access token. It refuses when the
// session ended while the refresh was in flight.
func (m *Manager) UpdateAccessToken(ctx context.Context, token, refreshToken string) error {
	m.transition.Lock()
	defer m.transition.Unlock()

	m.mu.RLock()
	s := m.session
	m.mu.RUnlock()
	if s.AccessToken == "" {
		return apperrors.ErrNoSession
	}

	if err := m.vault.SetAccessToken(ctx, token, refreshToken); err != nil {
		return apperrors.Wrapf(err, "persist refreshed token")
	}

	m.mu.Lock()
	m.session.AccessToken = token
	if refreshToken != "" {
		m.session.RefreshToken = refreshToken
	}
	m.mu.Unlock()
	return nil
}

// UpdateUser merges patch into the cached user record. No network call is
// made and the token state is untouched.
func (m *Manager) UpdateUser(ctx context.Context, patch models.UserPatch) (models.User, error) {
	return m.replaceUser(ctx, func(current models.User) (models.User, error) {
		return current.Apply(patch)
	})
}

// ReplaceUser swaps the cached user record for one returned by the API.
func (m *Manager) ReplaceUser(ctx context.Context, user models.User) (models.User, error) {
	if user.IsZero() {
		return models.User{}, apperrors.Wrapf(apperrors.ErrInvalidRequest, "empty user record")
	}
	return m.replaceUser(ctx, func(models.User) (models.User, error) { return user, nil })
}

func (m *Manager) replaceUser(ctx context.Context, next func(models.User) (models.User, error)) (models.User, error) {
	m.transition.Lock()
	defer m.transition.Unlock()

	m.mu.RLock()
	state, s := m.state, m.session
	m.mu.RUnlock()
	if state != enums.AuthStateAuthenticated || s.User.IsZero() {
		return models.User{}, apperrors.ErrNoSession
	}

	user, err := next(s.User)
	if err != nil {
		return models.User{}, err
	}
	if err := m.vault.SetUser(ctx, user); err != nil {
		return models.User{}, apperrors.Wrapf(err, "persist user")
	}

	s.User = user
	m.commit(ctx, enums.AuthStateAuthenticated, enums.TransitionProfileUpdate, s)
	return user, nil
}
