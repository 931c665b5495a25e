package client

import (
	"context"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"sync"
	"testing"

	"github.com/caarlos0/env/v10"
	"github.com/goccy/go-json"
	"github.com/octabyte/skillswap-client/config"
	"github.com/octabyte/skillswap-client/enums"
	apperrors "github.com/octabyte/skillswap-client/errors"
	"github.com/octabyte/skillswap-client/models"
	"github.com/octabyte/skillswap-client/navigator"
	"github.com/octabyte/skillswap-client/queue"
	"github.com/octabyte/skillswap-client/session"
	"github.com/octabyte/skillswap-client/storage"
	"github.com/stretchr/testify/suite"
)

type memoryPublisher struct {
	mu     sync.Mutex
	bodies [][]byte
	closed bool
}

func (p *memoryPublisher) Publish(_ context.Context, body []byte) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.bodies = append(p.bodies, body)
	return nil
}

func (p *memoryPublisher) Close() error {
	p.closed = true
	return nil
}

func (p *memoryPublisher) events() []queue.SessionEvent {
	p.mu.Lock()
	defer p.mu.Unlock()
	events := make([]queue.SessionEvent, 0, len(p.bodies))
	for _, body := range p.bodies {
		var event queue.SessionEvent
		if err := json.Unmarshal(body, &event); err == nil {
			events = append(events, event)
		}
	}
	return events
}

type ClientTestSuite struct {
	suite.Suite
	ctx       context.Context
	server    *httptest.Server
	validTok  string
	cfg       *config.Config
	nav       *navigator.Recorder
	publisher *memoryPublisher
}

func (s *ClientTestSuite) SetupTest() {
	s.ctx = context.Background()
	s.validTok = "access-1"

	mux := http.NewServeMux()
	mux.HandleFunc("/auth/login", func(w http.ResponseWriter, r *http.Request) {
		var creds models.Credentials
		_ = json.NewDecoder(r.Body).Decode(&creds)
		if creds.Password != "secret" {
			writeJSON(w, http.StatusUnauthorized, map[string]interface{}{"success": false, "error": "Invalid credentials"})
			return
		}
		writeJSON(w, http.StatusOK, map[string]interface{}{
			"success": true,
			"token":   s.validTok,
			"user":    map[string]interface{}{"id": "u1", "name": "Ada", "email": creds.Email},
		})
	})
	mux.HandleFunc("/auth/verify", func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer "+s.validTok {
			writeJSON(w, http.StatusUnauthorized, map[string]interface{}{"msg": "Token has expired"})
			return
		}
		writeJSON(w, http.StatusOK, map[string]interface{}{"success": true, "user": map[string]interface{}{"id": "u1", "name": "Ada"}})
	})
	mux.HandleFunc("/auth/logout", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]interface{}{"success": true})
	})
	mux.HandleFunc("/api/users", func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer "+s.validTok {
			writeJSON(w, http.StatusUnauthorized, map[string]interface{}{"msg": "Token has expired"})
			return
		}
		writeJSON(w, http.StatusOK, map[string]interface{}{"success": true, "users": []interface{}{map[string]interface{}{"_id": "u2"}}})
	})
	s.server = httptest.NewServer(mux)

	cfg, err := config.Parse(env.Options{Environment: map[string]string{
		"SKILLSWAP_API_BASE_URL":    s.server.URL,
		"SKILLSWAP_STORAGE_BACKEND": "file",
		"SKILLSWAP_STORAGE_PATH":    filepath.Join(s.T().TempDir(), "session.json"),
	}})
	s.Require().NoError(err)
	s.cfg = cfg
	s.nav = &navigator.Recorder{}
	s.publisher = &memoryPublisher{}
}

func (s *ClientTestSuite) TearDownTest() {
	s.server.Close()
}

func TestClientTestSuite(t *testing.T) {
	suite.Run(t, new(ClientTestSuite))
}

func writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

func (s *ClientTestSuite) newClient(opts ...Option) *Client {
	opts = append([]Option{WithNavigator(s.nav), WithPublisher(s.publisher)}, opts...)
	c, err := New(s.ctx, s.cfg, opts...)
	s.Require().NoError(err)
	s.T().Cleanup(func() { _ = c.Close() })
	return c
}

func (s *ClientTestSuite) TestSessionSurvivesRestart() {
	first := s.newClient()
	state, err := first.Start(s.ctx)
	s.Require().NoError(err)
	s.Equal(enums.AuthStateUnauthenticated, state)

	user, err := first.Session.Login(s.ctx, models.Credentials{Email: "ada@example.com", Password: "secret"})
	s.Require().NoError(err)
	s.Equal("u1", user.ID())

	second := s.newClient()
	state, err = second.Start(s.ctx)
	s.Require().NoError(err)
	s.Equal(enums.AuthStateAuthenticated, state)
	s.Equal(s.validTok, second.Session.AccessToken())

	users, err := second.Users.List(s.ctx, models.UserQuery{})
	s.Require().NoError(err)
	s.Len(users, 1)
}

func (s *ClientTestSuite) TestExpiredTokenSendsUserToLogin() {
	c := s.newClient()
	_, err := c.Start(s.ctx)
	s.Require().NoError(err)
	_, err = c.Session.Login(s.ctx, models.Credentials{Email: "ada@example.com", Password: "secret"})
	s.Require().NoError(err)

	s.validTok = "access-2"

	_, err = c.Users.List(s.ctx, models.UserQuery{})

	var authErr *apperrors.AuthorizationError
	s.ErrorAs(err, &authErr)
	s.Equal(enums.AuthStateUnauthenticated, c.Session.State())
	s.Equal(enums.RouteLogin, s.nav.Last())

	reasons := []enums.TransitionReason{}
	for _, event := range s.publisher.events() {
		reasons = append(reasons, event.Reason)
	}
	s.Equal([]enums.TransitionReason{enums.TransitionStartup, enums.TransitionLogin, enums.TransitionRefreshFailed}, reasons)
}

func (s *ClientTestSuite) TestInvalidCredentials() {
	c := s.newClient(WithStore(storage.NewMemory()))

	_, err := c.Session.Login(s.ctx, models.Credentials{Email: "ada@example.com", Password: "wrong"})

	s.ErrorIs(err, apperrors.ErrInvalidCredentials)
	s.False(c.Session.IsAuthenticated())
}

func (s *ClientTestSuite) TestObserversAndClose() {
	var changes []session.Change
	c := s.newClient(WithObserver(session.ObserverFunc(func(_ context.Context, change session.Change) {
		changes = append(changes, change)
	})))

	_, err := c.Session.Login(s.ctx, models.Credentials{Email: "ada@example.com", Password: "secret"})
	s.Require().NoError(err)
	c.Session.Logout(s.ctx)

	s.Require().Len(changes, 2)
	s.Equal(enums.AuthStateAuthenticated, changes[0].To)
	s.Equal(enums.AuthStateUnauthenticated, changes[1].To)

	s.NoError(c.Close())
	s.True(s.publisher.closed)
}

func (s *ClientTestSuite) TestCallbackServerUsesConfig() {
	c := s.newClient()

	server := c.CallbackServer()

	s.Equal("http://127.0.0.1:8765/auth/google/callback", server.CallbackURL())
}

func (s *ClientTestSuite) TestRejectsInvalidConfig() {
	cfg := *s.cfg
	cfg.Storage.Backend = "sqlite"

	_, err := New(s.ctx, &cfg)
	s.Error(err)
}
