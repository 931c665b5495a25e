package api

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/octabyte/skillswap-client/enums"
	apperrors "github.com/octabyte/skillswap-client/errors"
	"github.com/octabyte/skillswap-client/gateway"
	"github.com/octabyte/skillswap-client/models"
	"github.com/octabyte/skillswap-client/navigator"
	"github.com/stretchr/testify/suite"
)

type recorded struct {
	Method string
	Path   string
	Query  string
	Body   string
	Header http.Header
}

type APITestSuite struct {
	suite.Suite
	ctx      context.Context
	server   *httptest.Server
	mu       sync.Mutex
	calls    []recorded
	routes   map[string]func(w http.ResponseWriter, r *http.Request)
	client   *gateway.Client
	auth     *Auth
	users    *Users
	swaps    *SwapRequests
	sessions *Sessions
	badges   *Badges
	notifs   *Notifications
	skills   *Skills
}

func (s *APITestSuite) SetupTest() {
	s.ctx = context.Background()
	s.calls = nil
	s.routes = map[string]func(w http.ResponseWriter, r *http.Request){}
	s.server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		s.mu.Lock()
		s.calls = append(s.calls, recorded{
			Method: r.Method,
			Path:   r.URL.EscapedPath(),
			Query:  r.URL.RawQuery,
			Body:   string(body),
			Header: r.Header.Clone(),
		})
		handler, ok := s.routes[r.Method+" "+r.URL.EscapedPath()]
		s.mu.Unlock()

		w.Header().Set("Content-Type", "application/json")
		if !ok {
			w.WriteHeader(http.StatusNotFound)
			_, _ = w.Write([]byte(`{"error":"Not found"}`))
			return
		}
		handler(w, r)
	}))

	client, err := gateway.New(gateway.Config{BaseURL: s.server.URL}, &navigator.Recorder{})
	s.Require().NoError(err)
	s.client = client
	s.auth = NewAuth(client)
	s.users = NewUsers(client)
	s.swaps = NewSwapRequests(client)
	s.sessions = NewSessions(client)
	s.badges = NewBadges(client)
	s.notifs = NewNotifications(client)
	s.skills = NewSkills(client)
}

func (s *APITestSuite) TearDownTest() {
	s.server.Close()
}

func (s *APITestSuite) respond(route string, status int, body string) {
	s.routes[route] = func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}
}

func (s *APITestSuite) lastCall() recorded {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Require().NotEmpty(s.calls)
	return s.calls[len(s.calls)-1]
}

func (s *APITestSuite) TestLogin() {
	s.respond("POST /auth/login", http.StatusOK,
		`{"success":true,"message":"Login successful","token":"jwt-1","user":{"id":"u1","email":"ada@example.com"}}`)

	resp, err := s.auth.Login(s.ctx, models.Credentials{Email: "ada@example.com", Password: "pw"})
	s.Require().NoError(err)
	s.Equal("jwt-1", resp.Token)
	s.Equal("u1", resp.User.ID())
	s.JSONEq(`{"email":"ada@example.com","password":"pw"}`, s.lastCall().Body)
}

func (s *APITestSuite) TestLoginInvalidCredentials() {
	s.respond("POST /auth/login", http.StatusUnauthorized, `{"error":"Invalid email or password"}`)

	_, err := s.auth.Login(s.ctx, models.Credentials{Email: "ada@example.com", Password: "bad"})
	s.ErrorIs(err, apperrors.ErrInvalidCredentials)
	s.Equal("Invalid email or password", apperrors.Message(err))
	s.Len(s.calls, 1, "login must not trigger a refresh")
}

func (s *APITestSuite) TestLoginValidatesBeforeSending() {
	_, err := s.auth.Login(s.ctx, models.Credentials{Email: "not-an-email", Password: "pw"})
	s.ErrorIs(err, apperrors.ErrInvalidRequest)
	s.Empty(s.calls)
}

func (s *APITestSuite) TestRegisterConflict() {
	s.respond("POST /auth/register", http.StatusBadRequest, `{"error":"User already exists"}`)

	_, err := s.auth.Register(s.ctx, models.Registration{Name: "Ada", Email: "ada@example.com", Password: "secret1"})
	var appErr *apperrors.ApplicationError
	s.Require().ErrorAs(err, &appErr)
	s.Equal("User already exists", appErr.Message)
	s.NotErrorIs(err, apperrors.ErrInvalidCredentials)
}

func (s *APITestSuite) TestVerifyAndLogout() {
	s.respond("GET /auth/verify", http.StatusOK, `{"success":true,"user":{"id":"u1","badge_level":"Silver"}}`)
	s.respond("POST /auth/logout", http.StatusOK, `{"success":true,"message":"Logged out successfully"}`)

	user, err := s.auth.Verify(s.ctx)
	s.Require().NoError(err)
	s.Equal("u1", user.ID())

	s.NoError(s.auth.Logout(s.ctx))
	s.Equal(s.server.URL+"/auth/google", s.auth.GoogleLoginURL())
}

func (s *APITestSuite) TestUsersList() {
	s.respond("GET /api/users", http.StatusOK, `{"success":true,"users":[{"_id":"u1","name":"Ada"},{"_id":"u2","name":"Linus"}]}`)

	public := false
	users, err := s.users.List(s.ctx, models.UserQuery{PublicOnly: &public, Search: "go lang"})
	s.Require().NoError(err)
	s.Require().Len(users, 2)
	s.Equal("u2", users[1].ID())
	s.Equal("is_public=false&search=go+lang", s.lastCall().Query)
}

func (s *APITestSuite) TestUsersGetEscapesID() {
	s.respond("GET /api/users/a%2Fb", http.StatusOK, `{"success":true,"user":{"_id":"a/b"}}`)

	user, err := s.users.Get(s.ctx, "a/b")
	s.Require().NoError(err)
	s.Equal("a/b", user.ID())

	_, err = s.users.Get(s.ctx, " ")
	s.ErrorIs(err, apperrors.ErrInvalidRequest)
}

func (s *APITestSuite) TestUsersUploadImage() {
	s.respond("POST /api/users/upload-image", http.StatusOK, `{"success":true,"imageUrl":"https://cdn.test/me.jpg"}`)

	imageURL, err := s.users.UploadImage(s.ctx, "me.png", []byte("\x89PNG\r\n\x1a\nrest"))
	s.Require().NoError(err)
	s.Equal("https://cdn.test/me.jpg", imageURL)

	call := s.lastCall()
	s.Contains(call.Header.Get("Content-Type"), "multipart/form-data")
	s.Contains(call.Body, `name="image"; filename="me.png"`)
	s.Contains(call.Body, "image/png")
}

func (s *APITestSuite) TestUsersStatsAndDelete() {
	s.respond("GET /api/users/u1/stats", http.StatusOK,
		`{"success":true,"stats":{"total_sessions_taught":12,"rating":4.5,"badge_level":"Silver","skills_count":{"teaching":3,"learning":1}}}`)
	s.respond("DELETE /api/users/u1", http.StatusOK, `{"success":true,"message":"Account deactivated successfully"}`)

	stats, err := s.users.Stats(s.ctx, "u1")
	s.Require().NoError(err)
	s.Equal(12, stats.TotalSessionsTaught)
	s.Equal(3, stats.SkillsCount.Teaching)

	s.NoError(s.users.Delete(s.ctx, "u1"))
}

func (s *APITestSuite) TestSwapRequests() {
	s.respond("POST /api/swap-requests", http.StatusCreated, `{"success":true,"request_id":"r1"}`)
	s.respond("GET /api/swap-requests/received/u1", http.StatusOK,
		`{"success":true,"requests":[{"_id":"r1","requester":{"_id":"u2","name":"Linus"},"status":"pending","created_at":"Mon, 02 Jan 2006 15:04:05 GMT"}]}`)
	s.respond("PUT /api/swap-requests/r1/accept", http.StatusOK, `{"success":true}`)

	_, err := s.swaps.Create(s.ctx, models.NewSwapRequest{})
	s.ErrorIs(err, apperrors.ErrInvalidRequest)

	id, err := s.swaps.Create(s.ctx, models.NewSwapRequest{TargetUserID: "u1", Message: "teach me Go"})
	s.Require().NoError(err)
	s.Equal("r1", id)

	received, err := s.swaps.Received(s.ctx, "u1")
	s.Require().NoError(err)
	s.Require().Len(received, 1)
	s.Equal("Linus", received[0].Requester.Name)
	s.Equal(2006, received[0].CreatedAt.Year())

	s.NoError(s.swaps.Accept(s.ctx, "r1"))
	s.Equal(http.MethodPut, s.lastCall().Method)
}

func (s *APITestSuite) TestSessionsCreateFormatsDate() {
	s.respond("POST /api/sessions", http.StatusCreated, `{"success":true,"session_id":"s1"}`)

	id, err := s.sessions.Create(s.ctx, models.NewSkillSession{
		ParticipantID: "u2",
		Skill:         "Go",
		ScheduledDate: time.Date(2026, 3, 1, 18, 30, 0, 0, time.UTC),
		Duration:      60,
	})
	s.Require().NoError(err)
	s.Equal("s1", id)
	s.JSONEq(`{"participant_id":"u2","skill":"Go","scheduled_date":"2026-03-01T18:30:00Z","duration":60}`, s.lastCall().Body)
}

func (s *APITestSuite) TestSessionsUpdateValidatesStatus() {
	bogus := enumsStatus("later")
	err := s.sessions.Update(s.ctx, "s1", models.SkillSessionUpdate{Status: &bogus})
	s.ErrorIs(err, apperrors.ErrInvalidRequest)
	s.Empty(s.calls)
}

func (s *APITestSuite) TestBadges() {
	s.respond("GET /api/badges/leaderboard", http.StatusOK,
		`{"success":true,"leaderboard":[{"_id":"u1","rank":1,"name":"Ada","badge_level":"Gold","total_sessions_taught":30}]}`)
	s.respond("POST /api/badges/update/u1", http.StatusOK,
		`{"success":true,"message":"Badge updated successfully","old_badge":"Silver","new_badge":"Gold","badge_upgraded":true}`)

	board, err := s.badges.Leaderboard(s.ctx)
	s.Require().NoError(err)
	s.Require().Len(board, 1)
	s.Equal(30, board[0].TotalSessionsTaught)

	update, err := s.badges.Update(s.ctx, "u1")
	s.Require().NoError(err)
	s.True(update.BadgeUpgraded)
	s.EqualValues("Gold", update.NewBadge)
}

func (s *APITestSuite) TestNotificationsPreferences() {
	s.respond("PUT /api/notifications/preferences/u1", http.StatusOK,
		`{"success":true,"preferences":{"email_notifications":false,"session_reminders":true,"new_requests":true}}`)

	prefs, err := s.notifs.UpdatePreferences(s.ctx, "u1", models.NotificationPreferences{SessionReminders: true, NewRequests: true})
	s.Require().NoError(err)
	s.True(prefs.SessionReminders)
	s.JSONEq(`{"notification_preferences":{"email_notifications":false,"session_reminders":true,"new_requests":true}}`, s.lastCall().Body)
}

func (s *APITestSuite) TestSkillsSearch() {
	s.respond("GET /api/skills/search", http.StatusOK, `{"success":true,"skills":[{"skill":"Go","category":"Programming"}]}`)

	matches, err := s.skills.Search(s.ctx, " go ")
	s.Require().NoError(err)
	s.Require().Len(matches, 1)
	s.Equal("q=go", s.lastCall().Query)

	_, err = s.skills.Search(s.ctx, "")
	s.ErrorIs(err, apperrors.ErrInvalidRequest)
}

func (s *APITestSuite) TestUnsuccessfulEnvelope() {
	s.respond("GET /api/skills/popular", http.StatusOK, `{"success":false,"error":"Database not available"}`)

	_, err := s.skills.Popular(s.ctx)
	var appErr *apperrors.ApplicationError
	s.Require().ErrorAs(err, &appErr)
	s.Equal("Database not available", appErr.Message)
}

func (s *APITestSuite) TestMissingEnvelopeField() {
	s.respond("GET /api/skill-categories", http.StatusOK, `{"success":true}`)

	_, err := s.skills.Categories(s.ctx)
	s.ErrorIs(err, apperrors.ErrUnexpectedResponse)
}

func TestAPITestSuite(t *testing.T) {
	suite.Run(t, new(APITestSuite))
}

func enumsStatus(v string) enums.SessionStatus { return enums.SessionStatus(v) }
