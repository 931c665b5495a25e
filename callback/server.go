package callback

import (
	"context"
	"errors"
	"html/template"
	"io"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/gommon/log"
	"github.com/octabyte/skillswap-client/enums"
	apperrors "github.com/octabyte/skillswap-client/errors"
	"github.com/octabyte/skillswap-client/interfaces/http/echo/middleware"
	otelecho "github.com/octabyte/skillswap-client/otel/echo"
	"github.com/octabyte/skillswap-client/utils/logger"
	"go.uber.org/zap"
)

const healthPath = "/healthz"

type ServerConfig struct {
	Addr string
	Path string
	// AppURL, when set, is prefixed to the outcome target so the status page
	// can forward the browser to the web app.
	AppURL      string
	ServiceName string
}

// Server is a loopback HTTP server that receives the OAuth redirect.
type Server struct {
	cfg      ServerConfig
	echo     *echo.Echo
	handler  *Handler
	outcomes chan Outcome
	listener net.Listener
}

var statusPage = template.Must(template.New("status").Parse(`<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
{{- if .Redirect }}
<meta http-equiv="refresh" content="{{ .Seconds }};url={{ .Redirect }}">
{{- end }}
<title>SkillSwap - {{ .Title }}</title>
</head>
<body>
<h1>{{ .Title }}</h1>
<p>{{ .Message }}</p>
<p>{{ .Next }}</p>
</body>
</html>
`))

type pageRenderer struct{}

func (pageRenderer) Render(w io.Writer, name string, data interface{}, _ echo.Context) error {
	return statusPage.ExecuteTemplate(w, name, data)
}

type page struct {
	Title    string
	Message  string
	Next     string
	Redirect string
	Seconds  int
}

func NewServer(cfg ServerConfig, handler *Handler) *Server {
	if cfg.Path == "" {
		cfg.Path = enums.RouteGoogleCallback
	}
	if cfg.ServiceName == "" {
		cfg.ServiceName = "skillswap-client"
	}

	s := &Server{
		cfg:      cfg,
		handler:  handler,
		outcomes: make(chan Outcome, 1),
	}

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Logger.SetLevel(log.OFF)
	e.Renderer = pageRenderer{}
	e.HTTPErrorHandler = s.handleError

	e.Use(middleware.SetRequestID())
	e.Use(otelecho.MiddlewareWithConfig(cfg.ServiceName, func(c echo.Context) bool {
		return c.Path() == healthPath
	}))
	e.Use(middleware.RequestLogger())
	e.Use(middleware.SetTokenInContext())
	e.Use(middleware.SetTokenSubject())
	e.Use(middleware.RecoverMalformedCallback())

	e.GET(cfg.Path, s.callback)
	e.GET(healthPath, func(c echo.Context) error {
		return c.NoContent(http.StatusNoContent)
	})

	s.echo = e
	return s
}

// Start listens on the configured address. Use Addr to learn the port when
// it was 0.
func (s *Server) Start() error {
	ln, err := net.Listen("tcp", s.cfg.Addr)
	if err != nil {
		return apperrors.Wrapf(err, "listen on %s", s.cfg.Addr)
	}
	s.listener = ln
	s.echo.Listener = ln

	go func() {
		if err := s.echo.Start(""); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.LogError("callback server stopped", zap.Error(err))
		}
	}()
	logger.LogInfo("callback server listening", zap.String("url", s.CallbackURL()))
	return nil
}

func (s *Server) Addr() string {
	if s.listener == nil {
		return s.cfg.Addr
	}
	return s.listener.Addr().String()
}

func (s *Server) CallbackURL() string {
	return "http://" + s.Addr() + s.cfg.Path
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.echo.Shutdown(ctx)
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.echo.ServeHTTP(w, r)
}

// Outcomes delivers every processed callback. Outcomes are dropped when
// nobody is reading.
func (s *Server) Outcomes() <-chan Outcome {
	return s.outcomes
}

// Wait blocks for the next outcome.
func (s *Server) Wait(ctx context.Context) (Outcome, error) {
	select {
	case out := <-s.outcomes:
		return out, nil
	case <-ctx.Done():
		return Outcome{}, ctx.Err()
	}
}

func (s *Server) callback(c echo.Context) error {
	out := s.handler.Process(c.Request().Context(), c.QueryParams())
	return s.finish(c, out)
}

func (s *Server) finish(c echo.Context, out Outcome) error {
	select {
	case s.outcomes <- out:
	default:
		logger.LogWarn("dropping callback outcome, no reader", zap.Bool("success", out.Success))
	}

	p := page{
		Title:   "Authentication Failed",
		Message: out.Message,
		Next:    "You will be redirected to the login page.",
		Seconds: int(out.Delay.Round(time.Second) / time.Second),
	}
	status := http.StatusBadRequest
	if out.Success {
		p.Title = "Authentication Successful!"
		p.Next = "You will be redirected shortly."
		status = http.StatusOK
	}
	if s.cfg.AppURL != "" {
		p.Redirect = strings.TrimRight(s.cfg.AppURL, "/") + out.Target
	} else {
		p.Next = "You can close this window and return to the terminal."
	}
	return c.Render(status, "status", p)
}

func (s *Server) handleError(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	var malformed *apperrors.MalformedCallbackError
	if errors.As(err, &malformed) {
		out := s.handler.Fail(c.Request().Context(), err)
		if renderErr := s.finish(c, out); renderErr != nil {
			logger.LogError("failed to render callback page", zap.Error(renderErr))
		}
		return
	}
	s.echo.DefaultHTTPErrorHandler(err, c)
}
