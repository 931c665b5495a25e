// Package client wires the SkillSwap SDK together from a config.Config.
package client

import (
	"context"
	"errors"
	"os"
	"path/filepath"

	"github.com/octabyte/skillswap-client/api"
	"github.com/octabyte/skillswap-client/callback"
	"github.com/octabyte/skillswap-client/config"
	dbredis "github.com/octabyte/skillswap-client/db/redis"
	"github.com/octabyte/skillswap-client/enums"
	apperrors "github.com/octabyte/skillswap-client/errors"
	"github.com/octabyte/skillswap-client/gateway"
	"github.com/octabyte/skillswap-client/navigator"
	"github.com/octabyte/skillswap-client/otel/metrics"
	"github.com/octabyte/skillswap-client/queue"
	"github.com/octabyte/skillswap-client/session"
	"github.com/octabyte/skillswap-client/storage"
	"github.com/octabyte/skillswap-client/utils/logger"
	amqp "github.com/rabbitmq/amqp091-go"
	"go.uber.org/zap"
)

type Client struct {
	cfg *config.Config

	Session  *session.Manager
	Gateway  *gateway.Client
	Callback *callback.Handler

	Auth          *api.Auth
	Users         *api.Users
	SwapRequests  *api.SwapRequests
	SkillSessions *api.Sessions
	Badges        *api.Badges
	Notifications *api.Notifications
	Skills        *api.Skills

	closers []func() error
}

type options struct {
	store     storage.Store
	nav       navigator.Navigator
	publisher queue.Publisher
	observers []session.Observer
}

type Option func(*options)

// WithStore replaces the storage backend named in the config.
func WithStore(store storage.Store) Option {
	return func(o *options) { o.store = store }
}

// WithNavigator receives every navigation. Navigations are logged either way.
func WithNavigator(nav navigator.Navigator) Option {
	return func(o *options) { o.nav = nav }
}

// WithPublisher publishes session events through p instead of dialing the
// configured AMQP broker.
func WithPublisher(p queue.Publisher) Option {
	return func(o *options) { o.publisher = p }
}

func WithObserver(observer session.Observer) Option {
	return func(o *options) { o.observers = append(o.observers, observer) }
}

// New builds a client. The session stays unknown until Start is called.
func New(ctx context.Context, cfg *config.Config, opts ...Option) (*Client, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	o := &options{}
	for _, opt := range opts {
		opt(o)
	}

	if err := metrics.Init(cfg.Log.ServiceName); err != nil {
		return nil, apperrors.Wrapf(err, "init metrics")
	}

	c := &Client{cfg: cfg}

	store := o.store
	if store == nil {
		var err error
		if store, err = c.openStore(ctx); err != nil {
			return nil, err
		}
	}

	nav := navigator.Logging{Next: o.nav}

	gw, err := gateway.New(gateway.Config{
		BaseURL:     cfg.APIBaseURL,
		Timeout:     cfg.Timeout,
		LoginPath:   cfg.LoginPath,
		ServiceName: cfg.Log.ServiceName,
	}, nav)
	if err != nil {
		c.Close()
		return nil, err
	}

	c.Gateway = gw
	c.Auth = api.NewAuth(gw)
	c.Users = api.NewUsers(gw)
	c.SwapRequests = api.NewSwapRequests(gw)
	c.SkillSessions = api.NewSessions(gw)
	c.Badges = api.NewBadges(gw)
	c.Notifications = api.NewNotifications(gw)
	c.Skills = api.NewSkills(gw)

	c.Session = session.NewManager(session.NewVault(store), c.Auth, nav)
	gw.UseCredentials(c.Session)

	publisher := o.publisher
	if publisher == nil && cfg.AMQP.URI != "" {
		if publisher, err = c.dialPublisher(); err != nil {
			c.Close()
			return nil, err
		}
	}
	if publisher != nil {
		events := queue.NewSessionEventPublisher(publisher)
		c.Session.Subscribe(events)
		c.closers = append(c.closers, events.Close)
	}
	for _, observer := range o.observers {
		c.Session.Subscribe(observer)
	}

	c.Callback = callback.NewHandler(callback.Config{
		SuccessDelay: cfg.Callback.SuccessDelay,
		FailureDelay: cfg.Callback.FailureDelay,
		LoginPath:    cfg.LoginPath,
		DefaultPath:  cfg.DefaultPath,
	}, c.Session, nav)

	return c, nil
}

func (c *Client) openStore(ctx context.Context) (storage.Store, error) {
	switch c.cfg.Storage.Backend {
	case enums.StorageBackendMemory:
		return storage.NewMemory(), nil
	case enums.StorageBackendRedis:
		rdb, err := dbredis.NewRedisClient(ctx, dbredis.Config{
			Addr:     c.cfg.Redis.Addr,
			Password: c.cfg.Redis.Password,
			DB:       c.cfg.Redis.DB,
		})
		if err != nil {
			return nil, err
		}
		c.closers = append(c.closers, rdb.Close)
		return storage.NewRedis(rdb, c.cfg.Redis.Prefix), nil
	default:
		path := c.cfg.Storage.Path
		if path == "" {
			var err error
			if path, err = DefaultSessionPath(); err != nil {
				return nil, err
			}
		}
		return storage.NewFile(path)
	}
}

func (c *Client) dialPublisher() (queue.Publisher, error) {
	queueType, err := queue.ParseQueueType(c.cfg.AMQP.QueueType)
	if err != nil {
		return nil, err
	}

	conn, err := queue.NewConnection(queue.ConnectionConfig{
		URI: c.cfg.AMQP.URI,
		QueueConfig: &queue.Config{
			Name:    c.cfg.AMQP.Queue,
			Type:    queueType,
			Durable: true,
		},
	})
	if err != nil {
		return nil, err
	}
	c.closers = append(c.closers, conn.Close)
	return queue.NewPublisher(conn.Ch, queue.PublishConfig{
		RoutingKey:   c.cfg.AMQP.Queue,
		DeliveryMode: amqp.Persistent,
	}), nil
}

// DefaultSessionPath is where the file backend keeps the session when no
// path is configured.
func DefaultSessionPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", apperrors.Wrapf(err, "locate user config directory")
	}
	return filepath.Join(dir, "skillswap", "session.json"), nil
}

// Start runs the startup verification of the persisted session.
func (c *Client) Start(ctx context.Context) (enums.AuthState, error) {
	return c.Session.Start(ctx)
}

// CallbackServer builds the loopback server for the Google OAuth redirect.
func (c *Client) CallbackServer() *callback.Server {
	return callback.NewServer(callback.ServerConfig{
		Addr:        c.cfg.Callback.Addr,
		Path:        c.cfg.Callback.Path,
		AppURL:      c.cfg.AppURL,
		ServiceName: c.cfg.Log.ServiceName,
	}, c.Callback)
}

// Close releases the connections opened by New, last opened first.
func (c *Client) Close() error {
	var errs []error
	for i := len(c.closers) - 1; i >= 0; i-- {
		if err := c.closers[i](); err != nil {
			errs = append(errs, err)
		}
	}
	c.closers = nil
	if err := errors.Join(errs...); err != nil {
		logger.LogWarn("failed to close client", zap.Error(err))
		return err
	}
	return nil
}
