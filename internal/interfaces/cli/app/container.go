// Package app wires the console: configuration, logging, the local session
// database, the API client and the realtime channel, shared by every command.
package app

import (
	"context"
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/redis/go-redis/v9"
	"github.com/spf13/afero"
	"gorm.io/gorm"

	"helpdesk/internal/application/dashboard"
	"helpdesk/internal/application/dispatch"
	"helpdesk/internal/application/export"
	"helpdesk/internal/application/session"
	"helpdesk/internal/application/thread"
	"helpdesk/internal/domain/mail"
	pvo "helpdesk/internal/domain/permission/value_objects"
	"helpdesk/internal/domain/ticket"
	"helpdesk/internal/infrastructure/api"
	"helpdesk/internal/infrastructure/config"
	"helpdesk/internal/infrastructure/database"
	"helpdesk/internal/infrastructure/email"
	"helpdesk/internal/infrastructure/migration"
	"helpdesk/internal/infrastructure/permission"
	"helpdesk/internal/infrastructure/realtime"
	"helpdesk/internal/infrastructure/repository"
	"helpdesk/internal/shared/biztime"
	"helpdesk/internal/shared/logger"
	"helpdesk/internal/shared/services/markdown"
)

// Streams are the terminal the command talks to.
type Streams struct {
	In  io.Reader
	Out io.Writer
	Err io.Writer
}

// Container holds every wired component of one console invocation and
// releases them on Close.
type Container struct {
	Config    *config.Config
	Log       logger.Interface
	Session   *session.Service
	API       *api.API
	Dispatch  *dispatch.Service
	Export    *export.Service
	Dashboard *dashboard.Service
	Markdown  markdown.MarkdownService
	Fs        afero.Fs
	Out       *Printer
	Prompt    *Prompter

	db *gorm.DB

	feedOnce sync.Once
	broker   *realtime.Broker
	redis    *redis.Client
}

// Open loads configuration, applies the flag overrides and wires the
// container.
func Open(ctx context.Context, opts Options, streams Streams) (*Container, error) {
	cfg, log, err := Init(opts)
	if err != nil {
		return nil, err
	}
	return New(ctx, cfg, streams, log)
}

// Init loads configuration with the flag overrides applied and initializes
// the global logger from it.
func Init(opts Options) (*config.Config, logger.Interface, error) {
	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load config: %w", err)
	}
	opts.apply(cfg)

	if err := logger.Init(&cfg.Logger); err != nil {
		return nil, nil, fmt.Errorf("failed to initialize logger: %w", err)
	}
	return cfg, logger.NewLogger(), nil
}

func (o Options) apply(cfg *config.Config) {
	if o.APIURL != "" {
		cfg.API.BaseURL = o.APIURL
	}
	if o.LogLevel != "" {
		cfg.Logger.Level = o.LogLevel
	}
	if o.Output != "" {
		cfg.UI.Output = o.Output
	}
}

// New wires the container from an already loaded configuration and restores
// the persisted session, if any.
func New(ctx context.Context, cfg *config.Config, streams Streams, log logger.Interface) (*Container, error) {
	if err := biztime.Init(cfg.UI.Timezone); err != nil {
		return nil, fmt.Errorf("failed to initialize business timezone: %w", err)
	}

	out, err := NewPrinter(streams.Out, cfg.UI.Output)
	if err != nil {
		return nil, err
	}

	db, err := database.Open(cfg.Session, log)
	if err != nil {
		return nil, fmt.Errorf("failed to open session database: %w", err)
	}
	c := &Container{
		Config: cfg,
		Log:    log,
		Out:    out,
		Prompt: NewPrompter(streams.In, streams.Err),
		Fs:     afero.NewOsFs(),
		db:     db,
	}

	if err := c.wire(ctx); err != nil {
		c.Close()
		return nil, err
	}
	return c, nil
}

func (c *Container) wire(ctx context.Context) error {
	if err := migration.Up(ctx, c.db, c.Log); err != nil {
		return fmt.Errorf("failed to migrate session database: %w", err)
	}

	enforcer, err := permission.NewEnforcer(c.db, c.Log)
	if err != nil {
		return fmt.Errorf("failed to create permission enforcer: %w", err)
	}
	if err := permission.InitDefaultPolicies(enforcer, c.Log); err != nil {
		return fmt.Errorf("failed to seed permission policies: %w", err)
	}

	store := repository.NewSessionRepository(c.db)

	// The client reads the bearer token from the session on every request,
	// so the session can be built before the client it authenticates with.
	var sess *session.Service
	client := api.NewClient(c.Config.API.BaseURL,
		api.WithTimeout(c.Config.API.Timeout()),
		api.WithCredentials(api.TokenFunc(func() string { return sess.Token() })),
		api.WithLogger(c.Log.Named("api")),
	)
	c.API = api.New(client)
	sess = session.NewService(c.API.Auth, store, enforcer, c.Log.Named("session"))
	c.Session = sess

	c.Markdown = markdown.NewMarkdownService()
	c.Dispatch = dispatch.NewService(c.mailSender(), c.API.Mail, c.Markdown, c.Log.Named("mail"))
	c.Export = export.NewService(c.Fs, c.Config.UI.ViewerCommand, c.Log.Named("export"))
	c.Dashboard = dashboard.NewService(c.API.Dashboard, c.Log.Named("dashboard"))

	if _, err := c.Session.Restore(ctx); err != nil {
		// An expired or rejected credential leaves the console signed out;
		// gated commands report it when they run.
		c.Log.Warnw("stored session discarded", "error", err)
	}
	return nil
}

func (c *Container) mailSender() mail.Sender {
	if strings.EqualFold(c.Config.Mail.Transport, "smtp") {
		return email.NewSMTPSender(c.Config.Mail.SMTP, c.Markdown.PlainText, c.Log.Named("smtp"))
	}
	return c.API.Mail
}

// PageSize is the configured list page size.
func (c *Container) PageSize() int {
	return c.Config.API.DefaultPageSize
}

// Require fails unless the signed-in user may perform action on resource.
func (c *Container) Require(resource pvo.Resource, action pvo.Action) error {
	return c.Session.Authorize(resource, action)
}

// Feed connects the realtime channel on first use. The connection is
// dropped on logout and on Close.
func (c *Container) Feed(ctx context.Context) ticket.CommentFeed {
	c.feedOnce.Do(func() {
		rt := c.Config.Realtime
		log := c.Log.Named("realtime")

		var source realtime.Source
		if strings.EqualFold(rt.Transport, "redis") {
			c.redis = redis.NewClient(&redis.Options{
				Addr:     rt.Redis.GetAddr(),
				Password: rt.Redis.Password,
				DB:       rt.Redis.DB,
			})
			source = realtime.NewRedisSource(c.redis, rt.Redis.Channel, log)
		} else {
			source = realtime.NewWebSocketSource(rt.URL, rt.Path, c.Session, log)
		}

		c.broker = realtime.NewBroker(source, log,
			realtime.WithReconnectConfig(realtime.ReconnectConfigFrom(rt.Reconnect)),
		)
		c.Session.OnLogout(c.broker.Close)
		c.broker.Start(ctx)
	})
	return c.broker
}

// Thread builds a conversation for one ticket. A nil feed gives a
// conversation that only shows what it fetched.
func (c *Container) Thread(feed ticket.CommentFeed) *thread.Thread {
	return thread.New(c.API.Comments, c.API.Tickets, feed,
		thread.Config{PostMarker: c.Config.Thread.PostResolutionMarker},
		c.Log.Named("thread"),
	)
}

// Close releases the realtime connection and the session database.
func (c *Container) Close() {
	if c.broker != nil {
		c.broker.Close()
	}
	if c.redis != nil {
		if err := c.redis.Close(); err != nil {
			c.Log.Warnw("failed to close redis client", "error", err)
		}
	}
	if err := database.Close(c.db); err != nil {
		c.Log.Warnw("failed to close session database", "error", err)
	}
}
