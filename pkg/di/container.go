package di

import (
	"context"
	"errors"
	"fmt"

	"github.com/uptrace/bun"
	"go.uber.org/zap"

	"github.com/goliatone/go-notes/cache"
	"github.com/goliatone/go-notes/internal/config"
	"github.com/goliatone/go-notes/internal/storeinfra"
	"github.com/goliatone/go-notes/presenter"
	"github.com/goliatone/go-notes/repository"
	"github.com/goliatone/go-notes/store"
)

// Container wires the note stack: database handle, store adapter, cache
// gateway and repository. It owns the handle and the adapter and releases
// both on Close.
type Container struct {
	config  config.Config
	logger  *zap.Logger
	db      *bun.DB
	store   *store.Adapter
	gateway *cache.Gateway
	repo    *repository.DataRepository
}

// Option configures a Container.
type Option func(*Container)

// WithLogger sets the logger handed to every component.
func WithLogger(logger *zap.Logger) Option {
	return func(c *Container) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// NewContainer opens the configured database, makes sure the notes schema
// exists and builds the layers on top of it.
func NewContainer(ctx context.Context, cfg config.Config, opts ...Option) (*Container, error) {
	c := &Container{
		config: cfg,
		logger: zap.NewNop(),
	}
	for _, opt := range opts {
		opt(c)
	}

	db, err := storeinfra.Open(ctx, cfg.Store)
	if err != nil {
		return nil, err
	}

	if err := store.EnsureSchema(ctx, db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ensure schema: %w", err)
	}

	c.db = db
	c.store = store.New(db, store.WithLogger(c.logger.Named("store")))
	c.gateway = cache.NewGateway(c.store, cache.WithLogger(c.logger.Named("gateway")))
	c.repo = repository.New(c.gateway)

	c.logger.Debug("container ready",
		zap.String("driver", cfg.Store.Driver),
	)
	return c, nil
}

// NewContainerWithDefaults creates a container over config.Default.
func NewContainerWithDefaults(ctx context.Context) (*Container, error) {
	return NewContainer(ctx, config.Default())
}

// Config returns a copy of the configuration used by this container.
func (c *Container) Config() config.Config {
	return c.config
}

// Logger returns the container logger.
func (c *Container) Logger() *zap.Logger {
	return c.logger
}

// DB returns the database handle.
func (c *Container) DB() *bun.DB {
	return c.db
}

// Store returns the entity store adapter.
func (c *Container) Store() *store.Adapter {
	return c.store
}

// Gateway returns the cache gateway.
func (c *Container) Gateway() *cache.Gateway {
	return c.gateway
}

// Repository returns the repository presenters should use.
func (c *Container) Repository() *repository.DataRepository {
	return c.repo
}

// NewPresenter creates a presenter over the container repository.
func (c *Container) NewPresenter(view presenter.View, opts ...presenter.Option) *presenter.Presenter {
	opts = append([]presenter.Option{presenter.WithLogger(c.logger.Named("presenter"))}, opts...)
	return presenter.New(c.repo, view, opts...)
}

// Close drains the store queue and closes the database handle.
func (c *Container) Close() error {
	c.store.Close()
	if err := c.db.Close(); err != nil && !errors.Is(err, context.Canceled) {
		return fmt.Errorf("close database: %w", err)
	}
	return nil
}
