package cmd

import (
	"context"
	"errors"
	"log/slog"
	"time"

	httpadapter "orderdesk/internal/adapters/in/http"
	"orderdesk/internal/adapters/out/memory"
	"orderdesk/internal/adapters/out/metrics"
	"orderdesk/internal/adapters/out/postgres"
	"orderdesk/internal/adapters/out/rabbitmq"
	"orderdesk/internal/core/application/carts"
	"orderdesk/internal/core/application/usecases/commands"
	"orderdesk/internal/core/application/usecases/queries"
	"orderdesk/internal/core/domain/model/menu"
	"orderdesk/internal/core/domain/model/order"
	"orderdesk/internal/core/ports"
	"orderdesk/internal/jobs"
	"orderdesk/internal/pkg/errs"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"
)

type closableStore interface {
	ports.OrderStore
	Close()
}

type CompositionRoot struct {
	cfg    Config
	logger *slog.Logger

	storeTimeout time.Duration
	cartTTL      time.Duration
	location     *time.Location
	staff        order.Staff

	catalog   *menu.Catalog
	carts     *carts.Registry
	store     closableStore
	feed      *postgres.Feed
	publisher ports.OrderEventPublisher
	collector *metrics.Collector

	closers []func() error
}

// NewCompositionRoot builds the shared dependencies. gormDB may be nil, in
// which case orders are kept in memory.
func NewCompositionRoot(cfg Config, gormDB *gorm.DB, logger *slog.Logger) (*CompositionRoot, error) {
	if logger == nil {
		logger = slog.Default()
	}

	storeTimeout, err := cfg.StoreTimeoutDuration()
	if err != nil {
		return nil, err
	}
	cartTTL, err := cfg.CartTTLDuration()
	if err != nil {
		return nil, err
	}
	location, err := cfg.Location()
	if err != nil {
		return nil, err
	}

	if cfg.StaffUsername == "" || cfg.StaffPassword == "" {
		return nil, errs.NewValueIsRequiredError("STAFF_USERNAME and STAFF_PASSWORD")
	}
	staffID := cfg.StaffID
	if staffID == "" {
		staffID = cfg.StaffUsername
	}
	staff, err := order.NewStaff(staffID, cfg.StaffName)
	if err != nil {
		return nil, err
	}

	catalog, err := menu.Default()
	if err != nil {
		return nil, err
	}
	registry, err := carts.NewRegistry(catalog)
	if err != nil {
		return nil, err
	}

	c := &CompositionRoot{
		cfg:          cfg,
		logger:       logger,
		storeTimeout: storeTimeout,
		cartTTL:      cartTTL,
		location:     location,
		staff:        staff,
		catalog:      catalog,
		carts:        registry,
		collector:    metrics.NewCollector(),
	}

	if err := c.initStore(gormDB); err != nil {
		return nil, err
	}
	if err := c.initPublisher(); err != nil {
		c.Close()
		return nil, err
	}

	sub := c.store.Subscribe(c.collector.ObserveSnapshot)
	c.closers = append(c.closers, func() error {
		sub.Cancel()
		return nil
	})

	return c, nil
}

func (c *CompositionRoot) initStore(gormDB *gorm.DB) error {
	if gormDB == nil {
		c.store = memory.NewStore()
		c.logger.Info("using in-memory order store")
		return nil
	}

	uowFactory := postgres.NewGormUnitOfWorkFactory(gormDB)
	var f postgres.UnitOfWorkFactory = FuncUoWFactory(func() postgres.UnitOfWork {
		return uowFactory.Create()
	})

	store, err := postgres.NewStore(f, c.storeTimeout, c.logger)
	if err != nil {
		return err
	}
	feed, err := postgres.NewFeed(c.cfg.DSN(), store, c.logger)
	if err != nil {
		return err
	}

	c.store = store
	c.feed = feed
	return nil
}

func (c *CompositionRoot) initPublisher() error {
	if c.cfg.RabbitMQURL == "" {
		c.publisher = commands.NopPublisher{}
		return nil
	}

	exchange := c.cfg.RabbitMQExchange
	if exchange == "" {
		exchange = "orders"
	}
	publisher, err := rabbitmq.Dial(c.cfg.RabbitMQURL, exchange)
	if err != nil {
		return err
	}
	c.publisher = publisher
	c.closers = append(c.closers, publisher.Close)
	return nil
}

func (c *CompositionRoot) Store() ports.OrderStore {
	return c.store
}

// Feed is nil when orders are kept in memory.
func (c *CompositionRoot) Feed() *postgres.Feed {
	return c.feed
}

func (c *CompositionRoot) CreateSubmitOrderCommandHandler() (*commands.SubmitOrderCommandHandler, error) {
	return commands.NewSubmitOrderCommandHandler(c.store, c.publisher, c.collector, c.storeTimeout, c.logger)
}

func (c *CompositionRoot) CreateAdvanceOrderStatusCommandHandler() (*commands.AdvanceOrderStatusCommandHandler, error) {
	return commands.NewAdvanceOrderStatusCommandHandler(c.store, c.publisher, c.collector, c.storeTimeout, c.logger)
}

func (c *CompositionRoot) CreateGetOrderBoardQueryHandler() (queries.GetOrderBoardQueryHandler, error) {
	return queries.NewGetOrderBoardQueryHandler(c.store, c.location, c.storeTimeout)
}

func (c *CompositionRoot) CreateHTTPServer() (*httpadapter.Server, error) {
	submit, err := c.CreateSubmitOrderCommandHandler()
	if err != nil {
		return nil, err
	}
	advance, err := c.CreateAdvanceOrderStatusCommandHandler()
	if err != nil {
		return nil, err
	}
	board, err := c.CreateGetOrderBoardQueryHandler()
	if err != nil {
		return nil, err
	}

	return httpadapter.NewServer(c.catalog, c.carts, c.store, submit, advance, board, c.location, c.collector, c.logger)
}

func (c *CompositionRoot) CreateRouter(ctx context.Context) (*echo.Echo, error) {
	server, err := c.CreateHTTPServer()
	if err != nil {
		return nil, err
	}

	return httpadapter.NewRouter(ctx, server, httpadapter.Credentials{
		Username: c.cfg.StaffUsername,
		Password: c.cfg.StaffPassword,
		Staff:    c.staff,
	}, c.collector.Handler())
}

func (c *CompositionRoot) CreateJobManager() *jobs.JobManager {
	return jobs.NewJobManager(
		jobs.NewBoardRefreshJob(c.store, c.cfg.BoardRefreshSpec, c.storeTimeout, c.logger),
		jobs.NewCartSweepJob(c.carts, c.cartTTL, c.collector.SetCartSessions, c.logger),
	)
}

// Close releases the broker connection and detaches every subscriber.
func (c *CompositionRoot) Close() error {
	var err error
	for i := len(c.closers) - 1; i >= 0; i-- {
		err = errors.Join(err, c.closers[i]())
	}
	c.closers = nil
	if c.store != nil {
		c.store.Close()
	}
	return err
}

type FuncUoWFactory func() postgres.UnitOfWork

func (f FuncUoWFactory) Create() postgres.UnitOfWork {
	return f()
}
