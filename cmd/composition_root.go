package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	httpin "parcels/internal/adapters/in/http"
	"parcels/internal/adapters/out/cbr"
	"parcels/internal/adapters/out/memory"
	"parcels/internal/adapters/out/postgres"
	redisstore "parcels/internal/adapters/out/redis"
	"parcels/internal/core/application/rates"
	"parcels/internal/core/application/usecases/commands"
	"parcels/internal/core/application/usecases/queries"
	"parcels/internal/core/domain/services"
	"parcels/internal/core/ports"
	"parcels/internal/jobs"

	goredis "github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// sessionJanitorEvery is how often in-memory sessions are swept for expired keys.
const sessionJanitorEvery = 10 * time.Minute

type CompositionRoot struct {
	config       Config
	gormDB       *gorm.DB
	uowFactory   *postgres.GormUnitOfWorkFactory
	redisClient  *goredis.Client
	rateStore    ports.RateStore
	sessionStore ports.SessionStore
	logger       *slog.Logger
}

// NewCompositionRoot wires the adapters. With REDIS_URL set the rate cache and the
// sessions live in Redis, otherwise they are kept in process memory.
func NewCompositionRoot(ctx context.Context, config Config, gormDB *gorm.DB, logger *slog.Logger) (*CompositionRoot, error) {
	c := &CompositionRoot{
		config:     config,
		gormDB:     gormDB,
		uowFactory: postgres.NewGormUnitOfWorkFactory(gormDB, logger),
		logger:     logger,
	}

	if config.RedisURL == "" {
		c.rateStore = memory.NewRateStore(time.Now)
		sessions := memory.NewSessionStore(config.SessionTTL, time.Now)
		sessions.StartJanitor(ctx, sessionJanitorEvery)
		c.sessionStore = sessions
		return c, nil
	}

	client, err := redisstore.Connect(ctx, config.RedisURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}
	c.redisClient = client
	c.rateStore = redisstore.NewRateStore(client)
	c.sessionStore = redisstore.NewSessionStore(client, config.SessionTTL)
	return c, nil
}

// Close releases connections opened by the composition root.
func (c *CompositionRoot) Close() error {
	if c.redisClient != nil {
		return c.redisClient.Close()
	}
	return nil
}

func (c *CompositionRoot) CreateRegisterParcelCommandHandler() commands.RegisterParcelCommandHandler {
	var f commands.UoWFactory = FuncUoWFactory(func() commands.UoW {
		return c.uowFactory.Create()
	})
	return commands.NewRegisterParcelCommandHandler(f)
}

func (c *CompositionRoot) CreateCalculateDeliveryCostsCommandHandler() (commands.CalculateDeliveryCostsCommandHandler, error) {
	provider := cbr.NewProvider(c.config.RateSourceURL, c.config.RateFetchTimeout)
	cache, err := rates.NewRateCache(c.rateStore, provider, c.config.RateCacheTTL, c.logger)
	if err != nil {
		return commands.CalculateDeliveryCostsCommandHandler{}, err
	}

	var f commands.UoWFactory = FuncUoWFactory(func() commands.UoW {
		return c.uowFactory.Create()
	})
	return commands.NewCalculateDeliveryCostsCommandHandler(f, cache, services.NewDeliveryCostCalculator(), c.logger), nil
}

func (c *CompositionRoot) CreateSeedParcelTypesCommandHandler() commands.SeedParcelTypesCommandHandler {
	var f commands.ParcelTypeUoWFactory = FuncParcelTypeUoWFactory(func() commands.ParcelTypeUoW {
		return c.uowFactory.Create()
	})
	return commands.NewSeedParcelTypesCommandHandler(f)
}

func (c *CompositionRoot) CreateDeleteParcelTypeCommandHandler() commands.DeleteParcelTypeCommandHandler {
	var f commands.ParcelTypeUoWFactory = FuncParcelTypeUoWFactory(func() commands.ParcelTypeUoW {
		return c.uowFactory.Create()
	})
	return commands.NewDeleteParcelTypeCommandHandler(f)
}

func (c *CompositionRoot) CreateGetParcelTypesQueryHandler() queries.GetParcelTypesQueryHandler {
	return queries.NewGetParcelTypesQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetParcelsQueryHandler() queries.GetParcelsQueryHandler {
	return queries.NewGetParcelsQueryHandler(c.uowFactory.Create().ParcelRepository())
}

func (c *CompositionRoot) CreateGetParcelQueryHandler() queries.GetParcelQueryHandler {
	return queries.NewGetParcelQueryHandler(c.uowFactory.Create().ParcelRepository())
}

func (c *CompositionRoot) CreateServer() *httpin.Server {
	return httpin.NewServer(
		c.CreateRegisterParcelCommandHandler(),
		c.CreateGetParcelTypesQueryHandler(),
		c.CreateGetParcelsQueryHandler(),
		c.CreateGetParcelQueryHandler(),
		c.sessionStore,
		httpin.Config{
			SessionTTL:        c.config.SessionTTL,
			SecureCookies:     c.config.SecureCookies,
			RegisterRateLimit: c.config.RegisterRateLimit,
		},
		c.logger,
	)
}

func (c *CompositionRoot) CreateJobManager() (*jobs.JobManager, error) {
	handler, err := c.CreateCalculateDeliveryCostsCommandHandler()
	if err != nil {
		return nil, err
	}
	return jobs.NewJobManager(handler, c.config.PricingSchedule, c.logger), nil
}

type FuncParcelTypeUoWFactory func() commands.ParcelTypeUoW

func (f FuncParcelTypeUoWFactory) Create() commands.ParcelTypeUoW {
	return f()
}

type FuncUoWFactory func() commands.UoW

func (f FuncUoWFactory) Create() commands.UoW {
	return f()
}
