package container

import (
	"context"
	"fmt"

	"foodfacts/explorer/internal/browser"
	"foodfacts/explorer/internal/cart"
	"foodfacts/explorer/internal/client"
	"foodfacts/explorer/internal/config"
	"foodfacts/explorer/internal/service"
	"foodfacts/explorer/internal/store"

	"github.com/redis/go-redis/v9"
	log "github.com/sirupsen/logrus"
)

// Container holds all initialized components
type Container struct {
	Config  *config.Config
	Client  client.CatalogClient
	Cart    *cart.Store
	Browser *browser.Browser
	Service *service.Service

	redis *redis.Client
}

// New creates a new container with all dependencies initialized
func New(ctx context.Context, cfg *config.Config) (*Container, error) {
	container := &Container{
		Config: cfg,
	}

	catalogClient := client.NewOpenFoodFactsClient(cfg.API)
	container.Client = catalogClient

	snapshot, err := container.newSnapshotStore(ctx, cfg)
	if err != nil {
		return nil, err
	}

	container.Cart = cart.NewStore(ctx, snapshot)
	container.Browser = browser.New(catalogClient)
	container.Service = service.New(catalogClient, container.Browser, container.Cart)

	return container, nil
}

func (c *Container) newSnapshotStore(ctx context.Context, cfg *config.Config) (cart.SnapshotStore, error) {
	switch cfg.Cart.Backend {
	case "", "file":
		return store.NewFileStore(cfg.Cart.Path), nil

	case "redis":
		rdb := redis.NewClient(&redis.Options{
			Addr:     fmt.Sprintf("%s:%d", cfg.Redis.Host, cfg.Redis.Port),
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.Database,
		})

		if _, err := rdb.Ping(ctx).Result(); err != nil {
			return nil, fmt.Errorf("failed to connect to Redis: %w", err)
		}
		log.Debug("Connected to Redis successfully")

		c.redis = rdb
		return store.NewRedisStore(rdb), nil

	default:
		return nil, fmt.Errorf("unknown cart backend %q (want file or redis)", cfg.Cart.Backend)
	}
}

// Close performs cleanup when shutting down
func (c *Container) Close() error {
	if c.redis != nil {
		return c.redis.Close()
	}
	return nil
}
