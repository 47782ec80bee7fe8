package cli

import (
	"context"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/matzehuels/podoc/pkg/cache"
	"github.com/matzehuels/podoc/pkg/config"
	"github.com/matzehuels/podoc/pkg/pipeline"
	"github.com/matzehuels/podoc/pkg/server"
	"github.com/matzehuels/podoc/pkg/store"
)

// connectTimeout bounds the startup pings to Redis and MongoDB.
const connectTimeout = 10 * time.Second

type serveOpts struct {
	addr string
}

// serveCommand creates the serve command running the HTTP API.
func (c *CLI) serveCommand() *cobra.Command {
	var opts serveOpts

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		Long: `Run the HTTP API for rendering posted documents and stored orders.

Rendered PDFs and loaded orders are cached in Redis when [redis] addr is
set. Orders are looked up by number in MongoDB when [mongo] uri is set;
without it only POST /v1/purchase-orders/render is available.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := c.config()
			if err != nil {
				return err
			}
			if opts.addr != "" {
				cfg.Server.Addr = opts.addr
			}
			return c.runServe(cmd.Context(), cfg)
		},
	}

	cmd.Flags().StringVar(&opts.addr, "addr", "", "listen address (default from config, :8080)")

	return cmd
}

func (c *CLI) runServe(ctx context.Context, cfg *config.Config) error {
	logger := loggerFromContext(ctx)
	keyer := cache.NewScopedKeyer(cache.NewDefaultKeyer(), cfg.Redis.Prefix)

	shared := c.sharedCache(ctx, cfg)
	runner := pipeline.NewRunner(shared, keyer, logger)
	runner.Resolver = newResolver(cfg, shared, keyer)
	runner.Terms = cfg.Render.Terms
	runner.TTL = cfg.Redis.TTL.Duration
	defer runner.Close()

	orders, closeStore, err := c.orderStore(ctx, cfg, shared, keyer)
	if err != nil {
		return err
	}
	defer closeStore()

	srv := server.New(server.Options{
		Runner:   runner,
		Store:    orders,
		Logger:   logger,
		Locale:   cfg.Render.Locale,
		Currency: cfg.Render.Currency,
		TimeZone: cfg.Render.TimeZone,
	})

	printSuccess("Serving on %s", StyleValue.Render(cfg.Server.Addr))
	if strings.HasPrefix(cfg.Server.Addr, ":") {
		printNextStep("Check it with", "curl -s localhost"+cfg.Server.Addr+"/healthz")
	}

	return srv.ListenAndServe(ctx, cfg.Server.Addr, cfg.Server.ReadTimeout.Duration, cfg.Server.WriteTimeout.Duration)
}

// sharedCache connects to Redis. An unset or unreachable server falls back
// to a null cache so the API still renders.
func (c *CLI) sharedCache(ctx context.Context, cfg *config.Config) cache.Cache {
	if cfg.Redis.Addr == "" {
		c.Logger.Info("redis not configured, caching disabled")
		return cache.NewNullCache()
	}

	pingCtx, cancel := context.WithTimeout(ctx, connectTimeout)
	defer cancel()

	spinner := newSpinnerWithContext(pingCtx, "Connecting to Redis at "+cfg.Redis.Addr+"...")
	spinner.Start()
	rc, err := cache.NewRedisCache(pingCtx, cache.RedisOptions{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	spinner.Stop()
	if err != nil {
		c.Logger.Warn("redis unavailable, caching disabled", "addr", cfg.Redis.Addr, "err", err)
		return cache.NewNullCache()
	}
	c.Logger.Info("connected to redis", "addr", cfg.Redis.Addr, "db", cfg.Redis.DB)
	return rc
}

// orderStore connects to MongoDB when configured. Unlike the cache, a
// configured but unreachable database is a startup error.
func (c *CLI) orderStore(ctx context.Context, cfg *config.Config, shared cache.Cache, keyer cache.Keyer) (store.OrderStore, func(), error) {
	if cfg.Mongo.URI == "" {
		c.Logger.Info("mongo not configured, stored orders disabled")
		return nil, func() {}, nil
	}

	spinner := newSpinnerWithContext(ctx, "Connecting to MongoDB...")
	spinner.Start()
	ms, err := store.ConnectMongo(ctx, store.MongoOptions{
		URI:        cfg.Mongo.URI,
		Database:   cfg.Mongo.Database,
		Collection: cfg.Mongo.Collection,
		Timeout:    connectTimeout,
	})
	spinner.Stop()
	if err != nil {
		return nil, nil, err
	}
	c.Logger.Info("connected to mongo", "database", cfg.Mongo.Database, "collection", cfg.Mongo.Collection)

	closeFn := func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := ms.Close(ctx); err != nil {
			c.Logger.Warn("mongo disconnect failed", "err", err)
		}
	}
	return store.Cached(ms, shared, keyer, c.Logger), closeFn, nil
}
