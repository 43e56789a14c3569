package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/moltext/moltext/internal/server"
	"github.com/moltext/moltext/pkg/cache"
	"github.com/moltext/moltext/pkg/pipeline"
	"github.com/moltext/moltext/pkg/store"
)

// serveOpts holds the command-line flags for the serve command.
type serveOpts struct {
	addr     string // listen address
	backend  string // store backend: memory, file, or mongo
	mongoURI string // mongo connection string
	redis    string // redis address for the shared cache
	noCache  bool   // disable caching entirely
}

// serveCommand creates the serve command for running the HTTP API.
//
// The molecule library backend is selected with --store: "file" persists
// records under ~/.config/moltext/library, "memory" keeps them in process,
// and "mongo" uses MongoDB. With --redis, encoded notations and rendered
// artifacts are cached in Redis so multiple instances share results.
func (c *CLI) serveCommand() *cobra.Command {
	var opts serveOpts

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the moltext HTTP API server",
		Long: `Run the moltext HTTP API server.

Examples:
  moltext serve
  moltext serve --addr :9090 --store memory
  moltext serve --store mongo --mongo-uri mongodb://localhost:27017
  moltext serve --redis localhost:6379`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runServe(cmd.Context(), &opts)
		},
	}

	cmd.Flags().StringVar(&opts.addr, "addr", "", "listen address (default from config, else :8080)")
	cmd.Flags().StringVar(&opts.backend, "store", "", "library backend: file (default), memory, mongo")
	cmd.Flags().StringVar(&opts.mongoURI, "mongo-uri", "", "MongoDB connection string (mongo backend)")
	cmd.Flags().StringVar(&opts.redis, "redis", "", "Redis address for the shared cache")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "disable caching")

	return cmd
}

// runServe wires up the store, cache, and pipeline, then serves until the
// context is cancelled.
func (c *CLI) runServe(ctx context.Context, opts *serveOpts) error {
	st, err := c.newStore(ctx, opts.backend, opts.mongoURI)
	if err != nil {
		return err
	}
	defer st.Close(context.Background())

	cch, err := c.newServeCache(ctx, opts)
	if err != nil {
		return err
	}
	runner := pipeline.NewRunner(cch, nil, c.Logger)
	defer runner.Close()

	addr := opts.addr
	if addr == "" {
		addr = c.Config.serverAddr()
	}

	srv := server.New(server.Config{Addr: addr}, runner, st, c.Logger)
	return srv.ListenAndServe(ctx)
}

// newStore builds the molecule library backend from flags and config.
func (c *CLI) newStore(ctx context.Context, backend, mongoURI string) (store.Store, error) {
	if backend == "" {
		backend = c.Config.storeBackend()
	}

	switch backend {
	case "memory":
		return store.NewMemoryStore(), nil
	case "file":
		return store.NewFileStore(c.Config.Store.Path)
	case "mongo":
		uri := mongoURI
		if uri == "" {
			uri = c.Config.Store.MongoURI
		}
		if uri == "" {
			return nil, fmt.Errorf("mongo backend requires --mongo-uri or store.mongo_uri in config")
		}
		return store.NewMongoStore(ctx, store.MongoConfig{
			URI:      uri,
			Database: c.Config.Store.MongoDatabase,
		})
	default:
		return nil, fmt.Errorf("unknown store backend: %s (must be 'memory', 'file', or 'mongo')", backend)
	}
}

// newServeCache builds the cache for server use. Redis takes precedence
// over the local file cache when configured.
func (c *CLI) newServeCache(ctx context.Context, opts *serveOpts) (cache.Cache, error) {
	if opts.noCache {
		return cache.NewNullCache(), nil
	}
	addr := opts.redis
	if addr == "" {
		addr = c.Config.Redis.Addr
	}
	if addr != "" {
		return cache.NewRedisCache(ctx, cache.RedisConfig{
			Addr:     addr,
			Password: c.Config.Redis.Password,
			DB:       c.Config.Redis.DB,
		})
	}
	return c.newCache(false)
}
