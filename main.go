//
// Articles
// ========
// A REST service for blog articles stored in Postgres.
//
// Pass -routes to print the generated route docs instead of serving:
// `go run . -routes`
//
// Boot the server:
// ----------------
// $ ARTICLES_DATABASE_URL=postgres://localhost/blogful go run .
// $ go run . -store memory
//
// Client requests:
// ----------------
// $ curl http://localhost:3333/
// Hello, boilerplate!
//
// $ curl http://localhost:3333/articles
// []
//
// $ curl -i -X POST -d '{"title":"Hi","style":"Story","content":"sup"}' http://localhost:3333/articles
// HTTP/1.1 201 Created
// Location: /articles/1
// {"id":1,"title":"Hi","style":"Story","content":"sup","date_published":"2029-01-22T16:28:32.615Z"}
//
// $ curl http://localhost:3333/articles/1
// {"id":1,"title":"Hi","style":"Story","content":"sup","date_published":"2029-01-22T16:28:32.615Z"}
//
// $ curl http://localhost:3333/articles/2
// {"error":{"message":"Article doesn't exist"}}
//
// $ curl http://localhost:9999/metrics
//
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"github.com/SergeyParamoshkin/articles/internal/article"
	"github.com/SergeyParamoshkin/articles/internal/config"
	"github.com/SergeyParamoshkin/articles/internal/db"
	"github.com/SergeyParamoshkin/articles/internal/metrics"
	"github.com/SergeyParamoshkin/articles/internal/server"
)

const ServiceName = "articles"

func main() {
	cfg, err := config.FromEnvironment(ServiceName)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	logger, err := newLogger(cfg)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	defer logger.Sync() // flushes buffer, if any
	sugar := logger.Sugar()

	if cfg.Routes {
		a := server.New(cfg, sugar, article.NewMemStore(), nil)
		fmt.Println(a.RoutesDoc())

		return
	}

	if err := cfg.Validate(); err != nil {
		sugar.Fatalw("invalid config", "error", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, sugar); err != nil {
		sugar.Errorw("server exited", "error", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg *config.Config, sugar *zap.SugaredLogger) error {
	var store article.Store
	switch cfg.Store {
	case config.StoreMemory:
		store = article.NewMemStore()
	default:
		pool, err := db.NewPool(ctx, cfg.DatabaseURL)
		if err != nil {
			return err
		}
		defer pool.Close()
		store = article.NewPGStore(pool)
	}

	m, err := metrics.New(ServiceName)
	if err != nil {
		return err
	}

	sugar.Infow("starting", "env", cfg.Env, "store", cfg.Store)

	return server.New(cfg, sugar, store, m).Run(ctx)
}

func newLogger(cfg *config.Config) (*zap.Logger, error) {
	if cfg.Production() {
		return zap.NewProduction()
	}

	return zap.NewDevelopment()
}
