// Package server composes the public router and runs the application and
// diagnostics HTTP servers.
package server

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/docgen"
	"github.com/go-chi/render"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/SergeyParamoshkin/articles/internal/article"
	"github.com/SergeyParamoshkin/articles/internal/config"
	"github.com/SergeyParamoshkin/articles/internal/errresponse"
	"github.com/SergeyParamoshkin/articles/internal/metrics"
	mw "github.com/SergeyParamoshkin/articles/internal/middleware"
)

const Greeting = "Hello, boilerplate!"

type App struct {
	sugarLogger *zap.SugaredLogger
	config      *config.Config
	store       article.Store
	metrics     *metrics.Metrics
	errors      *errresponse.Handler
}

// New wires the application. metrics may be nil, in which case no request
// metrics are recorded and the diagnostics server is not started.
func New(cfg *config.Config, logger *zap.SugaredLogger, store article.Store, m *metrics.Metrics) *App {
	return &App{
		sugarLogger: logger,
		config:      cfg,
		store:       store,
		metrics:     m,
		errors:      errresponse.NewHandler(cfg.Production(), logger),
	}
}

// Router builds the public HTTP surface.
func (a *App) Router() chi.Router {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(mw.Logger(a.sugarLogger))
	r.Use(mw.RequestLogger(a.sugarLogger, a.config.Production()))
	if a.metrics != nil {
		r.Use(a.metrics.Middleware)
	}
	r.Use(mw.Recover(a.errors))
	r.Use(mw.SecureHeaders())
	r.Use(mw.CORS())
	r.Use(render.SetContentType(render.ContentTypeJSON))

	r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		if _, err := w.Write([]byte(Greeting)); err != nil {
			a.sugarLogger.Errorw(err.Error())
		}
	})

	r.Get("/ping", func(w http.ResponseWriter, r *http.Request) {
		mw.LoggerFromContext(r.Context()).Debugw("ping")
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		if _, err := w.Write([]byte("pong")); err != nil {
			a.sugarLogger.Errorw(err.Error())
		}
	})

	// RESTy routes for "articles" resource
	r.Mount("/articles", article.NewAPI(a.store, a.errors, a.sugarLogger).Routes())

	return r
}

// RoutesDoc renders Markdown documentation for the public router.
func (a *App) RoutesDoc() string {
	return docgen.MarkdownRoutesDoc(a.Router(), docgen.MarkdownOpts{
		ProjectPath: "github.com/SergeyParamoshkin/articles",
		Intro:       "Routes served by the articles API.",
	})
}

// Run serves until ctx is cancelled or a server fails, then shuts both
// servers down within the configured timeout.
func (a *App) Run(ctx context.Context) error {
	servers := []*http.Server{{
		Addr:              a.config.Addr,
		Handler:           a.Router(),
		ReadHeaderTimeout: 5 * time.Second,
	}}
	if a.metrics != nil && a.config.DiagAddr != "" {
		diagRouter := chi.NewRouter()
		diagRouter.Method(http.MethodGet, "/metrics", a.metrics.Handler())
		servers = append(servers, &http.Server{
			Addr:              a.config.DiagAddr,
			Handler:           diagRouter,
			ReadHeaderTimeout: 5 * time.Second,
		})
	}

	g, gctx := errgroup.WithContext(ctx)
	for _, srv := range servers {
		srv := srv
		g.Go(func() error {
			a.sugarLogger.Infow("listening", "addr", srv.Addr)
			if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
				return err
			}
			return nil
		})
	}

	g.Go(func() error {
		<-gctx.Done()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), a.config.ShutdownTimeout)
		defer cancel()

		var firstErr error
		for _, srv := range servers {
			if err := srv.Shutdown(shutdownCtx); err != nil && firstErr == nil {
				firstErr = err
			}
		}
		a.sugarLogger.Infow("servers stopped")

		return firstErr
	})

	return g.Wait()
}
