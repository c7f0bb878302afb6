package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"blog/internal/catalog"
	"blog/internal/config"
	"blog/internal/logging"
	"blog/internal/render"
	"blog/internal/server"
	"blog/internal/todos"
	"blog/web"
)

func newRootCmd() *cobra.Command {
	var configPath, addr string

	cmd := &cobra.Command{
		Use:           "blog",
		Short:         "Blog - posts catalog and todo list over HTTP",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(configPath)
			if err != nil {
				fmt.Fprintln(os.Stderr, err)
				return err
			}
			if addr != "" {
				cfg.Addr = addr
			}
			logger, err := logging.New(os.Stderr, cfg.Log.Level, cfg.Log.Format)
			if err != nil {
				fmt.Fprintln(os.Stderr, err)
				return err
			}
			logging.Install(logger)

			if err := serve(cmd.Context(), cfg, logger); err != nil {
				logger.Error(err.Error())
				return err
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&configPath, "config", "", "path to a YAML config file (default $BLOG_CONFIG)")
	cmd.Flags().StringVar(&addr, "addr", "", "listen address, overrides the config file and $PORT")
	return cmd
}

func loadCatalog(cfg *config.Config) (*catalog.Catalog, error) {
	if cfg.Catalog == "" {
		return catalog.Seed()
	}
	return catalog.LoadFile(cfg.Catalog)
}

func serve(ctx context.Context, cfg *config.Config, logger *slog.Logger) error {
	posts, err := loadCatalog(cfg)
	if err != nil {
		return fmt.Errorf("load catalog: %w", err)
	}
	logger.Info("catalog loaded", "posts", posts.Len(), "categories", len(posts.ListCategories()))

	md := render.NewMarkdown(render.Options{AllowRawHTML: cfg.Markdown.AllowRawHTML})
	srv, err := server.New(posts, todos.NewStore(), md, web.FS, logger)
	if err != nil {
		return err
	}

	httpServer := &http.Server{
		Addr:              cfg.Addr,
		Handler:           srv,
		ReadHeaderTimeout: 10 * time.Second,
		ErrorLog:          slog.NewLogLogger(logger.Handler(), slog.LevelWarn),
	}

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	listenErr := make(chan error, 1)
	go func() {
		logger.Info("listening", "addr", cfg.Addr)
		listenErr <- httpServer.ListenAndServe()
	}()

	select {
	case err := <-listenErr:
		if !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	case <-ctx.Done():
		logger.Info("shutting down")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	return httpServer.Shutdown(shutdownCtx)
}
