package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"alcyxob/coaching-app/internal/api"
	"alcyxob/coaching-app/internal/logging"

	"github.com/cockroachdb/errors"
	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func newServeCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP server",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd, opts)
		},
	}
}

func runServe(_ *cobra.Command, opts *rootOptions) error {
	a, err := openApp(opts.configPath)
	if err != nil {
		return err
	}
	defer a.Close()
	logger := a.logger

	if a.cfg.Session.Secret == "dev_secret" {
		logger.Warn("session.secret is the development default; set SESSION_SECRET in production")
	}

	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(logging.RequestLogger(logger), gin.Recovery())

	sessions := api.NewSessionManager(a.cfg.Session.Secret, a.cfg.Session.MaxAge, a.cfg.Session.Secure)
	api.SetupRoutes(router, sessions, a.services(), a.files, logger)

	server := &http.Server{
		Addr:         a.cfg.Server.Address,
		Handler:      router,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	serverErr := make(chan error, 1)
	go func() {
		logger.Info("server starting", zap.String("address", a.cfg.Server.Address))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
		close(serverErr)
	}()

	// Wait for interrupt signal to gracefully shut down the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(quit)

	select {
	case err := <-serverErr:
		if err != nil {
			return errors.Wrap(err, "listen")
		}
		return nil
	case <-quit:
	}
	logger.Info("shutting down server")

	ctxShutdown, cancelShutdown := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancelShutdown()
	if err := server.Shutdown(ctxShutdown); err != nil {
		return errors.Wrap(err, "server forced to shutdown")
	}
	logger.Info("server exiting")
	return nil
}
