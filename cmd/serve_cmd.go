package cmd

import (
	"context"
	"errors"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	"movie-discovery/pkg/config"
	"movie-discovery/pkg/controllers"
	"movie-discovery/pkg/fetcher"
	"movie-discovery/pkg/gateway"
	"movie-discovery/pkg/handlers"
	"movie-discovery/pkg/render"
	"movie-discovery/pkg/sessions"
	"movie-discovery/pkg/telemetry"
)

const shutdownTimeout = 5 * time.Second

// newServeCmd creates a new command for serving the web application
func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the web server",
		Long:  `Start the web server hosting the gateway and the browsing pages.`,
		Run: func(cmd *cobra.Command, args []string) {
			cfg, err := LoadConfig()
			if err != nil {
				log.Fatalf("Failed to load configuration: %v", err)
			}
			if err := Serve(cmd.Context(), cfg); err != nil {
				slog.Error("Server error", "error", err)
				os.Exit(1)
			}
		},
	}
}

// NewRouter builds the gin engine serving the gateway and the browser routes
func NewRouter(cfg *config.Config) (*gin.Engine, error) {
	renderer, err := render.New(cfg.ImageBaseURL)
	if err != nil {
		return nil, err
	}

	client := fetcher.New(cfg.GatewayURL, nil)
	store, err := sessions.NewStore(cfg.SessionTTL, func() (*controllers.Page, error) {
		return controllers.NewPage(client, renderer, cfg.Categories, nil)
	})
	if err != nil {
		return nil, err
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(otelgin.Middleware(telemetry.ServiceName))

	gateway.New(cfg.APIKey, cfg.UpstreamBaseURL, nil).Register(r)
	handlers.New(store).Register(r)
	return r, nil
}

// Serve runs the web server until ctx is done or the process is signalled
func Serve(ctx context.Context, cfg *config.Config) error {
	if err := cfg.RequireAPIKey(); err != nil {
		return err
	}
	if ctx == nil {
		ctx = context.Background()
	}
	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	shutdown, err := telemetry.SetupOpenTelemetry(ctx, cfg.GoogleProjectID)
	if err != nil {
		return err
	}
	defer func() {
		if err := shutdown(context.Background()); err != nil {
			slog.Warn("Failed to shut down telemetry", "error", err)
		}
	}()

	r, err := NewRouter(cfg)
	if err != nil {
		return err
	}

	srv := &http.Server{
		Addr:    cfg.ServerAddress(),
		Handler: r,
	}

	errCh := make(chan error, 1)
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()
	cfg.PrintServerStartMessage()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}
	slog.Info("Shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	return <-errCh
}
