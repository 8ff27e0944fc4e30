// @title Event Scheduler API
// @version 1.0
// @description Events, invitations with RSVP, dashboard counts and AI helpers.
// @BasePath /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and the JWT.
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

	"eventscheduler/config"
	"eventscheduler/database"
	_ "eventscheduler/docs"
	"eventscheduler/internal/adapters/assist"
	"eventscheduler/internal/adapters/auth"
	"eventscheduler/internal/adapters/calendar"
	deliveryhttp "eventscheduler/internal/delivery/http"
	"eventscheduler/internal/delivery/http/controllers"
	"eventscheduler/internal/delivery/http/middleware"
	"eventscheduler/internal/domain"
	"eventscheduler/internal/repository/postgres"
	"eventscheduler/internal/services"

	"github.com/urfave/cli/v2"
)

const shutdownTimeout = 10 * time.Second

func main() {
	app := &cli.App{
		Name:  "server",
		Usage: "Event scheduling API: events, invitations, dashboard and AI helpers.",
		Commands: []*cli.Command{
			serveCommand(),
			migrateCommand(),
		},
	}

	if err := app.Run(os.Args); err != nil {
		slog.Error("Application failed", "error", err)
		os.Exit(1)
	}
}

func serveCommand() *cli.Command {
	return &cli.Command{
		Name:  "serve",
		Usage: "Run the HTTP API.",
		Flags: []cli.Flag{
			&cli.BoolFlag{Name: "migrate", Usage: "Apply pending migrations before serving."},
		},
		Action: func(c *cli.Context) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			logger := config.NewLogger(cfg)

			ctx, stop := signal.NotifyContext(c.Context, syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			db, err := postgres.Open(ctx, cfg.DBUrl)
			if err != nil {
				return fmt.Errorf("failed to initialize storage: %w", err)
			}
			defer db.Close()

			if c.Bool("migrate") {
				logger.Info("applying migrations")
				if err := database.Migrate(db, "up"); err != nil {
					return err
				}
			}

			generator, err := assist.NewGenerator(assist.Config{
				Provider: cfg.Assist.Provider,
				APIKey:   cfg.Assist.APIKey,
				Model:    cfg.Assist.Model,
				BaseURL:  cfg.Assist.BaseURL,
				Timeout:  cfg.Assist.Timeout,
			})
			switch {
			case errors.Is(err, domain.ErrAssistNotConfigured):
				logger.Warn("ASSIST_API_KEY not set, AI endpoints are disabled")
				generator = nil
			case err != nil:
				return err
			default:
				logger.Info("ai provider ready", "provider", cfg.Assist.Provider)
			}

			eventRepo := postgres.NewEventRepository(db)
			participantRepo := postgres.NewEventParticipantRepository(db)
			profileRepo := postgres.NewProfileRepository(db)
			jwt := auth.NewJWT(cfg.JWT.Secret)
			timeout := cfg.RequestTimeout

			userService := services.NewUserService(profileRepo, eventRepo, auth.NewBcryptHasher(cfg.BcryptCost), jwt, cfg.JWT.Expiry, timeout)
			eventService := services.NewEventService(eventRepo, participantRepo, profileRepo, calendar.NewICSRenderer(), timeout)
			invitationService := services.NewInvitationService(eventRepo, participantRepo, profileRepo, timeout)
			dashboardService := services.NewDashboardService(eventRepo, participantRepo, profileRepo, timeout)
			assistService := services.NewAssistService(generator, eventRepo, cfg.Assist.Timeout)

			router := deliveryhttp.NewRouter(deliveryhttp.Controllers{
				Users:       controllers.NewUserController(logger, userService),
				Events:      controllers.NewEventController(logger, eventService),
				Invitations: controllers.NewInvitationController(logger, invitationService),
				Dashboard:   controllers.NewDashboardController(logger, dashboardService),
				Assist:      controllers.NewAssistController(logger, assistService),
			}, jwt, logger)

			srv := &http.Server{
				Addr:              ":" + cfg.Port,
				Handler:           middleware.LoggingMiddleware(logger, middleware.CORS(cfg.CORSAllowedOrigins, router)),
				ReadHeaderTimeout: 5 * time.Second,
				ReadTimeout:       15 * time.Second,
				WriteTimeout:      cfg.Assist.Timeout + 15*time.Second,
				IdleTimeout:       60 * time.Second,
			}
			return serve(ctx, logger, srv)
		},
	}
}

// serve runs srv until ctx is cancelled, then drains in-flight requests.
func serve(ctx context.Context, logger *slog.Logger, srv *http.Server) error {
	errCh := make(chan error, 1)
	go func() {
		logger.Info("Starting server on", "address", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("server failed: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	logger.Info("received interruption signal, shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("error during server shutdown: %w", err)
	}
	logger.Info("shutdown complete")
	return nil
}

func migrateCommand() *cli.Command {
	return &cli.Command{
		Name:      "migrate",
		Usage:     "Run database migrations.",
		ArgsUsage: "[up|down|status]",
		Action: func(c *cli.Context) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			logger := config.NewLogger(cfg)

			db, err := postgres.Open(c.Context, cfg.DBUrl)
			if err != nil {
				return fmt.Errorf("failed to initialize storage: %w", err)
			}
			defer db.Close()

			command := c.Args().First()
			logger.Info("running migrations", "command", command)
			return database.Migrate(db, command)
		},
	}
}
