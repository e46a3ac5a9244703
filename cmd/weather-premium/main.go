package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"
	flag "github.com/spf13/pflag"

	"github.com/i474232898/weather-premium/internal/account"
	httpapi "github.com/i474232898/weather-premium/internal/api/http"
	"github.com/i474232898/weather-premium/internal/auth"
	"github.com/i474232898/weather-premium/internal/config"
	"github.com/i474232898/weather-premium/internal/favorites"
	"github.com/i474232898/weather-premium/internal/home"
	"github.com/i474232898/weather-premium/internal/scheduler"
	"github.com/i474232898/weather-premium/internal/store"
	"github.com/i474232898/weather-premium/internal/weather"
	"github.com/i474232898/weather-premium/internal/weather/providers"
)

func main() {
	issueToken := flag.String("issue-token", "", "print a bearer token for the given account id and exit")
	premium := flag.Bool("premium", false, "with --issue-token, provision the account as premium")
	flag.Parse()

	if err := godotenv.Load(); err != nil {
		log.Printf("INFO: No .env file found or error loading it: %v", err)
	}

	// Load configuration.
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	accounts, closeStore, err := openStore(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("failed to open store: %v", err)
	}
	defer closeStore()

	gate := account.NewGate(accounts)
	resolver := auth.NewResolver(cfg.JWTSecret)

	if *issueToken != "" {
		if err := provision(gate, *issueToken, *premium); err != nil {
			log.Fatalf("failed to provision account: %v", err)
		}
		token, err := resolver.Issue(*issueToken)
		if err != nil {
			log.Fatalf("failed to issue token: %v", err)
		}
		fmt.Println(token)
		return
	}

	// Shared HTTP client for outbound provider calls.
	httpClient := &http.Client{
		Timeout: cfg.HTTPTimeout,
	}

	opts := []providers.ClientOption{providers.WithForecastDays(cfg.ForecastDays)}
	if cfg.ProviderBreaker {
		opts = append(opts, providers.WithCircuitBreaker())
	}
	client := providers.NewWeatherAPIClient(httpClient, cfg.WeatherAPIBaseURL, cfg.WeatherAPIKey, opts...)

	service := weather.NewService(client)

	var favOpts []favorites.Option
	if cfg.FavoritesEnforceOwnership {
		favOpts = append(favOpts, favorites.WithOwnershipCheck())
	}
	composer := favorites.NewComposer(accounts, gate, service, favOpts...)
	homeSvc := home.NewService(service, gate, cfg.HomeCity)

	// Scheduler that periodically probes the provider.
	sched := scheduler.New(cfg.ProbeCities, cfg.ProbeInterval, service)
	if err := sched.Start(); err != nil {
		log.Fatalf("failed to start scheduler: %v", err)
	}
	defer sched.Stop()

	// Basic app configuration
	app := fiber.New(fiber.Config{
		AppName:               "weather-premium",
		DisableStartupMessage: true,
		ReadTimeout:           10 * time.Second,
		WriteTimeout:          10 * time.Second,
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			// Centralized error response
			code := fiber.StatusInternalServerError
			if e, ok := err.(*fiber.Error); ok {
				code = e.Code
			}
			return c.Status(code).JSON(fiber.Map{
				"error":   true,
				"message": err.Error(),
			})
		},
	})

	// Global middleware
	app.Use(requestid.New(requestid.Config{Generator: uuid.NewString}))
	app.Use(logger.New(logger.Config{
		Format: "[${time}] ${locals:requestid} ${status} - ${latency} ${method} ${path}\n",
	}))
	app.Use(recover.New())

	// Basic health endpoint
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status":  "ok",
			"service": "weather-premium",
		})
	})

	// API routes.
	httpapi.RegisterRoutes(app, httpapi.Dependencies{
		Weather:   service,
		Home:      homeSvc,
		Favorites: composer,
		Gate:      gate,
		Auth:      resolver,
	})

	go func() {
		if err := app.Listen(":" + cfg.Port); err != nil {
			log.Printf("fiber server stopped: %v", err)
		}
	}()
	log.Printf("INFO: listening on :%s", cfg.Port)

	// Wait for termination signal
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Printf("error during shutdown: %v", err)
	}
}

// openStore connects to Postgres when databaseURL is set and falls back to
// the in-memory store otherwise.
func openStore(databaseURL string) (account.Store, func(), error) {
	if databaseURL == "" {
		log.Println("INFO: DATABASE_URL not set; using in-memory store")
		return store.NewMemoryStore(), func() {}, nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	pool, err := pgxpool.New(ctx, databaseURL)
	if err != nil {
		return nil, nil, err
	}

	pg := store.NewPostgresStore(pool)
	if err := pg.Health(ctx); err != nil {
		pool.Close()
		return nil, nil, err
	}
	if err := pg.Migrate(ctx); err != nil {
		pool.Close()
		return nil, nil, err
	}
	log.Println("INFO: connected to PostgreSQL")

	return pg, pool.Close, nil
}

// provision makes sure the account exists and, if asked, is premium.
func provision(gate *account.Gate, accountID string, premium bool) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	id := account.Identity{AccountID: accountID}
	if _, err := gate.Register(ctx, id); err != nil {
		return err
	}
	if premium {
		return gate.Upgrade(ctx, id)
	}
	return nil
}
