// Package api wires the storefront's bounded contexts into one HTTP
// process: repositories, services, observability, and the router.
package api

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"gorm.io/gorm"

	"github.com/greenbasket/storefront-api/internal/clients/http/stripe"
	cataloghttp "github.com/greenbasket/storefront-api/internal/domains/catalog/adapters/http"
	catalogmemory "github.com/greenbasket/storefront-api/internal/domains/catalog/adapters/memory"
	catalogpostgres "github.com/greenbasket/storefront-api/internal/domains/catalog/adapters/persistence/postgres"
	catalogapp "github.com/greenbasket/storefront-api/internal/domains/catalog/application"
	cataloghports "github.com/greenbasket/storefront-api/internal/domains/catalog/ports"
	ordershttp "github.com/greenbasket/storefront-api/internal/domains/orders/adapters/http"
	ordersmemory "github.com/greenbasket/storefront-api/internal/domains/orders/adapters/memory"
	ordersobs "github.com/greenbasket/storefront-api/internal/domains/orders/adapters/observability"
	orderspostgres "github.com/greenbasket/storefront-api/internal/domains/orders/adapters/persistence/postgres"
	ordersapp "github.com/greenbasket/storefront-api/internal/domains/orders/application"
	ordersports "github.com/greenbasket/storefront-api/internal/domains/orders/ports"
	sellershttp "github.com/greenbasket/storefront-api/internal/domains/sellers/adapters/http"
	sellersapp "github.com/greenbasket/storefront-api/internal/domains/sellers/application"
	subscribershttp "github.com/greenbasket/storefront-api/internal/domains/subscribers/adapters/http"
	subscribersmemory "github.com/greenbasket/storefront-api/internal/domains/subscribers/adapters/memory"
	subscriberspostgres "github.com/greenbasket/storefront-api/internal/domains/subscribers/adapters/persistence/postgres"
	subscribersapp "github.com/greenbasket/storefront-api/internal/domains/subscribers/application"
	subscribersports "github.com/greenbasket/storefront-api/internal/domains/subscribers/ports"
	usershttp "github.com/greenbasket/storefront-api/internal/domains/users/adapters/http"
	usersmemory "github.com/greenbasket/storefront-api/internal/domains/users/adapters/memory"
	userspostgres "github.com/greenbasket/storefront-api/internal/domains/users/adapters/persistence/postgres"
	usersapp "github.com/greenbasket/storefront-api/internal/domains/users/application"
	usersports "github.com/greenbasket/storefront-api/internal/domains/users/ports"
	"github.com/greenbasket/storefront-api/internal/platform/migrations"
	"github.com/greenbasket/storefront-api/internal/platform/observability"
	platformpostgres "github.com/greenbasket/storefront-api/internal/platform/postgres"
)

// Run boots the storefront HTTP API with observability, repositories,
// and the payment gateway wired.
func Run(ctx context.Context) error {
	const serviceName = "storefront-api"

	cfg, err := LoadConfig()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	instruments, shutdown, err := observability.Init(ctx, serviceName)
	if err != nil {
		return fmt.Errorf("failed to initialize observability: %w", err)
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := shutdown(shutdownCtx); err != nil {
			instruments.Logger.Error("failed to shutdown observability", slog.String("error", err.Error()))
		}
	}()
	logger := instruments.Logger

	db, cleanupDB := platformpostgres.ConnectOptional(ctx, cfg.PostgresDSN, logger)
	defer cleanupDB()
	if db != nil {
		if err := migrations.Run(db); err != nil {
			return fmt.Errorf("apply schema: %w", err)
		}
	}

	orderRepo, catalogRepo, userRepo, subscriberRepo, sessions := buildRepositories(db, logger)

	catalogService := catalogapp.NewService(catalogRepo)
	userService := usersapp.NewService(userRepo, sessions)
	sellerService := sellersapp.NewService(cfg.SellerEmail, cfg.SellerPassword, sessions)
	subscriberService := subscribersapp.NewService(subscriberRepo)

	gateway, verifier := buildGateway(cfg, logger)
	orderService := ordersobs.New(
		ordersapp.NewService(orderRepo, catalogService, gateway, userService,
			ordersapp.WithLogger(logger),
			ordersapp.WithCurrency(cfg.Currency),
		),
		ordersobs.WithLogger(logger),
		ordersobs.WithTracer(instruments.Tracer("internal.orders.application")),
		ordersobs.WithMeter(instruments.Meter("internal.orders.application")),
	)

	router := newRouter(serviceName, handlers{
		orders:      ordershttp.NewHandler(orderService, verifier, logger),
		catalog:     cataloghttp.NewHandler(catalogService, logger),
		users:       usershttp.NewHandler(userService, logger),
		sellers:     sellershttp.NewHandler(sellerService, logger),
		subscribers: subscribershttp.NewHandler(subscriberService, logger),
	}, sessions, sellerService)

	addr := ":" + cfg.Port
	logger.Info("storefront API listening", slog.String("addr", addr))
	if err := router.Run(addr); err != nil {
		logger.Error("storefront API server exited", slog.String("addr", addr), slog.String("error", err.Error()))
		return err
	}
	return nil
}

// buildRepositories selects Postgres-backed stores when a database is
// connected and in-memory stores otherwise.
func buildRepositories(db *gorm.DB, logger *slog.Logger) (
	ordersports.Repository,
	cataloghports.Repository,
	usersports.Repository,
	subscribersports.Repository,
	usersports.SessionStore,
) {
	if db == nil {
		return ordersmemory.NewRepository(),
			catalogmemory.NewRepository(),
			usersmemory.NewRepository(),
			subscribersmemory.NewRepository(),
			usersmemory.NewSessionStore()
	}
	logger.Info("repositories configured with postgres")
	return orderspostgres.NewRepository(db),
		catalogpostgres.NewRepository(db),
		userspostgres.NewRepository(db),
		subscriberspostgres.NewRepository(db),
		userspostgres.NewSessionStore(db, userspostgres.DefaultSessionTTL)
}

// buildGateway constructs the Stripe client and webhook verifier. With
// no credentials configured the nil clients reject every call with a
// configuration error, so COD ordering keeps working.
func buildGateway(cfg Config, logger *slog.Logger) (ordersports.CheckoutGateway, ordersports.WebhookVerifier) {
	var gateway ordersports.CheckoutGateway = (*stripe.Client)(nil)
	var verifier ordersports.WebhookVerifier = (*stripe.WebhookVerifier)(nil)

	if client, err := stripe.NewClient(cfg.StripeSecretKey, cfg.StripeBaseURL, nil); err != nil {
		logger.Warn("stripe gateway not configured, online checkout disabled", slog.String("error", err.Error()))
	} else {
		gateway = client
	}
	if v, err := stripe.NewWebhookVerifier(cfg.StripeWebhookSecret); err != nil {
		logger.Warn("stripe webhook verification not configured", slog.String("error", err.Error()))
	} else {
		verifier = v
	}
	return gateway, verifier
}
