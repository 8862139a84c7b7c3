package routes

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/redis/go-redis/v9"

	"github.com/business-nexus/nexus/internal/auth"
	"github.com/business-nexus/nexus/internal/config"
	"github.com/business-nexus/nexus/internal/directory"
	"github.com/business-nexus/nexus/internal/documents"
	"github.com/business-nexus/nexus/internal/middleware"
	"github.com/business-nexus/nexus/internal/notification"
	"github.com/business-nexus/nexus/internal/scheduling"
	"github.com/business-nexus/nexus/internal/store"
	"github.com/business-nexus/nexus/internal/wallet"
)

// Deps aggregates shared dependencies required to wire routes.
type Deps struct {
	Cfg    config.Config
	Store  store.Store
	Cache  *redis.Client
	Logger *slog.Logger
}

// Setup configures middlewares and all application routes.
func Setup(app *fiber.App, d Deps) error {
	if d.Store == nil {
		// Dev-only fallback; production wiring always passes a durable store.
		d.Store = store.NewMemory()
	}

	app.Use(recover.New())
	app.Use(middleware.RequestID())
	app.Use(middleware.Audit(d.Logger))
	if d.Cache != nil {
		app.Use(middleware.Idempotency(d.Cache, d.Cfg.IdempotencyTTL, d.Logger))
	}

	RegisterHealthRoutes(app, d)

	// Services and handlers
	notifier := notification.NewLoggerNotifier(d.Logger)

	userRepo := directory.NewStoreRepository(d.Store)
	userSvc := directory.NewService(userRepo)
	tokenSvc := auth.NewService(d.Cfg)
	walletSvc := wallet.NewService(d.Store, notifier)
	schedulingSvc := scheduling.NewService(d.Store, notifier)
	documentSvc := documents.NewService(d.Store, notifier)

	authHandler := auth.NewHandler(userSvc, tokenSvc)
	userHandler := directory.NewHandler(userSvc)
	walletHandler := wallet.NewHandler(walletSvc)
	schedulingHandler := scheduling.NewHandler(schedulingSvc)
	documentHandler := documents.NewHandler(documentSvc)

	api := app.Group("/api/v1")
	api.Get("/ping", func(c *fiber.Ctx) error {
		reqID, _ := c.Locals("X-Request-ID").(string)
		return c.Status(http.StatusOK).JSON(fiber.Map{
			"status":     "ok",
			"request_id": reqID,
			"timestamp":  time.Now().UTC().Format(time.RFC3339Nano),
		})
	})

	// Public routes
	rateLimiter := middleware.LoginRateLimit(d.Cache, 5)
	RegisterAuthRoutes(api, authHandler, rateLimiter)

	// Protected routes
	jwtmw := middleware.JWTAuth(d.Cfg, userRepo)
	protected := api.Group("", jwtmw)
	RegisterUserRoutes(protected, userHandler, userSvc)
	RegisterWalletRoutes(protected, walletHandler)
	RegisterSchedulingRoutes(protected, schedulingHandler)
	RegisterDocumentRoutes(protected, documentHandler)

	return nil
}
