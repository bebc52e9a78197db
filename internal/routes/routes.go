package routes

import (
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"

	"github.com/jetbook/jetbook/internal/auth"
	"github.com/jetbook/jetbook/internal/booking"
	"github.com/jetbook/jetbook/internal/catalog"
	"github.com/jetbook/jetbook/internal/chat"
	"github.com/jetbook/jetbook/internal/config"
	"github.com/jetbook/jetbook/internal/contact"
	"github.com/jetbook/jetbook/internal/membership"
	"github.com/jetbook/jetbook/internal/metrics"
	"github.com/jetbook/jetbook/internal/middleware"
	"github.com/jetbook/jetbook/internal/notification"
	"github.com/jetbook/jetbook/internal/ownership"
	"github.com/jetbook/jetbook/internal/user"
)

// Deps aggregates shared dependencies required to wire routes.
type Deps struct {
	Cfg    config.Config
	DB     *pgxpool.Pool
	Cache  *redis.Client
	Logger *slog.Logger
}

// Setup configures middlewares and all application routes.
func Setup(app *fiber.App, d Deps) error {
	// Enforce DB/Redis presence outside of dev, even though main also checks.
	if !isDev(d.Cfg.AppEnv) {
		if d.DB == nil {
			return fmt.Errorf("database is required when APP_ENV=%s", d.Cfg.AppEnv)
		}
		if d.Cache == nil {
			return fmt.Errorf("redis is required when APP_ENV=%s", d.Cfg.AppEnv)
		}
	}

	// Middlewares
	app.Use(recover.New())
	app.Use(middleware.RequestID())
	// Plain text access log: [HH:MM:SS] 200 -  145ms METHOD /path
	app.Use(logger.New(logger.Config{
		Format:     "[${time}] ${status} -  ${latency} ${method} ${path}\n",
		TimeFormat: "15:04:05",
		TimeZone:   "Local",
	}))
	app.Use(middleware.Audit(d.Logger))
	m := metrics.New()
	app.Use(m.Middleware())
	if d.Cache != nil {
		app.Use(middleware.Idempotency(d.Cache, d.Cfg.IdempotencyTTL, d.Logger))
	}

	RegisterHealthRoutes(app, d)
	app.Get("/metrics", m.Handler())

	// Repositories, with in-memory fallbacks for dev without a database.
	var (
		userRepo    user.Repository
		jetRepo     catalog.JetRepository
		catRepo     catalog.CategoryRepository
		bookingRepo booking.Repository
		planRepo    membership.PlanRepository
		enrollRepo  membership.EnrollmentRepository
		shareRepo   ownership.Repository
		contactRepo contact.Repository
	)
	if d.DB != nil {
		userRepo = user.NewPostgresRepository(d.DB)
		jetRepo = catalog.NewPostgresJetRepository(d.DB)
		catRepo = catalog.NewPostgresCategoryRepository(d.DB)
		bookingRepo = booking.NewPostgresRepository(d.DB)
		planRepo = membership.NewPostgresPlanRepository(d.DB)
		enrollRepo = membership.NewPostgresEnrollmentRepository(d.DB)
		shareRepo = ownership.NewPostgresRepository(d.DB)
		contactRepo = contact.NewPostgresRepository(d.DB)
	} else {
		userRepo = user.NewMemoryRepository()
		jetRepo = catalog.NewMemoryJetRepository()
		catRepo = catalog.NewMemoryCategoryRepository()
		bookingRepo = booking.NewMemoryRepository()
		planRepo = membership.NewMemoryPlanRepository()
		enrollRepo = membership.NewMemoryEnrollmentRepository()
		shareRepo = ownership.NewMemoryRepository()
		contactRepo = contact.NewMemoryRepository()
	}

	// Services and handlers
	notifier := notification.NewLoggerNotifier(d.Logger)
	catalogSvc := catalog.NewService(jetRepo, catRepo, d.Cache)
	bookingSvc := booking.NewService(bookingRepo, catalogSvc, notifier)
	membershipSvc := membership.NewService(planRepo, enrollRepo, userRepo, notifier)
	ownershipSvc := ownership.NewService(shareRepo, catalogSvc)
	chatSvc := chat.NewService(chat.NewMCPClient(d.Cfg.MCPURL), d.Logger)

	issuer := auth.NewTokenIssuer(d.Cfg.JWTSecret, d.Cfg.TokenTTL)
	verifier := auth.NewTokenVerifier(d.Cfg.JWTSecret)
	resolver := auth.NewResolver(verifier, userRepo)
	authSvc := auth.NewService(userRepo, issuer)

	authHandler := auth.NewHandler(authSvc)
	catalogHandler := catalog.NewHandler(catalogSvc)
	bookingHandler := booking.NewHandler(bookingSvc)
	membershipHandler := membership.NewHandler(membershipSvc)
	ownershipHandler := ownership.NewHandler(ownershipSvc)
	contactHandler := contact.NewHandler(contactRepo)
	chatHandler := chat.NewHandler(chatSvc)

	// API routes
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
	RegisterCatalogRoutes(api, catalogHandler)
	RegisterContactRoutes(api, contactHandler)
	RegisterMembershipPlanRoutes(api, membershipHandler)

	// Protected routes
	protected := api.Group("", middleware.RequireAuth(resolver))
	RegisterProfileRoutes(protected, userRepo)
	RegisterBookingRoutes(protected, bookingHandler)
	RegisterMembershipRoutes(protected, membershipHandler)
	RegisterOwnershipRoutes(protected, ownershipHandler)
	RegisterChatRoutes(protected, chatHandler)

	// Admin routes
	admin := protected.Group("/admin", middleware.RequireRole(user.RoleAdmin))
	RegisterAdminUserRoutes(admin, userRepo)
	RegisterAdminCatalogRoutes(admin, catalogHandler)
	RegisterAdminBookingRoutes(admin, bookingHandler)
	RegisterAdminMembershipRoutes(admin, membershipHandler)
	RegisterAdminOwnershipRoutes(admin, ownershipHandler)
	RegisterAdminContactRoutes(admin, contactHandler)

	return nil
}

func isDev(env string) bool {
	switch strings.ToLower(env) {
	case "dev", "development", "local":
		return true
	default:
		return false
	}
}
