package api

import (
	"time"

	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"
	"go.mongodb.org/mongo-driver/mongo"

	_ "github.com/swiftship/courier-portal/docs"
	"github.com/swiftship/courier-portal/internal/api/handler"
	"github.com/swiftship/courier-portal/internal/api/middleware"
	"github.com/swiftship/courier-portal/internal/core/domain"
	"github.com/swiftship/courier-portal/internal/core/service"
	mongorepo "github.com/swiftship/courier-portal/internal/infrastructure/db/mongo"
	redisinfra "github.com/swiftship/courier-portal/internal/infrastructure/db/redis"
	"github.com/swiftship/courier-portal/internal/infrastructure/queue"
	"github.com/swiftship/courier-portal/internal/web"
)

// RouterConfig carries the knobs the router needs from the environment.
type RouterConfig struct {
	JWTSecret    string
	EventWorkers int
}

// NewRouter builds the Echo instance with all routes registered. The returned
// Dispatcher is not started; the caller owns its lifecycle.
func NewRouter(db *mongo.Database, rdb *redis.Client, cfg RouterConfig, log zerolog.Logger) (*echo.Echo, *queue.Dispatcher, error) {
	e := echo.New()
	e.HideBanner = true

	renderer, err := web.NewRenderer()
	if err != nil {
		return nil, nil, err
	}
	e.Renderer = renderer
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echoprometheus.NewMiddleware("courier"))

	// --- Repositories ---
	consignmentRepo := mongorepo.NewConsignmentRepository(db)
	partnerRepo := mongorepo.NewPartnerRepository(db)
	contactRepo := mongorepo.NewContactRepository(db)
	eventRepo := mongorepo.NewEventRepository(db)
	authRepo := mongorepo.NewAuthRepository(db)

	// --- Caches and idempotency store ---
	trackingCache := redisinfra.NewTrackingCache(rdb)
	dedup := redisinfra.NewDedupChecker(rdb)

	// --- Services ---
	trackingService := service.NewTrackingService(consignmentRepo, trackingCache, log)
	consignmentService := service.NewConsignmentService(consignmentRepo, log)
	partnerService := service.NewPartnerService(partnerRepo, log)
	eventService := service.NewEventService(consignmentRepo, eventRepo, dedup, trackingCache, log)
	authService := service.NewAuthService(authRepo, cfg.JWTSecret, 24*time.Hour)
	dispatcher := queue.NewDispatcher(cfg.EventWorkers, eventService, log)

	// --- Handlers ---
	webHandler := web.NewHandler(trackingService, partnerService, contactRepo, log)
	consignmentHandler := handler.NewConsignmentHandler(consignmentService)
	partnerHandler := handler.NewPartnerHandler(partnerService)
	eventHandler := handler.NewEventHandler(dispatcher)
	authHandler := handler.NewAuthHandler(authService)
	authMiddleware := middleware.Auth(cfg.JWTSecret)

	// --- Website ---
	web.RegisterStatic(e)
	e.GET("/", webHandler.Home)
	e.GET("/about/", webHandler.About)
	e.GET("/service/", webHandler.Service)
	e.GET("/contact/", webHandler.Contact)
	e.POST("/contact/", webHandler.SubmitContact)
	e.GET("/join-with-us/", webHandler.JoinWithUs)
	e.POST("/join-with-us/", webHandler.SubmitPartner)
	e.GET("/track-consignment/", webHandler.TrackConsignment)

	// --- Auth ---
	e.POST("/auth/register", authHandler.Register)
	e.POST("/auth/login", authHandler.Login)

	// --- Operations API ---
	v1 := e.Group("/v1", authMiddleware)
	v1.POST("/consignments", consignmentHandler.Book)
	v1.GET("/consignments", consignmentHandler.List)
	v1.GET("/consignments/:consignment_number", consignmentHandler.Get)
	v1.POST("/events", eventHandler.Receive)
	v1.POST("/events/batch", eventHandler.ReceiveBatch)
	v1.GET("/partners", partnerHandler.List, middleware.RBAC(domain.RoleAdmin))

	// --- Health probes (no auth required) ---
	healthHandler := handler.NewHealthHandler()
	readinessHandler := handler.NewReadinessHandler(db, rdb)

	e.GET("/health", healthHandler.Liveness)           // liveness  – is the process alive?
	e.GET("/health/ready", readinessHandler.Readiness) // readiness – are dependencies up?

	// --- Observability and docs ---
	e.GET("/metrics", echoprometheus.NewHandler())
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	return e, dispatcher, nil
}
