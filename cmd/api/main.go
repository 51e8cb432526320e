// @title Lost & Found API
// @version 1.0
// @description Lost and found item reports, identifier matching and claim workflow
// @host localhost:8080
// @BasePath /api/v1
// @schemes http
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer <token>"
package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	docs "github.com/xyz-asif/lostfound/docs"
	"github.com/xyz-asif/lostfound/internal/config"
	"github.com/xyz-asif/lostfound/internal/features/auth"
	"github.com/xyz-asif/lostfound/internal/middleware"
	"github.com/xyz-asif/lostfound/internal/pkg/clock"
	"github.com/xyz-asif/lostfound/internal/pkg/database"
	"github.com/xyz-asif/lostfound/internal/pkg/logger"
	"github.com/xyz-asif/lostfound/internal/pkg/metrics"
	"github.com/xyz-asif/lostfound/internal/pkg/ratelimit"
	"github.com/xyz-asif/lostfound/internal/pkg/response"
	"github.com/xyz-asif/lostfound/internal/routes"
)

func main() {
	cfg := config.Load()

	log := logger.New(logger.ParseLevel(cfg.LogLevel))
	logger.SetGlobalLevel(logger.ParseLevel(cfg.LogLevel))

	docs.SwaggerInfo.Host = "localhost:" + cfg.Port
	docs.SwaggerInfo.BasePath = "/api/v1"
	docs.SwaggerInfo.Schemes = []string{"http"}

	ctx := context.Background()

	var (
		stores *routes.Stores
		conn   *database.Connection
		err    error
	)
	switch cfg.StoreDriver {
	case config.DriverMemory:
		log.Warn("using in-memory store, data is lost on restart")
		stores = routes.MemoryStores()
	default:
		conn, err = database.NewConnection(ctx, database.DefaultConfig(cfg.MongoURI, cfg.MongoDB))
		if err != nil {
			logger.Fatal("failed to connect to MongoDB", "error", err)
		}
		defer conn.Close(context.Background())

		stores, err = routes.MongoStores(ctx, conn.Database)
		if err != nil {
			logger.Fatal("failed to prepare collections", "error", err)
		}
	}

	var verifier auth.TokenVerifier
	if cfg.FirebaseEnabled() {
		client, err := auth.InitFirebase(ctx, cfg.FirebaseServiceAccountPath)
		if err != nil {
			log.Error("firebase disabled", "error", err)
		} else {
			verifier = auth.NewFirebaseVerifier(client)
		}
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	m := metrics.New(reg)

	limiter := ratelimit.New(cfg.RateLimitRequests, cfg.RateLimitWindow)
	stopCleanup := make(chan struct{})
	limiter.StartCleanup(cfg.RateLimitWindow, stopCleanup)

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestID())
	router.Use(middleware.Logger(log))
	router.Use(middleware.Metrics(m))
	router.Use(middleware.CORS(cfg.FrontendURLs))

	router.GET("/health", func(c *gin.Context) {
		if conn != nil {
			if err := conn.HealthCheck(c.Request.Context()); err != nil {
				response.ServiceUnavailable(c, "database unreachable", "DATABASE_UNAVAILABLE")
				return
			}
		}
		response.Success(c, map[string]interface{}{
			"status": "ok",
			"store":  cfg.StoreDriver,
			"time":   time.Now().Unix(),
		})
	})
	router.GET("/metrics", gin.WrapH(promhttp.HandlerFor(reg, promhttp.HandlerOpts{})))

	router.GET(
		"/swagger/*any",
		ginSwagger.WrapHandler(
			swaggerFiles.Handler,
			ginSwagger.URL("/swagger/doc.json"),
			ginSwagger.DeepLinking(true),
			ginSwagger.DefaultModelsExpandDepth(-1),
			ginSwagger.DocExpansion("none"),
			ginSwagger.PersistAuthorization(true),
		),
	)

	routes.SetupRoutes(router, stores, routes.Deps{
		Config:   cfg,
		Log:      log,
		Metrics:  m,
		Clock:    clock.System{},
		Verifier: verifier,
		Limiter:  limiter,
	})

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Info("server starting", "port", cfg.Port, "store", cfg.StoreDriver)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("failed to start server", "error", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down server")
	close(stopCleanup)

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("server forced to shutdown", "error", err)
	}

	log.Info("server exited")
}
