package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"marketplace-service/config"
	"marketplace-service/internal/api"
	"marketplace-service/internal/models"
	"marketplace-service/internal/service"
	"marketplace-service/internal/store"
	"marketplace-service/internal/util"
	"marketplace-service/internal/worker"

	"github.com/gin-gonic/gin"
)

func main() {

	cfg := config.Load()

	if err := util.InitLogger(cfg.Server.Env); err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer util.SyncLogger()

	logger := util.GetLogger()
	logger.Info("Starting marketplace service")

	tp, err := util.InitTracer("marketplace-service", cfg.Observ.JaegerEndpoint)
	if err != nil {
		log.Fatalf("Failed to initialize tracer: %v", err)
	}
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := tp.Shutdown(ctx); err != nil {
			log.Printf("Error shutting down tracer: %v", err)
		}
	}()

	db := store.NewStore(models.StoreConfig{
		DiscountNValue:     cfg.Business.DiscountNValue,
		DiscountPercentage: cfg.Business.DiscountPercentage,
	})
	if err := db.SeedDemoUsers(); err != nil {
		log.Fatalf("Failed to seed demo users: %v", err)
	}
	log.Println("In-memory store seeded")

	userService := service.NewUserService(db)
	productService := service.NewProductService(db)
	cartService := service.NewCartService(db)
	discountService := service.NewDiscountService(db)
	orderService := service.NewOrderService(db, cartService, discountService)
	analyticsService := service.NewAnalyticsService(db)
	configService := service.NewConfigService(db)

	workerCtx, workerCancel := context.WithCancel(context.Background())
	defer workerCancel()

	statsWorker := worker.NewStatsWorker(db, time.Duration(cfg.Business.StatsIntervalSecs)*time.Second)
	go func() {
		if err := statsWorker.Start(workerCtx); err != nil && err != context.Canceled {
			log.Printf("Stats worker error: %v", err)
		}
	}()

	if cfg.Server.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.Default()
	handler := api.NewHandler(api.HandlerDeps{
		Users:          userService,
		Products:       productService,
		Cart:           cartService,
		Orders:         orderService,
		Discounts:      discountService,
		Analytics:      analyticsService,
		Config:         configService,
		JWTSecret:      []byte(cfg.Auth.JWTSecret),
		TokenTTL:       time.Duration(cfg.Auth.TokenTTLHours) * time.Hour,
		RateLimitRPS:   cfg.Auth.RateLimitRPS,
		RateLimitBurst: cfg.Auth.RateLimitBurst,
	})
	handler.SetupRoutes(router)

	srv := &http.Server{
		Addr:    fmt.Sprintf(":%s", cfg.Server.Port),
		Handler: router,
	}

	go func() {
		log.Printf("Starting HTTP server on port %s", cfg.Server.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("Server forced to shutdown: %v", err)
	}

	workerCancel()
	statsWorker.Stop()

	log.Println("Server exited")
}
