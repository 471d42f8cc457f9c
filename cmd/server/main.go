package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	"github.com/jmoiron/sqlx"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	"github.com/redis/go-redis/v9"

	"stipend/internal/auth"
	"stipend/internal/disburse"
	"stipend/internal/handler"
	"stipend/internal/middleware"
	"stipend/internal/period"
	"stipend/internal/registry"
	"stipend/internal/report"
	"stipend/internal/repository/postgres"
	"stipend/internal/system"
	"stipend/internal/treasury"
	"stipend/pkg/config"
	"stipend/pkg/logger"
	"stipend/pkg/validator"
)

func main() {
	_ = godotenv.Load()

	cfg := config.Load()
	log := logger.New("stipend-service")

	if err := cfg.ValidateCore(); err != nil {
		log.Fatal("Invalid configuration", map[string]interface{}{"error": err.Error()})
	}

	log.Info("Starting stipend service", map[string]interface{}{
		"port": cfg.Server.Port,
	})

	db, err := sqlx.Connect("postgres", cfg.Database.URL)
	if err != nil {
		log.Fatal("Failed to connect to database", map[string]interface{}{
			"error": err.Error(),
		})
	}
	defer db.Close()

	db.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	db.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	db.SetConnMaxLifetime(cfg.Database.ConnMaxLifetime)

	log.Info("Database connected", nil)

	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.URL,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})

	if err := redisClient.Ping(context.Background()).Err(); err != nil {
		log.Fatal("Failed to connect to Redis", map[string]interface{}{
			"error": err.Error(),
		})
	}

	log.Info("Redis connected", nil)

	// Repositories
	recipientRepo := postgres.NewRecipientRepository(db)
	periodRepo := postgres.NewPeriodRepository(db)
	treasuryRepo := postgres.NewTreasuryRepository(db)
	reportRepo := postgres.NewReportRepository(db)
	batchStore := postgres.NewBatchStore(db)

	// Services
	pauseStore := system.NewRedisPauseStore(redisClient)
	registryService := registry.NewService(recipientRepo, cfg.Payroll.MaxMonthlyAmount, log)
	periodService := period.NewService(periodRepo, log)
	disburseService := disburse.NewService(batchStore, pauseStore, log)
	reportService := report.NewService(reportRepo, cfg.Payroll.HistoryScanLimit)
	treasuryService := treasury.NewService(treasuryRepo, log)
	authService := auth.NewService(cfg.Admin, cfg.JWT)

	// Handlers
	val := validator.New()
	authHandler := handler.NewAuthHandler(authService, val, log)
	registryHandler := handler.NewRegistryHandler(registryService, val, log)
	periodHandler := handler.NewPeriodHandler(periodService, val, log)
	disburseHandler := handler.NewDisburseHandler(disburseService, val, log)
	reportHandler := handler.NewReportHandler(reportService, log)
	adminHandler := handler.NewAdminHandler(pauseStore, treasuryService, val, log)

	// Router
	r := mux.NewRouter()

	r.Use(middleware.CORS)
	r.Use(middleware.SecurityHeaders)
	r.Use(middleware.Recovery)
	r.Use(middleware.CorrelationID)
	r.Use(middleware.NewLoggingMiddleware(log).Log)
	r.Use(middleware.BodyLimit(1 << 20)) // 1MB global cap
	r.Use(middleware.NewRateLimiter(redisClient, 150, time.Minute).Limit)

	authMW := middleware.NewAuthMiddleware(cfg.JWT.Secret)

	// Health check routes (no auth)
	r.HandleFunc("/health", healthCheck).Methods("GET")
	r.HandleFunc("/ready", readyCheck(db)).Methods("GET")

	api := r.PathPrefix("/api/v1").Subrouter()

	// Open routes. Disbursement is deliberately unauthenticated: any caller
	// may trigger it, the engine decides who actually gets paid.
	api.HandleFunc("/auth/login", authHandler.Login).Methods("POST")
	api.HandleFunc("/periods/{id:[0-9]+}", periodHandler.GetPeriod).Methods("GET")
	api.HandleFunc("/periods/{id:[0-9]+}/disburse", disburseHandler.Disburse).Methods("POST")
	api.HandleFunc("/recipients", reportHandler.ListRecipients).Methods("GET")
	api.HandleFunc("/recipients/{id}/history", reportHandler.PaymentHistory).Methods("GET")

	// Administrative routes
	admin := api.PathPrefix("").Subrouter()
	admin.Use(authMW.Authenticate)
	admin.Use(middleware.RequireAdmin)
	admin.Use(middleware.NewRateLimiter(redisClient, 60, time.Minute).Limit)

	admin.HandleFunc("/recipients", registryHandler.AddRecipient).Methods("POST")
	admin.HandleFunc("/recipients/{id}", registryHandler.UpdateRecipient).Methods("PUT")
	admin.HandleFunc("/recipients/{id}", registryHandler.RemoveRecipient).Methods("DELETE")
	admin.HandleFunc("/periods/{id:[0-9]+}", periodHandler.SetPeriod).Methods("PUT")
	admin.HandleFunc("/admin/pause", adminHandler.Pause).Methods("POST")
	admin.HandleFunc("/admin/resume", adminHandler.Resume).Methods("POST")
	admin.HandleFunc("/admin/pause", adminHandler.PauseState).Methods("GET")
	admin.HandleFunc("/admin/treasury", adminHandler.Treasury).Methods("GET")
	admin.HandleFunc("/admin/treasury/fund", adminHandler.FundTreasury).Methods("POST")

	srv := &http.Server{
		Addr:         fmt.Sprintf("%s:%s", cfg.Server.Host, cfg.Server.Port),
		Handler:      r,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	go func() {
		log.Info("Stipend service started", map[string]interface{}{
			"address": srv.Addr,
		})
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Server failed to start", map[string]interface{}{
				"error": err.Error(),
			})
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down stipend service...", nil)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Stipend service forced to shutdown", map[string]interface{}{
			"error": err.Error(),
		})
	}

	log.Info("Stipend service stopped gracefully", nil)
}

func healthCheck(w http.ResponseWriter, r *http.Request) {
	_ = r
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status":"healthy","service":"stipend","timestamp":"` + time.Now().Format(time.RFC3339) + `"}`))
}

func readyCheck(db *sqlx.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		_ = r
		if err := db.Ping(); err != nil {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusServiceUnavailable)
			w.Write([]byte(`{"status":"not ready","reason":"database unavailable"}`))
			return
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"ready","service":"stipend"}`))
	}
}
