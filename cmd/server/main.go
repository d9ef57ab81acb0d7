package main

import (
	"database/sql"
	"log"
	"net/http"

	"bookmart-be/internal/analytics"
	"bookmart-be/internal/cache"
	"bookmart-be/internal/catalog"
	"bookmart-be/internal/config"
	"bookmart-be/internal/db"
	"bookmart-be/internal/handler"
	"bookmart-be/internal/logger"
	"bookmart-be/internal/user"
)

// Indirections for testability
var (
	initDBFunc      = db.InitDB
	startServerFunc = http.ListenAndServe
)

func newServer(cfg *config.Config, database *sql.DB) http.Handler {
	userRepo := user.NewRepository(database)
	userSvc := user.NewService(userRepo)

	catalogRepo := catalog.NewRepository(database)
	catalogSvc := catalog.NewService(catalogRepo)

	analyticsRepo := analytics.NewRepository(database)
	analyticsSvc := analytics.NewService(analyticsRepo)

	reportCache := cache.NewReportCache(cache.InitRedis(cfg.RedisAddr))

	return handler.NewRouter(userSvc, catalogSvc, analyticsSvc, reportCache)
}

func run() error {
	cfg := config.LoadConfig()

	logger.Init(cfg.AppEnv)
	defer logger.Sync()

	database := initDBFunc(cfg)
	defer database.Close()

	router := newServer(cfg, database)

	log.Printf("🚀 API server running at http://localhost:%s/", cfg.AppPort)
	return startServerFunc(":"+cfg.AppPort, router)
}

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}
