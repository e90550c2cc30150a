package main

import (
	"context"
	"log"
	"net/http"

	"github.com/redis/go-redis/v9"

	_ "github.com/poskit/cashier/docs"
	"github.com/poskit/cashier/internal/auth"
	"github.com/poskit/cashier/internal/catalog"
	"github.com/poskit/cashier/internal/config"
	"github.com/poskit/cashier/internal/db"
	"github.com/poskit/cashier/internal/http/handlers"
	rl "github.com/poskit/cashier/internal/http/rate_limiter"
	"github.com/poskit/cashier/internal/orgs"
	"github.com/poskit/cashier/internal/redissvc"
	"github.com/poskit/cashier/internal/repo"
	"github.com/poskit/cashier/internal/sales"

	api "github.com/poskit/cashier/internal/http"
)

// @title Cashier API
// @version 1.0
// @description Point-of-sale backend: per-organisation product catalog and sales ledger.
// @host localhost:8080
// @BasePath /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	cfg := config.Load()
	auth.SetSecret(cfg.JWTSecret)
	rl.Configure(cfg.RateLimitRPS, cfg.RateLimitBurst)
	go rl.StartVisitorCleanupLoop()

	database, err := db.Connect(cfg.DatabaseURL)
	if err != nil {
		log.Fatal("could not connect to database:", err)
	}
	defer database.Close()

	ctx := context.Background()
	var cache *redissvc.RedisService
	rdb := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
	if err := rdb.Ping(ctx).Err(); err != nil {
		log.Printf("redis unavailable, organisation cache disabled: %v", err)
	} else {
		cache = redissvc.NewRedisService(rdb, ctx)
		defer rdb.Close()
	}

	datasetRepo := repo.NewPostgresDatasetRepository(database)
	userRepo := repo.NewPostgresUserRepository(database)
	orgRepo := repo.NewPostgresOrganisationRepository(database)

	handlers.SetCatalogService(catalog.NewService(datasetRepo))
	handlers.SetSalesService(sales.NewService(datasetRepo))
	handlers.SetOrgResolver(orgs.NewResolver(userRepo, orgRepo, cache, cfg.OrgCacheTTL))
	handlers.SetUserRepo(userRepo)

	r := api.NewRouter()
	log.Println("server running on", cfg.HTTPAddr)
	if err := http.ListenAndServe(cfg.HTTPAddr, r); err != nil {
		log.Fatal(err)
	}
}
