// @title trkr API
// @description API for the self-hosted fitness and nutrition tracker "trkr"
// @BasePath /api/v1
// @schemes http
package main

import (
	"context"
	"log"
	"strconv"
	"time"

	"github.com/limbo/trkr/internal/api"
	"github.com/limbo/trkr/internal/provider/openfoodfacts"
	"github.com/limbo/trkr/internal/repository"
	"github.com/limbo/trkr/internal/service"
	"github.com/limbo/trkr/internal/store"
	"github.com/limbo/trkr/internal/syncer"
	"github.com/limbo/trkr/pkg/cleanup"
	"github.com/limbo/trkr/pkg/config"
	jwtservice "github.com/limbo/trkr/pkg/jwt_service"
)

func init() {
	service.InitValidator()
}

func main() {
	defer cleanup.CleanUp()
	cfg := config.New()

	recordStore, err := store.New(cfg.GetStringOr("STORE_PATH", "./data/trkr.json"))
	if err != nil {
		log.Fatal("opening record store: " + err.Error())
	}

	dbCfg := repository.PGCfg{
		Address:  cfg.GetString("POSTGRES_DB_ADDRESS"),
		Username: cfg.GetString("POSTGRES_USER"),
		Password: cfg.GetString("POSTGRES_PASSWORD"),
		DB:       cfg.GetString("POSTGRES_DB"),
	}
	workoutsRepo := repository.NewWorkoutsRepo(&dbCfg)
	foodRepo := repository.NewFoodEntriesRepo(&dbCfg)
	weightsRepo := repository.NewWeightEntriesRepo(&dbCfg)

	interval := 30 * time.Second
	if raw := cfg.GetString("SYNC_INTERVAL_SECONDS"); raw != "" {
		if secs, err := strconv.Atoi(raw); err == nil && secs > 0 {
			interval = time.Duration(secs) * time.Second
		}
	}
	sync := syncer.New(recordStore, workoutsRepo, foodRepo, weightsRepo, interval)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go sync.Run(ctx)

	serv := api.New(&api.ServicesList{
		UserService:    service.NewUserService(repository.NewUsersRepo(&dbCfg)),
		TrackerService: service.NewTrackerService(recordStore),
		StatsService:   service.NewStatsService(recordStore),
		JwtService:     jwtservice.New(cfg.GetString("JWT_SECRET")),
		Syncer:         sync,
		FoodLookup:     &openfoodfacts.Client{},
	})
	err = serv.Run(cfg.GetStringOr("API_ADDRESS", ":8080"))
	if err != nil {
		log.Println("Server error: " + err.Error())
	}
}
