// Command server runs the assimilation core's admin HTTP surface: the
// recompute/events/daily-state endpoints described in spec.md §6, plus a
// background scheduler worker pool (C11) draining triggered jobs. Adapted
// from the teacher's cmd/server/main.go.
package main

import (
	"context"

	"github.com/aquarian247/AquaMind-sub005/internal/config"
	"github.com/aquarian247/AquaMind-sub005/internal/logging"
	"github.com/aquarian247/AquaMind-sub005/internal/recompute"
	router "github.com/aquarian247/AquaMind-sub005/internal/routes"
	"github.com/aquarian247/AquaMind-sub005/internal/scheduler"
	"github.com/aquarian247/AquaMind-sub005/internal/service"
	"github.com/aquarian247/AquaMind-sub005/pkg/database"
	"github.com/rs/zerolog/log"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	logging.Init(cfg.Logging.Level, cfg.Logging.Verbose)

	db, err := database.Open(cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize database")
	}

	recomputer := recompute.NewRecomputer(db)
	recomputer.Cfg.FreshwaterRefTempC = cfg.Assimilation.FreshwaterRefTempC
	recomputer.Cfg.FCRBiomassGainFloorKg = cfg.Assimilation.FCRBiomassGainFloorKg
	recomputer.Cfg.BiasFactors.Largest = cfg.Assimilation.SelectionBiasLargest
	recomputer.Cfg.BiasFactors.Smallest = cfg.Assimilation.SelectionBiasSmallest

	queue := scheduler.NewQueue(recomputer, cfg.Assimilation.SchedulerWorkers)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	queue.Start(ctx)
	defer queue.Stop()

	triggers := scheduler.NewTriggers(db, queue, cfg.Assimilation.MortalityWindowDays)
	svc := service.NewAssimilationService(db, recomputer, triggers)

	r := router.SetupRouter(cfg, db, svc)

	log.Info().Str("address", cfg.GetServerAddress()).Msg("starting assimilation core server")
	if err := r.Run(cfg.GetServerAddress()); err != nil {
		log.Fatal().Err(err).Msg("server exited")
	}
}
