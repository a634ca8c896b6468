// Package database wires up the gorm connection and schema, adapted from
// the teacher's pkg/database/database.go. Generalized to switch driver
// (sqlite | postgres) on config.Database.Driver, since the domain stack
// picked up gorm.io/driver/postgres for production deployments alongside
// the teacher's sqlite.
package database

import (
	"fmt"

	"github.com/aquarian247/AquaMind-sub005/internal/config"
	"github.com/aquarian247/AquaMind-sub005/internal/models"
	"github.com/rs/zerolog/log"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// Open connects to the configured database and runs AutoMigrate across
// every model the core reads or writes.
func Open(cfg *config.Config) (*gorm.DB, error) {
	logLevel := gormlogger.Warn
	if !cfg.IsProduction() {
		logLevel = gormlogger.Info
	}

	var dialector gorm.Dialector
	switch cfg.Database.Driver {
	case "postgres":
		if cfg.Database.DSN == "" {
			return nil, fmt.Errorf("database: DATABASE_DSN is required for the postgres driver")
		}
		dialector = postgres.Open(cfg.Database.DSN)
	case "sqlite", "":
		dialector = sqlite.Open(cfg.Database.Path)
	default:
		return nil, fmt.Errorf("database: unsupported driver %q", cfg.Database.Driver)
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger: gormlogger.Default.LogMode(logLevel),
	})
	if err != nil {
		return nil, err
	}

	if err := db.AutoMigrate(
		&models.Container{},
		&models.Reading{},
		&models.Batch{},
		&models.ProjectionRun{},
		&models.LifecycleStage{},
		&models.StageConstraint{},
		&models.ConstraintSet{},
		&models.BatchContainerAssignment{},
		&models.TGCModel{},
		&models.TGCStageOverride{},
		&models.TemperatureProfilePoint{},
		&models.MortalityModel{},
		&models.MortalityStageOverride{},
		&models.GrowthSample{},
		&models.TransferAction{},
		&models.MortalityEvent{},
		&models.FeedingEvent{},
		&models.SamplingEvent{},
		&models.IndividualWeightSample{},
		&models.Treatment{},
		&models.DailyState{},
	); err != nil {
		return nil, err
	}

	log.Info().Str("driver", cfg.Database.Driver).Msg("database initialized")
	return db, nil
}
