// Package recompute implements the range recomputer (C9) and the batch
// orchestrator (C10): the window validation/clamping, the per-day upsert
// loop inside one transaction, and fan-out across a batch's assignments.
package recompute

import (
	"context"
	"time"

	"github.com/aquarian247/AquaMind-sub005/internal/anchor"
	"github.com/aquarian247/AquaMind-sub005/internal/assimilation"
	"github.com/aquarian247/AquaMind-sub005/internal/bootstrap"
	"github.com/aquarian247/AquaMind-sub005/internal/dateutil"
	"github.com/aquarian247/AquaMind-sub005/internal/growth"
	"github.com/aquarian247/AquaMind-sub005/internal/masterdata"
	"github.com/aquarian247/AquaMind-sub005/internal/models"
	"github.com/aquarian247/AquaMind-sub005/internal/recompute/errs"
	"github.com/aquarian247/AquaMind-sub005/internal/resolvers"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

// Config holds the environment-tunable knobs from spec.md §6.
type Config struct {
	FreshwaterRefTempC    float64
	FCRBiomassGainFloorKg float64
	BiasFactors           anchor.BiasFactors
	StageCapOverrides     map[string]float64
}

// DefaultConfig matches spec.md §6's stated defaults.
func DefaultConfig() Config {
	return Config{
		FreshwaterRefTempC:    resolvers.FreshwaterReferenceTempC,
		FCRBiomassGainFloorKg: assimilation.DefaultFCRBiomassGainFloorKg,
		BiasFactors:           anchor.DefaultBiasFactors,
	}
}

// DayError pairs a DayComputationError with the date it occurred on,
// recorded rather than propagated (spec.md §7).
type DayError struct {
	Date    string
	Message string
}

// Result is the outcome of one Recompute call (spec.md §4.9).
type Result struct {
	RowsCreated  int
	RowsUpdated  int
	AnchorsFound int
	Errors       []DayError
	Skipped      bool
}

// Recomputer implements C9.
type Recomputer struct {
	DB     *gorm.DB
	Cfg    Config
	Logger zerolog.Logger
}

// NewRecomputer builds a Recomputer with the default config.
func NewRecomputer(db *gorm.DB) *Recomputer {
	return &Recomputer{DB: db, Cfg: DefaultConfig(), Logger: log.Logger}
}

// Recompute runs C9 for one (assignment, window), per spec.md §4.9.
func (r *Recomputer) Recompute(ctx context.Context, assignmentID uint, start time.Time, end *time.Time) (Result, error) {
	var assignment models.BatchContainerAssignment
	if err := r.DB.First(&assignment, assignmentID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return Result{}, &errs.ValidationError{Field: "assignment_id", Message: "assignment not found"}
		}
		return Result{}, err
	}

	var batch models.Batch
	if err := r.DB.First(&batch, assignment.BatchID).Error; err != nil {
		return Result{}, err
	}

	endDate := dateutil.Normalize(time.Now())
	if end != nil {
		endDate = dateutil.Normalize(*end)
	}
	startDate := dateutil.Normalize(start)

	if startDate.After(endDate) {
		return Result{}, &errs.ValidationError{Field: "start_date", Message: "start_date must be <= end_date"}
	}

	// Clamp start up to batch.start_date and assignment.assignment_date.
	if dateutil.Before(startDate, dateutil.Normalize(batch.StartDate)) {
		startDate = dateutil.Normalize(batch.StartDate)
	}
	if dateutil.Before(startDate, dateutil.Normalize(assignment.AssignmentDate)) {
		startDate = dateutil.Normalize(assignment.AssignmentDate)
	}
	if startDate.After(endDate) {
		return Result{Skipped: true}, nil
	}

	// Clamp end to departure_date - 1 day when set.
	if assignment.DepartureDate != nil {
		departure := dateutil.Normalize(*assignment.DepartureDate)
		if !endDate.Before(departure) {
			endDate = dateutil.AddDays(departure, -1)
		}
	}
	if startDate.After(endDate) {
		return Result{Skipped: true}, nil
	}

	detector := &anchor.Detector{DB: r.DB, Bias: r.Cfg.BiasFactors}
	anchorMap, err := detector.Detect(assignmentID, startDate, endDate)
	if err != nil {
		return Result{}, err
	}

	cache := masterdata.New(r.DB)
	stageRepo := growth.NewStageRepo(r.DB)
	bootstrapResolver := bootstrap.NewResolver(r.DB)
	tempResolver := resolvers.NewTemperatureResolver(r.DB)
	mortResolver := resolvers.NewMortalityResolver(r.DB)
	feedResolver := resolvers.NewFeedResolver(r.DB)
	placeResolver := resolvers.NewPlacementResolver(r.DB)

	var constraintSetID *uint
	var tgcModel *models.TGCModel
	var mortModel *models.MortalityModel
	if batch.ProjectionRunID != nil {
		var run models.ProjectionRun
		if err := r.DB.First(&run, *batch.ProjectionRunID).Error; err == nil {
			constraintSetID = run.ConstraintSetID
			if run.TGCModelID != nil {
				tgcModel, _ = cache.TGCModel(*run.TGCModelID)
			}
			if run.MortalityModelID != nil {
				mortModel, _ = cache.MortalityModel(*run.MortalityModelID)
			}
		}
	}

	prevState, err := r.initialState(assignment, startDate, stageRepo, bootstrapResolver, constraintSetID, tgcModel)
	if err != nil {
		return Result{}, err
	}

	caps := growth.Caps{Overrides: r.Cfg.StageCapOverrides}

	result := Result{AnchorsFound: len(anchorMap)}

	tx := r.DB.WithContext(ctx).Begin()
	if tx.Error != nil {
		return Result{}, tx.Error
	}
	committed := false
	defer func() {
		if !committed {
			tx.Rollback()
		}
	}()

	for d := startDate; !d.After(endDate); d = dateutil.AddDays(d, 1) {
		if err := ctx.Err(); err != nil {
			return Result{}, err
		}

		dayResult, derr := r.computeDay(tx, assignment, d, batch, prevState, anchorMap, cache, stageRepo, tempResolver, mortResolver, feedResolver, placeResolver, tgcModel, mortModel, constraintSetID, caps)
		if derr != nil {
			result.Errors = append(result.Errors, DayError{Date: d.Format("2006-01-02"), Message: derr.Error()})
			continue
		}

		created, werr := r.upsert(tx, assignment.ID, d, dayResult)
		if werr != nil {
			result.Errors = append(result.Errors, DayError{Date: d.Format("2006-01-02"), Message: werr.Error()})
			continue
		}
		if created {
			result.RowsCreated++
		} else {
			result.RowsUpdated++
		}

		prevState = stepState{
			WeightG:    dayResult.AvgWeightG,
			Population: dayResult.Population,
			BiomassKg:  dayResult.BiomassKg,
			Stage:      dayResult.Stage,
		}
	}

	if err := tx.Commit().Error; err != nil {
		return Result{}, err
	}
	committed = true

	r.Logger.Info().
		Uint("assignment_id", assignmentID).
		Str("start", startDate.Format("2006-01-02")).
		Str("end", endDate.Format("2006-01-02")).
		Int("created", result.RowsCreated).
		Int("updated", result.RowsUpdated).
		Int("errors", len(result.Errors)).
		Msg("recompute window complete")

	return result, nil
}
