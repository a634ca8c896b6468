package commands

import (
	"github.com/aquarian247/AquaMind-sub005/internal/config"
	"github.com/aquarian247/AquaMind-sub005/internal/logging"
	"github.com/aquarian247/AquaMind-sub005/internal/recompute"
	"github.com/aquarian247/AquaMind-sub005/pkg/database"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"gorm.io/gorm"
)

var (
	verbose bool
	cfg     *config.Config
	db      *gorm.DB
	runner  *recompute.Recomputer
)

var rootCmd = &cobra.Command{
	Use:   "recompute",
	Short: "Admin CLI for the growth assimilation core",
	Long:  "Runs C9/C10 window and batch recomputes synchronously from the command line.",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		cfg, err = config.Load()
		if err != nil {
			return err
		}
		logging.Init(cfg.Logging.Level, verbose)

		db, err = database.Open(cfg)
		if err != nil {
			log.Fatal().Err(err).Msg("failed to initialize database")
		}

		runner = recompute.NewRecomputer(db)
		runner.Cfg.FreshwaterRefTempC = cfg.Assimilation.FreshwaterRefTempC
		runner.Cfg.FCRBiomassGainFloorKg = cfg.Assimilation.FCRBiomassGainFloorKg
		runner.Cfg.BiasFactors.Largest = cfg.Assimilation.SelectionBiasLargest
		runner.Cfg.BiasFactors.Smallest = cfg.Assimilation.SelectionBiasSmallest
		return nil
	},
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose logging")
	rootCmd.AddCommand(windowCmd)
	rootCmd.AddCommand(batchCmd)
}
