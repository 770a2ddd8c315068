package cmd

import (
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/Tiliavir/daily-proof/internal/config"
	"github.com/Tiliavir/daily-proof/internal/logging"
	"github.com/Tiliavir/daily-proof/internal/storage"
	"github.com/Tiliavir/daily-proof/internal/tracker"
)

var (
	configPath   string
	dataDirFlag  string
	dataFileFlag string
	logLevelFlag string

	cfg      config.Config
	logger   *log.Logger
	store    *storage.FileStore
	trackSvc *tracker.Service
)

var rootCmd = &cobra.Command{
	Use:   "proof",
	Short: "Daily Proof – a minimal daily task tracker",
	Long: `proof tracks a short list of tasks per day, a yearly heatmap of how many
were completed and streaks of perfect days.
All data is stored in a single human-readable JSON file in ~/.proof/.`,
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: setup,
}

// Execute is the entry point called from main.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Config file (default ~/.proof/config.toml)")
	rootCmd.PersistentFlags().StringVar(&dataDirFlag, "data-dir", "", "Directory of the tracker data file")
	rootCmd.PersistentFlags().StringVar(&dataFileFlag, "data-file", "", "Tracker data file name or absolute path")
	rootCmd.PersistentFlags().StringVar(&logLevelFlag, "log-level", "", "Log level: debug, info, warn, error")

	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(todayCmd)
	rootCmd.AddCommand(setCmd)
	rootCmd.AddCommand(doneCmd)
	rootCmd.AddCommand(heatmapCmd)
	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(checkCmd)
}

// setup resolves config (file, then env, then flags) and wires the logger,
// the store and the tracker service used by every subcommand.
func setup(cmd *cobra.Command, args []string) error {
	var err error
	cfg, err = config.Load(configPath)
	if err != nil {
		return err
	}

	if dataDirFlag != "" {
		cfg.Storage.DataDir = dataDirFlag
	}
	if dataFileFlag != "" {
		cfg.Storage.DataFile = dataFileFlag
	}
	if logLevelFlag != "" {
		cfg.Log.Level = logLevelFlag
	}

	logger, err = logging.New(os.Stderr, cfg.Log.Level, cfg.Log.Format)
	if err != nil {
		return err
	}

	path, err := cfg.DataPath()
	if err != nil {
		return err
	}
	store = storage.NewFileStore(path)
	trackSvc = tracker.NewService(store, logger)
	logger.Debug("using data file", "path", path)
	return nil
}
