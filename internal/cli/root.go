package cli

import (
	"github.com/spf13/cobra"

	"github.com/timekeep/timekeep/internal/logger"
)

// Version is the tool version reported by the version command.
const Version = "1.0.0"

// Global configuration variables
var (
	configFile string
	config     *Config
	dbPath     string
	debug      bool
	verbose    bool
)

func NewRootCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "timekeep",
		Short: "Timekeep - local time tracking storage and reports",
		Long: `Timekeep stores tracked work time against projects, activities and
tags in a single-file SQLite database, and produces calendar-bucketed
duration reports (by hour, weekday, day of month, or month).`,
		Version: Version,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			logger.Init(verbose, debug)

			var err error
			config, err = LoadConfig(configFile)
			if err != nil {
				if verbose {
					cmd.Printf("Warning: Failed to load config file: %v\n", err)
				}
				config = defaultConfig()
			}

			if dbPath == "" {
				dbPath = config.Database.Path
			}
		},
	}

	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "config file (default: timekeep.yaml)")
	rootCmd.PersistentFlags().StringVar(&dbPath, "db", "", "database file path")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug output")
	rootCmd.PersistentFlags().BoolVar(&verbose, "verbose", false, "enable verbose output")

	rootCmd.AddCommand(newInitCommand())
	rootCmd.AddCommand(newResetCommand())
	rootCmd.AddCommand(newReportCommand())
	rootCmd.AddCommand(newSummaryCommand())

	return rootCmd
}

// Execute runs the root command.
func Execute() error {
	return NewRootCommand().Execute()
}
