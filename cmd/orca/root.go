package orca

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/sadanandam5592/orca/pkg/config"
	"github.com/sadanandam5592/orca/pkg/logger"
)

var (
	settingsFile string
	logLevel     string
	logJSON      bool
	settings     = config.Default()
)

var rootCmd = &cobra.Command{
	Use:   "orca",
	Short: "Orca generates pipeline definitions from templates",
	Long: `Orca combines a pipeline template with a configuration and an execution
request and prints the resulting pipeline definition for an execution engine.
Template defaults for notifications, parameters and triggers are merged with the
configuration unless the configuration excludes them.`,
	SilenceUsage:  true,
	SilenceErrors: true,

	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		s, err := config.Load(settingsFile)
		if err != nil {
			return err
		}
		if cmd.Flags().Changed("log-level") {
			s.Log.Level = logLevel
		}
		if cmd.Flags().Changed("log-json") {
			s.Log.JSON = logJSON
		}
		settings = s

		logger.Init(&logger.Config{
			Level:      logger.LogLevel(s.Log.Level),
			Output:     cmd.ErrOrStderr(),
			JSON:       s.Log.JSON,
			TimeFormat: "15:04:05",
		})
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&settingsFile, "settings", "", "Path to a YAML settings file.")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "info", "Log level: debug, info, warn, error or disabled.")
	rootCmd.PersistentFlags().BoolVar(&logJSON, "log-json", false, "Log in JSON.")

	rootCmd.AddCommand(generateCmd)
	rootCmd.AddCommand(artifactsCmd)
	rootCmd.AddCommand(versionCmd)
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		logger.Default().Error("orca failed", "error", err)
		os.Exit(1)
	}
}
