package cmd

import (
	"github.com/spf13/cobra"

	"github.com/Mahwas/Cognito/internal/config"
	"github.com/Mahwas/Cognito/internal/store"
)

var rootCmd = &cobra.Command{
	Use:   "cognito",
	Short: "AI study plan generator",
	Long:  "Cognito turns a topic and a time budget into a modular study plan with guidance, quizzes and a tutor.",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runApp(cmd)
	},
	SilenceUsage: true,
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().String("db", "", "Path to SQLite database file (overrides COGNITO_DB env var)")
	rootCmd.PersistentFlags().String("config", "", "Path to config file (default "+config.ConfigFile()+")")

	rootCmd.AddCommand(planCmd)
	rootCmd.AddCommand(statusCmd)
	rootCmd.AddCommand(resetCmd)
	rootCmd.AddCommand(llmCmd)
	rootCmd.AddCommand(versionCmd)
}

func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	path, _ := cmd.Flags().GetString("config")
	return config.Load(path)
}

// resolveDBPath returns the database path using --db flag (highest priority),
// then storage.db_path from the config, then COGNITO_DB and the default XDG path.
func resolveDBPath(cmd *cobra.Command, cfg *config.Config) (string, error) {
	if p, _ := cmd.Flags().GetString("db"); p != "" {
		return p, store.EnsureDir(p)
	}
	if cfg != nil && cfg.Storage.DBPath != "" {
		return cfg.Storage.DBPath, store.EnsureDir(cfg.Storage.DBPath)
	}
	return store.DefaultDBPath()
}
