package cmd

import (
	"github.com/spf13/cobra"

	"github.com/TelmenBay/leetlog/internal/app"
	"github.com/TelmenBay/leetlog/internal/config"
)

var rootCmd = &cobra.Command{
	Use:           "leetlog",
	Short:         "LeetCode practice journal",
	Long:          "leetlog tracks LeetCode attempts and tells you which problems are interview-ready.",
	SilenceUsage:  true,
	SilenceErrors: true,
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().String("db", "", "Database path or DSN (overrides LEETLOG_DB env var)")
	rootCmd.PersistentFlags().String("driver", "", "Database driver: sqlite or postgres (overrides LEETLOG_DB_DRIVER)")
	rootCmd.PersistentFlags().String("user", "", "User id for journal commands (overrides LEETLOG_USER)")

	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(addCmd)
	rootCmd.AddCommand(logCmd)
	rootCmd.AddCommand(logsCmd)
	rootCmd.AddCommand(rmCmd)
	rootCmd.AddCommand(rmlogCmd)
	rootCmd.AddCommand(dashboardCmd)
	rootCmd.AddCommand(analyticsCmd)
	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(sweepCmd)
	rootCmd.AddCommand(versionCmd)
}

// loadConfig reads .env and the environment, then applies flags, which take
// the highest priority.
func loadConfig(cmd *cobra.Command) (config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return config.Config{}, err
	}
	if v, _ := cmd.Flags().GetString("db"); v != "" {
		cfg.DB = v
	}
	if v, _ := cmd.Flags().GetString("driver"); v != "" {
		cfg.DBDriver = v
	}
	if v, _ := cmd.Flags().GetString("user"); v != "" {
		cfg.User = v
	}
	return cfg, cfg.Validate()
}

// openApp loads configuration and builds the application.
func openApp(cmd *cobra.Command) (*app.App, error) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return nil, err
	}
	return newApp(cmd, cfg)
}

func newApp(cmd *cobra.Command, cfg config.Config) (*app.App, error) {
	return app.New(cmd.Context(), cfg)
}
