// Package cmd provides the CLI commands for connect-reports.
package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/eklokova/connect-reports/internal/config"
	"github.com/eklokova/connect-reports/internal/logging"
)

var (
	cfgFile string
	verbose bool
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "connect-reports",
	Short: "Generate commerce platform business reports",
	Long: `connect-reports pulls subscription and request data from the commerce
platform API, derives financial and date fields, and writes tabular
report files.

Examples:
  connect-reports assets --after 2024-01-01T00:00:00 --before 2024-12-31T23:59:59 --product PRD-1 --out assets.csv
  connect-reports requests --after 2024-01-01T00:00:00 --before 2024-06-30T23:59:59 --out requests.csv`,
}

// Execute runs the CLI
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ./connect-reports.json)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose output")

	rootCmd.AddCommand(assetsCmd)
	rootCmd.AddCommand(requestsCmd)
	rootCmd.AddCommand(versionCmd)
}

func initConfig() {
	path := cfgFile
	if path == "" {
		path = "connect-reports.json"
	}
	cfg, err := config.Load(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}
	config.Set(cfg)

	if verbose {
		cfg.Logging.Level = "debug"
	}
	if err := logging.Initialize(cfg.Logging); err != nil {
		fmt.Fprintf(os.Stderr, "Error initializing logging: %v\n", err)
	}
}

// versionCmd prints version information
var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println("connect-reports version 0.1.0")
	},
}
