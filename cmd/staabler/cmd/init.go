package cmd

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/idleman/staabler/pkg/config"
)

// initCmd bootstraps a configuration file and data directory for local
// development, run once before serve.
var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Bootstrap a configuration file and data directory",
	Long: `Bootstrap a configuration file and data directory.

Examples:
  staabler init --data-dir=./data
  staabler init --config=./staabler.yaml --force`,
	// Skip the root command's stream-opening PersistentPreRunE: init runs
	// before any stream exists.
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return nil
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		dataDir, _ := cmd.Flags().GetString("data-dir")
		configPath, _ := cmd.Flags().GetString("config")
		force, _ := cmd.Flags().GetBool("force")

		if configPath == "" {
			configPath = config.GetDefaultConfigPath()
		}

		if config.ConfigExists(configPath) && !force {
			cmd.Printf("configuration already exists at %s (use --force to overwrite)\n", configPath)
			return nil
		}

		cfg, err := config.BootstrapConfig(configPath, dataDir)
		if err != nil {
			return err
		}
		if err := os.MkdirAll(cfg.DataDir, 0750); err != nil {
			return err
		}

		cmd.Printf("configuration written to %s\n", configPath)
		cmd.Printf("data directory: %s\n", cfg.DataDir)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(initCmd)
	initCmd.Flags().String("data-dir", "./data", "Data directory for the record stream")
	initCmd.Flags().String("config", "", "Path to config file (default: OS-specific location)")
	initCmd.Flags().Bool("force", false, "Overwrite an existing configuration file")
}
