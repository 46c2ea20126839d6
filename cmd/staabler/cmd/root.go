package cmd

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/idleman/staabler/pkg/di"
	"github.com/idleman/staabler/pkg/logstream"
)

// container is injected by main via SetContainer before Execute runs.
var container *di.Container

// SetContainer wires the dependency injection container the serve
// command pulls its ServerFactory from.
func SetContainer(c *di.Container) {
	container = c
}

type streamCtxKey struct{}
type reportCtxKey struct{}

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "staabler",
	Short: "staabler - an append-only record stream toolkit",
	Long: `staabler manages a schema-laid-out, append-only record stream:
write records, tail them live with a cursor, and inspect recovery state
left by the last crash, if any.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		dataDir, _ := cmd.Flags().GetString("data-dir")
		if err := os.MkdirAll(dataDir, 0750); err != nil {
			return fmt.Errorf("failed to create data dir: %w", err)
		}

		handle, err := logstream.OpenFileHandle(filepath.Join(dataDir, "active.log"))
		if err != nil {
			return fmt.Errorf("failed to open log file: %w", err)
		}

		stream, report, err := logstream.Open(handle)
		if err != nil {
			return fmt.Errorf("failed to replay stream: %w", err)
		}
		if report.FramesTruncated > 0 {
			fmt.Printf("recovered from a partial write: %d frame(s) truncated\n", report.FramesTruncated)
		}

		ctx := context.WithValue(cmd.Context(), streamCtxKey{}, stream)
		ctx = context.WithValue(ctx, reportCtxKey{}, report)
		cmd.SetContext(ctx)
		return nil
	},
}

// Execute adds all child commands to the root command and sets flags
// appropriately. This is called by main.main(). It only needs to happen
// once to the rootCmd.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringP("data-dir", "d", "./data", "Data directory for the record stream")
}
