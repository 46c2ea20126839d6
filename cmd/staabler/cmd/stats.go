package cmd

import (
	"github.com/spf13/cobra"
)

// statsCmd reports the stream's on-disk footprint and the recovery
// report produced the last time it was opened.
var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show the record stream's size and last recovery report",
	RunE: func(cmd *cobra.Command, args []string) error {
		stream, err := streamFromContext(cmd.Context())
		if err != nil {
			return err
		}
		report, err := reportFromContext(cmd.Context())
		if err != nil {
			return err
		}

		size, _ := stream.Stats()
		cmd.Printf("size_bytes:       %d\n", size)
		cmd.Printf("frames_validated: %d\n", report.FramesValidated)
		cmd.Printf("frames_truncated: %d\n", report.FramesTruncated)
		cmd.Printf("recovery_time:    %s\n", report.RecoveryTime)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(statsCmd)
}
