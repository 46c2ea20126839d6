package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

// putCmd represents the put command.
var putCmd = &cobra.Command{
	Use:   "put <key> <value>",
	Short: "Append a key/value entry to the record stream",
	Long: `Append a key/value entry to the record stream.

Example:
  staabler put mykey myvalue`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		stream, err := streamFromContext(cmd.Context())
		if err != nil {
			return err
		}

		rec, err := newEntry(args[0], []byte(args[1]))
		if err != nil {
			return fmt.Errorf("failed to build entry: %w", err)
		}

		offset, err := stream.WriteOne(rec)
		if err != nil {
			return fmt.Errorf("failed to append entry: %w", err)
		}

		cmd.Printf("wrote %q at offset %d\n", args[0], offset)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(putCmd)
}
