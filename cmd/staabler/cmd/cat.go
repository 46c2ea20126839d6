package cmd

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/spf13/cobra"

	"github.com/idleman/staabler/pkg/logstream"
	"github.com/idleman/staabler/pkg/record"
)

// catCmd drains the stream's entries as JSON lines, optionally resuming
// from a previously reported offset.
var catCmd = &cobra.Command{
	Use:   "cat",
	Short: "Print every entry in the record stream as JSON lines",
	Long: `Print every entry currently in the record stream as JSON lines,
then exit. Use --from to resume at a byte offset reported by a previous
run instead of replaying from the start; use --follow to keep the cursor
open and print new entries as they are written.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		stream, err := streamFromContext(cmd.Context())
		if err != nil {
			return err
		}
		from, _ := cmd.Flags().GetInt64("from")
		follow, _ := cmd.Flags().GetBool("follow")

		enc := json.NewEncoder(cmd.OutOrStdout())
		cursor := logstream.NewCursorAt(stream, from).Map(func(r *record.Record) interface{} {
			return r.ToMap()
		})

		runCtx := cmd.Context()
		if !follow {
			// A context already cancelled makes Next return immediately
			// once the cursor runs out of currently-visible frames,
			// rather than parking for a future write.
			var cancel context.CancelFunc
			runCtx, cancel = context.WithCancel(runCtx)
			cancel()
		}

		for {
			item, err := cursor.Next(runCtx)
			if err != nil {
				if !follow && errors.Is(err, context.Canceled) {
					return nil
				}
				return err
			}
			if err := enc.Encode(map[string]interface{}{
				"offset": item.StartPos,
				"end":    item.EndPos,
				"entry":  item.Value,
			}); err != nil {
				return err
			}
		}
	},
}

func init() {
	rootCmd.AddCommand(catCmd)
	catCmd.Flags().Int64("from", 0, "Byte offset to resume from")
	catCmd.Flags().Bool("follow", false, "Keep printing entries as they are written")
}
