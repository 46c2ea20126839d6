package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/idleman/staabler/pkg/httpapi"
)

// serveCmd starts the HTTP control plane (health, stats, explain,
// metrics) over the stream opened by the root command.
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP control plane over the record stream",
	Long: `Start the HTTP control plane over the record stream: /healthz,
/stats, /explain and a Prometheus /metrics endpoint. It exposes no write
path — records are appended through the library or the put command.

Examples:
  staabler serve --port=8080
  staabler serve --bind=0.0.0.0 --port=9000`,
	RunE: func(cmd *cobra.Command, args []string) error {
		port, _ := cmd.Flags().GetInt("port")
		bind, _ := cmd.Flags().GetString("bind")

		stream, err := streamFromContext(cmd.Context())
		if err != nil {
			return err
		}
		report, err := reportFromContext(cmd.Context())
		if err != nil {
			return err
		}

		if container == nil {
			return fmt.Errorf("dependency container not initialized")
		}
		starter := container.GetServerFactory().CreateServerStarter()

		cmd.Printf("starting control plane on %s:%d\n", bind, port)
		return starter.StartServer(stream, report, httpapi.ServerConfig{Port: port, Bind: bind})
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().IntP("port", "p", 8080, "Port to listen on")
	serveCmd.Flags().String("bind", "127.0.0.1", "Address to bind the control plane to")
}
