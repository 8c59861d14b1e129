// filepath: internal/cli/serve_command.go
package cli

import "github.com/spf13/cobra"

func NewServeCommand() *cobra.Command {
	serveCmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP server",
		Long:  `Serves the upload, thumbnail and delete endpoints under /api and a public /health check.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServer()
		},
	}

	registerServerFlags(serveCmd)

	return serveCmd
}
