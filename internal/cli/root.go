// filepath: internal/cli/root.go
package cli

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
)

var (
	// Version info
	Version   = "0.3.0"
	StartTime time.Time
)

// RootCmd represents the base command when called without any subcommands.
// It starts the HTTP server.
var RootCmd = &cobra.Command{
	Use:   "filekit",
	Short: "filekit upload & thumbnail service",
	Long:  `Validates and stores uploaded files and derives image thumbnails, over HTTP or from the command line.`,
	// PersistentPreRunE loads the configuration before any command runs.
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return initializeConfig(cmd)
	},
	// RunE executes the main server logic.
	RunE: func(cmd *cobra.Command, args []string) error {
		return runServer()
	},
	SilenceUsage: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	StartTime = time.Now()

	if err := RootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	registerFlags(RootCmd)

	RootCmd.AddCommand(NewServeCommand())
	RootCmd.AddCommand(NewUploadCommand())
	RootCmd.AddCommand(NewThumbnailCommand())
	RootCmd.AddCommand(NewHashKeyCommand())
	RootCmd.AddCommand(NewHousekeepingCommand())
}
