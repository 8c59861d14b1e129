// filepath: internal/cli/hash_key_command.go
package cli

import (
	"fmt"

	"filekit/internal/api/auth"
	"filekit/internal/config"
	"filekit/internal/logging"

	"github.com/spf13/cobra"
)

type HashKeyOptions struct {
	Save bool // write the hash to the config file
}

func NewHashKeyCommand() *cobra.Command {
	hashKeyOptions := &HashKeyOptions{}

	hashKeyCmd := &cobra.Command{
		Use:   "hash-key KEY",
		Short: "Hash an API key for server.api_key_hash",
		Long: `Prints the bcrypt hash of KEY. Clients then send "Authorization: Bearer KEY".
With --save the hash is written to the config file instead.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runHashKey(cmd, hashKeyOptions, args[0])
		},
	}

	hashKeyCmd.Flags().BoolVar(&hashKeyOptions.Save, "save", false, "Store the hash in the config file.")

	return hashKeyCmd
}

func runHashKey(cmd *cobra.Command, opt *HashKeyOptions, key string) error {
	if key == "" {
		return fmt.Errorf("API key must not be empty")
	}
	hash, err := auth.HashKey(key)
	if err != nil {
		return fmt.Errorf("failed to hash API key: %w", err)
	}

	if !opt.Save {
		fmt.Fprintln(cmd.OutOrStdout(), hash)
		return nil
	}

	cfg.Server.APIKeyHash = hash
	if err := config.SaveConfig(cfgFile, cfg); err != nil {
		return err
	}
	logging.Log.Infof("API key hash saved to %s.", cfgFile)
	fmt.Fprintf(cmd.OutOrStdout(), "saved to %s\n", cfgFile)
	return nil
}
