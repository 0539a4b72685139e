package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/ssargent/trackvault/pkg/dbconfig"
)

type ctxKey string

const configCtxKey ctxKey = "config"

var rootCmd = &cobra.Command{
	Use:   "trackvault",
	Short: "trackvault - device database decoder",
	Long: `trackvault reads a DJ device's export.pdb-style database and
prints or dumps the tracks and playlists it describes.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		configPath, _ := cmd.Flags().GetString("config")

		var cfg *dbconfig.Config
		if dbconfig.ConfigExists(configPath) {
			loaded, err := dbconfig.LoadConfig(configPath)
			if err != nil {
				return fmt.Errorf("failed to load config: %w", err)
			}
			cfg = loaded
		} else {
			cfg = dbconfig.DefaultConfig()
		}

		cmd.SetContext(context.WithValue(cmd.Context(), configCtxKey, cfg))
		return nil
	},
}

// Execute adds all child commands to the root command and sets flags
// appropriately. It is called once by main.main().
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringP("config", "c", dbconfig.GetDefaultConfigPath(), "Path to trackvault config file")
}

func configFromContext(cmd *cobra.Command) *dbconfig.Config {
	cfg, ok := cmd.Context().Value(configCtxKey).(*dbconfig.Config)
	if !ok {
		return dbconfig.DefaultConfig()
	}
	return cfg
}
