package main

import (
	"fmt"
	"os"

	"github.com/cypheredvortex/mern-social-media-sub000/internal/repositories"
	"github.com/cypheredvortex/mern-social-media-sub000/pkg/config"
	"github.com/cypheredvortex/mern-social-media-sub000/pkg/logger"
	"github.com/spf13/cobra"
)

var output = "text" // "text" or "json"

var rootCmd = &cobra.Command{
	Use:   "socialctl",
	Short: "socialctl - administer the social media backend",
	Long: `socialctl runs maintenance tasks against the databases configured for the server.
It reads the same environment variables and .env file as the server.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		level := "warn"
		if verbose, _ := cmd.Flags().GetBool("verbose"); verbose {
			level = "debug"
		}
		return logger.Initialize(level, "socialctl.log")
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		_ = logger.Close()
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&output, "output", output, "Output format: text or json")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Log debug output")

	rootCmd.AddCommand(indexesCmd)
	rootCmd.AddCommand(seedCmd)
	rootCmd.AddCommand(recountCmd)
}

// openStores connects with the server's configuration. The caller closes the returned DB.
func openStores() (*config.DB, *repositories.Stores, error) {
	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		return nil, nil, err
	}
	db, err := config.InitDB(cfg)
	if err != nil {
		return nil, nil, err
	}
	return db, repositories.NewStores(db.Database, db.SQL), nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
