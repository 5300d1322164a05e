package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var indexesCmd = &cobra.Command{
	Use:   "indexes",
	Short: "Create MongoDB indexes and migrate the SQL tables",
	Long: `Creates every MongoDB index the server relies on, including the unique indexes on
user email, profile and settings owner, and follower/followed pairs. Safe to run repeatedly.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		// InitDB ensures indexes and migrations on connect
		db, _, err := openStores()
		if err != nil {
			return err
		}
		defer db.CloseDB()

		fmt.Fprintln(cmd.OutOrStdout(), "Indexes and SQL tables are up to date")
		return nil
	},
}
