package main

import (
	"encoding/json"
	"fmt"

	"github.com/cypheredvortex/mern-social-media-sub000/internal/counters"
	"github.com/spf13/cobra"
)

var recountCmd = &cobra.Command{
	Use:   "recount",
	Short: "Recompute like, comment and share counters",
	Long: `Recomputes post like, comment and share counts and comment like counts from the
likes, comments and shares collections, and fixes any that drifted.

Examples:
  socialctl recount --dry-run
  socialctl recount --output json`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		dryRun, _ := cmd.Flags().GetBool("dry-run")

		db, stores, err := openStores()
		if err != nil {
			return err
		}
		defer db.CloseDB()

		drifts, err := counters.NewReconciler(stores).Reconcile(cmd.Context(), dryRun)
		if err != nil {
			return err
		}

		if output == "json" {
			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(drifts)
		}
		for _, d := range drifts {
			fmt.Fprintf(cmd.OutOrStdout(), "%s %s %s: %d -> %d\n", d.Collection, d.ID.Hex(), d.Field, d.Stored, d.Actual)
		}
		verb := "Fixed"
		if dryRun {
			verb = "Found"
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s %d drifted counters\n", verb, len(drifts))
		return nil
	},
}

func init() {
	recountCmd.Flags().Bool("dry-run", false, "Report drift without writing")
}
