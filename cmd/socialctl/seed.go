package main

import (
	"encoding/json"
	"fmt"

	"github.com/cypheredvortex/mern-social-media-sub000/internal/seed"
	"github.com/spf13/cobra"
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Fill the databases with fake users and posts",
	Long: `Creates fake users with profiles and settings, follows between them, and posts
with likes and comments. Every seeded user can log in with the password "` + seed.DefaultPassword + `".

Examples:
  socialctl seed
  socialctl seed --users 50 --posts 200 --seed 42`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		users, _ := cmd.Flags().GetInt("users")
		posts, _ := cmd.Flags().GetInt("posts")
		seedValue, _ := cmd.Flags().GetUint64("seed")
		if users < 2 {
			return fmt.Errorf("--users must be at least 2")
		}

		db, stores, err := openStores()
		if err != nil {
			return err
		}
		defer db.CloseDB()

		result, err := seed.NewSeeder(stores).Run(cmd.Context(), seed.Options{
			Users: users,
			Posts: posts,
			Seed:  seedValue,
		})
		if err != nil {
			return err
		}

		if output == "json" {
			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(result)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Seeded %d users, %d posts, %d comments, %d likes, %d follows\n",
			result.Users, result.Posts, result.Comments, result.Likes, result.Follows)
		return nil
	},
}

func init() {
	seedCmd.Flags().Int("users", 20, "Number of users to create")
	seedCmd.Flags().Int("posts", 100, "Number of posts to create")
	seedCmd.Flags().Uint64("seed", 0, "Random seed; 0 picks a random one")
}
