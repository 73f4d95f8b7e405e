package cmd

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/papapumpkin/vcustomizer/internal/history"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show recent builds, or the scripts of one build with --build",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		n, _ := cmd.Flags().GetInt("limit")
		buildID, _ := cmd.Flags().GetString("build")

		ctx := context.Background()
		store, err := history.Open(ctx, cur.cfg.Path(cur.cfg.HistoryDB))
		if err != nil {
			return err
		}
		defer store.Close()

		if buildID != "" {
			id, err := store.ResolveID(ctx, buildID)
			if err != nil {
				return err
			}
			items, err := store.Items(ctx, id)
			if err != nil {
				return err
			}
			cur.printer.BuildItems(items)
			return nil
		}
		builds, err := store.Recent(ctx, n)
		if err != nil {
			return err
		}
		cur.printer.History(builds)
		return nil
	},
}

func init() {
	historyCmd.Flags().IntP("limit", "n", 10, "number of builds to show")
	historyCmd.Flags().String("build", "", "list the scripts compiled by this build (id or prefix)")
	rootCmd.AddCommand(historyCmd)
}
