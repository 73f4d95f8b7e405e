package cmd

import (
	"github.com/spf13/cobra"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List classes, animations and their saved origins",
	RunE: func(cmd *cobra.Command, args []string) error {
		modified, _ := cmd.Flags().GetBool("modified")
		cat, err := cur.loadCatalog()
		if err != nil {
			return err
		}
		cur.printer.Catalog(cat, modified)
		return nil
	},
}

func init() {
	listCmd.Flags().BoolP("modified", "m", false, "only show animations with a non-zero origin")
	rootCmd.AddCommand(listCmd)
}
