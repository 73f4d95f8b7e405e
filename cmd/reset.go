package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/papapumpkin/vcustomizer/internal/sca"
)

var resetCmd = &cobra.Command{
	Use:   "reset [<class> <animation>]",
	Short: "Reset one animation's origin, or all of them with --all",
	Args: func(cmd *cobra.Command, args []string) error {
		all, _ := cmd.Flags().GetBool("all")
		if all {
			return cobra.NoArgs(cmd, args)
		}
		return cobra.ExactArgs(2)(cmd, args)
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		all, _ := cmd.Flags().GetBool("all")
		cat, err := cur.loadCatalog()
		if err != nil {
			return err
		}
		msg := "all origins reset"
		if all {
			cat.ResetAll()
		} else {
			class, err := sca.ParseCategory(args[0])
			if err != nil {
				return err
			}
			// Unknown animations are a silent no-op.
			cat.Reset(class, args[1])
			msg = fmt.Sprintf("%s/%s reset", class, args[1])
		}
		if err := cur.saveCatalog(cat); err != nil {
			return err
		}
		cur.printer.Success(msg)
		return nil
	},
}

func init() {
	resetCmd.Flags().Bool("all", false, "reset every animation")
	rootCmd.AddCommand(resetCmd)
}
