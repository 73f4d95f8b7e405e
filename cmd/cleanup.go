package cmd

import (
	"github.com/spf13/cobra"
)

var cleanupCmd = &cobra.Command{
	Use:   "cleanup",
	Short: "Delete the staging folder and restore a models folder left diverted",
	Long: `Repairs the game folder after an interrupted build: the staging folder is
deleted and, if tf/__TEMP_MODELS exists, tf/models is replaced by it.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		a := cur
		root, err := a.contentRoot()
		if err != nil {
			return err
		}
		area := a.workArea(root)
		pending := area.DiversionPending()
		warnings := area.Recover()
		// Already done; keep shutdownApp from repeating it.
		a.area = nil
		for _, w := range warnings {
			a.printer.Warning(w.Error())
		}
		if len(warnings) > 0 {
			return nil
		}
		if pending {
			a.printer.Success("restored " + area.LiveDir())
		}
		a.printer.Success("removed " + area.StagingRoot())
		return nil
	},
}

func init() {
	rootCmd.AddCommand(cleanupCmd)
}
