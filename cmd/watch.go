package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/papapumpkin/vcustomizer/internal/watch"
)

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Reprint the catalog whenever the SCA library changes",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		a := cur
		modified, _ := cmd.Flags().GetBool("modified")
		cat, err := a.loadCatalog()
		if err != nil {
			return err
		}
		a.printer.Catalog(cat, modified)

		w, err := watch.New(a.library().Root)
		if err != nil {
			return fmt.Errorf("creating watcher: %w", err)
		}
		if err := w.Start(); err != nil {
			w.Stop()
			return fmt.Errorf("watching library: %w", err)
		}
		defer w.Stop()

		ctx, cancel := setupSignalContext(a.printer)
		defer cancel()
		a.printer.Info("watching " + w.Root + ", Ctrl-C to stop")
		for {
			select {
			case <-ctx.Done():
				return nil
			case _, ok := <-w.Reloads:
				if !ok {
					return nil
				}
				cat, err := a.loadCatalog()
				if err != nil {
					a.printer.Error(err.Error())
					continue
				}
				a.printer.Info("library changed")
				a.printer.Catalog(cat, modified)
			}
		}
	},
}

func init() {
	watchCmd.Flags().BoolP("modified", "m", false, "only show animations with a non-zero origin")
	rootCmd.AddCommand(watchCmd)
}
