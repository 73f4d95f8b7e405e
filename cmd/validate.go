package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Check the SCA library layout and the build tools",
	RunE: func(cmd *cobra.Command, args []string) error {
		a := cur
		ok := true

		lib := a.library()
		if err := lib.ValidateLayout(); err != nil {
			a.printer.Error(fmt.Sprintf("library: %v", err))
			ok = false
		} else {
			a.printer.Success("SCA library found at " + lib.Root)
		}

		d, err := a.driver()
		if err == nil {
			err = d.Validate()
		}
		if err != nil {
			a.printer.Error(fmt.Sprintf("build tools: %v", err))
			ok = false
		} else {
			a.printer.Success("studiomdl found at " + d.CompilerPath)
			a.printer.Success("vpk found at " + d.PackagerPath())
			a.printer.Success("content root " + d.ContentRoot)
		}

		if !ok {
			return fmt.Errorf("validation failed")
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(validateCmd)
}
