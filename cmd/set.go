package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/papapumpkin/vcustomizer/internal/sca"
	"github.com/papapumpkin/vcustomizer/internal/ui"
)

var setCmd = &cobra.Command{
	Use:   "set <class> <animation>",
	Short: "Set the origin of one animation",
	Long: `Stores an origin transform for one animation in the session file.
Unset axes are zero; setting every axis to zero clears the entry.`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		class, err := sca.ParseCategory(args[0])
		if err != nil {
			return err
		}
		t, err := transformFlags(cmd)
		if err != nil {
			return err
		}
		cat, err := cur.loadCatalog()
		if err != nil {
			return err
		}
		if !cat.Set(class, args[1], t) {
			return fmt.Errorf("%s has no animation %q", class, args[1])
		}
		if err := cur.saveCatalog(cat); err != nil {
			return err
		}
		cur.printer.Success(fmt.Sprintf("%s/%s %s", class, args[1], transformSummary(t)))
		return nil
	},
}

func init() {
	addTransformFlags(setCmd)
	rootCmd.AddCommand(setCmd)
}

func addTransformFlags(cmd *cobra.Command) {
	cmd.Flags().Float64("x", 0, "x offset")
	cmd.Flags().Float64("y", 0, "y offset")
	cmd.Flags().Float64("z", 0, "z offset")
	cmd.Flags().Float64("zrot", 0, "rotation around z")
}

func transformFlags(cmd *cobra.Command) (sca.Transform, error) {
	var t sca.Transform
	for _, f := range []struct {
		name string
		dst  *float64
	}{{"x", &t.X}, {"y", &t.Y}, {"z", &t.Z}, {"zrot", &t.ZRot}} {
		v, err := cmd.Flags().GetFloat64(f.name)
		if err != nil {
			return sca.Transform{}, err
		}
		*f.dst = v
	}
	return t, nil
}

func transformSummary(t sca.Transform) string {
	if !t.IsModified() {
		return "reset"
	}
	return "origin " + ui.FormatTransform(t)
}
