package cmd

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/papapumpkin/vcustomizer/internal/history"
	"github.com/papapumpkin/vcustomizer/internal/pipeline"
	"github.com/papapumpkin/vcustomizer/internal/sca"
	"github.com/papapumpkin/vcustomizer/internal/staging"
	"github.com/papapumpkin/vcustomizer/internal/telemetry"
)

var buildCmd = &cobra.Command{
	Use:   "build",
	Short: "Compile every class with a modified origin and install the vpk",
	Long: `Stages the selected classes from the SCA library, prepends the $origin
directive to each modified animation, compiles the scripts one at a time and
packs the output into tf/custom/0_ViewmodelCustomized.vpk.

The live models folder is moved aside while compiling and restored
afterwards, whether the build succeeds or not. Ctrl-C stops after the
script that is currently compiling.`,
	Args: cobra.NoArgs,
	RunE: runBuild,
}

func init() {
	buildCmd.Flags().Float64Slice("apply-all", nil, "set x,y,z,zrot on every animation before building")
	buildCmd.Flags().Bool("only-modified", false, "compile only modified animations plus the class scripts")
	_ = viper.BindPFlag("only_modified", buildCmd.Flags().Lookup("only-modified"))
	rootCmd.AddCommand(buildCmd)
}

func runBuild(cmd *cobra.Command, _ []string) error {
	a := cur
	cat, err := a.loadCatalog()
	if err != nil {
		return err
	}
	if cmd.Flags().Changed("apply-all") {
		vals, _ := cmd.Flags().GetFloat64Slice("apply-all")
		if len(vals) != 4 {
			return fmt.Errorf("--apply-all takes 4 values (x,y,z,zrot), got %d", len(vals))
		}
		cat.ApplyToAll(sca.Transform{X: vals[0], Y: vals[1], Z: vals[2], ZRot: vals[3]})
		if err := a.saveCatalog(cat); err != nil {
			return err
		}
	}
	if len(cat.Selected()) == 0 {
		return pipeline.ErrNothingSelected
	}

	d, err := a.driver()
	if err != nil {
		return err
	}
	area := a.workArea(d.ContentRoot)
	// Leftovers from an interrupted run would block the diversion.
	for _, w := range area.Recover() {
		a.printer.Warning(w.Error())
	}

	ctx, cancel := setupSignalContext(a.printer)
	defer cancel()

	stager := &staging.Stager{Fs: a.fs, Library: a.library().Root, Root: area.StagingRoot()}
	p := &pipeline.Pipeline{
		Stager:       stager,
		Patcher:      &staging.Patcher{Stager: stager, Ext: a.cfg.ScriptExt, Directive: a.cfg.Directive},
		Compiler:     d,
		Area:         area,
		OnlyModified: a.cfg.OnlyModified,
		Logger:       a.log.Named("pipeline"),
	}
	if path := a.cfg.Path(a.cfg.HistoryDB); path != "" {
		store, err := history.Open(ctx, path)
		if err != nil {
			a.log.Warn("build history disabled", zap.Error(err))
		} else {
			defer store.Close()
			p.Recorder = store
		}
	}
	if path := a.cfg.Path(a.cfg.TelemetryPath); path != "" {
		events, err := telemetry.NewEmitter(path)
		if err != nil {
			a.log.Warn("telemetry disabled", zap.Error(err))
		} else {
			defer events.Close()
			p.Events = events
		}
	}

	return drainBuild(ctx, a, p, cat)
}

func drainBuild(ctx context.Context, a *app, p *pipeline.Pipeline, cat *sca.Catalog) error {
	start := time.Now()
	b, err := p.Prepare(ctx, cat)
	if err != nil {
		return err
	}
	a.printer.BuildStart(b.ID, b.Classes, b.Total())

	abort := func(cause error) error {
		for _, w := range b.Abort(ctx, cause) {
			a.printer.Warning(w.Error())
		}
		a.printer.BuildAborted(cause.Error())
		return cause
	}

	for {
		if err := ctx.Err(); err != nil {
			return abort(err)
		}
		script := b.Peek()
		done, res, err := b.Step(ctx)
		if err != nil {
			a.printer.ItemFailed(script, err, res.Output())
			return abort(err)
		}
		if done {
			break
		}
		a.printer.Progress(b.Completed(), b.Total(), script, res.Duration)
	}

	archive, err := b.Finish(ctx)
	if err != nil {
		return abort(err)
	}
	var size int64
	if info, err := a.fs.Stat(archive); err == nil {
		size = info.Size()
	}
	a.printer.BuildDone(archive, size, time.Since(start))
	return nil
}
