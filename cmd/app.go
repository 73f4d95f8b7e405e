package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/papapumpkin/vcustomizer/internal/config"
	"github.com/papapumpkin/vcustomizer/internal/logging"
	"github.com/papapumpkin/vcustomizer/internal/sca"
	"github.com/papapumpkin/vcustomizer/internal/session"
	"github.com/papapumpkin/vcustomizer/internal/studiomdl"
	"github.com/papapumpkin/vcustomizer/internal/ui"
	"github.com/papapumpkin/vcustomizer/internal/workarea"
)

// app is the state shared by every command for one invocation.
type app struct {
	cfg     config.Config
	log     *zap.Logger
	printer *ui.Printer
	fs      afero.Fs

	// area is set by commands that touch the game folder; shutdownApp
	// runs its exit cleanup.
	area *workarea.Lifecycle
}

var cur *app

var executableDir = studiomdl.InstallDir

func setupApp(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	if cfg.InstallDir == "" {
		dir, err := executableDir()
		if err != nil {
			return err
		}
		cfg.InstallDir = dir
	}
	log, err := logging.New(os.Stderr, cfg.Verbose, cfg.Path(cfg.LogFile))
	if err != nil {
		return err
	}
	cur = &app{cfg: cfg, log: log, printer: ui.New(), fs: afero.NewOsFs()}
	log.Debug("config loaded", zap.String("install_dir", cfg.InstallDir), zap.String("command", cmd.Name()))
	return nil
}

// shutdownApp is the exit cleanup: it deletes the staging folder and
// restores a diverted live folder left by this invocation.
func shutdownApp() {
	if cur == nil {
		return
	}
	if cur.area != nil {
		for _, w := range cur.area.Recover() {
			cur.printer.Warning(w.Error())
		}
	}
	_ = cur.log.Sync()
}

func (a *app) library() *sca.Library {
	return &sca.Library{Fs: a.fs, Root: a.cfg.Path(a.cfg.LibraryDir)}
}

// loadCatalog validates the library, enumerates it and applies the saved
// session. Stale session entries are reported and dropped.
func (a *app) loadCatalog() (*sca.Catalog, error) {
	lib := a.library()
	if err := lib.ValidateLayout(); err != nil {
		return nil, err
	}
	cat, err := lib.BuildCatalog()
	if err != nil {
		return nil, err
	}
	sess, err := session.Load(a.fs, a.sessionPath())
	if err != nil {
		return nil, err
	}
	if stale := sess.Apply(cat); len(stale) > 0 {
		a.printer.StaleEntries(stale)
	}
	return cat, nil
}

func (a *app) sessionPath() string {
	return a.cfg.Path(a.cfg.SessionFile)
}

func (a *app) saveCatalog(cat *sca.Catalog) error {
	return session.Save(a.fs, a.sessionPath(), session.FromCatalog(cat))
}

// contentRoot returns the configured content root or walks up from the
// install folder.
func (a *app) contentRoot() (string, error) {
	if a.cfg.ContentRoot != "" {
		return a.cfg.ContentRoot, nil
	}
	return studiomdl.ResolveContentRoot(a.fs, a.cfg.InstallDir)
}

func (a *app) compilerPath() (string, error) {
	if a.cfg.CompilerPath != "" {
		return a.cfg.CompilerPath, nil
	}
	return studiomdl.ResolveCompilerPath(a.fs, a.cfg.InstallDir)
}

// driver resolves the build tools. Both resolution errors are reported.
func (a *app) driver() (*studiomdl.Driver, error) {
	root, rootErr := a.contentRoot()
	compiler, compErr := a.compilerPath()
	if err := errors.Join(rootErr, compErr); err != nil {
		return nil, err
	}
	return studiomdl.NewDriver(studiomdl.Options{
		CompilerPath:  compiler,
		ContentRoot:   root,
		Flags:         a.cfg.CompilerFlags,
		PackagerName:  a.cfg.PackagerName,
		PackageFolder: a.cfg.PackageFolder,
		Destination:   a.cfg.DestinationFolder,
		Logger:        a.log.Named("studiomdl"),
	})
}

// workArea builds the lifecycle for contentRoot and registers it for exit
// cleanup.
func (a *app) workArea(contentRoot string) *workarea.Lifecycle {
	a.area = workarea.New(workarea.Options{
		Fs:             a.fs,
		StagingRoot:    a.cfg.Path(a.cfg.StagingDir),
		ContentRoot:    contentRoot,
		LiveFolder:     a.cfg.LiveFolder,
		DivertedFolder: a.cfg.DivertedFolder,
		Logger:         a.log.Named("workarea"),
	})
	return a.area
}

// setupSignalContext returns a context that is canceled on SIGINT or SIGTERM.
func setupSignalContext(printer *ui.Printer) (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithCancel(context.Background())
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		select {
		case <-sigCh:
			printer.Info("stopping after the current script...")
			cancel()
		case <-ctx.Done():
		}
		signal.Stop(sigCh)
	}()
	return ctx, cancel
}
