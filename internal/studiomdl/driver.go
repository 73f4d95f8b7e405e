// Package studiomdl drives the Source SDK model compiler (studiomdl) and the
// packager (vpk) that ship in the game's bin folder.
package studiomdl

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	"github.com/mattn/go-shellwords"
	"github.com/spf13/afero"
	"go.uber.org/zap"
)

// Defaults for the fixed parts of the tool invocations.
const (
	DefaultFlags         = "-nop4 -verbose"
	DefaultPackagerName  = "vpk.exe"
	DefaultPackageFolder = "models/__TEMP/0_ViewmodelCustomized"
	DefaultDestination   = "custom"
	archiveExt           = ".vpk"
)

// Result is the captured output of one tool run.
type Result struct {
	Stdout   string
	Stderr   string
	Duration time.Duration
}

// Output joins stdout and stderr for display.
func (r Result) Output() string {
	if r.Stderr == "" {
		return r.Stdout
	}
	return r.Stdout + r.Stderr
}

// Driver invokes studiomdl and vpk. Every run blocks until the tool exits;
// there is no way to interrupt a run once started.
type Driver struct {
	CompilerPath  string
	ContentRoot   string
	Flags         []string // passed between "-game <root>" and the script
	PackagerName  string   // looked up next to CompilerPath
	PackageFolder string   // relative to ContentRoot
	Destination   string   // relative to ContentRoot
	Fs            afero.Fs
	Logger        *zap.Logger
}

// Options configures NewDriver.
type Options struct {
	CompilerPath  string
	ContentRoot   string
	Flags         string
	PackagerName  string
	PackageFolder string
	Destination   string
	Logger        *zap.Logger
}

// NewDriver builds a Driver, splitting the flag string with shell quoting
// rules and filling in defaults.
func NewDriver(opts Options) (*Driver, error) {
	flags := opts.Flags
	if flags == "" {
		flags = DefaultFlags
	}
	parsed, err := shellwords.Parse(flags)
	if err != nil {
		return nil, fmt.Errorf("parsing compiler flags %q: %w", flags, err)
	}
	d := &Driver{
		CompilerPath:  opts.CompilerPath,
		ContentRoot:   opts.ContentRoot,
		Flags:         parsed,
		PackagerName:  opts.PackagerName,
		PackageFolder: opts.PackageFolder,
		Destination:   opts.Destination,
		Fs:            afero.NewOsFs(),
		Logger:        opts.Logger,
	}
	if d.PackagerName == "" {
		d.PackagerName = DefaultPackagerName
	}
	if d.PackageFolder == "" {
		d.PackageFolder = DefaultPackageFolder
	}
	if d.Destination == "" {
		d.Destination = DefaultDestination
	}
	if d.Logger == nil {
		d.Logger = zap.NewNop()
	}
	return d, nil
}

// PackagerPath returns the vpk executable next to the compiler.
func (d *Driver) PackagerPath() string {
	return filepath.Join(filepath.Dir(d.CompilerPath), d.PackagerName)
}

// PackageDir returns the compiled output folder that vpk packs.
func (d *Driver) PackageDir() string {
	return filepath.Join(d.ContentRoot, filepath.FromSlash(d.PackageFolder))
}

// DestinationPath returns where the packed archive ends up.
func (d *Driver) DestinationPath() string {
	return filepath.Join(d.ContentRoot, filepath.FromSlash(d.Destination), filepath.Base(d.PackageDir())+archiveExt)
}

// CompileArgs returns the arguments passed to studiomdl for script.
func (d *Driver) CompileArgs(script string) []string {
	args := make([]string, 0, len(d.Flags)+3)
	args = append(args, "-game", d.ContentRoot)
	args = append(args, d.Flags...)
	return append(args, script)
}

// Compile runs studiomdl on one build script and waits for it.
func (d *Driver) Compile(script string) (Result, error) {
	return d.run(d.CompilerPath, script, d.CompileArgs(script)...)
}

// Package runs vpk on the compiled output folder and moves the resulting
// archive into the destination folder. It returns the archive's new path.
func (d *Driver) Package() (string, Result, error) {
	dir := d.PackageDir()
	res, err := d.run(d.PackagerPath(), dir, dir)
	if err != nil {
		return "", res, err
	}
	archive := dir + archiveExt
	dest := d.DestinationPath()
	if err := d.Fs.Rename(archive, dest); err != nil {
		return "", res, fmt.Errorf("%w: %s -> %s: %v", ErrRelocateFailed, archive, dest, err)
	}
	d.Logger.Debug("archive relocated", zap.String("from", archive), zap.String("to", dest))
	return dest, res, nil
}

// Validate checks that the content root and both tools exist.
func (d *Driver) Validate() error {
	var errs []error
	if ok, _ := afero.DirExists(d.Fs, d.ContentRoot); !ok {
		errs = append(errs, fmt.Errorf("%w, %s: %s", ErrContentRootNotFound, installHint, d.ContentRoot))
	}
	for _, tool := range []string{d.CompilerPath, d.PackagerPath()} {
		if ok, _ := afero.Exists(d.Fs, tool); !ok {
			errs = append(errs, fmt.Errorf("%w: can't find %s, %s", ErrToolNotFound, filepath.Base(tool), installHint))
		}
	}
	return errors.Join(errs...)
}

func (d *Driver) run(tool, target string, args ...string) (Result, error) {
	cmd := exec.Command(tool, args...)
	cmd.SysProcAttr = detachedAttr()
	cmd.Env = os.Environ()

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	d.Logger.Debug("running tool", zap.String("tool", tool), zap.String("args", strings.Join(args, " ")))

	start := time.Now()
	err := cmd.Run()
	res := Result{Stdout: stdout.String(), Stderr: stderr.String(), Duration: time.Since(start)}
	if err == nil {
		d.Logger.Debug("tool finished", zap.String("target", target), zap.Duration("took", res.Duration))
		return res, nil
	}

	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		return res, &ExitError{Tool: tool, Target: target, Code: exitErr.ExitCode(), Output: res.Output()}
	}
	return res, fmt.Errorf("%w: %s: %v", ErrSpawnFailed, tool, err)
}
