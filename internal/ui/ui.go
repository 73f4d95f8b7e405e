// Package ui renders user-facing terminal output. Diagnostics go through zap;
// everything the user is meant to read goes through a Printer.
package ui

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/dustin/go-humanize"

	"github.com/papapumpkin/vcustomizer/internal/history"
	"github.com/papapumpkin/vcustomizer/internal/sca"
	"github.com/papapumpkin/vcustomizer/internal/session"
)

// ANSI color codes.
const (
	reset   = "\033[0m"
	bold    = "\033[1m"
	dim     = "\033[2m"
	blue    = "\033[34m"
	yellow  = "\033[33m"
	green   = "\033[32m"
	red     = "\033[31m"
	cyan    = "\033[36m"
	magenta = "\033[35m"

	clearLine = "\r\033[2K"
)

const barWidth = 30

// Printer writes styled messages for the user.
type Printer struct {
	w   io.Writer
	bar progress.Model
	// inProgress is set while the last line written is a progress line.
	inProgress bool
}

// New returns a Printer writing to stderr.
func New() *Printer {
	return NewWriter(os.Stderr)
}

// NewWriter returns a Printer writing to w.
func NewWriter(w io.Writer) *Printer {
	return &Printer{
		w:   w,
		bar: progress.New(progress.WithDefaultGradient(), progress.WithWidth(barWidth), progress.WithoutPercentage()),
	}
}

func (p *Printer) printf(format string, args ...any) {
	if p.inProgress {
		fmt.Fprint(p.w, "\n")
		p.inProgress = false
	}
	fmt.Fprintf(p.w, format, args...)
}

// Banner prints the program header.
func (p *Printer) Banner() {
	p.printf(bold + cyan + "  ╔════════════════════════════════╗" + reset + "\n")
	p.printf(bold + cyan + "  ║" + reset + bold + "  VIEWMODEL " + dim + "origin customizer" + reset + bold + cyan + "   ║" + reset + "\n")
	p.printf(bold + cyan + "  ╚════════════════════════════════╝" + reset + "\n\n")
}

// Error prints msg as an error.
func (p *Printer) Error(msg string) {
	p.printf(red+bold+"error: "+reset+"%s\n", msg)
}

// Warning prints msg as a warning. Cleanup failures use it.
func (p *Printer) Warning(msg string) {
	p.printf(yellow+bold+"warning: "+reset+"%s\n", msg)
}

// Info prints msg dimmed.
func (p *Printer) Info(msg string) {
	p.printf(dim+"%s"+reset+"\n", msg)
}

// Success prints msg with a check mark.
func (p *Printer) Success(msg string) {
	p.printf(green+bold+"✓ "+reset+"%s\n", msg)
}

// Catalog lists every class and its animations. Modified animations are
// highlighted with their transform; with modifiedOnly the untouched ones
// are left out.
func (p *Printer) Catalog(cat *sca.Catalog, modifiedOnly bool) {
	for _, entry := range cat.Entries {
		selected := entry.Selected()
		if modifiedOnly && len(selected) == 0 {
			continue
		}
		color := blue
		if len(selected) > 0 {
			color = magenta
		}
		p.printf(color+bold+"%s"+reset+dim+" (%d animations, %d modified)"+reset+"\n",
			entry.Category, len(entry.Variants), len(selected))
		for _, v := range entry.Variants {
			if v.Transform.IsModified() {
				p.printf("  "+green+"●"+reset+" %-28s %s\n", v.Name, FormatTransform(v.Transform))
			} else if !modifiedOnly {
				p.printf("  "+dim+"○ %s"+reset+"\n", v.Name)
			}
		}
	}
	if n := cat.Modified(); n == 0 {
		p.printf(dim + "no origin is modified" + reset + "\n")
	}
}

// FormatTransform renders t as "x y z zrot" labels for listings.
func FormatTransform(t sca.Transform) string {
	d := strings.TrimSpace(t.Directive(""))
	parts := strings.Fields(d)
	labels := []string{"x", "y", "z", "zrot"}
	var b strings.Builder
	for i, part := range parts {
		if i > 0 {
			b.WriteByte(' ')
		}
		b.WriteString(dim + labels[i] + "=" + reset + part)
	}
	return b.String()
}

// StaleEntries reports session entries that no longer match the library.
func (p *Printer) StaleEntries(entries []session.Entry) {
	for _, e := range entries {
		p.Warning(fmt.Sprintf("saved origin for %s/%s ignored: animation no longer in library", e.Class, e.Animation))
	}
}

// BuildStart announces a prepared build and its queue length.
func (p *Printer) BuildStart(id, classes string, total int) {
	p.printf("\n"+bold+magenta+"── build %s ──"+reset+"\n", shortID(id))
	p.printf(cyan+"◆ classes"+reset+" %s "+dim+"(%d script(s) queued)"+reset+"\n", classes, total)
}

// Progress redraws the progress line after a compiled script.
func (p *Printer) Progress(completed, total int, script string, took time.Duration) {
	pct := 0.0
	if total > 0 {
		pct = float64(completed) / float64(total)
	}
	fmt.Fprintf(p.w, clearLine+"%s "+bold+"%d/%d"+reset+" %s "+dim+"(%.1fs)"+reset,
		p.bar.ViewAs(pct), completed, total, scriptName(script), took.Seconds())
	p.inProgress = true
}

// ItemFailed reports the script that stopped the batch, with the tail of
// the tool output.
func (p *Printer) ItemFailed(script string, err error, output string) {
	p.printf(red+bold+"✗ %s"+reset+" %v\n", scriptName(script), err)
	for _, line := range tail(output, 15) {
		p.printf(dim+"  │ %s"+reset+"\n", line)
	}
}

// BuildDone reports the installed archive with its size.
func (p *Printer) BuildDone(archive string, size int64, elapsed time.Duration) {
	p.printf(green+bold+"✓ done"+reset+" %s "+dim+"(%s, %s)"+reset+"\n",
		archive, humanize.Bytes(uint64(size)), elapsed.Round(100*time.Millisecond))
}

// BuildAborted reports why a build stopped.
func (p *Printer) BuildAborted(reason string) {
	p.printf(red+bold+"✗ build stopped"+reset+" %s\n", reason)
}

// History lists recorded builds, newest first.
func (p *Printer) History(builds []history.Build) {
	if len(builds) == 0 {
		p.Info("no builds recorded")
		return
	}
	for _, b := range builds {
		color := yellow
		switch b.Status {
		case history.StatusSucceeded:
			color = green
		case history.StatusFailed:
			color = red
		}
		p.printf("%s "+color+"%-9s"+reset+" %s "+dim+"%d/%d %s"+reset+"\n",
			shortID(b.ID), b.Status, b.Classes, b.Done, b.Total, humanize.Time(b.StartedAt))
		if b.Archive != "" {
			p.printf(dim+"  → %s"+reset+"\n", b.Archive)
		}
		if b.Error != "" {
			p.printf(red+"  ! %s"+reset+"\n", b.Error)
		}
	}
}

// BuildItems lists the compile units of one build in queue order. The
// output of a failed unit is shown in full.
func (p *Printer) BuildItems(items []history.Item) {
	if len(items) == 0 {
		p.Info("no scripts recorded for this build")
		return
	}
	for _, it := range items {
		if it.Status == history.ItemOK {
			p.printf(green+"✓"+reset+" %3d %s\n", it.Seq, scriptName(it.Script))
			continue
		}
		p.printf(red+"✗"+reset+" %3d %s\n", it.Seq, scriptName(it.Script))
		for _, line := range tail(it.Output, 1<<16) {
			p.printf(dim+"  │ %s"+reset+"\n", line)
		}
	}
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

// scriptName trims a script path to its last three elements
// (<class>/<animation>/<file>) for display.
func scriptName(script string) string {
	parts := strings.FieldsFunc(script, func(r rune) bool { return r == '/' || r == '\\' })
	if len(parts) > 3 {
		parts = parts[len(parts)-3:]
	}
	return strings.Join(parts, "/")
}

func tail(s string, n int) []string {
	lines := strings.Split(strings.TrimRight(s, "\n"), "\n")
	if len(lines) == 1 && lines[0] == "" {
		return nil
	}
	if len(lines) > n {
		lines = lines[len(lines)-n:]
	}
	return lines
}
