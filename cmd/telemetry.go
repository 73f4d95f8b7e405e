package cmd

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"maps"
	"os"
	"slices"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/papapumpkin/vcustomizer/internal/telemetry"
)

var telemetryCmd = &cobra.Command{
	Use:   "telemetry",
	Short: "Print the build event log",
	Long: `Prints the JSONL events that builds append to telemetry_path, one line each.

--build keeps only events whose build ID starts with the given prefix.
--follow (-f) keeps the file open and prints events as builds write them.`,
	Args: cobra.NoArgs,
	RunE: runTelemetry,
}

func init() {
	telemetryCmd.Flags().String("build", "", "build ID prefix to filter on")
	telemetryCmd.Flags().BoolP("follow", "f", false, "print new events as they are written")
	rootCmd.AddCommand(telemetryCmd)
}

func runTelemetry(cmd *cobra.Command, _ []string) error {
	build, _ := cmd.Flags().GetString("build")
	follow, _ := cmd.Flags().GetBool("follow")
	if cur.cfg.TelemetryPath == "" {
		return fmt.Errorf("telemetry: telemetry_path is not configured")
	}
	path := cur.cfg.Path(cur.cfg.TelemetryPath)

	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("telemetry: open %s: %w", path, err)
	}
	defer f.Close()

	out := cmd.OutOrStdout()
	r := bufio.NewReader(f)
	drain := func() {
		for {
			line, err := r.ReadString('\n')
			if line = strings.TrimSpace(line); line != "" {
				printEvent(out, line, build)
			}
			if err != nil {
				return
			}
		}
	}
	drain()
	if !follow {
		return nil
	}

	w, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("telemetry: create watcher: %w", err)
	}
	defer w.Close()
	if err := w.Add(path); err != nil {
		return fmt.Errorf("telemetry: watch %s: %w", path, err)
	}

	ctx, cancel := setupSignalContext(cur.printer)
	defer cancel()
	for {
		select {
		case <-ctx.Done():
			return nil
		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			cur.log.Warn("telemetry watcher error", zap.Error(err))
		case ev, ok := <-w.Events:
			if !ok {
				return nil
			}
			if ev.Has(fsnotify.Write) {
				drain()
			}
		}
	}
}

// printEvent writes one decoded event as
// "[15:04:05] kind build=<short id> item=<item> k=v ...". Lines that are not
// events are echoed with a "???" marker; events of other builds are skipped
// when build is set.
func printEvent(w io.Writer, line, build string) {
	var evt telemetry.Event
	if err := json.Unmarshal([]byte(line), &evt); err != nil {
		fmt.Fprintf(w, "??? %s\n", line)
		return
	}
	if !strings.HasPrefix(evt.BuildID, build) {
		return
	}

	var b strings.Builder
	fmt.Fprintf(&b, "[%s] %s", evt.Timestamp.Local().Format(time.TimeOnly), evt.Kind)
	if id := evt.BuildID; id != "" {
		fmt.Fprintf(&b, " build=%s", id[:min(len(id), 8)])
	}
	if evt.Item != "" {
		fmt.Fprintf(&b, " item=%s", evt.Item)
	}
	switch data := evt.Data.(type) {
	case nil:
	case map[string]any:
		for _, k := range slices.Sorted(maps.Keys(data)) {
			fmt.Fprintf(&b, " %s=%v", k, data[k])
		}
	default:
		raw, _ := json.Marshal(data)
		b.WriteString(" " + string(raw))
	}
	fmt.Fprintln(w, b.String())
}
