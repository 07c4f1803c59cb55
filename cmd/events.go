package cmd

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"

	"github.com/papapumpkin/graha/internal/config"
	"github.com/papapumpkin/graha/internal/telemetry"
	"github.com/papapumpkin/graha/internal/ui"
)

var eventsCmd = &cobra.Command{
	Use:   "events",
	Short: "View the JSONL event log",
	Long: `Reads and formats the JSONL event log written when events_path (or
--events) is set.

With --follow (-f), watches the file for new events (like tail -f).`,
	Args: cobra.NoArgs,
	RunE: runEvents,
}

func init() {
	eventsCmd.Flags().BoolP("follow", "f", false, "follow the file for new events")
	eventsCmd.Flags().String("kind", "", "only show events of this kind")
	rootCmd.AddCommand(eventsCmd)
}

func runEvents(cmd *cobra.Command, _ []string) error {
	printer := newPrinter(cmd)
	follow, _ := cmd.Flags().GetBool("follow")
	kind, _ := cmd.Flags().GetString("kind")

	cfg, err := config.Load()
	if err != nil {
		return err
	}
	path := cfg.EventsPath
	if path == "" {
		return fmt.Errorf("events: no event log configured (set events_path or --events)")
	}

	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("events: open %s: %w", path, err)
	}
	defer f.Close()

	events, err := telemetry.ReadEvents(f)
	if err != nil {
		return fmt.Errorf("events: %s: %w", path, err)
	}
	printer.Events(filterKind(events, kind))

	if !follow {
		return nil
	}

	ctx, cancel := setupSignalContext(printer)
	defer cancel()
	return tailFollow(ctx, printer, f, path, kind)
}

func filterKind(events []telemetry.Event, kind string) []telemetry.Event {
	if kind == "" {
		return events
	}
	out := events[:0]
	for _, e := range events {
		if e.Kind == kind {
			out = append(out, e)
		}
	}
	return out
}

// tailFollow watches the file for new data using fsnotify and prints new
// events until ctx is canceled. f must be positioned at the end of the
// events already printed.
func tailFollow(ctx context.Context, printer *ui.Printer, f *os.File, path, kind string) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("events: create watcher: %w", err)
	}
	defer watcher.Close()

	if err := watcher.Add(path); err != nil {
		return fmt.Errorf("events: watch %s: %w", path, err)
	}

	reader := bufio.NewReader(f)
	var partial string
	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if !event.Has(fsnotify.Write) {
				continue
			}
			// Read all complete lines available; keep a trailing partial
			// line for the next write.
			for {
				chunk, err := reader.ReadString('\n')
				partial += chunk
				if err == io.EOF {
					break
				}
				if err != nil {
					return fmt.Errorf("events: read %s: %w", path, err)
				}
				line := partial
				partial = ""
				var evt telemetry.Event
				if err := json.Unmarshal([]byte(line), &evt); err != nil {
					printer.Error(fmt.Sprintf("events: skipping malformed line: %v", err))
					continue
				}
				printer.Events(filterKind([]telemetry.Event{evt}, kind))
			}
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			printer.Error("events: watch: " + err.Error())
		}
	}
}
