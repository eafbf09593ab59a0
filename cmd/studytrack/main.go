package main

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	tea "github.com/charmbracelet/bubbletea"

	"studytrack/internal/app"
	"studytrack/internal/config"
	"studytrack/internal/core"
	"studytrack/internal/notify"
	"studytrack/internal/store"
	"studytrack/internal/timeutil"
)

var version = "dev"

func main() {
	if err := newRootCmd().Execute(); err != nil {
		_, _ = fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "studytrack",
		Short:         "Daily study and prayer tracker",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(_ *cobra.Command, _ []string) error {
			return runTUI()
		},
	}
	root.AddCommand(newReportCmd())
	root.AddCommand(newResetCmd())
	root.AddCommand(newVersionCmd())
	return root
}

func newLogger() zerolog.Logger {
	return zerolog.New(os.Stderr).With().
		Str("service", "studytrack").
		Timestamp().
		Logger()
}

// openTracker wires config, storage, notifications and the tracker.
// The returned close function must be called before exit.
func openTracker(log zerolog.Logger) (*core.Tracker, func(), error) {
	cfg, err := config.New()
	if err != nil {
		return nil, nil, err
	}
	windows, err := cfg.Windows()
	if err != nil {
		return nil, nil, err
	}

	path, err := dbPath(cfg)
	if err != nil {
		return nil, nil, err
	}
	st, err := store.Open(path, log)
	if err != nil {
		return nil, nil, err
	}

	tracker := core.New(core.Options{
		State:         st.Load(),
		Store:         st,
		Notifier:      notify.NewDesktop(log),
		Windows:       windows,
		RetentionDays: cfg.RetentionDays,
		Logger:        log,
	})
	return tracker, func() { _ = st.Close() }, nil
}

func dbPath(cfg *config.Config) (string, error) {
	if cfg.DataDir != "" {
		if err := os.MkdirAll(cfg.DataDir, 0o700); err != nil {
			return "", err
		}
		return filepath.Join(cfg.DataDir, "studytrack.db"), nil
	}
	return store.DefaultDBPath()
}

func runTUI() error {
	tracker, closeStore, err := openTracker(newLogger())
	if err != nil {
		return err
	}
	defer closeStore()

	p := tea.NewProgram(app.New(tracker, nil), tea.WithAltScreen(), tea.WithReportFocus())
	_, err = p.Run()
	return err
}

func newReportCmd() *cobra.Command {
	var date string

	cmd := &cobra.Command{
		Use:   "report",
		Short: "Print the activity and prayer report for a day",
		RunE: func(cmd *cobra.Command, _ []string) error {
			tracker, closeStore, err := openTracker(newLogger())
			if err != nil {
				return err
			}
			defer closeStore()

			now := time.Now()
			key := core.DateKey(now)
			if date != "" {
				if _, err := time.ParseInLocation(core.DateLayout, date, time.Local); err != nil {
					return fmt.Errorf("invalid date %q, want YYYY-MM-DD", date)
				}
				key = date
			} else {
				// Bring today's prayer states current before printing.
				// The live session is added by DisplaySeconds below.
				tracker.EvaluatePrayers(now)
			}

			rec := tracker.Record(key)
			out := cmd.OutOrStdout()

			_, _ = fmt.Fprintf(out, "Report for %s\n\n", key)
			_, _ = fmt.Fprintf(out, "%-16s | %-10s | %s\n", "Activity", "Duration", "")
			for _, kind := range core.Activities {
				secs := rec.Activities[kind]
				if key == core.DateKey(now) {
					secs = tracker.DisplaySeconds(kind, now)
				}
				human := ""
				if secs > 0 {
					human = timeutil.Human(secs)
				}
				_, _ = fmt.Fprintf(out, "%-16s | %-10s | %s\n", kind.Label(), timeutil.Clock(secs), human)
			}
			total := rec.TotalSeconds()
			if key == core.DateKey(now) {
				total = tracker.TotalTrackedSeconds(now)
			}
			_, _ = fmt.Fprintf(out, "\nTotal tracked : %s\n\n", timeutil.Human(total))

			done := 0
			for _, p := range core.Prayers {
				state := rec.Prayers[p]
				if state == core.PrayerCompleted {
					done++
				}
				w := tracker.Window(p)
				_, _ = fmt.Fprintf(out, "%-10s %-9s  (%s-%s)\n", p.Label(), state, w.Start, w.End)
			}
			_, _ = fmt.Fprintf(out, "\nPrayers completed : %d/%d\n", done, len(core.Prayers))
			return nil
		},
	}
	cmd.Flags().StringVar(&date, "date", "", "day to report on (YYYY-MM-DD, default today)")
	return cmd
}

func newResetCmd() *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "reset",
		Short: "Reset today's activity and prayer record",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if !yes {
				_, _ = fmt.Fprint(cmd.OutOrStdout(), "Reset today's data? This cannot be undone. [y/N] ")
				line, _ := bufio.NewReader(cmd.InOrStdin()).ReadString('\n')
				if answer := strings.ToLower(strings.TrimSpace(line)); answer != "y" && answer != "yes" {
					_, _ = fmt.Fprintln(cmd.OutOrStdout(), "Aborted.")
					return nil
				}
			}

			tracker, closeStore, err := openTracker(newLogger())
			if err != nil {
				return err
			}
			defer closeStore()

			tracker.ResetToday(time.Now())
			_, _ = fmt.Fprintln(cmd.OutOrStdout(), "Today's data has been reset.")
			return nil
		},
	}
	cmd.Flags().BoolVar(&yes, "yes", false, "skip the confirmation prompt")
	return cmd
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the studytrack version",
		Run: func(cmd *cobra.Command, _ []string) {
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "studytrack %s\n", version)
		},
	}
}
