// Command report builds the game-day weather report once and prints it.
//
// Usage:
//
//	go run ./cmd/report -date 2024-07-04
//	go run ./cmd/report -format json
//
// Configuration is read from the same environment variables as the server;
// Kafka publication is never performed. The exit status is 1 when the
// schedule cannot be fetched.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"text/tabwriter"
	"time"

	"github.com/couchcryptid/gameday-weather-service/internal/app"
	"github.com/couchcryptid/gameday-weather-service/internal/config"
	"github.com/couchcryptid/gameday-weather-service/internal/domain"
	"github.com/couchcryptid/gameday-weather-service/internal/observability"
)

func main() {
	date := flag.String("date", "", "report date YYYY-MM-DD in the reporting zone (default today)")
	format := flag.String("format", "table", "output format: table or json")
	flag.Parse()

	if *format != "table" && *format != "json" {
		fmt.Fprintf(os.Stderr, "unknown -format %q\n", *format)
		os.Exit(2)
	}

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}
	cfg.KafkaEnabled = false

	os.Exit(run(cfg, *date, *format))
}

func run(cfg *config.Config, date, format string) int {
	logger := observability.NewLogger(cfg)
	a := app.New(cfg, logger, observability.NewMetrics())
	defer a.Close()

	day := a.Runner.Today()
	if date != "" {
		d, err := time.ParseInLocation(time.DateOnly, date, cfg.ReportLocation)
		if err != nil {
			fmt.Fprintf(os.Stderr, "invalid -date %q: %v\n", date, err)
			return 2
		}
		day = d
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	report, err := a.Runner.Run(ctx, day)
	if err != nil {
		fmt.Fprintf(os.Stderr, "report for %s failed: %v\n", day.Format(time.DateOnly), err)
		return 1
	}

	if format == "json" {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(report); err != nil {
			fmt.Fprintf(os.Stderr, "encode report: %v\n", err)
			return 1
		}
		return 0
	}

	if err := printReport(os.Stdout, report); err != nil {
		fmt.Fprintf(os.Stderr, "print report: %v\n", err)
		return 1
	}
	return 0
}

func printReport(w io.Writer, report domain.Report) error {
	fmt.Fprintf(w, "=== Game-day weather for %s ===\n\n", report.Date)

	if len(report.Records) == 0 && len(report.Diagnostics) == 0 {
		fmt.Fprintln(w, "No games scheduled.")
		return nil
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "MATCHUP\tVENUE\tLOCATION\tLOCAL TIME\tTEMP\tPRECIP\tWIND\tLINK")
	for _, r := range report.Records {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\t%s\t%s\n",
			r.Matchup,
			r.Venue,
			orNA(r.Location),
			orNA(r.LocalTime),
			measure(r.Temperature, "%.1f", r.TemperatureUnit),
			measure(r.Precipitation, "%.0f", r.PrecipitationUnit),
			measure(r.Wind, "%.1f", r.WindUnit),
			r.Link,
		)
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	if len(report.Diagnostics) > 0 {
		fmt.Fprintf(w, "\n--- Diagnostics (%d) ---\n", len(report.Diagnostics))
		for i, d := range report.Diagnostics {
			outcome := "degraded"
			if d.Skipped {
				outcome = "skipped"
			}
			fmt.Fprintf(w, "  [%d] %s at %s: %s (%s, %s)", i+1, d.Matchup, d.Venue, d.Message, d.Stage, outcome)
			if d.Cause != "" {
				fmt.Fprintf(w, ": %s", d.Cause)
			}
			fmt.Fprintln(w)
		}
	}
	return nil
}

func orNA(s *string) string {
	if s == nil {
		return "n/a"
	}
	return *s
}

func measure(v *float64, verb, unit string) string {
	if v == nil {
		return "n/a"
	}
	if unit == "%" {
		return fmt.Sprintf(verb, *v) + unit
	}
	return fmt.Sprintf(verb, *v) + " " + unit
}
