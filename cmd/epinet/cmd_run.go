package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"github.com/katalvlaran/epinet/config"
	"github.com/katalvlaran/epinet/logging"
	"github.com/katalvlaran/epinet/report"
	"github.com/katalvlaran/epinet/sim"
)

func newRunCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run a simulation",
		Long: `Run a simulation and print the final state counts.

Flags override the configuration file, which overrides the environment
(EPINET_DB, EPINET_SEED, EPINET_DAYS, EPINET_LOG_LEVEL).

Examples:
  epinet run                                   # built-in scenario
  epinet run -c flu.yaml --days 120 --seed 7
  epinet run -c flu.yaml --db runs.db          # persist daily counts`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			applyRunFlags(cmd, cfg)
			if err := cfg.Validate(); err != nil {
				return err
			}
			jsonOut, _ := cmd.Flags().GetBool("json")
			return runSimulation(cmd, cfg, jsonOut)
		},
	}

	cmd.Flags().String("db", "", "SQLite database recording daily counts")
	cmd.Flags().Int("days", 0, "Number of days to simulate")
	cmd.Flags().Int64("seed", 0, "Random seed")
	cmd.Flags().String("log-level", "", "Log level: warn, info, debug, trace")
	cmd.Flags().String("events", "", "JSONL file receiving every health event (debug or trace level only)")

	return cmd
}

// applyRunFlags copies explicitly set flags into cfg.
func applyRunFlags(cmd *cobra.Command, cfg *config.Config) {
	flags := cmd.Flags()
	if flags.Changed("db") {
		cfg.Report.Database, _ = flags.GetString("db")
	}
	if flags.Changed("days") {
		cfg.Run.Days, _ = flags.GetInt("days")
	}
	if flags.Changed("seed") {
		cfg.Run.Seed, _ = flags.GetInt64("seed")
	}
	if flags.Changed("log-level") {
		cfg.Logging.Level, _ = flags.GetString("log-level")
	}
	if flags.Changed("events") {
		cfg.Logging.Events, _ = flags.GetString("events")
	}
}

func runSimulation(cmd *cobra.Command, cfg *config.Config, jsonOut bool) error {
	log := logging.NewLogger(cfg.Logging.Level, cmd.ErrOrStderr())
	opts := []sim.Option{sim.WithLogger(log)}

	var store *report.SQLiteStore
	if cfg.Report.Database != "" {
		var err error
		if store, err = report.OpenSQLite(cfg.Report.Database); err != nil {
			return err
		}
		opts = append(opts, sim.WithRecorder(store))
	}
	events := logging.NewEventLogger(cfg.Logging.Events, cfg.Logging.Level)
	defer events.Close()
	opts = append(opts, sim.WithEventLogger(events))

	s, err := sim.New(cfg, opts...)
	if err != nil {
		if store != nil {
			store.Close()
		}
		return err
	}
	defer s.Close()

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
	defer stop()

	if err := s.Setup(); err != nil {
		return err
	}
	if err := s.Prepare(ctx); err != nil {
		return err
	}
	runErr := s.Run(ctx, cfg.Run.Days)
	if err := s.Finish(ctx); err != nil && runErr == nil {
		runErr = err
	}
	if runErr != nil {
		return fmt.Errorf("run %s stopped on day %d: %w", s.RunID(), s.Day(), runErr)
	}

	last, _ := s.Series().Last()
	return printSummary(cmd.OutOrStdout(), s.RunID(), s.Population().Size(), last, jsonOut)
}

type summary struct {
	Run        string     `json:"run"`
	Population int        `json:"population"`
	Last       report.Day `json:"last"`
}

func printSummary(w io.Writer, runID string, size int, last report.Day, jsonOut bool) error {
	if jsonOut {
		return json.NewEncoder(w).Encode(summary{Run: runID, Population: size, Last: last})
	}

	fmt.Fprintf(w, "run %s: day %d, population %d\n", runID, last.Day, size)
	for _, dd := range last.Diseases {
		fmt.Fprintf(w, "\n%s\n", dd.Disease)
		for i, name := range dd.States {
			fmt.Fprintf(w, "  %-12s %8d\n", name, dd.Counts[i])
		}
		c := dd.Counters
		fmt.Fprintf(w, "  %-12s %8d\n", "incidence", c.CumulativeIncidence)
		fmt.Fprintf(w, "  %-12s %8d\n", "recovered", c.Recovered)
		fmt.Fprintf(w, "  %-12s %8d\n", "fatalities", c.CaseFatalities)
	}
	return nil
}
