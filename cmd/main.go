package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/algorand/go-deadlock"
	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"floodnet/internal/configuration"
	"floodnet/internal/journal"
	"floodnet/internal/logging"
	"floodnet/internal/scenario"
)

var (
	configDir   string
	profile     string
	journalDir  string
	metricsAddr string
	useDefault  bool
	summary     bool
	replayRun   string
)

func init() {
	runCmd.Flags().StringVarP(&configDir, "config-dir", "c", "internal/static", "Directory holding application.yml and its profiles")
	runCmd.Flags().StringVarP(&profile, "profile", "p", "", "Profile overlay to apply (overrides app.profile)")
	runCmd.Flags().StringVar(&journalDir, "journal", "", "Persist node logs of this run to the given directory")
	runCmd.Flags().StringVar(&metricsAddr, "metrics-addr", "", "Serve Prometheus metrics on this address while running")
	runCmd.Flags().BoolVar(&useDefault, "default", false, "Ignore configured topology and steps and run the built-in three node walkthrough")
	runCmd.Flags().BoolVar(&summary, "summary", true, "Print a per-node state summary after the logs")

	replayCmd.Flags().StringVar(&journalDir, "journal", "", "Journal directory to read")
	replayCmd.Flags().StringVar(&replayRun, "run", "", "Only print this run id")
	replayCmd.MarkFlagRequired("journal")

	rootCmd.AddCommand(runCmd, replayCmd)
}

var rootCmd = &cobra.Command{
	Use:   "floodnet",
	Short: "Simulate two-phase state flooding between in-process nodes",
	Long:  "floodnet builds a small network of nodes, floods propose/accept messages between them, injects partitions, and prints each node's event log.",
	Run: func(cmd *cobra.Command, args []string) {
		cmd.HelpFunc()(cmd, args)
	},
}

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run a scenario and print every node's log",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cancel := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer cancel()
		return run(ctx)
	},
}

var replayCmd = &cobra.Command{
	Use:   "replay",
	Short: "Print node logs persisted by earlier runs",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return replay()
	},
}

func run(ctx context.Context) error {
	cfg, provider, err := configuration.LoadConfig(configDir, profile)
	if err != nil {
		slog.Error("Failed to load configuration", "Error", err)
		return err
	}

	if journalDir != "" {
		cfg.Journal.Enabled = true
		cfg.Journal.Dir = journalDir
	}
	if metricsAddr != "" {
		cfg.Metrics.Enabled = true
		cfg.Metrics.Address = metricsAddr
	}

	logging.Init(cfg.Application.LogLevel)
	deadlock.Opts.Disable = !cfg.Application.DeadlockDetection
	slog.Info("Starting simulation", "profile", cfg.Application.Profile, "deadlock_detection", !deadlock.Opts.Disable)

	services, err := NewServices(provider, useDefault)
	if err != nil {
		slog.Error("Failed to build services", "Error", err)
		return err
	}
	defer services.Close()

	if services.Metrics != nil {
		if err := services.Metrics.Start(); err != nil {
			return err
		}
	}

	if err := services.Runner.Run(ctx, services.Steps); err != nil {
		slog.Error("Scenario failed", "Error", err)
		return err
	}

	if err := scenario.Print(os.Stdout, services.Registry); err != nil {
		return err
	}
	if summary {
		fmt.Println()
		if err := scenario.PrintSummary(os.Stdout, services.Registry); err != nil {
			return err
		}
	}

	if services.Journal != nil {
		runID := uuid.NewString()
		if err := services.Journal.Append(runID, services.Registry.Entries()); err != nil {
			slog.Error("Failed to journal run", "Error", err)
			return err
		}
		slog.Info("Run journaled", "run", runID, "dir", cfg.Journal.Dir)
	}

	slog.Info("Simulation finished")
	return nil
}

func replay() error {
	j, err := journal.Open(journalDir, true)
	if err != nil {
		return err
	}
	defer j.Close()

	var records []journal.Record
	if replayRun != "" {
		records, err = j.ReadRun(replayRun)
	} else {
		records, err = j.ReadAll()
	}
	if err != nil {
		return err
	}

	last := ""
	for _, r := range records {
		if r.Run != last {
			if last != "" {
				fmt.Println()
			}
			fmt.Printf("Run %s:\n", r.Run)
			last = r.Run
		}
		fmt.Printf("%6d  node %-4d %s\n", r.Seq, r.Node, r.Text)
	}
	return nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
