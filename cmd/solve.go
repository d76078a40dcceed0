package cmd

import (
	"context"
	"encoding/json"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/openfreight/loadplan/app"
	"github.com/openfreight/loadplan/core/model"
	"github.com/openfreight/loadplan/core/solver"
	"github.com/openfreight/loadplan/infra/logger"
	"github.com/openfreight/loadplan/infra/probfile"
)

var (
	solveSeed     int64
	solveTrials   int
	solveBudgetMS int
	solveJSON     bool
	solveProgress bool
)

var solveCmd = &cobra.Command{
	Use:   "solve <problem-file>",
	Short: "Solve one problem file and print the plan",
	Long: `Solve reads a problem file, searches for a low-cost plan and prints one
bracketed route per line to stdout. Logs go to stderr, so the output can be
piped straight into an evaluator.`,
	Args: cobra.ExactArgs(1),
	RunE: runSolve,
}

func init() {
	solveCmd.Flags().Int64Var(&solveSeed, "seed", 0, "override the perturbation seed")
	solveCmd.Flags().IntVar(&solveTrials, "trials", 0, "override the trial budget")
	solveCmd.Flags().IntVar(&solveBudgetMS, "budget-ms", 0, "override the wall-clock budget in milliseconds")
	solveCmd.Flags().BoolVar(&solveJSON, "json", false, "print the run report with per-stop ETAs as JSON")
	solveCmd.Flags().BoolVar(&solveProgress, "progress", false, "log every best-cost improvement")
	rootCmd.AddCommand(solveCmd)
}

func runSolve(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if cmd.Flags().Changed("seed") {
		cfg.Solver.Seed = solveSeed
	}
	if cmd.Flags().Changed("trials") {
		cfg.Solver.MaxTrials = solveTrials
	}
	if cmd.Flags().Changed("budget-ms") {
		cfg.Solver.TimeBudgetMS = solveBudgetMS
	}

	svc, err := app.New(cfg)
	if err != nil {
		return err
	}
	defer func() {
		if err := svc.Close(); err != nil {
			logger.New("main").Errorf("service close: %v", err)
		}
	}()

	if solveProgress {
		logg := logger.New("progress")
		updates := svc.BestUpdates()
		go func() {
			for ev := range updates {
				logg.Infof("trial %d improved cost to %.2f (%d routes)", ev.Trial, ev.Cost, ev.Routes)
			}
		}()
	}

	rep, err := svc.SolveFile(ctx, args[0])
	if err != nil {
		return err
	}

	if solveJSON {
		// The report holds load IDs only; rebuild the problem to expand
		// per-stop arrival times.
		loads, err := probfile.ParseFile(args[0])
		if err != nil {
			return err
		}
		p, err := model.NewProblemWithCost(loads, cfg.Solver.MaxRouteMinutes, cfg.Solver.DriverCost)
		if err != nil {
			return err
		}
		return writeReportJSON(cmd.OutOrStdout(), rep, p)
	}

	routes := make([][]int, 0, len(rep.Plan.Routes))
	for _, r := range rep.Plan.Routes {
		routes = append(routes, r.LoadIDs)
	}
	return probfile.WritePlan(cmd.OutOrStdout(), routes)
}

func writeReportJSON(w io.Writer, rep *solver.Report, p *model.Problem) error {
	type route struct {
		LoadIDs   []int           `json:"load_ids"`
		Duration  float64         `json:"duration_minutes"`
		Itinerary model.Itinerary `json:"itinerary"`
	}
	out := struct {
		RunID      string  `json:"run_id"`
		Seed       int64   `json:"seed"`
		Cost       float64 `json:"cost"`
		LowerBound float64 `json:"lower_bound"`
		Gap        float64 `json:"gap"`
		Trials     int     `json:"trials"`
		BestTrial  int     `json:"best_trial"`
		ElapsedMS  int64   `json:"elapsed_ms"`
		Routes     []route `json:"routes"`
	}{
		RunID:      rep.RunID,
		Seed:       rep.Seed,
		Cost:       rep.Cost,
		LowerBound: rep.LowerBound,
		Gap:        rep.Gap,
		Trials:     rep.Trials,
		BestTrial:  rep.BestTrial,
		ElapsedMS:  rep.Elapsed.Milliseconds(),
	}
	for _, r := range rep.Plan.Routes {
		it, err := p.Itinerary(r)
		if err != nil {
			return err
		}
		out.Routes = append(out.Routes, route{LoadIDs: r.LoadIDs, Duration: r.Duration, Itinerary: it})
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(&out)
}
