package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"sort"
	"strings"
	"syscall"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"
	"gonum.org/v1/gonum/stat"

	"github.com/openfreight/loadplan/app"
	"github.com/openfreight/loadplan/infra/logger"
)

var (
	benchTrials   int
	benchBudgetMS int
)

var benchCmd = &cobra.Command{
	Use:   "bench <dir>",
	Short: "Solve every problem file in a directory and report cost statistics",
	Args:  cobra.ExactArgs(1),
	RunE:  runBench,
}

func init() {
	benchCmd.Flags().IntVar(&benchTrials, "trials", 0, "override the trial budget")
	benchCmd.Flags().IntVar(&benchBudgetMS, "budget-ms", 0, "override the wall-clock budget in milliseconds")
	rootCmd.AddCommand(benchCmd)
}

func runBench(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if cmd.Flags().Changed("trials") {
		cfg.Solver.MaxTrials = benchTrials
	}
	if cmd.Flags().Changed("budget-ms") {
		cfg.Solver.TimeBudgetMS = benchBudgetMS
	}

	files, err := filepath.Glob(filepath.Join(args[0], "*.txt"))
	if err != nil {
		return err
	}
	if len(files) == 0 {
		return fmt.Errorf("no problem files in %s", args[0])
	}
	sort.Strings(files)

	svc, err := app.New(cfg)
	if err != nil {
		return err
	}
	defer func() {
		if err := svc.Close(); err != nil {
			logger.New("main").Errorf("service close: %v", err)
		}
	}()

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 8, 2, ' ', 0)
	fmt.Fprintln(w, "INSTANCE\tLOADS\tROUTES\tCOST\tGAP\tTRIALS\tELAPSED")

	var (
		gaps      []float64
		totalCost float64
		total     time.Duration
	)
	for _, f := range files {
		rep, err := svc.SolveFile(ctx, f)
		if err != nil {
			return fmt.Errorf("solve %s: %w", f, err)
		}
		name := strings.TrimSuffix(filepath.Base(f), filepath.Ext(f))
		fmt.Fprintf(w, "%s\t%d\t%d\t%.1f\t%.1f%%\t%d\t%s\n",
			name, rep.Plan.LoadCount(), len(rep.Plan.Routes), rep.Cost,
			rep.Gap*100, rep.Trials, rep.Elapsed.Round(time.Millisecond))
		gaps = append(gaps, rep.Gap*100)
		totalCost += rep.Cost
		total += rep.Elapsed
		if ctx.Err() != nil {
			break
		}
	}
	if err := w.Flush(); err != nil {
		return err
	}

	stddev := 0.0
	if len(gaps) > 1 {
		stddev = stat.StdDev(gaps, nil)
	}
	_, err = fmt.Fprintf(cmd.OutOrStdout(),
		"\n%d instances, total cost %.1f, mean gap %.1f%% (stddev %.1f), total time %s\n",
		len(gaps), totalCost, stat.Mean(gaps, nil), stddev, total.Round(time.Millisecond))
	return err
}
