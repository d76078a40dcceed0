package cmd

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	plansapi "github.com/openfreight/loadplan/api/plans"
	"github.com/openfreight/loadplan/app"
	"github.com/openfreight/loadplan/infra/logger"
)

var (
	serveAddr  string
	serveToken string
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Expose plan history and KPIs over HTTP",
	Long: `Serve runs the service without solving anything: the plan log and KPI
stores accumulated by previous runs are exposed over HTTP, alongside the
Prometheus endpoint when metrics are enabled.`,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().StringVar(&serveAddr, "addr", ":8080", "HTTP listen address")
	serveCmd.Flags().StringVar(&serveToken, "token", "", "bearer token required on the plan log API")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	svc, err := app.New(cfg)
	if err != nil {
		return err
	}
	logg := logger.New("serve")
	defer func() {
		if err := svc.Close(); err != nil {
			logg.Errorf("service close: %v", err)
		}
	}()

	mux := http.NewServeMux()
	mux.Handle("/api/plans/logs", plansapi.NewLogHandler(svc.PlanStore(), serveToken))
	mux.Handle("/api/plans/", plansapi.NewKPIHandler(svc.KPIStore()))
	srv := &http.Server{Addr: serveAddr, Handler: mux}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			logg.Errorf("api server shutdown: %v", err)
		}
	}()
	go func() {
		if err := svc.Run(ctx); err != nil {
			logg.Errorf("service run: %v", err)
		}
	}()

	logg.Infof("serving plan API on %s", serveAddr)
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}
