package main

import (
	"context"
	"fmt"
	"errors"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"

	"github.com/samuelfneumann/gotd/experiment"
	"github.com/samuelfneumann/gotd/experiment/tracker"
	"github.com/samuelfneumann/gotd/experiment/trackers"

	// Register controller configurations
	_ "github.com/samuelfneumann/gotd/agent/esarsa"
	_ "github.com/samuelfneumann/gotd/agent/greedygq"
	_ "github.com/samuelfneumann/gotd/agent/lstdq"
	_ "github.com/samuelfneumann/gotd/agent/qlambda"
	_ "github.com/samuelfneumann/gotd/agent/qlearning"
	_ "github.com/samuelfneumann/gotd/agent/qsigma"
	_ "github.com/samuelfneumann/gotd/agent/sarsa"
)

var (
	index       int
	seed        uint64
	outDir      string
	metricsAddr string
	verbose     bool

	rootCmd = &cobra.Command{
		Use:   "gotd",
		Short: "Run temporal difference learning experiments",
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			level := slog.LevelInfo
			if verbose {
				level = slog.LevelDebug
			}
			slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr,
				&slog.HandlerOptions{Level: level})))
		},
	}

	runCmd = &cobra.Command{
		Use:   "run [config]",
		Short: "Run the experiment for one controller configuration",
		Args:  cobra.ExactArgs(1),
		RunE:  run,
	}

	listCmd = &cobra.Command{
		Use:   "list [config]",
		Short: "List the controller configurations of an experiment",
		Args:  cobra.ExactArgs(1),
		RunE:  list,
	}
)

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false,
		"log at debug level")

	runCmd.Flags().IntVarP(&index, "index", "i", 0,
		"index of the controller configuration to run")
	runCmd.Flags().Uint64VarP(&seed, "seed", "s", 0, "random seed")
	runCmd.Flags().StringVarP(&outDir, "out", "o", ".",
		"directory to save episode returns and lengths in")
	runCmd.Flags().StringVar(&metricsAddr, "metrics", "",
		"address to serve Prometheus metrics on, e.g. :2112")

	rootCmd.AddCommand(runCmd, listCmd)
}

func run(cmd *cobra.Command, args []string) error {
	config, err := experiment.LoadConfig(args[0])
	if err != nil {
		return err
	}

	ret := trackers.NewReturn(filepath.Join(outDir,
		fmt.Sprintf("return_%d_%d.bin", index, seed)))
	lengths := trackers.NewEpisodeLength(filepath.Join(outDir,
		fmt.Sprintf("length_%d_%d.bin", index, seed)))

	exp, err := config.CreateExp(index, seed,
		[]tracker.Tracker{ret, lengths}, nil)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
	defer stop()

	if metricsAddr != "" {
		reg := prometheus.NewRegistry()
		exp.Register(trackers.NewMetrics(reg, exp.ID()))

		ln, err := net.Listen("tcp", metricsAddr)
		if err != nil {
			return fmt.Errorf("run: %v", err)
		}

		serveCtx, stopServing := context.WithCancel(ctx)
		done := make(chan struct{})
		go func() {
			defer close(done)
			if err := serveMetrics(serveCtx, ln, reg); err != nil {
				slog.Error("metrics server stopped", "error", err)
			}
		}()
		defer func() {
			stopServing()
			<-done
		}()
	}

	slog.Info("starting experiment", "run", exp.ID(), "config", args[0],
		"index", index, "seed", seed)
	if err := exp.Run(ctx); err != nil && err != context.Canceled {
		return err
	}
	return exp.Save()
}

// serveMetrics serves the metrics of reg at /metrics on ln until ctx is
// done, then shuts the server down and releases ln
func serveMetrics(ctx context.Context, ln net.Listener,
	reg prometheus.Gatherer) error {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))
	server := &http.Server{Handler: mux}

	errs := make(chan error, 1)
	go func() { errs <- server.Serve(ln) }()

	select {
	case err := <-errs:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(),
		5*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errs; !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func list(cmd *cobra.Command, args []string) error {
	config, err := experiment.LoadConfig(args[0])
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "%v: %d configurations\n", config.AgentConf.Type,
		config.AgentConf.Len())
	for i := 0; i < config.AgentConf.Len(); i++ {
		fmt.Fprintf(out, "%d\t%+v\n", i, config.AgentConf.At(i))
	}
	return nil
}
