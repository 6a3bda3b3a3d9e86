package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"text/tabwriter"
	"time"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"CryptoSentinel/internal/display"
	"CryptoSentinel/internal/recorder"
	"CryptoSentinel/internal/scheduler"
)

func newRootCmd() *cobra.Command {
	opts := &options{}

	rootCmd := &cobra.Command{
		Use:   "sentinel",
		Short: "CryptoSentinel - technical analysis for a crypto portfolio",
		Long: `CryptoSentinel computes technical indicators for every holding of a crypto portfolio
and turns them into prioritized buy/hold/sell recommendations with price targets.`,
		SilenceUsage: true,
	}

	rootCmd.PersistentFlags().StringVar(&opts.configPath, "config", "", "configuration file path (default configs/config.yaml)")
	rootCmd.PersistentFlags().BoolVar(&opts.mock, "mock", false, "use generated price data instead of live providers")
	rootCmd.PersistentFlags().StringVar(&opts.logLevel, "log-level", "", "log level override")

	rootCmd.AddCommand(newAnalyzeCmd(opts))
	rootCmd.AddCommand(newManualCmd(opts))
	rootCmd.AddCommand(newWatchCmd(opts))
	rootCmd.AddCommand(newHistoryCmd(opts))
	return rootCmd
}

func newAnalyzeCmd(opts *options) *cobra.Command {
	var notify bool
	cmd := &cobra.Command{
		Use:   "analyze",
		Short: "Analyze the holdings of the configured portfolio provider",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(opts, "")
			if err != nil {
				return err
			}
			ctx, cancel := signalContext()
			defer cancel()

			a := newApp(ctx, cfg, notify)
			defer a.Close()

			res, err := a.runner.RunOnce(ctx, buildSource(cfg, ""))
			if err != nil {
				return err
			}
			if len(res.Recommendations) == 0 {
				fmt.Println("Could not fetch price data for any holdings.")
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&notify, "notify", false, "also send the report to Telegram")
	return cmd
}

func newManualCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "manual [SYMBOLS...]",
		Short: "Analyze a list of symbols without a portfolio provider",
		Long: `Analyze the given symbols, separated by commas or spaces.
Example: sentinel manual BTC,ETH,SOL
Without arguments the symbols are asked for interactively.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			raw := strings.Join(args, ",")
			if strings.TrimSpace(raw) == "" {
				var err error
				if raw, err = promptSymbols(); err != nil {
					return err
				}
			}

			cfg, err := loadConfig(opts, "manual")
			if err != nil {
				return err
			}
			ctx, cancel := signalContext()
			defer cancel()

			a := newApp(ctx, cfg, false)
			defer a.Close()

			source := buildSource(cfg, raw)
			res, err := a.runner.RunOnce(ctx, source)
			if err != nil {
				return err
			}
			if len(res.Recommendations) == 0 {
				fmt.Println("Could not fetch price data for any symbols. Please check your symbols and try again.")
			}
			return nil
		},
	}
}

func newWatchCmd(opts *options) *cobra.Command {
	var runNow bool
	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Run the analysis on a schedule and answer Telegram commands",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(opts, "")
			if err != nil {
				return err
			}
			ctx, cancel := signalContext()
			defer cancel()

			a := newApp(ctx, cfg, true)
			defer a.Close()

			sched := scheduler.NewScheduler(ctx, a.runner, buildSource(cfg, ""))
			if err := sched.Register(cfg.Schedule.WatchCron); err != nil {
				return err
			}
			sched.Start()
			defer sched.Stop()

			if a.notifier != nil {
				go a.notifier.StartPolling(ctx, sched.HandleCommand)
				log.Info("telegram polling started")
			} else {
				log.Warn("telegram not configured, reports go to the console only")
			}

			if runNow {
				go func() {
					if _, err := sched.RunNow(); err != nil {
						log.Errorf("initial run: %v", err)
					}
				}()
			}

			log.Infof("CryptoSentinel is watching (%s). Press Ctrl+C to stop.", cfg.Schedule.WatchCron)
			<-ctx.Done()
			log.Info("shutdown signal received, stopping...")
			return nil
		},
	}
	cmd.Flags().BoolVar(&runNow, "run-now", false, "run one analysis immediately on start")
	return cmd
}

func newHistoryCmd(opts *options) *cobra.Command {
	var limit int
	cmd := &cobra.Command{
		Use:   "history SYMBOL",
		Short: "Show recorded recommendations for a symbol",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(opts, "manual")
			if err != nil {
				return err
			}
			if cfg.Database.Driver == "none" {
				return fmt.Errorf("history needs a database, database.driver is none")
			}
			rec, err := recorder.NewSQLRecorder(cfg.Database.Driver, cfg.Database.DSN)
			if err != nil {
				return err
			}
			defer rec.Close()

			rows, err := rec.History(strings.ToUpper(args[0]), limit)
			if err != nil {
				return err
			}
			w := tabwriter.NewWriter(os.Stdout, 0, 2, 2, ' ', 0)
			fmt.Fprintln(w, "DATE\tSIGNAL\tSCORE\tCONFIDENCE\tPRICE\tSTOP LOSS")
			for _, r := range rows {
				stop := "-"
				if r.StopLoss.Valid {
					stop = display.Money(r.StopLoss.Float64)
				}
				fmt.Fprintf(w, "%s\t%s\t%+d\t%s\t%s\t%s\n",
					time.Unix(r.CreatedAt, 0).Format("2006-01-02 15:04"), r.Signal, r.Score, r.Confidence,
					display.Money(r.CurrentPrice), stop)
			}
			return w.Flush()
		},
	}
	cmd.Flags().IntVar(&limit, "limit", 20, "maximum rows")
	return cmd
}

// signalContext is cancelled on SIGINT or SIGTERM.
func signalContext() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
}
