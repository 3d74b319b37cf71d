package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/KumKeeHyun/cityagg"
	"github.com/KumKeeHyun/cityagg/config"
	"github.com/KumKeeHyun/cityagg/state"
)

func newRunCmd() *cobra.Command {
	runCmd := &cobra.Command{
		Use:   "run",
		Short: "Run the aggregator until its last tick.",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("interval") {
				cfg.Interval, _ = cmd.Flags().GetDuration("interval")
			}
			if dir, _ := cmd.Flags().GetString("store-dir"); dir != "" {
				cfg.Store.Type = config.StoreBoltDB
				cfg.Store.Dir = dir
			}
			if err := cfg.Validate(); err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			return run(ctx, cmd, cfg)
		},
	}
	runCmd.Flags().Duration("interval", cityagg.DefaultInterval, "time between ticks")
	runCmd.Flags().String("store-dir", "", "record emissions in a BoltDB file under this directory")
	return runCmd
}

func run(ctx context.Context, cmd *cobra.Command, cfg *config.Config) error {
	logger := newLogger(cmd.ErrOrStderr(), cfg)

	store, err := openStore(cfg.Store)
	if err != nil {
		return err
	}
	defer func() {
		if err := store.Close(); err != nil {
			logger.Warn("failed to close store", "err", err)
		}
	}()

	scheduler := cityagg.NewTickerScheduler()
	defer scheduler.Close()

	agg := cityagg.New(
		cityagg.WithSeed(cfg.Seed...),
		cityagg.WithRotation(cfg.Rotation...),
		cityagg.WithAppendices(cfg.Appendices...),
		cityagg.WithCeiling(cfg.Ceiling),
		cityagg.WithScheduler(scheduler),
		cityagg.WithLogger(logger),
		cityagg.WithSinks(
			cityagg.NewLogSink(logger),
			cityagg.NewStoreSink(store, logger),
			cityagg.SinkFunc(func(e cityagg.Emission) {
				fmt.Fprintln(cmd.OutOrStdout(), e)
			}),
		),
	)
	if err := agg.Start(cfg.Interval); err != nil {
		return err
	}

	select {
	case <-agg.Done():
	case <-ctx.Done():
		logger.Info("interrupted")
		agg.Stop()
	}
	return nil
}

func openStore(cfg config.StoreConfig) (state.KeyValueStore[int, cityagg.Emission], error) {
	opts := []state.Option[int, cityagg.Emission]{
		state.WithKeySerde[int, cityagg.Emission](state.IntSerde),
	}
	if cfg.Type == config.StoreBoltDB {
		opts = append(opts,
			state.WithBoltDB[int, cityagg.Emission](cfg.Bucket),
			state.WithDirPath[int, cityagg.Emission](cfg.Dir),
		)
	}

	o, err := state.NewOptions(opts...)
	if err != nil {
		return nil, err
	}
	return state.NewKeyValueStore(o)
}
