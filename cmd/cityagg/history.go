package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/KumKeeHyun/cityagg"
	"github.com/KumKeeHyun/cityagg/config"
)

func newHistoryCmd() *cobra.Command {
	historyCmd := &cobra.Command{
		Use:   "history",
		Short: "Print emissions recorded by a previous run.",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			if dir, _ := cmd.Flags().GetString("store-dir"); dir != "" {
				cfg.Store.Type = config.StoreBoltDB
				cfg.Store.Dir = dir
			}
			if cfg.Store.Type != config.StoreBoltDB {
				return errors.New("history needs a boltdb store, set --store-dir")
			}

			store, err := openStore(cfg.Store)
			if err != nil {
				return err
			}
			defer store.Close()

			return store.Range(func(tick int, e cityagg.Emission) bool {
				fmt.Fprintf(cmd.OutOrStdout(), "%d %s\n", tick, e)
				return true
			})
		},
	}
	historyCmd.Flags().String("store-dir", "", "directory holding the BoltDB file")
	return historyCmd
}
