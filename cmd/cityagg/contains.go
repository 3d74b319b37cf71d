package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/KumKeeHyun/cityagg"
)

func newContainsCmd() *cobra.Command {
	containsCmd := &cobra.Command{
		Use:   "contains",
		Short: "Append a city to the seed list and check whether a city is in it.",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("append") {
				cfg.Contains.Append, _ = cmd.Flags().GetString("append")
			}
			if cmd.Flags().Changed("query") {
				cfg.Contains.Query, _ = cmd.Flags().GetString("query")
			}

			found := cityagg.AppendAndContains(cfg.Seed, cfg.Contains.Append, cfg.Contains.Query)
			fmt.Fprintln(cmd.OutOrStdout(), found)
			return nil
		},
	}
	containsCmd.Flags().String("append", cityagg.DefaultExtraCity, "city appended to the seed list")
	containsCmd.Flags().String("query", cityagg.DefaultExtraCity, "city to look for, matched exactly")
	return containsCmd
}
