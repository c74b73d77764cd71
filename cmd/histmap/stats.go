package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/abworrall/xirho-hdr/pkg/flame"
)

var statsCmd = &cobra.Command{
	Use:   "stats <dump>",
	Short: "Describe the hit counts in a histogram dump",
	Args:  cobra.ExactArgs(1),
	RunE:  runStats,
}

func init() {
	rootCmd.AddCommand(statsCmd)
}

func runStats(cmd *cobra.Command, args []string) error {
	v, _, err := loadView(cmd, args[0])
	if err != nil {
		return err
	}

	s, err := flame.Summarize(v)
	if err != nil {
		return err
	}
	fmt.Fprint(cmd.OutOrStdout(), s)
	return nil
}
