package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
)

var atCmd = &cobra.Command{
	Use:   "at PATTERN RANK...",
	Short: "Print the matches of the given 1-based ranks in lexicographic order",
	Args:  cobra.MinimumNArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		ranks := make([]uint64, 0, len(args)-1)
		for _, a := range args[1:] {
			r, err := strconv.ParseUint(a, 10, 64)
			if err != nil {
				return fmt.Errorf("invalid rank %q: %w", a, err)
			}
			ranks = append(ranks, r)
		}

		g, err := compile(cmd, args[0])
		if err != nil {
			return err
		}
		for _, r := range ranks {
			s, err := g.MatchAt(r)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), s)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(atCmd)
}
