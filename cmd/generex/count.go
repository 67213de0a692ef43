package main

import (
	"errors"
	"fmt"

	"github.com/coregx/generex"
	"github.com/spf13/cobra"
)

var countCmd = &cobra.Command{
	Use:   "count PATTERN",
	Short: "Print the number of strings the pattern matches",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		g, err := compile(cmd, args[0])
		if err != nil {
			return err
		}
		n, err := g.MatchCount()
		switch {
		case errors.Is(err, generex.ErrInfiniteLanguage):
			fmt.Fprintln(cmd.OutOrStdout(), "infinite")
			return nil
		case err != nil:
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), n)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(countCmd)
}
