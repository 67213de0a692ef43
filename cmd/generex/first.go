package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var firstCmd = &cobra.Command{
	Use:   "first PATTERN",
	Short: "Print the lexicographically smallest match",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		g, err := compile(cmd, args[0])
		if err != nil {
			return err
		}
		s, err := g.FirstMatch()
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), s)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(firstCmd)
}
