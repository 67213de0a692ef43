package main

import (
	"fmt"

	"github.com/coregx/generex/enumerate"
	"github.com/spf13/cobra"
)

var (
	listLimit     int
	listMaxLength int
)

var listCmd = &cobra.Command{
	Use:   "list PATTERN",
	Short: "Print matches in lexicographic order",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		g, err := compile(cmd, args[0])
		if err != nil {
			return err
		}
		if g.IsInfinite() && listLimit <= 0 && listMaxLength < 0 {
			return fmt.Errorf("pattern %q matches infinitely many strings; set --limit or --max-length", args[0])
		}

		var opts []enumerate.Option
		if listMaxLength >= 0 {
			opts = append(opts, enumerate.WithMaxLength(listMaxLength))
		}
		it := g.Iterator(opts...)
		out := cmd.OutOrStdout()
		printed := 0
		for s := range it.Seq() {
			if listLimit > 0 && printed == listLimit {
				break
			}
			fmt.Fprintln(out, s)
			printed++
		}
		return nil
	},
}

func init() {
	listCmd.Flags().IntVar(&listLimit, "limit", 100, "Maximum number of matches (0 = all)")
	listCmd.Flags().IntVar(&listMaxLength, "max-length", -1, "Skip matches longer than this many runes (-1 = enumerate_max_length for infinite patterns)")
	rootCmd.AddCommand(listCmd)
}
