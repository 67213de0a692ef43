package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var (
	randomCount int
	randomMin   int
	randomMax   int
)

var randomCmd = &cobra.Command{
	Use:   "random PATTERN",
	Short: "Print random matches",
	Long: `Print random matches. Without --max, lengths are bounded only for
infinite languages (see infinite_max_length in the config file).`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if randomCount < 0 {
			return fmt.Errorf("invalid count %d", randomCount)
		}
		if randomMax > 0 && randomMax < randomMin {
			return fmt.Errorf("--max %d is below --min %d", randomMax, randomMin)
		}
		g, err := compile(cmd, args[0])
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()
		for range randomCount {
			if randomMax > 0 {
				fmt.Fprintln(out, g.RandomRange(randomMin, randomMax))
			} else {
				fmt.Fprintln(out, g.RandomMin(randomMin))
			}
		}
		return nil
	},
}

func init() {
	randomCmd.Flags().IntVarP(&randomCount, "count", "n", 1, "Number of strings to print")
	randomCmd.Flags().IntVar(&randomMin, "min", 1, "Minimum length in runes")
	randomCmd.Flags().IntVar(&randomMax, "max", 0, "Maximum length in runes (0 = default)")
	rootCmd.AddCommand(randomCmd)
}
