package main

import (
	"fmt"

	"github.com/coregx/generex"
	"github.com/spf13/cobra"
)

var validateCmd = &cobra.Command{
	Use:   "validate PATTERN...",
	Short: "Check that patterns can be compiled for generation",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		config, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		invalid := 0
		for _, p := range args {
			if _, err := generex.CompileWithConfig(p, config); err != nil {
				fmt.Fprintf(cmd.OutOrStdout(), "invalid\t%s\t%v\n", p, err)
				invalid++
				continue
			}
			fmt.Fprintf(cmd.OutOrStdout(), "ok\t%s\n", p)
		}
		if invalid > 0 {
			return fmt.Errorf("%d of %d patterns are invalid", invalid, len(args))
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(validateCmd)
}
