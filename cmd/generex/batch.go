package main

import (
	"bufio"
	"errors"
	"fmt"
	"strings"

	"github.com/coregx/generex"
	"github.com/spf13/cobra"
)

var (
	batchCacheSize int
	batchSamples   int
)

var batchCmd = &cobra.Command{
	Use:   "batch",
	Short: "Read patterns from stdin, one per line, and describe each",
	Long: `Read patterns from stdin, one per line. For each pattern print a
tab-separated line: the pattern, its match count (or "infinite") and
--samples random matches. Repeated patterns are served from an LRU cache.
Blank lines and lines starting with '#' are skipped.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		config, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		cache, err := generex.NewCache(batchCacheSize, config)
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		failed := 0
		scanner := bufio.NewScanner(cmd.InOrStdin())
		for scanner.Scan() {
			pattern := scanner.Text()
			if strings.TrimSpace(pattern) == "" || strings.HasPrefix(pattern, "#") {
				continue
			}
			g, err := cache.Get(pattern)
			if err != nil {
				config.Logger.Warn("skipping pattern", "pattern", pattern, "error", err)
				fmt.Fprintf(out, "%s\terror\t%v\n", pattern, err)
				failed++
				continue
			}
			fmt.Fprintf(out, "%s\t%s", pattern, describeCount(g))
			for range batchSamples {
				fmt.Fprintf(out, "\t%s", g.Random())
			}
			fmt.Fprintln(out)
		}
		if err := scanner.Err(); err != nil {
			return fmt.Errorf("failed to read patterns: %w", err)
		}
		if failed > 0 {
			return fmt.Errorf("%d patterns failed", failed)
		}
		return nil
	},
}

func describeCount(g *generex.Generex) string {
	n, err := g.MatchCount()
	switch {
	case errors.Is(err, generex.ErrInfiniteLanguage):
		return "infinite"
	case err != nil:
		return "uncountable"
	}
	return fmt.Sprint(n)
}

func init() {
	batchCmd.Flags().IntVar(&batchCacheSize, "cache-size", 128, "Number of compiled patterns to keep")
	batchCmd.Flags().IntVar(&batchSamples, "samples", 1, "Random matches per pattern")
	rootCmd.AddCommand(batchCmd)
}
