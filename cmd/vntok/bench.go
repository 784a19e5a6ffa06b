package main

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/example/vntok/internal/bench"
	"github.com/example/vntok/internal/text"
	"github.com/example/vntok/internal/tokenizer"
)

func newBenchCmd() *cobra.Command {
	var (
		input         string
		runs          int
		repeat        int
		format        string
		minThroughput float64
	)

	cmd := &cobra.Command{
		Use:   "bench",
		Short: "Benchmark tokenize latency and throughput",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := requireConfig()
			if err != nil {
				return err
			}

			if strings.TrimSpace(input) == "" {
				return fmt.Errorf("--text must not be empty")
			}
			if runs < 1 {
				return fmt.Errorf("--runs must be at least 1")
			}
			if repeat < 1 {
				return fmt.Errorf("--repeat must be at least 1")
			}
			if format != "table" && format != "json" {
				return fmt.Errorf("--format must be 'table' or 'json'")
			}

			tok, err := buildTokenizer(cfg)
			if err != nil {
				return err
			}

			results, err := runBench(cmd.Context(), tok, benchOptions{
				Text: strings.TrimSpace(strings.Repeat(input+" ", repeat)),
				Runs: runs,
			})
			if err != nil {
				return err
			}

			durations := make([]time.Duration, len(results))
			for i, r := range results {
				durations[i] = r.Duration
			}
			stats := bench.ComputeStats(durations)

			switch format {
			case "json":
				bench.FormatJSON(results, stats, cmd.OutOrStdout())
			default:
				bench.FormatTable(results, stats, cmd.OutOrStdout())
			}

			return bench.CheckMinThroughput(bench.MeanWordsPerSec(results), minThroughput)
		},
	}

	cmd.Flags().StringVar(&input, "text", text.Sample, "Text to tokenize on each run")
	cmd.Flags().IntVar(&runs, "runs", 5, "Number of tokenize runs")
	cmd.Flags().IntVar(&repeat, "repeat", 1, "Repeat --text this many times per run")
	cmd.Flags().StringVar(&format, "format", "table", "Output format: table|json")
	cmd.Flags().Float64Var(&minThroughput, "min-words-per-sec", 0, "Exit non-zero if mean throughput is below this value (0 = disabled)")

	return cmd
}

type benchOptions struct {
	Text string
	Runs int
}

func runBench(ctx context.Context, tok *tokenizer.Tokenizer, opts benchOptions) ([]bench.RunResult, error) {
	results := make([]bench.RunResult, 0, opts.Runs)

	for i := range opts.Runs {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("run %d: %w", i+1, err)
		}

		start := time.Now()
		res := tok.Tokenize(opts.Text)
		dur := time.Since(start)

		results = append(results, bench.RunResult{
			Index:       i,
			Cold:        i == 0,
			Duration:    dur,
			Words:       len(res.Words),
			WordsPerSec: bench.CalcWordsPerSec(len(res.Words), dur),
		})
	}

	return results, nil
}
