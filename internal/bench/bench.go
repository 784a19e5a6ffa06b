// Package bench provides benchmarking primitives for the vntok bench command.
package bench

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"
)

// ---------------------------------------------------------------------------
// Run result and stats
// ---------------------------------------------------------------------------

// RunResult holds the timing and output size for a single tokenize pass.
type RunResult struct {
	Index       int
	Cold        bool // true for the first run (cold regexp caches)
	Duration    time.Duration
	Words       int
	WordsPerSec float64
}

// Stats holds aggregate timing statistics across all runs.
type Stats struct {
	Min  time.Duration
	Max  time.Duration
	Mean time.Duration
}

// ComputeStats calculates min, max and mean over a slice of durations.
func ComputeStats(durations []time.Duration) Stats {
	if len(durations) == 0 {
		return Stats{}
	}
	mn, mx := durations[0], durations[0]
	var sum time.Duration
	for _, d := range durations {
		if d < mn {
			mn = d
		}
		if d > mx {
			mx = d
		}
		sum += d
	}
	return Stats{
		Min:  mn,
		Max:  mx,
		Mean: sum / time.Duration(len(durations)),
	}
}

// ---------------------------------------------------------------------------
// Throughput helpers
// ---------------------------------------------------------------------------

// CalcWordsPerSec returns words / elapsed seconds.
// Returns 0 if elapsed is zero to avoid division by zero.
func CalcWordsPerSec(words int, elapsed time.Duration) float64 {
	if elapsed <= 0 {
		return 0
	}
	return float64(words) / elapsed.Seconds()
}

// MeanWordsPerSec averages the per-run throughput. Zero-throughput runs count.
func MeanWordsPerSec(runs []RunResult) float64 {
	if len(runs) == 0 {
		return 0
	}
	var total float64
	for _, r := range runs {
		total += r.WordsPerSec
	}
	return total / float64(len(runs))
}

// CheckMinThroughput returns an error if meanWPS < minimum.
// A minimum of 0 disables the gate.
func CheckMinThroughput(meanWPS, minimum float64) error {
	if minimum <= 0 {
		return nil
	}
	if meanWPS < minimum {
		return fmt.Errorf("mean throughput %.0f words/s below minimum %.0f", meanWPS, minimum)
	}
	return nil
}

// ---------------------------------------------------------------------------
// Output formatters
// ---------------------------------------------------------------------------

// FormatTable writes a human-readable ASCII table of bench results to w.
func FormatTable(runs []RunResult, stats Stats, w io.Writer) {
	sb := &strings.Builder{}

	fmt.Fprintf(sb, "%-5s  %-5s  %10s  %8s  %12s\n", "Run", "Cold", "MS", "Words", "Words/s")
	fmt.Fprintln(sb, strings.Repeat("-", 48))

	for _, r := range runs {
		cold := ""
		if r.Cold {
			cold = "yes"
		}
		fmt.Fprintf(sb, "%-5d  %-5s  %10.3f  %8d  %12.0f\n",
			r.Index+1,
			cold,
			durationMS(r.Duration),
			r.Words,
			r.WordsPerSec,
		)
	}

	fmt.Fprintln(sb, strings.Repeat("-", 48))
	fmt.Fprintf(sb, "%-5s  %-5s  %10.3f  %8s  %12s  (min)\n", "", "", durationMS(stats.Min), "", "")
	fmt.Fprintf(sb, "%-5s  %-5s  %10.3f  %8s  %12.0f  (mean)\n", "", "", durationMS(stats.Mean), "", MeanWordsPerSec(runs))
	fmt.Fprintf(sb, "%-5s  %-5s  %10.3f  %8s  %12s  (max)\n", "", "", durationMS(stats.Max), "", "")

	fmt.Fprint(w, sb.String())
}

// Tokenizing a sentence takes well under a millisecond, so keep fractions.
func durationMS(d time.Duration) float64 {
	return float64(d) / float64(time.Millisecond)
}

// jsonReport is the top-level JSON structure emitted by FormatJSON.
type jsonReport struct {
	Runs  []jsonRun `json:"runs"`
	Stats jsonStats `json:"stats"`
}

type jsonRun struct {
	Index       int     `json:"index"`
	Cold        bool    `json:"cold"`
	DurationMS  float64 `json:"duration_ms"`
	Words       int     `json:"words"`
	WordsPerSec float64 `json:"words_per_sec"`
}

type jsonStats struct {
	MinMS           float64 `json:"min_ms"`
	MeanMS          float64 `json:"mean_ms"`
	MaxMS           float64 `json:"max_ms"`
	MeanWordsPerSec float64 `json:"mean_words_per_sec"`
}

// FormatJSON writes a JSON report of bench results to w.
func FormatJSON(runs []RunResult, stats Stats, w io.Writer) {
	jr := jsonReport{
		Runs: make([]jsonRun, len(runs)),
		Stats: jsonStats{
			MinMS:           durationMS(stats.Min),
			MeanMS:          durationMS(stats.Mean),
			MaxMS:           durationMS(stats.Max),
			MeanWordsPerSec: MeanWordsPerSec(runs),
		},
	}
	for i, r := range runs {
		jr.Runs[i] = jsonRun{
			Index:       r.Index,
			Cold:        r.Cold,
			DurationMS:  durationMS(r.Duration),
			Words:       r.Words,
			WordsPerSec: r.WordsPerSec,
		}
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	_ = enc.Encode(jr)
}
