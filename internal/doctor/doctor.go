// Package doctor provides environment preflight checks for vntok.
package doctor

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"

	"github.com/example/vntok/internal/lexicon"
	"github.com/example/vntok/internal/text"
	"github.com/example/vntok/internal/tokenizer"
)

// PassMark and FailMark are the prefix symbols printed for each check result.
const (
	PassMark = "✓"
	FailMark = "✗"
)

var (
	green = color.New(color.FgGreen).SprintFunc()
	red   = color.New(color.FgRed).SprintFunc()
)

// Tokenizer is the part of *tokenizer.Tokenizer the checks exercise.
type Tokenizer interface {
	Tokenize(input string) tokenizer.Result
	Stats() tokenizer.Stats
}

// Config holds injectable dependencies for each doctor check.
type Config struct {
	// LexiconPath is the configured lexicon file. Empty means built-in.
	LexiconPath string
	// Build constructs the tokenizer from the active configuration.
	Build func() (Tokenizer, error)
	// SampleText is tokenized as a smoke check. Empty uses text.Sample.
	SampleText string
	// Probe checks a running server. Nil skips the check.
	Probe func() error
	// ProbeAddr is only used in output.
	ProbeAddr string
}

// Result collects the outcome of all checks.
type Result struct {
	failures []string
}

// Failed returns true if any check failed.
func (r *Result) Failed() bool { return len(r.failures) > 0 }

// Failures returns the list of failure messages.
func (r *Result) Failures() []string { return append([]string(nil), r.failures...) }

// AddFailure appends an external failure message to the result.
func (r *Result) AddFailure(msg string) { r.failures = append(r.failures, msg) }

func (r *Result) fail(msg string) { r.failures = append(r.failures, msg) }

// Run executes all configured checks and writes human-readable output to w.
// Each check line is prefixed with PassMark or FailMark.
func Run(cfg Config, w io.Writer) Result {
	var res Result

	// ---- lexicon file -----------------------------------------------------
	if cfg.LexiconPath == "" {
		fmt.Fprintf(w, "%s lexicon: built-in\n", green(PassMark))
	} else if lex, err := lexicon.Load(cfg.LexiconPath); err != nil {
		res.fail(fmt.Sprintf("lexicon file %q: %v", cfg.LexiconPath, err))
		fmt.Fprintf(w, "%s lexicon file %s: %v\n", red(FailMark), cfg.LexiconPath, err)
	} else {
		fmt.Fprintf(w, "%s lexicon file: %s (%d abbreviations, %d exceptions, %d entity patterns)\n",
			green(PassMark), cfg.LexiconPath, len(lex.Abbreviations), len(lex.Exceptions), len(lex.Entities))
	}

	// ---- tokenizer --------------------------------------------------------
	if cfg.Build == nil {
		res.fail("tokenizer: no builder configured")
		fmt.Fprintf(w, "%s tokenizer: no builder configured\n", red(FailMark))
		return res
	}

	tok, err := cfg.Build()
	if err != nil {
		res.fail(fmt.Sprintf("tokenizer: %v", err))
		fmt.Fprintf(w, "%s tokenizer: %v\n", red(FailMark), err)
		return res
	}

	stats := tok.Stats()
	fmt.Fprintf(w, "%s tokenizer: %d abbreviations, %d exceptions, %d entity patterns (%s)\n",
		green(PassMark), stats.Abbreviations, stats.Exceptions, len(stats.Entities), stats.UnicodeForm)

	// ---- sample text ------------------------------------------------------
	sample := cfg.SampleText
	if sample == "" {
		sample = text.Sample
	}
	if err := checkSample(tok, sample, text.Form(stats.UnicodeForm)); err != nil {
		res.fail(fmt.Sprintf("sample text: %v", err))
		fmt.Fprintf(w, "%s sample text: %v\n", red(FailMark), err)
	} else {
		out := tok.Tokenize(sample)
		fmt.Fprintf(w, "%s sample text: %d tokens, %d sentences\n",
			green(PassMark), len(out.Tokens), len(out.Sentences))
	}

	// ---- running server ---------------------------------------------------
	if cfg.Probe == nil {
		fmt.Fprintf(w, "%s server: skipped\n", green(PassMark))
	} else if err := cfg.Probe(); err != nil {
		res.fail(fmt.Sprintf("server %s: %v", cfg.ProbeAddr, err))
		fmt.Fprintf(w, "%s server %s: %v\n", red(FailMark), cfg.ProbeAddr, err)
	} else {
		fmt.Fprintf(w, "%s server: %s\n", green(PassMark), cfg.ProbeAddr)
	}

	return res
}

// checkSample verifies that tokenizing sample loses and invents no
// characters and that reattachment leaves no standalone comma or period.
func checkSample(tok Tokenizer, sample string, form text.Form) error {
	res := tok.Tokenize(sample)
	if len(res.Tokens) == 0 {
		return fmt.Errorf("no tokens produced")
	}

	normalized, err := text.Normalize(sample, form)
	if err != nil {
		return fmt.Errorf("normalize: %w", err)
	}

	want := strings.Join(text.Fields(normalized), "")
	if got := strings.Join(res.Words, ""); got != want {
		return fmt.Errorf("words do not reconstruct the input: got %q, want %q", got, want)
	}

	for i, t := range res.Tokens {
		if i > 0 && (t == "," || t == ".") {
			return fmt.Errorf("token %d is a standalone %q after reattachment", i, t)
		}
	}

	return nil
}
