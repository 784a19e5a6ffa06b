package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/example/vntok/internal/tokenizer"
)

const (
	formatText      = "text"
	formatWords     = "words"
	formatSentences = "sentences"
	formatJSON      = "json"
)

func parseFormat(raw string) (string, error) {
	format := strings.ToLower(strings.TrimSpace(raw))
	switch format {
	case "":
		return formatText, nil
	case formatText, formatWords, formatSentences, formatJSON:
		return format, nil
	default:
		return "", fmt.Errorf("invalid format %q (expected %s|%s|%s|%s)",
			raw, formatText, formatWords, formatSentences, formatJSON)
	}
}

// source is one tokenize input: --text, stdin or a file argument.
type source struct {
	name string
	read func() ([]byte, error)
}

func newTokenizeCmd() *cobra.Command {
	var (
		text   string
		format string
		jobs   int
	)

	cmd := &cobra.Command{
		Use:   "tokenize [file...]",
		Short: "Tokenize text from --text, files or stdin",
		Long: "Tokenize text into words and sentences. Input comes from --text, from the " +
			"given files ('-' reads stdin), or from stdin when neither is given.",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := requireConfig()
			if err != nil {
				return err
			}

			format, err = parseFormat(format)
			if err != nil {
				return err
			}

			tok, err := buildTokenizer(cfg)
			if err != nil {
				return err
			}

			sources, err := collectSources(text, args, cmd.InOrStdin())
			if err != nil {
				return err
			}

			results, err := tokenizeSources(cmd.Context(), tok, sources, jobs)
			if err != nil {
				return err
			}

			return writeResults(cmd.OutOrStdout(), format, sources, results)
		},
	}

	cmd.Flags().StringVar(&text, "text", "", "Text to tokenize (if empty, read files or stdin)")
	cmd.Flags().StringVar(&format, "format", formatText, "Output format (text|words|sentences|json)")
	cmd.Flags().IntVar(&jobs, "jobs", 4, "Max files tokenized in parallel")

	return cmd
}

func collectSources(text string, args []string, stdin io.Reader) ([]source, error) {
	if text != "" {
		if len(args) > 0 {
			return nil, fmt.Errorf("--text cannot be combined with file arguments")
		}
		return []source{{name: "text", read: func() ([]byte, error) { return []byte(text), nil }}}, nil
	}

	if len(args) == 0 {
		args = []string{"-"}
	}

	sources := make([]source, 0, len(args))
	stdinUsed := false
	for _, arg := range args {
		if arg == "-" {
			if stdinUsed {
				return nil, fmt.Errorf("stdin ('-') given more than once")
			}
			stdinUsed = true
			sources = append(sources, source{name: "stdin", read: func() ([]byte, error) {
				b, err := io.ReadAll(stdin)
				if err != nil {
					return nil, fmt.Errorf("read stdin: %w", err)
				}
				return b, nil
			}})
			continue
		}

		path := arg
		sources = append(sources, source{name: path, read: func() ([]byte, error) {
			b, err := os.ReadFile(path)
			if err != nil {
				return nil, fmt.Errorf("read input: %w", err)
			}
			return b, nil
		}})
	}

	return sources, nil
}

// tokenizeSources reads and tokenizes every source with at most jobs running
// at once. Results keep the order of sources.
func tokenizeSources(ctx context.Context, tok *tokenizer.Tokenizer, sources []source, jobs int) ([]tokenizer.Result, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	if jobs <= 0 {
		jobs = 1
	}

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(jobs)

	results := make([]tokenizer.Result, len(sources))
	for i, src := range sources {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			data, err := src.read()
			if err != nil {
				return err
			}
			results[i] = tok.Tokenize(string(data))
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

type jsonResult struct {
	Source    string   `json:"source"`
	Words     []string `json:"words"`
	Sentences []string `json:"sentences"`
	Tokens    []string `json:"tokens"`
	Joined    string   `json:"joined"`
}

func writeResults(w io.Writer, format string, sources []source, results []tokenizer.Result) error {
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)

	for i, res := range results {
		var err error
		switch format {
		case formatJSON:
			err = enc.Encode(jsonResult{
				Source:    sources[i].name,
				Words:     res.Words,
				Sentences: res.Sentences,
				Tokens:    res.Tokens,
				Joined:    res.Joined(),
			})
		case formatWords:
			_, err = fmt.Fprintln(w, strings.Join(res.Words, " "))
		case formatSentences:
			for _, s := range res.Sentences {
				if _, err = fmt.Fprintln(w, s); err != nil {
					break
				}
			}
		default:
			_, err = fmt.Fprintln(w, res.Joined())
		}
		if err != nil {
			return fmt.Errorf("write output: %w", err)
		}
	}
	return nil
}
