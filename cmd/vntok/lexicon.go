package main

import (
	"fmt"
	"io"
	"os"
	"text/tabwriter"

	"github.com/example/vntok/internal/config"
	"github.com/example/vntok/internal/lexicon"
	"github.com/spf13/cobra"
)

func newLexiconCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "lexicon",
		Short: "Inspect and export the tokenizer lexicon",
	}

	cmd.AddCommand(newLexiconDumpCmd())
	cmd.AddCommand(newLexiconShowCmd())

	return cmd
}

func newLexiconDumpCmd() *cobra.Command {
	var (
		out     string
		builtin bool
	)

	cmd := &cobra.Command{
		Use:   "dump",
		Short: "Write the effective lexicon as YAML",
		RunE: func(cmd *cobra.Command, _ []string) error {
			lex, err := effectiveLexicon(builtin)
			if err != nil {
				return err
			}

			if out == "-" {
				return lexicon.Write(cmd.OutOrStdout(), lex)
			}

			f, err := os.Create(out)
			if err != nil {
				return fmt.Errorf("create %s: %w", out, err)
			}

			if err := lexicon.Write(f, lex); err != nil {
				_ = f.Close()
				return err
			}

			return f.Close()
		},
	}

	cmd.Flags().StringVar(&out, "out", "-", "Output path ('-' for stdout)")
	cmd.Flags().BoolVar(&builtin, "builtin", false, "Ignore the configured lexicon file")

	return cmd
}

func newLexiconShowCmd() *cobra.Command {
	var builtin bool

	cmd := &cobra.Command{
		Use:   "show",
		Short: "Print dictionary sizes and the entity pattern table",
		RunE: func(cmd *cobra.Command, _ []string) error {
			lex, err := effectiveLexicon(builtin)
			if err != nil {
				return err
			}

			return showLexicon(cmd.OutOrStdout(), lex)
		},
	}

	cmd.Flags().BoolVar(&builtin, "builtin", false, "Ignore the configured lexicon file")

	return cmd
}

func effectiveLexicon(builtin bool) (lexicon.Lexicon, error) {
	cfg, err := requireConfig()
	if err != nil {
		return lexicon.Lexicon{}, err
	}
	if builtin {
		cfg.Lexicon = config.LexiconConfig{Mode: cfg.Lexicon.Mode}
	}
	return loadLexicon(cfg.Lexicon)
}

func showLexicon(w io.Writer, lex lexicon.Lexicon) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)

	fmt.Fprintf(tw, "abbreviations\t%d\n", len(lex.Abbreviations))
	fmt.Fprintf(tw, "exceptions\t%d\n", len(lex.Exceptions))
	fmt.Fprintf(tw, "entities\t%d\n", len(lex.Entities))
	fmt.Fprintln(tw)

	for i, e := range lex.Entities {
		fmt.Fprintf(tw, "%d\t%s\t%s\n", i+1, e.Kind, e.Pattern)
	}

	return tw.Flush()
}
