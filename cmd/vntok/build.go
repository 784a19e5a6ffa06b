package main

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/example/vntok/internal/config"
	"github.com/example/vntok/internal/lexicon"
	"github.com/example/vntok/internal/text"
	"github.com/example/vntok/internal/tokenizer"
)

// loadLexicon returns the built-in lexicon combined with the configured file.
func loadLexicon(cfg config.LexiconConfig) (lexicon.Lexicon, error) {
	base := lexicon.Default()
	if cfg.Path == "" {
		return base, nil
	}

	mode, err := lexicon.ParseMode(cfg.Mode)
	if err != nil {
		return lexicon.Lexicon{}, err
	}

	overlay, err := lexicon.Load(cfg.Path)
	if err != nil {
		return lexicon.Lexicon{}, err
	}

	lex, err := lexicon.Merge(base, overlay, mode)
	if err != nil {
		return lexicon.Lexicon{}, fmt.Errorf("merge %s: %w", cfg.Path, err)
	}

	slog.Debug("lexicon loaded",
		slog.String("path", cfg.Path),
		slog.String("mode", string(mode)),
		slog.Int("abbreviations", len(lex.Abbreviations)),
		slog.Int("exceptions", len(lex.Exceptions)),
		slog.Int("entities", len(lex.Entities)),
	)

	return lex, nil
}

func buildTokenizer(cfg config.Config) (*tokenizer.Tokenizer, error) {
	lex, err := loadLexicon(cfg.Lexicon)
	if err != nil {
		return nil, err
	}

	return tokenizer.New(lex,
		tokenizer.WithUnicodeForm(text.Form(cfg.Tokenizer.Normalize)),
		tokenizer.WithStrictEntityMatch(cfg.Tokenizer.StrictEntityMatch),
		tokenizer.WithMatchTimeout(time.Duration(cfg.Tokenizer.MatchTimeoutMS)*time.Millisecond),
	)
}
