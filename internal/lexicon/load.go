package lexicon

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Mode controls how a loaded lexicon file is combined with a base lexicon.
type Mode string

const (
	// ModeReplace swaps every section present in the overlay in for the base
	// section. A section given as an empty list clears it; a section that is
	// omitted (nil) keeps the base entries.
	ModeReplace Mode = "replace"
	// ModeExtend appends new entries and overrides entity patterns by kind.
	ModeExtend Mode = "extend"
)

var (
	ErrEmptyPath   = errors.New("lexicon path is empty")
	ErrUnknownMode = errors.New("unknown lexicon mode")
)

// ParseMode converts a case-insensitive mode name. Empty means ModeExtend.
func ParseMode(raw string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "", string(ModeExtend):
		return ModeExtend, nil
	case string(ModeReplace):
		return ModeReplace, nil
	default:
		return "", fmt.Errorf("%w %q (expected %s|%s)", ErrUnknownMode, raw, ModeReplace, ModeExtend)
	}
}

// Load reads a lexicon file. YAML and JSON are both accepted.
func Load(path string) (Lexicon, error) {
	if path == "" {
		return Lexicon{}, ErrEmptyPath
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return Lexicon{}, fmt.Errorf("read lexicon: %w", err)
	}

	lex, err := Parse(data)
	if err != nil {
		return Lexicon{}, fmt.Errorf("%s: %w", path, err)
	}
	return lex, nil
}

// Parse decodes and validates lexicon data.
func Parse(data []byte) (Lexicon, error) {
	var lex Lexicon
	if err := yaml.Unmarshal(data, &lex); err != nil {
		return Lexicon{}, fmt.Errorf("decode lexicon: %w", err)
	}
	if err := lex.Validate(); err != nil {
		return Lexicon{}, err
	}
	return lex, nil
}

// Merge combines overlay onto base and returns a new lexicon; neither input
// is modified.
func Merge(base, overlay Lexicon, mode Mode) (Lexicon, error) {
	out := base.Clone()

	switch mode {
	case ModeReplace:
		if overlay.Abbreviations != nil {
			out.Abbreviations = append([]string{}, overlay.Abbreviations...)
		}
		if overlay.Exceptions != nil {
			out.Exceptions = append([]string{}, overlay.Exceptions...)
		}
		if overlay.Entities != nil {
			out.Entities = append([]EntityPattern{}, overlay.Entities...)
		}
	case ModeExtend:
		out.Abbreviations = appendMissing(out.Abbreviations, overlay.Abbreviations)
		out.Exceptions = appendMissing(out.Exceptions, overlay.Exceptions)
		for _, e := range overlay.Entities {
			replaced := false
			for i := range out.Entities {
				if out.Entities[i].Kind == e.Kind {
					out.Entities[i].Pattern = e.Pattern
					replaced = true
					break
				}
			}
			if !replaced {
				out.Entities = append(out.Entities, e)
			}
		}
	default:
		return Lexicon{}, fmt.Errorf("%w %q", ErrUnknownMode, mode)
	}

	if err := out.Validate(); err != nil {
		return Lexicon{}, err
	}
	return out, nil
}

// Write encodes lex as YAML.
func Write(w io.Writer, lex Lexicon) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(lex); err != nil {
		return fmt.Errorf("encode lexicon: %w", err)
	}
	return enc.Close()
}

func appendMissing(dst, src []string) []string {
	have := make(map[string]struct{}, len(dst))
	for _, s := range dst {
		have[s] = struct{}{}
	}
	for _, s := range src {
		if _, ok := have[s]; ok {
			continue
		}
		have[s] = struct{}{}
		dst = append(dst, s)
	}
	return dst
}
