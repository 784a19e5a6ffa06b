// Package lexicon holds the curated data the tokenizer cascade consults:
// the abbreviation list, the exception list and the ordered entity pattern
// table. Order is significant in all three; the first hit wins.
package lexicon

import (
	"errors"
	"fmt"
	"strings"
)

// Entity kinds of the built-in pattern table, in declaration order.
const (
	KindEllipsis          = "ELLIPSIS"
	KindEmail             = "EMAIL"
	KindFullDate          = "FULL_DATE"
	KindMonth             = "MONTH"
	KindDate              = "DATE"
	KindTime              = "TIME"
	KindMoney             = "MONEY"
	KindPhoneNumber       = "PHONE_NUMBER"
	KindURL               = "URL"
	KindNumber            = "NUMBER"
	KindPunctuation       = "PUNCTUATION"
	KindSpecialChar       = "SPECIAL_CHAR"
	KindEOSPunctuation    = "EOS_PUNCTUATION"
	KindShortName         = "SHORT_NAME"
	KindWordWithHyphen    = "WORD_WITH_HYPHEN"
	KindAllCap            = "ALLCAP"
	KindNumbersExpression = "NUMBERS_EXPRESSION"
)

var (
	ErrEmptyKind     = errors.New("entity kind is empty")
	ErrEmptyPattern  = errors.New("entity pattern is empty")
	ErrDuplicateKind = errors.New("duplicate entity kind")
	ErrEmptyEntry    = errors.New("empty dictionary entry")
)

// EntityPattern is one named regular expression of the entity table.
type EntityPattern struct {
	Kind    string `yaml:"kind" json:"kind"`
	Pattern string `yaml:"pattern" json:"pattern"`
}

// Lexicon is the complete configuration data of a tokenizer.
type Lexicon struct {
	Abbreviations []string        `yaml:"abbreviations,omitempty" json:"abbreviations,omitempty"`
	Exceptions    []string        `yaml:"exceptions,omitempty" json:"exceptions,omitempty"`
	Entities      []EntityPattern `yaml:"entities,omitempty" json:"entities,omitempty"`
}

// Clone returns a deep copy so callers can never alias another lexicon's slices.
func (l Lexicon) Clone() Lexicon {
	return Lexicon{
		Abbreviations: append([]string(nil), l.Abbreviations...),
		Exceptions:    append([]string(nil), l.Exceptions...),
		Entities:      append([]EntityPattern(nil), l.Entities...),
	}
}

// Kinds lists the entity kinds in table order.
func (l Lexicon) Kinds() []string {
	kinds := make([]string, 0, len(l.Entities))
	for _, e := range l.Entities {
		kinds = append(kinds, e.Kind)
	}
	return kinds
}

// Pattern returns the pattern registered for kind.
func (l Lexicon) Pattern(kind string) (string, bool) {
	for _, e := range l.Entities {
		if e.Kind == kind {
			return e.Pattern, true
		}
	}
	return "", false
}

// Validate checks structural soundness. Pattern syntax is checked later, when
// the tokenizer compiles the table.
func (l Lexicon) Validate() error {
	for i, a := range l.Abbreviations {
		if strings.TrimSpace(a) == "" {
			return fmt.Errorf("abbreviation %d: %w", i, ErrEmptyEntry)
		}
	}
	for i, e := range l.Exceptions {
		if strings.TrimSpace(e) == "" {
			return fmt.Errorf("exception %d: %w", i, ErrEmptyEntry)
		}
	}

	seen := make(map[string]struct{}, len(l.Entities))
	for i, e := range l.Entities {
		if strings.TrimSpace(e.Kind) == "" {
			return fmt.Errorf("entity %d: %w", i, ErrEmptyKind)
		}
		if e.Pattern == "" {
			return fmt.Errorf("entity %q: %w", e.Kind, ErrEmptyPattern)
		}
		if _, dup := seen[e.Kind]; dup {
			return fmt.Errorf("entity %q: %w", e.Kind, ErrDuplicateKind)
		}
		seen[e.Kind] = struct{}{}
	}
	return nil
}
