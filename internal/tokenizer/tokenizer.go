// Package tokenizer segments Vietnamese text into word tokens and sentences.
//
// Each whitespace-delimited token runs through an ordered rule cascade:
// punctuation checks, the abbreviation and exception dictionaries, then the
// entity pattern table (dates, URLs, money, phone numbers, ...). The first
// rule that fires decides how the token is emitted. A final pass glues
// split-off commas and periods back onto the preceding token.
//
// A Tokenizer holds only read-only state and is safe for concurrent use.
package tokenizer

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/example/vntok/internal/lexicon"
	"github.com/example/vntok/internal/text"
)

// ErrInvalidPattern is returned by New when an entity pattern does not compile.
var ErrInvalidPattern = errors.New("invalid entity pattern")

// Result is the output of one Tokenize call.
type Result struct {
	// Words is the cascade output before punctuation reattachment.
	Words []string `json:"words"`
	// Sentences comes from the independent sentence splitter.
	Sentences []string `json:"sentences"`
	// Tokens is Words after commas and periods are reattached.
	Tokens []string `json:"tokens"`
}

// Joined returns the final tokens separated by single spaces.
func (r Result) Joined() string {
	return strings.Join(r.Tokens, " ")
}

// Stats describes the configuration a Tokenizer was built from.
type Stats struct {
	Abbreviations  int      `json:"abbreviations"`
	Exceptions     int      `json:"exceptions"`
	Entities       []string `json:"entities"`
	UnicodeForm    string   `json:"unicode_form"`
	StrictEntity   bool     `json:"strict_entity_match"`
	MatchTimeoutMS int64    `json:"match_timeout_ms"`
}

type options struct {
	form         text.Form
	strict       bool
	matchTimeout time.Duration
}

// Option configures a Tokenizer.
type Option func(*options)

// WithUnicodeForm sets the normalization applied to input text. The default,
// FormNone, keeps every input code point in the output.
func WithUnicodeForm(f text.Form) Option {
	return func(o *options) { o.form = f }
}

// WithStrictEntityMatch makes the whole-token entity rule require a pattern
// to span the entire token instead of matching anywhere inside it. Tokens
// that only partially match then reach the entity split rule.
func WithStrictEntityMatch(strict bool) Option {
	return func(o *options) { o.strict = strict }
}

// WithMatchTimeout bounds each entity pattern match. A match that runs out
// of time counts as no match, so the token falls through to later rules.
// Zero or less means no limit.
func WithMatchTimeout(d time.Duration) Option {
	return func(o *options) { o.matchTimeout = d }
}

// Tokenizer applies the rule cascade configured by a lexicon.
type Tokenizer struct {
	abbreviations []string
	exceptions    []string
	entities      []entity
	shortName     *entity
	opts          options
}

// New compiles lex into a Tokenizer. The lexicon is copied; later changes to
// it do not affect the Tokenizer.
func New(lex lexicon.Lexicon, optFns ...Option) (*Tokenizer, error) {
	opts := options{form: text.FormNone}
	for _, fn := range optFns {
		fn(&opts)
	}
	form, err := text.ParseForm(string(opts.form))
	if err != nil {
		return nil, err
	}
	opts.form = form

	if err := lex.Validate(); err != nil {
		return nil, fmt.Errorf("invalid lexicon: %w", err)
	}

	entities, err := compileEntities(lex.Entities, opts.matchTimeout)
	if err != nil {
		return nil, err
	}

	t := &Tokenizer{
		abbreviations: append([]string(nil), lex.Abbreviations...),
		exceptions:    append([]string(nil), lex.Exceptions...),
		entities:      entities,
		opts:          opts,
	}
	for i := range t.entities {
		if t.entities[i].kind == lexicon.KindShortName {
			t.shortName = &t.entities[i]
			break
		}
	}

	return t, nil
}

// Tokenize runs word tokenization, reattachment and sentence splitting.
// Empty or whitespace-only input yields an empty, non-nil Result.
func (t *Tokenizer) Tokenize(input string) Result {
	s, err := text.Normalize(input, t.opts.form)
	if err != nil {
		return Result{Words: []string{}, Sentences: []string{}, Tokens: []string{}}
	}

	words := t.words(s)
	sentences := text.SplitSentences(s)
	if sentences == nil {
		sentences = []string{}
	}

	return Result{
		Words:     words,
		Sentences: sentences,
		Tokens:    Reattach(words),
	}
}

// Words returns the cascade output for input, before reattachment.
func (t *Tokenizer) Words(input string) []string {
	s, err := text.Normalize(input, t.opts.form)
	if err != nil {
		return []string{}
	}
	return t.words(s)
}

// Sentences splits input into sentences.
func (t *Tokenizer) Sentences(input string) []string {
	s, err := text.Normalize(input, t.opts.form)
	if err != nil {
		return []string{}
	}
	sentences := text.SplitSentences(s)
	if sentences == nil {
		return []string{}
	}
	return sentences
}

// Stats reports dictionary sizes and the entity kinds in table order.
func (t *Tokenizer) Stats() Stats {
	kinds := make([]string, 0, len(t.entities))
	for _, e := range t.entities {
		kinds = append(kinds, e.kind)
	}
	return Stats{
		Abbreviations:  len(t.abbreviations),
		Exceptions:     len(t.exceptions),
		Entities:       kinds,
		UnicodeForm:    string(t.opts.form),
		StrictEntity:   t.opts.strict,
		MatchTimeoutMS: t.opts.matchTimeout.Milliseconds(),
	}
}

func (t *Tokenizer) words(s string) []string {
	raw := text.Fields(s)
	out := make([]string, 0, len(raw))
	for _, tok := range raw {
		out = t.classify(strings.TrimSpace(tok), out)
	}

	// Split rules may leave blank fragments behind.
	words := out[:0]
	for _, w := range out {
		if strings.TrimSpace(w) != "" {
			words = append(words, w)
		}
	}
	return words
}

// Reattach appends every standalone "," or "." to the token before it.
// A leading "," or "." has nothing to attach to and is kept. Blank tokens are
// dropped. Reattach is idempotent.
func Reattach(words []string) []string {
	tokens := make([]string, 0, len(words))
	for _, w := range words {
		w = strings.TrimSpace(w)
		if w == "" {
			continue
		}
		if (w == "," || w == ".") && len(tokens) > 0 {
			tokens[len(tokens)-1] += w
			continue
		}
		tokens = append(tokens, w)
	}
	return tokens
}
