package tokenizer

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/example/vntok/internal/lexicon"
)

// asciiPunctuation is the set that sends a token past the pass-through rule.
const asciiPunctuation = "!\"#$%&'()*+,-./:;<=>?@[\\]^_`{|}~"

// classify appends the word tokens for one raw token to out. Rules run in a
// fixed order and the first one that fires wins.
func (t *Tokenizer) classify(tok string, out []string) []string {
	// Pass-through.
	if utf8.RuneCountInString(tok) == 1 || !strings.ContainsAny(tok, asciiPunctuation) {
		return append(out, tok)
	}

	// Trailing comma.
	if strings.HasSuffix(tok, ",") {
		return append(out, tok[:len(tok)-1], ",")
	}

	if containsAny(tok, t.abbreviations) {
		return append(out, tok)
	}

	// Trailing period after a letter.
	if strings.HasSuffix(tok, ".") {
		body := tok[:len(tok)-1]
		prev, _ := utf8.DecodeLastRuneInString(body)
		if unicode.IsLetter(prev) {
			if t.keepsTrailingPeriod(tok, prev) {
				return append(out, tok)
			}
			return append(out, body, ".")
		}
	}

	if containsAny(tok, t.exceptions) {
		return append(out, tok)
	}

	if parts, ok := splitLiteral(tok, t.abbreviations); ok {
		return append(out, parts...)
	}
	if parts, ok := splitLiteral(tok, t.exceptions); ok {
		return append(out, parts...)
	}

	// Whole-token entity: a token that already is an entity is not split.
	for i := range t.entities {
		e := &t.entities[i]
		matched := e.matches(tok)
		if t.opts.strict {
			matched = e.matchesWhole(tok)
		}
		if matched {
			return append(out, tok)
		}
	}

	if parts, ok := t.splitEntity(tok); ok {
		return append(out, parts...)
	}

	// Fallback.
	return append(out, tok)
}

// keepsTrailingPeriod reports whether a token ending in letter+"." is an
// initial ("A.") or a short name ("Hà-Nội.", "T.Ư.").
func (t *Tokenizer) keepsTrailingPeriod(tok string, prev rune) bool {
	if utf8.RuneCountInString(tok) == 2 && unicode.IsUpper(prev) {
		return true
	}
	return t.shortName != nil && t.shortName.matches(tok)
}

// splitEntity splits tok around the first entity pattern that matches it.
func (t *Tokenizer) splitEntity(tok string) ([]string, bool) {
	for i := range t.entities {
		e := &t.entities[i]
		start, end, ok := e.find(tok)
		if !ok {
			continue
		}

		rs := []rune(tok)
		switch e.kind {
		case lexicon.KindURL:
			if !plausibleURL(tok) {
				continue
			}
		case lexicon.KindMonth:
			if !hasLetter(rs[:start]) {
				return []string{tok}, true
			}
		}
		return splitSpan(rs, start, end), true
	}
	return nil, false
}

// plausibleURL rejects URL matches where a dot-separated segment is a single
// capital letter (initials such as "T.Ư") or contains non-ASCII code points.
func plausibleURL(tok string) bool {
	for _, seg := range strings.Split(tok, ".") {
		first, size := utf8.DecodeRuneInString(seg)
		if size == len(seg) && size > 0 && unicode.IsUpper(first) {
			return false
		}
		for _, r := range seg {
			if r >= utf8.RuneSelf {
				return false
			}
		}
	}
	return true
}

// splitLiteral splits tok around the first dictionary entry it contains.
func splitLiteral(tok string, dict []string) ([]string, bool) {
	for _, d := range dict {
		i := strings.Index(tok, d)
		if i < 0 {
			continue
		}
		parts := make([]string, 0, 3)
		if i > 0 {
			parts = append(parts, tok[:i])
		}
		parts = append(parts, d)
		if rest := tok[i+len(d):]; rest != "" {
			parts = append(parts, rest)
		}
		return parts, true
	}
	return nil, false
}

// splitSpan returns prefix, span and suffix of rs, omitting empty parts.
func splitSpan(rs []rune, start, end int) []string {
	parts := make([]string, 0, 3)
	if start > 0 {
		parts = append(parts, string(rs[:start]))
	}
	parts = append(parts, string(rs[start:end]))
	if end < len(rs) {
		parts = append(parts, string(rs[end:]))
	}
	return parts
}

func containsAny(tok string, dict []string) bool {
	for _, d := range dict {
		if strings.Contains(tok, d) {
			return true
		}
	}
	return false
}

func hasLetter(rs []rune) bool {
	for _, r := range rs {
		if unicode.IsLetter(r) {
			return true
		}
	}
	return false
}
