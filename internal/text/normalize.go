// Package text holds the text-level passes that surround the tokenizer
// cascade: input normalization, whitespace splitting and sentence splitting.
package text

import (
	"errors"
	"fmt"
	"strings"

	"golang.org/x/text/unicode/norm"
)

// ErrEmptyText is returned when the input text is empty or whitespace-only.
var ErrEmptyText = errors.New("text is empty")

// Form selects the Unicode normalization applied before tokenizing.
type Form string

const (
	// FormNFC composes base letters and Vietnamese tone marks.
	FormNFC Form = "nfc"
	// FormNFKC additionally folds compatibility characters.
	FormNFKC Form = "nfkc"
	// FormNone leaves code points untouched.
	FormNone Form = "none"
)

// ParseForm converts a case-insensitive form name. Empty means FormNone.
func ParseForm(raw string) (Form, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case string(FormNFC):
		return FormNFC, nil
	case string(FormNFKC):
		return FormNFKC, nil
	case "", string(FormNone), "off":
		return FormNone, nil
	default:
		return "", fmt.Errorf("invalid unicode form %q (expected %s|%s|%s)", raw, FormNFC, FormNFKC, FormNone)
	}
}

// Normalize prepares raw input text for tokenization.
// It normalizes line endings to \n, applies the Unicode form, trims
// surrounding whitespace, and rejects empty or whitespace-only input.
func Normalize(s string, form Form) (string, error) {
	// Normalize line endings: CRLF → LF, then bare CR → LF.
	s = strings.ReplaceAll(s, "\r\n", "\n")
	s = strings.ReplaceAll(s, "\r", "\n")

	switch form {
	case FormNFC:
		s = norm.NFC.String(s)
	case FormNFKC:
		s = norm.NFKC.String(s)
	}

	s = strings.TrimSpace(s)

	if s == "" {
		return "", ErrEmptyText
	}

	return s, nil
}
