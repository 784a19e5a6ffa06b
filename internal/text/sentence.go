package text

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// Fields splits text into raw tokens on runs of Unicode whitespace.
func Fields(s string) []string {
	return strings.FieldsFunc(s, unicode.IsSpace)
}

// SplitSentences collapses every run of two or more whitespace characters to
// a single space, then splits on a period followed by whitespace. The period
// and the whitespace are consumed by the split; the last sentence keeps its
// terminator. Empty segments are dropped.
//
// Abbreviations are not consulted, so "Mr. Lee" splits after "Mr".
func SplitSentences(s string) []string {
	s = CollapseSpaces(s)

	var sentences []string
	start := 0

	for i := 0; i < len(s); i++ {
		if s[i] != '.' {
			continue
		}

		end := skipSpace(s, i+1)
		if end == i+1 {
			continue
		}

		sentences = appendNonEmpty(sentences, s[start:i])
		start = end
		i = end - 1
	}

	// Trailing text after the last boundary (if any).
	if start < len(s) {
		sentences = appendNonEmpty(sentences, s[start:])
	}

	return sentences
}

// CollapseSpaces replaces each run of two or more whitespace characters with
// one space. Single whitespace characters are kept as they are.
func CollapseSpaces(s string) string {
	var b strings.Builder
	b.Grow(len(s))

	for i := 0; i < len(s); {
		end := skipSpace(s, i)
		if end == i {
			_, size := utf8.DecodeRuneInString(s[i:])
			b.WriteString(s[i : i+size])
			i += size
			continue
		}

		if utf8.RuneCountInString(s[i:end]) >= 2 {
			b.WriteByte(' ')
		} else {
			b.WriteString(s[i:end])
		}
		i = end
	}

	return b.String()
}

// skipSpace returns the byte offset of the first non-whitespace rune at or
// after i.
func skipSpace(s string, i int) int {
	for i < len(s) {
		r, size := utf8.DecodeRuneInString(s[i:])
		if !unicode.IsSpace(r) {
			break
		}
		i += size
	}
	return i
}

func appendNonEmpty(dst []string, s string) []string {
	if strings.TrimSpace(s) == "" {
		return dst
	}
	return append(dst, s)
}

// Sample is a short two-sentence Vietnamese paragraph used for smoke checks
// and benchmarks.
const Sample = "Ông Nguyễn Khắc Chúc  đang làm việc tại Đại học Quốc gia Hà Nội. " +
	"Bà Lan, vợ ông Chúc, cũng làm việc tại đây."
