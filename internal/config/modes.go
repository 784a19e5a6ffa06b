package config

import (
	"fmt"
	"strings"
)

const (
	LexiconModeReplace = "replace"
	LexiconModeExtend  = "extend"
)

const (
	UnicodeFormNFC  = "nfc"
	UnicodeFormNFKC = "nfkc"
	UnicodeFormNone = "none"
)

func NormalizeLexiconMode(raw string) (string, error) {
	mode := strings.ToLower(strings.TrimSpace(raw))
	if mode == "" {
		mode = LexiconModeExtend
	}
	switch mode {
	case LexiconModeReplace, LexiconModeExtend:
		return mode, nil
	case "merge":
		return LexiconModeExtend, nil
	default:
		return "", fmt.Errorf(
			"invalid lexicon mode %q (expected %s|%s|merge)",
			raw,
			LexiconModeReplace,
			LexiconModeExtend,
		)
	}
}

func NormalizeUnicodeForm(raw string) (string, error) {
	form := strings.ToLower(strings.TrimSpace(raw))
	if form == "" {
		form = UnicodeFormNone
	}
	switch form {
	case UnicodeFormNFC, UnicodeFormNFKC, UnicodeFormNone:
		return form, nil
	case "off":
		return UnicodeFormNone, nil
	default:
		return "", fmt.Errorf(
			"invalid unicode form %q (expected %s|%s|%s|off)",
			raw,
			UnicodeFormNFC,
			UnicodeFormNFKC,
			UnicodeFormNone,
		)
	}
}
