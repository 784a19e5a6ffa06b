//go:build js && wasm

package main

import (
	"fmt"
	"sync"
	"syscall/js"

	"github.com/example/vntok/internal/config"
	"github.com/example/vntok/internal/lexicon"
	"github.com/example/vntok/internal/text"
	"github.com/example/vntok/internal/tokenizer"
)

var (
	defaults = config.DefaultConfig()
	tokMu    sync.RWMutex
	tok      *tokenizer.Tokenizer
)

func main() {
	built, err := tokenizer.New(lexicon.Default(),
		tokenizer.WithUnicodeForm(text.Form(defaults.Tokenizer.Normalize)))
	if err != nil {
		println("vntok wasm kernel: built-in lexicon failed:", err.Error())
		return
	}
	tok = built

	kernel := map[string]any{
		"version":     "0.1.0-wasm",
		"loadLexicon": js.FuncOf(loadLexiconAsync),
		"normalize":   js.FuncOf(normalizeText),
		"tokenize":    js.FuncOf(tokenizeText),
		"stats":       js.FuncOf(lexiconStats),
	}

	js.Global().Set("VntokKernel", js.ValueOf(kernel))
	println("vntok wasm kernel loaded")
	select {}
}

func current() *tokenizer.Tokenizer {
	tokMu.RLock()
	defer tokMu.RUnlock()
	return tok
}

// normalizeText(text, form?) applies nfc|nfkc|none; form defaults to nfc.
func normalizeText(_ js.Value, args []js.Value) any {
	if len(args) < 1 {
		return errResult("missing text argument")
	}

	raw := string(text.FormNFC)
	if len(args) > 1 && args[1].Type() == js.TypeString {
		raw = args[1].String()
	}
	form, err := text.ParseForm(raw)
	if err != nil {
		return errResult(err.Error())
	}

	normalized, err := text.Normalize(args[0].String(), form)
	if err != nil {
		return errResult(err.Error())
	}

	return okResult(map[string]any{"text": normalized})
}

func tokenizeText(_ js.Value, args []js.Value) any {
	if len(args) < 1 {
		return errResult("missing text argument")
	}

	res := current().Tokenize(args[0].String())

	return okResult(map[string]any{
		"words":     stringsToJS(res.Words),
		"sentences": stringsToJS(res.Sentences),
		"tokens":    stringsToJS(res.Tokens),
		"joined":    res.Joined(),
	})
}

func lexiconStats(_ js.Value, _ []js.Value) any {
	st := current().Stats()
	return okResult(map[string]any{
		"abbreviations":       st.Abbreviations,
		"exceptions":          st.Exceptions,
		"entities":            stringsToJS(st.Entities),
		"unicode_form":        st.UnicodeForm,
		"strict_entity_match": st.StrictEntity,
	})
}

// loadLexiconAsync(bytes, mode?) swaps in a tokenizer built from a YAML or
// JSON lexicon. Mode is replace|extend and defaults to extend.
func loadLexiconAsync(_ js.Value, args []js.Value) any {
	promiseCtor := js.Global().Get("Promise")
	var handler js.Func
	handler = js.FuncOf(func(_ js.Value, pArgs []js.Value) any {
		defer handler.Release()
		resolve := pArgs[0]
		reject := pArgs[1]

		if len(args) < 1 {
			reject.Invoke("missing lexicon bytes argument")
			return nil
		}

		data, ok := copyJSBytes(args[0])
		if !ok || len(data) == 0 {
			reject.Invoke("lexicon bytes must be a non-empty Uint8Array/ArrayBuffer")
			return nil
		}

		mode := defaults.Lexicon.Mode
		if len(args) > 1 && args[1].Type() == js.TypeString {
			mode = args[1].String()
		}

		go func() {
			res, err := loadLexicon(data, mode)
			if err != nil {
				reject.Invoke(err.Error())
				return
			}
			resolve.Invoke(js.ValueOf(res))
		}()

		return nil
	})

	return promiseCtor.New(handler)
}

func loadLexicon(data []byte, rawMode string) (map[string]any, error) {
	mode, err := lexicon.ParseMode(rawMode)
	if err != nil {
		return nil, err
	}

	overlay, err := lexicon.Parse(data)
	if err != nil {
		return nil, err
	}

	lex, err := lexicon.Merge(lexicon.Default(), overlay, mode)
	if err != nil {
		return nil, err
	}

	built, err := tokenizer.New(lex,
		tokenizer.WithUnicodeForm(text.Form(defaults.Tokenizer.Normalize)))
	if err != nil {
		return nil, fmt.Errorf("build tokenizer: %w", err)
	}

	tokMu.Lock()
	tok = built
	tokMu.Unlock()

	st := built.Stats()
	return okResult(map[string]any{
		"abbreviations": st.Abbreviations,
		"exceptions":    st.Exceptions,
		"entities":      len(st.Entities),
	}), nil
}

func stringsToJS(in []string) []any {
	out := make([]any, len(in))
	for i, s := range in {
		out[i] = s
	}
	return out
}

func copyJSBytes(v js.Value) ([]byte, bool) {
	if v.IsUndefined() || v.IsNull() {
		return nil, false
	}

	uint8Array := js.Global().Get("Uint8Array")
	if !uint8Array.IsUndefined() && v.InstanceOf(uint8Array) {
		buf := make([]byte, v.Get("length").Int())
		n := js.CopyBytesToGo(buf, v)
		return buf[:n], true
	}

	arrayBuffer := js.Global().Get("ArrayBuffer")
	if !arrayBuffer.IsUndefined() && v.InstanceOf(arrayBuffer) {
		wrapped := uint8Array.New(v)
		buf := make([]byte, wrapped.Get("length").Int())
		n := js.CopyBytesToGo(buf, wrapped)
		return buf[:n], true
	}

	return nil, false
}

func okResult(payload map[string]any) map[string]any {
	payload["ok"] = true
	return payload
}

func errResult(msg string) map[string]any {
	return map[string]any{
		"ok":    false,
		"error": msg,
	}
}
