package server_test

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/example/vntok/internal/lexicon"
	"github.com/example/vntok/internal/server"
	"github.com/example/vntok/internal/testutil"
	"github.com/example/vntok/internal/tokenizer"
)

// stubTokenizer implements server.Tokenizer for tests.
type stubTokenizer struct {
	result tokenizer.Result
	stats  tokenizer.Stats
	calls  int
}

func (s *stubTokenizer) Tokenize(_ string) tokenizer.Result {
	s.calls++
	return s.result
}

func (s *stubTokenizer) Stats() tokenizer.Stats { return s.stats }

func newStub() *stubTokenizer {
	return &stubTokenizer{
		result: tokenizer.Result{
			Words:     []string{"Xin", "chào", "."},
			Sentences: []string{"Xin chào."},
			Tokens:    []string{"Xin", "chào."},
		},
		stats: tokenizer.Stats{
			Abbreviations: 2,
			Exceptions:    1,
			Entities:      []string{"URL", "DATE"},
			UnicodeForm:   "nfc",
		},
	}
}

func postTokenize(t *testing.T, h http.Handler, body string) *httptest.ResponseRecorder {
	t.Helper()

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/tokenize", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	h.ServeHTTP(rec, req)

	return rec
}

type tokenizeBody struct {
	Words     []string `json:"words"`
	Sentences []string `json:"sentences"`
	Tokens    []string `json:"tokens"`
	Joined    string   `json:"joined"`
}

func decodeTokenize(t *testing.T, rec *httptest.ResponseRecorder) tokenizeBody {
	t.Helper()

	var got tokenizeBody

	err := json.NewDecoder(rec.Body).Decode(&got)
	if err != nil {
		t.Fatalf("decode body: %v", err)
	}

	return got
}

// ---------------------------------------------------------------------------
// GET /health
// ---------------------------------------------------------------------------

func TestHealth_Returns200WithStatusOK(t *testing.T) {
	h := server.NewHandler(newStub())

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	h.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("want 200, got %d", rec.Code)
	}

	var body map[string]string

	err := json.NewDecoder(rec.Body).Decode(&body)
	if err != nil {
		t.Fatalf("decode body: %v", err)
	}

	if body["status"] != "ok" {
		t.Errorf("want status=ok, got %q", body["status"])
	}

	if _, ok := body["version"]; !ok {
		t.Error("want version field in response")
	}
}

// ---------------------------------------------------------------------------
// GET /lexicon
// ---------------------------------------------------------------------------

func TestLexicon_ReturnsStats(t *testing.T) {
	h := server.NewHandler(newStub())

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/lexicon", nil)
	h.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("want 200, got %d", rec.Code)
	}

	var got tokenizer.Stats

	err := json.NewDecoder(rec.Body).Decode(&got)
	if err != nil {
		t.Fatalf("decode body: %v", err)
	}

	if got.Abbreviations != 2 || got.Exceptions != 1 {
		t.Errorf("counts = %d/%d; want 2/1", got.Abbreviations, got.Exceptions)
	}

	if strings.Join(got.Entities, ",") != "URL,DATE" {
		t.Errorf("entities = %v; want [URL DATE]", got.Entities)
	}
}

func TestLexicon_RejectsPost(t *testing.T) {
	h := server.NewHandler(newStub())

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/lexicon", nil)
	h.ServeHTTP(rec, req)

	if rec.Code != http.StatusMethodNotAllowed {
		t.Fatalf("want 405, got %d", rec.Code)
	}
}

// ---------------------------------------------------------------------------
// POST /tokenize
// ---------------------------------------------------------------------------

func TestTokenize_ReturnsResultOnSuccess(t *testing.T) {
	h := server.NewHandler(newStub())

	rec := postTokenize(t, h, `{"text":"Xin chào."}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("want 200, got %d (body: %s)", rec.Code, rec.Body.String())
	}

	if ct := rec.Header().Get("Content-Type"); ct != "application/json" {
		t.Errorf("want Content-Type application/json, got %q", ct)
	}

	got := decodeTokenize(t, rec)
	if strings.Join(got.Tokens, "|") != "Xin|chào." {
		t.Errorf("tokens = %q", got.Tokens)
	}

	if strings.Join(got.Words, "|") != "Xin|chào|." {
		t.Errorf("words = %q", got.Words)
	}

	if got.Joined != "Xin chào." {
		t.Errorf("joined = %q; want %q", got.Joined, "Xin chào.")
	}
}

func TestTokenize_RejectsGetAs405(t *testing.T) {
	h := server.NewHandler(newStub())

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/tokenize", nil)
	h.ServeHTTP(rec, req)

	if rec.Code != http.StatusMethodNotAllowed {
		t.Fatalf("want 405, got %d", rec.Code)
	}
}

func TestTokenize_ReturnsMissingBodyAs400(t *testing.T) {
	h := server.NewHandler(newStub())

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/tokenize", nil)
	req.Header.Set("Content-Type", "application/json")
	h.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("want 400, got %d", rec.Code)
	}

	var body map[string]string

	err := json.NewDecoder(rec.Body).Decode(&body)
	if err != nil {
		t.Fatalf("decode error body: %v", err)
	}

	if body["error"] == "" {
		t.Error("want non-empty error field")
	}
}

func TestTokenize_InvalidJSONAs400(t *testing.T) {
	h := server.NewHandler(newStub())

	rec := postTokenize(t, h, `{"text":`)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("want 400, got %d", rec.Code)
	}
}

func TestTokenize_EmptyTextReturnsEmptyArrays(t *testing.T) {
	tok, err := tokenizer.New(lexicon.Default())
	if err != nil {
		t.Fatalf("tokenizer.New: %v", err)
	}

	h := server.NewHandler(tok)

	rec := postTokenize(t, h, `{"text":"   "}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("want 200, got %d", rec.Code)
	}

	raw, _ := io.ReadAll(rec.Body)
	if !bytes.Contains(raw, []byte(`"tokens":[]`)) || !bytes.Contains(raw, []byte(`"sentences":[]`)) {
		t.Errorf("want empty JSON arrays, got %s", raw)
	}
}

func TestTokenize_WithDefaultLexicon(t *testing.T) {
	tok, err := tokenizer.New(lexicon.Default())
	if err != nil {
		t.Fatalf("tokenizer.New: %v", err)
	}

	h := server.NewHandler(tok)

	payload, err := json.Marshal(map[string]string{"text": testutil.SampleText})
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}

	rec := postTokenize(t, h, string(payload))
	if rec.Code != http.StatusOK {
		t.Fatalf("want 200, got %d (body: %s)", rec.Code, rec.Body.String())
	}

	got := decodeTokenize(t, rec)
	want := tok.Tokenize(testutil.SampleText)

	if strings.Join(got.Tokens, "|") != strings.Join(want.Tokens, "|") {
		t.Errorf("tokens = %q; want %q", got.Tokens, want.Tokens)
	}

	if got.Joined != want.Joined() {
		t.Errorf("joined = %q; want %q", got.Joined, want.Joined())
	}
}

func TestTokenize_CacheServesRepeatedText(t *testing.T) {
	stub := newStub()
	h := server.NewHandler(stub, server.WithCacheSize(8))

	for range 3 {
		rec := postTokenize(t, h, `{"text":"Xin chào."}`)
		if rec.Code != http.StatusOK {
			t.Fatalf("want 200, got %d", rec.Code)
		}
	}

	if stub.calls != 1 {
		t.Errorf("tokenizer called %d times; want 1", stub.calls)
	}
}

func TestMetrics_CacheEntriesTracksDistinctTexts(t *testing.T) {
	h := server.NewHandler(newStub(), server.WithCacheSize(2))

	for _, text := range []string{"Một.", "Hai.", "Một.", "Ba."} {
		postTokenize(t, h, `{"text":"`+text+`"}`)
	}

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	// Three distinct texts through a two-entry cache.
	if want := "vntok_server_cache_entries 2"; !strings.Contains(rec.Body.String(), want) {
		t.Errorf("metrics output missing %q:\n%s", want, rec.Body.String())
	}
}

func TestTokenize_CacheDisabled(t *testing.T) {
	stub := newStub()
	h := server.NewHandler(stub, server.WithCacheSize(0))

	for range 3 {
		postTokenize(t, h, `{"text":"Xin chào."}`)
	}

	if stub.calls != 3 {
		t.Errorf("tokenizer called %d times; want 3", stub.calls)
	}
}

// ---------------------------------------------------------------------------
// GET /metrics
// ---------------------------------------------------------------------------

func TestMetrics_ExposesTokenizeCounters(t *testing.T) {
	h := server.NewHandler(newStub(), server.WithCacheSize(8))

	postTokenize(t, h, `{"text":"Xin chào."}`)
	postTokenize(t, h, `{"text":"Xin chào."}`)
	postTokenize(t, h, `{"text":`)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	h.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("want 200, got %d", rec.Code)
	}

	body := rec.Body.String()
	for _, want := range []string{
		`vntok_server_tokenize_requests_total{code="200"} 2`,
		`vntok_server_tokenize_requests_total{code="400"} 1`,
		`vntok_server_cache_lookups_total{result="hit"} 1`,
		`vntok_server_cache_lookups_total{result="miss"} 1`,
		`vntok_server_tokenize_duration_seconds_count 3`,
	} {
		if !strings.Contains(body, want) {
			t.Errorf("metrics output missing %q", want)
		}
	}
}
