package main

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/example/vntok/internal/doctor"
	"github.com/example/vntok/internal/testutil"
)

func TestDoctorCmd_Passes(t *testing.T) {
	out, err := runRoot(t, "", "doctor")
	if err != nil {
		t.Fatalf("doctor: %v\n%s", err, out)
	}

	if !strings.Contains(out, "doctor checks passed") {
		t.Errorf("output missing success line:\n%s", out)
	}

	if !strings.Contains(out, "sample text:") {
		t.Errorf("output missing sample check:\n%s", out)
	}

	if strings.Contains(out, doctor.FailMark) {
		t.Errorf("output contains a failed check:\n%s", out)
	}
}

func TestDoctorCmd_BadLexiconFails(t *testing.T) {
	path := testutil.WriteFile(t, "lexicon.yaml", "entities:\n  - kind: BROKEN\n    pattern: '(['\n")

	_, err := runRoot(t, "", "--lexicon", path, "doctor")
	if err == nil {
		t.Fatal("doctor = nil; want failure for an uncompilable pattern")
	}
}

func TestDoctorCmd_RejectsNonPositiveTextLimit(t *testing.T) {
	_, err := runRoot(t, "", "--max-text-bytes", "0", "doctor")
	if err == nil {
		t.Fatal("doctor = nil; want failure for max-text-bytes 0")
	}
}

func TestDoctorCmd_ProbesServer(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	addr := srv.Listener.Addr().String()

	out, err := runRoot(t, "", "doctor", "--addr", addr)
	if err != nil {
		t.Fatalf("doctor: %v\n%s", err, out)
	}

	if !strings.Contains(out, "server: "+addr) {
		t.Errorf("output missing server line:\n%s", out)
	}
}

func TestHealthCmd(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	out, err := runRoot(t, "", "health", "--addr", srv.Listener.Addr().String())
	if err != nil {
		t.Fatalf("health: %v", err)
	}

	if out != "ok\n" {
		t.Errorf("output = %q; want ok", out)
	}
}

func TestHealthCmd_Unreachable(t *testing.T) {
	_, err := runRoot(t, "", "health", "--addr", "127.0.0.1:1")
	if err == nil {
		t.Fatal("health = nil; want error for unreachable server")
	}
}
