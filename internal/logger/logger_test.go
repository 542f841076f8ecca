package logger

import (
	"encoding/json"
	"errors"
	"io"
	"os"
	"strings"
	"testing"
)

// captureStdout runs f with os.Stdout redirected to a pipe and returns the output.
func captureStdout(t *testing.T, f func()) string {
	t.Helper()
	r, w, err := os.Pipe()
	if err != nil {
		t.Fatalf("pipe: %v", err)
	}
	orig := os.Stdout
	os.Stdout = w
	defer func() { os.Stdout = orig }()

	f()
	_ = w.Close()
	out, err := io.ReadAll(r)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	return string(out)
}

func TestNew_ServiceFieldAndJSON(t *testing.T) {
	out := captureStdout(t, func() {
		log := New("avatimes-test")
		log.Info().Str("k", "v").Msg("hello")
	})

	var event map[string]any
	if err := json.Unmarshal([]byte(strings.TrimSpace(out)), &event); err != nil {
		t.Fatalf("output is not JSON: %v\n%s", err, out)
	}
	if event["service"] != "avatimes-test" || event["k"] != "v" || event["message"] != "hello" {
		t.Fatalf("unexpected event: %v", event)
	}
}

func TestNew_ErrorStack(t *testing.T) {
	out := captureStdout(t, func() {
		log := New("avatimes-test")
		log.Error().Stack().Err(errors.New("boom")).Msg("failed")
	})
	if !strings.Contains(out, "stack") {
		t.Fatalf("expected stack field in error event: %s", out)
	}
}

func TestNew_LevelFromEnv(t *testing.T) {
	t.Setenv("AVATIMES_LOG_LEVEL", "warn")
	out := captureStdout(t, func() {
		log := New("avatimes-test")
		log.Info().Msg("quiet")
		log.Warn().Msg("loud")
	})
	if strings.Contains(out, "quiet") || !strings.Contains(out, "loud") {
		t.Fatalf("level filter not applied: %s", out)
	}
}
