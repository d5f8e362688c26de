package logging

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
	"testing"
	"time"
)

func TestParseLevel(t *testing.T) {
	cases := map[string]LogLevel{
		"debug": LogLevelDebug,
		"WARN":  LogLevelWarn,
		"error": LogLevelError,
		"info":  LogLevelInfo,
		"":      LogLevelInfo,
		"junk":  LogLevelInfo,
	}
	for raw, want := range cases {
		if got := ParseLevel(raw); got != want {
			t.Errorf("ParseLevel(%q) = %s, want %s", raw, got, want)
		}
	}
}

func TestBotLogger_ContextualAttrs(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(&LoggerConfig{Level: LogLevelDebug, Format: "json", Output: &buf})

	logger.WithComponent("engine").WithTransport("tg").WithSession("tg_1").Info("hello")

	var entry map[string]any
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("log output is not JSON: %v (%s)", err, buf.String())
	}
	if entry["component"] != "engine" || entry["transport"] != "tg" || entry["session_id"] != "tg_1" {
		t.Fatalf("contextual attrs missing: %v", entry)
	}
	if entry["msg"] != "hello" {
		t.Fatalf("unexpected message: %v", entry["msg"])
	}
}

func TestBotLogger_LevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(&LoggerConfig{Level: LogLevelError, Format: "text", Output: &buf})

	logger.Info("suppressed")
	if buf.Len() != 0 {
		t.Fatalf("info should be suppressed at error level: %s", buf.String())
	}

	logger.Error("kept", "answer", 42)
	if !strings.Contains(buf.String(), "kept") || !strings.Contains(buf.String(), "answer=42") {
		t.Fatalf("error output missing: %s", buf.String())
	}
}

// BotLogger must read args the same way SlogAdapter does: as alternating
// key/value attributes, not as printf verbs.
func TestBotLogger_ArgsBecomeAttrs(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(&LoggerConfig{Level: LogLevelInfo, Format: "json", Output: &buf, Component: "engine"})

	logger.Error("Turn failed", "event_id", "ev-1", "session_id", "tg_1", "error", "boom")

	var entry map[string]any
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("log output is not JSON: %v (%s)", err, buf.String())
	}
	if entry["msg"] != "Turn failed" {
		t.Fatalf("message garbled: %v", entry["msg"])
	}
	if entry["event_id"] != "ev-1" || entry["session_id"] != "tg_1" || entry["error"] != "boom" {
		t.Fatalf("key/value args did not land as fields: %v", entry)
	}
	if strings.Contains(buf.String(), "%!") {
		t.Fatalf("printf artifacts in output: %s", buf.String())
	}
	if entry["component"] != "engine" {
		t.Fatalf("contextual attr lost alongside call args: %v", entry)
	}
}

func TestBotLogger_LogTurn(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(&LoggerConfig{Level: LogLevelInfo, Format: "json", Output: &buf})

	logger.LogTurn("vk_7", "QUESTION", 5*time.Millisecond, nil)
	logger.LogTurn("vk_7", "QUESTION", 5*time.Millisecond, fmt.Errorf("boom"))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 2 {
		t.Fatalf("expected 2 log lines, got %d", len(lines))
	}
	if !strings.Contains(lines[0], "Turn completed") {
		t.Errorf("success line unexpected: %s", lines[0])
	}
	if !strings.Contains(lines[1], "Turn failed") || !strings.Contains(lines[1], "boom") {
		t.Errorf("failure line unexpected: %s", lines[1])
	}
}

func TestNoOpLogger_Discards(t *testing.T) {
	var l Logger = NoOpLogger{}
	l.Debug("a")
	l.Info("b")
	l.Warn("c")
	l.Error("d")
}
