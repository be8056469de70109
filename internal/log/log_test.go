package log

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/rs/zerolog"
)

func TestNewJSONLogger_WritesLevelAndMessage(t *testing.T) {
	var buf bytes.Buffer
	logger := NewJSONLogger(&buf, "debug")
	logger.Info().Str("foo", "bar").Msg("hello")

	var out map[string]any
	if err := json.Unmarshal(buf.Bytes(), &out); err != nil {
		t.Fatalf("output is not valid JSON: %v (%q)", err, buf.String())
	}
	if out["message"] != "hello" {
		t.Errorf("message = %v, want hello", out["message"])
	}
	if out["foo"] != "bar" {
		t.Errorf("foo = %v, want bar", out["foo"])
	}
}

func TestNewJSONLogger_RespectsLevel(t *testing.T) {
	var buf bytes.Buffer
	logger := NewJSONLogger(&buf, "warn")
	logger.Debug().Msg("should not appear")
	logger.Info().Msg("should not appear either")

	if buf.Len() != 0 {
		t.Errorf("expected no output below configured level, got %q", buf.String())
	}

	logger.Warn().Msg("should appear")
	if !strings.Contains(buf.String(), "should appear") {
		t.Error("expected warn-level message to be written")
	}
}

func TestParseLevel_UnknownDefaultsToInfo(t *testing.T) {
	if parseLevel("nonsense") != parseLevel("info") {
		t.Error("unknown level string should default to info")
	}
}

func TestWithComponent_SetsField(t *testing.T) {
	var buf bytes.Buffer
	Logger = NewJSONLogger(&buf, "debug")

	WithComponent("testcomp").Info().Msg("ping")

	var out map[string]any
	if err := json.Unmarshal(buf.Bytes(), &out); err != nil {
		t.Fatalf("output is not valid JSON: %v", err)
	}
	if out["component"] != "testcomp" {
		t.Errorf("component = %v, want testcomp", out["component"])
	}
}

func TestInitComponentLoggers_CoversEverySubsystem(t *testing.T) {
	var buf bytes.Buffer
	Logger = NewJSONLogger(&buf, "debug")
	initComponentLoggers()

	subsystems := []struct {
		name   string
		logger zerolog.Logger
	}{
		{"chain", Chain},
		{"mempool", Mempool},
		{"miner", Miner},
		{"generator", Generator},
		{"gossip", Gossip},
		{"p2p", P2P},
		{"identity", Identity},
		{"wallet", Wallet},
		{"storage", Storage},
	}

	for _, s := range subsystems {
		buf.Reset()
		s.logger.Info().Msg("check")

		var out map[string]any
		if err := json.Unmarshal(buf.Bytes(), &out); err != nil {
			t.Fatalf("%s: output is not valid JSON: %v", s.name, err)
		}
		if out["component"] != s.name {
			t.Errorf("%s logger: component = %v, want %s", s.name, out["component"], s.name)
		}
	}
}
