package log

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"
)

func TestZerologAdapter_Fields(t *testing.T) {
	var buf bytes.Buffer
	logger := NewZerologAdapterWithLogger(NewConsoleLogger(&buf, zerolog.DebugLevel, true))

	logger.Info("move accepted",
		Int("source", 3),
		Ints("sown", []int{4, 5}),
		Bool("capture", true),
		String("player", "Red"),
		Duration("delay", 300*time.Millisecond),
		Err(errors.New("boom")),
	)

	var got map[string]interface{}
	if err := json.Unmarshal(buf.Bytes(), &got); err != nil {
		t.Fatalf("unmarshal %q: %v", buf.String(), err)
	}
	if got["message"] != "move accepted" {
		t.Errorf("message = %v, want move accepted", got["message"])
	}
	if got["level"] != "info" {
		t.Errorf("level = %v, want info", got["level"])
	}
	if got["source"] != float64(3) {
		t.Errorf("source = %v, want 3", got["source"])
	}
	if got["capture"] != true {
		t.Errorf("capture = %v, want true", got["capture"])
	}
	if got["player"] != "Red" {
		t.Errorf("player = %v, want Red", got["player"])
	}
	if got["error"] != "boom" {
		t.Errorf("error = %v, want boom", got["error"])
	}
}

func TestZerologAdapter_With(t *testing.T) {
	var buf bytes.Buffer
	base := NewZerologAdapterWithLogger(NewConsoleLogger(&buf, zerolog.InfoLevel, true))

	scoped := base.With(String("game", "g-1"))
	scoped.Warn("restart")

	if !strings.Contains(buf.String(), `"game":"g-1"`) {
		t.Errorf("output %q missing game field", buf.String())
	}
}

func TestZerologAdapter_LevelFilter(t *testing.T) {
	var buf bytes.Buffer
	logger := NewZerologAdapterWithLogger(NewConsoleLogger(&buf, zerolog.InfoLevel, true))

	logger.Debug("hidden", Int("n", 1))

	if buf.Len() != 0 {
		t.Errorf("debug message written at info level: %q", buf.String())
	}
}

func TestOrNoop(t *testing.T) {
	if _, ok := OrNoop(nil).(NoopLogger); !ok {
		t.Error("OrNoop(nil) should return NoopLogger")
	}
	l := NewZerologAdapterWithLogger(zerolog.Nop())
	if OrNoop(l) != Logger(l) {
		t.Error("OrNoop should return the given logger")
	}
}
