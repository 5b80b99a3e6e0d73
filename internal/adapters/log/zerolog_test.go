package log

import (
	"bytes"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/bft-labs/wallbridge/internal/domain"
	"github.com/bft-labs/wallbridge/internal/ports"
)

func decodeLine(t *testing.T, buf *bytes.Buffer) map[string]interface{} {
	t.Helper()
	var m map[string]interface{}
	if err := json.Unmarshal(buf.Bytes(), &m); err != nil {
		t.Fatalf("decode log line %q: %v", buf.String(), err)
	}
	return m
}

func TestZerologAdapter_Fields(t *testing.T) {
	var buf bytes.Buffer
	a := NewZerologAdapterWithLogger(zerolog.New(&buf))

	a.Warn("bridge anomaly",
		ports.String("surface", "S1"),
		ports.Int("connections", 2),
		ports.Bool("visible", true),
		ports.Duration("elapsed", 1500*time.Millisecond),
		ports.Err(errors.New("boom")),
		ports.Any("anomaly", domain.AnomalyResizeDetached),
	)

	m := decodeLine(t, &buf)
	if m["level"] != "warn" {
		t.Errorf("level = %v, want warn", m["level"])
	}
	if m["message"] != "bridge anomaly" {
		t.Errorf("message = %v, want bridge anomaly", m["message"])
	}
	if m["surface"] != "S1" {
		t.Errorf("surface = %v, want S1", m["surface"])
	}
	if m["connections"] != float64(2) {
		t.Errorf("connections = %v, want 2", m["connections"])
	}
	if m["visible"] != true {
		t.Errorf("visible = %v, want true", m["visible"])
	}
	if m["error"] != "boom" {
		t.Errorf("error = %v, want boom", m["error"])
	}
	if m["anomaly"] != "resize_detached" {
		t.Errorf("anomaly = %v, want resize_detached", m["anomaly"])
	}
}

func TestZerologAdapter_DisabledLevel(t *testing.T) {
	var buf bytes.Buffer
	a := NewZerologAdapterWithLogger(zerolog.New(&buf).Level(zerolog.InfoLevel))

	a.Debug("dropped", ports.String("k", "v"))

	if buf.Len() != 0 {
		t.Errorf("debug entry written at info level: %q", buf.String())
	}
}

func TestZerologAdapter_With(t *testing.T) {
	var buf bytes.Buffer
	a := NewZerologAdapterWithLogger(zerolog.New(&buf)).With("renderer")

	a.Info("connected")

	m := decodeLine(t, &buf)
	if m["component"] != "renderer" {
		t.Errorf("component = %v, want renderer", m["component"])
	}
}

func TestNewNop(t *testing.T) {
	var l ports.Logger = NewNop()
	l.Debug("dropped")
	l.Error("dropped", ports.Err(errors.New("boom")))
	l.With("x")
}
