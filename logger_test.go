package ringmap

import (
	"bytes"
	"strings"
	"testing"

	"github.com/hashicorp/go-hclog"
)

func newTestLogger(buf *bytes.Buffer) hclog.Logger {
	return hclog.New(&hclog.LoggerOptions{
		Name:       "test",
		Level:      hclog.Trace,
		Output:     buf,
		JSONFormat: true,
	})
}

func TestMap_LogsDiagnostics(t *testing.T) {
	var buf bytes.Buffer
	m := newStringMap(WithLogger(newTestLogger(&buf)), WithMaxSize(1))
	if !strings.Contains(buf.String(), `"@message":"map created"`) {
		t.Fatalf("missing creation log: %s", buf.String())
	}
	if !strings.Contains(buf.String(), `"@module":"test.ringmap"`) {
		t.Fatalf("logger not named: %s", buf.String())
	}

	m.Insert("a", 1)
	buf.Reset()
	if _, _, err := m.TryInsert("b", 2); err == nil {
		t.Fatalf("expected ErrMapFull")
	}
	if !strings.Contains(buf.String(), `"@level":"warn"`) {
		t.Fatalf("missing warn log: %s", buf.String())
	}

	buf.Reset()
	func() {
		defer func() { _ = recover() }()
		m.End().Value()
	}()
	if !strings.Contains(buf.String(), `"@level":"error"`) ||
		!strings.Contains(buf.String(), "contract violation") {
		t.Fatalf("missing error log: %s", buf.String())
	}

	buf.Reset()
	m.Clear()
	if !strings.Contains(buf.String(), `"removed":1`) {
		t.Fatalf("missing clear log: %s", buf.String())
	}
}

func TestMap_DefaultLoggerIsSilent(t *testing.T) {
	m := newStringMap()
	m.Insert("a", 1)
	m.Clear()
	if m.logger == nil {
		t.Fatalf("default logger must be set")
	}
}
