package monitoring

import (
	"bytes"
	"fmt"
	"strings"
	"testing"
)

func TestSetLogger(t *testing.T) {
	original := Logf
	defer func() { Logf = original }()

	var got string
	SetLogger(func(format string, v ...interface{}) {
		got = fmt.Sprintf(format, v...)
	})
	Logf("sensor %s degraded", "gpu_rays")
	if got != "sensor gpu_rays degraded" {
		t.Errorf("logged %q", got)
	}

	// nil installs a no-op rather than panicking.
	got = ""
	SetLogger(nil)
	Logf("dropped %d", 1)
	if got != "" {
		t.Error("no-op logger still reached the previous sink")
	}
}

func TestLogfDefault(t *testing.T) {
	if Logf == nil {
		t.Fatal("Logf must have a usable default")
	}
}

func TestDebugWriter(t *testing.T) {
	var buf bytes.Buffer
	SetDebugWriter(&buf)
	defer SetDebugWriter(nil)

	Debugf("scan took %dus", 42)
	if !strings.Contains(buf.String(), "scan took 42us") {
		t.Errorf("debug output %q missing message", buf.String())
	}

	SetDebugWriter(nil)
	n := buf.Len()
	Debugf("suppressed")
	if buf.Len() != n {
		t.Error("debug output written while disabled")
	}
}
