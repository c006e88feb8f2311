package progress

import (
	"bytes"
	"testing"
)

func TestCIReporterScan(t *testing.T) {
	var buf bytes.Buffer
	fn := Scan(&CIReporter{Out: &buf}, "indexing")
	for i := 1; i <= 2; i++ {
		fn(i, 2)
	}
	want := "Scanning 2 notes\n[1/2] indexing\n[2/2] indexing\nScan complete\n"
	if got := buf.String(); got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestNewReporterCI(t *testing.T) {
	t.Setenv("CI", "true")
	if _, ok := NewReporter().(*CIReporter); !ok {
		t.Error("expected CIReporter when CI is set")
	}
}

func TestTerminalReporterLifecycle(t *testing.T) {
	r := &TerminalReporter{}
	r.Update(1, "before start")
	r.Finish()
	r.Start(3)
	r.Update(2, "working")
	r.Finish()
}
