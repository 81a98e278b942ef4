package output

import (
	"fmt"
	"testing"
)

type recordingSink struct {
	writes int
	closed bool
	fail   bool
}

func (r *recordingSink) Write(v any) error {
	if r.fail {
		return fmt.Errorf("sink write failed")
	}
	r.writes++
	return nil
}

func (r *recordingSink) Close() error {
	r.closed = true
	return nil
}

func TestManagerFanOut(t *testing.T) {
	m := NewManager()
	a := &recordingSink{}
	b := &recordingSink{}
	if err := m.AddSink(a); err != nil {
		t.Fatalf("AddSink: %v", err)
	}
	if err := m.AddSink(b); err != nil {
		t.Fatalf("AddSink: %v", err)
	}

	if err := m.Write(PlatformReport{PlatformName: "X"}); err != nil {
		t.Fatalf("Write: %v", err)
	}
	if a.writes != 1 || b.writes != 1 {
		t.Fatalf("writes = %d/%d, want 1/1", a.writes, b.writes)
	}

	if err := m.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
	if !a.closed || !b.closed {
		t.Fatal("sinks not closed")
	}
}

func TestManagerCollectsWriteErrors(t *testing.T) {
	m := NewManager()
	healthy := &recordingSink{}
	if err := m.AddSink(&recordingSink{fail: true}); err != nil {
		t.Fatalf("AddSink: %v", err)
	}
	if err := m.AddSink(healthy); err != nil {
		t.Fatalf("AddSink: %v", err)
	}

	if err := m.Write(PlatformReport{}); err == nil {
		t.Fatal("expected aggregated write error")
	}
	if healthy.writes != 1 {
		t.Fatal("healthy sink must still receive the write")
	}
}

func TestManagerRejectsNilSink(t *testing.T) {
	if err := NewManager().AddSink(nil); err == nil {
		t.Fatal("expected error for nil sink")
	}
}
