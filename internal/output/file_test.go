package output

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"synthcheck/internal/rules"
)

func TestFileSinkInfersFormat(t *testing.T) {
	dir := t.TempDir()

	tests := []struct {
		name    string
		file    string
		format  string
		wantErr bool
	}{
		{name: "json extension", file: "out.json"},
		{name: "ndjson extension", file: "out.ndjson"},
		{name: "jsonl extension", file: "out.jsonl"},
		{name: "unknown extension", file: "out.txt", wantErr: true},
		{name: "explicit format overrides extension", file: "out.dat", format: "json"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sink, err := NewFileSink(filepath.Join(dir, tt.file), tt.format)
			if (err != nil) != tt.wantErr {
				t.Fatalf("NewFileSink err = %v, wantErr %v", err, tt.wantErr)
			}
			if sink != nil {
				sink.Close()
			}
		})
	}
}

func TestFileSinkWritesAggregate(t *testing.T) {
	path := filepath.Join(t.TempDir(), "reports.json")
	sink, err := NewFileSink(path, "")
	if err != nil {
		t.Fatalf("NewFileSink: %v", err)
	}

	if err := sink.Write(sampleReport("Example", 80, rules.OverallCompliant)); err != nil {
		t.Fatalf("Write: %v", err)
	}
	if err := sink.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	var decoded []PlatformReport
	if err := json.Unmarshal(raw, &decoded); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if len(decoded) != 1 || decoded[0].OverallScore != 80 {
		t.Fatalf("decoded = %+v", decoded)
	}
}

func TestFileSinkNDJSONStreams(t *testing.T) {
	path := filepath.Join(t.TempDir(), "stream.ndjson")
	sink, err := NewFileSink(path, "")
	if err != nil {
		t.Fatalf("NewFileSink: %v", err)
	}

	if err := sink.Write(Event{Type: "run.started"}); err != nil {
		t.Fatalf("Write: %v", err)
	}
	if err := sink.Write(sampleReport("Example", 20, rules.OverallNonCompliant)); err != nil {
		t.Fatalf("Write: %v", err)
	}
	if err := sink.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(string(raw)), "\n")
	if len(lines) != 2 {
		t.Fatalf("got %d lines, want 2", len(lines))
	}
}

func TestFileSinkRequiresPath(t *testing.T) {
	if _, err := NewFileSink("", "json"); err == nil {
		t.Fatal("expected error for empty path")
	}
}
