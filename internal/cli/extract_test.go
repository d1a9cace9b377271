package cli

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/anerudhh/realistly/internal/listing"
)

const sampleTranscript = "[1/1/24, 10:00] John: 3BHK flat for rent in Indiranagar, rent 25000, 9876543210\n" +
	"[1/1/24, 10:01] Ravi: Hi everyone\n" +
	"[1/1/24, 10:02] Asha: Villa for sale in Whitefield\n" +
	"Price 1.2 cr\n"

func TestExtractWritesJSON(t *testing.T) {
	input := writeTranscript(t, sampleTranscript)
	output := filepath.Join(t.TempDir(), "out.json")

	out, err := executeCommand("extract", input, "--out", output)
	if err != nil {
		t.Fatalf("extract: %v", err)
	}

	for _, want := range []string{"Parsed messages: 3", "Saved 2 relevant listings", "greeting", "Sample:"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}

	data, err := os.ReadFile(output)
	if err != nil {
		t.Fatalf("reading output: %v", err)
	}
	var records []listing.Record
	if err := json.Unmarshal(data, &records); err != nil {
		t.Fatalf("decoding output: %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("records = %d, want 2", len(records))
	}
	if records[0].Sender != "John" || records[0].Status != listing.StatusComplete {
		t.Errorf("first record = %+v", records[0])
	}
	if records[1].ListingType != listing.TypeSell {
		t.Errorf("second listing_type = %q, want sell", records[1].ListingType)
	}
}

func TestExtractJSONSummary(t *testing.T) {
	input := writeTranscript(t, sampleTranscript)
	dir := t.TempDir()
	output := filepath.Join(dir, "out.json")
	csvPath := filepath.Join(dir, "out.csv")

	out, err := executeCommand("--format", "json", "extract", input, "--out", output, "--csv", csvPath, "--sample", "1")
	if err != nil {
		t.Fatalf("extract: %v", err)
	}

	var summary extractSummary
	if err := json.Unmarshal([]byte(out), &summary); err != nil {
		t.Fatalf("decoding summary: %v\n%s", err, out)
	}
	if summary.Parsed != 3 || summary.Saved != 2 {
		t.Errorf("summary = %+v", summary)
	}
	if summary.Dropped["greeting"] != 1 {
		t.Errorf("dropped = %v", summary.Dropped)
	}
	if len(summary.Sample) != 1 {
		t.Errorf("sample = %d records, want 1", len(summary.Sample))
	}

	csvData, err := os.ReadFile(csvPath)
	if err != nil {
		t.Fatalf("reading csv: %v", err)
	}
	if !strings.HasPrefix(string(csvData), strings.Join(listing.Columns, ",")+"\n") {
		t.Errorf("csv header missing:\n%s", csvData)
	}
}

func TestExtractMissingInput(t *testing.T) {
	dir := t.TempDir()
	output := filepath.Join(dir, "out.json")

	_, err := executeCommand("extract", filepath.Join(dir, "missing.txt"), "--out", output)
	if err == nil {
		t.Fatal("expected error for missing transcript")
	}
	if !strings.Contains(err.Error(), "reading transcript") {
		t.Errorf("error = %v", err)
	}
	if _, statErr := os.Stat(output); !errors.Is(statErr, os.ErrNotExist) {
		t.Error("output must not be written when input is missing")
	}
}

func TestExtractUnwritableOutput(t *testing.T) {
	input := writeTranscript(t, sampleTranscript)
	blocker := filepath.Join(t.TempDir(), "file")
	if err := os.WriteFile(blocker, nil, 0o644); err != nil {
		t.Fatal(err)
	}

	_, err := executeCommand("extract", input, "--out", filepath.Join(blocker, "out.json"))
	if err == nil {
		t.Fatal("expected error for unwritable output")
	}
}

func TestExtractBadConfig(t *testing.T) {
	input := writeTranscript(t, sampleTranscript)
	dir := t.TempDir()
	cfgPath := filepath.Join(dir, "bad.yaml")
	if err := os.WriteFile(cfgPath, []byte("classifier:\n  offers: []\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	_, err := executeCommand("--config", cfgPath, "extract", input, "--out", filepath.Join(dir, "out.json"))
	if err == nil || !strings.Contains(err.Error(), "invalid config") {
		t.Errorf("error = %v, want invalid config", err)
	}
}

func TestExtractProgress(t *testing.T) {
	input := writeTranscript(t, sampleTranscript)
	output := filepath.Join(t.TempDir(), "out.json")

	if _, err := executeCommand("extract", input, "--out", output, "--progress"); err != nil {
		t.Fatalf("extract: %v", err)
	}
	if _, err := os.Stat(output); err != nil {
		t.Errorf("output not written: %v", err)
	}
}

func TestExtractRejectsExtraArgs(t *testing.T) {
	_, err := executeCommand("extract", "a.txt", "b.txt")
	if err == nil {
		t.Fatal("expected error for two transcripts")
	}
}

func TestOutputWriters(t *testing.T) {
	tests := []struct {
		name string
		opts extractOptions
		want int
	}{
		{"json only", extractOptions{output: "out.json"}, 1},
		{"json and csv", extractOptions{output: "out.json", csv: "out.csv"}, 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			writers := outputWriters(tt.opts)
			if len(writers) != tt.want {
				t.Fatalf("writers = %d, want %d", len(writers), tt.want)
			}
			if _, ok := writers[0].(*listing.JSONWriter); !ok {
				t.Errorf("first writer = %T, want *listing.JSONWriter", writers[0])
			}
		})
	}
}
