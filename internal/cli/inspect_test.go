package cli

import (
	"encoding/json"
	"strings"
	"testing"
)

func TestInspectText(t *testing.T) {
	out, err := executeCommand("inspect", "3BHK", "flat", "for", "rent", "in", "Indiranagar,", "rent", "25000")
	if err != nil {
		t.Fatalf("inspect: %v", err)
	}

	for _, want := range []string{"Noise:     relevant", "Type:      rent", "Indiranagar", "₹25,000", "Status:    complete"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestInspectJSON(t *testing.T) {
	out, err := executeCommand("--format", "json", "inspect", "Hi everyone")
	if err != nil {
		t.Fatalf("inspect: %v", err)
	}

	var res inspectResult
	if err := json.Unmarshal([]byte(out), &res); err != nil {
		t.Fatalf("decoding: %v\n%s", err, out)
	}
	if res.Relevant || res.Reason != "greeting" {
		t.Errorf("result = %+v, want dropped greeting", res)
	}
}

func TestInspectRequiresText(t *testing.T) {
	if _, err := executeCommand("inspect"); err == nil {
		t.Fatal("expected error when no text provided")
	}
}
