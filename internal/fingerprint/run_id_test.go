package fingerprint

import (
	"testing"
	"time"
)

func TestComputeRunID(t *testing.T) {
	at := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	got := ComputeRunID("paramset123", at)

	if len(got) != 64 {
		t.Errorf("ComputeRunID() length = %d, want 64", len(got))
	}

	// Verify determinism: same inputs should produce same output
	got2 := ComputeRunID("paramset123", at)
	if got != got2 {
		t.Errorf("ComputeRunID() not deterministic: %s != %s", got, got2)
	}
}

func TestComputeRunID_DifferentInputs(t *testing.T) {
	at := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	base := ComputeRunID("paramset123", at)

	// Different parameter set should produce different ID
	if ComputeRunID("paramset456", at) == base {
		t.Error("Different parameter set should produce different ID")
	}

	// Different time should produce different ID
	if ComputeRunID("paramset123", at.Add(time.Second)) == base {
		t.Error("Different time should produce different ID")
	}

	// Sub-second precision does not change the ID
	if ComputeRunID("paramset123", at.Add(100*time.Millisecond)) != base {
		t.Error("Sub-second change should map to same ID")
	}
}
