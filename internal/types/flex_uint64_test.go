package types

import (
	"encoding/json"
	"testing"
)

func TestFlexUint64UnmarshalNumber(t *testing.T) {
	var f FlexUint64
	if err := json.Unmarshal([]byte(`42`), &f); err != nil {
		t.Fatalf("Unmarshal number failed: %v", err)
	}
	if f.Uint64() != 42 {
		t.Errorf("Expected 42, got %d", f.Uint64())
	}
}

func TestFlexUint64UnmarshalString(t *testing.T) {
	var f FlexUint64
	if err := json.Unmarshal([]byte(`"42"`), &f); err != nil {
		t.Fatalf("Unmarshal string failed: %v", err)
	}
	if f.Uint64() != 42 {
		t.Errorf("Expected 42, got %d", f.Uint64())
	}
}

func TestFlexUint64RejectsGarbage(t *testing.T) {
	var f FlexUint64
	if err := json.Unmarshal([]byte(`"abc"`), &f); err == nil {
		t.Error("Expected an error for a non-numeric string")
	}
	if err := json.Unmarshal([]byte(`true`), &f); err == nil {
		t.Error("Expected an error for a boolean")
	}
	if err := json.Unmarshal([]byte(`-1`), &f); err == nil {
		t.Error("Expected an error for a negative number")
	}
}

func TestFlexUint64Marshal(t *testing.T) {
	out, err := json.Marshal(FlexUint64(7))
	if err != nil {
		t.Fatalf("Marshal failed: %v", err)
	}
	if string(out) != "7" {
		t.Errorf("Expected 7, got %s", string(out))
	}
}
