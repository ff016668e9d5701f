package pkg

import (
	"encoding/json"
	"testing"
)

func TestFlexString(t *testing.T) {
	var v struct {
		A FlexString `json:"a"`
		B FlexString `json:"b"`
		C FlexString `json:"c"`
		D FlexString `json:"d"`
	}
	if err := json.Unmarshal([]byte(`{"a":12345,"b":" abc ","c":null,"d":"58000.0"}`), &v); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if v.A != "12345" || v.B != "abc" || v.C != "" {
		t.Fatalf("unexpected values: %+v", v)
	}
	if n, ok := v.A.Int64(); !ok || n != 12345 {
		t.Fatalf("expected 12345, got %d ok=%v", n, ok)
	}
	if n, ok := v.D.Int64(); !ok || n != 58000 {
		t.Fatalf("expected 58000, got %d ok=%v", n, ok)
	}
	if _, ok := v.B.Int64(); ok {
		t.Fatalf("non-numeric value must not parse")
	}

	if err := json.Unmarshal([]byte(`{"a":{}}`), &v); err == nil {
		t.Fatalf("expected error for object value")
	}
}
