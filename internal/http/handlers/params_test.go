package handlers

import (
	"encoding/json"
	"testing"
)

func TestParseID(t *testing.T) {
	tests := []struct {
		raw  string
		want int64
		ok   bool
	}{
		{"12", 12, true},
		{" 7 ", 7, true},
		{"0", 0, false},
		{"-3", 0, false},
		{"abc", 0, false},
		{"", 0, false},
	}
	for _, tc := range tests {
		got, ok := parseID(tc.raw)
		if got != tc.want || ok != tc.ok {
			t.Fatalf("parseID(%q) = %d, %v; want %d, %v", tc.raw, got, ok, tc.want, tc.ok)
		}
	}
}

func TestFlexInt(t *testing.T) {
	var body struct {
		A flexInt `json:"a"`
		B flexInt `json:"b"`
		C flexInt `json:"c"`
		D flexInt `json:"d"`
	}
	if err := json.Unmarshal([]byte(`{"a":5,"b":"6","c":null}`), &body); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if !body.A.Set || body.A.Value != 5 {
		t.Fatalf("a = %+v", body.A)
	}
	if !body.B.Set || body.B.Value != 6 {
		t.Fatalf("b = %+v", body.B)
	}
	if body.C.Set || body.D.Set {
		t.Fatalf("null and missing should stay unset: %+v %+v", body.C, body.D)
	}
	if p := body.B.ptr(); p == nil || *p != 6 {
		t.Fatalf("b.ptr() = %v, want 6", p)
	}
	if body.C.ptr() != nil {
		t.Fatal("unset value should give a nil pointer")
	}

	if err := json.Unmarshal([]byte(`{"a":"x1"}`), &body); err == nil {
		t.Fatal("expected error for non numeric string")
	}
	if err := json.Unmarshal([]byte(`{"a":1.5}`), &body); err == nil {
		t.Fatal("expected error for fractional number")
	}
}
