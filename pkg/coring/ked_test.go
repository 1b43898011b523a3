// Copyright 2025 Certen Protocol

package coring

import "testing"

func TestKedPreservesInsertionOrder(t *testing.T) {
	k := NewKed().Set("vs", "x").Set("id", "y").Set("sn", "z")
	want := []string{"vs", "id", "sn"}
	got := k.Keys()
	if len(got) != len(want) {
		t.Fatalf("Keys() = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Keys()[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestKedSetOverwritesInPlace(t *testing.T) {
	k := NewKed().Set("a", 1).Set("b", 2).Set("a", 99)
	if k.Len() != 2 {
		t.Fatalf("Len() = %d, want 2", k.Len())
	}
	want := []string{"a", "b"}
	got := k.Keys()
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Keys()[%d] = %q, want %q (overwrite must not reorder)", i, got[i], want[i])
		}
	}
	v, _ := k.Get("a")
	if v != 99 {
		t.Errorf("Get(a) = %v, want 99", v)
	}
}

func TestKedEqualIgnoresOrder(t *testing.T) {
	a := NewKed().Set("vs", "x").Set("id", "y")
	b := NewKed().Set("id", "y").Set("vs", "x")
	if !a.Equal(b) {
		t.Errorf("Equal should ignore field order")
	}
}

func TestKedEqualNumericAware(t *testing.T) {
	a := NewKed().Set("sn", int64(1))
	b := NewKed().Set("sn", float64(1))
	if !a.Equal(b) {
		t.Errorf("Equal should treat numerically-equal cross-kind values as equal")
	}
}

func TestKedEqualNested(t *testing.T) {
	a := NewKed().Set("a", []any{int64(1), "x", NewKed().Set("k", "v")})
	b := NewKed().Set("a", []any{float64(1), "x", NewKed().Set("k", "v")})
	if !a.Equal(b) {
		t.Errorf("Equal should recurse into nested Ked and []any values")
	}
}

func TestKedEqualDetectsDifference(t *testing.T) {
	a := NewKed().Set("a", "x")
	b := NewKed().Set("a", "y")
	if a.Equal(b) {
		t.Errorf("Equal should detect differing values")
	}
	c := NewKed().Set("a", "x").Set("b", "extra")
	if a.Equal(c) {
		t.Errorf("Equal should detect differing field counts")
	}
}

func TestKedMustStringErrors(t *testing.T) {
	k := NewKed().Set("n", 5)
	if _, err := k.MustString("missing"); err == nil {
		t.Errorf("expected error for missing field")
	}
	if _, err := k.MustString("n"); err == nil {
		t.Errorf("expected error for non-string field")
	}
}

func TestJSONEncodeDecodeRoundTrip(t *testing.T) {
	k := NewKed().Set("vs", "KERI10JSON000000_").Set("id", "ABCDEFG").Set("sn", "0001").
		Set("tags", []any{"a", "b"}).
		Set("nested", NewKed().Set("x", int64(1)).Set("y", "z"))

	raw, err := EncodeJSON(k)
	if err != nil {
		t.Fatalf("EncodeJSON: %v", err)
	}

	back, err := DecodeJSON(raw)
	if err != nil {
		t.Fatalf("DecodeJSON: %v", err)
	}
	if !back.Equal(k) {
		t.Errorf("round trip mismatch: got %+v from %q", back, raw)
	}
	if back.Keys()[0] != "vs" {
		t.Errorf("decoded field order: got %v, want vs first", back.Keys())
	}
}

func TestJSONEncodeDoesNotHTMLEscape(t *testing.T) {
	k := NewKed().Set("s", "<a>&</a>")
	raw, err := EncodeJSON(k)
	if err != nil {
		t.Fatalf("EncodeJSON: %v", err)
	}
	want := `{"s":"<a>&</a>"}`
	if string(raw) != want {
		t.Errorf("EncodeJSON = %q, want %q (HTML characters must not be escaped)", raw, want)
	}
}

func TestJSONEncodePassesNonASCIIThrough(t *testing.T) {
	k := NewKed().Set("s", "héllo 世界")
	raw, err := EncodeJSON(k)
	if err != nil {
		t.Fatalf("EncodeJSON: %v", err)
	}
	back, err := DecodeJSON(raw)
	if err != nil {
		t.Fatalf("DecodeJSON: %v", err)
	}
	v, _ := back.Get("s")
	if v != "héllo 世界" {
		t.Errorf("round trip mismatch: got %q", v)
	}
}
