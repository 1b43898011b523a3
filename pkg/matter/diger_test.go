// Copyright 2025 Certen Protocol

package matter

import (
	"testing"

	"github.com/certen/keri-core/pkg/coring"
)

func TestDigestVerify(t *testing.T) {
	data := []byte("the quick brown fox jumps over the lazy dog")
	for _, code := range []coring.Code{coring.Blake3_256, coring.Blake2b_256, coring.Blake2s_256, coring.SHA3_256, coring.SHA2_256} {
		d, err := Digest(code, data)
		if err != nil {
			t.Fatalf("Digest(%s): %v", code, err)
		}
		ok, err := d.Verify(data)
		if err != nil {
			t.Fatalf("Verify(%s): %v", code, err)
		}
		if !ok {
			t.Errorf("Verify(%s) = false, want true", code)
		}
		ok, err = d.Verify([]byte("different data"))
		if err != nil {
			t.Fatalf("Verify(%s) on wrong data: %v", code, err)
		}
		if ok {
			t.Errorf("Verify(%s) on wrong data = true, want false", code)
		}
	}
}

func TestDigestRejectsNonDigestCode(t *testing.T) {
	if _, err := Digest(coring.Ed25519N, []byte("x")); err == nil {
		t.Fatalf("expected error for non-digest code, got nil")
	}
}

func TestDigerQb64RoundTrip(t *testing.T) {
	d, err := Digest(coring.Blake3_256, []byte("hello"))
	if err != nil {
		t.Fatalf("Digest: %v", err)
	}
	qb64, err := d.Qb64()
	if err != nil {
		t.Fatalf("Qb64: %v", err)
	}
	back, err := NewDigerFromQb64(qb64)
	if err != nil {
		t.Fatalf("NewDigerFromQb64: %v", err)
	}
	backQb64, err := back.Qb64()
	if err != nil {
		t.Fatalf("Qb64 on parsed Diger: %v", err)
	}
	if backQb64 != qb64 {
		t.Errorf("round trip mismatch: got %q, want %q", backQb64, qb64)
	}
}

func TestNewDigerFromQb64RejectsNonDigestCode(t *testing.T) {
	mat, err := coring.NewCryMatFromRaw(make([]byte, 32), coring.Ed25519N)
	if err != nil {
		t.Fatalf("NewCryMatFromRaw: %v", err)
	}
	qb64, err := mat.Qb64()
	if err != nil {
		t.Fatalf("Qb64: %v", err)
	}
	if _, err := NewDigerFromQb64(qb64); err == nil {
		t.Fatalf("expected error wrapping a non-digest code as Diger, got nil")
	}
}
