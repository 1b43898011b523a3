// Copyright 2025 Certen Protocol

package matter

import (
	"bytes"
	"testing"

	"github.com/certen/keri-core/pkg/coring"
)

func TestCigarQb64RoundTrip(t *testing.T) {
	raw := bytes.Repeat([]byte{0x42}, 64)
	c, err := NewCigar(raw, coring.Ed25519Sig)
	if err != nil {
		t.Fatalf("NewCigar: %v", err)
	}
	qb64, err := c.Qb64()
	if err != nil {
		t.Fatalf("Qb64: %v", err)
	}
	if qb64[:2] != "0A" {
		t.Fatalf("qb64 = %q, want leading code 0A", qb64)
	}

	back, err := NewCigarFromQb64(qb64)
	if err != nil {
		t.Fatalf("NewCigarFromQb64: %v", err)
	}
	if !bytes.Equal(back.CryMat().Raw(), raw) {
		t.Errorf("round trip mismatch: got %x, want %x", back.CryMat().Raw(), raw)
	}
}

func TestCigarRejectsNonSignatureCode(t *testing.T) {
	if _, err := NewCigar(make([]byte, 32), coring.Ed25519N); err == nil {
		t.Fatalf("expected error for verification-key code passed as signature, got nil")
	}
}

func TestNewCigarFromQb64RejectsNonSignatureCode(t *testing.T) {
	mat, err := coring.NewCryMatFromRaw(make([]byte, 32), coring.Blake3_256)
	if err != nil {
		t.Fatalf("NewCryMatFromRaw: %v", err)
	}
	qb64, err := mat.Qb64()
	if err != nil {
		t.Fatalf("Qb64: %v", err)
	}
	if _, err := NewCigarFromQb64(qb64); err == nil {
		t.Fatalf("expected error wrapping a digest code as Cigar, got nil")
	}
}
