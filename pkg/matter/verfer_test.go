// Copyright 2025 Certen Protocol

package matter

import (
	"crypto/ed25519"
	"crypto/rand"
	"testing"

	"github.com/certen/keri-core/pkg/coring"
	"github.com/decred/dcrd/dcrec/secp256k1/v4"
)

func TestVerferEd25519Shape(t *testing.T) {
	pub, _, err := ed25519.GenerateKey(rand.Reader)
	if err != nil {
		t.Fatalf("GenerateKey: %v", err)
	}
	v, err := NewVerfer(pub, coring.Ed25519N)
	if err != nil {
		t.Fatalf("NewVerfer: %v", err)
	}
	if v.Transferable() {
		t.Errorf("Ed25519N must not be transferable")
	}

	qb64, err := v.Qb64()
	if err != nil {
		t.Fatalf("Qb64: %v", err)
	}
	back, err := NewVerferFromQb64(qb64)
	if err != nil {
		t.Fatalf("NewVerferFromQb64: %v", err)
	}
	if back.Transferable() {
		t.Errorf("round-tripped Ed25519N must not be transferable")
	}
}

func TestVerferEd25519RejectsWrongLength(t *testing.T) {
	short := make([]byte, 16)
	if _, err := NewVerfer(short, coring.Ed25519N); err == nil {
		t.Fatalf("expected error for undersized ed25519 key, got nil")
	}
}

func TestVerferECDSA256k1Shape(t *testing.T) {
	priv, err := secp256k1.GeneratePrivateKey()
	if err != nil {
		t.Fatalf("GeneratePrivateKey: %v", err)
	}
	compressed := priv.PubKey().SerializeCompressed()
	x := compressed[1:] // drop the SEC1 sign-parity octet; raw is x-coordinate only

	v, err := NewVerfer(x, coring.ECDSA256k1)
	if err != nil {
		t.Fatalf("NewVerfer: %v", err)
	}
	if !v.Transferable() {
		t.Errorf("ECDSA256k1 must be transferable")
	}
}

func TestVerferECDSA256k1RejectsGarbage(t *testing.T) {
	garbage := make([]byte, 32)
	for i := range garbage {
		garbage[i] = 0xff
	}
	if _, err := NewVerfer(garbage, coring.ECDSA256k1N); err == nil {
		t.Fatalf("expected error for invalid secp256k1 point, got nil")
	}
}

func TestVerferECDSA256k1RejectsWrongLength(t *testing.T) {
	short := make([]byte, 20)
	if _, err := NewVerfer(short, coring.ECDSA256k1N); err == nil {
		t.Fatalf("expected error for undersized secp256k1 raw, got nil")
	}
}

func TestVerferRejectsNonVerificationCode(t *testing.T) {
	if _, err := NewVerfer(make([]byte, 32), coring.Blake3_256); err == nil {
		t.Fatalf("expected error for digest code passed as verification key, got nil")
	}
}
