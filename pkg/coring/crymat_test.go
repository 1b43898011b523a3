// Copyright 2025 Certen Protocol

package coring

import (
	"bytes"
	"errors"
	"testing"
)

func TestCryMatRawQb64RoundTrip(t *testing.T) {
	raw := bytes.Repeat([]byte{0x5a}, 32) // pad class 1 -> Ed25519N
	m, err := NewCryMatFromRaw(raw, Ed25519N)
	if err != nil {
		t.Fatalf("NewCryMatFromRaw: %v", err)
	}

	qb64, err := m.Qb64()
	if err != nil {
		t.Fatalf("Qb64: %v", err)
	}
	if qb64[0] != 'A' {
		t.Fatalf("qb64 = %q, want leading code 'A'", qb64)
	}

	back, err := NewCryMatFromQb64(qb64)
	if err != nil {
		t.Fatalf("NewCryMatFromQb64: %v", err)
	}
	if back.Code() != m.Code() || !bytes.Equal(back.Raw(), m.Raw()) {
		t.Errorf("round trip mismatch: got code=%q raw=%x, want code=%q raw=%x",
			back.Code(), back.Raw(), m.Code(), m.Raw())
	}
}

func TestCryMatTwoCharCodeRoundTrip(t *testing.T) {
	raw := bytes.Repeat([]byte{0x11}, 64) // pad class 2 -> Ed25519Sig
	m, err := NewCryMatFromRaw(raw, Ed25519Sig)
	if err != nil {
		t.Fatalf("NewCryMatFromRaw: %v", err)
	}

	qb64, err := m.Qb64()
	if err != nil {
		t.Fatalf("Qb64: %v", err)
	}
	if qb64[:2] != "0A" {
		t.Fatalf("qb64 = %q, want leading code '0A'", qb64)
	}

	back, err := NewCryMatFromQb64(qb64)
	if err != nil {
		t.Fatalf("NewCryMatFromQb64: %v", err)
	}
	if back.Code() != Ed25519Sig || !bytes.Equal(back.Raw(), raw) {
		t.Errorf("round trip mismatch: got code=%q raw=%x", back.Code(), back.Raw())
	}
}

func TestCryMatQb64Qb2RoundTrip(t *testing.T) {
	raw := bytes.Repeat([]byte{0xaa, 0xbb, 0xcc}, 11) // 33 bytes, pad class 0 excluded; use 32
	raw = raw[:32]
	m, err := NewCryMatFromRaw(raw, Blake3_256)
	if err != nil {
		t.Fatalf("NewCryMatFromRaw: %v", err)
	}

	qb64, err := m.Qb64()
	if err != nil {
		t.Fatalf("Qb64: %v", err)
	}
	qb2, err := m.Qb2()
	if err != nil {
		t.Fatalf("Qb2: %v", err)
	}

	back, err := NewCryMatFromQb2(qb2)
	if err != nil {
		t.Fatalf("NewCryMatFromQb2: %v", err)
	}
	if back.Code() != m.Code() || !bytes.Equal(back.Raw(), m.Raw()) {
		t.Errorf("qb2 round trip mismatch: got code=%q raw=%x", back.Code(), back.Raw())
	}

	backQb64, err := back.Qb64()
	if err != nil {
		t.Fatalf("Qb64 on qb2-reconstructed CryMat: %v", err)
	}
	if backQb64 != qb64 {
		t.Errorf("qb64 mismatch after qb2 round trip: got %q, want %q", backQb64, qb64)
	}
}

func TestCryMatFromRawRejectsPadMismatch(t *testing.T) {
	raw := bytes.Repeat([]byte{0x01}, 32)       // pad class 1
	_, err := NewCryMatFromRaw(raw, Ed25519Sig) // pad class 2 code
	if err == nil {
		t.Fatalf("expected error for pad-class mismatch, got nil")
	}
}

func TestCryMatFromRawNilIsErrNoSource(t *testing.T) {
	_, err := NewCryMatFromRaw(nil, Ed25519N)
	if !errors.Is(err, ErrNoSource) {
		t.Errorf("expected ErrNoSource, got %v", err)
	}
	_, err = NewCryMatFromQb64("")
	if !errors.Is(err, ErrNoSource) {
		t.Errorf("expected ErrNoSource, got %v", err)
	}
	_, err = NewCryMatFromQb2(nil)
	if !errors.Is(err, ErrNoSource) {
		t.Errorf("expected ErrNoSource, got %v", err)
	}
}

func TestCryMatMalformedQb64(t *testing.T) {
	cases := []string{
		"Z" + "AAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAA", // 'Z' is not a one-char code
		"0Z" + "AAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAA", // '0Z' is not a two-char code
		"0",                                                 // too short after selector
	}
	for _, c := range cases {
		if _, err := NewCryMatFromQb64(c); err == nil {
			t.Errorf("expected error for malformed qb64 %q, got nil", c)
		}
	}
}
