// Copyright 2025 Certen Protocol
//
// CryMat: fully qualified cryptographic material.
// Per spec section 4.2: a self-describing encoding that prefixes raw
// cryptographic octets with a derivation code and renders the whole as
// Base64-URL-safe text (qb64) or the equivalent binary (qb2). Grounded on
// coring.py's CryMat class; the pad/infil/exfil method split there maps
// directly onto PadCount/Qb64/exfilQb64 here.

package coring

import (
	"encoding/base64"
	"errors"
	"fmt"

	"github.com/certen/keri-core/pkg/kering"
)

// ErrNoSource is returned when CryMat construction is given none of
// raw+code, qb64, or qb2.
var ErrNoSource = errors.New("improper initialization: need raw, qb64, or qb2")

// ErrMalformedQb64 is returned when a qb64 string cannot be parsed: its
// leading character names neither a one-character code nor the two-
// character selector, or the decoded length does not match exactly.
var ErrMalformedQb64 = errors.New("improperly qualified material")

// CryMat is fully qualified cryptographic material: a derivation code
// paired with the raw octets it qualifies. Immutable once constructed.
type CryMat struct {
	code Code
	raw  []byte
}

// NewCryMatFromRaw validates that code's pad class matches raw's pad class
// and returns the qualified material. Returns a *kering.ValidationError if
// the pad classes disagree or code is not a member of any codex.
func NewCryMatFromRaw(raw []byte, code Code) (*CryMat, error) {
	if raw == nil {
		return nil, ErrNoSource
	}
	pad := PadCount(len(raw))
	ok := (pad == 1 && InOneCodex(code)) ||
		(pad == 2 && InTwoCodex(code)) ||
		(pad == 0 && InFourCodex(code))
	if !ok {
		return nil, kering.NewValidationError("wrong code=%q for raw of length %d (pad=%d)", code, len(raw), pad)
	}
	return &CryMat{code: code, raw: raw}, nil
}

// NewCryMatFromQb64 parses a qualified Base64 string into its code and raw
// octets.
//
// The first character selects the code class: the two-character selector
// '0' means the code is the first two characters; otherwise the first
// character must itself be a defined one-character code. Anything else is
// ErrMalformedQb64.
func NewCryMatFromQb64(qb64 string) (*CryMat, error) {
	if qb64 == "" {
		return nil, ErrNoSource
	}
	return exfilQb64(qb64)
}

// NewCryMatFromQb2 parses qualified binary material by re-encoding it as
// Base64 and delegating to NewCryMatFromQb64, per spec.md 4.2: "apply
// Base64 encoding to the input and delegate to the qb64 constructor."
func NewCryMatFromQb2(qb2 []byte) (*CryMat, error) {
	if qb2 == nil {
		return nil, ErrNoSource
	}
	return exfilQb64(base64.URLEncoding.EncodeToString(qb2))
}

func exfilQb64(qb64 string) (*CryMat, error) {
	pre := 1
	code := Code(qb64[:pre])

	var base string
	if InOneCodex(code) {
		pad := pre % 4
		base = qb64[pre:] + padString(pad)
	} else if qb64[0] == TwoSelector {
		if len(qb64) < 2 {
			return nil, fmt.Errorf("%w: %s", ErrMalformedQb64, qb64)
		}
		code = Code(qb64[0:2])
		if !InTwoCodex(code) {
			return nil, kering.NewValidationError("invalid derivation code = %q in %s", code, qb64)
		}
		pre = 2
		pad := pre % 4
		base = qb64[pre:] + padString(pad)
	} else {
		return nil, fmt.Errorf("%w: improperly coded material = %s", ErrMalformedQb64, qb64)
	}

	raw, err := base64.URLEncoding.DecodeString(base)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrMalformedQb64, qb64, err)
	}

	if len(raw) != (len(qb64)-pre)*3/4 {
		return nil, fmt.Errorf("%w: %s", ErrMalformedQb64, qb64)
	}

	return &CryMat{code: code, raw: raw}, nil
}

func padString(n int) string {
	b := make([]byte, n)
	for i := range b {
		b[i] = '='
	}
	return string(b)
}

// Code returns the derivation code.
func (m *CryMat) Code() Code { return m.code }

// Raw returns the unqualified crypto octets. The caller owns the returned
// slice but must not assume it is a copy of CryMat's internal state; treat
// it as read-only.
func (m *CryMat) Raw() []byte { return m.raw }

// Pad returns the number of Base64 pad characters that Raw's length implies.
func (m *CryMat) Pad() int { return PadCount(len(m.raw)) }

// Qb64 renders the qualified Base64 form: code followed by the Base64url
// encoding of raw with its trailing pad characters stripped.
//
// Returns a *kering.ValidationError if code and raw have since become
// inconsistent (a defensive check matching coring.py's _infil, which
// re-validates len(code) % 4 == pad even though CryMat is otherwise
// immutable).
func (m *CryMat) Qb64() (string, error) {
	pad := m.Pad()
	if len(m.code)%4 != pad {
		return "", kering.NewValidationError("invalid code = %q for raw pad = %d", m.code, pad)
	}
	full := base64.URLEncoding.EncodeToString(m.raw)
	return string(m.code) + full[:len(full)-pad], nil
}

// Qb2 renders the qualified binary form: the exact bytes such that
// base64url(Qb2()) == Qb64(). The code's length restores 4-character
// alignment, so Qb64() decodes without any pad characters appended.
func (m *CryMat) Qb2() ([]byte, error) {
	qb64, err := m.Qb64()
	if err != nil {
		return nil, err
	}
	return base64.URLEncoding.DecodeString(qb64)
}
