// Copyright 2025 Certen Protocol
//
// Verfer: a CryMat constrained to verification-key derivation codes, with
// a shape/on-curve check per key family. This is explicitly NOT signature
// verification (spec.md 1's Non-goal: "signature verification... delegated
// to external crypto primitives") — it only confirms the raw octets are a
// well-formed point/key for the named curve, the same level of validation
// CryMat itself already does for length via the pad-class invariant.

package matter

import (
	"crypto/ed25519"
	"fmt"

	"github.com/certen/keri-core/pkg/coring"
	"github.com/decred/dcrd/dcrec/secp256k1/v4"
)

// verifierCodes is the subset of coring.One that names a verification key.
var verifierCodes = map[coring.Code]struct{}{
	coring.Ed25519N:    {},
	coring.Ed25519:     {},
	coring.ECDSA256k1N: {},
	coring.ECDSA256k1:  {},
}

// Verfer is cryptographic material whose code names a verification key.
type Verfer struct {
	mat *coring.CryMat
}

// NewVerfer wraps raw key material under code, after checking code names a
// verification key and raw is shaped like a valid key for that family.
func NewVerfer(raw []byte, code coring.Code) (*Verfer, error) {
	if _, ok := verifierCodes[code]; !ok {
		return nil, fmt.Errorf("code %q is not a verification-key code", code)
	}
	if err := checkKeyShape(raw, code); err != nil {
		return nil, err
	}
	mat, err := coring.NewCryMatFromRaw(raw, code)
	if err != nil {
		return nil, err
	}
	return &Verfer{mat: mat}, nil
}

// NewVerferFromQb64 wraps an already-qualified verification key, validating
// its code and shape.
func NewVerferFromQb64(qb64 string) (*Verfer, error) {
	mat, err := coring.NewCryMatFromQb64(qb64)
	if err != nil {
		return nil, err
	}
	if _, ok := verifierCodes[mat.Code()]; !ok {
		return nil, fmt.Errorf("code %q is not a verification-key code", mat.Code())
	}
	if err := checkKeyShape(mat.Raw(), mat.Code()); err != nil {
		return nil, err
	}
	return &Verfer{mat: mat}, nil
}

// secp256k1RawSize is the raw byte length the One codex's pad-class
// invariant implies for an ECDSA256k1 code: the x-coordinate only, without
// the leading SEC1 sign-parity octet a full compressed point carries.
const secp256k1RawSize = 32

func checkKeyShape(raw []byte, code coring.Code) error {
	switch code {
	case coring.Ed25519N, coring.Ed25519:
		if len(raw) != ed25519.PublicKeySize {
			return fmt.Errorf("ed25519 key must be %d bytes, got %d", ed25519.PublicKeySize, len(raw))
		}
	case coring.ECDSA256k1N, coring.ECDSA256k1:
		if len(raw) != secp256k1RawSize {
			return fmt.Errorf("secp256k1 key must be %d bytes, got %d", secp256k1RawSize, len(raw))
		}
		// Reattach the even-y compressed-point prefix to confirm raw is a
		// point on the curve; the parity bit itself is not carried in the
		// qualified material, only the x-coordinate is.
		compressed := append([]byte{0x02}, raw...)
		if _, err := secp256k1.ParsePubKey(compressed); err != nil {
			compressed[0] = 0x03
			if _, err := secp256k1.ParsePubKey(compressed); err != nil {
				return fmt.Errorf("not a valid secp256k1 point: %w", err)
			}
		}
	}
	return nil
}

// CryMat returns the underlying qualified material.
func (v *Verfer) CryMat() *coring.CryMat { return v.mat }

// Qb64 renders the qualified Base64 key.
func (v *Verfer) Qb64() (string, error) { return v.mat.Qb64() }

// Transferable reports whether the key's code permits key rotation
// (Ed25519/ECDSA256k1) as opposed to a non-transferable basic-derivation
// code (Ed25519N/ECDSA256k1N).
func (v *Verfer) Transferable() bool {
	switch v.mat.Code() {
	case coring.Ed25519, coring.ECDSA256k1:
		return true
	default:
		return false
	}
}
