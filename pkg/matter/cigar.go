// Copyright 2025 Certen Protocol
//
// Cigar: a CryMat constrained to signature derivation codes. Carries a raw
// signature for transport/storage only — generating or verifying the
// signature itself is delegated to external crypto primitives per spec.md
// 1's Non-goals, so Cigar never touches a private key or a message.

package matter

import (
	"fmt"

	"github.com/certen/keri-core/pkg/coring"
)

// signatureCodes is the Two table in full: every two-character code names
// a signature.
var signatureCodes = map[coring.Code]struct{}{
	coring.Ed25519Sig:    {},
	coring.ECDSA256k1Sig: {},
}

// Cigar is cryptographic material whose code names a signature, held
// non-indexed (not associated with a particular signer in a rotation).
type Cigar struct {
	mat *coring.CryMat
}

// NewCigar wraps a raw signature under code, after checking code names a
// signature.
func NewCigar(raw []byte, code coring.Code) (*Cigar, error) {
	if _, ok := signatureCodes[code]; !ok {
		return nil, fmt.Errorf("code %q is not a signature code", code)
	}
	mat, err := coring.NewCryMatFromRaw(raw, code)
	if err != nil {
		return nil, err
	}
	return &Cigar{mat: mat}, nil
}

// NewCigarFromQb64 wraps an already-qualified signature, validating its
// code.
func NewCigarFromQb64(qb64 string) (*Cigar, error) {
	mat, err := coring.NewCryMatFromQb64(qb64)
	if err != nil {
		return nil, err
	}
	if _, ok := signatureCodes[mat.Code()]; !ok {
		return nil, fmt.Errorf("code %q is not a signature code", mat.Code())
	}
	return &Cigar{mat: mat}, nil
}

// CryMat returns the underlying qualified material.
func (c *Cigar) CryMat() *coring.CryMat { return c.mat }

// Qb64 renders the qualified Base64 signature.
func (c *Cigar) Qb64() (string, error) { return c.mat.Qb64() }
