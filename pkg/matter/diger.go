// Copyright 2025 Certen Protocol
//
// Diger: a CryMat constrained to digest derivation codes, and able to
// compute one. Per spec.md's Design Notes ("domain subclasses becoming
// thin wrappers that preconstrain the acceptable code set") and
// SPEC_FULL.md section 4 item 6/section 3's domain-stack wiring — each
// digest code is backed by the actual hash library the code names, not a
// placeholder.

package matter

import (
	"crypto/sha256"
	"fmt"

	"github.com/certen/keri-core/pkg/coring"
	"golang.org/x/crypto/blake2b"
	"golang.org/x/crypto/blake2s"
	"golang.org/x/crypto/sha3"
	"lukechampine.com/blake3"
)

// digestCodes is the subset of coring.One that names a digest algorithm.
var digestCodes = map[coring.Code]struct{}{
	coring.Blake3_256:  {},
	coring.Blake2b_256: {},
	coring.Blake2s_256: {},
	coring.SHA3_256:    {},
	coring.SHA2_256:    {},
}

// Diger is cryptographic material whose code names a 256-bit digest
// algorithm.
type Diger struct {
	mat *coring.CryMat
}

// Digest hashes data with the algorithm named by code and returns it as a
// Diger. Returns an error if code does not name a digest algorithm.
func Digest(code coring.Code, data []byte) (*Diger, error) {
	if _, ok := digestCodes[code]; !ok {
		return nil, fmt.Errorf("code %q is not a digest code", code)
	}

	var sum []byte
	switch code {
	case coring.Blake3_256:
		h := blake3.Sum256(data)
		sum = h[:]
	case coring.Blake2b_256:
		h := blake2b.Sum256(data)
		sum = h[:]
	case coring.Blake2s_256:
		h := blake2s.Sum256(data)
		sum = h[:]
	case coring.SHA3_256:
		h := sha3.Sum256(data)
		sum = h[:]
	case coring.SHA2_256:
		h := sha256.Sum256(data)
		sum = h[:]
	}

	mat, err := coring.NewCryMatFromRaw(sum, code)
	if err != nil {
		return nil, err
	}
	return &Diger{mat: mat}, nil
}

// NewDigerFromRaw wraps an already-computed digest value under code,
// without hashing anything itself (used when the digest bytes arrived
// pre-hashed, e.g. decoded from an interop multihash).
func NewDigerFromRaw(raw []byte, code coring.Code) (*Diger, error) {
	if _, ok := digestCodes[code]; !ok {
		return nil, fmt.Errorf("code %q is not a digest code", code)
	}
	mat, err := coring.NewCryMatFromRaw(raw, code)
	if err != nil {
		return nil, err
	}
	return &Diger{mat: mat}, nil
}

// NewDigerFromQb64 wraps an already-qualified digest, validating its code
// is a digest code.
func NewDigerFromQb64(qb64 string) (*Diger, error) {
	mat, err := coring.NewCryMatFromQb64(qb64)
	if err != nil {
		return nil, err
	}
	if _, ok := digestCodes[mat.Code()]; !ok {
		return nil, fmt.Errorf("code %q is not a digest code", mat.Code())
	}
	return &Diger{mat: mat}, nil
}

// CryMat returns the underlying qualified material.
func (d *Diger) CryMat() *coring.CryMat { return d.mat }

// Qb64 renders the qualified Base64 digest.
func (d *Diger) Qb64() (string, error) { return d.mat.Qb64() }

// Verify reports whether data hashes (under d's code) to d's raw digest.
func (d *Diger) Verify(data []byte) (bool, error) {
	computed, err := Digest(d.mat.Code(), data)
	if err != nil {
		return false, err
	}
	a, err := d.Qb64()
	if err != nil {
		return false, err
	}
	b, err := computed.Qb64()
	if err != nil {
		return false, err
	}
	return a == b, nil
}
