// Copyright 2025 Certen Protocol
//
// interop bridges KERI qualified digests (coring.CryMat / matter.Diger) to
// the multiformats self-describing encodings used across the IPFS/libp2p
// family that the wider retrieval pack (certenIO-certen-validator's
// accumulate dependency chain) already pulls in transitively. Two
// self-describing cryptographic-material schemes meet here: KERI's
// code-prefixed qb64/qb2 and multiformats' varint-prefixed multicodec tags.
// Neither needs the other, but a CESR-qb64 value and a CID are both "a tag
// plus some bytes," and tooling built around one often wants to inspect
// digests produced by the other.
//
// This package is additive: nothing in coring or matter depends on it.

package interop

import (
	"fmt"

	"github.com/certen/keri-core/pkg/coring"
	"github.com/certen/keri-core/pkg/matter"
	"github.com/multiformats/go-multibase"
	"github.com/multiformats/go-multicodec"
	"github.com/multiformats/go-multihash"
)

// hashCodes maps each digest derivation code to the multicodec hash
// function code multihash.Encode expects.
var hashCodes = map[coring.Code]multicodec.Code{
	coring.SHA2_256:    multicodec.Sha2_256,
	coring.SHA3_256:    multicodec.Sha3_256,
	coring.Blake3_256:  multicodec.Blake3,
	coring.Blake2b_256: multicodec.Blake2b256,
	coring.Blake2s_256: multicodec.Blake2s256,
}

// ToMultihash converts a Diger into multiformats' multihash encoding: a
// varint-prefixed hash-function code, a varint-prefixed digest length, and
// the raw digest bytes.
func ToMultihash(d *matter.Diger) (multihash.Multihash, error) {
	code, ok := hashCodes[d.CryMat().Code()]
	if !ok {
		return nil, fmt.Errorf("no multicodec hash mapping for code %q", d.CryMat().Code())
	}
	return multihash.Encode(d.CryMat().Raw(), uint64(code))
}

// ToMultibase renders a Diger as a self-describing multibase string (using
// base64url, matching KERI's own preference for URL-safe text) wrapping its
// multihash encoding.
func ToMultibase(d *matter.Diger) (string, error) {
	mh, err := ToMultihash(d)
	if err != nil {
		return "", err
	}
	return multibase.Encode(multibase.Base64url, mh)
}

// FromMultibase parses a multibase string produced by ToMultibase back into
// a Diger, provided its multihash code maps back to a known digest
// derivation code.
func FromMultibase(s string) (*matter.Diger, error) {
	_, data, err := multibase.Decode(s)
	if err != nil {
		return nil, fmt.Errorf("decode multibase: %w", err)
	}
	decoded, err := multihash.Decode(data)
	if err != nil {
		return nil, fmt.Errorf("decode multihash: %w", err)
	}

	var code coring.Code
	for k, v := range hashCodes {
		if uint64(v) == decoded.Code {
			code = k
			break
		}
	}
	if code == "" {
		return nil, fmt.Errorf("multihash code 0x%x has no KERI digest code mapping", decoded.Code)
	}

	return matter.NewDigerFromRaw(decoded.Digest, code)
}
