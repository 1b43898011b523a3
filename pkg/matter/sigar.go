// Copyright 2025 Certen Protocol
//
// Sigar: an indexed signature — a Cigar paired with the index of the key
// (in a multi-sig key list) that produced it. KERI event attachments carry
// indexed signatures so a verifier can match each signature to the key
// that rotated into its slot; the index itself is higher-layer bookkeeping
// that this wire-primitives core only needs to carry, not interpret.

package matter

// Sigar is a signature plus the rotation index of the signing key.
type Sigar struct {
	Cigar *Cigar
	Index int
}

// NewSigar pairs a signature with its key index.
func NewSigar(cigar *Cigar, index int) *Sigar {
	return &Sigar{Cigar: cigar, Index: index}
}
