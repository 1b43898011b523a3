// Copyright 2025 Certen Protocol
//
// Serder: event serializer/deserializer. Per spec.md 4.3: round-trips a Ked
// through JSON, MGPK, or CBOR, rewriting the version string's size field in
// place after serialization. Grounded on coring.py's Serder class; the
// exhale/inhale method names and _sniff helper are carried over verbatim
// since they are the clearest names for what each step does.

package coring

import (
	"fmt"

	"github.com/certen/keri-core/pkg/kering"
)

// verByteEx is verEx (serialization.go) applied to a byte stream, used when
// sniffing or rewriting a version string embedded in already-serialized
// bytes rather than parsing a standalone version string value.
var verByteEx = verEx

// sniffWindow is the maximum byte offset at which a version string may
// begin and still be considered well-formed, per spec.md 4.3.1/Design
// Notes ("First-12-bytes sniff").
const sniffWindow = 12

// Serder is an immutable bundle of a serialized key event: the bytes, the
// decoded mapping, the wire kind, and the exact size of the canonical
// serialization within those bytes.
type Serder struct {
	raw  []byte
	ked  *Ked
	kind Serialization
	size int
}

// NewSerderFromRaw deserializes a Serder from raw bytes (inhale). raw may
// carry arbitrary trailing bytes past the event (e.g. attached signatures);
// only the leading Size() bytes are retained as Raw().
func NewSerderFromRaw(raw []byte) (*Serder, error) {
	ked, kind, size, err := inhale(raw)
	if err != nil {
		return nil, err
	}
	return &Serder{raw: raw[:size], ked: ked, kind: kind, size: size}, nil
}

// NewSerderFromKed serializes a Serder from a Ked (exhale). If kind is the
// zero value, the kind named in ked's own "vs" field is used; otherwise
// kind overrides it and the rewritten "vs" reflects the override.
func NewSerderFromKed(ked *Ked, kind Serialization) (*Serder, error) {
	raw, outKind, err := exhale(ked, kind)
	if err != nil {
		return nil, err
	}
	return &Serder{raw: raw, ked: ked, kind: outKind, size: len(raw)}, nil
}

// Raw returns the canonical serialization, exactly Size() bytes.
func (s *Serder) Raw() []byte { return s.raw }

// Ked returns the decoded or source mapping.
func (s *Serder) Ked() *Ked { return s.ked }

// Kind returns the wire serialization kind.
func (s *Serder) Kind() Serialization { return s.kind }

// Size returns the exact byte length of the canonical serialization.
func (s *Serder) Size() int { return s.size }

// Serdery sniffs raw bytes to recover (kind, version, size) without fully
// decoding them, per the "Need to add Serdery" gap noted in coring.py's own
// comment (spec.md's Supplemented Features). Useful for routing frames by
// kind before paying the decode cost.
type Serdery struct{}

// Sniff is the Serdery entry point: locate and parse the version string in
// the first 12 bytes of raw without deserializing the body.
func (Serdery) Sniff(raw []byte) (Serialization, kering.Versionage, int, error) {
	return sniff(raw)
}

func sniff(raw []byte) (Serialization, kering.Versionage, int, error) {
	loc := verByteEx.FindIndex(raw)
	if loc == nil || loc[0] > sniffWindow {
		return "", kering.Versionage{}, 0, fmt.Errorf("invalid version string in raw = %q", truncate(raw))
	}
	vs := string(raw[loc[0]:loc[1]])
	return Deversify(vs)
}

func inhale(raw []byte) (*Ked, Serialization, int, error) {
	kind, version, size, err := sniff(raw)
	if err != nil {
		return nil, "", 0, err
	}
	if version != kering.Version {
		return nil, "", 0, kering.NewVersionError(version)
	}
	if size > len(raw) {
		return nil, "", 0, fmt.Errorf("declared size %d exceeds available %d bytes", size, len(raw))
	}

	body := raw[:size]
	var ked *Ked
	switch kind {
	case JSON:
		ked, err = DecodeJSON(body)
	case MGPK:
		var consumed int
		ked, consumed, err = DecodeMGPK(body)
		if err == nil && consumed != size {
			err = fmt.Errorf("MGPK body consumed %d bytes, expected %d", consumed, size)
		}
	case CBOR:
		var consumed int
		ked, consumed, err = DecodeCBOR(body)
		if err == nil && consumed != size {
			err = fmt.Errorf("CBOR body consumed %d bytes, expected %d", consumed, size)
		}
	default:
		err = fmt.Errorf("invalid serialization kind = %s", kind)
	}
	if err != nil {
		return nil, "", 0, err
	}
	return ked, kind, size, nil
}

func exhale(ked *Ked, kindOverride Serialization) ([]byte, Serialization, error) {
	vs, err := ked.MustString("vs")
	if err != nil {
		return nil, "", fmt.Errorf("missing or empty version string in key event dict: %w", err)
	}

	knd, version, _, err := Deversify(vs)
	if err != nil {
		return nil, "", err
	}
	if version != kering.Version {
		return nil, "", kering.NewVersionError(version)
	}

	kind := kindOverride
	if kind == "" {
		kind = knd
	}
	if !kind.Valid() {
		return nil, "", fmt.Errorf("invalid serialization kind = %s", kind)
	}

	raw, err := encode(ked, kind)
	if err != nil {
		return nil, "", err
	}
	size := len(raw)

	loc := verByteEx.FindIndex(raw)
	if loc == nil || loc[0] > sniffWindow {
		return nil, "", fmt.Errorf("invalid version string in raw = %q", truncate(raw))
	}

	newVs, err := Versify(version, kind, size)
	if err != nil {
		return nil, "", err
	}

	rewritten := make([]byte, 0, len(raw))
	rewritten = append(rewritten, raw[:loc[0]]...)
	rewritten = append(rewritten, newVs...)
	rewritten = append(rewritten, raw[loc[1]:]...)

	if len(rewritten) != size {
		return nil, "", fmt.Errorf("malformed version string size = %s", newVs)
	}

	ked.Set("vs", newVs)
	return rewritten, kind, nil
}

func encode(ked *Ked, kind Serialization) ([]byte, error) {
	switch kind {
	case JSON:
		return EncodeJSON(ked)
	case MGPK:
		return EncodeMGPK(ked)
	case CBOR:
		return EncodeCBOR(ked)
	default:
		return nil, fmt.Errorf("invalid serialization kind = %s", kind)
	}
}

func truncate(raw []byte) []byte {
	const max = 64
	if len(raw) <= max {
		return raw
	}
	return raw[:max]
}
