// Copyright 2025 Certen Protocol
//
// CBOR encode/decode for Ked, preserving field order on both paths.
//
// fxamacker/cbor/v2 (wired per DESIGN.md, an indirect dependency of the
// teacher's accumulate/gnark-crypto stack promoted here to direct use)
// handles every scalar, byte-string, and leaf value. What it cannot do is
// preserve Go map insertion order, since Go's map[string]any has none — so
// this file writes the definite-length map/array headers itself and
// delegates header-free leaf items to the library, the same "keep HOW,
// replace WHAT" split ked_mgpk.go uses for MessagePack. (ked_json.go, by
// contrast, writes JSON leaf values by hand as well.)

package coring

import (
	"bytes"
	"fmt"

	"github.com/fxamacker/cbor/v2"
)

// EncodeCBOR renders k as CBOR, fields in insertion order.
func EncodeCBOR(k *Ked) ([]byte, error) {
	return k.MarshalCBOR()
}

// MarshalCBOR implements cbor.Marshaler so a Ked can also appear as a
// nested value inside another Ked's fields.
func (k *Ked) MarshalCBOR() ([]byte, error) {
	var buf bytes.Buffer
	buf.Write(cborHeader(cborMajorMap, uint64(len(k.keys))))
	for _, key := range k.keys {
		kb, err := cbor.Marshal(key)
		if err != nil {
			return nil, fmt.Errorf("field %q key: %w", key, err)
		}
		buf.Write(kb)
		vb, err := encodeCBORValue(k.values[key])
		if err != nil {
			return nil, fmt.Errorf("field %q value: %w", key, err)
		}
		buf.Write(vb)
	}
	return buf.Bytes(), nil
}

func encodeCBORValue(v any) ([]byte, error) {
	switch t := v.(type) {
	case *Ked:
		return t.MarshalCBOR()
	case []any:
		var buf bytes.Buffer
		buf.Write(cborHeader(cborMajorArray, uint64(len(t))))
		for i, e := range t {
			eb, err := encodeCBORValue(e)
			if err != nil {
				return nil, fmt.Errorf("element %d: %w", i, err)
			}
			buf.Write(eb)
		}
		return buf.Bytes(), nil
	default:
		return cbor.Marshal(v)
	}
}

// DecodeCBOR parses raw as a single CBOR map item into a Ked, preserving
// pair order, and returns the number of bytes consumed.
func DecodeCBOR(raw []byte) (*Ked, int, error) {
	if len(raw) == 0 {
		return nil, 0, fmt.Errorf("empty CBOR input")
	}
	major, _ := cborMajorAndInfo(raw[0])
	if major != cborMajorMap {
		return nil, 0, fmt.Errorf("top-level CBOR item is not a map (major type %d)", major)
	}
	return decodeCBORKed(raw)
}

func decodeCBORKed(data []byte) (*Ked, int, error) {
	count, headerLen, err := cborReadCount(data, cborMajorMap)
	if err != nil {
		return nil, 0, err
	}
	offset := headerLen
	k := NewKed()
	for i := uint64(0); i < count; i++ {
		keyLen, err := cborItemLen(data[offset:])
		if err != nil {
			return nil, 0, fmt.Errorf("pair %d key: %w", i, err)
		}
		var key string
		if err := cbor.Unmarshal(data[offset:offset+keyLen], &key); err != nil {
			return nil, 0, fmt.Errorf("pair %d key: %w", i, err)
		}
		offset += keyLen

		val, valLen, err := decodeCBORValue(data[offset:])
		if err != nil {
			return nil, 0, fmt.Errorf("field %q: %w", key, err)
		}
		offset += valLen
		k.Set(key, val)
	}
	return k, offset, nil
}

func decodeCBORValue(data []byte) (any, int, error) {
	if len(data) == 0 {
		return nil, 0, fmt.Errorf("truncated CBOR value")
	}
	major, _ := cborMajorAndInfo(data[0])
	switch major {
	case cborMajorMap:
		return decodeCBORKed(data)
	case cborMajorArray:
		count, headerLen, err := cborReadCount(data, cborMajorArray)
		if err != nil {
			return nil, 0, err
		}
		offset := headerLen
		arr := make([]any, 0, count)
		for i := uint64(0); i < count; i++ {
			e, elen, err := decodeCBORValue(data[offset:])
			if err != nil {
				return nil, 0, fmt.Errorf("element %d: %w", i, err)
			}
			offset += elen
			arr = append(arr, e)
		}
		return arr, offset, nil
	default:
		itemLen, err := cborItemLen(data)
		if err != nil {
			return nil, 0, err
		}
		var v any
		if err := cbor.Unmarshal(data[:itemLen], &v); err != nil {
			return nil, 0, err
		}
		return v, itemLen, nil
	}
}
