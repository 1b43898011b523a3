// Copyright 2025 Certen Protocol
//
// MessagePack (MGPK) encode/decode for Ked, preserving field order on both
// paths, mirroring ked_cbor.go's header-ourselves/leaves-to-the-library
// split.

package coring

import (
	"bytes"
	"fmt"

	"github.com/shamaton/msgpack/v2"
)

// EncodeMGPK renders k as MessagePack, fields in insertion order.
func EncodeMGPK(k *Ked) ([]byte, error) {
	return k.MarshalMsgpack()
}

// MarshalMsgpack lets a Ked appear as a nested value inside another Ked's
// fields when encoding to MGPK.
func (k *Ked) MarshalMsgpack() ([]byte, error) {
	var buf bytes.Buffer
	buf.Write(mpMapHeader(uint64(len(k.keys))))
	for _, key := range k.keys {
		kb, err := msgpack.Marshal(key)
		if err != nil {
			return nil, fmt.Errorf("field %q key: %w", key, err)
		}
		buf.Write(kb)
		vb, err := encodeMGPKValue(k.values[key])
		if err != nil {
			return nil, fmt.Errorf("field %q value: %w", key, err)
		}
		buf.Write(vb)
	}
	return buf.Bytes(), nil
}

func encodeMGPKValue(v any) ([]byte, error) {
	switch t := v.(type) {
	case *Ked:
		return t.MarshalMsgpack()
	case []any:
		var buf bytes.Buffer
		buf.Write(mpArrayHeader(uint64(len(t))))
		for i, e := range t {
			eb, err := encodeMGPKValue(e)
			if err != nil {
				return nil, fmt.Errorf("element %d: %w", i, err)
			}
			buf.Write(eb)
		}
		return buf.Bytes(), nil
	default:
		return msgpack.Marshal(v)
	}
}

// DecodeMGPK parses raw as a single MessagePack map item into a Ked,
// preserving pair order, and returns the number of bytes consumed.
func DecodeMGPK(raw []byte) (*Ked, int, error) {
	if len(raw) == 0 {
		return nil, 0, fmt.Errorf("empty MessagePack input")
	}
	if !mpIsMap(raw[0]) {
		return nil, 0, fmt.Errorf("top-level MessagePack item is not a map (tag 0x%02x)", raw[0])
	}
	return decodeMGPKKed(raw)
}

func decodeMGPKKed(data []byte) (*Ked, int, error) {
	count, headerLen, err := mpReadCount(data, 'm')
	if err != nil {
		return nil, 0, err
	}
	offset := headerLen
	k := NewKed()
	for i := uint64(0); i < count; i++ {
		keyLen, err := mpItemLen(data[offset:])
		if err != nil {
			return nil, 0, fmt.Errorf("pair %d key: %w", i, err)
		}
		var key string
		if err := msgpack.Unmarshal(data[offset:offset+keyLen], &key); err != nil {
			return nil, 0, fmt.Errorf("pair %d key: %w", i, err)
		}
		offset += keyLen

		val, valLen, err := decodeMGPKValue(data[offset:])
		if err != nil {
			return nil, 0, fmt.Errorf("field %q: %w", key, err)
		}
		offset += valLen
		k.Set(key, val)
	}
	return k, offset, nil
}

func decodeMGPKValue(data []byte) (any, int, error) {
	if len(data) == 0 {
		return nil, 0, fmt.Errorf("truncated MessagePack value")
	}
	switch {
	case mpIsMap(data[0]):
		return decodeMGPKKed(data)
	case mpIsArray(data[0]):
		count, headerLen, err := mpReadCount(data, 'a')
		if err != nil {
			return nil, 0, err
		}
		offset := headerLen
		arr := make([]any, 0, count)
		for i := uint64(0); i < count; i++ {
			e, elen, err := decodeMGPKValue(data[offset:])
			if err != nil {
				return nil, 0, fmt.Errorf("element %d: %w", i, err)
			}
			offset += elen
			arr = append(arr, e)
		}
		return arr, offset, nil
	default:
		itemLen, err := mpItemLen(data)
		if err != nil {
			return nil, 0, err
		}
		var v any
		if err := msgpack.Unmarshal(data[:itemLen], &v); err != nil {
			return nil, 0, err
		}
		return v, itemLen, nil
	}
}
