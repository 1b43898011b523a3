// Copyright 2025 Certen Protocol
//
// Minimal CBOR (RFC 8949) definite-length item framing: just enough header
// reading/writing to let ked_cbor.go walk a map's pairs in wire order and
// determine where each nested item ends, without re-implementing a full
// decoder. Leaf value semantics stay with fxamacker/cbor (ked_cbor.go);
// this file only ever looks at major types and lengths.
//
// Indefinite-length items (the streaming forms CBOR also permits) are not
// supported: fxamacker/cbor's encoder, which produced every byte stream
// this package needs to read back, always emits definite lengths.

package coring

import (
	"encoding/binary"
	"fmt"
)

const (
	cborMajorUint    = 0
	cborMajorNegInt  = 1
	cborMajorBytes   = 2
	cborMajorText    = 3
	cborMajorArray   = 4
	cborMajorMap     = 5
	cborMajorTag     = 6
	cborMajorSpecial = 7
)

func cborMajorAndInfo(b byte) (major, info byte) {
	return b >> 5, b & 0x1f
}

// cborHeader encodes a major type + count/length header using the shortest
// valid CBOR encoding.
func cborHeader(major byte, n uint64) []byte {
	switch {
	case n < 24:
		return []byte{major<<5 | byte(n)}
	case n <= 0xff:
		return []byte{major<<5 | 24, byte(n)}
	case n <= 0xffff:
		b := make([]byte, 3)
		b[0] = major<<5 | 25
		binary.BigEndian.PutUint16(b[1:], uint16(n))
		return b
	case n <= 0xffffffff:
		b := make([]byte, 5)
		b[0] = major<<5 | 26
		binary.BigEndian.PutUint32(b[1:], uint32(n))
		return b
	default:
		b := make([]byte, 9)
		b[0] = major<<5 | 27
		binary.BigEndian.PutUint64(b[1:], n)
		return b
	}
}

// cborReadArgument reads the header at data[0] and returns its numeric
// argument (count, length, or tag number) and the header's byte length.
// It does not check the major type.
func cborReadArgument(data []byte) (arg uint64, headerLen int, err error) {
	if len(data) == 0 {
		return 0, 0, fmt.Errorf("truncated CBOR header")
	}
	_, info := cborMajorAndInfo(data[0])
	switch {
	case info < 24:
		return uint64(info), 1, nil
	case info == 24:
		if len(data) < 2 {
			return 0, 0, fmt.Errorf("truncated CBOR header (1-byte length)")
		}
		return uint64(data[1]), 2, nil
	case info == 25:
		if len(data) < 3 {
			return 0, 0, fmt.Errorf("truncated CBOR header (2-byte length)")
		}
		return uint64(binary.BigEndian.Uint16(data[1:3])), 3, nil
	case info == 26:
		if len(data) < 5 {
			return 0, 0, fmt.Errorf("truncated CBOR header (4-byte length)")
		}
		return uint64(binary.BigEndian.Uint32(data[1:5])), 5, nil
	case info == 27:
		if len(data) < 9 {
			return 0, 0, fmt.Errorf("truncated CBOR header (8-byte length)")
		}
		return binary.BigEndian.Uint64(data[1:9]), 9, nil
	default:
		return 0, 0, fmt.Errorf("indefinite-length or reserved CBOR item (additional info %d) not supported", info)
	}
}

// cborReadCount validates that data begins with a header of the expected
// major type and returns its count/length and header byte length.
func cborReadCount(data []byte, wantMajor byte) (count uint64, headerLen int, err error) {
	if len(data) == 0 {
		return 0, 0, fmt.Errorf("truncated CBOR header")
	}
	major, _ := cborMajorAndInfo(data[0])
	if major != wantMajor {
		return 0, 0, fmt.Errorf("expected CBOR major type %d, got %d", wantMajor, major)
	}
	return cborReadArgument(data)
}

// cborItemLen returns the total byte length of the single, complete CBOR
// data item starting at data[0], recursing into arrays, maps, and tags as
// needed to find its end.
func cborItemLen(data []byte) (int, error) {
	if len(data) == 0 {
		return 0, fmt.Errorf("truncated CBOR item")
	}
	major, info := cborMajorAndInfo(data[0])
	switch major {
	case cborMajorUint, cborMajorNegInt:
		_, headerLen, err := cborReadArgument(data)
		return headerLen, err

	case cborMajorBytes, cborMajorText:
		length, headerLen, err := cborReadArgument(data)
		if err != nil {
			return 0, err
		}
		total := headerLen + int(length)
		if total > len(data) {
			return 0, fmt.Errorf("truncated CBOR string item")
		}
		return total, nil

	case cborMajorArray:
		count, headerLen, err := cborReadArgument(data)
		if err != nil {
			return 0, err
		}
		offset := headerLen
		for i := uint64(0); i < count; i++ {
			n, err := cborItemLen(data[offset:])
			if err != nil {
				return 0, err
			}
			offset += n
		}
		return offset, nil

	case cborMajorMap:
		count, headerLen, err := cborReadArgument(data)
		if err != nil {
			return 0, err
		}
		offset := headerLen
		for i := uint64(0); i < 2*count; i++ {
			n, err := cborItemLen(data[offset:])
			if err != nil {
				return 0, err
			}
			offset += n
		}
		return offset, nil

	case cborMajorTag:
		_, headerLen, err := cborReadArgument(data)
		if err != nil {
			return 0, err
		}
		n, err := cborItemLen(data[headerLen:])
		if err != nil {
			return 0, err
		}
		return headerLen + n, nil

	case cborMajorSpecial:
		switch {
		case info < 24:
			return 1, nil // false, true, null, undefined, or an unassigned simple value
		case info == 24:
			return 2, nil // simple value, 1 extra byte
		case info == 25:
			return 3, nil // float16
		case info == 26:
			return 5, nil // float32
		case info == 27:
			return 9, nil // float64
		default:
			return 0, fmt.Errorf("indefinite-length or reserved CBOR special (additional info %d) not supported", info)
		}

	default:
		return 0, fmt.Errorf("unknown CBOR major type %d", major)
	}
}
