// Copyright 2025 Certen Protocol
//
// Minimal MessagePack item framing, the MGPK-format sibling of
// cbor_wire.go: header encode/decode and a recursive item-length scanner,
// used by ked_mgpk.go to walk a map's pairs in wire order while
// shamaton/msgpack/v2 (wired per DESIGN.md, promoted here from the rest of
// the pack's indirect dependency set) handles every leaf value.

package coring

import (
	"encoding/binary"
	"fmt"
)

const (
	mpPosFixintMax = 0x7f
	mpFixmapBase   = 0x80
	mpFixmapMax    = 0x8f
	mpFixarrBase   = 0x90
	mpFixarrMax    = 0x9f
	mpFixstrBase   = 0xa0
	mpFixstrMax    = 0xbf
	mpNil          = 0xc0
	mpFalse        = 0xc2
	mpTrue         = 0xc3
	mpBin8         = 0xc4
	mpBin16        = 0xc5
	mpBin32        = 0xc6
	mpExt8         = 0xc7
	mpExt16        = 0xc8
	mpExt32        = 0xc9
	mpFloat32      = 0xca
	mpFloat64      = 0xcb
	mpUint8        = 0xcc
	mpUint16       = 0xcd
	mpUint32       = 0xce
	mpUint64       = 0xcf
	mpInt8         = 0xd0
	mpInt16        = 0xd1
	mpInt32        = 0xd2
	mpInt64        = 0xd3
	mpFixext1      = 0xd4
	mpFixext2      = 0xd5
	mpFixext4      = 0xd6
	mpFixext8      = 0xd7
	mpFixext16     = 0xd8
	mpStr8         = 0xd9
	mpStr16        = 0xda
	mpStr32        = 0xdb
	mpArray16      = 0xdc
	mpArray32      = 0xdd
	mpMap16        = 0xde
	mpMap32        = 0xdf
	mpNegFixintMin = 0xe0
)

// mpMapHeader encodes a map header for n pairs using the shortest valid
// MessagePack encoding.
func mpMapHeader(n uint64) []byte {
	switch {
	case n <= 15:
		return []byte{mpFixmapBase | byte(n)}
	case n <= 0xffff:
		b := make([]byte, 3)
		b[0] = mpMap16
		binary.BigEndian.PutUint16(b[1:], uint16(n))
		return b
	default:
		b := make([]byte, 5)
		b[0] = mpMap32
		binary.BigEndian.PutUint32(b[1:], uint32(n))
		return b
	}
}

// mpArrayHeader encodes an array header for n elements.
func mpArrayHeader(n uint64) []byte {
	switch {
	case n <= 15:
		return []byte{mpFixarrBase | byte(n)}
	case n <= 0xffff:
		b := make([]byte, 3)
		b[0] = mpArray16
		binary.BigEndian.PutUint16(b[1:], uint16(n))
		return b
	default:
		b := make([]byte, 5)
		b[0] = mpArray32
		binary.BigEndian.PutUint32(b[1:], uint32(n))
		return b
	}
}

// mpReadCount validates that data begins with a map or array header and
// returns its element count and header byte length. kind is 'm' or 'a'.
func mpReadCount(data []byte, kind byte) (count uint64, headerLen int, err error) {
	if len(data) == 0 {
		return 0, 0, fmt.Errorf("truncated MessagePack header")
	}
	b := data[0]
	switch kind {
	case 'm':
		switch {
		case b >= mpFixmapBase && b <= mpFixmapMax:
			return uint64(b - mpFixmapBase), 1, nil
		case b == mpMap16:
			if len(data) < 3 {
				return 0, 0, fmt.Errorf("truncated map16 header")
			}
			return uint64(binary.BigEndian.Uint16(data[1:3])), 3, nil
		case b == mpMap32:
			if len(data) < 5 {
				return 0, 0, fmt.Errorf("truncated map32 header")
			}
			return uint64(binary.BigEndian.Uint32(data[1:5])), 5, nil
		default:
			return 0, 0, fmt.Errorf("expected MessagePack map header, got 0x%02x", b)
		}
	case 'a':
		switch {
		case b >= mpFixarrBase && b <= mpFixarrMax:
			return uint64(b - mpFixarrBase), 1, nil
		case b == mpArray16:
			if len(data) < 3 {
				return 0, 0, fmt.Errorf("truncated array16 header")
			}
			return uint64(binary.BigEndian.Uint16(data[1:3])), 3, nil
		case b == mpArray32:
			if len(data) < 5 {
				return 0, 0, fmt.Errorf("truncated array32 header")
			}
			return uint64(binary.BigEndian.Uint32(data[1:5])), 5, nil
		default:
			return 0, 0, fmt.Errorf("expected MessagePack array header, got 0x%02x", b)
		}
	default:
		return 0, 0, fmt.Errorf("unknown MessagePack count kind %q", kind)
	}
}

// mpIsMap reports whether the item at data[0] is a map of any width.
func mpIsMap(b byte) bool {
	return (b >= mpFixmapBase && b <= mpFixmapMax) || b == mpMap16 || b == mpMap32
}

// mpIsArray reports whether the item at data[0] is an array of any width.
func mpIsArray(b byte) bool {
	return (b >= mpFixarrBase && b <= mpFixarrMax) || b == mpArray16 || b == mpArray32
}

// mpItemLen returns the total byte length of the single, complete
// MessagePack item starting at data[0].
func mpItemLen(data []byte) (int, error) {
	if len(data) == 0 {
		return 0, fmt.Errorf("truncated MessagePack item")
	}
	b := data[0]

	switch {
	case b <= mpPosFixintMax, b >= mpNegFixintMin:
		return 1, nil
	case b >= mpFixstrBase && b <= mpFixstrMax:
		return need(data, 1+int(b-mpFixstrBase))
	case b >= mpFixmapBase && b <= mpFixmapMax, b == mpMap16, b == mpMap32:
		count, headerLen, err := mpReadCount(data, 'm')
		if err != nil {
			return 0, err
		}
		return mpScanN(data, headerLen, 2*count)
	case b >= mpFixarrBase && b <= mpFixarrMax, b == mpArray16, b == mpArray32:
		count, headerLen, err := mpReadCount(data, 'a')
		if err != nil {
			return 0, err
		}
		return mpScanN(data, headerLen, count)
	}

	switch b {
	case mpNil, mpFalse, mpTrue:
		return 1, nil
	case mpUint8, mpInt8:
		return need(data, 2)
	case mpUint16, mpInt16:
		return need(data, 3)
	case mpUint32, mpInt32, mpFloat32:
		return need(data, 5)
	case mpUint64, mpInt64, mpFloat64:
		return need(data, 9)
	case mpBin8, mpStr8:
		return mpLenPrefixed(data, 1, 0)
	case mpBin16, mpStr16:
		return mpLenPrefixed(data, 2, 0)
	case mpBin32, mpStr32:
		return mpLenPrefixed(data, 4, 0)
	case mpFixext1:
		return need(data, 3)
	case mpFixext2:
		return need(data, 4)
	case mpFixext4:
		return need(data, 6)
	case mpFixext8:
		return need(data, 10)
	case mpFixext16:
		return need(data, 18)
	case mpExt8:
		return mpLenPrefixed(data, 1, 1)
	case mpExt16:
		return mpLenPrefixed(data, 2, 1)
	case mpExt32:
		return mpLenPrefixed(data, 4, 1)
	default:
		return 0, fmt.Errorf("unknown MessagePack tag 0x%02x", b)
	}
}

func need(data []byte, n int) (int, error) {
	if n > len(data) {
		return 0, fmt.Errorf("truncated MessagePack item: need %d bytes, have %d", n, len(data))
	}
	return n, nil
}

// mpLenPrefixed handles the str8/16/32, bin8/16/32, and ext8/16/32 families:
// 1 tag byte + lenBytes length field (+ extra header bytes for ext type tag)
// + that many payload bytes.
func mpLenPrefixed(data []byte, lenBytes, extra int) (int, error) {
	headerLen := 1 + lenBytes
	if len(data) < headerLen {
		return 0, fmt.Errorf("truncated MessagePack length-prefixed header")
	}
	var n uint64
	switch lenBytes {
	case 1:
		n = uint64(data[1])
	case 2:
		n = uint64(binary.BigEndian.Uint16(data[1:3]))
	case 4:
		n = uint64(binary.BigEndian.Uint32(data[1:5]))
	}
	total := headerLen + extra + int(n)
	if total > len(data) {
		return 0, fmt.Errorf("truncated MessagePack payload")
	}
	return total, nil
}

func mpScanN(data []byte, offset int, n uint64) (int, error) {
	for i := uint64(0); i < n; i++ {
		if offset > len(data) {
			return 0, fmt.Errorf("truncated MessagePack container")
		}
		itemLen, err := mpItemLen(data[offset:])
		if err != nil {
			return 0, err
		}
		offset += itemLen
	}
	return offset, nil
}
