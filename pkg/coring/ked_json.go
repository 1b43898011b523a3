// Copyright 2025 Certen Protocol
//
// JSON encode/decode for Ked, preserving field order on both paths.
// Per spec.md 4.3.2: compact form, no whitespace, non-ASCII left
// unescaped (raw UTF-8 output) — encoding/json's Marshal would reorder a
// Go map and HTML-escape '<','>','&', so this is hand-rolled rather than
// delegated, the one place this package steps outside its library-first
// rule (see DESIGN.md).

package coring

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
)

// EncodeJSON renders k as compact JSON, fields in insertion order.
func EncodeJSON(k *Ked) ([]byte, error) {
	var buf bytes.Buffer
	if err := writeJSONKed(&buf, k); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func writeJSONKed(buf *bytes.Buffer, k *Ked) error {
	buf.WriteByte('{')
	for i, key := range k.keys {
		if i > 0 {
			buf.WriteByte(',')
		}
		writeJSONString(buf, key)
		buf.WriteByte(':')
		if err := writeJSONValue(buf, k.values[key]); err != nil {
			return fmt.Errorf("field %q: %w", key, err)
		}
	}
	buf.WriteByte('}')
	return nil
}

func writeJSONValue(buf *bytes.Buffer, v any) error {
	switch t := v.(type) {
	case nil:
		buf.WriteString("null")
	case *Ked:
		return writeJSONKed(buf, t)
	case []any:
		buf.WriteByte('[')
		for i, e := range t {
			if i > 0 {
				buf.WriteByte(',')
			}
			if err := writeJSONValue(buf, e); err != nil {
				return err
			}
		}
		buf.WriteByte(']')
	case string:
		writeJSONString(buf, t)
	case bool:
		if t {
			buf.WriteString("true")
		} else {
			buf.WriteString("false")
		}
	case json.Number:
		buf.WriteString(t.String())
	case int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64:
		fmt.Fprintf(buf, "%d", t)
	case float32:
		buf.WriteString(strconv.FormatFloat(float64(t), 'g', -1, 32))
	case float64:
		buf.WriteString(strconv.FormatFloat(t, 'g', -1, 64))
	default:
		return fmt.Errorf("unsupported JSON value type %T", v)
	}
	return nil
}

// writeJSONString escapes s per RFC 8259 without HTML-escaping and without
// touching non-ASCII runes, which are written as raw UTF-8.
func writeJSONString(buf *bytes.Buffer, s string) {
	buf.WriteByte('"')
	for _, r := range s {
		switch r {
		case '"':
			buf.WriteString(`\"`)
		case '\\':
			buf.WriteString(`\\`)
		case '\n':
			buf.WriteString(`\n`)
		case '\r':
			buf.WriteString(`\r`)
		case '\t':
			buf.WriteString(`\t`)
		default:
			if r < 0x20 {
				fmt.Fprintf(buf, `\u%04x`, r)
			} else {
				buf.WriteRune(r)
			}
		}
	}
	buf.WriteByte('"')
}

// DecodeJSON parses compact or pretty JSON text into a Ked, preserving the
// source object's field order via token-by-token decoding.
func DecodeJSON(data []byte) (*Ked, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	v, err := decodeJSONValue(dec)
	if err != nil {
		return nil, err
	}
	k, ok := v.(*Ked)
	if !ok {
		return nil, fmt.Errorf("top-level JSON value is not an object")
	}
	return k, nil
}

func decodeJSONValue(dec *json.Decoder) (any, error) {
	tok, err := dec.Token()
	if err != nil {
		return nil, err
	}
	switch t := tok.(type) {
	case json.Delim:
		switch t {
		case '{':
			return decodeJSONObject(dec)
		case '[':
			return decodeJSONArray(dec)
		default:
			return nil, fmt.Errorf("unexpected JSON delimiter %q", t)
		}
	default:
		return tok, nil
	}
}

func decodeJSONObject(dec *json.Decoder) (*Ked, error) {
	k := NewKed()
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return nil, err
		}
		key, ok := keyTok.(string)
		if !ok {
			return nil, fmt.Errorf("object key is not a string: %v", keyTok)
		}
		val, err := decodeJSONValue(dec)
		if err != nil {
			return nil, err
		}
		k.Set(key, val)
	}
	if _, err := dec.Token(); err != nil && err != io.EOF {
		return nil, err
	}
	return k, nil
}

func decodeJSONArray(dec *json.Decoder) ([]any, error) {
	arr := []any{}
	for dec.More() {
		val, err := decodeJSONValue(dec)
		if err != nil {
			return nil, err
		}
		arr = append(arr, val)
	}
	if _, err := dec.Token(); err != nil && err != io.EOF {
		return nil, err
	}
	return arr, nil
}
