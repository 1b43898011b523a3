// Copyright 2025 Certen Protocol
//
// Serialization kind enumeration, version string grammar, and the
// pro-forma version tables. Grounded on coring.py's Serializations
// namedtuple, Serials/Mimes instances, and the Versify/Deversify/Rever
// regex machinery (spec.md 4.3.1 and 3).

package coring

import (
	"fmt"
	"regexp"
	"strconv"

	"github.com/certen/keri-core/pkg/kering"
)

// Serialization is a key-event wire format.
type Serialization string

const (
	JSON Serialization = "JSON"
	MGPK Serialization = "MGPK"
	CBOR Serialization = "CBOR"
)

// String satisfies fmt.Stringer.
func (s Serialization) String() string { return string(s) }

// Valid reports whether s is one of the three recognized kinds.
func (s Serialization) Valid() bool {
	switch s {
	case JSON, MGPK, CBOR:
		return true
	default:
		return false
	}
}

// Mimes maps each Serialization to its advisory MIME type, per spec.md 6.
var Mimes = map[Serialization]string{
	JSON: "application/keri+json",
	MGPK: "application/keri+msgpack",
	CBOR: "application/keri+cbor",
}

// VersionRawSize is the number of hex digits the version string reserves
// for the size field (coring.py's VERRAWSIZE).
const VersionRawSize = 6

// VersionFormat mirrors coring.py's VERFMT: "KERI{major:x}{minor:x}{kind}{size:06x}_".
// Exported so a caller building a pro-forma version string by hand (rather
// than through Versify) still gets the width invariant from a single
// source of truth.
const VersionFormat = "KERI%x%x%s%0*x_"

// vereLen is the fixed total length of a version string: "KERI" + 2 hex
// nibbles + 4-letter kind + 6 hex digits + "_". Used to reject malformed
// version strings by length before paying for a regex match, and to
// sanity-check Versify's own output.
const vereLen = 4 + 2 + 4 + VersionRawSize + 1

// verEx is the version string grammar, operating on octet streams, per
// spec.md 4.3.1.
var verEx = regexp.MustCompile(`KERI([0-9a-f])([0-9a-f])([A-Z]{4})([0-9a-f]{6})_`)

// Versify returns the 17-byte version string for the given version, kind,
// and size. size=0 yields the pro-forma placeholder used before the final
// event length is known.
func Versify(version kering.Versionage, kind Serialization, size int) (string, error) {
	if !kind.Valid() {
		return "", fmt.Errorf("invalid serialization kind = %s", kind)
	}
	vs := fmt.Sprintf(VersionFormat, version.Major, version.Minor, kind, VersionRawSize, size)
	if len(vs) != vereLen {
		return "", fmt.Errorf("version string %q has length %d, want %d", vs, len(vs), vereLen)
	}
	return vs, nil
}

// Deversify parses a version string into its (kind, version, size) triple.
// Returns an error if vs does not match the grammar exactly, or names an
// unrecognized kind.
func Deversify(vs string) (Serialization, kering.Versionage, int, error) {
	if len(vs) != vereLen {
		return "", kering.Versionage{}, 0, fmt.Errorf("invalid version string = %s: want length %d, got %d", vs, vereLen, len(vs))
	}
	loc := verEx.FindStringSubmatchIndex(vs)
	if loc == nil || loc[0] != 0 || loc[1] != len(vs) {
		return "", kering.Versionage{}, 0, fmt.Errorf("invalid version string = %s", vs)
	}
	m := verEx.FindStringSubmatch(vs)
	major, _ := strconv.ParseInt(m[1], 16, 64)
	minor, _ := strconv.ParseInt(m[2], 16, 64)
	kind := Serialization(m[3])
	if !kind.Valid() {
		return "", kering.Versionage{}, 0, fmt.Errorf("invalid serialization kind = %s", kind)
	}
	size, _ := strconv.ParseInt(m[4], 16, 64)
	return kind, kering.Versionage{Major: int(major), Minor: int(minor)}, int(size), nil
}

// ProformaVersions holds the three pro-forma (size=0) version strings,
// precomputed once, mirroring coring.py's module-level Versions namedtuple.
var ProformaVersions = map[Serialization]string{
	JSON: mustVersify(JSON),
	MGPK: mustVersify(MGPK),
	CBOR: mustVersify(CBOR),
}

func mustVersify(kind Serialization) string {
	vs, err := Versify(kering.Version, kind, 0)
	if err != nil {
		panic(err)
	}
	return vs
}
