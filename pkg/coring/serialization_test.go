// Copyright 2025 Certen Protocol

package coring

import (
	"testing"

	"github.com/certen/keri-core/pkg/kering"
)

func TestVersifyProforma(t *testing.T) {
	vs, err := Versify(kering.Version, JSON, 0)
	if err != nil {
		t.Fatalf("Versify: %v", err)
	}
	if vs != "KERI10JSON000000_" {
		t.Errorf("Versify(JSON, 0) = %q, want %q", vs, "KERI10JSON000000_")
	}
}

func TestVersifyWithSize(t *testing.T) {
	vs, err := Versify(kering.Version, MGPK, 65)
	if err != nil {
		t.Fatalf("Versify: %v", err)
	}
	if vs != "KERI10MGPK000041_" {
		t.Errorf("Versify(MGPK, 65) = %q, want %q", vs, "KERI10MGPK000041_")
	}
}

func TestDeversify(t *testing.T) {
	kind, version, size, err := Deversify("KERI10MGPK000041_")
	if err != nil {
		t.Fatalf("Deversify: %v", err)
	}
	if kind != MGPK {
		t.Errorf("kind = %q, want MGPK", kind)
	}
	if version != kering.Version {
		t.Errorf("version = %+v, want %+v", version, kering.Version)
	}
	if size != 65 {
		t.Errorf("size = %d, want 65", size)
	}
}

func TestDeversifyRejectsMalformed(t *testing.T) {
	cases := []string{
		"KERI10XXXX000041_",  // unrecognized kind
		"KERI10JSON00004_",   // short size field
		"xKERI10JSON000041_", // leading garbage, not anchored
		"KERI10JSON000041_x", // trailing garbage, not anchored
		"",
	}
	for _, c := range cases {
		if _, _, _, err := Deversify(c); err == nil {
			t.Errorf("Deversify(%q): expected error, got nil", c)
		}
	}
}

func TestProformaVersionsTable(t *testing.T) {
	for kind, vs := range ProformaVersions {
		gotKind, version, size, err := Deversify(vs)
		if err != nil {
			t.Fatalf("Deversify(%q): %v", vs, err)
		}
		if gotKind != kind {
			t.Errorf("ProformaVersions[%s] decodes to kind %s", kind, gotKind)
		}
		if size != 0 {
			t.Errorf("ProformaVersions[%s] has nonzero size %d", kind, size)
		}
		if version != kering.Version {
			t.Errorf("ProformaVersions[%s] version = %+v, want %+v", kind, version, kering.Version)
		}
	}
}

func TestMimesCoversAllKinds(t *testing.T) {
	for _, kind := range []Serialization{JSON, MGPK, CBOR} {
		if _, ok := Mimes[kind]; !ok {
			t.Errorf("Mimes missing entry for %s", kind)
		}
	}
}
