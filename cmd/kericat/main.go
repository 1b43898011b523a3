// Copyright 2025 Certen Protocol
//
// kericat is a developer inspector for the KERI wire primitives, grounded
// on main.go's flag-based argument handling and pkg/config's YAML loading
// in the teacher repository. It performs no KERI event validation: it only
// exercises version-string sniffing, code-table membership, JSON decoding,
// and Serder exhale via three subcommands (sniff, qb64, roundtrip),
// the same way the teacher ships single-purpose inspector binaries
// (cmd/bls-zk-setup) alongside its server.

package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/certen/keri-core/pkg/coring"
	"gopkg.in/yaml.v3"
)

// config is the optional kericat.yaml: just enough to pick a default kind
// and pretty-print behavior, carrying the teacher's YAML-config convention
// forward into a tool that otherwise has nothing to configure.
type config struct {
	DefaultKind string `yaml:"default_kind"`
	Pretty      bool   `yaml:"pretty"`
}

func loadConfig(path string) (config, error) {
	cfg := config{DefaultKind: "JSON"}
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return cfg, nil
	}
	if err != nil {
		return cfg, err
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse %s: %w", path, err)
	}
	return cfg, nil
}

func main() {
	log.SetFlags(0)

	configPath := flag.String("config", "kericat.yaml", "path to optional config file")
	flag.Parse()

	cfg, err := loadConfig(*configPath)
	if err != nil {
		log.Fatalf("kericat: %v", err)
	}

	if flag.NArg() < 1 {
		log.Fatalf("usage: kericat <sniff|qb64|roundtrip> [args]")
	}

	switch flag.Arg(0) {
	case "sniff":
		runSniff()
	case "qb64":
		runQb64()
	case "roundtrip":
		runRoundtrip(cfg)
	default:
		log.Fatalf("kericat: unknown subcommand %q", flag.Arg(0))
	}
}

// runQb64 reports which derivation-code table a leading qb64 character (or,
// for a two-character code, the selector plus its second character) belongs
// to, without needing a full qualified value to parse.
func runQb64() {
	args := flag.Args()[1:]
	if len(args) < 1 || args[0] == "" {
		log.Fatalf("usage: kericat qb64 <leading-character(s)>")
	}
	lead := args[0]

	switch {
	case coring.InOneCodex(coring.Code(lead[:1])):
		fmt.Printf("%q: one-character code (pad 1)\n", lead[:1])
	case coring.IsSelector(lead[0]):
		if len(lead) < 2 {
			fmt.Println("0: selector, names a two-character code (need a second character)")
			return
		}
		code := coring.Code(lead[:2])
		if coring.InTwoCodex(code) {
			fmt.Printf("%q: two-character code (pad 2)\n", code)
		} else {
			fmt.Printf("%q: not a member of the two-character code table\n", code)
		}
	case coring.InFourCodex(coring.Code(lead[:1])):
		fmt.Printf("%q: four-character code (pad 0)\n", lead[:1])
	default:
		fmt.Printf("%q: not a member of any derivation-code table\n", lead[:1])
	}
}

func runSniff() {
	raw, err := io.ReadAll(os.Stdin)
	if err != nil {
		log.Fatalf("kericat sniff: read stdin: %v", err)
	}
	var s coring.Serdery
	kind, version, size, err := s.Sniff(raw)
	if err != nil {
		log.Fatalf("kericat sniff: %v", err)
	}
	fmt.Printf("kind=%s version=%d.%d size=%d\n", kind, version.Major, version.Minor, size)
}

func runRoundtrip(cfg config) {
	args := flag.Args()[1:]
	targetKind := coring.Serialization(cfg.DefaultKind)
	if len(args) > 0 {
		targetKind = coring.Serialization(args[0])
	}

	raw, err := io.ReadAll(os.Stdin)
	if err != nil {
		log.Fatalf("kericat roundtrip: read stdin: %v", err)
	}

	ked, err := coring.DecodeJSON(raw)
	if err != nil {
		log.Fatalf("kericat roundtrip: parse input JSON: %v", err)
	}

	serder, err := coring.NewSerderFromKed(ked, targetKind)
	if err != nil {
		log.Fatalf("kericat roundtrip: %v", err)
	}

	vs, _ := serder.Ked().MustString("vs")
	fmt.Fprintf(os.Stderr, "kind=%s size=%d vs=%s\n", serder.Kind(), serder.Size(), vs)

	if cfg.Pretty && targetKind == coring.JSON {
		pretty, err := prettyJSON(serder.Raw())
		if err == nil {
			os.Stdout.Write(pretty)
			return
		}
	}
	os.Stdout.Write(serder.Raw())
}

func prettyJSON(raw []byte) ([]byte, error) {
	var v any
	if err := json.Unmarshal(raw, &v); err != nil {
		return nil, err
	}
	return json.MarshalIndent(v, "", "  ")
}
