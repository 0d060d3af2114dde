// Package config loads the project manifest that configures one invocation
// of the compiler: the target triple it lowers to and where output is
// written. The manifest is plain TOML, unmarshaled the same way the
// teacher's module file is.
package config

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"ccfront/report"

	"github.com/pelletier/go-toml"
)

// ManifestFileName is the name of the manifest file searched for in a
// project's root directory.
const ManifestFileName = "ccfront.toml"

// DefaultTargetTriple is used when a manifest omits "target" entirely, or
// when no manifest is found at all.
const DefaultTargetTriple = "x86_64-unknown-linux-gnu"

// tomlManifest is the manifest as TOML actually encodes it; Manifest is the
// validated, defaulted form the rest of the compiler consumes.
type tomlManifest struct {
	Target      string `toml:"target"`
	OutDir      string `toml:"out-dir"`
	OptHint     string `toml:"optimize"`
	EmitComment bool   `toml:"emit-comments"`
}

// OptLevel enumerates the optimization hints a manifest may request. The
// front-end does not itself optimize anything (that is the back-end's job
// once IR leaves this package); the hint is threaded through only so a
// downstream `opt`/`llc` invocation knows what to ask for.
type OptLevel int

const (
	OptNone OptLevel = iota
	OptSpeed
	OptSize
)

// Manifest is a fully validated, defaulted project configuration.
type Manifest struct {
	TargetTriple string
	OutDir       string
	Opt          OptLevel
	EmitComments bool
}

// Load reads and validates the manifest in dir, falling back to an
// all-defaults Manifest when no manifest file is present: a manifest is
// convenience, not a requirement, since every field has a sensible
// default.
func Load(dir string) (*Manifest, error) {
	path := filepath.Join(dir, ManifestFileName)
	f, err := os.Open(path)
	if os.IsNotExist(err) {
		return defaultManifest(), nil
	} else if err != nil {
		return nil, fmt.Errorf("unable to open manifest at %q: %w", path, err)
	}
	defer f.Close()

	buf, err := io.ReadAll(f)
	if err != nil {
		return nil, fmt.Errorf("error reading manifest at %q: %w", path, err)
	}

	tm := &tomlManifest{}
	if err := toml.Unmarshal(buf, tm); err != nil {
		return nil, fmt.Errorf("error parsing manifest at %q: %w", path, err)
	}

	return validate(tm)
}

func defaultManifest() *Manifest {
	return &Manifest{TargetTriple: DefaultTargetTriple, OutDir: "", Opt: OptNone}
}

func validate(tm *tomlManifest) (*Manifest, error) {
	m := defaultManifest()
	m.OutDir = tm.OutDir
	m.EmitComments = tm.EmitComment

	if tm.Target != "" {
		m.TargetTriple = tm.Target
	}

	switch tm.OptHint {
	case "", "none":
		m.Opt = OptNone
	case "speed":
		m.Opt = OptSpeed
	case "size":
		m.Opt = OptSize
	default:
		return nil, fmt.Errorf("manifest: invalid optimize value %q (want \"none\", \"speed\", or \"size\")", tm.OptHint)
	}

	return m, nil
}

// MustLoad loads the manifest in dir or aborts the process via
// report.ReportFatal, matching the driver's fatal-on-bad-config policy.
func MustLoad(dir string) *Manifest {
	m, err := Load(dir)
	if err != nil {
		report.ReportFatal("%s", err)
	}
	return m
}
