// Package load reads generator configuration files. YAML (.yaml, .yml),
// HCL (.hcl) and HCL-flavoured JSON (.json) are supported; every setting is
// optional and only the settings present in a file produce options.
package load

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"gopkg.in/yaml.v3"

	"github.com/syssam/modbench/compiler/gen"
)

// ErrUnsupportedFormat is returned for files with an unknown extension.
var ErrUnsupportedFormat = errors.New("load: unsupported config format")

// File is the on-disk configuration. Unset fields keep the generator
// defaults.
type File struct {
	Out            *string           `yaml:"out" hcl:"out,optional"`
	Depth          *int              `yaml:"depth" hcl:"depth,optional"`
	Branches       *int              `yaml:"branches" hcl:"branches,optional"`
	Rules          map[string]string `yaml:"rules" hcl:"rules,optional"`
	Sizes          map[string]string `yaml:"sizes" hcl:"sizes,optional"`
	DynamicImports *bool             `yaml:"dynamic_imports" hcl:"dynamic_imports,optional"`
	Seed           *uint64           `yaml:"seed" hcl:"seed,optional"`
	FillerDigits   *int              `yaml:"filler_digits" hcl:"filler_digits,optional"`
	PreloadCount   *int              `yaml:"preload_count" hcl:"preload_count,optional"`
	SkipBundle     *bool             `yaml:"skip_bundle" hcl:"skip_bundle,optional"`
	Workers        *int              `yaml:"workers" hcl:"workers,optional"`
}

// LoadFile reads the configuration file at path. Unknown settings are
// rejected. Errors are reported as *gen.ConfigError.
func LoadFile(path string) (*File, error) {
	f, err := loadFile(path)
	if err != nil {
		return nil, gen.WrapConfigError("ConfigFile", path, err)
	}
	return f, nil
}

func loadFile(path string) (*File, error) {
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".yaml", ".yml":
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, err
		}
		return decodeYAML(data)
	case ".hcl", ".json":
		return decodeHCL(path, ext == ".json")
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, ext)
	}
}

func decodeYAML(data []byte) (*File, error) {
	f := &File{}
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	// An empty document leaves every setting unset.
	if err := dec.Decode(f); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("decode yaml: %w", err)
	}
	return f, nil
}

func decodeHCL(path string, json bool) (*File, error) {
	var (
		file  *hcl.File
		diags hcl.Diagnostics
		p     = hclparse.NewParser()
	)
	if json {
		file, diags = p.ParseJSONFile(path)
	} else {
		file, diags = p.ParseHCLFile(path)
	}
	if diags.HasErrors() {
		return nil, fmt.Errorf("parse %s: %w", path, diags)
	}
	f := &File{}
	if diags := gohcl.DecodeBody(file.Body, nil, f); diags.HasErrors() {
		return nil, fmt.Errorf("decode %s: %w", path, diags)
	}
	return f, nil
}

// Options returns the generator options for the settings present in f.
func (f *File) Options() []gen.Option {
	var opts []gen.Option
	if f.Out != nil {
		opts = append(opts, gen.WithTarget(*f.Out))
	}
	if f.Depth != nil {
		opts = append(opts, gen.WithDepth(*f.Depth))
	}
	if f.Branches != nil {
		opts = append(opts, gen.WithBranches(*f.Branches))
	}
	if len(f.Rules) > 0 {
		opts = append(opts, gen.WithRules(f.Rules))
	}
	if len(f.Sizes) > 0 {
		opts = append(opts, gen.WithSizes(f.Sizes))
	}
	if f.DynamicImports != nil {
		opts = append(opts, gen.WithDynamicImports(*f.DynamicImports))
	}
	if f.Seed != nil {
		opts = append(opts, gen.WithSeed(*f.Seed))
	}
	if f.FillerDigits != nil {
		opts = append(opts, gen.WithFillerDigits(*f.FillerDigits))
	}
	if f.PreloadCount != nil {
		opts = append(opts, gen.WithPreloadCount(*f.PreloadCount))
	}
	if f.SkipBundle != nil {
		opts = append(opts, gen.WithSkipBundles(*f.SkipBundle))
	}
	if f.Workers != nil {
		opts = append(opts, gen.WithWorkers(*f.Workers))
	}
	return opts
}
