// Package config loads exsyntax settings from .exsyntax.hcl or
// .exsyntax.yaml.
package config

import (
	"bytes"
	"path/filepath"
	"strings"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/spf13/afero"
	"github.com/zclconf/go-cty/cty"
	"gitlab.com/tozd/go/errors"
	"gopkg.in/yaml.v3"
)

// FileNames are the config files Find looks for, in order.
var FileNames = []string{".exsyntax.hcl", ".exsyntax.yaml", ".exsyntax.yml"}

type Config struct {
	// MaxDepth bounds parser recursion; zero keeps the parser default.
	MaxDepth int      `json:"max_depth,omitempty" yaml:"max_depth,omitempty" hcl:"max_depth,optional"`
	Include  []string `json:"include,omitempty" yaml:"include,omitempty" hcl:"include,optional"`
	Exclude  []string `json:"exclude,omitempty" yaml:"exclude,omitempty" hcl:"exclude,optional"`
	Format   string   `json:"format,omitempty" yaml:"format,omitempty" hcl:"format,optional"`
	Color    bool     `json:"color,omitempty" yaml:"color,omitempty" hcl:"color,optional"`
	// TabWidth is used for display columns when no .editorconfig sets one.
	TabWidth int `json:"tab_width,omitempty" yaml:"tab_width,omitempty" hcl:"tab_width,optional"`
}

func Default() *Config {
	return &Config{
		Include:  []string{"**/*.{ex,exs}"},
		Exclude:  []string{"_build/**", "deps/**"},
		Format:   "text",
		TabWidth: 4,
	}
}

// WithDefaults fills every unset field from Default.
func (c *Config) WithDefaults() *Config {
	d := Default()
	out := *c
	if len(out.Include) == 0 {
		out.Include = d.Include
	}
	if out.Exclude == nil {
		out.Exclude = d.Exclude
	}
	if out.Format == "" {
		out.Format = d.Format
	}
	if out.TabWidth <= 0 {
		out.TabWidth = d.TabWidth
	}
	return &out
}

// LoadConfig reads a config file; ".yaml" and ".yml" files are YAML,
// anything else is HCL.
func LoadConfig(fs afero.Fs, path string) (*Config, error) {
	data, err := afero.ReadFile(fs, path)
	if err != nil {
		return nil, errors.Errorf("reading config file: %w", err)
	}

	if strings.HasSuffix(path, ".yaml") || strings.HasSuffix(path, ".yml") {
		var cfg Config
		decoder := yaml.NewDecoder(bytes.NewReader(data))
		decoder.KnownFields(true)
		if err := decoder.Decode(&cfg); err != nil {
			return nil, errors.Errorf("parsing YAML: %w", err)
		}
		return &cfg, nil
	}

	parser := hclparse.NewParser()
	hclFile, diags := parser.ParseHCL(data, path)
	if diags.HasErrors() {
		return nil, errors.Errorf("parsing HCL: %s", diags.Error())
	}

	ctx := &hcl.EvalContext{
		Variables: map[string]cty.Value{
			"default_include": cty.ListVal([]cty.Value{cty.StringVal(Default().Include[0])}),
		},
	}

	var cfg Config
	diags = gohcl.DecodeBody(hclFile.Body, ctx, &cfg)
	if diags.HasErrors() {
		return nil, errors.Errorf("decoding HCL: %s", diags.Error())
	}
	return &cfg, nil
}

// Find loads the first config file present in dir. It returns the defaults
// and an empty path when there is none.
func Find(fs afero.Fs, dir string) (*Config, string, error) {
	for _, name := range FileNames {
		path := filepath.Join(dir, name)
		ok, err := afero.Exists(fs, path)
		if err != nil {
			return nil, "", errors.Errorf("checking %s: %w", path, err)
		}
		if !ok {
			continue
		}
		cfg, err := LoadConfig(fs, path)
		if err != nil {
			return nil, "", errors.Errorf("loading %s: %w", path, err)
		}
		return cfg.WithDefaults(), path, nil
	}
	return Default(), "", nil
}
