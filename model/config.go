package model

import (
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/adnsv/go-utils/fs"
	"github.com/adnsv/svgrender/errs"
	"gopkg.in/yaml.v3"
)

// DefaultActions is the batch pipeline that flattens a document: ungroup
// everything, unlink clones, convert all objects to paths and save in place.
const DefaultActions = "EditSelectAll;SelectionUnGroup;EditSelectAll;EditUnlinkClone;EditSelectAll;ObjectToPath;FileSave"

// DefaultMarker identifies guide-only lines in source documents.
const DefaultMarker = `class="blueprint"`

// DefaultConfigNames are probed in the working directory when no config
// file is given explicitly.
var DefaultConfigNames = []string{"svgrender.yaml", "svgrender.yml", "svgrender.toml"}

type Config struct {
	SourceDir    string            `yaml:"source-dir" toml:"source-dir"`
	OutputDir    string            `yaml:"output-dir,omitempty" toml:"output-dir"`
	SourceSuffix string            `yaml:"source-suffix" toml:"source-suffix"`
	Ext          string            `yaml:"ext" toml:"ext"`
	Assets       []string          `yaml:"assets,omitempty" toml:"assets"`
	Glob         string            `yaml:"glob,omitempty" toml:"glob"`
	Marker       string            `yaml:"marker" toml:"marker"`
	Tool         Tool              `yaml:"tool" toml:"tool"`
	Definitions  map[string]string `yaml:"def,omitempty" toml:"def"`
}

// Tool describes the external editor invocation. Args may contain
// $<asset:name>$, $<asset:source>$, $<asset:output>$ and $<var:KEY>$
// wildcards.
type Tool struct {
	Exec string   `yaml:"exec" toml:"exec"`
	Args []string `yaml:"args" toml:"args"`
}

func DefaultTool() Tool {
	exe := "inkscape"
	if runtime.GOOS == "darwin" {
		exe = "/Applications/Inkscape.app/Contents/MacOS/inkscape"
	}
	return Tool{
		Exec: exe,
		Args: []string{"--batch-process", "--actions=$<var:actions>$", "$<asset:output>$"},
	}
}

// DefaultConfig reproduces the res-src -> res layout.
func DefaultConfig() *Config {
	return &Config{
		SourceDir:    "res-src",
		OutputDir:    "res",
		SourceSuffix: "-src",
		Ext:          ".svg",
		Marker:       DefaultMarker,
		Tool:         DefaultTool(),
		Definitions:  map[string]string{"actions": DefaultActions},
	}
}

// FindConfig returns the first of DefaultConfigNames present in dir, or "".
func FindConfig(dir string) string {
	for _, n := range DefaultConfigNames {
		fn := filepath.Join(dir, n)
		if fs.FileExists(fn) {
			return fn
		}
	}
	return ""
}

// LoadConfig reads a YAML or TOML (by extension) config file on top of the
// defaults. Relative directories are resolved against the config file's
// directory.
func LoadConfig(fn string) (*Config, error) {
	fn, err := filepath.Abs(fn)
	if err != nil {
		return nil, errs.Wrap(errs.CodeConfig, err, "resolving %s", fn)
	}
	buf, err := os.ReadFile(fn)
	if err != nil {
		return nil, errs.Wrap(errs.CodeConfig, err, "reading config")
	}

	type configLoader struct {
		SourceDir    *string           `yaml:"source-dir" toml:"source-dir"`
		OutputDir    *string           `yaml:"output-dir" toml:"output-dir"`
		SourceSuffix *string           `yaml:"source-suffix" toml:"source-suffix"`
		Ext          *string           `yaml:"ext" toml:"ext"`
		Assets       []string          `yaml:"assets" toml:"assets"`
		Glob         string            `yaml:"glob" toml:"glob"`
		Marker       *string           `yaml:"marker" toml:"marker"`
		Tool         *Tool             `yaml:"tool" toml:"tool"`
		Definitions  map[string]string `yaml:"def" toml:"def"`
	}

	t := configLoader{}
	switch strings.ToLower(filepath.Ext(fn)) {
	case ".toml":
		err = toml.Unmarshal(buf, &t)
	default:
		err = yaml.Unmarshal(buf, &t)
	}
	if err != nil {
		return nil, errs.Wrap(errs.CodeConfig, err, "parsing %s", fn)
	}

	cfg := DefaultConfig()
	dir := filepath.Dir(fn)
	if t.SourceDir != nil {
		cfg.SourceDir = *t.SourceDir
	}
	if t.OutputDir != nil {
		cfg.OutputDir = *t.OutputDir
	}
	if t.SourceSuffix != nil {
		cfg.SourceSuffix = *t.SourceSuffix
	}
	if t.Ext != nil {
		cfg.Ext = *t.Ext
	}
	if t.Marker != nil {
		cfg.Marker = *t.Marker
	}
	if t.Tool != nil {
		if t.Tool.Exec != "" {
			cfg.Tool.Exec = t.Tool.Exec
		}
		if t.Tool.Args != nil {
			cfg.Tool.Args = t.Tool.Args
		}
	}
	cfg.Assets = t.Assets
	cfg.Glob = t.Glob
	for k, v := range t.Definitions {
		cfg.Definitions[k] = v
	}

	cfg.SourceDir = normalizePath(dir, cfg.SourceDir)
	cfg.OutputDir = normalizePath(dir, cfg.OutputDir)
	return cfg, nil
}

// Validate reports configuration errors that would make a run meaningless.
func (c *Config) Validate() error {
	switch {
	case c.SourceDir == "":
		return errs.New(errs.CodeConfig, "source-dir is not set")
	case c.Ext == "":
		return errs.New(errs.CodeConfig, "ext is not set")
	case c.Marker == "":
		// an empty marker is contained in every line
		return errs.New(errs.CodeConfig, "marker must not be empty")
	case len(c.Assets) > 0 && c.Glob != "":
		return errs.New(errs.CodeConfig, "assets and glob are mutually exclusive")
	case c.Tool.Exec == "":
		return errs.New(errs.CodeConfig, "tool.exec is not set")
	case c.SourceSuffix == "" && filepath.Clean(c.OutDir()) == filepath.Clean(c.SourceDir):
		return errs.New(errs.CodeConfig, "outputs would overwrite sources: set source-suffix or a separate output-dir")
	}
	if c.Glob != "" {
		if _, err := filepath.Match(c.Glob, ""); err != nil {
			return errs.Wrap(errs.CodeConfig, err, "invalid glob '%s'", c.Glob)
		}
	}
	return nil
}

// OutDir is the effective output directory; the sources' directory when
// output-dir is empty.
func (c *Config) OutDir() string {
	if c.OutputDir == "" {
		return c.SourceDir
	}
	return c.OutputDir
}

// Marshal renders the config as YAML.
func (c *Config) Marshal() ([]byte, error) {
	return yaml.Marshal(c)
}

func normalizePath(refdir string, fn string) string {
	if fn == "" {
		return fn
	}
	if !filepath.IsAbs(fn) {
		fn = filepath.Join(refdir, fn)
	}
	return filepath.Clean(fn)
}
