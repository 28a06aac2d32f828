package model

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/adnsv/go-utils/fs"
	"github.com/adnsv/svgrender/errs"
)

// Asset is a logical name with its derived source and output paths.
type Asset struct {
	Name       string
	SourcePath string
	OutputPath string
}

func (a Asset) String() string {
	return a.Name
}

// Asset derives the entry for name:
//
//	<source-dir>/<name><source-suffix><ext> -> <out-dir>/<name><ext>
func (c *Config) Asset(name string) Asset {
	return Asset{
		Name:       name,
		SourcePath: filepath.Join(c.SourceDir, name+c.SourceSuffix+c.Ext),
		OutputPath: filepath.Join(c.OutDir(), name+c.Ext),
	}
}

// Pattern is the glob used for discovery when no explicit names are listed.
func (c *Config) Pattern() string {
	if c.Glob != "" {
		return c.Glob
	}
	return "*" + c.SourceSuffix + c.Ext
}

// Discover lists the assets of a run in processing order: the configured
// names in order, or the glob matches in lexical order.
func (c *Config) Discover() ([]Asset, error) {
	if len(c.Assets) > 0 {
		return c.listed()
	}
	return c.globbed()
}

func (c *Config) listed() ([]Asset, error) {
	ret := make([]Asset, 0, len(c.Assets))
	for _, name := range c.Assets {
		a := c.Asset(name)
		if !fs.FileExists(a.SourcePath) {
			return nil, errs.New(errs.CodeConfig, "missing source for asset '%s': %s", name, a.SourcePath)
		}
		ret = append(ret, a)
	}
	return ret, nil
}

func (c *Config) globbed() ([]Asset, error) {
	matches, err := filepath.Glob(filepath.Join(c.SourceDir, c.Pattern()))
	if err != nil {
		return nil, errs.Wrap(errs.CodeConfig, err, "invalid glob '%s'", c.Pattern())
	}
	ret := make([]Asset, 0, len(matches))
	for _, fn := range matches {
		st, err := os.Stat(fn)
		if err != nil {
			return nil, errs.Wrap(errs.CodeIO, err, "stat %s", fn)
		}
		if st.IsDir() {
			continue
		}
		name := strings.TrimSuffix(filepath.Base(fn), c.Ext)
		name = strings.TrimSuffix(name, c.SourceSuffix)
		ret = append(ret, Asset{
			Name:       name,
			SourcePath: fn,
			OutputPath: filepath.Join(c.OutDir(), name+c.Ext),
		})
	}
	return ret, nil
}
