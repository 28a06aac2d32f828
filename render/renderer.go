// Package render turns source assets into flattened output files.
//
// A run walks the assets strictly in order. For every asset whose output is
// missing or older than its source, the source is copied to the output path
// without the marker lines and the external tool is run on the result. The
// first failure of any kind ends the run; outputs rendered before it stay in
// place, and a partially processed output is not removed.
package render

import (
	"context"
	"os"
	"path/filepath"
	"time"

	"github.com/adnsv/svgrender/errs"
	"github.com/adnsv/svgrender/model"
	"github.com/charmbracelet/log"
)

type Renderer struct {
	Config *model.Config
	Tool   Tool
	Log    *log.Logger
}

// Step pairs an asset with its build decision.
type Step struct {
	Asset    model.Asset
	Decision Decision
}

// Result lists what a run did, in processing order.
type Result struct {
	Rendered []model.Asset
	Skipped  []model.Asset
}

func New(cfg *model.Config, tool Tool, logger *log.Logger) *Renderer {
	if logger == nil {
		logger = log.Default()
	}
	return &Renderer{Config: cfg, Tool: tool, Log: logger}
}

// Plan computes the build decision of every asset without touching any file.
func (r *Renderer) Plan(assets []model.Asset) ([]Step, error) {
	steps := make([]Step, 0, len(assets))
	for _, a := range assets {
		d, err := NeedsRebuild(a.SourcePath, a.OutputPath)
		if err != nil {
			return steps, err
		}
		steps = append(steps, Step{Asset: a, Decision: d})
	}
	return steps, nil
}

// Run renders every stale asset. On error the returned Result holds the
// assets handled before the failure.
func (r *Renderer) Run(ctx context.Context, assets []model.Asset) (*Result, error) {
	start := time.Now()
	res := &Result{}

	for _, a := range assets {
		if err := ctx.Err(); err != nil {
			return res, err
		}

		d, err := NeedsRebuild(a.SourcePath, a.OutputPath)
		if err != nil {
			return res, err
		}
		if !d.Rebuild {
			r.Log.Debug("skipping", "asset", a.Name, "reason", d.Reason)
			res.Skipped = append(res.Skipped, a)
			continue
		}

		r.Log.Infof("Processing %s...", a.OutputPath)
		if err := r.renderAsset(ctx, a); err != nil {
			return res, err
		}
		res.Rendered = append(res.Rendered, a)
	}

	r.Log.Infof("SVG rendering is done: %d rendered, %d up to date (%s)",
		len(res.Rendered), len(res.Skipped), time.Since(start).Round(time.Millisecond))
	return res, nil
}

func (r *Renderer) renderAsset(ctx context.Context, a model.Asset) error {
	buf, err := os.ReadFile(a.SourcePath)
	if err != nil {
		return errs.Wrap(errs.CodeIO, err, "reading %s", a.SourcePath)
	}

	out := StripMarker(buf, r.Config.Marker)

	if err := os.MkdirAll(filepath.Dir(a.OutputPath), 0755); err != nil {
		return errs.Wrap(errs.CodeIO, err, "creating output directory")
	}
	if err := os.WriteFile(a.OutputPath, out, 0644); err != nil {
		return errs.Wrap(errs.CodeIO, err, "writing %s", a.OutputPath)
	}

	return r.Tool.Process(ctx, a)
}
