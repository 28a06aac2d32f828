package render

import (
	"context"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/adnsv/svgrender/errs"
	"github.com/adnsv/svgrender/model"
	"github.com/charmbracelet/log"
)

// Tool post-processes an asset's output file in place.
type Tool interface {
	Process(ctx context.Context, a model.Asset) error
}

// ExecTool runs the configured external editor synchronously, one process
// per asset. A non-zero exit status is reported as a TOOL error.
type ExecTool struct {
	Config *model.Config
	Stdout io.Writer
	Stderr io.Writer
	Env    []string // appended to the inherited environment
	Log    *log.Logger
}

func NewExecTool(cfg *model.Config, logger *log.Logger) *ExecTool {
	return &ExecTool{
		Config: cfg,
		Stdout: os.Stderr,
		Stderr: os.Stderr,
		Log:    logger,
	}
}

func (t *ExecTool) Process(ctx context.Context, a model.Asset) error {
	exe, args, err := t.Config.ToolCommand(a)
	if err != nil {
		return err
	}
	if t.Log != nil {
		t.Log.Debugf("running %s %s", exe, strings.Join(args, " "))
	}

	x := exec.CommandContext(ctx, exe, args...)
	x.Stdout = t.Stdout
	x.Stderr = t.Stderr
	if len(t.Env) > 0 {
		x.Env = append(os.Environ(), t.Env...)
	}
	if err := x.Run(); err != nil {
		if ctx.Err() != nil {
			// killed by cancellation: report that, not the exit status
			return ctx.Err()
		}
		return errs.Wrap(errs.CodeTool, err, "%s failed on %s", filepath.Base(exe), a.OutputPath)
	}
	return nil
}
