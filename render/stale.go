package render

import (
	"errors"
	"io/fs"
	"os"

	"github.com/adnsv/svgrender/errs"
)

type Reason int

const (
	UpToDate = Reason(iota)
	MissingOutput
	SourceNewer
)

func (r Reason) String() string {
	switch r {
	case UpToDate:
		return "up-to-date"
	case MissingOutput:
		return "missing-output"
	case SourceNewer:
		return "source-newer"
	default:
		return "<invalid>"
	}
}

// Decision tells whether an asset has to be rebuilt and why.
type Decision struct {
	Rebuild bool
	Reason  Reason
}

// NeedsRebuild compares the output against its source. The output is stale
// when it does not exist or when the source was modified strictly later;
// equal timestamps count as up to date.
func NeedsRebuild(src, out string) (Decision, error) {
	srcStat, err := os.Stat(src)
	if errors.Is(err, fs.ErrNotExist) {
		return Decision{}, errs.Wrap(errs.CodeConfig, err, "missing source %s", src)
	} else if err != nil {
		return Decision{}, errs.Wrap(errs.CodeIO, err, "stat %s", src)
	}

	outStat, err := os.Stat(out)
	if errors.Is(err, fs.ErrNotExist) {
		return Decision{Rebuild: true, Reason: MissingOutput}, nil
	} else if err != nil {
		return Decision{}, errs.Wrap(errs.CodeIO, err, "stat %s", out)
	}

	if srcStat.ModTime().After(outStat.ModTime()) {
		return Decision{Rebuild: true, Reason: SourceNewer}, nil
	}
	return Decision{Reason: UpToDate}, nil
}
