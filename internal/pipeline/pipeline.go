// Package pipeline runs the enum and import passes over one document.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/olehluchkiv/enumshift/internal/enums"
	"github.com/olehluchkiv/enumshift/internal/imports"
)

// ErrPassFailed wraps a failure recovered inside a pass.
var ErrPassFailed = errors.New("pass failed")

// Report collects what the passes did.
type Report struct {
	Source   string          // final document
	Enums    *enums.Result   // nil if the enum pass did not run to completion
	Imports  *imports.Result // nil if the import pass did not run to completion
	Warnings []error         // non-fatal conditions, including recovered failures
}

// Pass transforms a document. Passes record their typed results in rep.
type Pass interface {
	Name() string
	Run(src string, rep *Report) string
}

// CommitFunc persists the document after a pass changed it.
type CommitFunc func(pass, src string) error

// EnumPass converts enum declarations.
type EnumPass struct {
	t *enums.Transformer
}

func NewEnumPass(t *enums.Transformer) *EnumPass { return &EnumPass{t: t} }

func (p *EnumPass) Name() string { return "enums" }

func (p *EnumPass) Run(src string, rep *Report) string {
	res := p.t.Transform(src)
	rep.Enums = res
	if err := res.Err(); err != nil {
		rep.Warnings = append(rep.Warnings, err)
	}
	rep.Warnings = append(rep.Warnings, res.Skipped...)
	return res.Source
}

// ImportPass splits named imports into value and type-only groups.
type ImportPass struct {
	r *imports.Rewriter
}

func NewImportPass(r *imports.Rewriter) *ImportPass { return &ImportPass{r: r} }

func (p *ImportPass) Name() string { return "imports" }

func (p *ImportPass) Run(src string, rep *Report) string {
	res := p.r.Rewrite(src)
	rep.Imports = res
	return res.Source
}

// Run applies passes in order; each pass sees the previous pass's output.
// A pass that panics leaves the document as it was and the next pass still
// runs. commit may be nil. Only a commit error or context cancellation stops
// the run.
func Run(ctx context.Context, src string, passes []Pass, commit CommitFunc, logger *slog.Logger) (*Report, error) {
	logger = logger.With("component", "pipeline")
	rep := &Report{Source: src}

	for _, p := range passes {
		if err := ctx.Err(); err != nil {
			return rep, err
		}

		logger.Debug("running pass", "pass", p.Name())
		out, err := runSafe(p, rep.Source, rep)
		if err != nil {
			logger.Error("pass aborted", "pass", p.Name(), "error", err)
			rep.Warnings = append(rep.Warnings, err)
			continue
		}
		if out == rep.Source {
			logger.Info("pass made no changes", "pass", p.Name())
			continue
		}

		rep.Source = out
		if commit != nil {
			if err := commit(p.Name(), out); err != nil {
				return rep, fmt.Errorf("commit %s: %w", p.Name(), err)
			}
		}
		logger.Info("pass applied", "pass", p.Name())
	}
	return rep, nil
}

func runSafe(p Pass, src string, rep *Report) (out string, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%s: %w: %v", p.Name(), ErrPassFailed, r)
		}
	}()
	return p.Run(src, rep), nil
}
