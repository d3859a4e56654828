package enums

import (
	"fmt"
	"log/slog"
	"strings"
)

// Result is the outcome of one transform pass.
type Result struct {
	Source    string        // document after replacement
	Found     int           // number of enum blocks matched
	Converted []Declaration // blocks that were replaced, in source order
	Skipped   []error       // per-block ErrEmptyMemberList diagnostics
}

// Err returns ErrNoBlocksFound when the document had no enum blocks.
func (r *Result) Err() error {
	if r.Found == 0 {
		return ErrNoBlocksFound
	}
	return nil
}

// Changed reports whether any block was replaced.
func (r *Result) Changed() bool {
	return len(r.Converted) > 0
}

// Transformer replaces enum blocks with const objects.
type Transformer struct {
	opts   EmitOptions
	logger *slog.Logger
}

// NewTransformer creates a transformer. An empty TypePrefix falls back to
// DefaultTypePrefix.
func NewTransformer(opts EmitOptions, logger *slog.Logger) *Transformer {
	if opts.TypePrefix == "" {
		opts.TypePrefix = DefaultTypePrefix
	}
	return &Transformer{
		opts:   opts,
		logger: logger.With("component", "enums"),
	}
}

// Transform rewrites every enum block in src. Blocks are taken from the
// original text; each replacement swaps every occurrence of the block's exact
// text in the current document.
func (t *Transformer) Transform(src string) *Result {
	blocks := Extract(src)
	res := &Result{Source: src, Found: len(blocks)}

	for _, blk := range blocks {
		members := Parse(blk.Body)
		if len(members) == 0 {
			err := fmt.Errorf("enum %s: %w", blk.Name, ErrEmptyMemberList)
			t.logger.Warn("skipping enum", "enum", blk.Name, "error", err)
			res.Skipped = append(res.Skipped, err)
			continue
		}

		decl := Declaration{
			Name:     blk.Name,
			TypeName: t.opts.TypeName(blk.Name),
			Members:  members,
			Span:     blk.Span,
		}
		res.Source = strings.ReplaceAll(res.Source, decl.Span, Emit(decl.Name, decl.Members, t.opts))
		res.Converted = append(res.Converted, decl)
		t.logger.Debug("converted enum", "enum", decl.Name, "type", decl.TypeName, "members", len(members))
	}

	if res.Found == 0 {
		t.logger.Info("no enums found")
	}
	return res
}
