package pipeline

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/olehluchkiv/enumshift/internal/enums"
	"github.com/olehluchkiv/enumshift/internal/imports"
)

// Mode selects which passes run.
type Mode string

const (
	ModeAll     Mode = "all"
	ModeEnums   Mode = "enums"
	ModeImports Mode = "imports"
)

// ParseMode parses a mode name. The empty string means ModeAll.
func ParseMode(s string) (Mode, error) {
	switch Mode(strings.ToLower(strings.TrimSpace(s))) {
	case "", ModeAll:
		return ModeAll, nil
	case ModeEnums:
		return ModeEnums, nil
	case ModeImports:
		return ModeImports, nil
	default:
		return ModeAll, fmt.Errorf("unknown mode: %s (valid: all, enums, imports)", s)
	}
}

// Options configures the passes built by Passes.
type Options struct {
	Mode       Mode
	TypePrefix string
}

// Passes builds the pass list for opts. The enum pass always precedes the
// import pass so derived type names are visible to classification.
func Passes(opts Options, logger *slog.Logger) []Pass {
	var passes []Pass
	if opts.Mode == ModeAll || opts.Mode == ModeEnums || opts.Mode == "" {
		t := enums.NewTransformer(enums.EmitOptions{TypePrefix: opts.TypePrefix}, logger)
		passes = append(passes, NewEnumPass(t))
	}
	if opts.Mode == ModeAll || opts.Mode == ModeImports || opts.Mode == "" {
		passes = append(passes, NewImportPass(imports.NewRewriter(logger)))
	}
	return passes
}
