package imports

import (
	"log/slog"
	"strings"
)

// Decision records how one specifier was grouped.
type Decision struct {
	Specifier Specifier
	Usage     Usage
	TypeOnly  bool
}

// StatementReport describes the rewrite of one import statement.
type StatementReport struct {
	ModulePath string
	Decisions  []Decision
	Before     string
	After      string
}

// Result is the outcome of one rewrite pass.
type Result struct {
	Source         string
	Classification Classification
	Statements     []StatementReport
}

// Changed reports whether any statement text differs from the input.
func (r *Result) Changed() bool {
	for _, st := range r.Statements {
		if st.Before != st.After {
			return true
		}
	}
	return false
}

// Rewriter splits named imports into value and type-only specifiers.
type Rewriter struct {
	rules  []Rule
	logger *slog.Logger
}

// NewRewriter creates a rewriter using the package rule table.
func NewRewriter(logger *slog.Logger) *Rewriter {
	return &Rewriter{
		rules:  Rules,
		logger: logger.With("component", "imports"),
	}
}

// Rewrite classifies identifiers in src and re-renders every named import.
func (r *Rewriter) Rewrite(src string) *Result {
	cls := Classify(src, r.rules)
	res := &Result{Source: src, Classification: cls}

	stmts := ParseStatements(src)
	if len(stmts) == 0 {
		return res
	}

	var b strings.Builder
	last := 0
	for _, st := range stmts {
		report := r.rewriteStatement(st, cls)
		res.Statements = append(res.Statements, report)

		b.WriteString(src[last:st.Start])
		b.WriteString(report.After)
		last = st.End
	}
	b.WriteString(src[last:])
	res.Source = b.String()

	r.logger.Debug("imports classified",
		"types", cls.TypeNames(),
		"values", cls.ValueNames(),
		"statements", len(stmts))
	return res
}

func (r *Rewriter) rewriteStatement(st Statement, cls Classification) StatementReport {
	report := StatementReport{ModulePath: st.ModulePath, Before: st.Raw}

	var values, types []Specifier
	narrowed := false
	for _, sp := range st.Specifiers {
		u := cls.Lookup(sp.Local)
		d := Decision{Specifier: sp, Usage: u, TypeOnly: sp.TypeOnly || u.TypeOnly()}
		if d.TypeOnly {
			types = append(types, sp)
			narrowed = narrowed || !sp.TypeOnly
		} else {
			values = append(values, sp)
		}
		report.Decisions = append(report.Decisions, d)
	}

	// Rendering drops comments, so keep a commented list unless it narrows.
	if st.Comments && !narrowed {
		report.After = st.Raw
		return report
	}
	report.After = st.Render(values, types)
	return report
}
