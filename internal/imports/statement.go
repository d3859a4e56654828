package imports

import (
	"regexp"
	"strings"
)

var (
	// namedImportRe matches `import {A, B} from 'path';`. The `import type {...}`
	// form does not match and is left alone.
	namedImportRe = regexp.MustCompile(`\bimport\s*\{([^}]*)\}\s*from\s*(['"])([^'"]+)['"](;?)`)

	// anyImportRe matches every import clause that binds names.
	anyImportRe = regexp.MustCompile(`\bimport\s+[\w\s{},*$]*?\bfrom\s*['"][^'"\n]+['"];?`)

	specifierRe = regexp.MustCompile(`^(?:(type)\s+)?([\w$]+)(?:\s+as\s+([\w$]+))?$`)

	listCommentRe = regexp.MustCompile(`(?s)/\*.*?\*/|//[^\n]*`)
)

// Specifier is one entry of a named import list.
type Specifier struct {
	Name     string // exported name
	Local    string // local binding; equals Name without an alias
	TypeOnly bool   // written with an inline type marker
}

// ParseSpecifier parses `Name`, `Name as Local` or `type Name [as Local]`.
// Text that does not fit is kept whole as Name.
func ParseSpecifier(s string) Specifier {
	s = strings.TrimSpace(s)
	m := specifierRe.FindStringSubmatch(s)
	if m == nil {
		return Specifier{Name: s, Local: s}
	}
	sp := Specifier{Name: m[2], Local: m[2], TypeOnly: m[1] != ""}
	if m[3] != "" {
		sp.Local = m[3]
	}
	return sp
}

// String renders the specifier without its type marker.
func (s Specifier) String() string {
	if s.Local == s.Name {
		return s.Name
	}
	return s.Name + " as " + s.Local
}

// Statement is a parsed named import.
type Statement struct {
	Specifiers []Specifier
	ModulePath string
	Quote      string
	Semicolon  bool
	Comments   bool // the brace list held comments, dropped from Specifiers
	Raw        string
	Start, End int
}

// ParseStatements returns the named import statements of src in order.
func ParseStatements(src string) []Statement {
	var out []Statement
	for _, loc := range namedImportRe.FindAllStringSubmatchIndex(src, -1) {
		body := src[loc[2]:loc[3]]
		stripped := listCommentRe.ReplaceAllString(body, " ")
		out = append(out, Statement{
			Specifiers: parseSpecifierList(stripped),
			Comments:   stripped != body,
			Quote:      src[loc[4]:loc[5]],
			ModulePath: src[loc[6]:loc[7]],
			Semicolon:  loc[9] > loc[8],
			Raw:        src[loc[0]:loc[1]],
			Start:      loc[0],
			End:        loc[1],
		})
	}
	return out
}

// parseSpecifierList splits a brace body, dropping empty entries and
// repeated local names.
func parseSpecifierList(body string) []Specifier {
	var out []Specifier
	seen := make(map[string]bool)
	for _, item := range strings.Split(body, ",") {
		if strings.TrimSpace(item) == "" {
			continue
		}
		sp := ParseSpecifier(item)
		if seen[sp.Local] {
			continue
		}
		seen[sp.Local] = true
		out = append(out, sp)
	}
	return out
}

// Render builds the statement text for the given groups. Values come first,
// then types with inline markers. With no values the statement becomes
// `import type {...}`. With both groups empty Raw is returned.
func (s Statement) Render(values, types []Specifier) string {
	if len(values) == 0 && len(types) == 0 {
		return s.Raw
	}

	var parts []string
	for _, sp := range values {
		parts = append(parts, sp.String())
	}
	for _, sp := range types {
		if len(values) > 0 {
			parts = append(parts, "type "+sp.String())
		} else {
			parts = append(parts, sp.String())
		}
	}

	var b strings.Builder
	b.WriteString("import ")
	if len(values) == 0 {
		b.WriteString("type ")
	}
	b.WriteString("{")
	b.WriteString(strings.Join(parts, ", "))
	b.WriteString("} from ")
	b.WriteString(s.Quote + s.ModulePath + s.Quote)
	if s.Semicolon {
		b.WriteString(";")
	}
	return b.String()
}
