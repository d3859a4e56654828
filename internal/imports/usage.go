// Package imports splits TypeScript named imports into value and type-only
// specifiers based on how each name is used in the document.
//
// Classification is pattern based. The generic-argument rule `<Name ...>`
// also matches JSX elements, so in .tsx files a component used only as
// `<Name />` is classified as a type and its import is narrowed to
// `import type`. Such files should be run with the enums mode only.
package imports

import (
	"regexp"
	"sort"
)

// Kind says which position a rule detects.
type Kind int

const (
	TypePosition Kind = iota
	ValuePosition
)

func (k Kind) String() string {
	if k == TypePosition {
		return "type"
	}
	return "value"
}

// Rule is one positional pattern. Group 1 captures the identifier.
type Rule struct {
	Kind    Kind
	Pattern *regexp.Regexp
}

// typeName allows one leading T so derived enum types are captured whole.
const typeName = `(\b[T]?[A-Z][a-zA-Z]+\b)`

const valueName = `([A-Z][a-zA-Z]+)`

func rule(k Kind, expr string) Rule {
	return Rule{Kind: k, Pattern: regexp.MustCompile(expr)}
}

// Rules is the classification table. Classification is the union of all
// matches; order does not matter.
var Rules = []Rule{
	// annotations
	rule(TypePosition, `[:?]\s*`+typeName+`[,\s;)\]]`),
	// in-clauses and mapped type keys
	rule(TypePosition, `\bin\s+`+typeName+`\b`),
	rule(TypePosition, `\[\s*\w+\s+in\s+`+typeName+`\s*\]`),
	// generic parameters
	rule(TypePosition, `<\s*`+typeName+`[^>]*>`),
	rule(TypePosition, `\bRecord\s*<\s*`+typeName+`[^>]*>`),
	rule(TypePosition, `\bArray\s*<\s*`+typeName+`[^>]*>`),
	rule(TypePosition, `\bPromise\s*<\s*`+typeName+`[^>]*>`),
	rule(TypePosition, `\bMap\s*<\s*`+typeName+`[^>]*>`),
	rule(TypePosition, `\bSet\s*<\s*`+typeName+`[^>]*>`),
	// aliases and casts
	rule(TypePosition, `\btype\s+\w+\s*=\s*`+typeName+`\b`),
	rule(TypePosition, `\bas\s+`+typeName+`\b`),
	rule(TypePosition, `\bexport\s+type\s+\w+\s*=\s*`+typeName+`\b`),
	rule(TypePosition, `\bexport\s+interface\s+\w+\s*extends\s*`+typeName+`\b`),
	rule(TypePosition, `\bexport\s+\w+\s*:\s*`+typeName+`\b`),

	rule(ValuePosition, `\b`+valueName+`\.\w+`),
	rule(ValuePosition, `\b`+valueName+`\s*\.`),
	rule(ValuePosition, `=\s*`+valueName+`\b`),
	rule(ValuePosition, `\b`+valueName+`\[`),
	rule(ValuePosition, `\[\s*`+valueName+`\s*\]`),
	rule(ValuePosition, `new\s+`+valueName+`\b`),
	rule(ValuePosition, `\binstanceof\s+`+valueName+`\b`),
	rule(ValuePosition, `\btypeof\s+`+valueName+`\b`),
	rule(ValuePosition, `\bexport\s+default\s+`+valueName+`\b`),
	rule(ValuePosition, `\bexport\s+\{\s*`+valueName+`\s*\}`),
	rule(ValuePosition, `\bexport\s+const\s+\w+\s*=\s*`+valueName+`\b`),
}

// Usage records the positions a name was seen in.
type Usage struct {
	Type  bool
	Value bool
}

// TypeOnly reports whether the name may be imported with a type marker.
func (u Usage) TypeOnly() bool {
	return u.Type && !u.Value
}

func (u Usage) String() string {
	switch {
	case u.Type && u.Value:
		return "both"
	case u.Type:
		return "type"
	case u.Value:
		return "value"
	default:
		return "unknown"
	}
}

// Classification maps identifiers to their usage. It is read-only once built.
type Classification struct {
	usage map[string]Usage
}

// Lookup returns the usage recorded for name.
func (c Classification) Lookup(name string) Usage {
	return c.usage[name]
}

// TypeNames returns the sorted names seen in type position.
func (c Classification) TypeNames() []string {
	return c.names(func(u Usage) bool { return u.Type })
}

// ValueNames returns the sorted names seen in value position.
func (c Classification) ValueNames() []string {
	return c.names(func(u Usage) bool { return u.Value })
}

func (c Classification) names(keep func(Usage) bool) []string {
	var out []string
	for name, u := range c.usage {
		if keep(u) {
			out = append(out, name)
		}
	}
	sort.Strings(out)
	return out
}

// Classify runs rules over src. Import statements are blanked out first so
// their own text never counts as a usage.
func Classify(src string, rules []Rule) Classification {
	text := maskImports(src)
	usage := make(map[string]Usage)
	for _, r := range rules {
		for _, m := range r.Pattern.FindAllStringSubmatch(text, -1) {
			name := m[1]
			if name == "" {
				continue
			}
			u := usage[name]
			if r.Kind == TypePosition {
				u.Type = true
			} else {
				u.Value = true
			}
			usage[name] = u
		}
	}
	return Classification{usage: usage}
}

// maskImports replaces every import statement with spaces, keeping newlines
// so offsets and line structure survive.
func maskImports(src string) string {
	locs := anyImportRe.FindAllStringIndex(src, -1)
	locs = append(locs, namedImportRe.FindAllStringIndex(src, -1)...)
	if len(locs) == 0 {
		return src
	}
	buf := []byte(src)
	for _, loc := range locs {
		for i := loc[0]; i < loc[1]; i++ {
			if buf[i] != '\n' {
				buf[i] = ' '
			}
		}
	}
	return string(buf)
}
