package enums

import (
	"fmt"
	"strings"
)

// DefaultTypePrefix is prepended to the enum name to form the derived type.
const DefaultTypePrefix = "T"

// EmitOptions controls rendering of the replacement text.
type EmitOptions struct {
	TypePrefix string
}

// DefaultEmitOptions returns the options used when none are configured.
func DefaultEmitOptions() EmitOptions {
	return EmitOptions{TypePrefix: DefaultTypePrefix}
}

// TypeName returns the derived type name for an enum.
func (o EmitOptions) TypeName(name string) string {
	return o.TypePrefix + name
}

// Emit renders the const object and its derived type, separated by one
// blank line. Identifier values are emitted as string literals of the
// referenced name.
func Emit(name string, members []Member, opts EmitOptions) string {
	var b strings.Builder
	fmt.Fprintf(&b, "export const %s = {\n", name)
	for _, m := range members {
		writeEntry(&b, m)
	}
	b.WriteString("} as const;\n\n")
	writeTypeDecl(&b, name, opts)
	return b.String()
}

func writeEntry(b *strings.Builder, m Member) {
	b.WriteString("  ")
	b.WriteString(m.Key)
	b.WriteString(": ")
	if m.Kind == KindNumber {
		b.WriteString(formatInt(m.Number))
	} else {
		b.WriteString("'" + escapeSingleQuotes(m.Text) + "'")
	}
	b.WriteString(",")
	b.WriteString(m.Comment)
	b.WriteString("\n")
}

func writeTypeDecl(b *strings.Builder, name string, opts EmitOptions) {
	fmt.Fprintf(b, "export type %s = typeof %s[keyof typeof %s];", opts.TypeName(name), name, name)
}

// escapeSingleQuotes escapes quotes not already preceded by a backslash.
func escapeSingleQuotes(s string) string {
	if !strings.Contains(s, "'") {
		return s
	}
	var b strings.Builder
	for i := 0; i < len(s); i++ {
		if s[i] == '\'' && (i == 0 || s[i-1] != '\\') {
			b.WriteByte('\\')
		}
		b.WriteByte(s[i])
	}
	return b.String()
}
