// Package enums rewrites TypeScript enum declarations into frozen const
// objects plus a derived union type.
//
// Block bodies are located with a brace-depth scanner, but members are parsed
// one line at a time. Member values containing their own brace structures
// (object literals, multi-line expressions) are not supported and produce
// unspecified members. Several members on one line are read as a single
// member, so `enum E { A, B }` yields the key "A, B".
package enums

import "errors"

var (
	// ErrNoBlocksFound is reported when a document contains no enum declarations.
	ErrNoBlocksFound = errors.New("no enums found")
	// ErrEmptyMemberList is reported for a block whose body yields no members.
	ErrEmptyMemberList = errors.New("enum has no members")
)

// Kind tags the value of an enum member.
type Kind int

const (
	KindAuto Kind = iota // no initializer; only present before Resolve
	KindNumber
	KindString
	KindIdentifier
)

func (k Kind) String() string {
	switch k {
	case KindAuto:
		return "auto"
	case KindNumber:
		return "number"
	case KindString:
		return "string"
	case KindIdentifier:
		return "identifier"
	default:
		return "unknown"
	}
}

// Member is one entry of an enum body.
type Member struct {
	Key     string
	Kind    Kind
	Number  int64  // set for KindNumber
	Text    string // set for KindString (unquoted) and KindIdentifier (raw)
	RawLine string // trimmed source line the member came from
	Comment string // trailing comment including leading whitespace, or ""
}

// ValueString renders the member value the way diagnostics show it:
// numbers bare, everything else single-quoted.
func (m Member) ValueString() string {
	if m.Kind == KindNumber {
		return formatInt(m.Number)
	}
	return "'" + m.Text + "'"
}

// Declaration is a parsed enum block.
type Declaration struct {
	Name     string
	TypeName string // derived union type emitted next to the const object
	Members  []Member
	Span     string // exact source text of the whole declaration
}

// Block is a raw match produced by Extract.
type Block struct {
	Name  string
	Body  string // text between the braces
	Span  string // header through closing brace
	Start int    // byte offsets of Span in the scanned document
	End   int
}
