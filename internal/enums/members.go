package enums

import (
	"regexp"
	"strconv"
	"strings"
)

var (
	lineCommentRe     = regexp.MustCompile(`//.*$`)
	blockCommentRe    = regexp.MustCompile(`/\*.*\*/`)
	trailingCommentRe = regexp.MustCompile(`\s*//.*$|\s*/\*.*\*/`)
)

// ParseMembers parses a block body into members without resolving
// auto-increment values.
func ParseMembers(body string) []Member {
	var members []Member
	for _, raw := range strings.Split(strings.TrimSpace(body), "\n") {
		line := strings.TrimSpace(raw)
		if line == "" || strings.HasPrefix(line, "//") || strings.HasPrefix(line, "/*") {
			continue
		}

		code, comment := splitComment(line)
		clean := strings.TrimSpace(code)
		if clean == "" || strings.HasPrefix(clean, "}") {
			continue
		}

		m := parseLine(clean)
		m.RawLine = line
		m.Comment = comment
		members = append(members, m)
	}
	return members
}

// splitComment separates a member line into code and its trailing comment,
// the comment keeping its leading whitespace. Comment markers inside string
// literals do not count.
func splitComment(line string) (code, comment string) {
	start := commentStart(line)
	if start < 0 {
		return line, ""
	}
	tail := lineCommentRe.ReplaceAllString(line[start:], "")
	tail = blockCommentRe.ReplaceAllString(tail, "")
	ws := len(strings.TrimRight(line[:start], " \t\f\r"))
	return line[:start] + tail, trailingCommentRe.FindString(line[ws:])
}

func commentStart(line string) int {
	for i := 0; i < len(line); i++ {
		switch line[i] {
		case '\'', '"', '`':
			i = skipString(line, i)
		case '/':
			if i+1 < len(line) && (line[i+1] == '/' || line[i+1] == '*') {
				return i
			}
		}
	}
	return -1
}

func parseLine(clean string) Member {
	key, value, ok := strings.Cut(clean, "=")
	if !ok {
		return Member{Key: trimSeparator(clean), Kind: KindAuto}
	}

	m := Member{Key: trimSeparator(key)}
	value = trimSeparator(value)
	switch {
	case isDigits(value):
		n, err := strconv.ParseInt(value, 10, 64)
		if err != nil {
			// Out of int64 range: keep the literal text.
			m.Kind, m.Text = KindIdentifier, value
			return m
		}
		m.Kind, m.Number = KindNumber, n
	case isQuoted(value):
		m.Kind, m.Text = KindString, value[1:len(value)-1]
	default:
		m.Kind, m.Text = KindIdentifier, value
	}
	return m
}

// Resolve assigns numbers to auto members. Returns a new slice.
func Resolve(members []Member) []Member {
	out := make([]Member, len(members))
	var next int64
	for i, m := range members {
		switch m.Kind {
		case KindAuto:
			m.Kind, m.Number = KindNumber, next
			next++
		case KindNumber:
			next = m.Number + 1
		}
		out[i] = m
	}
	return out
}

// Parse parses and resolves a block body.
func Parse(body string) []Member {
	return Resolve(ParseMembers(body))
}

func trimSeparator(s string) string {
	s = strings.TrimSpace(s)
	s = strings.TrimSuffix(s, ",")
	return strings.TrimSpace(s)
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}

func isQuoted(s string) bool {
	if len(s) < 2 {
		return false
	}
	q := s[0]
	return (q == '\'' || q == '"') && s[len(s)-1] == q
}

func formatInt(n int64) string {
	return strconv.FormatInt(n, 10)
}
