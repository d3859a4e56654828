package enums

import "regexp"

// headerRe matches an enum header up to and including its opening brace.
// Modifiers may appear in any order and any subset.
var headerRe = regexp.MustCompile(`\b(?:(?:export|declare|const)\s+)*enum\s+(\w+)\s*\{`)

// Extract returns the enum blocks of src in source order. Blocks never
// overlap. A header whose opening brace is never closed is ignored.
func Extract(src string) []Block {
	var blocks []Block
	pos := 0
	for pos < len(src) {
		loc := headerRe.FindStringSubmatchIndex(src[pos:])
		if loc == nil {
			break
		}
		start, open := pos+loc[0], pos+loc[1]-1
		name := src[pos+loc[2] : pos+loc[3]]

		end := matchBrace(src, open)
		if end < 0 {
			pos = open + 1
			continue
		}
		blocks = append(blocks, Block{
			Name:  name,
			Body:  src[open+1 : end],
			Span:  src[start : end+1],
			Start: start,
			End:   end + 1,
		})
		pos = end + 1
	}
	return blocks
}

// matchBrace returns the index of the brace closing the one at open, or -1.
// Braces inside string literals and comments are ignored.
func matchBrace(src string, open int) int {
	depth := 0
	for i := open; i < len(src); i++ {
		switch c := src[i]; c {
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return i
			}
		case '\'', '"', '`':
			i = skipString(src, i)
		case '/':
			if i+1 >= len(src) {
				continue
			}
			switch src[i+1] {
			case '/':
				i = skipTo(src, i+2, "\n") - 1
			case '*':
				i = skipTo(src, i+2, "*/") - 1
			}
		}
	}
	return -1
}

// skipString returns the index of the quote closing the literal opened at i.
// Single and double quoted literals also end at a newline.
func skipString(src string, i int) int {
	q := src[i]
	for j := i + 1; j < len(src); j++ {
		switch src[j] {
		case '\\':
			j++
		case q:
			return j
		case '\n':
			if q != '`' {
				return j
			}
		}
	}
	return len(src)
}

// skipTo returns the index just past the first occurrence of marker at or
// after i, or len(src) when marker is absent.
func skipTo(src string, i int, marker string) int {
	for j := i; j+len(marker) <= len(src); j++ {
		if src[j:j+len(marker)] == marker {
			return j + len(marker)
		}
	}
	return len(src)
}
