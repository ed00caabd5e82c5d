package analysis

import (
	"regexp"
	"strings"
)

const fence = "```"

// fencedBlock matches an opening fence with an optional language tag line,
// the fenced payload, and the closing fence.
var fencedBlock = regexp.MustCompile("(?s)" + fence + `(?:[\w+-]*[ \t]*\r?\n)?(.*?)` + fence)

// StripFences removes markdown code fence markers and keeps the fenced
// payload. Unmatched markers are dropped as well. The result never contains
// a fence, so StripFences is idempotent.
func StripFences(s string) string {
	s = fencedBlock.ReplaceAllString(s, "${1}")
	return strings.ReplaceAll(s, fence, "")
}

// ExtractCandidate returns the span from the first '{' to the last '}'
// inclusive. Braces are not matched, so two sibling objects yield one span
// covering both. Without such a span s is returned unchanged.
func ExtractCandidate(s string) string {
	start := strings.IndexByte(s, '{')
	end := strings.LastIndexByte(s, '}')
	if start >= 0 && end > start {
		return s[start : end+1]
	}
	return s
}

// Sanitize turns a raw model reply into the string handed to the JSON parser.
func Sanitize(raw string) string {
	return ExtractCandidate(strings.TrimSpace(StripFences(raw)))
}
