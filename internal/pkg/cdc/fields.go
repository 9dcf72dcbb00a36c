package cdc

import (
	"regexp"
	"strings"
	"sync"

	"github.com/endorses/cdcat/internal/pkg/hexsniff"
)

// Generic key=value scanners shared by every type parser. Extraction failure
// is an empty string: a missing field never affects its siblings.

var fieldRECache sync.Map // pattern string -> *regexp.Regexp

func cachedRE(pattern string) *regexp.Regexp {
	if re, ok := fieldRECache.Load(pattern); ok {
		return re.(*regexp.Regexp)
	}
	re := regexp.MustCompile(pattern)
	fieldRECache.Store(pattern, re)
	return re
}

// ExtractField returns the value of the first `name = value` line in the
// block, case-insensitively, with the hex-decoding heuristic applied.
// Returns "" when the field is absent.
func ExtractField(block, name string) string {
	// Horizontal whitespace only: \s would swallow the newline of an
	// empty-valued key and capture the following line.
	re := cachedRE(`(?i)` + regexp.QuoteMeta(name) + `[ \t]*=[ \t]*([^\r\n]+)`)
	match := re.FindStringSubmatch(block)
	if match == nil {
		return ""
	}
	return hexsniff.Decode(strings.TrimSpace(match[1]))
}

// ExtractNestedField returns the value of the first `child = value` line
// occurring after the first occurrence of parent in the block. Used to pull
// identifiers nested under a section header, distinct from a same-named
// top-level field.
func ExtractNestedField(block, parent, child string) string {
	parentRE := cachedRE(`(?i)` + regexp.QuoteMeta(parent))
	loc := parentRE.FindStringIndex(block)
	if loc == nil {
		return ""
	}
	return ExtractField(block[loc[1]:], child)
}

// extractAllFields returns every value of repeated `name[n] = value` lines,
// in block order, hex-decoded.
func extractAllFields(block, name string) []string {
	re := cachedRE(`(?i)` + regexp.QuoteMeta(name) + `\[\d+\][ \t]*=[ \t]*([^\r\n]+)`)
	matches := re.FindAllStringSubmatch(block, -1)
	var out []string
	for _, m := range matches {
		out = append(out, hexsniff.Decode(strings.TrimSpace(m[1])))
	}
	return out
}
