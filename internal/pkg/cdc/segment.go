package cdc

import "strings"

// Segment splits a raw dump into ordered record blocks. A header line --
// first character alphabetic, containing "Version" followed by a digit --
// starts a new record. Segmentation is a lossless partition: joining the
// block texts with newlines reproduces the input byte for byte.
func Segment(text string) []RawBlock {
	if text == "" {
		return nil
	}

	var blocks []RawBlock
	var current []string

	flush := func() {
		if len(current) == 0 {
			return
		}
		blocks = append(blocks, RawBlock{
			Index: len(blocks),
			Text:  strings.Join(current, "\n"),
		})
		current = nil
	}

	for _, line := range strings.Split(text, "\n") {
		if isHeaderLine(line) && len(current) > 0 {
			flush()
		}
		current = append(current, line)
	}
	flush()
	return blocks
}

// isHeaderLine reports whether a line opens a new record.
func isHeaderLine(line string) bool {
	if line == "" {
		return false
	}
	c := line[0]
	if !((c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')) {
		return false
	}
	rest := line
	for {
		idx := strings.Index(rest, "Version")
		if idx < 0 {
			return false
		}
		after := rest[idx+len("Version"):]
		for i := 0; i < len(after); i++ {
			c := after[i]
			if c >= '0' && c <= '9' {
				return true
			}
			if c != ' ' && c != '=' && c != ':' && c != '\t' {
				break
			}
		}
		rest = after
	}
}
