package cdc

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const threeRecordDump = `termAttempt Version=2
timestamp=20250604035420.132Z
callId=003A8F2C
answer Version=2
timestamp=20250604035430.000Z
callId=003A8F2C
release Version=2
timestamp=20250604035600.000Z
callId=003A8F2C`

func TestSegment_SplitsOnHeaderLines(t *testing.T) {
	blocks := Segment(threeRecordDump)
	require.Len(t, blocks, 3)

	assert.True(t, strings.HasPrefix(blocks[0].Text, "termAttempt"))
	assert.True(t, strings.HasPrefix(blocks[1].Text, "answer"))
	assert.True(t, strings.HasPrefix(blocks[2].Text, "release"))
	for i, b := range blocks {
		assert.Equal(t, i, b.Index)
	}
}

func TestSegment_Lossless(t *testing.T) {
	inputs := []string{
		threeRecordDump,
		threeRecordDump + "\n",
		"leading junk before any header\n" + threeRecordDump,
		"no header lines at all\njust text\n",
		"single line",
	}
	for _, input := range inputs {
		blocks := Segment(input)
		texts := make([]string, len(blocks))
		for i, b := range blocks {
			texts[i] = b.Text
		}
		assert.Equal(t, input, strings.Join(texts, "\n"),
			"segmentation must be a lossless partition")
	}
}

func TestSegment_Empty(t *testing.T) {
	assert.Empty(t, Segment(""))
}

func TestSegment_LeadingJunkJoinsFirstBlock(t *testing.T) {
	blocks := Segment("garbage\ntermAttempt Version=2\nanswer Version=2\n")
	// The junk line cannot start a record but still occupies the first block.
	require.Len(t, blocks, 3)
	assert.Equal(t, "garbage", blocks[0].Text)
}

func TestIsHeaderLine(t *testing.T) {
	tests := []struct {
		line string
		want bool
	}{
		{"termAttempt Version=2", true},
		{"release Version 3", true},
		{"ccOpen Version:4", true},
		{"answer Version5", true},
		{" termAttempt Version=2", false}, // must start with a letter
		{"2termAttempt Version=2", false},
		{"termAttempt version=2", false}, // literal "Version"
		{"termAttempt VersionX", false},  // no digit follows
		{"timestamp=20250604035420.132Z", false},
		{"", false},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, isHeaderLine(tt.line), "line %q", tt.line)
	}
}
