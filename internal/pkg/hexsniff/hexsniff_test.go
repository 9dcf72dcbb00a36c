package hexsniff

import (
	"encoding/hex"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDecode_RoundTrip(t *testing.T) {
	// decode(encode(s)) == s for printable ASCII
	inputs := []string{
		"INVITE sip:+15551234567@ims.example.net SIP/2.0",
		"hello world",
		"a",
		"sip:+4915112345678@one.example.com;user=phone",
	}
	for _, s := range inputs {
		encoded := hex.EncodeToString([]byte(s))
		assert.Equal(t, s, Decode(encoded), "round trip for %q", s)
	}
}

func TestDecode_NonHexUnchanged(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"plain text", "termAttempt Version=2"},
		{"odd length hex", "48656c6c6"},
		{"contains non-hex char", "48656c6g"},
		{"empty", ""},
		{"uri", "sip:alice@example.com"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.input, Decode(tt.input))
		})
	}
}

func TestDecode_BinaryFallsBack(t *testing.T) {
	// Valid hex, but decodes to mostly unprintable bytes: must stay raw.
	raw := "00010203040506070809"
	assert.Equal(t, raw, Decode(raw))
}

func TestDecode_MixedBelowThreshold(t *testing.T) {
	// 3 printable bytes out of 5 is 60%, below the 70% threshold.
	payload := []byte{'a', 'b', 'c', 0x01, 0x02}
	encoded := hex.EncodeToString(payload)
	assert.Equal(t, encoded, Decode(encoded))
}

func TestDecode_WhitespaceCountsPrintable(t *testing.T) {
	payload := "line one\r\nline\ttwo\n"
	encoded := hex.EncodeToString([]byte(payload))
	assert.Equal(t, payload, Decode(encoded))
}

func TestDecode_UppercaseHex(t *testing.T) {
	payload := "SIP/2.0 180 Ringing"
	encoded := hex.EncodeToString([]byte(payload))
	upper := ""
	for _, c := range encoded {
		if c >= 'a' && c <= 'f' {
			c = c - 'a' + 'A'
		}
		upper += string(c)
	}
	assert.Equal(t, payload, Decode(upper))
}

func TestPrintableRatio(t *testing.T) {
	assert.Equal(t, 0.0, printableRatio(nil))
	assert.Equal(t, 1.0, printableRatio([]byte("abc")))
	assert.Equal(t, 0.5, printableRatio([]byte{'a', 0x00}))
}
