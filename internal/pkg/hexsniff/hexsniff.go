// Package hexsniff detects and reverses hex-encoded ASCII field values.
//
// CDC equipment from some vendors hex-encodes free-text values (SIP payloads,
// SMS bodies, URIs) while others emit them as plain text, with no marker
// distinguishing the two. Decoding is therefore a sniff: a value is only
// treated as encoded when the decoded bytes look like text.
package hexsniff

import (
	"encoding/hex"

	"github.com/endorses/cdcat/internal/pkg/constants"
)

// Decode returns the hex-decoded form of s when s sniffs as hex-encoded
// ASCII, and s unchanged otherwise. Decode never fails: structurally invalid
// hex and binary-looking payloads both fall back to the original text.
func Decode(s string) string {
	if !isHexCandidate(s) {
		return s
	}
	decoded, err := hex.DecodeString(s)
	if err != nil {
		return s
	}
	if printableRatio(decoded) < constants.PrintableRatioThreshold {
		return s
	}
	return string(decoded)
}

// isHexCandidate reports whether s is structurally decodable: non-trivial
// even length and hex digits only.
func isHexCandidate(s string) bool {
	if len(s) < constants.MinHexCandidateLength || len(s)%2 != 0 {
		return false
	}
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case c >= '0' && c <= '9':
		case c >= 'a' && c <= 'f':
		case c >= 'A' && c <= 'F':
		default:
			return false
		}
	}
	return true
}

// printableRatio returns the fraction of bytes that are printable ASCII.
// TAB, CR and LF count as printable since decoded SIP payloads are
// line-oriented text.
func printableRatio(b []byte) float64 {
	if len(b) == 0 {
		return 0
	}
	printable := 0
	for _, c := range b {
		if (c >= 0x20 && c <= 0x7e) || c == '\t' || c == '\r' || c == '\n' {
			printable++
		}
	}
	return float64(printable) / float64(len(b))
}
