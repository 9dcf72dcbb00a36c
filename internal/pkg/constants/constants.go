// Package constants provides shared constants used across cdcat components.
package constants

// Hex payload sniffing
//
// CDC dumps hex-encode free-text field values inconsistently between vendors,
// so decoding is a heuristic, not a protocol rule: a candidate is accepted
// only when the decoded bytes look like text.
const (
	// PrintableRatioThreshold is the minimum fraction of printable bytes a
	// decoded hex candidate must contain to be accepted as encoded ASCII.
	// Below this the original text is kept untouched.
	PrintableRatioThreshold = 0.70

	// MinHexCandidateLength is the shortest hex string considered for
	// decoding (one encoded byte).
	MinHexCandidateLength = 2
)

// Cell identifier decoding
//
// The composite 3GPP cell id mixes hex and decimal encodings depending on the
// originating equipment. The tail after MCC+MNC is treated as hex when it
// contains a hex-only letter or is longer than a maximal decimal encoding.
const (
	// MinCellIdentifierLength is the minimum length of a composite cell id:
	// 3-digit MCC + 3-digit MNC + area/cell tail.
	MinCellIdentifierLength = 15

	// CellIDAreaDigits is the number of leading tail characters holding the
	// tracking-area code.
	CellIDAreaDigits = 4

	// MaxDecimalTailLength is the longest tail still interpreted as decimal
	// text; longer tails are decoded as hex.
	MaxDecimalTailLength = 8
)

// SIP content parsing limits
const (
	// MaxSipMessageSize caps the size of an embedded SIP payload before
	// header parsing, guarding against runaway blocks.
	MaxSipMessageSize = 65536

	// MaxSipHeaders caps the number of headers parsed from one SIP message.
	MaxSipHeaders = 100
)

// Correlation
const (
	// FallbackBucket is the correlation key used for records that carry no
	// call id of their own.
	FallbackBucket = "Global-Events"
)
