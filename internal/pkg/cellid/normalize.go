package cellid

import (
	"regexp"
	"strconv"
	"strings"
)

// Normalized matching keys for the external tower-lookup table. The table
// and the dump rarely agree on formatting (dash-delimited vs bare hex,
// mixed case, stray punctuation), so lookups go through canonical keys
// instead of raw identifiers.

var (
	nonHexRE        = regexp.MustCompile(`[^0-9a-f]`)
	nonHexOrSepRE   = regexp.MustCompile(`[^0-9a-fA-F:-]`)
	numericPrefixRE = regexp.MustCompile(`^\d{6}[0-9a-f]+$`)
)

// FullKey canonicalizes a cell identifier for full-id matching: lowercase
// with every non-hex character stripped.
func FullKey(id string) string {
	return nonHexRE.ReplaceAllString(strings.ToLower(id), "")
}

// ShortKey derives the 7-character short-id key used for fuzzy matching
// against tower tables that only carry the cell portion. It is valid only
// for identifiers with a numeric MCC+MNC prefix of at least 6 digits,
// followed by either exactly 7 remaining characters or at least 11 (in which
// case the last 7 are kept).
func ShortKey(id string) (string, bool) {
	norm := FullKey(id)
	if len(norm) < 6 {
		return "", false
	}
	for i := 0; i < 6; i++ {
		if norm[i] < '0' || norm[i] > '9' {
			return "", false
		}
	}
	rest := norm[6:]
	switch {
	case len(rest) == 7:
		return rest, true
	case len(rest) >= 11:
		return rest[len(rest)-7:], true
	default:
		return "", false
	}
}

// DeriveAreaCode recovers a tracking-area code from a full identifier when
// no explicit area column is available (tower tables frequently publish an
// ECGI column only). Two forms are recognized:
//
//   - fixed-width identifiers with a numeric MCC+MNC prefix: hex positions
//     6-10 are the area code;
//   - dash/colon-delimited identifiers: the second segment (or the only
//     segment) is interpreted as hex and integer-divided by 256.
//
// The returned code is the decimal rendering, matching Identifier.LAC.
func DeriveAreaCode(full string) (string, bool) {
	cleaned := nonHexOrSepRE.ReplaceAllString(strings.ToLower(full), "")
	if cleaned == "" {
		return "", false
	}
	if numericPrefixRE.MatchString(cleaned) && len(cleaned) >= 10 {
		v, err := strconv.ParseInt(cleaned[6:10], 16, 64)
		if err != nil {
			return "", false
		}
		return strconv.FormatInt(v, 10), true
	}
	segments := strings.FieldsFunc(cleaned, func(r rune) bool {
		return r == '-' || r == ':'
	})
	if len(segments) == 0 {
		return "", false
	}
	seg := segments[0]
	if len(segments) >= 2 {
		seg = segments[1]
	}
	v, err := strconv.ParseInt(seg, 16, 64)
	if err != nil {
		return "", false
	}
	return strconv.FormatInt(v/256, 10), true
}
