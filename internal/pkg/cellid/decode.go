// Package cellid decodes and normalizes 3GPP composite cell identifiers
// found in CDC location records and SIP P-Access-Network-Info headers.
//
// The composite identifier packs MCC, MNC and an area/cell tail into one
// string, but vendors disagree on whether the tail is hex or decimal text.
// The decoder picks a branch with a heuristic (see decodeTail) rather than a
// protocol-correct rule; both branches are deliberate approximations.
package cellid

import (
	"strconv"
	"strings"

	"github.com/endorses/cdcat/internal/pkg/constants"
)

// Identifier is a decoded composite cell identifier. All fields besides
// FullCellID are optional: a too-short or undecodable identifier keeps only
// the raw value.
type Identifier struct {
	FullCellID string `json:"fullCellId"`
	MCC        string `json:"mcc,omitempty"`
	MNC        string `json:"mnc,omitempty"`
	// LAC and CellID hold the area code and cell id. In the hex branch they
	// are the decimal renderings of the parsed hex values; in the decimal
	// branch they are the raw numeric-looking tail slices, unparsed.
	LAC    string `json:"lac,omitempty"`
	CellID string `json:"cellId,omitempty"`
	// LACHex and CIDHex are set only when the tail decoded as hex.
	LACHex string `json:"lacHex,omitempty"`
	CIDHex string `json:"cidHex,omitempty"`
}

// Decode splits a composite cell identifier into MCC, MNC and the decoded
// area/cell pair. Identifiers shorter than the minimum composite width are
// returned with only FullCellID populated.
func Decode(full string) *Identifier {
	ident := &Identifier{FullCellID: full}
	if len(full) < constants.MinCellIdentifierLength {
		return ident
	}
	ident.MCC = full[:3]
	ident.MNC = full[3:6]
	decodeTail(ident, full[6:])
	return ident
}

// decodeTail decodes the post-MNC tail. Hex branch when the tail contains a
// hex-only letter or is too long to be a decimal encoding; decimal branch
// leaves the slices as text.
func decodeTail(ident *Identifier, tail string) {
	if isHexTail(tail) {
		area := tail[:constants.CellIDAreaDigits]
		cell := tail[constants.CellIDAreaDigits:]
		ident.LACHex = area
		ident.CIDHex = cell
		if v, err := strconv.ParseInt(area, 16, 64); err == nil {
			ident.LAC = strconv.FormatInt(v, 10)
		}
		if v, err := strconv.ParseInt(cell, 16, 64); err == nil {
			ident.CellID = strconv.FormatInt(v, 10)
		}
		return
	}
	ident.LAC = tail[:constants.CellIDAreaDigits]
	ident.CellID = tail[constants.CellIDAreaDigits:]
}

// isHexTail reports whether the tail must be decoded as hexadecimal: any
// a-f letter forces hex, as does a length no decimal encoding would reach.
func isHexTail(tail string) bool {
	if len(tail) > constants.MaxDecimalTailLength {
		return true
	}
	lower := strings.ToLower(tail)
	return strings.ContainsAny(lower, "abcdef")
}

// CompositeKey returns the "area-cell" lookup key for this identifier, or ""
// when either half is missing.
func (id *Identifier) CompositeKey() string {
	if id == nil || id.LAC == "" || id.CellID == "" {
		return ""
	}
	return id.LAC + "-" + id.CellID
}
