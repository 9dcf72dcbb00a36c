package cellid

import (
	"regexp"
	"strings"

	"github.com/endorses/cdcat/internal/pkg/hexsniff"
)

// LocationTypeHeaderDerived tags a location synthesized from a top-level
// cell identifier when a record carries no accepted location sub-block.
const LocationTypeHeaderDerived = "headerCellId"

// LocationTypeAccessNetwork tags a location lifted from a SIP
// P-Access-Network-Info header.
const LocationTypeAccessNetwork = "accessNetworkInfo"

// Location is one decoded cell-location observation.
type Location struct {
	Type      string      `json:"type"`
	RawData   string      `json:"rawData"`
	Parsed    *Identifier `json:"parsed,omitempty"`
	Timestamp string      `json:"timestamp,omitempty"`
}

var (
	locationMarkerRE = regexp.MustCompile(`(?i)location\[\d+\]`)
	cellID3gppRE     = regexp.MustCompile(`(?i)cell-id-3gpp[ \t]*=[ \t]*"?([0-9a-fA-F]+)"?`)
	locTypeRE        = regexp.MustCompile(`(?i)locationType[ \t]*=[ \t]*([^\r\n]+)`)
	locDataRE        = regexp.MustCompile(`(?i)locationData[ \t]*=[ \t]*([^\r\n]+)`)
	locTimestampRE   = regexp.MustCompile(`(?i)timestamp[ \t]*=[ \t]*([^\r\n]+)`)
)

// Section keywords that terminate the last location sub-block of a record.
var locationSectionEnders = []string{
	"associatemedia",
	"deliveryidentifier",
	"cause",
	"answering",
	"sdp",
	"sigmsg",
	"signalingmsg",
}

// ParseLocations extracts every location[n] sub-block from a record. A
// sub-block is accepted only when it carries both a locationType and a
// locationData value; rejected sub-blocks are dropped silently. When no
// sub-block is accepted, a single fallback location is synthesized from a
// top-level cell identifier anywhere in the record, stamped with the
// record's own timestamp.
func ParseLocations(block, recordTimestamp string) []Location {
	var locations []Location
	markers := locationMarkerRE.FindAllStringIndex(block, -1)
	for i, m := range markers {
		end := len(block)
		if i+1 < len(markers) {
			end = markers[i+1][0]
		} else if stop := firstSectionEnder(block[m[1]:]); stop >= 0 {
			end = m[1] + stop
		}
		sub := block[m[0]:end]
		loc, ok := parseLocationBlock(sub)
		if !ok {
			continue
		}
		if loc.Timestamp == "" {
			loc.Timestamp = recordTimestamp
		}
		locations = append(locations, loc)
	}
	if len(locations) > 0 {
		return locations
	}
	if match := cellID3gppRE.FindStringSubmatch(block); match != nil {
		locations = append(locations, Location{
			Type:      LocationTypeHeaderDerived,
			RawData:   match[1],
			Parsed:    Decode(match[1]),
			Timestamp: recordTimestamp,
		})
	}
	return locations
}

// FromHeaderValue builds a location from a SIP header value carrying an
// embedded cell identifier (P-Access-Network-Info). Returns false when the
// value holds no identifier.
func FromHeaderValue(value, timestamp string) (Location, bool) {
	match := cellID3gppRE.FindStringSubmatch(value)
	if match == nil {
		return Location{}, false
	}
	return Location{
		Type:      LocationTypeAccessNetwork,
		RawData:   value,
		Parsed:    Decode(match[1]),
		Timestamp: timestamp,
	}, true
}

func parseLocationBlock(sub string) (Location, bool) {
	typeMatch := locTypeRE.FindStringSubmatch(sub)
	dataMatch := locDataRE.FindStringSubmatch(sub)
	if typeMatch == nil || dataMatch == nil {
		return Location{}, false
	}
	loc := Location{
		Type:    hexsniff.Decode(strings.TrimSpace(typeMatch[1])),
		RawData: hexsniff.Decode(strings.TrimSpace(dataMatch[1])),
	}
	if tsMatch := locTimestampRE.FindStringSubmatch(sub); tsMatch != nil {
		loc.Timestamp = strings.TrimSpace(tsMatch[1])
	}
	if cell := cellID3gppRE.FindStringSubmatch(loc.RawData); cell != nil {
		loc.Parsed = Decode(cell[1])
	}
	return loc, true
}

func firstSectionEnder(s string) int {
	lower := strings.ToLower(s)
	stop := -1
	for _, kw := range locationSectionEnders {
		if idx := strings.Index(lower, kw); idx >= 0 && (stop < 0 || idx < stop) {
			stop = idx
		}
	}
	return stop
}
