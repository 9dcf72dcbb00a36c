package cdc

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/endorses/cdcat/internal/pkg/hexsniff"
	"github.com/pion/sdp/v3"
)

var (
	sdpFieldRE = regexp.MustCompile(`(?is)\bsdp\s*=\s*(.*)$`)
	rtpmapRE   = regexp.MustCompile(`(?m)a\s*=\s*rtpmap:\s*(\d+)\s+([^/\s]+)`)
)

// extractSDP pulls the sdp= block out of a record: everything after the
// first sdp= key up to a blank line, the earliest stop keyword, or end of
// block, hex-decoded when the vendor encoded it.
func extractSDP(block string, stops []string) string {
	match := sdpFieldRE.FindStringSubmatch(block)
	if match == nil {
		return ""
	}
	body := match[1]
	end := len(body)
	if idx := strings.Index(body, "\n\n"); idx >= 0 {
		end = idx
	}
	lower := strings.ToLower(body)
	for _, stop := range stops {
		if idx := strings.Index(lower, strings.ToLower(stop)); idx >= 0 && idx < end {
			end = idx
		}
	}
	return hexsniff.Decode(strings.TrimSpace(body[:end]))
}

// ParseCodecs derives the negotiated codec list from SDP text. A strict
// parse is attempted first; vendor dumps routinely truncate SDP below what
// a strict parser accepts, so a plain rtpmap scan is the fallback. Order is
// preserved as found.
func ParseCodecs(sdpText string) []Codec {
	if strings.TrimSpace(sdpText) == "" {
		return nil
	}
	if codecs := parseCodecsStrict(sdpText); codecs != nil {
		return codecs
	}
	return parseCodecsScan(sdpText)
}

func parseCodecsStrict(sdpText string) []Codec {
	var desc sdp.SessionDescription
	if err := desc.Unmarshal([]byte(sdpText)); err != nil {
		return nil
	}
	var codecs []Codec
	for _, media := range desc.MediaDescriptions {
		for _, attr := range media.Attributes {
			if attr.Key != "rtpmap" {
				continue
			}
			pt, name, ok := splitRtpmap(attr.Value)
			if !ok {
				continue
			}
			codecs = append(codecs, Codec{PayloadType: pt, Name: name})
		}
	}
	return codecs
}

func parseCodecsScan(sdpText string) []Codec {
	var codecs []Codec
	for _, m := range rtpmapRE.FindAllStringSubmatch(sdpText, -1) {
		pt, err := strconv.Atoi(m[1])
		if err != nil {
			continue
		}
		codecs = append(codecs, Codec{PayloadType: pt, Name: m[2]})
	}
	return codecs
}

// splitRtpmap splits an rtpmap attribute value "<pt> <name>/<clock>...".
func splitRtpmap(value string) (int, string, bool) {
	fields := strings.Fields(value)
	if len(fields) < 2 {
		return 0, "", false
	}
	pt, err := strconv.Atoi(fields[0])
	if err != nil {
		return 0, "", false
	}
	name, _, _ := strings.Cut(fields[1], "/")
	if name == "" {
		return 0, "", false
	}
	return pt, name, true
}
