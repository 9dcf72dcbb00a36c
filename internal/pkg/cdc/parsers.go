package cdc

import (
	"regexp"
	"strings"

	"github.com/endorses/cdcat/internal/pkg/cellid"
	"github.com/endorses/cdcat/internal/pkg/hexsniff"
	"github.com/endorses/cdcat/internal/pkg/sipmsg"
)

// Type parsers. Each operates on one raw block and returns a typed payload;
// a missing section leaves the corresponding field at its zero value, never
// an error.

var quotedNameRE = regexp.MustCompile(`"([^"]+)"`)

// parseParty extracts a participant from a calling/called/answering section:
// the first URI, a phone number derived from it, and -- when withHeaders is
// set -- the accompanying sipHeader[n] lines with a quoted display name.
func parseParty(section string, withHeaders bool) *Party {
	uri := ExtractField(section, "uri[0]")
	if uri == "" {
		return nil
	}
	party := &Party{
		URI:         uri,
		PhoneNumber: sipmsg.ExtractPhoneNumber(uri),
	}
	if withHeaders {
		party.Headers = extractAllFields(section, "sipHeader")
		for _, h := range party.Headers {
			if m := quotedNameRE.FindStringSubmatch(h); m != nil {
				party.CallerName = m[1]
				break
			}
		}
	}
	return party
}

// sectionSlice returns the block slice starting at the first occurrence of
// start (case-insensitive) and ending at the earliest of the enders, or the
// block end. Returns "" when start is absent.
func sectionSlice(block, start string, enders ...string) string {
	lower := strings.ToLower(block)
	begin := strings.Index(lower, strings.ToLower(start))
	if begin < 0 {
		return ""
	}
	rest := lower[begin+len(start):]
	end := len(block)
	for _, e := range enders {
		if idx := strings.Index(rest, strings.ToLower(e)); idx >= 0 {
			if abs := begin + len(start) + idx; abs < end {
				end = abs
			}
		}
	}
	return block[begin:end]
}

func parseAttempt(block, timestamp string) *AttemptData {
	data := &AttemptData{}
	if calling := sectionSlice(block, "calling", "called"); calling != "" {
		data.Calling = parseParty(calling, true)
	}
	if called := sectionSlice(block, "called", "associateMedia", "location["); called != "" {
		data.Called = parseParty(called, false)
	}
	data.SDP = extractSDP(block, []string{"associateMedia", "location[", "deliveryIdentifier"})
	data.Codecs = ParseCodecs(data.SDP)
	data.Locations = cellid.ParseLocations(block, timestamp)
	return data
}

func parseAnswer(block, timestamp string) *AnswerData {
	data := &AnswerData{}
	if answering := sectionSlice(block, "answering", "location[", "associateMedia"); answering != "" {
		data.Answering = parseParty(answering, false)
	}
	data.Locations = cellid.ParseLocations(block, timestamp)
	return data
}

func parseRelease(block, timestamp string) *ReleaseData {
	data := &ReleaseData{}
	if cause := sectionSlice(block, "cause", "location["); cause != "" {
		data.Cause = ExtractField(cause, "signalingType")
	}
	data.Locations = cellid.ParseLocations(block, timestamp)
	return data
}

func parseCallControl(block string) *CallControlData {
	data := &CallControlData{}
	data.SDP = extractSDP(block, []string{"associateMedia", "deliveryIdentifier"})
	data.Codecs = ParseCodecs(data.SDP)
	return data
}

var sigPayloadMarkerRE = regexp.MustCompile(`(?i)(?:sigMsg|signalingMsg\[\d+\])\s*=\s*`)

const sigBinaryMarker = "[bin]"

// parseSignaling extracts the nested correlation id and every embedded SIP
// payload. Payloads are bounded by a [bin] marker, the next payload field,
// or end of block, and hex-decoded before SIP parsing.
func parseSignaling(block string) *SignalingData {
	data := &SignalingData{}

	data.CorrelationID = ExtractNestedField(block, "callId", "correlationID")
	if data.CorrelationID == "" {
		data.CorrelationID = ExtractNestedField(block, "contentIdentifier", "correlationID")
	}
	if data.CorrelationID == "" {
		data.CorrelationID = ExtractField(block, "correlationID")
	}

	markers := sigPayloadMarkerRE.FindAllStringIndex(block, -1)
	for i, m := range markers {
		end := len(block)
		if i+1 < len(markers) {
			end = markers[i+1][0]
		}
		payload := block[m[1]:end]
		if idx := strings.Index(payload, sigBinaryMarker); idx >= 0 {
			payload = payload[:idx]
		}
		payload = strings.TrimSpace(payload)
		if payload == "" {
			continue
		}
		data.Messages = append(data.Messages, sipmsg.Parse(hexsniff.Decode(payload)))
	}
	return data
}

func parseSMS(block string) *SMSData {
	data := &SMSData{
		From:    ExtractField(block, "originator"),
		To:      ExtractField(block, "recipient"),
		Content: ExtractField(block, "userInput"),
	}
	if data.Content == "" {
		data.Content = ExtractField(block, "smsMessage")
	}
	if strings.Contains(strings.ToLower(block), "originating") {
		data.Direction = "Sent"
	} else {
		data.Direction = "Received"
	}
	return data
}

// ParseBlock classifies one raw block and extracts its typed payload. It
// never fails: an unclassifiable block yields an empty payload with the raw
// text preserved for audit.
func ParseBlock(block RawBlock) *ParsedMessage {
	msg := &ParsedMessage{
		Type:      Classify(block.Text),
		Timestamp: ExtractField(block.Text, "timestamp"),
		CaseID:    ExtractField(block.Text, "caseId"),
		CallID:    ExtractField(block.Text, "callId"),
		Data:      &UnknownData{},
		Raw:       block,
	}

	switch msg.Type {
	case RecordTerminationAttempt, RecordOriginationAttempt, RecordIMSOrigination:
		msg.Data = parseAttempt(block.Text, msg.Timestamp)
	case RecordAnswer:
		msg.Data = parseAnswer(block.Text, msg.Timestamp)
	case RecordRelease:
		msg.Data = parseRelease(block.Text, msg.Timestamp)
	case RecordCallControlOpen, RecordCallControlClose:
		msg.Data = parseCallControl(block.Text)
	case RecordDirectSignalReporting, RecordSubjectSignal:
		sig := parseSignaling(block.Text)
		msg.Data = sig
		if msg.CallID == "" {
			// Correlate through the embedded signaling when the outer
			// record carries no call id of its own.
			for _, m := range sig.Messages {
				if callID, ok := m.CallID(); ok {
					msg.CallID = callID
					break
				}
			}
		}
	case RecordSMSMessage, RecordMMSMessage:
		msg.Data = parseSMS(block.Text)
	}
	return msg
}
