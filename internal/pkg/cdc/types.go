// Package cdc implements the CDC forensic dump parsing and correlation
// engine: segmentation of a raw lawful-intercept text dump into records,
// per-record classification and field extraction, embedded SIP payload
// parsing, cell-location decoding, and aggregation of records into per-call
// timelines.
//
// The input grammar is vendor-variable and unreliable, so every stage
// degrades gracefully: malformed input narrows the output, it never raises.
package cdc

import (
	"time"

	"github.com/endorses/cdcat/internal/pkg/cellid"
	"github.com/endorses/cdcat/internal/pkg/sipmsg"
)

// RecordType identifies the kind of CDC record a block was classified as.
type RecordType int

const (
	RecordUnknown RecordType = iota
	RecordTerminationAttempt
	RecordOriginationAttempt
	RecordIMSOrigination
	RecordAnswer
	RecordRelease
	RecordDirectSignalReporting
	RecordSubjectSignal
	RecordCallControlOpen
	RecordCallControlClose
	RecordSMSMessage
	RecordMMSMessage
)

func (rt RecordType) String() string {
	switch rt {
	case RecordTerminationAttempt:
		return "termAttempt"
	case RecordOriginationAttempt:
		return "origAttempt"
	case RecordIMSOrigination:
		return "imsOrigination"
	case RecordAnswer:
		return "answer"
	case RecordRelease:
		return "release"
	case RecordDirectSignalReporting:
		return "directSignalReporting"
	case RecordSubjectSignal:
		return "subjectSignal"
	case RecordCallControlOpen:
		return "ccOpen"
	case RecordCallControlClose:
		return "ccClose"
	case RecordSMSMessage:
		return "smsMessage"
	case RecordMMSMessage:
		return "mmsMessage"
	default:
		return "unknown"
	}
}

// MarshalJSON renders the type as its record keyword, or null for
// unclassified blocks.
func (rt RecordType) MarshalJSON() ([]byte, error) {
	if rt == RecordUnknown {
		return []byte("null"), nil
	}
	return []byte(`"` + rt.String() + `"`), nil
}

// isAttempt reports whether the type is any call-attempt variant.
func (rt RecordType) isAttempt() bool {
	return rt == RecordTerminationAttempt ||
		rt == RecordOriginationAttempt ||
		rt == RecordIMSOrigination
}

// RawBlock is one record's verbatim text span and its position in the dump.
// Immutable once produced by the segmenter.
type RawBlock struct {
	Index int    `json:"index"`
	Text  string `json:"text"`
}

// ParsedMessage is one classified and extracted record. Type is
// RecordUnknown when no classifier rule matched; CallID is empty when the
// record carries no correlation key, which routes it to the fallback bucket.
type ParsedMessage struct {
	Type      RecordType `json:"type"`
	Timestamp string     `json:"timestamp,omitempty"`
	CaseID    string     `json:"caseId,omitempty"`
	CallID    string     `json:"callId,omitempty"`
	Data      Payload    `json:"data"`
	Raw       RawBlock   `json:"rawBlock"`
}

// Time returns the parsed record timestamp. Unparseable timestamps report
// false and the zero time, which sorts earliest.
func (m *ParsedMessage) Time() (time.Time, bool) {
	return ParseTimestamp(m.Timestamp)
}

// Payload is the tagged union over per-record-type payload shapes.
type Payload interface {
	isPayload()
}

// Party is a call participant extracted from a calling/called/answering
// section. PhoneNumber is derived from the URI and may be absent.
type Party struct {
	URI         string   `json:"uri"`
	PhoneNumber string   `json:"phoneNumber,omitempty"`
	CallerName  string   `json:"callerName,omitempty"`
	Headers     []string `json:"headers,omitempty"`
}

// Codec is one negotiated media codec derived from SDP.
type Codec struct {
	PayloadType int    `json:"payloadType"`
	Name        string `json:"name"`
}

// AttemptData is the payload of termination/origination attempt records.
type AttemptData struct {
	Calling   *Party            `json:"calling,omitempty"`
	Called    *Party            `json:"called,omitempty"`
	SDP       string            `json:"sdp,omitempty"`
	Codecs    []Codec           `json:"codecs,omitempty"`
	Locations []cellid.Location `json:"locations,omitempty"`
}

func (*AttemptData) isPayload() {}

// AnswerData is the payload of answer records.
type AnswerData struct {
	Answering *Party            `json:"answering,omitempty"`
	Locations []cellid.Location `json:"locations,omitempty"`
}

func (*AnswerData) isPayload() {}

// ReleaseData is the payload of release records.
type ReleaseData struct {
	Cause     string            `json:"cause,omitempty"`
	Locations []cellid.Location `json:"locations,omitempty"`
}

func (*ReleaseData) isPayload() {}

// CallControlData is the payload of call-control open/close records.
type CallControlData struct {
	SDP    string  `json:"sdp,omitempty"`
	Codecs []Codec `json:"codecs,omitempty"`
}

func (*CallControlData) isPayload() {}

// SignalingData is the payload of direct-signal-reporting and subject-signal
// records: the embedded SIP messages plus the nested correlation id.
type SignalingData struct {
	CorrelationID string            `json:"correlationId,omitempty"`
	Messages      []*sipmsg.Message `json:"messages,omitempty"`
}

func (*SignalingData) isPayload() {}

// SMSData is the payload of SMS and MMS records.
type SMSData struct {
	From      string `json:"from,omitempty"`
	To        string `json:"to,omitempty"`
	Content   string `json:"content,omitempty"`
	Direction string `json:"direction"`
}

func (*SMSData) isPayload() {}

// UnknownData is the empty payload of unclassified blocks.
type UnknownData struct{}

func (*UnknownData) isPayload() {}
