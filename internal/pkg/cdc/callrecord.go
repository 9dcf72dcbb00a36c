package cdc

import (
	"github.com/endorses/cdcat/internal/pkg/cellid"
	"github.com/endorses/cdcat/internal/pkg/sipmsg"
)

// Call type and status values. CallType upgrades monotonically: once a call
// is identified as SMS-bearing it never reverts to a voice call.
const (
	CallTypeVoice = "Voice Call"
	CallTypeSMS   = "SMS/MMS"

	CallStatusInitiated = "Initiated"
	CallStatusAnswered  = "Answered"
	CallStatusEnded     = "Ended"

	DirectionIncoming = "Incoming"
	DirectionOutgoing = "Outgoing"
)

// SMSEntry is one SMS/MMS observation folded into a call: either an explicit
// SMS record or a synthetic entry derived from SMS-bearing SIP signaling.
type SMSEntry struct {
	From      string `json:"from"`
	To        string `json:"to"`
	Content   string `json:"content,omitempty"`
	Direction string `json:"direction,omitempty"`
	Timestamp string `json:"timestamp,omitempty"`
}

// CallRecord is the aggregate reconstruction of one call: every message
// sharing a correlation key, folded into accumulated state, with derived
// fields computed at finalization.
type CallRecord struct {
	CallID string `json:"callId"`
	CaseID string `json:"caseId,omitempty"`

	CallType   string `json:"callType"`
	CallStatus string `json:"callStatus,omitempty"`
	Direction  string `json:"direction,omitempty"`

	StartTime  string `json:"startTime,omitempty"`
	AnswerTime string `json:"answerTime,omitempty"`
	EndTime    string `json:"endTime,omitempty"`
	// Duration is whole seconds between answer and end; nil when either
	// endpoint is missing or unparseable, or when end precedes answer.
	Duration *int64 `json:"duration,omitempty"`

	CallingParty   *Party `json:"callingParty,omitempty"`
	CalledParty    *Party `json:"calledParty,omitempty"`
	AnsweringParty *Party `json:"answeringParty,omitempty"`
	CallerName     string `json:"callerName,omitempty"`

	ReleaseCause string  `json:"releaseCause,omitempty"`
	SDP          string  `json:"sdp,omitempty"`
	Codecs       []Codec `json:"codecs,omitempty"`

	DeviceManufacturer string `json:"deviceManufacturer,omitempty"`
	DeviceModel        string `json:"deviceModel,omitempty"`
	DeviceOS           string `json:"deviceOs,omitempty"`
	VerificationStatus string `json:"verificationStatus,omitempty"`

	SMSMessages []SMSEntry        `json:"smsMessages,omitempty"`
	Locations   []cellid.Location `json:"locations,omitempty"`

	Messages []*ParsedMessage `json:"messages"`
}

// upgradeToSMS marks the call as SMS-bearing. There is no inverse.
func (c *CallRecord) upgradeToSMS() {
	c.CallType = CallTypeSMS
}

// addLocations appends locations without deduplication: repeats across
// record types are kept deliberately, only the SIP-header path dedupes.
func (c *CallRecord) addLocations(locs []cellid.Location) {
	c.Locations = append(c.Locations, locs...)
}

// addHeaderLocation appends a SIP-header-derived location unless a location
// with the same normalized full cell id is already present.
func (c *CallRecord) addHeaderLocation(loc cellid.Location) {
	if loc.Parsed == nil {
		c.Locations = append(c.Locations, loc)
		return
	}
	key := cellid.FullKey(loc.Parsed.FullCellID)
	for _, existing := range c.Locations {
		if existing.Parsed != nil && cellid.FullKey(existing.Parsed.FullCellID) == key {
			return
		}
	}
	c.Locations = append(c.Locations, loc)
}

// foldSignalingMessage applies the identity, device, verification and
// location side-channels of one embedded SIP message, and derives a
// synthetic SMS entry when the message is SMS-bearing.
func (c *CallRecord) foldSignalingMessage(m *sipmsg.Message, msg *ParsedMessage) {
	if device, ok := m.Device(); ok {
		c.DeviceManufacturer = device.Manufacturer
		c.DeviceModel = device.Model
		c.DeviceOS = device.OSVersion
	}
	if name, ok := m.AssertedDisplayName(); ok && c.CallerName == "" {
		c.CallerName = name
	}
	if status, ok := m.VerificationStatus(); ok {
		c.VerificationStatus = status
	}
	if pani, ok := m.AccessNetworkInfo(); ok {
		if loc, ok := cellid.FromHeaderValue(pani, msg.Timestamp); ok {
			c.addHeaderLocation(loc)
		}
	}
	if m.IsSMSBearing(msg.Raw.Text) {
		c.upgradeToSMS()
		event := m.SyntheticSMS()
		c.SMSMessages = append(c.SMSMessages, SMSEntry{
			From:      event.From,
			To:        event.To,
			Content:   event.Content,
			Timestamp: msg.Timestamp,
		})
	}
}
