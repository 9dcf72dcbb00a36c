package sipmsg

import (
	"regexp"
	"strings"
)

// SMS-over-IMS detection markers. A single SIP message can carry an SMS in
// several vendor-dependent shapes; any one marker is enough.
var (
	// smsContentTypeRE matches the 3GPP SMS transport content type.
	smsContentTypeRE = regexp.MustCompile(`(?i)application/vnd\.3gpp\.sms`)

	// smsAcceptContactMarker is the SMS-over-IP feature tag.
	smsAcceptContactMarker = "+g.3gpp.smsip"

	// smsRawRecordMarker appears in records wrapping a GSM SMS delivery.
	smsRawRecordMarker = "sms-deliver"
)

var phoneNumberRE = regexp.MustCompile(`\+\d+`)

// SMSEvent is a synthetic SMS entry derived from an SMS-bearing SIP message.
// Content is a short label: reconstructing the full SMS transport payload
// (PDU decode) is out of scope, so only the parties are recovered.
type SMSEvent struct {
	From    string `json:"from"`
	To      string `json:"to"`
	Content string `json:"content"`
}

// IsSMSBearing reports whether the message carries an SMS. rawRecord is the
// full text of the enclosing CDC record, checked for delivery markers that
// sit outside the SIP payload itself.
func (m *Message) IsSMSBearing(rawRecord string) bool {
	if m == nil || m.Parsed == nil {
		return false
	}
	if strings.EqualFold(m.Parsed.Method, "MESSAGE") {
		return true
	}
	if ct, ok := m.Parsed.Headers.Get("Content-Type"); ok && smsContentTypeRE.MatchString(ct) {
		return true
	}
	if ac, ok := m.Parsed.Headers.Get("Accept-Contact"); ok &&
		strings.Contains(strings.ToLower(ac), smsAcceptContactMarker) {
		return true
	}
	return strings.Contains(strings.ToLower(rawRecord), smsRawRecordMarker)
}

// SyntheticSMS derives an SMS entry from an SMS-bearing message. Sender and
// recipient fall back to "Unknown" when no phone number is recoverable.
func (m *Message) SyntheticSMS() SMSEvent {
	event := SMSEvent{
		From:    "Unknown",
		To:      "Unknown",
		Content: "SMS message (transport payload not decoded)",
	}
	if m == nil || m.Parsed == nil {
		return event
	}
	if from := firstPhone(m.Parsed.Headers, "From", "P-Asserted-Identity"); from != "" {
		event.From = from
	}
	if to := firstPhone(m.Parsed.Headers, "To", "P-Called-Party-ID"); to != "" {
		event.To = to
	}
	return event
}

// firstPhone returns the first +digits number found across the named
// headers, in order.
func firstPhone(h *Headers, names ...string) string {
	for _, name := range names {
		if val, ok := h.Get(name); ok {
			if phone := phoneNumberRE.FindString(val); phone != "" {
				return phone
			}
		}
	}
	return ""
}

// ExtractPhoneNumber returns the first +digits pattern in s, or "".
func ExtractPhoneNumber(s string) string {
	return phoneNumberRE.FindString(s)
}
