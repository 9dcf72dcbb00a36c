package sipmsg

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const inviteText = "INVITE sip:+15559876543@ims.example.net SIP/2.0\r\n" +
	"Via: SIP/2.0/UDP 10.0.0.1:5060;branch=z9hG4bK776asdhds\r\n" +
	"Via: SIP/2.0/TCP 10.0.0.2:5060;branch=z9hG4bK887qwe\r\n" +
	"From: \"Alice Smith\" <sip:+15551234567@ims.example.net>;tag=1928301774\r\n" +
	"To: <sip:+15559876543@ims.example.net>\r\n" +
	"Call-ID: a84b4c76e66710@pc33.example.com\r\n" +
	"Content-Type: application/sdp\r\n" +
	"\r\n" +
	"v=0\r\n"

func TestParse_Request(t *testing.T) {
	msg := Parse(inviteText)

	require.NotNil(t, msg.Parsed)
	assert.True(t, msg.Parsed.IsRequest)
	assert.False(t, msg.Parsed.IsResponse)
	assert.Equal(t, "INVITE", msg.Parsed.Method)

	callID, ok := msg.CallID()
	require.True(t, ok)
	assert.Equal(t, "a84b4c76e66710@pc33.example.com", callID)
}

func TestParse_Response(t *testing.T) {
	msg := Parse("SIP/2.0 180 Ringing\r\nCall-ID: abc123\r\n\r\n")

	require.NotNil(t, msg.Parsed)
	assert.True(t, msg.Parsed.IsResponse)
	assert.False(t, msg.Parsed.IsRequest)
	assert.Equal(t, 180, msg.Parsed.StatusCode)
	assert.Equal(t, "Ringing", msg.Parsed.StatusText)
}

func TestParse_HeaderLookupCaseInsensitive(t *testing.T) {
	msg := Parse(inviteText)

	ct, ok := msg.Parsed.Headers.Get("content-type")
	require.True(t, ok)
	assert.Equal(t, "application/sdp", ct)

	ct2, ok := msg.Parsed.Headers.Get("CONTENT-TYPE")
	require.True(t, ok)
	assert.Equal(t, ct, ct2)
}

func TestParse_RepeatedHeadersAccumulate(t *testing.T) {
	msg := Parse(inviteText)

	vias := msg.Parsed.Headers.Values("Via")
	require.Len(t, vias, 2)
	assert.Contains(t, vias[0], "UDP 10.0.0.1")
	assert.Contains(t, vias[1], "TCP 10.0.0.2")
}

func TestParse_BodyNotParsedAsHeaders(t *testing.T) {
	msg := Parse(inviteText)

	// "v=0" is body, not a header.
	_, ok := msg.Parsed.Headers.Get("v=0")
	assert.False(t, ok)
}

func TestParse_GarbageNeverPanics(t *testing.T) {
	for _, input := range []string{"", "\n\n\n", "not sip at all", ":::", "   "} {
		msg := Parse(input)
		require.NotNil(t, msg.Parsed)
		assert.Equal(t, input, msg.Content)
	}
}

func TestHeaders_MarshalOneOrMany(t *testing.T) {
	msg := Parse(inviteText)
	raw, err := json.Marshal(msg.Parsed.Headers)
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(raw, &decoded))

	// Single-valued header marshals as a scalar.
	_, isString := decoded["Content-Type"].(string)
	assert.True(t, isString, "single value should be scalar")

	// Repeated header marshals as an ordered list.
	vias, isList := decoded["Via"].([]any)
	require.True(t, isList, "repeated value should be a list")
	assert.Len(t, vias, 2)
}

func TestIsSMSBearing(t *testing.T) {
	tests := []struct {
		name      string
		text      string
		rawRecord string
		want      bool
	}{
		{
			name: "MESSAGE method",
			text: "MESSAGE sip:+15550001111@ims.example.net SIP/2.0\nCall-ID: m1\n",
			want: true,
		},
		{
			name: "3GPP SMS content type",
			text: "INVITE sip:x SIP/2.0\nContent-Type: application/vnd.3gpp.sms\n",
			want: true,
		},
		{
			name: "SMS-over-IP feature tag",
			text: "INVITE sip:x SIP/2.0\nAccept-Contact: *;+g.3gpp.smsip\n",
			want: true,
		},
		{
			name:      "delivery marker in raw record",
			text:      "INVITE sip:x SIP/2.0\n",
			rawRecord: "directSignalReporting ... SMS-DELIVER ...",
			want:      true,
		},
		{
			name: "plain INVITE",
			text: "INVITE sip:x SIP/2.0\nContent-Type: application/sdp\n",
			want: false,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			msg := Parse(tt.text)
			assert.Equal(t, tt.want, msg.IsSMSBearing(tt.rawRecord))
		})
	}
}

func TestSyntheticSMS(t *testing.T) {
	msg := Parse("MESSAGE sip:+15550001111@ims.example.net SIP/2.0\n" +
		"From: <sip:+15559998888@ims.example.net>;tag=abc\n" +
		"To: <sip:+15550001111@ims.example.net>\n")

	event := msg.SyntheticSMS()
	assert.Equal(t, "+15559998888", event.From)
	assert.Equal(t, "+15550001111", event.To)
	assert.NotEmpty(t, event.Content)
}

func TestSyntheticSMS_FallsBackToAssertedIdentity(t *testing.T) {
	msg := Parse("MESSAGE sip:x SIP/2.0\n" +
		"From: <sip:anonymous@anonymous.invalid>\n" +
		"P-Asserted-Identity: <tel:+15557770000>\n" +
		"P-Called-Party-ID: <sip:+15551112222@ims.example.net>\n")

	event := msg.SyntheticSMS()
	assert.Equal(t, "+15557770000", event.From)
	assert.Equal(t, "+15551112222", event.To)
}

func TestSyntheticSMS_Unknown(t *testing.T) {
	msg := Parse("MESSAGE sip:x SIP/2.0\n")
	event := msg.SyntheticSMS()
	assert.Equal(t, "Unknown", event.From)
	assert.Equal(t, "Unknown", event.To)
}

func TestDevice(t *testing.T) {
	msg := Parse("INVITE sip:x SIP/2.0\nUser-Agent: Samsung---SM-S928U---14\n")
	info, ok := msg.Device()
	require.True(t, ok)
	assert.Equal(t, "Samsung", info.Manufacturer)
	assert.Equal(t, "SM-S928U", info.Model)
	assert.Equal(t, "14", info.OSVersion)

	msg = Parse("INVITE sip:x SIP/2.0\nUser-Agent: SIPp/3.6\n")
	_, ok = msg.Device()
	assert.False(t, ok)
}

func TestAssertedDisplayName(t *testing.T) {
	msg := Parse("INVITE sip:x SIP/2.0\nP-Asserted-Identity: \"Bob Jones\" <tel:+15557770000>\n")
	name, ok := msg.AssertedDisplayName()
	require.True(t, ok)
	assert.Equal(t, "Bob Jones", name)
}

func TestVerificationStatus(t *testing.T) {
	msg := Parse("INVITE sip:x SIP/2.0\n" +
		"From: <sip:+15551234567@ims.example.net;verstat=TN-Validation-Passed>;tag=1\n")
	status, ok := msg.VerificationStatus()
	require.True(t, ok)
	assert.Equal(t, "TN-Validation-Passed", status)

	msg = Parse("INVITE sip:x SIP/2.0\nFrom: <sip:a@b>\n")
	_, ok = msg.VerificationStatus()
	assert.False(t, ok)
}
