package cdc

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		name  string
		block string
		want  RecordType
	}{
		{"termination attempt", "termAttempt Version=2\ncallId=a", RecordTerminationAttempt},
		{"origination attempt", "origAttempt Version=2\ncallId=a", RecordOriginationAttempt},
		{"ims origination", "IMSOrigination Version=2", RecordIMSOrigination},
		{"answer", "IMSAnswer Version=2", RecordAnswer},
		{"generic answer", "answer Version=2", RecordAnswer},
		{"release", "IMSRelease Version=2", RecordRelease},
		{"direct signal reporting", "directSignalReporting Version=2", RecordDirectSignalReporting},
		{"subject signal", "subjectSignal Version=2", RecordSubjectSignal},
		{"cc open", "ccOpen Version=2", RecordCallControlOpen},
		{"cc close", "ccClose Version=2", RecordCallControlClose},
		{"sms", "smsMessage Version=2", RecordSMSMessage},
		{"mms", "mmsMessage Version=2", RecordMMSMessage},
		{"unclassifiable", "something else entirely", RecordUnknown},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Classify(tt.block))
		})
	}
}

func TestClassify_OrderMatters(t *testing.T) {
	// The IMS origination marker suppresses the generic attempt keywords.
	block := "IMSOrigination Version=2\ntermAttempt reference in payload"
	assert.Equal(t, RecordIMSOrigination, Classify(block))

	block = "IMSOriginationAttempt Version=2\norigAttempt marker too"
	assert.Equal(t, RecordIMSOrigination, Classify(block))

	// Overlapping generic keywords resolve by cascade position: answer
	// outranks release, release outranks signal reporting.
	assert.Equal(t, RecordAnswer, Classify("answer then release"))
	assert.Equal(t, RecordRelease, Classify("directSignalReporting with release inside"))
}

func TestClassify_CaseInsensitive(t *testing.T) {
	assert.Equal(t, RecordTerminationAttempt, Classify("TERMATTEMPT VERSION=2"))
	assert.Equal(t, RecordSMSMessage, Classify("SmsMessage Version=1"))
}

func TestRecordType_MarshalJSON(t *testing.T) {
	raw, err := RecordUnknown.MarshalJSON()
	assert.NoError(t, err)
	assert.Equal(t, "null", string(raw))

	raw, err = RecordTerminationAttempt.MarshalJSON()
	assert.NoError(t, err)
	assert.Equal(t, `"termAttempt"`, string(raw))
}
