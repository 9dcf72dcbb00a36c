package cdc

import (
	"math"
	"sort"

	"github.com/endorses/cdcat/internal/pkg/logger"
)

// Correlator groups parsed messages by correlation key and folds each
// message's payload into its call's accumulated state. Messages are folded
// in original dump order: a later-arriving but earlier-timestamped message
// still overwrites scalar fields set before it (last write wins). Only the
// final message list is timestamp-sorted, at finalization.
type Correlator struct {
	fallbackBucket string
	calls          map[string]*CallRecord
	order          []string
	finalized      bool
}

// NewCorrelator returns a correlator routing keyless messages to
// fallbackBucket.
func NewCorrelator(fallbackBucket string) *Correlator {
	return &Correlator{
		fallbackBucket: fallbackBucket,
		calls:          make(map[string]*CallRecord),
	}
}

// Process assigns one message to its call, creating the call on first
// sight, and folds the payload into the call state.
func (co *Correlator) Process(msg *ParsedMessage) {
	key := msg.CallID
	if key == "" {
		key = co.fallbackBucket
	}

	call, exists := co.calls[key]
	if !exists {
		call = &CallRecord{
			CallID:   key,
			CallType: CallTypeVoice,
		}
		co.calls[key] = call
		co.order = append(co.order, key)
		logger.Debug("new call bucket", "call_id", key)
	}

	call.Messages = append(call.Messages, msg)
	if call.CaseID == "" && msg.CaseID != "" {
		call.CaseID = msg.CaseID
	}
	co.fold(call, msg)
}

func (co *Correlator) fold(call *CallRecord, msg *ParsedMessage) {
	switch data := msg.Data.(type) {
	case *AttemptData:
		if msg.Timestamp != "" {
			call.StartTime = msg.Timestamp
		}
		if msg.Type == RecordTerminationAttempt {
			call.Direction = DirectionIncoming
		} else {
			call.Direction = DirectionOutgoing
		}
		if data.Calling != nil {
			call.CallingParty = data.Calling
			if data.Calling.CallerName != "" {
				call.CallerName = data.Calling.CallerName
			}
		}
		if data.Called != nil {
			call.CalledParty = data.Called
		}
		if data.SDP != "" {
			call.SDP = data.SDP
			call.Codecs = data.Codecs
		}
		call.addLocations(data.Locations)

	case *AnswerData:
		if msg.Timestamp != "" {
			call.AnswerTime = msg.Timestamp
		}
		call.CallStatus = CallStatusAnswered
		if data.Answering != nil {
			call.AnsweringParty = data.Answering
		}
		call.addLocations(data.Locations)

	case *ReleaseData:
		if msg.Timestamp != "" {
			call.EndTime = msg.Timestamp
		}
		if data.Cause != "" {
			call.ReleaseCause = data.Cause
		}
		call.addLocations(data.Locations)

	case *CallControlData:
		if data.SDP != "" {
			call.SDP = data.SDP
			call.Codecs = data.Codecs
		}

	case *SignalingData:
		for _, m := range data.Messages {
			call.foldSignalingMessage(m, msg)
		}

	case *SMSData:
		call.upgradeToSMS()
		call.SMSMessages = append(call.SMSMessages, SMSEntry{
			From:      data.From,
			To:        data.To,
			Content:   data.Content,
			Direction: data.Direction,
			Timestamp: msg.Timestamp,
		})
	}
}

// Finalize computes derived fields on every call: duration, timestamp-sorted
// message order, and defaulted status. Idempotent.
func (co *Correlator) Finalize() {
	if co.finalized {
		return
	}
	co.finalized = true
	for _, key := range co.order {
		finalizeCall(co.calls[key])
	}
}

// Calls returns every call record in first-seen order.
func (co *Correlator) Calls() []*CallRecord {
	out := make([]*CallRecord, 0, len(co.order))
	for _, key := range co.order {
		out = append(out, co.calls[key])
	}
	return out
}

// Get returns the call record for a correlation key.
func (co *Correlator) Get(callID string) (*CallRecord, bool) {
	call, ok := co.calls[callID]
	return call, ok
}

func finalizeCall(call *CallRecord) {
	call.Duration = computeDuration(call.AnswerTime, call.EndTime)

	// Unparseable timestamps sort as time zero, i.e. earliest.
	sort.SliceStable(call.Messages, func(i, j int) bool {
		ti, _ := call.Messages[i].Time()
		tj, _ := call.Messages[j].Time()
		return ti.Before(tj)
	})

	if call.CallStatus == "" {
		switch {
		case call.EndTime != "":
			call.CallStatus = CallStatusEnded
		case call.StartTime != "":
			call.CallStatus = CallStatusInitiated
		}
	}
}

// computeDuration returns whole seconds between answer and end, nil when
// either endpoint is missing or unparseable. An end before answer also
// yields nil: the negative duration the source format can imply is treated
// as undefined rather than clamped.
func computeDuration(answerTime, endTime string) *int64 {
	answer, okA := ParseTimestamp(answerTime)
	end, okE := ParseTimestamp(endTime)
	if !okA || !okE {
		return nil
	}
	if end.Before(answer) {
		return nil
	}
	seconds := int64(math.Round(end.Sub(answer).Seconds()))
	return &seconds
}
