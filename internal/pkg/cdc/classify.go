package cdc

import "strings"

// classifierRule pairs a keyword predicate with the record type it selects.
// Predicates receive the lowercased block text.
type classifierRule struct {
	rtype RecordType
	match func(lower string) bool
}

// classifierRules is the classification cascade, evaluated top-down with
// first match winning. The order is load-bearing: the record keywords
// overlap (a release cause section can mention "answer", an IMS origination
// block contains the generic attempt keyword), so more specific compound
// markers are tested before generic ones. Reordering silently reclassifies
// overlapping-keyword inputs -- see TestClassify_OrderMatters.
var classifierRules = []classifierRule{
	{RecordTerminationAttempt, func(s string) bool {
		return strings.Contains(s, "termattempt") && !strings.Contains(s, "imsorigination")
	}},
	{RecordOriginationAttempt, func(s string) bool {
		return strings.Contains(s, "origattempt") && !strings.Contains(s, "imsorigination")
	}},
	{RecordIMSOrigination, func(s string) bool {
		return strings.Contains(s, "imsorigination")
	}},
	{RecordAnswer, func(s string) bool {
		return strings.Contains(s, "imsanswer") || strings.Contains(s, "answer")
	}},
	{RecordRelease, func(s string) bool {
		return strings.Contains(s, "imsrelease") || strings.Contains(s, "release")
	}},
	{RecordDirectSignalReporting, func(s string) bool {
		return strings.Contains(s, "directsignalreporting")
	}},
	{RecordSubjectSignal, func(s string) bool {
		return strings.Contains(s, "subjectsignal")
	}},
	{RecordCallControlOpen, func(s string) bool {
		return strings.Contains(s, "ccopen")
	}},
	{RecordCallControlClose, func(s string) bool {
		return strings.Contains(s, "ccclose")
	}},
	{RecordSMSMessage, func(s string) bool {
		return strings.Contains(s, "smsmessage")
	}},
	{RecordMMSMessage, func(s string) bool {
		return strings.Contains(s, "mmsmessage")
	}},
}

// Classify assigns a record type to a block, or RecordUnknown when no rule
// matches. Unclassified blocks still flow downstream with an empty payload.
func Classify(block string) RecordType {
	lower := strings.ToLower(block)
	for _, rule := range classifierRules {
		if rule.match(lower) {
			return rule.rtype
		}
	}
	return RecordUnknown
}
