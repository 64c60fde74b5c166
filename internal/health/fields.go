package health

import "strings"

// durationKeywords marks fields whose raw values are minute counts and
// should be rendered as "Hh Mm". Membership is substring-based because
// export column names vary between firmware versions.
var durationKeywords = []string{
	"sleep",
	"duration",
	"asleep",
	"awake",
	"in bed",
	"light sleep",
	"deep",
	"rem",
	"sleep need",
	"sleep debt",
}

// kindPatterns maps field-name substrings to metric kinds. Order matters:
// the more specific sleep patterns must win before the generic ones.
var kindPatterns = []struct {
	substr string
	kind   Kind
}{
	{"recovery", KindRecovery},
	{"strain", KindStrain},
	{"variability", KindHRV},
	{"resting heart rate", KindRestingHR},
	{"sleep performance", KindSleepPerformance},
	{"sleep efficiency", KindSleepEfficiency},
	{"sleep debt", KindSleepDebt},
	{"sleep need", KindSleepNeed},
	{"asleep duration", KindSleepDuration},
	{"blood oxygen", KindBloodOxygen},
}

// KindOf classifies a field name into a metric kind. Unrecognized fields
// are KindCustom; callers that switch on kind keep the raw name around.
func KindOf(field string) Kind {
	f := strings.ToLower(field)
	for _, p := range kindPatterns {
		if strings.Contains(f, p.substr) {
			return p.kind
		}
	}
	return KindCustom
}

// IsDurationField reports whether the field's raw values are minute counts.
// Percentage fields are never durations, whatever their name contains:
// "sleep performance %" is a score, not a minute count.
func IsDurationField(field string) bool {
	f := strings.ToLower(field)
	if strings.Contains(f, "%") {
		return false
	}
	for _, kw := range durationKeywords {
		if strings.Contains(f, kw) {
			return true
		}
	}
	return false
}

// IsMetadataField reports whether a field is provenance/bookkeeping rather
// than a metric, and should never become a knowledge-base fact.
func IsMetadataField(field string) bool {
	switch field {
	case FieldDate, "_source_file", "cycle start time", "cycle end time":
		return true
	}
	return false
}
