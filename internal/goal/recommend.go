package goal

// Progress bands for recommendation selection.
const (
	bandEarly = iota // < 50%
	bandMid          // 50-80%
	bandLate         // >= 80%
)

func bandOf(progress float64) int {
	switch {
	case progress < 50:
		return bandEarly
	case progress < 80:
		return bandMid
	default:
		return bandLate
	}
}

// recommendations is static coaching content: one canned set per goal kind
// and progress band. Selection is the contract, the wording is not.
var recommendations = map[Kind][3][]string{
	KindRecovery: {
		bandEarly: {
			"Build one full rest day into each week",
			"Cut evening screen time; recovery follows sleep quality",
			"Keep hard sessions short until your baseline lifts",
		},
		bandMid: {
			"Recovery is trending up; protect your sleep window",
			"Alternate intensity days to keep the climb going",
		},
		bandLate: {
			"You are close to target; hold the current routine",
			"Use green-zone days for your hardest training",
		},
	},
	KindSleep: {
		bandEarly: {
			"Set a fixed bedtime and keep it on weekends",
			"Wind down without screens for the last 30 minutes",
			"Cut caffeine after mid-afternoon",
		},
		bandMid: {
			"Halfway there; add 15 minutes to your sleep window",
			"Keep the bedroom cool and dark",
		},
		bandLate: {
			"Sleep habits are nearly dialed in; stay consistent",
			"Bank extra sleep before known late nights",
		},
	},
	KindStrain: {
		bandEarly: {
			"Plan training blocks instead of chasing daily strain",
			"Match high-strain days with early bedtimes",
			"Leave two easy days between all-out efforts",
		},
		bandMid: {
			"Load is balancing out; keep recovery days genuinely easy",
			"Watch morning recovery before adding intensity",
		},
		bandLate: {
			"Strain targets nearly met; maintain the rhythm",
			"Reassess the target once you hold this for two weeks",
		},
	},
	KindHRV: {
		bandEarly: {
			"Daily breath work or light aerobic sessions raise HRV over weeks",
			"Alcohol and late meals suppress overnight HRV",
			"Consistency matters more than any single intervention",
		},
		bandMid: {
			"HRV is responding; keep stress load steady",
			"Track which habits precede your best readings",
		},
		bandLate: {
			"HRV is near target; protect what is working",
			"Expect day-to-day swings; judge by the weekly average",
		},
	},
}

// genericRecommendations covers custom goals, by band.
var genericRecommendations = [3][]string{
	bandEarly: {
		"Break the goal into weekly checkpoints",
		"Track the metric daily so drift shows up early",
	},
	bandMid: {
		"Past halfway; keep the routine that got you here",
	},
	bandLate: {
		"Nearly there; plan what the next target will be",
	},
}

// Recommendations returns the canned coaching set for a goal's kind and
// current progress band.
func Recommendations(g Goal) []string {
	band := bandOf(g.Progress)
	if sets, ok := recommendations[g.Kind]; ok {
		return sets[band]
	}
	return genericRecommendations[band]
}
