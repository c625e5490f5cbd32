// Package engine computes deadline risk, effort projections, and red flags
// from already-materialized subtask data. Every function is pure: callers
// inject the current time, and identical inputs produce identical outputs.
package engine

// Heuristics holds the tunable constants behind risk classification.
// The defaults reflect planning rules of thumb (an 8-hour workday, a
// two-week planning horizon); adjust per deployment if they prove wrong.
type Heuristics struct {
	// WorkdayHours converts days of calendar slack into available effort.
	WorkdayHours float64

	// OverrunEstimateFloor and OverrunLoggedFloor bound the remaining-hours
	// projection once a subtask has overrun its estimate and no sibling data
	// is available: remaining = max(estimate*OverrunEstimateFloor,
	// logged*OverrunLoggedFloor). Keeps the projection from collapsing to
	// zero the moment logged hours pass the estimate.
	OverrunEstimateFloor float64
	OverrunLoggedFloor   float64

	// Deadline risk windows, in calendar days.
	CrunchWindowDays float64 // overrun inside this window is critical
	NearWindowDays   float64
	FarWindowDays    float64

	// Load ratios: remaining work above this share of available hours
	// escalates the risk tier.
	CrunchLoadRatio float64
	NearLoadRatio   float64

	// Completion floors, in percent: progress below these inside the
	// near/far windows escalates the risk tier.
	NearCompletionFloor int
	FarCompletionFloor  int

	// NoEstimateWindowDays classifies subtasks without an hour baseline
	// purely by calendar slack.
	NoEstimateWindowDays float64

	// Overrun anomaly ratio tiers (logged / estimated), inclusive lower bounds.
	AnomalyHighRatio     float64
	AnomalyCriticalRatio float64

	// Blocker aging thresholds, in days since the last update.
	BlockedHighDays     float64
	BlockedCriticalDays float64

	// Staleness thresholds, in days without activity.
	StaleMediumDays float64
	StaleHighDays   float64

	// Unassigned-work priority thresholds, in stars.
	UnassignedMediumStars int
	UnassignedHighStars   int

	// Approval aging thresholds, in days since the request was filed.
	ApprovalMediumDays float64
	ApprovalHighDays   float64
}

// Default is the production heuristics set.
var Default = Heuristics{
	WorkdayHours:          8,
	OverrunEstimateFloor:  0.25,
	OverrunLoggedFloor:    0.15,
	CrunchWindowDays:      3,
	NearWindowDays:        7,
	FarWindowDays:         14,
	CrunchLoadRatio:       0.8,
	NearLoadRatio:         0.6,
	NearCompletionFloor:   30,
	FarCompletionFloor:    20,
	NoEstimateWindowDays:  2,
	AnomalyHighRatio:      1.5,
	AnomalyCriticalRatio:  2.0,
	BlockedHighDays:       3,
	BlockedCriticalDays:   7,
	StaleMediumDays:       5,
	StaleHighDays:         10,
	UnassignedMediumStars: 2,
	UnassignedHighStars:   3,
	ApprovalMediumDays:    3,
	ApprovalHighDays:      7,
}
