// Package triage classifies free-text patient complaints into urgency
// tiers and numeric risk scores used to order a doctor's queue. It is a
// triage aid only and never produces a diagnosis.
package triage

// Severity is the coarse urgency bucket assigned to an appointment.
type Severity string

const (
	SeverityLow      Severity = "low"
	SeverityMedium   Severity = "medium"
	SeverityHigh     Severity = "high"
	SeverityCritical Severity = "critical"
)

// Rank returns the ordering weight of a severity tier. Higher is more
// urgent. Unknown values rank below low so malformed data sinks to the
// back of the queue instead of jumping it.
func (s Severity) Rank() int {
	switch s {
	case SeverityCritical:
		return 4
	case SeverityHigh:
		return 3
	case SeverityMedium:
		return 2
	case SeverityLow:
		return 1
	default:
		return 0
	}
}

// Valid reports whether s is one of the known tiers.
func (s Severity) Valid() bool {
	return s.Rank() > 0
}

// SeverityFromScore derives the final tier from a 0-100 risk score.
// The tier that matched during keyword detection only sets the base
// score; the reported severity always comes from the final score, so
// additive modifiers can escalate a complaint past its keyword tier.
func SeverityFromScore(score int) Severity {
	switch {
	case score >= 80:
		return SeverityCritical
	case score >= 50:
		return SeverityHigh
	case score >= 25:
		return SeverityMedium
	default:
		return SeverityLow
	}
}

// RecommendedAction returns the fixed triage guidance for a tier.
func RecommendedAction(s Severity) string {
	switch s {
	case SeverityCritical:
		return "Immediate medical attention required. Move to the front of the queue and consider emergency services."
	case SeverityHigh:
		return "Urgent consultation recommended. Patient should be seen as soon as possible today."
	case SeverityMedium:
		return "Prompt consultation recommended. Monitor for worsening symptoms while waiting."
	default:
		return "Routine consultation. Standard queue ordering applies."
	}
}
