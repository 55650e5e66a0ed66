package activity

import (
	"fmt"
	"strings"
)

// RiskLevel is a coarse classification attached to a logged action.
type RiskLevel string

const (
	// RiskLow covers read-only and routine actions.
	RiskLow RiskLevel = "low"
	// RiskMedium covers actions that add or change records.
	RiskMedium RiskLevel = "medium"
	// RiskHigh covers destructive or security sensitive actions.
	RiskHigh RiskLevel = "high"
)

// riskFor resolves an entry's risk level: an explicit "risk" detail wins,
// otherwise the level is derived from the action label.
func riskFor(e Entry) RiskLevel {
	if v, ok := e.Details["risk"]; ok {
		switch RiskLevel(fmt.Sprint(v)) {
		case RiskLow:
			return RiskLow
		case RiskMedium:
			return RiskMedium
		case RiskHigh:
			return RiskHigh
		}
	}

	return ClassifyRisk(e.Action)
}

// ClassifyRisk derives the risk level from the action label with a
// case-sensitive substring match. This is a deliberately approximate
// heuristic for triage, not a security control.
func ClassifyRisk(action string) RiskLevel {
	switch {
	case strings.Contains(action, "Delete"), strings.Contains(action, "Modify"):
		return RiskHigh
	case strings.Contains(action, "Create"), strings.Contains(action, "Update"):
		return RiskMedium
	default:
		return RiskLow
	}
}
