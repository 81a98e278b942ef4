package rules

// ClampScore bounds a rule score to [0, 100].
func ClampScore(score float64) float64 {
	if score < 0 {
		return 0
	}
	if score > 100 {
		return 100
	}
	return score
}

// StatusForScore derives a rule status from its score against the rule's
// fixed threshold pair. Thresholds are constants per rule and never computed
// from other results.
func StatusForScore(score, passAt, partialAt float64) Status {
	switch {
	case score >= passAt:
		return StatusPass
	case score >= partialAt:
		return StatusPartial
	default:
		return StatusFail
	}
}
