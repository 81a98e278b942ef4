package rules

type Status string

const (
	StatusPass    Status = "Pass"
	StatusPartial Status = "Partial"
	StatusFail    Status = "Fail"
)

// Result is the outcome of evaluating one regulatory rule against policy
// text. Field names are part of the wire format consumed by report clients
// and must not change.
type Result struct {
	Rule        string  `json:"rule"`
	Description string  `json:"description"`
	Score       float64 `json:"score"`
	Status      Status  `json:"status"`
	// Findings are human-readable observations; never empty, even on zero
	// matches.
	Findings []string `json:"findings"`
	// Evidence holds literal text snippets extracted from the source
	// document. Each rule caps this at 2-3 entries.
	Evidence       []string `json:"evidence"`
	Recommendation string   `json:"recommendation"`
	// SubRequirements is present only for rules composed of equally-weighted
	// boolean parts; its key set is fixed per rule.
	SubRequirements map[string]bool `json:"sub_requirements,omitempty"`
	// SSMIMentioned records (non-scoring) whether the platform self-identifies
	// as a significant social media intermediary. Present only for rule_4_1a.
	SSMIMentioned *bool `json:"is_ssmi_mentioned,omitempty"`
}
