package rules

// Rule is one regulatory clause evaluated independently against policy text.
//
// Evaluate must be a pure function of its input: no shared state, no I/O, no
// time dependence. It must accept empty text and must never return a Result
// with empty Findings.
type Rule interface {
	// ID is the stable report key for this rule (e.g. "rule_3_3").
	ID() string

	// Name is the regulatory citation (e.g. "Rule 3(3)").
	Name() string

	Description() string

	Evaluate(text string) Result
}
