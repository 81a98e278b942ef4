package output

// Event is a lifecycle record for NDJSON streaming output.
//
// In NDJSON mode, sinks emit Events (one JSON object per line), including:
// - run.started
// - platform.started
// - platform.report
// - platform.finished
// - run.finished
//
// JSON mode remains an aggregate of PlatformReport values.
type Event struct {
	Type     string `json:"type"`
	Platform string `json:"platform,omitempty"`
	*PlatformReport
	Platforms int `json:"platforms,omitempty"`
	ExitCode  int `json:"exit_code,omitempty"`
}

func eventFromReport(r PlatformReport) Event {
	return Event{Type: "platform.report", Platform: r.PlatformName, PlatformReport: &r}
}
