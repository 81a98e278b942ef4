package engine

import "synthcheck/internal/data"

// PlatformExecutionResult represents the outcome of executing (fetching) all
// planned dependencies for a single platform.
//
// It is emitted by the scheduler and consumed by the engine during streaming
// scan execution.
type PlatformExecutionResult struct {
	PlatformKey string
	Data        data.DataContext
	DepErrs     map[data.DependencyKey]error
}
