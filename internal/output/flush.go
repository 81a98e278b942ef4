package output

import "io"

type flusher interface {
	Flush() error
}

// flushIfPossible flushes buffered sink writers when they support it. Emit
// and file sinks stream NDJSON through buffered writers that must be drained
// before the scan process exits.
func flushIfPossible(w io.Writer) error {
	f, ok := w.(flusher)
	if !ok {
		return nil
	}
	return f.Flush()
}
