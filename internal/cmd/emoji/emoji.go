// Package emoji provides the status symbols used in command output.
package emoji

const (
	// Success marks an output that was written or computed.
	Success = "✓"

	// Error marks a failure.
	Error = "✗"

	// Warning marks an output that was not produced for a data reason
	// (empty merge, no common anchor).
	Warning = "!"

	// Optional marks an output that was skipped or not requested.
	Optional = "-"
)
