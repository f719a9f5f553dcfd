package perf

// Status is the outcome of a command run.
type Status string

const (
	StatusCompleted Status = "completed"
	StatusFailed    Status = "failed"
)

// Result is the structured outcome of one command run. Field names are
// fixed: downstream monitoring consumes this shape as-is. AgentUUIDs
// carries the bracket-wrapped value the probe returned ("[]" when it
// returned nothing), not a JSON list.
type Result struct {
	Name              string `json:"name"`
	Status            Status `json:"status"`
	FailureMessage    string `json:"failureMessage,omitempty"`
	AgentUUIDs        string `json:"agentUuids"`
	TimeTakenInMillis int64  `json:"timeTakenInMillis"`
}
