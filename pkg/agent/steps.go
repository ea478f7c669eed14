package agent

// Step is one audit record in the pipeline execution trace. Steps accumulate
// in call order and are never mutated after being appended.
type Step struct {
	Module   string         `json:"module"`
	Prompt   map[string]any `json:"prompt"`
	Response map[string]any `json:"response"`
}

// Result statuses.
const (
	StatusOK    = "ok"
	StatusError = "error"
)

// Error kinds reported in structured error results.
const (
	ErrKindEmptyInput        = "EmptyInput"
	ErrKindInputTooLong      = "InputTooLong"
	ErrKindGenerationFailure = "GenerationFailure"
	ErrKindInternal          = "InternalError"
)

// Result is the stable top-level outcome of one pipeline invocation. The
// trace steps accumulated so far are always carried, even on error.
type Result struct {
	Status   string `json:"status"`
	Error    string `json:"error"`
	Response string `json:"response"`
	Steps    []Step `json:"steps"`
}
