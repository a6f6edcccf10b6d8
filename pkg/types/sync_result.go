package types

// ErrorType discriminates the two wire-level error kinds carried in a
// failed result.
type ErrorType string

const (
	// ConfigParsingError covers every configuration failure: a missing or
	// malformed config file, a blank source-directory field, or a source
	// directory that does not exist.
	ConfigParsingError ErrorType = "CONFIG_PARSING_ERROR"
	// OperationError covers filesystem failures during synchronization.
	OperationError ErrorType = "OPERATION_ERROR"
)

// SyncError is a single error record in a failed SyncResult.
type SyncError struct {
	Type    ErrorType `json:"type"`
	Message string    `json:"message"`
}

// SyncResult is the outcome of a load or save operation. A successful
// result carries no errors; a failed result always carries at least one.
type SyncResult struct {
	Success bool        `json:"success"`
	Errors  []SyncError `json:"errors,omitempty"`
}

// SyncRequest identifies the project side of a synchronization. Path is
// expected to be absolute; that is the caller's responsibility and is not
// validated beyond being non-empty.
type SyncRequest struct {
	Path string `json:"path"`
}

// Success returns a successful result.
func Success() *SyncResult {
	return &SyncResult{Success: true}
}

// Failure returns a failed result carrying the given error records. A
// failed result must never be empty, so a call with no records gets a
// generic operation error.
func Failure(errs ...SyncError) *SyncResult {
	if len(errs) == 0 {
		errs = []SyncError{{Type: OperationError, Message: "Unknown error"}}
	}
	return &SyncResult{Success: false, Errors: errs}
}
