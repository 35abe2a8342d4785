package errors

const (
	HttpInternalError       = "internal_error"
	HttpInvalidJsonError    = "invalid_json"
	HttpInvalidQueryError   = "invalid_query"
	HttpValidationError     = "validation_failed"
	HttpNotFoundError       = "not_found"
	HttpConflictError       = "conflict"
	HttpAggregateDesync     = "aggregate_desync"
	HttpUnknownAggregate    = "unknown_aggregate"
	HttpBackfillFailedError = "backfill_failed"
)

// ErrorResponse is the error body of every failed API call.
type ErrorResponse struct {
	ErrorType string      `json:"error_type"`
	Message   string      `json:"message"`
	Details   interface{} `json:"details,omitempty"`
}
