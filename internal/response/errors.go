package response

// ErrCode is a typed error code enum for consistent API error identification.
type ErrCode string

const (
	// ─── Validation ────────────────────────────────────────────────────
	ErrValidation     ErrCode = "VALIDATION_ERROR"
	ErrInvalidPayload ErrCode = "INVALID_PAYLOAD"

	// ─── Resources ─────────────────────────────────────────────────────
	ErrNotFound         ErrCode = "NOT_FOUND"
	ErrTermNotFound     ErrCode = "TERM_NOT_FOUND"
	ErrNoActiveTerm     ErrCode = "NO_ACTIVE_TERM"
	ErrBuildingNotFound ErrCode = "BUILDING_NOT_FOUND"

	// ─── Course data ───────────────────────────────────────────────────
	ErrSchema            ErrCode = "SCHEMA_ERROR"
	ErrSourceUnavailable ErrCode = "SOURCE_UNAVAILABLE"
	ErrNoDataLoaded      ErrCode = "NO_DATA_LOADED"

	// ─── Rate Limiting ─────────────────────────────────────────────────
	ErrRateLimitExceeded ErrCode = "RATE_LIMIT_EXCEEDED"

	// ─── Server ────────────────────────────────────────────────────────
	ErrInternal ErrCode = "INTERNAL_ERROR"
)

// GetMessage returns a human-readable message for a given error code.
func GetMessage(code ErrCode) string {
	switch code {
	// ─── Validation ────────────────────────────────────────────────────
	case ErrValidation:
		return "Validation failed. Please check your input."
	case ErrInvalidPayload:
		return "Invalid request payload."

	// ─── Resources ─────────────────────────────────────────────────────
	case ErrNotFound:
		return "Resource not found."
	case ErrTermNotFound:
		return "Term not found."
	case ErrNoActiveTerm:
		return "No active term is configured."
	case ErrBuildingNotFound:
		return "Building not found."

	// ─── Course data ───────────────────────────────────────────────────
	case ErrSchema:
		return "Course data is missing required columns."
	case ErrSourceUnavailable:
		return "Course data could not be loaded from any source."
	case ErrNoDataLoaded:
		return "No course data is loaded for this term."

	// ─── Rate Limiting ─────────────────────────────────────────────────
	case ErrRateLimitExceeded:
		return "Too many requests. Please try again later."

	// ─── Server ────────────────────────────────────────────────────────
	case ErrInternal:
		return "Internal server error."
	default:
		return "An unexpected error occurred."
	}
}
