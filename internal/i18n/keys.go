package i18n

// Error message translation keys.
const (
	ErrKeyInvalidRequest     = "error.invalid_request"
	ErrKeyInvalidRequestBody = "error.invalid_request_body"
	ErrKeyInternalError      = "error.internal_error"
	ErrKeyAPIKeyRequired     = "error.api_key_required"
	ErrKeyInvalidAPIKey      = "error.invalid_api_key"
	ErrKeyNotFound           = "error.not_found"
	ErrKeyRateLimitExceeded  = "error.rate_limit_exceeded"
	ErrKeyTimeout            = "error.timeout"
	ErrKeyUnavailable        = "error.service_unavailable"
	ErrKeyPayloadTooLarge    = "error.payload_too_large"
	// ErrKeyContainerNotFound takes the requested code.
	ErrKeyContainerNotFound = "error.container_not_found"
	// ErrKeyUnsupportedFormat takes the requested export format.
	ErrKeyUnsupportedFormat = "error.unsupported_format"
	// ErrKeyUnsupportedFile takes the uploaded file name.
	ErrKeyUnsupportedFile = "error.unsupported_file"
	ErrKeyImportFailed    = "error.import_failed"
)

// validationPrefix prefixes packing validation codes. Codes tied to an item
// take its 1-based number as the only argument.
const validationPrefix = "error.validation."

// Warning keys. Both take the product name and the rejected carton count.
const (
	WarnKeyContainerFull = "warning.container_full"
	WarnKeyOversized     = "warning.oversized"
)

// Success message translation keys.
const (
	SuccessKeySimulationCompleted = "success.simulation_completed"
	SuccessKeyContainerSaved      = "success.container_saved"
)

// ValidationKey returns the translation key for a packing validation code.
func ValidationKey(code string) string {
	return validationPrefix + code
}
