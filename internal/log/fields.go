package log

// Common field names for structured logging
const (
	FieldComponent  = "component"
	FieldRequestID  = "request_id"
	FieldMethod     = "method"
	FieldPath       = "path"
	FieldStatusCode = "status_code"
	FieldDuration   = "duration_ms"
	FieldError      = "error"

	FieldTransactionID = "transaction_id"
	FieldCardID        = "card_id"
	FieldAmountCents   = "amount_cents"
	FieldCategory      = "category"
	FieldYear          = "year"
	FieldMonth         = "month"
	FieldInstallments  = "installments"
	FieldBackend       = "backend"
)

// ComponentApp tags records from the process entrypoint.
const ComponentApp = "app"
