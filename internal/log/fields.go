package log

// Common field names for structured logging
const (
	FieldComponent = "component"
	FieldError     = "error"
)

// Standard component names
const (
	ComponentApp     = "app"
	ComponentHTTP    = "http"
	ComponentStorage = "storage"
	ComponentWorker  = "worker"
)
