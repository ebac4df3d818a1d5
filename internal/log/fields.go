package log

// Common field names for structured logging
const (
	FieldComponent  = "component"
	FieldRequestID  = "request_id"
	FieldMethod     = "method"
	FieldPath       = "path"
	FieldQuery      = "query"
	FieldStatusCode = "status_code"
	FieldDuration   = "duration_ms"
	FieldSuccess    = "success"
	FieldError      = "error"
	FieldOperation  = "operation"
	FieldRange      = "range"
	FieldFrom       = "from"
	FieldTo         = "to"
	FieldCurrency   = "currency"
	FieldYear       = "year"
	FieldSequence   = "sequence"
	FieldEndpoint   = "endpoint"
	FieldRowCount   = "row_count"
	FieldSnapshotAt = "snapshot_at"
)

// Components defines standard component names
const (
	ComponentApp      = "app"
	ComponentHTTP     = "http"
	ComponentReport   = "report"
	ComponentPeriod   = "period"
	ComponentCurrency = "currency"
	ComponentUpstream = "upstream"
	ComponentCache    = "cache"
	ComponentStorage  = "storage"
	ComponentAMQP     = "amqp"
	ComponentWorker   = "worker"
)

// Operations defines standard operation names
const (
	OpReconcile = "reconcile"
	OpFetch     = "fetch"
	OpConvert   = "convert"
	OpRefresh   = "refresh"
	OpExport    = "export"
	OpStartup   = "startup"
	OpShutdown  = "shutdown"
)
