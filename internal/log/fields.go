package log

// Common field names for structured logging
const (
	FieldComponent = "component"
	FieldOperation = "operation"
	FieldError     = "error"
	FieldPath      = "path"
	FieldBackend   = "backend"
	FieldRow       = "row"
	FieldRows      = "rows"
	FieldCategory  = "category"
	FieldAmount    = "amount"
	FieldMonth     = "month"
	FieldRequestID = "request_id"
	FieldMethod    = "method"
	FieldStatus    = "status"
	FieldDuration  = "duration_ms"
	FieldClientIP  = "client_ip"
)

// Components defines standard component names
const (
	ComponentApp     = "app"
	ComponentHTTP    = "http"
	ComponentStore   = "store"
	ComponentBackend = "backend"
	ComponentService = "expense"
	ComponentReport  = "report"
	ComponentCharts  = "charts"
)

// Operations defines standard operation names
const (
	OpInit   = "init"
	OpLoad   = "load"
	OpSave   = "save"
	OpAdd    = "add"
	OpDelete = "delete"
	OpList   = "list"
	OpReport = "report"
	OpRender = "render"
)
