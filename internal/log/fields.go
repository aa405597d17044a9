package log

// Common field names for structured logging
const (
	FieldComponent     = "component"
	FieldOperation     = "operation"
	FieldError         = "error"
	FieldProfile       = "profile"
	FieldTransactionID = "transaction_id"
	FieldTxType        = "tx_type"
	FieldAmountCents   = "amount_cents"
	FieldCategory      = "category"
	FieldBudgetCents   = "budget_cents"
	FieldRecord        = "record"
	FieldBackendType   = "backend_type"
	FieldPath          = "path"
	FieldCount         = "count"
	FieldRevision      = "revision"
)

// Components defines standard component names
const (
	ComponentApp       = "app"
	ComponentStore     = "store"
	ComponentDashboard = "dashboard"
	ComponentBackup    = "backup"
	ComponentGateway   = "gateway"
	ComponentBackend   = "backend"
	ComponentCache     = "cache"
	ComponentConfig    = "config"
)

// Operations defines standard operation names
const (
	OpAdd     = "add"
	OpUpdate  = "update"
	OpDelete  = "delete"
	OpRename  = "rename"
	OpSwitch  = "switch"
	OpLoad    = "load"
	OpSave    = "save"
	OpExport  = "export"
	OpImport  = "import"
	OpRestore = "restore"
)
