package log

// Common field names for structured logging
const (
	FieldComponent  = "component"
	FieldRequestID  = "request_id"
	FieldClientIP   = "client_ip"
	FieldMethod     = "method"
	FieldPath       = "path"
	FieldStatusCode = "status_code"
	FieldDuration   = "duration_ms"
	FieldError      = "error"
	FieldOperation  = "operation"
	FieldUserID     = "user_id"
	FieldAccountID  = "account_id"
	FieldTransferID = "transfer_id"
	FieldBillID     = "bill_id"
	FieldBudgetID   = "budget_id"
	FieldCategoryID = "category_id"
	FieldAmount     = "amount"
	FieldBalance    = "balance"
	FieldNextDue    = "next_payment_date"
	FieldStatus     = "status"
	FieldPercentage = "percentage_used"
)

// Components defines standard component names
const (
	ComponentApp        = "app"
	ComponentHTTP       = "http"
	ComponentStorage    = "storage"
	ComponentAMQP       = "amqp"
	ComponentWorker     = "worker"
	ComponentAccount    = "account"
	ComponentTransfer   = "transfer"
	ComponentBill       = "bill"
	ComponentBudget     = "budget"
	ComponentInvestment = "investment"
	ComponentReminder   = "reminder"
)

// Operations defines standard operation names
const (
	OpCreate   = "create"
	OpRead     = "read"
	OpUpdate   = "update"
	OpDelete   = "delete"
	OpList     = "list"
	OpEvaluate = "evaluate"
	OpReverse  = "reverse"
	OpPublish  = "publish"
	OpConsume  = "consume"
	OpStartup  = "startup"
	OpShutdown = "shutdown"
)
