package constants

const (
	ROLE_ADMIN    = "Admin"
	ROLE_CUSTOMER = "Customer"
)

var ROLES = []string{ROLE_ADMIN, ROLE_CUSTOMER}

// Response messages
const (
	ERROR_INTERNAL_ERROR       = "Internal server error"
	ERROR_INPUT                = "Invalid input"
	ERROR_PARSE_DATA_TO_LOCALS = "Failed to read validated input"
	DATA_INPUT_IS_NOT_NUMBER   = "Parameter must be a positive number"
	INVALID_CREDENTIALS        = "Invalid email or password"
	ACCOUNT_NOT_ACTIVE         = "Account is deactivated"
	MISSING_TOKEN              = "Missing token"
	INVALID_TOKEN              = "Invalid or expired token"
	NOT_ADMIN                  = "Admin permission required"
	INVALID_WEBHOOK_SECRET     = "Invalid webhook secret"
)

const (
	LOCALS_INPUT = "input"
	LOCALS_ID    = "inputId"
	LOCALS_USER  = "user"
)

const (
	ACCESS_TOKEN_COOKIE   = "access_token"
	REFRESH_TOKEN_COOKIE  = "refresh_token"
	WEBHOOK_SECRET_HEADER = "X-Webhook-Secret"
)
