package constants

const (
	// HTTP Headers
	HeaderContentType   = "Content-Type"
	HeaderAuthorization = "Authorization"
	HeaderXRequestID    = "X-Request-ID"
	HeaderAPIKey        = "apikey"
	HeaderUpsert        = "x-upsert"
	HeaderCacheControl  = "Cache-Control"

	// Content Types
	ContentTypeJSON        = "application/json"
	ContentTypeOctetStream = "application/octet-stream"

	// Context keys
	ContextKeyUserID      = "user_id"
	ContextKeyUserRole    = "user_role"
	ContextKeyAccessToken = "access_token"
	ContextKeyRequestID   = "request_id"

	// Remote table names
	TableTickets     = "tickets"
	TableMessages    = "messages"
	TableTags        = "tags"
	TableTicketTags  = "ticket_tags"
	TableUsers       = "users"
	TableQueues      = "queues"
	TableUserQueues  = "user_queues"
	TableTicketFiles = "ticket_files"

	// Storage object cache lifetime in seconds
	StorageCacheControl = "3600"

	// Upload limits
	MaxUploadBytes = 25 << 20

	// Error messages
	ErrMsgInternalServerError = "Internal server error occurred"
	ErrMsgUnauthorized        = "Unauthorized access"
	ErrMsgForbidden           = "Access forbidden"
)
