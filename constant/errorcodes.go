package constant

// Domain service error codes
const (
	// Flyer service - Validation errors (0xx)
	ErrCodeEmptyURL = "SVC001"

	// Flyer service - Extraction errors (1xx)
	ErrCodeExtractFailure = "SVC101"
	ErrCodeInlineFailure  = "SVC102"
	ErrCodeQREncode       = "SVC103"

	// Share service - Storage errors (2xx)
	ErrCodeSharePut = "SVC201"
	ErrCodeShareGet = "SVC202"
)

// Database error codes
const (
	// General DB errors (5xx)
	ErrCodeDBGeneral = "DB500"

	// Connection errors (0xx)
	ErrCodeDBOpen    = "DB001"
	ErrCodeDBMigrate = "DB002"

	// Store operation errors (1xx)
	ErrCodeDBInsert = "DB101"

	// Find operation errors (2xx)
	ErrCodeDBLookup     = "DB201"
	ErrCodeDBScanRows   = "DB202"
	ErrCodeDBRowIterate = "DB203"

	// Delete operation errors (3xx)
	ErrCodeDBDelete = "DB301"

	// Close operation errors (4xx)
	ErrCodeDBClose = "DB401"
)

// Renderer error codes
const (
	ErrCodePDFAssets = "PDF001"
	ErrCodePDFRender = "PDF002"
)

// API error codes
const (
	ErrCodeAPIDecodeRequest  = "API001"
	ErrCodeAPIServiceError   = "API002"
	ErrCodeAppDBInit         = "APP001"
	ErrCodeAppServerStart    = "APP002"
	ErrCodeAppServerShutdown = "APP003"
)

// Error types for categorization
const (
	// Domain error types
	ErrTypeValidation = "validation"
	ErrTypeStorage    = "storage"
	ErrTypeRetrieval  = "retrieval"
	ErrTypeUpstream   = "upstream"
	ErrTypeRender     = "render"

	// Infrastructure error types
	ErrTypeDB  = "db"
	ErrTypeAPI = "api"
	ErrTypeApp = "application"
)
