package constant

// Request context keys
const (
	RequestIDKey = "request_id"
)

// HTTP header names
const (
	HeaderRequestID = "X-Request-ID"
)

// Function/Context names
const (
	// Domain context names
	CtxFlyer            = "flyer"
	CtxGenerateFlyer    = "GenerateFlyer"
	CtxExtractMainImage = "ExtractMainImage"
	CtxInlineImage      = "InlineImage"
	CtxShare            = "share"
	CtxSharePut         = "Put"
	CtxShareGet         = "Get"

	// Infrastructure context names
	CtxDB      = "db"
	CtxStore   = "Store"
	CtxFind    = "Find"
	CtxDelete  = "Delete"
	CtxClose   = "Close"
	CtxCompose = "Compose"
	CtxAPI     = "api"

	// General context names
	CtxRouter        = "Router"
	CtxMain          = "Main"
	CtxCreateFlyer   = "CreateFlyer"
	CtxGeneratePDF   = "GeneratePDF"
	CtxCreateShare   = "CreateShare"
	CtxRetrieveShare = "RetrieveShare"
)

// Data field keys
const (
	// Service data fields
	DataService     = "service"
	DataURL         = "url"
	DataImageURL    = "image_url"
	DataShareID     = "share_id"
	DataContentType = "content_type"
	DataBytes       = "bytes"
	DataCreatedAt   = "created_at"
	DataBackend     = "backend"
	DataSwept       = "swept"

	// Database data fields
	DataPath         = "path"
	DataElapsed      = "elapsed"
	DataRows         = "rows"
	DataSQL          = "sql"
	DataData         = "data"
	DataRowsAffected = "rows_affected"

	// API data fields
	DataMethod      = "method"
	DataStatus      = "status"
	DataLatency     = "latency"
	DataRemoteAddr  = "remote_addr"
	DataUserAgent   = "user_agent"
	DataPort        = "port"
	DataDBPath      = "db_path"
	DataAssetDir    = "asset_dir"
	DataEnvironment = "environment"
)

// Error message constants
const (
	ErrNoURLProvided     = "No URL provided"
	ErrNoImageFound      = "Could not extract image"
	ErrMissingAssets     = "Missing image or QR code data"
	ErrMissingShareID    = "Share ID is required"
	ErrShareNotFound     = "Share link not found or expired"
	ErrAssetFilesMissing = "Asset files not found"
	ErrServerError       = "Server error"
	ErrCreateShareFailed = "Failed to create share link"
	ErrGetShareFailed    = "Failed to retrieve share data"
	ErrGeneratePDFFailed = "Failed to generate PDF"
)

// API routes
const (
	RouteCreateFlyer = "/api/flyer"
	RouteGeneratePDF = "/api/generate-pdf"
	RouteShare       = "/api/share"
	RouteIndexPage   = "/"
	RouteSharePage   = "/share/{shareID}"
	RouteStatic      = "/static/*"
	RouteHealthcheck = "/health"
)

// Log keys
const (
	LogTimeKey         = "time"
	LogLevelKey        = "level"
	LogNameKey         = "logger"
	LogCallerKey       = "caller"
	LogMessageKey      = "msg"
	LogStacktraceKey   = "stacktrace"
	LogRequestIDKey    = "request_id"
	LogFunctionKey     = "function"
	LogErrorCodeKey    = "error_code"
	LogErrorTypeKey    = "error_type"
	LogErrorMessageKey = "error_message"
	LogEncodingJSON    = "json"
	LogEncodingConsole = "console"
	LogOutputStdout    = "stdout"
	LogOutputStderr    = "stderr"
)

// Environment constants
const (
	EnvDevelopment = "development"
	EnvProduction  = "production"
)

// Message constants for application
const (
	MsgApplicationStarting  = "Application starting"
	MsgFailedToInitDB       = "Failed to initialize share database, continuing with memory only"
	MsgServerStarting       = "Server starting"
	MsgServerFailedToStart  = "Server failed to start"
	MsgServerShuttingDown   = "Server shutting down"
	MsgServerShutdownError  = "Error during server shutdown"
	MsgServerStopped        = "Server stopped"
	MsgRequestReceived      = "Request received"
	MsgRequestCompleted     = "Request completed"
	MsgSettingUpRoutes      = "Setting up API routes"
	MsgHealthcheckRequest   = "Handling healthcheck request"
	MsgHealthy              = "Healthy"
	MsgHandlingFlyerRequest = "Handling flyer creation request"
	MsgHandlingPDFRequest   = "Handling PDF generation request"
	MsgHandlingShareRequest = "Handling share request"
	MsgPrimaryStoreFallback = "Primary share backend failed, falling back to memory"
	MsgShareRecordExpired   = "Share record expired"
	MsgShareStored          = "Share data stored"
	MsgShareRetrieved       = "Share data retrieved"
	MsgFlyerGenerated       = "Flyer assets generated"
	MsgPDFGenerated         = "PDF generated"
	MsgMemorySweep          = "Swept expired share records from memory"
)

// Content negotiation constants
const (
	PDFContentType       = "application/pdf"
	PDFDisposition       = `attachment; filename="property-flyer.pdf"`
	DefaultImageMimeType = "image/jpeg"
)

// Cache namespace
const (
	ShareNamespace = "SHARE"
)
