package constvars

const (
	MethodGet     = "GET"
	MethodPost    = "POST"
	MethodPut     = "PUT"
	MethodPatch   = "PATCH"
	MethodDelete  = "DELETE"
	MethodOptions = "OPTIONS"
)

const (
	MIMETextPlain       = "text/plain"
	MIMEApplicationJSON = "application/json"
	MIMEOctetStream     = "application/octet-stream"
)

const (
	StatusOK        = 200
	StatusCreated   = 201
	StatusNoContent = 204

	StatusBadRequest          = 400
	StatusUnauthorized        = 401
	StatusForbidden           = 403
	StatusNotFound            = 404
	StatusConflict            = 409
	StatusUnprocessableEntity = 422
	StatusTooManyRequests     = 429

	StatusInternalServerError = 500
	StatusServiceUnavailable  = 503
	StatusGatewayTimeout      = 504
)

const (
	HeaderAccept        = "Accept"
	HeaderAuthorization = "Authorization"
	HeaderContentType   = "Content-Type"
	HeaderXRequestID    = "X-Request-ID"
	HeaderXCSRFToken    = "X-CSRF-Token"
	HeaderRetryAfter    = "Retry-After"
	HeaderLink          = "Link"
)

const (
	URLParamProfessionalID = "professionalID"
	URLParamBlockID        = "blockID"
	URLParamAppointmentID  = "appointmentID"
)

const (
	QueryParamDate        = "date"
	QueryParamDuration    = "duration"
	QueryParamGranularity = "granularity"
	QueryParamInclude     = "include"
	QueryParamFrom        = "from"
	QueryParamTo          = "to"
	QueryParamDays        = "days"
	QueryParamIncludeAll  = "all"
)
