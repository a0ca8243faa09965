package http

import (
	"net/http"

	"github.com/twitclone/backend/internal/common/constants"
	"github.com/twitclone/backend/internal/common/httpmetrics"
	"github.com/twitclone/backend/internal/common/logger"
)

// BuildBaseHandler wraps the application mux in the shared middleware chain:
// security headers, panic recovery, trace IDs, body size cap, metrics.
func BuildBaseHandler(log *logger.Logger, handler http.Handler) http.Handler {
	recovery := RecoveryMiddleware(log)
	maxRequestSize := MaxRequestSizeMiddleware(constants.DefaultMaxRequestSize)

	return SecurityHeadersMiddleware(recovery(TraceIDMiddleware(maxRequestSize(httpmetrics.Wrap(handler)))))
}
