package http

import (
	"net/http"

	commonerrors "github.com/twitclone/backend/internal/common/errors"
	"github.com/twitclone/backend/internal/common/logger"
)

func HealthHandler(log *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			WriteDomainError(w, commonerrors.ErrMethodNotAllowed)
			return
		}
		log.Debug("health check request")
		WriteJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	}
}
