package http

import (
	"net/http"

	"github.com/twitclone/backend/internal/auth/service"
	"github.com/twitclone/backend/internal/common/config"
	commonerrors "github.com/twitclone/backend/internal/common/errors"
	commonhttp "github.com/twitclone/backend/internal/common/http"
	"github.com/twitclone/backend/internal/common/logger"
)

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type tokenResponse struct {
	Token string `json:"token"`
}

type Handler struct {
	auth *service.AuthService
	log  *logger.Logger
}

func NewHandler(auth *service.AuthService, cfg config.Config, log *logger.Logger) http.Handler {
	h := &Handler{auth: auth, log: log}

	mux := http.NewServeMux()
	mux.HandleFunc("/auth/login", commonhttp.RequireMethod(http.MethodPost)(commonhttp.WithTimeout(cfg.RequestTimeout)(h.login)))
	return mux
}

func (h *Handler) login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := commonhttp.DecodeJSON(r, &req); err != nil {
		h.log.Warnf("login failed: invalid json: %v", err)
		commonhttp.WriteDomainError(w, commonerrors.ErrInvalidJSON)
		return
	}

	token, err := h.auth.Login(r.Context(), req.Username, req.Password)
	if err != nil {
		commonhttp.HandleError(w, r, err, h.log)
		return
	}

	commonhttp.WriteData(w, http.StatusOK, tokenResponse{Token: token})
}
