package http

import (
	"net/http"

	"github.com/twitclone/backend/internal/account/domain"
	"github.com/twitclone/backend/internal/account/service"
	"github.com/twitclone/backend/internal/common/authgate"
	"github.com/twitclone/backend/internal/common/config"
	commonerrors "github.com/twitclone/backend/internal/common/errors"
	commonhttp "github.com/twitclone/backend/internal/common/http"
	"github.com/twitclone/backend/internal/common/logger"
)

type createAccountRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type followRequest struct {
	Username string `json:"username"`
}

// accountResponse is the outward shape of an account; the password hash
// never crosses this boundary.
type accountResponse struct {
	Username  string   `json:"username"`
	Following []string `json:"following"`
}

type Handler struct {
	accounts *service.AccountService
	log      *logger.Logger
}

func NewHandler(accounts *service.AccountService, gate func(http.Handler) http.Handler, cfg config.Config, log *logger.Logger) http.Handler {
	h := &Handler{accounts: accounts, log: log}

	mux := http.NewServeMux()
	mux.HandleFunc("/account", commonhttp.RequireMethod(http.MethodPost)(commonhttp.WithTimeout(cfg.RequestTimeout)(h.create)))
	mux.Handle("/account/following", gate(commonhttp.RequireMethod(http.MethodPut)(commonhttp.WithTimeout(cfg.RequestTimeout)(h.follow))))
	return mux
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	var req createAccountRequest
	if err := commonhttp.DecodeJSON(r, &req); err != nil {
		h.log.Warnf("create account failed: invalid json: %v", err)
		commonhttp.WriteDomainError(w, commonerrors.ErrInvalidJSON)
		return
	}

	account, err := h.accounts.Create(r.Context(), req.Username, req.Password)
	if err != nil {
		commonhttp.HandleError(w, r, err, h.log)
		return
	}

	commonhttp.WriteData(w, http.StatusCreated, toAccountResponse(account))
}

func (h *Handler) follow(w http.ResponseWriter, r *http.Request) {
	follower, ok := authgate.Subject(r.Context())
	if !ok {
		commonhttp.WriteDomainError(w, commonerrors.ErrTokenRequired)
		return
	}

	var req followRequest
	if err := commonhttp.DecodeJSON(r, &req); err != nil {
		h.log.Warnf("follow failed: invalid json: %v", err)
		commonhttp.WriteDomainError(w, commonerrors.ErrInvalidJSON)
		return
	}

	account, err := h.accounts.Follow(r.Context(), follower, req.Username)
	if err != nil {
		commonhttp.HandleError(w, r, err, h.log)
		return
	}

	commonhttp.WriteData(w, http.StatusOK, toAccountResponse(account))
}

func toAccountResponse(account domain.Account) accountResponse {
	following := account.Following
	if following == nil {
		following = []string{}
	}
	return accountResponse{
		Username:  account.Username,
		Following: following,
	}
}
