package http

import (
	"net/http"

	accountdomain "github.com/twitclone/backend/internal/account/domain"
	"github.com/twitclone/backend/internal/common/config"
	commonhttp "github.com/twitclone/backend/internal/common/http"
	"github.com/twitclone/backend/internal/common/logger"
	"github.com/twitclone/backend/internal/search/service"
	tweethttp "github.com/twitclone/backend/internal/tweet/http"
)

// Account hits carry only public fields; hashes and storage internals never
// leave the search boundary.
type accountResult struct {
	Username  string   `json:"username"`
	Following []string `json:"following"`
}

type searchResponse struct {
	Accounts []accountResult           `json:"accounts"`
	Tweets   []tweethttp.TweetResponse `json:"tweets"`
}

type Handler struct {
	search *service.SearchService
	log    *logger.Logger
}

func NewHandler(search *service.SearchService, cfg config.Config, log *logger.Logger) http.Handler {
	h := &Handler{search: search, log: log}

	mux := http.NewServeMux()
	mux.HandleFunc("/search", commonhttp.RequireMethod(http.MethodGet)(commonhttp.WithTimeout(cfg.SearchTimeout)(h.searchRoute)))
	return mux
}

func (h *Handler) searchRoute(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("q")
	kind := r.URL.Query().Get("type")

	results, err := h.search.Search(r.Context(), query, kind)
	if err != nil {
		commonhttp.HandleError(w, r, err, h.log)
		return
	}

	commonhttp.WriteData(w, http.StatusOK, toSearchResponse(results))
}

func toSearchResponse(results service.Results) searchResponse {
	accounts := make([]accountResult, 0, len(results.Accounts))
	for _, a := range results.Accounts {
		accounts = append(accounts, toAccountResult(a))
	}
	return searchResponse{
		Accounts: accounts,
		Tweets:   tweethttp.ToTweetResponses(results.Tweets),
	}
}

func toAccountResult(account accountdomain.Account) accountResult {
	following := account.Following
	if following == nil {
		following = []string{}
	}
	return accountResult{
		Username:  account.Username,
		Following: following,
	}
}
