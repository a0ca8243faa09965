package http

import (
	"net/http"
	"time"

	"github.com/twitclone/backend/internal/common/authgate"
	"github.com/twitclone/backend/internal/common/config"
	commonerrors "github.com/twitclone/backend/internal/common/errors"
	commonhttp "github.com/twitclone/backend/internal/common/http"
	"github.com/twitclone/backend/internal/common/logger"
	"github.com/twitclone/backend/internal/tweet/domain"
	"github.com/twitclone/backend/internal/tweet/service"
)

type postTweetRequest struct {
	Message   string  `json:"message" validate:"required,max=240"`
	InReplyTo *string `json:"inReplyTo"`
}

type TweetResponse struct {
	ID        string    `json:"id"`
	Message   string    `json:"message"`
	Author    string    `json:"author"`
	Date      time.Time `json:"date"`
	InReplyTo *string   `json:"inReplyTo,omitempty"`
}

type Handler struct {
	tweets *service.TweetService
	log    *logger.Logger
}

func NewHandler(tweets *service.TweetService, gate func(http.Handler) http.Handler, cfg config.Config, log *logger.Logger) http.Handler {
	h := &Handler{tweets: tweets, log: log}

	mux := http.NewServeMux()
	mux.Handle("/tweets", gate(commonhttp.WithTimeout(cfg.RequestTimeout)(h.tweetsRoute)))
	return mux
}

func (h *Handler) tweetsRoute(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodPost:
		h.post(w, r)
	case http.MethodGet:
		h.timeline(w, r)
	default:
		commonhttp.WriteDomainError(w, commonerrors.ErrMethodNotAllowed)
	}
}

func (h *Handler) post(w http.ResponseWriter, r *http.Request) {
	author, ok := authgate.Subject(r.Context())
	if !ok {
		commonhttp.WriteDomainError(w, commonerrors.ErrTokenRequired)
		return
	}

	var req postTweetRequest
	if err := commonhttp.DecodeJSON(r, &req); err != nil {
		h.log.Warnf("post tweet failed: invalid json: %v", err)
		commonhttp.WriteDomainError(w, commonerrors.ErrMalformedTweet)
		return
	}

	if err := commonhttp.ValidateStruct(req); err != nil {
		h.log.Warnf("post tweet failed: validation: %v", err)
		commonhttp.WriteDomainError(w, commonerrors.ErrMalformedTweet)
		return
	}

	tweet, err := h.tweets.Post(r.Context(), author, req.Message, req.InReplyTo)
	if err != nil {
		commonhttp.HandleError(w, r, err, h.log)
		return
	}

	commonhttp.WriteData(w, http.StatusCreated, ToTweetResponse(tweet))
}

func (h *Handler) timeline(w http.ResponseWriter, r *http.Request) {
	author := r.URL.Query().Get("author")

	tweets, err := h.tweets.Timeline(r.Context(), author)
	if err != nil {
		commonhttp.HandleError(w, r, err, h.log)
		return
	}

	commonhttp.WriteData(w, http.StatusOK, ToTweetResponses(tweets))
}

func ToTweetResponse(tweet domain.Tweet) TweetResponse {
	return TweetResponse{
		ID:        tweet.ID,
		Message:   tweet.Message,
		Author:    tweet.Author,
		Date:      tweet.Date,
		InReplyTo: tweet.InReplyTo,
	}
}

func ToTweetResponses(tweets []domain.Tweet) []TweetResponse {
	result := make([]TweetResponse, 0, len(tweets))
	for _, t := range tweets {
		result = append(result, ToTweetResponse(t))
	}
	return result
}
