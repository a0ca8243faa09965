package service

import (
	"context"
	"strings"
	"unicode/utf8"

	accountdomain "github.com/twitclone/backend/internal/account/domain"
	accountrepo "github.com/twitclone/backend/internal/account/repository"
	"github.com/twitclone/backend/internal/common/constants"
	"github.com/twitclone/backend/internal/common/logger"
	"github.com/twitclone/backend/internal/observability/metrics"
	tweetdomain "github.com/twitclone/backend/internal/tweet/domain"
	tweetrepo "github.com/twitclone/backend/internal/tweet/repository"
)

const (
	KindAccount = "account"
	KindTweet   = "tweet"
)

// Results always carries both lists; the one not searched stays empty.
type Results struct {
	Accounts []accountdomain.Account
	Tweets   []tweetdomain.Tweet
}

type SearchService struct {
	accounts accountrepo.Repository
	tweets   tweetrepo.Repository
	log      *logger.Logger
}

func NewSearchService(accounts accountrepo.Repository, tweets tweetrepo.Repository, log *logger.Logger) *SearchService {
	return &SearchService{
		accounts: accounts,
		tweets:   tweets,
		log:      log,
	}
}

// Search runs a relevance-ranked text lookup. A blank query returns empty
// results without touching the store. An unknown kind searches both
// collections.
func (s *SearchService) Search(ctx context.Context, query, kind string) (Results, error) {
	results := Results{
		Accounts: []accountdomain.Account{},
		Tweets:   []tweetdomain.Tweet{},
	}

	q := strings.TrimSpace(query)
	if q == "" {
		return results, nil
	}
	q = truncateQuery(q, constants.MaxSearchQueryLength)

	searchAccounts := kind != KindTweet
	searchTweets := kind != KindAccount

	if searchAccounts {
		accounts, err := s.accounts.Search(ctx, q, constants.DefaultSearchLimit)
		if err != nil {
			s.log.Errorf("account search failed query=%q: %v", q, err)
			return Results{}, err
		}
		if accounts != nil {
			results.Accounts = accounts
		}
	}

	if searchTweets {
		tweets, err := s.tweets.Search(ctx, q, constants.DefaultSearchLimit)
		if err != nil {
			s.log.Errorf("tweet search failed query=%q: %v", q, err)
			return Results{}, err
		}
		if tweets != nil {
			results.Tweets = tweets
		}
	}

	metrics.SearchesTotal.WithLabelValues(kindLabel(kind)).Inc()
	return results, nil
}

// truncateQuery caps the query at maxBytes without splitting a rune, so the
// store never receives invalid UTF-8.
func truncateQuery(q string, maxBytes int) string {
	if len(q) <= maxBytes {
		return q
	}
	cut := maxBytes
	for cut > 0 && !utf8.RuneStart(q[cut]) {
		cut--
	}
	return q[:cut]
}

func kindLabel(kind string) string {
	switch kind {
	case KindAccount, KindTweet:
		return kind
	default:
		return "all"
	}
}
