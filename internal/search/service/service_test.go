package service_test

import (
	"context"
	"errors"
	"strings"
	"testing"
	"unicode/utf8"

	accountdomain "github.com/twitclone/backend/internal/account/domain"
	"github.com/twitclone/backend/internal/common/constants"
	"github.com/twitclone/backend/internal/common/logger"
	"github.com/twitclone/backend/internal/search/service"
	tweetdomain "github.com/twitclone/backend/internal/tweet/domain"
)

type mockAccountRepo struct {
	searchCalls int
	searchFunc  func(ctx context.Context, query string, limit int) ([]accountdomain.Account, error)
}

func (m *mockAccountRepo) Create(ctx context.Context, account accountdomain.Account) error {
	return nil
}

func (m *mockAccountRepo) FindByUsername(ctx context.Context, username string) (accountdomain.Account, error) {
	return accountdomain.Account{}, nil
}

func (m *mockAccountRepo) AddFollowing(ctx context.Context, follower, target string) (accountdomain.Account, error) {
	return accountdomain.Account{}, nil
}

func (m *mockAccountRepo) Search(ctx context.Context, query string, limit int) ([]accountdomain.Account, error) {
	m.searchCalls++
	if m.searchFunc != nil {
		return m.searchFunc(ctx, query, limit)
	}
	return nil, nil
}

type mockTweetRepo struct {
	searchCalls int
	searchFunc  func(ctx context.Context, query string, limit int) ([]tweetdomain.Tweet, error)
}

func (m *mockTweetRepo) Create(ctx context.Context, tweet tweetdomain.Tweet) error {
	return nil
}

func (m *mockTweetRepo) FindByID(ctx context.Context, id string) (tweetdomain.Tweet, error) {
	return tweetdomain.Tweet{}, nil
}

func (m *mockTweetRepo) FindByAuthor(ctx context.Context, author string) ([]tweetdomain.Tweet, error) {
	return nil, nil
}

func (m *mockTweetRepo) Search(ctx context.Context, query string, limit int) ([]tweetdomain.Tweet, error) {
	m.searchCalls++
	if m.searchFunc != nil {
		return m.searchFunc(ctx, query, limit)
	}
	return nil, nil
}

func testLogger(t *testing.T) *logger.Logger {
	t.Helper()
	log, err := logger.New("", "test", "critical")
	if err != nil {
		t.Fatalf("failed to create logger: %v", err)
	}
	return log
}

func newService(t *testing.T, accounts *mockAccountRepo, tweets *mockTweetRepo) *service.SearchService {
	t.Helper()
	return service.NewSearchService(accounts, tweets, testLogger(t))
}

func TestSearch_EmptyQuery(t *testing.T) {
	accounts := &mockAccountRepo{}
	tweets := &mockTweetRepo{}
	svc := newService(t, accounts, tweets)

	for _, query := range []string{"", "   ", "\t\n"} {
		results, err := svc.Search(context.Background(), query, "")
		if err != nil {
			t.Fatalf("expected no error for query %q, got %v", query, err)
		}
		if results.Accounts == nil || results.Tweets == nil {
			t.Error("expected empty slices, not nil")
		}
		if len(results.Accounts) != 0 || len(results.Tweets) != 0 {
			t.Errorf("expected empty results for query %q", query)
		}
	}

	if accounts.searchCalls != 0 || tweets.searchCalls != 0 {
		t.Error("blank queries must not reach the store")
	}
}

func TestSearch_BothKindsByDefault(t *testing.T) {
	accounts := &mockAccountRepo{
		searchFunc: func(ctx context.Context, query string, limit int) ([]accountdomain.Account, error) {
			return []accountdomain.Account{{Username: "jane"}}, nil
		},
	}
	tweets := &mockTweetRepo{
		searchFunc: func(ctx context.Context, query string, limit int) ([]tweetdomain.Tweet, error) {
			return []tweetdomain.Tweet{{ID: "1", Message: "hello jane"}}, nil
		},
	}
	svc := newService(t, accounts, tweets)

	results, err := svc.Search(context.Background(), "jane", "")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if len(results.Accounts) != 1 || len(results.Tweets) != 1 {
		t.Errorf("expected hits in both collections, got %d accounts and %d tweets",
			len(results.Accounts), len(results.Tweets))
	}
}

func TestSearch_KindAccount(t *testing.T) {
	accounts := &mockAccountRepo{
		searchFunc: func(ctx context.Context, query string, limit int) ([]accountdomain.Account, error) {
			return []accountdomain.Account{{Username: "jane"}}, nil
		},
	}
	tweets := &mockTweetRepo{}
	svc := newService(t, accounts, tweets)

	results, err := svc.Search(context.Background(), "jane", service.KindAccount)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if len(results.Accounts) != 1 {
		t.Errorf("expected 1 account hit, got %d", len(results.Accounts))
	}
	if tweets.searchCalls != 0 {
		t.Error("account-only search must not query tweets")
	}
	if results.Tweets == nil || len(results.Tweets) != 0 {
		t.Errorf("expected empty tweet list, got %v", results.Tweets)
	}
}

func TestSearch_KindTweet(t *testing.T) {
	accounts := &mockAccountRepo{}
	tweets := &mockTweetRepo{
		searchFunc: func(ctx context.Context, query string, limit int) ([]tweetdomain.Tweet, error) {
			return []tweetdomain.Tweet{{ID: "1", Message: "hello"}}, nil
		},
	}
	svc := newService(t, accounts, tweets)

	results, err := svc.Search(context.Background(), "hello", service.KindTweet)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if len(results.Tweets) != 1 {
		t.Errorf("expected 1 tweet hit, got %d", len(results.Tweets))
	}
	if accounts.searchCalls != 0 {
		t.Error("tweet-only search must not query accounts")
	}
}

func TestSearch_TruncatesLongQuery(t *testing.T) {
	tests := []struct {
		name  string
		query string
	}{
		{"ascii", strings.Repeat("a", constants.MaxSearchQueryLength+50)},
		{"multibyte rune straddling the cap", strings.Repeat("a", constants.MaxSearchQueryLength-1) + "über alles"},
		{"all multibyte", strings.Repeat("ü", constants.MaxSearchQueryLength)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var sawQuery string
			accounts := &mockAccountRepo{
				searchFunc: func(ctx context.Context, query string, limit int) ([]accountdomain.Account, error) {
					sawQuery = query
					return nil, nil
				},
			}
			svc := newService(t, accounts, &mockTweetRepo{})

			if _, err := svc.Search(context.Background(), tt.query, service.KindAccount); err != nil {
				t.Fatalf("expected no error, got %v", err)
			}
			if len(sawQuery) > constants.MaxSearchQueryLength {
				t.Errorf("expected query capped at %d bytes, got %d", constants.MaxSearchQueryLength, len(sawQuery))
			}
			if !utf8.ValidString(sawQuery) {
				t.Errorf("query sent to the store must be valid UTF-8, got %q", sawQuery)
			}
			if !strings.HasPrefix(tt.query, sawQuery) {
				t.Errorf("truncated query %q is not a prefix of the original", sawQuery)
			}
		})
	}
}

func TestSearch_StoreError(t *testing.T) {
	storeErr := errors.New("connection reset")
	accounts := &mockAccountRepo{
		searchFunc: func(ctx context.Context, query string, limit int) ([]accountdomain.Account, error) {
			return nil, storeErr
		},
	}
	svc := newService(t, accounts, &mockTweetRepo{})

	_, err := svc.Search(context.Background(), "jane", "")
	if !errors.Is(err, storeErr) {
		t.Fatalf("expected store error to propagate, got %v", err)
	}
}
