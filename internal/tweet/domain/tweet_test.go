package domain_test

import (
	"errors"
	"strings"
	"testing"

	"github.com/twitclone/backend/internal/tweet/domain"
)

func TestNew_MessageBounds(t *testing.T) {
	tests := []struct {
		name    string
		message string
		wantErr bool
	}{
		{"empty", "", true},
		{"single rune", "x", false},
		{"at limit", strings.Repeat("a", 240), false},
		{"over limit", strings.Repeat("a", 241), true},
		{"multibyte at limit", strings.Repeat("ü", 240), false},
		{"multibyte over limit", strings.Repeat("ü", 241), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := domain.New(tt.message, "jane", nil)
			if tt.wantErr && !errors.Is(err, domain.ErrInvalidTweet) {
				t.Errorf("expected ErrInvalidTweet, got %v", err)
			}
			if !tt.wantErr && err != nil {
				t.Errorf("expected no error, got %v", err)
			}
		})
	}
}

func TestNew_EmptyAuthor(t *testing.T) {
	_, err := domain.New("hello", "", nil)
	if !errors.Is(err, domain.ErrInvalidTweet) {
		t.Fatalf("expected ErrInvalidTweet, got %v", err)
	}
}

func TestNew_KeepsReplyReference(t *testing.T) {
	replyTo := "7c9e6679-7425-40de-944b-e07fc1f90ae7"
	tweet, err := domain.New("hello", "jane", &replyTo)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if tweet.InReplyTo == nil || *tweet.InReplyTo != replyTo {
		t.Errorf("expected reply reference %s to be kept, got %v", replyTo, tweet.InReplyTo)
	}
	if tweet.ID != "" {
		t.Error("expected ID to stay unassigned until persistence")
	}
	if !tweet.Date.IsZero() {
		t.Error("expected Date to stay unassigned until persistence")
	}
}
