package service

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/twitclone/backend/internal/common/clock"
	commoncrypto "github.com/twitclone/backend/internal/common/crypto"
	commonerrors "github.com/twitclone/backend/internal/common/errors"
	"github.com/twitclone/backend/internal/common/logger"
	"github.com/twitclone/backend/internal/observability/metrics"
	"github.com/twitclone/backend/internal/tweet/domain"
	"github.com/twitclone/backend/internal/tweet/repository"
)

type TweetService struct {
	repo        repository.Repository
	idGenerator commoncrypto.IDGenerator
	clock       clock.Clock
	log         *logger.Logger
}

func NewTweetService(repo repository.Repository, idGenerator commoncrypto.IDGenerator, clock clock.Clock, log *logger.Logger) *TweetService {
	return &TweetService{
		repo:        repo,
		idGenerator: idGenerator,
		clock:       clock,
		log:         log,
	}
}

// Post validates and persists a new tweet for the authenticated author. A
// reply reference must be a well-formed ID resolving to an existing tweet at
// creation time; it is never revalidated afterward.
func (s *TweetService) Post(ctx context.Context, authorUsername, message string, inReplyTo *string) (domain.Tweet, error) {
	tweet, err := domain.New(message, authorUsername, inReplyTo)
	if err != nil {
		s.log.WithFields(ctx, logger.Fields{
			"author": authorUsername,
			"action": "post_tweet_malformed",
		}).Warnf("post tweet failed: %v", err)
		return domain.Tweet{}, commonerrors.ErrMalformedTweet
	}

	if inReplyTo != nil {
		if _, err := uuid.Parse(*inReplyTo); err != nil {
			s.log.WithFields(ctx, logger.Fields{
				"author":      authorUsername,
				"in_reply_to": *inReplyTo,
				"action":      "post_tweet_reply_invalid_id",
			}).Warn("post tweet failed: reply reference is not a valid id")
			return domain.Tweet{}, commonerrors.ErrTweetNotFound
		}

		if _, err := s.repo.FindByID(ctx, *inReplyTo); err != nil {
			if errors.Is(err, repository.ErrTweetNotFound) {
				s.log.WithFields(ctx, logger.Fields{
					"author":      authorUsername,
					"in_reply_to": *inReplyTo,
					"action":      "post_tweet_reply_not_found",
				}).Warn("post tweet failed: reply target does not exist")
				return domain.Tweet{}, commonerrors.ErrTweetNotFound
			}
			return domain.Tweet{}, err
		}
	}

	id, err := s.idGenerator.NewID()
	if err != nil {
		return domain.Tweet{}, err
	}
	tweet.ID = id
	tweet.Date = s.clock.Now()

	if err := s.repo.Create(ctx, tweet); err != nil {
		s.log.WithFields(ctx, logger.Fields{
			"author": authorUsername,
			"action": "post_tweet_failed",
		}).Errorf("post tweet failed: %v", err)
		return domain.Tweet{}, err
	}

	metrics.TweetsPostedTotal.Inc()
	s.log.WithFields(ctx, logger.Fields{
		"author":   authorUsername,
		"tweet_id": tweet.ID,
		"action":   "post_tweet_success",
	}).Info("tweet posted")

	return tweet, nil
}

// Timeline returns every tweet by the given author, in store-native order.
func (s *TweetService) Timeline(ctx context.Context, author string) ([]domain.Tweet, error) {
	tweets, err := s.repo.FindByAuthor(ctx, author)
	if err != nil {
		s.log.WithFields(ctx, logger.Fields{
			"author": author,
			"action": "timeline_failed",
		}).Errorf("timeline failed: %v", err)
		return nil, err
	}
	return tweets, nil
}
