package service

import (
	"context"
	"errors"

	"github.com/twitclone/backend/internal/account/domain"
	"github.com/twitclone/backend/internal/account/repository"
	commoncrypto "github.com/twitclone/backend/internal/common/crypto"
	commonerrors "github.com/twitclone/backend/internal/common/errors"
	"github.com/twitclone/backend/internal/common/logger"
	"github.com/twitclone/backend/internal/observability/metrics"
)

type AccountService struct {
	repo   repository.Repository
	hasher commoncrypto.PasswordHasher
	log    *logger.Logger
}

func NewAccountService(repo repository.Repository, hasher commoncrypto.PasswordHasher, log *logger.Logger) *AccountService {
	return &AccountService{
		repo:   repo,
		hasher: hasher,
		log:    log,
	}
}

// Create hashes the password and persists the new account. Uniqueness is
// enforced entirely by the store constraint; the loser of a racing create
// gets account/duplicate and no partial record.
func (s *AccountService) Create(ctx context.Context, username, password string) (domain.Account, error) {
	if password == "" {
		s.log.WithFields(ctx, logger.Fields{
			"username": username,
			"action":   "create_account_password_required",
		}).Warn("create account failed: empty password")
		return domain.Account{}, commonerrors.ErrPasswordRequired
	}

	hash, err := s.hasher.Hash(password)
	if err != nil {
		s.log.WithFields(ctx, logger.Fields{
			"username": username,
			"action":   "create_account_hash_failed",
		}).Errorf("create account failed: password hash error: %v", err)
		return domain.Account{}, err
	}

	account := domain.New(username, hash)

	if err := s.repo.Create(ctx, account); err != nil {
		if errors.Is(err, repository.ErrUsernameAlreadyExists) {
			s.log.WithFields(ctx, logger.Fields{
				"username": username,
				"action":   "create_account_duplicate",
			}).Warn("create account failed: username taken")
			return domain.Account{}, commonerrors.ErrDuplicateUsername
		}
		s.log.WithFields(ctx, logger.Fields{
			"username": username,
			"action":   "create_account_failed",
		}).Errorf("create account failed: %v", err)
		return domain.Account{}, err
	}

	metrics.AccountsCreatedTotal.Inc()
	s.log.WithFields(ctx, logger.Fields{
		"username": username,
		"action":   "create_account_success",
	}).Info("account created")

	return account, nil
}

// Follow adds target to the follower's following set. The target must exist;
// re-follow and self-follow are both permitted no-ops at the set level.
func (s *AccountService) Follow(ctx context.Context, followerUsername, targetUsername string) (domain.Account, error) {
	if _, err := s.repo.FindByUsername(ctx, targetUsername); err != nil {
		if errors.Is(err, repository.ErrAccountNotFound) {
			s.log.WithFields(ctx, logger.Fields{
				"follower": followerUsername,
				"target":   targetUsername,
				"action":   "follow_unknown_target",
			}).Warn("follow failed: target does not exist")
			return domain.Account{}, commonerrors.ErrUnknownAccount
		}
		return domain.Account{}, err
	}

	account, err := s.repo.AddFollowing(ctx, followerUsername, targetUsername)
	if err != nil {
		if errors.Is(err, repository.ErrAccountNotFound) {
			return domain.Account{}, commonerrors.ErrUnknownAccount
		}
		s.log.WithFields(ctx, logger.Fields{
			"follower": followerUsername,
			"target":   targetUsername,
			"action":   "follow_failed",
		}).Errorf("follow failed: %v", err)
		return domain.Account{}, err
	}

	metrics.FollowsTotal.Inc()
	s.log.WithFields(ctx, logger.Fields{
		"follower": followerUsername,
		"target":   targetUsername,
		"action":   "follow_success",
	}).Info("follow applied")

	return account, nil
}
