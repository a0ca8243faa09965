package service

import (
	"context"
	"errors"

	accountrepo "github.com/twitclone/backend/internal/account/repository"
	commoncrypto "github.com/twitclone/backend/internal/common/crypto"
	commonerrors "github.com/twitclone/backend/internal/common/errors"
	"github.com/twitclone/backend/internal/common/logger"
	"github.com/twitclone/backend/internal/observability/metrics"
)

// Comparison target when the account does not exist, so the missing-account
// path still pays for a bcrypt comparison and stays indistinguishable from a
// wrong password.
const dummyPasswordHash = "$2a$12$R9h/cIPz0gi.URNNX3kh2OPST9/PgBkqquzi.Ss7KIUgO2t0jWMUW"

type AuthService struct {
	accounts accountrepo.Repository
	hasher   commoncrypto.PasswordHasher
	issuer   *TokenIssuer
	log      *logger.Logger
}

func NewAuthService(accounts accountrepo.Repository, hasher commoncrypto.PasswordHasher, issuer *TokenIssuer, log *logger.Logger) *AuthService {
	return &AuthService{
		accounts: accounts,
		hasher:   hasher,
		issuer:   issuer,
		log:      log,
	}
}

// Login verifies credentials and issues a bearer token for the username.
// Unknown usernames and wrong passwords are logged differently but surface
// as the same auth/incorrect_credentials.
func (s *AuthService) Login(ctx context.Context, username, password string) (string, error) {
	account, err := s.accounts.FindByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, accountrepo.ErrAccountNotFound) {
			_ = s.hasher.Compare(dummyPasswordHash, password)
			s.log.WithFields(ctx, logger.Fields{
				"username": username,
				"action":   "login_unknown_account",
			}).Debug("login failed: account not found")
			metrics.LoginsTotal.WithLabelValues("failure").Inc()
			return "", commonerrors.ErrIncorrectCredentials
		}
		s.log.WithFields(ctx, logger.Fields{
			"username": username,
			"action":   "login_fetch_failed",
		}).Errorf("login failed: %v", err)
		return "", err
	}

	if err := s.hasher.Compare(account.PasswordHash, password); err != nil {
		s.log.WithFields(ctx, logger.Fields{
			"username": username,
			"action":   "login_invalid_password",
		}).Debug("login failed: invalid password")
		metrics.LoginsTotal.WithLabelValues("failure").Inc()
		return "", commonerrors.ErrIncorrectCredentials
	}

	token, err := s.issuer.Issue(account.Username)
	if err != nil {
		s.log.WithFields(ctx, logger.Fields{
			"username": username,
			"action":   "login_token_issue_failed",
		}).Errorf("login failed: token issue error: %v", err)
		return "", err
	}

	metrics.LoginsTotal.WithLabelValues("success").Inc()
	s.log.WithFields(ctx, logger.Fields{
		"username": account.Username,
		"action":   "login_success",
	}).Info("login success")

	return token, nil
}
