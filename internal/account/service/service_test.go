package service_test

import (
	"context"
	"errors"
	"testing"

	"github.com/twitclone/backend/internal/account/domain"
	"github.com/twitclone/backend/internal/account/repository"
	"github.com/twitclone/backend/internal/account/service"
	commonerrors "github.com/twitclone/backend/internal/common/errors"
	"github.com/twitclone/backend/internal/common/logger"
)

type mockRepo struct {
	createCalls       int
	addFollowingCalls int

	createFunc         func(ctx context.Context, account domain.Account) error
	findByUsernameFunc func(ctx context.Context, username string) (domain.Account, error)
	addFollowingFunc   func(ctx context.Context, follower, target string) (domain.Account, error)
	searchFunc         func(ctx context.Context, query string, limit int) ([]domain.Account, error)
}

func (m *mockRepo) Create(ctx context.Context, account domain.Account) error {
	m.createCalls++
	if m.createFunc != nil {
		return m.createFunc(ctx, account)
	}
	return nil
}

func (m *mockRepo) FindByUsername(ctx context.Context, username string) (domain.Account, error) {
	if m.findByUsernameFunc != nil {
		return m.findByUsernameFunc(ctx, username)
	}
	return domain.Account{}, repository.ErrAccountNotFound
}

func (m *mockRepo) AddFollowing(ctx context.Context, follower, target string) (domain.Account, error) {
	m.addFollowingCalls++
	if m.addFollowingFunc != nil {
		return m.addFollowingFunc(ctx, follower, target)
	}
	return domain.Account{}, repository.ErrAccountNotFound
}

func (m *mockRepo) Search(ctx context.Context, query string, limit int) ([]domain.Account, error) {
	if m.searchFunc != nil {
		return m.searchFunc(ctx, query, limit)
	}
	return nil, nil
}

type mockHasher struct {
	hashCalls int
	hashFunc  func(password string) (string, error)
}

func (m *mockHasher) Hash(password string) (string, error) {
	m.hashCalls++
	if m.hashFunc != nil {
		return m.hashFunc(password)
	}
	return "hashed:" + password, nil
}

func (m *mockHasher) Compare(hash, password string) error {
	if hash == "hashed:"+password {
		return nil
	}
	return errors.New("mismatch")
}

func testLogger(t *testing.T) *logger.Logger {
	t.Helper()
	log, err := logger.New("", "test", "critical")
	if err != nil {
		t.Fatalf("failed to create logger: %v", err)
	}
	return log
}

func TestAccountService_Create_Success(t *testing.T) {
	var stored domain.Account
	repo := &mockRepo{
		createFunc: func(ctx context.Context, account domain.Account) error {
			stored = account
			return nil
		},
	}
	hasher := &mockHasher{}
	svc := service.NewAccountService(repo, hasher, testLogger(t))

	account, err := svc.Create(context.Background(), "jane", "secret123")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	if account.Username != "jane" {
		t.Errorf("expected username jane, got %s", account.Username)
	}
	if account.PasswordHash != "hashed:secret123" {
		t.Errorf("expected hashed password to be stored, got %s", account.PasswordHash)
	}
	if stored.Key != domain.Key("jane") {
		t.Errorf("expected stored key %q, got %q", domain.Key("jane"), stored.Key)
	}
	if len(stored.Following) != 0 {
		t.Errorf("expected new account to follow nobody, got %v", stored.Following)
	}
}

func TestAccountService_Create_EmptyPassword(t *testing.T) {
	repo := &mockRepo{}
	hasher := &mockHasher{}
	svc := service.NewAccountService(repo, hasher, testLogger(t))

	_, err := svc.Create(context.Background(), "jane", "")
	if !errors.Is(err, commonerrors.ErrPasswordRequired) {
		t.Fatalf("expected ErrPasswordRequired, got %v", err)
	}
	if hasher.hashCalls != 0 {
		t.Error("password must not be hashed when missing")
	}
	if repo.createCalls != 0 {
		t.Error("store must not be touched when the password is missing")
	}
}

func TestAccountService_Create_DuplicateUsername(t *testing.T) {
	repo := &mockRepo{
		createFunc: func(ctx context.Context, account domain.Account) error {
			return repository.ErrUsernameAlreadyExists
		},
	}
	svc := service.NewAccountService(repo, &mockHasher{}, testLogger(t))

	_, err := svc.Create(context.Background(), "jane", "secret123")
	if !errors.Is(err, commonerrors.ErrDuplicateUsername) {
		t.Fatalf("expected ErrDuplicateUsername, got %v", err)
	}
}

func TestAccountService_Create_HashError(t *testing.T) {
	hashErr := errors.New("bcrypt failure")
	repo := &mockRepo{}
	hasher := &mockHasher{
		hashFunc: func(string) (string, error) { return "", hashErr },
	}
	svc := service.NewAccountService(repo, hasher, testLogger(t))

	_, err := svc.Create(context.Background(), "jane", "secret123")
	if !errors.Is(err, hashErr) {
		t.Fatalf("expected hash error to propagate, got %v", err)
	}
	if repo.createCalls != 0 {
		t.Error("store must not be touched when hashing fails")
	}
}

func TestAccountService_Follow_Success(t *testing.T) {
	repo := &mockRepo{
		findByUsernameFunc: func(ctx context.Context, username string) (domain.Account, error) {
			return domain.Account{Username: username}, nil
		},
		addFollowingFunc: func(ctx context.Context, follower, target string) (domain.Account, error) {
			return domain.Account{Username: follower, Following: []string{target}}, nil
		},
	}
	svc := service.NewAccountService(repo, &mockHasher{}, testLogger(t))

	account, err := svc.Follow(context.Background(), "jane", "bob")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if len(account.Following) != 1 || account.Following[0] != "bob" {
		t.Errorf("expected following [bob], got %v", account.Following)
	}
}

func TestAccountService_Follow_UnknownTarget(t *testing.T) {
	repo := &mockRepo{}
	svc := service.NewAccountService(repo, &mockHasher{}, testLogger(t))

	_, err := svc.Follow(context.Background(), "jane", "ghost")
	if !errors.Is(err, commonerrors.ErrUnknownAccount) {
		t.Fatalf("expected ErrUnknownAccount, got %v", err)
	}
	if repo.addFollowingCalls != 0 {
		t.Error("follow must not be applied when the target does not exist")
	}
}

func TestAccountService_Follow_SelfFollow(t *testing.T) {
	repo := &mockRepo{
		findByUsernameFunc: func(ctx context.Context, username string) (domain.Account, error) {
			return domain.Account{Username: username}, nil
		},
		addFollowingFunc: func(ctx context.Context, follower, target string) (domain.Account, error) {
			return domain.Account{Username: follower, Following: []string{target}}, nil
		},
	}
	svc := service.NewAccountService(repo, &mockHasher{}, testLogger(t))

	account, err := svc.Follow(context.Background(), "jane", "jane")
	if err != nil {
		t.Fatalf("self-follow should be permitted, got %v", err)
	}
	if len(account.Following) != 1 || account.Following[0] != "jane" {
		t.Errorf("expected following [jane], got %v", account.Following)
	}
}
