package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgconn"
	pgx "github.com/jackc/pgx/v4"
	"github.com/jackc/pgx/v4/pgxpool"

	"github.com/twitclone/backend/internal/account/domain"
)

var (
	ErrAccountNotFound       = errors.New("account not found")
	ErrUsernameAlreadyExists = errors.New("username already exists")
)

type Repository interface {
	Create(ctx context.Context, account domain.Account) error
	FindByUsername(ctx context.Context, username string) (domain.Account, error)
	AddFollowing(ctx context.Context, followerUsername, targetUsername string) (domain.Account, error)
	Search(ctx context.Context, query string, limit int) ([]domain.Account, error)
}

type PgRepository struct {
	pool *pgxpool.Pool
}

func NewPgRepository(pool *pgxpool.Pool) *PgRepository {
	return &PgRepository{pool: pool}
}

func (r *PgRepository) Create(ctx context.Context, account domain.Account) error {
	_, err := r.pool.Exec(
		ctx,
		`INSERT INTO accounts (key, username, password_hash, following) VALUES ($1, $2, $3, $4)`,
		account.Key,
		account.Username,
		account.PasswordHash,
		account.Following,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return ErrUsernameAlreadyExists
		}
		return err
	}
	return nil
}

func (r *PgRepository) FindByUsername(ctx context.Context, username string) (domain.Account, error) {
	row := r.pool.QueryRow(
		ctx,
		`SELECT key, username, password_hash, following, created_at FROM accounts WHERE key = $1`,
		domain.Key(username),
	)

	var account domain.Account
	err := row.Scan(&account.Key, &account.Username, &account.PasswordHash, &account.Following, &account.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Account{}, ErrAccountNotFound
		}
		return domain.Account{}, err
	}

	return account, nil
}

// AddFollowing applies a set-semantics add of target to the follower's
// following array in a single UPDATE, so concurrent follows of different
// targets are never lost to a read-modify-write race.
func (r *PgRepository) AddFollowing(ctx context.Context, followerUsername, targetUsername string) (domain.Account, error) {
	row := r.pool.QueryRow(
		ctx,
		`UPDATE accounts
		 SET following = CASE
			WHEN $2 = ANY(following) THEN following
			ELSE array_append(following, $2)
		 END
		 WHERE key = $1
		 RETURNING key, username, password_hash, following, created_at`,
		domain.Key(followerUsername),
		targetUsername,
	)

	var account domain.Account
	err := row.Scan(&account.Key, &account.Username, &account.PasswordHash, &account.Following, &account.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Account{}, ErrAccountNotFound
		}
		return domain.Account{}, err
	}

	return account, nil
}

// Search ranks accounts by store-computed text relevance over the username
// index.
func (r *PgRepository) Search(ctx context.Context, query string, limit int) ([]domain.Account, error) {
	rows, err := r.pool.Query(
		ctx,
		`SELECT key, username, password_hash, following, created_at
		 FROM accounts
		 WHERE search @@ plainto_tsquery('simple', $1)
		 ORDER BY ts_rank(search, plainto_tsquery('simple', $1)) DESC
		 LIMIT $2`,
		query,
		limit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var accounts []domain.Account
	for rows.Next() {
		var account domain.Account
		if err := rows.Scan(&account.Key, &account.Username, &account.PasswordHash, &account.Following, &account.CreatedAt); err != nil {
			return nil, err
		}
		accounts = append(accounts, account)
	}
	return accounts, rows.Err()
}
