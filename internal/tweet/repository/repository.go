package repository

import (
	"context"
	"errors"

	pgx "github.com/jackc/pgx/v4"
	"github.com/jackc/pgx/v4/pgxpool"

	"github.com/twitclone/backend/internal/tweet/domain"
)

var ErrTweetNotFound = errors.New("tweet not found")

type Repository interface {
	Create(ctx context.Context, tweet domain.Tweet) error
	FindByID(ctx context.Context, id string) (domain.Tweet, error)
	FindByAuthor(ctx context.Context, author string) ([]domain.Tweet, error)
	Search(ctx context.Context, query string, limit int) ([]domain.Tweet, error)
}

type PgRepository struct {
	pool *pgxpool.Pool
}

func NewPgRepository(pool *pgxpool.Pool) *PgRepository {
	return &PgRepository{pool: pool}
}

func (r *PgRepository) Create(ctx context.Context, tweet domain.Tweet) error {
	_, err := r.pool.Exec(
		ctx,
		`INSERT INTO tweets (id, message, author, date, in_reply_to) VALUES ($1, $2, $3, $4, $5)`,
		tweet.ID,
		tweet.Message,
		tweet.Author,
		tweet.Date,
		tweet.InReplyTo,
	)
	return err
}

func (r *PgRepository) FindByID(ctx context.Context, id string) (domain.Tweet, error) {
	row := r.pool.QueryRow(
		ctx,
		`SELECT id, message, author, date, in_reply_to FROM tweets WHERE id = $1`,
		id,
	)

	tweet, err := scanTweet(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Tweet{}, ErrTweetNotFound
		}
		return domain.Tweet{}, err
	}
	return tweet, nil
}

func (r *PgRepository) FindByAuthor(ctx context.Context, author string) ([]domain.Tweet, error) {
	rows, err := r.pool.Query(
		ctx,
		`SELECT id, message, author, date, in_reply_to FROM tweets WHERE author = $1`,
		author,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return collectTweets(rows)
}

// Search ranks tweets by store-computed relevance; the index weights the
// message above the author name.
func (r *PgRepository) Search(ctx context.Context, query string, limit int) ([]domain.Tweet, error) {
	rows, err := r.pool.Query(
		ctx,
		`SELECT id, message, author, date, in_reply_to
		 FROM tweets
		 WHERE search @@ plainto_tsquery('english', $1)
		 ORDER BY ts_rank(search, plainto_tsquery('english', $1)) DESC
		 LIMIT $2`,
		query,
		limit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return collectTweets(rows)
}

func scanTweet(row pgx.Row) (domain.Tweet, error) {
	var tweet domain.Tweet
	err := row.Scan(&tweet.ID, &tweet.Message, &tweet.Author, &tweet.Date, &tweet.InReplyTo)
	if err != nil {
		return domain.Tweet{}, err
	}
	return tweet, nil
}

func collectTweets(rows pgx.Rows) ([]domain.Tweet, error) {
	var tweets []domain.Tweet
	for rows.Next() {
		tweet, err := scanTweet(rows)
		if err != nil {
			return nil, err
		}
		tweets = append(tweets, tweet)
	}
	return tweets, rows.Err()
}
