package domain

import (
	"errors"
	"time"
	"unicode/utf8"
)

const MaxMessageLength = 240

var ErrInvalidTweet = errors.New("tweets must have an author and a message between 1 and 240 characters")

// Tweet is immutable once created; ID and Date are always server-assigned.
type Tweet struct {
	ID        string
	Message   string
	Author    string
	Date      time.Time
	InReplyTo *string
}

// New validates the author and message bounds. ID and Date are assigned at
// persistence time by the service.
func New(message, author string, inReplyTo *string) (Tweet, error) {
	length := utf8.RuneCountInString(message)
	if length == 0 || length > MaxMessageLength {
		return Tweet{}, ErrInvalidTweet
	}
	if author == "" {
		return Tweet{}, ErrInvalidTweet
	}

	return Tweet{
		Message:   message,
		Author:    author,
		InReplyTo: inReplyTo,
	}, nil
}
