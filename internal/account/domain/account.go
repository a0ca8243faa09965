package domain

import "time"

// Account is one record per user. Following holds directed follow edges as a
// set of usernames; order is not significant and duplicates never occur.
type Account struct {
	Key          string
	Username     string
	PasswordHash string
	Following    []string
	CreatedAt    time.Time
}

// Key derives the storage key for a username. Kept as a pure function so key
// derivation is testable on its own and has a single definition; today the
// key is the username itself.
func Key(username string) string {
	return username
}

// New builds an account ready for persistence, computing the storage key
// from the username.
func New(username, passwordHash string) Account {
	return Account{
		Key:          Key(username),
		Username:     username,
		PasswordHash: passwordHash,
		Following:    []string{},
	}
}
