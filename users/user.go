package users

import (
	"time"
)

// User is an account. The salt and password hash never leave the
// server.
type User struct {
	ID       int    `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`

	Salt         string `json:"-"`
	PasswordHash string `json:"-"`

	CreatedAt time.Time `json:"createdAt"`
}

// ResetCode is a short-lived numeric code emailed to a user who asked
// for a password reset. One code per email, the newest wins.
type ResetCode struct {
	Email     string
	Code      string
	ExpiresAt time.Time
}

// Repository is the durable account store. Email and username lookups
// are case-insensitive: implementations index on the lowercased value.
type Repository interface {
	// Get returns the user with the given id, or the zero User.
	Get(id int) (User, error)

	// GetByEmail returns the user with the given email, or the zero
	// User.
	GetByEmail(email string) (User, error)

	// GetByUsername returns the user with the given username, or the
	// zero User.
	GetByUsername(username string) (User, error)

	// List returns every account.
	List() ([]User, error)

	// Upsert inserts the user, assigning an id if it has none, or
	// overwrites it, keeping the email and username indexes in sync.
	Upsert(u *User) error

	// SaveResetCode stores the code for its email, replacing any
	// previous one.
	SaveResetCode(rc ResetCode) error

	// ResetCodeFor returns the stored code for the email, or the zero
	// ResetCode.
	ResetCodeFor(email string) (ResetCode, error)

	// DeleteResetCode removes the stored code for the email.
	DeleteResetCode(email string) error
}
