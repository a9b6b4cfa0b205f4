package services

import (
	"encoding/base64"
	"fmt"
	"math/rand"

	"github.com/Allan0411/Notes-API/errors"
)

func errUserNotFound(id int) error {
	return errors.New(fmt.Sprintf("No user for id %d", id), errors.NotFound())
}

func errEmailTaken() error {
	return errors.New("This email is already registered", errors.Conflict())
}

func errUsernameTaken() error {
	return errors.New("This username is already taken", errors.Conflict())
}

func errBadCredentials() error {
	return errors.New("email or password incorrect", errors.BadRequest())
}

func errBadResetCode() error {
	return errors.New("invalid or expired reset code", errors.BadRequest())
}

func randToken(size int) string {
	b := make([]byte, size)
	rand.Read(b)
	return base64.StdEncoding.EncodeToString(b)
}

// randCode returns a 6-digit numeric code.
func randCode() string {
	return fmt.Sprintf("%06d", rand.Intn(1000000))
}
