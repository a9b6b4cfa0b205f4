package services

import (
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/Allan0411/Notes-API/errors"
	"github.com/Allan0411/Notes-API/log"
	"github.com/Allan0411/Notes-API/users"
)

// resetCodeTTL is how long an emailed reset code stays valid.
const resetCodeTTL = 15 * time.Minute

// Encoder turns a user id into a signed token.
type Encoder interface {
	Encode(int) (string, error)
}

// Mailer sends the reset code to the user. Implementations live in the
// mail package.
type Mailer interface {
	SendResetCode(email, code string) error
}

type UserService struct {
	repository users.Repository

	encoder Encoder
	mailer  Mailer
	logger  log.Logger
}

func NewUserService(repo users.Repository, encoder Encoder, mailer Mailer, logger log.Logger) *UserService {
	return &UserService{
		repository: repo,

		encoder: encoder,
		mailer:  mailer,
		logger:  logger,
	}
}

// SignUp registers a new account and returns it with a fresh token.
func (s *UserService) SignUp(username, email, password string) (users.User, string, error) {
	username = strings.TrimSpace(username)
	email = strings.ToLower(strings.TrimSpace(email))
	if username == "" || email == "" || password == "" {
		return users.User{}, "", errors.New("username, email and password are required", errors.BadRequest())
	}

	existing, err := s.repository.GetByEmail(email)
	if err != nil {
		return users.User{}, "", err
	} else if existing.ID != 0 {
		return users.User{}, "", errEmailTaken()
	}

	existing, err = s.repository.GetByUsername(username)
	if err != nil {
		return users.User{}, "", err
	} else if existing.ID != 0 {
		return users.User{}, "", errUsernameTaken()
	}

	user := users.User{
		Username:  username,
		Email:     email,
		Salt:      randToken(64),
		CreatedAt: time.Now(),
	}

	// Generate "hash" to store from user password
	hash, err := bcrypt.GenerateFromPassword([]byte(password+user.Salt), bcrypt.DefaultCost)
	if err != nil {
		return users.User{}, "", err
	}
	user.PasswordHash = string(hash)

	if err := s.repository.Upsert(&user); err != nil {
		return users.User{}, "", err
	}

	token, err := s.encoder.Encode(user.ID)
	if err != nil {
		return users.User{}, "", err
	}
	return user, token, nil
}

// Login checks the credentials and returns the user with a fresh token.
func (s *UserService) Login(email, password string) (users.User, string, error) {
	user, err := s.repository.GetByEmail(strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		return users.User{}, "", err
	} else if user.ID == 0 {
		return users.User{}, "", errBadCredentials()
	}

	// Comparing the password with the hash
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password+user.Salt)); err != nil {
		return users.User{}, "", errBadCredentials()
	}

	token, err := s.encoder.Encode(user.ID)
	if err != nil {
		return users.User{}, "", err
	}
	return user, token, nil
}

func (s *UserService) Get(id int) (users.User, error) {
	user, err := s.repository.Get(id)
	if err != nil {
		return users.User{}, err
	}
	if user.ID == 0 {
		return users.User{}, errUserNotFound(id)
	}
	return user, nil
}

func (s *UserService) GetByEmail(email string) (users.User, error) {
	user, err := s.repository.GetByEmail(strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		return users.User{}, err
	}
	if user.ID == 0 {
		return users.User{}, errors.New("No user for this email", errors.NotFound())
	}
	return user, nil
}

// ChangeUsername renames the caller's account.
func (s *UserService) ChangeUsername(callerID int, username string) (users.User, error) {
	username = strings.TrimSpace(username)
	if username == "" {
		return users.User{}, errors.New("username is required", errors.BadRequest())
	}

	user, err := s.Get(callerID)
	if err != nil {
		return users.User{}, err
	}

	existing, err := s.repository.GetByUsername(username)
	if err != nil {
		return users.User{}, err
	} else if existing.ID != 0 && existing.ID != callerID {
		return users.User{}, errUsernameTaken()
	}

	user.Username = username
	if err := s.repository.Upsert(&user); err != nil {
		return users.User{}, err
	}
	return user, nil
}

// RequestPasswordReset emails a reset code to the account. An unknown
// email is not an error, so the endpoint does not leak which addresses
// have accounts.
func (s *UserService) RequestPasswordReset(email string) error {
	email = strings.ToLower(strings.TrimSpace(email))
	user, err := s.repository.GetByEmail(email)
	if err != nil {
		return err
	}
	if user.ID == 0 {
		s.logger.Debugf("password reset requested for unknown email %s", email)
		return nil
	}

	rc := users.ResetCode{
		Email:     email,
		Code:      randCode(),
		ExpiresAt: time.Now().Add(resetCodeTTL),
	}
	if err := s.repository.SaveResetCode(rc); err != nil {
		return err
	}

	return s.mailer.SendResetCode(email, rc.Code)
}

// ResetPassword sets a new password if the code matches and has not
// expired. The code is single use.
func (s *UserService) ResetPassword(email, code, password string) error {
	email = strings.ToLower(strings.TrimSpace(email))
	if password == "" {
		return errors.New("password is required", errors.BadRequest())
	}

	rc, err := s.repository.ResetCodeFor(email)
	if err != nil {
		return err
	}
	if rc.Code == "" || rc.Code != code || time.Now().After(rc.ExpiresAt) {
		return errBadResetCode()
	}

	user, err := s.repository.GetByEmail(email)
	if err != nil {
		return err
	}
	if user.ID == 0 {
		return errBadResetCode()
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password+user.Salt), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	user.PasswordHash = string(hash)

	if err := s.repository.Upsert(&user); err != nil {
		return err
	}
	return s.repository.DeleteResetCode(email)
}
