package services

import (
	"net/http"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Allan0411/Notes-API/errors"
	"github.com/Allan0411/Notes-API/jwt"
	"github.com/Allan0411/Notes-API/log"
	"github.com/Allan0411/Notes-API/users"
	"github.com/Allan0411/Notes-API/users/inmem"
)

type recordingMailer struct {
	mu    sync.Mutex
	codes map[string]string
}

func (m *recordingMailer) SendResetCode(email, code string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.codes == nil {
		m.codes = make(map[string]string)
	}
	m.codes[email] = code
	return nil
}

func newTestService() (*UserService, *inmem.InMemUserRepository, *recordingMailer) {
	repo := inmem.NewInMemUserRepository()
	mailer := &recordingMailer{}
	encoder := jwt.NewEncodeDecoder([]byte("test key"))

	service := NewUserService(repo, encoder, mailer, log.New("test"))
	return service, repo, mailer
}

func TestSignUpLogin(t *testing.T) {
	service, _, _ := newTestService()

	user, token, err := service.SignUp("ada", "Ada@Example.com", "hunter2")
	require.NoError(t, err)
	require.NotEqual(t, 0, user.ID)
	assert.NotEmpty(t, token)
	assert.Equal(t, "ada@example.com", user.Email, "emails are stored lowercased")
	assert.NotEmpty(t, user.PasswordHash, "hash must be set")

	// Duplicate email and username are both rejected.
	_, _, err = service.SignUp("other", "ada@example.com", "pw")
	errors.AssertCode(t, err, http.StatusConflict)
	_, _, err = service.SignUp("ADA", "new@example.com", "pw")
	errors.AssertCode(t, err, http.StatusConflict)

	// Login works with the right password only.
	logged, token, err := service.Login("ada@example.com", "hunter2")
	require.NoError(t, err)
	assert.Equal(t, user.ID, logged.ID)
	assert.NotEmpty(t, token)

	_, _, err = service.Login("ada@example.com", "wrong")
	errors.AssertCode(t, err, http.StatusBadRequest)
	_, _, err = service.Login("nobody@example.com", "hunter2")
	errors.AssertCode(t, err, http.StatusBadRequest)
}

func TestSignUpValidation(t *testing.T) {
	service, _, _ := newTestService()

	_, _, err := service.SignUp("", "a@example.com", "pw")
	errors.AssertCode(t, err, http.StatusBadRequest)
	_, _, err = service.SignUp("a", "", "pw")
	errors.AssertCode(t, err, http.StatusBadRequest)
	_, _, err = service.SignUp("a", "a@example.com", "")
	errors.AssertCode(t, err, http.StatusBadRequest)
}

func TestChangeUsername(t *testing.T) {
	service, _, _ := newTestService()

	ada, _, err := service.SignUp("ada", "ada@example.com", "pw")
	require.NoError(t, err)
	_, _, err = service.SignUp("grace", "grace@example.com", "pw")
	require.NoError(t, err)

	renamed, err := service.ChangeUsername(ada.ID, "lovelace")
	require.NoError(t, err)
	assert.Equal(t, "lovelace", renamed.Username)

	// Taken by someone else: conflict. Keeping your own name: fine.
	_, err = service.ChangeUsername(ada.ID, "grace")
	errors.AssertCode(t, err, http.StatusConflict)
	_, err = service.ChangeUsername(ada.ID, "lovelace")
	assert.NoError(t, err)

	_, err = service.ChangeUsername(999, "ghost")
	errors.AssertCode(t, err, http.StatusNotFound)
}

func TestPasswordReset(t *testing.T) {
	service, _, mailer := newTestService()

	_, _, err := service.SignUp("ada", "ada@example.com", "old password")
	require.NoError(t, err)

	require.NoError(t, service.RequestPasswordReset("ada@example.com"))
	code := mailer.codes["ada@example.com"]
	require.Len(t, code, 6, "the mailed code is 6 digits")

	// Wrong code is rejected, right code resets.
	err = service.ResetPassword("ada@example.com", "000000", "new password")
	if code != "000000" {
		errors.AssertCode(t, err, http.StatusBadRequest)
	}
	require.NoError(t, service.ResetPassword("ada@example.com", code, "new password"))

	_, _, err = service.Login("ada@example.com", "old password")
	errors.AssertCode(t, err, http.StatusBadRequest)
	_, _, err = service.Login("ada@example.com", "new password")
	assert.NoError(t, err)

	// The code is single use.
	err = service.ResetPassword("ada@example.com", code, "another")
	errors.AssertCode(t, err, http.StatusBadRequest)
}

func TestPasswordResetExpiry(t *testing.T) {
	service, repo, _ := newTestService()

	_, _, err := service.SignUp("ada", "ada@example.com", "pw")
	require.NoError(t, err)

	require.NoError(t, repo.SaveResetCode(users.ResetCode{
		Email:     "ada@example.com",
		Code:      "123456",
		ExpiresAt: time.Now().Add(-time.Minute),
	}))

	err = service.ResetPassword("ada@example.com", "123456", "new")
	errors.AssertCode(t, err, http.StatusBadRequest)
}

func TestPasswordResetUnknownEmail(t *testing.T) {
	service, _, mailer := newTestService()

	// No account: no error, no email.
	require.NoError(t, service.RequestPasswordReset("nobody@example.com"))
	assert.Empty(t, mailer.codes)
}
