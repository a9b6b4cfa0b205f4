package bolt

import (
	"io/ioutil"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Allan0411/Notes-API/users"
)

func createDriver(t *testing.T) (*Driver, func()) {
	tmpFile, err := ioutil.TempFile("", "")
	if err != nil {
		t.Fatal("could not create tmp file:", err)
	}

	filename := tmpFile.Name()
	driver := &Driver{}
	err = driver.Open(filename)
	if err != nil {
		os.Remove(filename)
		t.Fatal("could not open db:", err)
	}

	return driver, func() {
		driver.Close()
		os.Remove(filename)
	}
}

func TestUserRepository(t *testing.T) {
	driver, f := createDriver(t)
	defer f()

	repo := NewUserRepository(driver)

	user := users.User{Username: "ada", Email: "ada@example.com"}
	require.NoError(t, repo.Upsert(&user))
	require.NotEqual(t, 0, user.ID)

	got, err := repo.Get(user.ID)
	require.NoError(t, err)
	assert.Equal(t, "ada", got.Username)

	got, err = repo.GetByEmail("ADA@example.com")
	require.NoError(t, err)
	assert.Equal(t, user.ID, got.ID, "email lookup should be case-insensitive")

	got, err = repo.GetByUsername("Ada")
	require.NoError(t, err)
	assert.Equal(t, user.ID, got.ID)

	got, err = repo.GetByEmail("nobody@example.com")
	require.NoError(t, err)
	assert.Equal(t, 0, got.ID)

	// Renaming moves the username index.
	user.Username = "lovelace"
	require.NoError(t, repo.Upsert(&user))

	got, err = repo.GetByUsername("ada")
	require.NoError(t, err)
	assert.Equal(t, 0, got.ID, "old username should not resolve anymore")

	got, err = repo.GetByUsername("lovelace")
	require.NoError(t, err)
	assert.Equal(t, user.ID, got.ID)
}

func TestUserRepositoryResetCodes(t *testing.T) {
	driver, f := createDriver(t)
	defer f()

	repo := NewUserRepository(driver)

	rc := users.ResetCode{
		Email:     "ada@example.com",
		Code:      "123456",
		ExpiresAt: time.Now().Add(15 * time.Minute),
	}
	require.NoError(t, repo.SaveResetCode(rc))

	got, err := repo.ResetCodeFor("ada@example.com")
	require.NoError(t, err)
	assert.Equal(t, "123456", got.Code)

	// A new code replaces the previous one.
	rc.Code = "654321"
	require.NoError(t, repo.SaveResetCode(rc))
	got, err = repo.ResetCodeFor("ada@example.com")
	require.NoError(t, err)
	assert.Equal(t, "654321", got.Code)

	require.NoError(t, repo.DeleteResetCode("ada@example.com"))
	got, err = repo.ResetCodeFor("ada@example.com")
	require.NoError(t, err)
	assert.Equal(t, "", got.Code)
}
