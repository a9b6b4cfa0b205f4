package bolt

import (
	"io/ioutil"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Allan0411/Notes-API/notes"
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

func TestNoteRepository(t *testing.T) {
	driver, f := createDriver(t)
	defer f()

	repo := NewNoteRepository(driver)

	note := notes.Note{Title: "first", TextContents: "text", CreatorUserID: 1}
	require.NoError(t, repo.Upsert(&note))
	require.NotEqual(t, 0, note.ID, "upsert should assign an id")

	other := notes.Note{Title: "second", CreatorUserID: 2}
	require.NoError(t, repo.Upsert(&other))

	got, err := repo.Get(note.ID)
	require.NoError(t, err)
	assert.Equal(t, "first", got.Title)

	got, err = repo.Get(999)
	require.NoError(t, err)
	assert.Equal(t, 0, got.ID, "absent note should come back zero")

	note.Title = "renamed"
	require.NoError(t, repo.Upsert(&note))
	got, err = repo.Get(note.ID)
	require.NoError(t, err)
	assert.Equal(t, "renamed", got.Title)

	list, err := repo.List([]int{note.ID, 999, other.ID})
	require.NoError(t, err)
	assert.Len(t, list, 2, "absent ids are skipped")

	mine, err := repo.ListForCreator(1)
	require.NoError(t, err)
	require.Len(t, mine, 1)
	assert.Equal(t, note.ID, mine[0].ID)

	deleted, err := repo.Delete(note.ID)
	require.NoError(t, err)
	assert.True(t, deleted)

	deleted, err = repo.Delete(note.ID)
	require.NoError(t, err)
	assert.False(t, deleted)
}
