package services

import (
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Allan0411/Notes-API/collab"
	collabinmem "github.com/Allan0411/Notes-API/collab/inmem"
	collabservices "github.com/Allan0411/Notes-API/collab/services"
	"github.com/Allan0411/Notes-API/errors"
	"github.com/Allan0411/Notes-API/log"
	"github.com/Allan0411/Notes-API/notes"
	"github.com/Allan0411/Notes-API/notes/inmem"
)

func newTestService() (*NoteService, *collabservices.MembershipService, *inmem.InMemNoteRepository) {
	repo := inmem.NewInMemNoteRepository()
	getter := notes.NewGetter(repo)

	memberships := collabinmem.NewInMemMembershipRepository()
	invites := collabinmem.NewInMemInviteRepository(memberships)
	collaborators := collabservices.NewMembershipService(memberships, invites, getter)

	service := NewNoteService(repo, inmem.NopIndex{}, collaborators, log.New("test"))
	return service, collaborators, repo
}

func TestNoteCreateGet(t *testing.T) {
	service, _, _ := newTestService()

	ownerID := 1
	note, err := service.Create(ownerID, notes.Note{Title: "Groceries", TextContents: "milk"})
	require.NoError(t, err)
	require.NotEqual(t, 0, note.ID)
	assert.Equal(t, ownerID, note.CreatorUserID)
	assert.False(t, note.CreatedAt.IsZero())

	got, err := service.Get(ownerID, note.ID)
	require.NoError(t, err)
	assert.Equal(t, "Groceries", got.Title)

	// A stranger sees a 404, not a 403.
	_, err = service.Get(2, note.ID)
	errors.AssertCode(t, err, http.StatusNotFound)

	// Missing title is rejected.
	_, err = service.Create(ownerID, notes.Note{})
	errors.AssertCode(t, err, http.StatusBadRequest)
}

func TestNoteGetTouchesLastAccessed(t *testing.T) {
	service, _, repo := newTestService()

	note, err := service.Create(1, notes.Note{Title: "t"})
	require.NoError(t, err)

	stored, err := repo.Get(note.ID)
	require.NoError(t, err)
	before := stored.LastAccessed

	time.Sleep(5 * time.Millisecond)
	_, err = service.Get(1, note.ID)
	require.NoError(t, err)

	stored, err = repo.Get(note.ID)
	require.NoError(t, err)
	assert.True(t, stored.LastAccessed.After(before), "reading should touch lastAccessed")
}

func TestNoteUpdate(t *testing.T) {
	service, collaborators, _ := newTestService()

	ownerID, editorID, viewerID := 1, 2, 3
	note, err := service.Create(ownerID, notes.Note{Title: "draft", Private: true})
	require.NoError(t, err)

	_, err = collaborators.Add(ownerID, note.ID, editorID, collab.RoleEditor)
	require.NoError(t, err)
	_, err = collaborators.Add(ownerID, note.ID, viewerID, collab.RoleViewer)
	require.NoError(t, err)

	// An editor can update the content but not reassign ownership.
	updated, err := service.Update(editorID, notes.Note{ID: note.ID, Title: "final", CreatorUserID: editorID})
	require.NoError(t, err)
	assert.Equal(t, "final", updated.Title)
	assert.Equal(t, ownerID, updated.CreatorUserID)
	assert.True(t, updated.Private, "flags are kept from the stored note")

	// A viewer cannot.
	_, err = service.Update(viewerID, notes.Note{ID: note.ID, Title: "nope"})
	errors.AssertCode(t, err, http.StatusNotFound)

	_, err = service.Update(ownerID, notes.Note{ID: 999, Title: "nope"})
	errors.AssertCode(t, err, http.StatusNotFound)
}

func TestNoteList(t *testing.T) {
	service, collaborators, _ := newTestService()

	ownerID, friendID := 1, 2

	mine, err := service.Create(ownerID, notes.Note{Title: "mine"})
	require.NoError(t, err)
	theirs, err := service.Create(friendID, notes.Note{Title: "theirs"})
	require.NoError(t, err)
	archived, err := service.Create(ownerID, notes.Note{Title: "old"})
	require.NoError(t, err)
	_, err = service.SetArchived(ownerID, archived.ID, true)
	require.NoError(t, err)

	_, err = collaborators.Add(friendID, theirs.ID, ownerID, collab.RoleViewer)
	require.NoError(t, err)

	list, err := service.List(ownerID, false)
	require.NoError(t, err)
	require.Len(t, list, 2, "owned + shared, archived skipped")
	ids := []int{list[0].ID, list[1].ID}
	assert.Contains(t, ids, mine.ID)
	assert.Contains(t, ids, theirs.ID)

	list, err = service.List(ownerID, true)
	require.NoError(t, err)
	assert.Len(t, list, 3)
}

func TestNoteDeleteCascades(t *testing.T) {
	service, collaborators, _ := newTestService()

	ownerID, friendID := 1, 2
	note, err := service.Create(ownerID, notes.Note{Title: "t"})
	require.NoError(t, err)
	_, err = collaborators.Add(ownerID, note.ID, friendID, collab.RoleEditor)
	require.NoError(t, err)

	// Only the creator can delete.
	err = service.Delete(friendID, note.ID)
	errors.AssertCode(t, err, http.StatusForbidden)

	err = service.Delete(ownerID, note.ID)
	require.NoError(t, err)

	_, err = service.Get(ownerID, note.ID)
	errors.AssertCode(t, err, http.StatusNotFound)

	shared, err := collaborators.CollaboratedNoteIDs(friendID)
	require.NoError(t, err)
	assert.Empty(t, shared, "membership should be gone with the note")
}

func TestNoteFlags(t *testing.T) {
	service, collaborators, _ := newTestService()

	ownerID, editorID := 1, 2
	note, err := service.Create(ownerID, notes.Note{Title: "t"})
	require.NoError(t, err)
	_, err = collaborators.Add(ownerID, note.ID, editorID, collab.RoleEditor)
	require.NoError(t, err)

	// Flags are creator only, even for editors.
	_, err = service.SetArchived(editorID, note.ID, true)
	errors.AssertCode(t, err, http.StatusForbidden)

	patched, err := service.SetPrivate(ownerID, note.ID, true)
	require.NoError(t, err)
	assert.True(t, patched.Private)

	// Archiving does not revoke collaborator access.
	_, err = service.SetArchived(ownerID, note.ID, true)
	require.NoError(t, err)
	_, err = service.Get(editorID, note.ID)
	assert.NoError(t, err)
}

func TestNotePreview(t *testing.T) {
	service, _, _ := newTestService()

	note, err := service.Create(1, notes.Note{Title: "t", TextContents: "# Hello"})
	require.NoError(t, err)

	html, err := service.Preview(1, note.ID)
	require.NoError(t, err)
	assert.Contains(t, html, "<h1>")

	_, err = service.Preview(2, note.ID)
	errors.AssertCode(t, err, http.StatusNotFound)
}
