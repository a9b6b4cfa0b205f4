package testutil

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Allan0411/Notes-API/collab"
)

// TestMembershipRepository is the conformance suite every membership
// store implementation must pass.
func TestMembershipRepository(t *testing.T, repo collab.MembershipRepository) {
	memberships := []collab.Membership{
		{NoteID: 1, UserID: 2, Role: collab.RoleEditor},
		{NoteID: 1, UserID: 3, Role: collab.RoleViewer},
		{NoteID: 2, UserID: 2, Role: collab.RoleEditor},
	}

	for i := range memberships {
		err := repo.Insert(&memberships[i])
		require.NoError(t, err, "insert %d must not fail", i)
	}

	// Pair uniqueness.
	dup := collab.Membership{NoteID: 1, UserID: 2, Role: collab.RoleViewer}
	err := repo.Insert(&dup)
	assert.Equal(t, collab.ErrConflict, err, "duplicate insert should conflict")

	m, err := repo.Get(1, 2)
	require.NoError(t, err)
	assert.Equal(t, collab.RoleEditor, m.Role, "the original row should be untouched")

	// Absent pair yields the zero Membership.
	m, err = repo.Get(1, 99)
	require.NoError(t, err)
	assert.Equal(t, collab.Role(""), m.Role, "unknown pair should yield the zero membership")

	// List by note.
	forNote, err := repo.ListForNote(1)
	require.NoError(t, err)
	if assert.Len(t, forNote, 2) {
		for _, expected := range memberships[:2] {
			assert.Contains(t, forNote, expected)
		}
	}

	// Note ids by user.
	ids, err := repo.NoteIDsForUser(2)
	require.NoError(t, err)
	if assert.Len(t, ids, 2) {
		assert.Contains(t, ids, 1)
		assert.Contains(t, ids, 2)
	}

	ids, err = repo.NoteIDsForUser(99)
	require.NoError(t, err)
	assert.Len(t, ids, 0, "unknown user should have no shared notes")

	// Update.
	updated := collab.Membership{NoteID: 1, UserID: 3, Role: collab.RoleEditor}
	err = repo.Update(&updated)
	require.NoError(t, err)
	m, _ = repo.Get(1, 3)
	assert.Equal(t, collab.RoleEditor, m.Role, "update should change the role in place")

	missing := collab.Membership{NoteID: 5, UserID: 5, Role: collab.RoleEditor}
	err = repo.Update(&missing)
	assert.Equal(t, collab.ErrConflict, err, "updating an absent pair should conflict")

	// Delete.
	deleted, err := repo.Delete(1, 3)
	require.NoError(t, err)
	assert.True(t, deleted, "delete should report the removed row")

	deleted, err = repo.Delete(1, 3)
	require.NoError(t, err)
	assert.False(t, deleted, "deleting twice should report nothing removed")

	// Cascade.
	err = repo.DeleteForNote(1)
	require.NoError(t, err)

	forNote, err = repo.ListForNote(1)
	require.NoError(t, err)
	assert.Len(t, forNote, 0, "memberships for the deleted note should be gone")

	forNote, err = repo.ListForNote(2)
	require.NoError(t, err)
	assert.Len(t, forNote, 1, "memberships for other notes should survive the cascade")
}
