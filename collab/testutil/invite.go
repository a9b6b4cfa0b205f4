package testutil

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Allan0411/Notes-API/collab"
)

// TestInviteRepository is the conformance suite every invite ledger
// implementation must pass. memberships is the repository acceptance
// grants are written to.
func TestInviteRepository(t *testing.T, repo collab.InviteRepository, memberships collab.MembershipRepository) {
	invite := collab.Invite{
		NoteID:        1,
		InvitedUserID: 2,
		InviterUserID: 1,
		Role:          collab.RoleEditor,
		Status:        collab.StatusPending,
		SentAt:        time.Now(),
	}

	// Create a new row.
	err := repo.Save(&invite, collab.StatusNone, nil)
	require.NoError(t, err, "first save must not fail")
	require.NotEqual(t, 0, invite.ID, "save should set the id")

	// Get by id and by pair.
	retrieved, err := repo.Get(invite.ID)
	require.NoError(t, err)
	assertInvite(t, invite, retrieved, "get by id")

	retrieved, err = repo.GetByNoteAndUser(1, 2)
	require.NoError(t, err)
	assertInvite(t, invite, retrieved, "get by pair")

	// Absent rows come back as the zero Invite.
	retrieved, err = repo.Get(invite.ID + 100)
	require.NoError(t, err)
	assert.Equal(t, 0, retrieved.ID, "unknown id should yield the zero invite")

	retrieved, err = repo.GetByNoteAndUser(1, 99)
	require.NoError(t, err)
	assert.Equal(t, 0, retrieved.ID, "unknown pair should yield the zero invite")

	// A second create for the same pair must conflict, and leave a
	// single row behind.
	dup := collab.Invite{NoteID: 1, InvitedUserID: 2, InviterUserID: 1, Status: collab.StatusPending, SentAt: time.Now()}
	err = repo.Save(&dup, collab.StatusNone, nil)
	assert.Equal(t, collab.ErrConflict, err, "duplicate create should conflict")

	pending, err := repo.PendingForUser(2)
	require.NoError(t, err)
	require.Len(t, pending, 1, "the ledger should still hold exactly one row for the pair")

	// Wrong expected status must conflict without writing.
	stale := invite
	stale.Status = collab.StatusAccepted
	err = repo.Save(&stale, collab.StatusDeclined, nil)
	assert.Equal(t, collab.ErrConflict, err, "stale status should conflict")

	retrieved, _ = repo.Get(invite.ID)
	assert.Equal(t, collab.StatusPending, retrieved.Status, "a conflicting save should write nothing")

	// Respond with a grant: the invite flip and the membership must
	// both be visible afterwards.
	now := time.Now()
	accepted := invite
	accepted.Status = collab.StatusAccepted
	accepted.RespondedAt = &now
	grant := collab.Membership{NoteID: 1, UserID: 2, Role: collab.RoleEditor}
	err = repo.Save(&accepted, collab.StatusPending, &grant)
	require.NoError(t, err, "accept save must not fail")
	assert.Equal(t, invite.ID, accepted.ID, "responding should keep the id")

	m, err := memberships.Get(1, 2)
	require.NoError(t, err)
	assert.Equal(t, collab.RoleEditor, m.Role, "the grant should have landed with the flip")

	pending, err = repo.PendingForUser(2)
	require.NoError(t, err)
	assert.Len(t, pending, 0, "no pending invite should remain after the response")

	// Concurrent creates for a fresh pair: exactly one writer wins.
	var wg sync.WaitGroup
	conflicts := make(chan error, 2)
	for i := 0; i < 2; i++ {
		wg.Add(1)
		go func(inviter int) {
			defer wg.Done()
			inv := collab.Invite{
				NoteID:        7,
				InvitedUserID: 8,
				InviterUserID: inviter,
				Role:          collab.RoleEditor,
				Status:        collab.StatusPending,
				SentAt:        time.Now(),
			}
			conflicts <- repo.Save(&inv, collab.StatusNone, nil)
		}(i + 1)
	}
	wg.Wait()
	close(conflicts)

	won, lost := 0, 0
	for err := range conflicts {
		if err == nil {
			won++
		} else if err == collab.ErrConflict {
			lost++
		} else {
			t.Fatalf("unexpected save error: %v", err)
		}
	}
	assert.Equal(t, 1, won, "exactly one concurrent create should win")
	assert.Equal(t, 1, lost, "the other concurrent create should conflict")

	pending, err = repo.PendingForUser(8)
	require.NoError(t, err)
	assert.Len(t, pending, 1, "the race should leave a single pending row")

	// Cascade.
	err = repo.DeleteForNote(1)
	require.NoError(t, err)
	retrieved, err = repo.GetByNoteAndUser(1, 2)
	require.NoError(t, err)
	assert.Equal(t, 0, retrieved.ID, "invites for the deleted note should be gone")

	retrieved, err = repo.GetByNoteAndUser(7, 8)
	require.NoError(t, err)
	assert.NotEqual(t, 0, retrieved.ID, "invites for other notes should survive the cascade")
}

func assertInvite(t *testing.T, expected, actual collab.Invite, name string) {
	assert.Equal(t, expected.ID, actual.ID, "%s - ids should be equal", name)
	assert.Equal(t, expected.NoteID, actual.NoteID, "%s - note ids should be equal", name)
	assert.Equal(t, expected.InvitedUserID, actual.InvitedUserID, "%s - invited user ids should be equal", name)
	assert.Equal(t, expected.InviterUserID, actual.InviterUserID, "%s - inviter user ids should be equal", name)
	assert.Equal(t, expected.Role, actual.Role, "%s - roles should be equal", name)
	assert.Equal(t, expected.Status, actual.Status, "%s - statuses should be equal", name)
	assert.True(t, expected.SentAt.Equal(actual.SentAt), "%s - sent timestamps should be equal", name)
	if expected.RespondedAt == nil {
		assert.Nil(t, actual.RespondedAt, "%s - responded timestamp should be null", name)
	} else if assert.NotNil(t, actual.RespondedAt, "%s - responded timestamp should be set", name) {
		assert.True(t, expected.RespondedAt.Equal(*actual.RespondedAt), "%s - responded timestamps should be equal", name)
	}
}
