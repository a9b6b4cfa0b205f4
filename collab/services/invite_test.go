package services

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Allan0411/Notes-API/collab"
	"github.com/Allan0411/Notes-API/collab/inmem"
	"github.com/Allan0411/Notes-API/errors"
	"github.com/Allan0411/Notes-API/log"
)

type recordingNotifier struct {
	mu      sync.Mutex
	invites []collab.Invite
}

func (n *recordingNotifier) InviteSent(invite collab.Invite) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.invites = append(n.invites, invite)
	return nil
}

func newTestServices() (*InviteService, *MembershipService, *inmem.InMemNoteGetter, *recordingNotifier) {
	memberships := inmem.NewInMemMembershipRepository()
	invites := inmem.NewInMemInviteRepository(memberships)
	notes := inmem.NewInMemNoteGetter()
	notifier := &recordingNotifier{}

	inviteService := NewInviteService(invites, memberships, notes, notifier, log.New("test"))
	membershipService := NewMembershipService(memberships, invites, notes)
	return inviteService, membershipService, notes, notifier
}

func TestInviteLifecycle(t *testing.T) {
	invites, memberships, notes, notifier := newTestServices()

	ownerID := 1
	invitedID := 2
	notes.Add(collab.Note{ID: 10, CreatorID: ownerID})

	// The owner invites: the invite is pending, the invited user sees
	// it, and an email went out.
	invite, err := invites.Send(ownerID, 10, invitedID, collab.RoleEditor)
	require.NoError(t, err, "sending must not fail")
	require.NotEqual(t, 0, invite.ID, "sending should set the id")
	assert.Equal(t, collab.StatusPending, invite.Status)
	assert.Equal(t, ownerID, invite.InviterUserID)
	assert.Nil(t, invite.RespondedAt)
	assert.Len(t, notifier.invites, 1, "the invited user should have been notified")

	pending, err := invites.PendingForUser(invitedID)
	require.NoError(t, err)
	require.Len(t, pending, 1)
	assert.Equal(t, invite.ID, pending[0].ID)

	// Sending again while pending conflicts, and the ledger still holds
	// a single row.
	_, err = invites.Send(ownerID, 10, invitedID, collab.RoleEditor)
	if assert.Error(t, err, "second send while pending should fail") {
		errors.AssertCode(t, err, 409)
	}
	pending, _ = invites.PendingForUser(invitedID)
	assert.Len(t, pending, 1, "the ledger should still contain exactly one row for the pair")

	// The invited user declines.
	declined, err := invites.Respond(invitedID, invite.ID, false)
	require.NoError(t, err, "declining must not fail")
	assert.Equal(t, collab.StatusDeclined, declined.Status)
	assert.NotNil(t, declined.RespondedAt)

	ok, err := memberships.Engine().CanAccess(invitedID, 10, collab.LevelRead)
	require.NoError(t, err)
	assert.False(t, ok, "declining should not grant access")

	// The owner resends: same invite id, back to pending, response
	// timestamp cleared.
	resent, err := invites.Send(ownerID, 10, invitedID, "")
	require.NoError(t, err, "resending after a decline must not fail")
	assert.Equal(t, invite.ID, resent.ID, "resending should keep the invite id")
	assert.Equal(t, collab.StatusPending, resent.Status)
	assert.Equal(t, collab.RoleEditor, resent.Role, "resending without a role should keep the invite's role")
	assert.Nil(t, resent.RespondedAt, "resending should clear the response timestamp")

	// The invited user accepts: invite terminal, membership granted,
	// access open.
	accepted, err := invites.Respond(invitedID, invite.ID, true)
	require.NoError(t, err, "accepting must not fail")
	assert.Equal(t, collab.StatusAccepted, accepted.Status)

	collaborators, err := memberships.List(ownerID, 10)
	require.NoError(t, err)
	require.Len(t, collaborators, 1, "accepting should create exactly one membership")
	assert.Equal(t, collab.Membership{NoteID: 10, UserID: invitedID, Role: collab.RoleEditor}, collaborators[0])

	ok, err = memberships.Engine().CanAccess(invitedID, 10, collab.LevelEdit)
	require.NoError(t, err)
	assert.True(t, ok, "the accepted editor should be able to mutate the note")

	// Accepting twice is invalid, and the membership count stays at 1.
	_, err = invites.Respond(invitedID, invite.ID, true)
	if assert.Error(t, err, "responding twice should fail") {
		errors.AssertCode(t, err, 400)
	}
	collaborators, _ = memberships.List(ownerID, 10)
	assert.Len(t, collaborators, 1, "membership count should stay at one")

	// Inviting an accepted collaborator again is rejected.
	_, err = invites.Send(ownerID, 10, invitedID, collab.RoleEditor)
	if assert.Error(t, err, "inviting an accepted collaborator should fail") {
		errors.AssertCode(t, err, 409)
	}
}

func TestSendInviteChecks(t *testing.T) {
	invites, _, notes, _ := newTestServices()

	ownerID := 1
	otherID := 2
	notes.Add(collab.Note{ID: 10, CreatorID: ownerID})

	_, err := invites.Send(ownerID, 99, otherID, collab.RoleEditor)
	if assert.Error(t, err, "inviting on a missing note should fail") {
		errors.AssertCode(t, err, 404)
	}

	_, err = invites.Send(otherID, 10, 3, collab.RoleEditor)
	if assert.Error(t, err, "inviting from a non owner should fail") {
		errors.AssertCode(t, err, 403)
	}

	_, err = invites.Send(ownerID, 10, ownerID, collab.RoleEditor)
	if assert.Error(t, err, "self invite should fail") {
		errors.AssertCode(t, err, 409)
	}

	_, err = invites.Send(ownerID, 10, otherID, collab.RoleOwner)
	if assert.Error(t, err, "the owner role cannot be granted") {
		errors.AssertCode(t, err, 400)
	}

	_, err = invites.Send(ownerID, 10, otherID, collab.Role("boss"))
	if assert.Error(t, err, "unknown roles should fail") {
		errors.AssertCode(t, err, 400)
	}
}

func TestResendKeepsRole(t *testing.T) {
	invites, memberships, notes, _ := newTestServices()

	ownerID := 1
	invitedID := 2
	notes.Add(collab.Note{ID: 10, CreatorID: ownerID})

	invite, err := invites.Send(ownerID, 10, invitedID, collab.RoleViewer)
	require.NoError(t, err)
	_, err = invites.Respond(invitedID, invite.ID, false)
	require.NoError(t, err)

	// Resending without naming a role keeps the one the owner granted:
	// a declined viewer invite must not come back as an editor one.
	resent, err := invites.Send(ownerID, 10, invitedID, "")
	require.NoError(t, err)
	assert.Equal(t, collab.RoleViewer, resent.Role)

	accepted, err := invites.Respond(invitedID, invite.ID, true)
	require.NoError(t, err)
	assert.Equal(t, collab.RoleViewer, accepted.Role)

	ok, err := memberships.Engine().CanAccess(invitedID, 10, collab.LevelEdit)
	require.NoError(t, err)
	assert.False(t, ok, "the accepted viewer should not gain edit access")
}

func TestResendReplacesRole(t *testing.T) {
	invites, _, notes, _ := newTestServices()

	ownerID := 1
	invitedID := 2
	notes.Add(collab.Note{ID: 10, CreatorID: ownerID})

	invite, err := invites.Send(ownerID, 10, invitedID, collab.RoleViewer)
	require.NoError(t, err)
	_, err = invites.Respond(invitedID, invite.ID, false)
	require.NoError(t, err)

	// Naming a role on resend replaces the stored one.
	resent, err := invites.Send(ownerID, 10, invitedID, collab.RoleEditor)
	require.NoError(t, err)
	assert.Equal(t, invite.ID, resent.ID)
	assert.Equal(t, collab.RoleEditor, resent.Role)
}

func TestSendInviteToCollaborator(t *testing.T) {
	invites, memberships, notes, _ := newTestServices()

	ownerID := 1
	friendID := 2
	notes.Add(collab.Note{ID: 10, CreatorID: ownerID})

	_, err := memberships.Add(ownerID, 10, friendID, collab.RoleViewer)
	require.NoError(t, err)

	// A user added directly never had an invite, but inviting them
	// again is still pointless.
	_, err = invites.Send(ownerID, 10, friendID, collab.RoleEditor)
	if assert.Error(t, err, "inviting an existing collaborator should fail") {
		errors.AssertCode(t, err, 409)
	}
}

func TestRespondChecks(t *testing.T) {
	invites, _, notes, _ := newTestServices()

	ownerID := 1
	invitedID := 2
	nosyID := 3
	notes.Add(collab.Note{ID: 10, CreatorID: ownerID})

	invite, err := invites.Send(ownerID, 10, invitedID, collab.RoleViewer)
	require.NoError(t, err)

	_, err = invites.Respond(invitedID, invite.ID+100, true)
	if assert.Error(t, err, "responding to a missing invite should fail") {
		errors.AssertCode(t, err, 404)
	}

	// Anyone but the invited user gets a 404, the inviter included:
	// the invite simply does not exist for them.
	_, err = invites.Respond(nosyID, invite.ID, true)
	if assert.Error(t, err, "responding to someone else's invite should fail") {
		errors.AssertCode(t, err, 404)
	}
	_, err = invites.Respond(ownerID, invite.ID, true)
	if assert.Error(t, err, "the inviter cannot respond either") {
		errors.AssertCode(t, err, 404)
	}

	accepted, err := invites.Respond(invitedID, invite.ID, true)
	require.NoError(t, err)
	assert.Equal(t, collab.RoleViewer, accepted.Role, "the granted role should follow the invite")
}

func TestConcurrentSend(t *testing.T) {
	invites, _, notes, _ := newTestServices()

	ownerID := 1
	invitedID := 2
	notes.Add(collab.Note{ID: 10, CreatorID: ownerID})

	var wg sync.WaitGroup
	results := make(chan error, 2)
	for i := 0; i < 2; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := invites.Send(ownerID, 10, invitedID, collab.RoleEditor)
			results <- err
		}()
	}
	wg.Wait()
	close(results)

	succeeded, conflicted := 0, 0
	for err := range results {
		if err == nil {
			succeeded++
			continue
		}
		errors.AssertCode(t, err, 409)
		conflicted++
	}
	assert.Equal(t, 1, succeeded, "exactly one concurrent send should succeed")
	assert.Equal(t, 1, conflicted, "the other should observe the pending conflict")

	pending, err := invites.PendingForUser(invitedID)
	require.NoError(t, err)
	assert.Len(t, pending, 1, "the race should leave a single pending row")
}

func TestPendingForUserOrder(t *testing.T) {
	invites, _, notes, _ := newTestServices()

	ownerID := 1
	invitedID := 5
	notes.Add(collab.Note{ID: 10, CreatorID: ownerID})
	notes.Add(collab.Note{ID: 11, CreatorID: ownerID})
	notes.Add(collab.Note{ID: 12, CreatorID: ownerID})

	for _, noteID := range []int{10, 11, 12} {
		_, err := invites.Send(ownerID, noteID, invitedID, collab.RoleEditor)
		require.NoError(t, err)
	}

	pending, err := invites.PendingForUser(invitedID)
	require.NoError(t, err)
	require.Len(t, pending, 3)
	for i := 0; i < len(pending)-1; i++ {
		assert.False(t, pending[i].SentAt.Before(pending[i+1].SentAt), "pending invites should be sorted most recent first")
	}
}
