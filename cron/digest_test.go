package cron

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Allan0411/Notes-API/collab"
	collabinmem "github.com/Allan0411/Notes-API/collab/inmem"
	"github.com/Allan0411/Notes-API/log"
	"github.com/Allan0411/Notes-API/users"
	usersinmem "github.com/Allan0411/Notes-API/users/inmem"
)

type recordingNotifier struct {
	digests map[int]int
}

func (n *recordingNotifier) PendingDigest(user users.User, invites []collab.Invite) error {
	if n.digests == nil {
		n.digests = make(map[int]int)
	}
	n.digests[user.ID] = len(invites)
	return nil
}

func TestDigestRun(t *testing.T) {
	userRepo := usersinmem.NewInMemUserRepository()
	memberships := collabinmem.NewInMemMembershipRepository()
	invites := collabinmem.NewInMemInviteRepository(memberships)

	ada := users.User{Username: "ada", Email: "ada@example.com"}
	require.NoError(t, userRepo.Upsert(&ada))
	grace := users.User{Username: "grace", Email: "grace@example.com"}
	require.NoError(t, userRepo.Upsert(&grace))

	// Two pending invites for ada, a declined one for grace.
	for i, inv := range []collab.Invite{
		{NoteID: 1, InvitedUserID: ada.ID, InviterUserID: 99, Status: collab.StatusPending, SentAt: time.Now()},
		{NoteID: 2, InvitedUserID: ada.ID, InviterUserID: 99, Status: collab.StatusPending, SentAt: time.Now()},
		{NoteID: 3, InvitedUserID: grace.ID, InviterUserID: 99, Status: collab.StatusDeclined, SentAt: time.Now()},
	} {
		inv := inv
		require.NoError(t, invites.Save(&inv, collab.StatusNone, nil), "invite %d", i)
	}

	notifier := &recordingNotifier{}
	service := NewService(userRepo, invites, notifier, log.New("test"))

	require.NoError(t, service.Run())

	assert.Equal(t, 2, notifier.digests[ada.ID], "ada has two pending invites")
	_, notified := notifier.digests[grace.ID]
	assert.False(t, notified, "no digest without pending invites")
}
