package inmem

import (
	"testing"

	"github.com/Allan0411/Notes-API/collab/testutil"
)

func TestInMemInviteRepository(t *testing.T) {
	memberships := NewInMemMembershipRepository()
	repo := NewInMemInviteRepository(memberships)
	testutil.TestInviteRepository(t, repo, memberships)
}

func TestInMemMembershipRepository(t *testing.T) {
	testutil.TestMembershipRepository(t, NewInMemMembershipRepository())
}
