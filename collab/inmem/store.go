package inmem

import (
	"sync"

	"github.com/Allan0411/Notes-API/collab"
)

// InMemInviteRepository keeps the invite ledger in memory, guarded by a
// single mutex so that Save is atomic. It is meant for tests.
type InMemInviteRepository struct {
	mu          sync.Mutex
	invites     []collab.Invite
	memberships *InMemMembershipRepository
	maxID       int
}

// NewInMemInviteRepository creates an in-memory ledger. memberships is
// the repository membership grants are written to when an invite is
// accepted; invites and memberships share its mutex-free semantics
// because Save takes both writes under the ledger's own lock.
func NewInMemInviteRepository(memberships *InMemMembershipRepository) *InMemInviteRepository {
	return &InMemInviteRepository{
		invites:     make([]collab.Invite, 0),
		memberships: memberships,
	}
}

func (r *InMemInviteRepository) Get(id int) (collab.Invite, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, invite := range r.invites {
		if invite.ID == id {
			return invite, nil
		}
	}
	return collab.Invite{}, nil
}

func (r *InMemInviteRepository) GetByNoteAndUser(noteID, userID int) (collab.Invite, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	invite, _ := r.findPair(noteID, userID)
	return invite, nil
}

func (r *InMemInviteRepository) PendingForUser(userID int) ([]collab.Invite, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	invites := make([]collab.Invite, 0)
	for _, invite := range r.invites {
		if invite.InvitedUserID == userID && invite.Status == collab.StatusPending {
			invites = append(invites, invite)
		}
	}
	return invites, nil
}

func (r *InMemInviteRepository) Save(inv *collab.Invite, prev collab.Status, grant *collab.Membership) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	existing, index := r.findPair(inv.NoteID, inv.InvitedUserID)
	if existing.Status != prev {
		return collab.ErrConflict
	}

	if index == -1 {
		r.maxID++
		inv.ID = r.maxID
		r.invites = append(r.invites, *inv)
	} else {
		inv.ID = existing.ID
		r.invites[index] = *inv
	}

	if grant != nil {
		r.memberships.upsert(*grant)
	}

	return nil
}

func (r *InMemInviteRepository) DeleteForNote(noteID int) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	kept := r.invites[:0]
	for _, invite := range r.invites {
		if invite.NoteID != noteID {
			kept = append(kept, invite)
		}
	}
	r.invites = kept
	return nil
}

func (r *InMemInviteRepository) findPair(noteID, userID int) (collab.Invite, int) {
	for i, invite := range r.invites {
		if invite.NoteID == noteID && invite.InvitedUserID == userID {
			return invite, i
		}
	}
	return collab.Invite{}, -1
}

// InMemMembershipRepository keeps the (note, user) -> role mapping in
// memory. It is meant for tests.
type InMemMembershipRepository struct {
	mu          sync.Mutex
	memberships []collab.Membership
}

func NewInMemMembershipRepository() *InMemMembershipRepository {
	return &InMemMembershipRepository{
		memberships: make([]collab.Membership, 0),
	}
}

func (r *InMemMembershipRepository) Get(noteID, userID int) (collab.Membership, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	m, _ := r.findPair(noteID, userID)
	return m, nil
}

func (r *InMemMembershipRepository) ListForNote(noteID int) ([]collab.Membership, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	memberships := make([]collab.Membership, 0)
	for _, m := range r.memberships {
		if m.NoteID == noteID {
			memberships = append(memberships, m)
		}
	}
	return memberships, nil
}

func (r *InMemMembershipRepository) NoteIDsForUser(userID int) ([]int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	ids := make([]int, 0)
	for _, m := range r.memberships {
		if m.UserID == userID {
			ids = append(ids, m.NoteID)
		}
	}
	return ids, nil
}

func (r *InMemMembershipRepository) Insert(m *collab.Membership) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if existing, _ := r.findPair(m.NoteID, m.UserID); existing.Role != "" {
		return collab.ErrConflict
	}

	r.memberships = append(r.memberships, *m)
	return nil
}

func (r *InMemMembershipRepository) Update(m *collab.Membership) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	_, index := r.findPair(m.NoteID, m.UserID)
	if index == -1 {
		return collab.ErrConflict
	}

	r.memberships[index] = *m
	return nil
}

func (r *InMemMembershipRepository) Delete(noteID, userID int) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	_, index := r.findPair(noteID, userID)
	if index == -1 {
		return false, nil
	}

	r.memberships = append(r.memberships[:index], r.memberships[index+1:]...)
	return true, nil
}

func (r *InMemMembershipRepository) DeleteForNote(noteID int) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	kept := r.memberships[:0]
	for _, m := range r.memberships {
		if m.NoteID != noteID {
			kept = append(kept, m)
		}
	}
	r.memberships = kept
	return nil
}

// upsert is used by the invite ledger while holding its own lock: the
// membership write of an acceptance must land with the invite flip.
func (r *InMemMembershipRepository) upsert(m collab.Membership) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, index := r.findPair(m.NoteID, m.UserID); index != -1 {
		r.memberships[index] = m
		return
	}
	r.memberships = append(r.memberships, m)
}

func (r *InMemMembershipRepository) findPair(noteID, userID int) (collab.Membership, int) {
	for i, m := range r.memberships {
		if m.NoteID == noteID && m.UserID == userID {
			return m, i
		}
	}
	return collab.Membership{}, -1
}

// InMemNoteGetter is a fixed set of notes for the collab tests.
type InMemNoteGetter struct {
	mu    sync.Mutex
	notes map[int]collab.Note
}

func NewInMemNoteGetter() *InMemNoteGetter {
	return &InMemNoteGetter{
		notes: make(map[int]collab.Note),
	}
}

func (g *InMemNoteGetter) Add(note collab.Note) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.notes[note.ID] = note
}

func (g *InMemNoteGetter) Note(id int) (collab.Note, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.notes[id], nil
}
