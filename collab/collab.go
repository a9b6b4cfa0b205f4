package collab

import (
	"errors"
	"time"
)

// Role defines what a collaborator can do on a note. Roles are totally
// ordered: owner > editor > viewer. The owner role is never stored in a
// membership row: ownership is derived from the note's creator, so a
// stored owner row would be a second source of truth.
type Role string

const (
	RoleOwner  Role = "owner"
	RoleEditor Role = "editor"
	RoleViewer Role = "viewer"
)

var roleRanks = map[Role]int{
	RoleViewer: 1,
	RoleEditor: 2,
	RoleOwner:  3,
}

// Satisfies reports whether the role grants at least what min grants.
func (r Role) Satisfies(min Role) bool {
	return roleRanks[r] >= roleRanks[min]
}

// Grantable reports whether the role can be stored in a membership row.
func (r Role) Grantable() bool {
	return r == RoleEditor || r == RoleViewer
}

// Status is the lifecycle state of an invite.
//
//	(none) -> Pending -> Accepted (terminal)
//	                  -> Declined -> Pending (resend)
type Status string

const (
	// StatusNone is the status of the zero Invite, i.e. no row in the
	// ledger for the pair.
	StatusNone Status = ""

	StatusPending  Status = "Pending"
	StatusAccepted Status = "Accepted"
	StatusDeclined Status = "Declined"
)

// Invite is a proposal from a note's creator to grant a user a role.
// The ledger holds at most one invite per (note, invited user) pair: a
// declined invite is revived in place by a resend instead of creating a
// second row.
type Invite struct {
	ID            int        `json:"id"`
	NoteID        int        `json:"noteId"`
	InvitedUserID int        `json:"invitedUserId"`
	InviterUserID int        `json:"inviterUserId"`
	Role          Role       `json:"role"`
	Status        Status     `json:"status"`
	SentAt        time.Time  `json:"sentAt"`
	RespondedAt   *time.Time `json:"respondedAt"`
}

// Membership is an explicit (note, user, role) grant, distinct from
// creator status. The pair (NoteID, UserID) is unique.
type Membership struct {
	NoteID int  `json:"noteId"`
	UserID int  `json:"userId"`
	Role   Role `json:"role"`
}

// Note is the view of a note this package needs to decide access. The
// zero Note (ID == 0) means the note does not exist.
type Note struct {
	ID        int
	CreatorID int
	Archived  bool
	Private   bool
}

// NoteGetter gives read access to notes. It is implemented by the notes
// module's store.
type NoteGetter interface {
	Note(id int) (Note, error)
}

// ErrConflict is returned by the repositories when a precondition on
// the stored state does not hold: the unique pair already has a row, or
// the expected previous status has changed under a concurrent writer.
// The services translate it based on the transition they attempted.
var ErrConflict = errors.New("conflicting concurrent update")

// InviteRepository is the durable invite ledger. Implementations must
// make Save atomic: the precondition check, the invite write and the
// optional membership write all apply as one unit or not at all.
type InviteRepository interface {
	// Get returns the invite with the given id, or the zero Invite.
	Get(id int) (Invite, error)

	// GetByNoteAndUser returns the ledger row for the pair, or the zero
	// Invite.
	GetByNoteAndUser(noteID, userID int) (Invite, error)

	// PendingForUser returns all pending invites addressed to the user.
	PendingForUser(userID int) ([]Invite, error)

	// Save persists inv. prev is the status the ledger must currently
	// hold for the (note, invited user) pair: StatusNone for a new row,
	// StatusDeclined for a resend, StatusPending for a response. If the
	// stored status differs, Save returns ErrConflict and writes
	// nothing. When grant is not nil it is upserted in the same atomic
	// unit as the invite.
	Save(inv *Invite, prev Status, grant *Membership) error

	// DeleteForNote removes every invite for the note (cascade on note
	// deletion).
	DeleteForNote(noteID int) error
}

// MembershipRepository is the durable (note, user) -> role mapping.
type MembershipRepository interface {
	// Get returns the membership for the pair, or the zero Membership.
	Get(noteID, userID int) (Membership, error)

	// ListForNote returns all memberships on the note.
	ListForNote(noteID int) ([]Membership, error)

	// NoteIDsForUser returns the ids of the notes shared with the user.
	NoteIDsForUser(userID int) ([]int, error)

	// Insert adds a new membership. It returns ErrConflict if a row
	// already exists for the pair.
	Insert(m *Membership) error

	// Update changes the role of an existing membership. It returns
	// ErrConflict if no row exists for the pair.
	Update(m *Membership) error

	// Delete removes the membership for the pair. It reports whether a
	// row was actually removed.
	Delete(noteID, userID int) (bool, error)

	// DeleteForNote removes every membership on the note (cascade on
	// note deletion).
	DeleteForNote(noteID int) error
}
