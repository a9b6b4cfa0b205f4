package services

import (
	"github.com/Allan0411/Notes-API/collab"
)

// MembershipService manages direct collaborator grants. Adding through
// here and adding through an accepted invite converge on the same
// repository insertion primitive, so both paths share one uniqueness
// validation.
type MembershipService struct {
	memberships collab.MembershipRepository
	invites     collab.InviteRepository
	notes       collab.NoteGetter

	engine *collab.Engine
}

func NewMembershipService(
	memberships collab.MembershipRepository,
	invites collab.InviteRepository,
	notes collab.NoteGetter,
) *MembershipService {
	return &MembershipService{
		memberships: memberships,
		invites:     invites,
		notes:       notes,

		engine: collab.NewEngine(notes, memberships),
	}
}

// Engine exposes the access control engine built on the same stores,
// for the other modules to gate their operations with.
func (s *MembershipService) Engine() *collab.Engine {
	return s.engine
}

// adminNote loads the note and checks the actor is its creator.
func (s *MembershipService) adminNote(actorID, noteID int) (collab.Note, error) {
	note, err := s.notes.Note(noteID)
	if err != nil {
		return collab.Note{}, err
	}
	if note.ID == 0 {
		return collab.Note{}, errNoteNotFound(noteID)
	}
	if note.CreatorID != actorID {
		return collab.Note{}, errNotOwner(noteID)
	}
	return note, nil
}

// Add grants targetUserID a role on the note. Creator only.
func (s *MembershipService) Add(actorID, noteID, targetUserID int, role collab.Role) (collab.Membership, error) {
	if _, err := s.adminNote(actorID, noteID); err != nil {
		return collab.Membership{}, err
	}

	if targetUserID == actorID {
		return collab.Membership{}, errSelfTarget()
	}

	if role == "" {
		role = collab.RoleEditor
	}
	if !role.Grantable() {
		return collab.Membership{}, errInvalidRole(string(role))
	}

	m := collab.Membership{
		NoteID: noteID,
		UserID: targetUserID,
		Role:   role,
	}
	err := s.memberships.Insert(&m)
	if err == collab.ErrConflict {
		return collab.Membership{}, errAlreadyCollaborator()
	}
	if err != nil {
		return collab.Membership{}, err
	}

	return m, nil
}

// Remove revokes targetUserID's membership on the note. Creator only.
// This is also the way back from an accepted invite: acceptance is
// terminal on the invite itself.
func (s *MembershipService) Remove(actorID, noteID, targetUserID int) error {
	if _, err := s.adminNote(actorID, noteID); err != nil {
		return err
	}

	deleted, err := s.memberships.Delete(noteID, targetUserID)
	if err != nil {
		return err
	}
	if !deleted {
		return errCollaboratorNotFound(targetUserID)
	}

	return nil
}

// UpdateRole changes targetUserID's role on the note. Creator only.
func (s *MembershipService) UpdateRole(actorID, noteID, targetUserID int, role collab.Role) (collab.Membership, error) {
	if _, err := s.adminNote(actorID, noteID); err != nil {
		return collab.Membership{}, err
	}

	if !role.Grantable() {
		return collab.Membership{}, errInvalidRole(string(role))
	}

	m := collab.Membership{
		NoteID: noteID,
		UserID: targetUserID,
		Role:   role,
	}
	err := s.memberships.Update(&m)
	if err == collab.ErrConflict {
		return collab.Membership{}, errCollaboratorNotFound(targetUserID)
	}
	if err != nil {
		return collab.Membership{}, err
	}

	return m, nil
}

// List returns the memberships on the note. The actor needs read
// access; without it the note simply does not exist for them.
func (s *MembershipService) List(actorID, noteID int) ([]collab.Membership, error) {
	ok, err := s.engine.CanAccess(actorID, noteID, collab.LevelRead)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, errNoteNotFound(noteID)
	}

	return s.memberships.ListForNote(noteID)
}

// CollaboratedNoteIDs returns the ids of the notes shared with the
// actor. Owned notes never appear: membership rows are not created for
// creators.
func (s *MembershipService) CollaboratedNoteIDs(actorID int) ([]int, error) {
	return s.memberships.NoteIDsForUser(actorID)
}

// DeleteForNote cascades a note deletion into the membership store and
// the invite ledger. It is called by the notes module once the deletion
// itself has passed the administer check.
func (s *MembershipService) DeleteForNote(noteID int) error {
	if err := s.memberships.DeleteForNote(noteID); err != nil {
		return err
	}
	return s.invites.DeleteForNote(noteID)
}
