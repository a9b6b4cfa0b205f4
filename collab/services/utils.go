package services

import (
	"fmt"

	"github.com/Allan0411/Notes-API/errors"
)

// errNoteNotFound returns a 404 for when a note is absent or the actor
// has no visibility into it. The two cases are intentionally
// indistinguishable to avoid leaking existence.
func errNoteNotFound(id int) error {
	return errors.New(fmt.Sprintf("No note for id %d", id), errors.NotFound())
}

// errInviteNotFound returns a 404 for when an invite is absent or not
// addressed to the actor.
func errInviteNotFound(id int) error {
	return errors.New(fmt.Sprintf("No invite for id %d", id), errors.NotFound())
}

// errCollaboratorNotFound returns a 404 for when the target user has no
// membership on the note.
func errCollaboratorNotFound(userID int) error {
	return errors.New(fmt.Sprintf("User %d is not a collaborator", userID), errors.NotFound())
}

// errNotOwner returns a 403 for when an administer-level operation is
// attempted by someone else than the note's creator.
func errNotOwner(noteID int) error {
	return errors.New(fmt.Sprintf("You are not the owner of note %d", noteID), errors.Forbidden())
}

// errSelfInvite returns a 409 for when the owner invites themselves.
func errSelfInvite() error {
	return errors.New("You cannot invite yourself", errors.Conflict())
}

// errSelfTarget returns a 409 for when the owner adds themselves as a
// collaborator.
func errSelfTarget() error {
	return errors.New("You cannot add yourself as a collaborator", errors.Conflict())
}

// errInvitePending returns a 409 for when an invite is already pending
// for the pair.
func errInvitePending() error {
	return errors.New("An invite is already pending for this user", errors.Conflict())
}

// errAlreadyCollaborator returns a 409 for when the user already has
// access to the note.
func errAlreadyCollaborator() error {
	return errors.New("This user is already a collaborator", errors.Conflict())
}

// errAlreadyResponded returns a 400 for when the invite is not pending
// anymore.
func errAlreadyResponded(id int) error {
	return errors.New(fmt.Sprintf("Invite %d has already been responded to", id), errors.BadRequest())
}

// errInvalidRole returns a 400 for a role outside the recognized set.
func errInvalidRole(role string) error {
	return errors.New(fmt.Sprintf("Invalid role %q", role), errors.BadRequest())
}
