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

// errNotOwner returns a 403 for an operation only the note's creator
// can perform.
func errNotOwner(noteID int) error {
	return errors.New(fmt.Sprintf("You are not the owner of note %d", noteID), errors.Forbidden())
}

// errEmptyTitle returns a 400 for a note saved without a title.
func errEmptyTitle() error {
	return errors.New("A note needs a title", errors.BadRequest())
}
