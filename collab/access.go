package collab

// Level is the access level an operation requires on a note.
type Level int

const (
	// LevelRead allows reading the note. The creator and every
	// collaborator have it.
	LevelRead Level = iota

	// LevelEdit allows mutating the note's content. The creator and
	// collaborators with at least the editor role have it.
	LevelEdit

	// LevelAdmin allows managing collaborators and deleting the note.
	// Only the creator has it.
	LevelAdmin
)

// Engine decides whether an actor can operate on a note. It only reads
// the note's creator and the membership rows, it never mutates them.
// Results are only valid for the duration of the surrounding operation.
type Engine struct {
	notes       NoteGetter
	memberships MembershipRepository
}

func NewEngine(notes NoteGetter, memberships MembershipRepository) *Engine {
	return &Engine{
		notes:       notes,
		memberships: memberships,
	}
}

// CanAccess reports whether the actor can operate on the note at the
// given level. A note that does not exist is not accessible at any
// level. Archived and private notes follow the same rule as any other:
// the flags hide notes from listings, they do not revoke access.
func (e *Engine) CanAccess(actorID, noteID int, lvl Level) (bool, error) {
	note, err := e.notes.Note(noteID)
	if err != nil {
		return false, err
	}
	if note.ID == 0 {
		return false, nil
	}

	return e.CanAccessNote(actorID, note, lvl)
}

// CanAccessNote is CanAccess for a note the caller already loaded,
// saving a second read within the same operation.
func (e *Engine) CanAccessNote(actorID int, note Note, lvl Level) (bool, error) {
	if actorID == note.CreatorID {
		return true, nil
	}

	if lvl == LevelAdmin {
		return false, nil
	}

	m, err := e.memberships.Get(note.ID, actorID)
	if err != nil {
		return false, err
	}
	if m.Role == "" {
		return false, nil
	}

	if lvl == LevelRead {
		return true, nil
	}

	return m.Role.Satisfies(RoleEditor), nil
}
