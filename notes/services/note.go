package services

import (
	"sort"
	"time"

	"github.com/russross/blackfriday"

	"github.com/Allan0411/Notes-API/collab"
	collabservices "github.com/Allan0411/Notes-API/collab/services"
	"github.com/Allan0411/Notes-API/log"
	"github.com/Allan0411/Notes-API/notes"
)

// NoteService is the CRUD layer over notes. Every access decision is
// delegated to the collaboration engine; this service only adds the
// content handling around it.
type NoteService struct {
	repo  notes.Repository
	index notes.Index

	collaborators *collabservices.MembershipService
	engine        *collab.Engine

	logger log.Logger
}

func NewNoteService(
	repo notes.Repository,
	index notes.Index,
	collaborators *collabservices.MembershipService,
	logger log.Logger,
) *NoteService {
	return &NoteService{
		repo:  repo,
		index: index,

		collaborators: collaborators,
		engine:        collaborators.Engine(),

		logger: logger,
	}
}

// Create saves a new note owned by the actor.
func (s *NoteService) Create(actorID int, note notes.Note) (notes.Note, error) {
	if note.Title == "" {
		return notes.Note{}, errEmptyTitle()
	}

	note.ID = 0
	note.CreatorUserID = actorID
	note.CreatedAt = time.Now()
	note.LastAccessed = note.CreatedAt

	if err := s.repo.Upsert(&note); err != nil {
		return notes.Note{}, err
	}

	if err := s.index.Index(&note); err != nil {
		s.logger.Errorf("could not index note %d: %v", note.ID, err)
	}

	return note, nil
}

// Get returns the note if the actor can read it, touching its last
// accessed time.
func (s *NoteService) Get(actorID, noteID int) (notes.Note, error) {
	note, err := s.repo.Get(noteID)
	if err != nil {
		return notes.Note{}, err
	}
	if note.ID == 0 {
		return notes.Note{}, errNoteNotFound(noteID)
	}

	ok, err := s.engine.CanAccess(actorID, noteID, collab.LevelRead)
	if err != nil {
		return notes.Note{}, err
	}
	if !ok {
		return notes.Note{}, errNoteNotFound(noteID)
	}

	// The touch is best effort, reading matters more than the stamp.
	note.LastAccessed = time.Now()
	if err := s.repo.Upsert(&note); err != nil {
		s.logger.Errorf("could not touch note %d: %v", noteID, err)
	}

	return note, nil
}

// List returns the notes the actor owns plus the ones shared with them,
// most recently accessed first. Archived notes are skipped unless
// includeArchived is set.
func (s *NoteService) List(actorID int, includeArchived bool) ([]notes.Note, error) {
	owned, err := s.repo.ListForCreator(actorID)
	if err != nil {
		return nil, err
	}

	sharedIDs, err := s.collaborators.CollaboratedNoteIDs(actorID)
	if err != nil {
		return nil, err
	}
	shared, err := s.repo.List(sharedIDs)
	if err != nil {
		return nil, err
	}

	all := make([]notes.Note, 0, len(owned)+len(shared))
	for _, note := range append(owned, shared...) {
		if note.Archived && !includeArchived {
			continue
		}
		all = append(all, note)
	}

	sort.Slice(all, func(i, j int) bool {
		return all[i].LastAccessed.After(all[j].LastAccessed)
	})
	return all, nil
}

// Update overwrites the note's content. The actor needs edit access;
// creator, creation time and the archived/private flags are kept from
// the stored note.
func (s *NoteService) Update(actorID int, note notes.Note) (notes.Note, error) {
	stored, err := s.repo.Get(note.ID)
	if err != nil {
		return notes.Note{}, err
	}
	if stored.ID == 0 {
		return notes.Note{}, errNoteNotFound(note.ID)
	}

	ok, err := s.engine.CanAccess(actorID, note.ID, collab.LevelEdit)
	if err != nil {
		return notes.Note{}, err
	}
	if !ok {
		return notes.Note{}, errNoteNotFound(note.ID)
	}

	if note.Title == "" {
		return notes.Note{}, errEmptyTitle()
	}

	note.CreatorUserID = stored.CreatorUserID
	note.CreatedAt = stored.CreatedAt
	note.LastAccessed = time.Now()
	note.Archived = stored.Archived
	note.Private = stored.Private

	if err := s.repo.Upsert(&note); err != nil {
		return notes.Note{}, err
	}

	if err := s.index.Index(&note); err != nil {
		s.logger.Errorf("could not index note %d: %v", note.ID, err)
	}

	return note, nil
}

// Delete removes the note and cascades into the collaboration stores.
// Creator only.
func (s *NoteService) Delete(actorID, noteID int) error {
	note, err := s.repo.Get(noteID)
	if err != nil {
		return err
	}
	if note.ID == 0 {
		return errNoteNotFound(noteID)
	}
	if note.CreatorUserID != actorID {
		return errNotOwner(noteID)
	}

	if _, err := s.repo.Delete(noteID); err != nil {
		return err
	}

	if err := s.index.Delete(noteID); err != nil {
		s.logger.Errorf("could not deindex note %d: %v", noteID, err)
	}

	return s.collaborators.DeleteForNote(noteID)
}

// SetArchived flips the archived flag. Creator only.
func (s *NoteService) SetArchived(actorID, noteID int, archived bool) (notes.Note, error) {
	return s.patchFlag(actorID, noteID, func(note *notes.Note) {
		note.Archived = archived
	})
}

// SetPrivate flips the private flag. Creator only.
func (s *NoteService) SetPrivate(actorID, noteID int, private bool) (notes.Note, error) {
	return s.patchFlag(actorID, noteID, func(note *notes.Note) {
		note.Private = private
	})
}

func (s *NoteService) patchFlag(actorID, noteID int, patch func(*notes.Note)) (notes.Note, error) {
	note, err := s.repo.Get(noteID)
	if err != nil {
		return notes.Note{}, err
	}
	if note.ID == 0 {
		return notes.Note{}, errNoteNotFound(noteID)
	}
	if note.CreatorUserID != actorID {
		return notes.Note{}, errNotOwner(noteID)
	}

	patch(&note)
	if err := s.repo.Upsert(&note); err != nil {
		return notes.Note{}, err
	}
	return note, nil
}

// Search runs a full-text query over the notes the actor can read.
func (s *NoteService) Search(actorID int, q string) ([]notes.Note, error) {
	owned, err := s.repo.ListForCreator(actorID)
	if err != nil {
		return nil, err
	}
	sharedIDs, err := s.collaborators.CollaboratedNoteIDs(actorID)
	if err != nil {
		return nil, err
	}

	readable := make([]int, 0, len(owned)+len(sharedIDs))
	for _, note := range owned {
		readable = append(readable, note.ID)
	}
	readable = append(readable, sharedIDs...)

	ids, err := s.index.Search(q, readable)
	if err != nil {
		return nil, err
	}

	return s.repo.List(ids)
}

// Preview renders the note's text as HTML. Same visibility as Get,
// without the last accessed touch.
func (s *NoteService) Preview(actorID, noteID int) (string, error) {
	note, err := s.repo.Get(noteID)
	if err != nil {
		return "", err
	}
	if note.ID == 0 {
		return "", errNoteNotFound(noteID)
	}

	ok, err := s.engine.CanAccess(actorID, noteID, collab.LevelRead)
	if err != nil {
		return "", err
	}
	if !ok {
		return "", errNoteNotFound(noteID)
	}

	return string(blackfriday.MarkdownCommon([]byte(note.TextContents))), nil
}
