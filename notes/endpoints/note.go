package endpoints

import (
	"context"

	"github.com/Allan0411/Notes-API/notes"
	"github.com/Allan0411/Notes-API/notes/services"
)

type NoteEndpoint struct {
	service *services.NoteService
}

func NewNoteEndpoint(s *services.NoteService) NoteEndpoint {
	return NoteEndpoint{
		service: s,
	}
}

func (ep NoteEndpoint) Create(ctx context.Context, r interface{}) (interface{}, error) {
	actorID, err := extractUserID(ctx)
	if err != nil {
		return nil, err
	}

	note, ok := r.(notes.Note)
	if !ok {
		return nil, errInvalidRequest
	}

	return ep.service.Create(actorID, note)
}

func (ep NoteEndpoint) Get(ctx context.Context, r interface{}) (interface{}, error) {
	actorID, err := extractUserID(ctx)
	if err != nil {
		return nil, err
	}

	noteID, ok := r.(int)
	if !ok {
		return nil, errInvalidRequest
	}

	return ep.service.Get(actorID, noteID)
}

type ListNotesRequest struct {
	IncludeArchived bool
}

func (ep NoteEndpoint) List(ctx context.Context, r interface{}) (interface{}, error) {
	actorID, err := extractUserID(ctx)
	if err != nil {
		return nil, err
	}

	req, ok := r.(ListNotesRequest)
	if !ok {
		return nil, errInvalidRequest
	}

	return ep.service.List(actorID, req.IncludeArchived)
}

func (ep NoteEndpoint) Update(ctx context.Context, r interface{}) (interface{}, error) {
	actorID, err := extractUserID(ctx)
	if err != nil {
		return nil, err
	}

	note, ok := r.(notes.Note)
	if !ok {
		return nil, errInvalidRequest
	}

	return ep.service.Update(actorID, note)
}

func (ep NoteEndpoint) Delete(ctx context.Context, r interface{}) (interface{}, error) {
	actorID, err := extractUserID(ctx)
	if err != nil {
		return nil, err
	}

	noteID, ok := r.(int)
	if !ok {
		return nil, errInvalidRequest
	}

	if err := ep.service.Delete(actorID, noteID); err != nil {
		return nil, err
	}
	return map[string]string{"status": "deleted"}, nil
}

type ArchiveRequest struct {
	NoteID   int
	Archived bool
}

func (ep NoteEndpoint) Archive(ctx context.Context, r interface{}) (interface{}, error) {
	actorID, err := extractUserID(ctx)
	if err != nil {
		return nil, err
	}

	req, ok := r.(ArchiveRequest)
	if !ok {
		return nil, errInvalidRequest
	}

	return ep.service.SetArchived(actorID, req.NoteID, req.Archived)
}

type PrivateRequest struct {
	NoteID  int
	Private bool
}

func (ep NoteEndpoint) Private(ctx context.Context, r interface{}) (interface{}, error) {
	actorID, err := extractUserID(ctx)
	if err != nil {
		return nil, err
	}

	req, ok := r.(PrivateRequest)
	if !ok {
		return nil, errInvalidRequest
	}

	return ep.service.SetPrivate(actorID, req.NoteID, req.Private)
}

func (ep NoteEndpoint) Search(ctx context.Context, r interface{}) (interface{}, error) {
	actorID, err := extractUserID(ctx)
	if err != nil {
		return nil, err
	}

	q, ok := r.(string)
	if !ok {
		return nil, errInvalidRequest
	}

	return ep.service.Search(actorID, q)
}

func (ep NoteEndpoint) Preview(ctx context.Context, r interface{}) (interface{}, error) {
	actorID, err := extractUserID(ctx)
	if err != nil {
		return nil, err
	}

	noteID, ok := r.(int)
	if !ok {
		return nil, errInvalidRequest
	}

	html, err := ep.service.Preview(actorID, noteID)
	if err != nil {
		return nil, err
	}
	return map[string]string{"html": html}, nil
}
