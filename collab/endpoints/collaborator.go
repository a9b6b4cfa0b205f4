package endpoints

import (
	"context"

	"github.com/Allan0411/Notes-API/collab"
	"github.com/Allan0411/Notes-API/collab/services"
)

type CollaboratorEndpoint struct {
	service *services.MembershipService
}

func NewCollaboratorEndpoint(s *services.MembershipService) CollaboratorEndpoint {
	return CollaboratorEndpoint{
		service: s,
	}
}

type AddCollaboratorRequest struct {
	NoteID int
	UserID int
	Role   collab.Role
}

func (ep CollaboratorEndpoint) Add(ctx context.Context, r interface{}) (interface{}, error) {
	actorID, err := extractUserID(ctx)
	if err != nil {
		return nil, err
	}

	req, ok := r.(AddCollaboratorRequest)
	if !ok {
		return nil, errInvalidRequest
	}

	return ep.service.Add(actorID, req.NoteID, req.UserID, req.Role)
}

type RemoveCollaboratorRequest struct {
	NoteID int
	UserID int
}

func (ep CollaboratorEndpoint) Remove(ctx context.Context, r interface{}) (interface{}, error) {
	actorID, err := extractUserID(ctx)
	if err != nil {
		return nil, err
	}

	req, ok := r.(RemoveCollaboratorRequest)
	if !ok {
		return nil, errInvalidRequest
	}

	if err := ep.service.Remove(actorID, req.NoteID, req.UserID); err != nil {
		return nil, err
	}
	return map[string]string{"status": "removed"}, nil
}

type UpdateRoleRequest struct {
	NoteID int
	UserID int
	Role   collab.Role
}

func (ep CollaboratorEndpoint) UpdateRole(ctx context.Context, r interface{}) (interface{}, error) {
	actorID, err := extractUserID(ctx)
	if err != nil {
		return nil, err
	}

	req, ok := r.(UpdateRoleRequest)
	if !ok {
		return nil, errInvalidRequest
	}

	return ep.service.UpdateRole(actorID, req.NoteID, req.UserID, req.Role)
}

func (ep CollaboratorEndpoint) List(ctx context.Context, r interface{}) (interface{}, error) {
	actorID, err := extractUserID(ctx)
	if err != nil {
		return nil, err
	}

	noteID, ok := r.(int)
	if !ok {
		return nil, errInvalidRequest
	}

	return ep.service.List(actorID, noteID)
}

func (ep CollaboratorEndpoint) Collaborations(ctx context.Context, _ interface{}) (interface{}, error) {
	actorID, err := extractUserID(ctx)
	if err != nil {
		return nil, err
	}

	return ep.service.CollaboratedNoteIDs(actorID)
}
