package endpoints

import (
	"context"

	"github.com/Allan0411/Notes-API/collab"
	"github.com/Allan0411/Notes-API/collab/services"
)

type InviteEndpoint struct {
	service *services.InviteService
}

func NewInviteEndpoint(s *services.InviteService) InviteEndpoint {
	return InviteEndpoint{
		service: s,
	}
}

type SendInviteRequest struct {
	NoteID        int
	InvitedUserID int
	Role          collab.Role
}

func (ep InviteEndpoint) Send(ctx context.Context, r interface{}) (interface{}, error) {
	actorID, err := extractUserID(ctx)
	if err != nil {
		return nil, err
	}

	req, ok := r.(SendInviteRequest)
	if !ok {
		return nil, errInvalidRequest
	}

	return ep.service.Send(actorID, req.NoteID, req.InvitedUserID, req.Role)
}

type RespondRequest struct {
	InviteID int
	Accept   bool
}

func (ep InviteEndpoint) Respond(ctx context.Context, r interface{}) (interface{}, error) {
	actorID, err := extractUserID(ctx)
	if err != nil {
		return nil, err
	}

	req, ok := r.(RespondRequest)
	if !ok {
		return nil, errInvalidRequest
	}

	return ep.service.Respond(actorID, req.InviteID, req.Accept)
}

func (ep InviteEndpoint) Pending(ctx context.Context, _ interface{}) (interface{}, error) {
	actorID, err := extractUserID(ctx)
	if err != nil {
		return nil, err
	}

	return ep.service.PendingForUser(actorID)
}
