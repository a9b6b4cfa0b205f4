package http

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"

	kitjwt "github.com/go-kit/kit/auth/jwt"
	kithttp "github.com/go-kit/kit/transport/http"

	"github.com/Allan0411/Notes-API/collab"
	"github.com/Allan0411/Notes-API/collab/endpoints"
	"github.com/Allan0411/Notes-API/collab/services"
	"github.com/Allan0411/Notes-API/jwt"
)

func RegisterInviteEndpoints(srv Server, service *services.InviteService, jwtKey []byte) {
	opts := []kithttp.ServerOption{
		kithttp.ServerErrorEncoder(encodeError),
		kithttp.ServerBefore(kitjwt.HTTPToContext()),
	}

	jwtMiddleware := jwt.Middleware(jwtKey)

	ep := endpoints.NewInviteEndpoint(service)

	sendHandler := kithttp.NewServer(
		jwtMiddleware(ep.Send),
		decodeSendInviteRequest,
		kithttp.EncodeJSONResponse,
		opts...,
	)

	respondHandler := kithttp.NewServer(
		jwtMiddleware(ep.Respond),
		decodeRespondRequest,
		kithttp.EncodeJSONResponse,
		opts...,
	)

	pendingHandler := kithttp.NewServer(
		jwtMiddleware(ep.Pending),
		decodePendingRequest,
		kithttp.EncodeJSONResponse,
		opts...,
	)

	// Routes
	srv.RegisterHandler("/collab/v1/invites", "POST", sendHandler)
	srv.RegisterHandler("/collab/v1/invites/pending", "GET", pendingHandler)
	srv.RegisterHandler("/collab/v1/invites/:id/respond", "POST", respondHandler)
}

func decodeSendInviteRequest(ctx context.Context, r *http.Request) (interface{}, error) {
	defer r.Body.Close() // Close body

	var body struct {
		NoteID        int    `json:"noteId"`
		InvitedUserID int    `json:"invitedUserId"`
		Role          string `json:"role"`
	}
	err := json.NewDecoder(r.Body).Decode(&body)
	if err != nil {
		return nil, err
	}

	req := endpoints.SendInviteRequest{
		NoteID:        body.NoteID,
		InvitedUserID: body.InvitedUserID,
		Role:          collab.Role(body.Role),
	}
	return req, nil
}

func decodeRespondRequest(ctx context.Context, r *http.Request) (interface{}, error) {
	defer r.Body.Close() // Close body

	params := ctx.Value("params").(map[string]string)
	inviteID, err := strconv.Atoi(params["id"])
	if err != nil {
		return nil, err
	}

	var body struct {
		Accept bool `json:"accept"`
	}
	err = json.NewDecoder(r.Body).Decode(&body)
	if err != nil {
		return nil, err
	}

	req := endpoints.RespondRequest{
		InviteID: inviteID,
		Accept:   body.Accept,
	}
	return req, nil
}

func decodePendingRequest(ctx context.Context, r *http.Request) (interface{}, error) {
	defer r.Body.Close() // Close body
	return nil, nil
}
