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

func RegisterCollaboratorEndpoints(srv Server, service *services.MembershipService, jwtKey []byte) {
	opts := []kithttp.ServerOption{
		kithttp.ServerErrorEncoder(encodeError),
		kithttp.ServerBefore(kitjwt.HTTPToContext()),
	}

	jwtMiddleware := jwt.Middleware(jwtKey)

	ep := endpoints.NewCollaboratorEndpoint(service)

	addHandler := kithttp.NewServer(
		jwtMiddleware(ep.Add),
		decodeAddCollaboratorRequest,
		kithttp.EncodeJSONResponse,
		opts...,
	)

	removeHandler := kithttp.NewServer(
		jwtMiddleware(ep.Remove),
		decodeRemoveCollaboratorRequest,
		kithttp.EncodeJSONResponse,
		opts...,
	)

	updateRoleHandler := kithttp.NewServer(
		jwtMiddleware(ep.UpdateRole),
		decodeUpdateRoleRequest,
		kithttp.EncodeJSONResponse,
		opts...,
	)

	listHandler := kithttp.NewServer(
		jwtMiddleware(ep.List),
		decodeListCollaboratorsRequest,
		kithttp.EncodeJSONResponse,
		opts...,
	)

	collaborationsHandler := kithttp.NewServer(
		jwtMiddleware(ep.Collaborations),
		decodeCollaborationsRequest,
		kithttp.EncodeJSONResponse,
		opts...,
	)

	// Routes
	srv.RegisterHandler("/collab/v1/notes/:id/collaborators", "GET", listHandler)
	srv.RegisterHandler("/collab/v1/notes/:id/collaborators", "POST", addHandler)
	srv.RegisterHandler("/collab/v1/notes/:id/collaborators/:userId", "DELETE", removeHandler)
	srv.RegisterHandler("/collab/v1/notes/:id/collaborators/:userId/role", "PUT", updateRoleHandler)
	srv.RegisterHandler("/collab/v1/collaborations", "GET", collaborationsHandler)
}

func decodeAddCollaboratorRequest(ctx context.Context, r *http.Request) (interface{}, error) {
	defer r.Body.Close() // Close body

	params := ctx.Value("params").(map[string]string)
	noteID, err := strconv.Atoi(params["id"])
	if err != nil {
		return nil, err
	}

	var body struct {
		UserID int    `json:"userId"`
		Role   string `json:"role"`
	}
	err = json.NewDecoder(r.Body).Decode(&body)
	if err != nil {
		return nil, err
	}

	req := endpoints.AddCollaboratorRequest{
		NoteID: noteID,
		UserID: body.UserID,
		Role:   collab.Role(body.Role),
	}
	return req, nil
}

func decodeRemoveCollaboratorRequest(ctx context.Context, r *http.Request) (interface{}, error) {
	defer r.Body.Close() // Close body

	params := ctx.Value("params").(map[string]string)
	noteID, err := strconv.Atoi(params["id"])
	if err != nil {
		return nil, err
	}
	userID, err := strconv.Atoi(params["userId"])
	if err != nil {
		return nil, err
	}

	req := endpoints.RemoveCollaboratorRequest{
		NoteID: noteID,
		UserID: userID,
	}
	return req, nil
}

func decodeUpdateRoleRequest(ctx context.Context, r *http.Request) (interface{}, error) {
	defer r.Body.Close() // Close body

	params := ctx.Value("params").(map[string]string)
	noteID, err := strconv.Atoi(params["id"])
	if err != nil {
		return nil, err
	}
	userID, err := strconv.Atoi(params["userId"])
	if err != nil {
		return nil, err
	}

	var body struct {
		Role string `json:"role"`
	}
	err = json.NewDecoder(r.Body).Decode(&body)
	if err != nil {
		return nil, err
	}

	req := endpoints.UpdateRoleRequest{
		NoteID: noteID,
		UserID: userID,
		Role:   collab.Role(body.Role),
	}
	return req, nil
}

func decodeListCollaboratorsRequest(ctx context.Context, r *http.Request) (interface{}, error) {
	defer r.Body.Close() // Close body

	params := ctx.Value("params").(map[string]string)
	noteID, err := strconv.Atoi(params["id"])
	if err != nil {
		return nil, err
	}

	return noteID, nil
}

func decodeCollaborationsRequest(ctx context.Context, r *http.Request) (interface{}, error) {
	defer r.Body.Close() // Close body
	return nil, nil
}
