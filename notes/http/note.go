package http

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"

	kitjwt "github.com/go-kit/kit/auth/jwt"
	kithttp "github.com/go-kit/kit/transport/http"

	"github.com/Allan0411/Notes-API/jwt"
	"github.com/Allan0411/Notes-API/notes"
	"github.com/Allan0411/Notes-API/notes/endpoints"
	"github.com/Allan0411/Notes-API/notes/services"
)

func RegisterNoteEndpoints(srv Server, service *services.NoteService, jwtKey []byte) {
	opts := []kithttp.ServerOption{
		kithttp.ServerErrorEncoder(encodeError),
		kithttp.ServerBefore(kitjwt.HTTPToContext()),
	}

	jwtMiddleware := jwt.Middleware(jwtKey)

	ep := endpoints.NewNoteEndpoint(service)

	createHandler := kithttp.NewServer(
		jwtMiddleware(ep.Create),
		decodeCreateNoteRequest,
		kithttp.EncodeJSONResponse,
		opts...,
	)

	getHandler := kithttp.NewServer(
		jwtMiddleware(ep.Get),
		decodeNoteIDRequest,
		kithttp.EncodeJSONResponse,
		opts...,
	)

	listHandler := kithttp.NewServer(
		jwtMiddleware(ep.List),
		decodeListNotesRequest,
		kithttp.EncodeJSONResponse,
		opts...,
	)

	updateHandler := kithttp.NewServer(
		jwtMiddleware(ep.Update),
		decodeUpdateNoteRequest,
		kithttp.EncodeJSONResponse,
		opts...,
	)

	deleteHandler := kithttp.NewServer(
		jwtMiddleware(ep.Delete),
		decodeNoteIDRequest,
		kithttp.EncodeJSONResponse,
		opts...,
	)

	archiveHandler := kithttp.NewServer(
		jwtMiddleware(ep.Archive),
		decodeArchiveRequest,
		kithttp.EncodeJSONResponse,
		opts...,
	)

	privateHandler := kithttp.NewServer(
		jwtMiddleware(ep.Private),
		decodePrivateRequest,
		kithttp.EncodeJSONResponse,
		opts...,
	)

	searchHandler := kithttp.NewServer(
		jwtMiddleware(ep.Search),
		decodeSearchRequest,
		kithttp.EncodeJSONResponse,
		opts...,
	)

	previewHandler := kithttp.NewServer(
		jwtMiddleware(ep.Preview),
		decodeNoteIDRequest,
		kithttp.EncodeJSONResponse,
		opts...,
	)

	// Routes
	srv.RegisterHandler("/notes/v1/notes", "POST", createHandler)
	srv.RegisterHandler("/notes/v1/notes", "GET", listHandler)
	srv.RegisterHandler("/notes/v1/notes/search", "GET", searchHandler)
	srv.RegisterHandler("/notes/v1/notes/:id", "GET", getHandler)
	srv.RegisterHandler("/notes/v1/notes/:id", "PUT", updateHandler)
	srv.RegisterHandler("/notes/v1/notes/:id", "DELETE", deleteHandler)
	srv.RegisterHandler("/notes/v1/notes/:id/archive", "PATCH", archiveHandler)
	srv.RegisterHandler("/notes/v1/notes/:id/private", "PATCH", privateHandler)
	srv.RegisterHandler("/notes/v1/notes/:id/preview", "GET", previewHandler)
}

func decodeCreateNoteRequest(ctx context.Context, r *http.Request) (interface{}, error) {
	defer r.Body.Close() // Close body

	var note notes.Note
	err := json.NewDecoder(r.Body).Decode(&note)
	if err != nil {
		return nil, err
	}

	return note, nil
}

func decodeNoteIDRequest(ctx context.Context, r *http.Request) (interface{}, error) {
	defer r.Body.Close() // Close body

	params := ctx.Value("params").(map[string]string)
	noteID, err := strconv.Atoi(params["id"])
	if err != nil {
		return nil, err
	}

	return noteID, nil
}

func decodeListNotesRequest(ctx context.Context, r *http.Request) (interface{}, error) {
	defer r.Body.Close() // Close body

	req := endpoints.ListNotesRequest{
		IncludeArchived: r.URL.Query().Get("archived") == "true",
	}
	return req, nil
}

func decodeUpdateNoteRequest(ctx context.Context, r *http.Request) (interface{}, error) {
	defer r.Body.Close() // Close body

	params := ctx.Value("params").(map[string]string)
	noteID, err := strconv.Atoi(params["id"])
	if err != nil {
		return nil, err
	}

	var note notes.Note
	err = json.NewDecoder(r.Body).Decode(&note)
	if err != nil {
		return nil, err
	}

	note.ID = noteID
	return note, nil
}

func decodeArchiveRequest(ctx context.Context, r *http.Request) (interface{}, error) {
	defer r.Body.Close() // Close body

	params := ctx.Value("params").(map[string]string)
	noteID, err := strconv.Atoi(params["id"])
	if err != nil {
		return nil, err
	}

	var body struct {
		Archived bool `json:"archived"`
	}
	err = json.NewDecoder(r.Body).Decode(&body)
	if err != nil {
		return nil, err
	}

	req := endpoints.ArchiveRequest{
		NoteID:   noteID,
		Archived: body.Archived,
	}
	return req, nil
}

func decodePrivateRequest(ctx context.Context, r *http.Request) (interface{}, error) {
	defer r.Body.Close() // Close body

	params := ctx.Value("params").(map[string]string)
	noteID, err := strconv.Atoi(params["id"])
	if err != nil {
		return nil, err
	}

	var body struct {
		Private bool `json:"private"`
	}
	err = json.NewDecoder(r.Body).Decode(&body)
	if err != nil {
		return nil, err
	}

	req := endpoints.PrivateRequest{
		NoteID:  noteID,
		Private: body.Private,
	}
	return req, nil
}

func decodeSearchRequest(ctx context.Context, r *http.Request) (interface{}, error) {
	defer r.Body.Close() // Close body

	return r.URL.Query().Get("q"), nil
}
