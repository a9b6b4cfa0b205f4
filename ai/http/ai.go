package http

import (
	"context"
	"encoding/json"
	"net/http"

	kitjwt "github.com/go-kit/kit/auth/jwt"
	kithttp "github.com/go-kit/kit/transport/http"

	"github.com/Allan0411/Notes-API/ai"
	"github.com/Allan0411/Notes-API/ai/endpoints"
	"github.com/Allan0411/Notes-API/ai/services"
	"github.com/Allan0411/Notes-API/errors"
	"github.com/Allan0411/Notes-API/jwt"
)

// encodeError writes an error as an HTTP response. It handles the status code
// contained in the error.
func encodeError(_ context.Context, err error, w http.ResponseWriter) {
	statusCode := http.StatusInternalServerError
	if err, ok := err.(errors.Error); ok {
		statusCode = err.Code()
	}
	w.WriteHeader(statusCode)

	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	json.NewEncoder(w).Encode(map[string]interface{}{
		"error": err.Error(),
	})
}

// Server defines the interface to register the http handlers.
type Server interface {
	RegisterHandler(path, method string, f http.Handler)
}

func RegisterAIEndpoints(srv Server, service *services.AIService, jwtKey []byte) {
	opts := []kithttp.ServerOption{
		kithttp.ServerErrorEncoder(encodeError),
		kithttp.ServerBefore(kitjwt.HTTPToContext()),
	}

	jwtMiddleware := jwt.Middleware(jwtKey)

	ep := endpoints.NewAIEndpoint(service)

	transformHandler := kithttp.NewServer(
		jwtMiddleware(ep.Transform),
		decodeTransformRequest,
		kithttp.EncodeJSONResponse,
		opts...,
	)

	sketchHandler := kithttp.NewServer(
		jwtMiddleware(ep.RefineSketch),
		decodeSketchRequest,
		kithttp.EncodeJSONResponse,
		opts...,
	)

	// Routes
	srv.RegisterHandler("/ai/v1/text", "POST", transformHandler)
	srv.RegisterHandler("/ai/v1/sketch", "POST", sketchHandler)
}

func decodeTransformRequest(ctx context.Context, r *http.Request) (interface{}, error) {
	defer r.Body.Close() // Close body

	var body struct {
		Action string `json:"action"`
		Text   string `json:"text"`
	}
	err := json.NewDecoder(r.Body).Decode(&body)
	if err != nil {
		return nil, err
	}

	req := endpoints.TransformRequest{
		Action: ai.Action(body.Action),
		Text:   body.Text,
	}
	return req, nil
}

func decodeSketchRequest(ctx context.Context, r *http.Request) (interface{}, error) {
	defer r.Body.Close() // Close body

	var body struct {
		Image        string `json:"image"`
		MimeType     string `json:"mimeType"`
		Instructions string `json:"instructions"`
	}
	err := json.NewDecoder(r.Body).Decode(&body)
	if err != nil {
		return nil, err
	}

	req := endpoints.SketchRequest{
		Image:        body.Image,
		MimeType:     body.MimeType,
		Instructions: body.Instructions,
	}
	return req, nil
}
