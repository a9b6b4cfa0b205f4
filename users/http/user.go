package http

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"

	kitjwt "github.com/go-kit/kit/auth/jwt"
	kithttp "github.com/go-kit/kit/transport/http"

	"github.com/Allan0411/Notes-API/errors"
	"github.com/Allan0411/Notes-API/jwt"
	"github.com/Allan0411/Notes-API/users/endpoints"
	"github.com/Allan0411/Notes-API/users/services"
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

func RegisterUserEndpoints(srv Server, service *services.UserService, jwtKey []byte) {
	opts := []kithttp.ServerOption{
		kithttp.ServerErrorEncoder(encodeError),
		kithttp.ServerBefore(kitjwt.HTTPToContext()),
	}

	jwtMiddleware := jwt.Middleware(jwtKey)

	ep := endpoints.NewUserEndpoint(service)

	signUpHandler := kithttp.NewServer(
		ep.SignUp,
		decodeSignUpRequest,
		kithttp.EncodeJSONResponse,
		opts...,
	)

	loginHandler := kithttp.NewServer(
		ep.Login,
		decodeLoginRequest,
		kithttp.EncodeJSONResponse,
		opts...,
	)

	meHandler := kithttp.NewServer(
		jwtMiddleware(ep.Me),
		decodeMeRequest,
		kithttp.EncodeJSONResponse,
		opts...,
	)

	userHandler := kithttp.NewServer(
		jwtMiddleware(ep.User),
		decodeUserRequest,
		kithttp.EncodeJSONResponse,
		opts...,
	)

	userByEmailHandler := kithttp.NewServer(
		jwtMiddleware(ep.UserByEmail),
		decodeUserByEmailRequest,
		kithttp.EncodeJSONResponse,
		opts...,
	)

	changeUsernameHandler := kithttp.NewServer(
		jwtMiddleware(ep.ChangeUsername),
		decodeChangeUsernameRequest,
		kithttp.EncodeJSONResponse,
		opts...,
	)

	requestResetHandler := kithttp.NewServer(
		ep.RequestPasswordReset,
		decodeRequestResetRequest,
		kithttp.EncodeJSONResponse,
		opts...,
	)

	resetPasswordHandler := kithttp.NewServer(
		ep.ResetPassword,
		decodeResetPasswordRequest,
		kithttp.EncodeJSONResponse,
		opts...,
	)

	// Routes
	srv.RegisterHandler("/users/v1/signup", "POST", signUpHandler)
	srv.RegisterHandler("/users/v1/login", "POST", loginHandler)
	srv.RegisterHandler("/users/v1/me", "GET", meHandler)
	srv.RegisterHandler("/users/v1/me/username", "PUT", changeUsernameHandler)
	srv.RegisterHandler("/users/v1/users/:id", "GET", userHandler)
	srv.RegisterHandler("/users/v1/users", "GET", userByEmailHandler)
	srv.RegisterHandler("/users/v1/password-reset/request", "POST", requestResetHandler)
	srv.RegisterHandler("/users/v1/password-reset", "POST", resetPasswordHandler)
}

func decodeSignUpRequest(ctx context.Context, r *http.Request) (interface{}, error) {
	defer r.Body.Close() // Close body

	var body struct {
		Username string `json:"username"`
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	err := json.NewDecoder(r.Body).Decode(&body)
	if err != nil {
		return nil, err
	}

	req := endpoints.SignUpRequest{
		Username: body.Username,
		Email:    body.Email,
		Password: body.Password,
	}
	return req, nil
}

func decodeLoginRequest(ctx context.Context, r *http.Request) (interface{}, error) {
	defer r.Body.Close() // Close body

	var body struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	err := json.NewDecoder(r.Body).Decode(&body)
	if err != nil {
		return nil, err
	}

	req := endpoints.LoginRequest{
		Email:    body.Email,
		Password: body.Password,
	}
	return req, nil
}

func decodeMeRequest(ctx context.Context, r *http.Request) (interface{}, error) {
	defer r.Body.Close() // Close body
	return nil, nil
}

func decodeUserRequest(ctx context.Context, r *http.Request) (interface{}, error) {
	defer r.Body.Close() // Close body

	params := ctx.Value("params").(map[string]string)
	userID, err := strconv.Atoi(params["id"])
	if err != nil {
		return nil, err
	}

	return userID, nil
}

func decodeUserByEmailRequest(ctx context.Context, r *http.Request) (interface{}, error) {
	defer r.Body.Close() // Close body

	return r.URL.Query().Get("email"), nil
}

func decodeChangeUsernameRequest(ctx context.Context, r *http.Request) (interface{}, error) {
	defer r.Body.Close() // Close body

	var body struct {
		Username string `json:"username"`
	}
	err := json.NewDecoder(r.Body).Decode(&body)
	if err != nil {
		return nil, err
	}

	return body.Username, nil
}

func decodeRequestResetRequest(ctx context.Context, r *http.Request) (interface{}, error) {
	defer r.Body.Close() // Close body

	var body struct {
		Email string `json:"email"`
	}
	err := json.NewDecoder(r.Body).Decode(&body)
	if err != nil {
		return nil, err
	}

	return body.Email, nil
}

func decodeResetPasswordRequest(ctx context.Context, r *http.Request) (interface{}, error) {
	defer r.Body.Close() // Close body

	var body struct {
		Email    string `json:"email"`
		Code     string `json:"code"`
		Password string `json:"password"`
	}
	err := json.NewDecoder(r.Body).Decode(&body)
	if err != nil {
		return nil, err
	}

	req := endpoints.ResetPasswordRequest{
		Email:    body.Email,
		Code:     body.Code,
		Password: body.Password,
	}
	return req, nil
}
