package endpoints

import (
	"context"
	"net/http"

	kitjwt "github.com/go-kit/kit/auth/jwt"

	"github.com/Allan0411/Notes-API/errors"
	"github.com/Allan0411/Notes-API/jwt"
	"github.com/Allan0411/Notes-API/users"
	"github.com/Allan0411/Notes-API/users/services"
)

var (
	errInvalidRequest = errors.New("invalid request")
)

// extractUserID returns the user id present in the context, or an error
// if there is no user id or the claims are not correct.
func extractUserID(ctx context.Context) (int, error) {
	claims := ctx.Value(kitjwt.JWTClaimsContextKey)
	if claims == nil {
		return 0, errors.New("no user", errors.WithCode(http.StatusUnauthorized))
	}

	apiClaims, ok := claims.(*jwt.Claims)
	if !ok {
		return 0, errors.New("invalid claims", errors.WithCode(http.StatusForbidden))
	}

	return apiClaims.UserID, nil
}

type UserEndpoint struct {
	service *services.UserService
}

func NewUserEndpoint(s *services.UserService) UserEndpoint {
	return UserEndpoint{
		service: s,
	}
}

// tokenResponse carries the user and the token for the auth endpoints.
type tokenResponse struct {
	User  users.User `json:"user"`
	Token string     `json:"token"`
}

type SignUpRequest struct {
	Username string
	Email    string
	Password string
}

func (ep UserEndpoint) SignUp(ctx context.Context, r interface{}) (interface{}, error) {
	req, ok := r.(SignUpRequest)
	if !ok {
		return nil, errInvalidRequest
	}

	user, token, err := ep.service.SignUp(req.Username, req.Email, req.Password)
	if err != nil {
		return nil, err
	}
	return tokenResponse{User: user, Token: token}, nil
}

type LoginRequest struct {
	Email    string
	Password string
}

func (ep UserEndpoint) Login(ctx context.Context, r interface{}) (interface{}, error) {
	req, ok := r.(LoginRequest)
	if !ok {
		return nil, errInvalidRequest
	}

	user, token, err := ep.service.Login(req.Email, req.Password)
	if err != nil {
		return nil, err
	}
	return tokenResponse{User: user, Token: token}, nil
}

func (ep UserEndpoint) Me(ctx context.Context, _ interface{}) (interface{}, error) {
	actorID, err := extractUserID(ctx)
	if err != nil {
		return nil, err
	}

	return ep.service.Get(actorID)
}

func (ep UserEndpoint) User(ctx context.Context, r interface{}) (interface{}, error) {
	if _, err := extractUserID(ctx); err != nil {
		return nil, err
	}

	userID, ok := r.(int)
	if !ok {
		return nil, errInvalidRequest
	}

	return ep.service.Get(userID)
}

func (ep UserEndpoint) UserByEmail(ctx context.Context, r interface{}) (interface{}, error) {
	if _, err := extractUserID(ctx); err != nil {
		return nil, err
	}

	email, ok := r.(string)
	if !ok {
		return nil, errInvalidRequest
	}

	return ep.service.GetByEmail(email)
}

func (ep UserEndpoint) ChangeUsername(ctx context.Context, r interface{}) (interface{}, error) {
	actorID, err := extractUserID(ctx)
	if err != nil {
		return nil, err
	}

	username, ok := r.(string)
	if !ok {
		return nil, errInvalidRequest
	}

	return ep.service.ChangeUsername(actorID, username)
}

func (ep UserEndpoint) RequestPasswordReset(ctx context.Context, r interface{}) (interface{}, error) {
	email, ok := r.(string)
	if !ok {
		return nil, errInvalidRequest
	}

	if err := ep.service.RequestPasswordReset(email); err != nil {
		return nil, err
	}
	return map[string]string{"status": "sent"}, nil
}

type ResetPasswordRequest struct {
	Email    string
	Code     string
	Password string
}

func (ep UserEndpoint) ResetPassword(ctx context.Context, r interface{}) (interface{}, error) {
	req, ok := r.(ResetPasswordRequest)
	if !ok {
		return nil, errInvalidRequest
	}

	if err := ep.service.ResetPassword(req.Email, req.Code, req.Password); err != nil {
		return nil, err
	}
	return map[string]string{"status": "reset"}, nil
}
