package endpoints

import (
	"context"
	"net/http"

	kitjwt "github.com/go-kit/kit/auth/jwt"

	"github.com/Allan0411/Notes-API/ai"
	"github.com/Allan0411/Notes-API/ai/services"
	"github.com/Allan0411/Notes-API/errors"
	"github.com/Allan0411/Notes-API/jwt"
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

type AIEndpoint struct {
	service *services.AIService
}

func NewAIEndpoint(s *services.AIService) AIEndpoint {
	return AIEndpoint{
		service: s,
	}
}

type TransformRequest struct {
	Action ai.Action
	Text   string
}

func (ep AIEndpoint) Transform(ctx context.Context, r interface{}) (interface{}, error) {
	if _, err := extractUserID(ctx); err != nil {
		return nil, err
	}

	req, ok := r.(TransformRequest)
	if !ok {
		return nil, errInvalidRequest
	}

	text, err := ep.service.Transform(ctx, req.Action, req.Text)
	if err != nil {
		return nil, err
	}
	return map[string]string{"text": text}, nil
}

type SketchRequest struct {
	Image        string
	MimeType     string
	Instructions string
}

func (ep AIEndpoint) RefineSketch(ctx context.Context, r interface{}) (interface{}, error) {
	if _, err := extractUserID(ctx); err != nil {
		return nil, err
	}

	req, ok := r.(SketchRequest)
	if !ok {
		return nil, errInvalidRequest
	}

	image, err := ep.service.RefineSketch(ctx, req.Image, req.MimeType, req.Instructions)
	if err != nil {
		return nil, err
	}
	return map[string]string{"image": image}, nil
}
