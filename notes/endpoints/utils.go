package endpoints

import (
	"context"
	"net/http"

	kitjwt "github.com/go-kit/kit/auth/jwt"

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
