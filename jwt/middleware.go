package jwt

import (
	"github.com/dgrijalva/jwt-go"

	kitjwt "github.com/go-kit/kit/auth/jwt"
	"github.com/go-kit/kit/endpoint"
)

// Middleware returns an endpoint middleware that parses the bearer
// token from the context and stores the claims for the endpoints to
// read the acting user from.
func Middleware(key []byte) endpoint.Middleware {
	return kitjwt.NewParser(func(token *jwt.Token) (interface{}, error) {
		return key, nil
	}, jwt.SigningMethodHS256, func() jwt.Claims { return &Claims{} })
}
