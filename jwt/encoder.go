package jwt

import (
	"time"

	"github.com/dgrijalva/jwt-go"

	"github.com/Allan0411/Notes-API/errors"
)

// Claims defines the claims encoded in the tokens. The user id is the
// only claim the services rely on: every operation takes the acting
// user explicitly, nothing is read from ambient state.
type Claims struct {
	UserID int `json:"user_id"`
	jwt.StandardClaims
}

type EncodeDecoder struct {
	key []byte
}

func NewEncodeDecoder(key []byte) *EncodeDecoder {
	return &EncodeDecoder{
		key: key,
	}
}

func (e *EncodeDecoder) Encode(userID int) (string, error) {
	claims := Claims{
		UserID: userID,
		StandardClaims: jwt.StandardClaims{
			ExpiresAt: time.Now().AddDate(0, 0, 1).Unix(),
			Issuer:    "notes-api",
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(e.key)
}

func (e *EncodeDecoder) Decode(bearer string) (int, error) {
	claims := Claims{}

	token, err := jwt.ParseWithClaims(bearer, &claims, func(token *jwt.Token) (interface{}, error) {
		return e.key, nil
	})
	if err != nil {
		return 0, errors.New("invalid token", errors.Unauthorized(), errors.WithCause(err))
	}

	if claims, ok := token.Claims.(*Claims); ok && token.Valid {
		return claims.UserID, nil
	}

	return 0, errors.New("could not get claims", errors.Unauthorized())
}
