package jwt

import (
	"time"

	"github.com/go-chi/jwtauth/v5"
	"github.com/lestrrat-go/jwx/v2/jwt"
)

// Service verifies the bearer tokens presented on the approval routes. Tokens
// are issued elsewhere; GenerateAccessToken exists for tooling and tests that
// share the same secret.
type Service interface {
	GenerateAccessToken(userID string, isAdmin bool, ttl time.Duration) (token string, expiresAt int64, err error)
	JWTAuth() *jwtauth.JWTAuth
}

type JWTService struct {
	tokenAuth *jwtauth.JWTAuth
}

func (j *JWTService) JWTAuth() *jwtauth.JWTAuth {
	return j.tokenAuth
}

func NewJWTService(secretKey string) Service {
	return &JWTService{
		tokenAuth: jwtauth.New("HS256", []byte(secretKey), nil, jwt.WithAcceptableSkew(30*time.Second)),
	}
}

func (j *JWTService) GenerateAccessToken(userID string, isAdmin bool, ttl time.Duration) (token string, expiresAt int64, err error) {
	expiresAt = time.Now().Add(ttl).Unix()
	_, tokenString, err := j.tokenAuth.Encode(map[string]interface{}{
		"user_id":  userID,
		"is_admin": isAdmin,
		"type":     "access",
		"exp":      expiresAt,
	})
	return tokenString, expiresAt, err
}
