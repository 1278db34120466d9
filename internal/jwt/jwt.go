package jwt

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/corkboard-dev/corkboard/internal/domain"
	internal_errors "github.com/corkboard-dev/corkboard/internal/errors"
	"github.com/corkboard-dev/corkboard/internal/logger"
)

type JwtService interface {
	NewToken(user domain.User) (string, error)
	ParseUser(tokenString string) (*domain.User, error)
}

type Jwt struct {
	secretKey string
	ttl       time.Duration
}

func New(secretKey string, ttl time.Duration) *Jwt {
	return &Jwt{secretKey, ttl}
}

func (j *Jwt) NewToken(user domain.User) (string, error) {
	claims := jwt.MapClaims{
		"uid":      user.Id.String(),
		"username": user.Username,
		"admin":    user.Admin,
		"exp":      time.Now().Add(j.ttl).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString([]byte(j.secretKey))
	if err != nil {
		logger.Log.Error("failed to sign token", "error", err)
		return "", fmt.Errorf("can't create token: %w", err)
	}

	return tokenString, nil
}

// ParseUser validates tokenString and reconstructs the identity carried in
// its claims. Any failure maps to 401.
func (j *Jwt) ParseUser(tokenString string) (*domain.User, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, internal_errors.NewUnauthenticated(fmt.Sprintf("Unexpected signing method: %v", token.Header["alg"]))
		}
		return []byte(j.secretKey), nil
	})
	if err != nil {
		return nil, internal_errors.NewUnauthenticated("Invalid token signature")
	}
	if !token.Valid {
		return nil, internal_errors.NewUnauthenticated("Invalid access token")
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, internal_errors.NewUnauthenticated("Invalid token claims")
	}

	uidStr, ok := claims["uid"].(string)
	if !ok {
		return nil, internal_errors.NewUnauthenticated("Invalid token claims")
	}
	uid, err := uuid.Parse(uidStr)
	if err != nil {
		return nil, internal_errors.NewUnauthenticated("Invalid token claims")
	}
	username, ok := claims["username"].(string)
	if !ok {
		return nil, internal_errors.NewUnauthenticated("Invalid token claims")
	}
	admin, ok := claims["admin"].(bool)
	if !ok {
		return nil, internal_errors.NewUnauthenticated("Invalid token claims")
	}

	return &domain.User{Id: uid, Username: username, Admin: admin}, nil
}

var _ JwtService = (*Jwt)(nil)
