package service

import (
	"strings"

	"golang.org/x/crypto/bcrypt"

	"github.com/corkboard-dev/corkboard/internal/domain"
	"github.com/corkboard-dev/corkboard/internal/errors"
	"github.com/corkboard-dev/corkboard/internal/logger"
)

type AuthService interface {
	Register(reg domain.RegistrationData) (domain.UserId, error)
	Login(creds domain.Credentials) (string, error)
}

type Auth struct {
	storage AuthStorage
	jwt     Jwt
}

type AuthStorage interface {
	SaveUser(reg domain.RegistrationData, passHash string) (domain.UserId, error)
	User(email domain.Email) (domain.User, error)
}

type Jwt interface {
	NewToken(user domain.User) (string, error)
}

func NewAuth(storage AuthStorage, jwt Jwt) *Auth {
	return &Auth{storage, jwt}
}

// Register creates the identity and profile. The allow-list check and the
// identity+profile rollback contract live in the storage transaction; this
// layer normalizes input and hashes the password.
func (a *Auth) Register(reg domain.RegistrationData) (domain.UserId, error) {
	reg.Email = strings.ToLower(strings.TrimSpace(reg.Email))
	reg.Username = strings.TrimSpace(reg.Username)
	if reg.Username == "" {
		return domain.UserId{}, errors.NewValidation("Username is required")
	}

	passHash, err := bcrypt.GenerateFromPassword([]byte(reg.Password), bcrypt.DefaultCost)
	if err != nil {
		logger.Log.Error("failed to hash password", "error", err)
		return domain.UserId{}, err
	}

	return a.storage.SaveUser(reg, string(passHash))
}

// Login checks credentials and returns an access token. Unknown email and
// wrong password are indistinguishable to the caller.
func (a *Auth) Login(creds domain.Credentials) (string, error) {
	email := strings.ToLower(strings.TrimSpace(creds.Email))

	user, err := a.storage.User(email)
	if err != nil {
		if errors.IsNotFound(err) {
			return "", errors.NewUnauthenticated("Wrong email or password")
		}
		return "", err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PassHash), []byte(creds.Password)); err != nil {
		return "", errors.NewUnauthenticated("Wrong email or password")
	}

	return a.jwt.NewToken(user)
}
