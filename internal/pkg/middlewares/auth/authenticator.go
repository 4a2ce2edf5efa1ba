package auth

import (
	"errors"
	"fmt"

	"github.com/golang-jwt/jwt/v5"
	"orders/internal/entities"
)

const RoleAdmin = "admin"

var ErrInvalidToken = errors.New("invalid token")

type Claims struct {
	Role string `json:"role,omitempty"`
	jwt.RegisteredClaims
}

// Authenticator проверяет HS256 токены, выданные сервисом авторизации.
type Authenticator struct {
	secret []byte
	parser *jwt.Parser
}

func NewAuthenticator(secret, issuer string) *Authenticator {
	return &Authenticator{
		secret: []byte(secret),
		parser: jwt.NewParser(
			jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
			jwt.WithIssuer(issuer),
			jwt.WithExpirationRequired(),
		),
	}
}

func (a *Authenticator) Authenticate(raw string) (entities.Caller, error) {
	var claims Claims

	_, err := a.parser.ParseWithClaims(raw, &claims, func(*jwt.Token) (any, error) {
		return a.secret, nil
	})
	if err != nil {
		return entities.Caller{}, fmt.Errorf("%w: %w", ErrInvalidToken, err)
	}

	if claims.Subject == "" {
		return entities.Caller{}, fmt.Errorf("%w: empty subject", ErrInvalidToken)
	}

	return entities.Caller{
		ID:      claims.Subject,
		IsAdmin: claims.Role == RoleAdmin,
	}, nil
}
