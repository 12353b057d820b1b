package usecase

import (
	"courtbook/internal/domain/identity"
	"courtbook/internal/pkg/errs"
	"courtbook/internal/pkg/jwt"

	"github.com/google/uuid"
)

var ErrInvalidToken = errs.New("invalid token")

// TokenValidator resolves the bearer token into the identity context the
// engine consumes. Session issuance itself is an external collaborator.
type TokenValidator interface {
	ValidateToken(token string) (uuid.UUID, identity.Role, error)
}

type tokenValidatorImpl struct {
	jwtService *jwt.Service
}

func NewTokenValidator(jwtService *jwt.Service) TokenValidator {
	return &tokenValidatorImpl{jwtService: jwtService}
}

func (v *tokenValidatorImpl) ValidateToken(token string) (uuid.UUID, identity.Role, error) {
	claims, err := v.jwtService.ValidateToken(token)
	if err != nil {
		return uuid.Nil, "", errs.Mark(err, ErrInvalidToken)
	}

	role := identity.Role(claims.Role)
	if !role.IsValid() {
		return uuid.Nil, "", ErrInvalidToken
	}

	return claims.UserID, role, nil
}
