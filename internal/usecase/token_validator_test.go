//go:build unit

package usecase_test

import (
	"testing"
	"time"

	"courtbook/internal/domain/identity"
	"courtbook/internal/pkg/jwt"
	"courtbook/internal/usecase"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateToken(t *testing.T) {
	svc := jwt.NewService("test-secret", time.Hour)
	validator := usecase.NewTokenValidator(svc)

	t.Run("round-trips id and role", func(t *testing.T) {
		userID := uuid.New()
		token, err := svc.MintToken(userID, identity.RoleStaff)
		require.NoError(t, err)

		gotID, gotRole, err := validator.ValidateToken(token)
		require.NoError(t, err)
		assert.Equal(t, userID, gotID)
		assert.Equal(t, identity.RoleStaff, gotRole)
	})

	t.Run("rejects malformed tokens", func(t *testing.T) {
		_, _, err := validator.ValidateToken("not-a-token")
		assert.ErrorIs(t, err, usecase.ErrInvalidToken)
	})

	t.Run("rejects tokens signed with another secret", func(t *testing.T) {
		other := jwt.NewService("other-secret", time.Hour)
		token, err := other.MintToken(uuid.New(), identity.RoleMember)
		require.NoError(t, err)

		_, _, err = validator.ValidateToken(token)
		assert.ErrorIs(t, err, usecase.ErrInvalidToken)
	})

	t.Run("rejects expired tokens", func(t *testing.T) {
		expired := jwt.NewService("test-secret", -time.Minute)
		token, err := expired.MintToken(uuid.New(), identity.RoleMember)
		require.NoError(t, err)

		_, _, err = validator.ValidateToken(token)
		assert.ErrorIs(t, err, usecase.ErrInvalidToken)
	})

	t.Run("rejects unknown role claims", func(t *testing.T) {
		token, err := svc.MintToken(uuid.New(), identity.Role("superuser"))
		require.NoError(t, err)

		_, _, err = validator.ValidateToken(token)
		assert.ErrorIs(t, err, usecase.ErrInvalidToken)
	})
}
