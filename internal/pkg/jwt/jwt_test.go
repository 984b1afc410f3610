package jwt

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateAndValidate(t *testing.T) {
	svc := NewService("secret", time.Hour)
	id := uuid.New()

	token, jti, expiresAt, err := svc.Generate(id, "admin")
	require.NoError(t, err)
	assert.NotEmpty(t, jti)
	assert.WithinDuration(t, time.Now().Add(time.Hour), expiresAt, time.Minute)

	claims, err := svc.Validate(token)
	require.NoError(t, err)
	assert.Equal(t, id, claims.AdminID)
	assert.Equal(t, "admin", claims.Username)
	assert.Equal(t, jti, claims.ID)
}

func TestValidateRejectsForeignAndExpiredTokens(t *testing.T) {
	svc := NewService("secret", time.Hour)
	other := NewService("other-secret", time.Hour)

	token, _, _, err := other.Generate(uuid.New(), "admin")
	require.NoError(t, err)
	_, err = svc.Validate(token)
	assert.ErrorIs(t, err, ErrInvalidToken)

	expired := NewService("secret", time.Minute)
	expired.now = func() time.Time { return time.Now().Add(-time.Hour) }
	token, _, _, err = expired.Generate(uuid.New(), "admin")
	require.NoError(t, err)
	_, err = svc.Validate(token)
	assert.ErrorIs(t, err, ErrExpiredToken)
}
