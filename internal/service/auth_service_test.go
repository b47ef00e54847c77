package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/formdesk/server/internal/auth"
	"github.com/formdesk/server/internal/models"
)

func TestEnroll(t *testing.T) {
	store := newFakeUserStore()
	svc := NewAuthService(store, "secret", time.Hour)

	pi := models.PersonalInformation{FirstName: "Ada", LastName: "Lovelace", Institute: "Analytical Engines"}
	user, err := svc.Enroll(context.Background(), "ada@example.org", "pw1", pi)
	require.NoError(t, err)

	assert.False(t, user.ID.IsZero())
	assert.Equal(t, "ada@example.org", user.Email)
	assert.NotEqual(t, "pw1", user.PasswordHash, "password must never be stored in plaintext")
	assert.True(t, auth.CheckPassword("pw1", user.PasswordHash))
	assert.Equal(t, models.PositionEmployee, user.PersonalInformation.Position)
	assert.NotNil(t, user.Forms)
	assert.NotNil(t, user.BankInformation)
}

func TestEnrollDuplicateEmail(t *testing.T) {
	store := newFakeUserStore()
	svc := NewAuthService(store, "secret", time.Hour)

	first, err := svc.Enroll(context.Background(), "ada@example.org", "pw1", models.PersonalInformation{})
	require.NoError(t, err)

	_, err = svc.Enroll(context.Background(), "ada@example.org", "other", models.PersonalInformation{})
	assert.ErrorIs(t, err, ErrUserExists)

	// The existing record is untouched.
	stored := store.byEmail["ada@example.org"]
	require.NotNil(t, stored)
	assert.Equal(t, first.ID, stored.ID)
	assert.True(t, auth.CheckPassword("pw1", stored.PasswordHash))
}

func TestLogin(t *testing.T) {
	store := newFakeUserStore()
	svc := NewAuthService(store, "secret", time.Hour)

	user, err := svc.Enroll(context.Background(), "ada@example.org", "pw1", models.PersonalInformation{
		FirstName: "Ada", LastName: "Lovelace",
	})
	require.NoError(t, err)

	token, err := svc.Login(context.Background(), "ada@example.org", "pw1")
	require.NoError(t, err)

	claims, err := auth.ValidateToken("secret", token)
	require.NoError(t, err)
	assert.Equal(t, user.ID.Hex(), claims.UserID)
	assert.Equal(t, "ada@example.org", claims.Email)
	assert.Equal(t, "Lovelace", claims.LastName)
}

func TestLoginWrongPassword(t *testing.T) {
	store := newFakeUserStore()
	svc := NewAuthService(store, "secret", time.Hour)

	_, err := svc.Enroll(context.Background(), "ada@example.org", "pw1", models.PersonalInformation{})
	require.NoError(t, err)

	_, err = svc.Login(context.Background(), "ada@example.org", "wrong")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestLoginUnknownEmailSameError(t *testing.T) {
	store := newFakeUserStore()
	svc := NewAuthService(store, "secret", time.Hour)

	// Unknown email and wrong password are indistinguishable to callers.
	_, err := svc.Login(context.Background(), "nobody@example.org", "pw1")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}
