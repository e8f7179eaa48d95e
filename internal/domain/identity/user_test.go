package identity

import (
	"testing"

	"github.com/google/uuid"
	"github.com/grocery/backend/internal/domain/shared"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const validPassword = "Secret#123"

func TestNewUser(t *testing.T) {
	actorID := uuid.New()

	t.Run("creates user with valid inputs", func(t *testing.T) {
		user, err := NewUser("Jane Doe", "  Jane@Example.COM ", validPassword, RoleUser, actorID)

		require.NoError(t, err)
		assert.Equal(t, "Jane Doe", user.Name)
		assert.Equal(t, "jane@example.com", user.Email)
		assert.Equal(t, RoleUser, user.Role)
		assert.NotEqual(t, validPassword, user.PasswordHash)
		assert.True(t, user.VerifyPassword(validPassword))
		assert.False(t, user.VerifyPassword("wrong"))
		require.NotNil(t, user.CreatedBy)
		assert.Equal(t, actorID, *user.CreatedBy)

		events := user.GetDomainEvents()
		require.Len(t, events, 1)
		_, ok := events[0].(*UserCreatedEvent)
		assert.True(t, ok)
	})

	t.Run("fails with invalid email", func(t *testing.T) {
		_, err := NewUser("Jane", "not-an-email", validPassword, RoleUser, actorID)
		assert.ErrorIs(t, err, shared.ErrInvalidInput)
		assert.Contains(t, err.Error(), "Invalid email format")
	})

	t.Run("fails with empty name", func(t *testing.T) {
		_, err := NewUser(" ", "jane@example.com", validPassword, RoleUser, actorID)
		assert.Contains(t, err.Error(), "Name cannot be empty")
	})

	t.Run("fails with unknown role", func(t *testing.T) {
		_, err := NewUser("Jane", "jane@example.com", validPassword, Role("root"), actorID)
		assert.ErrorIs(t, err, shared.ErrInvalidInput)
	})

	t.Run("fails with weak password", func(t *testing.T) {
		_, err := NewUser("Jane", "jane@example.com", "password", RoleUser, actorID)
		assert.ErrorIs(t, err, shared.ErrInvalidInput)
	})
}

func TestValidatePassword(t *testing.T) {
	tests := []struct {
		name     string
		password string
		errPart  string
	}{
		{"valid", "Abcdefg!", ""},
		{"empty", "", "cannot be empty"},
		{"too short", "Ab!c", "at least 8 characters"},
		{"no upper case", "abcdefg!", "upper and lower case"},
		{"no lower case", "ABCDEFG!", "upper and lower case"},
		{"no special character", "Abcdefgh", "at least one of !@#$%^&*"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidatePassword(tt.password)
			if tt.errPart == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errPart)
		})
	}
}

func TestUser_SetPassword(t *testing.T) {
	user, err := NewUser("Jane", "jane@example.com", validPassword, RoleUser, uuid.Nil)
	require.NoError(t, err)
	user.ClearDomainEvents()

	require.NoError(t, user.SetPassword("Another$Pass1", user.ID))
	assert.True(t, user.VerifyPassword("Another$Pass1"))
	assert.False(t, user.VerifyPassword(validPassword))
	require.Len(t, user.GetDomainEvents(), 1)
	assert.Equal(t, EventTypeUserPasswordChanged, user.GetDomainEvents()[0].EventType())

	err = user.SetPassword("short", user.ID)
	assert.ErrorIs(t, err, shared.ErrInvalidInput)
}

func TestUser_Delete(t *testing.T) {
	user, err := NewUser("Jane", "jane@example.com", validPassword, RoleAdmin, uuid.Nil)
	require.NoError(t, err)
	assert.True(t, user.IsAdmin())
	assert.True(t, user.CanLogin())

	require.NoError(t, user.Delete(uuid.New()))
	assert.True(t, user.IsDeleted())
	assert.False(t, user.CanLogin())

	assert.ErrorIs(t, user.Delete(uuid.New()), shared.ErrNotFound)
}

func TestDefaultPermissions(t *testing.T) {
	assert.Contains(t, DefaultPermissions[RoleUser], PermOrderCreate)
	assert.NotContains(t, DefaultPermissions[RoleUser], PermGroceryCreate)
	assert.NotContains(t, DefaultPermissions[RoleUser], PermUserDelete)
	assert.Contains(t, DefaultPermissions[RoleAdmin], PermGroceryUpdate)
	assert.NotContains(t, DefaultPermissions[RoleAdmin], PermOrderCreate)
}
