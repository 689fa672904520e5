package identity

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewUser(t *testing.T) {
	tests := []struct {
		name     string
		userName string
		email    string
		password string
		role     UserRole
		wantErr  bool
	}{
		{"valid user", "Mona Adel", "mona@example.com", "s3cret-pass", RoleOwner, false},
		{"empty name", "", "mona@example.com", "s3cret-pass", RoleOwner, true},
		{"bad email", "Mona Adel", "not-an-email", "s3cret-pass", RoleOwner, true},
		{"short password", "Mona Adel", "mona@example.com", "short", RoleOwner, true},
		{"bad role", "Mona Adel", "mona@example.com", "s3cret-pass", UserRole("SUPERUSER"), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			user, err := NewUser(tt.userName, tt.email, tt.password, tt.role)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.True(t, user.IsActive)
			assert.NotEqual(t, tt.password, user.PasswordHash)
		})
	}
}

func TestUser_EmailNormalized(t *testing.T) {
	user, err := NewUser("Mona Adel", "  Mona@Example.COM ", "s3cret-pass", RoleViewer)
	require.NoError(t, err)
	assert.Equal(t, "mona@example.com", user.Email)
}

func TestUser_CheckPassword(t *testing.T) {
	user, err := NewUser("Mona Adel", "mona@example.com", "s3cret-pass", RoleAdmin)
	require.NoError(t, err)

	assert.True(t, user.CheckPassword("s3cret-pass"))
	assert.False(t, user.CheckPassword("wrong-pass"))
}

func TestUser_ChangePassword(t *testing.T) {
	user, err := NewUser("Mona Adel", "mona@example.com", "s3cret-pass", RoleAdmin)
	require.NoError(t, err)

	require.NoError(t, user.ChangePassword("new-password"))
	assert.True(t, user.CheckPassword("new-password"))
	assert.False(t, user.CheckPassword("s3cret-pass"))

	assert.Error(t, user.ChangePassword("short"))
}

func TestUserRole_CanWrite(t *testing.T) {
	assert.True(t, RoleAdmin.CanWrite())
	assert.True(t, RoleOwner.CanWrite())
	assert.True(t, RoleAccountant.CanWrite())
	assert.False(t, RoleViewer.CanWrite())
}
