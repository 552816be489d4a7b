package auth

import (
	"context"
	"testing"

	"banquet-admin/database"
	"banquet-admin/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newVerifier(t *testing.T) *StoreVerifier {
	t.Helper()
	hash, err := HashPassword("admin@123")
	require.NoError(t, err)
	staffHash, err := HashPassword("staff@123")
	require.NoError(t, err)

	users := database.NewMemoryUserStore(
		model.UserData{Login: "admin@buddha.com", Name: "Admin User", Role: model.RoleAdmin, HashedPassword: hash, IsActive: true},
		model.UserData{Login: "former@buddha.com", Name: "Former Staff", Role: model.RoleStaff, HashedPassword: staffHash, IsActive: false},
	)
	return NewStoreVerifier(users)
}

func TestHashPasswordIsNotPlaintext(t *testing.T) {
	hash, err := HashPassword("admin@123")

	require.NoError(t, err)
	assert.NotEqual(t, "admin@123", hash)
	assert.True(t, isPasswordHashCorrect(hash, "admin@123"))
}

func TestVerify(t *testing.T) {
	verifier := newVerifier(t)

	tests := []struct {
		description string
		login       string
		password    string
		expectedErr error
	}{
		{description: "valid admin", login: "admin@buddha.com", password: "admin@123"},
		{description: "whitespace is trimmed", login: "  admin@buddha.com ", password: " admin@123 "},
		{description: "missing password", login: "admin@buddha.com", password: "  ", expectedErr: ErrMissingCredentials},
		{description: "missing login", login: "", password: "admin@123", expectedErr: ErrMissingCredentials},
		{description: "unknown user", login: "ghost@buddha.com", password: "admin@123", expectedErr: ErrUserNotFound},
		{description: "wrong password", login: "admin@buddha.com", password: "staff@123", expectedErr: ErrIncorrectPassword},
		{description: "inactive account", login: "former@buddha.com", password: "staff@123", expectedErr: ErrInactiveAccount},
	}

	for _, test := range tests {
		user, err := verifier.Verify(context.Background(), test.login, test.password)
		if test.expectedErr != nil {
			assert.ErrorIsf(t, err, test.expectedErr, test.description)
			continue
		}
		require.NoErrorf(t, err, test.description)
		assert.Equalf(t, model.RoleAdmin, user.Role, test.description)
	}
}
