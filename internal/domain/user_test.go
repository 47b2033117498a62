package domain

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validUser() *User {
	return &User{
		ID:       "user-1",
		Email:    "ada@example.com",
		Username: "ada",
		Name:     "Ada Lovelace",
		Role:     RegularUserRole,
	}
}

func TestUserValidate(t *testing.T) {
	cases := []struct {
		name     string
		mutate   func(*User)
		wantCode string
	}{
		{"valid", func(_ *User) {}, ""},
		{"valid admin", func(u *User) { u.Role = AdminRole }, ""},
		{"missing email", func(u *User) { u.Email = "" }, "INVALID_EMAIL"},
		{"malformed email", func(u *User) { u.Email = "not-an-email" }, "INVALID_EMAIL"},
		{"email without tld", func(u *User) { u.Email = "ada@localhost" }, "INVALID_EMAIL"},
		{"blank username", func(u *User) { u.Username = "  " }, "INVALID_USERNAME"},
		{"blank name", func(u *User) { u.Name = "" }, "INVALID_NAME"},
		{"unknown role", func(u *User) { u.Role = "superuser" }, "INVALID_ROLE"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			user := validUser()
			tc.mutate(user)

			err := user.Validate()
			if tc.wantCode == "" {
				assert.NoError(t, err)
				return
			}

			var domainErr *Error
			require.ErrorAs(t, err, &domainErr)
			assert.Equal(t, tc.wantCode, domainErr.Code)
			assert.Equal(t, ValidationError, domainErr.Type)
		})
	}
}

func TestSetAndCheckPassword(t *testing.T) {
	user := validUser()
	require.NoError(t, user.SetPassword("s3cure-passphrase"))

	assert.NotEmpty(t, user.PasswordHash)
	assert.NotContains(t, user.PasswordHash, "s3cure-passphrase")

	assert.NoError(t, user.CheckPassword("s3cure-passphrase"))
	assert.Error(t, user.CheckPassword("wrong-password"))
}

func TestSanitizedStripsHashAndCopies(t *testing.T) {
	user := validUser()
	require.NoError(t, user.SetPassword("s3cure-passphrase"))

	clean := user.Sanitized()

	assert.Empty(t, clean.PasswordHash)
	assert.NotEmpty(t, user.PasswordHash, "original stays intact")

	clean.Name = "changed"
	assert.Equal(t, "Ada Lovelace", user.Name)
}

func TestPasswordHashNeverSerializes(t *testing.T) {
	user := validUser()
	require.NoError(t, user.SetPassword("s3cure-passphrase"))

	payload, err := json.Marshal(user)
	require.NoError(t, err)
	assert.NotContains(t, string(payload), user.PasswordHash)
	assert.NotContains(t, string(payload), "password")
}

func TestIsAdmin(t *testing.T) {
	user := validUser()
	assert.False(t, user.IsAdmin())

	user.Role = AdminRole
	assert.True(t, user.IsAdmin())
}
