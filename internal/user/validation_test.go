package user

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validAccount() NewAccount {
	return NewAccount{
		Email:    "asha@example.com",
		FullName: "Asha Rai",
		Contact:  "9812345678",
		Password: "Secret#123",
	}
}

func fieldErrors(t *testing.T, err error) map[string][]string {
	t.Helper()
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	return verr.Fields
}

func TestNewAccount_Valid(t *testing.T) {
	assert.NoError(t, validAccount().Validate())
}

func TestNewAccount_PasswordPolicy(t *testing.T) {
	tests := []struct {
		password string
		message  string
	}{
		{"Ab1#", "Ensure this field has at least 8 characters."},
		{"secret#123", "Password must include at least one uppercase letter."},
		{"SECRET#123", "Password must include at least one lowercase letter."},
		{"Secret#abc", "Password must include at least one number."},
		{"Secret1234", "Password must include at least one special character."},
	}

	for _, tt := range tests {
		t.Run(tt.password, func(t *testing.T) {
			a := validAccount()
			a.Password = tt.password
			fields := fieldErrors(t, a.Validate())
			assert.Equal(t, []string{tt.message}, fields["password"])
		})
	}
}

func TestNewAccount_Contact(t *testing.T) {
	for _, contact := range []string{"9512345678", "981234567", "98123456789", "98123x5678", "+9779812345678"} {
		t.Run(contact, func(t *testing.T) {
			a := validAccount()
			a.Contact = contact
			fields := fieldErrors(t, a.Validate())
			assert.Equal(t, []string{"Invalid mobile number."}, fields["contact"])
		})
	}

	for _, contact := range []string{"9612345678", "9712345678", "9812345678", "9912345678"} {
		a := validAccount()
		a.Contact = contact
		assert.NoError(t, a.Validate(), contact)
	}
}

func TestNewAccount_Email(t *testing.T) {
	a := validAccount()
	a.Email = "not-an-email"
	assert.Contains(t, fieldErrors(t, a.Validate()), "email")

	a.Email = ""
	assert.Equal(t, []string{"This field is required."}, fieldErrors(t, a.Validate())["email"])

	a.Email = strings.Repeat("a", 250) + "@example.com"
	assert.Contains(t, fieldErrors(t, a.Validate()), "email")
}

func TestNewAccount_FullNameLength(t *testing.T) {
	a := validAccount()
	a.FullName = strings.Repeat("x", 256)
	assert.Contains(t, fieldErrors(t, a.Validate()), "full_name")
}

func TestValidatePassword(t *testing.T) {
	assert.NoError(t, ValidatePassword("Secret#123"))
	assert.Error(t, ValidatePassword("weak"))
}

func TestNormalizeEmail(t *testing.T) {
	assert.Equal(t, "Asha@Example.COM", NormalizeEmail("  Asha@Example.COM "))
}
