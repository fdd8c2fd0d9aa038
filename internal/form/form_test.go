package form

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"mapup/internal/model"
)

func validForm() CreateUserForm {
	return CreateUserForm{
		FullName: "Sudhakar Swain",
		Username: "sudhakar27",
		Email:    "sudhakar@mapup.ai",
		Password: "password1",
		Role:     model.RoleManager,
	}
}

func TestValidEmail(t *testing.T) {
	accept := []string{"a@b.co", "first.last@mail.example.com", "x-y_z@d-1.info"}
	reject := []string{"a@b", "notanemail", "", "a@b.c", "a@b.toolong", "a b@c.co", "@b.co"}

	for _, s := range accept {
		assert.True(t, ValidEmail(s), s)
	}
	for _, s := range reject {
		assert.False(t, ValidEmail(s), s)
	}
}

func TestCreateUser_Valid(t *testing.T) {
	v := NewValidator()
	assert.Empty(t, v.CreateUser(validForm()))
}

func TestCreateUser_AccumulatesAllFieldErrors(t *testing.T) {
	v := NewValidator()
	errs := v.CreateUser(CreateUserForm{
		FullName: "   ",
		Username: "",
		Email:    "a@b",
		Password: "short",
		Role:     model.RoleUser,
	})

	assert.Equal(t, map[string]string{
		"fullName": "Full Name is required",
		"username": "Username is required",
		"email":    "Invalid email",
		"password": "Password must be at least 8 characters",
	}, errs)
}

func TestCreateUser_SingleFieldErrors(t *testing.T) {
	v := NewValidator()
	tests := []struct {
		name   string
		mutate func(*CreateUserForm)
		field  string
	}{
		{"blank full name", func(f *CreateUserForm) { f.FullName = "\t" }, "fullName"},
		{"blank username", func(f *CreateUserForm) { f.Username = " " }, "username"},
		{"bad email", func(f *CreateUserForm) { f.Email = "notanemail" }, "email"},
		{"seven char password", func(f *CreateUserForm) { f.Password = "1234567" }, "password"},
		{"unknown role", func(f *CreateUserForm) { f.Role = "owner" }, "role"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := validForm()
			tt.mutate(&f)
			errs := v.CreateUser(f)
			assert.Len(t, errs, 1)
			assert.Contains(t, errs, tt.field)
		})
	}
}

func TestCreateUser_PasswordCountsCharacters(t *testing.T) {
	v := NewValidator()
	f := validForm()
	f.Password = "pässwörd"
	assert.Empty(t, v.CreateUser(f))
}

func TestNormalize_DefaultsRole(t *testing.T) {
	f := validForm()
	f.Role = ""
	f.Normalize()
	assert.Equal(t, model.RoleUser, f.Role)
	assert.Empty(t, NewValidator().CreateUser(f))
}
