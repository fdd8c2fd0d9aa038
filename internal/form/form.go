// Package form declares the dashboard's input forms and their validation.
package form

import (
	"errors"
	"reflect"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"

	"mapup/internal/model"
)

// emailPattern accepts local@domain.tld shapes with a 2-4 character final label.
var emailPattern = regexp.MustCompile(`^[\w.-]+@([\w-]+\.)+[\w-]{2,4}$`)

// LoginForm is posted by the login page. The backend decides whether the
// credentials are acceptable, so nothing is validated here.
type LoginForm struct {
	Username     string `form:"username" json:"username"`
	Password     string `form:"password" json:"password"`
	KeepLoggedIn bool   `form:"keepLoggedIn" json:"keepLoggedIn"`
}

// CreateUserForm is posted by the user creation dialog.
type CreateUserForm struct {
	FullName string     `form:"fullName" json:"fullName" validate:"present"`
	Username string     `form:"username" json:"username" validate:"present"`
	Email    string     `form:"email" json:"email" validate:"simple_email"`
	Password string     `form:"password" json:"password" validate:"min=8"`
	Role     model.Role `form:"role" json:"role" validate:"dashboard_role"`
}

// Normalize fills defaults before validation.
func (f *CreateUserForm) Normalize() {
	if f.Role == "" {
		f.Role = model.RoleUser
	}
}

var messages = map[string]string{
	"fullName": "Full Name is required",
	"username": "Username is required",
	"email":    "Invalid email",
	"password": "Password must be at least 8 characters",
	"role":     "Invalid role",
}

// Validator wraps go-playground/validator with the dashboard's custom tags.
type Validator struct {
	v *validator.Validate
}

// NewValidator registers the custom tags and reports fields by their form name.
func NewValidator() *Validator {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("form"), ",", 2)[0]
		if name == "" || name == "-" {
			return fld.Name
		}
		return name
	})
	_ = v.RegisterValidation("present", func(fl validator.FieldLevel) bool {
		return strings.TrimSpace(fl.Field().String()) != ""
	})
	_ = v.RegisterValidation("simple_email", func(fl validator.FieldLevel) bool {
		return ValidEmail(fl.Field().String())
	})
	_ = v.RegisterValidation("dashboard_role", func(fl validator.FieldLevel) bool {
		return model.Role(fl.Field().String()).Valid()
	})
	return &Validator{v: v}
}

// Validate checks any tagged struct. It satisfies echo.Validator.
func (cv *Validator) Validate(i interface{}) error {
	return cv.v.Struct(i)
}

// CreateUser runs every check on f and returns a field→message map, empty
// when the form may be submitted.
func (cv *Validator) CreateUser(f CreateUserForm) map[string]string {
	errs := map[string]string{}
	err := cv.v.Struct(f)
	if err == nil {
		return errs
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		errs["form"] = err.Error()
		return errs
	}
	for _, fe := range verrs {
		field := fe.Field()
		if msg, ok := messages[field]; ok {
			errs[field] = msg
		} else {
			errs[field] = fe.Error()
		}
	}
	return errs
}

// ValidEmail reports whether s looks like local@domain.tld.
func ValidEmail(s string) bool {
	return emailPattern.MatchString(s)
}
