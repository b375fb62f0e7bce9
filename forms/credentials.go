package forms

import (
	"errors"
	"fmt"
	"reflect"
	"sort"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
)

type LoginForm struct {
	Email    string `form:"email" validate:"required,email"`
	Password string `form:"password" validate:"required"`
}

type SignupForm struct {
	Username        string `form:"username" validate:"required,min=3,max=20,username"`
	Email           string `form:"email" validate:"required,email"`
	Password        string `form:"password" validate:"required,password"`
	ConfirmPassword string `form:"confirmPassword" validate:"required,eqfield=Password"`
}

type ResetForm struct {
	Email string `form:"email" validate:"required,email"`
}

// Normalize trims and lower-cases the email.
func (f *LoginForm) Normalize() { f.Email = SanitizeEmail(f.Email) }

// Normalize trims the username and email and lower-cases the email.
// Passwords are left untouched.
func (f *SignupForm) Normalize() {
	f.Username = strings.TrimSpace(f.Username)
	f.Email = SanitizeEmail(f.Email)
}

func (f *ResetForm) Normalize() { f.Email = SanitizeEmail(f.Email) }

func (f LoginForm) Validate() error  { return validateForm(f) }
func (f SignupForm) Validate() error { return validateForm(f) }
func (f ResetForm) Validate() error  { return validateForm(f) }

// FieldErrors maps a form field to the first message shown for it.
type FieldErrors map[string]string

func (fe FieldErrors) Error() string {
	fields := make([]string, 0, len(fe))
	for field := range fe {
		fields = append(fields, field)
	}
	sort.Strings(fields)

	parts := make([]string, 0, len(fields))
	for _, field := range fields {
		parts = append(parts, fmt.Sprintf("%s: %s", field, fe[field]))
	}
	return "invalid form: " + strings.Join(parts, "; ")
}

var formValidator = sync.OnceValue(func() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		return f.Tag.Get("form")
	})
	_ = v.RegisterValidation("username", func(fl validator.FieldLevel) bool {
		name := fl.Field().String()
		return name != "" && SanitizeUsername(name) == name
	})
	_ = v.RegisterValidation("notblank", func(fl validator.FieldLevel) bool {
		return strings.TrimSpace(fl.Field().String()) != ""
	})
	_ = v.RegisterValidation("password", func(fl validator.FieldLevel) bool {
		return ValidatePassword(fl.Field().String()).Valid
	})
	return v
})

func validateForm(form any) error {
	err := formValidator().Struct(form)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}

	out := make(FieldErrors, len(verrs))
	for _, fe := range verrs {
		if _, seen := out[fe.Field()]; seen {
			continue
		}
		out[fe.Field()] = message(fe)
	}
	return out
}

func message(fe validator.FieldError) string {
	switch fe.Field() + "/" + fe.Tag() {
	case "email/required":
		return "Email is required"
	case "email/email":
		return "Enter a valid email address"
	case "password/required":
		return "Password is required"
	case "password/password":
		return PasswordError(fmt.Sprint(fe.Value()))
	case "username/required":
		return "Username is required"
	case "username/min":
		return "Username must be at least 3 characters"
	case "username/max":
		return "Username must be 20 characters or less"
	case "username/username":
		return "Username can only contain letters, numbers, and underscores"
	case "confirmPassword/required":
		return "Please confirm your password"
	case "confirmPassword/eqfield":
		return "Passwords do not match"
	case "name/notblank":
		return "League name is required"
	case "name/min":
		return "League name must be at least 3 characters"
	case "name/max":
		return "League name must be less than 50 characters"
	case "description/max":
		return "Description must be less than 500 characters"
	case "maxTeams/min", "maxTeams/max":
		return "Max teams must be between 2 and 16"
	}
	return fmt.Sprintf("%s failed %s validation", fe.Field(), fe.Tag())
}
