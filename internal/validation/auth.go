package validation

import (
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
)

var (
	Password = StringRule{
		Field: "password", Required: true, Min: 6,
		RequiredMsg: "Password must be at least 6 characters",
		MinMsg:      "Password must be at least 6 characters",
	}
	SignUpFullName = StringRule{
		Field: "full_name", Required: true, Trim: true, Min: 2, Max: 100,
		RequiredMsg: "Name must be at least 2 characters",
		MinMsg:      "Name must be at least 2 characters",
		MaxMsg:      "Name must be less than 100 characters",
	}
)

var (
	validateOnce sync.Once
	validate     *validator.Validate
)

func engine() *validator.Validate {
	validateOnce.Do(func() { validate = validator.New() })
	return validate
}

// Email checks that email (after trimming) is a well-formed address.
func Email(email string) *FieldError {
	if err := engine().Var(strings.TrimSpace(email), "required,email"); err != nil {
		return &FieldError{Field: "email", Message: "Invalid email address"}
	}
	return nil
}

// Login validates login credentials.
func Login(email, password string) Errors {
	var errs Errors
	errs.add(Email(email))
	errs.add(Password.Check(&password))
	return errs
}

// SignUpInput is the sign-up form.
type SignUpInput struct {
	FullName        string
	Email           string
	Password        string
	ConfirmPassword string
}

// SignUp validates the sign-up form including password confirmation.
func SignUp(in SignUpInput) Errors {
	var errs Errors
	errs.add(SignUpFullName.Check(&in.FullName))
	errs.add(Email(in.Email))
	errs.add(Password.Check(&in.Password))
	if in.Password != in.ConfirmPassword {
		errs = append(errs, FieldError{Field: "confirm_password", Message: "Passwords don't match"})
	}
	return errs
}
