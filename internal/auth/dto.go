package auth

import "strings"

// LoginDTO is the body of POST /auth/login.
type LoginDTO struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// SignupDTO is the body of POST /auth/signup.
type SignupDTO struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// ValidationError represents a simple validation error from DTO validation.
type ValidationError struct {
	Msg string
}

func (v ValidationError) Error() string { return v.Msg }

// Validate checks required fields and returns a ValidationError on failure.
func (d LoginDTO) Validate() error {
	if strings.TrimSpace(d.Email) == "" {
		return ValidationError{Msg: "email is required"}
	}
	if d.Password == "" {
		return ValidationError{Msg: "password is required"}
	}
	return nil
}

func (d SignupDTO) Validate() error {
	if strings.TrimSpace(d.Name) == "" {
		return ValidationError{Msg: "name is required"}
	}
	return LoginDTO{Email: d.Email, Password: d.Password}.Validate()
}
