package employee

import (
	"errors"

	appErrors "github.com/mudithakuruppu/employeemanagement-ui/internal"
)

// DuplicateEmailMessage is the message the employee API sends when an email is taken.
const DuplicateEmailMessage = "Email already exists"

var (
	ErrConfirmationRequired = errors.New("employee: delete requires confirmation")
	ErrDeleteCancelled      = errors.New("employee: delete cancelled")
)

// IsDuplicateEmail reports whether a remote write failed because the email is
// already taken. The payload message is what identifies it, not the status.
func IsDuplicateEmail(err error) bool {
	appErr, ok := appErrors.IsAppError(err)
	return ok && appErr.Message == DuplicateEmailMessage
}

func emailInUse(cause error) *appErrors.AppError {
	return appErrors.NewValidationFieldError("email", "This email is already in use", appErrors.ErrCodeEmailInUse).
		WithCause(cause)
}
