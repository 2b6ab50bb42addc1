package employee

import (
	"regexp"

	errors "github.com/mudithakuruppu/employeemanagement-ui/internal"
	"github.com/mudithakuruppu/employeemanagement-ui/internal/core/common/validation"
)

const MaxNameLength = 100

var (
	namePattern  = regexp.MustCompile(`^[A-Za-z\s]+$`)
	emailPattern = regexp.MustCompile(`^[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}$`)
)

func departmentNames() []string {
	names := make([]string, len(Departments))
	for i, d := range Departments {
		names[i] = string(d)
	}
	return names
}

// ValidateInput checks a form submission before anything goes over the wire.
// The returned error carries one message per failing field.
func ValidateInput(in EmployeeInput) *errors.AppError {
	v := validation.NewValidator()
	v.Field("name", in.Name).
		Required("Name is required").
		Matches(namePattern, "Name can only contain letters and spaces", errors.ErrCodeInvalidName).
		MaxLength(MaxNameLength, "Name cannot exceed 100 characters", errors.ErrCodeNameTooLong)
	v.Field("email", in.Email).
		Required("Email is required").
		Matches(emailPattern, "Invalid email format", errors.ErrCodeInvalidEmail)
	v.Field("department", string(in.Department)).
		OneOf(departmentNames(), "Please select a valid department", errors.ErrCodeInvalidDepartment)
	return v.Validate()
}
