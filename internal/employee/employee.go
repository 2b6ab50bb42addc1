package employee

import (
	"strings"
	"time"

	employeeDatamodel "github.com/mudithakuruppu/employeemanagement-ui/internal/core/datamodel/employee"
)

type Department string

const (
	DepartmentHR         Department = "HR"
	DepartmentIT         Department = "IT"
	DepartmentFinance    Department = "Finance"
	DepartmentOperations Department = "Operations"
)

// Departments lists every department in display order.
var Departments = []Department{DepartmentHR, DepartmentIT, DepartmentFinance, DepartmentOperations}

func (d Department) IsValid() bool {
	for _, known := range Departments {
		if d == known {
			return true
		}
	}
	return false
}

// ParseDepartment matches case-insensitively so CLI input like "finance" works.
func ParseDepartment(s string) (Department, bool) {
	for _, known := range Departments {
		if strings.EqualFold(string(known), strings.TrimSpace(s)) {
			return known, true
		}
	}
	return Department(s), false
}

type Employee struct {
	ID         int64      `json:"id"`
	Name       string     `json:"name"`
	Email      string     `json:"email"`
	Department Department `json:"department"`
	CreatedAt  time.Time  `json:"createdAt"`
	UpdatedAt  time.Time  `json:"updatedAt"`
}

// EmployeeInput is what a create or edit form submits.
type EmployeeInput struct {
	Name       string     `json:"name"`
	Email      string     `json:"email"`
	Department Department `json:"department"`
}

func (e *Employee) ToInput() EmployeeInput {
	return EmployeeInput{
		Name:       e.Name,
		Email:      e.Email,
		Department: e.Department,
	}
}

func FromDataModel(e *employeeDatamodel.Employee) Employee {
	return Employee{
		ID:         e.ID,
		Name:       e.Name,
		Email:      e.Email,
		Department: Department(e.Department),
		CreatedAt:  e.CreatedAt.Time,
		UpdatedAt:  e.UpdatedAt.Time,
	}
}

func ToDataModel(e *Employee) *employeeDatamodel.Employee {
	return &employeeDatamodel.Employee{
		ID:         e.ID,
		Name:       e.Name,
		Email:      e.Email,
		Department: string(e.Department),
		CreatedAt:  employeeDatamodel.Timestamp{Time: e.CreatedAt},
		UpdatedAt:  employeeDatamodel.Timestamp{Time: e.UpdatedAt},
	}
}

func InputToDataModel(in EmployeeInput) employeeDatamodel.EmployeeInput {
	return employeeDatamodel.EmployeeInput{
		Name:       in.Name,
		Email:      in.Email,
		Department: string(in.Department),
	}
}
