package employee_test

import (
	"strings"

	"github.com/mudithakuruppu/employeemanagement-ui/internal/employee"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("ValidateInput", func() {
	valid := employee.EmployeeInput{
		Name:       "Jane Doe",
		Email:      "jane.doe@example.com",
		Department: employee.DepartmentIT,
	}

	It("accepts a well-formed input", func() {
		Expect(employee.ValidateInput(valid)).To(BeNil())
	})

	It("reports required fields", func() {
		err := employee.ValidateInput(employee.EmployeeInput{Name: "   ", Department: employee.DepartmentHR})
		Expect(err).NotTo(BeNil())
		Expect(err.Fields()).To(Equal(map[string]string{
			"name":  "Name is required",
			"email": "Email is required",
		}))
	})

	It("rejects names with digits or punctuation", func() {
		in := valid
		in.Name = "R2-D2"
		Expect(employee.ValidateInput(in).Fields()).To(HaveKeyWithValue("name", "Name can only contain letters and spaces"))
	})

	It("rejects names longer than 100 characters", func() {
		in := valid
		in.Name = strings.Repeat("a", employee.MaxNameLength+1)
		Expect(employee.ValidateInput(in).Fields()).To(HaveKeyWithValue("name", "Name cannot exceed 100 characters"))

		in.Name = strings.Repeat("a", employee.MaxNameLength)
		Expect(employee.ValidateInput(in)).To(BeNil())
	})

	It("rejects a malformed email", func() {
		in := valid
		in.Email = "bad@@x"
		err := employee.ValidateInput(in)
		Expect(err.Fields()).To(Equal(map[string]string{"email": "Invalid email format"}))
	})

	It("rejects departments outside the fixed set", func() {
		in := valid
		in.Department = "Marketing"
		Expect(employee.ValidateInput(in).Fields()).To(HaveKeyWithValue("department", "Please select a valid department"))

		in.Department = ""
		Expect(employee.ValidateInput(in).Fields()).To(HaveKeyWithValue("department", "Please select a valid department"))
	})
})
