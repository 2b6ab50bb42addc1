package employee_test

import (
	"time"

	"github.com/mudithakuruppu/employeemanagement-ui/internal/employee"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

func ids(rows []employee.Employee) []int64 {
	out := make([]int64, len(rows))
	for i, e := range rows {
		out[i] = e.ID
	}
	return out
}

var _ = Describe("Derive", func() {
	var base []employee.Employee

	BeforeEach(func() {
		day := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
		base = []employee.Employee{
			{ID: 1, Name: "Bob", Email: "bob@x.io", Department: employee.DepartmentIT, CreatedAt: day},
			{ID: 2, Name: "Amy", Email: "amy@x.io", Department: employee.DepartmentHR, CreatedAt: day.AddDate(0, 0, 2)},
			{ID: 3, Name: "Cara", Email: "cara@bob.io", Department: employee.DepartmentIT, CreatedAt: day.AddDate(0, 0, 1)},
			{ID: 4, Name: "Amy", Email: "amy2@x.io", Department: employee.DepartmentFinance, CreatedAt: day},
		}
	})

	It("sorts by name ascending by default", func() {
		view := employee.Derive(base, employee.DefaultViewState())
		Expect(ids(view)).To(Equal([]int64{2, 4, 1, 3}))
	})

	It("keeps the base order of ties in both directions", func() {
		state := employee.DefaultViewState()
		state.SortDirection = employee.Descending
		view := employee.Derive(base, state)
		Expect(ids(view)).To(Equal([]int64{3, 1, 2, 4}))

		state.SortKey = employee.SortByCreatedAt
		Expect(ids(employee.Derive(base, state))).To(Equal([]int64{2, 3, 1, 4}))
		state.SortDirection = employee.Ascending
		Expect(ids(employee.Derive(base, state))).To(Equal([]int64{1, 4, 3, 2}))
	})

	It("filters by department and search term together", func() {
		state := employee.DefaultViewState()
		state.Department = employee.DepartmentFilter(employee.DepartmentIT)
		state.SearchTerm = "BOB"
		Expect(ids(employee.Derive(base, state))).To(Equal([]int64{1, 3}))
	})

	It("matches the search term against name or email only", func() {
		state := employee.DefaultViewState()
		state.SearchTerm = "finance"
		Expect(employee.Derive(base, state)).To(BeEmpty())
	})

	It("never modifies the base collection", func() {
		before := append([]employee.Employee(nil), base...)
		state := employee.DefaultViewState()
		state.SortKey = employee.SortByID
		state.SortDirection = employee.Descending
		_ = employee.Derive(base, state)
		Expect(base).To(Equal(before))
	})

	It("returns every row that satisfies the predicate", func() {
		state := employee.DefaultViewState()
		state.SearchTerm = "amy"
		view := employee.Derive(base, state)
		Expect(view).To(HaveLen(2))
		for _, e := range view {
			Expect(e.Name).To(Equal("Amy"))
		}
	})
})

var _ = Describe("ViewState", func() {
	It("toggles direction when the same key is chosen again", func() {
		state := employee.DefaultViewState().Toggle(employee.SortByName)
		Expect(state.SortDirection).To(Equal(employee.Descending))
		Expect(state.Toggle(employee.SortByName).SortDirection).To(Equal(employee.Ascending))
	})

	It("starts ascending on a new key", func() {
		state := employee.DefaultViewState().Toggle(employee.SortByName).Toggle(employee.SortByEmail)
		Expect(state.SortKey).To(Equal(employee.SortByEmail))
		Expect(state.SortDirection).To(Equal(employee.Ascending))
	})

	It("parses filters and sort keys", func() {
		f, err := employee.ParseDepartmentFilter("finance")
		Expect(err).NotTo(HaveOccurred())
		Expect(f).To(Equal(employee.DepartmentFilter(employee.DepartmentFinance)))

		f, err = employee.ParseDepartmentFilter("")
		Expect(err).NotTo(HaveOccurred())
		Expect(f).To(Equal(employee.AllDepartments))

		_, err = employee.ParseDepartmentFilter("Marketing")
		Expect(err).To(HaveOccurred())

		k, err := employee.ParseSortKey("createdat")
		Expect(err).NotTo(HaveOccurred())
		Expect(k).To(Equal(employee.SortByCreatedAt))

		_, err = employee.ParseSortKey("salary")
		Expect(err).To(HaveOccurred())
	})
})

var _ = Describe("Paginate", func() {
	rows := func(n int) []employee.Employee {
		out := make([]employee.Employee, n)
		for i := range out {
			out[i] = employee.Employee{ID: int64(i + 1)}
		}
		return out
	}

	It("slices the requested page", func() {
		page := employee.Paginate(rows(7), 2, 3)
		Expect(ids(page.Items)).To(Equal([]int64{4, 5, 6}))
		Expect(page.TotalPages).To(Equal(3))
		Expect(page.Total).To(Equal(7))
	})

	It("clamps a page past the end to the last page", func() {
		page := employee.Paginate(rows(7), 9, 3)
		Expect(page.Page).To(Equal(3))
		Expect(page.TotalPages).To(Equal(3))
		Expect(page.Items).To(HaveLen(1))

		page = employee.Paginate(rows(2), 5, 3)
		Expect(page.Page).To(Equal(1))
		Expect(page.Items).To(HaveLen(2))
	})

	It("keeps page one for an empty view", func() {
		page := employee.Paginate(nil, 4, 10)
		Expect(page.Page).To(Equal(1))
		Expect(page.TotalPages).To(Equal(1))
		Expect(page.Items).To(BeEmpty())
	})

	It("returns everything when perPage is not positive", func() {
		page := employee.Paginate(rows(4), 3, 0)
		Expect(page.Items).To(HaveLen(4))
		Expect(page.Page).To(Equal(1))
	})
})
