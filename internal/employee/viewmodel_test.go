package employee_test

import (
	"context"
	"errors"
	"sync"

	"github.com/mudithakuruppu/employeemanagement-ui/internal"
	"github.com/mudithakuruppu/employeemanagement-ui/internal/employee"
	"github.com/mudithakuruppu/employeemanagement-ui/pkg/logger"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

// MockStore implements employee.RemoteStore for testing
type MockStore struct {
	mu         sync.Mutex
	employees  []employee.Employee
	nextID     int64
	calls      map[string]int
	shouldFail bool
	failError  error
	emptyBody  bool
	zeroID     bool
	listErr    error
	onList     func()
}

func NewMockStore(seed ...employee.Employee) *MockStore {
	return &MockStore{
		employees: append([]employee.Employee(nil), seed...),
		nextID:    100,
		calls:     make(map[string]int),
	}
}

func (m *MockStore) record(op string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls[op]++
	if m.shouldFail {
		return m.failError
	}
	return nil
}

func (m *MockStore) List(ctx context.Context) ([]employee.Employee, error) {
	if err := m.record("list"); err != nil {
		return nil, err
	}
	if m.onList != nil {
		m.onList()
	}
	if m.listErr != nil {
		return nil, m.listErr
	}
	return append([]employee.Employee(nil), m.employees...), nil
}

func (m *MockStore) Get(ctx context.Context, id int64) (*employee.Employee, error) {
	if err := m.record("get"); err != nil {
		return nil, err
	}
	for _, e := range m.employees {
		if e.ID == id {
			found := e
			return &found, nil
		}
	}
	return nil, internal.NewNotFoundError("Employee not found", internal.ErrCodeEmployeeNotFound)
}

func (m *MockStore) Create(ctx context.Context, in employee.EmployeeInput) (*employee.Employee, error) {
	if err := m.record("create"); err != nil {
		return nil, err
	}
	m.nextID++
	created := employee.Employee{ID: m.nextID, Name: in.Name, Email: in.Email, Department: in.Department}
	m.employees = append(m.employees, created)
	if m.emptyBody {
		return nil, nil
	}
	return &created, nil
}

func (m *MockStore) Update(ctx context.Context, id int64, in employee.EmployeeInput) (*employee.Employee, error) {
	if err := m.record("update"); err != nil {
		return nil, err
	}
	for i := range m.employees {
		if m.employees[i].ID == id {
			m.employees[i].Name = in.Name
			m.employees[i].Email = in.Email
			m.employees[i].Department = in.Department
			if m.emptyBody {
				return nil, nil
			}
			updated := m.employees[i]
			return &updated, nil
		}
	}
	return nil, internal.NewNotFoundError("Employee not found", internal.ErrCodeEmployeeNotFound)
}

func (m *MockStore) Delete(ctx context.Context, id int64) error {
	if err := m.record("delete"); err != nil {
		return err
	}
	kept := m.employees[:0]
	for _, e := range m.employees {
		if e.ID != id {
			kept = append(kept, e)
		}
	}
	m.employees = kept
	return nil
}

// Helper methods for testing
func (m *MockStore) SetShouldFail(shouldFail bool, err error) {
	m.shouldFail = shouldFail
	m.failError = err
}

func (m *MockStore) Calls(op string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls[op]
}

func (m *MockStore) TotalCalls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	total := 0
	for _, n := range m.calls {
		total += n
	}
	return total
}

type notice struct {
	kind    string
	message string
}

type RecordingNotifier struct {
	notices []notice
}

func (n *RecordingNotifier) Success(_ context.Context, message string) {
	n.notices = append(n.notices, notice{kind: "success", message: message})
}

func (n *RecordingNotifier) Error(_ context.Context, message string, _ error) {
	n.notices = append(n.notices, notice{kind: "error", message: message})
}

func confirmWith(answer bool, asked *[]employee.Employee) employee.Confirmer {
	return employee.ConfirmFunc(func(_ context.Context, target employee.Employee) (bool, error) {
		*asked = append(*asked, target)
		return answer, nil
	})
}

var _ = Describe("ViewModel", func() {
	var (
		ctx      context.Context
		store    *MockStore
		notifier *RecordingNotifier
		vm       *employee.ViewModel
		amy      employee.Employee
		bob      employee.Employee
	)

	BeforeEach(func() {
		ctx = context.Background()
		amy = employee.Employee{ID: 1, Name: "Amy", Email: "amy@x.io", Department: employee.DepartmentHR}
		bob = employee.Employee{ID: 2, Name: "Bob", Email: "bob@x.io", Department: employee.DepartmentIT}
		store = NewMockStore(amy, bob)
		notifier = &RecordingNotifier{}
		vm = employee.NewViewModel(store, notifier, logger.Discard())
	})

	Describe("Load", func() {
		It("replaces the collection with the server list", func() {
			Expect(vm.Load(ctx)).To(Succeed())
			Expect(vm.Employees()).To(Equal([]employee.Employee{amy, bob}))
			Expect(vm.Loading()).To(BeFalse())
		})

		It("keeps the previous collection and notifies on failure", func() {
			Expect(vm.Load(ctx)).To(Succeed())
			store.SetShouldFail(true, errors.New("connection refused"))

			Expect(vm.Load(ctx)).To(HaveOccurred())
			Expect(vm.Employees()).To(Equal([]employee.Employee{amy, bob}))
			Expect(notifier.notices).To(ConsistOf(notice{kind: "error", message: "Failed to fetch employees"}))
		})

		It("reports loading only while the request is in flight", func() {
			var during []bool
			store.onList = func() { during = append(during, vm.Loading()) }

			Expect(vm.Load(ctx)).To(Succeed())
			Expect(vm.Loading()).To(BeFalse())

			store.listErr = errors.New("connection refused")
			Expect(vm.Load(ctx)).To(HaveOccurred())
			Expect(vm.Loading()).To(BeFalse())

			Expect(during).To(Equal([]bool{true, true}))
		})

		It("uses the caller's notice when one is given", func() {
			store.SetShouldFail(true, errors.New("connection refused"))

			Expect(vm.LoadWithNotice(ctx, "Failed to fetch employee data for reports")).To(HaveOccurred())
			Expect(notifier.notices).To(ConsistOf(notice{kind: "error", message: "Failed to fetch employee data for reports"}))
		})
	})

	Describe("Fetch", func() {
		It("returns the server copy without touching the collection", func() {
			e, err := vm.Fetch(ctx, 2)
			Expect(err).NotTo(HaveOccurred())
			Expect(e.Name).To(Equal("Bob"))
			Expect(vm.Employees()).To(BeEmpty())
		})

		It("notifies when the employee cannot be read", func() {
			_, err := vm.Fetch(ctx, 42)
			Expect(err).To(HaveOccurred())
			Expect(notifier.notices).To(ConsistOf(notice{kind: "error", message: "Failed to fetch employee details"}))
		})
	})

	Describe("Create", func() {
		BeforeEach(func() {
			Expect(vm.Load(ctx)).To(Succeed())
		})

		It("appends the created employee after the server confirms", func() {
			created, err := vm.Create(ctx, employee.EmployeeInput{Name: "Cara", Email: "cara@x.io", Department: employee.DepartmentFinance})
			Expect(err).NotTo(HaveOccurred())
			Expect(created.ID).To(Equal(int64(101)))
			Expect(ids(vm.Employees())).To(Equal([]int64{1, 2, 101}))
			Expect(notifier.notices).To(ConsistOf(notice{kind: "success", message: "Employee added successfully"}))
		})

		It("issues no request for invalid input", func() {
			before := store.TotalCalls()
			_, err := vm.Create(ctx, employee.EmployeeInput{Name: "Cara", Email: "bad@@x", Department: employee.DepartmentIT})
			Expect(internal.FieldErrors(err)).To(Equal(map[string]string{"email": "Invalid email format"}))
			Expect(store.TotalCalls()).To(Equal(before))
			Expect(vm.Employees()).To(HaveLen(2))
			Expect(notifier.notices).To(BeEmpty())
		})

		It("maps a duplicate email rejection onto the email field", func() {
			store.SetShouldFail(true, internal.NewRemoteError(409, employee.DuplicateEmailMessage))

			_, err := vm.Create(ctx, employee.EmployeeInput{Name: "Amy Two", Email: "amy@x.io", Department: employee.DepartmentHR})
			Expect(internal.IsValidation(err)).To(BeTrue())
			Expect(internal.FieldErrors(err)).To(Equal(map[string]string{"email": "This email is already in use"}))
			Expect(vm.Employees()).To(Equal([]employee.Employee{amy, bob}))
			Expect(notifier.notices).To(BeEmpty())
		})

		It("leaves the collection alone and notifies on other failures", func() {
			store.SetShouldFail(true, internal.NewRemoteError(500, ""))

			_, err := vm.Create(ctx, employee.EmployeeInput{Name: "Cara", Email: "cara@x.io", Department: employee.DepartmentIT})
			Expect(err).To(HaveOccurred())
			Expect(internal.IsValidation(err)).To(BeFalse())
			Expect(vm.Employees()).To(Equal([]employee.Employee{amy, bob}))
			Expect(notifier.notices).To(ConsistOf(notice{kind: "error", message: "Failed to add employee"}))
		})

		It("reloads when the server answers without a body", func() {
			store.emptyBody = true
			created, err := vm.Create(ctx, employee.EmployeeInput{Name: "Cara", Email: "cara@x.io", Department: employee.DepartmentIT})
			Expect(err).NotTo(HaveOccurred())
			Expect(created).To(BeNil())
			Expect(store.Calls("list")).To(Equal(2))
			Expect(vm.Employees()).To(HaveLen(3))
		})

		It("still reports the write when the reload after an empty body fails", func() {
			store.emptyBody = true
			store.listErr = errors.New("connection reset")

			created, err := vm.Create(ctx, employee.EmployeeInput{Name: "Cara", Email: "cara@x.io", Department: employee.DepartmentIT})
			Expect(err).NotTo(HaveOccurred())
			Expect(created).To(BeNil())
			Expect(vm.Employees()).To(Equal([]employee.Employee{amy, bob}))
			Expect(notifier.notices).To(ConsistOf(notice{kind: "success", message: "Employee added successfully"}))
		})
	})

	Describe("Update", func() {
		BeforeEach(func() {
			Expect(vm.Load(ctx)).To(Succeed())
		})

		It("replaces the matching entry in place", func() {
			_, err := vm.Update(ctx, 1, employee.EmployeeInput{Name: "Amy Smith", Email: "amy@x.io", Department: employee.DepartmentOperations})
			Expect(err).NotTo(HaveOccurred())

			rows := vm.Employees()
			Expect(ids(rows)).To(Equal([]int64{1, 2}))
			Expect(rows[0].Name).To(Equal("Amy Smith"))
			Expect(rows[0].Department).To(Equal(employee.DepartmentOperations))
			Expect(rows[1]).To(Equal(bob))
			Expect(notifier.notices).To(ConsistOf(notice{kind: "success", message: "Employee updated successfully"}))
		})

		It("does not change local state when the write fails", func() {
			store.SetShouldFail(true, internal.NewRemoteError(404, "Employee not found"))

			_, err := vm.Update(ctx, 1, employee.EmployeeInput{Name: "Amy Smith", Email: "amy@x.io", Department: employee.DepartmentHR})
			Expect(err).To(HaveOccurred())
			Expect(vm.Employees()).To(Equal([]employee.Employee{amy, bob}))
			Expect(notifier.notices).To(ConsistOf(notice{kind: "error", message: "Failed to update employee"}))
		})

		It("maps a duplicate email rejection onto the email field", func() {
			store.SetShouldFail(true, internal.NewRemoteError(400, employee.DuplicateEmailMessage))

			_, err := vm.Update(ctx, 2, employee.EmployeeInput{Name: "Bob", Email: "amy@x.io", Department: employee.DepartmentIT})
			Expect(internal.FieldErrors(err)).To(HaveKeyWithValue("email", "This email is already in use"))
			Expect(vm.Employees()).To(Equal([]employee.Employee{amy, bob}))
		})

		It("keys the replacement on the written id when the reply omits it", func() {
			store.zeroID = true

			updated, err := vm.Update(ctx, 1, employee.EmployeeInput{Name: "Amelia", Email: "amy@x.io", Department: employee.DepartmentHR})
			Expect(err).NotTo(HaveOccurred())
			Expect(updated.ID).To(Equal(int64(1)))

			found, ok := vm.Find(1)
			Expect(ok).To(BeTrue())
			Expect(found.Name).To(Equal("Amelia"))
			Expect(ids(vm.Employees())).To(Equal([]int64{1, 2}))
		})

		It("still reports the write when the reload after an empty body fails", func() {
			store.emptyBody = true
			store.listErr = errors.New("connection reset")

			_, err := vm.Update(ctx, 2, employee.EmployeeInput{Name: "Robert", Email: "bob@x.io", Department: employee.DepartmentIT})
			Expect(err).NotTo(HaveOccurred())
			Expect(notifier.notices).To(ConsistOf(notice{kind: "success", message: "Employee updated successfully"}))
		})
	})

	Describe("Delete", func() {
		BeforeEach(func() {
			Expect(vm.Load(ctx)).To(Succeed())
		})

		It("requires a confirmer", func() {
			err := vm.Delete(ctx, 1, nil)
			Expect(err).To(MatchError(employee.ErrConfirmationRequired))
			Expect(store.Calls("delete")).To(Equal(0))
		})

		It("issues no request when the confirmation is declined", func() {
			var asked []employee.Employee
			err := vm.Delete(ctx, 1, confirmWith(false, &asked))
			Expect(err).To(MatchError(employee.ErrDeleteCancelled))
			Expect(asked).To(Equal([]employee.Employee{amy}))
			Expect(store.Calls("delete")).To(Equal(0))
			Expect(vm.Employees()).To(HaveLen(2))
		})

		It("removes only the deleted id once confirmed", func() {
			var asked []employee.Employee
			Expect(vm.Delete(ctx, 1, confirmWith(true, &asked))).To(Succeed())
			Expect(vm.Employees()).To(Equal([]employee.Employee{bob}))
			Expect(notifier.notices).To(ConsistOf(notice{kind: "success", message: "Employee deleted successfully"}))
		})

		It("keeps the row when the server refuses", func() {
			store.SetShouldFail(true, internal.NewRemoteError(500, ""))

			var asked []employee.Employee
			Expect(vm.Delete(ctx, 2, confirmWith(true, &asked))).To(HaveOccurred())
			Expect(vm.Employees()).To(Equal([]employee.Employee{amy, bob}))
			Expect(notifier.notices).To(ConsistOf(notice{kind: "error", message: "Failed to delete employee"}))
		})
	})

	It("derives the view from the loaded collection", func() {
		Expect(vm.Load(ctx)).To(Succeed())
		state := employee.DefaultViewState()
		state.SortDirection = employee.Descending
		Expect(ids(vm.View(state))).To(Equal([]int64{2, 1}))
	})
})
