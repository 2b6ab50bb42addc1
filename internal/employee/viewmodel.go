package employee

import (
	"context"
	"log/slog"
	"sync"

	appErrors "github.com/mudithakuruppu/employeemanagement-ui/internal"
)

// RemoteStore is the employee REST API as the view-model sees it. Create and
// Update may return a nil employee when the server answers without a body.
type RemoteStore interface {
	List(ctx context.Context) ([]Employee, error)
	Get(ctx context.Context, id int64) (*Employee, error)
	Create(ctx context.Context, in EmployeeInput) (*Employee, error)
	Update(ctx context.Context, id int64, in EmployeeInput) (*Employee, error)
	Delete(ctx context.Context, id int64) error
}

// Notifier surfaces transient user-facing messages.
type Notifier interface {
	Success(ctx context.Context, message string)
	Error(ctx context.Context, message string, cause error)
}

// Confirmer gates destructive operations. Returning false aborts them.
type Confirmer interface {
	Confirm(ctx context.Context, target Employee) (bool, error)
}

type ConfirmFunc func(ctx context.Context, target Employee) (bool, error)

func (f ConfirmFunc) Confirm(ctx context.Context, target Employee) (bool, error) {
	return f(ctx, target)
}

type noopNotifier struct{}

func (noopNotifier) Success(context.Context, string) {}

func (noopNotifier) Error(context.Context, string, error) {}

// ViewModel owns the local copy of the employee collection. Local state only
// changes after the remote store confirms a write.
//
// A Load that resolves after a newer one still replaces the collection; there
// is no request generation tracking.
type ViewModel struct {
	store    RemoteStore
	notifier Notifier
	logger   *slog.Logger

	mu        sync.RWMutex
	employees []Employee
	loading   bool
}

func NewViewModel(store RemoteStore, notifier Notifier, logger *slog.Logger) *ViewModel {
	if notifier == nil {
		notifier = noopNotifier{}
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &ViewModel{
		store:    store,
		notifier: notifier,
		logger:   logger,
	}
}

// Employees returns a copy of the base collection in server order.
func (vm *ViewModel) Employees() []Employee {
	vm.mu.RLock()
	defer vm.mu.RUnlock()
	out := make([]Employee, len(vm.employees))
	copy(out, vm.employees)
	return out
}

func (vm *ViewModel) Loading() bool {
	vm.mu.RLock()
	defer vm.mu.RUnlock()
	return vm.loading
}

func (vm *ViewModel) View(state ViewState) []Employee {
	return Derive(vm.Employees(), state)
}

func (vm *ViewModel) Find(id int64) (Employee, bool) {
	vm.mu.RLock()
	defer vm.mu.RUnlock()
	for _, e := range vm.employees {
		if e.ID == id {
			return e, true
		}
	}
	return Employee{}, false
}

// LoadFailedMessage is the notice shown when the list cannot be fetched.
const LoadFailedMessage = "Failed to fetch employees"

// Load replaces the base collection with the server's list. On failure the
// previous collection is kept.
func (vm *ViewModel) Load(ctx context.Context) error {
	return vm.LoadWithNotice(ctx, LoadFailedMessage)
}

// LoadWithNotice is Load with the failure notice chosen by the caller, so other
// views over the same collection can word their own error. An empty notice
// skips the notification.
func (vm *ViewModel) LoadWithNotice(ctx context.Context, notice string) error {
	vm.setLoading(true)
	defer vm.setLoading(false)

	employees, err := vm.store.List(ctx)
	if err != nil {
		vm.logger.Error("failed to fetch employees", "error", err)
		if notice != "" {
			vm.notifier.Error(ctx, notice, err)
		}
		return err
	}

	vm.mu.Lock()
	vm.employees = employees
	vm.mu.Unlock()

	vm.logger.Info("employees loaded", "count", len(employees))
	return nil
}

// Fetch reads one employee from the server, e.g. to prefill an edit form. The
// base collection is not touched.
func (vm *ViewModel) Fetch(ctx context.Context, id int64) (*Employee, error) {
	e, err := vm.store.Get(ctx, id)
	if err != nil {
		vm.logger.Error("failed to fetch employee", "error", err, "employee_id", id)
		vm.notifier.Error(ctx, "Failed to fetch employee details", err)
		return nil, err
	}
	return e, nil
}

func (vm *ViewModel) Create(ctx context.Context, in EmployeeInput) (*Employee, error) {
	if err := ValidateInput(in); err != nil {
		vm.logger.Debug("employee input rejected", "fields", err.Fields())
		return nil, err
	}

	created, err := vm.store.Create(ctx, in)
	if err != nil {
		return nil, vm.writeFailed(ctx, err, "Failed to add employee")
	}

	if created == nil {
		// nothing to append; resynchronise from the server instead
		vm.resync(ctx)
	} else {
		vm.mu.Lock()
		vm.employees = append(vm.employees, *created)
		vm.mu.Unlock()
		vm.logger.Info("employee created", "employee_id", created.ID)
	}

	vm.notifier.Success(ctx, "Employee added successfully")
	return created, nil
}

func (vm *ViewModel) Update(ctx context.Context, id int64, in EmployeeInput) (*Employee, error) {
	if err := ValidateInput(in); err != nil {
		vm.logger.Debug("employee input rejected", "employee_id", id, "fields", err.Fields())
		return nil, err
	}

	updated, err := vm.store.Update(ctx, id, in)
	if err != nil {
		return nil, vm.writeFailed(ctx, err, "Failed to update employee")
	}

	if updated == nil {
		vm.resync(ctx)
	} else {
		// identity is the id that was written, whatever the reply carries
		updated.ID = id
		if !vm.replace(*updated) {
			vm.logger.Debug("updated employee not in local collection", "employee_id", id)
		}
	}

	vm.notifier.Success(ctx, "Employee updated successfully")
	return updated, nil
}

// Delete asks confirm before calling the server. A nil confirmer or a declined
// confirmation issues no request.
func (vm *ViewModel) Delete(ctx context.Context, id int64, confirm Confirmer) error {
	if confirm == nil {
		return ErrConfirmationRequired
	}

	target, ok := vm.Find(id)
	if !ok {
		target = Employee{ID: id}
	}

	confirmed, err := confirm.Confirm(ctx, target)
	if err != nil {
		return err
	}
	if !confirmed {
		vm.logger.Debug("delete cancelled", "employee_id", id)
		return ErrDeleteCancelled
	}

	if err := vm.store.Delete(ctx, id); err != nil {
		vm.logger.Error("failed to delete employee", "error", err, "employee_id", id)
		vm.notifier.Error(ctx, "Failed to delete employee", err)
		return err
	}

	vm.mu.Lock()
	kept := vm.employees[:0:0]
	for _, e := range vm.employees {
		if e.ID != id {
			kept = append(kept, e)
		}
	}
	vm.employees = kept
	vm.mu.Unlock()

	vm.logger.Info("employee deleted", "employee_id", id)
	vm.notifier.Success(ctx, "Employee deleted successfully")
	return nil
}

func (vm *ViewModel) replace(updated Employee) bool {
	vm.mu.Lock()
	defer vm.mu.Unlock()
	for i := range vm.employees {
		if vm.employees[i].ID == updated.ID {
			vm.employees[i] = updated
			return true
		}
	}
	return false
}

// resync reloads after a write the server confirmed without a body. The write
// already succeeded, so a failed reload only leaves the list stale.
func (vm *ViewModel) resync(ctx context.Context) {
	if err := vm.LoadWithNotice(ctx, ""); err != nil {
		vm.logger.Warn("resync after write failed, local list is stale", "error", err)
	}
}

// writeFailed turns a duplicate-email rejection into a field error and
// reports anything else as a notification.
func (vm *ViewModel) writeFailed(ctx context.Context, err error, message string) error {
	if IsDuplicateEmail(err) {
		vm.logger.Warn("email already in use", "error", err)
		return emailInUse(err)
	}
	vm.logger.Error("employee write failed", "error", err, "notice", message)
	vm.notifier.Error(ctx, message, err)
	if appErr, ok := appErrors.IsAppError(err); ok {
		return appErr
	}
	return appErrors.NewInternalError(message, err)
}

func (vm *ViewModel) setLoading(loading bool) {
	vm.mu.Lock()
	vm.loading = loading
	vm.mu.Unlock()
}
