package rest

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/mudithakuruppu/employeemanagement-ui/internal"
	employeeDatamodel "github.com/mudithakuruppu/employeemanagement-ui/internal/core/datamodel/employee"
	"github.com/mudithakuruppu/employeemanagement-ui/internal/employee"
	"github.com/mudithakuruppu/employeemanagement-ui/internal/transport"
)

const employeesPath = "/employees"

// Client talks to the employee CRUD API.
type Client struct {
	*transport.BaseClient
}

func NewClient(base *transport.BaseClient) employee.RemoteStore {
	return &Client{BaseClient: base}
}

func NewClientFromURL(baseURL string, httpClient *http.Client, logger *slog.Logger) employee.RemoteStore {
	return NewClient(transport.NewBaseClient(baseURL, httpClient, logger))
}

func (c *Client) List(ctx context.Context) ([]employee.Employee, error) {
	var rows []employeeDatamodel.Employee
	if _, err := c.DoJSON(ctx, http.MethodGet, employeesPath, nil, &rows); err != nil {
		return nil, err
	}

	employees := make([]employee.Employee, 0, len(rows))
	for i := range rows {
		employees = append(employees, employee.FromDataModel(&rows[i]))
	}
	return employees, nil
}

func (c *Client) Get(ctx context.Context, id int64) (*employee.Employee, error) {
	var row employeeDatamodel.Employee
	decoded, err := c.DoJSON(ctx, http.MethodGet, employeePath(id), nil, &row)
	if err != nil {
		return nil, employeeError(err)
	}
	if !decoded {
		return nil, fmt.Errorf("employee %d: empty response", id)
	}
	e := employee.FromDataModel(&row)
	return &e, nil
}

func (c *Client) Create(ctx context.Context, in employee.EmployeeInput) (*employee.Employee, error) {
	var row employeeDatamodel.Employee
	decoded, err := c.DoJSON(ctx, http.MethodPost, employeesPath, employee.InputToDataModel(in), &row)
	if err != nil {
		return nil, err
	}
	if !decoded {
		c.Logger.Debug("create returned no body")
		return nil, nil
	}
	e := employee.FromDataModel(&row)
	return &e, nil
}

func (c *Client) Update(ctx context.Context, id int64, in employee.EmployeeInput) (*employee.Employee, error) {
	var row employeeDatamodel.Employee
	decoded, err := c.DoJSON(ctx, http.MethodPut, employeePath(id), employee.InputToDataModel(in), &row)
	if err != nil {
		return nil, employeeError(err)
	}
	if !decoded {
		c.Logger.Debug("update returned no body", "employee_id", id)
		return nil, nil
	}
	e := employee.FromDataModel(&row)
	return &e, nil
}

func (c *Client) Delete(ctx context.Context, id int64) error {
	_, err := c.DoJSON(ctx, http.MethodDelete, employeePath(id), nil, nil)
	return employeeError(err)
}

func employeePath(id int64) string {
	return fmt.Sprintf("%s/%d", employeesPath, id)
}

// employeeError tags a 404 on an employee resource with the employee code.
func employeeError(err error) error {
	if appErr, ok := internal.IsAppError(err); ok && appErr.Type == internal.ErrorTypeNotFound {
		appErr.Code = internal.ErrCodeEmployeeNotFound
	}
	return err
}
