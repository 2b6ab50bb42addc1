package cmd

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/mudithakuruppu/employeemanagement-ui/internal"
	"github.com/mudithakuruppu/employeemanagement-ui/internal/employee"
	"github.com/spf13/cobra"
)

const tableTimeLayout = "2006-01-02 15:04"

var listOpts struct {
	search     string
	department string
	sortKey    string
	desc       bool
	page       int
	perPage    int
}

var formOpts struct {
	name       string
	email      string
	department string
}

var assumeYes bool

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List employees with search, department filter and sorting",
	RunE: withDependencies(func(cmd *cobra.Command, _ []string, deps *Dependencies) error {
		state, err := listViewState()
		if err != nil {
			return err
		}

		if err := deps.Employees.Load(cmd.Context()); err != nil {
			return reported(err)
		}

		page := employee.Paginate(deps.Employees.View(state), listOpts.page, listOpts.perPage)
		out := cmd.OutOrStdout()
		if page.Total == 0 {
			fmt.Fprintln(out, "No employees found")
			return nil
		}
		writeEmployeeTable(out, page.Items)
		if page.TotalPages > 1 {
			fmt.Fprintf(out, "\nPage %d of %d (%d employees)\n", page.Page, page.TotalPages, page.Total)
		}
		return nil
	}),
}

var showCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Show one employee",
	Args:  cobra.ExactArgs(1),
	RunE: withDependencies(func(cmd *cobra.Command, args []string, deps *Dependencies) error {
		id, err := parseID(args[0])
		if err != nil {
			return err
		}
		e, err := deps.Employees.Fetch(cmd.Context(), id)
		if err != nil {
			return reported(err)
		}
		writeEmployeeDetail(cmd.OutOrStdout(), e)
		return nil
	}),
}

var addCmd = &cobra.Command{
	Use:   "add",
	Short: "Add an employee",
	RunE: withDependencies(func(cmd *cobra.Command, _ []string, deps *Dependencies) error {
		in := employee.EmployeeInput{
			Name:       formOpts.name,
			Email:      formOpts.email,
			Department: toDepartment(formOpts.department),
		}
		created, err := deps.Employees.Create(cmd.Context(), in)
		if err != nil {
			return formFailed(cmd, err)
		}
		if created != nil {
			writeEmployeeDetail(cmd.OutOrStdout(), created)
		}
		return nil
	}),
}

var editCmd = &cobra.Command{
	Use:   "edit <id>",
	Short: "Edit an employee; unset flags keep the current value",
	Args:  cobra.ExactArgs(1),
	RunE: withDependencies(func(cmd *cobra.Command, args []string, deps *Dependencies) error {
		id, err := parseID(args[0])
		if err != nil {
			return err
		}

		current, err := deps.Employees.Fetch(cmd.Context(), id)
		if err != nil {
			return reported(err)
		}

		in := current.ToInput()
		flags := cmd.Flags()
		if flags.Changed("name") {
			in.Name = formOpts.name
		}
		if flags.Changed("email") {
			in.Email = formOpts.email
		}
		if flags.Changed("department") {
			in.Department = toDepartment(formOpts.department)
		}

		updated, err := deps.Employees.Update(cmd.Context(), id, in)
		if err != nil {
			return formFailed(cmd, err)
		}
		if updated != nil {
			writeEmployeeDetail(cmd.OutOrStdout(), updated)
		}
		return nil
	}),
}

var deleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete an employee after confirmation",
	Args:  cobra.ExactArgs(1),
	RunE: withDependencies(func(cmd *cobra.Command, args []string, deps *Dependencies) error {
		id, err := parseID(args[0])
		if err != nil {
			return err
		}

		// the prompt names the employee, so pull the list first
		if err := deps.Employees.Load(cmd.Context()); err != nil {
			return reported(err)
		}

		err = deps.Employees.Delete(cmd.Context(), id, promptConfirmer(cmd.InOrStdin(), cmd.OutOrStdout(), assumeYes))
		if errors.Is(err, employee.ErrDeleteCancelled) {
			fmt.Fprintln(cmd.OutOrStdout(), "Delete cancelled")
			return nil
		}
		return reported(err)
	}),
}

func listViewState() (employee.ViewState, error) {
	state := employee.DefaultViewState()
	state.SearchTerm = listOpts.search

	dept, err := employee.ParseDepartmentFilter(listOpts.department)
	if err != nil {
		return state, err
	}
	state.Department = dept

	key, err := employee.ParseSortKey(listOpts.sortKey)
	if err != nil {
		return state, err
	}
	state.SortKey = key
	if listOpts.desc {
		state.SortDirection = employee.Descending
	}
	return state, nil
}

// promptConfirmer asks on the terminal unless yes is set. Anything but y or
// yes declines.
func promptConfirmer(in io.Reader, out io.Writer, yes bool) employee.Confirmer {
	return employee.ConfirmFunc(func(_ context.Context, target employee.Employee) (bool, error) {
		if yes {
			return true, nil
		}
		label := fmt.Sprintf("#%d", target.ID)
		if target.Name != "" {
			label = fmt.Sprintf("%s (%s)", target.Name, target.Email)
		}
		fmt.Fprintf(out, "Delete %s? This action cannot be undone. [y/N]: ", label)

		answer, err := bufio.NewReader(in).ReadString('\n')
		if err != nil && !errors.Is(err, io.EOF) {
			return false, err
		}
		switch strings.ToLower(strings.TrimSpace(answer)) {
		case "y", "yes":
			return true, nil
		default:
			return false, nil
		}
	})
}

// formFailed prints field messages for validation errors. Everything else has
// already been shown as a notification.
func formFailed(cmd *cobra.Command, err error) error {
	fields := internal.FieldErrors(err)
	if len(fields) > 0 {
		w := cmd.ErrOrStderr()
		for _, field := range []string{"name", "email", "department"} {
			if msg, ok := fields[field]; ok {
				fmt.Fprintf(w, "  %s: %s\n", field, msg)
			}
		}
	}
	return reported(err)
}

func toDepartment(s string) employee.Department {
	d, _ := employee.ParseDepartment(s)
	return d
}

func parseID(s string) (int64, error) {
	id, err := strconv.ParseInt(s, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid employee id %q", s)
	}
	return id, nil
}

func writeEmployeeTable(out io.Writer, rows []employee.Employee) {
	tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tNAME\tEMAIL\tDEPARTMENT\tCREATED\tUPDATED")
	for _, e := range rows {
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\t%s\n",
			e.ID, e.Name, e.Email, e.Department, formatTime(e.CreatedAt), formatTime(e.UpdatedAt))
	}
	tw.Flush()
}

func writeEmployeeDetail(out io.Writer, e *employee.Employee) {
	tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "ID:\t%d\n", e.ID)
	fmt.Fprintf(tw, "Name:\t%s\n", e.Name)
	fmt.Fprintf(tw, "Email:\t%s\n", e.Email)
	fmt.Fprintf(tw, "Department:\t%s\n", e.Department)
	fmt.Fprintf(tw, "Created:\t%s\n", formatTime(e.CreatedAt))
	fmt.Fprintf(tw, "Updated:\t%s\n", formatTime(e.UpdatedAt))
	tw.Flush()
}

func formatTime(t time.Time) string {
	if t.IsZero() {
		return "-"
	}
	return t.Local().Format(tableTimeLayout)
}

func init() {
	listCmd.Flags().StringVarP(&listOpts.search, "search", "s", "", "case-insensitive match on name or email")
	listCmd.Flags().StringVarP(&listOpts.department, "department", "d", "All", "HR, IT, Finance, Operations or All")
	listCmd.Flags().StringVar(&listOpts.sortKey, "sort", string(employee.SortByName), "id, name, email, department, createdAt or updatedAt")
	listCmd.Flags().BoolVar(&listOpts.desc, "desc", false, "sort descending")
	listCmd.Flags().IntVar(&listOpts.page, "page", 1, "page number")
	listCmd.Flags().IntVar(&listOpts.perPage, "per-page", 0, "rows per page, 0 shows everything")

	for _, c := range []*cobra.Command{addCmd, editCmd} {
		c.Flags().StringVar(&formOpts.name, "name", "", "full name")
		c.Flags().StringVar(&formOpts.email, "email", "", "email address")
		c.Flags().StringVar(&formOpts.department, "department", "", "HR, IT, Finance or Operations")
	}

	deleteCmd.Flags().BoolVarP(&assumeYes, "yes", "y", false, "skip the confirmation prompt")
}
