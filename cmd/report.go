package cmd

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"text/tabwriter"

	"github.com/mudithakuruppu/employeemanagement-ui/internal/employee"
	"github.com/mudithakuruppu/employeemanagement-ui/internal/report"
	"github.com/spf13/cobra"
)

var reportOpts struct {
	scope      string
	department string
	dateRange  string
	csv        bool
	pdf        bool
	outDir     string
}

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Summarise the directory and optionally export CSV or PDF",
	RunE: withDependencies(func(cmd *cobra.Command, _ []string, deps *Dependencies) error {
		state, err := reportFilterState()
		if err != nil {
			return err
		}

		if err := deps.Employees.LoadWithNotice(cmd.Context(), report.LoadFailedMessage); err != nil {
			return reported(err)
		}

		r := deps.Reports.Build(deps.Employees.Employees(), state)
		writeReportSummary(cmd.OutOrStdout(), r)

		if reportOpts.csv {
			path, err := exportReport(r, "csv", func(w io.Writer) error { return report.WriteCSV(w, r.Rows) })
			if err != nil {
				return err
			}
			deps.Logger.Info("report exported", "format", "csv", "path", path, "rows", len(r.Rows))
			fmt.Fprintf(cmd.OutOrStdout(), "\nCSV written to %s\n", path)
		}
		if reportOpts.pdf {
			path, err := exportReport(r, "pdf", func(w io.Writer) error { return report.WritePDF(w, r) })
			if err != nil {
				return err
			}
			deps.Logger.Info("report exported", "format", "pdf", "path", path, "rows", len(r.Rows))
			fmt.Fprintf(cmd.OutOrStdout(), "PDF written to %s\n", path)
		}
		return nil
	}),
}

func reportFilterState() (report.FilterState, error) {
	state := report.DefaultFilterState()

	scope, err := report.ParseScope(reportOpts.scope)
	if err != nil {
		return state, err
	}
	state.Scope = scope

	if reportOpts.department != "" {
		d, ok := employee.ParseDepartment(reportOpts.department)
		if !ok {
			return state, fmt.Errorf("unknown department %q", reportOpts.department)
		}
		state.Department = d
	}

	dateRange, err := report.ParseDateRange(reportOpts.dateRange)
	if err != nil {
		return state, err
	}
	state.DateRange = dateRange
	return state, nil
}

func exportReport(r report.Report, ext string, write func(io.Writer) error) (string, error) {
	path := filepath.Join(reportOpts.outDir, report.Filename(r.GeneratedAt, ext))
	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("create %s: %w", path, err)
	}
	if err := write(f); err != nil {
		f.Close()
		return "", fmt.Errorf("write %s: %w", path, err)
	}
	if err := f.Close(); err != nil {
		return "", fmt.Errorf("close %s: %w", path, err)
	}
	return path, nil
}

func writeReportSummary(out io.Writer, r report.Report) {
	fmt.Fprintln(out, r.Title)
	fmt.Fprintf(out, "Generated: %s\n", r.GeneratedAt.Local().Format("2006-01-02 15:04:05"))
	fmt.Fprintf(out, "Date range: %s\n", r.RangeLabel)
	fmt.Fprintf(out, "Total employees: %d\n", r.TotalEmployees)
	fmt.Fprintf(out, "Employees in report: %d\n\n", len(r.Rows))

	tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "DEPARTMENT\tCOUNT\tSHARE")
	for _, s := range r.Distribution {
		fmt.Fprintf(tw, "%s\t%d\t%.1f%%\n", s.Department, s.Count, s.Percent)
	}
	tw.Flush()

	fmt.Fprintln(out)
	if len(r.Rows) == 0 {
		fmt.Fprintln(out, "No employee data available for the selected filters")
		return
	}
	writeEmployeeTable(out, r.Rows)
}

func init() {
	reportCmd.Flags().StringVar(&reportOpts.scope, "scope", string(report.ScopeAll), "all or department")
	reportCmd.Flags().StringVarP(&reportOpts.department, "department", "d", "", "department for --scope department (default HR)")
	reportCmd.Flags().StringVar(&reportOpts.dateRange, "range", string(report.RangeAll), "all, month, quarter or year")
	reportCmd.Flags().BoolVar(&reportOpts.csv, "csv", false, "write the rows as CSV")
	reportCmd.Flags().BoolVar(&reportOpts.pdf, "pdf", false, "write the report as PDF")
	reportCmd.Flags().StringVarP(&reportOpts.outDir, "out", "o", ".", "directory for exported files")
}
