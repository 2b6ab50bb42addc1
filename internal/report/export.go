package report

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/mudithakuruppu/employeemanagement-ui/internal/employee"
)

const (
	csvHeader       = "ID,Name,Email,Department,Created At,Updated At"
	timestampLayout = "2006-01-02 15:04:05"
)

// Filename is employee_report_<UTC date>.<ext>.
func Filename(now time.Time, ext string) string {
	return fmt.Sprintf("employee_report_%s.%s", now.UTC().Format("2006-01-02"), ext)
}

// WriteCSV writes rows with a header line. Name and email are always quoted;
// rows are separated by "\n" with no trailing newline.
func WriteCSV(w io.Writer, rows []employee.Employee) error {
	bw := bufio.NewWriter(w)
	if _, err := bw.WriteString(csvHeader); err != nil {
		return err
	}
	for _, e := range rows {
		line := strings.Join([]string{
			strconv.FormatInt(e.ID, 10),
			quote(e.Name),
			quote(e.Email),
			string(e.Department),
			formatTimestamp(e.CreatedAt),
			formatTimestamp(e.UpdatedAt),
		}, ",")
		if _, err := bw.WriteString("\n" + line); err != nil {
			return err
		}
	}
	return bw.Flush()
}

func quote(s string) string {
	return `"` + strings.ReplaceAll(s, `"`, `""`) + `"`
}

func formatTimestamp(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Local().Format(timestampLayout)
}
