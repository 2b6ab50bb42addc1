package report

import (
	"fmt"
	"strings"
	"time"

	"github.com/mudithakuruppu/employeemanagement-ui/internal/employee"
)

// LoadFailedMessage is the notice shown when the directory cannot be read for
// a report.
const LoadFailedMessage = "Failed to fetch employee data for reports"

type Scope string

const (
	ScopeAll          Scope = "all"
	ScopeByDepartment Scope = "byDepartment"
)

func ParseScope(s string) (Scope, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "all":
		return ScopeAll, nil
	case "department", "bydepartment":
		return ScopeByDepartment, nil
	default:
		return "", fmt.Errorf("unknown report scope %q", s)
	}
}

type DateRange string

const (
	RangeAll         DateRange = "all"
	RangeLastMonth   DateRange = "lastMonth"
	RangeLastQuarter DateRange = "lastQuarter"
	RangeLastYear    DateRange = "lastYear"
)

func ParseDateRange(s string) (DateRange, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "all":
		return RangeAll, nil
	case "month", "lastmonth":
		return RangeLastMonth, nil
	case "quarter", "lastquarter":
		return RangeLastQuarter, nil
	case "year", "lastyear":
		return RangeLastYear, nil
	default:
		return "", fmt.Errorf("unknown date range %q", s)
	}
}

func (r DateRange) Label() string {
	switch r {
	case RangeLastMonth:
		return "Last Month"
	case RangeLastQuarter:
		return "Last Quarter"
	case RangeLastYear:
		return "Last Year"
	default:
		return "All Time"
	}
}

// Cutoff is now moved back by whole calendar months or years. Day overflow
// normalises the way time.AddDate does (Mar 31 minus one month is Mar 3).
func (r DateRange) Cutoff(now time.Time) (time.Time, bool) {
	switch r {
	case RangeLastMonth:
		return now.AddDate(0, -1, 0), true
	case RangeLastQuarter:
		return now.AddDate(0, -3, 0), true
	case RangeLastYear:
		return now.AddDate(-1, 0, 0), true
	default:
		return time.Time{}, false
	}
}

// FilterState is the report's own selection, independent of the list view.
// Department only applies when Scope is ScopeByDepartment.
type FilterState struct {
	Scope      Scope
	Department employee.Department
	DateRange  DateRange
}

func DefaultFilterState() FilterState {
	return FilterState{
		Scope:      ScopeAll,
		Department: employee.DepartmentHR,
		DateRange:  RangeAll,
	}
}

func (f FilterState) Title() string {
	if f.Scope == ScopeByDepartment {
		return fmt.Sprintf("%s Department Report", f.Department)
	}
	return "All Employees Report"
}

// Filter keeps base order. A row survives the date range when createdAt is at
// or after the cutoff.
func Filter(base []employee.Employee, state FilterState, now time.Time) []employee.Employee {
	cutoff, bounded := state.DateRange.Cutoff(now)

	rows := make([]employee.Employee, 0, len(base))
	for _, e := range base {
		if state.Scope == ScopeByDepartment && e.Department != state.Department {
			continue
		}
		if bounded && e.CreatedAt.Before(cutoff) {
			continue
		}
		rows = append(rows, e)
	}
	return rows
}

// DepartmentCounts tallies the whole collection. The four known departments
// are always present; anything else is counted under its own key so the
// counts always sum to len(base).
func DepartmentCounts(base []employee.Employee) map[employee.Department]int {
	counts := make(map[employee.Department]int, len(employee.Departments))
	for _, d := range employee.Departments {
		counts[d] = 0
	}
	for _, e := range base {
		counts[e.Department]++
	}
	return counts
}

type Share struct {
	Department employee.Department
	Count      int
	Percent    float64
}

// Distribution gives each known department's share of the whole directory,
// never of a filtered subset.
func Distribution(base []employee.Employee) []Share {
	counts := DepartmentCounts(base)
	total := len(base)

	shares := make([]Share, 0, len(employee.Departments))
	for _, d := range employee.Departments {
		share := Share{Department: d, Count: counts[d]}
		if total > 0 {
			share.Percent = float64(counts[d]) / float64(total) * 100
		}
		shares = append(shares, share)
	}
	return shares
}

type Report struct {
	Title          string
	GeneratedAt    time.Time
	Filters        FilterState
	RangeLabel     string
	Rows           []employee.Employee
	TotalEmployees int
	Distribution   []Share
}

// Clock provides the current time.
type Clock interface {
	Now() time.Time
}

type realClock struct{}

func (realClock) Now() time.Time {
	return time.Now()
}

type Generator struct {
	clock Clock
}

func NewGenerator(clock Clock) *Generator {
	if clock == nil {
		clock = realClock{}
	}
	return &Generator{clock: clock}
}

func (g *Generator) Build(base []employee.Employee, state FilterState) Report {
	now := g.clock.Now()
	return Report{
		Title:          state.Title(),
		GeneratedAt:    now,
		Filters:        state,
		RangeLabel:     state.DateRange.Label(),
		Rows:           Filter(base, state, now),
		TotalEmployees: len(base),
		Distribution:   Distribution(base),
	}
}
