package employee

import (
	"cmp"
	"fmt"
	"slices"
	"strings"
)

type SortKey string

const (
	SortByID         SortKey = "id"
	SortByName       SortKey = "name"
	SortByEmail      SortKey = "email"
	SortByDepartment SortKey = "department"
	SortByCreatedAt  SortKey = "createdAt"
	SortByUpdatedAt  SortKey = "updatedAt"
)

var SortKeys = []SortKey{SortByID, SortByName, SortByEmail, SortByDepartment, SortByCreatedAt, SortByUpdatedAt}

// ParseSortKey only yields keys every Employee carries, so the comparator built
// from the result is total.
func ParseSortKey(s string) (SortKey, error) {
	for _, k := range SortKeys {
		if strings.EqualFold(string(k), s) {
			return k, nil
		}
	}
	return "", fmt.Errorf("unknown sort key %q", s)
}

type SortDirection string

const (
	Ascending  SortDirection = "asc"
	Descending SortDirection = "desc"
)

// DepartmentFilter is a Department or AllDepartments.
type DepartmentFilter string

const AllDepartments DepartmentFilter = "All"

func ParseDepartmentFilter(s string) (DepartmentFilter, error) {
	if s == "" || strings.EqualFold(s, string(AllDepartments)) {
		return AllDepartments, nil
	}
	d, ok := ParseDepartment(s)
	if !ok {
		return "", fmt.Errorf("unknown department %q", s)
	}
	return DepartmentFilter(d), nil
}

// ViewState is the list's search, filter and sort selection. It is never persisted.
type ViewState struct {
	SearchTerm    string
	Department    DepartmentFilter
	SortKey       SortKey
	SortDirection SortDirection
}

func DefaultViewState() ViewState {
	return ViewState{
		Department:    AllDepartments,
		SortKey:       SortByName,
		SortDirection: Ascending,
	}
}

// Toggle mirrors clicking a column header: the same key flips direction, a new
// key starts ascending.
func (s ViewState) Toggle(key SortKey) ViewState {
	next := s
	if s.SortKey == key && s.SortDirection == Ascending {
		next.SortDirection = Descending
	} else {
		next.SortDirection = Ascending
	}
	next.SortKey = key
	return next
}

func (s ViewState) matches(e *Employee) bool {
	if s.Department != "" && s.Department != AllDepartments && Department(s.Department) != e.Department {
		return false
	}
	if s.SearchTerm == "" {
		return true
	}
	term := strings.ToLower(s.SearchTerm)
	return strings.Contains(strings.ToLower(e.Name), term) ||
		strings.Contains(strings.ToLower(e.Email), term)
}

// Derive filters and orders base without touching it. The sort is stable in
// both directions: equal keys keep their relative order from base.
func Derive(base []Employee, state ViewState) []Employee {
	view := make([]Employee, 0, len(base))
	for i := range base {
		if state.matches(&base[i]) {
			view = append(view, base[i])
		}
	}

	compare := comparator(state.SortKey)
	if state.SortDirection == Descending {
		asc := compare
		compare = func(a, b *Employee) int { return -asc(a, b) }
	}
	slices.SortStableFunc(view, func(a, b Employee) int { return compare(&a, &b) })
	return view
}

func comparator(key SortKey) func(a, b *Employee) int {
	switch key {
	case SortByID:
		return func(a, b *Employee) int { return cmp.Compare(a.ID, b.ID) }
	case SortByName:
		return func(a, b *Employee) int { return strings.Compare(a.Name, b.Name) }
	case SortByEmail:
		return func(a, b *Employee) int { return strings.Compare(a.Email, b.Email) }
	case SortByDepartment:
		return func(a, b *Employee) int { return strings.Compare(string(a.Department), string(b.Department)) }
	case SortByCreatedAt:
		return func(a, b *Employee) int { return a.CreatedAt.Compare(b.CreatedAt) }
	case SortByUpdatedAt:
		return func(a, b *Employee) int { return a.UpdatedAt.Compare(b.UpdatedAt) }
	default:
		return func(a, b *Employee) int { return 0 }
	}
}

type Page struct {
	Items      []Employee
	Page       int
	PerPage    int
	Total      int
	TotalPages int
}

// Paginate slices an already derived view. page is 1-based and clamped to
// the last page; perPage <= 0 returns everything on one page.
func Paginate(view []Employee, page, perPage int) Page {
	total := len(view)
	if perPage <= 0 {
		return Page{Items: view, Page: 1, PerPage: total, Total: total, TotalPages: 1}
	}
	totalPages := (total + perPage - 1) / perPage
	if totalPages == 0 {
		totalPages = 1
	}
	page = max(1, min(page, totalPages))
	start := (page - 1) * perPage
	end := min(start+perPage, total)
	return Page{
		Items:      view[start:end],
		Page:       page,
		PerPage:    perPage,
		Total:      total,
		TotalPages: totalPages,
	}
}
