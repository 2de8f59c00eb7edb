// Package views narrows fetched collections by free-text search and
// categorical filters. Results always keep the input order.
package views

import (
	"net/url"
	"strings"

	"github.com/JustJay7/lawdesk/internal/database"
)

// All is the filter value meaning "no constraint".
const All = "all"

// Query is a search term plus categorical filters. A filter whose value is
// "" or All does not constrain the result.
type Query struct {
	Search  string
	Filters map[string]string
}

// view describes how one record type is searched and filtered.
type view[T any] struct {
	text    []func(T) string
	filters map[string]func(T) string
}

func (s view[T]) keys() []string {
	out := make([]string, 0, len(s.filters))
	for k := range s.filters {
		out = append(out, k)
	}
	return out
}

var caseView = view[database.Case]{
	text: []func(database.Case) string{
		func(c database.Case) string { return c.CaseName },
		func(c database.Case) string { return c.ClientName },
		func(c database.Case) string { return c.CaseNumber },
		func(c database.Case) string { return c.AssignedAttorney },
	},
	filters: map[string]func(database.Case) string{
		"status":      func(c database.Case) string { return string(c.Status) },
		"court_level": func(c database.Case) string { return c.CourtLevel },
		"priority":    func(c database.Case) string { return string(c.Priority) },
		"case_type":   func(c database.Case) string { return c.CaseType },
	},
}

var employeeView = view[database.Employee]{
	text: []func(database.Employee) string{
		func(e database.Employee) string { return e.FullName },
		func(e database.Employee) string { return e.Position },
		func(e database.Employee) string { return e.Email },
	},
	filters: map[string]func(database.Employee) string{
		"position":   func(e database.Employee) string { return e.Position },
		"department": func(e database.Employee) string { return e.Department },
		"status":     func(e database.Employee) string { return e.Status },
	},
}

var precedentView = view[database.Precedent]{
	text: []func(database.Precedent) string{
		func(p database.Precedent) string { return p.CaseName },
		func(p database.Precedent) string { return p.Citation },
		func(p database.Precedent) string { return p.Keywords },
		func(p database.Precedent) string { return p.LegalPrinciple },
	},
	filters: map[string]func(database.Precedent) string{
		"practice_area": func(p database.Precedent) string { return p.PracticeArea },
		"relevance":     func(p database.Precedent) string { return p.Relevance },
		"court":         func(p database.Precedent) string { return p.Court },
	},
}

// Cases searches case name, client, number and attorney.
func Cases(items []database.Case, q Query) []database.Case {
	return apply(items, q, caseView)
}

// Employees searches name, position and email.
func Employees(items []database.Employee, q Query) []database.Employee {
	return apply(items, q, employeeView)
}

// Precedents searches case name, citation, keywords and legal principle.
func Precedents(items []database.Precedent, q Query) []database.Precedent {
	return apply(items, q, precedentView)
}

// CaseQuery reads "search" and the case filter keys from URL values.
func CaseQuery(values url.Values) Query {
	return fromValues(values, caseView.keys())
}

func EmployeeQuery(values url.Values) Query {
	return fromValues(values, employeeView.keys())
}

func PrecedentQuery(values url.Values) Query {
	return fromValues(values, precedentView.keys())
}

func fromValues(values url.Values, keys []string) Query {
	q := Query{Search: values.Get("search"), Filters: make(map[string]string, len(keys))}
	for _, k := range keys {
		if v := values.Get(k); v != "" {
			q.Filters[k] = v
		}
	}
	return q
}

func apply[T any](items []T, q Query, s view[T]) []T {
	term := strings.ToLower(q.Search)
	out := make([]T, 0, len(items))
	for _, item := range items {
		if matchesSearch(item, term, s.text) && matchesFilters(item, q.Filters, s.filters) {
			out = append(out, item)
		}
	}
	return out
}

func matchesSearch[T any](item T, term string, fields []func(T) string) bool {
	if term == "" {
		return true
	}
	for _, field := range fields {
		if strings.Contains(strings.ToLower(field(item)), term) {
			return true
		}
	}
	return false
}

func matchesFilters[T any](item T, filters map[string]string, fields map[string]func(T) string) bool {
	for key, want := range filters {
		if want == "" || want == All {
			continue
		}
		field, ok := fields[key]
		if !ok || field(item) != want {
			return false
		}
	}
	return true
}
