package views

import (
	"net/url"
	"strings"
	"testing"

	"github.com/JustJay7/lawdesk/internal/database"
)

func sampleCases() []database.Case {
	return []database.Case{
		{CaseName: "Doe v. Roe", ClientName: "Jane Doe", CaseNumber: "CV-100", AssignedAttorney: "A. Finch", Status: database.CaseActive, Priority: database.PriorityHigh, CourtLevel: "district", CaseType: "civil"},
		{CaseName: "Roe Industries", ClientName: "Roe Inc", CaseNumber: "CV-101", AssignedAttorney: "B. Marsh", Status: database.CaseClosed, Priority: database.PriorityLow, CourtLevel: "federal", CaseType: "corporate"},
		{CaseName: "State v. Smith", ClientName: "John Smith", CaseNumber: "CR-7", AssignedAttorney: "A. Finch", Status: database.CaseActive, Priority: database.PriorityUrgent, CourtLevel: "supreme", CaseType: "criminal"},
	}
}

func caseNames(cases []database.Case) string {
	out := make([]string, len(cases))
	for i, c := range cases {
		out[i] = c.CaseName
	}
	return strings.Join(out, "|")
}

func TestCases(t *testing.T) {
	tests := []struct {
		name  string
		query Query
		want  string
	}{
		{
			name: "search with active filter",
			query: Query{Search: "roe", Filters: map[string]string{
				"status": "active", "court_level": "all", "priority": "all", "case_type": "all",
			}},
			want: "Doe v. Roe",
		},
		{name: "search only", query: Query{Search: "ROE"}, want: "Doe v. Roe|Roe Industries"},
		{name: "search attorney", query: Query{Search: "finch"}, want: "Doe v. Roe|State v. Smith"},
		{name: "search case number", query: Query{Search: "cr-"}, want: "State v. Smith"},
		{name: "empty query", query: Query{}, want: "Doe v. Roe|Roe Industries|State v. Smith"},
		{name: "filter conjunction", query: Query{Filters: map[string]string{"status": "active", "priority": "urgent"}}, want: "State v. Smith"},
		{name: "empty filter value", query: Query{Filters: map[string]string{"status": ""}}, want: "Doe v. Roe|Roe Industries|State v. Smith"},
		{name: "no match", query: Query{Search: "zzz"}, want: ""},
		{name: "unknown filter key", query: Query{Filters: map[string]string{"judge": "Ito"}}, want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := caseNames(Cases(sampleCases(), tt.query)); got != tt.want {
				t.Errorf("Cases() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestFilteringCommutes(t *testing.T) {
	items := sampleCases()
	q := Query{Search: "finch", Filters: map[string]string{"status": "active"}}

	both := Cases(items, q)
	searchFirst := Cases(Cases(items, Query{Search: q.Search}), Query{Filters: q.Filters})
	filterFirst := Cases(Cases(items, Query{Filters: q.Filters}), Query{Search: q.Search})

	if caseNames(both) != caseNames(searchFirst) || caseNames(both) != caseNames(filterFirst) {
		t.Errorf("results differ: %q / %q / %q", caseNames(both), caseNames(searchFirst), caseNames(filterFirst))
	}
}

func TestEmployees(t *testing.T) {
	items := []database.Employee{
		{FullName: "Ada Finch", Position: "partner", Department: "litigation", Email: "ada@firm.test", Status: "active"},
		{FullName: "Bo Marsh", Position: "paralegal", Department: "corporate", Email: "bo@firm.test", Status: "on_leave"},
	}

	got := Employees(items, Query{Search: "PARA"})
	if len(got) != 1 || got[0].FullName != "Bo Marsh" {
		t.Errorf("search by position = %+v", got)
	}

	got = Employees(items, Query{Filters: map[string]string{"department": "litigation", "status": "all"}})
	if len(got) != 1 || got[0].FullName != "Ada Finch" {
		t.Errorf("department filter = %+v", got)
	}
}

func TestPrecedents(t *testing.T) {
	items := []database.Precedent{
		{CaseName: "Marbury v. Madison", Citation: "5 U.S. 137", Keywords: "judicial review", PracticeArea: "constitutional", Relevance: "highly_relevant"},
		{CaseName: "Palsgraf v. Long Island R.R.", Citation: "248 N.Y. 339", LegalPrinciple: "Proximate cause limits negligence", PracticeArea: "civil", Relevance: "relevant"},
	}

	got := Precedents(items, Query{Search: "proximate"})
	if len(got) != 1 || got[0].Citation != "248 N.Y. 339" {
		t.Errorf("search by principle = %+v", got)
	}

	got = Precedents(items, Query{Filters: map[string]string{"practice_area": "constitutional"}})
	if len(got) != 1 || got[0].CaseName != "Marbury v. Madison" {
		t.Errorf("practice area filter = %+v", got)
	}
}

func TestCaseQueryIgnoresUnrelatedParams(t *testing.T) {
	values := url.Values{}
	values.Set("search", "roe")
	values.Set("status", "active")
	values.Set("sort", "-created_date")

	q := CaseQuery(values)
	if q.Search != "roe" {
		t.Errorf("Search = %q", q.Search)
	}
	if len(q.Filters) != 1 || q.Filters["status"] != "active" {
		t.Errorf("Filters = %v", q.Filters)
	}
	if got := caseNames(Cases(sampleCases(), q)); got != "Doe v. Roe" {
		t.Errorf("Cases() = %q", got)
	}
}
