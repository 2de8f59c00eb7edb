package api

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/JustJay7/lawdesk/internal/cache"
	"github.com/JustJay7/lawdesk/internal/config"
	"github.com/JustJay7/lawdesk/internal/database"
	"github.com/JustJay7/lawdesk/internal/deadline"
	"github.com/JustJay7/lawdesk/internal/entity"
	"github.com/JustJay7/lawdesk/internal/lock"
	"github.com/JustJay7/lawdesk/internal/scheduler"
	"github.com/JustJay7/lawdesk/pkg/logger"
	"github.com/gin-gonic/gin"
)

var fixedNow = time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)

func setupTestRouter(t *testing.T) (*gin.Engine, *entity.Clients) {
	t.Helper()

	// Set Gin to test mode
	gin.SetMode(gin.TestMode)

	db, err := database.Initialize(":memory:")
	if err != nil {
		t.Fatalf("Failed to initialize database: %v", err)
	}
	t.Cleanup(func() { database.Close(db) })

	clients, err := entity.NewClients(db)
	if err != nil {
		t.Fatalf("Failed to build clients: %v", err)
	}

	cfg := &config.Config{
		CacheSize: 100,
		CacheTTL:  time.Minute,
		Location:  time.UTC,
	}
	log := logger.NewNop()

	fileLock, err := lock.New(filepath.Join(t.TempDir(), "reconcile.lock"))
	if err != nil {
		t.Fatalf("Failed to create lock: %v", err)
	}
	sync := deadline.NewSynchronizer(clients.Deadlines, clients.Schedules, clients.SyncLogs, log)
	sched := scheduler.New(time.UTC, sync, fileLock, log)

	h := NewHandlers(db, clients, sync, cache.NewCache(cfg.CacheSize, cfg.CacheTTL), sched, log, cfg)
	h.now = func() time.Time { return fixedNow }

	router := gin.New()
	SetupRoutes(router, h)
	return router, clients
}

type envelope struct {
	Success       bool            `json:"success"`
	Data          json.RawMessage `json:"data"`
	Error         string          `json:"error"`
	Code          string          `json:"code"`
	MirrorPending bool            `json:"mirror_pending"`
}

func doJSON(t *testing.T, router *gin.Engine, method, path string, body interface{}) (int, envelope) {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("Failed to encode body: %v", err)
		}
	}
	req, _ := http.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	var env envelope
	if err := json.Unmarshal(w.Body.Bytes(), &env); err != nil {
		t.Fatalf("%s %s: invalid JSON response %q: %v", method, path, w.Body.String(), err)
	}
	return w.Code, env
}

func decode(t *testing.T, env envelope, into interface{}) {
	t.Helper()
	if err := json.Unmarshal(env.Data, into); err != nil {
		t.Fatalf("Failed to decode data %s: %v", env.Data, err)
	}
}

func createCase(t *testing.T, router *gin.Engine, number, name string, extra map[string]interface{}) database.Case {
	t.Helper()
	body := map[string]interface{}{
		"case_number":       number,
		"case_name":         name,
		"client_name":       "Jane Doe",
		"assigned_attorney": "A. Finch",
	}
	for k, v := range extra {
		body[k] = v
	}

	code, env := doJSON(t, router, http.MethodPost, "/api/cases", body)
	if code != http.StatusCreated {
		t.Fatalf("create case: status %d: %s", code, env.Error)
	}
	var c database.Case
	decode(t, env, &c)
	return c
}

func TestHealthCheck(t *testing.T) {
	router, _ := setupTestRouter(t)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodGet, "/api/health", nil)
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("Expected status %d, got %d", http.StatusOK, w.Code)
	}

	var response map[string]interface{}
	json.Unmarshal(w.Body.Bytes(), &response)

	if response["status"] != "healthy" {
		t.Errorf("Expected status 'healthy', got %v", response["status"])
	}
}

func TestCaseEndpoints(t *testing.T) {
	router, _ := setupTestRouter(t)

	created := createCase(t, router, "CV-100", "Doe v. Roe", nil)
	if created.Status != database.CaseActive || created.Priority != database.PriorityMedium || created.CaseType != "civil" {
		t.Errorf("form defaults not applied: %+v", created)
	}
	createCase(t, router, "CV-101", "Roe Industries", map[string]interface{}{"status": "closed"})

	tests := []struct {
		name       string
		method     string
		path       string
		body       interface{}
		wantStatus int
	}{
		{"get", http.MethodGet, "/api/cases/" + created.ID, nil, http.StatusOK},
		{"get unknown", http.MethodGet, "/api/cases/missing", nil, http.StatusNotFound},
		{"create missing fields", http.MethodPost, "/api/cases", map[string]interface{}{"case_name": "No number"}, http.StatusBadRequest},
		{"create duplicate number", http.MethodPost, "/api/cases", map[string]interface{}{
			"case_number": "CV-100", "case_name": "Again", "client_name": "X", "assigned_attorney": "Y",
		}, http.StatusBadRequest},
		{"update", http.MethodPut, "/api/cases/" + created.ID, map[string]interface{}{"court_location": "Room 4"}, http.StatusOK},
		{"update invalid status", http.MethodPut, "/api/cases/" + created.ID, map[string]interface{}{"status": "archived"}, http.StatusBadRequest},
		{"update unknown field", http.MethodPut, "/api/cases/" + created.ID, map[string]interface{}{"verdict": "won"}, http.StatusBadRequest},
		{"update unknown case", http.MethodPut, "/api/cases/missing", map[string]interface{}{"status": "closed"}, http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			code, env := doJSON(t, router, tt.method, tt.path, tt.body)
			if code != tt.wantStatus {
				t.Errorf("Expected status %d, got %d (%s)", tt.wantStatus, code, env.Error)
			}
			if env.Success != (code < 300) {
				t.Errorf("success = %v for status %d", env.Success, code)
			}
		})
	}
}

func TestListCasesFiltersAfterCacheInvalidation(t *testing.T) {
	router, _ := setupTestRouter(t)

	createCase(t, router, "CV-100", "Doe v. Roe", nil)

	// Prime the cache, then mutate.
	if code, _ := doJSON(t, router, http.MethodGet, "/api/cases", nil); code != http.StatusOK {
		t.Fatalf("list status %d", code)
	}
	createCase(t, router, "CV-101", "Roe Industries", map[string]interface{}{"status": "closed"})

	code, env := doJSON(t, router, http.MethodGet, "/api/cases?search=roe&status=active&court_level=all&priority=all&case_type=all", nil)
	if code != http.StatusOK {
		t.Fatalf("list status %d", code)
	}
	var cases []database.Case
	decode(t, env, &cases)
	if len(cases) != 1 || cases[0].CaseName != "Doe v. Roe" {
		t.Errorf("filtered cases = %+v", cases)
	}

	_, env = doJSON(t, router, http.MethodGet, "/api/cases?search=ROE", nil)
	decode(t, env, &cases)
	if len(cases) != 2 || cases[0].CaseName != "Roe Industries" {
		t.Errorf("expected both cases newest first, got %+v", cases)
	}
}

func TestDeadlineLifecycle(t *testing.T) {
	router, clients := setupTestRouter(t)
	parent := createCase(t, router, "CV-100", "Doe v. Roe", nil)

	code, env := doJSON(t, router, http.MethodPost, "/api/cases/"+parent.ID+"/deadlines", map[string]interface{}{
		"title":             "File brief",
		"due_date":          "2025-03-11",
		"assigned_attorney": "A. Finch",
	})
	if code != http.StatusCreated {
		t.Fatalf("create deadline: status %d: %s", code, env.Error)
	}
	var d database.CaseDeadline
	decode(t, env, &d)
	if d.ScheduleID == nil || d.CaseNumber != "CV-100" {
		t.Fatalf("deadline = %+v", d)
	}

	code, env = doJSON(t, router, http.MethodGet, "/api/schedule", nil)
	if code != http.StatusOK {
		t.Fatalf("list schedule: status %d", code)
	}
	var events []database.Schedule
	decode(t, env, &events)
	if len(events) != 1 || events[0].Title != "DEADLINE: File brief" || events[0].StartTime != "23:59" {
		t.Fatalf("events = %+v", events)
	}

	// Mirrors only change through their deadline.
	code, env = doJSON(t, router, http.MethodPut, "/api/schedule/"+*d.ScheduleID, map[string]interface{}{"title": "hijacked"})
	if code != http.StatusConflict {
		t.Errorf("mirror edit: expected 409, got %d (%s)", code, env.Error)
	}

	code, env = doJSON(t, router, http.MethodGet, "/api/cases/"+parent.ID+"/deadlines", nil)
	if code != http.StatusOK {
		t.Fatalf("list deadlines: status %d", code)
	}
	var listed []deadline.View
	decode(t, env, &listed)
	if len(listed) != 1 || listed[0].Urgency != deadline.UrgencyUrgent {
		t.Errorf("deadlines = %+v", listed)
	}

	code, env = doJSON(t, router, http.MethodPut, "/api/deadlines/"+d.ID, map[string]interface{}{
		"title":             "File reply brief",
		"due_date":          "2025-03-20",
		"due_time":          "17:00",
		"assigned_attorney": "A. Finch",
	})
	if code != http.StatusOK {
		t.Fatalf("update deadline: status %d: %s", code, env.Error)
	}

	code, env = doJSON(t, router, http.MethodPost, "/api/deadlines/"+d.ID+"/status", map[string]interface{}{"status": "completed"})
	if code != http.StatusOK {
		t.Fatalf("set status: status %d: %s", code, env.Error)
	}

	code, env = doJSON(t, router, http.MethodPost, "/api/deadlines/"+d.ID+"/status", map[string]interface{}{"status": "archived"})
	if code != http.StatusBadRequest {
		t.Errorf("unknown status: expected 400, got %d", code)
	}

	mirror, err := clients.Schedules.Get(testContext(t), *d.ScheduleID)
	if err != nil {
		t.Fatalf("Failed to load mirror: %v", err)
	}
	if mirror.Title != "DEADLINE: File reply brief" || mirror.StartTime != "17:00" || mirror.Status != database.ScheduleCompleted {
		t.Errorf("mirror = %+v", mirror)
	}

	code, env = doJSON(t, router, http.MethodGet, "/api/sync/logs?deadline_id="+d.ID, nil)
	if code != http.StatusOK {
		t.Fatalf("sync logs: status %d", code)
	}
	var logs []database.SyncLog
	decode(t, env, &logs)
	if len(logs) < 4 {
		t.Errorf("expected journal entries for every step, got %d", len(logs))
	}
}

func TestPartialDeadlineUpdate(t *testing.T) {
	router, clients := setupTestRouter(t)
	parent := createCase(t, router, "CV-101", "Doe v. Roe", nil)

	code, env := doJSON(t, router, http.MethodPost, "/api/cases/"+parent.ID+"/deadlines", map[string]interface{}{
		"title":             "File brief",
		"due_date":          "2025-03-11",
		"due_time":          "10:00",
		"assigned_attorney": "A. Finch",
		"reminder_days":     14,
	})
	if code != http.StatusCreated {
		t.Fatalf("create deadline: status %d: %s", code, env.Error)
	}
	var d database.CaseDeadline
	decode(t, env, &d)

	code, env = doJSON(t, router, http.MethodPost, "/api/deadlines/"+d.ID+"/status", map[string]interface{}{"status": "completed"})
	if code != http.StatusOK {
		t.Fatalf("set status: status %d: %s", code, env.Error)
	}

	code, env = doJSON(t, router, http.MethodPut, "/api/deadlines/"+d.ID, map[string]interface{}{"notes": "Filed with clerk"})
	if code != http.StatusOK {
		t.Fatalf("notes-only update: status %d: %s", code, env.Error)
	}
	var updated database.CaseDeadline
	decode(t, env, &updated)
	if updated.Status != database.DeadlineCompleted || updated.ReminderDays != 14 || updated.DueTime != "10:00" {
		t.Errorf("omitted fields changed: %+v", updated)
	}
	if updated.Notes != "Filed with clerk" {
		t.Errorf("notes = %q", updated.Notes)
	}

	mirror, err := clients.Schedules.Get(testContext(t), *d.ScheduleID)
	if err != nil {
		t.Fatalf("Failed to load mirror: %v", err)
	}
	if mirror.Status != database.ScheduleCompleted || mirror.StartTime != "10:00" {
		t.Errorf("mirror = %+v", mirror)
	}
}

func TestDeadlineWriteWithBrokenMirror(t *testing.T) {
	router, clients := setupTestRouter(t)
	parent := createCase(t, router, "CV-102", "Doe v. Roe", nil)

	code, env := doJSON(t, router, http.MethodPost, "/api/cases/"+parent.ID+"/deadlines", map[string]interface{}{
		"title":             "File brief",
		"due_date":          "2025-03-11",
		"assigned_attorney": "A. Finch",
	})
	if code != http.StatusCreated {
		t.Fatalf("create deadline: status %d: %s", code, env.Error)
	}
	var d database.CaseDeadline
	decode(t, env, &d)

	if _, err := clients.Deadlines.Update(testContext(t), d.ID, entity.Fields{"schedule_id": "gone"}); err != nil {
		t.Fatalf("Failed to break mirror link: %v", err)
	}

	tests := []struct {
		name   string
		method string
		path   string
		body   map[string]interface{}
	}{
		{"update", http.MethodPut, "/api/deadlines/" + d.ID, map[string]interface{}{"notes": "Moved"}},
		{"status", http.MethodPost, "/api/deadlines/" + d.ID + "/status", map[string]interface{}{"status": "in_progress"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			code, env := doJSON(t, router, tt.method, tt.path, tt.body)
			if code != http.StatusOK {
				t.Fatalf("expected 200, got %d (%s)", code, env.Error)
			}
			if !env.Success || !env.MirrorPending {
				t.Errorf("expected mirror_pending success, got %+v", env)
			}
		})
	}

	saved, err := clients.Deadlines.Get(testContext(t), d.ID)
	if err != nil {
		t.Fatalf("Failed to reload deadline: %v", err)
	}
	if saved.Notes != "Moved" || saved.Status != database.DeadlineInProgress {
		t.Errorf("deadline not saved: %+v", saved)
	}
}

func TestCreateDeadlineValidation(t *testing.T) {
	router, _ := setupTestRouter(t)
	parent := createCase(t, router, "CV-100", "Doe v. Roe", nil)

	tests := []struct {
		name       string
		path       string
		body       map[string]interface{}
		wantStatus int
	}{
		{"unknown case", "/api/cases/missing/deadlines", map[string]interface{}{"title": "x", "due_date": "2025-03-11", "assigned_attorney": "y"}, http.StatusNotFound},
		{"missing due date", "/api/cases/" + parent.ID + "/deadlines", map[string]interface{}{"title": "x", "assigned_attorney": "y"}, http.StatusBadRequest},
		{"bad due time", "/api/cases/" + parent.ID + "/deadlines", map[string]interface{}{"title": "x", "due_date": "2025-03-11", "due_time": "5pm", "assigned_attorney": "y"}, http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if code, env := doJSON(t, router, http.MethodPost, tt.path, tt.body); code != tt.wantStatus {
				t.Errorf("Expected status %d, got %d (%s)", tt.wantStatus, code, env.Error)
			}
		})
	}
}

func TestManualScheduleEvents(t *testing.T) {
	router, _ := setupTestRouter(t)

	code, env := doJSON(t, router, http.MethodPost, "/api/schedule", map[string]interface{}{
		"title":       "Filing reminder",
		"event_type":  "deadline",
		"date":        "2025-03-12",
		"deadline_id": "forged",
	})
	if code != http.StatusCreated {
		t.Fatalf("create event: status %d: %s", code, env.Error)
	}
	var ev database.Schedule
	decode(t, env, &ev)
	if ev.IsMirror() || ev.Status != database.ScheduleScheduled {
		t.Errorf("event = %+v", ev)
	}

	code, env = doJSON(t, router, http.MethodPut, "/api/schedule/"+ev.ID, map[string]interface{}{"status": "completed"})
	if code != http.StatusOK {
		t.Errorf("manual event update: status %d (%s)", code, env.Error)
	}

	code, env = doJSON(t, router, http.MethodGet, "/api/schedule/calendar?month=2025-03", nil)
	if code != http.StatusOK {
		t.Fatalf("calendar: status %d", code)
	}
	var grid struct {
		Month string `json:"month"`
		Weeks [][]struct {
			Date    string              `json:"date"`
			IsToday bool                `json:"is_today"`
			Events  []database.Schedule `json:"events"`
		} `json:"weeks"`
	}
	decode(t, env, &grid)
	if grid.Month != "2025-03" || len(grid.Weeks) != 6 {
		t.Fatalf("grid = %s with %d weeks", grid.Month, len(grid.Weeks))
	}
	found := false
	for _, w := range grid.Weeks {
		for _, d := range w {
			if d.Date == "2025-03-12" && len(d.Events) == 1 {
				found = true
			}
			if d.IsToday && d.Date != "2025-03-10" {
				t.Errorf("today flagged on %s", d.Date)
			}
		}
	}
	if !found {
		t.Error("event missing from its calendar day")
	}

	if code, _ := doJSON(t, router, http.MethodGet, "/api/schedule/calendar?month=March", nil); code != http.StatusBadRequest {
		t.Errorf("bad month: expected 400, got %d", code)
	}
}

func TestPayrollAndDashboard(t *testing.T) {
	router, _ := setupTestRouter(t)

	code, env := doJSON(t, router, http.MethodPost, "/api/employees", map[string]interface{}{
		"employee_id": "EMP-1",
		"full_name":   "Ada Finch",
		"email":       "ada@firm.test",
		"hire_date":   "2019-04-01",
	})
	if code != http.StatusCreated {
		t.Fatalf("create employee: status %d: %s", code, env.Error)
	}

	code, env = doJSON(t, router, http.MethodPost, "/api/payroll", map[string]interface{}{
		"employee_id": "EMP-1",
		"gross_pay":   5000,
		"deductions":  1234.56,
		"pay_date":    "2025-03-01",
	})
	if code != http.StatusCreated {
		t.Fatalf("create payroll: status %d: %s", code, env.Error)
	}
	var rec database.PayrollRecord
	decode(t, env, &rec)
	if rec.NetPay != 3765.44 || rec.EmployeeName != "Ada Finch" {
		t.Errorf("record = %+v", rec)
	}

	if code, _ := doJSON(t, router, http.MethodPost, "/api/payroll", map[string]interface{}{"employee_id": "EMP-404", "gross_pay": 1, "pay_date": "2025-03-01"}); code != http.StatusNotFound {
		t.Errorf("unknown employee: expected 404, got %d", code)
	}

	createCase(t, router, "CV-100", "Doe v. Roe", map[string]interface{}{"priority": "urgent", "case_value": 1500000})
	if code, env := doJSON(t, router, http.MethodPost, "/api/schedule", map[string]interface{}{
		"title": "Hearing", "event_type": "court_hearing", "date": "2025-03-14",
	}); code != http.StatusCreated {
		t.Fatalf("create event: status %d: %s", code, env.Error)
	}

	code, env = doJSON(t, router, http.MethodGet, "/api/dashboard", nil)
	if code != http.StatusOK {
		t.Fatalf("dashboard: status %d: %s", code, env.Error)
	}
	var dash struct {
		Stats struct {
			ActiveCases    int     `json:"active_cases"`
			UrgentCases    int     `json:"urgent_cases"`
			TotalCaseValue float64 `json:"total_case_value"`
			TotalEmployees int     `json:"total_employees"`
			EventsThisWeek int     `json:"events_this_week"`
		} `json:"stats"`
		Upcoming      []database.Schedule     `json:"upcoming_events"`
		PayrollMonth  struct{ Total float64 } `json:"payroll_month"`
		PayrollWindow struct {
			Payments int `json:"payments"`
		} `json:"payroll_window"`
	}
	decode(t, env, &dash)

	if dash.Stats.ActiveCases != 1 || dash.Stats.UrgentCases != 1 || dash.Stats.TotalCaseValue != 1500000 {
		t.Errorf("stats = %+v", dash.Stats)
	}
	if dash.Stats.TotalEmployees != 1 || dash.Stats.EventsThisWeek != 1 || len(dash.Upcoming) != 1 {
		t.Errorf("stats = %+v upcoming = %d", dash.Stats, len(dash.Upcoming))
	}
	if dash.PayrollMonth.Total != 3765.44 || dash.PayrollWindow.Payments != 1 {
		t.Errorf("payroll = %+v / %+v", dash.PayrollMonth, dash.PayrollWindow)
	}
}

func TestReconcileEndpoint(t *testing.T) {
	router, clients := setupTestRouter(t)
	parent := createCase(t, router, "CV-100", "Doe v. Roe", nil)

	// A deadline written straight to the store has no mirror yet.
	if _, err := clients.Deadlines.Create(testContext(t), &database.CaseDeadline{
		CaseID:           parent.ID,
		Title:            "Imported",
		DueDate:          "2025-04-01",
		AssignedAttorney: "A. Finch",
		Status:           database.DeadlinePending,
	}); err != nil {
		t.Fatalf("Failed to create deadline: %v", err)
	}

	code, env := doJSON(t, router, http.MethodPost, "/api/sync/reconcile", nil)
	if code != http.StatusOK {
		t.Fatalf("reconcile: status %d: %s", code, env.Error)
	}
	var run scheduler.Run
	decode(t, env, &run)
	if run.Report.Scanned != 1 || run.Report.Linked != 1 {
		t.Errorf("report = %+v", run.Report)
	}

	_, env = doJSON(t, router, http.MethodGet, "/api/schedule", nil)
	var events []database.Schedule
	decode(t, env, &events)
	if len(events) != 1 || !events[0].IsMirror() {
		t.Errorf("events = %+v", events)
	}
}

func TestDirectoryFilters(t *testing.T) {
	router, _ := setupTestRouter(t)

	for _, body := range []map[string]interface{}{
		{"employee_id": "EMP-1", "full_name": "Ada Finch", "email": "ada@firm.test", "hire_date": "2019-04-01", "department": "litigation"},
		{"employee_id": "EMP-2", "full_name": "Bo Marsh", "email": "bo@firm.test", "hire_date": "2021-09-01", "department": "corporate", "position": "paralegal"},
	} {
		if code, env := doJSON(t, router, http.MethodPost, "/api/employees", body); code != http.StatusCreated {
			t.Fatalf("create employee: status %d: %s", code, env.Error)
		}
	}
	if code, _ := doJSON(t, router, http.MethodPost, "/api/employees", map[string]interface{}{
		"employee_id": "EMP-3", "full_name": "No Mail", "email": "not-an-email", "hire_date": "2021-09-01",
	}); code != http.StatusBadRequest {
		t.Errorf("invalid email: expected 400, got %d", code)
	}

	_, env := doJSON(t, router, http.MethodGet, "/api/employees?department=corporate", nil)
	var employees []database.Employee
	decode(t, env, &employees)
	if len(employees) != 1 || employees[0].FullName != "Bo Marsh" {
		t.Errorf("employees = %+v", employees)
	}

	for _, body := range []map[string]interface{}{
		{"case_name": "Marbury v. Madison", "citation": "5 U.S. 137", "year": 1803, "practice_area": "constitutional"},
		{"case_name": "Palsgraf v. Long Island R.R.", "citation": "248 N.Y. 339", "year": 1928, "practice_area": "civil"},
	} {
		if code, env := doJSON(t, router, http.MethodPost, "/api/precedents", body); code != http.StatusCreated {
			t.Fatalf("create precedent: status %d: %s", code, env.Error)
		}
	}

	_, env = doJSON(t, router, http.MethodGet, "/api/precedents", nil)
	var precedents []database.Precedent
	decode(t, env, &precedents)
	if len(precedents) != 2 || precedents[0].Year != 1928 {
		t.Errorf("precedents should be newest year first: %+v", precedents)
	}

	_, env = doJSON(t, router, http.MethodGet, "/api/precedents?search=madison&practice_area=all", nil)
	decode(t, env, &precedents)
	if len(precedents) != 1 || precedents[0].Citation != "5 U.S. 137" {
		t.Errorf("precedents = %+v", precedents)
	}
}

// testContext mirrors testing.T.Context (Go 1.24+): canceled when the test cleans up.
func testContext(t *testing.T) context.Context {
	t.Helper()
	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)
	return ctx
}
