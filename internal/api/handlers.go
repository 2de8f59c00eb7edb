package api

import (
	"context"
	"errors"
	"net/http"
	"sync"
	"time"

	"github.com/JustJay7/lawdesk/internal/cache"
	"github.com/JustJay7/lawdesk/internal/config"
	"github.com/JustJay7/lawdesk/internal/dashboard"
	"github.com/JustJay7/lawdesk/internal/database"
	"github.com/JustJay7/lawdesk/internal/deadline"
	"github.com/JustJay7/lawdesk/internal/entity"
	"github.com/JustJay7/lawdesk/internal/scheduler"
	"github.com/JustJay7/lawdesk/pkg/logger"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// Default list orders, one per collection.
const (
	caseSort      = "-created_date"
	employeeSort  = "full_name"
	precedentSort = "-year"
	payrollSort   = "-pay_date"
	deadlineSort  = "-due_date"
	syncLogSort   = "-created_date"
)

// Handlers holds all HTTP handlers
type Handlers struct {
	db        *gorm.DB
	clients   *entity.Clients
	sync      *deadline.Synchronizer
	cache     cache.Cache
	scheduler *scheduler.Scheduler
	logger    *logger.Logger
	cfg       *config.Config
	now       func() time.Time
}

// NewHandlers creates a new handlers instance
func NewHandlers(
	db *gorm.DB,
	clients *entity.Clients,
	sync *deadline.Synchronizer,
	cache cache.Cache,
	scheduler *scheduler.Scheduler,
	logger *logger.Logger,
	cfg *config.Config,
) *Handlers {
	return &Handlers{
		db:        db,
		clients:   clients,
		sync:      sync,
		cache:     cache,
		scheduler: scheduler,
		logger:    logger,
		cfg:       cfg,
		now:       time.Now,
	}
}

// today is the current time in the configured calendar timezone.
func (h *Handlers) today() time.Time {
	now := h.now()
	if h.cfg != nil && h.cfg.Location != nil {
		now = now.In(h.cfg.Location)
	}
	return now
}

// HealthCheck returns the health status
func (h *Handlers) HealthCheck(c *gin.Context) {
	dbHealthy := false
	if sqlDB, err := h.db.DB(); err == nil {
		dbHealthy = sqlDB.PingContext(c.Request.Context()) == nil
	}

	status := "healthy"
	code := http.StatusOK
	if !dbHealthy {
		status = "degraded"
		code = http.StatusServiceUnavailable
	}

	resp := gin.H{
		"status":   status,
		"database": dbHealthy,
		"cache":    h.cache.Stats(),
		"time":     h.now().Unix(),
	}
	if h.scheduler != nil {
		if run, ok := h.scheduler.Last(); ok {
			resp["last_reconcile"] = run
		}
	}
	c.JSON(code, resp)
}

// CacheStats returns cache statistics
func (h *Handlers) CacheStats(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"stats":   h.cache.Stats(),
	})
}

// Dashboard loads the four collections concurrently and returns the
// landing-page rollups.
func (h *Handlers) Dashboard(c *gin.Context) {
	ctx := c.Request.Context()

	var (
		cases     []database.Case
		employees []database.Employee
		events    []database.Schedule
		payroll   []database.PayrollRecord
	)
	loads := []func() error{
		func() (err error) { cases, err = h.listCases(ctx); return },
		func() (err error) { employees, err = h.listEmployees(ctx); return },
		func() (err error) { events, err = h.listSchedule(ctx); return },
		func() (err error) { payroll, err = h.listPayroll(ctx); return },
	}

	errs := make([]error, len(loads))
	var wg sync.WaitGroup
	for i, load := range loads {
		wg.Add(1)
		go func(index int, fn func() error) {
			defer wg.Done()
			errs[index] = fn()
		}(i, load)
	}
	wg.Wait()

	if err := errors.Join(errs...); err != nil {
		h.fail(c, err)
		return
	}

	today := h.today()
	respond(c, http.StatusOK, gin.H{
		"stats":           dashboard.CaseStats(cases, employees, events, today),
		"upcoming_events": dashboard.Upcoming(events, today, dashboard.DefaultUpcomingLimit),
		"recent_cases":    firstN(cases, 5),
		"payroll_window":  dashboard.PayrollWindow(payroll, today),
		"payroll_month":   dashboard.PayrollMonth(payroll, today),
	})
}

// Reconcile runs a reconcile pass now.
func (h *Handlers) Reconcile(c *gin.Context) {
	run := h.scheduler.RunOnce(c.Request.Context())
	h.cache.Invalidate(entity.Deadlines)
	h.cache.Invalidate(entity.Schedules)

	switch {
	case run.Skipped:
		c.JSON(http.StatusConflict, gin.H{
			"success": false,
			"error":   "a reconcile pass is already running",
		})
	case run.Error != "":
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"success": false,
			"error":   run.Error,
			"data":    run,
		})
	default:
		respond(c, http.StatusOK, run)
	}
}

// SyncLogs lists recent synchronizer steps, newest first. Optional filters:
// deadline_id, action, success.
func (h *Handlers) SyncLogs(c *gin.Context) {
	pred := entity.Fields{}
	if v := c.Query("deadline_id"); v != "" {
		pred["deadline_id"] = v
	}
	if v := c.Query("action"); v != "" {
		pred["action"] = v
	}
	if v := c.Query("success"); v != "" {
		pred["success"] = v == "true"
	}

	logs, err := h.clients.SyncLogs.Filter(c.Request.Context(), pred, syncLogSort)
	if err != nil {
		h.fail(c, err)
		return
	}
	respond(c, http.StatusOK, firstN(logs, 100))
}

// Cached collection loaders. Each caches the full collection in its
// default order; search and filters run over the cached slice.

func (h *Handlers) listCases(ctx context.Context) ([]database.Case, error) {
	return cache.Collection(h.cache, cache.GenerateCacheKey(entity.Cases, caseSort), func() ([]database.Case, error) {
		return h.clients.Cases.List(ctx, caseSort)
	})
}

func (h *Handlers) listEmployees(ctx context.Context) ([]database.Employee, error) {
	return cache.Collection(h.cache, cache.GenerateCacheKey(entity.Employees, employeeSort), func() ([]database.Employee, error) {
		return h.clients.Employees.List(ctx, employeeSort)
	})
}

func (h *Handlers) listSchedule(ctx context.Context) ([]database.Schedule, error) {
	return cache.Collection(h.cache, cache.GenerateCacheKey(entity.Schedules, "date"), func() ([]database.Schedule, error) {
		return h.clients.Schedules.List(ctx, "date")
	})
}

func (h *Handlers) listPayroll(ctx context.Context) ([]database.PayrollRecord, error) {
	return cache.Collection(h.cache, cache.GenerateCacheKey(entity.Payroll, payrollSort), func() ([]database.PayrollRecord, error) {
		return h.clients.Payroll.List(ctx, payrollSort)
	})
}

func (h *Handlers) listPrecedents(ctx context.Context) ([]database.Precedent, error) {
	return cache.Collection(h.cache, cache.GenerateCacheKey(entity.Precedents, precedentSort), func() ([]database.Precedent, error) {
		return h.clients.Precedents.List(ctx, precedentSort)
	})
}

func (h *Handlers) listDeadlines(ctx context.Context, caseID string) ([]database.CaseDeadline, error) {
	return cache.Collection(h.cache, cache.GenerateCacheKey(entity.Deadlines, caseID), func() ([]database.CaseDeadline, error) {
		return h.clients.Deadlines.Filter(ctx, entity.Fields{"case_id": caseID}, deadlineSort)
	})
}

func respond(c *gin.Context, status int, data interface{}) {
	c.JSON(status, gin.H{
		"success": true,
		"data":    data,
	})
}

// fail maps an error onto its HTTP status and writes the error envelope.
func (h *Handlers) fail(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, deadline.ErrMirrorOwned):
		status = http.StatusConflict
	case entity.IsValidation(err):
		status = http.StatusBadRequest
	case entity.IsNotFound(err):
		status = http.StatusNotFound
	case entity.IsTransport(err):
		status = http.StatusServiceUnavailable
	}

	if status >= http.StatusInternalServerError {
		h.logger.Error("Request failed", "path", c.FullPath(), "error", err)
	}

	body := gin.H{
		"success": false,
		"error":   err.Error(),
	}
	if code := entity.CodeOf(err); code != "" {
		body["code"] = code
	}
	c.JSON(status, body)
}

func badRequest(c *gin.Context, msg string) {
	c.JSON(http.StatusBadRequest, gin.H{
		"success": false,
		"error":   msg,
	})
}

func firstN[T any](items []T, n int) []T {
	if len(items) > n {
		return items[:n]
	}
	return items
}
