package api

import (
	"net/http"

	"github.com/JustJay7/lawdesk/internal/calendar"
	"github.com/JustJay7/lawdesk/internal/database"
	"github.com/JustJay7/lawdesk/internal/deadline"
	"github.com/JustJay7/lawdesk/internal/entity"
	"github.com/gin-gonic/gin"
)

func (h *Handlers) ListSchedule(c *gin.Context) {
	events, err := h.listSchedule(c.Request.Context())
	if err != nil {
		h.fail(c, err)
		return
	}
	respond(c, http.StatusOK, events)
}

// CreateScheduleEvent adds a manual calendar event. Mirrors are created
// only by the deadline synchronizer, so a submitted deadline_id is dropped.
func (h *Handlers) CreateScheduleEvent(c *gin.Context) {
	var req database.Schedule
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "Invalid request body: "+err.Error())
		return
	}
	req.Base = database.Base{}
	req.DeadlineID = nil
	if req.Status == "" {
		req.Status = database.ScheduleScheduled
	}

	created, err := h.clients.Schedules.Create(c.Request.Context(), &req)
	if err != nil {
		h.fail(c, err)
		return
	}
	h.cache.Invalidate(entity.Schedules)
	respond(c, http.StatusCreated, created)
}

// UpdateScheduleEvent edits a manual event. Mirror events answer 409.
func (h *Handlers) UpdateScheduleEvent(c *gin.Context) {
	ctx := c.Request.Context()
	fields, ok := bindFields(c)
	if !ok {
		return
	}
	delete(fields, "deadline_id")

	existing, err := h.clients.Schedules.Get(ctx, c.Param("id"))
	if err != nil {
		h.fail(c, err)
		return
	}
	if err := deadline.GuardScheduleEdit(*existing); err != nil {
		h.fail(c, err)
		return
	}

	updated, err := h.clients.Schedules.Update(ctx, existing.ID, fields)
	if err != nil {
		h.fail(c, err)
		return
	}
	h.cache.Invalidate(entity.Schedules)
	respond(c, http.StatusOK, updated)
}

// Calendar returns the month grid for ?month=YYYY-MM, defaulting to the
// current month.
func (h *Handlers) Calendar(c *gin.Context) {
	today := h.today()
	anchor, err := calendar.ParseMonth(c.Query("month"), today)
	if err != nil {
		badRequest(c, err.Error())
		return
	}

	events, err := h.listSchedule(c.Request.Context())
	if err != nil {
		h.fail(c, err)
		return
	}
	respond(c, http.StatusOK, calendar.MonthGrid(anchor, events, today))
}
