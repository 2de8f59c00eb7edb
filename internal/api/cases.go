package api

import (
	"errors"
	"net/http"

	"github.com/JustJay7/lawdesk/internal/database"
	"github.com/JustJay7/lawdesk/internal/deadline"
	"github.com/JustJay7/lawdesk/internal/entity"
	"github.com/JustJay7/lawdesk/internal/views"
	"github.com/gin-gonic/gin"
)

// ListCases returns cases newest first, narrowed by search, status,
// court_level, priority and case_type.
func (h *Handlers) ListCases(c *gin.Context) {
	cases, err := h.listCases(c.Request.Context())
	if err != nil {
		h.fail(c, err)
		return
	}
	respond(c, http.StatusOK, views.Cases(cases, views.CaseQuery(c.Request.URL.Query())))
}

func (h *Handlers) GetCase(c *gin.Context) {
	rec, err := h.clients.Cases.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.fail(c, err)
		return
	}
	respond(c, http.StatusOK, rec)
}

func (h *Handlers) CreateCase(c *gin.Context) {
	var req database.Case
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "Invalid request body: "+err.Error())
		return
	}
	req.Base = database.Base{}
	if req.Status == "" {
		req.Status = database.CaseActive
	}
	if req.Priority == "" {
		req.Priority = database.PriorityMedium
	}
	if req.CaseType == "" {
		req.CaseType = "civil"
	}

	created, err := h.clients.Cases.Create(c.Request.Context(), &req)
	if err != nil {
		h.fail(c, err)
		return
	}
	h.cache.Invalidate(entity.Cases)
	respond(c, http.StatusCreated, created)
}

func (h *Handlers) UpdateCase(c *gin.Context) {
	fields, ok := bindFields(c)
	if !ok {
		return
	}

	updated, err := h.clients.Cases.Update(c.Request.Context(), c.Param("id"), fields)
	if err != nil {
		h.fail(c, err)
		return
	}
	h.cache.Invalidate(entity.Cases)
	respond(c, http.StatusOK, updated)
}

// ListDeadlines returns a case's deadlines, latest due date first, each
// classified by urgency.
func (h *Handlers) ListDeadlines(c *gin.Context) {
	ctx := c.Request.Context()
	parent, err := h.clients.Cases.Get(ctx, c.Param("id"))
	if err != nil {
		h.fail(c, err)
		return
	}

	deadlines, err := h.listDeadlines(ctx, parent.ID)
	if err != nil {
		h.fail(c, err)
		return
	}
	respond(c, http.StatusOK, deadline.Annotate(h.today(), deadlines))
}

// CreateDeadline adds a deadline to a case together with its calendar
// mirror. When the deadline is stored but the mirror is not, the response
// is still 201 and carries a warning; reconcile completes the mirror.
func (h *Handlers) CreateDeadline(c *gin.Context) {
	ctx := c.Request.Context()
	parent, err := h.clients.Cases.Get(ctx, c.Param("id"))
	if err != nil {
		h.fail(c, err)
		return
	}

	var in deadline.Input
	if err := c.ShouldBindJSON(&in); err != nil {
		badRequest(c, "Invalid request body: "+err.Error())
		return
	}

	created, err := h.sync.Create(ctx, in, parent)
	h.invalidateDeadlines()
	h.respondSynced(c, http.StatusCreated, created, err)
}

// respondSynced answers a synchronizer write. A deadline that was stored
// while its mirror was not is still a success, flagged for reconcile.
func (h *Handlers) respondSynced(c *gin.Context, status int, d *database.CaseDeadline, err error) {
	var mirrorErr *deadline.MirrorError
	switch {
	case errors.As(err, &mirrorErr):
		h.logger.Warn("Deadline mirror pending", "deadline_id", mirrorErr.DeadlineID, "error", mirrorErr.Err)
		c.JSON(status, gin.H{
			"success":        true,
			"data":           d,
			"mirror_pending": true,
			"warning":        mirrorErr.Error(),
		})
	case err != nil:
		h.fail(c, err)
	default:
		respond(c, status, d)
	}
}

// UpdateDeadline merges the submitted fields into a deadline and refreshes
// its case snapshot and mirror. Omitted fields keep their stored value.
func (h *Handlers) UpdateDeadline(c *gin.Context) {
	ctx := c.Request.Context()
	existing, err := h.clients.Deadlines.Get(ctx, c.Param("id"))
	if err != nil {
		h.fail(c, err)
		return
	}

	var changes deadline.Changes
	if err := c.ShouldBindJSON(&changes); err != nil {
		badRequest(c, "Invalid request body: "+err.Error())
		return
	}

	parent, err := h.clients.Cases.Get(ctx, existing.CaseID)
	if err != nil && !entity.IsNotFound(err) {
		h.fail(c, err)
		return
	}

	updated, err := h.sync.Update(ctx, existing, changes, parent)
	h.invalidateDeadlines()
	h.respondSynced(c, http.StatusOK, updated, err)
}

func (h *Handlers) SetDeadlineStatus(c *gin.Context) {
	ctx := c.Request.Context()
	var req struct {
		Status database.DeadlineStatus `json:"status" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "Invalid request body: "+err.Error())
		return
	}

	existing, err := h.clients.Deadlines.Get(ctx, c.Param("id"))
	if err != nil {
		h.fail(c, err)
		return
	}

	updated, err := h.sync.SetStatus(ctx, existing, req.Status)
	h.invalidateDeadlines()
	h.respondSynced(c, http.StatusOK, updated, err)
}

func (h *Handlers) invalidateDeadlines() {
	h.cache.Invalidate(entity.Deadlines)
	h.cache.Invalidate(entity.Schedules)
}

// bindFields reads a partial update body. Bookkeeping fields are ignored.
func bindFields(c *gin.Context) (entity.Fields, bool) {
	var fields entity.Fields
	if err := c.ShouldBindJSON(&fields); err != nil {
		badRequest(c, "Invalid request body: "+err.Error())
		return nil, false
	}
	for _, key := range []string{"id", "created_date", "updated_date"} {
		delete(fields, key)
	}
	return fields, true
}
