package api

import (
	"net/http"

	"github.com/JustJay7/lawdesk/internal/database"
	"github.com/JustJay7/lawdesk/internal/entity"
	"github.com/JustJay7/lawdesk/internal/payroll"
	"github.com/JustJay7/lawdesk/internal/views"
	"github.com/gin-gonic/gin"
)

// ListEmployees returns employees by name, narrowed by search, position,
// department and status.
func (h *Handlers) ListEmployees(c *gin.Context) {
	employees, err := h.listEmployees(c.Request.Context())
	if err != nil {
		h.fail(c, err)
		return
	}
	respond(c, http.StatusOK, views.Employees(employees, views.EmployeeQuery(c.Request.URL.Query())))
}

func (h *Handlers) CreateEmployee(c *gin.Context) {
	var req database.Employee
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "Invalid request body: "+err.Error())
		return
	}
	req.Base = database.Base{}
	if req.Status == "" {
		req.Status = "active"
	}

	created, err := h.clients.Employees.Create(c.Request.Context(), &req)
	if err != nil {
		h.fail(c, err)
		return
	}
	h.cache.Invalidate(entity.Employees)
	respond(c, http.StatusCreated, created)
}

func (h *Handlers) UpdateEmployee(c *gin.Context) {
	fields, ok := bindFields(c)
	if !ok {
		return
	}

	updated, err := h.clients.Employees.Update(c.Request.Context(), c.Param("id"), fields)
	if err != nil {
		h.fail(c, err)
		return
	}
	h.cache.Invalidate(entity.Employees)
	respond(c, http.StatusOK, updated)
}

// ListPayroll returns payroll records, most recent pay date first.
func (h *Handlers) ListPayroll(c *gin.Context) {
	records, err := h.listPayroll(c.Request.Context())
	if err != nil {
		h.fail(c, err)
		return
	}
	respond(c, http.StatusOK, records)
}

// CreatePayroll records a payment for the employee whose employee_id code
// is submitted.
func (h *Handlers) CreatePayroll(c *gin.Context) {
	ctx := c.Request.Context()
	var in payroll.Input
	if err := c.ShouldBindJSON(&in); err != nil {
		badRequest(c, "Invalid request body: "+err.Error())
		return
	}
	if in.EmployeeID == "" {
		badRequest(c, "employee_id is required")
		return
	}

	emps, err := h.clients.Employees.Filter(ctx, entity.Fields{"employee_id": in.EmployeeID}, "")
	if err != nil {
		h.fail(c, err)
		return
	}
	if len(emps) == 0 {
		h.fail(c, entity.NotFoundError(entity.Employees, in.EmployeeID))
		return
	}

	rec, err := payroll.NewRecord(in, &emps[0])
	if err != nil {
		h.fail(c, err)
		return
	}
	created, err := h.clients.Payroll.Create(ctx, rec)
	if err != nil {
		h.fail(c, err)
		return
	}
	h.cache.Invalidate(entity.Payroll)
	respond(c, http.StatusCreated, created)
}

// ListPrecedents returns precedents newest year first, narrowed by search,
// practice_area, relevance and court.
func (h *Handlers) ListPrecedents(c *gin.Context) {
	precedents, err := h.listPrecedents(c.Request.Context())
	if err != nil {
		h.fail(c, err)
		return
	}
	respond(c, http.StatusOK, views.Precedents(precedents, views.PrecedentQuery(c.Request.URL.Query())))
}

func (h *Handlers) CreatePrecedent(c *gin.Context) {
	var req database.Precedent
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "Invalid request body: "+err.Error())
		return
	}
	req.Base = database.Base{}

	created, err := h.clients.Precedents.Create(c.Request.Context(), &req)
	if err != nil {
		h.fail(c, err)
		return
	}
	h.cache.Invalidate(entity.Precedents)
	respond(c, http.StatusCreated, created)
}

func (h *Handlers) UpdatePrecedent(c *gin.Context) {
	fields, ok := bindFields(c)
	if !ok {
		return
	}

	updated, err := h.clients.Precedents.Update(c.Request.Context(), c.Param("id"), fields)
	if err != nil {
		h.fail(c, err)
		return
	}
	h.cache.Invalidate(entity.Precedents)
	respond(c, http.StatusOK, updated)
}
