package schedules

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"BBS-backend/internal/domain"
	"BBS-backend/internal/platform/web"
)

type Handler struct{ svc *Service }

func RegisterRoutes(r gin.IRoutes, svc *Service) {
	h := &Handler{svc: svc}
	r.POST("/schedules", h.Create)
	r.GET("/schedules", h.List)
	r.GET("/schedules/:id", h.Get)
	r.PUT("/schedules/:id", h.Update)
	r.PATCH("/schedules/:id/status", h.SetStatus)
	r.DELETE("/schedules/:id", h.Delete)
}

func (h *Handler) Create(c *gin.Context) {
	var req CreateScheduleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		web.BadRequest(c, "invalid json or missing required fields")
		return
	}
	res, err := h.svc.Create(c.Request.Context(), req)
	if err != nil {
		web.WriteError(c, err)
		return
	}
	c.Header("Location", "/schedules/"+res.ID)
	c.JSON(http.StatusCreated, res)
}

func (h *Handler) Get(c *gin.Context) {
	res, err := h.svc.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		web.WriteError(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

func (h *Handler) List(c *gin.Context) {
	f := Filter{
		From:      web.OptionalString(c, "from"),
		To:        web.OptionalString(c, "to"),
		SchoolID:  web.OptionalString(c, "school_id"),
		TeacherID: web.OptionalString(c, "teacher_id"),
	}
	if v := web.OptionalString(c, "status"); v != nil {
		st := domain.ScheduleStatus(*v)
		f.Status = &st
	}
	p := web.ParsePage(c)
	items, total, err := h.svc.List(c.Request.Context(), f, p)
	if err != nil {
		web.WriteError(c, err)
		return
	}
	c.JSON(http.StatusOK, web.NewList(items, total, p))
}

func (h *Handler) Update(c *gin.Context) {
	var req UpdateScheduleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		web.BadRequest(c, "invalid json")
		return
	}
	res, err := h.svc.Update(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		web.WriteError(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

func (h *Handler) SetStatus(c *gin.Context) {
	var req UpdateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		web.BadRequest(c, "status must be one of scheduled, completed, cancelled, rescheduled")
		return
	}
	res, err := h.svc.SetStatus(c.Request.Context(), c.Param("id"), domain.ScheduleStatus(req.Status))
	if err != nil {
		web.WriteError(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

func (h *Handler) Delete(c *gin.Context) {
	if err := h.svc.Delete(c.Request.Context(), c.Param("id")); err != nil {
		web.WriteError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
