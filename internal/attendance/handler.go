package attendance

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"BBS-backend/internal/platform/web"
)

type Handler struct{ svc *Service }

func RegisterRoutes(r gin.IRoutes, svc *Service) {
	h := &Handler{svc: svc}
	r.POST("/attendance", h.Mark)
	r.DELETE("/attendance/:id", h.Delete)
	r.PUT("/schedules/:id/attendance", h.MarkBulk)
	r.GET("/schedules/:id/attendance", h.ListForSchedule)
	r.GET("/schedules/:id/statistics", h.Statistics)
	r.GET("/students/:id/attendance", h.StudentHistory)
}

// POST /attendance
func (h *Handler) Mark(c *gin.Context) {
	var req MarkRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		web.BadRequest(c, "invalid json: schedule_id, student_id and attendance_status (present|absent|late) are required; scores 0-100")
		return
	}
	res, created, err := h.svc.Mark(c.Request.Context(), req)
	if err != nil {
		web.WriteError(c, err)
		return
	}
	if created {
		c.Header("Location", "/attendance/"+res.ID)
		c.JSON(http.StatusCreated, res)
		return
	}
	c.JSON(http.StatusOK, res)
}

// PUT /schedules/:id/attendance
func (h *Handler) MarkBulk(c *gin.Context) {
	var req BulkRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		web.BadRequest(c, "invalid json: records[] with student_id and attendance_status required")
		return
	}
	items, err := h.svc.MarkBulk(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		web.WriteError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"schedule_id": c.Param("id"), "items": items})
}

func (h *Handler) ListForSchedule(c *gin.Context) {
	items, err := h.svc.ListForSchedule(c.Request.Context(), c.Param("id"))
	if err != nil {
		web.WriteError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"schedule_id": c.Param("id"), "items": items})
}

func (h *Handler) Statistics(c *gin.Context) {
	res, err := h.svc.Statistics(c.Request.Context(), c.Param("id"))
	if err != nil {
		web.WriteError(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

func (h *Handler) StudentHistory(c *gin.Context) {
	res, err := h.svc.StudentHistory(c.Request.Context(), c.Param("id"))
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
