package dashboard

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"BBS-backend/internal/platform/web"
)

type Handler struct{ svc *Service }

func RegisterRoutes(r gin.IRoutes, svc *Service) {
	h := &Handler{svc: svc}
	r.GET("/dashboard/overview", h.Overview)
	r.GET("/dashboard/calendar", h.Calendar)
}

func (h *Handler) Overview(c *gin.Context) {
	res, err := h.svc.Overview(c.Request.Context())
	if err != nil {
		web.WriteError(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

// GET /dashboard/calendar?year=2025&month=1[&school_id=]
// year and month default to the current month.
func (h *Handler) Calendar(c *gin.Context) {
	now := h.svc.clock.Now().UTC()
	year, err := strconv.Atoi(c.DefaultQuery("year", strconv.Itoa(now.Year())))
	if err != nil {
		web.BadRequest(c, "year must be a number")
		return
	}
	month, err := strconv.Atoi(c.DefaultQuery("month", strconv.Itoa(int(now.Month()))))
	if err != nil {
		web.BadRequest(c, "month must be a number")
		return
	}
	res, err := h.svc.Calendar(c.Request.Context(), year, month, web.OptionalString(c, "school_id"))
	if err != nil {
		web.WriteError(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}
