package students

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"BBS-backend/internal/platform/web"
)

type Handler struct{ svc *Service }

func RegisterRoutes(r gin.IRoutes, svc *Service) {
	h := &Handler{svc: svc}
	r.POST("/students", h.Create)
	r.GET("/students", h.List)
	r.GET("/students/:id", h.Get)
	r.PUT("/students/:id", h.Update)
	r.DELETE("/students/:id", h.Delete)
	// nested listing used by the school detail page
	r.GET("/schools/:id/students", h.ListBySchool)
}

func (h *Handler) Create(c *gin.Context) {
	var req CreateStudentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		web.BadRequest(c, "invalid json or missing required fields")
		return
	}
	res, err := h.svc.Create(c.Request.Context(), req)
	if err != nil {
		web.WriteError(c, err)
		return
	}
	c.Header("Location", "/students/"+res.StudentID)
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
	h.list(c, SearchQuery{SchoolID: web.OptionalString(c, "school_id")})
}

func (h *Handler) ListBySchool(c *gin.Context) {
	id := c.Param("id")
	h.list(c, SearchQuery{SchoolID: &id})
}

func (h *Handler) list(c *gin.Context, q SearchQuery) {
	q.Q = web.OptionalString(c, "q")
	q.Active = web.OptionalBool(c, "active")
	p := web.ParsePage(c)
	items, total, err := h.svc.List(c.Request.Context(), q, p)
	if err != nil {
		web.WriteError(c, err)
		return
	}
	c.JSON(http.StatusOK, web.NewList(items, total, p))
}

func (h *Handler) Update(c *gin.Context) {
	var req UpdateStudentRequest
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

func (h *Handler) Delete(c *gin.Context) {
	if err := h.svc.Delete(c.Request.Context(), c.Param("id")); err != nil {
		web.WriteError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
