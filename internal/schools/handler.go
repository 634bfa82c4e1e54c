package schools

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"BBS-backend/internal/platform/web"
)

type Handler struct{ svc *Service }

func RegisterRoutes(r gin.IRoutes, svc *Service) {
	h := &Handler{svc: svc}
	r.POST("/schools", h.Create)
	r.GET("/schools", h.List)
	r.GET("/schools/:id", h.Get)
	r.PUT("/schools/:id", h.Update)
	r.DELETE("/schools/:id", h.Delete)
}

func (h *Handler) Create(c *gin.Context) {
	var req CreateSchoolRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		web.BadRequest(c, "invalid json or missing required fields")
		return
	}
	res, err := h.svc.Create(c.Request.Context(), req)
	if err != nil {
		web.WriteError(c, err)
		return
	}
	c.Header("Location", "/schools/"+res.SchoolID)
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
	q := SearchQuery{
		Q:      web.OptionalString(c, "q"),
		Active: web.OptionalBool(c, "active"),
	}
	p := web.ParsePage(c)
	items, total, err := h.svc.List(c.Request.Context(), q, p)
	if err != nil {
		web.WriteError(c, err)
		return
	}
	c.JSON(http.StatusOK, web.NewList(items, total, p))
}

func (h *Handler) Update(c *gin.Context) {
	var req UpdateSchoolRequest
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
