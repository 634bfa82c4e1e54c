package cashflow

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"

	"BBS-backend/internal/platform/web"
)

type Handler struct{ svc *Service }

func RegisterRoutes(r gin.IRoutes, svc *Service) {
	h := &Handler{svc: svc}
	r.POST("/cashflow/categories", h.CreateCategory)
	r.GET("/cashflow/categories", h.ListCategories)
	r.GET("/cashflow/categories/:id", h.GetCategory)
	r.PUT("/cashflow/categories/:id", h.UpdateCategory)
	r.DELETE("/cashflow/categories/:id", h.DisableCategory)

	r.POST("/cashflow/entries", h.CreateEntry)
	r.GET("/cashflow/entries", h.ListEntries)
	r.GET("/cashflow/entries/:id", h.GetEntry)
	r.PUT("/cashflow/entries/:id", h.UpdateEntry)
	r.DELETE("/cashflow/entries/:id", h.DeleteEntry)

	r.GET("/cashflow/summary", h.Summary)
	r.GET("/cashflow/export", h.Export)
}

func categoryID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		web.BadRequest(c, "invalid id")
		return 0, false
	}
	return uint(id), true
}

// GET /cashflow/categories?all=1
func (h *Handler) ListCategories(c *gin.Context) {
	res, err := h.svc.ListCategories(c.Request.Context(), web.ParseBoolish(c.Query("all")))
	if err != nil {
		web.WriteError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"items": res})
}

func (h *Handler) GetCategory(c *gin.Context) {
	id, ok := categoryID(c)
	if !ok {
		return
	}
	res, err := h.svc.GetCategory(c.Request.Context(), id)
	if err != nil {
		web.WriteError(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

func (h *Handler) CreateCategory(c *gin.Context) {
	var req CreateCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		web.BadRequest(c, "name and code are required")
		return
	}
	res, err := h.svc.CreateCategory(c.Request.Context(), req)
	if err != nil {
		web.WriteError(c, err)
		return
	}
	c.Header("Location", "/cashflow/categories/"+strconv.FormatUint(uint64(res.ID), 10))
	c.JSON(http.StatusCreated, res)
}

func (h *Handler) UpdateCategory(c *gin.Context) {
	id, ok := categoryID(c)
	if !ok {
		return
	}
	var req UpdateCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		web.BadRequest(c, "name and code are required")
		return
	}
	res, err := h.svc.UpdateCategory(c.Request.Context(), id, req)
	if err != nil {
		web.WriteError(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

// DELETE disables the category.
func (h *Handler) DisableCategory(c *gin.Context) {
	id, ok := categoryID(c)
	if !ok {
		return
	}
	if err := h.svc.DisableCategory(c.Request.Context(), id); err != nil {
		web.WriteError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *Handler) CreateEntry(c *gin.Context) {
	var req CreateEntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		web.BadRequest(c, "invalid json: type (income|expense), category_id, amount > 0 and occurred_on (YYYY-MM-DD) are required")
		return
	}
	res, err := h.svc.CreateEntry(c.Request.Context(), req)
	if err != nil {
		web.WriteError(c, err)
		return
	}
	c.Header("Location", "/cashflow/entries/"+res.ID)
	c.JSON(http.StatusCreated, res)
}

func (h *Handler) GetEntry(c *gin.Context) {
	res, err := h.svc.GetEntry(c.Request.Context(), c.Param("id"))
	if err != nil {
		web.WriteError(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

func (h *Handler) ListEntries(c *gin.Context) {
	f := EntryFilter{From: web.OptionalString(c, "from"), To: web.OptionalString(c, "to")}
	if v := web.OptionalString(c, "type"); v != nil {
		t := EntryType(*v)
		f.Type = &t
	}
	if v := web.OptionalString(c, "category_id"); v != nil {
		id, err := strconv.ParseUint(*v, 10, 64)
		if err != nil {
			web.BadRequest(c, "category_id must be a number")
			return
		}
		cid := uint(id)
		f.CategoryID = &cid
	}
	p := web.ParsePage(c)
	items, total, err := h.svc.ListEntries(c.Request.Context(), f, p)
	if err != nil {
		web.WriteError(c, err)
		return
	}
	c.JSON(http.StatusOK, web.NewList(items, total, p))
}

func (h *Handler) UpdateEntry(c *gin.Context) {
	var req UpdateEntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		web.BadRequest(c, "invalid json")
		return
	}
	res, err := h.svc.UpdateEntry(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		web.WriteError(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

func (h *Handler) DeleteEntry(c *gin.Context) {
	if err := h.svc.DeleteEntry(c.Request.Context(), c.Param("id")); err != nil {
		web.WriteError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// GET /cashflow/summary?from=&to=
func (h *Handler) Summary(c *gin.Context) {
	res, err := h.svc.Summary(c.Request.Context(), web.OptionalString(c, "from"), web.OptionalString(c, "to"))
	if err != nil {
		web.WriteError(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

// GET /cashflow/export?from=&to=&encoding=utf-8|cp932
func (h *Handler) Export(c *gin.Context) {
	enc, ok := ParseEncoding(c.Query("encoding"))
	if !ok {
		web.BadRequest(c, "encoding must be utf-8 or cp932")
		return
	}
	entries, name, err := h.svc.Export(c.Request.Context(), web.OptionalString(c, "from"), web.OptionalString(c, "to"))
	if err != nil {
		web.WriteError(c, err)
		return
	}
	charset := "utf-8"
	if enc == EncodingCP932 {
		charset = "shift_jis"
	}
	c.Header("Content-Type", "text/csv; charset="+charset)
	c.Header("Content-Disposition", `attachment; filename="`+name+`"`)
	c.Status(http.StatusOK)
	if err := WriteCSVEncoded(c.Writer, entries, enc); err != nil {
		// headers are gone; only the log can tell
		log.WithError(err).Error("cashflow export failed mid-stream")
	}
}
