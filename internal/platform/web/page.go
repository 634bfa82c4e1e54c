package web

import (
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
)

const (
	DefaultPageLimit = 50
	MaxPageLimit     = 200
)

type Page struct {
	Limit  int
	Offset int
	Order  string // "asc" or "desc"
}

// Normalize clamps the page into range and defaults the order to desc.
func (p Page) Normalize() Page {
	if p.Limit <= 0 {
		p.Limit = DefaultPageLimit
	}
	if p.Limit > MaxPageLimit {
		p.Limit = MaxPageLimit
	}
	if p.Offset < 0 {
		p.Offset = 0
	}
	if p.Order != "asc" {
		p.Order = "desc"
	}
	return p
}

// SQLOrder returns ASC or DESC for direct use in an ORDER BY clause.
func (p Page) SQLOrder() string {
	if p.Order == "asc" {
		return "ASC"
	}
	return "DESC"
}

func ParsePage(c *gin.Context) Page {
	return Page{
		Limit:  AtoiDefault(c.Query("limit"), DefaultPageLimit),
		Offset: AtoiDefault(c.Query("offset"), 0),
		Order:  strings.ToLower(c.DefaultQuery("order", "desc")),
	}.Normalize()
}

func NextOffset(total int64, p Page) int {
	n := p.Offset + p.Limit
	if n >= int(total) {
		return 0
	}
	return n
}

type ListResponse[T any] struct {
	Items      []T   `json:"items"`
	Total      int64 `json:"total"`
	NextOffset int   `json:"next_offset"`
}

func NewList[T any](items []T, total int64, p Page) ListResponse[T] {
	if items == nil {
		items = []T{}
	}
	return ListResponse[T]{Items: items, Total: total, NextOffset: NextOffset(total, p)}
}

func AtoiDefault(s string, d int) int {
	if s == "" {
		return d
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return d
	}
	return n
}

// ParseBoolish accepts 1/true/yes. Anything else is false.
func ParseBoolish(s string) bool {
	s = strings.TrimSpace(strings.ToLower(s))
	return s == "1" || s == "true" || s == "yes"
}

// OptionalBool returns nil when the query parameter is absent.
func OptionalBool(c *gin.Context, key string) *bool {
	v, ok := c.GetQuery(key)
	if !ok || v == "" {
		return nil
	}
	b := ParseBoolish(v)
	return &b
}

func OptionalString(c *gin.Context, key string) *string {
	v := strings.TrimSpace(c.Query(key))
	if v == "" {
		return nil
	}
	return &v
}
