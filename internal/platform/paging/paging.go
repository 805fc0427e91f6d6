package paging

import (
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
)

const (
	DefaultLimit = 50
	MaxLimit     = 200
)

type Page struct {
	Limit  int
	Offset int
	Order  string // "asc" or "desc"
}

// Normalize は範囲外の値を既定値に寄せる
func (p Page) Normalize() Page {
	if p.Limit <= 0 {
		p.Limit = DefaultLimit
	}
	if p.Limit > MaxLimit {
		p.Limit = MaxLimit
	}
	if p.Offset < 0 {
		p.Offset = 0
	}
	if strings.ToLower(p.Order) == "asc" {
		p.Order = "ASC"
	} else {
		p.Order = "DESC"
	}
	return p
}

func FromQuery(c *gin.Context) Page {
	return Page{
		Limit:  atoiDef(c.Query("limit"), DefaultLimit),
		Offset: atoiDef(c.Query("offset"), 0),
		Order:  c.DefaultQuery("order", "desc"),
	}.Normalize()
}

type Result[T any] struct {
	Items      []T   `json:"items"`
	Total      int64 `json:"total"`
	NextOffset int   `json:"next_offset"`
}

// NewResult: next_offset は 0 で終端
func NewResult[T any](items []T, total int64, p Page) Result[T] {
	if items == nil {
		items = []T{}
	}
	next := p.Offset + p.Limit
	if next >= int(total) {
		next = 0
	}
	return Result[T]{Items: items, Total: total, NextOffset: next}
}

func atoiDef(s string, d int) int {
	if s == "" {
		return d
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		return d
	}
	return v
}
