package paging

import "testing"

func TestNormalize(t *testing.T) {
	p := Page{Limit: 1000, Offset: -3, Order: "ASC"}.Normalize()
	if p.Limit != MaxLimit || p.Offset != 0 || p.Order != "ASC" {
		t.Fatalf("unexpected %+v", p)
	}
	p = Page{}.Normalize()
	if p.Limit != DefaultLimit || p.Order != "DESC" {
		t.Fatalf("unexpected %+v", p)
	}
}

func TestNewResult_NextOffset(t *testing.T) {
	p := Page{Limit: 2, Offset: 0}
	r := NewResult([]int{1, 2}, 5, p)
	if r.NextOffset != 2 {
		t.Fatalf("next=%d", r.NextOffset)
	}
	r = NewResult([]int{5}, 5, Page{Limit: 2, Offset: 4})
	if r.NextOffset != 0 {
		t.Fatalf("expected terminal next_offset, got %d", r.NextOffset)
	}
	var empty []int
	if NewResult(empty, 0, p).Items == nil {
		t.Fatalf("items must marshal as [] not null")
	}
}
