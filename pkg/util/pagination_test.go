package util

import "testing"

func TestNormalizePage(t *testing.T) {
	tests := []struct {
		name                string
		page, limit         int
		wantPage, wantLimit int
	}{
		{"defaults", 0, 0, 1, 10},
		{"negative page", -3, 20, 1, 20},
		{"limit clamped", 2, 500, 2, 100},
		{"passthrough", 4, 25, 4, 25},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			page, limit := NormalizePage(tt.page, tt.limit)
			if page != tt.wantPage || limit != tt.wantLimit {
				t.Errorf("NormalizePage(%d,%d) = (%d,%d), want (%d,%d)",
					tt.page, tt.limit, page, limit, tt.wantPage, tt.wantLimit)
			}
		})
	}
}

func TestNewPaginationMeta(t *testing.T) {
	meta := NewPaginationMeta(25, 2, 10)
	if meta.TotalItems != 25 || meta.TotalPages != 3 {
		t.Fatalf("unexpected totals: %+v", meta)
	}
	if meta.NextPage == nil || *meta.NextPage != 3 {
		t.Errorf("expected next page 3, got %v", meta.NextPage)
	}
	if meta.PrevPage == nil || *meta.PrevPage != 1 {
		t.Errorf("expected prev page 1, got %v", meta.PrevPage)
	}
}

func TestNewPaginationMetaEdges(t *testing.T) {
	first := NewPaginationMeta(5, 1, 10)
	if first.TotalPages != 1 {
		t.Errorf("expected 1 page, got %d", first.TotalPages)
	}
	if first.NextPage != nil || first.PrevPage != nil {
		t.Errorf("expected no neighbors on single page: %+v", first)
	}

	empty := NewPaginationMeta(0, 1, 10)
	if empty.TotalPages != 0 || empty.NextPage != nil {
		t.Errorf("unexpected meta for empty set: %+v", empty)
	}
}
