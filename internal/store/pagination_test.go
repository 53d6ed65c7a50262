package store

import "testing"

func TestParsePage(t *testing.T) {
	tests := []struct {
		raw  string
		want int
	}{
		{"", 1},
		{"abc", 1},
		{"0", 1},
		{"-3", 1},
		{"2", 2},
		{"99", 99},
	}
	for _, tt := range tests {
		if got := ParsePage(tt.raw, 5); got.Number != tt.want {
			t.Errorf("ParsePage(%q) = %d, want %d", tt.raw, got.Number, tt.want)
		}
	}
}

func TestPageClampTo(t *testing.T) {
	p := NewPage(99, 5)

	// 12 items at size 5 = 3 pages; page 99 clamps to 3.
	if got := p.ClampTo(12); got.Number != 3 {
		t.Errorf("ClampTo(12) = %d, want 3", got.Number)
	}

	// Empty set clamps to page 1.
	if got := p.ClampTo(0); got.Number != 1 {
		t.Errorf("ClampTo(0) = %d, want 1", got.Number)
	}

	// In-range pages are untouched.
	if got := NewPage(2, 5).ClampTo(12); got.Number != 2 {
		t.Errorf("ClampTo(12) on page 2 = %d, want 2", got.Number)
	}
}

func TestPageOffset(t *testing.T) {
	if got := NewPage(1, 5).Offset(); got != 0 {
		t.Errorf("page 1 offset = %d, want 0", got)
	}
	if got := NewPage(3, 5).Offset(); got != 10 {
		t.Errorf("page 3 offset = %d, want 10", got)
	}
}

func TestNewPagedResult(t *testing.T) {
	items := []string{"a", "b", "c"}
	r := NewPagedResult(items, NewPage(1, 5), 12)

	if r.TotalPages != 3 {
		t.Errorf("TotalPages = %d, want 3", r.TotalPages)
	}
	if !r.HasNext() || r.HasPrev() {
		t.Error("page 1 of 3 should have next but not prev")
	}

	last := NewPagedResult(items, NewPage(3, 5), 12)
	if last.HasNext() || !last.HasPrev() {
		t.Error("page 3 of 3 should have prev but not next")
	}

	empty := NewPagedResult([]string{}, NewPage(1, 5), 0)
	if empty.TotalPages != 1 {
		t.Errorf("empty result TotalPages = %d, want 1", empty.TotalPages)
	}
}
