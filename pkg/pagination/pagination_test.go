package pagination

import "testing"

func TestNormalize(t *testing.T) {
	cases := []struct {
		name    string
		in      Params
		page    int
		perPage int
	}{
		{"zeroValues", Params{}, 1, DefaultPerPage},
		{"negativePage", Params{Page: -3, PerPage: 10}, 1, 10},
		{"overMax", Params{Page: 2, PerPage: 5000}, 2, MaxPerPage},
		{"passthrough", Params{Page: 4, PerPage: 25}, 4, 25},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := tc.in.Normalize()
			if got.Page != tc.page || got.PerPage != tc.perPage {
				t.Fatalf("got %+v, want page=%d perPage=%d", got, tc.page, tc.perPage)
			}
		})
	}
}

func TestOffset(t *testing.T) {
	if got := (Params{Page: 3, PerPage: 5}).Offset(); got != 10 {
		t.Fatalf("expected offset 10, got %d", got)
	}
	if got := (Params{}).Offset(); got != 0 {
		t.Fatalf("expected offset 0 for defaults, got %d", got)
	}
}

func TestTotalPages(t *testing.T) {
	if got := TotalPages(0, 5); got != 0 {
		t.Fatalf("empty table should have 0 pages, got %d", got)
	}
	if got := TotalPages(10, 5); got != 2 {
		t.Fatalf("expected 2 pages, got %d", got)
	}
	if got := TotalPages(11, 5); got != 3 {
		t.Fatalf("expected 3 pages with remainder, got %d", got)
	}
}

func TestNewMeta(t *testing.T) {
	meta := NewMeta(Params{Page: 2, PerPage: 5}, 12)
	if meta.Page != 2 || meta.PerPage != 5 || meta.Total != 12 || meta.TotalPages != 3 {
		t.Fatalf("unexpected meta %+v", meta)
	}
}
