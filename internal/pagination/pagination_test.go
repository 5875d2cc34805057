package pagination

import "testing"

func TestDefaults(t *testing.T) {
	tests := []struct {
		name string
		in   PageRequest
		want PageRequest
	}{
		{"zero", PageRequest{}, PageRequest{Page: 1, PageSize: DefaultPageSize}},
		{"kept", PageRequest{Page: 3, PageSize: 10}, PageRequest{Page: 3, PageSize: 10}},
		{"capped", PageRequest{Page: 1, PageSize: 500}, PageRequest{Page: 1, PageSize: MaxPageSize}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.in
			got.Defaults()
			if got != tt.want {
				t.Errorf("got %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestNewPageResponse(t *testing.T) {
	resp := NewPageResponse[int](nil, PageRequest{Page: 2, PageSize: 20}, 41)
	if resp.TotalPages != 3 {
		t.Errorf("expected 3 pages, got %d", resp.TotalPages)
	}
	if resp.Data == nil {
		t.Error("expected empty slice, not nil")
	}
	if (PageRequest{Page: 2, PageSize: 20}).Offset() != 20 {
		t.Error("expected offset 20 on page 2")
	}
}

func TestMap(t *testing.T) {
	in := NewPageResponse([]int{1, 2}, PageRequest{Page: 1, PageSize: 2}, 5)
	out := Map(in, func(n int) string { return string(rune('a' + n)) })
	if out.Data[0] != "b" || out.Data[1] != "c" || out.TotalItems != 5 || out.TotalPages != 3 {
		t.Errorf("unexpected mapped page: %+v", out)
	}
}
