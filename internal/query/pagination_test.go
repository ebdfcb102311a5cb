package query

import "testing"

func TestParseWindow(t *testing.T) {
	cases := []struct {
		Page, Limit string
		Max         int
		WantPage    int
		WantLimit   int
	}{
		{"", "", 0, 1, 25},
		{"2", "10", 0, 2, 10},
		{"abc", "xyz", 0, 1, 25},
		{"0", "0", 0, 1, 25},
		{"-3", "-5", 0, 1, 25},
		{"3abc", "7.9", 0, 3, 7},
		{"1", "500", 0, 1, MaxLimit},
		{"1", "500", 200, 1, 200},
		{"99999999999999999999999", "10", 0, maxPage, 10},
	}

	for _, c := range cases {
		w := ParseWindow(c.Page, c.Limit, c.Max)
		if w.Page != c.WantPage || w.Limit != c.WantLimit {
			t.Fatalf("ParseWindow(%q, %q) = page %d limit %d, want %d/%d", c.Page, c.Limit, w.Page, w.Limit, c.WantPage, c.WantLimit)
		}
		if w.StartIndex != int64(w.Page-1)*int64(w.Limit) || w.EndIndex != int64(w.Page)*int64(w.Limit) {
			t.Fatalf("bad indexes for %+v", w)
		}
		if w.StartIndex < 0 {
			t.Fatalf("negative start index for %+v", w)
		}
	}
}

func TestPaginate(t *testing.T) {
	cases := []struct {
		Page, Limit int
		Total       int64
		Next, Prev  bool
	}{
		{1, 25, 0, false, false},
		{1, 2, 5, true, false},
		{2, 2, 5, true, true},
		{3, 2, 5, false, true},
		{2, 2, 4, false, true},
		{10, 2, 5, false, true},
	}

	for _, c := range cases {
		p := NewWindow(c.Page, c.Limit).Paginate(c.Total)
		if (p.Next != nil) != c.Next || (p.Prev != nil) != c.Prev {
			t.Fatalf("page %d limit %d total %d: next=%v prev=%v", c.Page, c.Limit, c.Total, p.Next, p.Prev)
		}
		if p.Next != nil && (p.Next.Page != c.Page+1 || p.Next.Limit != c.Limit) {
			t.Fatalf("bad next ref: %+v", p.Next)
		}
		if p.Prev != nil && (p.Prev.Page != c.Page-1 || p.Prev.Limit != c.Limit) {
			t.Fatalf("bad prev ref: %+v", p.Prev)
		}
	}
}
