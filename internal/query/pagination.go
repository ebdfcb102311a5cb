package query

import (
	"math"
	"strings"

	"devcamper/internal/domain"
)

const (
	DefaultPage  = 1
	DefaultLimit = 25
	MaxLimit     = 100

	// maxPage keeps (page-1)*limit well inside int64.
	maxPage = math.MaxInt32
)

// Window is the skip-and-take range of one page.
type Window struct {
	Page       int
	Limit      int
	StartIndex int64
	EndIndex   int64
}

// NewWindow computes the window for a valid page and limit.
func NewWindow(page, limit int) Window {
	return Window{
		Page:       page,
		Limit:      limit,
		StartIndex: int64(page-1) * int64(limit),
		EndIndex:   int64(page) * int64(limit),
	}
}

// ParseWindow reads page and limit the way a browser-facing API expects:
// leading digits are used, anything unreadable falls back to the defaults.
// page is at least 1; limit is at least 1 and at most maxLimit (MaxLimit when
// maxLimit <= 0).
func ParseWindow(page, limit string, maxLimit int) Window {
	if maxLimit <= 0 {
		maxLimit = MaxLimit
	}

	p, ok := parseLeadingInt(page)
	if !ok || p < 1 {
		p = DefaultPage
	}
	if p > maxPage {
		p = maxPage
	}

	l, ok := parseLeadingInt(limit)
	if !ok || l < 1 {
		l = DefaultLimit
	}
	if l > maxLimit {
		l = maxLimit
	}
	return NewWindow(p, l)
}

// Paginate derives neighbour pages from the number of matching documents.
func (w Window) Paginate(total int64) domain.Pagination {
	var p domain.Pagination
	if w.EndIndex < total {
		p.Next = &domain.PageRef{Page: w.Page + 1, Limit: w.Limit}
	}
	if w.StartIndex > 0 {
		p.Prev = &domain.PageRef{Page: w.Page - 1, Limit: w.Limit}
	}
	return p
}

// parseLeadingInt reads an optional sign followed by decimal digits and
// ignores whatever trails them ("3abc" is 3). Values too large for an int
// saturate.
func parseLeadingInt(s string) (int, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, false
	}
	neg := false
	switch s[0] {
	case '-':
		neg = true
		s = s[1:]
	case '+':
		s = s[1:]
	}

	n := 0
	digits := 0
	for _, r := range s {
		if r < '0' || r > '9' {
			break
		}
		digits++
		if n > (math.MaxInt-9)/10 {
			n = math.MaxInt
			continue
		}
		n = n*10 + int(r-'0')
	}
	if digits == 0 {
		return 0, false
	}
	if neg {
		return -n, true
	}
	return n, true
}
