package domain

import "strings"

// FieldKind tells the filter parser how to cast a raw query-string value.
type FieldKind int

const (
	KindString FieldKind = iota
	KindNumber
	KindBool
	KindDate
	KindObjectID
)

// Schema maps stored field paths (dot separated) to their kind. Paths that
// are not listed are treated as strings.
type Schema map[string]FieldKind

// Kind resolves the kind of path. A nested path falls back to the closest
// declared ancestor, so "location.coordinates" inherits "location" when only
// the parent is declared.
func (s Schema) Kind(path string) FieldKind {
	for p := path; p != ""; {
		if k, ok := s[p]; ok {
			return k
		}
		i := strings.LastIndex(p, ".")
		if i < 0 {
			break
		}
		p = p[:i]
	}
	return KindString
}
