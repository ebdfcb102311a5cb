package query

import (
	"fmt"
	"net/url"
	"strings"

	"devcamper/internal/domain"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// DefaultSort orders listings newest first.
const DefaultSort = "-createdAt"

// Options tunes Build.
type Options struct {
	MaxLimit    int
	DefaultSort string
}

// Spec is a fully resolved listing request.
type Spec struct {
	Filter     bson.M
	Projection bson.D
	Sort       bson.D
	Window     Window
}

// Build turns raw query values into a listing spec: reserved keys are split
// off, the remaining keys become a cast filter, and select/sort/page/limit
// shape the result.
func Build(values url.Values, schema domain.Schema, opts Options) (Spec, error) {
	raw, mods := Partition(values)

	filter, err := ParseFilter(raw, schema)
	if err != nil {
		return Spec{}, err
	}

	projection, err := ParseSelect(mods.Select)
	if err != nil {
		return Spec{}, err
	}

	defSort := opts.DefaultSort
	if defSort == "" {
		defSort = DefaultSort
	}
	sortBy := ParseSort(mods.Sort)
	if len(sortBy) == 0 {
		sortBy = ParseSort(defSort)
	}

	return Spec{
		Filter:     filter,
		Projection: projection,
		Sort:       sortBy,
		Window:     ParseWindow(mods.Page, mods.Limit, opts.MaxLimit),
	}, nil
}

// FindOptions applies projection, sort and the page window.
func (s Spec) FindOptions() *options.FindOptions {
	opts := options.Find().
		SetSkip(s.Window.StartIndex).
		SetLimit(int64(s.Window.Limit))
	if len(s.Sort) > 0 {
		opts.SetSort(s.Sort)
	}
	if len(s.Projection) > 0 {
		opts.SetProjection(s.Projection)
	}
	return opts
}

// ParseSelect reads "name,description" into an inclusion projection. A
// leading "-" excludes a field instead; the two styles cannot be mixed apart
// from excluding _id.
func ParseSelect(raw string) (bson.D, error) {
	var (
		proj     bson.D
		included bool
		excluded bool
	)
	for _, field := range splitList(raw) {
		v := 1
		if strings.HasPrefix(field, "-") {
			field = strings.TrimPrefix(field, "-")
			if field == "" {
				continue
			}
			v = 0
			if field != "_id" {
				excluded = true
			}
		} else {
			included = true
		}
		proj = append(proj, bson.E{Key: field, Value: v})
	}
	if included && excluded {
		return nil, domain.NewValidationError(fmt.Sprintf("Cannot mix included and excluded fields in select %q", raw))
	}
	return proj, nil
}

// ParseSort reads "-averageCost,name" into an ordered sort document. Empty
// input yields an empty document.
func ParseSort(raw string) bson.D {
	var out bson.D
	seen := map[string]bool{}
	for _, field := range splitList(raw) {
		dir := 1
		if strings.HasPrefix(field, "-") {
			dir = -1
			field = strings.TrimPrefix(field, "-")
		}
		if field == "" || seen[field] {
			continue
		}
		seen[field] = true
		out = append(out, bson.E{Key: field, Value: dir})
	}
	return out
}

func splitList(raw string) []string {
	out := []string{}
	for _, part := range strings.Split(raw, ",") {
		part = strings.TrimSpace(part)
		if part != "" {
			out = append(out, part)
		}
	}
	return out
}
