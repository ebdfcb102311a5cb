package query

import (
	"fmt"
	"net/url"
	"sort"
	"strconv"
	"strings"
	"time"

	"devcamper/internal/domain"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Reserved query keys that shape the query instead of filtering it.
const (
	KeySelect = "select"
	KeySort   = "sort"
	KeyPage   = "page"
	KeyLimit  = "limit"
)

var reservedKeys = []string{KeySelect, KeySort, KeyPage, KeyLimit}

// operators lists the comparison keywords accepted in filters.
var operators = map[string]bool{
	"gt":  true,
	"gte": true,
	"lt":  true,
	"lte": true,
	"in":  true,
}

// Modifiers are the reserved keys pulled out of a request.
type Modifiers struct {
	Select string
	Sort   string
	Page   string
	Limit  string
}

// Partition splits raw query values into the filter set and the modifiers.
// The input is not modified.
func Partition(values url.Values) (url.Values, Modifiers) {
	filter := make(url.Values, len(values))
	for k, v := range values {
		filter[k] = append([]string(nil), v...)
	}
	for _, k := range reservedKeys {
		delete(filter, k)
	}
	return filter, Modifiers{
		Select: values.Get(KeySelect),
		Sort:   values.Get(KeySort),
		Page:   values.Get(KeyPage),
		Limit:  values.Get(KeyLimit),
	}
}

// splitKey turns "averageCost[lte]" into ["averageCost", "lte"]. Keys with
// unbalanced brackets are returned whole.
func splitKey(key string) []string {
	open := strings.IndexByte(key, '[')
	if open <= 0 {
		return []string{key}
	}
	parts := []string{key[:open]}
	rest := key[open:]
	for rest != "" {
		if rest[0] != '[' {
			return []string{key}
		}
		end := strings.IndexByte(rest, ']')
		if end < 0 {
			return []string{key}
		}
		seg := rest[1:end]
		if seg == "" {
			// "careers[]=a" is the array form of "careers=a"
			if len(rest) != end+1 {
				return []string{key}
			}
			break
		}
		parts = append(parts, seg)
		rest = rest[end+1:]
	}
	return parts
}

// Nest builds the nested filter tree from bracketed query keys. A key seen
// once yields a string value; repeated keys yield []string.
func Nest(values url.Values) (map[string]any, error) {
	keys := make([]string, 0, len(values))
	for k := range values {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	tree := map[string]any{}
	for _, key := range keys {
		vals := values[key]
		if len(vals) == 0 {
			continue
		}
		var leaf any = vals[0]
		if len(vals) > 1 {
			leaf = vals
		}

		path := splitKey(key)
		node := tree
		for i, seg := range path {
			if i == len(path)-1 {
				if _, exists := node[seg]; exists {
					return nil, domain.NewValidationError(fmt.Sprintf("Conflicting filter for %s", path[0]))
				}
				node[seg] = leaf
				break
			}
			next, exists := node[seg]
			if !exists {
				child := map[string]any{}
				node[seg] = child
				node = child
				continue
			}
			child, ok := next.(map[string]any)
			if !ok {
				return nil, domain.NewValidationError(fmt.Sprintf("Conflicting filter for %s", path[0]))
			}
			node = child
		}
	}
	return tree, nil
}

// RewriteOperators walks the filter tree and prefixes comparison keywords
// used as keys with "$". Values are never inspected. Keys that already carry
// the prefix are kept; any other "$" key is rejected.
func RewriteOperators(tree map[string]any) (map[string]any, error) {
	out := make(map[string]any, len(tree))
	for k, v := range tree {
		key := k
		switch {
		case operators[k]:
			key = "$" + k
		case strings.HasPrefix(k, "$"):
			if !operators[strings.TrimPrefix(k, "$")] {
				return nil, domain.NewValidationError(fmt.Sprintf("Unsupported filter operator %s", k))
			}
		}

		if child, ok := v.(map[string]any); ok {
			rewritten, err := RewriteOperators(child)
			if err != nil {
				return nil, err
			}
			v = rewritten
		}
		if _, dup := out[key]; dup {
			return nil, domain.NewValidationError(fmt.Sprintf("Conflicting filter for %s", key))
		}
		out[key] = v
	}
	return out, nil
}

// ParseFilter turns the filter part of a request into a store filter, casting
// values according to schema.
func ParseFilter(values url.Values, schema domain.Schema) (bson.M, error) {
	tree, err := Nest(values)
	if err != nil {
		return nil, err
	}
	tree, err = RewriteOperators(tree)
	if err != nil {
		return nil, err
	}

	filter := bson.M{}
	for field, v := range tree {
		if strings.HasPrefix(field, "$") {
			return nil, domain.NewValidationError(fmt.Sprintf("Operator %s must follow a field", field))
		}
		cast, err := castNode(field, v, schema)
		if err != nil {
			return nil, err
		}
		filter[field] = cast
	}
	return filter, nil
}

func castNode(path string, v any, schema domain.Schema) (any, error) {
	switch node := v.(type) {
	case map[string]any:
		out := bson.M{}
		for k, child := range node {
			if strings.HasPrefix(k, "$") {
				cast, err := castOperand(path, k, child, schema)
				if err != nil {
					return nil, err
				}
				out[k] = cast
				continue
			}
			cast, err := castNode(path+"."+k, child, schema)
			if err != nil {
				return nil, err
			}
			out[k] = cast
		}
		return out, nil
	case []string:
		return castList(path, node, schema)
	case string:
		return castValue(path, node, schema)
	default:
		return v, nil
	}
}

func castOperand(path, op string, v any, schema domain.Schema) (any, error) {
	switch node := v.(type) {
	case string:
		if op == "$in" {
			return castList(path, []string{node}, schema)
		}
		return castValue(path, node, schema)
	case []string:
		if op == "$in" {
			return castList(path, node, schema)
		}
		return nil, domain.NewValidationError(fmt.Sprintf("Filter %s on %s takes a single value", op, path))
	default:
		return nil, domain.NewValidationError(fmt.Sprintf("Invalid operand for %s on %s", op, path))
	}
}

func castList(path string, raw []string, schema domain.Schema) (bson.A, error) {
	out := make(bson.A, 0, len(raw))
	for _, s := range raw {
		v, err := castValue(path, s, schema)
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, nil
}

func castValue(path, raw string, schema domain.Schema) (any, error) {
	switch schema.Kind(path) {
	case domain.KindNumber:
		n, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
		if err != nil {
			return nil, domain.CastError{Value: raw, Err: err}
		}
		return n, nil
	case domain.KindBool:
		b, err := strconv.ParseBool(strings.TrimSpace(raw))
		if err != nil {
			return nil, domain.CastError{Value: raw, Err: err}
		}
		return b, nil
	case domain.KindDate:
		raw = strings.TrimSpace(raw)
		if t, err := time.Parse(time.RFC3339Nano, raw); err == nil {
			return t.UTC(), nil
		}
		t, err := time.Parse("2006-01-02", raw)
		if err != nil {
			return nil, domain.CastError{Value: raw, Err: err}
		}
		return t.UTC(), nil
	case domain.KindObjectID:
		id, err := primitive.ObjectIDFromHex(strings.TrimSpace(raw))
		if err != nil {
			return nil, domain.CastError{Value: raw, Err: err}
		}
		return id, nil
	default:
		return raw, nil
	}
}
