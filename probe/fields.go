package probe

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// FieldError reports a value that is present but cannot be read the way the
// summary needs, such as a string where an object was expected.
type FieldError struct {
	Path     string
	Expected string
	Found    string
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("field %s: expected %s, got %s", e.Path, e.Expected, e.Found)
}

// Field walks nested objects by key. A missing key at any depth yields nil. A
// value that is present but is not an object where one is needed, including
// null, is a FieldError.
func Field(v any, path ...string) (any, error) {
	val, _, err := lookup(v, path)
	return val, err
}

// List reads the value at path as an array. Missing means empty; any other
// non-array value, null included, is a FieldError.
func List(v any, path ...string) ([]any, error) {
	val, found, err := lookup(v, path)
	if err != nil {
		return nil, err
	}
	if !found {
		return []any{}, nil
	}
	list, ok := val.([]any)
	if !ok {
		return nil, &FieldError{Path: describe(path), Expected: "array", Found: typeName(val)}
	}
	return list, nil
}

func lookup(v any, path []string) (any, bool, error) {
	cur := v
	for i, key := range path {
		obj, ok := cur.(map[string]any)
		if !ok {
			return nil, false, &FieldError{Path: describe(path[:i]), Expected: "object", Found: typeName(cur)}
		}
		next, present := obj[key]
		if !present {
			return nil, false, nil
		}
		cur = next
	}
	return cur, true, nil
}

// Display renders a decoded JSON value for the report. nil renders empty.
func Display(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case json.Number:
		return t.String()
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(t)
	}
	b, err := json.Marshal(v)
	if err != nil {
		return fmt.Sprint(v)
	}
	return string(b)
}

func describe(path []string) string {
	if len(path) == 0 {
		return "<body>"
	}
	return strconv.Quote(strings.Join(path, "."))
}

func typeName(v any) string {
	switch v.(type) {
	case nil:
		return "null"
	case map[string]any:
		return "object"
	case []any:
		return "array"
	case string:
		return "string"
	case json.Number, float64:
		return "number"
	case bool:
		return "boolean"
	}
	return fmt.Sprintf("%T", v)
}
