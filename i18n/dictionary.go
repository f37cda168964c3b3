package i18n

import (
	"fmt"
	"regexp"
	"strings"
)

// Dictionary maps translation keys to display strings. Values are either
// strings or nested dictionaries, as decoded from JSON.
type Dictionary map[string]any

// Lookup resolves a dot-delimited key such as "form.submit.label". It
// reports false when a segment is missing or the value is not a string.
func (d Dictionary) Lookup(key string) (string, bool) {
	var cur any = map[string]any(d)
	for _, seg := range strings.Split(key, ".") {
		m, ok := asMap(cur)
		if !ok {
			return "", false
		}
		if cur, ok = m[seg]; !ok {
			return "", false
		}
	}
	s, ok := cur.(string)
	return s, ok
}

func asMap(v any) (map[string]any, bool) {
	switch m := v.(type) {
	case map[string]any:
		return m, true
	case Dictionary:
		return m, true
	}
	return nil, false
}

var placeholder = regexp.MustCompile(`\{\{\s*([\w.-]+)\s*\}\}`)

// Interpolate replaces every {{name}} in s with params[name]. Placeholders
// without a matching parameter are left as they are.
func Interpolate(s string, params map[string]any) string {
	if len(params) == 0 || !strings.Contains(s, "{{") {
		return s
	}
	return placeholder.ReplaceAllStringFunc(s, func(m string) string {
		name := placeholder.FindStringSubmatch(m)[1]
		v, ok := params[name]
		if !ok {
			return m
		}
		return fmt.Sprint(v)
	})
}
