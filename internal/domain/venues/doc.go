// Package venues implements the venue directory core: the codec that
// transforms venue documents between their client and storage shapes, the
// facebook event date merge, and the service that composes both with the
// document repository.
package venues

import "encoding/json"

// Storage document field names. Serialization renames the client-facing id to
// the internal idField on the way in; deserialization renames it back and
// strips the internal-only fields.
const (
	idField        = "_id"
	clientIDField  = "id"
	sourceIDField  = "sourceId"
	queryTextField = "queryText"
)

func deepCopyMap(in map[string]any) map[string]any {
	out := make(map[string]any, len(in))
	for k, v := range in {
		out[k] = deepCopyValue(v)
	}
	return out
}

func deepCopyValue(v any) any {
	switch value := v.(type) {
	case map[string]any:
		return deepCopyMap(value)
	case []any:
		out := make([]any, len(value))
		for i, item := range value {
			out[i] = deepCopyValue(item)
		}
		return out
	default:
		return v
	}
}

func renameKey(doc map[string]any, from, to string) {
	if value, ok := doc[from]; ok {
		delete(doc, from)
		doc[to] = value
	}
}

func stringValue(doc map[string]any, key string) (string, bool) {
	value, ok := doc[key].(string)
	if !ok || value == "" {
		return "", false
	}
	return value, true
}

func numberValue(doc map[string]any, key string) (float64, bool) {
	return toFloat(doc[key])
}

func toFloat(v any) (float64, bool) {
	switch value := v.(type) {
	case float64:
		return value, true
	case float32:
		return float64(value), true
	case int:
		return float64(value), true
	case int32:
		return float64(value), true
	case int64:
		return float64(value), true
	case json.Number:
		f, err := value.Float64()
		if err != nil {
			return 0, false
		}
		return f, true
	default:
		return 0, false
	}
}
