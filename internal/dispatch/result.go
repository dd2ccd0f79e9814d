package dispatch

import "encoding/json"

// Result is the JSON-shapeable outcome of one dispatch. It always carries a
// "success" key; failures carry "error" and optionally "expected".
type Result map[string]any

// Failure builds a failed Result with the given error message.
func Failure(msg string) Result {
	return Result{"success": false, "error": msg}
}

// shapeSuccess normalizes a handler's return value per the dispatch
// contract: nil becomes a bare success, JSON objects get "success": true
// injected when absent, and anything else is wrapped under "result".
func shapeSuccess(v any) Result {
	if v == nil {
		return Result{"success": true}
	}

	if m, ok := v.(map[string]any); ok {
		return injectSuccess(m)
	}
	if r, ok := v.(Result); ok {
		return injectSuccess(r)
	}

	// Struct results are mappings on the wire; round-trip through JSON to
	// treat them uniformly.
	encoded, err := json.Marshal(v)
	if err == nil && len(encoded) > 0 && encoded[0] == '{' {
		var m map[string]any
		if json.Unmarshal(encoded, &m) == nil {
			return injectSuccess(m)
		}
	}

	return Result{"success": true, "result": v}
}

func injectSuccess(m map[string]any) Result {
	if _, ok := m["success"]; !ok {
		m["success"] = true
	}
	return m
}
