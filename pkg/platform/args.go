package platform

// Channel payloads round-trip through JSON, so numbers usually arrive as
// float64 even when the sender passed an int. Handlers coerce instead of
// type-asserting a single width.

func toFloat64(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	case uint32:
		return float64(n), true
	}
	return 0, false
}

func toInt(v any) (int, bool) {
	n, ok := toFloat64(v)
	return int(n), ok
}

func toInt64(v any) (int64, bool) {
	n, ok := toFloat64(v)
	return int64(n), ok
}

func toUint32(v any) (uint32, bool) {
	n, ok := toFloat64(v)
	if !ok || n < 0 {
		return 0, false
	}
	return uint32(n), true
}

func parseString(v any) string {
	s, _ := v.(string)
	return s
}

// parseMap returns the payload as a string-keyed map, or nil when the
// payload is absent or has another shape.
func parseMap(v any) map[string]any {
	m, _ := v.(map[string]any)
	return m
}
