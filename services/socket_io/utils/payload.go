package socketio_utils

// Helpers for the loosely typed payloads socket.io hands us: clients send
// JSON objects, the parser delivers map[string]interface{} with float64
// numbers.

// ObjectArg extracts the first event argument as an object payload.
func ObjectArg(args []interface{}) (map[string]interface{}, bool) {
	if len(args) < 1 {
		return nil, false
	}
	payload, ok := args[0].(map[string]interface{})
	return payload, ok
}

// StringField reads a string field, empty when missing or mistyped.
func StringField(payload map[string]interface{}, field string) string {
	value, _ := payload[field].(string)
	return value
}

// IntField reads a numeric field (JSON numbers arrive as float64), with ok
// reporting whether it was present as a number.
func IntField(payload map[string]interface{}, field string) (int, bool) {
	switch v := payload[field].(type) {
	case float64:
		return int(v), true
	case int:
		return v, true
	}
	return 0, false
}
