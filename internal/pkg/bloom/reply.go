package bloom

import (
	"fmt"
	"strconv"
)

// truthy normalizes the boolean-flavored replies RESP2 and RESP3 produce.
func truthy(v any) bool {
	switch t := v.(type) {
	case int64:
		return t == 1
	case string:
		return t == "1" || t == "OK"
	case bool:
		return t
	case []byte:
		return truthy(string(t))
	}
	return false
}

func toInt64(v any) (int64, bool) {
	switch t := v.(type) {
	case int64:
		return t, true
	case bool:
		if t {
			return 1, true
		}
		return 0, true
	case float64:
		return int64(t), true
	case string:
		n, err := strconv.ParseInt(t, 10, 64)
		return n, err == nil
	case []byte:
		return toInt64(string(t))
	case nil:
		return 0, true
	}
	return 0, false
}

func toInt64s(v any) ([]int64, bool) {
	list, ok := v.([]any)
	if !ok {
		return nil, false
	}
	out := make([]int64, len(list))
	for i, e := range list {
		n, ok := toInt64(e)
		if !ok {
			return nil, false
		}
		out[i] = n
	}
	return out, true
}

func toLabel(v any) (string, bool) {
	switch t := v.(type) {
	case string:
		return t, true
	case []byte:
		return string(t), true
	}
	return "", false
}

// toInfo decodes a RESP2 flat list or a RESP3 map.
func toInfo(v any) (Info, bool) {
	info := Info{}
	switch t := v.(type) {
	case []any:
		for i := 0; i < len(t); i += 2 {
			label, ok := toLabel(t[i])
			if !ok {
				return nil, false
			}
			var n int64
			if i+1 < len(t) {
				n, _ = toInt64(t[i+1])
			}
			info[normalizeInfoLabel(label)] = n
		}
	case map[any]any:
		for k, val := range t {
			label, ok := toLabel(k)
			if !ok {
				return nil, false
			}
			n, _ := toInt64(val)
			info[normalizeInfoLabel(label)] = n
		}
	case map[string]any:
		for k, val := range t {
			n, _ := toInt64(val)
			info[normalizeInfoLabel(k)] = n
		}
	default:
		return nil, false
	}
	return info, true
}

// toAttr accepts a bare integer or a one-element list.
func toAttr(v any) (int64, bool) {
	if list, ok := v.([]any); ok {
		if len(list) != 1 {
			return 0, false
		}
		v = list[0]
	}
	if v == nil {
		return 0, false
	}
	return toInt64(v)
}

func toChunk(v any) (Chunk, bool) {
	list, ok := v.([]any)
	if !ok || len(list) != 2 {
		return Chunk{}, false
	}
	iter, ok := toInt64(list[0])
	if !ok {
		return Chunk{}, false
	}
	var data []byte
	switch d := list[1].(type) {
	case string:
		data = []byte(d)
	case []byte:
		data = d
	case nil:
	default:
		return Chunk{}, false
	}
	return Chunk{Iterator: iter, Data: data}, true
}

func describe(v any) string {
	return fmt.Sprintf("%T(%v)", v, v)
}
