package evaluation

import (
	"encoding/json"
	"strconv"
)

// Answers arrive either as native Go values (library callers) or as the
// generic shapes encoding/json produces (float64 numbers, []interface{},
// map[string]interface{} with string keys). The helpers below accept both.

func asInt(v interface{}) (int, bool) {
	switch t := v.(type) {
	case int:
		return t, true
	case int64:
		return int(t), true
	case float64:
		if t == float64(int(t)) {
			return int(t), true
		}
	case json.Number:
		if n, err := t.Int64(); err == nil {
			return int(n), true
		}
	}
	return 0, false
}

func asIntSlice(v interface{}) ([]int, bool) {
	switch t := v.(type) {
	case []int:
		return t, true
	case []interface{}:
		out := make([]int, 0, len(t))
		for _, e := range t {
			n, ok := asInt(e)
			if !ok {
				return nil, false
			}
			out = append(out, n)
		}
		return out, true
	}
	return nil, false
}

func asMap(v interface{}) (map[string]interface{}, bool) {
	m, ok := v.(map[string]interface{})
	return m, ok
}

// asIntMap reads an index->index mapping. JSON objects carry string keys, so
// both {0:0} and {"0":0} are accepted.
func asIntMap(v interface{}) (map[int]int, bool) {
	switch t := v.(type) {
	case map[int]int:
		return t, true
	case map[string]interface{}:
		out := make(map[int]int, len(t))
		for k, e := range t {
			ki, err := strconv.Atoi(k)
			if err != nil {
				continue
			}
			if n, ok := asInt(e); ok {
				out[ki] = n
			}
		}
		return out, true
	}
	return nil, false
}
