package mapper

import (
	"bytes"
	"encoding/json"
	"math"
	"math/big"
	"strconv"
	"strings"
	"time"
)

// MaxSafeInteger is the largest integer a float64 holds exactly together with
// all of its predecessors (2^53). Exact integers above it lose precision in
// ExactToSafe and do not survive a round trip through SafeToExact.
const MaxSafeInteger = 1 << 53

// int64 range as float64 bounds: [-2^63, 2^63).
const (
	minInt64Float = -9223372036854775808.0
	maxInt64Float = 9223372036854775808.0
)

// ExactToSafe returns a copy of v with every exact integer leaf (int, int64,
// uint64, *big.Int, integer json.Number) converted to float64. Strings, bools,
// nil and time values are untouched.
func ExactToSafe(v any) any {
	return walk(v, exactToSafeLeaf)
}

// SafeToExact returns a copy of v with every integral float64 leaf inside the
// int64 range, and every integer json.Number, converted to int64. Fractional
// floats are left as they are.
func SafeToExact(v any) any {
	return walk(v, safeToExactLeaf)
}

// StringifyIntegers returns a copy of v in which every 64-bit integer leaf is
// rendered as a decimal string. Values that are not maps, slices or scalars
// are first flattened through their JSON encoding.
func StringifyIntegers(v any) any {
	switch v.(type) {
	case nil, string, bool, float32, float64, time.Time,
		int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64,
		json.Number, *big.Int, map[string]any, []any, []map[string]any:
		return walk(v, stringifyLeaf)
	}

	flat, ok := flatten(v)
	if !ok {
		return v
	}
	return walk(flat, stringifyLeaf)
}

func walk(v any, leaf func(any) any) any {
	switch val := v.(type) {
	case map[string]any:
		if val == nil {
			return val
		}
		out := make(map[string]any, len(val))
		for k, elem := range val {
			out[k] = walk(elem, leaf)
		}
		return out
	case []any:
		if val == nil {
			return val
		}
		out := make([]any, len(val))
		for i, elem := range val {
			out[i] = walk(elem, leaf)
		}
		return out
	case []map[string]any:
		if val == nil {
			return val
		}
		out := make([]map[string]any, len(val))
		for i, elem := range val {
			out[i], _ = walk(elem, leaf).(map[string]any)
		}
		return out
	default:
		return leaf(v)
	}
}

func exactToSafeLeaf(v any) any {
	switch n := v.(type) {
	case int:
		return float64(n)
	case int64:
		return float64(n)
	case uint64:
		return float64(n)
	case *big.Int:
		if n == nil {
			return v
		}
		f, _ := new(big.Float).SetInt(n).Float64()
		return f
	case json.Number:
		if i, err := n.Int64(); err == nil {
			return float64(i)
		}
		return v
	default:
		return v
	}
}

func safeToExactLeaf(v any) any {
	switch n := v.(type) {
	case float64:
		if n != math.Trunc(n) || n < minInt64Float || n >= maxInt64Float {
			return v
		}
		return int64(n)
	case json.Number:
		if i, err := n.Int64(); err == nil {
			return i
		}
		return v
	default:
		return v
	}
}

func stringifyLeaf(v any) any {
	switch n := v.(type) {
	case int:
		return strconv.Itoa(n)
	case int64:
		return strconv.FormatInt(n, 10)
	case uint64:
		return strconv.FormatUint(n, 10)
	case *big.Int:
		if n == nil {
			return v
		}
		return n.String()
	case json.Number:
		if isIntegerLiteral(string(n)) {
			return string(n)
		}
		return v
	default:
		return v
	}
}

func isIntegerLiteral(s string) bool {
	return s != "" && !strings.ContainsAny(s, ".eE")
}

func flatten(v any) (any, bool) {
	raw, err := json.Marshal(v)
	if err != nil {
		return nil, false
	}

	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()

	var out any
	if err := dec.Decode(&out); err != nil {
		return nil, false
	}
	return out, true
}
