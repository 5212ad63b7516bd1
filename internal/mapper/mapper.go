// Package mapper translates vendor payloads between the snake_case external
// form used on the wire and the camelCase internal form, and converts exact
// 64-bit integer leaves to and from floating-point numbers.
//
// Every function is pure: inputs are never mutated and results share no
// maps or slices with their inputs.
package mapper

import (
	"time"

	"github.com/iancoleman/strcase"
)

// Object is a decoded JSON object.
type Object = map[string]any

// KeyFunc renames a single object key.
type KeyFunc func(string) string

// Reserved idempotency key spellings stripped by IdempotencyFree.
const (
	IdempotencyKeyExternal = "idempotency_key"
	IdempotencyKeyInternal = "idempotencyKey"
)

// SnakeCase renames camelCase keys to snake_case ("locationId" -> "location_id").
func SnakeCase(key string) string {
	return strcase.ToSnake(key)
}

// CamelCase renames snake_case keys to camelCase ("location_id" -> "locationId").
func CamelCase(key string) string {
	return strcase.ToLowerCamel(key)
}

// Option tunes ToExternalForm and ToInternalForm.
type Option func(*options)

type options struct {
	numbers bool
}

// KeepNumbers disables the numeric pass so integer and float leaves keep their types.
func KeepNumbers() Option {
	return func(o *options) {
		o.numbers = false
	}
}

func buildOptions(opts []Option) options {
	o := options{numbers: true}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// ToExternalForm renames keys to snake_case and, unless KeepNumbers is given,
// turns exact integers into float64.
func ToExternalForm(obj Object, opts ...Option) Object {
	out := Convert(obj, SnakeCase)
	if buildOptions(opts).numbers {
		return asObject(ExactToSafe(out))
	}
	return out
}

// ToInternalForm renames keys to camelCase and, unless KeepNumbers is given,
// turns integral floats into int64.
func ToInternalForm(obj Object, opts ...Option) Object {
	out := Convert(obj, CamelCase)
	if buildOptions(opts).numbers {
		return asObject(SafeToExact(out))
	}
	return out
}

// Convert renames every key at every depth using key. Slices are mapped
// element-wise in order; time values and scalar leaves are copied as-is.
func Convert(obj Object, key KeyFunc) Object {
	if obj == nil {
		return nil
	}

	out := make(Object, len(obj))
	for k, v := range obj {
		out[key(k)] = convertValue(v, key)
	}
	return out
}

func convertValue(v any, key KeyFunc) any {
	switch val := v.(type) {
	case map[string]any:
		return Convert(val, key)
	case []any:
		if val == nil {
			return val
		}
		out := make([]any, len(val))
		for i, elem := range val {
			out[i] = convertValue(elem, key)
		}
		return out
	case []map[string]any:
		if val == nil {
			return val
		}
		out := make([]map[string]any, len(val))
		for i, elem := range val {
			out[i] = Convert(elem, key)
		}
		return out
	case time.Time, *time.Time:
		return val
	default:
		return v
	}
}

// IdempotencyFree returns a shallow copy of obj without the idempotency key
// under either spelling.
func IdempotencyFree(obj Object) Object {
	if obj == nil {
		return nil
	}

	out := make(Object, len(obj))
	for k, v := range obj {
		if k == IdempotencyKeyExternal || k == IdempotencyKeyInternal {
			continue
		}
		out[k] = v
	}
	return out
}

func asObject(v any) Object {
	if obj, ok := v.(map[string]any); ok {
		return obj
	}
	return nil
}
