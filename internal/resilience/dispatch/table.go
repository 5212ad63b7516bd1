package dispatch

import (
	"context"
	"fmt"

	"github.com/vietddude/payguard/internal/mapper"
)

// Operation is a named vendor operation taking and returning payloads.
type Operation func(ctx context.Context, req mapper.Object) (mapper.Object, error)

// Table maps operation names to operations.
type Table map[string]Operation

// UnknownOperationError is returned by Table.Call for names not in the table.
type UnknownOperationError struct {
	Name string
}

func (e *UnknownOperationError) Error() string {
	return fmt.Sprintf("unknown operation %q", e.Name)
}

// Wrap returns a forwarding table with the same operation names as t, every
// entry of which runs through d.
func (d *Dispatcher) Wrap(t Table) Table {
	out := make(Table, len(t))
	for name, op := range t {
		out[name] = func(ctx context.Context, req mapper.Object) (mapper.Object, error) {
			return Do(ctx, d, name, req, func(ctx context.Context) (mapper.Object, error) {
				return op(ctx, req)
			})
		}
	}
	return out
}

// Call invokes the named operation.
func (t Table) Call(ctx context.Context, name string, req mapper.Object) (mapper.Object, error) {
	op, ok := t[name]
	if !ok {
		return nil, &UnknownOperationError{Name: name}
	}
	return op(ctx, req)
}
