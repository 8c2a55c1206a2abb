package core

import (
	"context"
	"errors"
)

var ErrNotFound = errors.New("not found")

type DBOrdering struct {
	Field     string
	Ascending bool
}

func (ord DBOrdering) String() string {
	direction := "DESC"
	if ord.Ascending {
		direction = "ASC"
	}
	return ord.Field + " " + direction
}

// Filter operators
const (
	OpEq = "eq"
	OpIn = "in"
)

// Filter is an equality (or membership) condition on a storage column.
type Filter struct {
	Field string
	Op    string
	Value interface{}
}

func Eq(field string, value interface{}) Filter {
	return Filter{Field: field, Op: OpEq, Value: value}
}

func In(field string, values ...interface{}) Filter {
	return Filter{Field: field, Op: OpIn, Value: values}
}

// Values returns the operand list of an OpIn filter (or the single OpEq value).
func (f Filter) Values() []interface{} {
	if vals, ok := f.Value.([]interface{}); ok {
		return vals
	}
	return []interface{}{f.Value}
}

type Query struct {
	Resource string
	Columns  []string // empty: all columns
	Filters  []Filter // AND-ed
	Ordering []DBOrdering
}

// Row holds column values keyed by storage-schema column names.
type Row map[string]interface{}

// Gateway is the remote data store. Every call is a single round trip;
// failures are reported as *RemoteError unless noted otherwise.
type Gateway interface {
	// Select decodes the matching rows into dest, a pointer to a slice.
	Select(ctx context.Context, q Query, dest interface{}) error
	// Insert stores row and decodes the stored row (with its generated id) into dest.
	Insert(ctx context.Context, resource string, row Row, dest interface{}) error
	// Update sets fields on the row identified by id. ErrNotFound if there is none.
	Update(ctx context.Context, resource string, id int, fields Row) error
	// Delete removes the row identified by id. ErrNotFound if there is none.
	Delete(ctx context.Context, resource string, id int) error
	Count(ctx context.Context, resource string, filters ...Filter) (int, error)
}
