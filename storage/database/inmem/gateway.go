package inmemdb

import (
	"context"
	"fmt"
	"sort"

	"github.com/educamais/educamais/core"
)

var _ core.Gateway = (*DB)(nil) // interface compliance check

func (db *DB) Select(ctx context.Context, q core.Query, dest interface{}) error {
	db.RLock()
	defer db.RUnlock()

	rows, err := db.filter(q.Resource, q.Filters)
	if err != nil {
		return core.NewRemoteError("select", q.Resource, err)
	}
	sortRows(rows, q.Ordering)

	if len(q.Columns) > 0 {
		for i, row := range rows {
			projected := make(core.Row, len(q.Columns))
			for _, col := range q.Columns {
				projected[col] = row[col]
			}
			rows[i] = projected
		}
	}
	return core.NewRemoteError("select", q.Resource, decode(rows, dest))
}

func (db *DB) Insert(ctx context.Context, resource string, row core.Row, dest interface{}) error {
	db.Lock()
	defer db.Unlock()

	stored, err := normalizeRow(row)
	if err != nil {
		return core.NewRemoteError("insert", resource, err)
	}
	tbl := db.table(resource)
	tbl.seq++
	stored["id"] = float64(tbl.seq)
	tbl.rows[tbl.seq] = stored

	return core.NewRemoteError("insert", resource, decode(stored, dest))
}

func (db *DB) Update(ctx context.Context, resource string, id int, fields core.Row) error {
	db.Lock()
	defer db.Unlock()

	row, ok := db.table(resource).rows[id]
	if !ok {
		return core.ErrNotFound
	}
	values, err := normalizeRow(fields)
	if err != nil {
		return core.NewRemoteError("update", resource, err)
	}
	for col, val := range values {
		if col != "id" {
			row[col] = val
		}
	}
	return nil
}

func (db *DB) Delete(ctx context.Context, resource string, id int) error {
	db.Lock()
	defer db.Unlock()

	tbl := db.table(resource)
	if _, ok := tbl.rows[id]; !ok {
		return core.ErrNotFound
	}
	delete(tbl.rows, id)
	return nil
}

func (db *DB) Count(ctx context.Context, resource string, filters ...core.Filter) (int, error) {
	db.RLock()
	defer db.RUnlock()

	rows, err := db.filter(resource, filters)
	if err != nil {
		return 0, core.NewRemoteError("count", resource, err)
	}
	return len(rows), nil
}

// filter returns copies of the rows matching every filter, in id order.
func (db *DB) filter(resource string, filters []core.Filter) ([]core.Row, error) {
	tbl, ok := db.tables[resource]
	if !ok {
		return []core.Row{}, nil
	}

	ids := make([]int, 0, len(tbl.rows))
	for id := range tbl.rows {
		ids = append(ids, id)
	}
	sort.Ints(ids)

	rows := make([]core.Row, 0, len(ids))
	for _, id := range ids {
		row := tbl.rows[id]
		match, err := matches(row, filters)
		if err != nil {
			return nil, err
		}
		if match {
			cp := make(core.Row, len(row))
			for col, val := range row {
				cp[col] = val
			}
			rows = append(rows, cp)
		}
	}
	return rows, nil
}

func matches(row core.Row, filters []core.Filter) (bool, error) {
	for _, f := range filters {
		var found bool
		for _, v := range f.Values() {
			nv, err := normalize(v)
			if err != nil {
				return false, err
			}
			if row[f.Field] == nv {
				found = true
				break
			}
		}
		switch f.Op {
		case core.OpEq, core.OpIn:
			if !found {
				return false, nil
			}
		default:
			return false, fmt.Errorf("unsupported filter operator %q", f.Op)
		}
	}
	return true, nil
}

func sortRows(rows []core.Row, ordering []core.DBOrdering) {
	if len(ordering) == 0 {
		return
	}
	sort.SliceStable(rows, func(i, j int) bool {
		for _, ord := range ordering {
			c := compare(rows[i][ord.Field], rows[j][ord.Field])
			if c == 0 {
				continue
			}
			if ord.Ascending {
				return c < 0
			}
			return c > 0
		}
		return false
	})
}

func compare(a, b interface{}) int {
	if fa, ok := a.(float64); ok {
		if fb, ok := b.(float64); ok {
			switch {
			case fa < fb:
				return -1
			case fa > fb:
				return 1
			}
			return 0
		}
	}
	sa, sb := fmt.Sprint(a), fmt.Sprint(b)
	switch {
	case sa < sb:
		return -1
	case sa > sb:
		return 1
	}
	return 0
}
