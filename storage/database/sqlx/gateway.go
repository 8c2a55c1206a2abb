// Package sqlxdb is the core.Gateway over a SQL database.
package sqlxdb

import (
	"context"
	"database/sql"
	"fmt"
	"sort"
	"strings"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/educamais/educamais/core"
)

type Gateway struct {
	db *sqlx.DB
}

var _ core.Gateway = (*Gateway)(nil) // interface compliance check

func NewGateway(db *sqlx.DB) *Gateway {
	return &Gateway{db: db}
}

func (gw *Gateway) Select(ctx context.Context, q core.Query, dest interface{}) error {
	query, args, err := buildSelect(q)
	if err != nil {
		return remoteError("select", q.Resource, err)
	}
	err = gw.db.SelectContext(ctx, dest, gw.db.Rebind(query), args...)
	return remoteError("select", q.Resource, err)
}

func (gw *Gateway) Insert(ctx context.Context, resource string, row core.Row, dest interface{}) error {
	query, args := buildInsert(resource, row)
	query = gw.db.Rebind(query)
	var err error
	if dest == nil {
		_, err = gw.db.ExecContext(ctx, query, args...)
	} else {
		err = gw.db.GetContext(ctx, dest, query, args...)
	}
	return remoteError("insert", resource, err)
}

func (gw *Gateway) Update(ctx context.Context, resource string, id int, fields core.Row) error {
	if len(fields) == 0 {
		return nil
	}
	query, args := buildUpdate(resource, id, fields)
	res, err := gw.db.ExecContext(ctx, gw.db.Rebind(query), args...)
	if err != nil {
		return remoteError("update", resource, err)
	}
	return checkAffected("update", resource, res)
}

func (gw *Gateway) Delete(ctx context.Context, resource string, id int) error {
	query := fmt.Sprintf("DELETE FROM %s WHERE %s = ?", quote(resource), quote("id"))
	res, err := gw.db.ExecContext(ctx, gw.db.Rebind(query), id)
	if err != nil {
		return remoteError("delete", resource, err)
	}
	return checkAffected("delete", resource, res)
}

func (gw *Gateway) Count(ctx context.Context, resource string, filters ...core.Filter) (int, error) {
	where, args, err := buildWhere(filters)
	if err != nil {
		return 0, remoteError("count", resource, err)
	}
	var n int
	query := "SELECT COUNT(*) FROM " + quote(resource) + where
	if err = gw.db.GetContext(ctx, &n, gw.db.Rebind(query), args...); err != nil {
		return 0, remoteError("count", resource, err)
	}
	return n, nil
}

func checkAffected(op, resource string, res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return remoteError(op, resource, err)
	}
	if n == 0 {
		return core.ErrNotFound
	}
	return nil
}

// remoteError keeps the driver's own message.
func remoteError(op, resource string, err error) error {
	if err == nil {
		return nil
	}
	rErr := core.NewRemoteError(op, resource, err)
	if pqErr, ok := err.(*pq.Error); ok {
		if re, ok := rErr.(*core.RemoteError); ok {
			re.Message = pqErr.Message
		}
	}
	return rErr
}

func quote(ident string) string {
	return `"` + strings.ReplaceAll(ident, `"`, `""`) + `"`
}

func sortedColumns(row core.Row) []string {
	cols := make([]string, 0, len(row))
	for col := range row {
		cols = append(cols, col)
	}
	sort.Strings(cols)
	return cols
}

// buildWhere returns " WHERE ..." with '?' bindvars, or "" when there are no filters.
func buildWhere(filters []core.Filter) (string, []interface{}, error) {
	if len(filters) == 0 {
		return "", nil, nil
	}
	conds := make([]string, 0, len(filters))
	args := make([]interface{}, 0, len(filters))
	for _, f := range filters {
		switch f.Op {
		case core.OpEq:
			conds = append(conds, quote(f.Field)+" = ?")
			args = append(args, f.Value)
		case core.OpIn:
			vals := f.Values()
			if len(vals) == 0 {
				conds = append(conds, "FALSE")
				continue
			}
			cond, inArgs, err := sqlx.In(quote(f.Field)+" IN (?)", vals)
			if err != nil {
				return "", nil, err
			}
			conds = append(conds, cond)
			args = append(args, inArgs...)
		default:
			return "", nil, fmt.Errorf("unsupported filter operator %q", f.Op)
		}
	}
	return " WHERE " + strings.Join(conds, " AND "), args, nil
}

func buildSelect(q core.Query) (string, []interface{}, error) {
	cols := "*"
	if len(q.Columns) > 0 {
		quoted := make([]string, 0, len(q.Columns))
		for _, col := range q.Columns {
			quoted = append(quoted, quote(col))
		}
		cols = strings.Join(quoted, ", ")
	}

	where, args, err := buildWhere(q.Filters)
	if err != nil {
		return "", nil, err
	}

	var b strings.Builder
	b.WriteString("SELECT " + cols + " FROM " + quote(q.Resource) + where)
	if len(q.Ordering) > 0 {
		orders := make([]string, 0, len(q.Ordering))
		for _, ord := range q.Ordering {
			orders = append(orders, core.DBOrdering{Field: quote(ord.Field), Ascending: ord.Ascending}.String())
		}
		b.WriteString(" ORDER BY " + strings.Join(orders, ", "))
	}
	return b.String(), args, nil
}

func buildInsert(resource string, row core.Row) (string, []interface{}) {
	cols := sortedColumns(row)
	quoted := make([]string, 0, len(cols))
	args := make([]interface{}, 0, len(cols))
	for _, col := range cols {
		quoted = append(quoted, quote(col))
		args = append(args, row[col])
	}
	query := fmt.Sprintf(
		"INSERT INTO %s (%s) VALUES (%s) RETURNING *",
		quote(resource), strings.Join(quoted, ", "), strings.TrimSuffix(strings.Repeat("?, ", len(cols)), ", "),
	)
	return query, args
}

func buildUpdate(resource string, id int, fields core.Row) (string, []interface{}) {
	cols := sortedColumns(fields)
	sets := make([]string, 0, len(cols))
	args := make([]interface{}, 0, len(cols)+1)
	for _, col := range cols {
		sets = append(sets, quote(col)+" = ?")
		args = append(args, fields[col])
	}
	args = append(args, id)
	query := fmt.Sprintf("UPDATE %s SET %s WHERE %s = ?", quote(resource), strings.Join(sets, ", "), quote("id"))
	return query, args
}
