// Package inmemdb is a core.Gateway kept in process memory, used by tests and the "memory" gateway driver.
package inmemdb

import (
	"encoding/json"
	"sync"

	"github.com/educamais/educamais/core"
)

type (
	DB struct {
		sync.RWMutex
		tables map[string]*table
	}

	table struct {
		seq  int
		rows map[int]core.Row
	}
)

func Open() *DB {
	return &DB{tables: make(map[string]*table)}
}

// Reset drops every row and sequence.
func (db *DB) Reset() {
	db.Lock()
	defer db.Unlock()
	db.tables = make(map[string]*table)
}

func (db *DB) table(resource string) *table {
	tbl, ok := db.tables[resource]
	if !ok {
		tbl = &table{rows: make(map[int]core.Row)}
		db.tables[resource] = tbl
	}
	return tbl
}

// normalize makes v look like it came out of a JSON document: numbers are float64, structs are maps.
func normalize(v interface{}) (interface{}, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	var out interface{}
	if err := json.Unmarshal(data, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func normalizeRow(row core.Row) (core.Row, error) {
	out := make(core.Row, len(row))
	for col, val := range row {
		nv, err := normalize(val)
		if err != nil {
			return nil, err
		}
		out[col] = nv
	}
	return out, nil
}

// decode copies src into dest through their JSON encoding; records carry json tags named after columns.
func decode(src interface{}, dest interface{}) error {
	if dest == nil {
		return nil
	}
	data, err := json.Marshal(src)
	if err != nil {
		return err
	}
	return json.Unmarshal(data, dest)
}
