package inmemdb

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/educamais/educamais/core"
)

type turma struct {
	ID          int    `json:"id"`
	Nome        string `json:"nome"`
	NumAlunos   int    `json:"num_alunos"`
	ProfessorID int    `json:"professor_id"`
}

func seed(t *testing.T, db *DB) {
	ctx := context.Background()
	for _, row := range []core.Row{
		{"nome": "B", "num_alunos": 10, "professor_id": 1},
		{"nome": "A", "num_alunos": 20, "professor_id": 1},
		{"nome": "C", "num_alunos": 30, "professor_id": 2},
	} {
		require.NoError(t, db.Insert(ctx, "turmas", row, nil))
	}
}

func TestDB_Select(t *testing.T) {
	db := Open()
	seed(t, db)

	tests := []struct {
		name      string
		query     core.Query
		wantNames []string
	}{
		{name: "all", query: core.Query{Resource: "turmas"}, wantNames: []string{"B", "A", "C"}},
		{name: "unknown resource", query: core.Query{Resource: "lol"}, wantNames: []string{}},
		{
			name:      "eq + ordering",
			query:     core.Query{Resource: "turmas", Filters: []core.Filter{core.Eq("professor_id", 1)}, Ordering: []core.DBOrdering{{Field: "nome", Ascending: true}}},
			wantNames: []string{"A", "B"},
		},
		{
			name:      "in",
			query:     core.Query{Resource: "turmas", Filters: []core.Filter{core.In("id", 1, 3)}},
			wantNames: []string{"B", "C"},
		},
		{
			name:      "descending",
			query:     core.Query{Resource: "turmas", Ordering: []core.DBOrdering{{Field: "num_alunos"}}},
			wantNames: []string{"C", "A", "B"},
		},
		{
			name:      "no match",
			query:     core.Query{Resource: "turmas", Filters: []core.Filter{core.Eq("professor_id", 9)}},
			wantNames: []string{},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got []turma
			require.NoError(t, db.Select(context.Background(), tt.query, &got))
			names := make([]string, 0, len(got))
			for _, g := range got {
				names = append(names, g.Nome)
			}
			assert.Equal(t, tt.wantNames, names)
		})
	}
}

func TestDB_Insert(t *testing.T) {
	db := Open()
	ctx := context.Background()

	var got turma
	require.NoError(t, db.Insert(ctx, "turmas", core.Row{"nome": "A", "num_alunos": 3, "professor_id": 7}, &got))
	assert.Equal(t, turma{ID: 1, Nome: "A", NumAlunos: 3, ProfessorID: 7}, got)

	require.NoError(t, db.Insert(ctx, "turmas", core.Row{"nome": "B"}, &got))
	assert.Equal(t, 2, got.ID)
}

func TestDB_UpdateDelete(t *testing.T) {
	db := Open()
	seed(t, db)
	ctx := context.Background()

	require.NoError(t, db.Update(ctx, "turmas", 1, core.Row{"nome": "Z", "id": 99}))
	var got []turma
	require.NoError(t, db.Select(ctx, core.Query{Resource: "turmas", Filters: []core.Filter{core.Eq("id", 1)}}, &got))
	require.Len(t, got, 1)
	assert.Equal(t, "Z", got[0].Nome)
	assert.Equal(t, 10, got[0].NumAlunos)

	assert.Equal(t, core.ErrNotFound, db.Update(ctx, "turmas", 42, core.Row{"nome": "X"}))

	require.NoError(t, db.Delete(ctx, "turmas", 1))
	assert.Equal(t, core.ErrNotFound, db.Delete(ctx, "turmas", 1))

	n, err := db.Count(ctx, "turmas")
	require.NoError(t, err)
	assert.Equal(t, 2, n)
}

func TestDB_Count(t *testing.T) {
	db := Open()
	seed(t, db)

	n, err := db.Count(context.Background(), "turmas", core.Eq("professor_id", 1))
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	n, err = db.Count(context.Background(), "atividades", core.Eq("turma_id", 1))
	require.NoError(t, err)
	assert.Equal(t, 0, n)

	db.Reset()
	n, err = db.Count(context.Background(), "turmas")
	require.NoError(t, err)
	assert.Equal(t, 0, n)
}
