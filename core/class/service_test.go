package class_test

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/educamais/educamais/core"
	"github.com/educamais/educamais/core/class"
	"github.com/educamais/educamais/core/session"
	inmemdb "github.com/educamais/educamais/storage/database/inmem"
	testutil "github.com/educamais/educamais/tests"
)

func setup(t *testing.T) (*class.Service, *inmemdb.DB) {
	db := inmemdb.Open()
	validate, _ := testutil.NewValidate()
	return class.NewService(db, validate), db
}

func setupCounting(t *testing.T) (*class.Service, *inmemdb.DB, *testutil.CountingGateway) {
	db := inmemdb.Open()
	gw := testutil.NewCountingGateway(db)
	validate, _ := testutil.NewValidate()
	return class.NewService(gw, validate), db, gw
}

func TestService_List(t *testing.T) {
	svc, db := setup(t)
	ana := testutil.CreateTeacher(t, db, "Ana", "ana@escola.com", "segredo123")
	bia := testutil.CreateTeacher(t, db, "Bia", "bia@escola.com", "segredo123")
	math := testutil.CreateClass(t, db, ana, "Matemática", "Manhã", 30)
	art := testutil.CreateClass(t, db, ana, "Artes", "Tarde", 12)
	testutil.CreateClass(t, db, bia, "Biologia", "Noite", 20)
	testutil.CreateActivity(t, db, math, "Lista 1", "Frações", "2024-03-10", "Pendente")

	_, err := svc.List(context.Background())
	assert.Equal(t, session.ErrNoSession, err)

	got, err := svc.List(testutil.SessionContext(ana))
	require.NoError(t, err)
	art.HasActivities = false
	math.HasActivities = true
	assert.Equal(t, []class.Class{art, math}, got)

	got, err = svc.List(testutil.SessionContext(bia))
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "Biologia", got[0].Name)

	nobody := testutil.CreateTeacher(t, db, "Caio", "caio@escola.com", "segredo123")
	got, err = svc.List(testutil.SessionContext(nobody))
	require.NoError(t, err)
	assert.Equal(t, []class.Class{}, got)
}

func TestService_Create(t *testing.T) {
	svc, db, gw := setupCounting(t)
	ana := testutil.CreateTeacher(t, db, "Ana", "ana@escola.com", "segredo123")
	ctx := testutil.SessionContext(ana)

	decode := func(t *testing.T, data string) class.NewClass {
		var nc class.NewClass
		require.NoError(t, json.Unmarshal([]byte(data), &nc))
		return nc
	}

	tests := []struct {
		name      string
		data      string
		want      class.Class
		wantField string
	}{
		{name: "blank name", data: `{"name": "  ", "period": "Manhã"}`, wantField: "name"},
		{name: "negative student count", data: `{"name": "A", "student_count": -2}`, wantField: "student_count"},
		{
			name: "default period",
			data: `{"name": " Física ", "period": " ", "student_count": "25"}`,
			want: class.Class{Name: "Física", Period: class.DefaultPeriod, StudentCount: 25, TeacherID: ana.ID},
		},
		{
			name: "unparsable student count",
			data: `{"name": "Química", "period": "Noite", "student_count": "muitos"}`,
			want: class.Class{Name: "Química", Period: "Noite", StudentCount: 0, TeacherID: ana.ID},
		},
		{
			name: "leading digits",
			data: `{"name": "História", "period": "Tarde", "student_count": "12 alunos"}`,
			want: class.Class{Name: "História", Period: "Tarde", StudentCount: 12, TeacherID: ana.ID},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gw.Reset()
			got, err := svc.Create(ctx, decode(t, tt.data))
			if tt.wantField != "" {
				fields, ok := core.TranslateErrors(err, core.NewTranslator())
				require.True(t, ok, "want a validation error, got %v", err)
				assert.Contains(t, fields, tt.wantField)
				assert.Zero(t, gw.Calls(""), "gateway reached before validation")
				return
			}
			assert.Equal(t, 1, gw.Calls("insert"))
			require.NoError(t, err)
			assert.NotZero(t, got.ID)
			tt.want.ID = got.ID
			assert.Equal(t, tt.want, got)
		})
	}

	_, err := svc.Create(context.Background(), class.NewClass{Name: "X"})
	assert.Equal(t, session.ErrNoSession, err)
}

func TestService_Update(t *testing.T) {
	svc, db := setup(t)
	ana := testutil.CreateTeacher(t, db, "Ana", "ana@escola.com", "segredo123")
	bia := testutil.CreateTeacher(t, db, "Bia", "bia@escola.com", "segredo123")
	math := testutil.CreateClass(t, db, ana, "Matemática", "Manhã", 30)
	bio := testutil.CreateClass(t, db, bia, "Biologia", "Noite", 20)
	ctx := testutil.SessionContext(ana)

	got, err := svc.Update(ctx, math.ID, class.UpdateClass{Name: "Matemática II", StudentCount: 28})
	require.NoError(t, err)
	assert.Equal(t, class.Class{ID: math.ID, Name: "Matemática II", Period: class.DefaultPeriod, StudentCount: 28, TeacherID: ana.ID}, got)

	stored, err := svc.Get(ctx, math.ID)
	require.NoError(t, err)
	assert.Equal(t, "Matemática II", stored.Name)

	_, err = svc.Update(ctx, bio.ID, class.UpdateClass{Name: "Hack"})
	assert.Equal(t, core.ErrNotFound, err)

	_, err = svc.Update(ctx, math.ID, class.UpdateClass{Name: ""})
	_, ok := core.TranslateErrors(err, core.NewTranslator())
	assert.True(t, ok)
}

func TestService_Delete(t *testing.T) {
	svc, db := setup(t)
	ana := testutil.CreateTeacher(t, db, "Ana", "ana@escola.com", "segredo123")
	bia := testutil.CreateTeacher(t, db, "Bia", "bia@escola.com", "segredo123")
	math := testutil.CreateClass(t, db, ana, "Matemática", "Manhã", 30)
	art := testutil.CreateClass(t, db, ana, "Artes", "Tarde", 12)
	bio := testutil.CreateClass(t, db, bia, "Biologia", "Noite", 20)
	testutil.CreateActivity(t, db, math, "Lista 1", "Frações", "2024-03-10", "Pendente")
	ctx := testutil.SessionContext(ana)

	tests := []struct {
		name    string
		id      int
		wantErr error
	}{
		{name: "has activities", id: math.ID, wantErr: class.ErrClassHasActivities},
		{name: "other teacher's class", id: bio.ID, wantErr: core.ErrNotFound},
		{name: "unknown", id: 999, wantErr: core.ErrNotFound},
		{name: "ok", id: art.ID},
		{name: "already deleted", id: art.ID, wantErr: core.ErrNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.wantErr, svc.Delete(ctx, tt.id))
		})
	}

	t.Run("check deletable", func(t *testing.T) {
		assert.Equal(t, class.ErrClassHasActivities, svc.CheckDeletable(ctx, math.ID))
		assert.Equal(t, core.ErrNotFound, svc.CheckDeletable(ctx, bio.ID))
	})

	n, err := db.Count(context.Background(), class.Resource)
	require.NoError(t, err)
	assert.Equal(t, 2, n, "refused deletions must not mutate")
	assert.Equal(t, "Você não pode excluir uma turma com atividades cadastradas.", class.ErrClassHasActivities.Error())
}
