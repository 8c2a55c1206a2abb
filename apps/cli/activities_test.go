package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/educamais/educamais/core"
	"github.com/educamais/educamais/core/activity"
	testutil "github.com/educamais/educamais/tests"
)

func Test_activities(t *testing.T) {
	tc := setup(t)
	ana := testutil.CreateTeacher(t, tc.db, "Ana", "ana@escola.com", "segredo123")
	bia := testutil.CreateTeacher(t, tc.db, "Bia", "bia@escola.com", "segredo123")
	math := testutil.CreateClass(t, tc.db, ana, "Matemática", "Manhã", 30)
	art := testutil.CreateClass(t, tc.db, ana, "Artes", "Tarde", 12)
	bio := testutil.CreateClass(t, tc.db, bia, "Biologia", "Noite", 20)
	quiz := testutil.CreateActivity(t, tc.db, math, "Prova", "Equações", "2024-04-10", "Concluída")
	testutil.CreateActivity(t, tc.db, art, "Pintura", "Aquarela", "2024-03-05", "Pendente")
	testutil.CreateActivity(t, tc.db, bio, "Células", "Resumo", "2024-03-01", "Pendente")

	t.Run("session required", func(t *testing.T) {
		assert.Equal(t, 1, tc.run("", "atividades", "list"))
		assert.Contains(t, tc.stderr.String(), "Sessão expirada: faça login novamente.")
	})

	tc.login(t, ana)

	t.Run("list by due date", func(t *testing.T) {
		assert.Equal(t, 0, tc.run("", "atividades", "list"))
		assert.Regexp(t, `(?s)Pintura.*Prova`, tc.stdout.String())
		assert.NotContains(t, tc.stdout.String(), "Células")
	})

	t.Run("list by class", func(t *testing.T) {
		assert.Equal(t, 0, tc.run("", "atividades", "list", "--turma", "1"))
		assert.Contains(t, tc.stdout.String(), "Prova")
		assert.NotContains(t, tc.stdout.String(), "Pintura")
	})

	t.Run("list by other teacher's class", func(t *testing.T) {
		assert.Equal(t, 1, tc.run("", "atividades", "list", "--turma", "3"))
		assert.Contains(t, tc.stderr.String(), "Erro: não encontrado")
	})

	t.Run("create invalid", func(t *testing.T) {
		assert.Equal(t, 1, tc.run("", "atividades", "create", "--titulo", "Redação", "--data", "amanhã"))
		errOut := tc.stderr.String()
		assert.Contains(t, errOut, "class_id: ")
		assert.Contains(t, errOut, "description: ")
		assert.Contains(t, errOut, "due_date: ")
	})

	t.Run("create", func(t *testing.T) {
		code := tc.run("", "atividades", "create",
			"--titulo", "Redação", "--descricao", "Tema livre", "--data", "20/05/2024", "--turma", "2")
		require.Equal(t, 0, code, tc.stderr.String())
		out := tc.stdout.String()
		assert.Contains(t, out, `Atividade "Redação" cadastrada.`)
		assert.Regexp(t, `(?s)Pintura.*Redação\s+Artes\s+2024-05-20\s+`+activity.DefaultStatus, out)
		assert.NotContains(t, out, "Prova")
	})

	t.Run("edit keeps omitted fields", func(t *testing.T) {
		require.Equal(t, 0, tc.run("", "atividades", "edit", "1", "--data", "2024-04-12"), tc.stderr.String())
		act, err := tc.activitySvc.Get(tc.sessCtx(t), quiz.ID)
		require.NoError(t, err)
		want := quiz
		want.DueDate = "2024-04-12"
		assert.Equal(t, want, act)
	})

	t.Run("edit moves to another class", func(t *testing.T) {
		require.Equal(t, 0, tc.run("", "atividades", "edit", "1", "--turma", "2", "--status", "Pendente"), tc.stderr.String())
		act, err := tc.activitySvc.Get(tc.sessCtx(t), quiz.ID)
		require.NoError(t, err)
		assert.Equal(t, art.ID, act.ClassID)
		assert.Equal(t, "Artes", act.ClassName)
		assert.Equal(t, "Pendente", act.Status)
	})

	t.Run("edit into other teacher's class", func(t *testing.T) {
		assert.Equal(t, 1, tc.run("", "atividades", "edit", "1", "--turma", "3"))
		assert.Contains(t, tc.stderr.String(), "class_id: ")
	})

	t.Run("delete other teacher's", func(t *testing.T) {
		assert.Equal(t, 1, tc.run("", "atividades", "delete", "-y", "3"))
		assert.Contains(t, tc.stderr.String(), "Erro: não encontrado")
	})

	t.Run("delete", func(t *testing.T) {
		require.Equal(t, 0, tc.run("excluir\n", "atividades", "delete", "1"), tc.stderr.String())
		assert.Contains(t, tc.stdout.String(), `Atividade "Prova" excluída.`)
		_, err := tc.activitySvc.Get(tc.sessCtx(t), quiz.ID)
		assert.Equal(t, core.ErrNotFound, err)
	})

	t.Run("class without activities can be deleted afterwards", func(t *testing.T) {
		require.Equal(t, 0, tc.run("", "turmas", "delete", "--yes", "1"), tc.stderr.String())
		_, err := tc.classSvc.Get(tc.sessCtx(t), math.ID)
		assert.Equal(t, core.ErrNotFound, err)
	})
}
