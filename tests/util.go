// Package testutil builds fixtures on top of the in-memory gateway.
package testutil

import (
	"context"
	"testing"

	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"

	"github.com/educamais/educamais/core"
	"github.com/educamais/educamais/core/activity"
	"github.com/educamais/educamais/core/class"
	"github.com/educamais/educamais/core/session"
	"github.com/educamais/educamais/core/teacher"
)

// NewValidate returns a validator with every custom tag and translation registered.
func NewValidate() (*validator.Validate, ut.Translator) {
	translator := core.NewTranslator()
	validate := core.NewValidate(translator)
	teacher.InitValidators(validate, translator)
	return validate, translator
}

// SessionContext returns a context logged in as t.
func SessionContext(t teacher.Teacher) context.Context {
	return session.NewContext(context.Background(), session.Session{TeacherID: t.ID, TeacherName: t.Name})
}

type inserted struct {
	ID int `json:"id" db:"id"`
}

func CreateTeacher(t *testing.T, gw core.Gateway, name, email, pwd string) teacher.Teacher {
	tchr := teacher.Teacher{Name: name, Email: email}
	if err := tchr.SetPassword(pwd); err != nil {
		t.Fatalf("CreateTeacher() failed: %v", err)
	}
	var rec inserted
	row := core.Row{"nome": name, "email": email, "senha": string(tchr.PasswordHash)}
	if err := gw.Insert(context.Background(), teacher.Resource, row, &rec); err != nil {
		t.Fatalf("CreateTeacher() failed: %v", err)
	}
	tchr.ID = rec.ID
	return tchr
}

func CreateClass(t *testing.T, gw core.Gateway, tchr teacher.Teacher, name, period string, students int) class.Class {
	var rec inserted
	row := core.Row{"nome": name, "periodo": period, "num_alunos": students, "professor_id": tchr.ID}
	if err := gw.Insert(context.Background(), class.Resource, row, &rec); err != nil {
		t.Fatalf("CreateClass() failed: %v", err)
	}
	return class.Class{ID: rec.ID, Name: name, Period: period, StudentCount: students, TeacherID: tchr.ID}
}

func CreateActivity(t *testing.T, gw core.Gateway, cls class.Class, title, desc, dueDate, status string) activity.Activity {
	var rec inserted
	row := core.Row{"nome": title, "descricao": desc, "data": dueDate, "status": status, "turma_id": cls.ID}
	if err := gw.Insert(context.Background(), activity.Resource, row, &rec); err != nil {
		t.Fatalf("CreateActivity() failed: %v", err)
	}
	return activity.Activity{
		ID:          rec.ID,
		Title:       title,
		Description: desc,
		DueDate:     dueDate,
		ClassID:     cls.ID,
		ClassName:   cls.Name,
		Status:      status,
	}
}
