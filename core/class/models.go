package class

import (
	"github.com/educamais/educamais/core"
)

// Resource is the storage table of classes.
const Resource = "turmas"

// DefaultPeriod is stored when no period is given.
const DefaultPeriod = "Não Informado"

type Class struct {
	ID            int    `json:"id"`
	Name          string `json:"name"`
	Period        string `json:"period"`
	StudentCount  int    `json:"student_count"`
	TeacherID     int    `json:"teacher_id"`
	HasActivities bool   `json:"has_activities"`
}

// record is a row of the turmas table.
type record struct {
	ID          int    `db:"id" json:"id"`
	Nome        string `db:"nome" json:"nome"`
	Periodo     string `db:"periodo" json:"periodo"`
	NumAlunos   int    `db:"num_alunos" json:"num_alunos"`
	ProfessorID int    `db:"professor_id" json:"professor_id"`
}

func (r record) toClass() Class {
	return Class{
		ID:           r.ID,
		Name:         r.Nome,
		Period:       r.Periodo,
		StudentCount: r.NumAlunos,
		TeacherID:    r.ProfessorID,
	}
}

// NewClass contains information needed to create a new Class.
type NewClass struct {
	Name         string       `json:"name" validate:"notblank"`
	Period       string       `json:"period"`
	StudentCount core.FormInt `json:"student_count" validate:"min=0"`
}

func (nc *NewClass) Clean() {
	nc.Name = core.CleanString(nc.Name)
	nc.Period = core.CleanString(nc.Period)
	if nc.Period == "" {
		nc.Period = DefaultPeriod
	}
}

func (nc NewClass) row() core.Row {
	return core.Row{
		"nome":       nc.Name,
		"periodo":    nc.Period,
		"num_alunos": int(nc.StudentCount),
	}
}

// UpdateClass defines what information may be provided to modify an existing Class.
type UpdateClass NewClass

func (uc *UpdateClass) Clean() { (*NewClass)(uc).Clean() }
