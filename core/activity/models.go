package activity

import (
	"github.com/volatiletech/null/v8"

	"github.com/educamais/educamais/core"
)

// Resource is the storage table of activities.
const Resource = "atividades"

// DefaultStatus is given to new activities without a status.
const DefaultStatus = "Pendente"

type Activity struct {
	ID          int    `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	DueDate     string `json:"due_date"` // yyyy-mm-dd
	ClassID     int    `json:"class_id"`
	ClassName   string `json:"class_name"`
	Status      string `json:"status"`
}

// record is a row of the atividades table.
type record struct {
	ID        int         `db:"id" json:"id"`
	Nome      string      `db:"nome" json:"nome"`
	Descricao null.String `db:"descricao" json:"descricao"`
	Data      string      `db:"data" json:"data"`
	Status    null.String `db:"status" json:"status"`
	TurmaID   int         `db:"turma_id" json:"turma_id"`
}

func (r record) toActivity(className string) Activity {
	return Activity{
		ID:          r.ID,
		Title:       r.Nome,
		Description: r.Descricao.String,
		DueDate:     r.Data,
		ClassID:     r.TurmaID,
		ClassName:   className,
		Status:      r.Status.String,
	}
}

// NewActivity contains information needed to create a new Activity.
type NewActivity struct {
	Title       string `json:"title" validate:"notblank"`
	Description string `json:"description" validate:"notblank"`
	DueDate     string `json:"due_date" validate:"required,duedate"`
	ClassID     int    `json:"class_id" validate:"required"`
	Status      string `json:"status"`
}

func (na *NewActivity) Clean() {
	na.Title = core.CleanString(na.Title)
	na.Description = core.CleanString(na.Description)
	na.DueDate = core.CleanString(na.DueDate)
	na.Status = core.CleanString(na.Status)
}

// normalize runs after validation: the due date is known to parse.
func (na *NewActivity) normalize() {
	if d, err := core.NormalizeDueDate(na.DueDate); err == nil {
		na.DueDate = d
	}
}

func (na NewActivity) row() core.Row {
	return core.Row{
		"nome":      na.Title,
		"descricao": na.Description,
		"data":      na.DueDate,
		"status":    na.Status,
		"turma_id":  na.ClassID,
	}
}

// UpdateActivity defines what information may be provided to modify an existing Activity.
// An empty Status keeps the current one.
type UpdateActivity NewActivity

func (ua *UpdateActivity) Clean() { (*NewActivity)(ua).Clean() }

// Filter narrows List down to one class.
type Filter struct {
	ClassID int `query:"class_id"`
}
