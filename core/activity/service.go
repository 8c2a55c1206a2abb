package activity

import (
	"context"
	"errors"

	"github.com/go-playground/validator/v10"

	"github.com/educamais/educamais/core"
	"github.com/educamais/educamais/core/class"
	"github.com/educamais/educamais/core/session"
)

var ErrUnknownClass = errors.New("turma não encontrada")

var columns = []string{"id", "nome", "descricao", "data", "status", "turma_id"}

type Service struct {
	gw       core.Gateway
	validate *validator.Validate
}

func NewService(gw core.Gateway, validate *validator.Validate) *Service {
	return &Service{gw: gw, validate: validate}
}

// classNames returns the names of the session teacher's classes by id.
func (svc *Service) classNames(ctx context.Context, sess session.Session) (map[int]string, error) {
	var recs []struct {
		ID   int    `db:"id" json:"id"`
		Nome string `db:"nome" json:"nome"`
	}
	q := core.Query{
		Resource: class.Resource,
		Columns:  []string{"id", "nome"},
		Filters:  []core.Filter{core.Eq("professor_id", sess.TeacherID)},
	}
	if err := svc.gw.Select(ctx, q, &recs); err != nil {
		return nil, err
	}
	names := make(map[int]string, len(recs))
	for _, rec := range recs {
		names[rec.ID] = rec.Nome
	}
	return names, nil
}

// List returns the activities of one of the session teacher's classes, or of all of them,
// by due date.
func (svc *Service) List(ctx context.Context, filter Filter) ([]Activity, error) {
	sess, err := session.FromContext(ctx)
	if err != nil {
		return nil, err
	}
	names, err := svc.classNames(ctx, sess)
	if err != nil {
		return nil, err
	}

	var classFilter core.Filter
	if filter.ClassID != 0 {
		if _, ok := names[filter.ClassID]; !ok {
			return nil, core.ErrNotFound
		}
		classFilter = core.Eq("turma_id", filter.ClassID)
	} else {
		if len(names) == 0 {
			return []Activity{}, nil
		}
		ids := make([]interface{}, 0, len(names))
		for id := range names {
			ids = append(ids, id)
		}
		classFilter = core.In("turma_id", ids...)
	}

	q := core.Query{
		Resource: Resource,
		Columns:  columns,
		Filters:  []core.Filter{classFilter},
		Ordering: []core.DBOrdering{{Field: "data", Ascending: true}, {Field: "id", Ascending: true}},
	}
	var recs []record
	if err := svc.gw.Select(ctx, q, &recs); err != nil {
		return nil, err
	}
	activities := make([]Activity, 0, len(recs))
	for _, rec := range recs {
		activities = append(activities, rec.toActivity(names[rec.TurmaID]))
	}
	return activities, nil
}

func (svc *Service) get(ctx context.Context, names map[int]string, id int) (Activity, error) {
	var recs []record
	q := core.Query{Resource: Resource, Columns: columns, Filters: []core.Filter{core.Eq("id", id)}}
	if err := svc.gw.Select(ctx, q, &recs); err != nil {
		return Activity{}, err
	}
	if len(recs) == 0 {
		return Activity{}, core.ErrNotFound
	}
	name, ok := names[recs[0].TurmaID]
	if !ok {
		return Activity{}, core.ErrNotFound
	}
	return recs[0].toActivity(name), nil
}

// Get returns the activity identified by id when its class belongs to the session teacher.
func (svc *Service) Get(ctx context.Context, id int) (Activity, error) {
	sess, err := session.FromContext(ctx)
	if err != nil {
		return Activity{}, err
	}
	names, err := svc.classNames(ctx, sess)
	if err != nil {
		return Activity{}, err
	}
	return svc.get(ctx, names, id)
}

func unknownClassError() error {
	return core.NewValidationError(ErrUnknownClass, core.FieldError{Field: "class_id", Error: ErrUnknownClass.Error()})
}

func (svc *Service) Create(ctx context.Context, na NewActivity) (Activity, error) {
	sess, err := session.FromContext(ctx)
	if err != nil {
		return Activity{}, err
	}
	na.Clean()
	if err := svc.validate.Struct(na); err != nil {
		return Activity{}, err
	}
	na.normalize()
	if na.Status == "" {
		na.Status = DefaultStatus
	}

	names, err := svc.classNames(ctx, sess)
	if err != nil {
		return Activity{}, err
	}
	name, ok := names[na.ClassID]
	if !ok {
		return Activity{}, unknownClassError()
	}

	var rec record
	if err := svc.gw.Insert(ctx, Resource, na.row(), &rec); err != nil {
		return Activity{}, err
	}
	return rec.toActivity(name), nil
}

func (svc *Service) Update(ctx context.Context, id int, ua UpdateActivity) (Activity, error) {
	sess, err := session.FromContext(ctx)
	if err != nil {
		return Activity{}, err
	}
	ua.Clean()
	if err := svc.validate.Struct(ua); err != nil {
		return Activity{}, err
	}
	(*NewActivity)(&ua).normalize()

	names, err := svc.classNames(ctx, sess)
	if err != nil {
		return Activity{}, err
	}
	act, err := svc.get(ctx, names, id)
	if err != nil {
		return Activity{}, err
	}
	name, ok := names[ua.ClassID]
	if !ok {
		return Activity{}, unknownClassError()
	}
	if ua.Status == "" {
		ua.Status = act.Status
	}
	if ua.Status == "" {
		ua.Status = DefaultStatus
	}

	if err := svc.gw.Update(ctx, Resource, id, NewActivity(ua).row()); err != nil {
		return Activity{}, err
	}
	return Activity{
		ID:          id,
		Title:       ua.Title,
		Description: ua.Description,
		DueDate:     ua.DueDate,
		ClassID:     ua.ClassID,
		ClassName:   name,
		Status:      ua.Status,
	}, nil
}

func (svc *Service) Delete(ctx context.Context, id int) error {
	if _, err := svc.Get(ctx, id); err != nil {
		return err
	}
	return svc.gw.Delete(ctx, Resource, id)
}
