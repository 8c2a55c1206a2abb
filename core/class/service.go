package class

import (
	"context"

	"github.com/go-playground/validator/v10"

	"github.com/educamais/educamais/core"
	"github.com/educamais/educamais/core/session"
)

const activityResource = "atividades"

// ErrClassHasActivities refuses the deletion of a class still referenced by activities.
var ErrClassHasActivities = core.NewConflictError("Você não pode excluir uma turma com atividades cadastradas.")

var columns = []string{"id", "nome", "periodo", "num_alunos", "professor_id"}

type Service struct {
	gw       core.Gateway
	validate *validator.Validate
}

func NewService(gw core.Gateway, validate *validator.Validate) *Service {
	return &Service{gw: gw, validate: validate}
}

func (svc *Service) query(ctx context.Context, sess session.Session, filters ...core.Filter) ([]record, error) {
	q := core.Query{
		Resource: Resource,
		Columns:  columns,
		Filters:  append([]core.Filter{core.Eq("professor_id", sess.TeacherID)}, filters...),
		Ordering: []core.DBOrdering{{Field: "nome", Ascending: true}},
	}
	var recs []record
	if err := svc.gw.Select(ctx, q, &recs); err != nil {
		return nil, err
	}
	return recs, nil
}

// List returns the session teacher's classes by name, flagging those with activities.
func (svc *Service) List(ctx context.Context) ([]Class, error) {
	sess, err := session.FromContext(ctx)
	if err != nil {
		return nil, err
	}
	recs, err := svc.query(ctx, sess)
	if err != nil {
		return nil, err
	}

	classes := make([]Class, 0, len(recs))
	if len(recs) == 0 {
		return classes, nil
	}

	ids := make([]interface{}, 0, len(recs))
	for _, rec := range recs {
		ids = append(ids, rec.ID)
	}
	var refs []struct {
		TurmaID int `db:"turma_id" json:"turma_id"`
	}
	q := core.Query{Resource: activityResource, Columns: []string{"turma_id"}, Filters: []core.Filter{core.In("turma_id", ids...)}}
	if err := svc.gw.Select(ctx, q, &refs); err != nil {
		return nil, err
	}
	withActivities := make(map[int]bool, len(refs))
	for _, ref := range refs {
		withActivities[ref.TurmaID] = true
	}

	for _, rec := range recs {
		c := rec.toClass()
		c.HasActivities = withActivities[c.ID]
		classes = append(classes, c)
	}
	return classes, nil
}

// Get returns the class identified by id when it belongs to the session teacher.
func (svc *Service) Get(ctx context.Context, id int) (Class, error) {
	sess, err := session.FromContext(ctx)
	if err != nil {
		return Class{}, err
	}
	recs, err := svc.query(ctx, sess, core.Eq("id", id))
	if err != nil {
		return Class{}, err
	}
	if len(recs) == 0 {
		return Class{}, core.ErrNotFound
	}
	return recs[0].toClass(), nil
}

func (svc *Service) Create(ctx context.Context, nc NewClass) (Class, error) {
	sess, err := session.FromContext(ctx)
	if err != nil {
		return Class{}, err
	}
	nc.Clean()
	if err := svc.validate.Struct(nc); err != nil {
		return Class{}, err
	}

	row := nc.row()
	row["professor_id"] = sess.TeacherID
	var rec record
	if err := svc.gw.Insert(ctx, Resource, row, &rec); err != nil {
		return Class{}, err
	}
	return rec.toClass(), nil
}

func (svc *Service) Update(ctx context.Context, id int, uc UpdateClass) (Class, error) {
	if _, err := session.FromContext(ctx); err != nil {
		return Class{}, err
	}
	uc.Clean()
	if err := svc.validate.Struct(uc); err != nil {
		return Class{}, err
	}

	c, err := svc.Get(ctx, id)
	if err != nil {
		return Class{}, err
	}
	if err := svc.gw.Update(ctx, Resource, id, NewClass(uc).row()); err != nil {
		return Class{}, err
	}
	c.Name, c.Period, c.StudentCount = uc.Name, uc.Period, int(uc.StudentCount)

	n, err := svc.gw.Count(ctx, activityResource, core.Eq("turma_id", id))
	if err != nil {
		return Class{}, err
	}
	c.HasActivities = n > 0
	return c, nil
}

// CheckDeletable returns ErrClassHasActivities when an activity still references the class.
func (svc *Service) CheckDeletable(ctx context.Context, id int) error {
	if _, err := svc.Get(ctx, id); err != nil {
		return err
	}
	n, err := svc.gw.Count(ctx, activityResource, core.Eq("turma_id", id))
	if err != nil {
		return err
	}
	if n > 0 {
		return ErrClassHasActivities
	}
	return nil
}

// Delete removes the class unless an activity still references it.
func (svc *Service) Delete(ctx context.Context, id int) error {
	if err := svc.CheckDeletable(ctx, id); err != nil {
		return err
	}
	return svc.gw.Delete(ctx, Resource, id)
}
