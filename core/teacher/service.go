package teacher

import (
	"context"
	"errors"
	"net/mail"

	"github.com/go-playground/validator/v10"
	pkgerrors "github.com/pkg/errors"

	"github.com/educamais/educamais/core"
	"github.com/educamais/educamais/core/session"
)

var (
	// ErrInvalidCredentials does not tell an unknown email from a wrong password.
	ErrInvalidCredentials = errors.New("Usuário não encontrado ou senha incorreta")
	ErrEmailExists        = errors.New("já existe um professor com este email")
)

var columns = []string{"id", "nome", "email", "senha"}

type Service struct {
	gw       core.Gateway
	mailSvc  core.EmailService
	validate *validator.Validate
}

func NewService(gw core.Gateway, mailSvc core.EmailService, validate *validator.Validate) *Service {
	return &Service{gw: gw, mailSvc: mailSvc, validate: validate}
}

func (svc *Service) selectOne(ctx context.Context, filter core.Filter) (Teacher, error) {
	var recs []record
	q := core.Query{Resource: Resource, Columns: columns, Filters: []core.Filter{filter}}
	if err := svc.gw.Select(ctx, q, &recs); err != nil {
		return Teacher{}, err
	}
	if len(recs) == 0 {
		return Teacher{}, core.ErrNotFound
	}
	return recs[0].toTeacher(), nil
}

func (svc *Service) checkUniqueness(ctx context.Context, email string) error {
	n, err := svc.gw.Count(ctx, Resource, core.Eq("email", email))
	if err != nil {
		return err
	}
	if n > 0 {
		return core.NewValidationError(ErrEmailExists, core.FieldError{Field: "email", Error: ErrEmailExists.Error()})
	}
	return nil
}

// Register validates nt, stores the new teacher with a hashed password and sends the welcome email.
func (svc *Service) Register(ctx context.Context, nt NewTeacher) (Teacher, error) {
	nt.Clean()
	if err := svc.validate.Struct(nt); err != nil {
		return Teacher{}, err
	}
	if err := svc.checkUniqueness(ctx, nt.Email); err != nil {
		return Teacher{}, err
	}

	t := Teacher{Name: nt.Name, Email: nt.Email}
	if err := t.SetPassword(nt.Password); err != nil {
		return Teacher{}, pkgerrors.Wrap(err, "hashing password")
	}

	var rec record
	row := core.Row{"nome": t.Name, "email": t.Email, "senha": string(t.PasswordHash)}
	if err := svc.gw.Insert(ctx, Resource, row, &rec); err != nil {
		return Teacher{}, err
	}
	t = rec.toTeacher()

	svc.sendWelcomeMail(t)
	return t, nil
}

func (svc *Service) sendWelcomeMail(t Teacher) {
	svc.mailSvc.SendMessages(&core.EmailMessage{
		To:           []mail.Address{{Name: t.Name, Address: t.Email}},
		Subject:      "Bem-vindo(a)!",
		TemplateName: "welcome",
		TemplateData: t,
	})
}

// Authenticate returns the teacher matching creds or ErrInvalidCredentials.
func (svc *Service) Authenticate(ctx context.Context, creds Credentials) (Teacher, error) {
	creds.Clean()
	if err := svc.validate.Struct(creds); err != nil {
		return Teacher{}, err
	}

	t, err := svc.selectOne(ctx, core.Eq("email", creds.Email))
	if err != nil {
		if err == core.ErrNotFound {
			return Teacher{}, ErrInvalidCredentials
		}
		return Teacher{}, err
	}
	if err := t.CheckPassword(creds.Password); err != nil {
		return Teacher{}, ErrInvalidCredentials
	}
	return t, nil
}

func (svc *Service) Get(ctx context.Context, id int) (Teacher, error) {
	return svc.selectOne(ctx, core.Eq("id", id))
}

func (svc *Service) GetByEmail(ctx context.Context, email string) (Teacher, error) {
	return svc.selectOne(ctx, core.Eq("email", core.CleanString(email, true /* lower */)))
}

// Current returns the teacher of the context session.
func (svc *Service) Current(ctx context.Context) (Teacher, error) {
	sess, err := session.FromContext(ctx)
	if err != nil {
		return Teacher{}, err
	}
	t, err := svc.Get(ctx, sess.TeacherID)
	if err == core.ErrNotFound {
		return Teacher{}, session.ErrNoSession
	}
	return t, err
}

// SetPassword replaces the password of the teacher identified by rp.Email.
func (svc *Service) SetPassword(ctx context.Context, rp ResetPassword) error {
	t, err := svc.GetByEmail(ctx, rp.Email)
	if err != nil {
		return err
	}
	rp.Email, rp.name = t.Email, t.Name
	if err := svc.validate.Struct(rp); err != nil {
		return err
	}
	if err := t.SetPassword(rp.Password); err != nil {
		return pkgerrors.Wrap(err, "hashing password")
	}
	return svc.gw.Update(ctx, Resource, t.ID, core.Row{"senha": string(t.PasswordHash)})
}
