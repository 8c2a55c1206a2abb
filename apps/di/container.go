// Package di wires the application dependencies into a dig.Container shared by the API and the CLI.
package di

import (
	"fmt"
	"log"

	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	"github.com/pkg/errors"
	"go.uber.org/dig"

	echoapi "github.com/educamais/educamais/apps/api/echo"
	"github.com/educamais/educamais/core"
	"github.com/educamais/educamais/core/activity"
	"github.com/educamais/educamais/core/class"
	"github.com/educamais/educamais/core/teacher"
	emailsvc "github.com/educamais/educamais/services/email"
	logsvc "github.com/educamais/educamais/services/logger"
	"github.com/educamais/educamais/storage/database"
	inmemdb "github.com/educamais/educamais/storage/database/inmem"
	"github.com/educamais/educamais/storage/database/postgrest"
	sqlxdb "github.com/educamais/educamais/storage/database/sqlx"
)

const (
	DriverPostgres  = "postgres"
	DriverPostgREST = "postgrest"
	DriverMemory    = "memory"
)

type (
	// Storage is the configured gateway and the function releasing it.
	Storage struct {
		Gateway core.Gateway
		Close   func() error
	}

	// ServerParams gathers what echoapi.NewServer needs.
	ServerParams struct {
		dig.In

		Conf        *core.Config
		Logger      core.Logger
		Translator  ut.Translator
		TeacherSvc  *teacher.Service
		ClassSvc    *class.Service
		ActivitySvc *activity.Service
	}
)

func newLogger(name string) func(conf *core.Config) core.Logger {
	return func(conf *core.Config) core.Logger {
		logger := logsvc.NewRollbarLogger(logsvc.NewZapLogger(conf, name), conf)
		logger.Enable(!conf.Debug && conf.RollbarToken != "")
		return logger
	}
}

// OpenStorage connects the gateway selected by conf.GatewayDriver. Postgres is migrated up.
func OpenStorage(conf *core.Config) (Storage, error) {
	noop := func() error { return nil }

	switch conf.GatewayDriver {
	case DriverPostgres, "":
		db, err := database.Open(conf)
		if err != nil {
			return Storage{}, err
		}
		if err = database.Migrate(db.DB, "up"); err != nil {
			_ = db.Close()
			return Storage{}, err
		}
		return Storage{Gateway: sqlxdb.NewGateway(db), Close: db.Close}, nil
	case DriverPostgREST:
		if conf.PostgREST.URL == "" {
			return Storage{}, errors.New("postgrest url is not set")
		}
		return Storage{Gateway: postgrest.NewGateway(conf.PostgREST), Close: noop}, nil
	case DriverMemory:
		return Storage{Gateway: inmemdb.Open(), Close: noop}, nil
	}
	return Storage{}, fmt.Errorf("unknown gateway driver %q", conf.GatewayDriver)
}

func newStorage(conf *core.Config, logger core.Logger) Storage {
	storage, err := OpenStorage(conf)
	if err != nil {
		logger.Fatal(fmt.Sprintf("setting up storage: %v", err), err)
	}
	return storage
}

func newGateway(storage Storage) core.Gateway { return storage.Gateway }

// NewEmailService logs messages in debug or without a SendGrid key, and sends them through SendGrid otherwise.
func NewEmailService(conf *core.Config, logger core.Logger) core.EmailService {
	if conf.Debug || conf.SendgridAPIKey == "" {
		return emailsvc.NewConsoleService(conf, logger)
	}
	return emailsvc.NewSendgridService(conf, logger)
}

func newValidate(translator ut.Translator) *validator.Validate {
	validate := core.NewValidate(translator)
	teacher.InitValidators(validate, translator)
	return validate
}

func newServer(p ServerParams) *echoapi.Server {
	return echoapi.NewServer(echoapi.Deps{
		Conf:        p.Conf,
		Logger:      p.Logger,
		Translator:  p.Translator,
		TeacherSvc:  p.TeacherSvc,
		ClassSvc:    p.ClassSvc,
		ActivitySvc: p.ActivitySvc,
	})
}

// New returns a new dependency injection dig.Container. loggerName names the zap logger.
func New(loggerName string, newConfig func() *core.Config) *dig.Container {
	c := dig.New()

	must(c.Provide(newConfig))
	must(c.Provide(newLogger(loggerName)))
	must(c.Provide(newStorage))
	must(c.Provide(newGateway))
	must(c.Provide(NewEmailService))
	must(c.Provide(core.NewTranslator))
	must(c.Provide(newValidate))
	must(c.Provide(teacher.NewService))
	must(c.Provide(class.NewService))
	must(c.Provide(activity.NewService))
	must(c.Provide(newServer))

	return c
}

// must exits program if err happened
func must(err error) {
	if err != nil {
		log.Fatal(errors.Wrap(err, "failed to provide dependency").Error())
	}
}
