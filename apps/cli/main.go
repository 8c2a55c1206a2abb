// Command educamais is the teacher's command line client: sign in, then manage classes and activities.
package main

import (
	"bufio"
	"context"
	"fmt"
	"os"

	ut "github.com/go-playground/universal-translator"

	"github.com/educamais/educamais/apps/di"
	"github.com/educamais/educamais/core"
	"github.com/educamais/educamais/core/activity"
	"github.com/educamais/educamais/core/class"
	"github.com/educamais/educamais/core/teacher"
	sessionstore "github.com/educamais/educamais/storage/session"
)

func main() {
	c := di.New("cli", core.NewConfig)

	code := 1
	err := c.Invoke(func(
		conf *core.Config,
		logger core.Logger,
		storage di.Storage,
		translator ut.Translator,
		teacherSvc *teacher.Service,
		classSvc *class.Service,
		activitySvc *activity.Service,
	) {
		defer func() { _ = storage.Close() }()
		core.ParseEmailTemplates(logger)

		a := &app{
			appName:      conf.AppName,
			store:        sessionstore.NewFileStore(conf.SessionPath),
			translator:   translator,
			teacherSvc:   teacherSvc,
			classSvc:     classSvc,
			activitySvc:  activitySvc,
			in:           bufio.NewReader(os.Stdin),
			out:          os.Stdout,
			errOut:       os.Stderr,
			readPassword: readTerminalPassword,
		}
		code = a.execute(context.Background(), os.Args[1:])
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Erro: %v\n", err)
	}
	os.Exit(code)
}
