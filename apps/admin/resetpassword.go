package main

import (
	"context"

	"github.com/educamais/educamais/core/teacher"
)

func (cli *commandLine) resetPassword(email, pwd string) error {
	return cli.teacherSvc.SetPassword(context.Background(), teacher.ResetPassword{Email: email, Password: pwd})
}
