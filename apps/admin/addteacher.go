package main

import (
	"context"
	"fmt"

	"github.com/educamais/educamais/core/teacher"
)

// addTeacher registers a teacher, as the public registration would.
func (cli *commandLine) addTeacher(name, email, pwd string) error {
	t, err := cli.teacherSvc.Register(context.Background(), teacher.NewTeacher{Name: name, Email: email, Password: pwd})
	if err != nil {
		return err
	}
	fmt.Printf("Professor(a) %s cadastrado(a) com id %d\n", t.Name, t.ID)
	return nil
}
