package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"
	"syscall"

	ut "github.com/go-playground/universal-translator"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/educamais/educamais/core"
	"github.com/educamais/educamais/core/activity"
	"github.com/educamais/educamais/core/class"
	"github.com/educamais/educamais/core/session"
	"github.com/educamais/educamais/core/teacher"
)

const (
	confirmDelete = "excluir"
	confirmCancel = "cancelar"
)

var errCanceled = errors.New("operação cancelada")

// app holds what the commands share. Its streams are swapped in tests.
type app struct {
	appName     string
	store       session.Store
	translator  ut.Translator
	teacherSvc  *teacher.Service
	classSvc    *class.Service
	activitySvc *activity.Service

	in           *bufio.Reader
	out          io.Writer
	errOut       io.Writer
	readPassword func() (string, error)
}

func readTerminalPassword() (string, error) {
	pwd, err := term.ReadPassword(int(syscall.Stdin))
	return string(pwd), err
}

func (a *app) newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "educamais",
		Short:         "Gerencie suas turmas e atividades no " + a.appName,
		SilenceErrors: true,
		SilenceUsage:  true,
	}
	root.SetOut(a.out)
	root.SetErr(a.errOut)

	root.AddCommand(
		a.registerCmd(),
		a.loginCmd(),
		a.logoutCmd(),
		a.homeCmd(),
		a.classesCmd(),
		a.activitiesCmd(),
	)
	return root
}

// execute runs the command line and prints its error, if any. It returns the exit code.
func (a *app) execute(ctx context.Context, args []string) int {
	root := a.newRootCmd()
	root.SetArgs(args)
	if err := root.ExecuteContext(ctx); err != nil {
		a.printError(err)
		return 1
	}
	return 0
}

func (a *app) printError(err error) {
	cause := errors.Cause(err)
	if fldErrs, ok := core.TranslateErrors(cause, a.translator); ok {
		flds := make([]string, 0, len(fldErrs))
		for fld := range fldErrs {
			flds = append(flds, fld)
		}
		sort.Strings(flds)
		for _, fld := range flds {
			fmt.Fprintf(a.errOut, "%s: %s\n", fld, fldErrs[fld])
		}
		return
	}

	switch cause {
	case session.ErrNoSession:
		fmt.Fprintln(a.errOut, "Sessão expirada: faça login novamente.")
		fmt.Fprintln(a.errOut, "Use: educamais login --email EMAIL")
	case core.ErrNotFound:
		fmt.Fprintln(a.errOut, "Erro: não encontrado")
	default:
		fmt.Fprintf(a.errOut, "Erro: %s\n", cause)
	}
}

// sessionContext returns ctx carrying the stored session.
func (a *app) sessionContext(ctx context.Context) (context.Context, error) {
	sess, err := a.store.Get()
	if err != nil {
		return nil, err
	}
	return session.NewContext(ctx, sess), nil
}

func (a *app) prompt(label string) (string, error) {
	fmt.Fprint(a.out, label)
	line, err := a.in.ReadString('\n')
	if err != nil && !(err == io.EOF && line != "") {
		return "", err
	}
	return strings.TrimSpace(line), nil
}

func (a *app) promptPassword() (string, error) {
	fmt.Fprint(a.out, "Senha: ")
	pwd, err := a.readPassword()
	fmt.Fprintln(a.out)
	return pwd, err
}

// confirm asks until the answer is "excluir" or "cancelar". errCanceled is returned for the latter.
func (a *app) confirm(question string) error {
	for {
		answer, err := a.prompt(fmt.Sprintf("%s [%s/%s]: ", question, confirmDelete, confirmCancel))
		if err == io.EOF {
			return errCanceled
		} else if err != nil {
			return err
		}
		switch strings.ToLower(answer) {
		case confirmDelete:
			return nil
		case confirmCancel:
			return errCanceled
		}
	}
}

// runDelete confirms unless skip is set, then runs del. A canceled confirmation is not an error.
func (a *app) runDelete(skip bool, question string, del func() error) (bool, error) {
	if !skip {
		if err := a.confirm(question); err == errCanceled {
			fmt.Fprintln(a.out, "Operação cancelada.")
			return false, nil
		} else if err != nil {
			return false, err
		}
	}
	return true, del()
}

func parseID(arg string) (int, error) {
	id, err := strconv.Atoi(arg)
	if err != nil || id <= 0 {
		return 0, core.ErrNotFound
	}
	return id, nil
}
