package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/educamais/educamais/core/session"
	"github.com/educamais/educamais/core/teacher"
)

func (a *app) registerCmd() *cobra.Command {
	var nt teacher.NewTeacher

	cmd := &cobra.Command{
		Use:   "register",
		Short: "Cadastra um(a) professor(a). A senha é pedida em seguida.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			pwd, err := a.promptPassword()
			if err != nil {
				return err
			}
			nt.Password = pwd

			t, err := a.teacherSvc.Register(cmd.Context(), nt)
			if err != nil {
				return err
			}
			fmt.Fprintf(a.out, "Cadastro realizado com sucesso, %s! Faça login para continuar.\n", t.Name)
			return nil
		},
	}
	cmd.Flags().StringVar(&nt.Name, "nome", "", "nome completo")
	cmd.Flags().StringVar(&nt.Email, "email", "", "email")
	return cmd
}

func (a *app) loginCmd() *cobra.Command {
	var creds teacher.Credentials

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Entra com email e senha. A senha é pedida em seguida.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			pwd, err := a.promptPassword()
			if err != nil {
				return err
			}
			creds.Password = pwd

			t, err := a.teacherSvc.Authenticate(cmd.Context(), creds)
			if err != nil {
				return err
			}
			if err := a.store.Set(session.Session{TeacherID: t.ID, TeacherName: t.Name}); err != nil {
				return err
			}
			fmt.Fprintf(a.out, "Bem-vindo(a), %s!\n", t.Name)
			return nil
		},
	}
	cmd.Flags().StringVar(&creds.Email, "email", "", "email")
	return cmd
}

func (a *app) logoutCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Encerra a sessão",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.store.Clear(); err != nil {
				return err
			}
			fmt.Fprintln(a.out, "Sessão encerrada.")
			return nil
		},
	}
}

func (a *app) homeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "home",
		Short: "Resumo das suas turmas e atividades",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, err := a.sessionContext(cmd.Context())
			if err != nil {
				return err
			}
			t, err := a.teacherSvc.Current(ctx)
			if err != nil {
				return err
			}
			classes, err := a.classSvc.List(ctx)
			if err != nil {
				return err
			}
			activities, err := a.activitySvc.List(ctx, activityFilter(0))
			if err != nil {
				return err
			}

			fmt.Fprintf(a.out, "Olá, %s!\n", t.Name)
			fmt.Fprintf(a.out, "Turmas: %d\n", len(classes))
			fmt.Fprintf(a.out, "Atividades: %d\n", len(activities))
			return nil
		},
	}
}
