package main

import (
	"context"
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/educamais/educamais/core"
	"github.com/educamais/educamais/core/class"
)

func (a *app) classesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "turmas",
		Aliases: []string{"classes"},
		Short:   "Gerencia suas turmas",
	}
	cmd.AddCommand(
		a.listClassesCmd(),
		a.createClassCmd(),
		a.editClassCmd(),
		a.deleteClassCmd(),
	)
	return cmd
}

func (a *app) printClasses(ctx context.Context) error {
	classes, err := a.classSvc.List(ctx)
	if err != nil {
		return err
	}
	if len(classes) == 0 {
		fmt.Fprintln(a.out, "Nenhuma turma cadastrada.")
		return nil
	}

	w := tabwriter.NewWriter(a.out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tNOME\tPERÍODO\tALUNOS\tATIVIDADES")
	for _, c := range classes {
		fmt.Fprintf(w, "%d\t%s\t%s\t%d\t%s\n", c.ID, c.Name, c.Period, c.StudentCount, yesNo(c.HasActivities))
	}
	return w.Flush()
}

func yesNo(b bool) string {
	if b {
		return "sim"
	}
	return "não"
}

func (a *app) listClassesCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "Lista suas turmas por nome",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, err := a.sessionContext(cmd.Context())
			if err != nil {
				return err
			}
			return a.printClasses(ctx)
		},
	}
}

func (a *app) createClassCmd() *cobra.Command {
	var nc class.NewClass

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Cadastra uma turma",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, err := a.sessionContext(cmd.Context())
			if err != nil {
				return err
			}
			c, err := a.classSvc.Create(ctx, nc)
			if err != nil {
				return err
			}
			fmt.Fprintf(a.out, "Turma %q cadastrada.\n\n", c.Name)
			return a.printClasses(ctx)
		},
	}
	cmd.Flags().StringVar(&nc.Name, "nome", "", "nome da turma")
	cmd.Flags().StringVar(&nc.Period, "periodo", "", "período (padrão \""+class.DefaultPeriod+"\")")
	cmd.Flags().Var(&nc.StudentCount, "alunos", "número de alunos")
	return cmd
}

func (a *app) editClassCmd() *cobra.Command {
	var uc class.UpdateClass

	cmd := &cobra.Command{
		Use:   "edit ID",
		Short: "Altera uma turma. Campos omitidos são mantidos.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			ctx, err := a.sessionContext(cmd.Context())
			if err != nil {
				return err
			}
			c, err := a.classSvc.Get(ctx, id)
			if err != nil {
				return err
			}

			flags := cmd.Flags()
			if !flags.Changed("nome") {
				uc.Name = c.Name
			}
			if !flags.Changed("periodo") {
				uc.Period = c.Period
			}
			if !flags.Changed("alunos") {
				uc.StudentCount = core.FormInt(c.StudentCount)
			}

			if c, err = a.classSvc.Update(ctx, id, uc); err != nil {
				return err
			}
			fmt.Fprintf(a.out, "Turma %q atualizada.\n\n", c.Name)
			return a.printClasses(ctx)
		},
	}
	cmd.Flags().StringVar(&uc.Name, "nome", "", "nome da turma")
	cmd.Flags().StringVar(&uc.Period, "periodo", "", "período")
	cmd.Flags().Var(&uc.StudentCount, "alunos", "número de alunos")
	return cmd
}

func (a *app) deleteClassCmd() *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:     "delete ID",
		Aliases: []string{"rm"},
		Short:   "Exclui uma turma sem atividades",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			ctx, err := a.sessionContext(cmd.Context())
			if err != nil {
				return err
			}
			c, err := a.classSvc.Get(ctx, id)
			if err != nil {
				return err
			}
			if err := a.classSvc.CheckDeletable(ctx, id); err != nil {
				return err
			}

			question := fmt.Sprintf("Excluir a turma %q?", c.Name)
			deleted, err := a.runDelete(yes, question, func() error { return a.classSvc.Delete(ctx, id) })
			if err != nil || !deleted {
				return err
			}
			fmt.Fprintf(a.out, "Turma %q excluída.\n\n", c.Name)
			return a.printClasses(ctx)
		},
	}
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "não pede confirmação")
	return cmd
}
