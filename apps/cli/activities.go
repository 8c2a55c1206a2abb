package main

import (
	"context"
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/educamais/educamais/core/activity"
)

func activityFilter(classID int) activity.Filter {
	return activity.Filter{ClassID: classID}
}

func (a *app) activitiesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "atividades",
		Aliases: []string{"activities"},
		Short:   "Gerencia as atividades das suas turmas",
	}
	cmd.AddCommand(
		a.listActivitiesCmd(),
		a.createActivityCmd(),
		a.editActivityCmd(),
		a.deleteActivityCmd(),
	)
	return cmd
}

// printActivities lists the activities of classID, or of every class when it is 0.
func (a *app) printActivities(ctx context.Context, classID int) error {
	activities, err := a.activitySvc.List(ctx, activityFilter(classID))
	if err != nil {
		return err
	}
	if len(activities) == 0 {
		fmt.Fprintln(a.out, "Nenhuma atividade cadastrada.")
		return nil
	}

	w := tabwriter.NewWriter(a.out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tTÍTULO\tTURMA\tENTREGA\tSTATUS")
	for _, act := range activities {
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\n", act.ID, act.Title, act.ClassName, act.DueDate, act.Status)
	}
	return w.Flush()
}

func (a *app) listActivitiesCmd() *cobra.Command {
	var classID int

	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "Lista as atividades por data de entrega",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, err := a.sessionContext(cmd.Context())
			if err != nil {
				return err
			}
			return a.printActivities(ctx, classID)
		},
	}
	cmd.Flags().IntVar(&classID, "turma", 0, "id da turma (todas por padrão)")
	return cmd
}

func addActivityFlags(cmd *cobra.Command, na *activity.NewActivity) {
	cmd.Flags().StringVar(&na.Title, "titulo", "", "título")
	cmd.Flags().StringVar(&na.Description, "descricao", "", "descrição")
	cmd.Flags().StringVar(&na.DueDate, "data", "", "data de entrega (aaaa-mm-dd ou dd/mm/aaaa)")
	cmd.Flags().IntVar(&na.ClassID, "turma", 0, "id da turma")
	cmd.Flags().StringVar(&na.Status, "status", "", "status")
}

func (a *app) createActivityCmd() *cobra.Command {
	var na activity.NewActivity

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Cadastra uma atividade em uma turma (status \"" + activity.DefaultStatus + "\" por padrão)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, err := a.sessionContext(cmd.Context())
			if err != nil {
				return err
			}
			act, err := a.activitySvc.Create(ctx, na)
			if err != nil {
				return err
			}
			fmt.Fprintf(a.out, "Atividade %q cadastrada.\n\n", act.Title)
			return a.printActivities(ctx, act.ClassID)
		},
	}
	addActivityFlags(cmd, &na)
	return cmd
}

func (a *app) editActivityCmd() *cobra.Command {
	var na activity.NewActivity

	cmd := &cobra.Command{
		Use:   "edit ID",
		Short: "Altera uma atividade. Campos omitidos são mantidos.",
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
			act, err := a.activitySvc.Get(ctx, id)
			if err != nil {
				return err
			}

			flags := cmd.Flags()
			if !flags.Changed("titulo") {
				na.Title = act.Title
			}
			if !flags.Changed("descricao") {
				na.Description = act.Description
			}
			if !flags.Changed("data") {
				na.DueDate = act.DueDate
			}
			if !flags.Changed("turma") {
				na.ClassID = act.ClassID
			}

			if act, err = a.activitySvc.Update(ctx, id, activity.UpdateActivity(na)); err != nil {
				return err
			}
			fmt.Fprintf(a.out, "Atividade %q atualizada.\n\n", act.Title)
			return a.printActivities(ctx, act.ClassID)
		},
	}
	addActivityFlags(cmd, &na)
	return cmd
}

func (a *app) deleteActivityCmd() *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:     "delete ID",
		Aliases: []string{"rm"},
		Short:   "Exclui uma atividade",
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
			act, err := a.activitySvc.Get(ctx, id)
			if err != nil {
				return err
			}

			question := fmt.Sprintf("Excluir a atividade %q?", act.Title)
			deleted, err := a.runDelete(yes, question, func() error { return a.activitySvc.Delete(ctx, id) })
			if err != nil || !deleted {
				return err
			}
			fmt.Fprintf(a.out, "Atividade %q excluída.\n\n", act.Title)
			return a.printActivities(ctx, act.ClassID)
		},
	}
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "não pede confirmação")
	return cmd
}
