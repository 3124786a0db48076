package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/alfanumrik/internal/qa"
	"github.com/abhisek/alfanumrik/internal/ui/theme"
)

var askCmd = &cobra.Command{
	Use:   "ask <subject> <chapter> <concept> <question...>",
	Short: "Ask the mentor a question about a concept",
	Args:  cobra.MinimumNArgs(4),
	RunE: withApp(func(cmd *cobra.Command, a *app, args []string) error {
		ctx := cmd.Context()
		p, err := a.Student()
		if err != nil {
			return err
		}
		mk, err := a.moduleKey(p, args[0], args[1])
		if err != nil {
			return err
		}
		svc, err := a.qaService(cmd)
		if err != nil {
			return err
		}

		q, err := svc.Ask(ctx, qa.Question{
			StudentID:   p.ID,
			StudentName: p.Name,
			Grade:       p.Grade,
			Subject:     mk.Subject,
			Chapter:     mk.Chapter,
			Concept:     args[2],
			Text:        strings.Join(args[3:], " "),
		})
		if err != nil {
			return err
		}
		fmt.Println(theme.Hint.Render("question " + q.ID))

		answered, err := svc.Answer(ctx, q.ID, a.cfg.Language)
		if err != nil {
			return fmt.Errorf("%w (the question is saved; retry with `alfanumrik answer %s`)", err, q.ID)
		}
		printAnswer(answered)
		return nil
	}),
}

var answerCmd = &cobra.Command{
	Use:   "answer [question-id]",
	Short: "Answer a saved question, or list questions",
	Args:  cobra.MaximumNArgs(1),
	RunE: withApp(func(cmd *cobra.Command, a *app, args []string) error {
		ctx := cmd.Context()
		p, err := a.Student()
		if err != nil {
			return err
		}
		svc, err := a.qaService(cmd)
		if err != nil {
			return err
		}

		if len(args) == 0 {
			all, _ := cmd.Flags().GetBool("all")
			var qs []qa.Question
			if all {
				qs, err = svc.All(ctx)
			} else {
				qs, err = svc.ForStudent(ctx, p.ID)
			}
			if err != nil {
				return err
			}
			for _, q := range qs {
				state := theme.Warn.Render("open")
				if q.Answer != nil {
					state = theme.Good.Render("answered")
				}
				fmt.Printf("%s  %-8s  %s  %s\n", q.ID, state, q.AskedAt.Local().Format("2006-01-02"), truncate(q.Text, 60))
			}
			return nil
		}

		q, err := svc.Get(ctx, args[0])
		if err != nil {
			return err
		}
		if analyze, _ := cmd.Flags().GetBool("analyze"); analyze {
			q, err = svc.Analyze(ctx, q.ID, a.cfg.Language)
		} else if q.Answer == nil {
			q, err = svc.Answer(ctx, q.ID, a.cfg.Language)
		}
		if err != nil {
			return err
		}
		printAnswer(q)
		return nil
	}),
}

func (a *app) qaService(cmd *cobra.Command) (*qa.Service, error) {
	provider, err := a.LLM(cmd.Context())
	if err != nil {
		return nil, err
	}
	return qa.NewService(a.store, provider, qa.DefaultConfig(), a.log), nil
}

func printAnswer(q *qa.Question) {
	fmt.Println(theme.Heading.Render(q.Concept) + theme.Hint.Render("  "+q.Text))
	if q.Answer != nil {
		fmt.Println(theme.Card.Render(q.Answer.Text))
	}
	if q.Analysis != nil {
		fmt.Println(theme.Title.Render("Model answer"))
		fmt.Println(q.Analysis.ModelAnswer)
		fmt.Println(theme.Title.Render("Teaching notes"))
		fmt.Println(q.Analysis.PedagogicalNotes)
	}
}

func init() {
	answerCmd.Flags().Bool("analyze", false, "Prepare a model answer and teaching notes")
	answerCmd.Flags().Bool("all", false, "List every student's questions")
}
