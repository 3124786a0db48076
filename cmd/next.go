package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/abhisek/alfanumrik/internal/recommend"
	"github.com/abhisek/alfanumrik/internal/ui/theme"
)

var nextCmd = &cobra.Command{
	Use:   "next",
	Short: "Recommend what to study next",
	RunE: withApp(func(cmd *cobra.Command, a *app, args []string) error {
		p, err := a.Student()
		if err != nil {
			return err
		}
		st := recommend.Student{ID: p.ID, Name: p.Name, Grade: p.Grade, Performance: p.Performance}

		if offline, _ := cmd.Flags().GetBool("offline"); offline {
			sel := recommend.NewSelector(nil, a.catalog, recommend.DefaultConfig(), a.log)
			d := sel.Decide(st)
			fmt.Println(theme.Title.Render(actionTitle(d.Action)) + "  " + chapterLine(d.Subject, d.Chapter))
			if hint := actionCommand(d.Action, d.Subject, d.Chapter); hint != "" {
				fmt.Println(theme.Hint.Render("Start with: " + hint))
			}
			return nil
		}

		provider, err := a.LLM(cmd.Context())
		if err != nil {
			return err
		}
		sel := recommend.NewSelector(provider, a.catalog, recommend.DefaultConfig(), a.log)
		act, err := sel.Next(cmd.Context(), st, a.cfg.Language)
		if err != nil {
			return err
		}

		fmt.Println(theme.Title.Render(actionTitle(act.Type)) + "  " + chapterLine(act.Subject, act.Chapter))
		if act.Skill != "" {
			fmt.Println(theme.Label.Render("Skill") + act.Skill)
		}
		fmt.Println(theme.Card.Render(act.Reasoning))
		fmt.Println(theme.Hint.Render(fmt.Sprintf("confidence %.0f%%", act.Confidence*100)))
		if hint := actionCommand(act.Type, act.Subject, act.Chapter); hint != "" {
			fmt.Println(theme.Hint.Render("Start with: " + hint))
		}
		return nil
	}),
}

func actionTitle(t recommend.ActionType) string {
	switch t {
	case recommend.ActionReview:
		return "Review"
	case recommend.ActionPractice:
		return "Practice"
	case recommend.ActionAdvance:
		return "Start a new chapter"
	case recommend.ActionIQExercise:
		return "IQ exercise"
	case recommend.ActionEQExercise:
		return "EQ exercise"
	}
	return string(t)
}

// actionCommand is the command that carries out an action.
func actionCommand(t recommend.ActionType, subject, chapter string) string {
	switch t {
	case recommend.ActionReview, recommend.ActionAdvance:
		return fmt.Sprintf("alfanumrik lesson %q %q", subject, chapter)
	case recommend.ActionPractice:
		return fmt.Sprintf("alfanumrik quiz %q %q", subject, chapter)
	case recommend.ActionIQExercise:
		return "alfanumrik exercise iq"
	case recommend.ActionEQExercise:
		return "alfanumrik exercise eq"
	}
	return ""
}

func chapterLine(subject, chapter string) string {
	if subject == "" {
		return ""
	}
	return theme.Heading.Render(subject) + " · " + chapter
}

func init() {
	nextCmd.Flags().Bool("offline", false, "Only run the selection rules, without an explanation")
}
