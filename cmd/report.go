package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/alfanumrik/internal/feedback"
	"github.com/abhisek/alfanumrik/internal/reports"
	"github.com/abhisek/alfanumrik/internal/ui/theme"
)

var reportCmd = &cobra.Command{
	Use:   "report <teacher|parent>",
	Short: "Write a progress report for the signed-in student",
	Args:  cobra.ExactArgs(1),
	RunE: withApp(func(cmd *cobra.Command, a *app, args []string) error {
		p, err := a.Student()
		if err != nil {
			return err
		}
		role, err := reports.ParseRole(args[0])
		if err != nil {
			return err
		}
		provider, err := a.LLM(cmd.Context())
		if err != nil {
			return err
		}
		refresh, _ := cmd.Flags().GetBool("refresh")

		svc := reports.NewService(a.store.Documents(), provider, reports.DefaultConfig(), a.log)
		r, err := svc.Report(cmd.Context(), role,
			reports.Student{ID: p.ID, Name: p.Name, Grade: p.Grade, Performance: p.Performance},
			a.cfg.Language, refresh)
		if err != nil {
			return err
		}

		for _, sec := range reports.Sections(r.Text) {
			if sec.Heading != "" {
				fmt.Println(theme.Heading.Render(sec.Heading))
			}
			for _, line := range sec.Lines {
				fmt.Println("  " + line)
			}
			fmt.Println()
		}
		hint := "Rate this report: alfanumrik feedback " + r.ContentID + " up|down"
		if r.WasCached {
			hint = "Saved report; use --refresh to regenerate. " + hint
		}
		fmt.Println(theme.Hint.Render(hint))
		return nil
	}),
}

var feedbackCmd = &cobra.Command{
	Use:   "feedback <content-id> [up|down]",
	Short: "Rate a generated report, or show its ratings",
	Args:  cobra.RangeArgs(1, 2),
	RunE: withApp(func(cmd *cobra.Command, a *app, args []string) error {
		p, err := a.Student()
		if err != nil {
			return err
		}
		svc := feedback.NewService(a.store.Collections(), a.log)

		if len(args) == 1 {
			recs, err := svc.ForContent(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			up, down := feedback.Tally(recs)
			fmt.Printf("%s  %s  %s\n", args[0], theme.Good.Render(fmt.Sprintf("👍 %d", up)), theme.Bad.Render(fmt.Sprintf("👎 %d", down)))
			for _, r := range recs {
				if r.Comment != "" {
					fmt.Printf("  %-7s %s\n", r.Role, r.Comment)
				}
			}
			return nil
		}

		role := feedback.RoleTeacher
		if strings.HasPrefix(args[0], "report-"+string(reports.RoleParent)+"-") {
			role = feedback.RoleParent
		}
		comment, _ := cmd.Flags().GetString("comment")
		_, err = svc.Submit(cmd.Context(), feedback.Record{
			Role:      role,
			StudentID: p.ID,
			ContentID: args[0],
			Rating:    feedback.Rating(strings.ToLower(args[1])),
			Comment:   comment,
		})
		if err != nil {
			return err
		}
		fmt.Println("Thanks for the feedback!")
		return nil
	}),
}

func init() {
	reportCmd.Flags().Bool("refresh", false, "Generate a new report even if one is saved")
	feedbackCmd.Flags().StringP("comment", "m", "", "Optional comment")
}
