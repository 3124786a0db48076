package cmd

import (
	"cmp"
	"fmt"
	"slices"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/alfanumrik/internal/progress"
	"github.com/abhisek/alfanumrik/internal/ui/components"
	"github.com/abhisek/alfanumrik/internal/ui/theme"
)

var recordCmd = &cobra.Command{
	Use:   "record <subject> <chapter> <score>",
	Short: "Record a quiz or exercise score (0-100)",
	Long:  "Records an assessment outcome and updates the daily streak. For iq and eq exercises the\nchapter is the skill that was practised.",
	Args:  cobra.ExactArgs(3),
	RunE: withApp(func(cmd *cobra.Command, a *app, args []string) error {
		p, err := a.Student()
		if err != nil {
			return err
		}
		score, err := parseScore(args[2])
		if err != nil {
			return err
		}
		kind, _ := cmd.Flags().GetString("kind")
		note, _ := cmd.Flags().GetString("context")

		rec, err := a.tracker.RecordOutcome(cmd.Context(), p.ID, progress.Record{
			Subject: args[0],
			Chapter: args[1],
			Score:   score,
			Kind:    progress.Kind(kind),
			Context: note,
		})
		if err != nil {
			return err
		}
		fmt.Println(components.ScoreBar(rec.Chapter, rec.Score, 48))

		if s, err := a.tracker.Streak(cmd.Context(), p.ID); err == nil && s != nil {
			fmt.Println(theme.Warn.Render(fmt.Sprintf("🔥 %d day streak", s.Count)))
		}
		return nil
	}),
}

// parseScore accepts a whole number from 0 to 100, optionally followed by %.
func parseScore(arg string) (int, error) {
	score, err := strconv.Atoi(strings.TrimSuffix(strings.TrimSpace(arg), "%"))
	if err != nil || score < 0 || score > 100 {
		return 0, fmt.Errorf("invalid score %q: want a whole number from 0 to 100", arg)
	}
	return score, nil
}

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List recorded scores, newest first",
	RunE: withApp(func(cmd *cobra.Command, a *app, args []string) error {
		p, err := a.Student()
		if err != nil {
			return err
		}
		limit, _ := cmd.Flags().GetInt("limit")
		records, err := a.tracker.Records(cmd.Context(), p.ID)
		if err != nil {
			return err
		}
		if len(records) == 0 {
			fmt.Println("No scores recorded yet.")
			return nil
		}
		progress.SortByRecent(records)
		if limit > 0 && len(records) > limit {
			records = records[:limit]
		}

		fmt.Printf("%-10s  %-8s  %-16s  %-32s  %s\n", "Date", "Kind", "Subject", "Chapter", "Score")
		fmt.Println(strings.Repeat("─", 80))
		for _, r := range records {
			fmt.Printf("%-10s  %-8s  %-16s  %-32s  %s\n",
				progress.DateOf(r.CompletedAt.Local()),
				r.Kind,
				truncate(r.Subject, 16),
				truncate(r.Chapter, 32),
				theme.Score(r.Score).Render(fmt.Sprintf("%3d", r.Score)),
			)
		}
		return nil
	}),
}

var streakCmd = &cobra.Command{
	Use:   "streak",
	Short: "Show the daily learning streak",
	RunE: withApp(func(cmd *cobra.Command, a *app, args []string) error {
		p, err := a.Student()
		if err != nil {
			return err
		}
		s, err := a.tracker.Streak(cmd.Context(), p.ID)
		if err != nil {
			return err
		}
		if s == nil || s.Count == 0 {
			fmt.Println(theme.Hint.Render("No active streak. Record a score today to start one."))
			return nil
		}
		fmt.Println(theme.Warn.Render(fmt.Sprintf("🔥 %d day streak", s.Count)) +
			theme.Hint.Render(fmt.Sprintf("  (last active %s)", s.LastDate)))
		return nil
	}),
}

var conceptCmd = &cobra.Command{
	Use:   "concept <subject> <chapter> [concept]",
	Short: "Show concept progress for a chapter, or mark one concept",
	Args:  cobra.RangeArgs(2, 3),
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
		key := progress.ChapterKey{StudentID: p.ID, Grade: mk.Grade, Subject: mk.Subject, Chapter: mk.Chapter, Language: mk.Language}

		var cp progress.ChapterProgress
		if len(args) == 3 {
			status := progress.StatusInProgress
			if mastered, _ := cmd.Flags().GetBool("mastered"); mastered {
				status = progress.StatusMastered
			}
			cp, err = a.tracker.SetConceptStatus(ctx, key, args[2], status)
		} else {
			cp, err = a.tracker.ChapterProgress(ctx, key)
		}
		if err != nil {
			return err
		}

		// Concepts come from the stored lesson when there is one.
		total := len(cp)
		if svc, err := a.contentService(ctx); err == nil {
			if m, err := svc.Cached(ctx, mk); err == nil && m != nil {
				total = max(total, len(m.KeyConcepts))
			}
		}

		fmt.Println(theme.Title.Render(mk.Chapter))
		names := make([]string, 0, len(cp))
		for c := range cp {
			names = append(names, c)
		}
		slices.Sort(names)
		for _, c := range names {
			mark := theme.Warn.Render("…")
			if cp[c] == progress.StatusMastered {
				mark = theme.Good.Render("✓")
			}
			fmt.Printf("  %s %s\n", mark, c)
		}
		if total > 0 {
			fmt.Println(components.NewProgressBar("Mastered", float64(cp.Mastered())/float64(total), true, 48).View())
		}
		return nil
	}),
}

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show average scores per subject",
	RunE: withApp(func(cmd *cobra.Command, a *app, args []string) error {
		p, err := a.Student()
		if err != nil {
			return err
		}
		records, err := a.tracker.Records(cmd.Context(), p.ID)
		if err != nil {
			return err
		}

		type agg struct {
			name       string
			sum, count int
		}
		bySubject := map[string]*agg{}
		var cognitive int
		for _, r := range records {
			if !r.Kind.Academic() {
				cognitive++
				continue
			}
			k := strings.ToLower(r.Subject)
			if bySubject[k] == nil {
				bySubject[k] = &agg{name: r.Subject}
			}
			bySubject[k].sum += r.Score
			bySubject[k].count++
		}
		if len(bySubject) == 0 {
			fmt.Println("No quiz or exercise scores recorded yet.")
			return nil
		}

		subjects := make([]*agg, 0, len(bySubject))
		for _, s := range bySubject {
			subjects = append(subjects, s)
		}
		slices.SortFunc(subjects, func(x, y *agg) int { return cmp.Compare(x.name, y.name) })

		fmt.Println(theme.Title.Render("Average score by subject"))
		for _, s := range subjects {
			label := fmt.Sprintf("%-16s %3d", truncate(s.name, 16), s.count)
			fmt.Println(components.ScoreBar(label, s.sum/s.count, 60))
		}
		fmt.Println(theme.Hint.Render(fmt.Sprintf("%d assessments, %d IQ/EQ exercises", len(records)-cognitive, cognitive)))
		return nil
	}),
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max]
}

func init() {
	recordCmd.Flags().String("kind", string(progress.KindQuiz), "quiz, exercise, iq or eq")
	recordCmd.Flags().String("context", "", "Optional note, e.g. the exercise scenario")
	historyCmd.Flags().IntP("limit", "n", 20, "Number of records to show (0 for all)")
	conceptCmd.Flags().Bool("mastered", false, "Mark the concept mastered instead of in progress")
}
