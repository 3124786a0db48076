package cmd

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/alfanumrik/internal/content"
	"github.com/abhisek/alfanumrik/internal/quiz"
	"github.com/abhisek/alfanumrik/internal/ui/components"
	"github.com/abhisek/alfanumrik/internal/ui/theme"
)

var quizCmd = &cobra.Command{
	Use:   "quiz <subject> <chapter>",
	Short: "Take a multiple-choice quiz on a chapter's key concepts",
	Args:  cobra.ExactArgs(2),
	RunE: withApp(func(cmd *cobra.Command, a *app, args []string) error {
		ctx := cmd.Context()
		p, err := a.Student()
		if err != nil {
			return err
		}
		key, err := a.moduleKey(p, args[0], args[1])
		if err != nil {
			return err
		}
		m, err := a.lessonFor(cmd, key, p.Name)
		if err != nil {
			return err
		}
		count, _ := cmd.Flags().GetInt("count")

		svc, err := a.quizService(cmd)
		if err != nil {
			return err
		}
		set, err := svc.Generate(ctx, quiz.GenerateInput{
			Type: quiz.TypeQuiz, Grade: key.Grade, Subject: key.Subject, Chapter: key.Chapter,
			Language: key.Language, Concepts: m.KeyConcepts, Count: count,
		})
		if err != nil {
			return err
		}
		return takeSet(cmd, a, svc, p.ID, set)
	}),
}

var exerciseCmd = &cobra.Command{
	Use:   "exercise (iq | eq | <subject> <chapter> <concept>)",
	Short: "Drill one concept of a chapter, or take a daily IQ or EQ exercise",
	Args:  cobra.RangeArgs(1, 3),
	RunE: withApp(func(cmd *cobra.Command, a *app, args []string) error {
		ctx := cmd.Context()
		p, err := a.Student()
		if err != nil {
			return err
		}
		svc, err := a.quizService(cmd)
		if err != nil {
			return err
		}

		in := quiz.GenerateInput{Grade: p.Grade, Language: a.cfg.Language}
		switch {
		case len(args) == 1:
			t, err := quiz.ParseType(args[0])
			if err != nil || (t != quiz.TypeIQ && t != quiz.TypeEQ) {
				return fmt.Errorf("exercise takes iq, eq or <subject> <chapter> <concept>, not %q", args[0])
			}
			in.Type = t
		case len(args) == 3:
			key, err := a.moduleKey(p, args[0], args[1])
			if err != nil {
				return err
			}
			m, err := a.lessonFor(cmd, key, p.Name)
			if err != nil {
				return err
			}
			c, ok := findConcept(m, args[2])
			if !ok {
				return fmt.Errorf("%s has no key concept %q; see `alfanumrik lesson %s %q`", key.Chapter, args[2], key.Subject, key.Chapter)
			}
			in.Type, in.Grade, in.Subject, in.Chapter = quiz.TypePractice, key.Grade, key.Subject, key.Chapter
			in.Concepts = []content.Concept{c}
		default:
			return errors.New("exercise takes iq, eq or <subject> <chapter> <concept>")
		}

		set, err := svc.Generate(ctx, in)
		if err != nil {
			return err
		}
		return takeSet(cmd, a, svc, p.ID, set)
	}),
}

var diagnosticCmd = &cobra.Command{
	Use:   "diagnostic <subject>",
	Short: "Take a short diagnostic test to find where to start a subject",
	Args:  cobra.ExactArgs(1),
	RunE: withApp(func(cmd *cobra.Command, a *app, args []string) error {
		p, err := a.Student()
		if err != nil {
			return err
		}
		g, ok := a.catalog.Grade(p.Grade)
		if !ok {
			return fmt.Errorf("grade %q is not in the curriculum", p.Grade)
		}
		subject, ok := g.Subject(args[0])
		if !ok {
			return fmt.Errorf("%s has no subject %q", g.Level, args[0])
		}
		svc, err := a.quizService(cmd)
		if err != nil {
			return err
		}
		set, err := svc.Generate(cmd.Context(), quiz.GenerateInput{
			Type: quiz.TypeDiagnostic, Grade: g.Level, Subject: subject.Name, Language: a.cfg.Language,
		})
		if err != nil {
			return err
		}
		return takeSet(cmd, a, svc, p.ID, set)
	}),
}

func (a *app) quizService(cmd *cobra.Command) (*quiz.Service, error) {
	provider, err := a.LLM(cmd.Context())
	if err != nil {
		return nil, err
	}
	return quiz.NewService(quiz.NewLLMGenerator(provider, quiz.DefaultConfig()), a.tracker, a.log), nil
}

// lessonFor returns the chapter's module, generating it when needed. The
// placeholder module has no concepts worth testing, so it is an error here.
func (a *app) lessonFor(cmd *cobra.Command, key content.ModuleKey, studentName string) (*content.Module, error) {
	svc, err := a.contentService(cmd.Context())
	if err != nil {
		return nil, err
	}
	res, err := svc.GetOrGenerate(cmd.Context(), key, studentName)
	if err != nil {
		return nil, err
	}
	if res.Fallback {
		return nil, fmt.Errorf("the lesson for %s could not be generated right now; try again later", key.Chapter)
	}
	return res.Module, nil
}

func findConcept(m *content.Module, title string) (content.Concept, bool) {
	for _, c := range m.KeyConcepts {
		if strings.EqualFold(c.Title, strings.TrimSpace(title)) {
			return c, true
		}
	}
	return content.Concept{}, false
}

// takeSet collects answers, from --answers or one line per question on
// stdin, then scores and records the set.
func takeSet(cmd *cobra.Command, a *app, svc *quiz.Service, studentID int64, set *quiz.Set) error {
	preset, _ := cmd.Flags().GetString("answers")
	var answers []string
	if preset != "" {
		answers = splitAnswers(preset)
	} else {
		var err error
		if answers, err = askQuestions(cmd.InOrStdin(), set); err != nil {
			return err
		}
	}

	res, err := svc.Submit(cmd.Context(), studentID, set, answers)
	if err != nil {
		return err
	}
	if preset != "" {
		for i, q := range set.Questions {
			printQuestion(i, &q)
			printOutcome(&q, res.Outcomes[i])
		}
	}

	fmt.Println()
	fmt.Println(components.ScoreBar(setTitle(set), res.Score, 48))
	fmt.Println(theme.Hint.Render(fmt.Sprintf("%d of %d correct", res.Correct, res.Total)))
	if res.Mastered {
		fmt.Println(theme.Good.Render("Concept mastered: " + set.Concept))
	}
	if set.Type == quiz.TypeDiagnostic {
		printPlacement(a, set, res.Score)
	}
	return nil
}

func askQuestions(r io.Reader, set *quiz.Set) ([]string, error) {
	in := bufio.NewScanner(r)
	answers := make([]string, 0, len(set.Questions))
	for i, q := range set.Questions {
		printQuestion(i, &q)
		fmt.Print(theme.Hint.Render("Your answer (A-D): "))
		if !in.Scan() {
			if err := in.Err(); err != nil {
				return nil, fmt.Errorf("read answer: %w", err)
			}
			return nil, errors.New("quiz abandoned: no more input")
		}
		answer := in.Text()
		answers = append(answers, answer)
		picked, _ := quiz.Resolve(answer, &q)
		printOutcome(&q, quiz.Outcome{Picked: picked, Correct: picked != "" && picked == q.Answer})
	}
	return answers, nil
}

func splitAnswers(s string) []string {
	parts := strings.Split(s, ",")
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}
	return parts
}

func printQuestion(i int, q *quiz.Question) {
	fmt.Println()
	if q.Scenario != "" {
		fmt.Println(theme.Body.Render(q.Scenario))
	}
	fmt.Println(theme.Heading.Render(fmt.Sprintf("%d. %s", i+1, q.Text)))
	for j, o := range q.Options {
		fmt.Printf("   %s) %s\n", quiz.OptionLabel(j), o)
	}
}

func printOutcome(q *quiz.Question, o quiz.Outcome) {
	if o.Correct {
		fmt.Println(theme.Good.Render("Correct!"))
	} else {
		fmt.Println(theme.Bad.Render("Not quite. Answer: " + q.Answer))
	}
	fmt.Println(theme.Hint.Render(q.Explanation))
}

func setTitle(set *quiz.Set) string {
	switch set.Type {
	case quiz.TypePractice:
		return set.Concept
	case quiz.TypeIQ:
		return quiz.CognitiveSubject
	case quiz.TypeEQ:
		return quiz.EmotionalSubject
	case quiz.TypeDiagnostic:
		return set.Subject
	}
	return set.Chapter
}

func printPlacement(a *app, set *quiz.Set, score int) {
	var chapters []string
	if g, ok := a.catalog.Grade(set.Grade); ok {
		if s, ok := g.Subject(set.Subject); ok {
			chapters = s.ChapterTitles()
		}
	}
	pl := quiz.Place(score, chapters)
	if pl.Chapter == "" {
		return
	}
	switch pl.Level {
	case quiz.LevelHigh:
		fmt.Println(theme.Card.Render(fmt.Sprintf("Great foundation in %s! You can jump ahead to %q.", set.Subject, pl.Chapter)))
	case quiz.LevelMid:
		fmt.Println(theme.Card.Render(fmt.Sprintf("Good start. Begin with %q to strengthen the basics.", pl.Chapter)))
	default:
		fmt.Println(theme.Card.Render(fmt.Sprintf("Let's build from the ground up, starting with %q.", pl.Chapter)))
	}
}

func init() {
	for _, c := range []*cobra.Command{quizCmd, exerciseCmd, diagnosticCmd} {
		c.Flags().String("answers", "", "Comma-separated answers (A-D, 1-4 or option text) instead of answering interactively")
	}
	quizCmd.Flags().Int("count", 5, "Number of questions")
}
