package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/alfanumrik/internal/auth"
	"github.com/abhisek/alfanumrik/internal/content"
	"github.com/abhisek/alfanumrik/internal/ui/theme"
)

var curriculumCmd = &cobra.Command{
	Use:   "curriculum [grade]",
	Short: "List grades, or the subjects and chapters of one grade",
	Args:  cobra.MaximumNArgs(1),
	RunE: withApp(func(cmd *cobra.Command, a *app, args []string) error {
		if len(args) == 0 {
			for _, g := range a.catalog.Grades {
				fmt.Printf("%s  %s\n", theme.Title.Render(g.Level), theme.Hint.Render(g.Description))
			}
			return nil
		}
		g, ok := a.catalog.Grade(args[0])
		if !ok {
			return fmt.Errorf("unknown grade %q", args[0])
		}
		for _, s := range g.Subjects {
			fmt.Println(theme.Heading.Render(s.Icon + " " + s.Name))
			for i, ch := range s.ChapterTitles() {
				fmt.Printf("  %2d. %s\n", i+1, ch)
			}
		}
		return nil
	}),
}

var lessonCmd = &cobra.Command{
	Use:   "lesson <subject> <chapter>",
	Short: "Show the learning module for a chapter, generating it on first use",
	Args:  cobra.ExactArgs(2),
	RunE: withApp(func(cmd *cobra.Command, a *app, args []string) error {
		p, err := a.Student()
		if err != nil {
			return err
		}
		key, err := a.moduleKey(p, args[0], args[1])
		if err != nil {
			return err
		}
		svc, err := a.contentService(cmd.Context())
		if err != nil {
			return err
		}

		res, err := svc.GetOrGenerate(cmd.Context(), key, p.Name)
		if err != nil {
			return err
		}
		if asJSON, _ := cmd.Flags().GetBool("json"); asJSON {
			_, err := os.Stdout.Write(append(res.Raw, '\n'))
			return err
		}
		if res.Fallback {
			fmt.Fprintln(os.Stderr, theme.Warn.Render("The lesson could not be generated right now; showing a placeholder. Try again later."))
		}
		printModule(res.Module)
		return nil
	}),
}

var sectionCmd = &cobra.Command{
	Use:   "section <subject> <chapter> <kind>",
	Short: "Generate an enrichment section for a chapter and add it to the lesson",
	Long:  "Kinds: " + strings.Join(sectionKindNames(), ", "),
	Args:  cobra.ExactArgs(3),
	RunE: withApp(func(cmd *cobra.Command, a *app, args []string) error {
		ctx := cmd.Context()
		p, err := a.Student()
		if err != nil {
			return err
		}
		kind, err := content.ParseSectionKind(args[2])
		if err != nil {
			return err
		}
		key, err := a.moduleKey(p, args[0], args[1])
		if err != nil {
			return err
		}
		svc, err := a.contentService(ctx)
		if err != nil {
			return err
		}

		section, err := svc.GenerateSection(ctx, key, kind)
		if err != nil {
			return err
		}
		if _, err := svc.UpdateSection(ctx, key, section); err != nil {
			return fmt.Errorf("save section (run `alfanumrik lesson` first): %w", err)
		}
		out, err := json.MarshalIndent(section, "", "  ")
		if err != nil {
			return err
		}
		fmt.Println(theme.Heading.Render(string(kind)))
		fmt.Println(string(out))
		return nil
	}),
}

func sectionKindNames() []string {
	var names []string
	for _, k := range content.SectionKinds() {
		names = append(names, string(k))
	}
	return names
}

func (a *app) contentService(ctx context.Context) (*content.Service, error) {
	provider, err := a.LLM(ctx)
	if err != nil {
		return nil, err
	}
	gen := content.NewLLMGenerator(provider, content.DefaultGeneratorConfig())
	return content.NewService(a.cache, a.store.Documents(), gen, a.log), nil
}

// moduleKey resolves subject and chapter against the student's grade so the
// key always uses the catalog's spelling.
func (a *app) moduleKey(p *auth.Profile, subject, chapter string) (content.ModuleKey, error) {
	g, ok := a.catalog.Grade(p.Grade)
	if !ok {
		return content.ModuleKey{}, fmt.Errorf("grade %q is not in the curriculum", p.Grade)
	}
	s, ok := g.Subject(subject)
	if !ok {
		return content.ModuleKey{}, fmt.Errorf("%s has no subject %q", g.Level, subject)
	}
	for _, title := range s.ChapterTitles() {
		if strings.EqualFold(title, strings.TrimSpace(chapter)) {
			return content.ModuleKey{Grade: g.Level, Subject: s.Name, Chapter: title, Language: a.cfg.Language}, nil
		}
	}
	return content.ModuleKey{}, fmt.Errorf("%s %s has no chapter %q", g.Level, s.Name, chapter)
}

func printModule(m *content.Module) {
	fmt.Println(theme.Title.Render(m.ChapterTitle))
	fmt.Println()
	fmt.Println(m.Introduction)

	if len(m.LearningObjectives) > 0 {
		fmt.Println()
		fmt.Println(theme.Heading.Render("Learning objectives"))
		for _, o := range m.LearningObjectives {
			fmt.Println("  - " + o)
		}
	}
	for i, c := range m.KeyConcepts {
		fmt.Println()
		fmt.Println(theme.Heading.Render(fmt.Sprintf("%d. %s", i+1, c.Title)))
		fmt.Println(c.Explanation)
		if c.RealWorldExample != "" {
			fmt.Println(theme.Hint.Render("Example: " + c.RealWorldExample))
		}
	}
	if m.Summary != "" {
		fmt.Println()
		fmt.Println(theme.Card.Render(m.Summary))
	}

	var have []string
	for _, k := range content.SectionKinds() {
		if m.Present(k) {
			have = append(have, string(k))
		}
	}
	if len(have) > 0 {
		fmt.Println(theme.Hint.Render("Sections: " + strings.Join(have, ", ")))
	}
}

func init() {
	lessonCmd.Flags().Bool("json", false, "Print the stored module JSON")
}
