package cmd

import (
	"context"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "alfanumrik",
	Short: "AI tutor for K-12 students",
	Long: "Alfanumrik generates lessons for every chapter of the curriculum, tracks quiz and exercise\n" +
		"scores with a daily streak, and recommends what to study next.",
	SilenceUsage: true,
}

func Execute(ctx context.Context) error {
	return rootCmd.ExecuteContext(ctx)
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.String("db", "", "Path to SQLite database file (overrides ALFANUMRIK_DB env var)")
	pf.String("lang", "", "Content language (overrides ALFANUMRIK_LANGUAGE, default English)")
	pf.String("log", "", "Log mode: quiet, dev or prod (overrides ALFANUMRIK_LOG)")
	pf.String("env-file", ".env", "Optional dotenv file to load")

	rootCmd.AddCommand(
		signupCmd, loginCmd, logoutCmd, whoamiCmd,
		curriculumCmd, lessonCmd, sectionCmd,
		recordCmd, historyCmd, streakCmd, conceptCmd, statsCmd,
		quizCmd, exerciseCmd, diagnosticCmd,
		nextCmd, askCmd, answerCmd,
		reportCmd, feedbackCmd, diagramCmd,
		llmCmd, resetCmd, versionCmd,
	)
}
