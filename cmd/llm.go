package cmd

import (
	"bytes"
	"encoding/json"
	"fmt"
	"slices"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/alfanumrik/internal/llm"
	"github.com/abhisek/alfanumrik/internal/store"
	"github.com/abhisek/alfanumrik/internal/ui/theme"
)

var llmCmd = &cobra.Command{
	Use:   "llm",
	Short: "Inspect the model calls made for lessons, quizzes, answers and reports",
}

var llmListCmd = &cobra.Command{
	Use:   "list",
	Short: "List recent model calls, newest first",
	RunE: withApp(func(cmd *cobra.Command, a *app, args []string) error {
		limit, _ := cmd.Flags().GetInt("limit")
		purpose, _ := cmd.Flags().GetString("purpose")
		failedOnly, _ := cmd.Flags().GetBool("failed")
		if purpose != "" && !slices.Contains(llm.Purposes(), purpose) {
			return fmt.Errorf("unknown purpose %q; one of %s", purpose, strings.Join(llm.Purposes(), ", "))
		}

		opts := store.QueryOpts{Limit: limit, Purpose: purpose}
		if failedOnly {
			opts.Limit = 0
		}
		events, err := a.store.EventRepo().QueryLLMEvents(cmd.Context(), opts)
		if err != nil {
			return fmt.Errorf("query events: %w", err)
		}
		if failedOnly {
			events = slices.DeleteFunc(events, func(e store.LLMEvent) bool { return e.Success })
			if limit > 0 && len(events) > limit {
				events = events[:limit]
			}
		}
		if len(events) == 0 {
			fmt.Println(theme.Hint.Render("No model calls yet. Lessons, quizzes and answers are logged here once generated."))
			return nil
		}

		for _, e := range events {
			fmt.Println(eventLine(e))
		}
		return nil
	}),
}

// eventLine renders one call as "#id  time  purpose  tokens  cost  status".
func eventLine(e store.LLMEvent) string {
	status := theme.Good.Render("ok")
	if !e.Success {
		status = theme.Bad.Render("failed")
	}
	cost := "?"
	if p, ok := llm.PriceOf(e.Model); ok {
		cost = formatCost(p.Cost(e.InputTokens, e.OutputTokens))
	}
	return fmt.Sprintf("%s  %s  %s  %6d→%-6d %8s  %5.1fs  %s",
		theme.Hint.Render(fmt.Sprintf("#%-4d", e.ID)),
		e.Timestamp.Local().Format("Jan 02 15:04"),
		theme.Label.Render(llm.PurposeLabel(e.Purpose)),
		e.InputTokens, e.OutputTokens,
		cost,
		float64(e.LatencyMs)/1000,
		status,
	)
}

var llmViewCmd = &cobra.Command{
	Use:   "view <id>",
	Short: "Show the prompt and reply of one model call",
	Args:  cobra.ExactArgs(1),
	RunE: withApp(func(cmd *cobra.Command, a *app, args []string) error {
		id, err := strconv.Atoi(strings.TrimPrefix(args[0], "#"))
		if err != nil {
			return fmt.Errorf("invalid call id %q", args[0])
		}
		e, err := a.store.EventRepo().GetLLMEvent(cmd.Context(), id)
		if err != nil {
			return fmt.Errorf("get event: %w", err)
		}
		if e == nil {
			return fmt.Errorf("no model call #%d", id)
		}

		rows := []string{
			theme.Label.Render("Purpose") + llm.PurposeLabel(e.Purpose),
			theme.Label.Render("When") + e.Timestamp.Local().Format("2006-01-02 15:04:05"),
			theme.Label.Render("Model") + e.Provider + " / " + e.Model,
			theme.Label.Render("Tokens") + fmt.Sprintf("%d in, %d out", e.InputTokens, e.OutputTokens),
			theme.Label.Render("Latency") + fmt.Sprintf("%dms", e.LatencyMs),
		}
		if !e.Success {
			rows = append(rows, theme.Label.Render("Error")+theme.Bad.Render(e.ErrorMessage))
		}
		fmt.Println(theme.Card.Render(strings.Join(rows, "\n")))

		fmt.Println(theme.Heading.Render("Prompt"))
		fmt.Println(prettyBody(e.RequestBody))
		fmt.Println(theme.Heading.Render("Reply"))
		fmt.Println(prettyBody(e.ResponseBody))
		return nil
	}),
}

// prettyBody indents JSON bodies and leaves anything else as is.
func prettyBody(body string) string {
	if body == "" {
		return theme.Hint.Render("(not captured)")
	}
	var out bytes.Buffer
	if err := json.Indent(&out, []byte(body), "", "  "); err != nil {
		return body
	}
	return out.String()
}

var llmStatsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show token usage per feature and the estimated cost per model",
	RunE: withApp(func(cmd *cobra.Command, a *app, args []string) error {
		ctx := cmd.Context()
		repo := a.store.EventRepo()
		byPurpose, err := repo.LLMUsageByPurpose(ctx)
		if err != nil {
			return fmt.Errorf("query usage: %w", err)
		}
		if len(byPurpose) == 0 {
			fmt.Println(theme.Hint.Render("No model usage recorded yet."))
			return nil
		}

		// Known purposes first, in the order a student meets them.
		order := llm.Purposes()
		slices.SortStableFunc(byPurpose, func(x, y store.UsageStat) int {
			return purposeRank(order, x.Key) - purposeRank(order, y.Key)
		})

		fmt.Println(theme.Title.Render("Usage by feature"))
		var calls, in, out int
		for _, st := range byPurpose {
			fmt.Printf("%s %5d calls  %9d in  %9d out  avg %5dms\n",
				theme.Label.Render(llm.PurposeLabel(st.Key)), st.Calls, st.InputTokens, st.OutputTokens, st.AvgLatencyMs)
			calls += st.Calls
			in += st.InputTokens
			out += st.OutputTokens
		}
		fmt.Printf("%s %5d calls  %9d in  %9d out\n", theme.Label.Render("Total"), calls, in, out)

		byModel, err := repo.LLMUsageByModel(ctx)
		if err != nil {
			return fmt.Errorf("query model usage: %w", err)
		}
		fmt.Println()
		fmt.Println(theme.Title.Render("Estimated cost (USD)"))
		var total float64
		var unpriced []string
		for _, mu := range byModel {
			price, ok := llm.PriceOf(mu.Key)
			if !ok {
				unpriced = append(unpriced, mu.Key)
				continue
			}
			c := price.Cost(mu.InputTokens, mu.OutputTokens)
			total += c
			fmt.Printf("  %-32s %5d calls  %9s\n", truncate(mu.Key, 32), mu.Calls, formatCost(c))
		}
		label := "Total"
		if len(unpriced) > 0 {
			label = "Total (partial)"
		}
		fmt.Printf("  %-32s %5s        %9s\n", label, "", formatCost(total))
		if len(unpriced) > 0 {
			fmt.Println(theme.Hint.Render("No pricing for: " + strings.Join(unpriced, ", ")))
		}
		return nil
	}),
}

func purposeRank(order []string, purpose string) int {
	if i := slices.Index(order, purpose); i >= 0 {
		return i
	}
	return len(order)
}

func formatCost(usd float64) string {
	if usd < 0.01 {
		return fmt.Sprintf("$%.4f", usd)
	}
	return fmt.Sprintf("$%.2f", usd)
}

func init() {
	llmListCmd.Flags().IntP("limit", "n", 20, "Number of calls to show")
	llmListCmd.Flags().StringP("purpose", "p", "", "Only calls for one feature: "+strings.Join(llm.Purposes(), ", "))
	llmListCmd.Flags().Bool("failed", false, "Only failed calls")

	llmCmd.AddCommand(llmListCmd, llmViewCmd, llmStatsCmd)
}
