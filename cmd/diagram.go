package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/alfanumrik/internal/media"
	"github.com/abhisek/alfanumrik/internal/ui/theme"
)

var diagramCmd = &cobra.Command{
	Use:   "diagram <description...>",
	Short: "Draw a lesson diagram or concept map and save it as PNG",
	Args:  cobra.MinimumNArgs(1),
	RunE: withApp(func(cmd *cobra.Command, a *app, args []string) error {
		ctx := cmd.Context()
		out, _ := cmd.Flags().GetString("out")
		subject, _ := cmd.Flags().GetString("subject")
		conceptMap, _ := cmd.Flags().GetBool("concept-map")
		description := strings.Join(args, " ")

		imager, err := media.NewGeminiImager(ctx, a.cfg.LLM.Gemini, a.cfg.LLM.ImageModel)
		if err != nil {
			return fmt.Errorf("image generation needs a Gemini key: %w", err)
		}
		svc := media.NewService(imager, a.store.Documents(), a.log)

		var img []byte
		if conceptMap {
			img, err = svc.ConceptMap(ctx, description)
		} else {
			img, err = svc.Diagram(ctx, description, subject)
		}
		if err != nil {
			return err
		}

		if out == "" {
			out = media.DescriptionKey(description)[:12] + ".png"
		}
		if err := os.WriteFile(out, img, 0o644); err != nil {
			return fmt.Errorf("write %s: %w", out, err)
		}
		fmt.Println(theme.Good.Render("Saved " + out))
		return nil
	}),
}

func init() {
	diagramCmd.Flags().StringP("out", "o", "", "Output file (default: derived from the description)")
	diagramCmd.Flags().String("subject", "", "Subject, used to pick the drawing style")
	diagramCmd.Flags().Bool("concept-map", false, "Draw a labelled concept map instead")
}
