// Package media generates and stores illustration images for lessons.
package media

import (
	"context"
	"errors"
	"fmt"

	"google.golang.org/genai"

	"github.com/abhisek/alfanumrik/internal/llm"
)

// ImageGenerator turns a prompt into PNG bytes. Errors are *llm.Error values
// so callers can tell quota from rate limiting.
type ImageGenerator interface {
	GenerateImage(ctx context.Context, prompt string) ([]byte, error)
}

// GeminiImager generates images with an Imagen model.
type GeminiImager struct {
	client *genai.Client
	model  string
}

// NewGeminiImager creates an imager using the Gemini endpoint's key.
func NewGeminiImager(ctx context.Context, ep llm.Endpoint, model string) (*GeminiImager, error) {
	client, err := llm.NewGeminiClient(ctx, ep)
	if err != nil {
		return nil, err
	}
	return &GeminiImager{client: client, model: model}, nil
}

func (g *GeminiImager) GenerateImage(ctx context.Context, prompt string) ([]byte, error) {
	resp, err := g.client.Models.GenerateImages(ctx, g.model, prompt, &genai.GenerateImagesConfig{
		NumberOfImages: 1,
		OutputMIMEType: "image/png",
		AspectRatio:    "16:9",
	})
	if err != nil {
		return nil, llm.ClassifyGeminiError(err)
	}
	if len(resp.GeneratedImages) == 0 || resp.GeneratedImages[0].Image == nil || len(resp.GeneratedImages[0].Image.ImageBytes) == 0 {
		return nil, &llm.Error{Kind: llm.KindInvalidResponse, Err: errors.New("no image was generated")}
	}
	return resp.GeneratedImages[0].Image.ImageBytes, nil
}

// ModelID returns the image model name.
func (g *GeminiImager) ModelID() string { return g.model }

// FakeImager returns fixed bytes or scripted errors, in order.
type FakeImager struct {
	Errors  []error
	Image   []byte
	Calls   int
	Prompts []string
}

func (f *FakeImager) GenerateImage(ctx context.Context, prompt string) ([]byte, error) {
	f.Calls++
	f.Prompts = append(f.Prompts, prompt)
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if len(f.Errors) > 0 {
		err := f.Errors[0]
		f.Errors = f.Errors[1:]
		return nil, err
	}
	if f.Image == nil {
		return nil, fmt.Errorf("fake imager: no image configured")
	}
	return f.Image, nil
}
