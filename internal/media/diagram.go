package media

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"math/rand/v2"
	"strings"
	"time"

	"github.com/abhisek/alfanumrik/internal/llm"
	"github.com/abhisek/alfanumrik/internal/logger"
	"github.com/abhisek/alfanumrik/internal/store"
)

var (
	// ErrQuotaExceeded means the image quota is exhausted. It is returned on
	// the first occurrence, without retrying.
	ErrQuotaExceeded = errors.New("image generation quota exceeded")

	// ErrImageFailed wraps every other generation failure.
	ErrImageFailed = errors.New("image generation failed")
)

const maxAttempts = 3

// Service generates lesson diagrams and concept maps, storing each image
// under a hash of its description so it is generated once.
type Service struct {
	imager ImageGenerator
	docs   store.DocumentRepo
	log    *logger.Logger
	sleep  func(ctx context.Context, d time.Duration) error
	jitter func() time.Duration
}

// Option configures a Service.
type Option func(*Service)

// WithSleep replaces the backoff wait.
func WithSleep(sleep func(ctx context.Context, d time.Duration) error) Option {
	return func(s *Service) { s.sleep = sleep }
}

// NewService creates a media service.
func NewService(imager ImageGenerator, docs store.DocumentRepo, log *logger.Logger, opts ...Option) *Service {
	s := &Service{
		imager: imager,
		docs:   docs,
		log:    log,
		sleep:  sleepCtx,
		jitter: func() time.Duration { return rand.N(time.Second) },
	}
	for _, o := range opts {
		o(s)
	}
	return s
}

func sleepCtx(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

// DescriptionKey is the storage key for a description.
func DescriptionKey(description string) string {
	sum := sha256.Sum256([]byte(strings.TrimSpace(description)))
	return hex.EncodeToString(sum[:])
}

// Diagram returns a text-free diagram illustrating description, styled
// for subject. Rate limits are retried with exponential backoff; anything
// else fails immediately.
func (s *Service) Diagram(ctx context.Context, description, subject string) ([]byte, error) {
	key := DescriptionKey(description)
	if img, ok := s.cached(ctx, store.PartitionDiagrams, key); ok {
		return img, nil
	}

	prompt := diagramPrompt(description, subject)
	var lastErr error
	for attempt := range maxAttempts {
		img, err := s.imager.GenerateImage(ctx, prompt)
		if err == nil {
			s.put(ctx, store.PartitionDiagrams, key, img)
			return img, nil
		}
		lastErr = err

		if isQuota(err) {
			s.log.Error("image quota exhausted", "error", err)
			return nil, fmt.Errorf("%w: %w", ErrQuotaExceeded, err)
		}
		if !llm.IsKind(err, llm.KindRateLimited) || attempt == maxAttempts-1 {
			break
		}
		wait := time.Duration(1<<attempt)*time.Second + s.jitter()
		s.log.Warn("image rate limited, retrying", "attempt", attempt+1, "wait", wait)
		if err := s.sleep(ctx, wait); err != nil {
			return nil, err
		}
	}
	return nil, fmt.Errorf("%w: %w", ErrImageFailed, lastErr)
}

// ConceptMap returns a labelled concept-map image for description. It is
// attempted once.
func (s *Service) ConceptMap(ctx context.Context, description string) ([]byte, error) {
	key := DescriptionKey(description)
	if img, ok := s.cached(ctx, store.PartitionConceptMaps, key); ok {
		return img, nil
	}
	img, err := s.imager.GenerateImage(ctx, conceptMapPrompt(description))
	if err != nil {
		if isQuota(err) {
			return nil, fmt.Errorf("%w: %w", ErrQuotaExceeded, err)
		}
		return nil, fmt.Errorf("%w: %w", ErrImageFailed, err)
	}
	s.put(ctx, store.PartitionConceptMaps, key, img)
	return img, nil
}

func isQuota(err error) bool {
	return llm.IsKind(err, llm.KindQuota) || strings.Contains(strings.ToLower(err.Error()), "quota")
}

func (s *Service) cached(ctx context.Context, p store.Partition, key string) ([]byte, bool) {
	img, err := s.docs.GetDocument(ctx, p, key)
	if err == nil {
		return img, true
	}
	if !errors.Is(err, store.ErrNotFound) {
		s.log.Warn("image cache read failed", "partition", p, "error", err)
	}
	return nil, false
}

func (s *Service) put(ctx context.Context, p store.Partition, key string, img []byte) {
	if err := s.docs.PutDocument(ctx, p, key, img); err != nil {
		s.log.Warn("image cache write failed", "partition", p, "error", err)
	}
}

// styleCue picks an illustration style that suits the subject.
func styleCue(subject string) string {
	s := strings.ToLower(subject)
	containsAny := func(words ...string) bool {
		for _, w := range words {
			if strings.Contains(s, w) {
				return true
			}
		}
		return false
	}
	switch {
	case containsAny("computer science", "robotics", "ai and machine learning"):
		return "clean, modern, digital illustration style with simple icons, abstract shapes, or flowcharts. Futuristic but easy to understand"
	case containsAny("science", "physics", "chemistry", "biology", "evs"):
		return `clean, "science textbook" illustration style with clear outlines and vibrant colors. Biological parts must be distinct and simple; molecules and bonds must be clear`
	case containsAny("mathematics"):
		return "precise geometric shapes, clean lines, and clearly marked angles or points. Modern math textbook style"
	case containsAny("history", "social studies", "geography", "political science", "economics"):
		return "simple infographic, a stylized map, or a timeline with friendly icons"
	default:
		return "friendly, simple, engaging cartoonish style"
	}
}

func diagramPrompt(description, subject string) string {
	return fmt.Sprintf(`Generate a minimalist, 2D educational diagram for a K-12 student. The diagram should illustrate: %q.
Requirements:
- Text-free: absolutely no words, letters, or numbers.
- Clarity: clean lines, simple shapes, and a plain white background.
- Style: %s.
- Conceptually accurate and easy to understand.
Avoid: complex scenes or backgrounds, 3D rendering, shadows, photorealism, text labels, confusing metaphors.`,
		strings.TrimSpace(description), styleCue(subject))
}

func conceptMapPrompt(description string) string {
	return fmt.Sprintf("Create a visually appealing, K-12 friendly infographic-style concept map based on this description: %q. "+
		"The map should be clean, with clear labels and connecting lines, on a plain white background, like a modern educational illustration. "+
		"Do not include any text that is not part of the described labels.", strings.TrimSpace(description))
}
