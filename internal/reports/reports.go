// Package reports writes narrative progress reports about a student for
// their teacher or their parents.
package reports

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/abhisek/alfanumrik/internal/llm"
	"github.com/abhisek/alfanumrik/internal/logger"
	"github.com/abhisek/alfanumrik/internal/progress"
	"github.com/abhisek/alfanumrik/internal/store"
)

var (
	ErrUnknownRole      = errors.New("unknown report role")
	ErrNoPerformance    = errors.New("student has no performance records")
	ErrGenerationFailed = errors.New("report generation failed")
)

// Role is the reader a report is written for.
type Role string

const (
	RoleTeacher Role = "teacher"
	RoleParent  Role = "parent"
)

// ParseRole accepts "teacher" or "parent" in any case.
func ParseRole(s string) (Role, error) {
	switch r := Role(strings.ToLower(strings.TrimSpace(s))); r {
	case RoleTeacher, RoleParent:
		return r, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownRole, s)
}

// Student is the subject of a report.
type Student struct {
	ID          int64
	Name        string
	Grade       string
	Performance []progress.Record
}

// Report is a generated report. Text is plain text with **Heading:** lines
// and hyphen bullets.
type Report struct {
	ContentID string
	Text      string
	WasCached bool
}

// ContentID identifies a report for storage and feedback.
func ContentID(role Role, studentID int64, language string) string {
	return fmt.Sprintf("report-%s-%d-%s", role, studentID, language)
}

// Config holds generation settings.
type Config struct {
	MaxTokens   int
	Temperature float64
}

func DefaultConfig() Config {
	return Config{MaxTokens: 4096, Temperature: 0.7}
}

// Service generates reports and keeps the latest one per role, student and
// language.
type Service struct {
	docs     store.DocumentRepo
	provider llm.Provider
	cfg      Config
	log      *logger.Logger
}

// NewService creates a report service.
func NewService(docs store.DocumentRepo, provider llm.Provider, cfg Config, log *logger.Logger) *Service {
	return &Service{docs: docs, provider: provider, cfg: cfg, log: log}
}

// Report returns the stored report unless refresh is set or none exists, in
// which case a new one is generated and stored. Generation failures are
// returned as ErrGenerationFailed.
func (s *Service) Report(ctx context.Context, role Role, st Student, language string, refresh bool) (*Report, error) {
	if role != RoleTeacher && role != RoleParent {
		return nil, fmt.Errorf("%w: %q", ErrUnknownRole, role)
	}
	id := ContentID(role, st.ID, language)

	if !refresh {
		text, err := store.GetJSON[string](ctx, s.docs, store.PartitionReports, id)
		switch {
		case err != nil:
			s.log.Warn("report read failed", "key", id, "error", err)
		case text != nil:
			return &Report{ContentID: id, Text: *text, WasCached: true}, nil
		}
	}

	if len(st.Performance) == 0 {
		return nil, ErrNoPerformance
	}

	data, err := json.MarshalIndent(st.Performance, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encode performance: %w", err)
	}
	var prompt string
	if role == RoleTeacher {
		prompt = teacherPrompt(st, language, string(data))
	} else {
		prompt = parentPrompt(st, language, string(data))
	}

	ctx = llm.WithPurpose(ctx, llm.PurposeReport)
	req := llm.UserPrompt("", prompt, nil, s.cfg.MaxTokens)
	req.Temperature = s.cfg.Temperature
	text, _, err := llm.GenerateInto[string](ctx, s.provider, req)
	if err != nil {
		return nil, fmt.Errorf("%w: %s report: %w", ErrGenerationFailed, role, err)
	}
	out := strings.TrimSpace(*text)
	if out == "" {
		return nil, fmt.Errorf("%w: %s report is empty", ErrGenerationFailed, role)
	}

	if err := store.PutJSON(ctx, s.docs, store.PartitionReports, id, out); err != nil {
		s.log.Warn("report write failed", "key", id, "error", err)
	}
	s.log.Info("report generated", "key", id, "chars", len(out))
	return &Report{ContentID: id, Text: out}, nil
}

// Section is one headed block of a report.
type Section struct {
	Heading string
	Lines   []string
}

// Sections splits report text on **Heading:** lines. Text before the first
// heading goes into a section with an empty heading.
func Sections(text string) []Section {
	var out []Section
	for line := range strings.Lines(text) {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if h, ok := heading(line); ok {
			out = append(out, Section{Heading: h})
			continue
		}
		if len(out) == 0 {
			out = append(out, Section{})
		}
		last := &out[len(out)-1]
		last.Lines = append(last.Lines, line)
	}
	return out
}

func heading(line string) (string, bool) {
	if !strings.HasPrefix(line, "**") || !strings.HasSuffix(line, ":**") {
		return "", false
	}
	h := strings.TrimSuffix(strings.TrimPrefix(line, "**"), ":**")
	if h == "" || strings.Contains(h, "**") {
		return "", false
	}
	return h, true
}
