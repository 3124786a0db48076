// Package feedback records thumbs-up/down ratings teachers and parents give
// to generated reports.
package feedback

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/abhisek/alfanumrik/internal/logger"
	"github.com/abhisek/alfanumrik/internal/store"
)

// ErrInvalidFeedback is returned for a record that fails validation.
var ErrInvalidFeedback = errors.New("invalid feedback")

type Role string

const (
	RoleTeacher Role = "teacher"
	RoleParent  Role = "parent"
)

type Rating string

const (
	RatingUp   Rating = "up"
	RatingDown Rating = "down"
)

// Record is one rating. Records are never edited once submitted.
type Record struct {
	ID        string    `json:"id"`
	Role      Role      `json:"userRole" validate:"required,oneof=teacher parent"`
	StudentID int64     `json:"studentId" validate:"required"`
	ContentID string    `json:"contentIdentifier" validate:"required,max=200"`
	Rating    Rating    `json:"rating" validate:"required,oneof=up down"`
	Comment   string    `json:"comment,omitempty" validate:"max=2000"`
	Timestamp time.Time `json:"timestamp"`
}

// Service stores feedback in the feedback partition.
type Service struct {
	records  store.CollectionRepo
	validate *validator.Validate
	now      func() time.Time
	log      *logger.Logger
}

// NewService creates a feedback service.
func NewService(records store.CollectionRepo, log *logger.Logger) *Service {
	return &Service{
		records:  records,
		validate: validator.New(validator.WithRequiredStructEnabled()),
		now:      time.Now,
		log:      log,
	}
}

// Submit validates and appends a rating.
func (s *Service) Submit(ctx context.Context, rec Record) (*Record, error) {
	rec.ContentID = strings.TrimSpace(rec.ContentID)
	rec.Comment = strings.TrimSpace(rec.Comment)
	if err := s.validate.Struct(rec); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			return nil, fmt.Errorf("%w: %s failed %q", ErrInvalidFeedback, verrs[0].Field(), verrs[0].Tag())
		}
		return nil, fmt.Errorf("%w: %w", ErrInvalidFeedback, err)
	}
	rec.ID = ""
	if rec.Timestamp.IsZero() {
		rec.Timestamp = s.now()
	}

	value, err := json.Marshal(rec)
	if err != nil {
		return nil, fmt.Errorf("encode feedback: %w", err)
	}
	id, err := s.records.Append(ctx, store.PartitionFeedback, store.CollectionRecord{
		OwnerID:   rec.StudentID,
		Value:     value,
		CreatedAt: rec.Timestamp,
	})
	if err != nil {
		return nil, fmt.Errorf("store feedback: %w", err)
	}
	rec.ID = id
	s.log.Info("feedback submitted", "content", rec.ContentID, "role", rec.Role, "rating", rec.Rating)
	return &rec, nil
}

// ForContent returns the ratings given to one piece of content, oldest first.
func (s *Service) ForContent(ctx context.Context, contentID string) ([]Record, error) {
	contentID = strings.TrimSpace(contentID)
	return s.query(ctx, store.Filter{}, func(r Record) bool { return r.ContentID == contentID })
}

// ForStudent returns every rating about one student, oldest first.
func (s *Service) ForStudent(ctx context.Context, studentID int64) ([]Record, error) {
	return s.query(ctx, store.Filter{OwnerID: studentID}, nil)
}

// Tally counts up and down ratings.
func Tally(records []Record) (up, down int) {
	for _, r := range records {
		switch r.Rating {
		case RatingUp:
			up++
		case RatingDown:
			down++
		}
	}
	return up, down
}

func (s *Service) query(ctx context.Context, f store.Filter, keep func(Record) bool) ([]Record, error) {
	rows, err := s.records.Query(ctx, store.PartitionFeedback, f, nil)
	if err != nil {
		return nil, fmt.Errorf("query feedback: %w", err)
	}
	var out []Record
	for _, row := range rows {
		var r Record
		if err := json.Unmarshal(row.Value, &r); err != nil {
			s.log.Warn("skip undecodable feedback", "id", row.ID, "error", err)
			continue
		}
		r.ID = row.ID
		if keep == nil || keep(r) {
			out = append(out, r)
		}
	}
	slices.SortStableFunc(out, func(a, b Record) int { return a.Timestamp.Compare(b.Timestamp) })
	return out, nil
}
