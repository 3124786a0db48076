// Package auth signs students up and in against the store and keeps the
// current session.
package auth

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/abhisek/alfanumrik/internal/logger"
	"github.com/abhisek/alfanumrik/internal/progress"
	"github.com/abhisek/alfanumrik/internal/store"
)

var (
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrAccountExists      = errors.New("an account with this email already exists")
	ErrNotAuthenticated   = errors.New("not signed in")
	ErrInvalidInput       = errors.New("invalid input")
)

// State is the session state.
type State int

const (
	StateAnonymous State = iota
	StateAuthenticated
)

func (s State) String() string {
	if s == StateAuthenticated {
		return "authenticated"
	}
	return "anonymous"
}

// Profile is a signed-in student with their performance history.
type Profile struct {
	ID          int64
	Name        string
	Email       string
	Grade       string
	AvatarURL   string
	Performance []progress.Record
}

// SignupInput is the signup form.
type SignupInput struct {
	Name     string `validate:"required,max=100"`
	Email    string `validate:"required,email,max=254"`
	Password string `validate:"required,min=6,bcryptlen"`
	Grade    string `validate:"required,max=40"`
}

// RecordSource loads a student's performance records.
type RecordSource interface {
	Records(ctx context.Context, studentID int64) ([]progress.Record, error)
}

// Service owns the session state. It is safe for concurrent use.
type Service struct {
	users    store.UserRepo
	records  RecordSource
	sessions SessionStore
	validate *validator.Validate
	cost     int
	log      *logger.Logger

	// compare checks a password against a hash. Login runs it against
	// dummyHash for unknown emails so both paths cost one bcrypt compare.
	compare   func(hash, password []byte) error
	dummyOnce sync.Once
	dummyHash []byte

	mu      sync.RWMutex
	current *Profile
}

// Option configures a Service.
type Option func(*Service)

// WithBcryptCost sets the hashing cost. Tests use bcrypt.MinCost.
func WithBcryptCost(cost int) Option {
	return func(s *Service) { s.cost = cost }
}

// NewService creates an auth service.
func NewService(users store.UserRepo, records RecordSource, sessions SessionStore, log *logger.Logger, opts ...Option) *Service {
	s := &Service{
		users:    users,
		records:  records,
		sessions: sessions,
		validate: validator.New(),
		cost:     bcrypt.DefaultCost,
		log:      log,
		compare:  bcrypt.CompareHashAndPassword,
	}
	// bcrypt ignores bytes past 72; max counts runes, so check bytes here.
	_ = s.validate.RegisterValidation("bcryptlen", func(fl validator.FieldLevel) bool {
		return len(fl.Field().String()) <= maxPasswordBytes
	})
	for _, o := range opts {
		o(s)
	}
	return s
}

const maxPasswordBytes = 72

// dummy returns a hash of a random password at the service's cost.
func (s *Service) dummy() []byte {
	s.dummyOnce.Do(func() {
		h, err := bcrypt.GenerateFromPassword([]byte(uuid.NewString()), s.cost)
		if err != nil {
			s.log.Warn("could not prepare dummy hash", "error", err)
		}
		s.dummyHash = h
	})
	return s.dummyHash
}

// AvatarURL derives a stable placeholder avatar from an email.
func AvatarURL(email string) string {
	return "https://i.pravatar.cc/150?u=" + url.QueryEscape(strings.TrimSpace(email))
}

// Signup creates an account and signs it in.
func (s *Service) Signup(ctx context.Context, in SignupInput) (*Profile, error) {
	in.Name = strings.TrimSpace(in.Name)
	in.Email = strings.TrimSpace(in.Email)
	in.Grade = strings.TrimSpace(in.Grade)
	if err := s.validate.Struct(in); err != nil {
		return nil, inputError(err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), s.cost)
	if errors.Is(err, bcrypt.ErrPasswordTooLong) {
		return nil, fmt.Errorf("%w: password is longer than %d bytes", ErrInvalidInput, maxPasswordBytes)
	}
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}
	u, err := s.users.CreateUser(ctx, store.NewUser{
		Name:         in.Name,
		Email:        in.Email,
		PasswordHash: string(hash),
		Grade:        in.Grade,
		AvatarURL:    AvatarURL(in.Email),
	})
	if errors.Is(err, store.ErrDuplicate) {
		return nil, ErrAccountExists
	}
	if err != nil {
		return nil, fmt.Errorf("signup: %w", err)
	}

	s.log.Info("account created", "user", u.ID, "grade", u.Grade)
	return s.start(ctx, u)
}

// Login checks credentials and signs the user in.
func (s *Service) Login(ctx context.Context, email, password string) (*Profile, error) {
	if strings.TrimSpace(email) == "" || password == "" {
		return nil, ErrInvalidCredentials
	}
	u, err := s.users.UserByEmail(ctx, email)
	if errors.Is(err, store.ErrNotFound) {
		_ = s.compare(s.dummy(), []byte(password))
		return nil, ErrInvalidCredentials
	}
	if err != nil {
		return nil, fmt.Errorf("login: %w", err)
	}
	if s.compare([]byte(u.PasswordHash), []byte(password)) != nil {
		s.log.Debug("password mismatch", "user", u.ID)
		return nil, ErrInvalidCredentials
	}
	return s.start(ctx, u)
}

// Restore signs in the user saved in the session store. It returns nil
// when there is no saved session or the saved user no longer exists.
func (s *Service) Restore(ctx context.Context) (*Profile, error) {
	id, ok, err := s.sessions.Load()
	if err != nil {
		return nil, fmt.Errorf("restore session: %w", err)
	}
	if !ok {
		return nil, nil
	}
	u, err := s.users.UserByID(ctx, id)
	if errors.Is(err, store.ErrNotFound) {
		s.log.Warn("saved session refers to a missing user", "user", id)
		return nil, s.sessions.Clear()
	}
	if err != nil {
		return nil, fmt.Errorf("restore session: %w", err)
	}
	return s.start(ctx, u)
}

// Logout clears the session.
func (s *Service) Logout() error {
	s.mu.Lock()
	s.current = nil
	s.mu.Unlock()
	return s.sessions.Clear()
}

// Current returns the signed-in profile, or nil.
func (s *Service) Current() *Profile {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current
}

// RequireCurrent returns the signed-in profile or ErrNotAuthenticated.
func (s *Service) RequireCurrent() (*Profile, error) {
	if p := s.Current(); p != nil {
		return p, nil
	}
	return nil, ErrNotAuthenticated
}

func (s *Service) State() State {
	if s.Current() != nil {
		return StateAuthenticated
	}
	return StateAnonymous
}

// start loads the user's records, makes them current and saves the session.
func (s *Service) start(ctx context.Context, u *store.User) (*Profile, error) {
	records, err := s.records.Records(ctx, u.ID)
	if err != nil {
		return nil, fmt.Errorf("load performance: %w", err)
	}
	p := &Profile{
		ID:          u.ID,
		Name:        u.Name,
		Email:       u.Email,
		Grade:       u.Grade,
		AvatarURL:   u.AvatarURL,
		Performance: records,
	}
	if err := s.sessions.Save(u.ID); err != nil {
		return nil, err
	}

	s.mu.Lock()
	s.current = p
	s.mu.Unlock()
	return p, nil
}

func inputError(err error) error {
	var ve validator.ValidationErrors
	if !errors.As(err, &ve) {
		return fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}
	msgs := make([]string, 0, len(ve))
	for _, fe := range ve {
		msgs = append(msgs, fmt.Sprintf("%s failed %q", strings.ToLower(fe.Field()), fe.Tag()))
	}
	return fmt.Errorf("%w: %s", ErrInvalidInput, strings.Join(msgs, ", "))
}
