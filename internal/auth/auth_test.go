package auth

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/abhisek/alfanumrik/internal/logger"
	"github.com/abhisek/alfanumrik/internal/progress"
	"github.com/abhisek/alfanumrik/internal/store"
)

type fixture struct {
	store    *store.Store
	tracker  *progress.Tracker
	sessions *MemorySessionStore
	svc      *Service
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	s, err := store.Open(fmt.Sprintf("file:%s?mode=memory&cache=shared", name))
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })

	tr := progress.NewTracker(s, logger.Nop())
	sessions := &MemorySessionStore{}
	return &fixture{
		store:    s,
		tracker:  tr,
		sessions: sessions,
		svc:      NewService(s.Users(), tr, sessions, logger.Nop(), WithBcryptCost(bcrypt.MinCost)),
	}
}

func asha() SignupInput {
	return SignupInput{Name: "Asha Rao", Email: "Asha@Example.com", Password: "secret123", Grade: "Grade 10"}
}

func TestSignup(t *testing.T) {
	f := newFixture(t)
	assert.Equal(t, StateAnonymous, f.svc.State())

	p, err := f.svc.Signup(context.Background(), asha())
	require.NoError(t, err)
	assert.Equal(t, "asha@example.com", p.Email)
	assert.Equal(t, "https://i.pravatar.cc/150?u=Asha%40Example.com", p.AvatarURL)
	assert.Empty(t, p.Performance)

	assert.Equal(t, StateAuthenticated, f.svc.State())
	assert.Same(t, p, f.svc.Current())
	id, ok, _ := f.sessions.Load()
	assert.True(t, ok)
	assert.Equal(t, p.ID, id)

	u, err := f.store.Users().UserByID(context.Background(), p.ID)
	require.NoError(t, err)
	assert.NotEqual(t, "secret123", u.PasswordHash, "password is stored hashed")
}

func TestSignup_DuplicateEmailCaseInsensitive(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	first, err := f.svc.Signup(ctx, asha())
	require.NoError(t, err)

	dup := asha()
	dup.Name = "Someone Else"
	dup.Email = "  ASHA@example.COM "
	_, err = f.svc.Signup(ctx, dup)
	assert.ErrorIs(t, err, ErrAccountExists)

	u, err := f.store.Users().UserByEmail(ctx, "asha@example.com")
	require.NoError(t, err)
	assert.Equal(t, first.ID, u.ID)
	assert.Equal(t, "Asha Rao", u.Name)

	n, err := f.store.Client().User.Query().Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, n)
}

func TestSignup_Validation(t *testing.T) {
	f := newFixture(t)
	for name, mutate := range map[string]func(*SignupInput){
		"bad email":      func(in *SignupInput) { in.Email = "not-an-email" },
		"short password": func(in *SignupInput) { in.Password = "abc" },
		"blank name":     func(in *SignupInput) { in.Name = "   " },
		"no grade":       func(in *SignupInput) { in.Grade = "" },
		// 40 runes but 80 bytes.
		"long multibyte password": func(in *SignupInput) { in.Password = strings.Repeat("é", 40) },
	} {
		t.Run(name, func(t *testing.T) {
			in := asha()
			mutate(&in)
			_, err := f.svc.Signup(context.Background(), in)
			assert.ErrorIs(t, err, ErrInvalidInput)
		})
	}
	assert.Equal(t, StateAnonymous, f.svc.State())
}

func TestSignup_PasswordAtByteLimit(t *testing.T) {
	in := asha()
	in.Password = strings.Repeat("é", 36) // 72 bytes
	p, err := newFixture(t).svc.Signup(context.Background(), in)
	require.NoError(t, err)
	assert.NotZero(t, p.ID)
}

func TestLogin_UnknownEmailStillComparesHash(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	_, err := f.svc.Signup(ctx, asha())
	require.NoError(t, err)

	var hashes [][]byte
	f.svc.compare = func(hash, password []byte) error {
		hashes = append(hashes, hash)
		return bcrypt.CompareHashAndPassword(hash, password)
	}

	_, err = f.svc.Login(ctx, "ravi@example.com", "secret123")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
	require.Len(t, hashes, 1)
	cost, err := bcrypt.Cost(hashes[0])
	require.NoError(t, err)
	assert.Equal(t, bcrypt.MinCost, cost)

	_, err = f.svc.Login(ctx, "asha@example.com", "wrong")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
	assert.Len(t, hashes, 2)
}

func TestLogin(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	p, err := f.svc.Signup(ctx, asha())
	require.NoError(t, err)
	_, err = f.tracker.RecordOutcome(ctx, p.ID, progress.Record{Subject: "Physics", Chapter: "Electricity", Score: 68})
	require.NoError(t, err)
	require.NoError(t, f.svc.Logout())

	tests := []struct {
		name, email, password string
		wantErr               error
	}{
		{"wrong password", "asha@example.com", "nope", ErrInvalidCredentials},
		{"unknown email", "ravi@example.com", "secret123", ErrInvalidCredentials},
		{"empty", "", "", ErrInvalidCredentials},
		{"mixed case email", "ASHA@EXAMPLE.COM", "secret123", nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := f.svc.Login(ctx, tt.email, tt.password)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, got)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, p.ID, got.ID)
			require.Len(t, got.Performance, 1)
			assert.Equal(t, "Electricity", got.Performance[0].Chapter)
		})
	}
}

func TestRestoreAndLogout(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	none, err := f.svc.Restore(ctx)
	require.NoError(t, err)
	assert.Nil(t, none)

	p, err := f.svc.Signup(ctx, asha())
	require.NoError(t, err)

	// A new process sharing the saved session.
	again := NewService(f.store.Users(), f.tracker, f.sessions, logger.Nop())
	restored, err := again.Restore(ctx)
	require.NoError(t, err)
	require.NotNil(t, restored)
	assert.Equal(t, p.ID, restored.ID)
	assert.Equal(t, StateAuthenticated, again.State())

	require.NoError(t, again.Logout())
	assert.Equal(t, StateAnonymous, again.State())
	_, err = again.RequireCurrent()
	assert.ErrorIs(t, err, ErrNotAuthenticated)
	_, ok, _ := f.sessions.Load()
	assert.False(t, ok)
}

func TestRestore_MissingUserClearsSession(t *testing.T) {
	f := newFixture(t)
	require.NoError(t, f.sessions.Save(4242))

	p, err := f.svc.Restore(context.Background())
	require.NoError(t, err)
	assert.Nil(t, p)
	_, ok, _ := f.sessions.Load()
	assert.False(t, ok)
}

func TestFileSessionStore(t *testing.T) {
	fs := NewFileSessionStore(filepath.Join(t.TempDir(), "state", "session"))

	_, ok, err := fs.Load()
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, fs.Save(17))
	id, ok, err := fs.Load()
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, int64(17), id)

	require.NoError(t, fs.Clear())
	require.NoError(t, fs.Clear(), "clearing twice is fine")
	_, ok, err = fs.Load()
	require.NoError(t, err)
	assert.False(t, ok)
}
