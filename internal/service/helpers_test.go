package service

import (
	"context"
	"log/slog"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/favouritebooks/favouritebooks-server/internal/auth"
	"github.com/favouritebooks/favouritebooks-server/internal/domain"
	"github.com/favouritebooks/favouritebooks-server/internal/mailer"
	"github.com/favouritebooks/favouritebooks-server/internal/search"
	"github.com/favouritebooks/favouritebooks-server/internal/store"
	"github.com/favouritebooks/favouritebooks-server/internal/store/sqlite"
)

const testKeyHex = "000102030405060708090a0b0c0d0e0f000102030405060708090a0b0c0d0e0f"

var testLogger = slog.New(slog.DiscardHandler)

// capturingMailer records sent messages for assertions.
type capturingMailer struct {
	mu       sync.Mutex
	messages []mailer.Message
	fail     error
}

func (m *capturingMailer) Send(_ context.Context, msg mailer.Message) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.fail != nil {
		return m.fail
	}
	m.messages = append(m.messages, msg)
	return nil
}

func (m *capturingMailer) sent() []mailer.Message {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]mailer.Message(nil), m.messages...)
}

func newTestStore(t *testing.T) store.Store {
	t.Helper()

	s, err := sqlite.Open(filepath.Join(t.TempDir(), "test.db"), testLogger)
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func newTestIndex(t *testing.T) *search.Index {
	t.Helper()

	idx, err := search.Open(filepath.Join(t.TempDir(), "search.bleve"), testLogger)
	require.NoError(t, err)
	t.Cleanup(func() { idx.Close() })
	return idx
}

func newTestTokens(t *testing.T) *auth.TokenService {
	t.Helper()

	tokens, err := auth.NewTokenService(testKeyHex, time.Hour)
	require.NoError(t, err)
	return tokens
}

func newTestAuthService(t *testing.T, st store.Store, m mailer.Mailer) *AuthService {
	t.Helper()

	if m == nil {
		m = &capturingMailer{}
	}
	return NewAuthService(st, newTestTokens(t), m, "http://localhost:8080", 24*time.Hour, testLogger)
}

// registerTestUser creates an account through the auth service and returns
// the stored user.
func registerTestUser(t *testing.T, svc *AuthService, username string) *domain.User {
	t.Helper()

	user, _, err := svc.Register(context.Background(), RegisterRequest{
		Username: username,
		Email:    username + "@example.com",
		Password: "password123",
	})
	require.NoError(t, err)
	return user
}

// promoteToStaff flips the staff bit directly in the store.
func promoteToStaff(t *testing.T, st store.Store, user *domain.User) {
	t.Helper()

	user.IsStaff = true
	user.Touch()
	require.NoError(t, st.UpdateUser(context.Background(), user))
}
