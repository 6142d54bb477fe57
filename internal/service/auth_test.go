package service

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/deppfellow/carcatalog/internal/model"
)

func newAuth(t *testing.T) (*AuthService, *fakeUsers, *fakeMailer) {
	t.Helper()
	users := newFakeUsers()
	mailer := &fakeMailer{}
	return NewAuthService(users, mailer, testAuthConfig(), &testLogger), users, mailer
}

func TestRegister(t *testing.T) {
	auth, users, mailer := newAuth(t)

	resp, err := auth.Register(context.Background(), &model.RegisterPayload{
		Username: "jane",
		Email:    "Jane@Example.com",
		Password: "correct-horse",
	})
	require.NoError(t, err)

	assert.Equal(t, "jane@example.com", resp.User.Email)
	assert.Equal(t, model.RoleUser, resp.User.Role)
	assert.NotEmpty(t, resp.Token)

	stored, err := users.GetByID(context.Background(), resp.User.ID)
	require.NoError(t, err)
	assert.NotEqual(t, "correct-horse", stored.PasswordHash)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(stored.PasswordHash), []byte("correct-horse")))

	assert.Equal(t, "jane@example.com", mailer.to)
	assert.Equal(t, "jane", mailer.username)
}

func TestRegister_Duplicate(t *testing.T) {
	auth, _, _ := newAuth(t)
	ctx := context.Background()

	_, err := auth.Register(ctx, &model.RegisterPayload{Username: "jane", Email: "jane@example.com", Password: "correct-horse"})
	require.NoError(t, err)

	_, err = auth.Register(ctx, &model.RegisterPayload{Username: "other", Email: "JANE@example.com", Password: "correct-horse"})
	requireStatus(t, err, http.StatusConflict)

	_, err = auth.Register(ctx, &model.RegisterPayload{Username: "Jane", Email: "new@example.com", Password: "correct-horse"})
	requireStatus(t, err, http.StatusConflict)
}

func TestRegister_MailerFailureDoesNotFail(t *testing.T) {
	auth, _, mailer := newAuth(t)
	mailer.err = errors.New("redis down")

	_, err := auth.Register(context.Background(), &model.RegisterPayload{Username: "jane", Email: "jane@example.com", Password: "correct-horse"})
	assert.NoError(t, err)
}

func TestLogin(t *testing.T) {
	auth, _, _ := newAuth(t)
	ctx := context.Background()

	reg, err := auth.Register(ctx, &model.RegisterPayload{Username: "jane", Email: "jane@example.com", Password: "correct-horse"})
	require.NoError(t, err)

	resp, err := auth.Login(ctx, &model.LoginPayload{Email: "JANE@example.com", Password: "correct-horse"})
	require.NoError(t, err)
	assert.Equal(t, reg.User.ID, resp.User.ID)

	_, err = auth.Login(ctx, &model.LoginPayload{Email: "jane@example.com", Password: "wrong-password"})
	httpErr := requireStatus(t, err, http.StatusUnauthorized)
	assert.Equal(t, "Invalid email or password", httpErr.Message)

	_, err = auth.Login(ctx, &model.LoginPayload{Email: "nobody@example.com", Password: "correct-horse"})
	httpErr = requireStatus(t, err, http.StatusUnauthorized)
	assert.Equal(t, "Invalid email or password", httpErr.Message)
}

func TestIssueAndParseToken(t *testing.T) {
	auth, _, _ := newAuth(t)
	now := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	auth.now = func() time.Time { return now }

	user := &model.User{Base: model.Base{ID: uuid.New()}, Role: model.RoleAdmin}
	raw, expiresAt, err := auth.IssueToken(user)
	require.NoError(t, err)
	assert.Equal(t, now.Add(time.Hour), expiresAt)

	claims, err := auth.ParseToken(raw)
	require.NoError(t, err)
	assert.Equal(t, user.ID.String(), claims.Subject)
	assert.Equal(t, model.RoleAdmin, claims.Role)
	assert.Equal(t, "carcatalog-test", claims.Issuer)

	id, err := claims.UserID()
	require.NoError(t, err)
	assert.Equal(t, user.ID, id)
}

func TestParseToken_Rejects(t *testing.T) {
	auth, _, _ := newAuth(t)
	user := &model.User{Base: model.Base{ID: uuid.New()}, Role: model.RoleUser}

	raw, _, err := auth.IssueToken(user)
	require.NoError(t, err)

	t.Run("expired", func(t *testing.T) {
		later := *auth
		later.now = func() time.Time { return time.Now().Add(2 * time.Hour) }
		_, err := later.ParseToken(raw)
		assert.True(t, errors.Is(err, ErrInvalidToken))
	})

	t.Run("wrong secret", func(t *testing.T) {
		other := *auth
		other.cfg.SecretKey = "another-secret-key-that-is-32-bytes-long"
		_, err := other.ParseToken(raw)
		assert.True(t, errors.Is(err, ErrInvalidToken))
	})

	t.Run("wrong issuer", func(t *testing.T) {
		other := *auth
		other.cfg.Issuer = "someone-else"
		_, err := other.ParseToken(raw)
		assert.True(t, errors.Is(err, ErrInvalidToken))
	})

	t.Run("garbage", func(t *testing.T) {
		_, err := auth.ParseToken("not.a.token")
		assert.True(t, errors.Is(err, ErrInvalidToken))
	})
}
