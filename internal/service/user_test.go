package service

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/deppfellow/carcatalog/internal/model"
)

func ptr[T any](v T) *T { return &v }

func TestUserService_Permissions(t *testing.T) {
	auth, users, _ := newAuth(t)
	svc := NewUserService(users, auth, nil)
	ctx := context.Background()

	jane, err := auth.Register(ctx, &model.RegisterPayload{Username: "jane", Email: "jane@example.com", Password: "correct-horse"})
	require.NoError(t, err)
	bob, err := auth.Register(ctx, &model.RegisterPayload{Username: "bob", Email: "bob@example.com", Password: "correct-horse"})
	require.NoError(t, err)

	janeActor := Actor{ID: jane.User.ID, Role: model.RoleUser}
	admin := Actor{ID: bob.User.ID, Role: model.RoleAdmin}

	_, err = svc.Get(ctx, janeActor, bob.User.ID)
	requireStatus(t, err, http.StatusForbidden)

	got, err := svc.Get(ctx, admin, jane.User.ID)
	require.NoError(t, err)
	assert.Equal(t, "jane", got.Username)

	_, err = svc.List(ctx, janeActor, &model.ListUsersQuery{})
	requireStatus(t, err, http.StatusForbidden)

	list, err := svc.List(ctx, admin, &model.ListUsersQuery{})
	require.NoError(t, err)
	assert.Equal(t, 2, list.Total)

	_, err = svc.Update(ctx, janeActor, &model.UpdateUserPayload{ID: jane.User.ID.String(), Role: ptr(model.RoleAdmin)})
	requireStatus(t, err, http.StatusForbidden)

	promoted, err := svc.Update(ctx, admin, &model.UpdateUserPayload{ID: jane.User.ID.String(), Role: ptr(model.RoleAdmin)})
	require.NoError(t, err)
	assert.Equal(t, model.RoleAdmin, promoted.Role)

	err = svc.Delete(ctx, janeActor, bob.User.ID)
	requireStatus(t, err, http.StatusForbidden)

	janeAdmin := Actor{ID: jane.User.ID, Role: promoted.Role}
	assert.NoError(t, svc.Delete(ctx, janeAdmin, bob.User.ID))
}

func TestUserService_PasswordChangeRehashes(t *testing.T) {
	auth, users, _ := newAuth(t)
	svc := NewUserService(users, auth, nil)
	ctx := context.Background()

	jane, err := auth.Register(ctx, &model.RegisterPayload{Username: "jane", Email: "jane@example.com", Password: "correct-horse"})
	require.NoError(t, err)
	actor := Actor{ID: jane.User.ID, Role: model.RoleUser}

	_, err = svc.Update(ctx, actor, &model.UpdateUserPayload{
		ID:       jane.User.ID.String(),
		Password: ptr("battery-staple"),
		Email:    ptr(" Jane.Doe@Example.com "),
	})
	require.NoError(t, err)

	stored, err := users.GetByID(ctx, jane.User.ID)
	require.NoError(t, err)
	assert.Equal(t, "jane.doe@example.com", stored.Email)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(stored.PasswordHash), []byte("battery-staple")))

	_, err = auth.Login(ctx, &model.LoginPayload{Email: "jane.doe@example.com", Password: "battery-staple"})
	assert.NoError(t, err)
}

func TestUserService_UpdateRejectsTakenIdentity(t *testing.T) {
	auth, users, _ := newAuth(t)
	svc := NewUserService(users, auth, nil)
	ctx := context.Background()

	_, err := auth.Register(ctx, &model.RegisterPayload{Username: "jane", Email: "jane@example.com", Password: "correct-horse"})
	require.NoError(t, err)
	bob, err := auth.Register(ctx, &model.RegisterPayload{Username: "bob", Email: "bob@example.com", Password: "correct-horse"})
	require.NoError(t, err)
	actor := Actor{ID: bob.User.ID, Role: model.RoleUser}

	_, err = svc.Update(ctx, actor, &model.UpdateUserPayload{ID: bob.User.ID.String(), Username: ptr("Jane")})
	httpErr := requireStatus(t, err, http.StatusConflict)
	assert.Equal(t, "USER_ALREADY_EXISTS", httpErr.Code)

	_, err = svc.Update(ctx, actor, &model.UpdateUserPayload{ID: bob.User.ID.String(), Email: ptr("JANE@example.com")})
	requireStatus(t, err, http.StatusConflict)

	renamed, err := svc.Update(ctx, actor, &model.UpdateUserPayload{ID: bob.User.ID.String(), Username: ptr("Bob"), Email: ptr("BOB@example.com")})
	require.NoError(t, err, "changing the case of its own identity is fine")
	assert.Equal(t, "Bob", renamed.Username)

	_, err = auth.Register(ctx, &model.RegisterPayload{Username: "JANE", Email: "other@example.com", Password: "correct-horse"})
	requireStatus(t, err, http.StatusConflict)
}

func TestUserService_DeleteDropsCachedCars(t *testing.T) {
	auth, users, _ := newAuth(t)
	store := newMemoryStore()
	cache := NewCache(store, time.Minute, true, &testLogger)
	svc := NewUserService(users, auth, cache)
	ctx := context.Background()

	jane, err := auth.Register(ctx, &model.RegisterPayload{Username: "jane", Email: "jane@example.com", Password: "correct-horse"})
	require.NoError(t, err)

	carID := uuid.New()
	cache.Set(ctx, carKey(carID), model.Car{Model: "Golf"})
	cache.Set(ctx, brandListPrefix+"page=1", model.PaginatedResponse[model.Brand]{})

	require.NoError(t, svc.Delete(ctx, Actor{ID: jane.User.ID, Role: model.RoleUser}, jane.User.ID))

	assert.False(t, store.cached(carKey(carID)))
	assert.True(t, store.cached(brandListPrefix+"page=1"), "brand lists do not carry ratings")
}
