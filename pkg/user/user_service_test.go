package user

import (
	"EatBefore/domain"
	"EatBefore/pkg/jwt"
	"EatBefore/pkg/kv"
	"context"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestUserService() (UserService, kv.Store) {
	store := kv.NewMemoryStore()
	service := NewUserService(NewUserRepository(store), jwt.NewJWTService("test-secret", time.Hour), zerolog.Nop())
	return service, store
}

func TestUserService_StartRouteWithoutSession(t *testing.T) {
	service, _ := newTestUserService()

	route, err := service.StartRoute(context.Background())
	require.NoError(t, err)
	assert.Equal(t, domain.RouteLogin, route.Route)
}

func TestUserService_DemoLoginWithoutAccount(t *testing.T) {
	service, store := newTestUserService()
	ctx := context.Background()

	login, err := service.Login(ctx, domain.LoginRequest{Email: "Jane@Example.com ", Password: "anything"})
	require.NoError(t, err)
	assert.Equal(t, domain.RouteMain, login.Route)
	assert.NotEmpty(t, login.Token)

	stored, err := store.Get(ctx, TokenKey)
	require.NoError(t, err)
	assert.Equal(t, login.Token, string(stored))

	email, err := store.Get(ctx, EmailKey)
	require.NoError(t, err)
	assert.Equal(t, "jane@example.com", string(email))

	route, err := service.StartRoute(ctx)
	require.NoError(t, err)
	assert.Equal(t, domain.RouteMain, route.Route)
}

func TestUserService_LoginRequiresBothFields(t *testing.T) {
	service, _ := newTestUserService()

	_, err := service.Login(context.Background(), domain.LoginRequest{Email: "jane@example.com"})
	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)
}

func TestUserService_SignupThenLogin(t *testing.T) {
	service, _ := newTestUserService()
	ctx := context.Background()

	signup, err := service.Signup(ctx, domain.SignupRequest{Name: "Jane Doe", Email: "jane@example.com", Password: "secret1"})
	require.NoError(t, err)
	assert.Equal(t, domain.RouteMain, signup.Route)

	_, err = service.Login(ctx, domain.LoginRequest{Email: "jane@example.com", Password: "wrong"})
	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)

	_, err = service.Login(ctx, domain.LoginRequest{Email: "john@example.com", Password: "secret1"})
	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)

	_, err = service.Login(ctx, domain.LoginRequest{Email: "jane@example.com", Password: "secret1"})
	assert.NoError(t, err)

	_, err = service.Signup(ctx, domain.SignupRequest{Name: "John", Email: "john@example.com", Password: "secret2"})
	assert.ErrorIs(t, err, domain.ErrAccountExists)
}

func TestUserService_SignupCannotReplaceAccount(t *testing.T) {
	service, store := newTestUserService()
	ctx := context.Background()

	_, err := service.Signup(ctx, domain.SignupRequest{Name: "Jane Doe", Email: "jane@example.com", Password: "original-secret"})
	require.NoError(t, err)

	_, err = service.Signup(ctx, domain.SignupRequest{Name: "Mallory", Email: "JANE@example.com", Password: "other-secret"})
	assert.ErrorIs(t, err, domain.ErrAccountExists)

	_, err = service.Login(ctx, domain.LoginRequest{Email: "jane@example.com", Password: "other-secret"})
	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)

	_, err = service.Login(ctx, domain.LoginRequest{Email: "jane@example.com", Password: "original-secret"})
	assert.NoError(t, err)

	name, err := store.Get(ctx, NameKey)
	require.NoError(t, err)
	assert.Equal(t, "Jane Doe", string(name))
}

func TestUserService_Me(t *testing.T) {
	service, _ := newTestUserService()
	ctx := context.Background()

	profile, err := service.Me(ctx)
	require.NoError(t, err)
	assert.Equal(t, "User Name", profile.Name)
	assert.Equal(t, "User", profile.FirstName)
	assert.Equal(t, "U", profile.Initial)

	_, err = service.Signup(ctx, domain.SignupRequest{Name: "Jane Doe", Email: "jane@example.com", Password: "secret1"})
	require.NoError(t, err)

	profile, err = service.Me(ctx)
	require.NoError(t, err)
	assert.Equal(t, domain.ProfileResponse{
		Name:      "Jane Doe",
		FirstName: "Jane",
		Initial:   "J",
		Email:     "jane@example.com",
	}, profile)
}

func TestUserService_SessionLifecycle(t *testing.T) {
	service, _ := newTestUserService()
	ctx := context.Background()

	first, err := service.Login(ctx, domain.LoginRequest{Email: "jane@example.com", Password: "pw"})
	require.NoError(t, err)

	email, err := service.ValidateSession(ctx, first.Token)
	require.NoError(t, err)
	assert.Equal(t, "jane@example.com", email)

	second, err := service.Login(ctx, domain.LoginRequest{Email: "jane@example.com", Password: "pw"})
	require.NoError(t, err)

	_, err = service.ValidateSession(ctx, first.Token)
	assert.ErrorIs(t, err, domain.ErrTokenInvalid, "only the current session token is accepted")

	require.NoError(t, service.Logout(ctx))

	_, err = service.ValidateSession(ctx, second.Token)
	assert.ErrorIs(t, err, domain.ErrTokenInvalid)

	route, err := service.StartRoute(ctx)
	require.NoError(t, err)
	assert.Equal(t, domain.RouteLogin, route.Route)
}

func TestUserService_StartRouteWithForeignToken(t *testing.T) {
	service, store := newTestUserService()
	ctx := context.Background()

	require.NoError(t, store.Set(ctx, TokenKey, []byte("demo-token")))

	route, err := service.StartRoute(ctx)
	require.NoError(t, err)
	assert.Equal(t, domain.RouteLogin, route.Route)
}
