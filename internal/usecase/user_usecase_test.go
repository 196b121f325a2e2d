package usecase

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"vidtube/internal/entity"
	"vidtube/internal/repo/persistent"
	"vidtube/pkg/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func registerInput(username string) RegisterInput {
	return RegisterInput{
		FullName: "User " + username,
		Email:    username + "@example.com",
		Username: username,
		Password: "s3cret-pass",
		Avatar:   file("avatar.png"),
	}
}

func TestRegister_AvatarOnlyThenDuplicate(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	user, err := env.users.Register(ctx, registerInput("Alice"))
	require.NoError(t, err)
	assert.Equal(t, "alice", user.Username)
	assert.NotEmpty(t, user.Avatar)
	assert.Empty(t, user.CoverImage)
	assert.Equal(t, 1, env.storage.count())

	body, err := json.Marshal(user)
	require.NoError(t, err)
	assert.NotContains(t, string(body), "password")
	assert.NotContains(t, string(body), "refreshToken")
	assert.NotContains(t, string(body), user.Password)

	_, err = env.users.Register(ctx, registerInput("alice"))
	assertStatus(t, http.StatusConflict, err)
	assert.Equal(t, 1, env.storage.count())
}

func TestRegister_Validation(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	in := registerInput("bob")
	in.Password = "   "
	_, err := env.users.Register(ctx, in)
	assertStatus(t, http.StatusBadRequest, err)

	in = registerInput("bob")
	in.Avatar = nil
	_, err = env.users.Register(ctx, in)
	assertStatus(t, http.StatusBadRequest, err)
	assert.Equal(t, 0, env.storage.count())
}

func TestRegister_CoverUploadFailureRemovesAvatar(t *testing.T) {
	env := newTestEnv(t)
	env.storage.failFolder = "covers"

	in := registerInput("carol")
	in.CoverImage = file("cover.jpg")
	_, err := env.users.Register(context.Background(), in)
	assertStatus(t, http.StatusInternalServerError, err)
	assert.Equal(t, 0, env.storage.count())
	assert.Len(t, env.storage.deleted, 1)
}

// racingUserRepo reports no existing user but fails the insert, as when a
// concurrent registration wins the unique index.
type racingUserRepo struct {
	persistent.UserRepository
}

func (racingUserRepo) ExistsByUsernameOrEmail(context.Context, string, string) (bool, error) {
	return false, nil
}

func (racingUserRepo) Create(context.Context, *entity.User) error {
	return persistent.ErrDuplicate
}

func TestRegister_WriteFailureRemovesUploads(t *testing.T) {
	env := newTestEnv(t)
	uc := NewUserUseCase(racingUserRepo{}, env.jwt, nil, env.storage, env.cleanup, logger.NewWithLevel("error"))
	uc.(*userUseCase).bcryptCost = bcrypt.MinCost

	in := registerInput("dave")
	in.CoverImage = file("cover.jpg")
	_, err := uc.Register(context.Background(), in)
	assertStatus(t, http.StatusConflict, err)
	assert.Equal(t, 0, env.storage.count())
	assert.Len(t, env.storage.deleted, 2)
	assert.Empty(t, env.cleanup.tasks)
}

func TestRegister_FailedCleanupIsQueued(t *testing.T) {
	env := newTestEnv(t)
	env.storage.failDeleting = true
	uc := NewUserUseCase(racingUserRepo{}, env.jwt, nil, env.storage, env.cleanup, logger.NewWithLevel("error"))
	uc.(*userUseCase).bcryptCost = bcrypt.MinCost

	_, err := uc.Register(context.Background(), registerInput("erin"))
	require.Error(t, err)
	require.Len(t, env.cleanup.tasks, 1)
	assert.Equal(t, 1, env.cleanup.tasks[0].Attempt)
	assert.Contains(t, env.cleanup.tasks[0].PublicID, "avatars/erin/")
}

func TestLogin_RefreshRotatesOnce(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	_, err := env.users.Register(ctx, registerInput("alice"))
	require.NoError(t, err)

	result, err := env.users.Login(ctx, LoginInput{Email: "ALICE@example.com", Password: "s3cret-pass"})
	require.NoError(t, err)
	require.NotNil(t, result.Tokens)

	first, err := env.users.RefreshToken(ctx, result.Tokens.RefreshToken)
	require.NoError(t, err)
	assert.NotEqual(t, result.Tokens.RefreshToken, first.RefreshToken)

	_, err = env.users.RefreshToken(ctx, result.Tokens.RefreshToken)
	assertStatus(t, http.StatusUnauthorized, err)

	_, err = env.users.RefreshToken(ctx, first.RefreshToken)
	assert.NoError(t, err)
}

func TestLogin_Failures(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	_, err := env.users.Register(ctx, registerInput("alice"))
	require.NoError(t, err)

	_, err = env.users.Login(ctx, LoginInput{Username: "alice", Password: "wrong"})
	assertStatus(t, http.StatusUnauthorized, err)

	_, err = env.users.Login(ctx, LoginInput{Username: "nobody", Password: "x"})
	assertStatus(t, http.StatusNotFound, err)

	_, err = env.users.Login(ctx, LoginInput{Password: "x"})
	assertStatus(t, http.StatusBadRequest, err)

	_, err = env.users.RefreshToken(ctx, "not-a-token")
	assertStatus(t, http.StatusUnauthorized, err)

	access, err := env.jwt.GenerateAccessToken("someone", entity.RoleUser)
	require.NoError(t, err)
	_, err = env.users.RefreshToken(ctx, access)
	assertStatus(t, http.StatusUnauthorized, err)
}

func TestLogout_RevokesSession(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	_, err := env.users.Register(ctx, registerInput("alice"))
	require.NoError(t, err)

	result, err := env.users.Login(ctx, LoginInput{Username: "alice", Password: "s3cret-pass"})
	require.NoError(t, err)

	claims, err := env.jwt.ValidateAccessToken(result.Tokens.AccessToken)
	require.NoError(t, err)

	require.NoError(t, env.users.Logout(ctx, result.User.ID, claims.ID, claims.ExpiresAt.Time))
	assert.True(t, env.redis.Exists("vidtube:revoked:"+claims.ID))

	_, err = env.users.RefreshToken(ctx, result.Tokens.RefreshToken)
	assertStatus(t, http.StatusUnauthorized, err)
}

func TestChangePassword(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	user, err := env.users.Register(ctx, registerInput("alice"))
	require.NoError(t, err)

	err = env.users.ChangePassword(ctx, user.ID, "wrong", "new-pass")
	assertStatus(t, http.StatusBadRequest, err)

	require.NoError(t, env.users.ChangePassword(ctx, user.ID, "s3cret-pass", "new-pass"))

	_, err = env.users.Login(ctx, LoginInput{Username: "alice", Password: "new-pass"})
	assert.NoError(t, err)
}

func TestUpdateAccountAndAvatar(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	alice, err := env.users.Register(ctx, registerInput("alice"))
	require.NoError(t, err)
	_, err = env.users.Register(ctx, registerInput("bob"))
	require.NoError(t, err)

	_, err = env.users.UpdateAccount(ctx, alice.ID, "Alice", "BOB@example.com")
	assertStatus(t, http.StatusConflict, err)

	updated, err := env.users.UpdateAccount(ctx, alice.ID, "Alice Liddell", "liddell@example.com")
	require.NoError(t, err)
	assert.Equal(t, "liddell@example.com", updated.Email)

	oldAvatar := alice.AvatarPublicID
	updated, err = env.users.UpdateAvatar(ctx, alice.ID, file("new.png"))
	require.NoError(t, err)
	assert.NotEqual(t, oldAvatar, updated.AvatarPublicID)
	assert.Contains(t, env.storage.deleted, oldAvatar)

	updated, err = env.users.UpdateCoverImage(ctx, alice.ID, file("cover.png"))
	require.NoError(t, err)
	assert.NotEmpty(t, updated.CoverImage)

	_, err = env.users.UpdateAvatar(ctx, alice.ID, nil)
	assertStatus(t, http.StatusBadRequest, err)
}

func TestChannelProfileCountsSubscribers(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	channel, err := env.users.Register(ctx, registerInput("channel"))
	require.NoError(t, err)

	var viewers []*entity.User
	for _, name := range []string{"v1", "v2", "v3"} {
		u, err := env.users.Register(ctx, registerInput(name))
		require.NoError(t, err)
		_, err = env.subscriptions.Subscribe(ctx, u.ID, channel.ID)
		require.NoError(t, err)
		viewers = append(viewers, u)
	}

	profile, err := env.users.GetChannelProfile(ctx, "channel", viewers[0].ID)
	require.NoError(t, err)
	assert.Equal(t, int64(3), profile.SubscribersCount)
	assert.True(t, profile.IsSubscribed)

	subscribers, err := env.subscriptions.ListChannelSubscribers(ctx, channel.ID)
	require.NoError(t, err)
	assert.Len(t, subscribers, int(profile.SubscribersCount))

	_, err = env.users.GetChannelProfile(ctx, "ghost", "")
	assertStatus(t, http.StatusNotFound, err)
}

func TestVerifyPassword(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("pw"), bcrypt.MinCost)
	require.NoError(t, err)

	ok, err := VerifyPassword(string(hash), "pw")
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = VerifyPassword(string(hash), "nope")
	require.NoError(t, err)
	assert.False(t, ok)

	_, err = VerifyPassword("not-a-hash", "pw")
	assert.Error(t, err)
}

func TestLogout_WithoutDenylist(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	uc := NewUserUseCase(persistent.NewUserRepository(env.db), env.jwt, nil, env.storage, nil, logger.NewWithLevel("error"))

	user, err := env.users.Register(ctx, registerInput("frank"))
	require.NoError(t, err)
	assert.NoError(t, uc.Logout(ctx, user.ID, "jti", time.Now().Add(time.Minute)))
}
