package usecase

import (
	"bytes"
	"context"
	"errors"
	"io"
	"strings"
	"sync"
	"testing"
	"time"

	"vidtube/internal/repo/persistent"
	"vidtube/internal/repo/session"
	"vidtube/internal/testutil"
	"vidtube/pkg/apperror"
	"vidtube/pkg/jwt"
	"vidtube/pkg/logger"
	"vidtube/pkg/media"
	"vidtube/pkg/queue"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type fakeStorage struct {
	mu           sync.Mutex
	objects      map[string]bool
	deleted      []string
	failFolder   string
	failDeleting bool
}

func newFakeStorage() *fakeStorage {
	return &fakeStorage{objects: make(map[string]bool)}
}

func (s *fakeStorage) Upload(_ context.Context, key string, body io.Reader, _ int64, _ string) (*media.Asset, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failFolder != "" && strings.HasPrefix(key, s.failFolder+"/") {
		return nil, errors.New("storage unavailable")
	}
	if _, err := io.Copy(io.Discard, body); err != nil {
		return nil, err
	}
	s.objects[key] = true
	return &media.Asset{URL: "https://cdn.test/" + key, PublicID: key}, nil
}

func (s *fakeStorage) Delete(_ context.Context, publicID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failDeleting {
		return errors.New("delete failed")
	}
	delete(s.objects, publicID)
	s.deleted = append(s.deleted, publicID)
	return nil
}

func (s *fakeStorage) count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.objects)
}

type fakeCleanup struct {
	mu    sync.Mutex
	tasks []queue.CleanupTask
}

func (c *fakeCleanup) PublishCleanupTask(_ context.Context, task queue.CleanupTask) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.tasks = append(c.tasks, task)
	return nil
}

func file(name string) *Upload {
	content := []byte("content of " + name)
	return &Upload{
		Filename:    name,
		ContentType: "application/octet-stream",
		Size:        int64(len(content)),
		Body:        bytes.NewReader(content),
	}
}

type testEnv struct {
	db            *gorm.DB
	storage       *fakeStorage
	cleanup       *fakeCleanup
	redis         *miniredis.Miniredis
	jwt           *jwt.Service
	users         UserUseCase
	videos        VideoUseCase
	comments      CommentUseCase
	likes         LikeUseCase
	subscriptions SubscriptionUseCase
	playlists     PlaylistUseCase
	tweets        TweetUseCase
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	db := testutil.NewSQLiteDB(t)
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })

	log := logger.NewWithWriter(io.Discard, "error")
	storage := newFakeStorage()
	cleanup := &fakeCleanup{}
	jwtService := jwt.NewService("access-secret", "refresh-secret", 15*time.Minute, 24*time.Hour)

	userRepo := persistent.NewUserRepository(db)
	videoRepo := persistent.NewVideoRepository(db)

	users := NewUserUseCase(userRepo, jwtService, session.NewRedisDenylist(rdb), storage, cleanup, log)
	users.(*userUseCase).bcryptCost = bcrypt.MinCost

	return &testEnv{
		db:            db,
		storage:       storage,
		cleanup:       cleanup,
		redis:         mr,
		jwt:           jwtService,
		users:         users,
		videos:        NewVideoUseCase(videoRepo, userRepo, storage, cleanup, log),
		comments:      NewCommentUseCase(persistent.NewCommentRepository(db), videoRepo, log),
		likes:         NewLikeUseCase(persistent.NewLikeRepository(db), log),
		subscriptions: NewSubscriptionUseCase(persistent.NewSubscriptionRepository(db), userRepo, log),
		playlists:     NewPlaylistUseCase(persistent.NewPlaylistRepository(db), videoRepo, log),
		tweets:        NewTweetUseCase(persistent.NewTweetRepository(db), log),
	}
}

func assertStatus(t *testing.T, want int, err error) {
	t.Helper()
	if assert.Error(t, err) {
		assert.Equal(t, want, apperror.StatusOf(err), err.Error())
	}
}
