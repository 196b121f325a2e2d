package http

import (
	"context"
	"time"

	"vidtube/internal/entity"
	"vidtube/internal/usecase"
	"vidtube/pkg/jwt"

	"github.com/stretchr/testify/mock"
)

type MockUserUseCase struct {
	mock.Mock
}

func (m *MockUserUseCase) Register(ctx context.Context, in usecase.RegisterInput) (*entity.User, error) {
	args := m.Called(ctx, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.User), args.Error(1)
}

func (m *MockUserUseCase) Login(ctx context.Context, in usecase.LoginInput) (*usecase.AuthResult, error) {
	args := m.Called(ctx, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*usecase.AuthResult), args.Error(1)
}

func (m *MockUserUseCase) Logout(ctx context.Context, userID, tokenID string, tokenExpiresAt time.Time) error {
	args := m.Called(ctx, userID, tokenID, tokenExpiresAt)
	return args.Error(0)
}

func (m *MockUserUseCase) RefreshToken(ctx context.Context, refreshToken string) (*jwt.TokenPair, error) {
	args := m.Called(ctx, refreshToken)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*jwt.TokenPair), args.Error(1)
}

func (m *MockUserUseCase) ChangePassword(ctx context.Context, userID, oldPassword, newPassword string) error {
	args := m.Called(ctx, userID, oldPassword, newPassword)
	return args.Error(0)
}

func (m *MockUserUseCase) GetCurrentUser(ctx context.Context, userID string) (*entity.User, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.User), args.Error(1)
}

func (m *MockUserUseCase) GetChannelProfile(ctx context.Context, username, viewerID string) (*entity.ChannelProfile, error) {
	args := m.Called(ctx, username, viewerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.ChannelProfile), args.Error(1)
}

func (m *MockUserUseCase) UpdateAccount(ctx context.Context, userID, fullName, email string) (*entity.User, error) {
	args := m.Called(ctx, userID, fullName, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.User), args.Error(1)
}

func (m *MockUserUseCase) UpdateAvatar(ctx context.Context, userID string, file *usecase.Upload) (*entity.User, error) {
	args := m.Called(ctx, userID, file)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.User), args.Error(1)
}

func (m *MockUserUseCase) UpdateCoverImage(ctx context.Context, userID string, file *usecase.Upload) (*entity.User, error) {
	args := m.Called(ctx, userID, file)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.User), args.Error(1)
}

func (m *MockUserUseCase) GetWatchHistory(ctx context.Context, userID string) ([]entity.Video, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entity.Video), args.Error(1)
}

var _ usecase.UserUseCase = (*MockUserUseCase)(nil)

type MockVideoUseCase struct {
	mock.Mock
}

func (m *MockVideoUseCase) ListVideos(ctx context.Context, filter entity.VideoFilter) (*entity.VideoPage, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.VideoPage), args.Error(1)
}

func (m *MockVideoUseCase) PublishVideo(ctx context.Context, ownerID string, in usecase.PublishVideoInput) (*entity.Video, error) {
	args := m.Called(ctx, ownerID, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Video), args.Error(1)
}

func (m *MockVideoUseCase) GetVideo(ctx context.Context, videoID, viewerID string) (*entity.Video, error) {
	args := m.Called(ctx, videoID, viewerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Video), args.Error(1)
}

func (m *MockVideoUseCase) UpdateVideo(ctx context.Context, videoID, userID string, in usecase.UpdateVideoInput) (*entity.Video, error) {
	args := m.Called(ctx, videoID, userID, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Video), args.Error(1)
}

func (m *MockVideoUseCase) DeleteVideo(ctx context.Context, videoID, userID string) error {
	args := m.Called(ctx, videoID, userID)
	return args.Error(0)
}

func (m *MockVideoUseCase) TogglePublish(ctx context.Context, videoID, userID string) (*entity.Video, error) {
	args := m.Called(ctx, videoID, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Video), args.Error(1)
}

var _ usecase.VideoUseCase = (*MockVideoUseCase)(nil)

type MockCommentUseCase struct {
	mock.Mock
}

func (m *MockCommentUseCase) AddComment(ctx context.Context, userID, videoID, content string) (*entity.Comment, error) {
	args := m.Called(ctx, userID, videoID, content)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Comment), args.Error(1)
}

func (m *MockCommentUseCase) ListComments(ctx context.Context, videoID, viewerID string, page, limit int) (*entity.CommentPage, error) {
	args := m.Called(ctx, videoID, viewerID, page, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.CommentPage), args.Error(1)
}

func (m *MockCommentUseCase) UpdateComment(ctx context.Context, commentID, userID, content string) (*entity.Comment, error) {
	args := m.Called(ctx, commentID, userID, content)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Comment), args.Error(1)
}

func (m *MockCommentUseCase) DeleteComment(ctx context.Context, commentID, userID string) error {
	args := m.Called(ctx, commentID, userID)
	return args.Error(0)
}

var _ usecase.CommentUseCase = (*MockCommentUseCase)(nil)

type MockLikeUseCase struct {
	mock.Mock
}

func (m *MockLikeUseCase) ToggleLike(ctx context.Context, targetType, targetID, userID string) (bool, error) {
	args := m.Called(ctx, targetType, targetID, userID)
	return args.Bool(0), args.Error(1)
}

func (m *MockLikeUseCase) GetLikeSummary(ctx context.Context, targetType, targetID, userID string) (*entity.LikeSummary, error) {
	args := m.Called(ctx, targetType, targetID, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.LikeSummary), args.Error(1)
}

var _ usecase.LikeUseCase = (*MockLikeUseCase)(nil)

type MockSubscriptionUseCase struct {
	mock.Mock
}

func (m *MockSubscriptionUseCase) Subscribe(ctx context.Context, subscriberID, channelID string) (*entity.Subscription, error) {
	args := m.Called(ctx, subscriberID, channelID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Subscription), args.Error(1)
}

func (m *MockSubscriptionUseCase) Unsubscribe(ctx context.Context, subscriberID, channelID string) error {
	args := m.Called(ctx, subscriberID, channelID)
	return args.Error(0)
}

func (m *MockSubscriptionUseCase) ListSubscribedChannels(ctx context.Context, subscriberID string) ([]entity.Subscription, error) {
	args := m.Called(ctx, subscriberID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entity.Subscription), args.Error(1)
}

func (m *MockSubscriptionUseCase) ListChannelSubscribers(ctx context.Context, channelID string) ([]entity.Subscription, error) {
	args := m.Called(ctx, channelID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entity.Subscription), args.Error(1)
}

func (m *MockSubscriptionUseCase) IsSubscribed(ctx context.Context, subscriberID, channelID string) (bool, error) {
	args := m.Called(ctx, subscriberID, channelID)
	return args.Bool(0), args.Error(1)
}

var _ usecase.SubscriptionUseCase = (*MockSubscriptionUseCase)(nil)

type MockPlaylistUseCase struct {
	mock.Mock
}

func (m *MockPlaylistUseCase) CreatePlaylist(ctx context.Context, ownerID, name, description string) (*entity.Playlist, error) {
	args := m.Called(ctx, ownerID, name, description)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Playlist), args.Error(1)
}

func (m *MockPlaylistUseCase) ListPlaylists(ctx context.Context, ownerID string) ([]entity.Playlist, error) {
	args := m.Called(ctx, ownerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entity.Playlist), args.Error(1)
}

func (m *MockPlaylistUseCase) GetPlaylist(ctx context.Context, playlistID string) (*entity.Playlist, error) {
	args := m.Called(ctx, playlistID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Playlist), args.Error(1)
}

func (m *MockPlaylistUseCase) AddVideo(ctx context.Context, playlistID, videoID, userID string) (*entity.Playlist, error) {
	args := m.Called(ctx, playlistID, videoID, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Playlist), args.Error(1)
}

func (m *MockPlaylistUseCase) RemoveVideo(ctx context.Context, playlistID, videoID, userID string) (*entity.Playlist, error) {
	args := m.Called(ctx, playlistID, videoID, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Playlist), args.Error(1)
}

func (m *MockPlaylistUseCase) DeletePlaylist(ctx context.Context, playlistID, userID string) error {
	args := m.Called(ctx, playlistID, userID)
	return args.Error(0)
}

var _ usecase.PlaylistUseCase = (*MockPlaylistUseCase)(nil)

type MockTweetUseCase struct {
	mock.Mock
}

func (m *MockTweetUseCase) CreateTweet(ctx context.Context, ownerID, content string) (*entity.Tweet, error) {
	args := m.Called(ctx, ownerID, content)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Tweet), args.Error(1)
}

func (m *MockTweetUseCase) ListTweets(ctx context.Context, page, limit int) ([]entity.Tweet, error) {
	args := m.Called(ctx, page, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entity.Tweet), args.Error(1)
}

func (m *MockTweetUseCase) ListUserTweets(ctx context.Context, userID string) ([]entity.Tweet, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entity.Tweet), args.Error(1)
}

func (m *MockTweetUseCase) UpdateTweet(ctx context.Context, tweetID, userID, content string) (*entity.Tweet, error) {
	args := m.Called(ctx, tweetID, userID, content)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Tweet), args.Error(1)
}

func (m *MockTweetUseCase) DeleteTweet(ctx context.Context, tweetID, userID string) error {
	args := m.Called(ctx, tweetID, userID)
	return args.Error(0)
}

var _ usecase.TweetUseCase = (*MockTweetUseCase)(nil)
