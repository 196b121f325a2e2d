package persistent

import (
	"vidtube/internal/entity"
	"vidtube/internal/model"
)

func ToUserEntity(m *model.UserModel) *entity.User {
	if m == nil {
		return nil
	}

	u := &entity.User{
		ID:                 m.ID,
		Username:           m.Username,
		Email:              m.Email,
		FullName:           m.FullName,
		Avatar:             m.Avatar,
		AvatarPublicID:     m.AvatarPublicID,
		CoverImage:         m.CoverImage,
		CoverImagePublicID: m.CoverImagePublicID,
		Password:           m.Password,
		CreatedAt:          m.CreatedAt,
		UpdatedAt:          m.UpdatedAt,
	}
	if m.RefreshToken != nil {
		u.RefreshToken = *m.RefreshToken
	}
	return u
}

func ToUserModel(e *entity.User) *model.UserModel {
	if e == nil {
		return nil
	}

	m := &model.UserModel{
		ID:                 e.ID,
		Username:           e.Username,
		Email:              e.Email,
		FullName:           e.FullName,
		Avatar:             e.Avatar,
		AvatarPublicID:     e.AvatarPublicID,
		CoverImage:         e.CoverImage,
		CoverImagePublicID: e.CoverImagePublicID,
		Password:           e.Password,
		CreatedAt:          e.CreatedAt,
		UpdatedAt:          e.UpdatedAt,
	}
	if e.RefreshToken != "" {
		token := e.RefreshToken
		m.RefreshToken = &token
	}
	return m
}

func toOwner(m *model.UserModel) *entity.Owner {
	if m == nil {
		return nil
	}
	return &entity.Owner{
		ID:       m.ID,
		Username: m.Username,
		FullName: m.FullName,
		Avatar:   m.Avatar,
	}
}

func ToVideoEntity(m *model.VideoModel) *entity.Video {
	if m == nil {
		return nil
	}

	return &entity.Video{
		ID:                m.ID,
		Title:             m.Title,
		Description:       m.Description,
		VideoFile:         m.VideoFile,
		VideoFilePublicID: m.VideoFilePublicID,
		Thumbnail:         m.Thumbnail,
		ThumbnailPublicID: m.ThumbnailPublicID,
		Duration:          m.Duration,
		Views:             m.Views,
		IsPublished:       m.IsPublished,
		OwnerID:           m.OwnerID,
		Owner:             toOwner(m.Owner),
		CreatedAt:         m.CreatedAt,
		UpdatedAt:         m.UpdatedAt,
	}
}

func ToVideoModel(e *entity.Video) *model.VideoModel {
	if e == nil {
		return nil
	}

	return &model.VideoModel{
		ID:                e.ID,
		Title:             e.Title,
		Description:       e.Description,
		VideoFile:         e.VideoFile,
		VideoFilePublicID: e.VideoFilePublicID,
		Thumbnail:         e.Thumbnail,
		ThumbnailPublicID: e.ThumbnailPublicID,
		Duration:          e.Duration,
		Views:             e.Views,
		IsPublished:       e.IsPublished,
		OwnerID:           e.OwnerID,
		CreatedAt:         e.CreatedAt,
		UpdatedAt:         e.UpdatedAt,
	}
}

func ToCommentEntity(m *model.CommentModel) *entity.Comment {
	if m == nil {
		return nil
	}

	return &entity.Comment{
		ID:        m.ID,
		Content:   m.Content,
		VideoID:   m.VideoID,
		OwnerID:   m.OwnerID,
		Owner:     toOwner(m.Owner),
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
}

func ToCommentModel(e *entity.Comment) *model.CommentModel {
	if e == nil {
		return nil
	}

	return &model.CommentModel{
		ID:        e.ID,
		Content:   e.Content,
		VideoID:   e.VideoID,
		OwnerID:   e.OwnerID,
		CreatedAt: e.CreatedAt,
		UpdatedAt: e.UpdatedAt,
	}
}

func ToSubscriptionEntity(m *model.SubscriptionModel) *entity.Subscription {
	if m == nil {
		return nil
	}

	return &entity.Subscription{
		ID:           m.ID,
		SubscriberID: m.SubscriberID,
		ChannelID:    m.ChannelID,
		Subscriber:   toOwner(m.Subscriber),
		Channel:      toOwner(m.Channel),
		CreatedAt:    m.CreatedAt,
	}
}

func ToPlaylistEntity(m *model.PlaylistModel) *entity.Playlist {
	if m == nil {
		return nil
	}

	return &entity.Playlist{
		ID:          m.ID,
		Name:        m.Name,
		Description: m.Description,
		OwnerID:     m.OwnerID,
		Videos:      []entity.Video{},
		CreatedAt:   m.CreatedAt,
		UpdatedAt:   m.UpdatedAt,
	}
}

func ToPlaylistModel(e *entity.Playlist) *model.PlaylistModel {
	if e == nil {
		return nil
	}

	return &model.PlaylistModel{
		ID:          e.ID,
		Name:        e.Name,
		Description: e.Description,
		OwnerID:     e.OwnerID,
		CreatedAt:   e.CreatedAt,
		UpdatedAt:   e.UpdatedAt,
	}
}

func ToTweetEntity(m *model.TweetModel) *entity.Tweet {
	if m == nil {
		return nil
	}

	return &entity.Tweet{
		ID:        m.ID,
		Content:   m.Content,
		OwnerID:   m.OwnerID,
		Owner:     toOwner(m.Owner),
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
}

func ToTweetModel(e *entity.Tweet) *model.TweetModel {
	if e == nil {
		return nil
	}

	return &model.TweetModel{
		ID:        e.ID,
		Content:   e.Content,
		OwnerID:   e.OwnerID,
		CreatedAt: e.CreatedAt,
		UpdatedAt: e.UpdatedAt,
	}
}
