package persistent

import (
	"context"
	"time"

	"vidtube/internal/entity"
	"vidtube/internal/model"
	"vidtube/internal/repo/query"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type UserRepository interface {
	Create(ctx context.Context, user *entity.User) error
	GetByID(ctx context.Context, id string) (*entity.User, error)
	GetByLogin(ctx context.Context, username, email string) (*entity.User, error)
	ExistsByUsernameOrEmail(ctx context.Context, username, email string) (bool, error)
	UpdateAccount(ctx context.Context, id, fullName, email string) (*entity.User, error)
	UpdateAvatar(ctx context.Context, id, url, publicID string) (*entity.User, error)
	UpdateCoverImage(ctx context.Context, id, url, publicID string) (*entity.User, error)
	UpdatePassword(ctx context.Context, id, passwordHash string) error
	SetRefreshToken(ctx context.Context, id, token string) error
	RotateRefreshToken(ctx context.Context, id, oldToken, newToken string) (bool, error)
	ClearRefreshToken(ctx context.Context, id string) error
	AddToWatchHistory(ctx context.Context, userID, videoID string) error
	GetChannelProfile(ctx context.Context, q query.ChannelProfileQuery) (*entity.ChannelProfile, error)
	GetWatchHistory(ctx context.Context, q query.WatchHistoryQuery) ([]entity.Video, error)
}

type userRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) Create(ctx context.Context, user *entity.User) error {
	userModel := ToUserModel(user)
	if err := r.db.WithContext(ctx).Create(userModel).Error; err != nil {
		return translate(err)
	}
	*user = *ToUserEntity(userModel)
	return nil
}

func (r *userRepository) GetByID(ctx context.Context, id string) (*entity.User, error) {
	var userModel model.UserModel
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&userModel).Error; err != nil {
		return nil, translate(err)
	}
	return ToUserEntity(&userModel), nil
}

// GetByLogin matches either identifier; empty ones are ignored.
func (r *userRepository) GetByLogin(ctx context.Context, username, email string) (*entity.User, error) {
	if username == "" && email == "" {
		return nil, ErrNotFound
	}

	var userModel model.UserModel
	if err := r.identity(r.db.WithContext(ctx), username, email).First(&userModel).Error; err != nil {
		return nil, translate(err)
	}
	return ToUserEntity(&userModel), nil
}

func (r *userRepository) ExistsByUsernameOrEmail(ctx context.Context, username, email string) (bool, error) {
	var count int64
	err := r.identity(r.db.WithContext(ctx).Model(&model.UserModel{}), username, email).Count(&count).Error
	return count > 0, err
}

func (r *userRepository) identity(db *gorm.DB, username, email string) *gorm.DB {
	switch {
	case username != "" && email != "":
		return db.Where("username = ? OR email = ?", username, email)
	case username != "":
		return db.Where("username = ?", username)
	default:
		return db.Where("email = ?", email)
	}
}

func (r *userRepository) UpdateAccount(ctx context.Context, id, fullName, email string) (*entity.User, error) {
	return r.updateAndReload(ctx, id, map[string]interface{}{
		"full_name": fullName,
		"email":     email,
	})
}

func (r *userRepository) UpdateAvatar(ctx context.Context, id, url, publicID string) (*entity.User, error) {
	return r.updateAndReload(ctx, id, map[string]interface{}{
		"avatar":           url,
		"avatar_public_id": publicID,
	})
}

func (r *userRepository) UpdateCoverImage(ctx context.Context, id, url, publicID string) (*entity.User, error) {
	return r.updateAndReload(ctx, id, map[string]interface{}{
		"cover_image":           url,
		"cover_image_public_id": publicID,
	})
}

func (r *userRepository) updateAndReload(ctx context.Context, id string, fields map[string]interface{}) (*entity.User, error) {
	result := r.db.WithContext(ctx).Model(&model.UserModel{}).Where("id = ?", id).Updates(fields)
	if result.Error != nil {
		return nil, translate(result.Error)
	}
	if result.RowsAffected == 0 {
		return nil, ErrNotFound
	}
	return r.GetByID(ctx, id)
}

func (r *userRepository) UpdatePassword(ctx context.Context, id, passwordHash string) error {
	result := r.db.WithContext(ctx).Model(&model.UserModel{}).Where("id = ?", id).Update("password", passwordHash)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *userRepository) SetRefreshToken(ctx context.Context, id, token string) error {
	result := r.db.WithContext(ctx).Model(&model.UserModel{}).Where("id = ?", id).Update("refresh_token", token)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// RotateRefreshToken swaps the stored token only if it still equals oldToken.
// false means another request already rotated or cleared it.
func (r *userRepository) RotateRefreshToken(ctx context.Context, id, oldToken, newToken string) (bool, error) {
	result := r.db.WithContext(ctx).
		Model(&model.UserModel{}).
		Where("id = ? AND refresh_token = ?", id, oldToken).
		Update("refresh_token", newToken)
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected == 1, nil
}

func (r *userRepository) ClearRefreshToken(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Model(&model.UserModel{}).Where("id = ?", id).Update("refresh_token", nil).Error
}

// AddToWatchHistory keeps the first watch time when the video was seen before.
func (r *userRepository) AddToWatchHistory(ctx context.Context, userID, videoID string) error {
	entry := &model.WatchHistoryModel{
		UserID:    userID,
		VideoID:   videoID,
		WatchedAt: time.Now(),
	}
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{DoNothing: true}).Create(entry).Error
}

func (r *userRepository) GetChannelProfile(ctx context.Context, q query.ChannelProfileQuery) (*entity.ChannelProfile, error) {
	var rows []query.ChannelProfileRow
	if err := q.Apply(r.db.WithContext(ctx)).Scan(&rows).Error; err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, ErrNotFound
	}
	return rows[0].ToEntity(), nil
}

func (r *userRepository) GetWatchHistory(ctx context.Context, q query.WatchHistoryQuery) ([]entity.Video, error) {
	var rows []query.VideoRow
	if err := q.Apply(r.db.WithContext(ctx)).Scan(&rows).Error; err != nil {
		return nil, err
	}
	return query.VideoRowsToEntities(rows), nil
}
