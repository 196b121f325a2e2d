package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"vidtube/internal/entity"
	"vidtube/internal/repo/persistent"
	"vidtube/internal/repo/query"
	"vidtube/internal/repo/session"
	"vidtube/pkg/apperror"
	"vidtube/pkg/jwt"
	"vidtube/pkg/logger"
	"vidtube/pkg/media"

	"golang.org/x/crypto/bcrypt"
)

type RegisterInput struct {
	FullName   string
	Email      string
	Username   string
	Password   string
	Avatar     *Upload
	CoverImage *Upload
}

// LoginInput identifies the account by Username or Email.
type LoginInput struct {
	Username string
	Email    string
	Password string
}

type AuthResult struct {
	User   *entity.User
	Tokens *jwt.TokenPair
}

type UserUseCase interface {
	Register(ctx context.Context, in RegisterInput) (*entity.User, error)
	Login(ctx context.Context, in LoginInput) (*AuthResult, error)
	Logout(ctx context.Context, userID, tokenID string, tokenExpiresAt time.Time) error
	RefreshToken(ctx context.Context, refreshToken string) (*jwt.TokenPair, error)
	ChangePassword(ctx context.Context, userID, oldPassword, newPassword string) error
	GetCurrentUser(ctx context.Context, userID string) (*entity.User, error)
	GetChannelProfile(ctx context.Context, username, viewerID string) (*entity.ChannelProfile, error)
	UpdateAccount(ctx context.Context, userID, fullName, email string) (*entity.User, error)
	UpdateAvatar(ctx context.Context, userID string, file *Upload) (*entity.User, error)
	UpdateCoverImage(ctx context.Context, userID string, file *Upload) (*entity.User, error)
	GetWatchHistory(ctx context.Context, userID string) ([]entity.Video, error)
}

type userUseCase struct {
	userRepo   persistent.UserRepository
	jwtService *jwt.Service
	denylist   session.Denylist
	media      *mediaManager
	logger     *logger.Logger
	bcryptCost int
}

func NewUserUseCase(
	userRepo persistent.UserRepository,
	jwtService *jwt.Service,
	denylist session.Denylist,
	storage media.Storage,
	cleanup CleanupPublisher,
	logger *logger.Logger,
) UserUseCase {
	return &userUseCase{
		userRepo:   userRepo,
		jwtService: jwtService,
		denylist:   denylist,
		media:      newMediaManager(storage, cleanup, logger),
		logger:     logger,
		bcryptCost: bcrypt.DefaultCost,
	}
}

func (uc *userUseCase) Register(ctx context.Context, in RegisterInput) (*entity.User, error) {
	in.FullName = strings.TrimSpace(in.FullName)
	in.Email = normalizeIdentity(in.Email)
	in.Username = normalizeIdentity(in.Username)
	if in.FullName == "" || in.Email == "" || in.Username == "" || strings.TrimSpace(in.Password) == "" {
		return nil, apperror.Validation("All fields are required")
	}
	if in.Avatar == nil {
		return nil, apperror.Validation("Avatar file is required")
	}

	exists, err := uc.userRepo.ExistsByUsernameOrEmail(ctx, in.Username, in.Email)
	if err != nil {
		return nil, fmt.Errorf("check existing user: %w", err)
	}
	if exists {
		return nil, apperror.Conflict("User with email or username already exists")
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(in.Password), uc.bcryptCost)
	if err != nil {
		return nil, apperror.Internal("Failed to process registration", err)
	}

	avatar, err := uc.media.upload(ctx, media.FolderAvatars, in.Username, in.Avatar)
	if err != nil {
		return nil, apperror.Internal("Failed to upload avatar", err)
	}

	var cover *media.Asset
	if in.CoverImage != nil {
		cover, err = uc.media.upload(ctx, media.FolderCovers, in.Username, in.CoverImage)
		if err != nil {
			uc.media.discard(ctx, "registration cover upload failed", avatar)
			return nil, apperror.Internal("Failed to upload cover image", err)
		}
	}

	user := &entity.User{
		Username:       in.Username,
		Email:          in.Email,
		FullName:       in.FullName,
		Avatar:         avatar.URL,
		AvatarPublicID: avatar.PublicID,
		Password:       string(hashed),
	}
	if cover != nil {
		user.CoverImage = cover.URL
		user.CoverImagePublicID = cover.PublicID
	}

	if err := uc.userRepo.Create(ctx, user); err != nil {
		uc.media.discard(ctx, "registration failed", avatar, cover)
		if errors.Is(err, persistent.ErrDuplicate) {
			return nil, apperror.Conflict("User with email or username already exists")
		}
		return nil, apperror.Internal("Something went wrong while registering the user", err)
	}

	uc.logger.Info("Registered user %s", user.ID)
	return user, nil
}

func (uc *userUseCase) Login(ctx context.Context, in LoginInput) (*AuthResult, error) {
	username := normalizeIdentity(in.Username)
	email := normalizeIdentity(in.Email)
	if username == "" && email == "" {
		return nil, apperror.Validation("Username or email is required")
	}
	if in.Password == "" {
		return nil, apperror.Validation("Password is required")
	}

	user, err := uc.userRepo.GetByLogin(ctx, username, email)
	if errors.Is(err, persistent.ErrNotFound) {
		return nil, apperror.NotFound("User does not exist")
	}
	if err != nil {
		return nil, fmt.Errorf("load user: %w", err)
	}

	ok, err := VerifyPassword(user.Password, in.Password)
	if err != nil {
		return nil, apperror.Internal("Failed to verify password", err)
	}
	if !ok {
		return nil, apperror.Unauthorized("Invalid user credentials")
	}

	tokens, err := uc.issueTokenPair(ctx, user.ID)
	if err != nil {
		return nil, err
	}
	user.RefreshToken = tokens.RefreshToken
	return &AuthResult{User: user, Tokens: tokens}, nil
}

// issueTokenPair signs a new pair and makes its refresh token the only
// valid one for the user.
func (uc *userUseCase) issueTokenPair(ctx context.Context, userID string) (*jwt.TokenPair, error) {
	tokens, err := uc.jwtService.GeneratePair(userID, entity.RoleUser)
	if err != nil {
		return nil, apperror.Internal("Failed to generate tokens", err)
	}
	if err := uc.userRepo.SetRefreshToken(ctx, userID, tokens.RefreshToken); err != nil {
		if errors.Is(err, persistent.ErrNotFound) {
			return nil, apperror.NotFound("User does not exist")
		}
		return nil, fmt.Errorf("store refresh token: %w", err)
	}
	return tokens, nil
}

func (uc *userUseCase) Logout(ctx context.Context, userID, tokenID string, tokenExpiresAt time.Time) error {
	if err := uc.userRepo.ClearRefreshToken(ctx, userID); err != nil {
		return fmt.Errorf("clear refresh token: %w", err)
	}
	if uc.denylist != nil && tokenID != "" {
		if err := uc.denylist.Revoke(ctx, tokenID, time.Until(tokenExpiresAt)); err != nil {
			return fmt.Errorf("revoke access token: %w", err)
		}
	}
	return nil
}

func (uc *userUseCase) RefreshToken(ctx context.Context, refreshToken string) (*jwt.TokenPair, error) {
	if refreshToken == "" {
		return nil, apperror.Unauthorized("Unauthorized request")
	}

	claims, err := uc.jwtService.ValidateRefreshToken(refreshToken)
	if err != nil {
		return nil, apperror.Unauthorized("Invalid refresh token")
	}

	if _, err := uc.userRepo.GetByID(ctx, claims.UserID); err != nil {
		if errors.Is(err, persistent.ErrNotFound) {
			return nil, apperror.Unauthorized("Invalid refresh token")
		}
		return nil, fmt.Errorf("load user: %w", err)
	}

	tokens, err := uc.jwtService.GeneratePair(claims.UserID, entity.RoleUser)
	if err != nil {
		return nil, apperror.Internal("Failed to generate tokens", err)
	}

	rotated, err := uc.userRepo.RotateRefreshToken(ctx, claims.UserID, refreshToken, tokens.RefreshToken)
	if err != nil {
		return nil, fmt.Errorf("rotate refresh token: %w", err)
	}
	if !rotated {
		return nil, apperror.Unauthorized("Refresh token is expired or used")
	}
	return tokens, nil
}

func (uc *userUseCase) ChangePassword(ctx context.Context, userID, oldPassword, newPassword string) error {
	if oldPassword == "" || strings.TrimSpace(newPassword) == "" {
		return apperror.Validation("Old and new password are required")
	}

	user, err := uc.GetCurrentUser(ctx, userID)
	if err != nil {
		return err
	}

	ok, err := VerifyPassword(user.Password, oldPassword)
	if err != nil {
		return apperror.Internal("Failed to verify password", err)
	}
	if !ok {
		return apperror.Validation("Invalid old password")
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(newPassword), uc.bcryptCost)
	if err != nil {
		return apperror.Internal("Failed to hash password", err)
	}
	return uc.userRepo.UpdatePassword(ctx, userID, string(hashed))
}

func (uc *userUseCase) GetCurrentUser(ctx context.Context, userID string) (*entity.User, error) {
	user, err := uc.userRepo.GetByID(ctx, userID)
	if errors.Is(err, persistent.ErrNotFound) {
		return nil, apperror.NotFound("User not found")
	}
	if err != nil {
		return nil, fmt.Errorf("load user: %w", err)
	}
	return user, nil
}

func (uc *userUseCase) GetChannelProfile(ctx context.Context, username, viewerID string) (*entity.ChannelProfile, error) {
	q := query.NewChannelProfileQuery(username, viewerID)
	if q.Username == "" {
		return nil, apperror.Validation("Username is missing")
	}

	profile, err := uc.userRepo.GetChannelProfile(ctx, q)
	if errors.Is(err, persistent.ErrNotFound) {
		return nil, apperror.NotFound("Channel does not exist")
	}
	if err != nil {
		return nil, fmt.Errorf("load channel profile: %w", err)
	}
	return profile, nil
}

func (uc *userUseCase) UpdateAccount(ctx context.Context, userID, fullName, email string) (*entity.User, error) {
	fullName = strings.TrimSpace(fullName)
	email = normalizeIdentity(email)
	if fullName == "" || email == "" {
		return nil, apperror.Validation("All fields are required")
	}

	user, err := uc.userRepo.UpdateAccount(ctx, userID, fullName, email)
	switch {
	case errors.Is(err, persistent.ErrDuplicate):
		return nil, apperror.Conflict("Email is already in use")
	case errors.Is(err, persistent.ErrNotFound):
		return nil, apperror.NotFound("User not found")
	case err != nil:
		return nil, fmt.Errorf("update account: %w", err)
	}
	return user, nil
}

func (uc *userUseCase) UpdateAvatar(ctx context.Context, userID string, file *Upload) (*entity.User, error) {
	if file == nil {
		return nil, apperror.Validation("Avatar file is missing")
	}
	return uc.replaceImage(ctx, userID, file, media.FolderAvatars, "avatar",
		func(u *entity.User) string { return u.AvatarPublicID },
		uc.userRepo.UpdateAvatar)
}

func (uc *userUseCase) UpdateCoverImage(ctx context.Context, userID string, file *Upload) (*entity.User, error) {
	if file == nil {
		return nil, apperror.Validation("Cover image file is missing")
	}
	return uc.replaceImage(ctx, userID, file, media.FolderCovers, "cover image",
		func(u *entity.User) string { return u.CoverImagePublicID },
		uc.userRepo.UpdateCoverImage)
}

// replaceImage uploads the new file, points the user at it and only then
// deletes the previous asset.
func (uc *userUseCase) replaceImage(
	ctx context.Context,
	userID string,
	file *Upload,
	folder, label string,
	previous func(*entity.User) string,
	save func(ctx context.Context, id, url, publicID string) (*entity.User, error),
) (*entity.User, error) {
	current, err := uc.GetCurrentUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	asset, err := uc.media.upload(ctx, folder, userID, file)
	if err != nil {
		return nil, apperror.Internal("Failed to upload "+label, err)
	}

	updated, err := save(ctx, userID, asset.URL, asset.PublicID)
	if err != nil {
		uc.media.discard(ctx, label+" update failed", asset)
		return nil, fmt.Errorf("save %s: %w", label, err)
	}

	if old := previous(current); old != "" {
		uc.media.discardIDs(ctx, "replaced "+label, old)
	}
	return updated, nil
}

func (uc *userUseCase) GetWatchHistory(ctx context.Context, userID string) ([]entity.Video, error) {
	videos, err := uc.userRepo.GetWatchHistory(ctx, query.NewWatchHistoryQuery(userID))
	if err != nil {
		return nil, fmt.Errorf("load watch history: %w", err)
	}
	return videos, nil
}

// VerifyPassword reports whether candidate matches hash. A mismatch is not
// an error.
func VerifyPassword(hash, candidate string) (bool, error) {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(candidate))
	if err == nil {
		return true, nil
	}
	if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
		return false, nil
	}
	return false, err
}

func normalizeIdentity(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
