package main

import (
	"errors"
	"flag"
	"fmt"
	"strings"
	"time"

	"vidtube/internal/model"
	"vidtube/pkg/config"
	"vidtube/pkg/database"
	"vidtube/pkg/logger"

	"github.com/brianvoe/gofakeit/v6"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const seedPassword = "password123"

func main() {
	var (
		users         = flag.Int("users", 5, "number of users to create")
		videosPerUser = flag.Int("videos", 3, "videos per user")
		seed          = flag.Int64("seed", 42, "random seed for generated content")
	)
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		panic(fmt.Sprintf("Failed to load config: %v", err))
	}

	log := logger.NewWithLevel(cfg.LogLevel)
	db, err := database.NewPostgresDB(cfg)
	if err != nil {
		log.Error("Failed to connect to database: %v", err)
		panic(err)
	}

	s := &seeder{db: db, faker: gofakeit.New(*seed), log: log}
	if err := s.run(*users, *videosPerUser); err != nil {
		log.Error("Failed to seed database: %v", err)
		panic(err)
	}

	log.Info("Database seeded successfully! Every user's password is %q", seedPassword)
}

type seeder struct {
	db    *gorm.DB
	faker *gofakeit.Faker
	log   *logger.Logger
}

func (s *seeder) run(userCount, videosPerUser int) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(seedPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}

	users := make([]*model.UserModel, 0, userCount)
	for i := 0; i < userCount; i++ {
		user, err := s.user(string(hash))
		if err != nil {
			return err
		}
		users = append(users, user)
	}

	var videos []*model.VideoModel
	for _, user := range users {
		for i := 0; i < videosPerUser; i++ {
			video, err := s.video(user.ID, i != videosPerUser-1)
			if err != nil {
				return err
			}
			videos = append(videos, video)
		}
	}

	if err := s.subscriptions(users); err != nil {
		return err
	}
	if err := s.engagement(users, videos); err != nil {
		return err
	}

	s.log.Info("Seeded %d users and %d videos", len(users), len(videos))
	return nil
}

// user creates a fake account or returns the existing one with the same username.
func (s *seeder) user(passwordHash string) (*model.UserModel, error) {
	username := strings.ToLower(s.faker.Username())
	user := &model.UserModel{
		Username:           username,
		Email:              fmt.Sprintf("%s@example.com", username),
		FullName:           s.faker.Name(),
		Avatar:             s.faker.ImageURL(256, 256),
		AvatarPublicID:     "seed/avatars/" + username,
		CoverImage:         s.faker.ImageURL(1280, 320),
		CoverImagePublicID: "seed/covers/" + username,
		Password:           passwordHash,
	}

	var existing model.UserModel
	err := s.db.Where("username = ?", username).First(&existing).Error
	if err == nil {
		s.log.Info("User %s already exists, skipping", username)
		return &existing, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("look up %s: %w", username, err)
	}

	if err := s.db.Create(user).Error; err != nil {
		return nil, fmt.Errorf("create user %s: %w", username, err)
	}
	s.log.Info("Created user: %s (%s)", user.Username, user.Email)
	return user, nil
}

func (s *seeder) video(ownerID string, published bool) (*model.VideoModel, error) {
	title := strings.TrimSuffix(s.faker.Sentence(s.faker.Number(3, 7)), ".")
	video := &model.VideoModel{
		Title:             title,
		Description:       s.faker.Paragraph(1, 3, 12, " "),
		VideoFile:         s.faker.URL() + "/video.mp4",
		VideoFilePublicID: fmt.Sprintf("seed/videos/%s/%s", ownerID, s.faker.UUID()),
		Thumbnail:         s.faker.ImageURL(640, 360),
		ThumbnailPublicID: fmt.Sprintf("seed/thumbnails/%s/%s", ownerID, s.faker.UUID()),
		Duration:          s.faker.Float64Range(15, 1800),
		Views:             int64(s.faker.Number(0, 50000)),
		IsPublished:       published,
		OwnerID:           ownerID,
	}
	if err := s.db.Create(video).Error; err != nil {
		return nil, fmt.Errorf("create video: %w", err)
	}
	return video, nil
}

// subscriptions makes every user follow every later user.
func (s *seeder) subscriptions(users []*model.UserModel) error {
	for i := range users {
		for j := i + 1; j < len(users); j++ {
			sub := &model.SubscriptionModel{SubscriberID: users[i].ID, ChannelID: users[j].ID}
			if err := s.db.Clauses(clause.OnConflict{DoNothing: true}).Create(sub).Error; err != nil {
				return fmt.Errorf("create subscription: %w", err)
			}
		}
	}
	s.log.Info("Created test subscriptions")
	return nil
}

// engagement adds comments, likes, a tweet and a playlist per user.
func (s *seeder) engagement(users []*model.UserModel, videos []*model.VideoModel) error {
	if len(videos) == 0 {
		return nil
	}

	return s.db.Transaction(func(tx *gorm.DB) error {
		for i, user := range users {
			video := videos[(i*2+1)%len(videos)]

			comment := &model.CommentModel{Content: s.faker.Sentence(10), VideoID: video.ID, OwnerID: user.ID}
			if err := tx.Create(comment).Error; err != nil {
				return fmt.Errorf("create comment: %w", err)
			}

			like := &model.LikeModel{TargetType: "video", TargetID: video.ID, LikedBy: user.ID}
			if err := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(like).Error; err != nil {
				return fmt.Errorf("create like: %w", err)
			}

			tweet := &model.TweetModel{Content: s.faker.HackerPhrase(), OwnerID: user.ID}
			if err := tx.Create(tweet).Error; err != nil {
				return fmt.Errorf("create tweet: %w", err)
			}

			playlist := &model.PlaylistModel{
				Name:        s.faker.BuzzWord() + " picks",
				Description: s.faker.Sentence(8),
				OwnerID:     user.ID,
			}
			if err := tx.Create(playlist).Error; err != nil {
				return fmt.Errorf("create playlist: %w", err)
			}
			entry := &model.PlaylistVideoModel{PlaylistID: playlist.ID, VideoID: video.ID, Position: 1, AddedAt: time.Now()}
			if err := tx.Create(entry).Error; err != nil {
				return fmt.Errorf("add playlist video: %w", err)
			}
		}
		return nil
	})
}
