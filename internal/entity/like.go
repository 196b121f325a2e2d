package entity

import "time"

type LikeTarget string

const (
	LikeTargetVideo   LikeTarget = "video"
	LikeTargetComment LikeTarget = "comment"
	LikeTargetTweet   LikeTarget = "tweet"
)

func (t LikeTarget) Valid() bool {
	switch t {
	case LikeTargetVideo, LikeTargetComment, LikeTargetTweet:
		return true
	}
	return false
}

type Like struct {
	ID         string     `json:"id"`
	LikedBy    string     `json:"likedBy"`
	TargetType LikeTarget `json:"targetType"`
	TargetID   string     `json:"targetId"`
	CreatedAt  time.Time  `json:"createdAt"`
}

// LikeSummary is the like count of a target plus whether the caller liked it.
type LikeSummary struct {
	TargetType LikeTarget `json:"targetType"`
	TargetID   string     `json:"targetId"`
	Count      int64      `json:"count"`
	IsLiked    bool       `json:"isLiked"`
}
