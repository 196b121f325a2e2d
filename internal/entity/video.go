package entity

import "time"

type Video struct {
	ID                string    `json:"id"`
	Title             string    `json:"title"`
	Description       string    `json:"description"`
	VideoFile         string    `json:"videoFile"`
	VideoFilePublicID string    `json:"-"`
	Thumbnail         string    `json:"thumbnail"`
	ThumbnailPublicID string    `json:"-"`
	Duration          float64   `json:"duration"`
	Views             int64     `json:"views"`
	IsPublished       bool      `json:"isPublished"`
	OwnerID           string    `json:"ownerId"`
	Owner             *Owner    `json:"owner,omitempty"`
	CreatedAt         time.Time `json:"createdAt"`
	UpdatedAt         time.Time `json:"updatedAt"`
}

// VideoFilter drives the public video listing.
type VideoFilter struct {
	Page     int
	Limit    int
	Query    string
	SortBy   string
	SortType string
	OwnerID  string
}

type VideoPage struct {
	Items      []Video `json:"items"`
	Total      int64   `json:"total"`
	Page       int     `json:"page"`
	Limit      int     `json:"limit"`
	TotalPages int     `json:"totalPages"`
}
