package query

import (
	"strings"

	"vidtube/internal/entity"

	"gorm.io/gorm"
)

const (
	DefaultPage  = 1
	DefaultLimit = 10
	MaxLimit     = 100
)

var sortColumns = map[string]string{
	"createdat":  "v.created_at",
	"created_at": "v.created_at",
	"views":      "v.views",
	"duration":   "v.duration",
	"title":      "v.title",
}

// VideoListQuery pages through published videos. Offset pagination is
// best-effort: rows inserted while paging can shift later pages.
type VideoListQuery struct {
	Page       int
	Limit      int
	Search     string
	SortColumn string
	Descending bool
	OwnerID    string
}

func NewVideoListQuery(f entity.VideoFilter) VideoListQuery {
	q := VideoListQuery{
		Page:       f.Page,
		Limit:      f.Limit,
		Search:     strings.ToLower(strings.TrimSpace(f.Query)),
		SortColumn: "v.created_at",
		Descending: true,
		OwnerID:    f.OwnerID,
	}
	if q.Page < 1 {
		q.Page = DefaultPage
	}
	if q.Limit < 1 {
		q.Limit = DefaultLimit
	}
	if q.Limit > MaxLimit {
		q.Limit = MaxLimit
	}

	if col, ok := sortColumns[strings.ToLower(f.SortBy)]; ok {
		q.SortColumn = col
		q.Descending = !strings.EqualFold(f.SortType, "asc")
	}
	return q
}

func (q VideoListQuery) Offset() int {
	return (q.Page - 1) * q.Limit
}

// Filter restricts v to published rows matching the search and owner.
func (q VideoListQuery) Filter(db *gorm.DB) *gorm.DB {
	db = db.Table("videos AS v").Where("v.is_published = ?", true)
	if q.Search != "" {
		pattern := "%" + escapeLike(q.Search) + "%"
		db = db.Where(`(LOWER(v.title) LIKE ? ESCAPE '\' OR LOWER(v.description) LIKE ? ESCAPE '\')`, pattern, pattern)
	}
	if q.OwnerID != "" {
		db = db.Where("v.owner_id = ?", q.OwnerID)
	}
	return db
}

// Apply selects one page of joined rows.
func (q VideoListQuery) Apply(db *gorm.DB) *gorm.DB {
	direction := " DESC"
	if !q.Descending {
		direction = " ASC"
	}
	return q.Filter(db).
		Select(videoColumns+", "+ownerColumns).
		Joins("JOIN users o ON o.id = v.owner_id").
		Order(q.SortColumn + direction).
		Order("v.id" + direction).
		Limit(q.Limit).
		Offset(q.Offset())
}

func (q VideoListQuery) TotalPages(total int64) int {
	if total == 0 {
		return 0
	}
	return int((total + int64(q.Limit) - 1) / int64(q.Limit))
}

func escapeLike(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return r.Replace(s)
}
