package model

import (
	"time"
)

// Movie TMDB 返回的电影条目
// 除 ID 外的字段都可能缺失，缺失时保持零值，排序和展示逻辑不得因此崩溃
type Movie struct {
	ID          int     `json:"id"`
	Title       string  `json:"title"`
	ReleaseDate string  `json:"release_date"`
	VoteAverage float64 `json:"vote_average"`
	PosterPath  string  `json:"poster_path"`
}

// SearchTerm 搜索词热度记录
// term 唯一，movie_id/poster_url 只在首次创建时写入，之后只累加 count
type SearchTerm struct {
	ID             int       `json:"id" db:"id"`
	Term           string    `json:"term" db:"term"`
	Count          int       `json:"count" db:"count"`
	MovieID        int       `json:"movie_id" db:"movie_id"`
	PosterURL      string    `json:"poster_url" db:"poster_url"`
	CreatedAt      time.Time `json:"created_at" db:"created_at"`
	LastSearchedAt time.Time `json:"last_searched_at" db:"last_searched_at"`
}

// 排序选项
const (
	SortDefault    = "default"
	SortYearDesc   = "year-desc"
	SortYearAsc    = "year-asc"
	SortRatingDesc = "rating-desc"
	SortRatingAsc  = "rating-asc"
)

// ValidSortOption 判断排序选项是否合法
func ValidSortOption(option string) bool {
	switch option {
	case SortDefault, SortYearDesc, SortYearAsc, SortRatingDesc, SortRatingAsc:
		return true
	}
	return false
}

// 用户可见的错误文案
const (
	MsgFetchFailed = "Failed to fetch movies"
	MsgNoData      = "No movie data available"
)
