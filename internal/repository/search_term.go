package repository

import (
	"fmt"
	"time"

	"github.com/user/reelfind/internal/config"
	"github.com/user/reelfind/internal/model"
	"github.com/user/reelfind/internal/utils"
	"gorm.io/gorm"
)

// trendingCacheTTL 热搜榜缓存时间，保证短时间内两次读取结果一致
const trendingCacheTTL = 30 * time.Second

// SearchTermRepository 搜索词热度仓库
type SearchTermRepository struct {
	db        *gorm.DB
	table     string
	imageBase string
}

func NewSearchTermRepository(db *gorm.DB, cfg *config.Config) *SearchTermRepository {
	return &SearchTermRepository{
		db:        db,
		table:     cfg.TermTable(),
		imageBase: cfg.ImageBaseURL,
	}
}

// Migrate 确保搜索词表存在
func (r *SearchTermRepository) Migrate() error {
	return r.db.Exec(fmt.Sprintf(`
		CREATE TABLE IF NOT EXISTS %s (
			id SERIAL PRIMARY KEY,
			term TEXT NOT NULL UNIQUE,
			count INT NOT NULL DEFAULT 1,
			movie_id INT NOT NULL DEFAULT 0,
			poster_url TEXT NOT NULL DEFAULT '',
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			last_searched_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)
	`, r.table)).Error
}

// RecordSearch 记录一次搜索
// 单条原子 upsert：已存在时只累加 count，movie_id/poster_url 保持首次写入的快照
func (r *SearchTermRepository) RecordSearch(term string, top model.Movie) error {
	return r.db.Exec(fmt.Sprintf(`
		INSERT INTO %s AS st (term, count, movie_id, poster_url, created_at, last_searched_at)
		VALUES ($1, 1, $2, $3, NOW(), NOW())
		ON CONFLICT (term) DO UPDATE SET
			count = st.count + 1,
			last_searched_at = NOW()
	`, r.table), term, top.ID, r.PosterURL(top)).Error
}

// TopSearches 获取热搜榜
func (r *SearchTermRepository) TopSearches(limit int) ([]*model.SearchTerm, error) {
	// 1. 检查缓存
	cacheKey := fmt.Sprintf("trending:%d", limit)
	if cached, found := utils.CacheGet(cacheKey); found {
		if terms, ok := cached.([]*model.SearchTerm); ok {
			return terms, nil
		}
	}

	// 2. 从数据库获取，count 相同的按 id 保持稳定顺序
	var terms []*model.SearchTerm
	err := r.db.Raw(fmt.Sprintf(`
		SELECT id, term, count, movie_id, poster_url, created_at, last_searched_at
		FROM %s
		ORDER BY count DESC, id ASC
		LIMIT $1
	`, r.table), limit).Scan(&terms).Error
	if err != nil {
		return nil, err
	}

	// 3. 设置缓存
	utils.CacheSet(cacheKey, terms, trendingCacheTTL)

	return terms, nil
}

// PosterURL 根据海报路径拼接完整图片地址，缺失时返回空串
func (r *SearchTermRepository) PosterURL(movie model.Movie) string {
	if movie.PosterPath == "" {
		return ""
	}
	return r.imageBase + movie.PosterPath
}
