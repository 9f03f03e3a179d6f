package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"net/url"

	"github.com/user/reelfind/internal/config"
	"github.com/user/reelfind/internal/model"
	"github.com/user/reelfind/internal/utils"
	"golang.org/x/sync/singleflight"
)

// ErrFetchFailed 目录接口请求失败（网络错误或非 2xx 状态码）
var ErrFetchFailed = errors.New("fetch movies failed")

// TMDBService 电影目录网关
type TMDBService struct {
	client *utils.HTTPClient
	config *config.Config
	group  singleflight.Group
}

func NewTMDBService(cfg *config.Config) *TMDBService {
	return &TMDBService{
		client: utils.NewHTTPClient(cfg.TMDBToken),
		config: cfg,
	}
}

type tmdbSearchResponse struct {
	Results []model.Movie `json:"results"`
}

// Search 按关键词搜索电影
// query 为空时走 discover 接口，按全站热度倒序浏览
func (s *TMDBService) Search(ctx context.Context, query string) ([]model.Movie, error) {
	// 使用 singleflight 合并并发的相同查询
	val, err, _ := s.group.Do(query, func() (interface{}, error) {
		return s.search(ctx, query)
	})
	if err != nil {
		return nil, err
	}
	return val.([]model.Movie), nil
}

func (s *TMDBService) search(ctx context.Context, query string) ([]model.Movie, error) {
	endpoint := s.config.TMDBBaseURL + "discover/movie?sort_by=popularity.desc"
	if query != "" {
		endpoint = s.config.TMDBBaseURL + "search/movie?query=" + url.QueryEscape(query)
	}

	resp, err := s.client.Get(ctx, endpoint)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrFetchFailed, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: 状态码 %d", ErrFetchFailed, resp.StatusCode)
	}

	body, err := s.client.ReadBody(resp)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrFetchFailed, err)
	}

	// 结构不合法的响应不算致命错误，记录后按空结果处理
	var result tmdbSearchResponse
	if err := json.Unmarshal(body, &result); err != nil {
		log.Printf("[TMDB] 响应格式不合法: %v", err)
		return []model.Movie{}, nil
	}
	if result.Results == nil {
		log.Printf("[TMDB] 响应缺少 results 字段")
		return []model.Movie{}, nil
	}

	return result.Results, nil
}
