package service

import (
	"context"
	"log"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/user/reelfind/internal/model"
)

// TrendingLimit 热搜榜条数
const TrendingLimit = 5

const (
	defaultVisibleCount = 6
	visibleCountStep    = 6
	searchTimeout       = 35 * time.Second
)

// CatalogSearcher 电影目录网关
type CatalogSearcher interface {
	Search(ctx context.Context, query string) ([]model.Movie, error)
}

// PopularityStore 搜索词热度存储
type PopularityStore interface {
	RecordSearch(term string, top model.Movie) error
	TopSearches(limit int) ([]*model.SearchTerm, error)
}

// SearchService 搜索流水线服务
type SearchService struct {
	gateway CatalogSearcher
	store   PopularityStore
	window  time.Duration
}

// NewSearchService 创建搜索服务
func NewSearchService(gateway CatalogSearcher, store PopularityStore) *SearchService {
	return &SearchService{
		gateway: gateway,
		store:   store,
		window:  DebounceWindow,
	}
}

// NewSession 创建一个搜索会话
// 会话创建即加载一次热搜榜并跑一次初始搜索；
// seedTerm 非空时为深链接进入，跳过防抖窗口
func (s *SearchService) NewSession(seedTerm string) *Session {
	sess := &Session{
		svc:          s,
		sortOption:   model.SortDefault,
		visibleCount: defaultVisibleCount,
		lastActive:   time.Now(),
	}
	sess.debouncer = NewDebouncer(s.window, sess.runSearch)
	sess.trending = s.loadTrending()

	if seedTerm != "" {
		sess.Seed(seedTerm)
	} else {
		sess.runSearch("")
	}
	return sess
}

// loadTrending 读取热搜榜，失败降级为空列表，不阻塞首屏
func (s *SearchService) loadTrending() []*model.SearchTerm {
	terms, err := s.store.TopSearches(TrendingLimit)
	if err != nil {
		log.Printf("[SearchService] 获取热搜失败: %v", err)
		return []*model.SearchTerm{}
	}
	if terms == nil {
		terms = []*model.SearchTerm{}
	}
	return terms
}

// recordSearchAsync 尽力而为地上报搜索词，任何失败只记日志
func (s *SearchService) recordSearchAsync(term string, top model.Movie) {
	defer func() {
		if r := recover(); r != nil {
			log.Printf("[SearchService] 上报搜索词发生恐慌 (%s): %v", term, r)
		}
	}()

	if err := s.store.RecordSearch(term, top); err != nil {
		log.Printf("[SearchService] 上报搜索词失败 (%s): %v", term, err)
	}
}

// SortMovies 返回按指定选项排序后的副本，原始顺序不变
// 切回 default 时必须能恢复网关返回的原始顺序
func SortMovies(movies []model.Movie, option string) []model.Movie {
	sorted := make([]model.Movie, len(movies))
	copy(sorted, movies)

	switch option {
	case model.SortYearDesc:
		// 缺失的日期按空串比较，desc 时沉到末尾
		sort.Slice(sorted, func(i, j int) bool {
			return sorted[i].ReleaseDate > sorted[j].ReleaseDate
		})
	case model.SortYearAsc:
		sort.Slice(sorted, func(i, j int) bool {
			return sorted[i].ReleaseDate < sorted[j].ReleaseDate
		})
	case model.SortRatingDesc:
		sort.Slice(sorted, func(i, j int) bool {
			return sorted[i].VoteAverage > sorted[j].VoteAverage
		})
	case model.SortRatingAsc:
		sort.Slice(sorted, func(i, j int) bool {
			return sorted[i].VoteAverage < sorted[j].VoteAverage
		})
	}
	return sorted
}

// Session 单个用户的搜索会话
type Session struct {
	svc       *SearchService
	debouncer *Debouncer

	mu            sync.Mutex
	seq           uint64
	currentTerm   string
	debouncedTerm string
	results       []model.Movie
	lastError     string
	isLoading     bool
	trending      []*model.SearchTerm
	sortOption    string
	visibleCount  int
	lastActive    time.Time
}

// State 会话状态快照，交给展示层
type State struct {
	SearchTerm    string              `json:"search_term"`
	DebouncedTerm string              `json:"debounced_term"`
	Results       []model.Movie       `json:"results"`
	TotalResults  int                 `json:"total_results"`
	VisibleCount  int                 `json:"visible_count"`
	HasMore       bool                `json:"has_more"`
	SortOption    string              `json:"sort_option"`
	IsLoading     bool                `json:"is_loading"`
	ErrorMessage  string              `json:"error_message"`
	Trending      []*model.SearchTerm `json:"trending"`
}

// SetQuery 接收按键流，经防抖后触发搜索
func (s *Session) SetQuery(term string) {
	term = strings.TrimSpace(term)

	s.mu.Lock()
	s.currentTerm = term
	s.lastActive = time.Now()
	s.mu.Unlock()

	s.debouncer.Trigger(term)
}

// Seed 导航直达：立即以给定词搜索，不等防抖窗口
func (s *Session) Seed(term string) {
	term = strings.TrimSpace(term)

	s.mu.Lock()
	s.currentTerm = term
	s.lastActive = time.Now()
	s.mu.Unlock()

	s.debouncer.Flush(term)
}

// SetSortOption 切换排序方式，非法选项忽略
func (s *Session) SetSortOption(option string) {
	if !model.ValidSortOption(option) {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sortOption = option
	s.lastActive = time.Now()
}

// LoadMore 在还有未展示结果时扩大可见窗口
func (s *Session) LoadMore() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastActive = time.Now()
	if s.visibleCount < len(s.results) {
		s.visibleCount += visibleCountStep
	}
}

// State 取当前状态快照
func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()

	sorted := SortMovies(s.results, s.sortOption)
	visible := s.visibleCount
	if visible > len(sorted) {
		visible = len(sorted)
	}

	return State{
		SearchTerm:    s.currentTerm,
		DebouncedTerm: s.debouncedTerm,
		Results:       sorted[:visible],
		TotalResults:  len(s.results),
		VisibleCount:  s.visibleCount,
		HasMore:       s.visibleCount < len(s.results),
		SortOption:    s.sortOption,
		IsLoading:     s.isLoading,
		ErrorMessage:  s.lastError,
		Trending:      s.trending,
	}
}

// Trending 热搜榜快照
func (s *Session) Trending() []*model.SearchTerm {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.trending
}

// Close 结束会话，取消未放行的防抖触发
func (s *Session) Close() {
	s.debouncer.Stop()
}

// LastActive 最近一次活动时间
func (s *Session) LastActive() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastActive
}

// runSearch 执行一次完整的搜索流程
func (s *Session) runSearch(query string) {
	s.mu.Lock()
	s.seq++
	seq := s.seq
	s.debouncedTerm = query
	s.isLoading = true
	s.lastError = ""
	s.mu.Unlock()

	ctx, cancel := context.WithTimeout(context.Background(), searchTimeout)
	defer cancel()
	movies, err := s.svc.gateway.Search(ctx, query)

	s.mu.Lock()
	defer s.mu.Unlock()

	// 迟到的响应直接丢弃，不允许覆盖更新一轮的搜索状态
	if seq != s.seq {
		return
	}
	s.isLoading = false

	if err != nil {
		s.lastError = model.MsgFetchFailed
		s.results = nil
		return
	}
	if len(movies) == 0 {
		s.lastError = model.MsgNoData
		s.results = nil
		return
	}

	s.results = movies
	s.visibleCount = defaultVisibleCount

	// 上报搜索词不参与主流程，失败不影响结果展示
	if query != "" {
		go s.svc.recordSearchAsync(query, movies[0])
	}
}
