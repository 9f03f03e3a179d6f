package handler

import (
	"errors"
	"log"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/user/reelfind/internal/model"
	"github.com/user/reelfind/internal/service"
	"github.com/user/reelfind/internal/utils"
)

// SearchState 获取当前会话的搜索状态
// 带 search 参数时为深链接进入，立即以该词起搜（不等防抖窗口）
func (h *Handler) SearchState(c *gin.Context) {
	seedTerm := strings.TrimSpace(c.Query("search"))
	sess := h.session(c, seedTerm)
	utils.Success(c, sess.State())
}

type inputRequest struct {
	Term string `json:"term"`
}

// SearchInput 接收输入流中的一次按键值
// 不立即搜索，经 500ms 防抖后只放行最终稳定值
func (h *Handler) SearchInput(c *gin.Context) {
	var req inputRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "请求参数错误")
		return
	}

	sess := h.session(c, "")
	sess.SetQuery(req.Term)
	utils.Success(c, gin.H{"term": strings.TrimSpace(req.Term)})
}

type sortRequest struct {
	Option string `json:"option" binding:"required,oneof=default year-desc year-asc rating-desc rating-asc"`
}

// SearchSort 切换排序方式并返回排序后的状态
func (h *Handler) SearchSort(c *gin.Context) {
	var req sortRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			utils.BadRequest(c, "不支持的排序选项")
			return
		}
		utils.BadRequest(c, "请求参数错误")
		return
	}

	sess := h.session(c, "")
	sess.SetSortOption(req.Option)
	utils.Success(c, sess.State())
}

// SearchMore 展开下一批结果
func (h *Handler) SearchMore(c *gin.Context) {
	sess := h.session(c, "")
	sess.LoadMore()
	utils.Success(c, sess.State())
}

// Trending 获取热搜榜
// 存储故障降级为空列表，永远不把错误抛给前端
func (h *Handler) Trending(c *gin.Context) {
	terms, err := h.Repos.SearchTerm.TopSearches(service.TrendingLimit)
	if err != nil {
		log.Printf("[Handler] 获取热搜失败: %v", err)
		terms = []*model.SearchTerm{}
	}
	utils.Success(c, terms)
}
