package router

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/user/reelfind/internal/handler"
)

// RegisterRoutes 注册所有路由
func RegisterRoutes(r *gin.Engine, h *handler.Handler) {
	// 健康检查
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// ==================== 搜索接口 ====================
	api := r.Group("/api")
	{
		api.GET("/search/state", h.SearchState)
		api.POST("/search/input", h.SearchInput)
		api.POST("/search/sort", h.SearchSort)
		api.POST("/search/more", h.SearchMore)
		api.GET("/trending", h.Trending)
	}
}
