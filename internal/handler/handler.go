package handler

import (
	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"github.com/user/reelfind/internal/config"
	"github.com/user/reelfind/internal/repository"
	"github.com/user/reelfind/internal/service"
	"github.com/user/reelfind/internal/utils"
)

// Handler HTTP 处理器
type Handler struct {
	Repos         *repository.Repositories
	Config        *config.Config
	SearchService *service.SearchService
	Sessions      *service.SessionManager
}

// NewHandler 创建处理器
func NewHandler(repos *repository.Repositories, cfg *config.Config) *Handler {
	// 创建目录网关
	gateway := service.NewTMDBService(cfg)

	// 创建搜索流水线
	searchSvc := service.NewSearchService(gateway, repos.SearchTerm)

	return &Handler{
		Repos:         repos,
		Config:        cfg,
		SearchService: searchSvc,
		Sessions:      service.NewSessionManager(searchSvc),
	}
}

// session 取当前请求对应的搜索会话，没有会话 id 时先生成并写入 cookie
func (h *Handler) session(c *gin.Context, seedTerm string) *service.Session {
	store := sessions.Default(c)
	sid, _ := store.Get("sid").(string)
	if sid == "" {
		sid = utils.NewSessionID()
		store.Set("sid", sid)
		_ = store.Save()
	}
	return h.Sessions.GetOrCreate(sid, seedTerm)
}
