package service

import (
	"log"
	"time"
)

// CleanupService 定时清理任务
// 只清理内存中的过期会话，搜索词热度记录永不删除
type CleanupService struct {
	sessions *SessionManager
}

// NewCleanupService 创建清理服务
func NewCleanupService(sessions *SessionManager) *CleanupService {
	return &CleanupService{sessions: sessions}
}

// Start 启动定时清理任务
func (s *CleanupService) Start() {
	ticker := time.NewTicker(10 * time.Minute)

	go func() {
		for range ticker.C {
			s.runCleanup()
		}
	}()
}

func (s *CleanupService) runCleanup() {
	purged := s.sessions.PurgeExpired()
	if purged > 0 {
		log.Printf("[CleanupService] 已清理 %d 个过期会话，当前活跃 %d 个", purged, s.sessions.Len())
	}
}
