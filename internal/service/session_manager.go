package service

import (
	"time"

	"github.com/user/reelfind/internal/utils"
)

const (
	maxSessions = 10000
	sessionTTL  = 30 * time.Minute
)

// SessionManager 活跃搜索会话注册表
// 用 TTL-LRU 限制内存占用，超量时淘汰最久未使用的会话
type SessionManager struct {
	svc      *SearchService
	sessions *utils.TTLCache[*Session]
}

func NewSessionManager(svc *SearchService) *SessionManager {
	return &SessionManager{
		svc:      svc,
		sessions: utils.NewTTLCache[*Session](maxSessions, sessionTTL),
	}
}

// GetOrCreate 按会话 id 取会话，不存在时创建
// seedTerm 非空表示导航事件带入了初始词：新会话以它起搜，老会话立即重新搜索
func (m *SessionManager) GetOrCreate(id, seedTerm string) *Session {
	if sess, ok := m.sessions.Get(id); ok {
		m.sessions.Touch(id)
		if seedTerm != "" {
			sess.Seed(seedTerm)
		}
		return sess
	}

	sess := m.svc.NewSession(seedTerm)
	m.sessions.Set(id, sess)
	return sess
}

// PurgeExpired 清理过期会话，返回清理数量
func (m *SessionManager) PurgeExpired() int {
	return m.sessions.PurgeExpired()
}

// Len 当前活跃会话数
func (m *SessionManager) Len() int {
	return m.sessions.Len()
}
