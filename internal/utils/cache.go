package utils

import (
	"time"

	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/patrickmn/go-cache"
)

// Cache 全局缓存实例
var Cache *cache.Cache

// InitCache 初始化缓存
func InitCache() {
	// 默认过期时间5分钟，清理间隔10分钟
	Cache = cache.New(5*time.Minute, 10*time.Minute)
}

// CacheGet 获取缓存值
func CacheGet(key string) (interface{}, bool) {
	return Cache.Get(key)
}

// CacheSet 设置缓存值
func CacheSet(key string, value interface{}, duration time.Duration) {
	Cache.Set(key, value, duration)
}

// CacheDelete 删除缓存
func CacheDelete(key string) {
	Cache.Delete(key)
}

// CacheClear 清空所有缓存
func CacheClear() {
	Cache.Flush()
}

// ttlItem 包装实际的数据，增加过期时间
type ttlItem[T any] struct {
	Value     T
	ExpiredAt time.Time
}

// TTLCache 带过期时间的 LRU 缓存，会话注册表用它来限制内存占用
type TTLCache[T any] struct {
	storage *lru.Cache[string, ttlItem[T]]
	ttl     time.Duration
}

// NewTTLCache 初始化，size 是最大条数，ttl 是数据有效期
func NewTTLCache[T any](size int, ttl time.Duration) *TTLCache[T] {
	// lru.New 是线程安全的
	c, _ := lru.New[string, ttlItem[T]](size)
	return &TTLCache[T]{
		storage: c,
		ttl:     ttl,
	}
}

// Set 写入（LRU 中 Add 会自动处理更新）
func (c *TTLCache[T]) Set(key string, value T) {
	item := ttlItem[T]{
		Value:     value,
		ExpiredAt: time.Now().Add(c.ttl),
	}
	c.storage.Add(key, item)
}

// Get 读取，带过期检查
func (c *TTLCache[T]) Get(key string) (T, bool) {
	var zero T
	item, ok := c.storage.Get(key)
	if !ok {
		return zero, false
	}

	// 过期删除
	if time.Now().After(item.ExpiredAt) {
		c.storage.Remove(key)
		return zero, false
	}

	return item.Value, true
}

// Touch 刷新已有条目的过期时间
func (c *TTLCache[T]) Touch(key string) {
	if item, ok := c.storage.Get(key); ok {
		item.ExpiredAt = time.Now().Add(c.ttl)
		c.storage.Add(key, item)
	}
}

// Delete 删除
func (c *TTLCache[T]) Delete(key string) {
	c.storage.Remove(key)
}

// Keys 当前所有键（LRU 序）
func (c *TTLCache[T]) Keys() []string {
	return c.storage.Keys()
}

// PurgeExpired 清理过期条目，返回清理数量
func (c *TTLCache[T]) PurgeExpired() int {
	purged := 0
	for _, key := range c.storage.Keys() {
		item, ok := c.storage.Peek(key)
		if ok && time.Now().After(item.ExpiredAt) {
			c.storage.Remove(key)
			purged++
		}
	}
	return purged
}

// Len 当前长度
func (c *TTLCache[T]) Len() int {
	return c.storage.Len()
}
